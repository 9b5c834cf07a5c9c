// Package linkcheck verifies that the internal links of Markdown documents
// point at files that exist on disk.
//
// Each document is processed in a single pass: inline `[text](url)` links are
// extracted, classified, resolved against the document's directory and
// stat'ed. Problems are collected as Findings rather than returned as errors,
// so one bad document never stops a batch.
package linkcheck
