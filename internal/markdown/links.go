package markdown

import (
	"fmt"
	"strings"
)

// Syntax selects the link extraction strategy.
type Syntax string

const (
	// SyntaxInline matches raw `[text](url)` spans anywhere in the document,
	// including inside code blocks.
	SyntaxInline Syntax = "inline"
	// SyntaxCommonMark parses the document with Goldmark and reports Link nodes only.
	SyntaxCommonMark Syntax = "commonmark"
)

// Options controls how Markdown is scanned for links.
type Options struct {
	Syntax Syntax
}

// ParseSyntax maps a user supplied syntax name onto a Syntax value.
func ParseSyntax(raw string) (Syntax, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", string(SyntaxInline), "regex":
		return SyntaxInline, nil
	case string(SyntaxCommonMark), "goldmark":
		return SyntaxCommonMark, nil
	default:
		return "", fmt.Errorf("unknown link syntax %q (want %s or %s)", raw, SyntaxInline, SyntaxCommonMark)
	}
}

// Link is a single link reference extracted from a document.
type Link struct {
	Text        string
	Destination string
	// Offset is the byte offset of the opening bracket, or -1 when unknown.
	Offset int
}
