package linkcheck

import "fmt"

// FindingKind categorises a validation error.
type FindingKind string

const (
	KindMissingFile FindingKind = "missing_file"
	KindReadError   FindingKind = "read_error"
	KindInvalidPath FindingKind = "invalid_path"
	KindBrokenLink  FindingKind = "broken_link"
)

// Finding is one validation error for a source document.
type Finding struct {
	Kind     FindingKind
	Source   string // Source document as given on input (cleaned)
	Text     string // Link display text (link findings only)
	URL      string // Original link target (link findings only)
	Resolved string // Absolute path that was checked (broken links only)
	Err      error  // Underlying cause (read errors and invalid paths)
}

// Message renders the finding as a single human-readable line.
func (f Finding) Message() string {
	switch f.Kind {
	case KindMissingFile:
		return fmt.Sprintf("File does not exist: %s", f.Source)
	case KindReadError:
		return fmt.Sprintf("Error reading file %s: %v", f.Source, f.Err)
	case KindInvalidPath:
		return fmt.Sprintf("Invalid path in %s: %s", f.Source, f.URL)
	case KindBrokenLink:
		return fmt.Sprintf("Broken link in %s: '%s' -> %s (resolved to %s)", f.Source, f.Text, f.URL, f.Resolved)
	default:
		return fmt.Sprintf("%s in %s: %s", f.Kind, f.Source, f.URL)
	}
}

// String implements fmt.Stringer.
func (f Finding) String() string {
	return f.Message()
}
