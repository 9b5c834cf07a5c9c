package linkcheck

import "strings"

// Class describes how a link target is treated.
type Class string

const (
	// ClassExternal covers http, https and mailto targets; never validated.
	ClassExternal Class = "external"
	// ClassAnchor covers same-document fragments; never validated.
	ClassAnchor Class = "anchor"
	// ClassCurrentDir covers `./` targets, resolved against the document directory.
	ClassCurrentDir Class = "current_dir"
	// ClassParentDir covers `../` targets, resolved against the document directory.
	ClassParentDir Class = "parent_dir"
	// ClassBare covers everything else, resolved against the documentation root.
	ClassBare Class = "bare"
)

var externalPrefixes = []string{"http://", "https://", "mailto:"}

// Classify returns the Class of a link target. Prefixes are matched in order
// and case-sensitively.
func Classify(url string) Class {
	for _, p := range externalPrefixes {
		if strings.HasPrefix(url, p) {
			return ClassExternal
		}
	}
	switch {
	case strings.HasPrefix(url, "#"):
		return ClassAnchor
	case strings.HasPrefix(url, "./"):
		return ClassCurrentDir
	case strings.HasPrefix(url, "../"):
		return ClassParentDir
	default:
		return ClassBare
	}
}

// Checked reports whether links of this class are validated on disk.
func (c Class) Checked() bool {
	return c != ClassExternal && c != ClassAnchor
}
