package linkcheck

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrInvalidPath is returned by Resolve when a link cannot be turned into a
// filesystem path.
var ErrInvalidPath = errors.New("invalid path")

// DocsRoot returns the directory bare links are resolved against. It is the
// document's own directory, which is only the real documentation root when
// the document sits directly inside it.
func DocsRoot(sourceFile string) string {
	return filepath.Dir(sourceFile)
}

// Resolve maps a link found in sourceFile to the absolute path it refers to.
// The fragment is dropped, the joined path is percent-decoded and the result
// is made absolute. Symbolic links are not followed. Only a decoded NUL byte
// makes a path invalid.
func Resolve(sourceFile, link string) (string, error) {
	target, _, _ := strings.Cut(link, "#")
	baseDir := filepath.Dir(sourceFile)

	var candidate string
	switch Classify(link) {
	case ClassCurrentDir:
		candidate = joinPath(baseDir, strings.TrimPrefix(target, "./"))
	case ClassParentDir:
		candidate = joinPath(baseDir, target)
	case ClassBare:
		candidate = joinPath(DocsRoot(sourceFile), target)
	default:
		return "", fmt.Errorf("%w: %s links are not resolved on disk", ErrInvalidPath, Classify(link))
	}

	decoded := unescapeLenient(candidate)
	if strings.ContainsRune(decoded, 0) {
		return "", fmt.Errorf("%w: embedded NUL byte", ErrInvalidPath)
	}

	abs, err := filepath.Abs(decoded)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidPath, err)
	}
	return abs, nil
}

// joinPath joins target onto dir; an absolute target replaces dir.
func joinPath(dir, target string) string {
	if filepath.IsAbs(target) {
		return filepath.Clean(target)
	}
	return filepath.Join(dir, target)
}

// unescapeLenient decodes valid %XX escapes and keeps malformed ones as
// literal text, so "50%-off.md" names itself.
func unescapeLenient(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
