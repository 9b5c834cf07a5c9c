package markdown

import (
	"bytes"
	"regexp"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// inlineLinkPattern matches `[text](url)`. Text may be empty; the URL runs up
// to the first closing parenthesis, so URLs containing `)` are truncated.
var inlineLinkPattern = regexp.MustCompile(`\[([^\]]*)\]\(([^)]+)\)`)

// ExtractLinks returns the links of a Markdown document in document order.
func ExtractLinks(body []byte, opts Options) ([]Link, error) {
	switch opts.Syntax {
	case SyntaxCommonMark:
		return extractCommonMarkLinks(body), nil
	case "", SyntaxInline:
		return extractInlineLinks(body), nil
	default:
		_, err := ParseSyntax(string(opts.Syntax))
		return nil, err
	}
}

func extractInlineLinks(body []byte) []Link {
	matches := inlineLinkPattern.FindAllSubmatchIndex(body, -1)
	links := make([]Link, 0, len(matches))
	for _, m := range matches {
		links = append(links, Link{
			Text:        string(body[m[2]:m[3]]),
			Destination: string(body[m[4]:m[5]]),
			Offset:      m[0],
		})
	}
	return links
}

func extractCommonMarkLinks(body []byte) []Link {
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(body))

	links := make([]Link, 0)
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		node, ok := n.(*gmast.Link)
		if !ok {
			return gmast.WalkContinue, nil
		}
		links = append(links, Link{
			Text:        nodeText(node, body),
			Destination: string(node.Destination),
			Offset:      -1,
		})
		return gmast.WalkContinue, nil
	})
	return links
}

// nodeText concatenates the literal text segments below n.
func nodeText(n gmast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = gmast.Walk(n, func(c gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *gmast.Text:
			buf.Write(t.Segment.Value(source))
			if t.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		case *gmast.String:
			buf.Write(t.Value)
		case *gmast.CodeSpan:
			for s := t.FirstChild(); s != nil; s = s.NextSibling() {
				if seg, ok := s.(*gmast.Text); ok {
					buf.Write(seg.Segment.Value(source))
				}
			}
			return gmast.WalkSkipChildren, nil
		}
		return gmast.WalkContinue, nil
	})
	return buf.String()
}
