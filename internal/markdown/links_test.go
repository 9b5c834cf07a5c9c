package markdown

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractLinks_InlineLink(t *testing.T) {
	links, err := ExtractLinks([]byte("See [API](api.md) for details."), Options{})
	require.NoError(t, err)
	require.Len(t, links, 1)
	require.Equal(t, "API", links[0].Text)
	require.Equal(t, "api.md", links[0].Destination)
	require.Equal(t, 4, links[0].Offset)
}

func TestExtractLinks_EmptyTextAllowed(t *testing.T) {
	links, err := ExtractLinks([]byte("[](./empty.md)"), Options{})
	require.NoError(t, err)
	require.Len(t, links, 1)
	require.Empty(t, links[0].Text)
	require.Equal(t, "./empty.md", links[0].Destination)
}

func TestExtractLinks_EmptyDestinationIgnored(t *testing.T) {
	links, err := ExtractLinks([]byte("[nothing]()"), Options{})
	require.NoError(t, err)
	require.Empty(t, links)
}

func TestExtractLinks_DestinationStopsAtFirstParen(t *testing.T) {
	links, err := ExtractLinks([]byte("[wiki](docs/foo_(bar).md)"), Options{})
	require.NoError(t, err)
	require.Len(t, links, 1)
	require.Equal(t, "docs/foo_(bar", links[0].Destination)
}

func TestExtractLinks_DocumentOrder(t *testing.T) {
	src := []byte("[a](one.md) text [b](https://example.com)\n\n[c](#top) and [d](../two.md)\n")
	links, err := ExtractLinks(src, Options{})
	require.NoError(t, err)
	require.Len(t, links, 4)

	got := make([]string, 0, len(links))
	for _, l := range links {
		got = append(got, l.Destination)
	}
	require.Equal(t, []string{"one.md", "https://example.com", "#top", "../two.md"}, got)
}

func TestExtractLinks_InlineSyntaxIncludesCodeBlocks(t *testing.T) {
	src := []byte("```\n[Link](./in-fence.md)\n```\n")
	links, err := ExtractLinks(src, Options{Syntax: SyntaxInline})
	require.NoError(t, err)
	require.Len(t, links, 1)
	require.Equal(t, "./in-fence.md", links[0].Destination)
}

func TestExtractLinks_ImageMatchedAsLink(t *testing.T) {
	links, err := ExtractLinks([]byte("![Diagram](diagram.png)"), Options{})
	require.NoError(t, err)
	require.Len(t, links, 1)
	require.Equal(t, "Diagram", links[0].Text)
	require.Equal(t, "diagram.png", links[0].Destination)
}

func TestExtractLinks_CommonMarkSkipsCode(t *testing.T) {
	src := []byte("" +
		"Inline code: `[Link](./ignored-inline.md)`\n" +
		"\n" +
		"```\n" +
		"[Link](./ignored-fence.md)\n" +
		"```\n" +
		"\n" +
		"Real: [OK **bold**](./real.md)\n")

	links, err := ExtractLinks(src, Options{Syntax: SyntaxCommonMark})
	require.NoError(t, err)
	require.Len(t, links, 1)
	require.Equal(t, "./real.md", links[0].Destination)
	require.Equal(t, "OK bold", links[0].Text)
	require.Equal(t, -1, links[0].Offset)
}

func TestExtractLinks_CommonMarkResolvesReferences(t *testing.T) {
	src := []byte("See [API][ref].\n\n[ref]: api.md\n")
	links, err := ExtractLinks(src, Options{Syntax: SyntaxCommonMark})
	require.NoError(t, err)
	require.Len(t, links, 1)
	require.Equal(t, "API", links[0].Text)
	require.Equal(t, "api.md", links[0].Destination)
}

func TestExtractLinks_UnknownSyntax(t *testing.T) {
	_, err := ExtractLinks([]byte("[a](b.md)"), Options{Syntax: "wiki"})
	require.Error(t, err)
}

func TestParseSyntax(t *testing.T) {
	cases := map[string]Syntax{
		"":           SyntaxInline,
		"inline":     SyntaxInline,
		" Regex ":    SyntaxInline,
		"commonmark": SyntaxCommonMark,
		"GOLDMARK":   SyntaxCommonMark,
	}
	for raw, want := range cases {
		got, err := ParseSyntax(raw)
		require.NoError(t, err, raw)
		require.Equal(t, want, got, raw)
	}

	_, err := ParseSyntax("html")
	require.Error(t, err)
}
