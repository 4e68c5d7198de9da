package markdown

import (
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/refdoc/internal/project"
	"git.home.luguber.info/inful/refdoc/internal/xref"
)

func pageRenderer(t *testing.T) *Renderer {
	t.Helper()
	p := &project.Project{
		Name: "demo",
		Namespaces: []project.Namespace{
			{Name: "demo.core", Vars: []project.Var{{Name: "frob"}}},
			{Name: "demo.util"},
		},
	}
	p.Sort()
	return New(xref.New(p, nil))
}

func TestWikiLinkToNamespace(t *testing.T) {
	html, err := pageRenderer(t).ToHTML("see [[demo.util]] for helpers")
	require.NoError(t, err)
	require.Contains(t, html, `<a href="demo.util.html">demo.util</a>`)
}

func TestWikiLinkToVarAnchor(t *testing.T) {
	html, err := pageRenderer(t).ToHTML("see [[frob]]")
	require.NoError(t, err)
	require.Contains(t, html, `<a href="demo.core.html#var-frob">frob</a>`)
}

func TestUnresolvedWikiLinkRendersLiteralText(t *testing.T) {
	html, err := pageRenderer(t).ToHTML("see [[no.such.thing]]")
	require.NoError(t, err)
	require.Contains(t, html, "no.such.thing")
	require.NotContains(t, html, "<a ")
}

func TestRelativeMarkdownLinkRewritten(t *testing.T) {
	html, err := pageRenderer(t).ToHTML("[intro](intro.md) and [guide](sub/guide.markdown)")
	require.NoError(t, err)
	require.Contains(t, html, `href="intro.html"`)
	require.Contains(t, html, `href="sub/guide.html"`)
}

func TestReferenceLinkRewritten(t *testing.T) {
	src := "read [the intro][i] first\n\n[i]: intro.md\n"
	html, err := pageRenderer(t).ToHTML(src)
	require.NoError(t, err)
	require.Contains(t, html, `href="intro.html"`)
}

func TestAbsoluteLinkUntouched(t *testing.T) {
	html, err := pageRenderer(t).ToHTML("[readme](https://example.com/readme.md)")
	require.NoError(t, err)
	require.Contains(t, html, `href="https://example.com/readme.md"`)
}

func TestBareURLAutolinked(t *testing.T) {
	html, err := pageRenderer(t).ToHTML("visit https://example.com now")
	require.NoError(t, err)
	require.Contains(t, html, `<a href="https://example.com">`)
}

func TestHeadingsGetIDsAndAnchors(t *testing.T) {
	html, err := pageRenderer(t).ToHTML("# Getting Started")
	require.NoError(t, err)
	require.Contains(t, html, `id="getting-started"`)
	require.Contains(t, html, `class="anchor"`)
}

func TestDialectExtensions(t *testing.T) {
	html, err := pageRenderer(t).ToHTML("~~old~~ and a | table |\n--- | ---\na | b")
	require.NoError(t, err)
	require.Contains(t, html, "<del>old</del>")

	html, err = pageRenderer(t).ToHTML("| a | b |\n| --- | --- |\n| 1 | 2 |")
	require.NoError(t, err)
	require.Contains(t, html, "<table>")
}

func TestSmartQuotes(t *testing.T) {
	html, err := pageRenderer(t).ToHTML("it's \"quoted\"")
	require.NoError(t, err)
	require.Contains(t, html, "&rsquo;")
	require.Contains(t, html, "&ldquo;")
}

func TestRawHTMLPassesThrough(t *testing.T) {
	html, err := pageRenderer(t).ToHTML(`keep <span class="note">this</span>`)
	require.NoError(t, err)
	require.Contains(t, html, `<span class="note">this</span>`)
}
