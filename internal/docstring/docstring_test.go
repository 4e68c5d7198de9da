package docstring

import (
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/refdoc/internal/markdown"
	"git.home.luguber.info/inful/refdoc/internal/project"
	"git.home.luguber.info/inful/refdoc/internal/xref"
)

func renderer() *markdown.Renderer {
	p := &project.Project{Name: "demo"}
	return markdown.New(xref.New(p, nil))
}

func TestFormatPlaintextEscapesAndLinks(t *testing.T) {
	got, err := Format("plaintext", "x < y, see https://example.com", renderer())
	require.NoError(t, err)
	require.Equal(t,
		`<pre class="plaintext">x &lt; y, see <a href="https://example.com">https://example.com</a></pre>`,
		got)
}

func TestFormatMarkdown(t *testing.T) {
	got, err := Format("markdown", "some *emphasis*", renderer())
	require.NoError(t, err)
	require.Contains(t, got, "<em>emphasis</em>")
}

func TestFormatEmptyDoc(t *testing.T) {
	got, err := Format("markdown", "", renderer())
	require.NoError(t, err)
	require.Equal(t, "", got)
}

func TestFormatUnknownTagFallsBackToPlaintext(t *testing.T) {
	got, err := Format("asciidoc", "raw <text>", renderer())
	require.NoError(t, err)
	require.Equal(t, `<pre class="plaintext">raw &lt;text&gt;</pre>`, got)
}

func TestFormatAbsentTagFallsBackToPlaintext(t *testing.T) {
	got, err := Format("", "hello", renderer())
	require.NoError(t, err)
	require.Equal(t, `<pre class="plaintext">hello</pre>`, got)
}

func TestRegisterCustomFormat(t *testing.T) {
	Register("upper-test", func(doc string, _ *markdown.Renderer) (string, error) {
		return "<b>" + doc + "</b>", nil
	})
	got, err := Format("upper-test", "shout", renderer())
	require.NoError(t, err)
	require.Equal(t, "<b>shout</b>", got)
}

func TestSummary(t *testing.T) {
	require.Equal(t, "First paragraph.", Summary("First paragraph.\n\nSecond paragraph."))
	require.Equal(t, "Up to the feed.", Summary("Up to the feed.\fRest."))
	require.Equal(t, "Only line.", Summary("Only line."))
	require.Equal(t, "Spaced out.", Summary("Spaced out.\n   \nMore."))
	require.Equal(t, "", Summary(""))
}
