// Package docstring renders documentation text according to its format tag.
// Formats are looked up in an open registry so extraction stages can attach
// their own tags; anything unknown falls back to plaintext, which never
// fails.
package docstring

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/refdoc/internal/autolink"
	"git.home.luguber.info/inful/refdoc/internal/markdown"
)

// FormatFunc renders one docstring to an HTML fragment using the page's
// markdown renderer.
type FormatFunc func(doc string, md *markdown.Renderer) (string, error)

// registry maps format tags to renderers. Mutated only from init functions,
// read-only once rendering starts.
var registry = map[string]FormatFunc{}

// Register installs a renderer for a format tag, replacing any previous one.
func Register(tag string, fn FormatFunc) {
	registry[tag] = fn
}

func init() {
	Register("plaintext", Plaintext)
	Register("markdown", func(doc string, md *markdown.Renderer) (string, error) {
		return md.ToHTML(doc)
	})
}

// Format renders doc using the renderer registered for tag. An empty doc
// yields an empty fragment. Absent or unregistered tags take the plaintext
// path.
func Format(tag, doc string, md *markdown.Renderer) (string, error) {
	if doc == "" {
		return "", nil
	}
	fn, ok := registry[tag]
	if !ok {
		fn = Plaintext
	}
	out, err := fn(doc, md)
	if err != nil {
		return "", fmt.Errorf("format %q docstring: %w", tag, err)
	}
	return out, nil
}

// Plaintext escapes the text and wraps it in a preformatted block. URLs are
// lifted out first and substituted back as anchors after escaping, so hrefs
// come through intact.
func Plaintext(doc string, _ *markdown.Renderer) (string, error) {
	text, table := autolink.Extract(doc)
	text = html.EscapeString(text)
	text = autolink.Substitute(text, table)
	return `<pre class="plaintext">` + text + "</pre>", nil
}

var summaryBoundary = regexp.MustCompile("\n[ \t]*\n|\f")

// Summary returns the leading portion of a docstring, up to the first blank
// line or form feed. Index pages show it as the namespace blurb.
func Summary(doc string) string {
	if loc := summaryBoundary.FindStringIndex(doc); loc != nil {
		doc = doc[:loc[0]]
	}
	return strings.TrimSpace(doc)
}
