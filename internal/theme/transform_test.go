package theme

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const page = `<!DOCTYPE html><html><head><title>t</title></head><body><div id="main"><p class="k">one</p><p class="k">two</p></div></body></html>`

func TestApplyAppend(t *testing.T) {
	out, err := Apply(page, []Transform{
		{Selector: "#main", Op: OpAppend, HTML: []string{`<p id="extra">three</p>`}},
	})
	require.NoError(t, err)
	require.Contains(t, out, `<p class="k">two</p><p id="extra">three</p></div>`)
}

func TestApplyPrepend(t *testing.T) {
	out, err := Apply(page, []Transform{
		{Selector: "#main", Op: OpPrepend, HTML: []string{`<p id="a">a</p>`, `<p id="b">b</p>`}},
	})
	require.NoError(t, err)
	require.Contains(t, out, `<div id="main"><p id="a">a</p><p id="b">b</p><p class="k">one</p>`)
}

func TestApplyInsertAfter(t *testing.T) {
	out, err := Apply(page, []Transform{
		{Selector: "head title", Op: OpInsertAfter, HTML: []string{`<meta name="x" content="1">`}},
	})
	require.NoError(t, err)
	require.Contains(t, out, `<title>t</title><meta name="x" content="1"/>`)
}

func TestApplyInsertBefore(t *testing.T) {
	out, err := Apply(page, []Transform{
		{Selector: "#main", Op: OpInsertBefore, HTML: []string{`<nav id="nav">n</nav>`}},
	})
	require.NoError(t, err)
	require.Contains(t, out, `<nav id="nav">n</nav><div id="main">`)
}

func TestApplyReplace(t *testing.T) {
	out, err := Apply(page, []Transform{
		{Selector: "#main", Op: OpReplace, HTML: []string{`<section id="swapped">s</section>`}},
	})
	require.NoError(t, err)
	require.Contains(t, out, `<section id="swapped">s</section>`)
	require.NotContains(t, out, `id="main"`)
}

func TestApplyEditsEveryMatch(t *testing.T) {
	out, err := Apply(page, []Transform{
		{Selector: "p.k", Op: OpAppend, HTML: []string{`<em>!</em>`}},
	})
	require.NoError(t, err)
	require.Contains(t, out, `one<em>!</em>`)
	require.Contains(t, out, `two<em>!</em>`)
}

func TestApplyRunsInDeclaredOrder(t *testing.T) {
	out, err := Apply(page, []Transform{
		{Selector: "body", Op: OpAppend, HTML: []string{`<footer id="f1">1</footer>`}},
		{Selector: "body", Op: OpAppend, HTML: []string{`<footer id="f2">2</footer>`}},
	})
	require.NoError(t, err)
	require.Less(t,
		strings.Index(out, `id="f1"`),
		strings.Index(out, `id="f2"`))
}

func TestFragmentsParseInTargetContext(t *testing.T) {
	table := `<!DOCTYPE html><html><head></head><body><table><tbody><tr><td>a</td></tr></tbody></table></body></html>`
	out, err := Apply(table, []Transform{
		{Selector: "tbody", Op: OpAppend, HTML: []string{`<tr><td>b</td></tr>`}},
	})
	require.NoError(t, err)
	require.Contains(t, out, `<td>a</td></tr><tr><td>b</td></tr>`)
}

func TestApplyBadSelector(t *testing.T) {
	_, err := Apply(page, []Transform{{Selector: "p[", Op: OpAppend, HTML: []string{"x"}}})
	require.Error(t, err)
}

func TestApplyNoMatchIsNoop(t *testing.T) {
	out, err := Apply(page, []Transform{
		{Selector: "#absent", Op: OpAppend, HTML: []string{`<p>x</p>`}},
	})
	require.NoError(t, err)
	require.Contains(t, out, `<p class="k">one</p>`)
	require.NotContains(t, out, `<p>x</p>`)
}
