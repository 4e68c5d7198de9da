// Package markdown adapts goldmark for docstring and document rendering.
// Every converter is bound to a page-scoped cross-reference resolver so wiki
// links and relative markdown targets land on the generated pages.
package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
	"go.abhg.dev/goldmark/anchor"
	"go.abhg.dev/goldmark/wikilink"

	"git.home.luguber.info/inful/refdoc/internal/xref"
)

// Renderer converts markdown to HTML for one page render. Build a fresh one
// per page: the embedded resolver carries that page's namespace.
type Renderer struct {
	md goldmark.Markdown
}

// New returns a renderer whose wiki links and markdown links resolve through
// res. The dialect is CommonMark plus tables, strikethrough, bare-URL
// autolinks, definition lists, typographic quotes and dashes, wiki links,
// and self-anchored headings. Raw HTML in docstrings passes through.
func New(res *xref.Resolver) *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Table,
			extension.Strikethrough,
			extension.Linkify,
			extension.DefinitionList,
			extension.Typographer,
			&wikilink.Extender{Resolver: &wikiResolver{res: res}},
			&anchor.Extender{},
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithASTTransformers(
				util.Prioritized(&linkRewriter{}, 999),
			),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithUnsafe(),
		),
	)
	return &Renderer{md: md}
}

// ToHTML renders one markdown source to an HTML fragment.
func (r *Renderer) ToHTML(src string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// wikiResolver bridges the page resolver into goldmark's wikilink extension.
// A nil destination makes the extension render the label as plain text, which
// is exactly the unresolved-link fallback.
type wikiResolver struct {
	res *xref.Resolver
}

func (w *wikiResolver) ResolveWikilink(n *wikilink.Node) ([]byte, error) {
	if w.res == nil {
		return nil, nil
	}
	if dest, ok := w.res.ResolveWiki(string(n.Target)); ok {
		return []byte(dest), nil
	}
	return nil, nil
}

// linkRewriter fixes destinations of inline and reference links after
// parsing. Goldmark has already folded reference-style links into Link nodes
// with a concrete destination by the time transformers run.
type linkRewriter struct{}

func (linkRewriter) Transform(doc *gmast.Document, _ text.Reader, _ parser.Context) {
	_ = gmast.Walk(doc, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		if link, ok := n.(*gmast.Link); ok {
			link.Destination = []byte(xref.FixMarkdownURL(string(link.Destination)))
		}
		return gmast.WalkContinue, nil
	})
}
