package theme

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Apply runs the transforms in declared order against a rendered page and
// reserializes the result. Every node matching a transform's selector is
// edited.
func Apply(page string, transforms []Transform) (string, error) {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("parse page: %w", err)
	}
	for _, tr := range transforms {
		if err := applyTransform(doc, tr); err != nil {
			return "", err
		}
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return "", fmt.Errorf("serialize page: %w", err)
	}
	return buf.String(), nil
}

func applyTransform(doc *html.Node, tr Transform) error {
	sel, err := cascadia.Compile(tr.Selector)
	if err != nil {
		return fmt.Errorf("selector %q: %w", tr.Selector, err)
	}
	for _, target := range sel.MatchAll(doc) {
		if err := applyOp(target, tr); err != nil {
			return fmt.Errorf("transform %q/%s: %w", tr.Selector, tr.Op, err)
		}
	}
	return nil
}

func applyOp(target *html.Node, tr Transform) error {
	switch tr.Op {
	case OpAppend:
		frags, err := parseFragments(tr.HTML, target)
		if err != nil {
			return err
		}
		for _, n := range frags {
			target.AppendChild(n)
		}
	case OpPrepend:
		frags, err := parseFragments(tr.HTML, target)
		if err != nil {
			return err
		}
		ref := target.FirstChild
		for _, n := range frags {
			target.InsertBefore(n, ref)
		}
	case OpInsertBefore:
		parent := target.Parent
		if parent == nil {
			return fmt.Errorf("matched node has no parent")
		}
		frags, err := parseFragments(tr.HTML, parent)
		if err != nil {
			return err
		}
		for _, n := range frags {
			parent.InsertBefore(n, target)
		}
	case OpInsertAfter:
		parent := target.Parent
		if parent == nil {
			return fmt.Errorf("matched node has no parent")
		}
		frags, err := parseFragments(tr.HTML, parent)
		if err != nil {
			return err
		}
		ref := target.NextSibling
		for _, n := range frags {
			parent.InsertBefore(n, ref)
		}
	case OpReplace:
		parent := target.Parent
		if parent == nil {
			return fmt.Errorf("matched node has no parent")
		}
		frags, err := parseFragments(tr.HTML, parent)
		if err != nil {
			return err
		}
		for _, n := range frags {
			parent.InsertBefore(n, target)
		}
		parent.RemoveChild(target)
	default:
		return fmt.Errorf("unknown op %q", tr.Op)
	}
	return nil
}

// parseFragments parses each HTML fragment in the insertion context of the
// given node, so context-sensitive elements such as table rows or head
// metadata come out right. Fragment order is preserved.
func parseFragments(frags []string, context *html.Node) ([]*html.Node, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: atom.Div.String(), DataAtom: atom.Div}
	if context != nil && context.Type == html.ElementNode {
		ctx.Data = context.Data
		ctx.DataAtom = context.DataAtom
	}
	var out []*html.Node
	for _, frag := range frags {
		nodes, err := html.ParseFragment(strings.NewReader(frag), ctx)
		if err != nil {
			return nil, fmt.Errorf("parse fragment %q: %w", frag, err)
		}
		out = append(out, nodes...)
	}
	return out, nil
}
