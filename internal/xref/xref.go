// Package xref resolves cross-reference targets while pages render: wiki
// link targets to namespace pages or var anchors, relative markdown URLs to
// their generated .html counterparts, and var names to stable fragment ids.
package xref

import (
	"net/url"
	"regexp"
	"strings"

	"git.home.luguber.info/inful/refdoc/internal/project"
)

// Resolver answers link lookups for one page render. Current is the page's
// namespace, or nil on project-level pages such as the index.
type Resolver struct {
	proj    *project.Project
	current *project.Namespace
}

// New returns a resolver bound to one project view and, optionally, the
// namespace whose page is being rendered.
func New(p *project.Project, current *project.Namespace) *Resolver {
	return &Resolver{proj: p, current: current}
}

// ResolveWiki maps a [[Target]] to a URL. Namespace names win over var
// names; var lookups prefer the current namespace and then fall back to the
// project's namespace order, first match winning. The second return is false
// when nothing matches and the link should render as literal text.
func (r *Resolver) ResolveWiki(target string) (string, bool) {
	if ns, ok := r.proj.NamespaceByName(target); ok {
		file, err := ns.Filename()
		if err != nil {
			return "", false
		}
		return file, true
	}
	if r.current != nil {
		if _, ok := r.current.VarNamed(target); ok {
			return varURI(r.current, target)
		}
	}
	for i := range r.proj.Namespaces {
		ns := &r.proj.Namespaces[i]
		if _, ok := ns.VarNamed(target); ok {
			return varURI(ns, target)
		}
	}
	return "", false
}

func varURI(ns *project.Namespace, name string) (string, bool) {
	file, err := ns.Filename()
	if err != nil {
		return "", false
	}
	return file + "#" + VarID(name), true
}

var markdownExt = regexp.MustCompile(`\.(md|markdown)$`)

// FixMarkdownURL rewrites a relative link ending in .md or .markdown to the
// .html file the generator produces for it. Absolute URLs, including
// protocol-relative ones, pass through untouched, as does every other
// relative target.
func FixMarkdownURL(raw string) string {
	if isAbsolute(raw) {
		return raw
	}
	return markdownExt.ReplaceAllString(raw, ".html")
}

func isAbsolute(raw string) bool {
	if strings.HasPrefix(raw, "//") {
		return true
	}
	u, err := url.Parse(raw)
	return err == nil && u.IsAbs()
}

// VarID derives the HTML fragment id for a var name. The name is
// percent-encoded and the percent signs are folded to dots so the result
// stays a valid id for any public name, including operator-like ones.
func VarID(name string) string {
	esc := url.QueryEscape(name)
	esc = strings.ReplaceAll(esc, "+", "%20")
	esc = strings.ReplaceAll(esc, "%", ".")
	return "var-" + esc
}
