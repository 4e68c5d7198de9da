// Package project defines the immutable in-memory model rendered by refdoc:
// a project made of namespaces, their public vars, and free-form documents,
// possibly split per source-language variant. The model is populated by
// internal/config and only ever copied (never mutated in place) by the
// platform projector.
package project

import (
	"fmt"
	"sort"
	"strings"

	"git.home.luguber.info/inful/refdoc/internal/typesig"
)

// Var is a documented public binding owned by exactly one namespace.
type Var struct {
	Name       string
	Doc        string
	DocFormat  string
	Kind       string // "", "function", "constant", "type", "protocol", ...
	Added      string
	Deprecated string

	// Signatures holds the usage forms shown on the namespace page, as
	// symbolic trees so implied namespace qualifiers can be stripped.
	Signatures []typesig.Node

	// Members are nested bindings (e.g. protocol methods). They render
	// inside the parent block and never carry their own anchor.
	Members []Var

	// Source location, used for source-uri links. Path is the
	// repository-relative path, File the path as recorded by the
	// extraction stage.
	Path string
	File string
	Line int

	// Platforms is the derived language visibility set. It is populated
	// only on projected views and recomputed on every slice.
	Platforms []Language
}

// Namespace is a named grouping of documented vars, identified by a
// fully-qualified dotted name.
type Namespace struct {
	Name       string
	Doc        string
	DocFormat  string
	Added      string
	Deprecated string
	Vars       []Var

	// Language and BaseLanguage are set on namespaces of cross-platform
	// projects and drive the output filename suffix.
	Language     Language
	BaseLanguage Language
}

// Filename returns the output filename for the namespace page, including the
// language suffix for non-base variants.
func (n *Namespace) Filename() (string, error) {
	suffix, err := n.Language.Suffix(n.BaseLanguage)
	if err != nil {
		return "", err
	}
	return n.Name + suffix + ".html", nil
}

// VarNamed returns the public var with the given name, if present.
func (n *Namespace) VarNamed(name string) (*Var, bool) {
	for i := range n.Vars {
		if n.Vars[i].Name == name {
			return &n.Vars[i], true
		}
	}
	return nil, false
}

// Document is a free-standing topic page.
type Document struct {
	Name    string // filename stem
	Title   string
	Content string
	Format  string
}

// Filename returns the output filename for the document page.
func (d *Document) Filename() string { return d.Name + ".html" }

// ThemeRef names a theme plus its optional parameter map, in application
// order. Params must be a key/value mapping; theme loading rejects anything
// else.
type ThemeRef struct {
	Name   string
	Params map[string]any
}

// Project is the immutable-per-render model. Derived per-language views are
// produced by the platform projector as copies.
type Project struct {
	Name        string
	Version     string
	Description string
	// DescriptionFormat is the doc-format tag for Description
	// ("markdown" | "plaintext" | registered extensions).
	DescriptionFormat string

	// SourceURI is the template for var source links; SourceRoot is the
	// directory whose enclosing git repository resolves {git-commit}.
	SourceURI  string
	SourceRoot string

	// Languages is the declared language set in priority order; empty for
	// single-language projects. BaseLanguage is the variant whose files
	// carry no suffix.
	Languages    []Language
	BaseLanguage Language

	// Language is set on projected per-language views and empty on the
	// full project.
	Language Language

	// Render-mode flags: whether the sidebar lists namespaces and whether
	// it lists platform variants.
	ShowNamespaces bool
	ShowPlatforms  bool

	Namespaces []Namespace
	Documents  []Document

	Themes   []ThemeRef
	ThemeDir string

	// ImpliedNamespaces are qualifier prefixes stripped from signature
	// trees in addition to the current namespace.
	ImpliedNamespaces []string
}

// CrossPlatform reports whether the project declares more than one language.
func (p *Project) CrossPlatform() bool { return len(p.Languages) > 1 }

// IndexFilename returns the index filename for this project or view: plain
// index.html for the full project and base-language views, suffixed for other
// language views.
func (p *Project) IndexFilename() (string, error) {
	suffix, err := p.Language.Suffix(p.BaseLanguage)
	if err != nil {
		return "", err
	}
	return "index" + suffix + ".html", nil
}

// NamespaceByName returns the namespace with the given name. Iteration order
// over Namespaces is the load-time name sort, so on cross-platform projects
// (where a logical name recurs once per language) the first variant in that
// order wins; projected views hold at most one variant per name.
func (p *Project) NamespaceByName(name string) (*Namespace, bool) {
	for i := range p.Namespaces {
		if p.Namespaces[i].Name == name {
			return &p.Namespaces[i], true
		}
	}
	return nil, false
}

// DocumentByName returns the document with the given name, if present.
func (p *Project) DocumentByName(name string) (*Document, bool) {
	for i := range p.Documents {
		if p.Documents[i].Name == name {
			return &p.Documents[i], true
		}
	}
	return nil, false
}

// Title returns the display title: "name version" or just the name.
func (p *Project) Title() string {
	if p.Version == "" {
		return p.Name
	}
	return p.Name + " " + p.Version
}

// Sort orders namespaces, vars, and documents by name so every downstream
// iteration is a deterministic total order. Languages keep their declared
// priority order and are never sorted.
func (p *Project) Sort() {
	sort.SliceStable(p.Namespaces, func(i, j int) bool {
		if p.Namespaces[i].Name != p.Namespaces[j].Name {
			return p.Namespaces[i].Name < p.Namespaces[j].Name
		}
		return p.Namespaces[i].Language < p.Namespaces[j].Language
	})
	for i := range p.Namespaces {
		vars := p.Namespaces[i].Vars
		sort.SliceStable(vars, func(a, b int) bool { return vars[a].Name < vars[b].Name })
	}
	sort.SliceStable(p.Documents, func(i, j int) bool { return p.Documents[i].Name < p.Documents[j].Name })
}

// Validate checks model invariants that have no safe fallback: every declared
// language (and every namespace language tag) must be known, the base
// language must be declared on cross-platform projects, and names must be
// unique within their partition.
func (p *Project) Validate() error {
	for _, l := range p.Languages {
		if _, err := l.Ext(); err != nil {
			return err
		}
	}
	if p.CrossPlatform() {
		if p.BaseLanguage == "" {
			return fmt.Errorf("cross-platform project %q declares no base language", p.Name)
		}
		declared := false
		for _, l := range p.Languages {
			if l == p.BaseLanguage {
				declared = true
				break
			}
		}
		if !declared {
			return fmt.Errorf("base language %q is not in the declared language set", p.BaseLanguage)
		}
	}
	seen := map[string]struct{}{}
	for i := range p.Namespaces {
		ns := &p.Namespaces[i]
		if strings.TrimSpace(ns.Name) == "" {
			return fmt.Errorf("namespace with empty name")
		}
		if ns.Language != "" {
			if _, err := ns.Language.Ext(); err != nil {
				return err
			}
		}
		key := string(ns.Language) + "\x00" + ns.Name
		if _, dup := seen[key]; dup {
			return fmt.Errorf("duplicate namespace %q in language partition %q", ns.Name, ns.Language)
		}
		seen[key] = struct{}{}

		vars := map[string]struct{}{}
		for j := range ns.Vars {
			name := ns.Vars[j].Name
			if _, dup := vars[name]; dup {
				return fmt.Errorf("duplicate var %q in namespace %q", name, ns.Name)
			}
			vars[name] = struct{}{}
		}
	}
	docs := map[string]struct{}{}
	for i := range p.Documents {
		name := p.Documents[i].Name
		if _, dup := docs[name]; dup {
			return fmt.Errorf("duplicate document %q", name)
		}
		docs[name] = struct{}{}
	}
	return nil
}
