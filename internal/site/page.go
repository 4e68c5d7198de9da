package site

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"

	"git.home.luguber.info/inful/refdoc/internal/docstring"
	"git.home.luguber.info/inful/refdoc/internal/markdown"
	"git.home.luguber.info/inful/refdoc/internal/observability"
	"git.home.luguber.info/inful/refdoc/internal/platform"
	"git.home.luguber.info/inful/refdoc/internal/project"
	"git.home.luguber.info/inful/refdoc/internal/scm"
	"git.home.luguber.info/inful/refdoc/internal/typesig"
	"git.home.luguber.info/inful/refdoc/internal/xref"
)

// page is one output file plus the data its templates render from.
type page struct {
	File string
	Data *pageData
}

// pageData feeds the layout template. Exactly one of Index, Namespace, and
// Document is set.
type pageData struct {
	Title          string
	ProjectName    string
	ProjectVersion string
	IndexFile      string
	ContentClass   string
	Platforms      []platformLink
	Primary        *primarySidebar
	Secondary      *secondarySidebar
	Index          *indexData
	Namespace      *namespaceData
	Document       *documentData
}

type platformLink struct {
	Label   string
	Href    string
	Current bool
}

type indexData struct {
	Title       string
	Description template.HTML
	Documents   []docLink
	Namespaces  []indexNamespace
}

type docLink struct {
	Title string
	Href  string
}

type indexNamespace struct {
	Name    string
	Href    string
	Summary template.HTML
	Vars    []varLink
}

type varLink struct {
	Name string
	Href string
}

type namespaceData struct {
	Name    string
	Notices []string
	Doc     template.HTML
	Vars    []varData
}

type varData struct {
	ID         string // empty for members
	Name       string
	Kind       string
	Notices    []string
	Platforms  []string
	Usage      []string
	Doc        template.HTML
	Members    []varData
	SourceHref string
}

type documentData struct {
	Content template.HTML
}

// assemblePages produces every output page in deterministic order: the
// aggregate index, one page set per declared language, and the topic
// documents. Documents are written once, from the unprojected project.
func assemblePages(ctx context.Context, p *project.Project, commit string) ([]page, error) {
	var pages []page

	idx, err := indexPage(ctx, p)
	if err != nil {
		return nil, err
	}
	pages = append(pages, idx)

	if p.CrossPlatform() {
		for _, lang := range p.Languages {
			view, err := platform.View(p, lang)
			if err != nil {
				return nil, err
			}
			vctx := observability.WithLanguage(ctx, string(lang))
			if lang != p.BaseLanguage {
				vidx, err := indexPage(vctx, view)
				if err != nil {
					return nil, err
				}
				pages = append(pages, vidx)
			}
			nsPages, err := namespacePages(vctx, view, commit)
			if err != nil {
				return nil, err
			}
			pages = append(pages, nsPages...)
		}
	} else {
		nsPages, err := namespacePages(ctx, p, commit)
		if err != nil {
			return nil, err
		}
		pages = append(pages, nsPages...)
	}

	docPages, err := documentPages(ctx, p)
	if err != nil {
		return nil, err
	}
	pages = append(pages, docPages...)

	return pages, nil
}

// indexPage renders the namespace index of a project or of one projected
// view. The platform menu only appears when the view flags ask for it, which
// in practice means the aggregate index of a cross-platform project.
func indexPage(ctx context.Context, p *project.Project) (page, error) {
	file, err := p.IndexFilename()
	if err != nil {
		return page{}, err
	}

	md := markdown.New(xref.New(p, nil))
	desc, err := docstring.Format(p.DescriptionFormat, p.Description, md)
	if err != nil {
		return page{}, fmt.Errorf("project description: %w", err)
	}

	data := &indexData{Title: p.Title(), Description: template.HTML(desc)}
	for i := range p.Documents {
		d := &p.Documents[i]
		data.Documents = append(data.Documents, docLink{Title: d.Title, Href: d.Filename()})
	}
	for _, ns := range menuNamespaces(p) {
		entry, err := indexNamespaceEntry(p, ns)
		if err != nil {
			return page{}, fmt.Errorf("namespace %s: %w", ns.Name, err)
		}
		data.Namespaces = append(data.Namespaces, entry)
	}

	primary, err := buildPrimarySidebar(p, file, file)
	if err != nil {
		return page{}, err
	}
	pd := &pageData{
		Title:          p.Title() + " API documentation",
		ProjectName:    p.Name,
		ProjectVersion: p.Version,
		IndexFile:      file,
		ContentClass:   "namespace-index",
		Primary:        primary,
		Index:          data,
	}
	if p.ShowPlatforms {
		links, err := platformLinks(p, file)
		if err != nil {
			return page{}, err
		}
		pd.Platforms = links
	}
	return page{File: file, Data: pd}, nil
}

func indexNamespaceEntry(p *project.Project, ns *project.Namespace) (indexNamespace, error) {
	file, err := ns.Filename()
	if err != nil {
		return indexNamespace{}, err
	}
	summary := docstring.Summary(ns.Doc)
	rendered, err := docstring.Format(ns.DocFormat, summary, markdown.New(xref.New(p, ns)))
	if err != nil {
		return indexNamespace{}, err
	}
	entry := indexNamespace{Name: ns.Name, Href: file, Summary: template.HTML(rendered)}
	for i := range ns.Vars {
		name := ns.Vars[i].Name
		entry.Vars = append(entry.Vars, varLink{Name: name, Href: file + "#" + xref.VarID(name)})
	}
	return entry, nil
}

// platformLinks builds the language switcher of the aggregate index. The
// base language points at the aggregate itself; other languages point at
// their suffixed index pages.
func platformLinks(p *project.Project, current string) ([]platformLink, error) {
	var out []platformLink
	for _, lang := range p.Languages {
		href := "index.html"
		if lang != p.BaseLanguage {
			ext, err := lang.Ext()
			if err != nil {
				return nil, err
			}
			href = "index." + ext + ".html"
		}
		out = append(out, platformLink{Label: string(lang), Href: href, Current: href == current})
	}
	return out, nil
}

func namespacePages(ctx context.Context, p *project.Project, commit string) ([]page, error) {
	indexFile, err := p.IndexFilename()
	if err != nil {
		return nil, err
	}
	var pages []page
	for i := range p.Namespaces {
		ns := &p.Namespaces[i]
		pg, err := namespacePage(ctx, p, ns, indexFile, commit)
		if err != nil {
			return nil, fmt.Errorf("namespace %s: %w", ns.Name, err)
		}
		pages = append(pages, pg)
	}
	return pages, nil
}

func namespacePage(ctx context.Context, p *project.Project, ns *project.Namespace, indexFile, commit string) (page, error) {
	file, err := ns.Filename()
	if err != nil {
		return page{}, err
	}
	ctx = observability.WithPage(ctx, file)

	md := markdown.New(xref.New(p, ns))
	doc, err := docstring.Format(ns.DocFormat, ns.Doc, md)
	if err != nil {
		return page{}, err
	}

	data := &namespaceData{
		Name:    ns.Name,
		Notices: notices(ns.Added, ns.Deprecated),
		Doc:     template.HTML(doc),
	}
	implied := append([]string{ns.Name}, p.ImpliedNamespaces...)
	for i := range ns.Vars {
		vd, err := buildVarData(ctx, p, &ns.Vars[i], md, implied, commit, true)
		if err != nil {
			return page{}, err
		}
		data.Vars = append(data.Vars, vd)
	}

	primary, err := buildPrimarySidebar(p, indexFile, file)
	if err != nil {
		return page{}, err
	}
	pd := &pageData{
		Title:          ns.Name + " documentation",
		ProjectName:    p.Name,
		ProjectVersion: p.Version,
		IndexFile:      indexFile,
		ContentClass:   "namespace-docs",
		Primary:        primary,
		Secondary:      buildSecondarySidebar(ns),
		Namespace:      data,
	}
	return page{File: file, Data: pd}, nil
}

func buildVarData(ctx context.Context, p *project.Project, v *project.Var, md *markdown.Renderer, implied []string, commit string, anchored bool) (varData, error) {
	vd := varData{
		Name:    v.Name,
		Kind:    v.Kind,
		Notices: notices(v.Added, v.Deprecated),
	}
	if anchored {
		vd.ID = xref.VarID(v.Name)
	}
	for _, l := range v.Platforms {
		vd.Platforms = append(vd.Platforms, string(l))
	}
	for _, sig := range v.Signatures {
		vd.Usage = append(vd.Usage, typesig.StripImplied(sig, implied).String())
	}
	doc, err := docstring.Format(v.DocFormat, v.Doc, md)
	if err != nil {
		return varData{}, fmt.Errorf("var %s: %w", v.Name, err)
	}
	vd.Doc = template.HTML(doc)
	vd.SourceHref = sourceLink(ctx, p, v, commit, anchored)
	for i := range v.Members {
		member, err := buildVarData(ctx, p, &v.Members[i], md, implied, commit, false)
		if err != nil {
			return varData{}, err
		}
		vd.Members = append(vd.Members, member)
	}
	return vd, nil
}

// sourceLink expands the project source-uri for one var. A var without any
// source location gets no link; top-level vars additionally log a warning so
// the gap is visible. An unresolved {git-commit} skips the link quietly, the
// prepare stage has already warned about the repository.
func sourceLink(ctx context.Context, p *project.Project, v *project.Var, commit string, warn bool) string {
	if p.SourceURI == "" {
		return ""
	}
	if v.Path == "" && v.File == "" {
		if warn {
			observability.WarnContext(ctx, "var has no source path, skipping source link",
				slog.String("var", v.Name))
		}
		return ""
	}
	if scm.UsesCommit(p.SourceURI) && commit == "" {
		return ""
	}
	return scm.ExpandSourceURI(p.SourceURI, p, v, commit)
}

// notices renders the added/deprecated annotations of a namespace or var as
// display lines.
func notices(added, deprecated string) []string {
	var out []string
	if deprecated != "" {
		if deprecated == "true" {
			out = append(out, "deprecated")
		} else {
			out = append(out, "deprecated since "+deprecated)
		}
	}
	if added != "" {
		out = append(out, "added in "+added)
	}
	return out
}

func documentPages(ctx context.Context, p *project.Project) ([]page, error) {
	indexFile, err := p.IndexFilename()
	if err != nil {
		return nil, err
	}
	var pages []page
	for i := range p.Documents {
		d := &p.Documents[i]
		file := d.Filename()

		md := markdown.New(xref.New(p, nil))
		content, err := docstring.Format(d.Format, d.Content, md)
		if err != nil {
			return nil, fmt.Errorf("document %s: %w", d.Name, err)
		}
		primary, err := buildPrimarySidebar(p, indexFile, file)
		if err != nil {
			return nil, err
		}
		pd := &pageData{
			Title:          d.Title,
			ProjectName:    p.Name,
			ProjectVersion: p.Version,
			IndexFile:      indexFile,
			ContentClass:   "document-page",
			Primary:        primary,
			Document:       &documentData{Content: template.HTML(content)},
		}
		pages = append(pages, page{File: file, Data: pd})
	}
	return pages, nil
}
