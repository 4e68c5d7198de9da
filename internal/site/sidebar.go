package site

import (
	"git.home.luguber.info/inful/refdoc/internal/hierarchy"
	"git.home.luguber.info/inful/refdoc/internal/project"
	"git.home.luguber.info/inful/refdoc/internal/xref"
)

// sidebarEntry is one row of a navigation list. Entries without an Href are
// synthetic tree nodes and render unlinked.
type sidebarEntry struct {
	Depth   int
	Height  int
	Branch  bool
	Current bool
	Href    string
	Label   string
}

type primarySidebar struct {
	IndexEntries []sidebarEntry
	Topics       []sidebarEntry
	Namespaces   []sidebarEntry
}

type secondarySidebar struct {
	Entries []sidebarEntry
}

// menuNamespaces returns the namespaces presented on pages of this project
// or view. The aggregate pages of a cross-platform project show the base
// language variant; projected views hold exactly one variant per name and
// show all of them.
func menuNamespaces(p *project.Project) []*project.Namespace {
	var out []*project.Namespace
	for i := range p.Namespaces {
		ns := &p.Namespaces[i]
		if p.Language == "" && p.CrossPlatform() && ns.Language != p.BaseLanguage {
			continue
		}
		out = append(out, ns)
	}
	return out
}

// buildPrimarySidebar lays out the left navigation: the index link, the
// topic documents, and the namespace tree. currentFile marks the entry of
// the page being rendered.
func buildPrimarySidebar(p *project.Project, indexFile, currentFile string) (*primarySidebar, error) {
	sb := &primarySidebar{
		IndexEntries: []sidebarEntry{{
			Depth:   1,
			Label:   "Index",
			Href:    indexFile,
			Current: indexFile == currentFile,
		}},
	}
	for i := range p.Documents {
		d := &p.Documents[i]
		href := d.Filename()
		sb.Topics = append(sb.Topics, sidebarEntry{
			Depth:   1,
			Label:   d.Title,
			Href:    href,
			Current: href == currentFile,
		})
	}
	if !p.ShowNamespaces {
		return sb, nil
	}

	visible := menuNamespaces(p)
	byName := make(map[string]*project.Namespace, len(visible))
	names := make([]string, 0, len(visible))
	for _, ns := range visible {
		byName[ns.Name] = ns
		names = append(names, ns.Name)
	}
	for _, node := range hierarchy.Build(names) {
		e := sidebarEntry{
			Depth:  node.Depth,
			Height: node.Height,
			Branch: node.Branch,
			Label:  node.Tail(),
		}
		if ns, ok := byName[node.Name]; ok {
			file, err := ns.Filename()
			if err != nil {
				return nil, err
			}
			e.Href = file
			e.Current = file == currentFile
		}
		sb.Namespaces = append(sb.Namespaces, e)
	}
	return sb, nil
}

// buildSecondarySidebar lists the public vars of the namespace being
// rendered. Members nest one level below their parent and share its anchor,
// since member blocks carry no anchor of their own.
func buildSecondarySidebar(ns *project.Namespace) *secondarySidebar {
	sb := &secondarySidebar{}
	for i := range ns.Vars {
		v := &ns.Vars[i]
		href := "#" + xref.VarID(v.Name)
		sb.Entries = append(sb.Entries, sidebarEntry{Depth: 1, Label: v.Name, Href: href})
		for j := range v.Members {
			sb.Entries = append(sb.Entries, sidebarEntry{
				Depth:  2,
				Branch: j < len(v.Members)-1,
				Label:  v.Members[j].Name,
				Href:   href,
			})
		}
	}
	return sb
}
