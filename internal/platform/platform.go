// Package platform derives per-language views of a cross-platform project.
// A view carries only the namespaces documented for that language, stamped so
// filename suffixes and sidebar rendering come out right, with every var's
// language visibility recomputed from scratch.
package platform

import (
	"git.home.luguber.info/inful/refdoc/internal/project"
)

// View returns the rendering view of p for one declared language. The full
// project is never mutated; namespaces and vars are copied before stamping.
func View(p *project.Project, lang project.Language) (*project.Project, error) {
	if _, err := lang.Ext(); err != nil {
		return nil, err
	}

	view := *p
	view.Language = lang
	view.ShowNamespaces = true
	view.ShowPlatforms = false
	view.Namespaces = sliceNamespaces(p, lang)
	return &view, nil
}

func sliceNamespaces(p *project.Project, lang project.Language) []project.Namespace {
	var out []project.Namespace
	for i := range p.Namespaces {
		if p.Namespaces[i].Language != lang {
			continue
		}
		ns := p.Namespaces[i]
		ns.BaseLanguage = p.BaseLanguage
		ns.Vars = sliceVars(p, ns.Name, ns.Vars)
		out = append(out, ns)
	}
	return out
}

func sliceVars(p *project.Project, nsName string, vars []project.Var) []project.Var {
	out := make([]project.Var, len(vars))
	for i, v := range vars {
		v.Platforms = varPlatforms(p, nsName, v.Name)
		out[i] = v
	}
	return out
}

// varPlatforms lists the declared languages that document the named var, in
// declared priority order. A var only shows up on platforms where its
// namespace variant actually defines it.
func varPlatforms(p *project.Project, nsName, varName string) []project.Language {
	var out []project.Language
	for _, lang := range p.Languages {
		if hasVar(p, lang, nsName, varName) {
			out = append(out, lang)
		}
	}
	return out
}

func hasVar(p *project.Project, lang project.Language, nsName, varName string) bool {
	for i := range p.Namespaces {
		ns := &p.Namespaces[i]
		if ns.Language != lang || ns.Name != nsName {
			continue
		}
		_, ok := ns.VarNamed(varName)
		return ok
	}
	return false
}
