package platform

import (
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/refdoc/internal/project"
)

func crossProject() *project.Project {
	p := &project.Project{
		Name:           "demo",
		Languages:      []project.Language{project.LangGo, project.LangPython},
		BaseLanguage:   project.LangGo,
		ShowPlatforms:  true,
		ShowNamespaces: true,
		Namespaces: []project.Namespace{
			{
				Name:     "demo.core",
				Language: project.LangGo,
				Vars:     []project.Var{{Name: "frob"}, {Name: "go-only"}},
			},
			{
				Name:     "demo.core",
				Language: project.LangPython,
				Vars:     []project.Var{{Name: "frob"}},
			},
			{
				Name:     "demo.pyutil",
				Language: project.LangPython,
				Vars:     []project.Var{{Name: "zip"}},
			},
		},
	}
	p.Sort()
	return p
}

func TestViewFiltersAndStamps(t *testing.T) {
	p := crossProject()
	view, err := View(p, project.LangPython)
	require.NoError(t, err)

	require.Equal(t, project.LangPython, view.Language)
	require.True(t, view.ShowNamespaces)
	require.False(t, view.ShowPlatforms)

	require.Len(t, view.Namespaces, 2)
	for _, ns := range view.Namespaces {
		require.Equal(t, project.LangPython, ns.Language)
		require.Equal(t, project.LangGo, ns.BaseLanguage)
	}

	name, err := view.IndexFilename()
	require.NoError(t, err)
	require.Equal(t, "index.py.html", name)
}

func TestViewRecomputesVarVisibility(t *testing.T) {
	p := crossProject()
	view, err := View(p, project.LangGo)
	require.NoError(t, err)

	core, ok := view.NamespaceByName("demo.core")
	require.True(t, ok)

	frob, ok := core.VarNamed("frob")
	require.True(t, ok)
	require.Equal(t, []project.Language{project.LangGo, project.LangPython}, frob.Platforms)

	goOnly, ok := core.VarNamed("go-only")
	require.True(t, ok)
	require.Equal(t, []project.Language{project.LangGo}, goOnly.Platforms)
}

func TestViewLeavesFullProjectUntouched(t *testing.T) {
	p := crossProject()
	_, err := View(p, project.LangPython)
	require.NoError(t, err)

	for _, ns := range p.Namespaces {
		for _, v := range ns.Vars {
			require.Nil(t, v.Platforms, "projection must not write into the full project")
		}
	}
	require.True(t, p.ShowPlatforms)
	require.Equal(t, project.Language(""), p.Language)
}

func TestViewRejectsUnknownLanguage(t *testing.T) {
	_, err := View(crossProject(), project.Language("cobol"))
	require.ErrorIs(t, err, project.ErrUnexpectedLanguage)
}

func TestPlatformOrderFollowsDeclaredPriority(t *testing.T) {
	p := crossProject()
	// Flip priority so python outranks go.
	p.Languages = []project.Language{project.LangPython, project.LangGo}

	view, err := View(p, project.LangGo)
	require.NoError(t, err)
	core, _ := view.NamespaceByName("demo.core")
	frob, _ := core.VarNamed("frob")
	require.Equal(t, []project.Language{project.LangPython, project.LangGo}, frob.Platforms)
}
