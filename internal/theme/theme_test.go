package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTheme(t *testing.T, root, name, spec string) string {
	t.Helper()
	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(dir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "theme.yaml"), []byte(spec), 0o600))
	return dir
}

func TestResolveBuiltinDefault(t *testing.T) {
	th, err := Resolve("default", "")
	require.NoError(t, err)
	require.Equal(t, "default", th.Spec.Name)
	require.NotEmpty(t, th.Spec.Resources)
	require.NotEmpty(t, th.Spec.Transforms)
}

func TestResolveUnknownTheme(t *testing.T) {
	_, err := Resolve("no-such-theme", "")
	require.ErrorIs(t, err, ErrThemeNotFound)
	require.Contains(t, err.Error(), "no-such-theme")
}

func TestResolveFromThemeDir(t *testing.T) {
	root := t.TempDir()
	writeTheme(t, root, "corporate", `
name: corporate
transforms:
  - selector: body
    op: prepend
    html:
      - '<div id="banner">internal</div>'
`)
	th, err := Resolve("corporate", root)
	require.NoError(t, err)
	require.Equal(t, "corporate", th.Spec.Name)
	require.Equal(t, OpPrepend, th.Spec.Transforms[0].Op)
}

func TestThemeDirShadowsBuiltin(t *testing.T) {
	root := t.TempDir()
	writeTheme(t, root, "default", `
transforms:
  - selector: body
    op: append
    html: ['<p id="shadowed">x</p>']
`)
	th, err := Resolve("default", root)
	require.NoError(t, err)
	// Name defaulted from the directory, spec taken from disk.
	require.Equal(t, "default", th.Spec.Name)
	require.Empty(t, th.Spec.Resources)
}

func TestLoadDirRejectsUnknownOp(t *testing.T) {
	root := t.TempDir()
	dir := writeTheme(t, root, "broken", `
name: broken
transforms:
  - selector: body
    op: swap
    html: ['<p>x</p>']
`)
	_, err := LoadDir(dir)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown op")
}

func TestLoadDirRejectsBadSelector(t *testing.T) {
	root := t.TempDir()
	dir := writeTheme(t, root, "broken", `
name: broken
transforms:
  - selector: "p["
    op: append
    html: ['<p>x</p>']
`)
	_, err := LoadDir(dir)
	require.Error(t, err)
}

func TestInstantiateSubstitutesParams(t *testing.T) {
	th := &Theme{Spec: Spec{
		Name: "param",
		Transforms: []Transform{
			{Selector: "head", Op: OpAppend, HTML: []string{`<link rel="icon" href="{{.icon}}">`}},
		},
	}}
	trs, err := th.Instantiate(map[string]any{"icon": "favicon.png"})
	require.NoError(t, err)
	require.Equal(t, `<link rel="icon" href="favicon.png">`, trs[0].HTML[0])
}

func TestInstantiateMissingParamFails(t *testing.T) {
	th := &Theme{Spec: Spec{
		Name: "param",
		Transforms: []Transform{
			{Selector: "head", Op: OpAppend, HTML: []string{`<link href="{{.icon}}">`}},
		},
	}}
	_, err := th.Instantiate(map[string]any{})
	require.Error(t, err)
}

func TestInstantiatePlainFragmentsNeedNoParams(t *testing.T) {
	th, err := Resolve("default", "")
	require.NoError(t, err)
	trs, err := th.Instantiate(nil)
	require.NoError(t, err)
	require.NotEmpty(t, trs)
}

func TestWriteResources(t *testing.T) {
	th, err := Resolve("default", "")
	require.NoError(t, err)

	out := t.TempDir()
	require.NoError(t, th.WriteResources(out))

	data, err := os.ReadFile(filepath.Join(out, "css", "default.css"))
	require.NoError(t, err)
	require.NotEmpty(t, data)
}

func TestDefaultThemeInjectsStylesheet(t *testing.T) {
	th, err := Resolve("default", "")
	require.NoError(t, err)
	trs, err := th.Instantiate(nil)
	require.NoError(t, err)

	out, err := Apply(`<!DOCTYPE html><html><head><title>x</title></head><body></body></html>`, trs)
	require.NoError(t, err)
	require.Contains(t, out, `<link rel="stylesheet" type="text/css" href="css/default.css"/>`)
}
