// Package theme customizes rendered pages. A theme is a directory with a
// theme.yaml describing static resources to ship and an ordered list of DOM
// transforms to run over every page before it is written. Built-in themes
// register at init; on-disk themes under the project's theme-dir shadow
// built-ins of the same name.
package theme

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"text/template"

	"github.com/andybalholm/cascadia"
	"gopkg.in/yaml.v3"
)

// ErrThemeNotFound is returned when a referenced theme has no directory and
// no built-in registration. Referencing an unknown theme fails the run
// before any output is written.
var ErrThemeNotFound = errors.New("theme not found")

// Op is a DOM transform operation.
type Op string

const (
	OpAppend       Op = "append"
	OpPrepend      Op = "prepend"
	OpInsertAfter  Op = "insert-after"
	OpInsertBefore Op = "insert-before"
	OpReplace      Op = "replace"
)

// Valid reports whether the operation is one of the recognized five.
func (o Op) Valid() bool {
	switch o {
	case OpAppend, OpPrepend, OpInsertAfter, OpInsertBefore, OpReplace:
		return true
	}
	return false
}

// Transform is one DOM edit: the nodes matching Selector get the HTML
// fragments applied with Op.
type Transform struct {
	Selector string   `yaml:"selector"`
	Op       Op       `yaml:"op"`
	HTML     []string `yaml:"html"`
}

// Spec is the parsed theme.yaml.
type Spec struct {
	Name       string      `yaml:"name"`
	Resources  []string    `yaml:"resources"`
	Transforms []Transform `yaml:"transforms"`
}

// Theme couples a spec with the file source its resources are read from.
type Theme struct {
	Spec  Spec
	Files fs.FS
}

var (
	registryMu sync.RWMutex
	registry   = map[string]*Theme{}
)

// Register installs a built-in theme. Duplicate names are ignored.
func Register(t *Theme) {
	if t == nil || t.Spec.Name == "" {
		return
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[t.Spec.Name]; exists {
		return
	}
	registry[t.Spec.Name] = t
}

func lookup(name string) (*Theme, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	t, ok := registry[name]
	return t, ok
}

// Resolve returns the named theme, preferring a directory under themeDir
// over a built-in registration.
func Resolve(name, themeDir string) (*Theme, error) {
	if themeDir != "" {
		dir := filepath.Join(themeDir, name)
		if _, err := os.Stat(filepath.Join(dir, "theme.yaml")); err == nil {
			return LoadDir(dir)
		}
	}
	if t, ok := lookup(name); ok {
		return t, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrThemeNotFound, name)
}

// LoadDir reads and validates a theme from a directory holding theme.yaml.
func LoadDir(dir string) (*Theme, error) {
	data, err := os.ReadFile(filepath.Join(dir, "theme.yaml"))
	if err != nil {
		return nil, fmt.Errorf("read theme spec in %s: %w", dir, err)
	}
	spec, err := parseSpec(data)
	if err != nil {
		return nil, fmt.Errorf("theme in %s: %w", dir, err)
	}
	if spec.Name == "" {
		spec.Name = filepath.Base(dir)
	}
	return &Theme{Spec: spec, Files: os.DirFS(dir)}, nil
}

// loadFS reads a theme rooted at a filesystem, used for the embedded
// built-ins.
func loadFS(files fs.FS, fallbackName string) (*Theme, error) {
	data, err := fs.ReadFile(files, "theme.yaml")
	if err != nil {
		return nil, fmt.Errorf("read embedded theme spec: %w", err)
	}
	spec, err := parseSpec(data)
	if err != nil {
		return nil, err
	}
	if spec.Name == "" {
		spec.Name = fallbackName
	}
	return &Theme{Spec: spec, Files: files}, nil
}

// parseSpec decodes and validates theme.yaml. Selectors are compiled and ops
// checked here so a broken theme fails the run up front.
func parseSpec(data []byte) (Spec, error) {
	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return Spec{}, fmt.Errorf("parse theme spec: %w", err)
	}
	for i, tr := range spec.Transforms {
		if tr.Selector == "" {
			return Spec{}, fmt.Errorf("transform %d has no selector", i)
		}
		if _, err := cascadia.Compile(tr.Selector); err != nil {
			return Spec{}, fmt.Errorf("transform %d selector %q: %w", i, tr.Selector, err)
		}
		if !tr.Op.Valid() {
			return Spec{}, fmt.Errorf("transform %d has unknown op %q", i, tr.Op)
		}
	}
	return spec, nil
}

// Instantiate renders the theme's transform fragments with the given
// parameter map. Fragments are text templates; referencing a parameter the
// project does not set is an error rather than a silent blank.
func (t *Theme) Instantiate(params map[string]any) ([]Transform, error) {
	out := make([]Transform, len(t.Spec.Transforms))
	for i, tr := range t.Spec.Transforms {
		rendered := make([]string, len(tr.HTML))
		for j, frag := range tr.HTML {
			tpl, err := template.New("fragment").Option("missingkey=error").Parse(frag)
			if err != nil {
				return nil, fmt.Errorf("theme %s transform %d fragment %d: %w", t.Spec.Name, i, j, err)
			}
			var buf bytes.Buffer
			if err := tpl.Execute(&buf, params); err != nil {
				return nil, fmt.Errorf("theme %s transform %d fragment %d: %w", t.Spec.Name, i, j, err)
			}
			rendered[j] = buf.String()
		}
		out[i] = Transform{Selector: tr.Selector, Op: tr.Op, HTML: rendered}
	}
	return out, nil
}

// WriteResources copies the theme's declared resource files into outDir,
// creating intermediate directories as needed.
func (t *Theme) WriteResources(outDir string) error {
	for _, res := range t.Spec.Resources {
		data, err := fs.ReadFile(t.Files, res)
		if err != nil {
			return fmt.Errorf("theme %s resource %s: %w", t.Spec.Name, res, err)
		}
		dest := filepath.Join(outDir, filepath.FromSlash(res))
		if err := os.MkdirAll(filepath.Dir(dest), 0o750); err != nil {
			return fmt.Errorf("create resource directory for %s: %w", res, err)
		}
		if err := os.WriteFile(dest, data, 0o600); err != nil {
			return fmt.Errorf("write theme resource %s: %w", res, err)
		}
	}
	return nil
}
