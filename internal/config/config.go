// Package config loads the project definition file and turns it into the
// in-memory model the generator renders. Values in the YAML may reference
// environment variables; a handful of REFDOC_* variables override settings
// after parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/refdoc/internal/project"
	"git.home.luguber.info/inful/refdoc/internal/typesig"
)

// File mirrors the project definition YAML (refdoc.yaml).
type File struct {
	Name              string   `yaml:"name"`
	Version           string   `yaml:"version"`
	Description       string   `yaml:"description,omitempty"`
	DescriptionFormat string   `yaml:"description-format,omitempty"`
	SourceURI         string   `yaml:"source-uri,omitempty"`
	SourceRoot        string   `yaml:"source-root,omitempty"`
	Languages         []string `yaml:"languages,omitempty"`
	BaseLanguage      string   `yaml:"base-language,omitempty"`

	Themes   []ThemeEntry `yaml:"themes,omitempty"`
	ThemeDir string       `yaml:"theme-dir,omitempty"`
	Output   string       `yaml:"output,omitempty"`

	ImpliedNamespaces []string `yaml:"implied-namespaces,omitempty"`

	Documents []DocumentEntry `yaml:"documents,omitempty"`

	// Namespaces is the flat list for single-language projects; Platforms
	// holds per-language groups for cross-platform ones. The two are
	// mutually exclusive.
	Namespaces []NamespaceEntry `yaml:"namespaces,omitempty"`
	Platforms  []PlatformEntry  `yaml:"platforms,omitempty"`
}

// ThemeEntry is a theme reference: either a bare name or a mapping with a
// name and a parameter map.
type ThemeEntry struct {
	Name   string
	Params map[string]any
}

// UnmarshalYAML accepts the two reference forms and rejects parameter values
// that are not a key/value mapping.
func (t *ThemeEntry) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		return value.Decode(&t.Name)
	case yaml.MappingNode:
		var raw struct {
			Name   string    `yaml:"name"`
			Params yaml.Node `yaml:"params"`
		}
		if err := value.Decode(&raw); err != nil {
			return err
		}
		if raw.Name == "" {
			return errors.New("theme entry has no name")
		}
		t.Name = raw.Name
		if !raw.Params.IsZero() {
			if raw.Params.Kind != yaml.MappingNode {
				return fmt.Errorf("theme %q params must be a mapping", raw.Name)
			}
			if err := raw.Params.Decode(&t.Params); err != nil {
				return err
			}
		}
		return nil
	default:
		return errors.New("theme entry must be a name or a mapping")
	}
}

// MarshalYAML writes the short form when the entry carries no params.
func (t ThemeEntry) MarshalYAML() (any, error) {
	if len(t.Params) == 0 {
		return t.Name, nil
	}
	return struct {
		Name   string         `yaml:"name"`
		Params map[string]any `yaml:"params"`
	}{t.Name, t.Params}, nil
}

// DocumentEntry describes a topic page, with inline content or a file
// reference relative to the configuration file.
type DocumentEntry struct {
	Name    string `yaml:"name,omitempty"`
	Title   string `yaml:"title,omitempty"`
	File    string `yaml:"file,omitempty"`
	Content string `yaml:"content,omitempty"`
	Format  string `yaml:"format,omitempty"`
}

// NamespaceEntry mirrors one namespace block.
type NamespaceEntry struct {
	Name       string     `yaml:"name"`
	Doc        string     `yaml:"doc,omitempty"`
	Format     string     `yaml:"format,omitempty"`
	Added      string     `yaml:"added,omitempty"`
	Deprecated string     `yaml:"deprecated,omitempty"`
	Vars       []VarEntry `yaml:"vars,omitempty"`
}

// VarEntry mirrors one public var block.
type VarEntry struct {
	Name       string     `yaml:"name"`
	Doc        string     `yaml:"doc,omitempty"`
	Format     string     `yaml:"format,omitempty"`
	Kind       string     `yaml:"kind,omitempty"`
	Added      string     `yaml:"added,omitempty"`
	Deprecated string     `yaml:"deprecated,omitempty"`
	Signatures any        `yaml:"signatures,omitempty"`
	Members    []VarEntry `yaml:"members,omitempty"`
	Path       string     `yaml:"path,omitempty"`
	File       string     `yaml:"file,omitempty"`
	Line       int        `yaml:"line,omitempty"`
}

// PlatformEntry groups the namespaces documented for one language.
type PlatformEntry struct {
	Language   string           `yaml:"language"`
	Namespaces []NamespaceEntry `yaml:"namespaces"`
}

// Settings is the loaded configuration: the project model plus run settings
// that live outside it.
type Settings struct {
	Project *project.Project
	Output  string
}

// Load reads, expands, and validates a project definition. All relative
// paths in the file (source root, theme dir, document files, output) resolve
// against the file's directory.
func Load(path string) (*Settings, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read configuration: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var f File
	if err := yaml.Unmarshal([]byte(expanded), &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	settings, err := f.build(filepath.Dir(path))
	if err != nil {
		return nil, err
	}
	applyEnv(settings)

	settings.Project.Sort()
	if err := settings.Project.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

func (f *File) build(baseDir string) (*Settings, error) {
	if strings.TrimSpace(f.Name) == "" {
		return nil, errors.New("project has no name")
	}
	if len(f.Namespaces) > 0 && len(f.Platforms) > 0 {
		return nil, errors.New("namespaces and platforms are mutually exclusive")
	}

	p := &project.Project{
		Name:              f.Name,
		Version:           f.Version,
		Description:       f.Description,
		DescriptionFormat: f.DescriptionFormat,
		SourceURI:         f.SourceURI,
		SourceRoot:        resolvePath(baseDir, defaultString(f.SourceRoot, ".")),
		ImpliedNamespaces: f.ImpliedNamespaces,
		ShowNamespaces:    true,
	}

	langs, err := parseLanguages(f)
	if err != nil {
		return nil, err
	}
	p.Languages = langs
	if f.BaseLanguage != "" {
		base := project.NormalizeLanguage(f.BaseLanguage)
		if base == "" {
			return nil, fmt.Errorf("%w: %s", project.ErrUnexpectedLanguage, f.BaseLanguage)
		}
		p.BaseLanguage = base
	}
	p.ShowPlatforms = p.CrossPlatform()

	if err := buildNamespaces(f, p); err != nil {
		return nil, err
	}
	if err := buildDocuments(f, p, baseDir); err != nil {
		return nil, err
	}

	p.Themes = buildThemes(f.Themes)
	if f.ThemeDir != "" {
		p.ThemeDir = resolvePath(baseDir, f.ThemeDir)
	}

	return &Settings{
		Project: p,
		Output:  resolvePath(baseDir, defaultString(f.Output, "target/doc")),
	}, nil
}

func parseLanguages(f *File) ([]project.Language, error) {
	declared := f.Languages
	if len(declared) == 0 {
		for _, pl := range f.Platforms {
			declared = append(declared, pl.Language)
		}
	}
	out := make([]project.Language, 0, len(declared))
	for _, raw := range declared {
		lang := project.NormalizeLanguage(raw)
		if lang == "" {
			return nil, fmt.Errorf("%w: %s", project.ErrUnexpectedLanguage, raw)
		}
		out = append(out, lang)
	}
	return out, nil
}

func buildNamespaces(f *File, p *project.Project) error {
	add := func(entries []NamespaceEntry, lang project.Language) error {
		for _, e := range entries {
			ns, err := buildNamespace(e, lang, p.BaseLanguage)
			if err != nil {
				return err
			}
			p.Namespaces = append(p.Namespaces, ns)
		}
		return nil
	}

	if len(f.Platforms) == 0 {
		return add(f.Namespaces, "")
	}
	for _, pl := range f.Platforms {
		lang := project.NormalizeLanguage(pl.Language)
		if lang == "" {
			return fmt.Errorf("%w: %s", project.ErrUnexpectedLanguage, pl.Language)
		}
		if err := add(pl.Namespaces, lang); err != nil {
			return err
		}
	}
	return nil
}

func buildNamespace(e NamespaceEntry, lang, base project.Language) (project.Namespace, error) {
	ns := project.Namespace{
		Name:         e.Name,
		Doc:          e.Doc,
		DocFormat:    e.Format,
		Added:        e.Added,
		Deprecated:   e.Deprecated,
		Language:     lang,
		BaseLanguage: base,
	}
	for _, v := range e.Vars {
		pv, err := buildVar(v, e.Name)
		if err != nil {
			return project.Namespace{}, err
		}
		ns.Vars = append(ns.Vars, pv)
	}
	return ns, nil
}

func buildVar(e VarEntry, nsName string) (project.Var, error) {
	v := project.Var{
		Name:       e.Name,
		Doc:        e.Doc,
		DocFormat:  e.Format,
		Kind:       e.Kind,
		Added:      e.Added,
		Deprecated: e.Deprecated,
		Path:       e.Path,
		File:       e.File,
		Line:       e.Line,
	}
	sigs, err := typesig.ParseList(e.Signatures)
	if err != nil {
		return project.Var{}, fmt.Errorf("var %s in %s: %w", e.Name, nsName, err)
	}
	v.Signatures = sigs
	for _, m := range e.Members {
		member, err := buildVar(m, nsName)
		if err != nil {
			return project.Var{}, err
		}
		v.Members = append(v.Members, member)
	}
	return v, nil
}

func buildDocuments(f *File, p *project.Project, baseDir string) error {
	for i, e := range f.Documents {
		doc, err := buildDocument(e, baseDir)
		if err != nil {
			return fmt.Errorf("document %d: %w", i, err)
		}
		p.Documents = append(p.Documents, doc)
	}
	return nil
}

func buildDocument(e DocumentEntry, baseDir string) (project.Document, error) {
	content := e.Content
	if e.File != "" {
		if content != "" {
			return project.Document{}, errors.New("has both file and inline content")
		}
		data, err := os.ReadFile(resolvePath(baseDir, e.File))
		if err != nil {
			return project.Document{}, fmt.Errorf("read %s: %w", e.File, err)
		}
		content = string(data)
	}

	name := e.Name
	if name == "" {
		if e.File == "" {
			return project.Document{}, errors.New("has neither name nor file")
		}
		name = strings.TrimSuffix(filepath.Base(e.File), filepath.Ext(e.File))
	}

	title := e.Title
	if title == "" {
		title = defaultTitle(name)
	}

	format := e.Format
	if format == "" {
		format = "markdown"
	}

	return project.Document{Name: name, Title: title, Content: content, Format: format}, nil
}

func buildThemes(entries []ThemeEntry) []project.ThemeRef {
	if len(entries) == 0 {
		return []project.ThemeRef{{Name: "default"}}
	}
	out := make([]project.ThemeRef, len(entries))
	for i, e := range entries {
		out[i] = project.ThemeRef{Name: e.Name, Params: e.Params}
	}
	return out
}

func resolvePath(baseDir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(baseDir, p)
}

func defaultString(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
