package project

import (
	"errors"
	"fmt"
	"strings"
)

// Language identifies a source-language variant of a cross-platform project.
type Language string

const (
	LangGo         Language = "go"
	LangPython     Language = "python"
	LangTypeScript Language = "typescript"
	LangJava       Language = "java"
	LangRuby       Language = "ruby"
	LangCSharp     Language = "csharp"
)

// ErrUnexpectedLanguage is returned when a language identifier is not in the
// supported set. Filename suffix derivation has no safe default, so callers
// must treat this as fatal for the whole run.
var ErrUnexpectedLanguage = errors.New("unexpected language")

// languageExts maps each supported language to the short extension tag used
// in generated filenames for non-base languages (e.g. "acme.core.py.html").
var languageExts = map[Language]string{
	LangGo:         "go",
	LangPython:     "py",
	LangTypeScript: "ts",
	LangJava:       "java",
	LangRuby:       "rb",
	LangCSharp:     "cs",
}

// NormalizeLanguage canonicalizes a raw language string (case-insensitive),
// returning "" if the value is unknown.
func NormalizeLanguage(raw string) Language {
	l := Language(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := languageExts[l]; ok {
		return l
	}
	return ""
}

// Ext returns the filename extension tag for the language.
func (l Language) Ext() (string, error) {
	if ext, ok := languageExts[l]; ok {
		return ext, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnexpectedLanguage, string(l))
}

// Suffix returns the filename suffix for the language relative to base:
// empty for the base language (and for single-language projects, where the
// language is unset), "." + extension tag otherwise.
func (l Language) Suffix(base Language) (string, error) {
	if l == "" || l == base {
		return "", nil
	}
	ext, err := l.Ext()
	if err != nil {
		return "", err
	}
	return "." + ext, nil
}
