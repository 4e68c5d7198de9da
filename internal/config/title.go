package config

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// defaultTitle derives a display title from a document name:
// "getting-started" becomes "Getting Started".
func defaultTitle(name string) string {
	words := strings.NewReplacer("-", " ", "_", " ").Replace(name)
	return cases.Title(language.Und).String(words)
}
