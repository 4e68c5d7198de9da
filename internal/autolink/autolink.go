// Package autolink turns bare URLs in plaintext docstrings into anchors.
// URLs are lifted out before the text is HTML-escaped and swapped back in as
// <a> elements afterwards, so escaping never mangles the href.
package autolink

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// urlPattern matches http, https, ftp and file URLs. The final character
// class is narrower than the body so trailing punctuation stays out of the
// link.
var urlPattern = regexp.MustCompile(`(https?|ftp|file)://[-A-Za-z0-9+&@#/%?=~_|!:,.;]*[-A-Za-z0-9+&@#/%=~_|]`)

// Table records extracted URLs by placeholder index.
type Table []string

func placeholder(i int) string { return fmt.Sprintf("__ANCHOR_%d__", i) }

// Extract replaces every URL in text with an opaque placeholder and returns
// the rewritten text together with the extraction table. Placeholders are
// plain ASCII identifiers and survive HTML escaping untouched.
func Extract(text string) (string, Table) {
	var table Table
	out := urlPattern.ReplaceAllStringFunc(text, func(url string) string {
		table = append(table, url)
		return placeholder(len(table) - 1)
	})
	return out, table
}

// Substitute replaces the placeholders in escaped text with anchor elements
// linking to (and showing) the recorded URL, HTML-escaped.
func Substitute(text string, table Table) string {
	for i, url := range table {
		esc := html.EscapeString(url)
		anchor := fmt.Sprintf(`<a href="%s">%s</a>`, esc, esc)
		text = strings.Replace(text, placeholder(i), anchor, 1)
	}
	return text
}
