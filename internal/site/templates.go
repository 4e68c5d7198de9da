package site

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// treeRowHeight is the rendered height of one sidebar row; the connector
// offsets in treeSpan are derived from it and must stay in sync with the
// default stylesheet.
const treeRowHeight = 31

var templateFuncs = template.FuncMap{
	"treeSpan": treeSpan,
}

var pageTemplates = template.Must(
	template.New("pages").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.tmpl"),
)

// treeSpan renders the sidebar connector for one tree node. A node with
// height zero attaches to the entry directly above it; a taller node
// stretches its top connector across the intervening deeper entries.
func treeSpan(height int) template.HTML {
	if height <= 0 {
		return `<span class="tree"><span class="top"></span><span class="bottom"></span></span>`
	}
	offset := treeRowHeight*height + 27
	reach := treeRowHeight*height + 28
	return template.HTML(fmt.Sprintf(
		`<span class="tree" style="top: -%dpx;"><span class="top" style="height: %dpx;"></span><span class="bottom"></span></span>`,
		offset, reach))
}

func renderPage(file string, data *pageData) (string, error) {
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, "layout", data); err != nil {
		return "", fmt.Errorf("render page %s: %w", file, err)
	}
	return buf.String(), nil
}
