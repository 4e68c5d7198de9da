package theme

import (
	"embed"
	"io/fs"
)

//go:embed themes
var builtinFS embed.FS

// Built-in themes ship inside the binary and register here. A project can
// still shadow them by placing a directory of the same name under its
// theme-dir.
func init() {
	sub, err := fs.Sub(builtinFS, "themes/default")
	if err != nil {
		panic(err)
	}
	t, err := loadFS(sub, "default")
	if err != nil {
		panic(err)
	}
	Register(t)
}
