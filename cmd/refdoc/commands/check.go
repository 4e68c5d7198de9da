package commands

import (
	"fmt"

	"git.home.luguber.info/inful/refdoc/internal/config"
	"git.home.luguber.info/inful/refdoc/internal/theme"
)

// CheckCmd implements the 'check' command: load the configuration, resolve
// every referenced theme, and substitute theme parameters, reporting problems
// without writing any output.
type CheckCmd struct{}

func (c *CheckCmd) Run(_ *Global, root *CLI) error {
	settings, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	p := settings.Project
	for _, ref := range p.Themes {
		th, err := theme.Resolve(ref.Name, p.ThemeDir)
		if err != nil {
			return err
		}
		if _, err := th.Instantiate(ref.Params); err != nil {
			return err
		}
	}
	fmt.Printf("%s: ok (%d namespaces, %d documents, %d themes)\n",
		root.Config, len(p.Namespaces), len(p.Documents), len(p.Themes))
	return nil
}
