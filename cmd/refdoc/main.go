package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/refdoc/cmd/refdoc/commands"
	"git.home.luguber.info/inful/refdoc/internal/version"
)

func main() {
	// A .env in the working directory can supply REFDOC_* overrides.
	_ = godotenv.Load()

	var cli commands.CLI
	ctx := kong.Parse(&cli,
		kong.Name("refdoc"),
		kong.Description("Generate static HTML API documentation from a refdoc.yaml project definition."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)
	if err := ctx.Run(&commands.Global{}); err != nil {
		fmt.Fprintf(os.Stderr, "refdoc: %v\n", err)
		os.Exit(1)
	}
}
