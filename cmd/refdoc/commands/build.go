package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/refdoc/internal/config"
	"git.home.luguber.info/inful/refdoc/internal/observability"
	"git.home.luguber.info/inful/refdoc/internal/site"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output string `short:"o" help:"Output directory for the generated site (overrides the configured one)"`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	settings, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	output := settings.Output
	if b.Output != "" {
		output = b.Output
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	ctx = observability.WithRunID(ctx, uuid.NewString())

	fmt.Printf("Building documentation for %s\n", settings.Project.Title())

	report, err := site.NewGenerator(settings.Project, output).Generate(ctx)
	if err != nil {
		if report != nil {
			observability.ErrorContext(ctx, "build failed", slog.String("summary", report.Summary()))
		}
		return err
	}
	observability.InfoContext(ctx, "build finished", slog.String("summary", report.Summary()))
	fmt.Printf("Site written to %s\n", output)
	return nil
}
