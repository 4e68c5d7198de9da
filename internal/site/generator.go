// Package site assembles and writes the static HTML tree for a loaded
// project: the index, one page per namespace (per language on cross-platform
// projects), and one page per topic document, all passed through the theme
// transforms. Generation runs as a short staged pipeline so theme problems
// surface before any file is written.
package site

import (
	"context"
	"log/slog"
	"path/filepath"

	"git.home.luguber.info/inful/refdoc/internal/observability"
	"git.home.luguber.info/inful/refdoc/internal/project"
)

// Generator renders one project into a static HTML tree.
type Generator struct {
	project *project.Project
	output  string
}

// NewGenerator creates a generator writing into outputDir.
func NewGenerator(p *project.Project, outputDir string) *Generator {
	return &Generator{project: p, output: filepath.Clean(outputDir)}
}

// Generate runs the staged build. The returned report is non-nil even on
// failure so callers can log stage timings and warnings.
func (g *Generator) Generate(ctx context.Context) (*BuildReport, error) {
	observability.InfoContext(ctx, "starting site generation",
		slog.String("output", g.output),
		slog.Int("namespaces", len(g.project.Namespaces)),
		slog.Int("documents", len(g.project.Documents)))

	report := newBuildReport(len(g.project.Namespaces), len(g.project.Documents))
	bs := newBuildState(g, report)

	stages := []StageDef{
		{StagePrepare, stagePrepare},
		{StageThemes, stageThemes},
		{StageRender, stageRender},
		{StageAssets, stageAssets},
	}
	err := runStages(ctx, bs, stages)
	report.deriveOutcome()
	report.finish()
	if err != nil {
		return report, err
	}

	observability.InfoContext(ctx, "site generation completed",
		slog.String("output", g.output),
		slog.Int("pages", report.RenderedPages),
		slog.String("outcome", string(report.Outcome)))
	return report, nil
}
