package site

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/refdoc/internal/observability"
	"git.home.luguber.info/inful/refdoc/internal/scm"
	"git.home.luguber.info/inful/refdoc/internal/theme"
)

// Stage is a discrete unit of work in the site build.
type Stage func(ctx context.Context, bs *BuildState) error

// StageName is a strongly-typed identifier for a build stage.
type StageName string

// Canonical stage names.
const (
	StagePrepare StageName = "prepare"
	StageThemes  StageName = "themes"
	StageRender  StageName = "render"
	StageAssets  StageName = "assets"
)

// StageDef pairs a stage name with its executing function.
type StageDef struct {
	Name StageName
	Fn   Stage
}

// StageErrorKind enumerates structured stage error categories.
type StageErrorKind string

const (
	StageErrorFatal    StageErrorKind = "fatal"    // Build must abort.
	StageErrorWarning  StageErrorKind = "warning"  // Non-fatal; record and continue.
	StageErrorCanceled StageErrorKind = "canceled" // Context cancellation.
)

// StageError is a structured error carrying category and underlying cause.
type StageError struct {
	Kind  StageErrorKind
	Stage StageName
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s stage %s: %v", e.Kind, e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

func newFatalStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorFatal, Stage: stage, Err: err}
}
func newWarnStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorWarning, Stage: stage, Err: err}
}
func newCanceledStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorCanceled, Stage: stage, Err: err}
}

// BuildState carries mutable state across the stages of one run.
type BuildState struct {
	Generator  *Generator
	Report     *BuildReport
	Themes     []resolvedTheme   // declared order
	Transforms []theme.Transform // instantiated, concatenated in declared order
	Commit     string            // HEAD hash for {git-commit}, empty when unresolved
	Timings    map[StageName]time.Duration
	start      time.Time
}

type resolvedTheme struct {
	theme  *theme.Theme
	params map[string]any
}

func newBuildState(g *Generator, report *BuildReport) *BuildState {
	return &BuildState{
		Generator: g,
		Report:    report,
		Timings:   make(map[StageName]time.Duration),
		start:     time.Now(),
	}
}

// runStages executes stages in order, recording timing and stopping on the
// first fatal error. Warnings are recorded and the run continues.
func runStages(ctx context.Context, bs *BuildState, stages []StageDef) error {
	for _, st := range stages {
		select {
		case <-ctx.Done():
			se := newCanceledStageError(st.Name, ctx.Err())
			bs.Report.Errors = append(bs.Report.Errors, se)
			return se
		default:
		}
		sctx := observability.WithStage(ctx, string(st.Name))
		t0 := time.Now()
		err := st.Fn(sctx, bs)
		dur := time.Since(t0)
		bs.Timings[st.Name] = dur
		bs.Report.StageDurations[string(st.Name)] = dur
		if err == nil {
			continue
		}
		var se *StageError
		if !errors.As(err, &se) {
			se = newFatalStageError(st.Name, err)
		}
		switch se.Kind {
		case StageErrorWarning:
			bs.Report.Warnings = append(bs.Report.Warnings, se)
			observability.WarnContext(sctx, "stage finished with warning", slog.String("error", se.Err.Error()))
		default:
			bs.Report.Errors = append(bs.Report.Errors, se)
			return se
		}
	}
	return nil
}

// stagePrepare resolves every declared theme before anything touches the
// output directory, then creates the directory and resolves the source
// commit. A repository that cannot be opened downgrades {git-commit} links to
// a warning instead of failing the build.
func stagePrepare(ctx context.Context, bs *BuildState) error {
	p := bs.Generator.project
	for _, ref := range p.Themes {
		th, err := theme.Resolve(ref.Name, p.ThemeDir)
		if err != nil {
			return newFatalStageError(StagePrepare, err)
		}
		observability.DebugContext(ctx, "resolved theme", slog.String("theme", th.Spec.Name))
		bs.Themes = append(bs.Themes, resolvedTheme{theme: th, params: ref.Params})
	}
	if err := os.MkdirAll(bs.Generator.output, 0o750); err != nil {
		return newFatalStageError(StagePrepare, fmt.Errorf("create output directory: %w", err))
	}
	if scm.UsesCommit(p.SourceURI) {
		commit, err := scm.HeadCommit(p.SourceRoot)
		if err != nil {
			return newWarnStageError(StagePrepare, fmt.Errorf("resolve source commit: %w", err))
		}
		bs.Commit = commit
	}
	return nil
}

// stageThemes materializes the transform lists, substituting theme params
// into the fragments. Missing params are fatal here, before any page renders.
func stageThemes(ctx context.Context, bs *BuildState) error {
	for _, rt := range bs.Themes {
		transforms, err := rt.theme.Instantiate(rt.params)
		if err != nil {
			return newFatalStageError(StageThemes, err)
		}
		bs.Transforms = append(bs.Transforms, transforms...)
	}
	return nil
}

// stageRender assembles every page, pushes it through the theme transforms,
// and writes it into the output directory.
func stageRender(ctx context.Context, bs *BuildState) error {
	pages, err := assemblePages(ctx, bs.Generator.project, bs.Commit)
	if err != nil {
		return newFatalStageError(StageRender, err)
	}
	for _, pg := range pages {
		rendered, err := renderPage(pg.File, pg.Data)
		if err != nil {
			return newFatalStageError(StageRender, err)
		}
		out, err := theme.Apply(rendered, bs.Transforms)
		if err != nil {
			return newFatalStageError(StageRender, fmt.Errorf("page %s: %w", pg.File, err))
		}
		path := filepath.Join(bs.Generator.output, pg.File)
		if err := os.WriteFile(path, []byte(out), 0o600); err != nil {
			return newFatalStageError(StageRender, fmt.Errorf("write %s: %w", pg.File, err))
		}
		bs.Report.RenderedPages++
	}
	return nil
}

// stageAssets copies theme resource files into the output directory.
func stageAssets(ctx context.Context, bs *BuildState) error {
	for _, rt := range bs.Themes {
		if err := rt.theme.WriteResources(bs.Generator.output); err != nil {
			return newFatalStageError(StageAssets, err)
		}
	}
	return nil
}
