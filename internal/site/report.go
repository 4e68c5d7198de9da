package site

import (
	"errors"
	"fmt"
	"time"
)

// BuildOutcome is the typed enumeration of final build result states.
type BuildOutcome string

const (
	OutcomeSuccess  BuildOutcome = "success"
	OutcomeWarning  BuildOutcome = "warning"
	OutcomeFailed   BuildOutcome = "failed"
	OutcomeCanceled BuildOutcome = "canceled"
)

// BuildReport captures high-level metrics about one generation run.
type BuildReport struct {
	Start          time.Time
	End            time.Time
	Namespaces     int
	Documents      int
	RenderedPages  int
	Errors         []error
	Warnings       []error
	StageDurations map[string]time.Duration
	Outcome        BuildOutcome
}

func newBuildReport(namespaces, documents int) *BuildReport {
	return &BuildReport{
		Start:          time.Now(),
		Namespaces:     namespaces,
		Documents:      documents,
		StageDurations: make(map[string]time.Duration),
	}
}

func (r *BuildReport) finish() { r.End = time.Now() }

// deriveOutcome folds recorded errors and warnings into the final outcome.
func (r *BuildReport) deriveOutcome() {
	if len(r.Errors) > 0 {
		for _, e := range r.Errors {
			var se *StageError
			if errors.As(e, &se) && se.Kind == StageErrorCanceled {
				r.Outcome = OutcomeCanceled
				return
			}
		}
		r.Outcome = OutcomeFailed
		return
	}
	if len(r.Warnings) > 0 {
		r.Outcome = OutcomeWarning
		return
	}
	r.Outcome = OutcomeSuccess
}

// Summary returns a human-readable single-line summary.
func (r *BuildReport) Summary() string {
	dur := r.End.Sub(r.Start)
	return fmt.Sprintf("pages=%d namespaces=%d documents=%d duration=%s warnings=%d outcome=%s",
		r.RenderedPages, r.Namespaces, r.Documents, dur.Truncate(time.Millisecond), len(r.Warnings), r.Outcome)
}
