package schedule

import (
	"errors"
	"strings"
)

// ErrItemsFailed is matched by AggregateError.
var ErrItemsFailed = errors.New("there were errors while descheduling")

// AggregateError carries every item-level problem of a run.
type AggregateError struct {
	Errors []string
}

func (e *AggregateError) Error() string {
	var b strings.Builder
	b.WriteString(ErrItemsFailed.Error())
	b.WriteString(":")
	for _, msg := range e.Errors {
		b.WriteString("\n - ")
		b.WriteString(msg)
	}
	return b.String()
}

// Is allows errors.Is to work with AggregateError.
func (e *AggregateError) Is(target error) bool {
	return target == ErrItemsFailed
}

// RunResult is the outcome of a descheduling run. Item-level problems do not
// abort a run; they are collected here.
type RunResult struct {
	Succeeded   bool
	Errors      []string
	Scheduled   int
	Descheduled []Item
	// Stage is the stage the run ended in: done, or failed when interrupted.
	Stage string
}

// NewRunResult builds a result; it succeeded when errs is empty.
func NewRunResult(scheduled int, descheduled []Item, errs []string) *RunResult {
	return &RunResult{
		Succeeded:   len(errs) == 0,
		Errors:      errs,
		Scheduled:   scheduled,
		Descheduled: descheduled,
	}
}

// Err converts a failed result into an *AggregateError, or returns nil.
func (r *RunResult) Err() error {
	if r == nil || r.Succeeded {
		return nil
	}
	return &AggregateError{Errors: append([]string(nil), r.Errors...)}
}
