package report

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDuplicateReport surfaces the one-report-per-day uniqueness constraint.
var ErrDuplicateReport = errors.New("a report for this surgery and day already exists")

// ValidationError lists the visible required questions left unanswered.
// Raised before any write.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required answers: %s", strings.Join(e.Missing, ", "))
}

// PersistenceError wraps a failed report write. Alert and status-update
// failures never take this path; they are logged and absorbed.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persisting report: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
