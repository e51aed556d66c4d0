package catalog

import "fmt"

// ValidationError marks a malformed or missing required input field. Required
// fields are never silently defaulted.
type ValidationError struct {
	Record string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: invalid %q: %v", e.Record, e.Field, e.Reason)
}

// UnplaceableSessionError reports a session with zero admissible rooms even
// after relaxation. This is a data-quality error, not a search failure.
type UnplaceableSessionError struct {
	Course   string
	Group    string
	SubBatch string
	Needed   int
}

func (e *UnplaceableSessionError) Error() string {
	return fmt.Sprintf("no admissible room for %v/%v (%v, %d seats needed)", e.Course, e.Group, e.SubBatch, e.Needed)
}

// NoQualifiedTeacherError reports a course no teacher is qualified for. The
// course's sessions are excluded from the run with a diagnostic instead of
// poisoning catalog construction.
type NoQualifiedTeacherError struct {
	Course string
}

func (e *NoQualifiedTeacherError) Error() string {
	return fmt.Sprintf("no qualified teacher for course %v", e.Course)
}

type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Diagnostic is a non-aborting construction finding. Bad records are collected
// here rather than raised mid-construction.
type Diagnostic struct {
	Severity Severity
	Err      error
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("[%v] %v", d.Severity, d.Err)
}

func warning(err error) Diagnostic {
	return Diagnostic{Severity: SeverityWarning, Err: err}
}

func failure(err error) Diagnostic {
	return Diagnostic{Severity: SeverityError, Err: err}
}
