package pipeline

import (
	"fmt"

	"github.com/brindlebyte/schemawright/destructive"
)

// StageKind names one of the structured failure modes a pipeline stage
// can raise, distinct from the diag.ValidationError taxonomy produced by
// the prepare stage's type-change validation.
type StageKind string

const (
	EnumRecreationNotAllowed StageKind = "EnumRecreationNotAllowed"
	CircularDependency       StageKind = "CircularDependency"
	PrepareValidationFailed  StageKind = "PrepareValidationFailed"
)

// StageError is returned when a pipeline stage cannot proceed. Tables is
// only populated for CircularDependency, carrying the table names left
// over once no further zero-indegree node exists.
type StageError struct {
	Stage   string
	Kind    StageKind
	Message string
	Tables  []string
}

func (e *StageError) Error() string {
	return fmt.Sprintf("pipeline stage %q failed (%s): %s", e.Stage, e.Kind, e.Message)
}

// DestructiveRefusalError is raised by the caller layer (not a pipeline
// stage itself) when generation is attempted against a destructive diff
// without AllowDestructive set. It carries the full report so the caller
// can print every entry that triggered the refusal.
type DestructiveRefusalError struct {
	Report *destructive.Report
}

func (e *DestructiveRefusalError) Error() string {
	return "refusing to generate: diff contains destructive changes and allow_destructive is false"
}
