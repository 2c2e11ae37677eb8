// Package pipeline drives a single schema diff through validation,
// ordering, and per-dialect DDL generation to produce matched up and down
// migration bodies. It is the one component that calls every other piece
// of the core: typecheck for validation, the dialect registry for SQL,
// and destructive for the gating decision its caller enforces.
package pipeline

import (
	"strings"

	"github.com/brindlebyte/schemawright/destructive"
	"github.com/brindlebyte/schemawright/dialect"
	"github.com/brindlebyte/schemawright/diag"
	"github.com/brindlebyte/schemawright/diff"
	"github.com/brindlebyte/schemawright/schema"
	"github.com/brindlebyte/schemawright/typecheck"
)

// MigrationPipeline orders and generates the SQL for one schema diff
// against one dialect. It is built with New and configured by chaining
// WithSchemas / WithAllowDestructive before calling GenerateUp/GenerateDown.
type MigrationPipeline struct {
	diff             *diff.SchemaDiff
	dialectName      schema.Dialect
	oldSchema        *schema.Schema
	newSchema        *schema.Schema
	allowDestructive bool
}

// New builds a pipeline for d targeting dialectName.
func New(d *diff.SchemaDiff, dialectName schema.Dialect) *MigrationPipeline {
	return &MigrationPipeline{diff: d, dialectName: dialectName}
}

// WithSchemas attaches the full old and new schema snapshots, which supply
// the enum sets handed to MySQL/SQLite generators and the table shapes for
// SQLite's table-recreation path (which needs both the before and after
// column sets, not just the diff). Type-change validation runs from the
// diff alone and does not need them.
func (p *MigrationPipeline) WithSchemas(old, new *schema.Schema) *MigrationPipeline {
	p.oldSchema = old
	p.newSchema = new
	return p
}

// WithAllowDestructive opts into generating enum drops/recreations that
// would otherwise be refused.
func (p *MigrationPipeline) WithAllowDestructive(allow bool) *MigrationPipeline {
	p.allowDestructive = allow
	return p
}

// enumSetter is implemented by dialect generators that have no named enum
// type (MySQL, which inlines the values, and SQLite, which stores enums as
// plain TEXT).
type enumSetter interface {
	SetEnums(map[string]*schema.EnumDefinition)
}

func (p *MigrationPipeline) generator() (dialect.Generator, error) {
	return dialect.GetGenerator(p.dialectName)
}

func (p *MigrationPipeline) tableStub(name string, preferNew bool) *schema.Table {
	if preferNew && p.newSchema != nil {
		if t, ok := p.newSchema.Tables[name]; ok {
			return t
		}
	}
	if !preferNew && p.oldSchema != nil {
		if t, ok := p.oldSchema.Tables[name]; ok {
			return t
		}
	}
	if p.newSchema != nil {
		if t, ok := p.newSchema.Tables[name]; ok {
			return t
		}
	}
	if p.oldSchema != nil {
		if t, ok := p.oldSchema.Tables[name]; ok {
			return t
		}
	}
	return &schema.Table{Name: name}
}

func finalize(stmts []string) string {
	return strings.Join(stmts, "\n\n")
}

func reverseStrings(s []string) []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}

// prepare runs the type-change validator over every modified table's
// ModifiedColumns list, merging results across the whole diff.
func (p *MigrationPipeline) prepare() (diag.ValidationResult, *StageError) {
	var result diag.ValidationResult
	for _, td := range p.diff.ModifiedTables {
		result = result.Merge(typecheck.ValidateTypeChanges(td.Name, td.ModifiedColumns, p.dialectName))
	}
	if !result.IsValid() {
		var msgs []string
		for _, e := range result.Errors {
			msgs = append(msgs, e.Error())
		}
		return result, &StageError{
			Stage:   "prepare",
			Kind:    PrepareValidationFailed,
			Message: strings.Join(msgs, "; "),
		}
	}
	return result, nil
}

// CheckDestructive enforces the 4.F.3 gating policy on behalf of a
// caller: if the diff contains destructive changes and neither
// allowDestructive nor dryRun is set, it returns a *DestructiveRefusalError
// carrying the full report. dryRun bypasses the refusal so a caller can
// still render a preview, but the report is returned either way so it can
// be surfaced alongside the preview.
func (p *MigrationPipeline) CheckDestructive(dryRun bool) (*destructive.Report, error) {
	report := destructive.Detect(p.diff)
	if report.HasDestructiveChanges() && !p.allowDestructive && !dryRun {
		return report, &DestructiveRefusalError{Report: report}
	}
	return report, nil
}

// reversedEnumDiff swaps the old/new sides of ed, used when walking the
// Recreate sequence backwards for DOWN.
func reversedEnumDiff(ed *diff.EnumDiff) *diff.EnumDiff {
	return &diff.EnumDiff{
		EnumName:      ed.EnumName,
		OldValues:     ed.NewValues,
		NewValues:     ed.OldValues,
		AddedValues:   ed.RemovedValues,
		RemovedValues: ed.AddedValues,
		ChangeKind:    ed.ChangeKind,
		Columns:       ed.Columns,
	}
}

