package typecheck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brindlebyte/schemawright/diag"
	"github.com/brindlebyte/schemawright/diff"
	"github.com/brindlebyte/schemawright/schema"
)

func u8(v uint8) *uint8 { return &v }

func typeChangeDiff(col string, from, to schema.ColumnType) []*diff.ColumnDiff {
	return []*diff.ColumnDiff{{
		ColumnName: col,
		Changes:    []diff.ColumnChange{{Kind: diff.TypeChanged, OldType: from, NewType: to}},
	}}
}

func TestValidateTypeChangesSkipsNonTypeDiffs(t *testing.T) {
	diffs := []*diff.ColumnDiff{{ColumnName: "x", Changes: []diff.ColumnChange{{Kind: diff.NullableChanged}}}}
	result := ValidateTypeChanges("users", diffs, schema.PostgreSQL)
	assert.True(t, result.IsValid())
	assert.Empty(t, result.Warnings)
}

func TestValidateTypeChangesIntegerWideningIsSafe(t *testing.T) {
	diffs := typeChangeDiff("id", schema.Integer{}, schema.Integer{Precision: u8(8)})
	result := ValidateTypeChanges("users", diffs, schema.MySQL)
	assert.True(t, result.IsValid())
	assert.Empty(t, result.Warnings)
}

func TestValidateTypeChangesVarcharShrinkWarnsTruncation(t *testing.T) {
	diffs := typeChangeDiff("email", schema.Varchar{Length: 255}, schema.Varchar{Length: 100})
	result := ValidateTypeChanges("users", diffs, schema.PostgreSQL)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, diag.PrecisionLoss, result.Warnings[0].Kind)
	assert.Contains(t, result.Warnings[0].Message, "truncation")
}

func TestValidateTypeChangesTextToIntegerWarnsDataLoss(t *testing.T) {
	diffs := typeChangeDiff("price", schema.Text{}, schema.Integer{})
	result := ValidateTypeChanges("products", diffs, schema.PostgreSQL)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, diag.DataLoss, result.Warnings[0].Kind)
	assert.True(t, result.IsValid())
}

func TestValidateTypeChangesJSONBToIntegerIsError(t *testing.T) {
	diffs := typeChangeDiff("data", schema.JSONB{}, schema.Integer{})
	result := ValidateTypeChanges("documents", diffs, schema.PostgreSQL)
	require.False(t, result.IsValid())
	require.Len(t, result.Errors, 1)
	assert.Equal(t, diag.TypeConversion, result.Errors[0].Kind)
	assert.Contains(t, result.Errors[0].Suggestion, "TEXT as an intermediate type")
}

func TestValidateTypeChangesMySQLRejectsTargetJSONB(t *testing.T) {
	diffs := typeChangeDiff("data", schema.Text{}, schema.JSONB{})
	result := ValidateTypeChanges("documents", diffs, schema.MySQL)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, diag.DialectConstraint, result.Errors[0].Kind)
}

func TestValidateTypeChangesSQLiteRejectsTargetJSONB(t *testing.T) {
	diffs := typeChangeDiff("data", schema.Text{}, schema.JSONB{})
	result := ValidateTypeChanges("documents", diffs, schema.SQLite)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, diag.DialectConstraint, result.Errors[0].Kind)
}

func TestValidateTypeChangesIntegerShrinkWarnsOverflow(t *testing.T) {
	diffs := typeChangeDiff("id", schema.Integer{Precision: u8(8)}, schema.Integer{Precision: u8(2)})
	result := ValidateTypeChanges("users", diffs, schema.PostgreSQL)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0].Message, "overflow")
}

func TestValidateTypeChangesDecimalScaleShrinkWarnsPrecisionLoss(t *testing.T) {
	diffs := typeChangeDiff("amount", schema.Decimal{Precision: 10, Scale: 4}, schema.Decimal{Precision: 10, Scale: 2})
	result := ValidateTypeChanges("invoices", diffs, schema.PostgreSQL)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0].Message, "precision loss")
}

func TestValidateTypeChangesAccumulatesAcrossMultipleDiffs(t *testing.T) {
	diffs := append(
		typeChangeDiff("email", schema.Varchar{Length: 255}, schema.Varchar{Length: 10}),
		typeChangeDiff("data", schema.JSONB{}, schema.Integer{})...,
	)
	result := ValidateTypeChanges("users", diffs, schema.PostgreSQL)
	assert.Len(t, result.Warnings, 1)
	assert.Len(t, result.Errors, 1)
}
