package pipeline

import (
	"fmt"

	"github.com/brindlebyte/schemawright/dialect"
	"github.com/brindlebyte/schemawright/diag"
	"github.com/brindlebyte/schemawright/diff"
	"github.com/brindlebyte/schemawright/schema"
)

// GenerateDown runs the mirror of the forward sequence (4.F.2): added
// tables are dropped in reverse topological order, modified tables have
// their added columns dropped and their type changes and renames reversed
// (type change first, then the rename back, the opposite of UP per
// 4.F.4), and removed tables/enums — whose full prior definition the core
// never retained — surface as a placeholder comment rather than a
// fabricated CREATE TABLE or CREATE TYPE.
func (p *MigrationPipeline) GenerateDown() (string, diag.ValidationResult, error) {
	gen, err := p.generator()
	if err != nil {
		return "", diag.ValidationResult{}, err
	}
	if setter, ok := gen.(enumSetter); ok && p.oldSchema != nil {
		setter.SetEnums(p.oldSchema.Enums)
	}

	var result diag.ValidationResult
	var stmts []string

	tableStmts, stageErr := p.tableStatementsDown(gen)
	if stageErr != nil {
		return "", result, stageErr
	}
	stmts = append(stmts, tableStmts...)

	stmts = append(stmts, p.indexStatementsDown(gen)...)

	if gen.Name() == schema.PostgreSQL {
		enumStmts, stageErr := p.enumStatementsDown(gen)
		if stageErr != nil {
			return "", result, stageErr
		}
		stmts = append(stmts, enumStmts...)
	}

	for _, name := range p.diff.RemovedTables {
		stmts = append(stmts, fmt.Sprintf("-- manual action required: recreate table %s (original definition not retained by the diff)", name))
	}

	return finalize(stmts), result, nil
}

func (p *MigrationPipeline) tableStatementsDown(gen dialect.Generator) ([]string, *StageError) {
	order, remaining := topologicalOrder(p.diff.AddedTables)
	if remaining != nil {
		return nil, &StageError{
			Stage:   "table_statements",
			Kind:    CircularDependency,
			Message: fmt.Sprintf("circular foreign key dependency among tables: %v", remaining),
			Tables:  remaining,
		}
	}

	var stmts []string
	for _, name := range reverseStrings(order) {
		stmts = append(stmts, gen.DropTable(name))
	}

	for _, td := range p.diff.ModifiedTables {
		table := p.tableStub(td.Name, false)

		for _, c := range td.AddedColumns {
			stmts = append(stmts, gen.DropColumn(td.Name, c.Name))
		}

		recreated := false
		for _, cd := range td.ModifiedColumns {
			if !cd.HasTypeChange() && !cd.HasChange(diff.AutoIncrementChanged) {
				continue
			}
			newT, oldT := p.tableStub(td.Name, true), p.tableStub(td.Name, false)
			stmts = append(stmts, gen.AlterColumnTypeWithOldTable(oldT, cd, dialect.Down, newT)...)
			if gen.Name() == schema.SQLite {
				recreated = true
			}
		}

		stmts = append(stmts, p.constraintStatementsDown(gen, td, table, recreated)...)

		for _, rc := range td.RenamedColumns {
			table := p.tableStub(td.Name, false)
			if tc, ok := rc.TypeChange(); ok {
				cd := &diff.ColumnDiff{
					ColumnName: rc.NewName,
					OldColumn:  rc.OldColumn,
					NewColumn:  rc.NewColumn,
					Changes:    []diff.ColumnChange{tc},
				}
				newT, oldT := p.tableStub(td.Name, true), p.tableStub(td.Name, false)
				stmts = append(stmts, gen.AlterColumnTypeWithOldTable(oldT, cd, dialect.Down, newT)...)
			}
			stmts = append(stmts, gen.RenameColumn(table, rc, dialect.Down)...)
		}
	}

	return stmts, nil
}

// constraintStatementsDown mirrors constraintStatementsUp: a constraint
// the forward diff added must be dropped going back, and one it removed
// must be re-added. SQLite again has no standalone form for either, so it
// triggers table recreation unless a column type change already did so.
func (p *MigrationPipeline) constraintStatementsDown(gen dialect.Generator, td *diff.TableDiff, table *schema.Table, recreated bool) []string {
	if len(td.AddedConstraints) == 0 && len(td.RemovedConstraints) == 0 {
		return nil
	}

	if gen.Name() == schema.SQLite {
		if recreated {
			return nil
		}
		newT, oldT := p.tableStub(td.Name, true), p.tableStub(td.Name, false)
		return gen.AlterColumnTypeWithOldTable(oldT, &diff.ColumnDiff{}, dialect.Down, newT)
	}

	var stmts []string
	for _, c := range td.AddedConstraints {
		if stmt := gen.DropTableConstraint(table, c); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	for _, c := range td.RemovedConstraints {
		if stmt := gen.AddTableConstraint(table, c); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

func (p *MigrationPipeline) indexStatementsDown(gen dialect.Generator) []string {
	var stmts []string
	for _, td := range p.diff.ModifiedTables {
		for _, idx := range td.AddedIndexes {
			stmts = append(stmts, gen.DropIndex(td.Name, idx))
		}
	}
	return stmts
}

func (p *MigrationPipeline) enumStatementsDown(gen dialect.Generator) ([]string, *StageError) {
	hasRecreate := false
	for _, ed := range p.diff.ModifiedEnums {
		if ed.ChangeKind == diff.Recreate {
			hasRecreate = true
			break
		}
	}
	if hasRecreate && !p.allowDestructive {
		return nil, &StageError{
			Stage:   "enum_statements",
			Kind:    EnumRecreationNotAllowed,
			Message: "reverting a recreated enum type requires allow_destructive",
		}
	}

	var stmts []string
	for _, e := range p.diff.AddedEnums {
		stmts = append(stmts, gen.DropEnumType(e.Name))
	}
	for _, ed := range p.diff.ModifiedEnums {
		switch ed.ChangeKind {
		case diff.Recreate:
			stmts = append(stmts, gen.RecreateEnumType(reversedEnumDiff(ed))...)
		case diff.AddOnly:
			stmts = append(stmts, fmt.Sprintf(
				"-- manual action required: enum %s gained values that PostgreSQL cannot drop via ALTER TYPE",
				ed.EnumName,
			))
		}
	}
	for _, name := range p.diff.RemovedEnums {
		stmts = append(stmts, fmt.Sprintf("-- manual action required: recreate enum %s (original values not retained by the diff)", name))
	}
	return stmts, nil
}
