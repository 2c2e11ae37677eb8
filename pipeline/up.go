package pipeline

import (
	"fmt"

	"github.com/brindlebyte/schemawright/dialect"
	"github.com/brindlebyte/schemawright/diag"
	"github.com/brindlebyte/schemawright/diff"
	"github.com/brindlebyte/schemawright/schema"
)

// GenerateUp runs the forward stage sequence (4.F.1): prepare,
// enum_pre_table, table_statements, index_statements, enum_post_table,
// cleanup_statements, finalize. It returns the joined SQL body and the
// accumulated ValidationResult, or a *StageError identifying which stage
// refused to proceed.
func (p *MigrationPipeline) GenerateUp() (string, diag.ValidationResult, error) {
	gen, err := p.generator()
	if err != nil {
		return "", diag.ValidationResult{}, err
	}
	if setter, ok := gen.(enumSetter); ok && p.newSchema != nil {
		setter.SetEnums(p.newSchema.Enums)
	}

	result, stageErr := p.prepare()
	if stageErr != nil {
		return "", result, stageErr
	}

	var stmts []string

	if gen.Name() == schema.PostgreSQL {
		pre, err := p.enumPreTable(gen)
		if err != nil {
			return "", result, err
		}
		stmts = append(stmts, pre...)
	}

	tableStmts, stageErr := p.tableStatementsUp(gen)
	if stageErr != nil {
		return "", result, stageErr
	}
	stmts = append(stmts, tableStmts...)

	stmts = append(stmts, p.indexStatementsUp(gen)...)

	if gen.Name() == schema.PostgreSQL {
		for _, ed := range p.diff.ModifiedEnums {
			if ed.ChangeKind == diff.Recreate {
				stmts = append(stmts, gen.RecreateEnumType(ed)...)
			}
		}
	}

	stmts = append(stmts, p.cleanupStatementsUp(gen)...)

	return finalize(stmts), result, nil
}

func (p *MigrationPipeline) enumPreTable(gen dialect.Generator) ([]string, *StageError) {
	hasRecreate := false
	for _, ed := range p.diff.ModifiedEnums {
		if ed.ChangeKind == diff.Recreate {
			hasRecreate = true
			break
		}
	}
	if (len(p.diff.RemovedEnums) > 0 || hasRecreate) && !p.allowDestructive {
		return nil, &StageError{
			Stage:   "enum_statements",
			Kind:    EnumRecreationNotAllowed,
			Message: "dropping or recreating an enum type requires allow_destructive",
		}
	}

	var stmts []string
	for _, e := range p.diff.AddedEnums {
		stmts = append(stmts, gen.CreateEnumType(e))
	}
	for _, ed := range p.diff.ModifiedEnums {
		if ed.ChangeKind == diff.AddOnly {
			stmts = append(stmts, gen.AddEnumValue(ed)...)
		}
	}
	return stmts, nil
}

func (p *MigrationPipeline) tableStatementsUp(gen dialect.Generator) ([]string, *StageError) {
	order, remaining := topologicalOrder(p.diff.AddedTables)
	if remaining != nil {
		return nil, &StageError{
			Stage:   "table_statements",
			Kind:    CircularDependency,
			Message: fmt.Sprintf("circular foreign key dependency among tables: %v", remaining),
			Tables:  remaining,
		}
	}

	byName := make(map[string]*schema.Table, len(p.diff.AddedTables))
	for _, t := range p.diff.AddedTables {
		byName[t.Name] = t
	}

	var stmts []string
	for _, name := range order {
		t := byName[name]
		stmt, fkStmts := gen.CreateTable(t)
		stmts = append(stmts, stmt)
		for _, idx := range t.Indexes {
			stmts = append(stmts, gen.CreateIndex(t, idx))
		}
		stmts = append(stmts, fkStmts...)
	}

	for _, td := range p.diff.ModifiedTables {
		table := p.tableStub(td.Name, true)

		for _, c := range td.AddedColumns {
			stmts = append(stmts, gen.AddColumn(td.Name, c))
		}

		for _, rc := range td.RenamedColumns {
			stmts = append(stmts, gen.RenameColumn(table, rc, dialect.Up)...)
			if tc, ok := rc.TypeChange(); ok {
				cd := &diff.ColumnDiff{
					ColumnName: rc.NewName,
					OldColumn:  rc.OldColumn,
					NewColumn:  rc.NewColumn,
					Changes:    []diff.ColumnChange{tc},
				}
				newT, oldT := p.tableStub(td.Name, true), p.tableStub(td.Name, false)
				stmts = append(stmts, gen.AlterColumnTypeWithOldTable(newT, cd, dialect.Up, oldT)...)
			}
		}

		recreated := false
		for _, cd := range td.ModifiedColumns {
			if !cd.HasTypeChange() && !cd.HasChange(diff.AutoIncrementChanged) {
				continue
			}
			newT, oldT := p.tableStub(td.Name, true), p.tableStub(td.Name, false)
			stmts = append(stmts, gen.AlterColumnTypeWithOldTable(newT, cd, dialect.Up, oldT)...)
			if gen.Name() == schema.SQLite {
				recreated = true
			}
		}

		stmts = append(stmts, p.constraintStatementsUp(gen, td, table, recreated)...)
	}

	return stmts, nil
}

// constraintStatementsUp emits the ADD/DROP CONSTRAINT statements for an
// existing table's constraint changes. PostgreSQL and MySQL have a
// standalone form for every constraint kind; SQLite has none, so unless a
// column type change already recreated the table this run (whose result
// already carries the final constraint set from the new schema), it
// triggers that same table-recreation path here instead.
func (p *MigrationPipeline) constraintStatementsUp(gen dialect.Generator, td *diff.TableDiff, table *schema.Table, recreated bool) []string {
	if len(td.AddedConstraints) == 0 && len(td.RemovedConstraints) == 0 {
		return nil
	}

	if gen.Name() == schema.SQLite {
		if recreated {
			return nil
		}
		newT, oldT := p.tableStub(td.Name, true), p.tableStub(td.Name, false)
		return gen.AlterColumnTypeWithOldTable(newT, &diff.ColumnDiff{}, dialect.Up, oldT)
	}

	var stmts []string
	for _, c := range td.AddedConstraints {
		if stmt := gen.AddTableConstraint(table, c); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	for _, c := range td.RemovedConstraints {
		if stmt := gen.DropTableConstraint(table, c); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

func (p *MigrationPipeline) indexStatementsUp(gen dialect.Generator) []string {
	var stmts []string
	for _, td := range p.diff.ModifiedTables {
		table := p.tableStub(td.Name, true)
		for _, idx := range td.AddedIndexes {
			stmts = append(stmts, gen.CreateIndex(table, idx))
		}
	}
	return stmts
}

func (p *MigrationPipeline) cleanupStatementsUp(gen dialect.Generator) []string {
	var stmts []string
	for _, name := range p.diff.RemovedTables {
		stmts = append(stmts, gen.DropTable(name))
	}
	if gen.Name() == schema.PostgreSQL {
		for _, name := range p.diff.RemovedEnums {
			stmts = append(stmts, gen.DropEnumType(name))
		}
	}
	return stmts
}
