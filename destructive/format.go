package destructive

import (
	"fmt"
	"strings"
)

// FormatRefusal renders report as the multi-line message shown when
// generation refuses to proceed: every destructive category it found,
// grouped, followed by the three ways the caller can move forward.
func FormatRefusal(report *Report, command string) string {
	var b strings.Builder
	b.WriteString("destructive changes detected\n\n")
	for _, line := range changeLines(report) {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	b.WriteString("to proceed, choose one of the following:\n")
	fmt.Fprintf(&b, "  1. review the changes: %s --dry-run\n", command)
	fmt.Fprintf(&b, "  2. allow destructive changes: %s --allow-destructive\n", command)
	b.WriteString("  3. reconsider the schema change\n")
	return b.String()
}

// FormatWarning renders the summary shown when a migration proceeds
// despite containing destructive changes (allow_destructive was set).
func FormatWarning(report *Report) string {
	var b strings.Builder
	b.WriteString("warning: this migration contains destructive changes\n")
	lines := changeLines(report)
	if len(lines) == 0 {
		b.WriteString("  no destructive changes were listed\n")
		return b.String()
	}
	for _, line := range lines {
		fmt.Fprintf(&b, "  %s\n", line)
	}
	return b.String()
}

func changeLines(r *Report) []string {
	var lines []string

	if len(r.TablesDropped) > 0 {
		lines = append(lines, fmt.Sprintf("tables to be dropped: %s", strings.Join(r.TablesDropped, ", ")))
	}

	if len(r.ColumnsDropped) > 0 {
		lines = append(lines, "columns to be dropped:")
		for _, cd := range r.ColumnsDropped {
			lines = append(lines, fmt.Sprintf("  - %s: %s", cd.Table, strings.Join(cd.Columns, ", ")))
		}
	}

	if len(r.ColumnsRenamed) > 0 {
		lines = append(lines, "columns to be renamed:")
		for _, cr := range r.ColumnsRenamed {
			lines = append(lines, fmt.Sprintf("  - %s: %s -> %s", cr.Table, cr.Old, cr.New))
		}
	}

	if len(r.EnumsDropped) > 0 {
		lines = append(lines, fmt.Sprintf("enums to be dropped: %s", strings.Join(r.EnumsDropped, ", ")))
	}

	if len(r.EnumsRecreated) > 0 {
		lines = append(lines, fmt.Sprintf("enums to be recreated: %s", strings.Join(r.EnumsRecreated, ", ")))
	}

	return lines
}
