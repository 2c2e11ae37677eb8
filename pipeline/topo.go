package pipeline

import (
	"sort"

	"github.com/brindlebyte/schemawright/schema"
)

// topologicalOrder orders tables so that any table referenced by another
// table's FOREIGN_KEY (when both sides are present in tables) is created
// first. Ties are broken alphabetically by table name for determinism.
// Kahn's algorithm: repeatedly peel the alphabetically-smallest
// zero-indegree node. A non-empty remainder once no zero-indegree node
// exists indicates a cycle.
func topologicalOrder(tables []*schema.Table) ([]string, []string) {
	names := make([]string, 0, len(tables))
	present := make(map[string]bool, len(tables))
	for _, t := range tables {
		names = append(names, t.Name)
		present[t.Name] = true
	}

	indegree := make(map[string]int, len(names))
	adj := make(map[string][]string)
	for _, n := range names {
		indegree[n] = 0
	}
	for _, t := range tables {
		for _, c := range t.Constraints {
			fk, ok := c.(schema.ForeignKey)
			if !ok {
				continue
			}
			if fk.ReferencedTable == t.Name || !present[fk.ReferencedTable] {
				continue
			}
			adj[fk.ReferencedTable] = append(adj[fk.ReferencedTable], t.Name)
			indegree[t.Name]++
		}
	}

	visited := make(map[string]bool, len(names))
	order := make([]string, 0, len(names))
	for len(order) < len(names) {
		var candidates []string
		for _, n := range names {
			if !visited[n] && indegree[n] == 0 {
				candidates = append(candidates, n)
			}
		}
		if len(candidates) == 0 {
			var remaining []string
			for _, n := range names {
				if !visited[n] {
					remaining = append(remaining, n)
				}
			}
			sort.Strings(remaining)
			return nil, remaining
		}
		sort.Strings(candidates)
		next := candidates[0]
		visited[next] = true
		order = append(order, next)
		for _, v := range adj[next] {
			indegree[v]--
		}
	}
	return order, nil
}
