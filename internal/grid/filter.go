package grid

import "strings"

// Filter keeps rows whose title matches the query (case-insensitive
// substring) plus the phase and task-list rows that structurally enclose
// any match. Ancestor inclusion works by grouping on the denormalized
// PhaseID/TaskListID carried on every row, so no parent pointers are
// needed.
//
// Filter must run on projected rows, after Project: filtering the tree
// first would hide a collapsed ancestor chain around a deep match.
func Filter(rows []Row, query string) []Row {
	query = strings.TrimSpace(query)
	if query == "" {
		return rows
	}
	needle := strings.ToLower(query)

	matchedPhases := make(map[string]bool)
	matchedLists := make(map[string]bool)
	direct := make([]bool, len(rows))
	for i, r := range rows {
		if strings.Contains(strings.ToLower(r.Title), needle) {
			direct[i] = true
			matchedPhases[r.PhaseID] = true
			if r.TaskListID != "" {
				matchedLists[r.TaskListID] = true
			}
		}
	}

	var out []Row
	for i, r := range rows {
		switch {
		case direct[i]:
			out = append(out, r)
		case r.Kind == RowPhase && matchedPhases[r.PhaseID]:
			out = append(out, r)
		case r.Kind == RowTaskList && matchedLists[r.TaskListID]:
			out = append(out, r)
		}
	}
	return out
}
