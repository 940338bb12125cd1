package grid

import "phaseboard/internal/domain"

// Project flattens the tree into the ordered row list the renderer
// consumes: a deterministic pre-order traversal restricted to branches
// whose ancestors are all expanded. Order is always the stored order of
// the owning collection; nothing here sorts, because stored order is
// exactly what reordering mutates.
func Project(tree *domain.Tree, exp *ExpansionState) []Row {
	if tree == nil {
		return nil
	}
	var rows []Row
	for _, p := range tree.Phases {
		expanded := exp.IsExpanded(RowPhase, p.ID)
		rows = append(rows, Row{
			Key:         phaseKey(p.ID),
			Kind:        RowPhase,
			Level:       0,
			PhaseID:     p.ID,
			Title:       p.Name,
			StartDate:   p.StartDate,
			EndDate:     p.EndDate,
			ChildCount:  tree.PhaseTaskCount(p),
			HasChildren: len(p.TaskLists) > 0,
			Expanded:    expanded,
		})
		if !expanded {
			continue
		}
		for _, l := range p.TaskLists {
			rows = append(rows, projectList(tree, exp, p, l)...)
		}
	}
	return rows
}

func projectList(tree *domain.Tree, exp *ExpansionState, p *domain.Phase, l *domain.TaskList) []Row {
	expanded := exp.IsExpanded(RowTaskList, l.ID)
	rows := []Row{{
		Key:         taskListKey(l.ID),
		Kind:        RowTaskList,
		Level:       1,
		PhaseID:     p.ID,
		TaskListID:  l.ID,
		Title:       l.Name,
		Access:      l.Access,
		ChildCount:  tree.ListTaskCount(l),
		HasChildren: len(l.TaskIDs) > 0,
		Expanded:    expanded,
	}}
	if !expanded {
		return rows
	}
	for _, taskID := range l.TaskIDs {
		rows = appendTaskRows(rows, tree, exp, p.ID, l.ID, taskID, 2)
	}
	return rows
}

// appendTaskRows emits the task row and, when the task is expanded, its
// children at incrementing levels. Root tasks are kind task; every deeper
// level is kind subtask.
func appendTaskRows(rows []Row, tree *domain.Tree, exp *ExpansionState, phaseID, listID, taskID string, level int) []Row {
	task := tree.Task(taskID)
	if task == nil {
		return rows
	}
	kind := RowTask
	if level > 2 {
		kind = RowSubtask
	}
	expanded := exp.IsExpanded(kind, taskID)
	rows = append(rows, Row{
		Key:         taskKey(taskID),
		Kind:        kind,
		Level:       level,
		PhaseID:     phaseID,
		TaskListID:  listID,
		TaskID:      taskID,
		Title:       task.Title,
		Status:      task.Status,
		Priority:    task.Priority,
		Assignees:   task.Assignees,
		Tags:        task.Tags,
		DueDate:     task.DueDate,
		ChildCount:  tree.SubtreeSize(taskID) - 1,
		HasChildren: task.HasChildren(),
		Expanded:    expanded,
	})
	if !expanded {
		return rows
	}
	for _, childID := range task.ChildIDs {
		rows = appendTaskRows(rows, tree, exp, phaseID, listID, childID, level+1)
	}
	return rows
}
