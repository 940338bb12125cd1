package domain

import "time"

// TaskList is an ordered grouping of tasks owned by exactly one phase at a
// time. TaskIDs holds the root tasks in stored order; subtasks hang off
// their parent's ChildIDs in the tree arena.
type TaskList struct {
	ID        string
	PhaseID   string
	Name      string
	Access    AccessLevel
	TaskIDs   []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TaskIndex returns the position of taskID among the list's root tasks,
// or -1 if the task is not a root of this list.
func (l *TaskList) TaskIndex(taskID string) int {
	for i, id := range l.TaskIDs {
		if id == taskID {
			return i
		}
	}
	return -1
}
