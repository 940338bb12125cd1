package domain

import "time"

// Task is a unit of work. Tasks form a rooted ordered forest: ChildIDs is
// the stored order of direct subtasks, ParentID anchors the recursion (nil
// for root tasks). Records live in the tree arena keyed by ID; there are no
// direct object pointers between tasks, so cycles are not representable by
// normal construction.
type Task struct {
	ID        string
	Title     string
	Status    string
	Priority  int
	Assignees []string
	Tags      []string
	DueDate   *time.Time
	ParentID  *string
	ChildIDs  []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasChildren reports whether the task has any subtasks.
func (t *Task) HasChildren() bool {
	return len(t.ChildIDs) > 0
}
