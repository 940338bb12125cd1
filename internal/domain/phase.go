package domain

import "time"

// Phase is a top-level ordered grouping of work. It owns its task lists
// positionally: the TaskLists slice order is the stored order that
// reordering mutates.
type Phase struct {
	ID        string
	Name      string
	StartDate *time.Time
	EndDate   *time.Time
	TaskLists []*TaskList
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ListIndex returns the position of the task list with the given ID,
// or -1 if the phase does not own it.
func (p *Phase) ListIndex(listID string) int {
	for i, l := range p.TaskLists {
		if l.ID == listID {
			return i
		}
	}
	return -1
}

// List returns the owned task list with the given ID, or nil.
func (p *Phase) List(listID string) *TaskList {
	if i := p.ListIndex(listID); i >= 0 {
		return p.TaskLists[i]
	}
	return nil
}
