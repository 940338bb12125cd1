package dto

import "time"

type CreatePhaseRequest struct {
	Name      string     `json:"name" binding:"required"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

type UpdatePhaseRequest struct {
	Name      string     `json:"name" binding:"required"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

type CreateTaskListRequest struct {
	Name   string `json:"name" binding:"required"`
	Access string `json:"access"`
}

type UpdateTaskListRequest struct {
	Name   string `json:"name" binding:"required"`
	Access string `json:"access"`
}

type CreateTaskRequest struct {
	Title     string     `json:"title" binding:"required"`
	Status    string     `json:"status"`
	Priority  int        `json:"priority"`
	Assignees []string   `json:"assignees"`
	Tags      []string   `json:"tags"`
	DueDate   *time.Time `json:"due_date"`
	ParentID  *string    `json:"parent_id"`
}

type UpdateTaskRequest struct {
	Title     string     `json:"title" binding:"required"`
	Status    string     `json:"status"`
	Priority  int        `json:"priority"`
	Assignees []string   `json:"assignees"`
	Tags      []string   `json:"tags"`
	DueDate   *time.Time `json:"due_date"`
}

// OrderRequest carries a complete new sibling ordering.
type OrderRequest struct {
	OrderedIDs []string `json:"ordered_ids" binding:"required"`
}

// MoveTaskRequest re-homes a task at a flattened position in the
// destination list.
type MoveTaskRequest struct {
	TaskListID string `json:"task_list_id" binding:"required"`
	PhaseID    string `json:"phase_id"`
	OrderIndex int    `json:"order_index"`
}
