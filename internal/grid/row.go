// Package grid implements the hierarchical row engine behind the
// phases → task lists → tasks grid: flattening the tree into typed rows
// under per-node expansion state, filtering rows by search query, and
// classifying drag-and-drop gestures into reorder/move intents.
//
// Everything in this package is pure and synchronous. Each relevant state
// change re-runs projection and filtering from scratch; tree sizes are
// human-authored, so full recomputation is cheap.
package grid

import (
	"time"

	"phaseboard/internal/domain"
)

// RowKind identifies the structural level of a flattened row.
type RowKind string

const (
	RowPhase    RowKind = "phase"
	RowTaskList RowKind = "tasklist"
	RowTask     RowKind = "task"
	RowSubtask  RowKind = "subtask"
)

// Row is the ephemeral, render-oriented projection of one tree node. It
// carries enough denormalized context (phase/list IDs, display fields) to
// render and to classify drops without further tree lookups.
type Row struct {
	// Key is derived from the owning entity's identity, never from
	// position, so it is stable across reorders.
	Key   string
	Kind  RowKind
	Level int

	PhaseID    string
	TaskListID string
	TaskID     string

	Title     string
	Status    string
	Priority  int
	Assignees []string
	Tags      []string
	DueDate   *time.Time
	StartDate *time.Time
	EndDate   *time.Time
	Access    domain.AccessLevel

	ChildCount  int
	HasChildren bool
	Expanded    bool
}

// IsTask reports whether the row is a task or subtask row.
func (r Row) IsTask() bool {
	return r.Kind == RowTask || r.Kind == RowSubtask
}

// EntityID returns the identity of the entity behind the row.
func (r Row) EntityID() string {
	switch r.Kind {
	case RowPhase:
		return r.PhaseID
	case RowTaskList:
		return r.TaskListID
	default:
		return r.TaskID
	}
}

func phaseKey(id string) string    { return "phase:" + id }
func taskListKey(id string) string { return "tasklist:" + id }
func taskKey(id string) string     { return "task:" + id }
