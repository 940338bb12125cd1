package repository

import (
	"context"
	"errors"

	"phaseboard/internal/domain"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// TaskRecord is a task row as persisted: the domain task plus its owning
// list. The in-memory tree derives list membership from traversal context,
// so the domain type does not carry it; the store must.
type TaskRecord struct {
	domain.Task
	TaskListID string
	// Order is the sibling position within the parent (or among the
	// list's roots when ParentID is nil).
	Order int
}

// PhaseRepo persists phases. List results come back in stored order
// (order_index); UpdateOrder rewrites the indexes from a full ID
// permutation.
type PhaseRepo interface {
	Create(ctx context.Context, p *domain.Phase) error
	GetByID(ctx context.Context, id string) (*domain.Phase, error)
	List(ctx context.Context) ([]*domain.Phase, error)
	Update(ctx context.Context, p *domain.Phase) error
	Delete(ctx context.Context, id string) error
	UpdateOrder(ctx context.Context, orderedIDs []string) error
	NextOrderIndex(ctx context.Context) (int, error)
}

// TaskListRepo persists task lists. Phase rows returned by PhaseRepo are
// bare; owning relations are assembled by the tree service.
type TaskListRepo interface {
	Create(ctx context.Context, l *domain.TaskList) error
	GetByID(ctx context.Context, id string) (*domain.TaskList, error)
	ListByPhase(ctx context.Context, phaseID string) ([]*domain.TaskList, error)
	ListAll(ctx context.Context) ([]*domain.TaskList, error)
	Update(ctx context.Context, l *domain.TaskList) error
	Delete(ctx context.Context, id string) error
	UpdateOrder(ctx context.Context, phaseID string, orderedIDs []string) error
	NextOrderIndex(ctx context.Context, phaseID string) (int, error)
}

// TaskRepo persists tasks. Root membership and subtask nesting are both
// expressed through parent_id plus order_index; deletion cascades through
// the subtree at the schema level.
type TaskRepo interface {
	Create(ctx context.Context, rec *TaskRecord) error
	GetByID(ctx context.Context, id string) (*TaskRecord, error)
	ListAll(ctx context.Context) ([]*TaskRecord, error)
	ListRoots(ctx context.Context, listID string) ([]*TaskRecord, error)
	ListChildren(ctx context.Context, parentID string) ([]*TaskRecord, error)
	Update(ctx context.Context, rec *TaskRecord) error
	Delete(ctx context.Context, id string) error

	// Move primitives, composed transactionally by the task service.
	SetSubtreeList(ctx context.Context, taskID, listID string) error
	SetParent(ctx context.Context, taskID string, parentID *string) error
	UpdateRootOrder(ctx context.Context, listID string, orderedIDs []string) error
	NextRootOrderIndex(ctx context.Context, listID string) (int, error)
	NextChildOrderIndex(ctx context.Context, parentID string) (int, error)
}
