package service

import (
	"context"
	"errors"

	"phaseboard/internal/domain"
	"phaseboard/internal/repository"
)

var (
	// ErrInvalid marks malformed input the caller can fix. Handlers map
	// it to a 400.
	ErrInvalid = errors.New("invalid input")

	// ErrConflict marks a well-formed request that violates a
	// cross-entity constraint. Handlers map it to a 422.
	ErrConflict = errors.New("constraint violation")
)

type PhaseService interface {
	Create(ctx context.Context, p *domain.Phase) error
	GetByID(ctx context.Context, id string) (*domain.Phase, error)
	List(ctx context.Context) ([]*domain.Phase, error)
	Update(ctx context.Context, p *domain.Phase) error
	Delete(ctx context.Context, id string) error
	// Reorder replaces the global phase ordering. orderedIDs must be a
	// permutation of every stored phase ID.
	Reorder(ctx context.Context, orderedIDs []string) error
}

type TaskListService interface {
	Create(ctx context.Context, l *domain.TaskList) error
	GetByID(ctx context.Context, id string) (*domain.TaskList, error)
	Update(ctx context.Context, l *domain.TaskList) error
	Delete(ctx context.Context, id string) error
	// Reorder replaces the list ordering within one phase. orderedIDs
	// must be a permutation of that phase's stored list IDs.
	Reorder(ctx context.Context, phaseID string, orderedIDs []string) error
}

type TaskService interface {
	Create(ctx context.Context, rec *repository.TaskRecord) error
	GetByID(ctx context.Context, id string) (*repository.TaskRecord, error)
	Update(ctx context.Context, rec *repository.TaskRecord) error
	Delete(ctx context.Context, id string) error
	// Move re-homes a task and its subtree to listID at a root-level
	// position. orderIndex counts positions in the destination list's
	// flattened task ordering, matching what a client computes from its
	// rendered rows.
	Move(ctx context.Context, taskID, listID, phaseID string, orderIndex int) error
}

// TreeService assembles the full phase/list/task hierarchy from storage.
type TreeService interface {
	Load(ctx context.Context) (*domain.Tree, error)
}
