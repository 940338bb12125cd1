package cli

import (
	"context"

	"phaseboard/internal/domain"
	"phaseboard/internal/gateway"
	"phaseboard/internal/repository"
)

// BoardClient is everything the TUI needs from a backend: the mutation
// surface the gateway drives, the tree refetch, and plain CRUD for the
// add/edit/delete actions. Both the HTTP client and the in-process
// adapter satisfy it.
type BoardClient interface {
	gateway.Backend
	gateway.TreeFetcher

	CreatePhase(ctx context.Context, p *domain.Phase) error
	UpdatePhase(ctx context.Context, p *domain.Phase) error
	DeletePhase(ctx context.Context, id string) error

	CreateTaskList(ctx context.Context, l *domain.TaskList) error
	UpdateTaskList(ctx context.Context, l *domain.TaskList) error
	DeleteTaskList(ctx context.Context, id string) error

	CreateTask(ctx context.Context, rec *repository.TaskRecord) error
	UpdateTask(ctx context.Context, rec *repository.TaskRecord) error
	DeleteTask(ctx context.Context, id string) error
}
