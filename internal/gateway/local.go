package gateway

import (
	"context"

	"phaseboard/internal/domain"
	"phaseboard/internal/repository"
	"phaseboard/internal/service"
)

// TreeFetcher loads the current tree from wherever the data lives. Both
// the local backend and the HTTP client implement it alongside Backend.
type TreeFetcher interface {
	FetchTree(ctx context.Context) (*domain.Tree, error)
}

// LocalBackend serves mutations straight from the service layer, for
// running against the embedded database without an API server.
type LocalBackend struct {
	phases service.PhaseService
	lists  service.TaskListService
	tasks  service.TaskService
	tree   service.TreeService
}

func NewLocalBackend(phases service.PhaseService, lists service.TaskListService, tasks service.TaskService, tree service.TreeService) *LocalBackend {
	return &LocalBackend{phases: phases, lists: lists, tasks: tasks, tree: tree}
}

func (b *LocalBackend) ReorderPhases(ctx context.Context, orderedIDs []string) error {
	return b.phases.Reorder(ctx, orderedIDs)
}

func (b *LocalBackend) ReorderTaskLists(ctx context.Context, phaseID string, orderedIDs []string) error {
	return b.lists.Reorder(ctx, phaseID, orderedIDs)
}

func (b *LocalBackend) MoveTask(ctx context.Context, taskID, listID, phaseID string, orderIndex int) error {
	return b.tasks.Move(ctx, taskID, listID, phaseID, orderIndex)
}

func (b *LocalBackend) FetchTree(ctx context.Context) (*domain.Tree, error) {
	return b.tree.Load(ctx)
}

func (b *LocalBackend) CreatePhase(ctx context.Context, p *domain.Phase) error {
	return b.phases.Create(ctx, p)
}

func (b *LocalBackend) UpdatePhase(ctx context.Context, p *domain.Phase) error {
	return b.phases.Update(ctx, p)
}

func (b *LocalBackend) DeletePhase(ctx context.Context, id string) error {
	return b.phases.Delete(ctx, id)
}

func (b *LocalBackend) CreateTaskList(ctx context.Context, l *domain.TaskList) error {
	return b.lists.Create(ctx, l)
}

func (b *LocalBackend) UpdateTaskList(ctx context.Context, l *domain.TaskList) error {
	return b.lists.Update(ctx, l)
}

func (b *LocalBackend) DeleteTaskList(ctx context.Context, id string) error {
	return b.lists.Delete(ctx, id)
}

func (b *LocalBackend) CreateTask(ctx context.Context, rec *repository.TaskRecord) error {
	return b.tasks.Create(ctx, rec)
}

func (b *LocalBackend) UpdateTask(ctx context.Context, rec *repository.TaskRecord) error {
	return b.tasks.Update(ctx, rec)
}

func (b *LocalBackend) DeleteTask(ctx context.Context, id string) error {
	return b.tasks.Delete(ctx, id)
}
