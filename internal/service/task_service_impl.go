package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"phaseboard/internal/db"
	"phaseboard/internal/domain"
	"phaseboard/internal/repository"
)

type taskService struct {
	tasks    repository.TaskRepo
	lists    repository.TaskListRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewTaskService(tasks repository.TaskRepo, lists repository.TaskListRepo, uow db.UnitOfWork, observer UseCaseObserver) TaskService {
	if observer == nil {
		observer = NoopUseCaseObserver{}
	}
	return &taskService{tasks: tasks, lists: lists, uow: uow, observer: observer}
}

func (s *taskService) Create(ctx context.Context, rec *repository.TaskRecord) error {
	if rec.Status == "" {
		rec.Status = domain.DefaultTaskStatuses[0]
	}
	if rec.Priority == 0 {
		rec.Priority = 3
	}
	if err := validateTask(rec); err != nil {
		return err
	}
	if _, err := s.lists.GetByID(ctx, rec.TaskListID); err != nil {
		return err
	}
	if rec.ParentID != nil {
		parent, err := s.tasks.GetByID(ctx, *rec.ParentID)
		if err != nil {
			return err
		}
		if parent.TaskListID != rec.TaskListID {
			return fmt.Errorf("%w: parent task belongs to a different list", ErrConflict)
		}
	}
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	var (
		next int
		err  error
	)
	if rec.ParentID == nil {
		next, err = s.tasks.NextRootOrderIndex(ctx, rec.TaskListID)
	} else {
		next, err = s.tasks.NextChildOrderIndex(ctx, *rec.ParentID)
	}
	if err != nil {
		return err
	}
	rec.Order = next
	now := time.Now().UTC()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	return s.tasks.Create(ctx, rec)
}

func (s *taskService) GetByID(ctx context.Context, id string) (*repository.TaskRecord, error) {
	return s.tasks.GetByID(ctx, id)
}

func (s *taskService) Update(ctx context.Context, rec *repository.TaskRecord) error {
	if err := validateTask(rec); err != nil {
		return err
	}
	rec.UpdatedAt = time.Now().UTC()
	return s.tasks.Update(ctx, rec)
}

func (s *taskService) Delete(ctx context.Context, id string) error {
	return s.tasks.Delete(ctx, id)
}

// Move runs entirely inside one transaction: the in-memory tree computes
// the resulting sibling orders from the flattened index, then the new
// parent, list membership and order indexes are written back together.
func (s *taskService) Move(ctx context.Context, taskID, listID, phaseID string, orderIndex int) error {
	return observe(ctx, s.observer, "task.move",
		map[string]any{"task_id": taskID, "list_id": listID, "order_index": orderIndex},
		func(ctx context.Context) error {
			return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
				txPhases := repository.NewSQLitePhaseRepo(tx)
				txLists := repository.NewSQLiteTaskListRepo(tx)
				txTasks := repository.NewSQLiteTaskRepo(tx)

				dest, err := txLists.GetByID(ctx, listID)
				if err != nil {
					return err
				}
				if phaseID != "" && dest.PhaseID != phaseID {
					return fmt.Errorf("%w: list %s is not in phase %s", ErrConflict, listID, phaseID)
				}

				tree, err := loadTree(ctx, txPhases, txLists, txTasks)
				if err != nil {
					return err
				}
				if tree.Task(taskID) == nil {
					return fmt.Errorf("task %s: %w", taskID, repository.ErrNotFound)
				}
				source, _ := tree.ListOfTask(taskID)
				if err := tree.ApplyTaskMove(taskID, listID, orderIndex); err != nil {
					return fmt.Errorf("%w: %v", ErrInvalid, err)
				}

				if err := txTasks.SetParent(ctx, taskID, nil); err != nil {
					return err
				}
				if err := txTasks.SetSubtreeList(ctx, taskID, listID); err != nil {
					return err
				}
				destList, _ := tree.List(listID)
				if err := txTasks.UpdateRootOrder(ctx, listID, destList.TaskIDs); err != nil {
					return err
				}
				if source != nil && source.ID != listID {
					if err := txTasks.UpdateRootOrder(ctx, source.ID, source.TaskIDs); err != nil {
						return err
					}
				}
				return nil
			})
		})
}

func validateTask(rec *repository.TaskRecord) error {
	if rec.Title == "" {
		return fmt.Errorf("%w: task title is required", ErrInvalid)
	}
	if !domain.ValidPriority(rec.Priority) {
		return fmt.Errorf("%w: priority %d outside %d..%d", ErrInvalid,
			rec.Priority, domain.PriorityMin, domain.PriorityMax)
	}
	return nil
}
