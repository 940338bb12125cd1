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

type taskListService struct {
	lists    repository.TaskListRepo
	phases   repository.PhaseRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewTaskListService(lists repository.TaskListRepo, phases repository.PhaseRepo, uow db.UnitOfWork, observer UseCaseObserver) TaskListService {
	if observer == nil {
		observer = NoopUseCaseObserver{}
	}
	return &taskListService{lists: lists, phases: phases, uow: uow, observer: observer}
}

func (s *taskListService) Create(ctx context.Context, l *domain.TaskList) error {
	if err := validateTaskList(l); err != nil {
		return err
	}
	if _, err := s.phases.GetByID(ctx, l.PhaseID); err != nil {
		return err
	}
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	if l.Access == "" {
		l.Access = domain.AccessPublic
	}
	now := time.Now().UTC()
	l.CreatedAt = now
	l.UpdatedAt = now
	return s.lists.Create(ctx, l)
}

func (s *taskListService) GetByID(ctx context.Context, id string) (*domain.TaskList, error) {
	return s.lists.GetByID(ctx, id)
}

func (s *taskListService) Update(ctx context.Context, l *domain.TaskList) error {
	if err := validateTaskList(l); err != nil {
		return err
	}
	l.UpdatedAt = time.Now().UTC()
	return s.lists.Update(ctx, l)
}

func (s *taskListService) Delete(ctx context.Context, id string) error {
	return s.lists.Delete(ctx, id)
}

func (s *taskListService) Reorder(ctx context.Context, phaseID string, orderedIDs []string) error {
	return observe(ctx, s.observer, "tasklist.reorder",
		map[string]any{"phase_id": phaseID, "count": len(orderedIDs)},
		func(ctx context.Context) error {
			return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
				txLists := repository.NewSQLiteTaskListRepo(tx)
				if _, err := repository.NewSQLitePhaseRepo(tx).GetByID(ctx, phaseID); err != nil {
					return err
				}
				stored, err := txLists.ListByPhase(ctx, phaseID)
				if err != nil {
					return err
				}
				ids := make([]string, len(stored))
				for i, l := range stored {
					ids[i] = l.ID
				}
				if err := requirePermutation(orderedIDs, ids); err != nil {
					return err
				}
				return txLists.UpdateOrder(ctx, phaseID, orderedIDs)
			})
		})
}

func validateTaskList(l *domain.TaskList) error {
	if l.Name == "" {
		return fmt.Errorf("%w: task list name is required", ErrInvalid)
	}
	if l.Access != "" && !domain.ValidAccessLevels[string(l.Access)] {
		return fmt.Errorf("%w: unknown access level %q", ErrInvalid, l.Access)
	}
	return nil
}
