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

type phaseService struct {
	phases   repository.PhaseRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewPhaseService(phases repository.PhaseRepo, uow db.UnitOfWork, observer UseCaseObserver) PhaseService {
	if observer == nil {
		observer = NoopUseCaseObserver{}
	}
	return &phaseService{phases: phases, uow: uow, observer: observer}
}

func (s *phaseService) Create(ctx context.Context, p *domain.Phase) error {
	if p.Name == "" {
		return fmt.Errorf("%w: phase name is required", ErrInvalid)
	}
	if p.StartDate != nil && p.EndDate != nil && p.EndDate.Before(*p.StartDate) {
		return fmt.Errorf("%w: phase end date precedes start date", ErrInvalid)
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	return s.phases.Create(ctx, p)
}

func (s *phaseService) GetByID(ctx context.Context, id string) (*domain.Phase, error) {
	return s.phases.GetByID(ctx, id)
}

func (s *phaseService) List(ctx context.Context) ([]*domain.Phase, error) {
	return s.phases.List(ctx)
}

func (s *phaseService) Update(ctx context.Context, p *domain.Phase) error {
	if p.Name == "" {
		return fmt.Errorf("%w: phase name is required", ErrInvalid)
	}
	if p.StartDate != nil && p.EndDate != nil && p.EndDate.Before(*p.StartDate) {
		return fmt.Errorf("%w: phase end date precedes start date", ErrInvalid)
	}
	p.UpdatedAt = time.Now().UTC()
	return s.phases.Update(ctx, p)
}

func (s *phaseService) Delete(ctx context.Context, id string) error {
	return s.phases.Delete(ctx, id)
}

func (s *phaseService) Reorder(ctx context.Context, orderedIDs []string) error {
	return observe(ctx, s.observer, "phase.reorder", map[string]any{"count": len(orderedIDs)},
		func(ctx context.Context) error {
			return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
				txPhases := repository.NewSQLitePhaseRepo(tx)
				stored, err := txPhases.List(ctx)
				if err != nil {
					return err
				}
				if err := requirePermutation(orderedIDs, phaseIDs(stored)); err != nil {
					return err
				}
				return txPhases.UpdateOrder(ctx, orderedIDs)
			})
		})
}

func phaseIDs(phases []*domain.Phase) []string {
	ids := make([]string, len(phases))
	for i, p := range phases {
		ids[i] = p.ID
	}
	return ids
}

// requirePermutation verifies submitted covers exactly the stored ID set.
// Reorder payloads carry the complete new order; a partial or padded set
// would silently drop or duplicate rows.
func requirePermutation(submitted, stored []string) error {
	if len(submitted) != len(stored) {
		return fmt.Errorf("%w: order lists %d IDs, store has %d", ErrInvalid, len(submitted), len(stored))
	}
	seen := make(map[string]bool, len(submitted))
	for _, id := range submitted {
		if seen[id] {
			return fmt.Errorf("%w: duplicate ID %q in order", ErrInvalid, id)
		}
		seen[id] = true
	}
	for _, id := range stored {
		if !seen[id] {
			return fmt.Errorf("%w: order is missing ID %q", ErrInvalid, id)
		}
	}
	return nil
}
