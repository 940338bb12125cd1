package testutil

import (
	"time"

	"github.com/google/uuid"

	"phaseboard/internal/domain"
	"phaseboard/internal/repository"
)

// Phase options

type PhaseOption func(*domain.Phase)

func WithPhaseDates(start, end time.Time) PhaseOption {
	return func(p *domain.Phase) {
		p.StartDate = &start
		p.EndDate = &end
	}
}

func NewTestPhase(name string, opts ...PhaseOption) *domain.Phase {
	now := time.Now().UTC()
	p := &domain.Phase{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// TaskList options

type ListOption func(*domain.TaskList)

func WithAccess(a domain.AccessLevel) ListOption {
	return func(l *domain.TaskList) {
		l.Access = a
	}
}

func NewTestList(phaseID, name string, opts ...ListOption) *domain.TaskList {
	now := time.Now().UTC()
	l := &domain.TaskList{
		ID:        uuid.New().String(),
		PhaseID:   phaseID,
		Name:      name,
		Access:    domain.AccessPublic,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Task options

type TaskOption func(*repository.TaskRecord)

func WithTaskParent(id string) TaskOption {
	return func(rec *repository.TaskRecord) {
		rec.ParentID = &id
	}
}

func WithTaskStatus(status string) TaskOption {
	return func(rec *repository.TaskRecord) {
		rec.Status = status
	}
}

func WithTaskPriority(p int) TaskOption {
	return func(rec *repository.TaskRecord) {
		rec.Priority = p
	}
}

func WithTaskOrder(i int) TaskOption {
	return func(rec *repository.TaskRecord) {
		rec.Order = i
	}
}

func WithTaskDueDate(d time.Time) TaskOption {
	return func(rec *repository.TaskRecord) {
		rec.DueDate = &d
	}
}

func WithTaskTags(tags ...string) TaskOption {
	return func(rec *repository.TaskRecord) {
		rec.Tags = tags
	}
}

func WithTaskAssignees(users ...string) TaskOption {
	return func(rec *repository.TaskRecord) {
		rec.Assignees = users
	}
}

func NewTestTask(listID, title string, opts ...TaskOption) *repository.TaskRecord {
	now := time.Now().UTC()
	rec := &repository.TaskRecord{
		Task: domain.Task{
			ID:        uuid.New().String(),
			Title:     title,
			Status:    "open",
			Priority:  3,
			CreatedAt: now,
			UpdatedAt: now,
		},
		TaskListID: listID,
	}
	for _, opt := range opts {
		opt(rec)
	}
	return rec
}
