package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phaseboard/internal/domain"
	"phaseboard/internal/repository"
	"phaseboard/internal/testutil"
)

type listFixture struct {
	database *sql.DB
	phases   PhaseService
	lists    TaskListService
	phaseID  string
}

func newListFixture(t *testing.T) *listFixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	phaseRepo := repository.NewSQLitePhaseRepo(database)
	f := &listFixture{
		database: database,
		phases:   NewPhaseService(phaseRepo, uow, nil),
		lists:    NewTaskListService(repository.NewSQLiteTaskListRepo(database), phaseRepo, uow, nil),
	}
	p := &domain.Phase{Name: "Build"}
	require.NoError(t, f.phases.Create(context.Background(), p))
	f.phaseID = p.ID
	return f
}

func TestTaskListService_CreateDefaultsAccess(t *testing.T) {
	f := newListFixture(t)

	l := &domain.TaskList{PhaseID: f.phaseID, Name: "Backend"}
	require.NoError(t, f.lists.Create(context.Background(), l))

	assert.NotEmpty(t, l.ID)
	assert.Equal(t, domain.AccessPublic, l.Access)
}

func TestTaskListService_CreateRequiresExistingPhase(t *testing.T) {
	f := newListFixture(t)

	err := f.lists.Create(context.Background(), &domain.TaskList{PhaseID: "ghost", Name: "Orphan"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTaskListService_CreateRejectsUnknownAccess(t *testing.T) {
	f := newListFixture(t)

	err := f.lists.Create(context.Background(), &domain.TaskList{
		PhaseID: f.phaseID, Name: "Backend", Access: "secret",
	})
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestTaskListService_ReorderPermutesWithinPhase(t *testing.T) {
	f := newListFixture(t)
	ctx := context.Background()

	var ids []string
	for _, name := range []string{"Alpha", "Beta", "Gamma"} {
		l := &domain.TaskList{PhaseID: f.phaseID, Name: name}
		require.NoError(t, f.lists.Create(ctx, l))
		ids = append(ids, l.ID)
	}

	want := []string{ids[1], ids[2], ids[0]}
	require.NoError(t, f.lists.Reorder(ctx, f.phaseID, want))

	stored, err := repository.NewSQLiteTaskListRepo(f.database).ListByPhase(ctx, f.phaseID)
	require.NoError(t, err)
	got := make([]string, len(stored))
	for i, l := range stored {
		got[i] = l.ID
	}
	assert.Equal(t, want, got)
}

func TestTaskListService_ReorderRejectsListFromOtherPhase(t *testing.T) {
	f := newListFixture(t)
	ctx := context.Background()

	other := &domain.Phase{Name: "Later"}
	require.NoError(t, f.phases.Create(ctx, other))

	mine := &domain.TaskList{PhaseID: f.phaseID, Name: "Mine"}
	theirs := &domain.TaskList{PhaseID: other.ID, Name: "Theirs"}
	require.NoError(t, f.lists.Create(ctx, mine))
	require.NoError(t, f.lists.Create(ctx, theirs))

	err := f.lists.Reorder(ctx, f.phaseID, []string{theirs.ID})
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestTaskListService_ReorderUnknownPhase(t *testing.T) {
	f := newListFixture(t)

	err := f.lists.Reorder(context.Background(), "ghost", nil)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
