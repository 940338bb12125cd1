package repository_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phaseboard/internal/repository"
	"phaseboard/internal/testutil"
)

// seedList creates a phase with one task list and returns the list ID.
func seedList(t *testing.T, database *sql.DB) string {
	t.Helper()
	ctx := context.Background()
	phase := testutil.NewTestPhase("Build")
	require.NoError(t, repository.NewSQLitePhaseRepo(database).Create(ctx, phase))
	list := testutil.NewTestList(phase.ID, "Backend")
	require.NoError(t, repository.NewSQLiteTaskListRepo(database).Create(ctx, list))
	return list.ID
}

func TestTaskRepo_CreateAndGetRoundTrips(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteTaskRepo(database)
	ctx := context.Background()
	listID := seedList(t, database)

	due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	rec := testutil.NewTestTask(listID, "Design schema",
		testutil.WithTaskStatus("in_progress"),
		testutil.WithTaskPriority(1),
		testutil.WithTaskDueDate(due),
		testutil.WithTaskTags("db", "urgent"),
		testutil.WithTaskAssignees("ada", "grace"),
	)
	require.NoError(t, repo.Create(ctx, rec))

	got, err := repo.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "Design schema", got.Title)
	assert.Equal(t, "in_progress", got.Status)
	assert.Equal(t, 1, got.Priority)
	assert.Equal(t, []string{"db", "urgent"}, got.Tags)
	assert.Equal(t, []string{"ada", "grace"}, got.Assignees)
	require.NotNil(t, got.DueDate)
	assert.Equal(t, due, *got.DueDate)
	assert.Nil(t, got.ParentID)
}

func TestTaskRepo_RootsAndChildren(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteTaskRepo(database)
	ctx := context.Background()
	listID := seedList(t, database)

	root := testutil.NewTestTask(listID, "Root", testutil.WithTaskOrder(0))
	require.NoError(t, repo.Create(ctx, root))
	c1 := testutil.NewTestTask(listID, "Child 1", testutil.WithTaskParent(root.ID), testutil.WithTaskOrder(0))
	c2 := testutil.NewTestTask(listID, "Child 2", testutil.WithTaskParent(root.ID), testutil.WithTaskOrder(1))
	require.NoError(t, repo.Create(ctx, c1))
	require.NoError(t, repo.Create(ctx, c2))

	roots, err := repo.ListRoots(ctx, listID)
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, root.ID, roots[0].ID)

	children, err := repo.ListChildren(ctx, root.ID)
	require.NoError(t, err)
	require.Len(t, children, 2)
	assert.Equal(t, []string{c1.ID, c2.ID}, []string{children[0].ID, children[1].ID})
}

func TestTaskRepo_DeleteCascadesToSubtree(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteTaskRepo(database)
	ctx := context.Background()
	listID := seedList(t, database)

	root := testutil.NewTestTask(listID, "Root")
	require.NoError(t, repo.Create(ctx, root))
	child := testutil.NewTestTask(listID, "Child", testutil.WithTaskParent(root.ID))
	require.NoError(t, repo.Create(ctx, child))
	grandchild := testutil.NewTestTask(listID, "Grandchild", testutil.WithTaskParent(child.ID))
	require.NoError(t, repo.Create(ctx, grandchild))

	require.NoError(t, repo.Delete(ctx, root.ID))

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestTaskRepo_SetSubtreeList(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteTaskRepo(database)
	ctx := context.Background()
	listID := seedList(t, database)

	other := testutil.NewTestList(seedPhaseID(t, database), "Frontend")
	require.NoError(t, repository.NewSQLiteTaskListRepo(database).Create(ctx, other))

	root := testutil.NewTestTask(listID, "Root")
	require.NoError(t, repo.Create(ctx, root))
	child := testutil.NewTestTask(listID, "Child", testutil.WithTaskParent(root.ID))
	require.NoError(t, repo.Create(ctx, child))

	require.NoError(t, repo.SetSubtreeList(ctx, root.ID, other.ID))

	got, err := repo.GetByID(ctx, child.ID)
	require.NoError(t, err)
	assert.Equal(t, other.ID, got.TaskListID)
}

func TestTaskRepo_SetParentDetaches(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteTaskRepo(database)
	ctx := context.Background()
	listID := seedList(t, database)

	root := testutil.NewTestTask(listID, "Root")
	require.NoError(t, repo.Create(ctx, root))
	child := testutil.NewTestTask(listID, "Child", testutil.WithTaskParent(root.ID))
	require.NoError(t, repo.Create(ctx, child))

	require.NoError(t, repo.SetParent(ctx, child.ID, nil))

	got, err := repo.GetByID(ctx, child.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ParentID)
}

func TestTaskRepo_UpdateRootOrder(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteTaskRepo(database)
	ctx := context.Background()
	listID := seedList(t, database)

	t1 := testutil.NewTestTask(listID, "One", testutil.WithTaskOrder(0))
	t2 := testutil.NewTestTask(listID, "Two", testutil.WithTaskOrder(1))
	require.NoError(t, repo.Create(ctx, t1))
	require.NoError(t, repo.Create(ctx, t2))

	require.NoError(t, repo.UpdateRootOrder(ctx, listID, []string{t2.ID, t1.ID}))

	roots, err := repo.ListRoots(ctx, listID)
	require.NoError(t, err)
	assert.Equal(t, []string{t2.ID, t1.ID}, []string{roots[0].ID, roots[1].ID})
}

func TestTaskRepo_NextOrderIndexes(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteTaskRepo(database)
	ctx := context.Background()
	listID := seedList(t, database)

	next, err := repo.NextRootOrderIndex(ctx, listID)
	require.NoError(t, err)
	assert.Zero(t, next)

	root := testutil.NewTestTask(listID, "Root", testutil.WithTaskOrder(0))
	require.NoError(t, repo.Create(ctx, root))

	next, err = repo.NextRootOrderIndex(ctx, listID)
	require.NoError(t, err)
	assert.Equal(t, 1, next)

	next, err = repo.NextChildOrderIndex(ctx, root.ID)
	require.NoError(t, err)
	assert.Zero(t, next)
}

// seedPhaseID creates a bare phase and returns its ID.
func seedPhaseID(t *testing.T, database *sql.DB) string {
	t.Helper()
	phase := testutil.NewTestPhase("Extra")
	require.NoError(t, repository.NewSQLitePhaseRepo(database).Create(context.Background(), phase))
	return phase.ID
}
