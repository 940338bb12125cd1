package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phaseboard/internal/domain"
	"phaseboard/internal/repository"
	"phaseboard/internal/server"
	"phaseboard/internal/service"
	"phaseboard/internal/testutil"
)

// newTestClient wires a client against a real in-memory server, so these
// tests cover both sides of the wire.
func newTestClient(t *testing.T) *Client {
	t.Helper()
	gin.SetMode(gin.TestMode)
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	phaseRepo := repository.NewSQLitePhaseRepo(database)
	listRepo := repository.NewSQLiteTaskListRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)

	router := server.NewRouter(server.Services{
		Phases: service.NewPhaseService(phaseRepo, uow, nil),
		Lists:  service.NewTaskListService(listRepo, phaseRepo, uow, nil),
		Tasks:  service.NewTaskService(taskRepo, listRepo, uow, nil),
		Tree:   service.NewTreeService(phaseRepo, listRepo, taskRepo),
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL)
}

func TestClient_RoundTrip(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	phase := &domain.Phase{Name: "Discovery"}
	require.NoError(t, c.CreatePhase(ctx, phase))
	require.NotEmpty(t, phase.ID)

	list := &domain.TaskList{PhaseID: phase.ID, Name: "Research"}
	require.NoError(t, c.CreateTaskList(ctx, list))
	assert.Equal(t, domain.AccessPublic, list.Access)

	root := &repository.TaskRecord{TaskListID: list.ID}
	root.Title = "Interview users"
	require.NoError(t, c.CreateTask(ctx, root))

	child := &repository.TaskRecord{TaskListID: list.ID}
	child.Title = "Summarize findings"
	child.ParentID = &root.ID
	require.NoError(t, c.CreateTask(ctx, child))

	tree, err := c.FetchTree(ctx)
	require.NoError(t, err)
	require.Len(t, tree.Phases, 1)
	got, _ := tree.List(list.ID)
	require.NotNil(t, got)
	assert.Equal(t, []string{root.ID}, got.TaskIDs)
	assert.Equal(t, []string{child.ID}, tree.Tasks[root.ID].ChildIDs)
	require.NotNil(t, tree.Tasks[child.ID].ParentID)
	assert.Equal(t, root.ID, *tree.Tasks[child.ID].ParentID)
}

func TestClient_ReorderPhases(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	var ids []string
	for _, name := range []string{"A", "B", "C"} {
		p := &domain.Phase{Name: name}
		require.NoError(t, c.CreatePhase(ctx, p))
		ids = append(ids, p.ID)
	}

	require.NoError(t, c.ReorderPhases(ctx, []string{ids[2], ids[0], ids[1]}))

	tree, err := c.FetchTree(ctx)
	require.NoError(t, err)
	got := make([]string, len(tree.Phases))
	for i, p := range tree.Phases {
		got[i] = p.ID
	}
	assert.Equal(t, []string{ids[2], ids[0], ids[1]}, got)
}

func TestClient_MoveTaskSurfacesRemoteError(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	p1 := &domain.Phase{Name: "Build"}
	p2 := &domain.Phase{Name: "Ship"}
	require.NoError(t, c.CreatePhase(ctx, p1))
	require.NoError(t, c.CreatePhase(ctx, p2))
	l1 := &domain.TaskList{PhaseID: p1.ID, Name: "Backend"}
	l2 := &domain.TaskList{PhaseID: p2.ID, Name: "Release"}
	require.NoError(t, c.CreateTaskList(ctx, l1))
	require.NoError(t, c.CreateTaskList(ctx, l2))
	task := &repository.TaskRecord{TaskListID: l1.ID}
	task.Title = "Mover"
	require.NoError(t, c.CreateTask(ctx, task))

	err := c.MoveTask(ctx, task.ID, l2.ID, p1.ID, 0)
	var remote *RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, http.StatusUnprocessableEntity, remote.StatusCode)
	assert.Equal(t, "INVALID_OPERATION", remote.Code)
	assert.NotEmpty(t, remote.Message)
}

func TestClient_DeleteUnknownPhase(t *testing.T) {
	c := newTestClient(t)

	err := c.DeletePhase(context.Background(), "ghost")
	var remote *RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, http.StatusNotFound, remote.StatusCode)
}

func TestClient_Available(t *testing.T) {
	c := newTestClient(t)
	assert.True(t, c.Available(context.Background()))

	dead := NewClient("http://127.0.0.1:1")
	assert.False(t, dead.Available(context.Background()))
}

func TestClient_FetchTreeServerGone(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c := NewClient(srv.URL)

	_, err := c.FetchTree(context.Background())
	assert.True(t, errors.Is(err, ErrServerUnavailable))
}
