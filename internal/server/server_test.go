package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"

	"phaseboard/internal/dto"
	"phaseboard/internal/repository"
	"phaseboard/internal/service"
	"phaseboard/internal/testutil"
)

type ServerTestSuite struct {
	suite.Suite
	router *gin.Engine
}

func (s *ServerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	database := testutil.NewTestDB(s.T())
	uow := testutil.NewTestUoW(database)
	phaseRepo := repository.NewSQLitePhaseRepo(database)
	listRepo := repository.NewSQLiteTaskListRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)

	s.router = NewRouter(Services{
		Phases: service.NewPhaseService(phaseRepo, uow, nil),
		Lists:  service.NewTaskListService(listRepo, phaseRepo, uow, nil),
		Tasks:  service.NewTaskService(taskRepo, listRepo, uow, nil),
		Tree:   service.NewTreeService(phaseRepo, listRepo, taskRepo),
	})
}

func (s *ServerTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *ServerTestSuite) decode(w *httptest.ResponseRecorder, out any) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), out))
}

func (s *ServerTestSuite) createPhase(name string) string {
	w := s.do(http.MethodPost, "/api/phases", gin.H{"name": name})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var p dto.PhaseDTO
	s.decode(w, &p)
	return p.ID
}

func (s *ServerTestSuite) createList(phaseID, name string) string {
	w := s.do(http.MethodPost, fmt.Sprintf("/api/phases/%s/lists", phaseID), gin.H{"name": name})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var l dto.TaskListDTO
	s.decode(w, &l)
	return l.ID
}

func (s *ServerTestSuite) createTask(listID, title string, extra gin.H) string {
	body := gin.H{"title": title}
	for k, v := range extra {
		body[k] = v
	}
	w := s.do(http.MethodPost, fmt.Sprintf("/api/lists/%s/tasks", listID), body)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var t dto.TaskDTO
	s.decode(w, &t)
	return t.ID
}

func (s *ServerTestSuite) fetchTree() dto.TreeDTO {
	w := s.do(http.MethodGet, "/api/tree", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var tree dto.TreeDTO
	s.decode(w, &tree)
	return tree
}

func (s *ServerTestSuite) TestHealth() {
	w := s.do(http.MethodGet, "/health", nil)
	s.Equal(http.StatusOK, w.Code)
}

func (s *ServerTestSuite) TestCreatePhaseRequiresName() {
	w := s.do(http.MethodPost, "/api/phases", gin.H{})
	s.Equal(http.StatusBadRequest, w.Code)

	var apiErr APIError
	s.decode(w, &apiErr)
	s.Equal(ErrCodeInvalidInput, apiErr.Code)
}

func (s *ServerTestSuite) TestUpdateUnknownPhase() {
	w := s.do(http.MethodPut, "/api/phases/ghost", gin.H{"name": "Renamed"})
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *ServerTestSuite) TestTreeReturnsStoredOrder() {
	p := s.createPhase("Discovery")
	l1 := s.createList(p, "Research")
	l2 := s.createList(p, "Writeup")
	root := s.createTask(l1, "Interview users", nil)
	s.createTask(l1, "Summarize findings", gin.H{"parent_id": root})

	tree := s.fetchTree()
	s.Require().Len(tree.Phases, 1)
	s.Require().Len(tree.Phases[0].TaskLists, 2)
	s.Equal(l1, tree.Phases[0].TaskLists[0].ID)
	s.Equal(l2, tree.Phases[0].TaskLists[1].ID)

	tasks := tree.Phases[0].TaskLists[0].Tasks
	s.Require().Len(tasks, 1)
	s.Equal("Interview users", tasks[0].Title)
	s.Require().Len(tasks[0].Children, 1)
	s.Equal("Summarize findings", tasks[0].Children[0].Title)
}

func (s *ServerTestSuite) TestReorderPhases() {
	a := s.createPhase("A")
	b := s.createPhase("B")
	c := s.createPhase("C")

	w := s.do(http.MethodPut, "/api/phases/order", gin.H{"ordered_ids": []string{c, a, b}})
	s.Require().Equal(http.StatusNoContent, w.Code, w.Body.String())

	tree := s.fetchTree()
	s.Require().Len(tree.Phases, 3)
	s.Equal([]string{c, a, b}, []string{tree.Phases[0].ID, tree.Phases[1].ID, tree.Phases[2].ID})
}

func (s *ServerTestSuite) TestReorderPhasesRejectsMismatchedSet() {
	a := s.createPhase("A")
	s.createPhase("B")

	w := s.do(http.MethodPut, "/api/phases/order", gin.H{"ordered_ids": []string{a}})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *ServerTestSuite) TestReorderTaskLists() {
	p := s.createPhase("Build")
	l1 := s.createList(p, "Alpha")
	l2 := s.createList(p, "Beta")

	w := s.do(http.MethodPut, fmt.Sprintf("/api/phases/%s/lists/order", p),
		gin.H{"ordered_ids": []string{l2, l1}})
	s.Require().Equal(http.StatusNoContent, w.Code, w.Body.String())

	tree := s.fetchTree()
	got := tree.Phases[0].TaskLists
	s.Equal([]string{l2, l1}, []string{got[0].ID, got[1].ID})
}

func (s *ServerTestSuite) TestCreateListUnderUnknownPhase() {
	w := s.do(http.MethodPost, "/api/phases/ghost/lists", gin.H{"name": "Orphan"})
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *ServerTestSuite) TestCreateSubtaskAcrossListsRejected() {
	p := s.createPhase("Build")
	l1 := s.createList(p, "Backend")
	l2 := s.createList(p, "Frontend")
	parent := s.createTask(l1, "Parent", nil)

	w := s.do(http.MethodPost, fmt.Sprintf("/api/lists/%s/tasks", l2),
		gin.H{"title": "Stray", "parent_id": parent})
	s.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (s *ServerTestSuite) TestMoveTaskAcrossLists() {
	p := s.createPhase("Build")
	l1 := s.createList(p, "Backend")
	l2 := s.createList(p, "Frontend")
	mover := s.createTask(l1, "Mover", nil)
	s.createTask(l2, "Existing", nil)

	w := s.do(http.MethodPut, fmt.Sprintf("/api/tasks/%s/move", mover),
		gin.H{"task_list_id": l2, "phase_id": p, "order_index": 0})
	s.Require().Equal(http.StatusNoContent, w.Code, w.Body.String())

	tree := s.fetchTree()
	dest := tree.Phases[0].TaskLists[1]
	s.Require().Len(dest.Tasks, 2)
	s.Equal(mover, dest.Tasks[0].ID)
	s.Empty(tree.Phases[0].TaskLists[0].Tasks)
}

func (s *ServerTestSuite) TestMoveTaskPhaseMismatch() {
	p1 := s.createPhase("Build")
	p2 := s.createPhase("Ship")
	l1 := s.createList(p1, "Backend")
	l2 := s.createList(p2, "Release")
	mover := s.createTask(l1, "Mover", nil)

	w := s.do(http.MethodPut, fmt.Sprintf("/api/tasks/%s/move", mover),
		gin.H{"task_list_id": l2, "phase_id": p1, "order_index": 0})
	s.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (s *ServerTestSuite) TestDeletePhaseCascades() {
	p := s.createPhase("Doomed")
	l := s.createList(p, "Contents")
	s.createTask(l, "Gone", nil)

	w := s.do(http.MethodDelete, "/api/phases/"+p, nil)
	s.Require().Equal(http.StatusNoContent, w.Code)

	tree := s.fetchTree()
	s.Empty(tree.Phases)
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}
