package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"phaseboard/internal/domain"
	"phaseboard/internal/dto"
	"phaseboard/internal/service"
)

type TaskListHandler struct {
	lists service.TaskListService
}

func NewTaskListHandler(lists service.TaskListService) *TaskListHandler {
	return &TaskListHandler{lists: lists}
}

// Create adds a list to the phase in the path. New lists go to the end of
// the phase's ordering.
func (h *TaskListHandler) Create(c *gin.Context) {
	var req dto.CreateTaskListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "")
		return
	}
	l := &domain.TaskList{
		PhaseID: c.Param("id"),
		Name:    req.Name,
		Access:  domain.AccessLevel(req.Access),
	}
	if err := h.lists.Create(c.Request.Context(), l); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, taskListToDTO(l))
}

func (h *TaskListHandler) Update(c *gin.Context) {
	var req dto.UpdateTaskListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "")
		return
	}
	l, err := h.lists.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	l.Name = req.Name
	if req.Access != "" {
		l.Access = domain.AccessLevel(req.Access)
	}
	if err := h.lists.Update(c.Request.Context(), l); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, taskListToDTO(l))
}

func (h *TaskListHandler) Delete(c *gin.Context) {
	if err := h.lists.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Reorder rewrites the list ordering within the phase in the path.
func (h *TaskListHandler) Reorder(c *gin.Context) {
	var req dto.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "")
		return
	}
	if err := h.lists.Reorder(c.Request.Context(), c.Param("id"), req.OrderedIDs); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func taskListToDTO(l *domain.TaskList) dto.TaskListDTO {
	return dto.TaskListDTO{
		ID:        l.ID,
		PhaseID:   l.PhaseID,
		Name:      l.Name,
		Access:    string(l.Access),
		Tasks:     []dto.TaskDTO{},
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}
