package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"phaseboard/internal/dto"
	"phaseboard/internal/repository"
	"phaseboard/internal/service"
)

type TaskHandler struct {
	tasks service.TaskService
}

func NewTaskHandler(tasks service.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// Create adds a task to the list in the path. A parent_id makes it a
// subtask of that parent; otherwise it joins the list's roots.
func (h *TaskHandler) Create(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "")
		return
	}
	rec := &repository.TaskRecord{TaskListID: c.Param("id")}
	rec.Title = req.Title
	rec.Status = req.Status
	rec.Priority = req.Priority
	rec.Assignees = req.Assignees
	rec.Tags = req.Tags
	rec.DueDate = req.DueDate
	rec.ParentID = req.ParentID
	if err := h.tasks.Create(c.Request.Context(), rec); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, taskToDTO(rec))
}

func (h *TaskHandler) Update(c *gin.Context) {
	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "")
		return
	}
	rec, err := h.tasks.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	rec.Title = req.Title
	if req.Status != "" {
		rec.Status = req.Status
	}
	if req.Priority != 0 {
		rec.Priority = req.Priority
	}
	rec.Assignees = req.Assignees
	rec.Tags = req.Tags
	rec.DueDate = req.DueDate
	if err := h.tasks.Update(c.Request.Context(), rec); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, taskToDTO(rec))
}

func (h *TaskHandler) Delete(c *gin.Context) {
	if err := h.tasks.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TaskHandler) Move(c *gin.Context) {
	var req dto.MoveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "")
		return
	}
	err := h.tasks.Move(c.Request.Context(), c.Param("id"), req.TaskListID, req.PhaseID, req.OrderIndex)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func taskToDTO(rec *repository.TaskRecord) dto.TaskDTO {
	return dto.TaskDTO{
		ID:        rec.ID,
		Title:     rec.Title,
		Status:    rec.Status,
		Priority:  rec.Priority,
		Assignees: rec.Assignees,
		Tags:      rec.Tags,
		DueDate:   rec.DueDate,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}
