package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"phaseboard/internal/domain"
	"phaseboard/internal/dto"
	"phaseboard/internal/service"
)

type PhaseHandler struct {
	phases service.PhaseService
}

func NewPhaseHandler(phases service.PhaseService) *PhaseHandler {
	return &PhaseHandler{phases: phases}
}

func (h *PhaseHandler) Create(c *gin.Context) {
	var req dto.CreatePhaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "")
		return
	}
	p := &domain.Phase{
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	if err := h.phases.Create(c.Request.Context(), p); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, phaseToDTO(p))
}

func (h *PhaseHandler) Update(c *gin.Context) {
	var req dto.UpdatePhaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "")
		return
	}
	p, err := h.phases.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	p.Name = req.Name
	p.StartDate = req.StartDate
	p.EndDate = req.EndDate
	if err := h.phases.Update(c.Request.Context(), p); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, phaseToDTO(p))
}

func (h *PhaseHandler) Delete(c *gin.Context) {
	if err := h.phases.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PhaseHandler) Reorder(c *gin.Context) {
	var req dto.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "")
		return
	}
	if err := h.phases.Reorder(c.Request.Context(), req.OrderedIDs); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func phaseToDTO(p *domain.Phase) dto.PhaseDTO {
	return dto.PhaseDTO{
		ID:        p.ID,
		Name:      p.Name,
		StartDate: p.StartDate,
		EndDate:   p.EndDate,
		TaskLists: []dto.TaskListDTO{},
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
