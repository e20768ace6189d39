package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lonsystemskt/evento-card-gestor-92/internal/dto"
	apierrors "github.com/lonsystemskt/evento-card-gestor-92/internal/errors"
	"github.com/lonsystemskt/evento-card-gestor-92/internal/models"
	"github.com/lonsystemskt/evento-card-gestor-92/internal/services"
	"github.com/lonsystemskt/evento-card-gestor-92/internal/utils"
)

type DemandHandler struct {
	events *services.EventService
	cal    *utils.Calendar
}

func NewDemandHandler(events *services.EventService, cal *utils.Calendar) *DemandHandler {
	return &DemandHandler{
		events: events,
		cal:    cal,
	}
}

// ListDemands returns active (default), completed or all demands, optionally
// narrowed to one event with event_id
func (h *DemandHandler) ListDemands(c *gin.Context) {
	eventID := c.Query("event_id")

	var demands []models.Demand
	switch status := c.DefaultQuery("status", "active"); status {
	case "active":
		demands = h.events.GetActiveDemands(eventID)
	case "completed":
		demands = h.events.GetCompletedDemands(eventID)
	case "all":
		for _, d := range h.events.GetAllDemands() {
			if eventID == "" || d.EventID == eventID {
				demands = append(demands, d)
			}
		}
	default:
		apierrors.BadRequest(c, "status must be one of active, completed, all")
		return
	}

	params := utils.GetPaginationParams(c)
	page, pagination := utils.Paginate(demands, params)

	c.JSON(http.StatusOK, gin.H{
		"demands":    dto.ToDemandDTOs(page, h.cal),
		"pagination": pagination,
	})
}

// GetDemand returns one demand
func (h *DemandHandler) GetDemand(c *gin.Context) {
	demand, err := h.events.GetDemand(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDemandDTO(*demand, h.cal))
}

// CreateDemand creates a demand under an existing event
func (h *DemandHandler) CreateDemand(c *gin.Context) {
	var req dto.CreateDemandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	date, ok := parseDate(c, h.cal, "date", req.Date)
	if !ok {
		return
	}

	demand, err := h.events.AddDemand(c.Request.Context(), services.CreateDemandInput{
		EventID: req.EventID,
		Title:   req.Title,
		Subject: req.Subject,
		Date:    date,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToDemandDTO(*demand, h.cal))
}

// UpdateDemand applies a partial update
func (h *DemandHandler) UpdateDemand(c *gin.Context) {
	var req dto.UpdateDemandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	date, ok := parseOptionalDate(c, h.cal, "date", req.Date)
	if !ok {
		return
	}

	demand, err := h.events.UpdateDemand(c.Request.Context(), c.Param("id"), services.UpdateDemandInput{
		EventID:     req.EventID,
		Title:       req.Title,
		Subject:     req.Subject,
		Date:        date,
		IsCompleted: req.IsCompleted,
		IsArchived:  req.IsArchived,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDemandDTO(*demand, h.cal))
}

// DeleteDemand deletes one demand
func (h *DemandHandler) DeleteDemand(c *gin.Context) {
	if err := h.events.DeleteDemand(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Demand deleted successfully"})
}
