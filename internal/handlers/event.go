package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lonsystemskt/evento-card-gestor-92/internal/dto"
	apierrors "github.com/lonsystemskt/evento-card-gestor-92/internal/errors"
	"github.com/lonsystemskt/evento-card-gestor-92/internal/middleware"
	"github.com/lonsystemskt/evento-card-gestor-92/internal/models"
	"github.com/lonsystemskt/evento-card-gestor-92/internal/services"
	"github.com/lonsystemskt/evento-card-gestor-92/internal/utils"
)

type EventHandler struct {
	events *services.EventService
	cal    *utils.Calendar
}

func NewEventHandler(events *services.EventService, cal *utils.Calendar) *EventHandler {
	return &EventHandler{
		events: events,
		cal:    cal,
	}
}

// ListEvents returns events for one view: active (default), archived or all
func (h *EventHandler) ListEvents(c *gin.Context) {
	var events []models.Event
	switch view := c.DefaultQuery("view", "active"); view {
	case "active":
		events = h.events.GetActiveEvents()
	case "archived":
		events = h.events.GetArchivedEvents()
	case "all":
		events = h.events.GetAllEvents()
	default:
		apierrors.BadRequest(c, "view must be one of active, archived, all")
		return
	}

	params := utils.GetPaginationParams(c)
	page, pagination := utils.Paginate(events, params)

	c.JSON(http.StatusOK, gin.H{
		"events":     dto.ToEventDTOs(page, h.cal),
		"pagination": pagination,
	})
}

// GetEvent returns the event loaded by RequireEvent
func (h *EventHandler) GetEvent(c *gin.Context) {
	event, ok := middleware.GetEvent(c)
	if !ok {
		apierrors.InternalError(c, "Event not found in context")
		return
	}

	c.JSON(http.StatusOK, dto.ToEventDTO(event, h.cal))
}

// CreateEvent creates a new event
func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	date, ok := parseDate(c, h.cal, "date", req.Date)
	if !ok {
		return
	}

	event, err := h.events.AddEvent(c.Request.Context(), services.CreateEventInput{
		Name: req.Name,
		Logo: req.Logo,
		Date: date,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToEventDTO(*event, h.cal))
}

// UpdateEvent applies a partial update
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	var req dto.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	date, ok := parseOptionalDate(c, h.cal, "date", req.Date)
	if !ok {
		return
	}

	event, err := h.events.UpdateEvent(c.Request.Context(), c.Param("id"), services.UpdateEventInput{
		Name:       req.Name,
		Logo:       req.Logo,
		ClearLogo:  req.ClearLogo,
		Date:       date,
		IsArchived: req.IsArchived,
		IsPriority: req.IsPriority,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEventDTO(*event, h.cal))
}

// DeleteEvent deletes an event together with its demands
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	if err := h.events.DeleteEvent(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
}

// TogglePriority pins or unpins an event
func (h *EventHandler) TogglePriority(c *gin.Context) {
	event, err := h.events.ToggleEventPriority(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEventDTO(*event, h.cal))
}

// ListEventDemands returns the active (default) or completed demands of one event
func (h *EventHandler) ListEventDemands(c *gin.Context) {
	event, ok := middleware.GetEvent(c)
	if !ok {
		apierrors.InternalError(c, "Event not found in context")
		return
	}

	var demands []models.Demand
	switch status := c.DefaultQuery("status", "active"); status {
	case "active":
		demands = h.events.GetActiveDemands(event.ID)
	case "completed":
		demands = h.events.GetCompletedDemands(event.ID)
	default:
		apierrors.BadRequest(c, "status must be one of active, completed")
		return
	}

	params := utils.GetPaginationParams(c)
	page, pagination := utils.Paginate(demands, params)

	c.JSON(http.StatusOK, gin.H{
		"demands":    dto.ToDemandDTOs(page, h.cal),
		"pagination": pagination,
	})
}

// CreateEventDemand adds a demand to the event in the path
func (h *EventHandler) CreateEventDemand(c *gin.Context) {
	var req dto.CreateEventDemandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	date, ok := parseDate(c, h.cal, "date", req.Date)
	if !ok {
		return
	}

	demand, err := h.events.AddDemand(c.Request.Context(), services.CreateDemandInput{
		EventID: c.Param("id"),
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

// DraftDemands proposes demands from free text without saving them
func (h *EventHandler) DraftDemands(c *gin.Context) {
	var req dto.DraftDemandsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	drafted, err := h.events.DraftDemands(c.Request.Context(), c.Param("id"), req.Text)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	out := make([]dto.DraftedDemandDTO, 0, len(drafted))
	for _, d := range drafted {
		item := dto.DraftedDemandDTO{Title: d.Title, Subject: d.Subject}
		if d.Date != nil {
			date := h.cal.FormatDate(*d.Date)
			item.Date = &date
		}
		out = append(out, item)
	}

	c.JSON(http.StatusOK, gin.H{"demands": out})
}
