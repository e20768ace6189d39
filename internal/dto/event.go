package dto

import (
	"github.com/lonsystemskt/evento-card-gestor-92/internal/models"
	"github.com/lonsystemskt/evento-card-gestor-92/internal/utils"
)

// Dates in requests are YYYY-MM-DD or RFC3339 strings and are parsed by the
// handlers against the configured calendar.

type CreateEventRequest struct {
	Name string  `json:"name" binding:"required"`
	Logo *string `json:"logo"`
	Date string  `json:"date" binding:"required"`
}

type UpdateEventRequest struct {
	Name       *string `json:"name"`
	Logo       *string `json:"logo"`
	ClearLogo  bool    `json:"clear_logo"`
	Date       *string `json:"date"`
	IsArchived *bool   `json:"is_archived"`
	IsPriority *bool   `json:"is_priority"`
}

type CreateDemandRequest struct {
	EventID string `json:"event_id" binding:"required"`
	Title   string `json:"title" binding:"required"`
	Subject string `json:"subject"`
	Date    string `json:"date" binding:"required"`
}

// CreateEventDemandRequest is CreateDemandRequest with the event taken from the path.
type CreateEventDemandRequest struct {
	Title   string `json:"title" binding:"required"`
	Subject string `json:"subject"`
	Date    string `json:"date" binding:"required"`
}

type UpdateDemandRequest struct {
	EventID     *string `json:"event_id"`
	Title       *string `json:"title"`
	Subject     *string `json:"subject"`
	Date        *string `json:"date"`
	IsCompleted *bool   `json:"is_completed"`
	IsArchived  *bool   `json:"is_archived"`
}

type DraftDemandsRequest struct {
	Text string `json:"text" binding:"required,max=8000"`
}

// EventDTO represents an event in API responses
type EventDTO struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Logo          *string `json:"logo,omitempty"`
	Date          string  `json:"date"`
	IsArchived    bool    `json:"is_archived"`
	IsPriority    bool    `json:"is_priority"`
	PriorityOrder *int    `json:"priority_order,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

// DemandDTO represents a demand in API responses. Urgency is computed at read time.
type DemandDTO struct {
	ID          string             `json:"id"`
	EventID     string             `json:"event_id"`
	Title       string             `json:"title"`
	Subject     string             `json:"subject"`
	Date        string             `json:"date"`
	IsCompleted bool               `json:"is_completed"`
	IsArchived  bool               `json:"is_archived"`
	Urgency     models.UrgencyTier `json:"urgency"`
	CreatedAt   string             `json:"created_at"`
}

type DraftedDemandDTO struct {
	Title   string  `json:"title"`
	Subject string  `json:"subject"`
	Date    *string `json:"date"`
}

// Conversion functions

func ToEventDTO(e models.Event, cal *utils.Calendar) EventDTO {
	return EventDTO{
		ID:            e.ID,
		Name:          e.Name,
		Logo:          e.Logo,
		Date:          cal.FormatDate(e.Date),
		IsArchived:    e.IsArchived,
		IsPriority:    e.IsPriority,
		PriorityOrder: e.PriorityOrder,
		CreatedAt:     formatTimestamp(e.CreatedAt, cal),
	}
}

func ToEventDTOs(events []models.Event, cal *utils.Calendar) []EventDTO {
	out := make([]EventDTO, 0, len(events))
	for _, e := range events {
		out = append(out, ToEventDTO(e, cal))
	}
	return out
}

func ToDemandDTO(d models.Demand, cal *utils.Calendar) DemandDTO {
	return DemandDTO{
		ID:          d.ID,
		EventID:     d.EventID,
		Title:       d.Title,
		Subject:     d.Subject,
		Date:        cal.FormatDate(d.Date),
		IsCompleted: d.IsCompleted,
		IsArchived:  d.IsArchived,
		Urgency:     cal.Urgency(d.Date),
		CreatedAt:   formatTimestamp(d.CreatedAt, cal),
	}
}

func ToDemandDTOs(demands []models.Demand, cal *utils.Calendar) []DemandDTO {
	out := make([]DemandDTO, 0, len(demands))
	for _, d := range demands {
		out = append(out, ToDemandDTO(d, cal))
	}
	return out
}
