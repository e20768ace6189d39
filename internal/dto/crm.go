package dto

import (
	"time"

	"github.com/lonsystemskt/evento-card-gestor-92/internal/models"
	"github.com/lonsystemskt/evento-card-gestor-92/internal/utils"
)

type CreateContactRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"omitempty,email"`
	Phone        string `json:"phone"`
	Subject      string `json:"subject"`
	PriorityDate string `json:"priority_date" binding:"required"`
}

type UpdateContactRequest struct {
	Name         *string `json:"name"`
	Email        *string `json:"email" binding:"omitempty,email"`
	Phone        *string `json:"phone"`
	Subject      *string `json:"subject"`
	PriorityDate *string `json:"priority_date"`
}

type CreateNoteRequest struct {
	Subject      string `json:"subject" binding:"required"`
	PriorityDate string `json:"priority_date" binding:"required"`
	Owner        string `json:"owner"`
}

type UpdateNoteRequest struct {
	Subject      *string `json:"subject"`
	PriorityDate *string `json:"priority_date"`
	Owner        *string `json:"owner"`
}

// ContactDTO represents a CRM contact in API responses
type ContactDTO struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Subject      string `json:"subject"`
	PriorityDate string `json:"priority_date"`
	CreatedAt    string `json:"created_at"`
}

// NoteDTO represents a note in API responses
type NoteDTO struct {
	ID           string           `json:"id"`
	Subject      string           `json:"subject"`
	PriorityDate string           `json:"priority_date"`
	Owner        models.NoteOwner `json:"owner"`
	CreatedAt    string           `json:"created_at"`
}

func ToContactDTO(c models.CRMContact, cal *utils.Calendar) ContactDTO {
	return ContactDTO{
		ID:           c.ID,
		Name:         c.Name,
		Email:        c.Email,
		Phone:        c.Phone,
		Subject:      c.Subject,
		PriorityDate: cal.FormatDate(c.PriorityDate),
		CreatedAt:    formatTimestamp(c.CreatedAt, cal),
	}
}

func ToContactDTOs(contacts []models.CRMContact, cal *utils.Calendar) []ContactDTO {
	out := make([]ContactDTO, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, ToContactDTO(c, cal))
	}
	return out
}

func ToNoteDTO(n models.Note, cal *utils.Calendar) NoteDTO {
	return NoteDTO{
		ID:           n.ID,
		Subject:      n.Subject,
		PriorityDate: cal.FormatDate(n.PriorityDate),
		Owner:        n.Owner,
		CreatedAt:    formatTimestamp(n.CreatedAt, cal),
	}
}

func ToNoteDTOs(notes []models.Note, cal *utils.Calendar) []NoteDTO {
	out := make([]NoteDTO, 0, len(notes))
	for _, n := range notes {
		out = append(out, ToNoteDTO(n, cal))
	}
	return out
}

func formatTimestamp(t time.Time, cal *utils.Calendar) string {
	return t.In(cal.Location()).Format(time.RFC3339)
}
