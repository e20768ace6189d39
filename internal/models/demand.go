package models

import "time"

// Demand is a due-dated sub-task of exactly one Event.
type Demand struct {
	ID          string    `json:"id"`
	EventID     string    `json:"eventId"`
	Title       string    `json:"title"`
	Subject     string    `json:"subject"`
	Date        time.Time `json:"date"`
	IsCompleted bool      `json:"isCompleted"`
	IsArchived  bool      `json:"isArchived"`
	CreatedAt   time.Time `json:"createdAt"`
}

// IsActive reports whether the demand still needs attention.
func (d Demand) IsActive() bool {
	return !d.IsCompleted && !d.IsArchived
}
