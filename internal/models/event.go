package models

import "time"

// Event is a top-level unit (a campaign, a project) that owns demands.
// The JSON layout is the persisted one.
type Event struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Logo          *string   `json:"logo,omitempty"`
	Date          time.Time `json:"date"`
	IsArchived    bool      `json:"isArchived"`
	IsPriority    bool      `json:"isPriority"`
	PriorityOrder *int      `json:"priorityOrder,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Clone returns a deep copy so callers never share pointers with a manager.
func (e Event) Clone() Event {
	if e.Logo != nil {
		logo := *e.Logo
		e.Logo = &logo
	}
	if e.PriorityOrder != nil {
		order := *e.PriorityOrder
		e.PriorityOrder = &order
	}
	return e
}
