package models

import "time"

// CRMContact is a flat CRM record with a follow-up date.
type CRMContact struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Subject      string    `json:"subject"`
	PriorityDate time.Time `json:"priorityDate"`
	CreatedAt    time.Time `json:"createdAt"`
}
