package models

import "time"

type NoteOwner string

const (
	OwnerThiago NoteOwner = "Thiago"
	OwnerKalil  NoteOwner = "Kalil"
)

// DefaultNoteOwner is assigned when a note arrives without a known owner.
const DefaultNoteOwner = OwnerThiago

// NoteOwners lists every accepted owner.
var NoteOwners = []NoteOwner{OwnerThiago, OwnerKalil}

func (o NoteOwner) Valid() bool {
	for _, owner := range NoteOwners {
		if o == owner {
			return true
		}
	}
	return false
}

type Note struct {
	ID           string    `json:"id"`
	Subject      string    `json:"subject"`
	PriorityDate time.Time `json:"priorityDate"`
	Owner        NoteOwner `json:"owner"`
	CreatedAt    time.Time `json:"createdAt"`
}
