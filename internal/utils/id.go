package utils

import "github.com/google/uuid"

// NewID returns a unique, time-ordered identifier (UUIDv7). Identifiers created
// later in the same process sort after earlier ones.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
