package constants

import "time"

// Storage keys for the persisted collections.
const (
	StorageKeyEvents   = "lon-events"
	StorageKeyDemands  = "lon-demands"
	StorageKeyContacts = "lon-crm-contacts"
	StorageKeyNotes    = "lon-notes"
)

// DefaultPollInterval bounds how stale a manager can be relative to the store.
const DefaultPollInterval = 5 * time.Second

// UrgentWindowDays is the last day offset (inclusive) still classified as current.
const UrgentWindowDays = 3

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// Context keys
const (
	ContextKeyEvent = "event"
)

// MaxDraftedDemands caps how many demands the drafting assistant may propose at once.
const MaxDraftedDemands = 20
