package models

import "time"

// StoreEntry is one row of the key-value table used by the SQL store backends.
type StoreEntry struct {
	Key       string    `gorm:"primarykey;type:varchar(191)"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

func (StoreEntry) TableName() string {
	return "kv_entries"
}
