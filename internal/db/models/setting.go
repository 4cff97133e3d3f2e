// Package models contains database model definitions.
package models

import "time"

// Setting represents one key-value entry of the settings store.
// Value holds a JSON payload, for example the extra-field registry
// of an entity type. LastUpdated is stamped on every write.
type Setting struct {
	ID          uint64 `gorm:"primaryKey"`
	Key         string `gorm:"unique"`
	Value       []byte `gorm:"type:blob"`
	LastUpdated time.Time
}
