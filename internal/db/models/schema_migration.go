package models

import "time"

// SchemaMigration records one applied data migration.
type SchemaMigration struct {
	Version   string `gorm:"primaryKey"`
	Name      string
	AppliedAt time.Time
}
