package models

import "time"

// Snapshot is the last fetched copy of an admin screen's collection.
// Filtering and CSV export always run against the latest snapshot of a
// screen, never against the live backend.
type Snapshot struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)"`
	Screen    string    `gorm:"index;type:varchar(50)"`
	Columns   string    `gorm:"type:text"` // JSON array of column names
	Rows      string    `gorm:"type:text"` // JSON array of row arrays
	CreatedAt time.Time // orders snapshots per screen
}
