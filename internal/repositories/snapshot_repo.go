package repositories

import (
	"florist/internal/models"
)

// SnapshotRepository defines the interface for snapshot data access.
type SnapshotRepository interface {
	Save(snapshot *models.Snapshot) error
	Latest(screen string) (*models.Snapshot, error)
}
