package repositories

import (
	"fmt"

	"florist/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMSnapshotRepository is a GORM implementation of SnapshotRepository.
type GORMSnapshotRepository struct {
	db *gorm.DB
}

// NewGORMSnapshotRepository creates a new instance of GORMSnapshotRepository.
func NewGORMSnapshotRepository(db *gorm.DB) *GORMSnapshotRepository {
	return &GORMSnapshotRepository{
		db: db,
	}
}

// Save stores a new snapshot for a screen.
func (r *GORMSnapshotRepository) Save(snapshot *models.Snapshot) error {
	if snapshot.ID == "" {
		snapshot.ID = uuid.New().String()
	}
	if err := r.db.Create(snapshot).Error; err != nil {
		return fmt.Errorf("failed to save snapshot for screen %s: %w", snapshot.Screen, err)
	}
	return nil
}

// Latest retrieves the most recent snapshot of a screen.
func (r *GORMSnapshotRepository) Latest(screen string) (*models.Snapshot, error) {
	var snapshot models.Snapshot
	err := r.db.Where("screen = ?", screen).Order("created_at DESC").First(&snapshot).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("no snapshot for screen %s", screen)
		}
		return nil, fmt.Errorf("failed to get latest snapshot for screen %s: %w", screen, err)
	}
	return &snapshot, nil
}
