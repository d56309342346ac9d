package repositories

import (
	"fmt"
	"sync"
	"time"

	"florist/internal/models"

	"github.com/google/uuid"
)

// MockSnapshotRepository is an in-memory implementation of SnapshotRepository.
type MockSnapshotRepository struct {
	latest map[string]models.Snapshot
	mu     sync.RWMutex
}

// NewMockSnapshotRepository creates a new instance of MockSnapshotRepository.
func NewMockSnapshotRepository() *MockSnapshotRepository {
	return &MockSnapshotRepository{
		latest: make(map[string]models.Snapshot),
	}
}

// Save stores a snapshot, replacing any previous one for the screen.
func (r *MockSnapshotRepository) Save(snapshot *models.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if snapshot.ID == "" {
		snapshot.ID = uuid.New().String()
	}
	snapshot.CreatedAt = time.Now()
	r.latest[snapshot.Screen] = *snapshot
	return nil
}

// Latest returns the last saved snapshot of a screen.
func (r *MockSnapshotRepository) Latest(screen string) (*models.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot, ok := r.latest[screen]
	if !ok {
		return nil, fmt.Errorf("no snapshot for screen %s", screen)
	}
	return &snapshot, nil
}
