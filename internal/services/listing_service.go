package services

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"florist/internal/models"
	"florist/internal/repositories"
)

// ErrEmptyExport is returned when an export matches no rows. The screens it
// replaces dropped this on the floor with an alert; here it is an error the
// handler can render.
var ErrEmptyExport = errors.New("no rows to export")

// ErrUnknownScreen is returned for a screen name nothing registered.
var ErrUnknownScreen = errors.New("unknown screen")

// Row is one table row of an admin screen, cells aligned to the screen's
// column set.
type Row []string

// Screen is one parameterized admin/employee list screen: a column set plus
// the fetch that produces its rows from the backend.
type Screen struct {
	Name    string
	Columns []string
	Fetch   func(ctx context.Context, token string) ([]Row, error)
}

// ListingService consolidates the list/filter/export screens. A fetch stores
// a snapshot; filtering and CSV export run purely over the last stored
// snapshot and never re-query the backend. All screens share one CSV
// delimiter.
type ListingService struct {
	repo      repositories.SnapshotRepository
	screens   map[string]Screen
	delimiter rune
}

// NewListingService creates a ListingService writing CSV with delimiter.
func NewListingService(repo repositories.SnapshotRepository, delimiter rune) *ListingService {
	return &ListingService{
		repo:      repo,
		screens:   make(map[string]Screen),
		delimiter: delimiter,
	}
}

// Register adds a screen to the registry.
func (s *ListingService) Register(screen Screen) {
	s.screens[screen.Name] = screen
}

// Screen looks a screen up by name.
func (s *ListingService) Screen(name string) (Screen, error) {
	screen, ok := s.screens[name]
	if !ok {
		return Screen{}, fmt.Errorf("%w: %s", ErrUnknownScreen, name)
	}
	return screen, nil
}

// Refresh fetches a screen's collection from the backend and stores it as
// the screen's latest snapshot.
func (s *ListingService) Refresh(ctx context.Context, token, name string) ([]Row, error) {
	screen, err := s.Screen(name)
	if err != nil {
		return nil, err
	}

	rows, err := screen.Fetch(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", name, err)
	}

	columnsJSON, err := json.Marshal(screen.Columns)
	if err != nil {
		return nil, fmt.Errorf("failed to encode columns: %w", err)
	}
	rowsJSON, err := json.Marshal(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to encode rows: %w", err)
	}

	snapshot := &models.Snapshot{
		Screen:  name,
		Columns: string(columnsJSON),
		Rows:    string(rowsJSON),
	}
	if err := s.repo.Save(snapshot); err != nil {
		return nil, err
	}
	return rows, nil
}

// Latest returns the rows of the screen's last stored snapshot.
func (s *ListingService) Latest(name string) ([]Row, error) {
	if _, err := s.Screen(name); err != nil {
		return nil, err
	}
	snapshot, err := s.repo.Latest(name)
	if err != nil {
		return nil, err
	}

	var rows []Row
	if err := json.Unmarshal([]byte(snapshot.Rows), &rows); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot rows: %w", err)
	}
	return rows, nil
}

// Filter returns the rows whose cells contain query, case-insensitively.
// An empty query returns every row. The filter is pure and synchronous.
func (s *ListingService) Filter(rows []Row, query string) []Row {
	if query == "" {
		return rows
	}
	q := strings.ToLower(query)
	filtered := make([]Row, 0, len(rows))
	for _, row := range rows {
		for _, cell := range row {
			if strings.Contains(strings.ToLower(cell), q) {
				filtered = append(filtered, row)
				break
			}
		}
	}
	return filtered
}

// ExportCSV writes the filtered latest snapshot of a screen as CSV: a header
// row of column names followed by the data rows. An empty result set is an
// error, never a silent empty file.
func (s *ListingService) ExportCSV(w io.Writer, name, query string) error {
	screen, err := s.Screen(name)
	if err != nil {
		return err
	}
	rows, err := s.Latest(name)
	if err != nil {
		return err
	}

	filtered := s.Filter(rows, query)
	if len(filtered) == 0 {
		return fmt.Errorf("%w: screen %s", ErrEmptyExport, name)
	}

	cw := csv.NewWriter(w)
	cw.Comma = s.delimiter
	if err := cw.Write(screen.Columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range filtered {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}
