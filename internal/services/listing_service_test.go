package services_test

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"florist/internal/repositories"
	"florist/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestListing(rows []services.Row, fetchErr error) (*services.ListingService, *int) {
	listing := services.NewListingService(repositories.NewMockSnapshotRepository(), ';')
	fetches := 0
	listing.Register(services.Screen{
		Name:    "pesanan",
		Columns: []string{"ID", "Receiver", "Status"},
		Fetch: func(ctx context.Context, token string) ([]services.Row, error) {
			fetches++
			if fetchErr != nil {
				return nil, fetchErr
			}
			return rows, nil
		},
	})
	return listing, &fetches
}

func TestListingService_UnknownScreen(t *testing.T) {
	listing, _ := newTestListing(nil, nil)

	_, err := listing.Refresh(context.Background(), "token", "no-such-screen")
	assert.ErrorIs(t, err, services.ErrUnknownScreen)

	_, err = listing.Latest("no-such-screen")
	assert.ErrorIs(t, err, services.ErrUnknownScreen)
}

func TestListingService_RefreshStoresSnapshot(t *testing.T) {
	rows := []services.Row{
		{"1", "Dewi", "pending"},
		{"2", "Budi", "completed"},
	}
	listing, fetches := newTestListing(rows, nil)

	got, err := listing.Refresh(context.Background(), "token", "pesanan")
	require.NoError(t, err)
	assert.Equal(t, rows, got)
	assert.Equal(t, 1, *fetches)

	// Latest replays the stored snapshot without touching the backend.
	stored, err := listing.Latest("pesanan")
	require.NoError(t, err)
	assert.Equal(t, rows, stored)
	assert.Equal(t, 1, *fetches)
}

func TestListingService_Filter(t *testing.T) {
	listing, _ := newTestListing(nil, nil)
	rows := []services.Row{
		{"1", "Dewi Lestari", "pending"},
		{"2", "Budi Santoso", "completed"},
		{"3", "Citra Dewanti", "cancelled"},
	}

	// Empty query keeps everything.
	assert.Len(t, listing.Filter(rows, ""), 3)

	// Case-insensitive substring across every cell.
	matched := listing.Filter(rows, "dew")
	require.Len(t, matched, 2)
	assert.Equal(t, "Dewi Lestari", matched[0][1])
	assert.Equal(t, "Citra Dewanti", matched[1][1])

	// A status cell matches too.
	assert.Len(t, listing.Filter(rows, "COMPLETED"), 1)

	// No match yields an empty, non-nil slice.
	assert.Empty(t, listing.Filter(rows, "zzz"))
}

func TestListingService_ExportCSV(t *testing.T) {
	rows := []services.Row{
		{"1", "Dewi", "pending"},
		{"2", "Budi", "completed"},
	}
	listing, _ := newTestListing(rows, nil)

	_, err := listing.Refresh(context.Background(), "token", "pesanan")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, listing.ExportCSV(&buf, "pesanan", ""))

	// Semicolon-delimited, header first.
	assert.Equal(t, "ID;Receiver;Status\n1;Dewi;pending\n2;Budi;completed\n", buf.String())

	// A filter narrows the exported rows.
	buf.Reset()
	require.NoError(t, listing.ExportCSV(&buf, "pesanan", "budi"))
	assert.Equal(t, "ID;Receiver;Status\n2;Budi;completed\n", buf.String())
}

func TestListingService_ExportCSV_Empty(t *testing.T) {
	rows := []services.Row{{"1", "Dewi", "pending"}}
	listing, _ := newTestListing(rows, nil)

	_, err := listing.Refresh(context.Background(), "token", "pesanan")
	require.NoError(t, err)

	// A filter that matches nothing is an error, not an empty file.
	var buf bytes.Buffer
	err = listing.ExportCSV(&buf, "pesanan", "zzz")
	assert.ErrorIs(t, err, services.ErrEmptyExport)
	assert.Zero(t, buf.Len())
}

func TestListingService_RefreshFetchFailure(t *testing.T) {
	listing, _ := newTestListing(nil, fmt.Errorf("backend down"))

	_, err := listing.Refresh(context.Background(), "token", "pesanan")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend down")
}
