package allocator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m04kA/SMC-ParkRideService/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSpots struct {
	spots     []*domain.Spot
	listErr   error
	updateErr error
	updated   map[int64]domain.SpotStatus
}

func (f *fakeSpots) ListByLotAndStatus(_ context.Context, lotID int64, status domain.SpotStatus) ([]*domain.Spot, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*domain.Spot
	for _, s := range f.spots {
		if s.LotID == lotID && s.Status == status {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeSpots) UpdateStatus(_ context.Context, spotID int64, status domain.SpotStatus) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if f.updated == nil {
		f.updated = make(map[int64]domain.SpotStatus)
	}
	f.updated[spotID] = status
	return nil
}

type fakeBookings struct {
	taken  []int64
	window domain.Window
}

func (f *fakeBookings) ListAssignedSpotIDsOverlapping(_ context.Context, _ int64, window domain.Window, _ []domain.BookingStatus) ([]int64, error) {
	f.window = window
	return f.taken, nil
}

func spot(id int64, number string, status domain.SpotStatus) *domain.Spot {
	return &domain.Spot{ID: id, LotID: 1, SpotNumber: number, Type: domain.SpotTypeRegular, Status: status}
}

func testWindow() domain.Window {
	start := time.Date(2025, 10, 14, 9, 0, 0, 0, time.UTC)
	return domain.NewWindow(start, start.Add(2*time.Hour))
}

func TestAllocate_PicksSmallestNumberNaturally(t *testing.T) {
	spots := &fakeSpots{spots: []*domain.Spot{
		spot(1, "10", domain.SpotStatusAvailable),
		spot(2, "2", domain.SpotStatusAvailable),
		spot(3, "1", domain.SpotStatusOutOfOrder),
		spot(4, "3", domain.SpotStatusAvailable),
	}}
	a := NewAllocator(spots, &fakeBookings{})

	got, err := a.Allocate(context.Background(), 1, testWindow())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2", got.SpotNumber)
	assert.Equal(t, domain.SpotStatusReserved, got.Status)
	assert.Equal(t, domain.SpotStatusReserved, spots.updated[2])
}

func TestAllocate_SkipsSpotsTakenInWindow(t *testing.T) {
	spots := &fakeSpots{spots: []*domain.Spot{
		spot(1, "1", domain.SpotStatusAvailable),
		spot(2, "2", domain.SpotStatusAvailable),
	}}
	bookings := &fakeBookings{taken: []int64{1}}
	a := NewAllocator(spots, bookings)

	got, err := a.Allocate(context.Background(), 1, testWindow())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(2), got.ID)
	assert.Equal(t, testWindow(), bookings.window)
}

func TestAllocate_NoCandidate(t *testing.T) {
	tests := []struct {
		name  string
		spots []*domain.Spot
		taken []int64
	}{
		{name: "no spots", spots: nil},
		{name: "all reserved", spots: []*domain.Spot{spot(1, "1", domain.SpotStatusReserved)}},
		{name: "all taken in window", spots: []*domain.Spot{spot(1, "1", domain.SpotStatusAvailable)}, taken: []int64{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spots := &fakeSpots{spots: tt.spots}
			a := NewAllocator(spots, &fakeBookings{taken: tt.taken})

			got, err := a.Allocate(context.Background(), 1, testWindow())
			require.NoError(t, err)
			assert.Nil(t, got)
			assert.Empty(t, spots.updated)
		})
	}
}

func TestAllocate_RepositoryErrors(t *testing.T) {
	a := NewAllocator(&fakeSpots{listErr: errors.New("db down")}, &fakeBookings{})
	_, err := a.Allocate(context.Background(), 1, testWindow())
	assert.ErrorIs(t, err, ErrInternal)

	a = NewAllocator(&fakeSpots{
		spots:     []*domain.Spot{spot(1, "1", domain.SpotStatusAvailable)},
		updateErr: errors.New("db down"),
	}, &fakeBookings{})
	_, err = a.Allocate(context.Background(), 1, testWindow())
	assert.ErrorIs(t, err, ErrInternal)
}
