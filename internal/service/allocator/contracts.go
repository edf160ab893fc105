package allocator

import (
	"context"

	"github.com/m04kA/SMC-ParkRideService/internal/domain"
)

// SpotRepository интерфейс репозитория мест
type SpotRepository interface {
	ListByLotAndStatus(ctx context.Context, lotID int64, status domain.SpotStatus) ([]*domain.Spot, error)
	UpdateStatus(ctx context.Context, spotID int64, status domain.SpotStatus) error
}

// BookingRepository интерфейс репозитория бронирований парковки
type BookingRepository interface {
	ListAssignedSpotIDsOverlapping(ctx context.Context, lotID int64, window domain.Window, statuses []domain.BookingStatus) ([]int64, error)
}
