package get_parking_booking

import (
	"context"

	"github.com/m04kA/SMC-ParkRideService/internal/domain"
)

type ParkingService interface {
	GetByID(ctx context.Context, bookingID int64, user domain.UserRef) (*domain.ParkingBooking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
