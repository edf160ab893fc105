package get_user_bookings

import (
	"context"

	"github.com/m04kA/SMC-ParkRideService/internal/domain"
)

type ParkingService interface {
	GetUserBookings(ctx context.Context, user domain.UserRef, status *string) ([]*domain.ParkingBooking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
