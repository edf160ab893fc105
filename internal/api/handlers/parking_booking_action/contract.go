package parking_booking_action

import (
	"context"

	"github.com/m04kA/SMC-ParkRideService/internal/domain"
)

type ParkingService interface {
	Start(ctx context.Context, bookingID int64, user domain.UserRef) (*domain.ParkingBooking, error)
	End(ctx context.Context, bookingID int64, user domain.UserRef) (*domain.ParkingBooking, error)
	Cancel(ctx context.Context, bookingID int64, user domain.UserRef) (*domain.ParkingBooking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
