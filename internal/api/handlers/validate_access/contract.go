package validate_access

import (
	"context"

	"github.com/m04kA/SMC-ParkRideService/internal/domain"
)

type AccessValidator interface {
	ValidateQR(ctx context.Context, payload string) (*domain.ParkingBooking, error)
	ValidatePin(ctx context.Context, bookingID int64, pin string) (*domain.ParkingBooking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
