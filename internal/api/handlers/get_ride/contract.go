package get_ride

import (
	"context"

	"github.com/m04kA/SMC-ParkRideService/internal/domain"
)

type RideService interface {
	GetByID(ctx context.Context, rideID int64, user domain.UserRef) (*domain.RideBooking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
