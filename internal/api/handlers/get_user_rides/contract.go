package get_user_rides

import (
	"context"

	"github.com/m04kA/SMC-ParkRideService/internal/domain"
)

type RideService interface {
	GetUserRides(ctx context.Context, user domain.UserRef, status *string) ([]*domain.RideBooking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
