package create_ride_booking

import (
	"context"

	"github.com/m04kA/SMC-ParkRideService/internal/domain"
	createRideBooking "github.com/m04kA/SMC-ParkRideService/internal/usecase/create_ride_booking"
)

type CreateRideBookingUseCase interface {
	Execute(ctx context.Context, req *createRideBooking.Request, user domain.UserRef) (*createRideBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
