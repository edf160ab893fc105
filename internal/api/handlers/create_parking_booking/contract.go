package create_parking_booking

import (
	"context"

	"github.com/m04kA/SMC-ParkRideService/internal/domain"
	createParkingBooking "github.com/m04kA/SMC-ParkRideService/internal/usecase/create_parking_booking"
)

type CreateParkingBookingUseCase interface {
	Execute(ctx context.Context, req *createParkingBooking.Request, user domain.UserRef) (*createParkingBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
