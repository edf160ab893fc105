package create_ride_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkRideService/internal/domain"
)

var (
	// ErrParkingBookingNotFound возвращается, когда связанное бронирование парковки не найдено или чужое
	ErrParkingBookingNotFound = fmt.Errorf("create_ride_booking: parking booking not found: %w", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("create_ride_booking: invalid input: %w", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("create_ride_booking: internal error")
)
