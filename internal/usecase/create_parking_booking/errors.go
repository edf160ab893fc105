package create_parking_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkRideService/internal/domain"
)

var (
	// ErrLotNotFound возвращается, когда лот не найден
	ErrLotNotFound = fmt.Errorf("create_parking_booking: lot not found: %w", domain.ErrNotFound)

	// ErrLotNotActive возвращается, когда лот не принимает бронирования
	ErrLotNotActive = fmt.Errorf("create_parking_booking: lot is not active: %w", domain.ErrConflict)

	// ErrCapacityExhausted возвращается, когда на окно не осталось мест
	ErrCapacityExhausted = fmt.Errorf("create_parking_booking: lot capacity exhausted for window: %w", domain.ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("create_parking_booking: invalid input data: %w", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_parking_booking: internal error")
)
