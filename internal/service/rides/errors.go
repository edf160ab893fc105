package rides

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkRideService/internal/domain"
)

var (
	// ErrRideNotFound возвращается, когда поездка не найдена или принадлежит другому пользователю
	ErrRideNotFound = fmt.Errorf("rides: ride not found: %w", domain.ErrNotFound)

	// ErrInvalidTransition возвращается при недопустимой смене статуса
	ErrInvalidTransition = fmt.Errorf("rides: invalid status transition: %w", domain.ErrInvalidState)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("rides: invalid input: %w", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("rides: internal error")
)
