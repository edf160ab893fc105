package parking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkRideService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено или принадлежит другому пользователю
	ErrBookingNotFound = fmt.Errorf("parking: booking not found: %w", domain.ErrNotFound)

	// ErrCannotStart возвращается при старте не из CONFIRMED
	ErrCannotStart = fmt.Errorf("parking: booking cannot be started: %w", domain.ErrInvalidState)

	// ErrCannotEnd возвращается при завершении не из ACTIVE
	ErrCannotEnd = fmt.Errorf("parking: booking cannot be ended: %w", domain.ErrInvalidState)

	// ErrCannotCancel возвращается при отмене не из CONFIRMED
	ErrCannotCancel = fmt.Errorf("parking: booking cannot be cancelled: %w", domain.ErrInvalidState)

	// ErrInvalidCredential возвращается, когда QR или PIN не совпадают с бронированием
	ErrInvalidCredential = fmt.Errorf("parking: credential mismatch: %w", domain.ErrInvalidCredential)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("parking: invalid input: %w", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("parking: internal error")
)
