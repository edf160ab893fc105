package lots

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkRideService/internal/domain"
)

var (
	// ErrLotNotFound возвращается, когда лот не найден
	ErrLotNotFound = fmt.Errorf("lots: lot not found: %w", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("lots: invalid input: %w", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("lots: internal error")
)
