package credentials

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkRideService/internal/domain"
)

var (
	// ErrMalformedPayload возвращается, когда QR строку не удалось разобрать
	ErrMalformedPayload = fmt.Errorf("credentials: malformed qr payload: %w", domain.ErrInvalidCredential)

	// ErrRandom возвращается при сбое источника случайных чисел
	ErrRandom = errors.New("credentials: random source failure")
)
