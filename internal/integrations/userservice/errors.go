package userservice

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkRideService/internal/domain"
)

var (
	// ErrUserNotFound возвращается, когда пользователь с таким именем не зарегистрирован
	ErrUserNotFound = fmt.Errorf("userservice client: user not found: %w", domain.ErrNotFound)

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("userservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("userservice client: invalid response")
)
