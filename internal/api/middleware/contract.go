package middleware

import (
	"context"

	"github.com/m04kA/SMC-ParkRideService/internal/domain"
)

// UserResolver сервис, разрешающий имя пользователя в идентификатор
type UserResolver interface {
	FindUser(ctx context.Context, username string) (domain.UserRef, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
