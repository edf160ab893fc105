package rides

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkRideService/internal/domain"
)

// RideRepository интерфейс репозитория поездок
type RideRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.RideBooking, error)
	ListByUser(ctx context.Context, userID int64, status *domain.RideStatus) ([]*domain.RideBooking, error)
	Update(ctx context.Context, ride *domain.RideBooking) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
