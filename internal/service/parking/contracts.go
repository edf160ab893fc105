package parking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkRideService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований парковки
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ParkingBooking, error)
	ListByFilter(ctx context.Context, filter domain.ParkingBookingsFilter) ([]*domain.ParkingBooking, error)
	ListNoShowCandidates(ctx context.Context, startedBefore time.Time, limit uint64) ([]*domain.ParkingBooking, error)
	UpdateState(ctx context.Context, booking *domain.ParkingBooking) error
}

// LotRepository интерфейс репозитория лотов
type LotRepository interface {
	GetForUpdate(ctx context.Context, id int64) (*domain.Lot, error)
	RecountAvailable(ctx context.Context, id int64, live []domain.BookingStatus) (int, error)
}

// SpotRepository интерфейс репозитория мест
type SpotRepository interface {
	UpdateStatus(ctx context.Context, spotID int64, status domain.SpotStatus) error
}

// LotCache интерфейс кэша доступных лотов
type LotCache interface {
	InvalidateAvailable(ctx context.Context) error
}

// KeyLocker интерфейс блокировки по ключу
type KeyLocker interface {
	Lock(key string) (unlock func())
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс бизнес-метрик
type Metrics interface {
	AddNoShowSwept(n int)
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
