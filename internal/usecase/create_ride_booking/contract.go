package create_ride_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkRideService/internal/domain"
	"github.com/shopspring/decimal"
)

// RideRepository интерфейс репозитория поездок
type RideRepository interface {
	Create(ctx context.Context, ride *domain.RideBooking) (*domain.RideBooking, error)
	Update(ctx context.Context, ride *domain.RideBooking) error
}

// ParkingBookingRepository интерфейс репозитория бронирований парковки
type ParkingBookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ParkingBooking, error)
}

// PricingEngine интерфейс расчета стоимости поездки
type PricingEngine interface {
	PriceRide(pickup, dropoff *domain.GeoPoint, class domain.RideClass, requested time.Time) decimal.Decimal
}

// PoolingMatcher интерфейс подбора совместной группы и водителя
type PoolingMatcher interface {
	Match(ctx context.Context, ride *domain.RideBooking) (string, error)
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
	IncRidePooling(result string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
