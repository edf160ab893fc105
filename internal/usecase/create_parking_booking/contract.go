package create_parking_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkRideService/internal/domain"
	"github.com/shopspring/decimal"
)

// LotRepository интерфейс репозитория лотов
type LotRepository interface {
	GetForUpdate(ctx context.Context, id int64) (*domain.Lot, error)
	RecountAvailable(ctx context.Context, id int64, live []domain.BookingStatus) (int, error)
}

// BookingRepository интерфейс репозитория бронирований парковки
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.ParkingBooking) (*domain.ParkingBooking, error)
	CountOverlapping(ctx context.Context, lotID int64, window domain.Window, statuses []domain.BookingStatus) (int, error)
	SetQRPayload(ctx context.Context, id int64, payload string) error
}

// SpotAllocator интерфейс подбора места
type SpotAllocator interface {
	Allocate(ctx context.Context, lotID int64, window domain.Window) (*domain.Spot, error)
}

// PricingEngine интерфейс расчета стоимости парковки
type PricingEngine interface {
	PriceLot(ctx context.Context, lot *domain.Lot, window domain.Window, class domain.BookingClass) decimal.Decimal
}

// CredentialIssuer интерфейс выпуска PIN и QR
type CredentialIssuer interface {
	IssuePin() (string, error)
	IssueQRPayload(bookingID int64, pin string) (string, error)
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
	IncParkingBooking(outcome string)
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
