package lots

import (
	"context"

	"github.com/m04kA/SMC-ParkRideService/internal/domain"
)

// LotRepository интерфейс репозитория лотов
type LotRepository interface {
	Create(ctx context.Context, lot *domain.Lot) (*domain.Lot, error)
	GetByID(ctx context.Context, id int64) (*domain.Lot, error)
	List(ctx context.Context, filter domain.LotsFilter) ([]*domain.Lot, error)
	UpdateStatus(ctx context.Context, id int64, status domain.LotStatus) error
}

// SpotRepository интерфейс репозитория мест
type SpotRepository interface {
	CreateBatch(ctx context.Context, spots []*domain.Spot) error
}

// LotCache интерфейс кэша доступных лотов
type LotCache interface {
	GetAvailable(ctx context.Context) ([]*domain.Lot, bool, error)
	SetAvailable(ctx context.Context, lots []*domain.Lot) error
	InvalidateAvailable(ctx context.Context) error
}

// PricingInvalidator интерфейс сброса закэшированных цен лота
type PricingInvalidator interface {
	InvalidateLot(ctx context.Context, lotID int64)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
