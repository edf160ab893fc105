package quote_parking_price

import (
	"context"

	"github.com/m04kA/SMC-ParkRideService/internal/domain"
	"github.com/shopspring/decimal"
)

type LotService interface {
	GetByID(ctx context.Context, id int64) (*domain.Lot, error)
}

type Pricer interface {
	PriceLot(ctx context.Context, lot *domain.Lot, window domain.Window, class domain.BookingClass) decimal.Decimal
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
