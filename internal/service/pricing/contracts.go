package pricing

import (
	"context"

	"github.com/shopspring/decimal"
)

// PriceCache интерфейс кэша рассчитанных цен парковки
type PriceCache interface {
	GetPrice(ctx context.Context, lotID int64, field string) (decimal.Decimal, bool, error)
	SetPrice(ctx context.Context, lotID int64, field string, price decimal.Decimal) error
	InvalidateLot(ctx context.Context, lotID int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
