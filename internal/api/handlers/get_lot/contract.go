package get_lot

import (
	"context"

	"github.com/m04kA/SMC-ParkRideService/internal/domain"
)

type LotService interface {
	GetByID(ctx context.Context, id int64) (*domain.Lot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
