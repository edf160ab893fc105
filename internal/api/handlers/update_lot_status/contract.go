package update_lot_status

import (
	"context"

	"github.com/m04kA/SMC-ParkRideService/internal/domain"
)

type LotService interface {
	UpdateStatus(ctx context.Context, id int64, status domain.LotStatus) (*domain.Lot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
