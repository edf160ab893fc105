package list_lots

import (
	"context"

	"github.com/m04kA/SMC-ParkRideService/internal/domain"
)

type LotService interface {
	ListAvailable(ctx context.Context) ([]*domain.Lot, error)
	ListByStation(ctx context.Context, station string) ([]*domain.Lot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
