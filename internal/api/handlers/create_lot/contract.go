package create_lot

import (
	"context"

	"github.com/m04kA/SMC-ParkRideService/internal/domain"
	"github.com/m04kA/SMC-ParkRideService/internal/service/lots"
)

type LotService interface {
	Create(ctx context.Context, req *lots.CreateLotRequest) (*domain.Lot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
