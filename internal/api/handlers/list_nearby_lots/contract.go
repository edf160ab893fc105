package list_nearby_lots

import (
	"context"

	"github.com/m04kA/SMC-ParkRideService/internal/service/lots"
)

type LotService interface {
	ListNearby(ctx context.Context, lat, lon, radiusMeters float64) ([]lots.NearbyLot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
