package lots

import (
	"github.com/m04kA/SMC-ParkRideService/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultNearbyRadiusMeters радиус поиска, если он не указан
const DefaultNearbyRadiusMeters = 5000.0

// CreateLotRequest запрос на создание лота
type CreateLotRequest struct {
	Name              string
	Address           string
	Latitude          float64
	Longitude         float64
	TotalUnits        int
	BaseHourlyRate    decimal.Decimal
	MetroStationName  string
	DistanceFromMetro float64
}

// NearbyLot лот с расстоянием до точки поиска
type NearbyLot struct {
	Lot            *domain.Lot
	DistanceMeters float64
}
