package create_lot

import (
	"github.com/m04kA/SMC-ParkRideService/internal/service/lots"
	"github.com/shopspring/decimal"
)

// CreateLotRequest HTTP request model
type CreateLotRequest struct {
	Name              string          `json:"name"`
	Address           string          `json:"address"`
	Latitude          float64         `json:"latitude"`
	Longitude         float64         `json:"longitude"`
	TotalUnits        int             `json:"totalUnits"`
	BaseHourlyRate    decimal.Decimal `json:"baseHourlyRate"` // "50.00" или 50
	MetroStationName  string          `json:"metroStationName"`
	DistanceFromMetro float64         `json:"distanceFromMetro"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateLotRequest) ToServiceRequest() *lots.CreateLotRequest {
	return &lots.CreateLotRequest{
		Name:              r.Name,
		Address:           r.Address,
		Latitude:          r.Latitude,
		Longitude:         r.Longitude,
		TotalUnits:        r.TotalUnits,
		BaseHourlyRate:    r.BaseHourlyRate,
		MetroStationName:  r.MetroStationName,
		DistanceFromMetro: r.DistanceFromMetro,
	}
}
