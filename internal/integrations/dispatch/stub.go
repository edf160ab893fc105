package dispatch

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ParkRideService/internal/domain"
)

var vehicleModels = map[domain.RideClass]string{
	domain.RideClassCab:          "Maruti Swift",
	domain.RideClassShuttle:      "Tata Winger",
	domain.RideClassERickshaw:    "Mahindra Treo",
	domain.RideClassAutoRickshaw: "Bajaj Auto",
}

// Stub детерминированный диспетчер: водитель вычисляется из ID поездки
type Stub struct{}

// NewStub создает диспетчер-заглушку
func NewStub() *Stub {
	return &Stub{}
}

// AssignDriver назначает водителя и машину поездке
func (s *Stub) AssignDriver(ctx context.Context, ride *domain.RideBooking) (domain.Driver, error) {
	if err := ctx.Err(); err != nil {
		return domain.Driver{}, err
	}
	if ride == nil {
		return domain.Driver{}, ErrNoRide
	}

	id := ride.ID
	if id < 0 {
		id = -id
	}

	model, ok := vehicleModels[ride.Class]
	if !ok {
		model = vehicleModels[domain.RideClassCab]
	}

	return domain.Driver{
		Name:          fmt.Sprintf("Driver %d", id%100),
		Phone:         fmt.Sprintf("+91%d", 9000000000+id%100000),
		VehicleNumber: fmt.Sprintf("KA%02dAB1234", id%100),
		VehicleModel:  model,
	}, nil
}
