package create_ride_booking

import (
	"time"

	"github.com/m04kA/SMC-ParkRideService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkRideService/internal/domain"
	createRideBooking "github.com/m04kA/SMC-ParkRideService/internal/usecase/create_ride_booking"
)

// PointRequest точка посадки или высадки
type PointRequest struct {
	Label     string   `json:"label"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// CreateRideBookingRequest HTTP request model
type CreateRideBookingRequest struct {
	ParkingBookingID *int64       `json:"parkingBookingId,omitempty"`
	Pickup           PointRequest `json:"pickup"`
	Dropoff          PointRequest `json:"dropoff"`
	ScheduledTime    *time.Time   `json:"scheduledTime,omitempty"`
	RideClass        string       `json:"rideClass,omitempty"`
	IsShared         bool         `json:"isShared"`
	MaxPassengers    int          `json:"maxPassengers,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateRideBookingRequest) ToUseCaseRequest() *createRideBooking.Request {
	return &createRideBooking.Request{
		ParkingBookingID: r.ParkingBookingID,
		Pickup:           createRideBooking.Point(r.Pickup),
		Dropoff:          createRideBooking.Point(r.Dropoff),
		ScheduledTime:    r.ScheduledTime,
		Class:            domain.RideClass(r.RideClass),
		IsShared:         r.IsShared,
		MaxPassengers:    r.MaxPassengers,
	}
}

// CreateRideBookingResponse поездка с результатом подбора попутчиков
type CreateRideBookingResponse struct {
	handlers.RideResponse
	PoolingResult string `json:"poolingResult"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *createRideBooking.Response) CreateRideBookingResponse {
	ride := &domain.RideBooking{
		ID:               resp.ID,
		UserID:           resp.UserID,
		ParkingBookingID: resp.ParkingBookingID,
		Pickup:           resp.Pickup,
		Dropoff:          resp.Dropoff,
		RequestedTime:    resp.RequestedTime,
		ScheduledTime:    resp.ScheduledTime,
		Class:            resp.Class,
		Status:           resp.Status,
		EstimatedFare:    resp.EstimatedFare,
		Driver:           resp.Driver,
		IsShared:         resp.IsShared,
		MaxPassengers:    resp.MaxPassengers,
		PoolingGroupID:   resp.PoolingGroupID,
	}
	return CreateRideBookingResponse{
		RideResponse:  handlers.FromRide(ride),
		PoolingResult: resp.PoolingResult,
	}
}
