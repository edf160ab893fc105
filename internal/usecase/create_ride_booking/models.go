package create_ride_booking

import (
	"time"

	"github.com/m04kA/SMC-ParkRideService/internal/domain"
	"github.com/shopspring/decimal"
)

// Point точка посадки или высадки
type Point struct {
	Label     string
	Latitude  *float64
	Longitude *float64
}

// Request модель запроса на поездку
type Request struct {
	ParkingBookingID *int64
	Pickup           Point
	Dropoff          Point
	ScheduledTime    *time.Time
	Class            domain.RideClass // пусто - CAB
	IsShared         bool
	MaxPassengers    int // 0 - значение по умолчанию
}

// Response модель ответа с созданной поездкой
type Response struct {
	ID               int64
	UserID           int64
	ParkingBookingID *int64
	Pickup           domain.Location
	Dropoff          domain.Location
	RequestedTime    time.Time
	ScheduledTime    *time.Time
	Class            domain.RideClass
	Status           domain.RideStatus
	EstimatedFare    decimal.Decimal
	Driver           domain.Driver
	IsShared         bool
	MaxPassengers    int
	PoolingGroupID   *string
	PoolingResult    string
	CreatedAt        time.Time
}

func newResponse(r *domain.RideBooking, poolingResult string) *Response {
	return &Response{
		ID:               r.ID,
		UserID:           r.UserID,
		ParkingBookingID: r.ParkingBookingID,
		Pickup:           r.Pickup,
		Dropoff:          r.Dropoff,
		RequestedTime:    r.RequestedTime,
		ScheduledTime:    r.ScheduledTime,
		Class:            r.Class,
		Status:           r.Status,
		EstimatedFare:    r.EstimatedFare,
		Driver:           r.Driver,
		IsShared:         r.IsShared,
		MaxPassengers:    r.MaxPassengers,
		PoolingGroupID:   r.PoolingGroupID,
		PoolingResult:    poolingResult,
		CreatedAt:        r.CreatedAt,
	}
}
