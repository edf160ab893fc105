package handlers

import (
	"time"

	"github.com/m04kA/SMC-ParkRideService/internal/domain"
	"github.com/shopspring/decimal"
)

// ParkingBookingResponse HTTP модель бронирования парковки
type ParkingBookingResponse struct {
	ID            int64   `json:"id"`
	UserID        int64   `json:"userId"`
	LotID         int64   `json:"lotId"`
	SpotID        *int64  `json:"spotId,omitempty"`
	SpotNumber    *string `json:"spotNumber,omitempty"`
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
	ActualStart   *string `json:"actualStart,omitempty"`
	ActualEnd     *string `json:"actualEnd,omitempty"`
	TotalAmount   string  `json:"totalAmount"`
	Status        string  `json:"status"`
	BookingClass  string  `json:"bookingClass"`
	AccessPin     string  `json:"accessPin,omitempty"`
	QRPayload     *string `json:"qrPayload,omitempty"`
	VehicleNumber *string `json:"vehicleNumber,omitempty"`
	CreatedAt     string  `json:"createdAt,omitempty"`
}

// FromParkingBooking конвертирует доменное бронирование. PIN отдается только владельцу
func FromParkingBooking(b *domain.ParkingBooking, withPin bool) ParkingBookingResponse {
	resp := ParkingBookingResponse{
		ID:            b.ID,
		UserID:        b.UserID,
		LotID:         b.LotID,
		SpotID:        b.SpotID,
		StartTime:     FormatTime(b.Window.Start),
		EndTime:       FormatTime(b.Window.End),
		ActualStart:   FormatTimePtr(b.ActualStart),
		ActualEnd:     FormatTimePtr(b.ActualEnd),
		TotalAmount:   FormatMoney(b.TotalAmount),
		Status:        string(b.Status),
		BookingClass:  string(b.Class),
		VehicleNumber: b.VehicleNumber,
		CreatedAt:     FormatTime(b.CreatedAt),
	}
	if withPin {
		resp.AccessPin = b.AccessPin
		resp.QRPayload = b.QRPayload
	}
	return resp
}

// FromParkingBookings конвертирует список бронирований
func FromParkingBookings(bookings []*domain.ParkingBooking) []ParkingBookingResponse {
	out := make([]ParkingBookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, FromParkingBooking(b, true))
	}
	return out
}

// LocationResponse HTTP модель точки поездки
type LocationResponse struct {
	Label     string   `json:"label"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// DriverResponse HTTP модель водителя
type DriverResponse struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	VehicleNumber string `json:"vehicleNumber"`
	VehicleModel  string `json:"vehicleModel"`
}

// RideResponse HTTP модель поездки
type RideResponse struct {
	ID               int64            `json:"id"`
	UserID           int64            `json:"userId"`
	ParkingBookingID *int64           `json:"parkingBookingId,omitempty"`
	Pickup           LocationResponse `json:"pickup"`
	Dropoff          LocationResponse `json:"dropoff"`
	RequestedTime    string           `json:"requestedTime"`
	ScheduledTime    *string          `json:"scheduledTime,omitempty"`
	ActualPickup     *string          `json:"actualPickup,omitempty"`
	ActualDropoff    *string          `json:"actualDropoff,omitempty"`
	RideClass        string           `json:"rideClass"`
	Status           string           `json:"status"`
	EstimatedFare    string           `json:"estimatedFare"`
	ActualFare       *string          `json:"actualFare,omitempty"`
	Driver           *DriverResponse  `json:"driver,omitempty"`
	IsShared         bool             `json:"isShared"`
	MaxPassengers    int              `json:"maxPassengers"`
	PoolingGroupID   *string          `json:"poolingGroupId,omitempty"`
}

// FromRide конвертирует доменную поездку
func FromRide(r *domain.RideBooking) RideResponse {
	resp := RideResponse{
		ID:               r.ID,
		UserID:           r.UserID,
		ParkingBookingID: r.ParkingBookingID,
		Pickup:           fromLocation(r.Pickup),
		Dropoff:          fromLocation(r.Dropoff),
		RequestedTime:    FormatTime(r.RequestedTime),
		ScheduledTime:    FormatTimePtr(r.ScheduledTime),
		ActualPickup:     FormatTimePtr(r.ActualPickup),
		ActualDropoff:    FormatTimePtr(r.ActualDropoff),
		RideClass:        string(r.Class),
		Status:           string(r.Status),
		EstimatedFare:    FormatMoney(r.EstimatedFare),
		IsShared:         r.IsShared,
		MaxPassengers:    r.MaxPassengers,
		PoolingGroupID:   r.PoolingGroupID,
	}
	if r.ActualFare != nil {
		fare := FormatMoney(*r.ActualFare)
		resp.ActualFare = &fare
	}
	if r.Driver.IsAssigned() {
		resp.Driver = &DriverResponse{
			Name:          r.Driver.Name,
			Phone:         r.Driver.Phone,
			VehicleNumber: r.Driver.VehicleNumber,
			VehicleModel:  r.Driver.VehicleModel,
		}
	}
	return resp
}

// FromRides конвертирует список поездок
func FromRides(rides []*domain.RideBooking) []RideResponse {
	out := make([]RideResponse, 0, len(rides))
	for _, r := range rides {
		out = append(out, FromRide(r))
	}
	return out
}

func fromLocation(l domain.Location) LocationResponse {
	resp := LocationResponse{Label: l.Label}
	if l.Point != nil {
		lat, lon := l.Point.Latitude, l.Point.Longitude
		resp.Latitude, resp.Longitude = &lat, &lon
	}
	return resp
}

// LotResponse HTTP модель лота
type LotResponse struct {
	ID                int64    `json:"id"`
	Name              string   `json:"name"`
	Address           string   `json:"address,omitempty"`
	Latitude          float64  `json:"latitude"`
	Longitude         float64  `json:"longitude"`
	TotalUnits        int      `json:"totalUnits"`
	AvailableUnits    int      `json:"availableUnits"`
	OccupancyRate     float64  `json:"occupancyRate"`
	BaseHourlyRate    string   `json:"baseHourlyRate"`
	MetroStationName  string   `json:"metroStationName,omitempty"`
	DistanceFromMetro float64  `json:"distanceFromMetro"`
	Status            string   `json:"status"`
	DistanceMeters    *float64 `json:"distanceMeters,omitempty"`
}

// FromLot конвертирует доменный лот
func FromLot(l *domain.Lot) LotResponse {
	return LotResponse{
		ID:                l.ID,
		Name:              l.Name,
		Address:           l.Address,
		Latitude:          l.Latitude,
		Longitude:         l.Longitude,
		TotalUnits:        l.TotalUnits,
		AvailableUnits:    l.AvailableUnits,
		OccupancyRate:     l.OccupancyRate(),
		BaseHourlyRate:    FormatMoney(l.BaseHourlyRate),
		MetroStationName:  l.MetroStationName,
		DistanceFromMetro: l.DistanceFromMetro,
		Status:            string(l.Status),
	}
}

// FromLots конвертирует список лотов
func FromLots(lots []*domain.Lot) []LotResponse {
	out := make([]LotResponse, 0, len(lots))
	for _, l := range lots {
		out = append(out, FromLot(l))
	}
	return out
}

// FormatMoney сумма с двумя знаками
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatTime время в RFC3339
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

// FormatTimePtr необязательное время в RFC3339
func FormatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := FormatTime(*t)
	return &s
}
