package create_parking_booking

import (
	"time"

	"github.com/m04kA/SMC-ParkRideService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkRideService/internal/domain"
	createParkingBooking "github.com/m04kA/SMC-ParkRideService/internal/usecase/create_parking_booking"
)

// CreateParkingBookingRequest HTTP request model
type CreateParkingBookingRequest struct {
	LotID         int64     `json:"lotId"`
	StartTime     time.Time `json:"startTime"` // RFC3339
	EndTime       time.Time `json:"endTime"`
	BookingClass  string    `json:"bookingClass,omitempty"`
	VehicleNumber *string   `json:"vehicleNumber,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateParkingBookingRequest) ToUseCaseRequest() *createParkingBooking.Request {
	return &createParkingBooking.Request{
		LotID:         r.LotID,
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		Class:         domain.BookingClass(r.BookingClass),
		VehicleNumber: r.VehicleNumber,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *createParkingBooking.Response) handlers.ParkingBookingResponse {
	return handlers.ParkingBookingResponse{
		ID:            resp.ID,
		UserID:        resp.UserID,
		LotID:         resp.LotID,
		SpotID:        resp.SpotID,
		SpotNumber:    resp.SpotNumber,
		StartTime:     handlers.FormatTime(resp.StartTime),
		EndTime:       handlers.FormatTime(resp.EndTime),
		TotalAmount:   handlers.FormatMoney(resp.TotalAmount),
		Status:        string(resp.Status),
		BookingClass:  string(resp.Class),
		AccessPin:     resp.AccessPin,
		QRPayload:     resp.QRPayload,
		VehicleNumber: resp.VehicleNumber,
		CreatedAt:     handlers.FormatTime(resp.CreatedAt),
	}
}
