package create_parking_booking

import (
	"time"

	"github.com/m04kA/SMC-ParkRideService/internal/domain"
	"github.com/shopspring/decimal"
)

// Request модель запроса на бронирование места на парковке
type Request struct {
	LotID         int64
	StartTime     time.Time
	EndTime       time.Time
	Class         domain.BookingClass // пусто - HOURLY
	VehicleNumber *string
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID            int64
	UserID        int64
	LotID         int64
	SpotID        *int64
	SpotNumber    *string
	StartTime     time.Time
	EndTime       time.Time
	TotalAmount   decimal.Decimal
	Status        domain.BookingStatus
	Class         domain.BookingClass
	AccessPin     string
	QRPayload     *string // nil, если QR не удалось выпустить: для доступа остается PIN
	VehicleNumber *string
	CreatedAt     time.Time
}

func newResponse(b *domain.ParkingBooking, spot *domain.Spot) *Response {
	resp := &Response{
		ID:            b.ID,
		UserID:        b.UserID,
		LotID:         b.LotID,
		SpotID:        b.SpotID,
		StartTime:     b.Window.Start,
		EndTime:       b.Window.End,
		TotalAmount:   b.TotalAmount,
		Status:        b.Status,
		Class:         b.Class,
		AccessPin:     b.AccessPin,
		QRPayload:     b.QRPayload,
		VehicleNumber: b.VehicleNumber,
		CreatedAt:     b.CreatedAt,
	}
	if spot != nil {
		number := spot.SpotNumber
		resp.SpotNumber = &number
	}
	return resp
}
