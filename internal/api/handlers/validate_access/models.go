package validate_access

import (
	"github.com/m04kA/SMC-ParkRideService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkRideService/internal/domain"
)

// QRRequest HTTP request model
type QRRequest struct {
	Payload string `json:"payload"` // BOOKING:{id}:PIN:{pin}
}

// PinRequest HTTP request model
type PinRequest struct {
	BookingID int64  `json:"bookingId"`
	Pin       string `json:"pin"`
}

// AccessResponse результат проверки доступа. PIN в ответ не попадает
type AccessResponse struct {
	Valid    bool                            `json:"valid"`
	Booking  handlers.ParkingBookingResponse `json:"booking"`
	CanEnter bool                            `json:"canEnter"`
	CanExit  bool                            `json:"canExit"`
}

func newAccessResponse(b *domain.ParkingBooking) AccessResponse {
	return AccessResponse{
		Valid:    true,
		Booking:  handlers.FromParkingBooking(b, false),
		CanEnter: b.CanStart(),
		CanExit:  b.CanEnd(),
	}
}
