package get_parking_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkRideService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkRideService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkRideService/internal/service/parking"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgNotFound         = "бронирование не найдено"
	msgMissingUser      = "пользователь не определен"
)

type Handler struct {
	service ParkingService
	logger  Logger
}

func NewHandler(service ParkingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/parking/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("GET /parking/bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	user, ok := middleware.GetUser(r.Context())
	if !ok {
		h.logger.Warn("GET /parking/bookings/{id} - Missing user")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	// Чужое бронирование сервис отдает как не найденное
	booking, err := h.service.GetByID(r.Context(), bookingID, user)
	if err != nil {
		if errors.Is(err, parking.ErrBookingNotFound) {
			h.logger.Warn("GET /parking/bookings/{id} - Booking not found: booking_id=%d, user_id=%d", bookingID, user.ID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /parking/bookings/{id} - Failed to get booking: booking_id=%d, error=%v", bookingID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /parking/bookings/{id} - Booking retrieved: booking_id=%d, user_id=%d", bookingID, user.ID)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromParkingBooking(booking, true))
}
