package validate_access

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkRideService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkRideService/internal/domain"
	"github.com/m04kA/SMC-ParkRideService/internal/service/parking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidCredential  = "недействительный QR код или PIN"
	msgNotFound           = "бронирование не найдено"
	msgInvalidInput       = "некорректный ID бронирования"
)

type Handler struct {
	validator AccessValidator
	logger    Logger
}

func NewHandler(validator AccessValidator, logger Logger) *Handler {
	return &Handler{
		validator: validator,
		logger:    logger,
	}
}

// HandleQR POST /api/v1/parking/access/qr
func (h *Handler) HandleQR(w http.ResponseWriter, r *http.Request) {
	var req QRRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /parking/access/qr - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	booking, err := h.validator.ValidateQR(r.Context(), req.Payload)
	if err != nil {
		h.respondError(w, "POST /parking/access/qr", err)
		return
	}

	h.logger.Info("POST /parking/access/qr - Access granted: booking_id=%d, status=%s", booking.ID, booking.Status)
	handlers.RespondJSON(w, http.StatusOK, newAccessResponse(booking))
}

// HandlePin POST /api/v1/parking/access/pin
func (h *Handler) HandlePin(w http.ResponseWriter, r *http.Request) {
	var req PinRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /parking/access/pin - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	booking, err := h.validator.ValidatePin(r.Context(), req.BookingID, req.Pin)
	if err != nil {
		h.respondError(w, "POST /parking/access/pin", err)
		return
	}

	h.logger.Info("POST /parking/access/pin - Access granted: booking_id=%d, status=%s", booking.ID, booking.Status)
	handlers.RespondJSON(w, http.StatusOK, newAccessResponse(booking))
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidCredential):
		h.logger.Warn("%s - Invalid credential", route)
		handlers.RespondForbidden(w, msgInvalidCredential)

	case errors.Is(err, parking.ErrBookingNotFound):
		h.logger.Warn("%s - Booking not found", route)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, parking.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("%s - Failed to validate access: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
