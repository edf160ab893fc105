package parking_booking_action

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ParkRideService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkRideService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkRideService/internal/domain"
	"github.com/m04kA/SMC-ParkRideService/internal/service/parking"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgUnknownAction    = "неизвестное действие, ожидается start, end или cancel"
	msgMissingUser      = "пользователь не определен"
	msgNotFound         = "бронирование не найдено"
	msgCannotStart      = "начать можно только подтвержденное бронирование"
	msgCannotEnd        = "завершить можно только активное бронирование"
	msgCannotCancel     = "отменить можно только подтвержденное бронирование"
)

const (
	ActionStart  = "start"
	ActionEnd    = "end"
	ActionCancel = "cancel"
)

type actionFunc func(ctx context.Context, bookingID int64, user domain.UserRef) (*domain.ParkingBooking, error)

type Handler struct {
	actions map[string]actionFunc
	logger  Logger
}

func NewHandler(service ParkingService, logger Logger) *Handler {
	return &Handler{
		actions: map[string]actionFunc{
			ActionStart:  service.Start,
			ActionEnd:    service.End,
			ActionCancel: service.Cancel,
		},
		logger: logger,
	}
}

// Handle PATCH /api/v1/parking/bookings/{bookingId}/{action}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("PATCH /parking/bookings/{id}/{action} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	action := mux.Vars(r)["action"]
	do, ok := h.actions[action]
	if !ok {
		h.logger.Warn("PATCH /parking/bookings/{id}/{action} - Unknown action: %q", action)
		handlers.RespondBadRequest(w, msgUnknownAction)
		return
	}

	user, ok := middleware.GetUser(r.Context())
	if !ok {
		h.logger.Warn("PATCH /parking/bookings/{id}/%s - Missing user", action)
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	booking, err := do(r.Context(), bookingID, user)
	if err != nil {
		switch {
		case errors.Is(err, parking.ErrBookingNotFound):
			h.logger.Warn("PATCH /parking/bookings/{id}/%s - Booking not found: booking_id=%d, user_id=%d", action, bookingID, user.ID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, parking.ErrCannotStart):
			h.logger.Warn("PATCH /parking/bookings/{id}/%s - Cannot start: booking_id=%d", action, bookingID)
			handlers.RespondUnprocessable(w, msgCannotStart)

		case errors.Is(err, parking.ErrCannotEnd):
			h.logger.Warn("PATCH /parking/bookings/{id}/%s - Cannot end: booking_id=%d", action, bookingID)
			handlers.RespondUnprocessable(w, msgCannotEnd)

		case errors.Is(err, parking.ErrCannotCancel):
			h.logger.Warn("PATCH /parking/bookings/{id}/%s - Cannot cancel: booking_id=%d", action, bookingID)
			handlers.RespondUnprocessable(w, msgCannotCancel)

		default:
			h.logger.Error("PATCH /parking/bookings/{id}/%s - Failed: booking_id=%d, error=%v", action, bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /parking/bookings/{id}/%s - Booking is now %s: booking_id=%d, user_id=%d",
		action, booking.Status, bookingID, user.ID)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromParkingBooking(booking, true))
}
