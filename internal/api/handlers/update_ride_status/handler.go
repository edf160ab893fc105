package update_ride_status

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkRideService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkRideService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkRideService/internal/domain"
	"github.com/m04kA/SMC-ParkRideService/internal/service/rides"
)

const (
	msgInvalidRideID      = "некорректный ID поездки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStatus      = "некорректный статус поездки"
	msgMissingUser        = "пользователь не определен"
	msgNotFound           = "поездка не найдена"
	msgInvalidTransition  = "недопустимая смена статуса поездки"
)

type Handler struct {
	service RideService
	logger  Logger
}

func NewHandler(service RideService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/rides/{rideId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rideID, user, ok := h.prepare(w, r, "PATCH /rides/{id}/status")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /rides/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	next, err := rides.ParseStatus(req.Status)
	if err != nil {
		h.logger.Warn("PATCH /rides/{id}/status - %v", err)
		handlers.RespondBadRequest(w, msgInvalidStatus)
		return
	}

	ride, err := h.service.UpdateStatus(r.Context(), rideID, next, user)
	h.respond(w, "PATCH /rides/{id}/status", rideID, ride, err)
}

// HandleCancel POST /api/v1/rides/{rideId}/cancel
func (h *Handler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	rideID, user, ok := h.prepare(w, r, "POST /rides/{id}/cancel")
	if !ok {
		return
	}

	ride, err := h.service.Cancel(r.Context(), rideID, user)
	h.respond(w, "POST /rides/{id}/cancel", rideID, ride, err)
}

func (h *Handler) prepare(w http.ResponseWriter, r *http.Request, route string) (int64, domain.UserRef, bool) {
	rideID, err := handlers.PathInt64(r, "rideId")
	if err != nil {
		h.logger.Warn("%s - Invalid ride ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRideID)
		return 0, domain.UserRef{}, false
	}

	user, ok := middleware.GetUser(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing user", route)
		handlers.RespondUnauthorized(w, msgMissingUser)
		return 0, domain.UserRef{}, false
	}

	return rideID, user, true
}

func (h *Handler) respond(w http.ResponseWriter, route string, rideID int64, ride *domain.RideBooking, err error) {
	if err != nil {
		switch {
		case errors.Is(err, rides.ErrRideNotFound):
			h.logger.Warn("%s - Ride not found: ride_id=%d", route, rideID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rides.ErrInvalidTransition):
			h.logger.Warn("%s - Invalid transition: ride_id=%d, error=%v", route, rideID, err)
			handlers.RespondUnprocessable(w, msgInvalidTransition)

		case errors.Is(err, rides.ErrInvalidInput):
			h.logger.Warn("%s - Invalid input: ride_id=%d, error=%v", route, rideID, err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("%s - Failed to update ride: ride_id=%d, error=%v", route, rideID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Ride is now %s: ride_id=%d", route, ride.Status, rideID)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromRide(ride))
}
