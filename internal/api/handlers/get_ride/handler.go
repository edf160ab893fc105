package get_ride

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkRideService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkRideService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkRideService/internal/service/rides"
)

const (
	msgInvalidRideID = "некорректный ID поездки"
	msgNotFound      = "поездка не найдена"
	msgMissingUser   = "пользователь не определен"
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

// Handle GET /api/v1/rides/{rideId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rideID, err := handlers.PathInt64(r, "rideId")
	if err != nil {
		h.logger.Warn("GET /rides/{id} - Invalid ride ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRideID)
		return
	}

	user, ok := middleware.GetUser(r.Context())
	if !ok {
		h.logger.Warn("GET /rides/{id} - Missing user")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	ride, err := h.service.GetByID(r.Context(), rideID, user)
	if err != nil {
		if errors.Is(err, rides.ErrRideNotFound) {
			h.logger.Warn("GET /rides/{id} - Ride not found: ride_id=%d, user_id=%d", rideID, user.ID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /rides/{id} - Failed to get ride: ride_id=%d, error=%v", rideID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.FromRide(ride))
}
