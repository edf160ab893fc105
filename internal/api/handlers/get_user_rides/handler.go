package get_user_rides

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkRideService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkRideService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkRideService/internal/service/rides"
)

const (
	msgMissingUser   = "пользователь не определен"
	msgInvalidStatus = "некорректный статус поездки"
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

// Handle GET /api/v1/rides?status=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		h.logger.Warn("GET /rides - Missing user")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	result, err := h.service.GetUserRides(r.Context(), user, handlers.QueryString(r, "status"))
	if err != nil {
		if errors.Is(err, rides.ErrInvalidInput) {
			h.logger.Warn("GET /rides - Invalid status filter: user_id=%d, error=%v", user.ID, err)
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		h.logger.Error("GET /rides - Failed to get rides: user_id=%d, error=%v", user.ID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /rides - Rides retrieved: user_id=%d, count=%d", user.ID, len(result))
	handlers.RespondJSON(w, http.StatusOK, handlers.FromRides(result))
}
