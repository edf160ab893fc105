package get_user_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkRideService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkRideService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkRideService/internal/service/parking"
)

const (
	msgMissingUser   = "пользователь не определен"
	msgInvalidStatus = "некорректный статус бронирования"
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

// Handle GET /api/v1/parking/bookings?status=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		h.logger.Warn("GET /parking/bookings - Missing user")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	status := handlers.QueryString(r, "status")

	bookings, err := h.service.GetUserBookings(r.Context(), user, status)
	if err != nil {
		if errors.Is(err, parking.ErrInvalidInput) {
			h.logger.Warn("GET /parking/bookings - Invalid status filter: user_id=%d, error=%v", user.ID, err)
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		h.logger.Error("GET /parking/bookings - Failed to get bookings: user_id=%d, error=%v", user.ID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /parking/bookings - Bookings retrieved: user_id=%d, count=%d", user.ID, len(bookings))
	handlers.RespondJSON(w, http.StatusOK, handlers.FromParkingBookings(bookings))
}
