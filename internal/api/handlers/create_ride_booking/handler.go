package create_ride_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkRideService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkRideService/internal/api/middleware"
	createRideBooking "github.com/m04kA/SMC-ParkRideService/internal/usecase/create_ride_booking"
)

const (
	msgInvalidRequestBody     = "некорректное тело запроса"
	msgMissingUser            = "пользователь не определен"
	msgParkingBookingNotFound = "бронирование парковки не найдено"
	msgInvalidInput           = "некорректные параметры поездки"
)

type Handler struct {
	useCase CreateRideBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateRideBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/rides
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		h.logger.Warn("POST /rides - Missing user")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	var req CreateRideBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /rides - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(), user)
	if err != nil {
		switch {
		case errors.Is(err, createRideBooking.ErrParkingBookingNotFound):
			h.logger.Warn("POST /rides - Parking booking not found: user_id=%d", user.ID)
			handlers.RespondNotFound(w, msgParkingBookingNotFound)

		case errors.Is(err, createRideBooking.ErrInvalidInput):
			h.logger.Warn("POST /rides - Invalid input: user_id=%d, error=%v", user.ID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /rides - Failed to create ride: user_id=%d, error=%v", user.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /rides - Ride created: ride_id=%d, user_id=%d, pooling=%s",
		result.ID, user.ID, result.PoolingResult)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
