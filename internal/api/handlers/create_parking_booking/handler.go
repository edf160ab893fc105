package create_parking_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkRideService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkRideService/internal/api/middleware"
	createParkingBooking "github.com/m04kA/SMC-ParkRideService/internal/usecase/create_parking_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUser        = "пользователь не определен"
	msgLotNotFound        = "парковка не найдена"
	msgLotNotActive       = "парковка не принимает бронирования"
	msgNoCapacity         = "на выбранное время нет свободных мест"
	msgInvalidInput       = "некорректные параметры бронирования"
)

type Handler struct {
	useCase CreateParkingBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateParkingBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/parking/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		h.logger.Warn("POST /parking/bookings - Missing user")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	var req CreateParkingBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /parking/bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(), user)
	if err != nil {
		switch {
		case errors.Is(err, createParkingBooking.ErrLotNotFound):
			h.logger.Warn("POST /parking/bookings - Lot not found: lot_id=%d", req.LotID)
			handlers.RespondNotFound(w, msgLotNotFound)

		case errors.Is(err, createParkingBooking.ErrLotNotActive):
			h.logger.Warn("POST /parking/bookings - Lot not active: lot_id=%d", req.LotID)
			handlers.RespondConflict(w, msgLotNotActive)

		case errors.Is(err, createParkingBooking.ErrCapacityExhausted):
			h.logger.Warn("POST /parking/bookings - Capacity exhausted: lot_id=%d, user_id=%d", req.LotID, user.ID)
			handlers.RespondConflict(w, msgNoCapacity)

		case errors.Is(err, createParkingBooking.ErrInvalidInput):
			h.logger.Warn("POST /parking/bookings - Invalid input: user_id=%d, error=%v", user.ID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /parking/bookings - Failed to create booking: lot_id=%d, user_id=%d, error=%v",
				req.LotID, user.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /parking/bookings - Booking created successfully: booking_id=%d, lot_id=%d, user_id=%d",
		result.ID, result.LotID, user.ID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
