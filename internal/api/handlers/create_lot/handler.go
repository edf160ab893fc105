package create_lot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkRideService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkRideService/internal/service/lots"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные параметры парковки"
)

type Handler struct {
	service LotService
	logger  Logger
}

func NewHandler(service LotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/lots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateLotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/lots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	lot, err := h.service.Create(r.Context(), req.ToServiceRequest())
	if err != nil {
		if errors.Is(err, lots.ErrInvalidInput) {
			h.logger.Warn("POST /admin/lots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)
			return
		}
		h.logger.Error("POST /admin/lots - Failed to create lot: name=%s, error=%v", req.Name, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /admin/lots - Lot created: lot_id=%d, units=%d", lot.ID, lot.TotalUnits)
	handlers.RespondJSON(w, http.StatusCreated, handlers.FromLot(lot))
}
