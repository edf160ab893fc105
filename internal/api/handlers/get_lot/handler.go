package get_lot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkRideService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkRideService/internal/service/lots"
)

const (
	msgInvalidLotID = "некорректный ID парковки"
	msgNotFound     = "парковка не найдена"
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

// Handle GET /api/v1/lots/{lotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	lotID, err := handlers.PathInt64(r, "lotId")
	if err != nil {
		h.logger.Warn("GET /lots/{id} - Invalid lot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLotID)
		return
	}

	lot, err := h.service.GetByID(r.Context(), lotID)
	if err != nil {
		if errors.Is(err, lots.ErrLotNotFound) {
			h.logger.Warn("GET /lots/{id} - Lot not found: lot_id=%d", lotID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /lots/{id} - Failed to get lot: lot_id=%d, error=%v", lotID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.FromLot(lot))
}
