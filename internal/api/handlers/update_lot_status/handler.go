package update_lot_status

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-ParkRideService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkRideService/internal/domain"
	"github.com/m04kA/SMC-ParkRideService/internal/service/lots"
)

const (
	msgInvalidLotID       = "некорректный ID парковки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStatus      = "некорректный статус парковки"
	msgNotFound           = "парковка не найдена"
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

// Handle PATCH /api/v1/admin/lots/{lotId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	lotID, err := handlers.PathInt64(r, "lotId")
	if err != nil {
		h.logger.Warn("PATCH /admin/lots/{id}/status - Invalid lot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLotID)
		return
	}

	var req UpdateLotStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/lots/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	status := domain.LotStatus(strings.ToUpper(strings.TrimSpace(req.Status)))

	lot, err := h.service.UpdateStatus(r.Context(), lotID, status)
	if err != nil {
		switch {
		case errors.Is(err, lots.ErrLotNotFound):
			h.logger.Warn("PATCH /admin/lots/{id}/status - Lot not found: lot_id=%d", lotID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, lots.ErrInvalidInput):
			h.logger.Warn("PATCH /admin/lots/{id}/status - Invalid status: %q", req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("PATCH /admin/lots/{id}/status - Failed to update lot: lot_id=%d, error=%v", lotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/lots/{id}/status - Lot is now %s: lot_id=%d", lot.Status, lotID)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromLot(lot))
}
