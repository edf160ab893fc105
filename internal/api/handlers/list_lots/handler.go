package list_lots

import (
	"net/http"

	"github.com/m04kA/SMC-ParkRideService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkRideService/internal/domain"
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

// Handle GET /api/v1/lots?station=
// Без станции отдаются активные лоты со свободными местами, ближайшие к метро первыми
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var (
		lots []*domain.Lot
		err  error
	)

	station := handlers.QueryString(r, "station")
	if station != nil {
		lots, err = h.service.ListByStation(r.Context(), *station)
	} else {
		lots, err = h.service.ListAvailable(r.Context())
	}
	if err != nil {
		h.logger.Error("GET /lots - Failed to list lots: station=%v, error=%v", station, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /lots - Lots retrieved: count=%d", len(lots))
	handlers.RespondJSON(w, http.StatusOK, handlers.FromLots(lots))
}
