package list_nearby_lots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-ParkRideService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkRideService/internal/service/lots"
)

const (
	msgInvalidCoordinates = "некорректные координаты, ожидаются lat и lon"
	msgInvalidRadius      = "некорректный радиус поиска"
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

// Handle GET /api/v1/lots/nearby?lat=&lon=&radius=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	lat, errLat := strconv.ParseFloat(query.Get("lat"), 64)
	lon, errLon := strconv.ParseFloat(query.Get("lon"), 64)
	if errLat != nil || errLon != nil {
		h.logger.Warn("GET /lots/nearby - Invalid coordinates: lat=%q, lon=%q", query.Get("lat"), query.Get("lon"))
		handlers.RespondBadRequest(w, msgInvalidCoordinates)
		return
	}

	var radius float64
	if raw := query.Get("radius"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 {
			h.logger.Warn("GET /lots/nearby - Invalid radius: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidRadius)
			return
		}
		radius = parsed
	}

	nearby, err := h.service.ListNearby(r.Context(), lat, lon, radius)
	if err != nil {
		if errors.Is(err, lots.ErrInvalidInput) {
			h.logger.Warn("GET /lots/nearby - %v", err)
			handlers.RespondBadRequest(w, msgInvalidCoordinates)
			return
		}
		h.logger.Error("GET /lots/nearby - Failed to list lots: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	resp := make([]handlers.LotResponse, 0, len(nearby))
	for _, n := range nearby {
		lot := handlers.FromLot(n.Lot)
		distance := n.DistanceMeters
		lot.DistanceMeters = &distance
		resp = append(resp, lot)
	}

	h.logger.Info("GET /lots/nearby - Lots retrieved: count=%d", len(resp))
	handlers.RespondJSON(w, http.StatusOK, resp)
}
