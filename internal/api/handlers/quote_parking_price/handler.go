package quote_parking_price

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/m04kA/SMC-ParkRideService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkRideService/internal/domain"
	"github.com/m04kA/SMC-ParkRideService/internal/service/lots"
	"github.com/m04kA/SMC-ParkRideService/internal/service/pricing"
)

const (
	msgInvalidLotID  = "некорректный ID парковки"
	msgInvalidWindow = "некорректное окно, ожидаются start и end в RFC3339, end позже start"
	msgInvalidClass  = "неизвестный тип бронирования"
	msgNotFound      = "парковка не найдена"
)

type Handler struct {
	lots   LotService
	pricer Pricer
	logger Logger
}

func NewHandler(lots LotService, pricer Pricer, logger Logger) *Handler {
	return &Handler{
		lots:   lots,
		pricer: pricer,
		logger: logger,
	}
}

// Handle GET /api/v1/lots/{lotId}/quote?start=&end=&class=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	lotID, err := handlers.PathInt64(r, "lotId")
	if err != nil {
		h.logger.Warn("GET /lots/{id}/quote - Invalid lot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLotID)
		return
	}

	query := r.URL.Query()
	start, errStart := time.Parse(time.RFC3339, query.Get("start"))
	end, errEnd := time.Parse(time.RFC3339, query.Get("end"))
	window := domain.NewWindow(start, end)
	if errStart != nil || errEnd != nil || !window.IsValid() {
		h.logger.Warn("GET /lots/{id}/quote - Invalid window: start=%q, end=%q", query.Get("start"), query.Get("end"))
		handlers.RespondBadRequest(w, msgInvalidWindow)
		return
	}

	class := domain.BookingClass(strings.ToUpper(query.Get("class")))
	if class == "" {
		class = domain.BookingClassHourly
	}
	if !class.IsValid() {
		h.logger.Warn("GET /lots/{id}/quote - Invalid class: %q", class)
		handlers.RespondBadRequest(w, msgInvalidClass)
		return
	}

	lot, err := h.lots.GetByID(r.Context(), lotID)
	if err != nil {
		if errors.Is(err, lots.ErrLotNotFound) {
			h.logger.Warn("GET /lots/{id}/quote - Lot not found: lot_id=%d", lotID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /lots/{id}/quote - Failed to get lot: lot_id=%d, error=%v", lotID, err)
		handlers.RespondInternalError(w)
		return
	}

	amount := h.pricer.PriceLot(r.Context(), lot, window, class)

	handlers.RespondJSON(w, http.StatusOK, QuoteResponse{
		LotID:         lot.ID,
		StartTime:     handlers.FormatTime(window.Start),
		EndTime:       handlers.FormatTime(window.End),
		BookingClass:  string(class),
		BillableHours: pricing.BillableHours(window),
		TotalAmount:   handlers.FormatMoney(amount),
	})
}
