package update_lot_status

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkRideService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkRideService/internal/domain"
	"github.com/m04kA/SMC-ParkRideService/internal/service/lots"
	"github.com/m04kA/SMC-ParkRideService/pkg/logger"
)

type stubService struct {
	gotStatus domain.LotStatus
	err       error
}

func (s *stubService) UpdateStatus(_ context.Context, id int64, status domain.LotStatus) (*domain.Lot, error) {
	s.gotStatus = status
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Lot{ID: id, Name: "Rajiv Chowk P1", TotalUnits: 10, AvailableUnits: 4, BaseHourlyRate: decimal.NewFromInt(50), Status: status}, nil
}

func newRouter(svc *stubService) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/admin/lots/{lotId}/status", NewHandler(svc, logger.Nop()).Handle).Methods(http.MethodPatch)
	return router
}

func TestHandle_Success(t *testing.T) {
	svc := &stubService{}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/admin/lots/3/status", strings.NewReader(`{"status": " maintenance "}`))
	newRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.LotStatusMaintenance, svc.gotStatus)

	var resp handlers.LotResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, int64(3), resp.ID)
	assert.Equal(t, "MAINTENANCE", resp.Status)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		body   string
		err    error
		status int
	}{
		{name: "bad id", path: "/admin/lots/abc/status", body: `{"status":"ACTIVE"}`, status: http.StatusBadRequest},
		{name: "bad body", path: "/admin/lots/3/status", body: `{"status":`, status: http.StatusBadRequest},
		{name: "unknown field", path: "/admin/lots/3/status", body: `{"state":"ACTIVE"}`, status: http.StatusBadRequest},
		{name: "unknown status", path: "/admin/lots/3/status", body: `{"status":"CLOSED"}`, err: lots.ErrInvalidInput, status: http.StatusBadRequest},
		{name: "not found", path: "/admin/lots/3/status", body: `{"status":"ACTIVE"}`, err: lots.ErrLotNotFound, status: http.StatusNotFound},
		{name: "internal", path: "/admin/lots/3/status", body: `{"status":"ACTIVE"}`, err: lots.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPatch, tt.path, strings.NewReader(tt.body))
			newRouter(&stubService{err: tt.err}).ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
