package get_ride

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkRideService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkRideService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkRideService/internal/domain"
	"github.com/m04kA/SMC-ParkRideService/internal/service/rides"
	"github.com/m04kA/SMC-ParkRideService/pkg/logger"
)

type stubService struct {
	gotUser domain.UserRef
	err     error
}

func (s *stubService) GetByID(_ context.Context, rideID int64, user domain.UserRef) (*domain.RideBooking, error) {
	s.gotUser = user
	if s.err != nil {
		return nil, s.err
	}
	return &domain.RideBooking{
		ID:            rideID,
		UserID:        user.ID,
		Class:         domain.RideClassCab,
		Status:        domain.RideStatusConfirmed,
		EstimatedFare: decimal.RequireFromString("170"),
	}, nil
}

func newRouter(svc *stubService, withUser bool) *mux.Router {
	h := NewHandler(svc, logger.Nop())
	router := mux.NewRouter()
	if withUser {
		router.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				next.ServeHTTP(w, r.WithContext(middleware.WithUser(r.Context(), domain.UserRef{ID: 7, Username: "asha"})))
			})
		})
	}
	router.HandleFunc("/rides/{rideId}", h.Handle).Methods(http.MethodGet)
	return router
}

func TestHandle_Success(t *testing.T) {
	svc := &stubService{}
	rec := httptest.NewRecorder()
	newRouter(svc, true).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/rides/31", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), svc.gotUser.ID)

	var resp handlers.RideResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, int64(31), resp.ID)
	assert.Equal(t, "CONFIRMED", resp.Status)
	assert.Equal(t, "170.00", resp.EstimatedFare)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		withUser bool
		err      error
		status   int
	}{
		{name: "bad id", path: "/rides/abc", withUser: true, status: http.StatusBadRequest},
		{name: "zero id", path: "/rides/0", withUser: true, status: http.StatusBadRequest},
		{name: "no user", path: "/rides/1", status: http.StatusUnauthorized},
		{name: "not found", path: "/rides/1", withUser: true, err: rides.ErrRideNotFound, status: http.StatusNotFound},
		{name: "internal", path: "/rides/1", withUser: true, err: rides.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			newRouter(&stubService{err: tt.err}, tt.withUser).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
