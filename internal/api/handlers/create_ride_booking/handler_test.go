package create_ride_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkRideService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkRideService/internal/domain"
	createRideBooking "github.com/m04kA/SMC-ParkRideService/internal/usecase/create_ride_booking"
	"github.com/m04kA/SMC-ParkRideService/pkg/logger"
	"github.com/m04kA/SMC-ParkRideService/pkg/ptr"
)

type stubUseCase struct {
	got  *createRideBooking.Request
	resp *createRideBooking.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *createRideBooking.Request, _ domain.UserRef) (*createRideBooking.Response, error) {
	s.got = req
	return s.resp, s.err
}

const body = `{"pickup":{"label":"Metro Gate 2","latitude":12.97,"longitude":77.59},"dropoff":{"label":"Tech Park"},"rideClass":"SHUTTLE","isShared":true,"maxPassengers":4}`

func serve(h *Handler) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/rides", strings.NewReader(body))
	req = req.WithContext(middleware.WithUser(req.Context(), domain.UserRef{ID: 9, Username: "ravi"}))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := &stubUseCase{resp: &createRideBooking.Response{
		ID:             5,
		UserID:         9,
		Pickup:         domain.Location{Label: "Metro Gate 2", Point: &domain.GeoPoint{Latitude: 12.97, Longitude: 77.59}},
		Dropoff:        domain.Location{Label: "Tech Park"},
		Class:          domain.RideClassShuttle,
		Status:         domain.RideStatusConfirmed,
		EstimatedFare:  decimal.NewFromInt(70),
		Driver:         domain.Driver{Name: "Driver 5", Phone: "+919000000005"},
		IsShared:       true,
		MaxPassengers:  4,
		PoolingGroupID: ptr.Ptr("grp-1"),
		PoolingResult:  "created",
	}}

	rec := serve(NewHandler(uc, logger.Nop()))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, domain.RideClassShuttle, uc.got.Class)
	require.NotNil(t, uc.got.Pickup.Latitude)
	assert.Nil(t, uc.got.Dropoff.Latitude)

	var resp CreateRideBookingResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "70.00", resp.EstimatedFare)
	assert.Equal(t, "created", resp.PoolingResult)
	assert.Equal(t, "grp-1", *resp.PoolingGroupID)
	require.NotNil(t, resp.Driver)
	assert.Equal(t, "Driver 5", resp.Driver.Name)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "foreign parking booking", err: createRideBooking.ErrParkingBookingNotFound, status: http.StatusNotFound},
		{name: "invalid", err: createRideBooking.ErrInvalidInput, status: http.StatusBadRequest},
		{name: "internal", err: createRideBooking.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(NewHandler(&stubUseCase{err: tt.err}, logger.Nop()))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
