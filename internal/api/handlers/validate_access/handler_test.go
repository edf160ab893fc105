package validate_access

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkRideService/internal/domain"
	"github.com/m04kA/SMC-ParkRideService/internal/service/parking"
	"github.com/m04kA/SMC-ParkRideService/pkg/logger"
)

type stubValidator struct {
	booking *domain.ParkingBooking
	err     error
	payload string
}

func (s *stubValidator) ValidateQR(_ context.Context, payload string) (*domain.ParkingBooking, error) {
	s.payload = payload
	return s.booking, s.err
}

func (s *stubValidator) ValidatePin(_ context.Context, _ int64, _ string) (*domain.ParkingBooking, error) {
	return s.booking, s.err
}

func TestHandleQR_Granted(t *testing.T) {
	v := &stubValidator{booking: &domain.ParkingBooking{ID: 4, Status: domain.BookingStatusConfirmed, AccessPin: "482913"}}
	h := NewHandler(v, logger.Nop())

	rec := httptest.NewRecorder()
	h.HandleQR(rec, httptest.NewRequest(http.MethodPost, "/api/v1/parking/access/qr",
		strings.NewReader(`{"payload":"BOOKING:4:PIN:482913"}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "BOOKING:4:PIN:482913", v.payload)
	assert.NotContains(t, rec.Body.String(), "482913")

	var resp AccessResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Valid)
	assert.True(t, resp.CanEnter)
	assert.False(t, resp.CanExit)
}

func TestHandlePin_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "mismatch", err: parking.ErrInvalidCredential, status: http.StatusForbidden},
		{name: "unknown booking", err: parking.ErrBookingNotFound, status: http.StatusNotFound},
		{name: "bad id", err: parking.ErrInvalidInput, status: http.StatusBadRequest},
		{name: "internal", err: parking.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&stubValidator{err: tt.err}, logger.Nop())
			rec := httptest.NewRecorder()
			h.HandlePin(rec, httptest.NewRequest(http.MethodPost, "/api/v1/parking/access/pin",
				strings.NewReader(`{"bookingId":4,"pin":"000000"}`)))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
