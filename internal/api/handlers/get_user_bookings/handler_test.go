package get_user_bookings

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkRideService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkRideService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkRideService/internal/domain"
	"github.com/m04kA/SMC-ParkRideService/internal/service/parking"
	"github.com/m04kA/SMC-ParkRideService/pkg/logger"
)

var nineAM = time.Date(2025, 10, 14, 9, 0, 0, 0, time.UTC)

type stubService struct {
	gotStatus *string
	err       error
}

func (s *stubService) GetUserBookings(_ context.Context, user domain.UserRef, status *string) ([]*domain.ParkingBooking, error) {
	s.gotStatus = status
	if s.err != nil {
		return nil, s.err
	}
	return []*domain.ParkingBooking{{
		ID:          4,
		UserID:      user.ID,
		LotID:       1,
		Window:      domain.NewWindow(nineAM, nineAM.Add(2*time.Hour)),
		TotalAmount: decimal.NewFromInt(300),
		Status:      domain.BookingStatusConfirmed,
		Class:       domain.BookingClassHourly,
		AccessPin:   "0420",
	}}, nil
}

func serve(svc *stubService, target string, withUser bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if withUser {
		req = req.WithContext(middleware.WithUser(req.Context(), domain.UserRef{ID: 7, Username: "asha"}))
	}
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.Nop()).Handle(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	svc := &stubService{}
	rec := serve(svc, "/parking/bookings?status=confirmed", true)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.gotStatus)
	assert.Equal(t, "confirmed", *svc.gotStatus)

	var resp []handlers.ParkingBookingResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 1)
	assert.Equal(t, int64(4), resp[0].ID)
	assert.Equal(t, "300.00", resp[0].TotalAmount)
	assert.Equal(t, "2025-10-14T09:00:00Z", resp[0].StartTime)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name     string
		withUser bool
		err      error
		status   int
	}{
		{name: "no user", status: http.StatusUnauthorized},
		{name: "invalid status", withUser: true, err: parking.ErrInvalidInput, status: http.StatusBadRequest},
		{name: "internal", withUser: true, err: parking.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&stubService{err: tt.err}, "/parking/bookings?status=parked", tt.withUser)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
