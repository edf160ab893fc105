package create_parking_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkRideService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkRideService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkRideService/internal/domain"
	createParkingBooking "github.com/m04kA/SMC-ParkRideService/internal/usecase/create_parking_booking"
	"github.com/m04kA/SMC-ParkRideService/pkg/logger"
)

type stubUseCase struct {
	got  *createParkingBooking.Request
	resp *createParkingBooking.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *createParkingBooking.Request, _ domain.UserRef) (*createParkingBooking.Response, error) {
	s.got = req
	return s.resp, s.err
}

const body = `{"lotId":3,"startTime":"2025-10-14T09:00:00Z","endTime":"2025-10-14T11:00:00Z","bookingClass":"HOURLY"}`

func serve(h *Handler, payload string, withUser bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/parking/bookings", strings.NewReader(payload))
	if withUser {
		req = req.WithContext(middleware.WithUser(req.Context(), domain.UserRef{ID: 7, Username: "asha"}))
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	start := time.Date(2025, 10, 14, 9, 0, 0, 0, time.UTC)
	uc := &stubUseCase{resp: &createParkingBooking.Response{
		ID:          1,
		UserID:      7,
		LotID:       3,
		StartTime:   start,
		EndTime:     start.Add(2 * time.Hour),
		TotalAmount: decimal.NewFromInt(300),
		Status:      domain.BookingStatusConfirmed,
		Class:       domain.BookingClassHourly,
		AccessPin:   "123456",
	}}

	rec := serve(NewHandler(uc, logger.Nop()), body, true)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp handlers.ParkingBookingResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "300.00", resp.TotalAmount)
	assert.Equal(t, "CONFIRMED", resp.Status)
	assert.Equal(t, "123456", resp.AccessPin)
	assert.Equal(t, int64(3), uc.got.LotID)
	assert.True(t, uc.got.StartTime.Equal(start))
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		withUser bool
		err      error
		status   int
	}{
		{name: "no user", payload: body, withUser: false, status: http.StatusUnauthorized},
		{name: "bad json", payload: `{"lotId":`, withUser: true, status: http.StatusBadRequest},
		{name: "unknown field", payload: `{"lotId":3,"spot":1}`, withUser: true, status: http.StatusBadRequest},
		{name: "lot not found", payload: body, withUser: true, err: createParkingBooking.ErrLotNotFound, status: http.StatusNotFound},
		{name: "lot inactive", payload: body, withUser: true, err: createParkingBooking.ErrLotNotActive, status: http.StatusConflict},
		{name: "full", payload: body, withUser: true, err: createParkingBooking.ErrCapacityExhausted, status: http.StatusConflict},
		{name: "invalid", payload: body, withUser: true, err: createParkingBooking.ErrInvalidInput, status: http.StatusBadRequest},
		{name: "internal", payload: body, withUser: true, err: createParkingBooking.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(NewHandler(&stubUseCase{err: tt.err}, logger.Nop()), tt.payload, tt.withUser)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
