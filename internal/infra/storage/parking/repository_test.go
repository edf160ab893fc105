package parking

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/m04kA/SMC-ParkRideService/internal/domain"
	"github.com/m04kA/SMC-ParkRideService/pkg/dbmetrics"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2025, 10, 14, 9, 0, 0, 0, time.UTC)

func testWindow() domain.Window {
	return domain.NewWindow(start, start.Add(2*time.Hour))
}

func bookingRow(rows *sqlmock.Rows, id int64, status string, spotID interface{}) *sqlmock.Rows {
	return rows.AddRow(
		id, int64(100), int64(1), spotID,
		start, start.Add(2*time.Hour), nil, nil,
		"300.00", status, "HOURLY", "0042", nil, "KA01AB1234",
		start, start,
	)
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	spotID := int64(3)
	mock.ExpectQuery(`INSERT INTO parking_bookings .+ RETURNING id, created_at, updated_at`).
		WithArgs(int64(100), int64(1), &spotID, start, start.Add(2*time.Hour), sqlmock.AnyArg(),
			domain.BookingStatusConfirmed, domain.BookingClassHourly, "0042", nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(11), start, start))

	b, err := repo.Create(context.Background(), &domain.ParkingBooking{
		UserID:      100,
		LotID:       1,
		SpotID:      &spotID,
		Window:      testWindow(),
		TotalAmount: decimal.NewFromInt(300),
		Status:      domain.BookingStatusConfirmed,
		Class:       domain.BookingClassHourly,
		AccessPin:   "0042",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), b.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	mock.ExpectQuery(`SELECT .+ FROM parking_bookings WHERE id = \$1$`).
		WithArgs(int64(11)).
		WillReturnRows(bookingRow(sqlmock.NewRows(columns), 11, "CONFIRMED", int64(3)))

	b, err := repo.GetByID(context.Background(), 11)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusConfirmed, b.Status)
	assert.Equal(t, testWindow(), b.Window)
	require.NotNil(t, b.SpotID)
	assert.Equal(t, int64(3), *b.SpotID)
	assert.Nil(t, b.ActualStart)
	assert.Nil(t, b.QRPayload)
	assert.True(t, b.TotalAmount.Equal(decimal.NewFromInt(300)))

	mock.ExpectQuery(`SELECT .+ FROM parking_bookings`).WithArgs(int64(12)).WillReturnRows(sqlmock.NewRows(columns))
	_, err = repo.GetByID(context.Background(), 12)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_LocksInTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .+ FROM parking_bookings WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(11)).
		WillReturnRows(bookingRow(sqlmock.NewRows(columns), 11, "ACTIVE", nil))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)
	b, err := repo.GetByID(dbmetrics.WithTx(context.Background(), tx), 11)
	require.NoError(t, err)
	assert.Nil(t, b.SpotID)
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CountOverlapping(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	w := testWindow()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM parking_bookings WHERE lot_id = \$1 AND status = ANY\(\$2\) AND \(start_time < \$3 AND end_time > \$4\)`).
		WithArgs(int64(1), "{\"CONFIRMED\",\"ACTIVE\"}", w.End, w.Start).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	count, err := repo.CountOverlapping(context.Background(), 1, w, domain.LiveBookingStatuses)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListAssignedSpotIDsOverlapping(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	mock.ExpectQuery(`SELECT DISTINCT spot_id FROM parking_bookings WHERE lot_id = \$1 AND spot_id IS NOT NULL AND status = ANY\(\$2\)`).
		WillReturnRows(sqlmock.NewRows([]string{"spot_id"}).AddRow(int64(3)).AddRow(int64(5)))

	ids, err := repo.ListAssignedSpotIDsOverlapping(context.Background(), 1, testWindow(), domain.LiveBookingStatuses)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 5}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListByFilter(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	userID := int64(100)
	rows := bookingRow(bookingRow(sqlmock.NewRows(columns), 12, "ACTIVE", nil), 11, "COMPLETED", int64(3))
	mock.ExpectQuery(`SELECT .+ FROM parking_bookings WHERE user_id = \$1 ORDER BY start_time DESC, id DESC LIMIT 50`).
		WithArgs(userID).
		WillReturnRows(rows)

	list, err := repo.ListByFilter(context.Background(), domain.ParkingBookingsFilter{UserID: &userID, Limit: 50})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(12), list[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListNoShowCandidates(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	cutoff := start.Add(30 * time.Minute)
	mock.ExpectQuery(`SELECT .+ FROM parking_bookings WHERE actual_start IS NULL AND status = \$1 AND start_time <= \$2 ORDER BY start_time ASC, id ASC LIMIT 100`).
		WithArgs(domain.BookingStatusConfirmed, cutoff).
		WillReturnRows(bookingRow(sqlmock.NewRows(columns), 11, "CONFIRMED", int64(3)))

	list, err := repo.ListNoShowCandidates(context.Background(), cutoff, 100)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateState(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	actual := start.Add(5 * time.Minute)
	b := &domain.ParkingBooking{ID: 11, Status: domain.BookingStatusActive, ActualStart: &actual}

	mock.ExpectExec(`UPDATE parking_bookings SET status = \$1, actual_start = \$2, actual_end = \$3, updated_at = NOW\(\) WHERE id = \$4`).
		WithArgs(domain.BookingStatusActive, &actual, nil, int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.UpdateState(context.Background(), b))

	mock.ExpectExec(`UPDATE parking_bookings SET qr_payload = \$1`).
		WithArgs("BOOKING:11:PIN:0042", int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.SetQRPayload(context.Background(), 11, "BOOKING:11:PIN:0042"), ErrBookingNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
