package lot

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/m04kA/SMC-ParkRideService/internal/domain"
	"github.com/m04kA/SMC-ParkRideService/pkg/dbmetrics"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func lotRows() *sqlmock.Rows {
	return sqlmock.NewRows(columns)
}

func addLotRow(rows *sqlmock.Rows, id int64, available int) *sqlmock.Rows {
	now := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	return rows.AddRow(id, "Lot", "Addr", 28.6, 77.2, 10, available, "50.00", "Rajiv Chowk", 120.0, "ACTIVE", now, now)
}

func TestRepository_GetByID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	mock.ExpectQuery(`SELECT .+ FROM parking_lots WHERE id = \$1$`).
		WithArgs(int64(1)).
		WillReturnRows(addLotRow(lotRows(), 1, 4))

	lot, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), lot.ID)
	assert.Equal(t, 4, lot.AvailableUnits)
	assert.True(t, lot.BaseHourlyRate.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, domain.LotStatusActive, lot.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	mock.ExpectQuery(`SELECT .+ FROM parking_lots`).WithArgs(int64(9)).WillReturnRows(lotRows())

	_, err := repo.GetByID(context.Background(), 9)
	assert.ErrorIs(t, err, ErrLotNotFound)
}

func TestRepository_GetForUpdate_LocksInsideTransaction(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .+ FROM parking_lots WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(1)).
		WillReturnRows(addLotRow(lotRows(), 1, 4))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)
	ctx := dbmetrics.WithTx(context.Background(), tx)

	_, err = repo.GetForUpdate(ctx, 1)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetForUpdate_NoLockOutsideTransaction(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	mock.ExpectQuery(`SELECT .+ FROM parking_lots WHERE id = \$1$`).
		WithArgs(int64(1)).
		WillReturnRows(addLotRow(lotRows(), 1, 4))

	_, err := repo.GetForUpdate(context.Background(), 1)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_List(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)
	status := domain.LotStatusActive

	rows := addLotRow(addLotRow(lotRows(), 1, 4), 2, 1)
	mock.ExpectQuery(`SELECT .+ FROM parking_lots WHERE status = \$1 AND available_units > \$2 ORDER BY distance_from_metro ASC, id ASC`).
		WithArgs(status, 0).
		WillReturnRows(rows)

	lots, err := repo.List(context.Background(), domain.LotsFilter{Status: &status, OnlyWithUnits: true})
	require.NoError(t, err)
	assert.Len(t, lots, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO parking_lots .+ RETURNING id, created_at, updated_at`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(5), now, now))

	lot, err := repo.Create(context.Background(), &domain.Lot{
		Name:           "P5",
		TotalUnits:     3,
		AvailableUnits: 3,
		BaseHourlyRate: decimal.NewFromInt(40),
		Status:         domain.LotStatusActive,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), lot.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_RecountAvailable(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	mock.ExpectQuery(`UPDATE parking_lots SET available_units = GREATEST\(0, total_units - \(SELECT COUNT\(\*\) FROM parking_bookings WHERE lot_id = \$1 AND status = ANY\(\$2\)\)\), updated_at = NOW\(\) WHERE id = \$3 RETURNING available_units`).
		WithArgs(int64(1), "{\"CONFIRMED\",\"ACTIVE\"}", int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"available_units"}).AddRow(0))
	available, err := repo.RecountAvailable(context.Background(), 1, domain.LiveBookingStatuses)
	require.NoError(t, err)
	assert.Equal(t, 0, available)

	mock.ExpectQuery(`UPDATE parking_lots`).WillReturnError(sql.ErrNoRows)
	_, err = repo.RecountAvailable(context.Background(), 9, domain.LiveBookingStatuses)
	assert.ErrorIs(t, err, ErrLotNotFound)

	mock.ExpectQuery(`UPDATE parking_lots`).WillReturnError(errors.New("conn reset"))
	_, err = repo.RecountAvailable(context.Background(), 1, domain.LiveBookingStatuses)
	assert.ErrorIs(t, err, ErrExecQuery)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateStatus(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	mock.ExpectExec(`UPDATE parking_lots SET status = \$1`).
		WithArgs(domain.LotStatusMaintenance, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), 3, domain.LotStatusMaintenance)
	assert.ErrorIs(t, err, ErrLotNotFound)
}
