package lot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/m04kA/SMC-ParkRideService/internal/domain"
	"github.com/m04kA/SMC-ParkRideService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkRideService/pkg/psqlbuilder"
)

const (
	table         = "parking_lots"
	bookingsTable = "parking_bookings"
)

var columns = []string{
	"id",
	"name",
	"address",
	"latitude",
	"longitude",
	"total_units",
	"available_units",
	"base_hourly_rate",
	"metro_station_name",
	"distance_from_metro",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с лотами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория лотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает лот. Свободных мест столько же, сколько всего
func (r *Repository) Create(ctx context.Context, lot *domain.Lot) (*domain.Lot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"name",
			"address",
			"latitude",
			"longitude",
			"total_units",
			"available_units",
			"base_hourly_rate",
			"metro_station_name",
			"distance_from_metro",
			"status",
		).
		Values(
			lot.Name,
			lot.Address,
			lot.Latitude,
			lot.Longitude,
			lot.TotalUnits,
			lot.AvailableUnits,
			lot.BaseHourlyRate,
			lot.MetroStationName,
			lot.DistanceFromMetro,
			lot.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&lot.ID, &lot.CreatedAt, &lot.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return lot, nil
}

// GetByID получает лот по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Lot, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate получает лот и, если вызван внутри транзакции, блокирует строку до её конца.
// Блокировка строки лота сериализует изменения его вместимости
func (r *Repository) GetForUpdate(ctx context.Context, id int64) (*domain.Lot, error) {
	return r.get(ctx, id, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) get(ctx context.Context, id int64, forUpdate bool) (*domain.Lot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	lot, err := scanLot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan lot: %v", ErrScanRow, err)
	}

	return lot, nil
}

// List получает лоты по фильтру, ближайшие к метро первыми
func (r *Repository) List(ctx context.Context, filter domain.LotsFilter) ([]*domain.Lot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("distance_from_metro ASC", "id ASC")

	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.MetroStationName != nil {
		builder = builder.Where(squirrel.Eq{"metro_station_name": *filter.MetroStationName})
	}
	if filter.OnlyWithUnits {
		builder = builder.Where(squirrel.Gt{"available_units": 0})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	lots := make([]*domain.Lot, 0)
	for rows.Next() {
		lot, err := scanLot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		lots = append(lots, lot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return lots, nil
}

// RecountAvailable пересчитывает счетчик свободных мест по живым бронированиям:
// available_units = max(0, total_units - count(live)). Вызывается в транзакции после изменения бронирований
func (r *Repository) RecountAvailable(ctx context.Context, id int64, live []domain.BookingStatus) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	values := make([]string, len(live))
	for i, s := range live {
		values[i] = string(s)
	}

	query, args, err := psqlbuilder.Update(table).
		Set("available_units", squirrel.Expr(
			"GREATEST(0, total_units - (SELECT COUNT(*) FROM "+bookingsTable+" WHERE lot_id = ? AND status = ANY(?)))",
			id, pq.Array(values),
		)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING available_units").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: RecountAvailable - build update query: %v", ErrBuildQuery, err)
	}

	var available int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&available); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrLotNotFound
		}
		return 0, fmt.Errorf("%w: RecountAvailable - execute update: %v", ErrExecQuery, err)
	}

	return available, nil
}

// UpdateStatus обновляет статус лота
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.LotStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrLotNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLot(row rowScanner) (*domain.Lot, error) {
	var lot domain.Lot
	err := row.Scan(
		&lot.ID,
		&lot.Name,
		&lot.Address,
		&lot.Latitude,
		&lot.Longitude,
		&lot.TotalUnits,
		&lot.AvailableUnits,
		&lot.BaseHourlyRate,
		&lot.MetroStationName,
		&lot.DistanceFromMetro,
		&lot.Status,
		&lot.CreatedAt,
		&lot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &lot, nil
}
