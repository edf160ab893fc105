package parking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/m04kA/SMC-ParkRideService/internal/domain"
	"github.com/m04kA/SMC-ParkRideService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkRideService/pkg/psqlbuilder"
)

const table = "parking_bookings"

var columns = []string{
	"id",
	"user_id",
	"lot_id",
	"spot_id",
	"start_time",
	"end_time",
	"actual_start",
	"actual_end",
	"total_amount",
	"status",
	"booking_class",
	"access_pin",
	"qr_payload",
	"vehicle_number",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями парковки
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бронирование.
// Проверка вместимости выполняется вызывающим кодом в той же транзакции
func (r *Repository) Create(ctx context.Context, b *domain.ParkingBooking) (*domain.ParkingBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"user_id",
			"lot_id",
			"spot_id",
			"start_time",
			"end_time",
			"total_amount",
			"status",
			"booking_class",
			"access_pin",
			"qr_payload",
			"vehicle_number",
		).
		Values(
			b.UserID,
			b.LotID,
			b.SpotID,
			b.Window.Start,
			b.Window.End,
			b.TotalAmount,
			b.Status,
			b.Class,
			b.AccessPin,
			b.QRPayload,
			b.VehicleNumber,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return b, nil
}

// GetByID получает бронирование по ID.
// Внутри транзакции строка блокируется до её завершения
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ParkingBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	b, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return b, nil
}

// ListByFilter получает бронирования по фильтру, новые первыми
func (r *Repository) ListByFilter(ctx context.Context, filter domain.ParkingBookingsFilter) ([]*domain.ParkingBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("start_time DESC", "id DESC")

	if filter.LotID != nil {
		builder = builder.Where(squirrel.Eq{"lot_id": *filter.LotID})
	}
	if filter.UserID != nil {
		builder = builder.Where(squirrel.Eq{"user_id": *filter.UserID})
	}
	if len(filter.Statuses) > 0 {
		builder = builder.Where("status = ANY(?)", statusArray(filter.Statuses))
	}
	if filter.Window != nil {
		builder = builder.Where(overlaps(*filter.Window))
	}
	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// CountOverlapping считает бронирования лота в указанных статусах, пересекающие окно.
// Окна полуоткрытые: бронирование, закончившееся ровно в начале окна, не считается
func (r *Repository) CountOverlapping(ctx context.Context, lotID int64, window domain.Window, statuses []domain.BookingStatus) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From(table).
		Where(squirrel.Eq{"lot_id": lotID}).
		Where("status = ANY(?)", statusArray(statuses)).
		Where(overlaps(window)).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountOverlapping - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// ListAssignedSpotIDsOverlapping возвращает места, закрепленные за бронированиями лота,
// пересекающими окно
func (r *Repository) ListAssignedSpotIDsOverlapping(ctx context.Context, lotID int64, window domain.Window, statuses []domain.BookingStatus) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("DISTINCT spot_id").
		From(table).
		Where(squirrel.Eq{"lot_id": lotID}).
		Where(squirrel.NotEq{"spot_id": nil}).
		Where("status = ANY(?)", statusArray(statuses)).
		Where(overlaps(window)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListAssignedSpotIDsOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAssignedSpotIDsOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: ListAssignedSpotIDsOverlapping - scan spot_id: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListAssignedSpotIDsOverlapping - rows error: %v", ErrScanRow, err)
	}

	return ids, nil
}

// ListNoShowCandidates получает подтвержденные бронирования, начавшиеся не позже startedBefore,
// на которые так и не приехали
func (r *Repository) ListNoShowCandidates(ctx context.Context, startedBefore time.Time, limit uint64) ([]*domain.ParkingBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"status": domain.BookingStatusConfirmed, "actual_start": nil}).
		Where(squirrel.LtOrEq{"start_time": startedBefore}).
		OrderBy("start_time ASC", "id ASC")
	if limit > 0 {
		builder = builder.Limit(limit)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListNoShowCandidates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListNoShowCandidates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateState сохраняет статус и фактические время начала и окончания
func (r *Repository) UpdateState(ctx context.Context, b *domain.ParkingBooking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", b.Status).
		Set("actual_start", b.ActualStart).
		Set("actual_end", b.ActualEnd).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": b.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateState - build update query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, executor, "UpdateState", query, args)
}

// SetQRPayload сохраняет QR строку бронирования
func (r *Repository) SetQRPayload(ctx context.Context, id int64, payload string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("qr_payload", payload).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetQRPayload - build update query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, executor, "SetQRPayload", query, args)
}

func (r *Repository) execOne(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// overlaps условие пересечения полуоткрытых окон
func overlaps(w domain.Window) squirrel.And {
	return squirrel.And{
		squirrel.Lt{"start_time": w.End},
		squirrel.Gt{"end_time": w.Start},
	}
}

func statusArray(statuses []domain.BookingStatus) interface{} {
	values := make([]string, len(statuses))
	for i, s := range statuses {
		values[i] = string(s)
	}
	return pq.Array(values)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.ParkingBooking, error) {
	var b domain.ParkingBooking
	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.LotID,
		&b.SpotID,
		&b.Window.Start,
		&b.Window.End,
		&b.ActualStart,
		&b.ActualEnd,
		&b.TotalAmount,
		&b.Status,
		&b.Class,
		&b.AccessPin,
		&b.QRPayload,
		&b.VehicleNumber,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.ParkingBooking, error) {
	bookings := make([]*domain.ParkingBooking, 0)

	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
