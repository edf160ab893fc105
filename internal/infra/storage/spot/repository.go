package spot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/SMC-ParkRideService/internal/domain"
	"github.com/m04kA/SMC-ParkRideService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkRideService/pkg/psqlbuilder"
)

const table = "parking_spots"

var columns = []string{"id", "lot_id", "spot_number", "spot_type", "status", "floor", "section"}

// Repository репозиторий для работы с местами на парковке
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория мест
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateBatch создает места одним запросом
func (r *Repository) CreateBatch(ctx context.Context, spots []*domain.Spot) error {
	if len(spots) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Insert(table).
		Columns("lot_id", "spot_number", "spot_type", "status", "floor", "section")
	for _, s := range spots {
		builder = builder.Values(s.LotID, s.SpotNumber, s.Type, s.Status, s.Floor, s.Section)
	}

	query, args, err := builder.Suffix("RETURNING id").ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: CreateBatch - execute insert: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	// Postgres возвращает id в порядке VALUES
	i := 0
	for rows.Next() {
		if i >= len(spots) {
			break
		}
		if err := rows.Scan(&spots[i].ID); err != nil {
			return fmt.Errorf("%w: CreateBatch - scan id: %v", ErrScanRow, err)
		}
		i++
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: CreateBatch - rows error: %v", ErrScanRow, err)
	}

	return nil
}

// GetByID получает место по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Spot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Spot
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID, &s.LotID, &s.SpotNumber, &s.Type, &s.Status, &s.Floor, &s.Section,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSpotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan spot: %v", ErrScanRow, err)
	}

	return &s, nil
}

// ListByLotAndStatus получает места лота в указанном статусе.
// Внутри транзакции строки блокируются, чтобы место не выдали дважды
func (r *Repository) ListByLotAndStatus(ctx context.Context, lotID int64, status domain.SpotStatus) ([]*domain.Spot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"lot_id": lotID, "status": status}).
		OrderBy("id ASC")
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByLotAndStatus - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByLotAndStatus - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	spots := make([]*domain.Spot, 0)
	for rows.Next() {
		var s domain.Spot
		if err := rows.Scan(&s.ID, &s.LotID, &s.SpotNumber, &s.Type, &s.Status, &s.Floor, &s.Section); err != nil {
			return nil, fmt.Errorf("%w: ListByLotAndStatus - scan row: %v", ErrScanRow, err)
		}
		spots = append(spots, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByLotAndStatus - rows error: %v", ErrScanRow, err)
	}

	return spots, nil
}

// UpdateStatus обновляет статус места
func (r *Repository) UpdateStatus(ctx context.Context, spotID int64, status domain.SpotStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", status).
		Where(squirrel.Eq{"id": spotID}).
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
		return ErrSpotNotFound
	}

	return nil
}
