package ride

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

const table = "ride_bookings"

var columns = []string{
	"id",
	"user_id",
	"parking_booking_id",
	"pickup_location",
	"pickup_latitude",
	"pickup_longitude",
	"dropoff_location",
	"dropoff_latitude",
	"dropoff_longitude",
	"requested_time",
	"scheduled_time",
	"actual_pickup",
	"actual_dropoff",
	"ride_class",
	"status",
	"estimated_fare",
	"actual_fare",
	"driver_name",
	"driver_phone",
	"vehicle_number",
	"vehicle_model",
	"is_shared",
	"max_passengers",
	"pooling_group_id",
	"created_at",
	"updated_at",
}

// Открытые группы: участники без отмененных, представитель - первый подтвержденный участник
const openGroupsFrom = `ride_bookings r
JOIN (
	SELECT pooling_group_id, COUNT(*) AS member_count
	FROM ride_bookings
	WHERE is_shared AND pooling_group_id IS NOT NULL AND status <> 'CANCELLED'
	GROUP BY pooling_group_id
) g ON g.pooling_group_id = r.pooling_group_id`

const representativeCond = `r.id = (
	SELECT MIN(m.id) FROM ride_bookings m
	WHERE m.pooling_group_id = r.pooling_group_id AND m.status = 'CONFIRMED'
)`

// Repository репозиторий для работы с поездками
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория поездок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает поездку
func (r *Repository) Create(ctx context.Context, ride *domain.RideBooking) (*domain.RideBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	pickupLat, pickupLon := coords(ride.Pickup.Point)
	dropoffLat, dropoffLon := coords(ride.Dropoff.Point)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"user_id",
			"parking_booking_id",
			"pickup_location",
			"pickup_latitude",
			"pickup_longitude",
			"dropoff_location",
			"dropoff_latitude",
			"dropoff_longitude",
			"requested_time",
			"scheduled_time",
			"ride_class",
			"status",
			"estimated_fare",
			"is_shared",
			"max_passengers",
		).
		Values(
			ride.UserID,
			ride.ParkingBookingID,
			ride.Pickup.Label,
			pickupLat,
			pickupLon,
			ride.Dropoff.Label,
			dropoffLat,
			dropoffLon,
			ride.RequestedTime,
			ride.ScheduledTime,
			ride.Class,
			ride.Status,
			ride.EstimatedFare,
			ride.IsShared,
			ride.MaxPassengers,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&ride.ID, &ride.CreatedAt, &ride.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return ride, nil
}

// GetByID получает поездку по ID. Внутри транзакции строка блокируется
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.RideBooking, error) {
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

	ride, err := scanRide(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRideNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan ride: %v", ErrScanRow, err)
	}

	return ride, nil
}

// ListByUser получает поездки пользователя, новые первыми
func (r *Repository) ListByUser(ctx context.Context, userID int64, status *domain.RideStatus) ([]*domain.RideBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("requested_time DESC", "id DESC")
	if status != nil {
		builder = builder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rides := make([]*domain.RideBooking, 0)
	for rows.Next() {
		ride, err := scanRide(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByUser - scan row: %v", ErrScanRow, err)
		}
		rides = append(rides, ride)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByUser - rows error: %v", ErrScanRow, err)
	}

	return rides, nil
}

// ListOpenSharedGroups получает открытые совместные группы с их представителями,
// в порядке создания. Группа открыта, пока участников меньше max_passengers представителя
func (r *Repository) ListOpenSharedGroups(ctx context.Context) ([]*domain.PoolingGroup, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectCols := make([]string, 0, len(columns)+1)
	for _, c := range columns {
		selectCols = append(selectCols, "r."+c)
	}
	selectCols = append(selectCols, "g.member_count")

	query, args, err := psqlbuilder.Select(selectCols...).
		From(openGroupsFrom).
		Where(squirrel.Eq{"r.is_shared": true, "r.status": domain.RideStatusConfirmed}).
		Where(representativeCond).
		Where("g.member_count < r.max_passengers").
		OrderBy("r.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListOpenSharedGroups - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOpenSharedGroups - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	groups := make([]*domain.PoolingGroup, 0)
	for rows.Next() {
		var memberCount int
		ride, err := scanRide(rows, &memberCount)
		if err != nil {
			return nil, fmt.Errorf("%w: ListOpenSharedGroups - scan row: %v", ErrScanRow, err)
		}
		if ride.PoolingGroupID == nil {
			continue
		}
		groups = append(groups, &domain.PoolingGroup{
			ID:             *ride.PoolingGroupID,
			Representative: ride,
			MemberCount:    memberCount,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListOpenSharedGroups - rows error: %v", ErrScanRow, err)
	}

	return groups, nil
}

// Update сохраняет изменяемые поля поездки
func (r *Repository) Update(ctx context.Context, ride *domain.RideBooking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", ride.Status).
		Set("actual_pickup", ride.ActualPickup).
		Set("actual_dropoff", ride.ActualDropoff).
		Set("actual_fare", ride.ActualFare).
		Set("driver_name", nullString(ride.Driver.Name)).
		Set("driver_phone", nullString(ride.Driver.Phone)).
		Set("vehicle_number", nullString(ride.Driver.VehicleNumber)).
		Set("vehicle_model", nullString(ride.Driver.VehicleModel)).
		Set("pooling_group_id", ride.PoolingGroupID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": ride.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrRideNotFound
	}

	return nil
}

func coords(p *domain.GeoPoint) (lat, lon *float64) {
	if p == nil {
		return nil, nil
	}
	return &p.Latitude, &p.Longitude
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRide(row rowScanner, extra ...interface{}) (*domain.RideBooking, error) {
	var (
		ride                     domain.RideBooking
		pickupLat, pickupLon     *float64
		dropoffLat, dropoffLon   *float64
		driverName, driverPhone  sql.NullString
		vehicleNumber, vehicleMd sql.NullString
	)

	dest := []interface{}{
		&ride.ID,
		&ride.UserID,
		&ride.ParkingBookingID,
		&ride.Pickup.Label,
		&pickupLat,
		&pickupLon,
		&ride.Dropoff.Label,
		&dropoffLat,
		&dropoffLon,
		&ride.RequestedTime,
		&ride.ScheduledTime,
		&ride.ActualPickup,
		&ride.ActualDropoff,
		&ride.Class,
		&ride.Status,
		&ride.EstimatedFare,
		&ride.ActualFare,
		&driverName,
		&driverPhone,
		&vehicleNumber,
		&vehicleMd,
		&ride.IsShared,
		&ride.MaxPassengers,
		&ride.PoolingGroupID,
		&ride.CreatedAt,
		&ride.UpdatedAt,
	}
	dest = append(dest, extra...)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	ride.Pickup.Point = domain.NewGeoPoint(pickupLat, pickupLon)
	ride.Dropoff.Point = domain.NewGeoPoint(dropoffLat, dropoffLon)
	ride.Driver = domain.Driver{
		Name:          driverName.String,
		Phone:         driverPhone.String,
		VehicleNumber: vehicleNumber.String,
		VehicleModel:  vehicleMd.String,
	}

	return &ride, nil
}
