package pooling

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/m04kA/SMC-ParkRideService/internal/domain"
)

// Результаты подбора группы
const (
	ResultJoined  = "joined"  // присоединились к открытой группе
	ResultCreated = "created" // создана новая группа
	ResultDirect  = "direct"  // поездка не совместная
)

// Matcher подбирает совместную группу для поездки или назначает водителя.
// Вызывающий код сериализует Match, чтобы два попутчика не создали разные группы
type Matcher struct {
	groups       GroupRepository
	dispatcher   Dispatcher
	radiusMeters float64
	newGroupID   func() string
	logger       Logger
}

// NewMatcher создает новый экземпляр Matcher. radiusMeters <= 0 заменяется значением по умолчанию
func NewMatcher(groups GroupRepository, dispatcher Dispatcher, radiusMeters float64, logger Logger) *Matcher {
	if radiusMeters <= 0 {
		radiusMeters = domain.DefaultPoolingRadiusMeters
	}
	return &Matcher{
		groups:       groups,
		dispatcher:   dispatcher,
		radiusMeters: radiusMeters,
		newGroupID:   func() string { return uuid.NewString() },
		logger:       logger,
	}
}

// WithGroupIDGenerator подменяет генератор идентификаторов групп
func (m *Matcher) WithGroupIDGenerator(gen func() string) *Matcher {
	m.newGroupID = gen
	return m
}

// Match заполняет группу, водителя и статус CONFIRMED у поездки.
// Совместная поездка присоединяется к первой подходящей группе, иначе открывает новую
func (m *Matcher) Match(ctx context.Context, ride *domain.RideBooking) (string, error) {
	if !ride.IsShared {
		if err := m.dispatch(ctx, ride); err != nil {
			return "", err
		}
		ride.PoolingGroupID = nil
		ride.Status = domain.RideStatusConfirmed
		return ResultDirect, nil
	}

	groups, err := m.groups.ListOpenSharedGroups(ctx)
	if err != nil {
		m.logger.Error("Match: failed to list open groups: %v", err)
		return "", fmt.Errorf("%w: %v", ErrListGroups, err)
	}

	if group := m.FindGroup(ride, groups); group != nil {
		groupID := group.ID
		ride.PoolingGroupID = &groupID
		ride.Driver = group.Representative.Driver
		ride.Status = domain.RideStatusConfirmed
		m.logger.Info("Match: ride id=%d joined group %s (%d/%d)",
			ride.ID, groupID, group.MemberCount+1, group.Representative.MaxPassengers)
		return ResultJoined, nil
	}

	if err := m.dispatch(ctx, ride); err != nil {
		return "", err
	}
	groupID := m.newGroupID()
	ride.PoolingGroupID = &groupID
	ride.Status = domain.RideStatusConfirmed
	m.logger.Info("Match: ride id=%d opened group %s", ride.ID, groupID)

	return ResultCreated, nil
}

// FindGroup возвращает первую группу с местом, чей представитель близок к поездке
// и в точке посадки, и в точке высадки. Точка без координат не совпадает ни с чем
func (m *Matcher) FindGroup(ride *domain.RideBooking, groups []*domain.PoolingGroup) *domain.PoolingGroup {
	for _, g := range groups {
		if g.Representative == nil || !g.HasSeat() {
			continue
		}
		if g.Representative.ID == ride.ID {
			continue
		}
		if m.isNear(ride.Pickup.Point, g.Representative.Pickup.Point) &&
			m.isNear(ride.Dropoff.Point, g.Representative.Dropoff.Point) {
			return g
		}
	}
	return nil
}

func (m *Matcher) isNear(a, b *domain.GeoPoint) bool {
	return domain.DistanceMeters(a, b) <= m.radiusMeters
}

func (m *Matcher) dispatch(ctx context.Context, ride *domain.RideBooking) error {
	driver, err := m.dispatcher.AssignDriver(ctx, ride)
	if err != nil {
		m.logger.Error("Match: failed to assign driver for ride id=%d: %v", ride.ID, err)
		return fmt.Errorf("%w: %v", ErrDispatch, err)
	}
	ride.Driver = driver
	return nil
}
