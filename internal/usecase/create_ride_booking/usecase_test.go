package create_ride_booking

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/m04kA/SMC-ParkRideService/internal/domain"
	"github.com/m04kA/SMC-ParkRideService/internal/integrations/dispatch"
	parkingRepo "github.com/m04kA/SMC-ParkRideService/internal/infra/storage/parking"
	"github.com/m04kA/SMC-ParkRideService/internal/service/pooling"
	"github.com/m04kA/SMC-ParkRideService/internal/service/pricing"
	"github.com/m04kA/SMC-ParkRideService/pkg/keylock"
	"github.com/m04kA/SMC-ParkRideService/pkg/logger"
	"github.com/m04kA/SMC-ParkRideService/pkg/ptr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// вторник, вне часов пик
var afternoon = time.Date(2025, 10, 14, 14, 0, 0, 0, time.UTC)

var (
	rider   = domain.UserRef{ID: 10, Username: "rider"}
	another = domain.UserRef{ID: 11, Username: "another"}
)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

// rideStore in-memory хранилище поездок
type rideStore struct {
	mu     sync.Mutex
	rides  map[int64]*domain.RideBooking
	nextID int64

	updateErr error
}

func newRideStore() *rideStore {
	return &rideStore{rides: make(map[int64]*domain.RideBooking)}
}

func (s *rideStore) Create(_ context.Context, ride *domain.RideBooking) (*domain.RideBooking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	ride.ID = s.nextID
	ride.CreatedAt = afternoon
	cp := *ride
	s.rides[ride.ID] = &cp
	return ride, nil
}

func (s *rideStore) Update(_ context.Context, ride *domain.RideBooking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.updateErr != nil {
		return s.updateErr
	}
	cp := *ride
	s.rides[ride.ID] = &cp
	return nil
}

func (s *rideStore) ListOpenSharedGroups(context.Context) ([]*domain.PoolingGroup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	members := make(map[string][]*domain.RideBooking)
	for _, r := range s.rides {
		if r.IsOpenForPooling() {
			members[*r.PoolingGroupID] = append(members[*r.PoolingGroupID], r)
		}
	}

	var groups []*domain.PoolingGroup
	for id, rides := range members {
		sort.Slice(rides, func(i, j int) bool { return rides[i].ID < rides[j].ID })
		rep := *rides[0]
		g := &domain.PoolingGroup{ID: id, Representative: &rep, MemberCount: len(rides)}
		if g.HasSeat() {
			groups = append(groups, g)
		}
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Representative.ID < groups[j].Representative.ID })
	return groups, nil
}

type parkingStore map[int64]*domain.ParkingBooking

func (s parkingStore) GetByID(_ context.Context, id int64) (*domain.ParkingBooking, error) {
	b, ok := s[id]
	if !ok {
		return nil, parkingRepo.ErrBookingNotFound
	}
	return b, nil
}

type passthroughTx struct{}

func (passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type poolingCounter struct {
	mu      sync.Mutex
	results map[string]int
}

func (m *poolingCounter) IncRidePooling(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.results == nil {
		m.results = make(map[string]int)
	}
	m.results[result]++
}

type fixture struct {
	rides   *rideStore
	metrics *poolingCounter
	uc      *UseCase
}

func newFixture() *fixture {
	rides := newRideStore()
	f := &fixture{rides: rides, metrics: &poolingCounter{}}
	matcher := pooling.NewMatcher(rides, dispatch.NewStub(), 1000, logger.Nop())
	f.uc = NewUseCase(
		rides,
		parkingStore{1: {ID: 1, UserID: rider.ID}},
		pricing.NewEngine(pricing.DefaultConfig()),
		matcher,
		keylock.New(),
		passthroughTx{},
		f.metrics,
		logger.Nop(),
	).WithTimeProvider(fixedTime{afternoon})
	return f
}

func point(label string, lat, lon float64) Point {
	return Point{Label: label, Latitude: ptr.Ptr(lat), Longitude: ptr.Ptr(lon)}
}

func sharedRequest() *Request {
	return &Request{
		Pickup:        point("MG Road metro", 12.9756, 77.6066),
		Dropoff:       point("Embassy Tech Village", 12.9352, 77.6245),
		IsShared:      true,
		MaxPassengers: 3,
	}
}

func TestExecute_NonSharedRide(t *testing.T) {
	f := newFixture()
	req := &Request{
		ParkingBookingID: ptr.Ptr(int64(1)),
		Pickup:           Point{Label: "Lot gate"},
		Dropoff:          Point{Label: "Office"},
	}

	resp, err := f.uc.Execute(context.Background(), req, rider)
	require.NoError(t, err)

	assert.Equal(t, domain.RideStatusConfirmed, resp.Status)
	assert.Equal(t, domain.RideClassCab, resp.Class)
	assert.Equal(t, 1, resp.MaxPassengers)
	// 5 км по умолчанию: 50 + 5*12
	assert.Equal(t, "110", resp.EstimatedFare.String())
	assert.Equal(t, "Driver 1", resp.Driver.Name)
	assert.Equal(t, "KA01AB1234", resp.Driver.VehicleNumber)
	assert.Nil(t, resp.PoolingGroupID)
	assert.Equal(t, pooling.ResultDirect, resp.PoolingResult)

	stored := f.rides.rides[resp.ID]
	assert.Equal(t, domain.RideStatusConfirmed, stored.Status)
	assert.Equal(t, "Driver 1", stored.Driver.Name)
}

func TestExecute_SharedRidesPool(t *testing.T) {
	f := newFixture()

	first, err := f.uc.Execute(context.Background(), sharedRequest(), rider)
	require.NoError(t, err)
	require.NotNil(t, first.PoolingGroupID)
	assert.Equal(t, pooling.ResultCreated, first.PoolingResult)

	// ~600 м севернее на посадке
	req := sharedRequest()
	req.Pickup = point("Trinity metro", 12.9756+0.0053959296, 77.6066)
	second, err := f.uc.Execute(context.Background(), req, another)
	require.NoError(t, err)
	require.NotNil(t, second.PoolingGroupID)

	assert.Equal(t, pooling.ResultJoined, second.PoolingResult)
	assert.Equal(t, *first.PoolingGroupID, *second.PoolingGroupID)
	assert.Equal(t, first.Driver, second.Driver)
	assert.Equal(t, domain.RideStatusConfirmed, second.Status)

	// далеко: новая группа
	far := sharedRequest()
	far.Pickup = point("Whitefield", 12.9698, 77.7500)
	third, err := f.uc.Execute(context.Background(), far, rider)
	require.NoError(t, err)
	assert.Equal(t, pooling.ResultCreated, third.PoolingResult)
	assert.NotEqual(t, *first.PoolingGroupID, *third.PoolingGroupID)

	assert.Equal(t, 2, f.metrics.results[pooling.ResultCreated])
	assert.Equal(t, 1, f.metrics.results[pooling.ResultJoined])
}

func TestExecute_GroupFillsUp(t *testing.T) {
	f := newFixture()
	groups := make(map[string]int)

	for i := 0; i < 4; i++ {
		req := sharedRequest()
		req.MaxPassengers = 2
		resp, err := f.uc.Execute(context.Background(), req, rider)
		require.NoError(t, err)
		groups[*resp.PoolingGroupID]++
	}

	assert.Len(t, groups, 2)
	for _, members := range groups {
		assert.Equal(t, 2, members)
	}
}

// Одновременные совместные запросы из одной точки попадают в одну группу
func TestExecute_ConcurrentSharedRidesJoinOneGroup(t *testing.T) {
	f := newFixture()
	const riders = 4

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		groups = make(map[string]int)
	)
	for i := 0; i < riders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := sharedRequest()
			req.MaxPassengers = riders
			resp, err := f.uc.Execute(context.Background(), req, rider)
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			groups[*resp.PoolingGroupID]++
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, groups, 1)
}

func TestExecute_ParkingBookingMustBelongToUser(t *testing.T) {
	f := newFixture()

	req := sharedRequest()
	req.ParkingBookingID = ptr.Ptr(int64(1))
	_, err := f.uc.Execute(context.Background(), req, another)
	assert.ErrorIs(t, err, ErrParkingBookingNotFound)

	req = sharedRequest()
	req.ParkingBookingID = ptr.Ptr(int64(99))
	_, err = f.uc.Execute(context.Background(), req, rider)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Empty(t, f.rides.rides)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Request)
		user   domain.UserRef
	}{
		{name: "no user", mutate: func(r *Request) {}, user: domain.UserRef{}},
		{name: "blank pickup label", mutate: func(r *Request) { r.Pickup.Label = "  " }, user: rider},
		{name: "half coordinates", mutate: func(r *Request) { r.Dropoff.Longitude = nil }, user: rider},
		{name: "latitude out of range", mutate: func(r *Request) { r.Pickup.Latitude = ptr.Ptr(91.0) }, user: rider},
		{name: "unknown class", mutate: func(r *Request) { r.Class = "HELICOPTER" }, user: rider},
		{name: "negative passengers", mutate: func(r *Request) { r.MaxPassengers = -1 }, user: rider},
		{name: "too many passengers", mutate: func(r *Request) { r.MaxPassengers = domain.MaxPassengersLimit + 1 }, user: rider},
		{name: "bad parking booking id", mutate: func(r *Request) { r.ParkingBookingID = ptr.Ptr(int64(0)) }, user: rider},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := sharedRequest()
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req, tt.user)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, f.rides.rides)
		})
	}
}

func TestExecute_SaveFailure(t *testing.T) {
	f := newFixture()
	f.rides.updateErr = errors.New("serialization failure")

	_, err := f.uc.Execute(context.Background(), sharedRequest(), rider)
	assert.ErrorIs(t, err, ErrInternal)
	assert.Empty(t, f.metrics.results)
}
