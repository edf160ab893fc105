package lots

import (
	"context"
	"errors"
	"testing"

	"github.com/m04kA/SMC-ParkRideService/internal/domain"
	lotRepo "github.com/m04kA/SMC-ParkRideService/internal/infra/storage/lot"
	"github.com/m04kA/SMC-ParkRideService/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memLots struct {
	lots    map[int64]*domain.Lot
	spots   []*domain.Spot
	listErr error
	lists   int
}

func (m *memLots) Create(_ context.Context, lot *domain.Lot) (*domain.Lot, error) {
	lot.ID = int64(len(m.lots) + 1)
	m.lots[lot.ID] = lot
	return lot, nil
}

func (m *memLots) GetByID(_ context.Context, id int64) (*domain.Lot, error) {
	l, ok := m.lots[id]
	if !ok {
		return nil, lotRepo.ErrLotNotFound
	}
	return l, nil
}

func (m *memLots) List(_ context.Context, filter domain.LotsFilter) ([]*domain.Lot, error) {
	m.lists++
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []*domain.Lot
	for id := int64(1); id <= int64(len(m.lots)); id++ {
		l := m.lots[id]
		if filter.Status != nil && l.Status != *filter.Status {
			continue
		}
		if filter.MetroStationName != nil && l.MetroStationName != *filter.MetroStationName {
			continue
		}
		if filter.OnlyWithUnits && l.AvailableUnits <= 0 {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (m *memLots) UpdateStatus(_ context.Context, id int64, status domain.LotStatus) error {
	l, ok := m.lots[id]
	if !ok {
		return lotRepo.ErrLotNotFound
	}
	l.Status = status
	return nil
}

func (m *memLots) CreateBatch(_ context.Context, spots []*domain.Spot) error {
	m.spots = append(m.spots, spots...)
	return nil
}

type fakeCache struct {
	lots        []*domain.Lot
	hit         bool
	readErr     error
	sets        int
	invalidated int
}

func (c *fakeCache) GetAvailable(context.Context) ([]*domain.Lot, bool, error) {
	return c.lots, c.hit, c.readErr
}

func (c *fakeCache) SetAvailable(_ context.Context, lots []*domain.Lot) error {
	c.sets++
	c.lots, c.hit = lots, true
	return nil
}

func (c *fakeCache) InvalidateAvailable(context.Context) error {
	c.invalidated++
	c.lots, c.hit = nil, false
	return nil
}

type fakePricing struct{ invalidated []int64 }

func (p *fakePricing) InvalidateLot(_ context.Context, lotID int64) {
	p.invalidated = append(p.invalidated, lotID)
}

type passthroughTx struct{}

func (passthroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixture struct {
	repo    *memLots
	cache   *fakeCache
	pricing *fakePricing
	svc     *Service
}

func newFixture(lots ...*domain.Lot) *fixture {
	f := &fixture{repo: &memLots{lots: make(map[int64]*domain.Lot)}, cache: &fakeCache{}, pricing: &fakePricing{}}
	for i, l := range lots {
		l.ID = int64(i + 1)
		f.repo.lots[l.ID] = l
	}
	f.svc = NewService(f.repo, f.repo, f.cache, f.pricing, passthroughTx{}, logger.Nop())
	return f
}

// Станции метро Бангалора
func bengaluruLots() []*domain.Lot {
	return []*domain.Lot{
		{Name: "MG Road P1", Latitude: 12.9756, Longitude: 77.6066, TotalUnits: 10, AvailableUnits: 4, MetroStationName: "MG Road", Status: domain.LotStatusActive},
		{Name: "MG Road P2", Latitude: 12.9750, Longitude: 77.6100, TotalUnits: 10, AvailableUnits: 0, MetroStationName: "MG Road", Status: domain.LotStatusActive},
		{Name: "Trinity", Latitude: 12.9730, Longitude: 77.6170, TotalUnits: 5, AvailableUnits: 5, MetroStationName: "Trinity", Status: domain.LotStatusMaintenance},
		{Name: "Whitefield", Latitude: 12.9698, Longitude: 77.7500, TotalUnits: 50, AvailableUnits: 20, MetroStationName: "Whitefield", Status: domain.LotStatusActive},
	}
}

func TestService_ListAvailable(t *testing.T) {
	f := newFixture(bengaluruLots()...)

	lots, err := f.svc.ListAvailable(context.Background())
	require.NoError(t, err)
	require.Len(t, lots, 2)
	assert.Equal(t, "MG Road P1", lots[0].Name)
	assert.Equal(t, "Whitefield", lots[1].Name)
	assert.Equal(t, 1, f.cache.sets)

	// второй вызов из кэша
	_, err = f.svc.ListAvailable(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, f.repo.lists)
}

func TestService_ListAvailableCacheFailureFallsBack(t *testing.T) {
	f := newFixture(bengaluruLots()...)
	f.cache.readErr = errors.New("redis: connection refused")

	lots, err := f.svc.ListAvailable(context.Background())
	require.NoError(t, err)
	assert.Len(t, lots, 2)
}

func TestService_ListAvailableRepositoryError(t *testing.T) {
	f := newFixture()
	f.repo.listErr = errors.New("db down")

	_, err := f.svc.ListAvailable(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
	assert.Zero(t, f.cache.sets)
}

func TestService_ListByStation(t *testing.T) {
	f := newFixture(bengaluruLots()...)

	lots, err := f.svc.ListByStation(context.Background(), " MG Road ")
	require.NoError(t, err)
	assert.Len(t, lots, 2)

	lots, err = f.svc.ListByStation(context.Background(), "Trinity")
	require.NoError(t, err)
	assert.Empty(t, lots)

	_, err = f.svc.ListByStation(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_ListNearby(t *testing.T) {
	f := newFixture(bengaluruLots()...)

	// у MG Road P2, в 2 км только два лота на MG Road; Trinity на обслуживании
	nearby, err := f.svc.ListNearby(context.Background(), 12.9750, 77.6100, 2000)
	require.NoError(t, err)
	require.Len(t, nearby, 2)
	assert.Equal(t, "MG Road P2", nearby[0].Lot.Name)
	assert.InDelta(t, 0, nearby[0].DistanceMeters, 1e-6)
	assert.Equal(t, "MG Road P1", nearby[1].Lot.Name)
	assert.Less(t, nearby[1].DistanceMeters, 500.0)

	all, err := f.svc.ListNearby(context.Background(), 12.9750, 77.6100, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	far, err := f.svc.ListNearby(context.Background(), 12.9750, 77.6100, 20000)
	require.NoError(t, err)
	assert.Len(t, far, 3)

	_, err = f.svc.ListNearby(context.Background(), 95, 0, 1000)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Create(t *testing.T) {
	f := newFixture()

	lot, err := f.svc.Create(context.Background(), &CreateLotRequest{
		Name:              "Indiranagar",
		Latitude:          12.9784,
		Longitude:         77.6408,
		TotalUnits:        12,
		BaseHourlyRate:    decimal.NewFromInt(40),
		MetroStationName:  "Indiranagar",
		DistanceFromMetro: 150,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), lot.ID)
	assert.Equal(t, 12, lot.AvailableUnits)
	assert.Equal(t, domain.LotStatusActive, lot.Status)

	require.Len(t, f.repo.spots, 12)
	assert.Equal(t, "1", f.repo.spots[0].SpotNumber)
	assert.Equal(t, "12", f.repo.spots[11].SpotNumber)
	for _, s := range f.repo.spots {
		assert.Equal(t, lot.ID, s.LotID)
		assert.Equal(t, domain.SpotStatusAvailable, s.Status)
		assert.Equal(t, domain.SpotTypeRegular, s.Type)
	}

	assert.Equal(t, 1, f.cache.invalidated)
	assert.Equal(t, []int64{1}, f.pricing.invalidated)
}

func TestService_CreateValidation(t *testing.T) {
	tests := []struct {
		name string
		req  CreateLotRequest
	}{
		{name: "no name", req: CreateLotRequest{TotalUnits: 1}},
		{name: "no units", req: CreateLotRequest{Name: "x"}},
		{name: "negative rate", req: CreateLotRequest{Name: "x", TotalUnits: 1, BaseHourlyRate: decimal.NewFromInt(-1)}},
		{name: "bad latitude", req: CreateLotRequest{Name: "x", TotalUnits: 1, Latitude: -91}},
		{name: "negative metro distance", req: CreateLotRequest{Name: "x", TotalUnits: 1, DistanceFromMetro: -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			_, err := f.svc.Create(context.Background(), &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, f.repo.lots)
		})
	}
}

func TestService_UpdateStatus(t *testing.T) {
	f := newFixture(bengaluruLots()...)

	lot, err := f.svc.UpdateStatus(context.Background(), 3, domain.LotStatusActive)
	require.NoError(t, err)
	assert.Equal(t, domain.LotStatusActive, lot.Status)
	assert.Equal(t, 1, f.cache.invalidated)
	assert.Equal(t, []int64{3}, f.pricing.invalidated)

	_, err = f.svc.UpdateStatus(context.Background(), 99, domain.LotStatusActive)
	assert.ErrorIs(t, err, ErrLotNotFound)

	_, err = f.svc.UpdateStatus(context.Background(), 1, "CLOSED")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_GetByID(t *testing.T) {
	f := newFixture(bengaluruLots()...)

	lot, err := f.svc.GetByID(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "Whitefield", lot.Name)

	_, err = f.svc.GetByID(context.Background(), 9)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
