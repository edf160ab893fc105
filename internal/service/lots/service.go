package lots

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-ParkRideService/internal/domain"
	lotRepo "github.com/m04kA/SMC-ParkRideService/internal/infra/storage/lot"
)

// Service сервис лотов: чтение без блокировок, изменения администратора
type Service struct {
	lotRepo   LotRepository
	spotRepo  SpotRepository
	lotCache  LotCache
	pricing   PricingInvalidator
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса лотов
func NewService(
	lotRepo LotRepository,
	spotRepo SpotRepository,
	lotCache LotCache,
	pricing PricingInvalidator,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		lotRepo:   lotRepo,
		spotRepo:  spotRepo,
		lotCache:  lotCache,
		pricing:   pricing,
		txManager: txManager,
		logger:    logger,
	}
}

// ListAvailable возвращает активные лоты со свободными местами, ближайшие к метро первыми.
// Список кэшируется, ошибки кэша не мешают чтению из базы
func (s *Service) ListAvailable(ctx context.Context) ([]*domain.Lot, error) {
	cached, ok, err := s.lotCache.GetAvailable(ctx)
	if err != nil {
		s.logger.Warn("ListAvailable: cache read failed: %v", err)
	}
	if ok {
		return cached, nil
	}

	active := domain.LotStatusActive
	lots, err := s.lotRepo.List(ctx, domain.LotsFilter{Status: &active, OnlyWithUnits: true})
	if err != nil {
		s.logger.Error("ListAvailable: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAvailable - repository error: %v", ErrInternal, err)
	}

	if err := s.lotCache.SetAvailable(ctx, lots); err != nil {
		s.logger.Warn("ListAvailable: cache write failed: %v", err)
	}

	return lots, nil
}

// ListByStation возвращает активные лоты у станции метро
func (s *Service) ListByStation(ctx context.Context, station string) ([]*domain.Lot, error) {
	station = strings.TrimSpace(station)
	if station == "" {
		return nil, fmt.Errorf("%w: station is required", ErrInvalidInput)
	}

	active := domain.LotStatusActive
	lots, err := s.lotRepo.List(ctx, domain.LotsFilter{Status: &active, MetroStationName: &station})
	if err != nil {
		s.logger.Error("ListByStation: repository error for station=%s: %v", station, err)
		return nil, fmt.Errorf("%w: ListByStation - repository error: %v", ErrInternal, err)
	}

	return lots, nil
}

// ListNearby возвращает активные лоты в радиусе от точки, ближайшие первыми
func (s *Service) ListNearby(ctx context.Context, lat, lon, radiusMeters float64) ([]NearbyLot, error) {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil, fmt.Errorf("%w: coordinates out of range", ErrInvalidInput)
	}
	if radiusMeters <= 0 {
		radiusMeters = DefaultNearbyRadiusMeters
	}

	active := domain.LotStatusActive
	lots, err := s.lotRepo.List(ctx, domain.LotsFilter{Status: &active})
	if err != nil {
		s.logger.Error("ListNearby: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListNearby - repository error: %v", ErrInternal, err)
	}

	origin := domain.GeoPoint{Latitude: lat, Longitude: lon}
	nearby := make([]NearbyLot, 0, len(lots))
	for _, lot := range lots {
		d := domain.HaversineMeters(origin, lot.Position())
		if d <= radiusMeters {
			nearby = append(nearby, NearbyLot{Lot: lot, DistanceMeters: d})
		}
	}

	sort.SliceStable(nearby, func(i, j int) bool {
		return nearby[i].DistanceMeters < nearby[j].DistanceMeters
	})

	return nearby, nil
}

// GetByID возвращает лот
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Lot, error) {
	lot, err := s.lotRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, lotRepo.ErrLotNotFound) {
			s.logger.Warn("GetLot: lot id=%d not found", id)
			return nil, ErrLotNotFound
		}
		s.logger.Error("GetLot: repository error for lot id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetLot - repository error: %v", ErrInternal, err)
	}
	return lot, nil
}

// Create создает лот и его места с номерами 1..TotalUnits
func (s *Service) Create(ctx context.Context, req *CreateLotRequest) (*domain.Lot, error) {
	s.logger.Info("CreateLot: name=%s, units=%d", req.Name, req.TotalUnits)

	if err := validateCreate(req); err != nil {
		s.logger.Warn("CreateLot: validation failed: %v", err)
		return nil, err
	}

	lot := &domain.Lot{
		Name:              strings.TrimSpace(req.Name),
		Address:           strings.TrimSpace(req.Address),
		Latitude:          req.Latitude,
		Longitude:         req.Longitude,
		TotalUnits:        req.TotalUnits,
		AvailableUnits:    req.TotalUnits,
		BaseHourlyRate:    req.BaseHourlyRate,
		MetroStationName:  strings.TrimSpace(req.MetroStationName),
		DistanceFromMetro: req.DistanceFromMetro,
		Status:            domain.LotStatusActive,
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		created, err := s.lotRepo.Create(txCtx, lot)
		if err != nil {
			return fmt.Errorf("%w: CreateLot - failed to create lot: %v", ErrInternal, err)
		}

		spots := make([]*domain.Spot, 0, created.TotalUnits)
		for i := 1; i <= created.TotalUnits; i++ {
			spots = append(spots, &domain.Spot{
				LotID:      created.ID,
				SpotNumber: strconv.Itoa(i),
				Type:       domain.SpotTypeRegular,
				Status:     domain.SpotStatusAvailable,
			})
		}
		if err := s.spotRepo.CreateBatch(txCtx, spots); err != nil {
			return fmt.Errorf("%w: CreateLot - failed to create spots: %v", ErrInternal, err)
		}

		lot = created
		return nil
	})
	if err != nil {
		s.logger.Error("CreateLot: %v", err)
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: CreateLot - transaction failed: %v", ErrInternal, err)
	}

	s.invalidate(ctx, "CreateLot", lot.ID)

	s.logger.Info("CreateLot: created lot id=%d with %d spots", lot.ID, lot.TotalUnits)
	return lot, nil
}

// UpdateStatus меняет статус лота
func (s *Service) UpdateStatus(ctx context.Context, id int64, status domain.LotStatus) (*domain.Lot, error) {
	s.logger.Info("UpdateLotStatus: lot id=%d to %s", id, status)

	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown lot status %q", ErrInvalidInput, status)
	}

	if err := s.lotRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, lotRepo.ErrLotNotFound) {
			s.logger.Warn("UpdateLotStatus: lot id=%d not found", id)
			return nil, ErrLotNotFound
		}
		s.logger.Error("UpdateLotStatus: repository error for lot id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateLotStatus - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx, "UpdateLotStatus", id)

	return s.GetByID(ctx, id)
}

func (s *Service) invalidate(ctx context.Context, op string, lotID int64) {
	if err := s.lotCache.InvalidateAvailable(ctx); err != nil {
		s.logger.Warn("%s: failed to invalidate lots cache: %v", op, err)
	}
	s.pricing.InvalidateLot(ctx, lotID)
}

func validateCreate(req *CreateLotRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if req.TotalUnits <= 0 {
		return fmt.Errorf("%w: totalUnits must be positive", ErrInvalidInput)
	}
	if req.BaseHourlyRate.IsNegative() {
		return fmt.Errorf("%w: baseHourlyRate must not be negative", ErrInvalidInput)
	}
	if req.Latitude < -90 || req.Latitude > 90 || req.Longitude < -180 || req.Longitude > 180 {
		return fmt.Errorf("%w: coordinates out of range", ErrInvalidInput)
	}
	if req.DistanceFromMetro < 0 {
		return fmt.Errorf("%w: distanceFromMetro must not be negative", ErrInvalidInput)
	}
	return nil
}
