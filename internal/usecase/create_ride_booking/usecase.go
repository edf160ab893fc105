package create_ride_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkRideService/internal/domain"
	parkingRepo "github.com/m04kA/SMC-ParkRideService/internal/infra/storage/parking"
)

// UseCase use case для заказа поездки последней мили
type UseCase struct {
	rideRepo     RideRepository
	parkingRepo  ParkingBookingRepository
	pricing      PricingEngine
	matcher      PoolingMatcher
	locker       KeyLocker
	txManager    TransactionManager
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	rideRepo RideRepository,
	parkingRepo ParkingBookingRepository,
	pricing PricingEngine,
	matcher PoolingMatcher,
	locker KeyLocker,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		rideRepo:     rideRepo,
		parkingRepo:  parkingRepo,
		pricing:      pricing,
		matcher:      matcher,
		locker:       locker,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания поездки.
// Скан открытых групп и присоединение или создание группы сериализованы одной блокировкой
func (uc *UseCase) Execute(ctx context.Context, req *Request, user domain.UserRef) (*Response, error) {
	uc.logger.Info("CreateRideBooking: user=%d, class=%s, shared=%t, parkingBooking=%v",
		user.ID, req.Class, req.IsShared, req.ParkingBookingID)

	// 1. Валидация входных данных
	if err := validateRequest(req, user); err != nil {
		uc.logger.Warn("CreateRideBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Связанное бронирование парковки должно принадлежать пользователю
	if req.ParkingBookingID != nil {
		if err := uc.checkParkingBooking(ctx, *req.ParkingBookingID, user); err != nil {
			return nil, err
		}
	}

	now := uc.timeProvider.Now()
	ride := &domain.RideBooking{
		UserID:           user.ID,
		ParkingBookingID: req.ParkingBookingID,
		Pickup:           domain.Location{Label: req.Pickup.Label, Point: domain.NewGeoPoint(req.Pickup.Latitude, req.Pickup.Longitude)},
		Dropoff:          domain.Location{Label: req.Dropoff.Label, Point: domain.NewGeoPoint(req.Dropoff.Latitude, req.Dropoff.Longitude)},
		RequestedTime:    now,
		ScheduledTime:    req.ScheduledTime,
		Class:            req.Class,
		Status:           domain.RideStatusRequested,
		IsShared:         req.IsShared,
		MaxPassengers:    req.MaxPassengers,
	}

	// 3. Тариф считается на время подачи
	fareTime := now
	if req.ScheduledTime != nil {
		fareTime = *req.ScheduledTime
	}
	ride.EstimatedFare = uc.pricing.PriceRide(ride.Pickup.Point, ride.Dropoff.Point, ride.Class, fareTime)

	var poolingResult string

	// 4. Создание, подбор группы и сохранение под блокировкой скана групп
	err := uc.withPoolingLock(func() error {
		return uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			created, err := uc.rideRepo.Create(txCtx, ride)
			if err != nil {
				uc.logger.Error("CreateRideBooking: failed to create ride: %v", err)
				return fmt.Errorf("%w: failed to create ride: %v", ErrInternal, err)
			}

			poolingResult, err = uc.matcher.Match(txCtx, created)
			if err != nil {
				uc.logger.Error("CreateRideBooking: matching failed for ride id=%d: %v", created.ID, err)
				return fmt.Errorf("%w: matching failed: %v", ErrInternal, err)
			}

			if err := uc.rideRepo.Update(txCtx, created); err != nil {
				uc.logger.Error("CreateRideBooking: failed to save ride id=%d: %v", created.ID, err)
				return fmt.Errorf("%w: failed to save ride: %v", ErrInternal, err)
			}

			ride = created
			return nil
		})
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("CreateRideBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	uc.metrics.IncRidePooling(poolingResult)

	uc.logger.Info("CreateRideBooking: created ride id=%d, status=%s, group=%v, fare=%s",
		ride.ID, ride.Status, ride.PoolingGroupID, ride.EstimatedFare.StringFixed(2))

	return newResponse(ride, poolingResult), nil
}

func (uc *UseCase) checkParkingBooking(ctx context.Context, bookingID int64, user domain.UserRef) error {
	booking, err := uc.parkingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, parkingRepo.ErrBookingNotFound) {
			uc.logger.Warn("CreateRideBooking: parking booking id=%d not found", bookingID)
			return ErrParkingBookingNotFound
		}
		uc.logger.Error("CreateRideBooking: failed to get parking booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: failed to get parking booking: %v", ErrInternal, err)
	}

	if booking.UserID != user.ID {
		uc.logger.Warn("CreateRideBooking: parking booking id=%d belongs to another user", bookingID)
		return ErrParkingBookingNotFound
	}

	return nil
}

func (uc *UseCase) withPoolingLock(fn func() error) error {
	unlock := uc.locker.Lock(domain.PoolingLockKey)
	defer unlock()
	return fn()
}
