package rides

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ParkRideService/internal/domain"
	rideRepo "github.com/m04kA/SMC-ParkRideService/internal/infra/storage/ride"
)

// Service сервис жизненного цикла поездки
type Service struct {
	rideRepo     RideRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса поездок
func NewService(rideRepo RideRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		rideRepo:     rideRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// ParseStatus разбирает статус поездки без учета регистра
func ParseStatus(raw string) (domain.RideStatus, error) {
	status := domain.RideStatus(strings.ToUpper(strings.TrimSpace(raw)))
	if !status.IsValid() {
		return "", fmt.Errorf("%w: unknown ride status %q", ErrInvalidInput, raw)
	}
	return status, nil
}

// UpdateStatus переводит поездку в новый статус.
// Переходы только вперед по пути поездки, CANCELLED из любого незавершенного статуса
func (s *Service) UpdateStatus(ctx context.Context, rideID int64, next domain.RideStatus, user domain.UserRef) (*domain.RideBooking, error) {
	s.logger.Info("UpdateRideStatus: ride id=%d to %s by user=%d", rideID, next, user.ID)

	if !next.IsValid() {
		return nil, fmt.Errorf("%w: unknown ride status %q", ErrInvalidInput, next)
	}

	var result *domain.RideBooking

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		ride, err := s.getOwned(txCtx, "UpdateRideStatus", rideID, user)
		if err != nil {
			return err
		}

		if !ride.Status.CanTransitionTo(next) {
			s.logger.Warn("UpdateRideStatus: ride id=%d cannot move %s -> %s", ride.ID, ride.Status, next)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, ride.Status, next)
		}

		s.apply(ride, next)

		if err := s.rideRepo.Update(txCtx, ride); err != nil {
			s.logger.Error("UpdateRideStatus: failed to save ride id=%d: %v", ride.ID, err)
			return fmt.Errorf("%w: UpdateRideStatus - repository error: %v", ErrInternal, err)
		}

		result = ride
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) || errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidState) {
			return nil, err
		}
		s.logger.Error("UpdateRideStatus: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: UpdateRideStatus - transaction failed: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateRideStatus: ride id=%d is now %s", result.ID, result.Status)
	return result, nil
}

// Cancel отменяет поездку
func (s *Service) Cancel(ctx context.Context, rideID int64, user domain.UserRef) (*domain.RideBooking, error) {
	return s.UpdateStatus(ctx, rideID, domain.RideStatusCancelled, user)
}

// GetByID возвращает поездку пользователя
func (s *Service) GetByID(ctx context.Context, rideID int64, user domain.UserRef) (*domain.RideBooking, error) {
	s.logger.Info("GetRide: ride id=%d for user=%d", rideID, user.ID)
	return s.getOwned(ctx, "GetRide", rideID, user)
}

// GetUserRides возвращает поездки пользователя, опционально по статусу
func (s *Service) GetUserRides(ctx context.Context, user domain.UserRef, status *string) ([]*domain.RideBooking, error) {
	s.logger.Info("GetUserRides: user=%d, status=%v", user.ID, status)

	var filter *domain.RideStatus
	if status != nil {
		st, err := ParseStatus(*status)
		if err != nil {
			s.logger.Warn("GetUserRides: %v", err)
			return nil, err
		}
		filter = &st
	}

	rides, err := s.rideRepo.ListByUser(ctx, user.ID, filter)
	if err != nil {
		s.logger.Error("GetUserRides: repository error for user=%d: %v", user.ID, err)
		return nil, fmt.Errorf("%w: GetUserRides - repository error: %v", ErrInternal, err)
	}

	return rides, nil
}

// apply меняет статус и отметки времени
func (s *Service) apply(ride *domain.RideBooking, next domain.RideStatus) {
	now := s.timeProvider.Now()

	switch next {
	case domain.RideStatusPickup:
		ride.ActualPickup = &now
	case domain.RideStatusCompleted:
		if ride.ActualPickup == nil {
			ride.ActualPickup = &now
		}
		ride.ActualDropoff = &now
		if ride.ActualFare == nil {
			fare := ride.EstimatedFare
			ride.ActualFare = &fare
		}
	}

	ride.Status = next
}

func (s *Service) getOwned(ctx context.Context, op string, rideID int64, user domain.UserRef) (*domain.RideBooking, error) {
	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		if errors.Is(err, rideRepo.ErrRideNotFound) {
			s.logger.Warn("%s: ride id=%d not found", op, rideID)
			return nil, ErrRideNotFound
		}
		s.logger.Error("%s: repository error for ride id=%d: %v", op, rideID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if ride.UserID != user.ID {
		s.logger.Warn("%s: ride id=%d belongs to another user, requested by user=%d", op, rideID, user.ID)
		return nil, ErrRideNotFound
	}

	return ride, nil
}
