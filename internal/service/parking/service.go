package parking

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-ParkRideService/internal/domain"
	parkingRepo "github.com/m04kA/SMC-ParkRideService/internal/infra/storage/parking"
	"github.com/m04kA/SMC-ParkRideService/internal/service/credentials"
)

// Service жизненный цикл бронирования парковки после создания
type Service struct {
	bookingRepo  BookingRepository
	lotRepo      LotRepository
	spotRepo     SpotRepository
	lotCache     LotCache
	locker       KeyLocker
	txManager    TransactionManager
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса
func NewService(
	bookingRepo BookingRepository,
	lotRepo LotRepository,
	spotRepo SpotRepository,
	lotCache LotCache,
	locker KeyLocker,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		lotRepo:      lotRepo,
		spotRepo:     spotRepo,
		lotCache:     lotCache,
		locker:       locker,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// transition описывает один переход жизненного цикла
type transition struct {
	op      string
	allowed func(b *domain.ParkingBooking) bool
	denied  error
	apply   func(b *domain.ParkingBooking, now time.Time)
	spot    domain.SpotStatus
	release bool // вернуть единицу вместимости лоту
}

var (
	startTransition = transition{
		op:      "Start",
		allowed: (*domain.ParkingBooking).CanStart,
		denied:  ErrCannotStart,
		apply: func(b *domain.ParkingBooking, now time.Time) {
			b.Status = domain.BookingStatusActive
			b.ActualStart = &now
		},
		spot: domain.SpotStatusOccupied,
	}

	endTransition = transition{
		op:      "End",
		allowed: (*domain.ParkingBooking).CanEnd,
		denied:  ErrCannotEnd,
		apply: func(b *domain.ParkingBooking, now time.Time) {
			b.Status = domain.BookingStatusCompleted
			b.ActualEnd = &now
		},
		spot:    domain.SpotStatusAvailable,
		release: true,
	}

	cancelTransition = transition{
		op:      "Cancel",
		allowed: (*domain.ParkingBooking).CanBeCancelled,
		denied:  ErrCannotCancel,
		apply: func(b *domain.ParkingBooking, _ time.Time) {
			b.Status = domain.BookingStatusCancelled
		},
		spot:    domain.SpotStatusAvailable,
		release: true,
	}
)

// Start начинает парковку: CONFIRMED -> ACTIVE, место OCCUPIED
func (s *Service) Start(ctx context.Context, bookingID int64, user domain.UserRef) (*domain.ParkingBooking, error) {
	return s.transit(ctx, bookingID, user, startTransition)
}

// End завершает парковку: ACTIVE -> COMPLETED, место освобождается
func (s *Service) End(ctx context.Context, bookingID int64, user domain.UserRef) (*domain.ParkingBooking, error) {
	return s.transit(ctx, bookingID, user, endTransition)
}

// Cancel отменяет бронирование: CONFIRMED -> CANCELLED, место освобождается
func (s *Service) Cancel(ctx context.Context, bookingID int64, user domain.UserRef) (*domain.ParkingBooking, error) {
	return s.transit(ctx, bookingID, user, cancelTransition)
}

// transit выполняет переход под блокировкой лота в сериализуемой транзакции.
// Чужое бронирование неотличимо от отсутствующего
func (s *Service) transit(ctx context.Context, bookingID int64, user domain.UserRef, t transition) (*domain.ParkingBooking, error) {
	s.logger.Info("%s: booking id=%d by user=%d", t.op, bookingID, user.ID)

	// 1. Читаем без блокировки, чтобы узнать лот
	booking, err := s.getOwned(ctx, t.op, bookingID, user)
	if err != nil {
		return nil, err
	}

	var result *domain.ParkingBooking

	// 2. Переход под блокировкой лота
	err = s.withLotLock(booking.LotID, func() error {
		return s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			b, err := s.getOwned(txCtx, t.op, bookingID, user)
			if err != nil {
				return err
			}

			if !t.allowed(b) {
				s.logger.Warn("%s: booking id=%d in status %s", t.op, b.ID, b.Status)
				return t.denied
			}

			if err := s.applyTransition(txCtx, t, b, s.timeProvider.Now()); err != nil {
				return err
			}

			result = b
			return nil
		})
	})
	if err != nil {
		return nil, s.wrapTxError(t.op, err)
	}

	if t.release {
		s.invalidateLots(ctx, t.op)
	}

	s.logger.Info("%s: booking id=%d is now %s", t.op, result.ID, result.Status)
	return result, nil
}

// applyTransition меняет статус бронирования, место и счетчик лота. Вызывается внутри транзакции
func (s *Service) applyTransition(ctx context.Context, t transition, b *domain.ParkingBooking, now time.Time) error {
	t.apply(b, now)

	if err := s.bookingRepo.UpdateState(ctx, b); err != nil {
		s.logger.Error("%s: failed to update booking id=%d: %v", t.op, b.ID, err)
		return fmt.Errorf("%w: %s - failed to update booking: %v", ErrInternal, t.op, err)
	}

	if b.HasSpot() {
		if err := s.spotRepo.UpdateStatus(ctx, *b.SpotID, t.spot); err != nil {
			s.logger.Error("%s: failed to set spot id=%d to %s: %v", t.op, *b.SpotID, t.spot, err)
			return fmt.Errorf("%w: %s - failed to update spot: %v", ErrInternal, t.op, err)
		}
	}

	if t.release {
		if _, err := s.lotRepo.GetForUpdate(ctx, b.LotID); err != nil {
			s.logger.Error("%s: failed to lock lot id=%d: %v", t.op, b.LotID, err)
			return fmt.Errorf("%w: %s - failed to lock lot: %v", ErrInternal, t.op, err)
		}
		if _, err := s.lotRepo.RecountAvailable(ctx, b.LotID, domain.LiveBookingStatuses); err != nil {
			s.logger.Error("%s: failed to release unit of lot id=%d: %v", t.op, b.LotID, err)
			return fmt.Errorf("%w: %s - failed to release unit: %v", ErrInternal, t.op, err)
		}
	}

	return nil
}

// ValidateQR находит бронирование по QR строке. Состояние не меняется
func (s *Service) ValidateQR(ctx context.Context, payload string) (*domain.ParkingBooking, error) {
	bookingID, pin, err := credentials.ParseQRPayload(strings.TrimSpace(payload))
	if err != nil {
		s.logger.Warn("ValidateQR: malformed payload: %v", err)
		return nil, ErrInvalidCredential
	}

	return s.ValidatePin(ctx, bookingID, pin)
}

// ValidatePin находит бронирование по ID и сверяет PIN. Состояние не меняется
func (s *Service) ValidatePin(ctx context.Context, bookingID int64, pin string) (*domain.ParkingBooking, error) {
	s.logger.Info("ValidatePin: booking id=%d", bookingID)

	if bookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	booking, err := s.get(ctx, "ValidatePin", bookingID)
	if err != nil {
		return nil, err
	}

	if subtle.ConstantTimeCompare([]byte(booking.AccessPin), []byte(pin)) != 1 {
		s.logger.Warn("ValidatePin: pin mismatch for booking id=%d", bookingID)
		return nil, ErrInvalidCredential
	}

	return booking, nil
}

// GetByID возвращает бронирование пользователя
func (s *Service) GetByID(ctx context.Context, bookingID int64, user domain.UserRef) (*domain.ParkingBooking, error) {
	s.logger.Info("GetByID: booking id=%d for user=%d", bookingID, user.ID)
	return s.getOwned(ctx, "GetByID", bookingID, user)
}

// GetUserBookings возвращает историю бронирований пользователя, опционально по статусу
func (s *Service) GetUserBookings(ctx context.Context, user domain.UserRef, status *string) ([]*domain.ParkingBooking, error) {
	s.logger.Info("GetUserBookings: user=%d, status=%v", user.ID, status)

	userID := user.ID
	filter := domain.ParkingBookingsFilter{UserID: &userID}

	if status != nil {
		st := domain.BookingStatus(strings.ToUpper(strings.TrimSpace(*status)))
		if !st.IsValid() {
			s.logger.Warn("GetUserBookings: invalid status=%s", *status)
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *status)
		}
		filter.Statuses = []domain.BookingStatus{st}
	}

	bookings, err := s.bookingRepo.ListByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", user.ID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	return bookings, nil
}

// MarkNoShows переводит просроченные CONFIRMED бронирования в NO_SHOW
// и возвращает единицы вместимости. Возвращает число обработанных бронирований
func (s *Service) MarkNoShows(ctx context.Context, now time.Time, grace time.Duration, limit uint64) (int, error) {
	candidates, err := s.bookingRepo.ListNoShowCandidates(ctx, now.Add(-grace), limit)
	if err != nil {
		s.logger.Error("MarkNoShows: failed to list candidates: %v", err)
		return 0, fmt.Errorf("%w: MarkNoShows - repository error: %v", ErrInternal, err)
	}

	swept := 0
	for _, candidate := range candidates {
		marked, err := s.markNoShow(ctx, candidate, now, grace)
		if err != nil {
			s.logger.Error("MarkNoShows: booking id=%d: %v", candidate.ID, err)
			continue
		}
		if marked {
			swept++
		}
	}

	if swept > 0 {
		s.metrics.AddNoShowSwept(swept)
		s.invalidateLots(ctx, "MarkNoShows")
		s.logger.Info("MarkNoShows: %d bookings marked NO_SHOW", swept)
	}

	return swept, nil
}

func (s *Service) markNoShow(ctx context.Context, candidate *domain.ParkingBooking, now time.Time, grace time.Duration) (bool, error) {
	marked := false

	err := s.withLotLock(candidate.LotID, func() error {
		return s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			b, err := s.get(txCtx, "MarkNoShows", candidate.ID)
			if err != nil {
				return err
			}

			// пока ждали блокировку, парковка могла начаться или быть отменена
			if !b.IsNoShowAt(now, grace) {
				return nil
			}

			t := transition{
				op: "MarkNoShows",
				apply: func(b *domain.ParkingBooking, _ time.Time) {
					b.Status = domain.BookingStatusNoShow
				},
				spot:    domain.SpotStatusAvailable,
				release: true,
			}
			if err := s.applyTransition(txCtx, t, b, now); err != nil {
				return err
			}

			marked = true
			return nil
		})
	})

	return marked, err
}

func (s *Service) get(ctx context.Context, op string, bookingID int64) (*domain.ParkingBooking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, parkingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, bookingID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

func (s *Service) getOwned(ctx context.Context, op string, bookingID int64, user domain.UserRef) (*domain.ParkingBooking, error) {
	booking, err := s.get(ctx, op, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.UserID != user.ID {
		s.logger.Warn("%s: booking id=%d belongs to another user, requested by user=%d", op, bookingID, user.ID)
		return nil, ErrBookingNotFound
	}

	return booking, nil
}

func (s *Service) withLotLock(lotID int64, fn func() error) error {
	unlock := s.locker.Lock(domain.LotLockKey(lotID))
	defer unlock()
	return fn()
}

func (s *Service) invalidateLots(ctx context.Context, op string) {
	if err := s.lotCache.InvalidateAvailable(ctx); err != nil {
		s.logger.Warn("%s: failed to invalidate lots cache: %v", op, err)
	}
}

func (s *Service) wrapTxError(op string, err error) error {
	if errors.Is(err, ErrInternal) ||
		errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrInvalidState) {
		return err
	}
	s.logger.Error("%s: transaction failed: %v", op, err)
	return fmt.Errorf("%w: %s - transaction failed: %v", ErrInternal, op, err)
}
