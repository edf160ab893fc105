package create_parking_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkRideService/internal/domain"
	lotRepo "github.com/m04kA/SMC-ParkRideService/internal/infra/storage/lot"
	"github.com/m04kA/SMC-ParkRideService/pkg/metrics"
)

// UseCase use case для бронирования места на парковке
type UseCase struct {
	lotRepo      LotRepository
	bookingRepo  BookingRepository
	allocator    SpotAllocator
	pricing      PricingEngine
	credentials  CredentialIssuer
	lotCache     LotCache
	locker       KeyLocker
	txManager    TransactionManager
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	lotRepo LotRepository,
	bookingRepo BookingRepository,
	allocator SpotAllocator,
	pricing PricingEngine,
	credentials CredentialIssuer,
	lotCache LotCache,
	locker KeyLocker,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		lotRepo:      lotRepo,
		bookingRepo:  bookingRepo,
		allocator:    allocator,
		pricing:      pricing,
		credentials:  credentials,
		lotCache:     lotCache,
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

// Execute выполняет use case создания бронирования.
// Проверка вместимости на окно, выбор места, вставка и пересчет счетчика выполняются
// под блокировкой лота в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request, user domain.UserRef) (*Response, error) {
	uc.logger.Info("CreateParkingBooking: user=%d, lot=%d, window=[%s, %s), class=%s",
		user.ID, req.LotID, req.StartTime.Format("2006-01-02T15:04"), req.EndTime.Format("2006-01-02T15:04"), req.Class)

	// 1. Валидация входных данных
	if err := validateRequest(req, user, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateParkingBooking: validation failed: %v", err)
		return nil, err
	}

	window := domain.NewWindow(req.StartTime, req.EndTime)

	var (
		result *domain.ParkingBooking
		spot   *domain.Spot
	)

	// 2. Сериализуем создание бронирований на один лот
	err := uc.withLotLock(req.LotID, func() error {
		return uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			// 2.1. Блокируем строку лота
			lot, err := uc.lotRepo.GetForUpdate(txCtx, req.LotID)
			if err != nil {
				if errors.Is(err, lotRepo.ErrLotNotFound) {
					uc.logger.Warn("CreateParkingBooking: lot id=%d not found", req.LotID)
					return ErrLotNotFound
				}
				uc.logger.Error("CreateParkingBooking: failed to get lot id=%d: %v", req.LotID, err)
				return fmt.Errorf("%w: failed to get lot: %v", ErrInternal, err)
			}

			if !lot.IsActive() {
				uc.logger.Warn("CreateParkingBooking: lot id=%d is %s", lot.ID, lot.Status)
				return ErrLotNotActive
			}

			// 2.2. Проверяем вместимость на окно
			overlapping, err := uc.bookingRepo.CountOverlapping(txCtx, lot.ID, window, domain.LiveBookingStatuses)
			if err != nil {
				uc.logger.Error("CreateParkingBooking: failed to count overlapping bookings: %v", err)
				return fmt.Errorf("%w: failed to count overlapping bookings: %v", ErrInternal, err)
			}

			// При totalUnits = 4 допустимо overlapping = 0..3
			if overlapping >= lot.TotalUnits {
				uc.logger.Warn("CreateParkingBooking: lot id=%d full for window, %d/%d taken",
					lot.ID, overlapping, lot.TotalUnits)
				return ErrCapacityExhausted
			}

			// 2.3. Цена
			amount := uc.pricing.PriceLot(txCtx, lot, window, req.Class)

			// 2.4. Место подбирается по возможности, его отсутствие бронированию не мешает
			spot, err = uc.allocator.Allocate(txCtx, lot.ID, window)
			if err != nil {
				uc.logger.Error("CreateParkingBooking: failed to allocate spot in lot id=%d: %v", lot.ID, err)
				return fmt.Errorf("%w: failed to allocate spot: %v", ErrInternal, err)
			}

			// 2.5. PIN
			pin, err := uc.credentials.IssuePin()
			if err != nil {
				uc.logger.Error("CreateParkingBooking: failed to issue pin: %v", err)
				return fmt.Errorf("%w: failed to issue pin: %v", ErrInternal, err)
			}

			booking := &domain.ParkingBooking{
				UserID:        user.ID,
				LotID:         lot.ID,
				Window:        window,
				TotalAmount:   amount,
				Status:        domain.BookingStatusConfirmed,
				Class:         req.Class,
				AccessPin:     pin,
				VehicleNumber: req.VehicleNumber,
			}
			if spot != nil {
				spotID := spot.ID
				booking.SpotID = &spotID
			}

			// 2.6. Создаем бронирование
			result, err = uc.bookingRepo.Create(txCtx, booking)
			if err != nil {
				uc.logger.Error("CreateParkingBooking: failed to create booking: %v", err)
				return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
			}

			// 2.7. Пересчитываем счетчик свободных мест лота
			if _, err := uc.lotRepo.RecountAvailable(txCtx, lot.ID, domain.LiveBookingStatuses); err != nil {
				uc.logger.Error("CreateParkingBooking: failed to recount available units: %v", err)
				return fmt.Errorf("%w: failed to recount available units: %v", ErrInternal, err)
			}

			return nil
		})
	})

	if err != nil {
		uc.countOutcome(err)
		if errors.Is(err, ErrInternal) || errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrConflict) {
			return nil, err
		}
		uc.logger.Error("CreateParkingBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	uc.metrics.IncParkingBooking(metrics.OutcomeCreated)

	// 3. Список доступных лотов устарел
	if err := uc.lotCache.InvalidateAvailable(ctx); err != nil {
		uc.logger.Warn("CreateParkingBooking: failed to invalidate lots cache: %v", err)
	}

	// 4. QR строка. Ошибка не отменяет бронирование: остается доступ по PIN
	uc.attachQRPayload(ctx, result)

	uc.logger.Info("CreateParkingBooking: created booking id=%d, lot=%d, spot=%v, amount=%s",
		result.ID, result.LotID, result.SpotID, result.TotalAmount.StringFixed(2))

	return newResponse(result, spot), nil
}

func (uc *UseCase) withLotLock(lotID int64, fn func() error) error {
	unlock := uc.locker.Lock(domain.LotLockKey(lotID))
	defer unlock()
	return fn()
}

func (uc *UseCase) attachQRPayload(ctx context.Context, booking *domain.ParkingBooking) {
	payload, err := uc.credentials.IssueQRPayload(booking.ID, booking.AccessPin)
	if err != nil {
		uc.logger.Error("CreateParkingBooking: failed to issue qr payload for booking id=%d: %v", booking.ID, err)
		return
	}

	if err := uc.bookingRepo.SetQRPayload(ctx, booking.ID, payload); err != nil {
		uc.logger.Error("CreateParkingBooking: failed to save qr payload for booking id=%d: %v", booking.ID, err)
		return
	}

	booking.QRPayload = &payload
}

func (uc *UseCase) countOutcome(err error) {
	if errors.Is(err, domain.ErrConflict) {
		uc.metrics.IncParkingBooking(metrics.OutcomeConflict)
		return
	}
	uc.metrics.IncParkingBooking(metrics.OutcomeFailed)
}
