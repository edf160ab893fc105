package allocator

import (
	"context"
	"fmt"
	"sort"

	"github.com/m04kA/SMC-ParkRideService/internal/domain"
)

// Allocator подбирает физическое место под бронирование.
// Вызывается внутри транзакции создания бронирования под блокировкой лота
type Allocator struct {
	spotRepo    SpotRepository
	bookingRepo BookingRepository
}

// NewAllocator создает аллокатор мест
func NewAllocator(spotRepo SpotRepository, bookingRepo BookingRepository) *Allocator {
	return &Allocator{
		spotRepo:    spotRepo,
		bookingRepo: bookingRepo,
	}
}

// Allocate выбирает свободное место лота с наименьшим номером, не занятое
// живыми бронированиями в окне, и переводит его в RESERVED.
// Если подходящего места нет, возвращает nil без ошибки
func (a *Allocator) Allocate(ctx context.Context, lotID int64, window domain.Window) (*domain.Spot, error) {
	spots, err := a.spotRepo.ListByLotAndStatus(ctx, lotID, domain.SpotStatusAvailable)
	if err != nil {
		return nil, fmt.Errorf("%w: Allocate - list spots: %v", ErrInternal, err)
	}
	if len(spots) == 0 {
		return nil, nil
	}

	taken, err := a.bookingRepo.ListAssignedSpotIDsOverlapping(ctx, lotID, window, domain.LiveBookingStatuses)
	if err != nil {
		return nil, fmt.Errorf("%w: Allocate - list assigned spots: %v", ErrInternal, err)
	}

	spot := pickSpot(spots, taken)
	if spot == nil {
		return nil, nil
	}

	if err := a.spotRepo.UpdateStatus(ctx, spot.ID, domain.SpotStatusReserved); err != nil {
		return nil, fmt.Errorf("%w: Allocate - reserve spot id=%d: %v", ErrInternal, spot.ID, err)
	}
	spot.Status = domain.SpotStatusReserved

	return spot, nil
}

// pickSpot первое по естественному порядку номеров свободное место
func pickSpot(spots []*domain.Spot, taken []int64) *domain.Spot {
	busy := make(map[int64]struct{}, len(taken))
	for _, id := range taken {
		busy[id] = struct{}{}
	}

	candidates := make([]*domain.Spot, 0, len(spots))
	for _, s := range spots {
		if !s.IsAvailable() {
			continue
		}
		if _, ok := busy[s.ID]; ok {
			continue
		}
		candidates = append(candidates, s)
	}
	if len(candidates) == 0 {
		return nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return domain.SpotNumberLess(candidates[i].SpotNumber, candidates[j].SpotNumber)
	})

	return candidates[0]
}
