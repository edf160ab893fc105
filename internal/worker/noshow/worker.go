package noshow

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Config настройки фоновой проверки неявок
type Config struct {
	Schedule   string        // cron выражение или дескриптор, например "@every 5m"
	Grace      time.Duration // сколько ждать после начала окна
	BatchSize  uint64        // сколько бронирований обработать за проход
	RunTimeout time.Duration // ограничение на один проход
}

// Worker периодически переводит неначатые бронирования в NO_SHOW
type Worker struct {
	cron         *cron.Cron
	sweeper      Sweeper
	cfg          Config
	timeProvider TimeProvider
	logger       Logger

	mu      sync.Mutex
	running bool
}

// NewWorker создает воркер и регистрирует задачу по расписанию
func NewWorker(sweeper Sweeper, cfg Config, logger Logger) (*Worker, error) {
	if cfg.RunTimeout <= 0 {
		cfg.RunTimeout = time.Minute
	}

	w := &Worker{
		cron:         cron.New(),
		sweeper:      sweeper,
		cfg:          cfg,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}

	if _, err := w.cron.AddFunc(cfg.Schedule, w.tick); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidSchedule, cfg.Schedule, err)
	}

	return w, nil
}

// WithTimeProvider подменяет источник времени
func (w *Worker) WithTimeProvider(tp TimeProvider) *Worker {
	w.timeProvider = tp
	return w
}

// Start запускает расписание
func (w *Worker) Start() {
	w.logger.Info("NoShowWorker: started with schedule %q, grace=%s", w.cfg.Schedule, w.cfg.Grace)
	w.cron.Start()
}

// Stop останавливает расписание и ждет завершения текущего прохода
func (w *Worker) Stop(ctx context.Context) {
	done := w.cron.Stop()
	select {
	case <-done.Done():
		w.logger.Info("NoShowWorker: stopped")
	case <-ctx.Done():
		w.logger.Warn("NoShowWorker: stop timed out: %v", ctx.Err())
	}
}

// RunOnce выполняет один проход
func (w *Worker) RunOnce(ctx context.Context) (int, error) {
	swept, err := w.sweeper.MarkNoShows(ctx, w.timeProvider.Now(), w.cfg.Grace, w.cfg.BatchSize)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrSweepFailed, err)
	}
	return swept, nil
}

// tick запускается cron. Проходы не накладываются друг на друга
func (w *Worker) tick() {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		w.logger.Warn("NoShowWorker: previous run still in progress, skipping")
		return
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), w.cfg.RunTimeout)
	defer cancel()

	swept, err := w.RunOnce(ctx)
	if err != nil {
		w.logger.Error("NoShowWorker: %v", err)
		return
	}
	if swept > 0 {
		w.logger.Info("NoShowWorker: marked %d bookings as NO_SHOW", swept)
	}
}
