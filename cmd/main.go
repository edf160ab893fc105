package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	createLotHandler "github.com/m04kA/SMC-ParkRideService/internal/api/handlers/create_lot"
	createParkingBookingHandler "github.com/m04kA/SMC-ParkRideService/internal/api/handlers/create_parking_booking"
	createRideBookingHandler "github.com/m04kA/SMC-ParkRideService/internal/api/handlers/create_ride_booking"
	getLotHandler "github.com/m04kA/SMC-ParkRideService/internal/api/handlers/get_lot"
	getParkingBookingHandler "github.com/m04kA/SMC-ParkRideService/internal/api/handlers/get_parking_booking"
	getRideHandler "github.com/m04kA/SMC-ParkRideService/internal/api/handlers/get_ride"
	getUserBookingsHandler "github.com/m04kA/SMC-ParkRideService/internal/api/handlers/get_user_bookings"
	getUserRidesHandler "github.com/m04kA/SMC-ParkRideService/internal/api/handlers/get_user_rides"
	listLotsHandler "github.com/m04kA/SMC-ParkRideService/internal/api/handlers/list_lots"
	listNearbyLotsHandler "github.com/m04kA/SMC-ParkRideService/internal/api/handlers/list_nearby_lots"
	parkingBookingActionHandler "github.com/m04kA/SMC-ParkRideService/internal/api/handlers/parking_booking_action"
	quoteParkingPriceHandler "github.com/m04kA/SMC-ParkRideService/internal/api/handlers/quote_parking_price"
	updateLotStatusHandler "github.com/m04kA/SMC-ParkRideService/internal/api/handlers/update_lot_status"
	updateRideStatusHandler "github.com/m04kA/SMC-ParkRideService/internal/api/handlers/update_ride_status"
	validateAccessHandler "github.com/m04kA/SMC-ParkRideService/internal/api/handlers/validate_access"
	"github.com/m04kA/SMC-ParkRideService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkRideService/internal/config"
	"github.com/m04kA/SMC-ParkRideService/internal/infra/cache"
	lotRepo "github.com/m04kA/SMC-ParkRideService/internal/infra/storage/lot"
	parkingRepo "github.com/m04kA/SMC-ParkRideService/internal/infra/storage/parking"
	rideRepo "github.com/m04kA/SMC-ParkRideService/internal/infra/storage/ride"
	spotRepo "github.com/m04kA/SMC-ParkRideService/internal/infra/storage/spot"
	"github.com/m04kA/SMC-ParkRideService/internal/integrations/dispatch"
	userServiceClient "github.com/m04kA/SMC-ParkRideService/internal/integrations/userservice"
	"github.com/m04kA/SMC-ParkRideService/internal/service/allocator"
	"github.com/m04kA/SMC-ParkRideService/internal/service/credentials"
	lotsService "github.com/m04kA/SMC-ParkRideService/internal/service/lots"
	parkingService "github.com/m04kA/SMC-ParkRideService/internal/service/parking"
	"github.com/m04kA/SMC-ParkRideService/internal/service/pooling"
	"github.com/m04kA/SMC-ParkRideService/internal/service/pricing"
	ridesService "github.com/m04kA/SMC-ParkRideService/internal/service/rides"
	createParkingBookingUC "github.com/m04kA/SMC-ParkRideService/internal/usecase/create_parking_booking"
	createRideBookingUC "github.com/m04kA/SMC-ParkRideService/internal/usecase/create_ride_booking"
	"github.com/m04kA/SMC-ParkRideService/internal/worker/noshow"
	"github.com/m04kA/SMC-ParkRideService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkRideService/pkg/keylock"
	"github.com/m04kA/SMC-ParkRideService/pkg/logger"
	"github.com/m04kA/SMC-ParkRideService/pkg/metrics"
	"github.com/m04kA/SMC-ParkRideService/pkg/txmanager"
)

func main() {
	// .env необязателен, переменные окружения могут прийти и из оркестратора
	_ = godotenv.Load()

	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-ParkRideService...")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Без метрик обёртка просто не пишет наблюдения
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Redis необязателен: без него кэши ничего не хранят
	var (
		lotCache     *cache.LotCache
		pricingCache pricing.PriceCache
	)
	if cfg.Redis.Enabled() {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis is unreachable at %s, caches will degrade to database reads: %v", cfg.Redis.Addr, err)
		}
		cancelPing()

		lotCache = cache.NewLotCache(redisClient, time.Duration(cfg.Cache.LotsTTL)*time.Second)
		pricingCache = cache.NewPricingCache(redisClient, time.Duration(cfg.Cache.PricingTTL)*time.Second)
		log.Info("Redis cache enabled (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)
	} else {
		log.Info("Redis is not configured, caching disabled")
	}

	// Репозитории
	lotRepository := lotRepo.NewRepository(wrappedDB)
	spotRepository := spotRepo.NewRepository(wrappedDB)
	parkingRepository := parkingRepo.NewRepository(wrappedDB)
	rideRepository := rideRepo.NewRepository(wrappedDB)

	// Интеграции
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	dispatcher := dispatch.NewStub()
	log.Info("Integration clients initialized (UserService=%s timeout=%ds)",
		cfg.UserService.URL, cfg.UserService.Timeout)

	// Сервисы
	pricingCfg, err := pricingConfig(cfg.Pricing)
	if err != nil {
		log.Fatal("Invalid pricing config: %v", err)
	}
	pricingEngine := pricing.NewCachedEngine(pricing.NewEngine(pricingCfg), pricingCache, log)
	locker := keylock.New()
	spotAllocator := allocator.NewAllocator(spotRepository, parkingRepository)
	issuer := credentials.NewIssuer()
	matcher := pooling.NewMatcher(rideRepository, dispatcher, cfg.Pooling.RadiusMeters, log)

	parkingSvc := parkingService.NewService(
		parkingRepository,
		lotRepository,
		spotRepository,
		lotCache,
		locker,
		txMgr,
		metricsCollector,
		log,
	)
	ridesSvc := ridesService.NewService(rideRepository, txMgr, log)
	lotsSvc := lotsService.NewService(
		lotRepository,
		spotRepository,
		lotCache,
		pricingEngine,
		txMgr,
		log,
	)

	// Use cases
	createParkingBookingUseCase := createParkingBookingUC.NewUseCase(
		lotRepository,
		parkingRepository,
		spotAllocator,
		pricingEngine,
		issuer,
		lotCache,
		locker,
		txMgr,
		metricsCollector,
		log,
	)
	createRideBookingUseCase := createRideBookingUC.NewUseCase(
		rideRepository,
		parkingRepository,
		pricingEngine,
		matcher,
		locker,
		txMgr,
		metricsCollector,
		log,
	)

	// Фоновый перевод неявок в NO_SHOW
	var noShowWorker *noshow.Worker
	if cfg.NoShow.Enabled {
		noShowWorker, err = noshow.NewWorker(parkingSvc, noshow.Config{
			Schedule:  cfg.NoShow.Schedule,
			Grace:     cfg.NoShow.Grace(),
			BatchSize: uint64(cfg.NoShow.BatchSize),
		}, log)
		if err != nil {
			log.Fatal("Failed to create no-show worker: %v", err)
		}
		noShowWorker.Start()
		log.Info("No-show worker started (schedule=%s, grace=%s)", cfg.NoShow.Schedule, cfg.NoShow.Grace())
	}

	// Handlers
	createParkingBooking := createParkingBookingHandler.NewHandler(createParkingBookingUseCase, log)
	getParkingBooking := getParkingBookingHandler.NewHandler(parkingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(parkingSvc, log)
	parkingBookingAction := parkingBookingActionHandler.NewHandler(parkingSvc, log)
	validateAccess := validateAccessHandler.NewHandler(parkingSvc, log)
	createRideBooking := createRideBookingHandler.NewHandler(createRideBookingUseCase, log)
	getRide := getRideHandler.NewHandler(ridesSvc, log)
	getUserRides := getUserRidesHandler.NewHandler(ridesSvc, log)
	updateRideStatus := updateRideStatusHandler.NewHandler(ridesSvc, log)
	listLots := listLotsHandler.NewHandler(lotsSvc, log)
	listNearbyLots := listNearbyLotsHandler.NewHandler(lotsSvc, log)
	getLot := getLotHandler.NewHandler(lotsSvc, log)
	quoteParkingPrice := quoteParkingPriceHandler.NewHandler(lotsSvc, pricingEngine, log)
	createLot := createLotHandler.NewHandler(lotsSvc, log)
	updateLotStatus := updateLotStatusHandler.NewHandler(lotsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.Logging(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// --- Парковки ---
	// nearby регистрируется раньше {lotId}
	api.HandleFunc("/lots", listLots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/lots/nearby", listNearbyLots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/lots/{lotId:[0-9]+}", getLot.Handle).Methods(http.MethodGet)
	api.HandleFunc("/lots/{lotId:[0-9]+}/quote", quoteParkingPrice.Handle).Methods(http.MethodGet)

	// --- Проверка доступа на въезде (QR или PIN сами являются доказательством) ---
	api.HandleFunc("/parking/access/qr", validateAccess.HandleQR).Methods(http.MethodPost)
	api.HandleFunc("/parking/access/pin", validateAccess.HandlePin).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-Name header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(userClient, log))

	// --- Бронирования парковки ---
	protected.HandleFunc("/parking/bookings", createParkingBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/parking/bookings", getUserBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/parking/bookings/{bookingId}", getParkingBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/parking/bookings/{bookingId}/{action}", parkingBookingAction.Handle).Methods(http.MethodPatch)

	// --- Поездки ---
	protected.HandleFunc("/rides", createRideBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/rides", getUserRides.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/rides/{rideId}", getRide.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/rides/{rideId}/status", updateRideStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/rides/{rideId}/cancel", updateRideStatus.HandleCancel).Methods(http.MethodPost)

	// --- Управление парковками (только ADMIN) ---
	admin := protected.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireAdmin(log))
	admin.HandleFunc("/lots", createLot.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/lots/{lotId}/status", updateLotStatus.Handle).Methods(http.MethodPatch)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if noShowWorker != nil {
		noShowWorker.Stop(shutdownCtx)
		log.Info("No-show worker stopped")
	}

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
	}

	log.Info("Server stopped gracefully")
}

// pricingConfig переводит параметры тарификации из конфигурации в decimal
func pricingConfig(c config.PricingConfig) (pricing.Config, error) {
	loc, err := c.Location()
	if err != nil {
		return pricing.Config{}, err
	}
	return pricing.Config{
		BaseRate:        decimal.NewFromFloat(c.BaseRate),
		PeakMultiplier:  decimal.NewFromFloat(c.PeakMultiplier),
		SurgeMultiplier: decimal.NewFromFloat(c.SurgeMultiplier),
		DailyDiscount:   decimal.NewFromFloat(c.DailyDiscount),
		MonthlyDiscount: decimal.NewFromFloat(c.MonthlyDiscount),
		Location:        loc,
	}, nil
}
