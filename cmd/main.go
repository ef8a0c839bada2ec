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

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	bookingActionHandler "github.com/m04kA/SMC-SlotCapacity/internal/api/handlers/booking_action"
	cancelBookingHandler "github.com/m04kA/SMC-SlotCapacity/internal/api/handlers/cancel_booking"
	capacityHandler "github.com/m04kA/SMC-SlotCapacity/internal/api/handlers/capacity"
	createBookingHandler "github.com/m04kA/SMC-SlotCapacity/internal/api/handlers/create_booking"
	customerNotesHandler "github.com/m04kA/SMC-SlotCapacity/internal/api/handlers/customer_notes"
	getAvailabilityHandler "github.com/m04kA/SMC-SlotCapacity/internal/api/handlers/get_availability"
	getBookingHandler "github.com/m04kA/SMC-SlotCapacity/internal/api/handlers/get_booking"
	getBookingByTicketHandler "github.com/m04kA/SMC-SlotCapacity/internal/api/handlers/get_booking_by_ticket"
	getMyBookingsHandler "github.com/m04kA/SMC-SlotCapacity/internal/api/handlers/get_my_bookings"
	getSettingsHandler "github.com/m04kA/SMC-SlotCapacity/internal/api/handlers/get_settings"
	listBookingsHandler "github.com/m04kA/SMC-SlotCapacity/internal/api/handlers/list_bookings"
	servicesHandler "github.com/m04kA/SMC-SlotCapacity/internal/api/handlers/services"
	updateAdminNotesHandler "github.com/m04kA/SMC-SlotCapacity/internal/api/handlers/update_admin_notes"
	updateSettingsHandler "github.com/m04kA/SMC-SlotCapacity/internal/api/handlers/update_settings"
	"github.com/m04kA/SMC-SlotCapacity/internal/api/middleware"
	"github.com/m04kA/SMC-SlotCapacity/internal/config"
	bookingRepo "github.com/m04kA/SMC-SlotCapacity/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-SlotCapacity/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SlotCapacity/internal/infra/storage/memory"
	notesRepo "github.com/m04kA/SMC-SlotCapacity/internal/infra/storage/notes"
	overrideRepo "github.com/m04kA/SMC-SlotCapacity/internal/infra/storage/override"
	settingsRepo "github.com/m04kA/SMC-SlotCapacity/internal/infra/storage/settings"
	"github.com/m04kA/SMC-SlotCapacity/internal/integrations/notifier"
	bookingsService "github.com/m04kA/SMC-SlotCapacity/internal/service/bookings"
	catalogService "github.com/m04kA/SMC-SlotCapacity/internal/service/catalog"
	notesService "github.com/m04kA/SMC-SlotCapacity/internal/service/notes"
	overridesService "github.com/m04kA/SMC-SlotCapacity/internal/service/overrides"
	settingsService "github.com/m04kA/SMC-SlotCapacity/internal/service/settings"
	adminCapacityUC "github.com/m04kA/SMC-SlotCapacity/internal/usecase/admin_capacity"
	createBookingUC "github.com/m04kA/SMC-SlotCapacity/internal/usecase/create_booking"
	getAvailabilityUC "github.com/m04kA/SMC-SlotCapacity/internal/usecase/get_availability"
	"github.com/m04kA/SMC-SlotCapacity/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotCapacity/pkg/logger"
	"github.com/m04kA/SMC-SlotCapacity/pkg/metrics"
	"github.com/m04kA/SMC-SlotCapacity/pkg/slotlock"
	"github.com/m04kA/SMC-SlotCapacity/pkg/txmanager"
)

// bookingStore репозиторий бронирований, общий для сервисов и use cases
type bookingStore interface {
	bookingsService.BookingRepository
	getAvailabilityUC.BookingRepository
	createBookingUC.BookingRepository
	adminCapacityUC.BookingCounter
}

// storage набор хранилищ выбранного драйвера
type storage struct {
	bookings  bookingStore
	overrides overridesService.OverrideRepository
	settings  settingsService.SettingsRepository
	catalog   catalogService.ServiceRepository
	notes     notesService.NoteRepository
	txManager createBookingUC.TransactionManager
}

func main() {
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

	log.Info("Starting SMC-SlotCapacity...")
	log.Info("Configuration loaded from config.toml (database=%s, locking=%s)", cfg.Database.Driver, cfg.Locking.Driver)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Инициализируем хранилища
	var store storage

	switch cfg.Database.Driver {
	case config.DriverPostgres:
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		// Проверяем соединение
		if err := db.Ping(); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		var executor dbmetrics.DBExecutor = db
		if cfg.Metrics.Enabled {
			executor = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
			log.Info("Database metrics collection started")
		}

		store = storage{
			bookings:  bookingRepo.NewRepository(executor),
			overrides: overrideRepo.NewRepository(executor),
			settings:  settingsRepo.NewRepository(executor),
			catalog:   catalogRepo.NewRepository(executor),
			notes:     notesRepo.NewRepository(executor),
			txManager: txmanager.NewTransactionManager(executor),
		}

	case config.DriverMemory:
		// Данные живут до перезапуска процесса
		store = storage{
			bookings:  memory.NewBookings(),
			overrides: memory.NewOverrides(),
			settings:  memory.NewSettings(),
			catalog:   memory.NewCatalog(),
			notes:     memory.NewNotes(),
			txManager: memory.TxManager{},
		}
		log.Warn("Using in-memory storage, data is lost on restart")
	}

	// Блокировка слотов: один процесс - memory, несколько реплик - redis
	var locker createBookingUC.Locker
	var redisClient *redis.Client

	switch cfg.Locking.Driver {
	case config.LockRedis:
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		defer redisClient.Close()

		locker = slotlock.NewRedis(
			redisClient,
			cfg.Redis.KeyPrefix,
			time.Duration(cfg.Locking.TTLSeconds)*time.Second,
			time.Duration(cfg.Locking.RetryIntervalMs)*time.Millisecond,
		)
		log.Info("Slot locks in redis (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Locking.TTLSeconds)
	default:
		locker = slotlock.NewMemory()
		log.Info("Slot locks in process memory")
	}

	// Инициализируем интеграционных клиентов
	notifyClient := notifier.NewClient(
		cfg.Notifier.URL,
		cfg.Notifier.APIKey,
		time.Duration(cfg.Notifier.Timeout)*time.Second,
		log,
	)
	if cfg.Notifier.URL == "" {
		log.Warn("Notifier URL is empty, notifications disabled")
	} else {
		log.Info("Notifier client initialized (url=%s, timeout=%ds)", cfg.Notifier.URL, cfg.Notifier.Timeout)
	}

	// Инициализируем сервисы
	settingsSvc := settingsService.NewService(store.settings, store.bookings, log)
	overridesSvc := overridesService.NewService(store.overrides, settingsSvc, log)
	bookingSvc := bookingsService.NewService(store.bookings, settingsSvc, notifyClient, metricsCollector, log)
	catalogSvc := catalogService.NewService(store.catalog, log)
	notesSvc := notesService.NewService(store.notes, log)

	// Инициализируем use cases
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		store.bookings,
		settingsSvc,
		overridesSvc,
		catalogSvc,
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		store.bookings,
		getAvailabilityUseCase,
		settingsSvc,
		catalogSvc,
		locker,
		store.txManager,
		notifyClient,
		metricsCollector,
		cfg.Locking.AcquireTimeout(),
		log,
	)

	adminCapacityUseCase := adminCapacityUC.NewUseCase(
		overridesSvc,
		bookingSvc,
		store.bookings,
		settingsSvc,
		log,
	)

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	createAdminBooking := createBookingHandler.NewAdminHandler(createBookingUseCase, log)
	getBookingByTicket := getBookingByTicketHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getMyBookings := getMyBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	bookingAction := bookingActionHandler.NewHandler(bookingSvc, log)
	updateAdminNotes := updateAdminNotesHandler.NewHandler(bookingSvc, log)
	getSettings := getSettingsHandler.NewHandler(settingsSvc, log)
	updateSettings := updateSettingsHandler.NewHandler(settingsSvc, log)
	capacity := capacityHandler.NewHandler(adminCapacityUseCase, overridesSvc, bookingSvc, log)
	services := servicesHandler.NewHandler(catalogSvc, log)
	customerNotes := customerNotesHandler.NewHandler(notesSvc, log)

	auth := middleware.NewAuthenticator(cfg.Auth.JWTSecret, cfg.Auth.AdminRole, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступность слотов на дату
	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Поиск бронирования по номеру талона
	api.HandleFunc("/bookings/ticket/{ticket}", getBookingByTicket.Handle).Methods(http.MethodGet)

	// Активные услуги
	api.HandleFunc("/services", services.List).Methods(http.MethodGet)

	// Создание бронирования (с ограничением частоты, если включено)
	var createBookingRoute http.Handler = http.HandlerFunc(createBooking.Handle)
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst, log)
		go limiter.Cleanup(time.Minute, stopMetricsCh)
		createBookingRoute = limiter.Limit(createBookingRoute)
		log.Info("Rate limit for POST /bookings: %.0f req/min, burst=%d", cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	}
	api.Handle("/bookings", createBookingRoute).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют Bearer JWT)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(auth.Authenticate)

	// Бронирования текущего клиента
	protected.HandleFunc("/bookings/my", getMyBookings.Handle).Methods(http.MethodGet)

	// Отмена своего бронирования
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// ============================================================
	// ADMIN ROUTES (Bearer JWT с ролью администратора)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(auth.Authenticate, auth.RequireAdmin)

	// --- Бронирования ---
	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings", createAdminBooking.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/bookings/{bookingId:[0-9]+}", getBooking.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId:[0-9]+}/notes", updateAdminNotes.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/bookings/{bookingId:[0-9]+}/{action}", bookingAction.Handle).Methods(http.MethodPatch)

	// --- Вместимость ---
	admin.HandleFunc("/capacity-overrides", capacity.ListOverrides).Methods(http.MethodGet)
	admin.HandleFunc("/capacity-overrides", capacity.CreateOverride).Methods(http.MethodPost)
	admin.HandleFunc("/capacity-overrides/impact", capacity.CheckImpact).Methods(http.MethodPost)
	admin.HandleFunc("/capacity-overrides/{overrideId:[0-9]+}", capacity.UpdateOverride).Methods(http.MethodPatch)
	admin.HandleFunc("/capacity-overrides/{overrideId:[0-9]+}", capacity.DeleteOverride).Methods(http.MethodDelete)

	// --- Настройки ---
	admin.HandleFunc("/settings", getSettings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/settings", updateSettings.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/settings/capacity", capacity.UpdateDefaultCapacity).Methods(http.MethodPut)

	// --- Услуги ---
	admin.HandleFunc("/services", services.ListAll).Methods(http.MethodGet)
	admin.HandleFunc("/services", services.Create).Methods(http.MethodPost)
	admin.HandleFunc("/services/{serviceId:[0-9]+}", services.Update).Methods(http.MethodPut)

	// --- Заметки о клиентах ---
	admin.HandleFunc("/customers/{email}/notes", customerNotes.List).Methods(http.MethodGet)
	admin.HandleFunc("/customers/{email}/notes", customerNotes.Create).Methods(http.MethodPost)
	admin.HandleFunc("/notes/{noteId:[0-9]+}", customerNotes.Update).Methods(http.MethodPut)
	admin.HandleFunc("/notes/{noteId:[0-9]+}", customerNotes.Delete).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем фоновые задачи (метрики пула, очистка rate limiter)
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Дожидаемся отправки уведомлений
	notifyClient.Wait()

	log.Info("Server stopped gracefully")
}
