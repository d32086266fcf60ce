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
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	apihandlers "github.com/m04kA/GSB-BookingService/internal/api/handlers"
	cancelSessionHandler "github.com/m04kA/GSB-BookingService/internal/api/handlers/cancel_session"
	checkAvailabilityHandler "github.com/m04kA/GSB-BookingService/internal/api/handlers/check_availability"
	createBlockHandler "github.com/m04kA/GSB-BookingService/internal/api/handlers/create_block"
	createSessionHandler "github.com/m04kA/GSB-BookingService/internal/api/handlers/create_session"
	getSessionHandler "github.com/m04kA/GSB-BookingService/internal/api/handlers/get_session"
	getWorkingHoursHandler "github.com/m04kA/GSB-BookingService/internal/api/handlers/get_working_hours"
	searchOpenVenuesHandler "github.com/m04kA/GSB-BookingService/internal/api/handlers/search_open_venues"
	searchVenueStationsHandler "github.com/m04kA/GSB-BookingService/internal/api/handlers/search_venue_stations"
	updateWorkingHoursHandler "github.com/m04kA/GSB-BookingService/internal/api/handlers/update_working_hours"
	"github.com/m04kA/GSB-BookingService/internal/api/middleware"
	"github.com/m04kA/GSB-BookingService/internal/config"
	bookingRepo "github.com/m04kA/GSB-BookingService/internal/infra/storage/booking"
	sessionRepo "github.com/m04kA/GSB-BookingService/internal/infra/storage/session"
	stationRepo "github.com/m04kA/GSB-BookingService/internal/infra/storage/station"
	venueRepo "github.com/m04kA/GSB-BookingService/internal/infra/storage/venue"
	catalogServiceClient "github.com/m04kA/GSB-BookingService/internal/integrations/catalogservice"
	scheduleService "github.com/m04kA/GSB-BookingService/internal/service/schedule"
	sessionsService "github.com/m04kA/GSB-BookingService/internal/service/sessions"
	checkAvailabilityUC "github.com/m04kA/GSB-BookingService/internal/usecase/check_availability"
	createBlockUC "github.com/m04kA/GSB-BookingService/internal/usecase/create_block"
	createSessionUC "github.com/m04kA/GSB-BookingService/internal/usecase/create_session"
	searchOpenVenuesUC "github.com/m04kA/GSB-BookingService/internal/usecase/search_open_venues"
	searchVenueStationsUC "github.com/m04kA/GSB-BookingService/internal/usecase/search_venue_stations"
	reaperWorker "github.com/m04kA/GSB-BookingService/internal/worker/reaper"
	"github.com/m04kA/GSB-BookingService/pkg/dbmetrics"
	"github.com/m04kA/GSB-BookingService/pkg/logger"
	"github.com/m04kA/GSB-BookingService/pkg/metrics"
	"github.com/m04kA/GSB-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/GSB-BookingService/pkg/txmanager"
)

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

	log.Info("Starting GSB-BookingService...")
	log.Info("Configuration loaded from config.toml")

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

	// Инициализируем клиент каталога консолей и игр
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	log.Info("Catalog client initialized (url=%s timeout=%ds)", cfg.CatalogService.URL, cfg.CatalogService.Timeout)

	// Интерфейс для transaction manager (используется в сервисах и usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		venueRepository   *venueRepo.Repository
		stationRepository *stationRepo.Repository
		bookingRepository *bookingRepo.Repository
		sessionRepository *sessionRepo.Repository
		txMgr             TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		venueRepository = venueRepo.NewRepository(wrappedDB)
		stationRepository = stationRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		sessionRepository = sessionRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		venueRepository = venueRepo.NewRepository(db)
		stationRepository = stationRepo.NewRepository(db)
		bookingRepository = bookingRepo.NewRepository(db)
		sessionRepository = sessionRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	scheduleSvc := scheduleService.NewService(venueRepository, txMgr, log)
	sessionsSvc := sessionsService.NewService(sessionRepository, txMgr, log)

	// Инициализируем use cases
	searchOpenVenuesUseCase := searchOpenVenuesUC.NewUseCase(
		venueRepository,
		stationRepository,
		bookingRepository,
		catalogClient,
		log,
	)
	searchVenueStationsUseCase := searchVenueStationsUC.NewUseCase(
		venueRepository,
		stationRepository,
		bookingRepository,
		catalogClient,
		log,
	)
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		stationRepository,
		bookingRepository,
		log,
	)
	createSessionUseCase := createSessionUC.NewUseCase(
		stationRepository,
		bookingRepository,
		sessionRepository,
		txMgr,
		cfg.Booking.TaxRate,
		time.Duration(cfg.Booking.HoldMinutes)*time.Minute,
		log,
	)
	createBlockUseCase := createBlockUC.NewUseCase(
		stationRepository,
		bookingRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	dateParser := apihandlers.CivilDateParser{}

	searchOpenVenues := searchOpenVenuesHandler.NewHandler(searchOpenVenuesUseCase, dateParser, log)
	searchVenueStations := searchVenueStationsHandler.NewHandler(searchVenueStationsUseCase, dateParser, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, dateParser, log)
	createSession := createSessionHandler.NewHandler(createSessionUseCase, dateParser, log)
	getSession := getSessionHandler.NewHandler(sessionsSvc, log)
	cancelSession := cancelSessionHandler.NewHandler(sessionsSvc, log)
	getWorkingHours := getWorkingHoursHandler.NewHandler(scheduleSvc, log)
	updateWorkingHours := updateWorkingHoursHandler.NewHandler(scheduleSvc, log)
	createBlock := createBlockHandler.NewHandler(createBlockUseCase, dateParser, log)

	// Запускаем reaper просроченных сессий
	reaperCtx, stopReaper := context.WithCancel(context.Background())
	defer stopReaper()

	if cfg.Reaper.Enabled {
		var reaperMetrics reaperWorker.Metrics
		if cfg.Metrics.Enabled {
			reaperMetrics = metricsCollector
		}
		expiryReaper := reaperWorker.NewReaper(
			sessionRepository,
			txMgr,
			reaperMetrics,
			time.Duration(cfg.Reaper.IntervalSeconds)*time.Second,
			log,
		)
		go expiryReaper.Run(reaperCtx)
	} else {
		log.Warn("Reaper disabled by config, expired sessions will not be revoked")
	}

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Поиск открытых организаций поблизости
	api.HandleFunc("/organizations/search", searchOpenVenues.Handle).Methods(http.MethodGet)

	// Доступные станции одной организации
	api.HandleFunc("/organizations/{username}/stations/available",
		searchVenueStations.Handle).Methods(http.MethodGet)

	// Проверка доступности произвольного интервала
	api.HandleFunc("/availability/check", checkAvailability.Handle).Methods(http.MethodPost)

	// Рабочие часы организации
	api.HandleFunc("/organizations/{orgId:[0-9]+}/working-hours",
		getWorkingHours.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Сессии ---
	protected.HandleFunc("/sessions", createSession.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/sessions/preview", createSession.HandlePreview).Methods(http.MethodPost)
	protected.HandleFunc("/sessions/{sessionId}", getSession.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/sessions/{sessionId}/cancel", cancelSession.Handle).Methods(http.MethodPatch)

	// --- Управление организацией ---
	protected.HandleFunc("/organizations/{orgId:[0-9]+}/working-hours",
		updateWorkingHours.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/blocks", createBlock.Handle).Methods(http.MethodPost)

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

	// Останавливаем reaper и сбор метрик connection pool
	stopReaper()
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
