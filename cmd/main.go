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

	checkAvailabilityHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/check_availability"
	getAvailableSlotsHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_available_slots"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/config"
	"github.com/m04kA/SMC-AvailabilityService/internal/infra/cache/redisgeo"
	appointmentRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/appointment"
	geocacheRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/geocache"
	calendarClient "github.com/m04kA/SMC-AvailabilityService/internal/integrations/calendar"
	geocodingClient "github.com/m04kA/SMC-AvailabilityService/internal/integrations/geocoding"
	routingClient "github.com/m04kA/SMC-AvailabilityService/internal/integrations/routing"
	commitmentsService "github.com/m04kA/SMC-AvailabilityService/internal/service/commitments"
	travelService "github.com/m04kA/SMC-AvailabilityService/internal/service/travel"
	checkAvailabilityUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/check_availability"
	getAvailableSlotsUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"
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

	log.Info("Starting SMC-AvailabilityService...")
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

	// Инициализируем интеграционных клиентов
	calendar := calendarClient.NewClient(
		cfg.Calendar.URL,
		cfg.Calendar.CalendarID,
		time.Duration(cfg.Calendar.Timeout)*time.Second,
		metricsCollector,
		log,
	)
	geocoder := geocodingClient.NewClient(
		cfg.Geocoding.URL,
		cfg.Geocoding.APIKey,
		time.Duration(cfg.Geocoding.Timeout)*time.Second,
		metricsCollector,
		log,
	)
	router := routingClient.NewClient(
		cfg.Routing.URL,
		cfg.Routing.APIKey,
		time.Duration(cfg.Routing.Timeout)*time.Second,
		metricsCollector,
		log,
	)
	log.Info("Integration clients initialized (Calendar=%s, Geocoding=%s, Routing=%s)",
		cfg.Calendar.URL, cfg.Geocoding.URL, cfg.Routing.URL)

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		geocacheRepository    *geocacheRepo.Repository
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		geocacheRepository = geocacheRepo.NewRepository(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		geocacheRepository = geocacheRepo.NewRepository(db)
	}

	// Персистентный гео-кеш: Redis, если включён, иначе таблицы PostgreSQL
	var persistentGeoCache travelService.PersistentCache = geocacheRepository
	if cfg.Redis.Enabled {
		redisCache := redisgeo.NewCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer redisCache.Close()

		if err := redisCache.Ping(context.Background()); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		persistentGeoCache = redisCache
		log.Info("Redis geo cache enabled (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)
	}

	// Инициализируем сервисы
	travelSvc := travelService.NewService(
		geocoder,
		router,
		persistentGeoCache,
		travelService.Config{
			GranularityMinutes:   cfg.Engine.SlotGranularityMinutes,
			DefaultTravelMinutes: cfg.Engine.DefaultTravelMinutes,
			HotCacheTTL:          time.Duration(cfg.Engine.TravelCacheTTLHours) * time.Hour,
			MaxConcurrent:        cfg.Engine.MaxConcurrentTravelCalc,
		},
		metricsCollector,
		log,
	)

	rules := cfg.BusinessRules()
	commitmentsSvc := commitmentsService.NewService(
		calendar,
		appointmentRepository,
		rules.BaseAddress,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		commitmentsSvc,
		travelSvc,
		rules,
		getAvailableSlotsUC.Settings{
			SlotGranularityMinutes: cfg.Engine.SlotGranularityMinutes,
			MinBookableGapMinutes:  cfg.Engine.MinBookableGapMinutes,
			WideGapExposureMinutes: cfg.Engine.WideGapExposureMinutes,
			EnforceReturnToBase:    cfg.Engine.EnforceReturnToBase,
		},
		metricsCollector,
		log,
	)

	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		commitmentsSvc,
		appointmentRepository,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix, все операции read-only и публичные
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Timeout(time.Duration(cfg.Server.RequestTimeout) * time.Second))

	// Расчёт доступных слотов на дату
	api.HandleFunc("/availability", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Точечная проверка интервала
	api.HandleFunc("/availability/check", checkAvailability.Handle).Methods(http.MethodGet)

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

	// Останавливаем сбор метрик connection pool
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
