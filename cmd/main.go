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

	adminListBookingsHandler "github.com/m04kA/SMC-GroundBookingService/internal/api/handlers/admin_list_bookings"
	createBookingHandler "github.com/m04kA/SMC-GroundBookingService/internal/api/handlers/create_booking"
	deleteBookingHandler "github.com/m04kA/SMC-GroundBookingService/internal/api/handlers/delete_booking"
	getBookingHandler "github.com/m04kA/SMC-GroundBookingService/internal/api/handlers/get_booking"
	getFacilityHandler "github.com/m04kA/SMC-GroundBookingService/internal/api/handlers/get_facility"
	getFacilitySlotsHandler "github.com/m04kA/SMC-GroundBookingService/internal/api/handlers/get_facility_slots"
	getOwnerBookingsHandler "github.com/m04kA/SMC-GroundBookingService/internal/api/handlers/get_owner_bookings"
	getUserBookingsHandler "github.com/m04kA/SMC-GroundBookingService/internal/api/handlers/get_user_bookings"
	updateBookingStatusHandler "github.com/m04kA/SMC-GroundBookingService/internal/api/handlers/update_booking_status"
	"github.com/m04kA/SMC-GroundBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-GroundBookingService/internal/config"
	"github.com/m04kA/SMC-GroundBookingService/internal/infra/catalog"
	bookingRepo "github.com/m04kA/SMC-GroundBookingService/internal/infra/storage/booking"
	facilityRepo "github.com/m04kA/SMC-GroundBookingService/internal/infra/storage/facility"
	"github.com/m04kA/SMC-GroundBookingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-GroundBookingService/internal/integrations/bookingevents"
	"github.com/m04kA/SMC-GroundBookingService/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-GroundBookingService/internal/service/bookings"
	catalogService "github.com/m04kA/SMC-GroundBookingService/internal/service/catalog"
	createBookingUC "github.com/m04kA/SMC-GroundBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-GroundBookingService/pkg/cache"
	"github.com/m04kA/SMC-GroundBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-GroundBookingService/pkg/logger"
	"github.com/m04kA/SMC-GroundBookingService/pkg/metrics"
	"github.com/m04kA/SMC-GroundBookingService/pkg/mq"
	"github.com/m04kA/SMC-GroundBookingService/pkg/txmanager"
)

// bookingStore хранилище бронирований: PostgreSQL или память
type bookingStore interface {
	createBookingUC.BookingRepository
	availability.BookingRepository
	bookingsService.BookingRepository
}

// eventPublisher публикация событий: RabbitMQ или no-op
type eventPublisher interface {
	createBookingUC.EventPublisher
	bookingsService.EventPublisher
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

	log.Info("Starting SMC-GroundBookingService (storage=%s)...", cfg.Storage.Driver)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Статический каталог площадок доступен всегда
	fallbackCatalog, err := catalog.NewDefault()
	if err != nil {
		log.Fatal("Failed to load fallback catalog: %v", err)
	}
	log.Info("Fallback catalog loaded: %d facilities", len(fallbackCatalog.List()))

	fallbackSource := catalogService.Source{
		Name:     "fallback",
		Repo:     fallbackCatalog,
		NotFound: catalog.ErrFacilityNotFound,
	}

	var (
		bookings  bookingStore
		txMgr     bookingsService.TransactionManager
		resolver  *catalogService.Resolver
		redisStop func()
	)

	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		log.Warn("Running with in-memory storage: bookings are lost on restart")

		bookings = memory.NewBookingStore()
		txMgr = txmanager.NopManager{}
		resolver = catalogService.NewResolver([]catalogService.Source{fallbackSource}, nil, log)

	default:
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

		var wrappedDB *dbmetrics.DB
		if cfg.Metrics.Enabled {
			wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
			log.Info("Database metrics collection started")
		} else {
			wrappedDB = dbmetrics.Wrap(db, nil, cfg.Metrics.ServiceName)
		}

		bookings = bookingRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)

		// Площадки из БД, опционально через Redis
		var durable facilityRepo.Source = facilityRepo.NewRepository(wrappedDB)
		if cfg.Redis.Enabled {
			ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Redis.DialTimeout)*time.Second)
			redisClient, err := cache.NewRedisClient(ctx, cache.Options{
				Addr:        cfg.Redis.Addr,
				Password:    cfg.Redis.Password,
				DB:          cfg.Redis.DB,
				DialTimeout: time.Duration(cfg.Redis.DialTimeout) * time.Second,
			})
			cancel()
			if err != nil {
				log.Fatal("Failed to connect to redis: %v", err)
			}
			redisStop = func() { _ = redisClient.Close() }

			durable = facilityRepo.NewCachedRepository(
				durable,
				cache.NewService(redisClient, "ground-booking:"),
				cfg.Redis.FacilityTTLDuration(),
				log,
			)
			log.Info("Facility cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.FacilityTTL)
		}

		resolver = catalogService.NewResolver([]catalogService.Source{
			{Name: "durable", Repo: durable, NotFound: facilityRepo.ErrFacilityNotFound},
			fallbackSource,
		}, durable, log)
	}

	if redisStop != nil {
		defer redisStop()
	}

	// Публикация событий бронирований
	var events eventPublisher = bookingevents.NopPublisher{}
	if cfg.RabbitMQ.Enabled {
		publisher, err := mq.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			log.Fatal("Failed to connect to rabbitmq: %v", err)
		}
		defer publisher.Close()

		events = bookingevents.NewPublisher(publisher)
		log.Info("Booking events are published to exchange=%s", cfg.RabbitMQ.Exchange)
	}

	// Инициализируем сервисы
	availabilitySvc := availability.NewService(bookings, log)
	bookingSvc := bookingsService.NewService(
		bookings,
		resolver,
		txMgr,
		events,
		metricsCollector,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		resolver,
		availabilitySvc,
		bookings,
		events,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getOwnerBookings := getOwnerBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	adminListBookings := adminListBookingsHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
	getFacility := getFacilityHandler.NewHandler(resolver, log)
	getFacilitySlots := getFacilitySlotsHandler.NewHandler(availabilitySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Площадка и ее тарифы
	api.HandleFunc("/grounds/{groundId}", getFacility.Handle).Methods(http.MethodGet)

	// Занятые слоты площадки на дату
	api.HandleFunc("/grounds/{groundId}/bookings/{date}", getFacilitySlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Статические пути регистрируются раньше /bookings/{bookingId}
	protected.HandleFunc("/bookings/my-bookings", getUserBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/owner", getOwnerBookings.Handle).Methods(http.MethodGet)

	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/approve", updateBookingStatus.HandleApprove).Methods(http.MethodPatch)

	// --- Администрирование ---
	protected.HandleFunc("/admin/bookings", adminListBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/admin/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)

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
	close(stopMetricsCh)

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
