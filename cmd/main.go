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

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	cancelAppointmentHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/cancel_appointment"
	completeAppointmentHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/complete_appointment"
	createAppointmentHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_available_slots"
	getClientAppointmentsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_client_appointments"
	getOpeningHoursHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_opening_hours"
	getSalonAppointmentsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_salon_appointments"
	updateOpeningHoursHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/update_opening_hours"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/config"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/cache"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/events"
	appointmentRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/appointment"
	calendarRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/calendar"
	clientRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/client"
	supabaseStore "github.com/m04kA/SMC-SalonBooking/internal/infra/supabase"
	appointmentsService "github.com/m04kA/SMC-SalonBooking/internal/service/appointments"
	calendarService "github.com/m04kA/SMC-SalonBooking/internal/service/calendar"
	openingHoursService "github.com/m04kA/SMC-SalonBooking/internal/service/opening_hours"
	createAppointmentUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/lastwins"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/metrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
)

// Хранилища, которые реализуют и Postgres репозитории, и Supabase
type (
	calendarStore interface {
		GetSalon(ctx context.Context, salonID uuid.UUID) (*domain.Salon, error)
		GetService(ctx context.Context, salonID, serviceID uuid.UUID) (*domain.Service, error)
		GetOpeningHours(ctx context.Context, salonID uuid.UUID) (domain.WeeklySchedule, error)
		ReplaceOpeningHours(ctx context.Context, salonID uuid.UUID, schedule domain.WeeklySchedule) error
	}

	appointmentStore interface {
		Create(ctx context.Context, apt *domain.Appointment) (*domain.Appointment, error)
		GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error)
		GetConfirmedInRange(ctx context.Context, salonID uuid.UUID, from, to time.Time) ([]*domain.Appointment, error)
		List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
		Cancel(ctx context.Context, id uuid.UUID, reason *string, at time.Time) (*domain.Appointment, error)
		Complete(ctx context.Context, id uuid.UUID, at time.Time) (*domain.Appointment, error)
	}

	clientStore interface {
		GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error)
		GetOrCreate(ctx context.Context, salonID uuid.UUID, contact domain.ClientContact) (*domain.Client, error)
	}

	txManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
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

	log.Info("Starting SMC-SalonBooking...")
	log.Info("Configuration loaded from config.toml (storage=%s)", cfg.Storage.Backend)

	// Инициализируем метрики (если включены). nil-коллектор ничего не пишет
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Инициализируем хранилище
	var (
		calendarStorage    calendarStore
		appointmentStorage appointmentStore
		clientStorage      clientStore
		txMgr              txManager
	)

	switch cfg.Storage.Backend {
	case config.BackendSupabase:
		client, err := supabaseStore.NewClient(cfg.Supabase.URL, cfg.Supabase.Key)
		if err != nil {
			log.Fatal("Failed to create Supabase client: %v", err)
		}

		calendarStorage = supabaseStore.NewCalendar(client)
		appointmentStorage = supabaseStore.NewAppointments(client)
		clientStorage = supabaseStore.NewClients(client)
		// PostgREST не держит транзакцию между запросами: от пересечений защищает exclusion constraint
		txMgr = txmanager.NoopManager{}
		log.Info("Using Supabase storage (url=%s)", cfg.Supabase.URL)

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

		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)

		calendarStorage = calendarRepo.NewRepository(wrappedDB)
		appointmentStorage = appointmentRepo.NewRepository(wrappedDB)
		clientStorage = clientRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(
			wrappedDB,
			txmanager.WithMaxRetries(cfg.Database.TxMaxRetries),
			txmanager.WithRetryObserver(metricsCollector),
		)
	}

	// Кэш салонов, услуг и часов работы (если включен)
	var (
		salonSource      calendarService.SalonSource = calendarStorage
		cacheInvalidator openingHoursService.CacheInvalidator
	)

	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()

		if err != nil {
			log.Warn("Redis unavailable, cache disabled: addr=%s, error=%v", cfg.Redis.Addr, err)
		} else {
			calendarCache := cache.NewCalendar(
				calendarStorage,
				redisClient,
				time.Duration(cfg.Redis.CacheTTL)*time.Second,
				log,
			)
			salonSource = calendarCache
			cacheInvalidator = calendarCache
			log.Info("Redis cache enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.CacheTTL)
		}
	}

	// События о записях (если включены)
	var publisher interface {
		PublishAppointment(ctx context.Context, apt *domain.Appointment) error
	} = events.NopPublisher{}

	if cfg.Kafka.Enabled {
		kafkaPublisher := events.NewPublisher(
			events.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic, time.Duration(cfg.Kafka.WriteTimeout)*time.Second),
			time.Duration(cfg.Kafka.WriteTimeout)*time.Second,
		)
		defer kafkaPublisher.Close()

		publisher = kafkaPublisher
		log.Info("Kafka publisher enabled (brokers=%v, topic=%s)", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}

	// Инициализируем сервисы
	calendarSvc := calendarService.NewService(salonSource, appointmentStorage, log)
	appointmentsSvc := appointmentsService.NewService(
		appointmentStorage,
		clientStorage,
		calendarSvc,
		publisher,
		metricsCollector,
		log,
	)
	openingHoursSvc := openingHoursService.NewService(
		calendarSvc,
		calendarStorage,
		cacheInvalidator,
		txMgr,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		calendarSvc,
		lastwins.New(),
		metricsCollector,
		cfg.Booking.MaxAdvanceDays,
		log,
	)
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		calendarSvc,
		appointmentStorage,
		clientStorage,
		txMgr,
		publisher,
		metricsCollector,
		createAppointmentUC.Rules{
			MaxAdvanceDays:   cfg.Booking.MaxAdvanceDays,
			MinNoticeMinutes: cfg.Booking.MinNoticeMinutes,
		},
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	createAgendaAppointment := createAppointmentHandler.NewAgendaHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	completeAppointment := completeAppointmentHandler.NewHandler(appointmentsSvc, log)
	getSalonAppointments := getSalonAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getClientAppointments := getClientAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getOpeningHours := getOpeningHoursHandler.NewHandler(openingHoursSvc, log)
	updateOpeningHours := updateOpeningHoursHandler.NewHandler(openingHoursSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware и endpoint (если метрики включены)
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

	public := api.PathPrefix("").Subrouter()
	if cfg.RateLimit.Enabled {
		public.Use(middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, cfg.RateLimit.TrustProxy).Middleware)
		log.Info("Rate limit enabled for public routes (rps=%.1f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// Сетка слотов на дату
	public.HandleFunc("/salons/{salonId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Часы работы салона
	public.HandleFunc("/salons/{salonId}/opening-hours", getOpeningHours.Handle).Methods(http.MethodGet)

	// Запись клиента
	public.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/complete", completeAppointment.Handle).Methods(http.MethodPatch)

	// История записей клиента
	protected.HandleFunc("/clients/{clientId}/appointments", getClientAppointments.Handle).Methods(http.MethodGet)

	// --- Управление салоном ---
	// Журнал записей салона
	protected.HandleFunc("/salons/{salonId}/appointments", getSalonAppointments.Handle).Methods(http.MethodGet)

	// Запись из журнала салона по сетке 15 минут
	protected.HandleFunc("/salons/{salonId}/appointments", createAgendaAppointment.Handle).Methods(http.MethodPost)

	// Обновление часов работы
	protected.HandleFunc("/salons/{salonId}/opening-hours", updateOpeningHours.Handle).Methods(http.MethodPut)

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
