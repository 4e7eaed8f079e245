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
	"github.com/redis/go-redis/v9"

	cancelAppointmentHandler "github.com/m04kA/STO-AppointmentService/internal/api/handlers/cancel_appointment"
	completeAppointmentHandler "github.com/m04kA/STO-AppointmentService/internal/api/handlers/complete_appointment"
	confirmAppointmentHandler "github.com/m04kA/STO-AppointmentService/internal/api/handlers/confirm_appointment"
	createAppointmentHandler "github.com/m04kA/STO-AppointmentService/internal/api/handlers/create_appointment"
	editAppointmentHandler "github.com/m04kA/STO-AppointmentService/internal/api/handlers/edit_appointment"
	getAppointmentHandler "github.com/m04kA/STO-AppointmentService/internal/api/handlers/get_appointment"
	getAvailableDatesHandler "github.com/m04kA/STO-AppointmentService/internal/api/handlers/get_available_dates"
	getAvailableTimesHandler "github.com/m04kA/STO-AppointmentService/internal/api/handlers/get_available_times"
	getServiceHistoryHandler "github.com/m04kA/STO-AppointmentService/internal/api/handlers/get_service_history"
	getUserAppointmentsHandler "github.com/m04kA/STO-AppointmentService/internal/api/handlers/get_user_appointments"
	"github.com/m04kA/STO-AppointmentService/internal/api/middleware"
	"github.com/m04kA/STO-AppointmentService/internal/config"
	"github.com/m04kA/STO-AppointmentService/internal/infra/queue"
	appointmentRepo "github.com/m04kA/STO-AppointmentService/internal/infra/storage/appointment"
	boxRepo "github.com/m04kA/STO-AppointmentService/internal/infra/storage/box"
	customerRepo "github.com/m04kA/STO-AppointmentService/internal/infra/storage/customer"
	historyRepo "github.com/m04kA/STO-AppointmentService/internal/infra/storage/history"
	serviceRepo "github.com/m04kA/STO-AppointmentService/internal/infra/storage/service"
	authServiceClient "github.com/m04kA/STO-AppointmentService/internal/integrations/authservice"
	"github.com/m04kA/STO-AppointmentService/internal/pricing"
	"github.com/m04kA/STO-AppointmentService/internal/scheduling"
	appointmentsService "github.com/m04kA/STO-AppointmentService/internal/service/appointments"
	createAppointmentUC "github.com/m04kA/STO-AppointmentService/internal/usecase/create_appointment"
	editAppointmentUC "github.com/m04kA/STO-AppointmentService/internal/usecase/edit_appointment"
	getAvailabilityUC "github.com/m04kA/STO-AppointmentService/internal/usecase/get_availability"
	"github.com/m04kA/STO-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/STO-AppointmentService/pkg/logger"
	"github.com/m04kA/STO-AppointmentService/pkg/metrics"
	"github.com/m04kA/STO-AppointmentService/pkg/simpletxmanager"
	"github.com/m04kA/STO-AppointmentService/pkg/txmanager"
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

	log.Info("Starting STO-AppointmentService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Инициализируем клиента сервиса идентификации
	authClient := authServiceClient.NewClient(
		cfg.AuthService.URL,
		time.Duration(cfg.AuthService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (AuthService=%s timeout=%ds)",
		cfg.AuthService.URL, cfg.AuthService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		boxRepository         *boxRepo.Repository
		serviceRepository     *serviceRepo.Repository
		customerRepository    *customerRepo.Repository
		historyRepository     *historyRepo.Repository
	)

	// Интерфейс transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		boxRepository = boxRepo.NewRepository(wrappedDB)
		serviceRepository = serviceRepo.NewRepository(wrappedDB)
		customerRepository = customerRepo.NewRepository(wrappedDB)
		historyRepository = historyRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		boxRepository = boxRepo.NewRepository(db)
		serviceRepository = serviceRepo.NewRepository(db)
		customerRepository = customerRepo.NewRepository(db)
		historyRepository = historyRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Планировщик боксов и движок ценообразования
	allocator := scheduling.NewAllocator(boxRepository, appointmentRepository, log)
	pricingEngine := pricing.NewEngine(appointmentRepository, log)

	// Публикация событий лояльности (если включена)
	var eventPublisher appointmentsService.EventPublisher
	if cfg.AMQP.Enabled {
		publisher, err := queue.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Queue)
		if err != nil {
			log.Fatal("Failed to connect to AMQP broker: %v", err)
		}
		defer publisher.Close()
		eventPublisher = publisher
		log.Info("Loyalty events publisher connected (queue=%s)", cfg.AMQP.Queue)
	}

	// Инициализируем сервис записей
	appointmentSvc := appointmentsService.NewService(
		appointmentRepository,
		historyRepository,
		customerRepository,
		authClient,
		eventPublisher,
		txMgr,
		log,
	)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		serviceRepository,
		allocator,
		pricingEngine,
		authClient,
		txMgr,
		log,
	)
	editAppointmentUseCase := editAppointmentUC.NewUseCase(
		appointmentRepository,
		serviceRepository,
		allocator,
		pricingEngine,
		authClient,
		txMgr,
		log,
	)
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		serviceRepository,
		allocator,
		log,
	)

	// Инициализируем handlers
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	editAppointment := editAppointmentHandler.NewHandler(editAppointmentUseCase, log)
	getAvailableDates := getAvailableDatesHandler.NewHandler(getAvailabilityUseCase, log)
	getAvailableTimes := getAvailableTimesHandler.NewHandler(getAvailabilityUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	confirmAppointment := confirmAppointmentHandler.NewHandler(appointmentSvc, log)
	completeAppointment := completeAppointmentHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	getUserAppointments := getUserAppointmentsHandler.NewHandler(appointmentSvc, log)
	getServiceHistory := getServiceHistoryHandler.NewHandler(appointmentSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	availability := api.PathPrefix("/services").Subrouter()

	// Кеширование ответов доступности в Redis (если включено)
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		responseCache := middleware.NewResponseCache(
			redisClient,
			time.Duration(cfg.Redis.CacheTTL)*time.Second,
			cfg.Redis.Prefix,
			log,
		)
		availability.Use(responseCache.Middleware())
		log.Info("Availability response cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.CacheTTL)
	}

	// Доступные даты и времена для записи
	availability.HandleFunc("/{serviceId}/available-dates", getAvailableDates.Handle).Methods(http.MethodGet)
	availability.HandleFunc("/{serviceId}/available-times", getAvailableTimes.Handle).Methods(http.MethodGet)

	// ============================================================
	// GUEST ROUTES (X-User-ID опционален, гости без него)
	// ============================================================

	guest := api.PathPrefix("").Subrouter()
	guest.Use(middleware.OptionalAuth)

	// Создание записи (клиент или гость)
	guest.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Редактирование записи (гостевые записи редактирует только администратор)
	guest.HandleFunc("/appointments/{appointmentId}", editAppointment.Handle).Methods(http.MethodPatch)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	// Получение записи по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Подтверждение записи (администратор)
	protected.HandleFunc("/appointments/{appointmentId}/confirm", confirmAppointment.Handle).Methods(http.MethodPost)

	// Завершение записи с начислением баллов (администратор)
	protected.HandleFunc("/appointments/{appointmentId}/complete", completeAppointment.Handle).Methods(http.MethodPost)

	// Отмена записи
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// --- Пользователи ---
	// Записи пользователя
	protected.HandleFunc("/users/{userId}/appointments", getUserAppointments.Handle).Methods(http.MethodGet)

	// История обслуживания пользователя
	protected.HandleFunc("/users/{userId}/service-history", getServiceHistory.Handle).Methods(http.MethodGet)

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
