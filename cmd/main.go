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

	approveSessionHandler "github.com/meetsync/MS-SchedulingService/internal/api/handlers/approve_session"
	createScheduleHandler "github.com/meetsync/MS-SchedulingService/internal/api/handlers/create_schedule"
	deleteScheduleHandler "github.com/meetsync/MS-SchedulingService/internal/api/handlers/delete_schedule"
	deleteSessionHandler "github.com/meetsync/MS-SchedulingService/internal/api/handlers/delete_session"
	getScheduleHandler "github.com/meetsync/MS-SchedulingService/internal/api/handlers/get_schedule"
	getSessionHandler "github.com/meetsync/MS-SchedulingService/internal/api/handlers/get_session"
	getUserSessionsHandler "github.com/meetsync/MS-SchedulingService/internal/api/handlers/get_user_sessions"
	listSchedulesHandler "github.com/meetsync/MS-SchedulingService/internal/api/handlers/list_schedules"
	listSlotsHandler "github.com/meetsync/MS-SchedulingService/internal/api/handlers/list_slots"
	requestSessionHandler "github.com/meetsync/MS-SchedulingService/internal/api/handlers/request_session"
	updateScheduleHandler "github.com/meetsync/MS-SchedulingService/internal/api/handlers/update_schedule"
	"github.com/meetsync/MS-SchedulingService/internal/api/middleware"
	"github.com/meetsync/MS-SchedulingService/internal/config"
	"github.com/meetsync/MS-SchedulingService/internal/infra/database"
	scheduleRepo "github.com/meetsync/MS-SchedulingService/internal/infra/storage/schedule"
	sessionRepo "github.com/meetsync/MS-SchedulingService/internal/infra/storage/session"
	meetProviderClient "github.com/meetsync/MS-SchedulingService/internal/integrations/meetprovider"
	notifierClient "github.com/meetsync/MS-SchedulingService/internal/integrations/notifier"
	schedulesService "github.com/meetsync/MS-SchedulingService/internal/service/schedules"
	sessionsService "github.com/meetsync/MS-SchedulingService/internal/service/sessions"
	approveSessionUC "github.com/meetsync/MS-SchedulingService/internal/usecase/approve_session"
	requestSessionUC "github.com/meetsync/MS-SchedulingService/internal/usecase/request_session"
	"github.com/meetsync/MS-SchedulingService/pkg/dbmetrics"
	"github.com/meetsync/MS-SchedulingService/pkg/logger"
	"github.com/meetsync/MS-SchedulingService/pkg/metrics"
	"github.com/meetsync/MS-SchedulingService/pkg/simpletxmanager"
	"github.com/meetsync/MS-SchedulingService/pkg/txmanager"
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

	log.Info("Starting MS-SchedulingService...")
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

	// Применяем миграции
	if err := database.RunMigrations(db, log); err != nil {
		log.Fatal("Failed to run migrations: %v", err)
	}

	// Инициализируем интеграционных клиентов
	meetClient := meetProviderClient.NewClient(
		cfg.MeetProvider.URL,
		time.Duration(cfg.MeetProvider.Timeout)*time.Second,
		log,
	)
	notifyClient := notifierClient.NewClient(
		cfg.Notifier.URL,
		time.Duration(cfg.Notifier.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (MeetProvider=%s timeout=%ds, Notifier=%s timeout=%ds)",
		cfg.MeetProvider.URL, cfg.MeetProvider.Timeout, cfg.Notifier.URL, cfg.Notifier.Timeout)

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		scheduleRepository *scheduleRepo.Repository
		sessionRepository  *sessionRepo.Repository
	)

	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		sessionRepository = sessionRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		scheduleRepository = scheduleRepo.NewRepository(db)
		sessionRepository = sessionRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	scheduleSvc := schedulesService.NewService(
		scheduleRepository,
		txMgr,
		log,
	)
	sessionSvc := sessionsService.NewService(
		sessionRepository,
		notifyClient,
		log,
	)

	// Инициализируем use cases
	requestSessionUseCase := requestSessionUC.NewUseCase(
		scheduleRepository,
		sessionRepository,
		meetClient,
		notifyClient,
		txMgr,
		log,
	)
	approveSessionUseCase := approveSessionUC.NewUseCase(
		sessionRepository,
		meetClient,
		notifyClient,
		txMgr,
		log,
	)

	// Инициализируем handlers
	createSchedule := createScheduleHandler.NewHandler(scheduleSvc, log)
	updateSchedule := updateScheduleHandler.NewHandler(scheduleSvc, log)
	deleteSchedule := deleteScheduleHandler.NewHandler(scheduleSvc, log)
	listSchedules := listSchedulesHandler.NewHandler(scheduleSvc, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	listSlots := listSlotsHandler.NewHandler(scheduleSvc, log)
	requestSession := requestSessionHandler.NewHandler(requestSessionUseCase, log)
	approveSession := approveSessionHandler.NewHandler(approveSessionUseCase, log)
	deleteSession := deleteSessionHandler.NewHandler(sessionSvc, log)
	getSession := getSessionHandler.NewHandler(sessionSvc, log)
	getUserSessions := getUserSessionsHandler.NewHandler(sessionSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	r.Use(middleware.RequestID)

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

	// Слоты расписания - гость выбирает время до бронирования
	api.HandleFunc("/schedules/{scheduleId}/slots", listSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Расписания (окна доступности хоста) ---
	protected.HandleFunc("/schedules", createSchedule.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/schedules", listSchedules.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/schedules/{scheduleId}", getSchedule.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/schedules/{scheduleId}", updateSchedule.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/schedules/{scheduleId}", deleteSchedule.Handle).Methods(http.MethodDelete)

	// --- Сессии (бронирования) ---
	protected.HandleFunc("/sessions", requestSession.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/sessions/{sessionId}", getSession.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/sessions/{sessionId}", deleteSession.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/sessions/{sessionId}/approve", approveSession.Handle).Methods(http.MethodPost)

	// --- История сессий пользователя ---
	protected.HandleFunc("/users/{userId}/sessions", getUserSessions.Handle).Methods(http.MethodGet)

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
