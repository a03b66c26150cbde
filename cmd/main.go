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

	applyWhitelistHandler "github.com/m04kA/SMC-LabBookingService/internal/api/handlers/apply_whitelist"
	buildReportHandler "github.com/m04kA/SMC-LabBookingService/internal/api/handlers/build_report"
	cancelReservationHandler "github.com/m04kA/SMC-LabBookingService/internal/api/handlers/cancel_reservation"
	checkInHandler "github.com/m04kA/SMC-LabBookingService/internal/api/handlers/check_in"
	checkOutHandler "github.com/m04kA/SMC-LabBookingService/internal/api/handlers/check_out"
	createEquipmentHandler "github.com/m04kA/SMC-LabBookingService/internal/api/handlers/create_equipment"
	createReservationHandler "github.com/m04kA/SMC-LabBookingService/internal/api/handlers/create_reservation"
	decideReservationHandler "github.com/m04kA/SMC-LabBookingService/internal/api/handlers/decide_reservation"
	decideWhitelistHandler "github.com/m04kA/SMC-LabBookingService/internal/api/handlers/decide_whitelist_application"
	deleteEquipmentHandler "github.com/m04kA/SMC-LabBookingService/internal/api/handlers/delete_equipment"
	deleteReservationHandler "github.com/m04kA/SMC-LabBookingService/internal/api/handlers/delete_reservation"
	editActualsHandler "github.com/m04kA/SMC-LabBookingService/internal/api/handlers/edit_reservation_actuals"
	getAvailabilityHandler "github.com/m04kA/SMC-LabBookingService/internal/api/handlers/get_availability"
	getEquipmentHandler "github.com/m04kA/SMC-LabBookingService/internal/api/handlers/get_equipment"
	getReservationHandler "github.com/m04kA/SMC-LabBookingService/internal/api/handlers/get_reservation"
	getAuditHandler "github.com/m04kA/SMC-LabBookingService/internal/api/handlers/get_reservation_audit"
	listEquipmentHandler "github.com/m04kA/SMC-LabBookingService/internal/api/handlers/list_equipment"
	listReservationsHandler "github.com/m04kA/SMC-LabBookingService/internal/api/handlers/list_reservations"
	listWhitelistHandler "github.com/m04kA/SMC-LabBookingService/internal/api/handlers/list_whitelist_applications"
	rescheduleReservationHandler "github.com/m04kA/SMC-LabBookingService/internal/api/handlers/reschedule_reservation"
	setStatusHandler "github.com/m04kA/SMC-LabBookingService/internal/api/handlers/set_reservation_status"
	updateEquipmentHandler "github.com/m04kA/SMC-LabBookingService/internal/api/handlers/update_equipment"
	"github.com/m04kA/SMC-LabBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-LabBookingService/internal/config"
	auditRepo "github.com/m04kA/SMC-LabBookingService/internal/infra/storage/audit"
	equipmentRepo "github.com/m04kA/SMC-LabBookingService/internal/infra/storage/equipment"
	reservationRepo "github.com/m04kA/SMC-LabBookingService/internal/infra/storage/reservation"
	whitelistRepo "github.com/m04kA/SMC-LabBookingService/internal/infra/storage/whitelist"
	equipmentService "github.com/m04kA/SMC-LabBookingService/internal/service/equipment"
	reservationsService "github.com/m04kA/SMC-LabBookingService/internal/service/reservations"
	whitelistService "github.com/m04kA/SMC-LabBookingService/internal/service/whitelist"
	buildReportUC "github.com/m04kA/SMC-LabBookingService/internal/usecase/build_report"
	checkInUC "github.com/m04kA/SMC-LabBookingService/internal/usecase/check_in"
	checkOutUC "github.com/m04kA/SMC-LabBookingService/internal/usecase/check_out"
	createReservationUC "github.com/m04kA/SMC-LabBookingService/internal/usecase/create_reservation"
	getAvailabilityUC "github.com/m04kA/SMC-LabBookingService/internal/usecase/get_availability"
	rescheduleReservationUC "github.com/m04kA/SMC-LabBookingService/internal/usecase/reschedule_reservation"
	"github.com/m04kA/SMC-LabBookingService/internal/usecase/validation"
	"github.com/m04kA/SMC-LabBookingService/pkg/clock"
	"github.com/m04kA/SMC-LabBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-LabBookingService/pkg/logger"
	"github.com/m04kA/SMC-LabBookingService/pkg/metrics"
	"github.com/m04kA/SMC-LabBookingService/pkg/txmanager"
)

func main() {
	configPath := "config.toml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		configPath = v
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting SMC-LabBookingService...")
	log.Info("Configuration loaded from %s", configPath)

	loc, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Failed to load timezone: %v", err)
	}
	wallClock := clock.New(loc)
	log.Info("Deployment timezone: %s", loc)

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

	// Инициализируем репозитории (с метриками или без)
	var (
		equipmentRepository   *equipmentRepo.Repository
		reservationRepository *reservationRepo.Repository
		auditRepository       *auditRepo.Repository
		whitelistRepository   *whitelistRepo.Repository
		txMgr                 *txmanager.TransactionManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		equipmentRepository = equipmentRepo.NewRepository(wrappedDB)
		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		auditRepository = auditRepo.NewRepository(wrappedDB)
		whitelistRepository = whitelistRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		equipmentRepository = equipmentRepo.NewRepository(db)
		reservationRepository = reservationRepo.NewRepository(db)
		auditRepository = auditRepo.NewRepository(db)
		whitelistRepository = whitelistRepo.NewRepository(db)
		txMgr = txmanager.NewSQLTransactionManager(db)
	}

	// Инициализируем сервисы
	equipmentSvc := equipmentService.NewService(
		equipmentRepository,
		reservationRepository,
		txMgr,
		log,
	)
	reservationsSvc := reservationsService.NewService(
		reservationRepository,
		equipmentRepository,
		auditRepository,
		txMgr,
		metricsCollector,
		log,
	)
	whitelistSvc := whitelistService.NewService(
		whitelistRepository,
		equipmentRepository,
		txMgr,
		log,
	)

	// Инициализируем use cases
	validator := validation.NewValidator(reservationRepository, wallClock)

	createReservationUseCase := createReservationUC.NewUseCase(
		equipmentRepository,
		reservationRepository,
		validator,
		txMgr,
		metricsCollector,
		wallClock,
		log,
	)
	rescheduleReservationUseCase := rescheduleReservationUC.NewUseCase(
		equipmentRepository,
		reservationRepository,
		validator,
		txMgr,
		metricsCollector,
		log,
	)
	checkInUseCase := checkInUC.NewUseCase(
		equipmentRepository,
		reservationRepository,
		txMgr,
		metricsCollector,
		wallClock,
		log,
	)
	checkOutUseCase := checkOutUC.NewUseCase(
		equipmentRepository,
		reservationRepository,
		txMgr,
		metricsCollector,
		wallClock,
		log,
	)
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		equipmentRepository,
		reservationRepository,
		wallClock,
		log,
	)
	buildReportUseCase := buildReportUC.NewUseCase(
		reservationRepository,
		wallClock,
		log,
	)

	// Инициализируем handlers
	listEquipment := listEquipmentHandler.NewHandler(equipmentSvc, log)
	getEquipment := getEquipmentHandler.NewHandler(equipmentSvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, loc, log)
	applyWhitelist := applyWhitelistHandler.NewHandler(whitelistSvc, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, loc, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationsSvc, log)
	rescheduleReservation := rescheduleReservationHandler.NewHandler(rescheduleReservationUseCase, loc, log)
	checkIn := checkInHandler.NewHandler(checkInUseCase, log)
	checkOut := checkOutHandler.NewHandler(checkOutUseCase, log)

	createEquipment := createEquipmentHandler.NewHandler(equipmentSvc, log)
	updateEquipment := updateEquipmentHandler.NewHandler(equipmentSvc, log)
	deleteEquipment := deleteEquipmentHandler.NewHandler(equipmentSvc, log)
	listReservations := listReservationsHandler.NewHandler(reservationsSvc, loc, log)
	approveReservation := decideReservationHandler.NewApproveHandler(reservationsSvc, log)
	rejectReservation := decideReservationHandler.NewRejectHandler(reservationsSvc, log)
	setStatus := setStatusHandler.NewHandler(reservationsSvc, log)
	editActuals := editActualsHandler.NewHandler(reservationsSvc, log)
	deleteReservation := deleteReservationHandler.NewHandler(reservationsSvc, log)
	getAudit := getAuditHandler.NewHandler(reservationsSvc, log)
	listWhitelist := listWhitelistHandler.NewHandler(whitelistSvc, log)
	approveWhitelist := decideWhitelistHandler.NewApproveHandler(whitelistSvc, log)
	rejectWhitelist := decideWhitelistHandler.NewRejectHandler(whitelistSvc, log)
	buildReport := buildReportHandler.NewHandler(buildReportUseCase, loc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Кеш списка оборудования; сбрасывается при изменении оборудования и допусков
	passthrough := func(next http.Handler) http.Handler { return next }
	cacheRead, cacheFlush := passthrough, passthrough
	if cfg.Cache.Enabled {
		responseCache := middleware.NewResponseCache(
			time.Duration(cfg.Cache.TTLSeconds)*time.Second,
			time.Duration(cfg.Cache.CleanupSeconds)*time.Second,
		)
		cacheRead, cacheFlush = responseCache.Middleware, responseCache.FlushOnWrite
		log.Info("Equipment response cache enabled (ttl=%ds)", cfg.Cache.TTLSeconds)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	public := api.PathPrefix("").Subrouter()
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewIPRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
		public.Use(middleware.RateLimit(limiter, log))
		log.Info("Rate limit enabled for public writes (rps=%.1f, burst=%d)",
			cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	// --- Оборудование ---
	public.Handle("/equipment", cacheRead(http.HandlerFunc(listEquipment.Handle))).Methods(http.MethodGet)
	public.Handle("/equipment/{id:[0-9]+}", cacheRead(http.HandlerFunc(getEquipment.Handle))).Methods(http.MethodGet)
	public.HandleFunc("/equipment/{id:[0-9]+}/availability", getAvailability.Handle).Methods(http.MethodGet)
	public.HandleFunc("/equipment/{id:[0-9]+}/whitelist-applications", applyWhitelist.Handle).Methods(http.MethodPost)

	// --- Бронирования (по коду бронирования) ---
	public.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	public.HandleFunc("/reservations/{code}", getReservation.Handle).Methods(http.MethodGet)
	public.HandleFunc("/reservations/{code}/cancel", cancelReservation.Handle).Methods(http.MethodPost)
	public.HandleFunc("/reservations/{code}/reschedule", rescheduleReservation.Handle).Methods(http.MethodPost)
	public.HandleFunc("/reservations/{code}/check-in", checkIn.Handle).Methods(http.MethodPost)
	public.HandleFunc("/reservations/{code}/check-out", checkOut.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (Authorization: Bearer <секрет администратора>)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(cfg.Admin.PasswordHash, log))

	// --- Оборудование ---
	admin.Handle("/equipment", cacheFlush(http.HandlerFunc(createEquipment.Handle))).Methods(http.MethodPost)
	admin.Handle("/equipment/{id:[0-9]+}", cacheFlush(http.HandlerFunc(updateEquipment.Handle))).Methods(http.MethodPut)
	admin.Handle("/equipment/{id:[0-9]+}", cacheFlush(http.HandlerFunc(deleteEquipment.Handle))).Methods(http.MethodDelete)

	// --- Бронирования ---
	admin.HandleFunc("/reservations", listReservations.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/reservations/{id:[0-9]+}/approve", approveReservation.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/reservations/{id:[0-9]+}/reject", rejectReservation.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/reservations/{id:[0-9]+}/status", setStatus.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/reservations/{id:[0-9]+}/actuals", editActuals.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/reservations/{id:[0-9]+}", deleteReservation.Handle).Methods(http.MethodDelete)
	admin.HandleFunc("/reservations/{id:[0-9]+}/audit", getAudit.Handle).Methods(http.MethodGet)

	// --- Заявки на допуск ---
	admin.HandleFunc("/whitelist-applications", listWhitelist.Handle).Methods(http.MethodGet)
	admin.Handle("/whitelist-applications/{id:[0-9]+}/approve",
		cacheFlush(http.HandlerFunc(approveWhitelist.Handle))).Methods(http.MethodPost)
	admin.HandleFunc("/whitelist-applications/{id:[0-9]+}/reject", rejectWhitelist.Handle).Methods(http.MethodPost)

	// --- Отчеты ---
	admin.HandleFunc("/reports", buildReport.Handle).Methods(http.MethodGet)

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
