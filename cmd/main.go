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

	cancelReservationHandler "github.com/m04kA/PSB-BookingService/internal/api/handlers/cancel_reservation"
	checkIntervalHandler "github.com/m04kA/PSB-BookingService/internal/api/handlers/check_interval"
	commitBookingHandler "github.com/m04kA/PSB-BookingService/internal/api/handlers/commit_booking"
	getAvailableSlotsHandler "github.com/m04kA/PSB-BookingService/internal/api/handlers/get_available_slots"
	getOperatingHoursHandler "github.com/m04kA/PSB-BookingService/internal/api/handlers/get_operating_hours"
	getReservationHandler "github.com/m04kA/PSB-BookingService/internal/api/handlers/get_reservation"
	getStudioReservationsHandler "github.com/m04kA/PSB-BookingService/internal/api/handlers/get_studio_reservations"
	getUserReservationsHandler "github.com/m04kA/PSB-BookingService/internal/api/handlers/get_user_reservations"
	updateOperatingHoursHandler "github.com/m04kA/PSB-BookingService/internal/api/handlers/update_operating_hours"
	updateReservationStatusHandler "github.com/m04kA/PSB-BookingService/internal/api/handlers/update_reservation_status"
	"github.com/m04kA/PSB-BookingService/internal/api/middleware"
	"github.com/m04kA/PSB-BookingService/internal/config"
	reservationRepo "github.com/m04kA/PSB-BookingService/internal/infra/storage/reservation"
	studioRepo "github.com/m04kA/PSB-BookingService/internal/infra/storage/studio"
	notifyClient "github.com/m04kA/PSB-BookingService/internal/integrations/notify"
	"github.com/m04kA/PSB-BookingService/internal/schedule"
	reservationsService "github.com/m04kA/PSB-BookingService/internal/service/reservations"
	studiosService "github.com/m04kA/PSB-BookingService/internal/service/studios"
	checkIntervalUC "github.com/m04kA/PSB-BookingService/internal/usecase/check_interval"
	commitBookingUC "github.com/m04kA/PSB-BookingService/internal/usecase/commit_booking"
	getAvailableSlotsUC "github.com/m04kA/PSB-BookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/PSB-BookingService/pkg/dbmetrics"
	"github.com/m04kA/PSB-BookingService/pkg/logger"
	"github.com/m04kA/PSB-BookingService/pkg/metrics"
	"github.com/m04kA/PSB-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/PSB-BookingService/pkg/txmanager"
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

	log.Info("Starting PSB-BookingService...")
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

	// Политика рабочих часов и сетки слотов из конфигурации
	policy := schedule.Policy{
		DefaultOpen:        cfg.Booking.DefaultOpenTime,
		DefaultClose:       cfg.Booking.DefaultCloseTime,
		GranularityMinutes: cfg.Booking.SlotGranularityMinutes,
	}

	// Клиент сервиса уведомлений (опционален, коммит переживает его отказ)
	var notifier commitBookingUC.Notifier
	if cfg.Notify.Enabled {
		notifier = notifyClient.NewClient(
			cfg.Notify.URL,
			time.Duration(cfg.Notify.Timeout)*time.Second,
			log,
		)
		log.Info("Notification client initialized (url=%s, timeout=%ds)", cfg.Notify.URL, cfg.Notify.Timeout)
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		studioRepository      *studioRepo.Repository
	)

	// Интерфейс transaction manager (используется в usecase коммита)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		studioRepository = studioRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		studioRepository = studioRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		studioRepository,
		log,
	)
	studioSvc := studiosService.NewService(
		studioRepository,
		log,
	)

	// Инициализируем use cases движка доступности
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		reservationRepository,
		studioRepository,
		policy,
		log,
	)

	checkIntervalUseCase := checkIntervalUC.NewUseCase(
		reservationRepository,
		studioRepository,
		log,
	)

	commitBookingUseCase := commitBookingUC.NewUseCase(
		reservationRepository,
		studioRepository,
		txMgr,
		notifier,
		policy,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	checkInterval := checkIntervalHandler.NewHandler(checkIntervalUseCase, log)
	commitBooking := commitBookingHandler.NewHandler(commitBookingUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	updateReservationStatus := updateReservationStatusHandler.NewHandler(reservationSvc, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationSvc, log)
	getStudioReservations := getStudioReservationsHandler.NewHandler(reservationSvc, log)
	getOperatingHours := getOperatingHoursHandler.NewHandler(studioSvc, log)
	updateOperatingHours := updateOperatingHoursHandler.NewHandler(studioSvc, log)

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

	// Сетка доступных слотов facility на дату
	api.HandleFunc("/studios/{studioId}/facilities/{facilityId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Проверка доступности одного интервала
	api.HandleFunc("/facilities/{facilityId}/availability",
		checkInterval.Handle).Methods(http.MethodGet)

	// Рабочие часы студии
	api.HandleFunc("/studios/{studioId}/operating-hours",
		getOperatingHours.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Фиксация брони facility в рамках резервации
	protected.HandleFunc("/reservations/{reservationId}/bookings", commitBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// Смена статуса бронирования (владелец студии)
	protected.HandleFunc("/reservations/{reservationId}/status", updateReservationStatus.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/reservations", getUserReservations.Handle).Methods(http.MethodGet)

	// --- Управление студией (для владельцев) ---
	// Журнал бронирований студии
	protected.HandleFunc("/studios/{studioId}/reservations", getStudioReservations.Handle).Methods(http.MethodGet)

	// Обновление рабочих часов студии
	protected.HandleFunc("/studios/{studioId}/operating-hours", updateOperatingHours.Handle).Methods(http.MethodPut)

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
