package main

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	createAppointmentHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/get_available_slots"
	getDayAppointmentsHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/get_day_appointments"
	getScheduleHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/get_schedule"
	loginHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/login"
	streamDayAppointmentsHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/stream_day_appointments"
	updateAppointmentHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/update_appointment"
	updateAppointmentStatusHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/update_appointment_status"
	updateScheduleHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/update_schedule"
	"github.com/m04kA/SMC-BarberBooking/internal/api/middleware"
	"github.com/m04kA/SMC-BarberBooking/internal/config"
	"github.com/m04kA/SMC-BarberBooking/internal/infra/notify"
	adminRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/admin"
	appointmentRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-BarberBooking/internal/infra/storage/migrations"
	scheduleRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/schedule"
	appointmentsService "github.com/m04kA/SMC-BarberBooking/internal/service/appointments"
	authService "github.com/m04kA/SMC-BarberBooking/internal/service/auth"
	scheduleService "github.com/m04kA/SMC-BarberBooking/internal/service/schedule"
	createAppointmentUC "github.com/m04kA/SMC-BarberBooking/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/SMC-BarberBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-BarberBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
	"github.com/m04kA/SMC-BarberBooking/pkg/metrics"
	"github.com/m04kA/SMC-BarberBooking/pkg/txmanager"
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

	log.Info("Starting SMC-BarberBooking...")
	log.Info("Configuration loaded from config.toml")

	location, err := cfg.Shop.Location()
	if err != nil {
		log.Fatal("Invalid shop timezone: %v", err)
	}
	log.Info("Shop timezone: %s", location)

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

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// Проверяем соединение
	if err := db.PingContext(startupCtx); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Database.AutoMigrate {
		if err := migrations.Up(startupCtx, db, log); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
	}

	// Обёртка считает длительность запросов; без метрик только проксирует
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	scheduleRepository := scheduleRepo.NewRepository(wrappedDB)
	adminRepository := adminRepo.NewRepository(wrappedDB)

	// Инициализируем сервисы
	appointmentsSvc := appointmentsService.NewService(appointmentRepository, log)
	scheduleSvc := scheduleService.NewService(scheduleRepository, txMgr, log)
	authSvc := authService.NewService(adminRepository, cfg.Auth.JWTSecret, cfg.Auth.TokenTTLDuration(), log)

	if cfg.Auth.AdminEmail != "" && cfg.Auth.AdminPassword != "" {
		if err := authSvc.EnsureAdmin(startupCtx, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword); err != nil {
			log.Fatal("Failed to bootstrap admin account: %v", err)
		}
	} else {
		log.Warn("ADMIN_EMAIL/ADMIN_PASSWORD are not set, admin bootstrap skipped")
	}

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		scheduleRepository,
		txMgr,
		metricsCollector,
		location,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		scheduleRepository,
		location,
		log,
	)

	// Поток изменений записей (LISTEN appointment_changes)
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	hub := notify.NewHub(cfg.Notify.SubscriberBuffer, log)
	listenerDone := make(chan struct{})

	if cfg.Notify.Enabled {
		listener := notify.NewListener(cfg.Database.DSN(), notify.ListenerConfig{
			Channel:              cfg.Notify.Channel,
			MinReconnectInterval: time.Duration(cfg.Notify.MinReconnectInterval) * time.Second,
			MaxReconnectInterval: time.Duration(cfg.Notify.MaxReconnectInterval) * time.Second,
			PingInterval:         time.Duration(cfg.Notify.PingInterval) * time.Second,
		}, hub, log)

		go func() {
			defer close(listenerDone)
			if err := listener.Run(appCtx); err != nil {
				log.Error("Change listener stopped: %v", err)
			}
		}()
		log.Info("Listening for appointment changes on channel %q", cfg.Notify.Channel)
	} else {
		close(listenerDone)
	}

	// Redis для ограничения частоты запросов (опционально)
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(startupCtx).Err(); err != nil {
			log.Warn("Redis is not reachable at %s: %v", cfg.Redis.Addr, err)
		} else {
			log.Info("Connected to Redis at %s", cfg.Redis.Addr)
		}
	}

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	login := loginHandler.NewHandler(authSvc, log)
	getDayAppointments := getDayAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	updateAppointment := updateAppointmentHandler.NewHandler(appointmentsSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentsSvc, log)
	updateSchedule := updateScheduleHandler.NewHandler(scheduleSvc, log)
	streamDayAppointments := streamDayAppointmentsHandler.NewHandler(
		hub,
		appointmentRepository,
		metricsCollector,
		time.Duration(cfg.Notify.KeepAliveInterval)*time.Second,
		log,
	)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
		defer cancel()

		if err := wrappedDB.PingContext(ctx); err != nil {
			handlers.RespondError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Настройки мастерской
	api.HandleFunc("/schedule", getSchedule.Handle).Methods(http.MethodGet)

	// Свободные слоты на дату
	api.HandleFunc("/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Создание записи и вход администратора ограничиваются по IP, если включен Redis
	bookingRoute := api.PathPrefix("/appointments").Subrouter()
	authRoute := api.PathPrefix("/auth").Subrouter()

	if redisClient != nil {
		counter := middleware.NewRedisCounter(redisClient)
		window := time.Duration(cfg.Redis.BookingWindow) * time.Second

		bookingRoute.Use(middleware.RateLimit(counter, middleware.RateLimitConfig{
			Prefix:            "rl:booking",
			Limit:             cfg.Redis.BookingLimit,
			Window:            window,
			FailOpen:          cfg.Redis.FailOpen,
			TrustForwardedFor: cfg.Redis.TrustForwardedFor,
		}, log))
		authRoute.Use(middleware.RateLimit(counter, middleware.RateLimitConfig{
			Prefix:            "rl:login",
			Limit:             cfg.Redis.BookingLimit,
			Window:            window,
			FailOpen:          cfg.Redis.FailOpen,
			TrustForwardedFor: cfg.Redis.TrustForwardedFor,
		}, log))
		log.Info("Rate limiting enabled: %d requests per %s", cfg.Redis.BookingLimit, window)
	}

	// Создание записи клиентом
	bookingRoute.HandleFunc("", createAppointment.Handle).Methods(http.MethodPost)

	// Вход администратора
	authRoute.HandleFunc("/login", login.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (требуют Authorization: Bearer <jwt>)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.Auth(authSvc, log))

	// --- Записи ---
	// Записи за день
	admin.HandleFunc("/appointments", getDayAppointments.Handle).Methods(http.MethodGet)

	// Поток изменений записей за день (SSE)
	if cfg.Notify.Enabled {
		admin.HandleFunc("/appointments/stream", streamDayAppointments.Handle).Methods(http.MethodGet)
	}

	// Запись по ID
	admin.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Правка данных клиента
	admin.HandleFunc("/appointments/{appointmentId}", updateAppointment.Handle).Methods(http.MethodPatch)

	// Смена статуса: confirm, complete, no-show, cancel
	admin.HandleFunc("/appointments/{appointmentId}/{action}", updateAppointmentStatus.Handle).Methods(http.MethodPost)

	// --- Настройки мастерской ---
	admin.HandleFunc("/schedule", updateSchedule.Handle).Methods(http.MethodPut)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return appCtx
		},
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

	// Закрываем SSE потоки и слушателя изменений
	appCancel()
	<-listenerDone

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
