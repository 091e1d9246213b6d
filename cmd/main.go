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

	assignDriverHandler "github.com/m04kA/SMC-PickupService/internal/api/handlers/assign_driver"
	confirmPaymentHandler "github.com/m04kA/SMC-PickupService/internal/api/handlers/confirm_payment"
	createBookingHandler "github.com/m04kA/SMC-PickupService/internal/api/handlers/create_booking"
	createDriverHandler "github.com/m04kA/SMC-PickupService/internal/api/handlers/create_driver"
	createPaymentHandler "github.com/m04kA/SMC-PickupService/internal/api/handlers/create_payment"
	getBookingHandler "github.com/m04kA/SMC-PickupService/internal/api/handlers/get_booking"
	getBookingStatsHandler "github.com/m04kA/SMC-PickupService/internal/api/handlers/get_booking_stats"
	getDriverBookingsHandler "github.com/m04kA/SMC-PickupService/internal/api/handlers/get_driver_bookings"
	getDriverDashboardHandler "github.com/m04kA/SMC-PickupService/internal/api/handlers/get_driver_dashboard"
	getPaymentStatusHandler "github.com/m04kA/SMC-PickupService/internal/api/handlers/get_payment_status"
	getUserHandler "github.com/m04kA/SMC-PickupService/internal/api/handlers/get_user"
	importBookingHandler "github.com/m04kA/SMC-PickupService/internal/api/handlers/import_booking"
	listBookingsHandler "github.com/m04kA/SMC-PickupService/internal/api/handlers/list_bookings"
	listDriversHandler "github.com/m04kA/SMC-PickupService/internal/api/handlers/list_drivers"
	refundPaymentHandler "github.com/m04kA/SMC-PickupService/internal/api/handlers/refund_payment"
	subscribeHandler "github.com/m04kA/SMC-PickupService/internal/api/handlers/subscribe_notifications"
	updateBookingStatusHandler "github.com/m04kA/SMC-PickupService/internal/api/handlers/update_booking_status"
	updateDriverLocationHandler "github.com/m04kA/SMC-PickupService/internal/api/handlers/update_driver_location"
	updateDriverStatusHandler "github.com/m04kA/SMC-PickupService/internal/api/handlers/update_driver_status"
	updateUserRoleHandler "github.com/m04kA/SMC-PickupService/internal/api/handlers/update_user_role"
	"github.com/m04kA/SMC-PickupService/internal/api/middleware"
	"github.com/m04kA/SMC-PickupService/internal/config"
	statsCache "github.com/m04kA/SMC-PickupService/internal/infra/cache/stats"
	bookingRepo "github.com/m04kA/SMC-PickupService/internal/infra/storage/booking"
	driverRepo "github.com/m04kA/SMC-PickupService/internal/infra/storage/driver"
	userRepo "github.com/m04kA/SMC-PickupService/internal/infra/storage/user"
	"github.com/m04kA/SMC-PickupService/internal/integrations/paymentgateway"
	"github.com/m04kA/SMC-PickupService/internal/notification"
	bookingsService "github.com/m04kA/SMC-PickupService/internal/service/bookings"
	driversService "github.com/m04kA/SMC-PickupService/internal/service/drivers"
	paymentsService "github.com/m04kA/SMC-PickupService/internal/service/payments"
	usersService "github.com/m04kA/SMC-PickupService/internal/service/users"
	createBookingUC "github.com/m04kA/SMC-PickupService/internal/usecase/create_booking"
	createDriverUC "github.com/m04kA/SMC-PickupService/internal/usecase/create_driver"
	"github.com/m04kA/SMC-PickupService/pkg/dbmetrics"
	"github.com/m04kA/SMC-PickupService/pkg/logger"
	"github.com/m04kA/SMC-PickupService/pkg/metrics"
	"github.com/m04kA/SMC-PickupService/pkg/password"
	"github.com/m04kA/SMC-PickupService/pkg/txmanager"
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

	log.Info("Starting SMC-PickupService...")
	log.Info("Configuration loaded from config.toml")

	// Коллекторы создаются всегда, флаг enabled управляет только публикацией /metrics
	metricsCollector := metrics.New(cfg.Metrics.ServiceName)
	stopMetricsCh := make(chan struct{})

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
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	userRepository := userRepo.NewRepository(wrappedDB)
	driverRepository := driverRepo.NewRepository(wrappedDB)

	// Кеш статистики (опционально). Интерфейсы остаются nil, если Redis не настроен.
	var (
		redisClient   *redis.Client
		bookingsCache bookingsService.StatsCache
		createCache   createBookingUC.StatsCache
		paymentsCache paymentsService.StatsCache
	)
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis is unavailable at %s, stats will be computed on every request: %v", cfg.Redis.Addr, err)
		}
		cancelPing()

		cache := statsCache.NewCache(redisClient, time.Duration(cfg.Booking.StatsCacheTTL)*time.Second)
		bookingsCache, createCache, paymentsCache = cache, cache, cache
		log.Info("Stats cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Booking.StatsCacheTTL)
	}

	// Поток событий в Kafka (опционально)
	var (
		publisher      *notification.KafkaPublisher
		eventPublisher notification.EventPublisher
	)
	if len(cfg.Kafka.Brokers) > 0 {
		publisher = notification.NewKafkaPublisher(notification.NewKafkaWriter(cfg.Kafka.Brokers), cfg.Kafka.Topic)
		eventPublisher = publisher
		log.Info("Kafka event stream enabled (brokers=%v, topic=%s)", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}

	// Уведомления в реальном времени
	hub := notification.NewHub(log,
		notification.WithWriteWait(time.Duration(cfg.WebSocket.WriteTimeout)*time.Second),
		notification.WithSendBuffer(cfg.WebSocket.SendBufferSize),
	)
	relay := notification.NewRelay(hub, eventPublisher, log)

	// Инициализируем интеграционных клиентов
	gateway := paymentgateway.NewClient(
		cfg.PaymentGateway.URL,
		cfg.PaymentGateway.APIKey,
		time.Duration(cfg.PaymentGateway.Timeout)*time.Second,
		log,
	)
	log.Info("Payment gateway client initialized (url=%s, timeout=%ds)",
		cfg.PaymentGateway.URL, cfg.PaymentGateway.Timeout)

	hasher := password.NewHasher(cfg.Booking.BcryptCost)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		userRepository,
		hasher,
		createCache,
		relay,
		metricsCollector,
		createBookingUC.Config{
			CodeMaxAttempts:          cfg.Booking.IDMaxAttempts,
			PlaceholderPasswordBytes: cfg.Booking.PlaceholderPwdLen,
		},
		log,
	)
	createDriverUseCase := createDriverUC.NewUseCase(
		userRepository,
		driverRepository,
		hasher,
		txMgr,
		log,
	)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		userRepository,
		bookingsCache,
		relay,
		metricsCollector,
		txMgr,
		log,
	)
	driverSvc := driversService.NewService(
		driverRepository,
		bookingRepository,
		relay,
		log,
	)
	paymentSvc := paymentsService.NewService(
		bookingRepository,
		gateway,
		paymentsCache,
		metricsCollector,
		cfg.PaymentGateway.Currency,
		log,
	)
	userSvc := usersService.NewService(
		userRepository,
		driverRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	importBooking := importBookingHandler.NewHandler(createBookingUseCase, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	getBookingStats := getBookingStatsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	assignDriver := assignDriverHandler.NewHandler(bookingSvc, log)

	listDrivers := listDriversHandler.NewHandler(driverSvc, log)
	createDriver := createDriverHandler.NewHandler(createDriverUseCase, log)
	getDriverDashboard := getDriverDashboardHandler.NewHandler(driverSvc, log)
	getDriverBookings := getDriverBookingsHandler.NewHandler(driverSvc, log)
	updateDriverStatus := updateDriverStatusHandler.NewHandler(driverSvc, log)
	updateDriverLocation := updateDriverLocationHandler.NewHandler(driverSvc, log)

	createPayment := createPaymentHandler.NewHandler(paymentSvc, log)
	confirmPayment := confirmPaymentHandler.NewHandler(paymentSvc, log)
	refundPayment := refundPaymentHandler.NewHandler(paymentSvc, log)
	getPaymentStatus := getPaymentStatusHandler.NewHandler(paymentSvc, log)

	getUser := getUserHandler.NewHandler(userSvc, log)
	updateUserRole := updateUserRoleHandler.NewHandler(userSvc, log)

	subscribe := subscribeHandler.NewHandler(hub, subscribeHandler.Config{
		AllowedOrigins:  cfg.WebSocket.AllowedOrigins,
		ReadBufferSize:  cfg.WebSocket.ReadBufferSize,
		WriteBufferSize: cfg.WebSocket.WriteBufferSize,
	}, log)

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

	// WebSocket уведомлений (комнаты проверяются в handler)
	r.HandleFunc(cfg.WebSocket.Path, subscribe.Handle).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Заявка клиента на вывоз
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Подтверждение платежа по ссылке из платежного шлюза
	api.HandleFunc("/payments/confirm/{reference}", confirmPayment.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/admin/bookings/import", importBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	// stats регистрируется до {bookingId}
	protected.HandleFunc("/bookings/stats", getBookingStats.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}/assign-driver", assignDriver.Handle).Methods(http.MethodPatch)

	// --- Водители ---
	protected.HandleFunc("/drivers", listDrivers.HandleAll).Methods(http.MethodGet)
	protected.HandleFunc("/drivers", createDriver.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/drivers/available", listDrivers.HandleAvailable).Methods(http.MethodGet)
	protected.HandleFunc("/drivers/{driverId}/dashboard", getDriverDashboard.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/drivers/{driverId}/bookings", getDriverBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/drivers/{driverId}/status", updateDriverStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/drivers/{driverId}/location", updateDriverLocation.Handle).Methods(http.MethodPatch)

	// --- Оплата ---
	protected.HandleFunc("/payments/{bookingId:[0-9]+}/charge", createPayment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/payments/{bookingId:[0-9]+}/refund", refundPayment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/payments/{bookingId:[0-9]+}/status", getPaymentStatus.Handle).Methods(http.MethodGet)

	// --- Пользователи ---
	protected.HandleFunc("/users/{userId:[0-9]+}", getUser.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/users/{userId:[0-9]+}/role", updateUserRole.Handle).Methods(http.MethodPatch)

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

	// Shutdown не ждет hijacked соединения, закрываем их сами
	hub.Close()
	relay.Wait()

	if publisher != nil {
		if err := publisher.Close(); err != nil {
			log.Error("Failed to close kafka writer: %v", err)
		}
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close redis client: %v", err)
		}
	}

	log.Info("Server stopped gracefully")
}
