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

	appointmentsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/appointments"
	bookingFlowHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/bookingflow"
	catalogHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/catalog"
	createAppointmentHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/create_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_available_slots"
	preferencesHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/preferences"
	reviewsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/reviews"
	settingsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/settings"
	subscriptionsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/subscriptions"
	tenantsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/tenants"
	usersHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/users"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/config"
	"github.com/m04kA/SMC-SalonService/internal/infra/kvstore"
	appointmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/catalog"
	reviewRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/review"
	settingsRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/settings"
	subscriptionRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/subscription"
	tenantRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/tenant"
	userRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/user"
	checkoutClient "github.com/m04kA/SMC-SalonService/internal/integrations/checkout"
	notifierClient "github.com/m04kA/SMC-SalonService/internal/integrations/notifier"
	appointmentsService "github.com/m04kA/SMC-SalonService/internal/service/appointments"
	bookingFlowService "github.com/m04kA/SMC-SalonService/internal/service/bookingflow"
	catalogService "github.com/m04kA/SMC-SalonService/internal/service/catalog"
	preferencesService "github.com/m04kA/SMC-SalonService/internal/service/preferences"
	reviewsService "github.com/m04kA/SMC-SalonService/internal/service/reviews"
	settingsService "github.com/m04kA/SMC-SalonService/internal/service/settings"
	subscriptionsService "github.com/m04kA/SMC-SalonService/internal/service/subscriptions"
	tenantsService "github.com/m04kA/SMC-SalonService/internal/service/tenants"
	usersService "github.com/m04kA/SMC-SalonService/internal/service/users"
	createAppointmentUC "github.com/m04kA/SMC-SalonService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/SMC-SalonService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SalonService/migrations"
	"github.com/m04kA/SMC-SalonService/pkg/auth"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
	"github.com/m04kA/SMC-SalonService/pkg/metrics"
	"github.com/m04kA/SMC-SalonService/pkg/migrate"
	"github.com/m04kA/SMC-SalonService/pkg/txmanager"
)

// catalogStore каталог услуг: Postgres или Redis, в зависимости от storage.backend
type catalogStore interface {
	catalogService.CatalogRepository
	createAppointmentUC.CatalogRepository
}

// userStore пользователи: Postgres или Redis
type userStore interface {
	usersService.UserRepository
	tenantsService.UserRepository
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

	log.Info("Starting SMC-SalonService...")
	log.Info("Configuration loaded from config.toml (storage backend=%s)", cfg.Storage.Backend)

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

	if cfg.Database.AutoMigrate {
		if err := migrate.Up(db, migrations.FS); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		version, err := migrate.Version(db, migrations.FS)
		if err != nil {
			log.Fatal("Failed to read migration version: %v", err)
		}
		log.Info("Database migrations applied (version=%d)", version)
	}

	// Без коллектора обёртка не пишет метрики
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Redis: сессии записи и предпочтения всегда, каталог и пользователи при backend=kv
	redisClient, err := kvstore.NewClient(context.Background(), cfg.Redis)
	if err != nil {
		log.Fatal("Failed to connect to redis: %v", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)

	// Инициализируем репозитории
	tenantRepository := tenantRepo.NewRepository(wrappedDB)
	settingsRepository := settingsRepo.NewRepository(wrappedDB)
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	reviewRepository := reviewRepo.NewRepository(wrappedDB)
	subscriptionRepository := subscriptionRepo.NewRepository(wrappedDB)

	var (
		catalogRepository catalogStore
		userRepository    userStore
	)
	switch cfg.Storage.Backend {
	case config.StorageBackendKV:
		catalogRepository = kvstore.NewCatalogRepository(redisClient)
		userRepository = kvstore.NewUserRepository(redisClient)
	default:
		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		userRepository = userRepo.NewRepository(wrappedDB)
	}

	flowStore := kvstore.NewFlowStore(redisClient, time.Duration(cfg.Booking.FlowTTLMinutes)*time.Minute)
	preferencesStore := kvstore.NewPreferencesStore(redisClient)

	// Инициализируем интеграционных клиентов
	checkout := checkoutClient.NewClient(
		cfg.Checkout.BaseURL,
		cfg.Checkout.KeyID,
		cfg.Checkout.KeySecret,
		time.Duration(cfg.Checkout.Timeout)*time.Second,
		log,
	)
	notifier := notifierClient.NewClient(
		cfg.Notifier.DefaultWebhook,
		time.Duration(cfg.Notifier.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (checkout=%s timeout=%ds, notifier timeout=%ds)",
		cfg.Checkout.BaseURL, cfg.Checkout.Timeout, cfg.Notifier.Timeout)

	tokens, err := auth.NewTokenManager(
		cfg.Auth.JWTSecret,
		cfg.Auth.Issuer,
		time.Duration(cfg.Auth.TokenTTLHours)*time.Hour,
	)
	if err != nil {
		log.Fatal("Failed to initialize token manager: %v", err)
	}

	// Инициализируем сервисы
	userSvc := usersService.NewService(userRepository, tokens, cfg.Auth.SuperadminEmails, log)
	tenantSvc := tenantsService.NewService(
		tenantRepository,
		settingsRepository,
		catalogRepository,
		userRepository,
		txMgr,
		log,
	)
	catalogSvc := catalogService.NewService(catalogRepository, txMgr, log)
	settingsSvc := settingsService.NewService(settingsRepository, log)
	appointmentSvc := appointmentsService.NewService(appointmentRepository, metricsCollector, log)
	reviewSvc := reviewsService.NewService(reviewRepository, appointmentRepository, log)
	preferencesSvc := preferencesService.NewService(preferencesStore, log)
	subscriptionSvc := subscriptionsService.NewService(
		subscriptionRepository,
		tenantRepository,
		checkout,
		txMgr,
		metricsCollector,
		subscriptionsService.Options{
			KeyID:        cfg.Checkout.KeyID,
			Currency:     cfg.Checkout.Currency,
			BusinessName: cfg.Checkout.BusinessName,
			ThemeColor:   cfg.Checkout.ThemeColor,
		},
		log,
	)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		tenantRepository,
		settingsRepository,
		catalogRepository,
		notifier,
		metricsCollector,
		txMgr,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		tenantRepository,
		settingsRepository,
		catalogRepository,
		log,
	)

	flowSvc := bookingFlowService.NewService(flowStore, createAppointmentUseCase, appointmentSvc, reviewSvc, log)

	// Инициализируем handlers
	users := usersHandler.NewHandler(userSvc, log)
	tenants := tenantsHandler.NewHandler(tenantSvc, log)
	catalog := catalogHandler.NewHandler(catalogSvc, log)
	settings := settingsHandler.NewHandler(settingsSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	appointments := appointmentsHandler.NewHandler(appointmentSvc, log)
	flows := bookingFlowHandler.NewHandler(flowSvc, log)
	reviews := reviewsHandler.NewHandler(reviewSvc, log)
	subscriptions := subscriptionsHandler.NewHandler(subscriptionSvc, log)
	preferences := preferencesHandler.NewHandler(preferencesSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

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

	api.HandleFunc("/auth/register", users.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", users.Login).Methods(http.MethodPost)
	api.HandleFunc("/plans", subscriptions.Plans).Methods(http.MethodGet)
	api.HandleFunc("/tenants/by-slug/{slug}", tenants.GetBySlug).Methods(http.MethodGet)

	// ============================================================
	// OPTIONAL AUTH ROUTES (аноним или клиент с токеном)
	// ============================================================

	optional := api.PathPrefix("").Subrouter()
	optional.Use(middleware.OptionalAuth(tokens, userSvc, log))

	optional.HandleFunc("/session", tenants.Session).Methods(http.MethodGet)
	optional.HandleFunc("/tenants/{tenantId}/services", catalog.List).Methods(http.MethodGet)
	optional.HandleFunc("/tenants/{tenantId}/services/{serviceId}", catalog.Get).Methods(http.MethodGet)
	optional.HandleFunc("/tenants/{tenantId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	optional.HandleFunc("/tenants/{tenantId}/settings", settings.Get).Methods(http.MethodGet)
	optional.HandleFunc("/tenants/{tenantId}/reviews", reviews.ListApproved).Methods(http.MethodGet)

	// --- Витрина салона по slug ---
	storefront := optional.PathPrefix("/s/{slug}").Subrouter()
	storefront.Use(middleware.TenantContext(tenantSvc, log))

	storefront.HandleFunc("/session", tenants.Session).Methods(http.MethodGet)
	storefront.HandleFunc("/services", catalog.List).Methods(http.MethodGet)
	storefront.HandleFunc("/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	storefront.HandleFunc("/settings", settings.Get).Methods(http.MethodGet)
	storefront.HandleFunc("/reviews", reviews.ListApproved).Methods(http.MethodGet)
	// Start сам отвечает 401 без токена
	storefront.HandleFunc("/flows", flows.Start).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют Bearer токен)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(tokens, userSvc, log))

	// --- Профиль ---
	protected.HandleFunc("/me", users.GetProfile).Methods(http.MethodGet)
	protected.HandleFunc("/me", users.UpdateProfile).Methods(http.MethodPatch)
	protected.HandleFunc("/me/appointments", appointments.ListMine).Methods(http.MethodGet)
	protected.HandleFunc("/me/preferences", preferences.Get).Methods(http.MethodGet)
	protected.HandleFunc("/me/preferences", preferences.Update).Methods(http.MethodPut)

	// --- Тенанты ---
	protected.HandleFunc("/tenants", tenants.Register).Methods(http.MethodPost)
	protected.HandleFunc("/tenants/{tenantId}/staff", tenants.AddStaff).Methods(http.MethodPost)
	protected.HandleFunc("/admin/tenants", tenants.List).Methods(http.MethodGet)
	protected.HandleFunc("/admin/tenants/{tenantId}/active", tenants.SetActive).Methods(http.MethodPatch)

	// --- Каталог услуг ---
	protected.HandleFunc("/tenants/{tenantId}/services", catalog.Add).Methods(http.MethodPost)
	protected.HandleFunc("/tenants/{tenantId}/services/reset", catalog.ResetToDefaults).Methods(http.MethodPost)
	protected.HandleFunc("/tenants/{tenantId}/services/{serviceId}", catalog.Update).Methods(http.MethodPatch)
	protected.HandleFunc("/tenants/{tenantId}/services/{serviceId}", catalog.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/tenants/{tenantId}/services/{serviceId}/restore", catalog.Restore).Methods(http.MethodPost)

	// --- Настройки бизнеса ---
	protected.HandleFunc("/tenants/{tenantId}/settings", settings.Update).Methods(http.MethodPut)

	// --- Записи ---
	protected.HandleFunc("/tenants/{tenantId}/appointments", createAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/tenants/{tenantId}/appointments", appointments.ListForTenant).Methods(http.MethodGet)
	protected.HandleFunc("/tenants/{tenantId}/appointments/stats", appointments.Stats).Methods(http.MethodGet)
	protected.HandleFunc("/tenants/{tenantId}/appointments/export", appointments.Export).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}", appointments.Get).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/status", appointments.ChangeStatus).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/payment", appointments.RecordPayment).Methods(http.MethodPost)

	// --- Сценарий записи ---
	protected.HandleFunc("/tenants/{tenantId}/flows", flows.Start).Methods(http.MethodPost)
	protected.HandleFunc("/flows/{flowId}", flows.Get).Methods(http.MethodGet)
	protected.HandleFunc("/flows/{flowId}", flows.Abandon).Methods(http.MethodDelete)
	protected.HandleFunc("/flows/{flowId}/services", flows.SelectServices).Methods(http.MethodPut)
	protected.HandleFunc("/flows/{flowId}/events", flows.Dispatch).Methods(http.MethodPost)

	// --- Отзывы ---
	protected.HandleFunc("/reviews", reviews.Create).Methods(http.MethodPost)
	protected.HandleFunc("/reviews/{reviewId}", reviews.Update).Methods(http.MethodPatch)
	protected.HandleFunc("/reviews/{reviewId}/approval", reviews.Approve).Methods(http.MethodPatch)
	protected.HandleFunc("/tenants/{tenantId}/reviews/all", reviews.ListAll).Methods(http.MethodGet)

	// --- Подписки ---
	protected.HandleFunc("/tenants/{tenantId}/checkout", subscriptions.StartCheckout).Methods(http.MethodPost)
	protected.HandleFunc("/tenants/{tenantId}/checkout/complete", subscriptions.CompleteCheckout).Methods(http.MethodPost)
	protected.HandleFunc("/tenants/{tenantId}/subscription", subscriptions.Current).Methods(http.MethodGet)
	protected.HandleFunc("/tenants/{tenantId}/subscriptions", subscriptions.History).Methods(http.MethodGet)
	protected.HandleFunc("/tenants/{tenantId}/payments", subscriptions.Payments).Methods(http.MethodGet)

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
