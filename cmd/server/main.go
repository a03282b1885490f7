package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	billingapp "github.com/plazafl/backend/internal/application/billing"
	financeapp "github.com/plazafl/backend/internal/application/finance"
	identityapp "github.com/plazafl/backend/internal/application/identity"
	paymentsapp "github.com/plazafl/backend/internal/application/payments"
	payrollapp "github.com/plazafl/backend/internal/application/payroll"
	tenancyapp "github.com/plazafl/backend/internal/application/tenancy"
	"github.com/plazafl/backend/internal/domain/identity"
	"github.com/plazafl/backend/internal/infrastructure/auth"
	"github.com/plazafl/backend/internal/infrastructure/cache"
	"github.com/plazafl/backend/internal/infrastructure/config"
	"github.com/plazafl/backend/internal/infrastructure/logger"
	"github.com/plazafl/backend/internal/infrastructure/persistence"
	"github.com/plazafl/backend/internal/infrastructure/persistence/plazascope"
	"github.com/plazafl/backend/internal/infrastructure/scheduler"
	"github.com/plazafl/backend/internal/interfaces/http/handler"
	"github.com/plazafl/backend/internal/interfaces/http/middleware"
	"github.com/plazafl/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Plaza Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Register the plaza scoping guard. Repositories filter by plaza
	// explicitly; the guard catches any query that slipped through.
	plazascope.NewGuard(true).Register(db.DB)

	// Initialize repositories
	plazaRepo := persistence.NewGormPlazaRepository(db.DB)
	businessRepo := persistence.NewGormBusinessRepository(db.DB)
	advanceRepo := persistence.NewGormAdvanceRepository(db.DB)
	billRepo := persistence.NewGormBillRepository(db.DB)
	instalmentRepo := persistence.NewGormInstalmentRepository(db.DB)
	meterReadingRepo := persistence.NewGormMeterReadingRepository(db.DB)
	settingsRepo := persistence.NewGormSettingsRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	pendingPaymentRepo := persistence.NewGormPendingPaymentRepository(db.DB)
	staffRepo := persistence.NewGormStaffRepository(db.DB)
	salaryRecordRepo := persistence.NewGormSalaryRecordRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// JWT service and token blacklist
	jwtService := auth.NewJWTService(cfg.JWT)

	var blacklist auth.TokenBlacklist
	if cfg.Redis.Enabled {
		redisBlacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Warn("Redis blacklist unavailable, falling back to in-memory", zap.Error(err))
			blacklist = auth.NewInMemoryTokenBlacklist()
		} else {
			blacklist = redisBlacklist
			log.Info("Redis token blacklist connected", zap.String("addr", cfg.Redis.Addr()))
		}
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
	}

	// Settings cache (Redis when enabled, in-memory otherwise)
	settingsCache, err := cache.NewSettingsCacheFactory(cfg.Redis, cache.WithLogger(log)).CreateCache()
	if err != nil {
		log.Fatal("Failed to create settings cache", zap.Error(err))
	}

	// Initialize application services
	plazaService := tenancyapp.NewPlazaService(plazaRepo)
	businessService := tenancyapp.NewBusinessService(businessRepo)
	advanceService := tenancyapp.NewAdvanceService(advanceRepo, businessRepo)
	settingsService := billingapp.NewSettingsService(settingsRepo, settingsCache)
	billService := billingapp.NewBillService(billRepo, businessRepo, settingsRepo)
	meterReadingService := billingapp.NewMeterReadingService(meterReadingRepo, billRepo, businessRepo, settingsRepo)
	instalmentService := billingapp.NewInstalmentService(instalmentRepo, billRepo)
	generationService := billingapp.NewGenerationService(billRepo, businessRepo, advanceRepo, settingsRepo, log)
	paymentService := paymentsapp.NewPaymentService(paymentRepo, billRepo, log)
	pendingPaymentService := paymentsapp.NewPendingPaymentService(pendingPaymentRepo, paymentRepo, billRepo, log)
	staffService := payrollapp.NewStaffService(staffRepo, log)
	salaryService := payrollapp.NewSalaryService(salaryRecordRepo, staffRepo, log)
	expenseService := financeapp.NewExpenseService(expenseRepo, log)
	userService := identityapp.NewUserService(userRepo, businessRepo, log)
	authService := identityapp.NewAuthService(
		userRepo,
		plazaRepo,
		jwtService,
		blacklist,
		identityapp.DefaultAuthServiceConfig(),
		log,
	)

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	plazaHandler := handler.NewPlazaHandler(plazaService)
	businessHandler := handler.NewBusinessHandler(businessService)
	advanceHandler := handler.NewAdvanceHandler(advanceService)
	billHandler := handler.NewBillHandler(billService, generationService)
	meterReadingHandler := handler.NewMeterReadingHandler(meterReadingService)
	instalmentHandler := handler.NewInstalmentHandler(instalmentService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	pendingPaymentHandler := handler.NewPendingPaymentHandler(pendingPaymentService)
	staffHandler := handler.NewStaffHandler(staffService)
	salaryHandler := handler.NewSalaryHandler(salaryService)
	expenseHandler := handler.NewExpenseHandler(expenseService)
	settingsHandler := handler.NewSettingsHandler(settingsService)
	userHandler := handler.NewUserHandler(userService)
	cronHandler := handler.NewCronHandler(plazaRepo, generationService, billService, log)
	systemHandler := handler.NewSystemHandler(db.DB)

	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	// 7. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Rate limiting (if enabled)
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health and readiness endpoints (outside API versioning)
	engine.GET("/health", systemHandler.Health)
	engine.GET("/healthz", systemHandler.Health)
	engine.GET("/ready", systemHandler.Ready)

	// Cron trigger endpoints, secured by a shared bearer secret instead of
	// JWT. The GET aliases exist for manual triggering during development
	// and are not registered in production.
	cronGroup := engine.Group("/api/v1/cron")
	cronGroup.Use(middleware.CronAuth(cfg.Cron.Secret, log))
	cronGroup.POST("/generate-rent-bills", cronHandler.GenerateBills)
	cronGroup.POST("/sweep-overdue", cronHandler.SweepOverdue)
	if !cfg.IsProduction() {
		cronGroup.GET("/generate-rent-bills", cronHandler.GenerateBills)
		cronGroup.GET("/sweep-overdue", cronHandler.SweepOverdue)
	}

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Apply JWT authentication middleware to API routes
	// Configure skip paths for public endpoints
	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		SkipPaths: []string{
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
		},
		SkipPathPrefixes: []string{
			"/api/v1/cron",
		},
		Logger: log,
	}
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	requireStaff := middleware.RequirePlazaStaff()
	requireOwner := middleware.RequireOwner()

	// Auth routes. Login and refresh are on the JWT skip list.
	authRoutes := router.NewDomainGroup("auth", "/auth")
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.RefreshToken)
	authRoutes.POST("/logout", authHandler.Logout)
	authRoutes.GET("/me", authHandler.GetCurrentUser)
	authRoutes.POST("/change-password", authHandler.ChangePassword)

	// Plaza routes. Creation and the full listing are reserved for owners;
	// any authenticated user can read their own plaza.
	plazaRoutes := router.NewDomainGroup("plazas", "")
	plazaRoutes.POST("/plazas", requireOwner, plazaHandler.Create)
	plazaRoutes.GET("/plazas", requireOwner, plazaHandler.List)
	plazaRoutes.GET("/plaza", plazaHandler.Get)

	// Business onboarding and lifecycle
	businessRoutes := router.NewDomainGroup("businesses", "/businesses")
	businessRoutes.Use(requireStaff)
	businessRoutes.POST("", businessHandler.Create)
	businessRoutes.GET("", businessHandler.List)
	businessRoutes.GET("/:id", businessHandler.Get)
	businessRoutes.PUT("/:id", businessHandler.Update)
	businessRoutes.PUT("/:id/rent-management", businessHandler.SetRentManagement)
	businessRoutes.POST("/:id/activate", businessHandler.Activate)
	businessRoutes.POST("/:id/deactivate", businessHandler.Deactivate)
	businessRoutes.POST("/:id/terminate", businessHandler.Terminate)

	// Advance payments
	advanceRoutes := router.NewDomainGroup("advances", "/advances")
	advanceRoutes.Use(requireStaff)
	advanceRoutes.POST("", advanceHandler.Create)
	advanceRoutes.GET("", advanceHandler.List)
	advanceRoutes.GET("/:id", advanceHandler.Get)
	advanceRoutes.POST("/:id/settle", advanceHandler.Settle)
	advanceRoutes.POST("/:id/cancel", advanceHandler.Cancel)

	// Bills. Business users can list and read (scoped to their own shop in
	// the handler); mutations are staff-only.
	billRoutes := router.NewDomainGroup("bills", "/bills")
	billRoutes.GET("", billHandler.List)
	billRoutes.GET("/summary", billHandler.GetSummary)
	billRoutes.GET("/:id", billHandler.Get)
	billRoutes.GET("/:id/payments", paymentHandler.ListForBill)
	billRoutes.POST("", requireStaff, billHandler.Create)
	billRoutes.POST("/:id/waveoff", requireStaff, billHandler.Waveoff)
	billRoutes.POST("/:id/cancel", requireStaff, billHandler.Cancel)
	billRoutes.POST("/generate-rent", requireStaff, billHandler.GenerateRent)
	billRoutes.POST("/overdue-sweep", requireStaff, billHandler.SweepOverdue)
	billRoutes.GET("/:id/instalments", instalmentHandler.ListForBill)
	billRoutes.POST("/:id/instalments", requireStaff, instalmentHandler.CreatePlan)

	// Instalment lifecycle
	instalmentRoutes := router.NewDomainGroup("instalments", "/instalments")
	instalmentRoutes.Use(requireStaff)
	instalmentRoutes.POST("/:id/pay", instalmentHandler.Pay)
	instalmentRoutes.POST("/:id/cancel", instalmentHandler.Cancel)

	// Meter readings
	meterRoutes := router.NewDomainGroup("meter-readings", "/meter-readings")
	meterRoutes.Use(requireStaff)
	meterRoutes.POST("", meterReadingHandler.Record)
	meterRoutes.GET("", meterReadingHandler.List)
	meterRoutes.GET("/:id", meterReadingHandler.Get)
	meterRoutes.POST("/:id/bill", meterReadingHandler.CreateBill)

	// Confirmed payments are recorded by staff
	paymentRoutes := router.NewDomainGroup("payments", "/payments")
	paymentRoutes.Use(requireStaff)
	paymentRoutes.POST("", paymentHandler.Record)
	paymentRoutes.GET("", paymentHandler.List)
	paymentRoutes.GET("/:id", paymentHandler.Get)

	// Pending payment claims. Business users submit; staff approve or
	// reject; listing is scoped per role in the handler.
	pendingRoutes := router.NewDomainGroup("pending-payments", "/pending-payments")
	pendingRoutes.POST("", middleware.RequireRole(identity.UserRoleBusiness), pendingPaymentHandler.Submit)
	pendingRoutes.GET("", pendingPaymentHandler.List)
	pendingRoutes.GET("/:id", pendingPaymentHandler.Get)
	pendingRoutes.POST("/:id/approve", requireStaff, pendingPaymentHandler.Approve)
	pendingRoutes.POST("/:id/reject", requireStaff, pendingPaymentHandler.Reject)

	// Staff and payroll
	staffRoutes := router.NewDomainGroup("staff", "/staff")
	staffRoutes.Use(requireStaff)
	staffRoutes.POST("", staffHandler.Create)
	staffRoutes.GET("", staffHandler.List)
	staffRoutes.GET("/:id", staffHandler.Get)
	staffRoutes.PUT("/:id", staffHandler.Update)
	staffRoutes.POST("/:id/activate", staffHandler.Activate)
	staffRoutes.POST("/:id/deactivate", staffHandler.Deactivate)
	staffRoutes.POST("/:id/mark-left", staffHandler.MarkLeft)
	staffRoutes.POST("/salaries/generate", salaryHandler.Generate)
	staffRoutes.GET("/salaries", salaryHandler.List)
	staffRoutes.GET("/salaries/:id", salaryHandler.Get)
	staffRoutes.POST("/salaries/:id/adjust", salaryHandler.Adjust)
	staffRoutes.POST("/salaries/:id/pay", salaryHandler.Pay)

	// Expense tracking
	expenseRoutes := router.NewDomainGroup("expenses", "/expenses")
	expenseRoutes.Use(requireStaff)
	expenseRoutes.POST("", expenseHandler.Create)
	expenseRoutes.GET("", expenseHandler.List)
	expenseRoutes.GET("/summary", expenseHandler.MonthlyTotal)
	expenseRoutes.GET("/:id", expenseHandler.Get)
	expenseRoutes.PUT("/:id", expenseHandler.Update)
	expenseRoutes.DELETE("/:id", expenseHandler.Delete)

	// Per-plaza billing settings
	settingsRoutes := router.NewDomainGroup("billing-settings", "/billing-settings")
	settingsRoutes.Use(requireStaff)
	settingsRoutes.GET("", settingsHandler.Get)
	settingsRoutes.PUT("", settingsHandler.Update)

	// User accounts. Staff accounts and password resets are owner-only;
	// admins can manage business portal accounts.
	userRoutes := router.NewDomainGroup("users", "/users")
	userRoutes.Use(requireStaff)
	userRoutes.POST("", requireOwner, userHandler.Create)
	userRoutes.POST("/business", userHandler.CreateBusinessUser)
	userRoutes.GET("", userHandler.List)
	userRoutes.GET("/:id", userHandler.Get)
	userRoutes.POST("/:id/activate", userHandler.Activate)
	userRoutes.POST("/:id/deactivate", userHandler.Deactivate)
	userRoutes.POST("/:id/unlock", userHandler.Unlock)
	userRoutes.POST("/:id/reset-password", requireOwner, userHandler.ResetPassword)

	// System info
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)

	// Register all domain groups
	r.Register(authRoutes).
		Register(plazaRoutes).
		Register(businessRoutes).
		Register(advanceRoutes).
		Register(billRoutes).
		Register(instalmentRoutes).
		Register(meterRoutes).
		Register(paymentRoutes).
		Register(pendingRoutes).
		Register(staffRoutes).
		Register(expenseRoutes).
		Register(settingsRoutes).
		Register(userRoutes).
		Register(systemRoutes)

	// Setup routes
	r.Setup()

	// Start the billing scheduler when enabled. The HTTP cron endpoints
	// remain available either way for externally driven schedules.
	var billingScheduler *scheduler.BillingScheduler
	if cfg.Scheduler.Enabled {
		billingScheduler, err = scheduler.NewBillingScheduler(cfg.Scheduler, plazaRepo, generationService, billService, log)
		if err != nil {
			log.Fatal("Failed to create billing scheduler", zap.Error(err))
		}
		if err := billingScheduler.Start(context.Background()); err != nil {
			log.Fatal("Failed to start billing scheduler", zap.Error(err))
		}
	}

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if billingScheduler != nil {
		if err := billingScheduler.Stop(ctx); err != nil {
			log.Error("Billing scheduler shutdown error", zap.Error(err))
		}
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
