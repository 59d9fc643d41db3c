package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	auditapp "github.com/clinic/backend/internal/application/audit"
	catalogapp "github.com/clinic/backend/internal/application/catalog"
	couponapp "github.com/clinic/backend/internal/application/coupon"
	partnerapp "github.com/clinic/backend/internal/application/partner"
	pricingapp "github.com/clinic/backend/internal/application/pricing"
	reportapp "github.com/clinic/backend/internal/application/report"
	tradeapp "github.com/clinic/backend/internal/application/trade"
	"github.com/clinic/backend/internal/domain/pricing"
	"github.com/clinic/backend/internal/infrastructure/auth"
	"github.com/clinic/backend/internal/infrastructure/config"
	"github.com/clinic/backend/internal/infrastructure/event"
	"github.com/clinic/backend/internal/infrastructure/logger"
	"github.com/clinic/backend/internal/infrastructure/persistence"
	"github.com/clinic/backend/internal/interfaces/http/handler"
	"github.com/clinic/backend/internal/interfaces/http/middleware"
	"github.com/clinic/backend/internal/interfaces/http/router"
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
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting clinic backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
	)

	// Connect to database
	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	// Initialize repositories
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	serviceRepo := persistence.NewGormServiceRepository(db.DB)
	couponRepo := persistence.NewGormCouponRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	approvalRepo := persistence.NewGormApprovalRequestRepository(db.DB)

	// Initialize pricing engine with configured policy
	engine := pricing.NewEngine(pricingapp.PolicyFromConfig(cfg.Pricing))

	// Initialize JWT service
	jwtService := auth.NewJWTService(cfg.JWT)

	// Initialize application services
	customerService := partnerapp.NewCustomerService(customerRepo)
	serviceService := catalogapp.NewServiceService(serviceRepo)
	couponService := couponapp.NewCouponService(couponRepo)
	quoteService := pricingapp.NewQuoteService(engine, customerRepo, serviceRepo, approvalRepo, orderRepo)
	orderService := tradeapp.NewOrderService(engine, orderRepo, approvalRepo, customerRepo, serviceRepo, couponRepo)
	revenueService := reportapp.NewRevenueReportService(orderRepo, approvalRepo)

	// Initialize event bus and handlers
	eventBus := event.NewInMemoryEventBus(log)

	// Every domain event lands in the activity log
	activityLogHandler := auditapp.NewActivityLogHandler(log)
	eventBus.Subscribe(activityLogHandler)

	// Pending approvals are surfaced for managers
	approvalRequestedHandler := tradeapp.NewApprovalRequestedHandler(log)
	eventBus.Subscribe(approvalRequestedHandler)

	customerService.SetEventPublisher(eventBus)
	serviceService.SetEventPublisher(eventBus)
	couponService.SetEventPublisher(eventBus)
	quoteService.SetEventPublisher(eventBus)
	orderService.SetEventPublisher(eventBus)

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	// Initialize handlers
	customerHandler := handler.NewCustomerHandler(customerService)
	serviceHandler := handler.NewServiceHandler(serviceService)
	couponHandler := handler.NewCouponHandler(couponService)
	orderHandler := handler.NewOrderHandler(orderService)
	quoteHandler := handler.NewQuoteHandler(quoteService)
	reportHandler := handler.NewReportHandler(revenueService)
	systemHandler := handler.NewSystemHandler()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ginEngine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := ginEngine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. RateLimit - Apply rate limiting (if enabled)
	ginEngine.Use(middleware.RequestID())
	ginEngine.Use(logger.Recovery(log))
	ginEngine.Use(logger.GinMiddleware(log))
	ginEngine.Use(middleware.Secure())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	ginEngine.Use(middleware.CORSWithConfig(corsConfig))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		ginEngine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	ginEngine.GET("/health", healthHandler(db, log))

	// Setup API routes using router
	r := router.NewRouter(ginEngine, router.WithAPIVersion("v1"))

	// Apply JWT authentication middleware to API routes
	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/api/v1/ping",
			"/api/v1/system/ping",
			"/api/v1/system/info",
		},
		Logger: log,
	}
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Partner domain (customers)
	partnerRoutes := router.NewDomainGroup("partner", "/partner")
	partnerRoutes.POST("/customers", customerHandler.Create)
	partnerRoutes.GET("/customers", customerHandler.List)
	partnerRoutes.GET("/customers/:id", customerHandler.GetByID)
	partnerRoutes.GET("/customers/code/:code", customerHandler.GetByCode)
	partnerRoutes.PUT("/customers/:id", customerHandler.Update)
	partnerRoutes.POST("/customers/:id/activate", customerHandler.Activate)
	partnerRoutes.POST("/customers/:id/deactivate", customerHandler.Deactivate)
	partnerRoutes.DELETE("/customers/:id", customerHandler.Delete)

	// Catalog domain (infusion services)
	catalogRoutes := router.NewDomainGroup("catalog", "/catalog")
	catalogRoutes.POST("/services", serviceHandler.Create)
	catalogRoutes.GET("/services", serviceHandler.List)
	catalogRoutes.GET("/services/:id", serviceHandler.GetByID)
	catalogRoutes.GET("/services/code/:code", serviceHandler.GetByCode)
	catalogRoutes.PUT("/services/:id", serviceHandler.Update)
	catalogRoutes.POST("/services/:id/activate", serviceHandler.Activate)
	catalogRoutes.POST("/services/:id/deactivate", serviceHandler.Deactivate)
	catalogRoutes.DELETE("/services/:id", serviceHandler.Delete)

	// Coupon domain
	couponRoutes := router.NewDomainGroup("coupon", "/coupons")
	couponRoutes.POST("", couponHandler.Create)
	couponRoutes.GET("", couponHandler.List)
	couponRoutes.GET("/:id", couponHandler.GetByID)
	couponRoutes.GET("/code/:code", couponHandler.GetByCode)
	couponRoutes.PUT("/:id", couponHandler.Update)
	couponRoutes.POST("/:id/activate", couponHandler.Activate)
	couponRoutes.POST("/:id/deactivate", couponHandler.Deactivate)
	couponRoutes.DELETE("/:id", couponHandler.Delete)

	// Pricing domain (quotes and approval requests)
	pricingRoutes := router.NewDomainGroup("pricing", "/pricing")
	pricingRoutes.POST("/quote", quoteHandler.Calculate)
	pricingRoutes.POST("/optimize", quoteHandler.Optimize)

	approvalRoutes := router.NewDomainGroup("approvals", "/approvals")
	approvalRoutes.POST("", quoteHandler.RequestApproval)
	approvalRoutes.GET("", quoteHandler.ListApprovals)
	approvalRoutes.GET("/:id", quoteHandler.GetApproval)
	// Decisions are restricted to manager and admin roles
	approvalRoutes.POST("/:id/approve", middleware.RequireApprovalAuthority(), quoteHandler.Approve)
	approvalRoutes.POST("/:id/reject", middleware.RequireApprovalAuthority(), quoteHandler.Reject)

	// Trade domain (orders)
	tradeRoutes := router.NewDomainGroup("trade", "/orders")
	tradeRoutes.POST("", orderHandler.Create)
	tradeRoutes.GET("", orderHandler.List)
	tradeRoutes.GET("/:id", orderHandler.GetByID)
	tradeRoutes.GET("/no/:order_no", orderHandler.GetByOrderNo)
	tradeRoutes.POST("/:id/confirm", orderHandler.Confirm)
	tradeRoutes.POST("/:id/cancel", orderHandler.Cancel)

	// Reports
	reportRoutes := router.NewDomainGroup("reports", "/reports")
	reportRoutes.GET("/revenue", reportHandler.Revenue)

	// System routes
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)

	r.Register(partnerRoutes).
		Register(catalogRoutes).
		Register(couponRoutes).
		Register(pricingRoutes).
		Register(approvalRoutes).
		Register(tradeRoutes).
		Register(reportRoutes).
		Register(systemRoutes)

	r.Setup()

	// Simple ping at root API level for basic health checks
	ginEngine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        ginEngine,
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

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	if err := eventBus.Stop(ctx); err != nil {
		log.Error("Error stopping event bus", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
