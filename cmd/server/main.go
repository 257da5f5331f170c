package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	cartapp "github.com/ecoharvest/backend/internal/application/cart"
	catalogapp "github.com/ecoharvest/backend/internal/application/catalog"
	inventoryapp "github.com/ecoharvest/backend/internal/application/inventory"
	orderapp "github.com/ecoharvest/backend/internal/application/order"
	"github.com/ecoharvest/backend/internal/infrastructure/auth"
	"github.com/ecoharvest/backend/internal/infrastructure/cache"
	"github.com/ecoharvest/backend/internal/infrastructure/config"
	"github.com/ecoharvest/backend/internal/infrastructure/logger"
	"github.com/ecoharvest/backend/internal/infrastructure/persistence"
	"github.com/ecoharvest/backend/internal/interfaces/http/handler"
	"github.com/ecoharvest/backend/internal/interfaces/http/middleware"
	"github.com/ecoharvest/backend/internal/interfaces/http/router"
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

	log.Info("Starting EcoHarvest Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database connection with GORM logging routed through zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	batchRepo := persistence.NewGormBatchRepository(db.DB)
	receiptRepo := persistence.NewGormImportReceiptRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentDetailRepository(db.DB)
	cartRepo := persistence.NewGormCartItemRepository(db.DB)

	inventoryScope := persistence.NewGormInventoryTransactionScope(db.DB)
	settlementScope := persistence.NewGormSettlementTransactionScope(db.DB)

	// Application services
	productService := catalogapp.NewProductService(productRepo, categoryRepo, log)
	categoryService := catalogapp.NewCategoryService(categoryRepo, productRepo, log)
	stockService := inventoryapp.NewStockService(batchRepo, productRepo, orderRepo, log)
	receiptService := inventoryapp.NewReceiptService(inventoryScope, receiptRepo, log)
	cartService := cartapp.NewCartService(cartRepo, productRepo, log)
	settlementService := orderapp.NewSettlementService(
		settlementScope, stockService, orderRepo, paymentRepo, productRepo, log,
	)

	// Product read cache, optional. Stock mutations invalidate through the
	// same client so reads never serve stale quantities past the TTL.
	if cfg.Cache.Enabled {
		productCache, err := cache.NewRedisProductCache(cache.RedisConfig{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, cfg.Cache.ProductTTL, log)
		if err != nil {
			log.Warn("Redis unavailable, product cache disabled", zap.Error(err))
		} else {
			defer func() {
				if err := productCache.Close(); err != nil {
					log.Error("Error closing redis client", zap.Error(err))
				}
			}()
			productService.SetCache(productCache)
			stockService.SetCacheInvalidator(productCache)
			receiptService.SetCacheInvalidator(productCache)
			log.Info("Product cache enabled",
				zap.String("addr", cfg.Redis.Addr()),
				zap.Duration("ttl", cfg.Cache.ProductTTL),
			)
		}
	}

	// Token verifier; tokens are issued by the identity provider, this
	// service only checks the shared-secret signature.
	verifier := auth.NewTokenVerifier(cfg.JWT.Secret, cfg.JWT.Issuer)

	// HTTP handlers
	productHandler := handler.NewProductHandler(productService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	cartHandler := handler.NewCartHandler(cartService)
	orderHandler := handler.NewOrderHandler(settlementService)
	inventoryHandler := handler.NewInventoryHandler(receiptService, stockService)
	systemHandler := handler.NewSystemHandler(db)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Root-level health check, outside API versioning
	engine.GET("/health", healthHandler(db))

	// Middleware chains for the route groups
	userAuth := []gin.HandlerFunc{middleware.JWTAuth(verifier)}
	adminAuth := []gin.HandlerFunc{middleware.JWTAuth(verifier), middleware.RequireAdmin()}

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(router.NewSystemRoutes(systemHandler))
	r.Register(router.NewCatalogRoutes(productHandler, categoryHandler, adminAuth...))
	r.Register(router.NewCartRoutes(cartHandler, userAuth...))
	r.Register(router.NewOrderRoutes(orderHandler, userAuth, adminAuth))
	r.Register(router.NewInventoryRoutes(inventoryHandler, adminAuth...))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

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

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for the root health check endpoint
func healthHandler(db *persistence.Database) gin.HandlerFunc {
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
