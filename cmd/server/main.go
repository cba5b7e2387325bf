package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	catalogapp "github.com/retail/backend/internal/application/catalog"
	identityapp "github.com/retail/backend/internal/application/identity"
	"github.com/retail/backend/internal/application/notification"
	orderingapp "github.com/retail/backend/internal/application/ordering"
	"github.com/retail/backend/internal/infrastructure/auth"
	"github.com/retail/backend/internal/infrastructure/config"
	"github.com/retail/backend/internal/infrastructure/event"
	"github.com/retail/backend/internal/infrastructure/logger"
	"github.com/retail/backend/internal/infrastructure/mail"
	"github.com/retail/backend/internal/infrastructure/persistence"
	"github.com/retail/backend/internal/infrastructure/pricelist"
	"github.com/retail/backend/internal/interfaces/http/handler"
	"github.com/retail/backend/internal/interfaces/http/middleware"
	"github.com/retail/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting retail backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB())
	contactRepo := persistence.NewGormContactRepository(db.DB())
	tokenRepo := persistence.NewGormConfirmEmailTokenRepository(db.DB())
	categoryRepo := persistence.NewGormCategoryRepository(db.DB())
	shopRepo := persistence.NewGormShopRepository(db.DB())
	offerRepo := persistence.NewGormOfferRepository(db.DB())
	orderRepo := persistence.NewGormOrderRepository(db.DB())
	priceListRepo := persistence.NewGormPriceListRepository(db.DB())

	// Token blacklist, falling back to in-process storage when Redis is
	// unreachable
	var blacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis)
	if err != nil {
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = redisBlacklist
		log.Info("Redis token blacklist connected", zap.String("addr", cfg.Redis.Addr()))
	}

	// Outgoing mail
	var sender mail.Sender
	if cfg.SMTP.Enabled {
		sender = mail.NewSMTPSender(cfg.SMTP)
		log.Info("SMTP sender configured", zap.String("host", cfg.SMTP.Host))
	} else {
		sender = mail.NewLogSender(log)
		log.Info("SMTP disabled, emails will be logged")
	}

	// Event bus and notification handler
	eventBus := event.NewInMemoryEventBus(log)
	notifier := notification.NewNotifier(userRepo, sender, cfg.App.BaseURL, log)
	eventBus.Subscribe(notifier)
	log.Info("Notification handler registered", zap.Strings("events", notifier.EventTypes()))

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, tokenRepo, jwtService, blacklist, eventBus, log)
	accountService := identityapp.NewAccountService(userRepo, log)
	contactService := identityapp.NewContactService(contactRepo, userRepo, log)
	adminService := identityapp.NewAdminService(userRepo, shopRepo, log)
	catalogService := catalogapp.NewCatalogService(categoryRepo, shopRepo, offerRepo, log)
	fetcher := pricelist.NewFetcher(cfg.Import)
	partnerService := catalogapp.NewPartnerService(shopRepo, priceListRepo, userRepo, fetcher, log)
	basketService := orderingapp.NewBasketService(orderRepo, offerRepo, log)
	orderService := orderingapp.NewOrderService(orderRepo, contactRepo, userRepo, shopRepo, eventBus, log)

	// HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	accountHandler := handler.NewAccountHandler(accountService)
	contactHandler := handler.NewContactHandler(contactService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	basketHandler := handler.NewBasketHandler(basketService)
	orderHandler := handler.NewOrderHandler(orderService)
	partnerHandler := handler.NewPartnerHandler(partnerService, orderService)
	adminHandler := handler.NewAdminHandler(adminService, orderService, partnerService)

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
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	engine.Use(middleware.CORSWithConfig(corsConfig))

	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.TokenBlacklist = blacklist
	jwtConfig.Logger = log
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(authHandler).
		Register(accountHandler).
		Register(contactHandler).
		Register(catalogHandler).
		Register(basketHandler).
		Register(orderHandler).
		Register(partnerHandler).
		Register(adminHandler).
		Setup()

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
