package main

import (
	"context"
	"log"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/ridgelinepark/backend/api/handler"
	"github.com/ridgelinepark/backend/internal/auth"
	"github.com/ridgelinepark/backend/internal/config"
	"github.com/ridgelinepark/backend/internal/infrastructure/buffer"
	"github.com/ridgelinepark/backend/internal/infrastructure/monitor"
	"github.com/ridgelinepark/backend/internal/infrastructure/payments"
	pgInfra "github.com/ridgelinepark/backend/internal/infrastructure/postgres"
	redisInfra "github.com/ridgelinepark/backend/internal/infrastructure/redis"
	"github.com/ridgelinepark/backend/internal/middleware"
	"github.com/ridgelinepark/backend/internal/router"
	"github.com/ridgelinepark/backend/internal/services"
	"github.com/ridgelinepark/backend/internal/services/lifecycle"
	"github.com/ridgelinepark/backend/pkg/httpcontext"
	"github.com/ridgelinepark/backend/pkg/logger"
	"github.com/ridgelinepark/backend/repository/postgres"
	redisRepo "github.com/ridgelinepark/backend/repository/redis"
	"github.com/ridgelinepark/backend/usecase/authgate"
	bookingUC "github.com/ridgelinepark/backend/usecase/booking"
	catalogUC "github.com/ridgelinepark/backend/usecase/catalog"
	dashboardUC "github.com/ridgelinepark/backend/usecase/dashboard"
	directoryUC "github.com/ridgelinepark/backend/usecase/directory"
	promoUC "github.com/ridgelinepark/backend/usecase/promo"
	sessionUC "github.com/ridgelinepark/backend/usecase/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	redemptionBuffer, err := buffer.Open(cfg.Buffer.Path, "redemptions")
	if err != nil {
		zapLogger.Fatal("failed to open redemption buffer", zap.Error(err))
	}
	manager.Register("redemption_buffer", func(ctx context.Context) error {
		return redemptionBuffer.Close()
	})

	mon := monitor.New(pool, redisClient, redemptionBuffer, cfg.Buffer.SyncInterval, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	adminRepo := postgres.NewAdminRepository(pool)
	promoRepo := postgres.NewPromoRepository(pool)
	bookingRepo := postgres.NewBookingRepository(pool)
	activityRepo := postgres.NewActivityRepository(pool)
	redemptionRepo := postgres.NewRedemptionRepository(pool)
	sessionRepo := redisRepo.NewSessionRepository(redisClient, cfg.JWT.TokenTTL)

	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TokenTTL)
	verifier := auth.NewVerifier(tokens, sessionRepo)

	paymentsClient := payments.NewClient(payments.Config{
		APIKey:        cfg.Stripe.SecretKey,
		WebhookSecret: cfg.Stripe.WebhookSecret,
		SuccessURL:    cfg.Stripe.SuccessURL,
		CancelURL:     cfg.Stripe.CancelURL,
		Currency:      cfg.Stripe.Currency,
	}, zapLogger)

	redemptionProcessor := services.NewRedemptionProcessor(
		redemptionBuffer,
		mon,
		redemptionRepo,
		zapLogger,
		services.ProcessorConfig{
			Interval:   cfg.Buffer.SyncInterval,
			BatchSize:  cfg.Buffer.BatchSize,
			MaxRetries: cfg.Buffer.MaxRetry,
		},
	)
	redemptionProcessor.Start()
	manager.Register("redemption_processor", func(ctx context.Context) error {
		redemptionProcessor.Stop(ctx)
		return nil
	})

	gate := authgate.New(verifier, adminRepo, zapLogger)
	evaluator := promoUC.NewEvaluator(promoRepo, zapLogger)

	sessionUseCase := sessionUC.New(adminRepo, sessionRepo, tokens, zapLogger)
	catalogUseCase := catalogUC.New(activityRepo, zapLogger)
	bookingUseCase := bookingUC.New(
		bookingRepo,
		activityRepo,
		evaluator,
		paymentsClient,
		services.NewRedemptionBridge(redemptionProcessor),
		zapLogger,
	)
	promoManager := promoUC.NewManager(promoRepo, zapLogger)
	dashboardUseCase := dashboardUC.New(bookingRepo, promoRepo, adminRepo, zapLogger)
	directoryUseCase := directoryUC.New(adminRepo, zapLogger)

	sweeper := services.NewBookingSweeper(bookingUseCase, cfg.Sweeper.Schedule, cfg.Sweeper.MaxPendingAge, zapLogger)
	sweeper.Start()
	manager.Register("booking_sweeper", func(ctx context.Context) error {
		sweeper.Stop(ctx)
		return nil
	})

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)
	adminGate := middleware.NewAdminGate(gate, ctxAdapter, zapLogger)

	handlers := router.Handlers{
		Auth:      apiHandler.NewAuthHandler(sessionUseCase, ctxAdapter, zapLogger),
		Activity:  apiHandler.NewActivityHandler(catalogUseCase, ctxAdapter, zapLogger),
		Booking:   apiHandler.NewBookingHandler(bookingUseCase, ctxAdapter, zapLogger),
		Promo:     apiHandler.NewPromoHandler(evaluator, promoManager, ctxAdapter, zapLogger),
		Dashboard: apiHandler.NewDashboardHandler(dashboardUseCase, ctxAdapter, zapLogger),
		Admin:     apiHandler.NewAdminHandler(directoryUseCase, ctxAdapter, zapLogger),
		Webhook:   apiHandler.NewWebhookHandler(paymentsClient, bookingUseCase, ctxAdapter, zapLogger),
		Health:    apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	r := router.New(handlers, adminGate)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
