package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/tiffin-service/internal/api/http"
	"github.com/spec-kit/tiffin-service/internal/api/http/handlers"
	"github.com/spec-kit/tiffin-service/internal/auth"
	"github.com/spec-kit/tiffin-service/internal/config"
	"github.com/spec-kit/tiffin-service/internal/events"
	"github.com/spec-kit/tiffin-service/internal/guard"
	"github.com/spec-kit/tiffin-service/internal/observability"
	"github.com/spec-kit/tiffin-service/internal/persistence"
	"github.com/spec-kit/tiffin-service/internal/repository"
	"github.com/spec-kit/tiffin-service/internal/service"
	"github.com/spec-kit/tiffin-service/internal/session"
	"github.com/spec-kit/tiffin-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	accountRepo := repository.NewAccountRepository(pool)
	vendorRepo := repository.NewVendorRepository(pool)
	packageRepo := repository.NewMealPackageRepository(pool)
	subscriptionRepo := repository.NewSubscriptionRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	resetRepo := repository.NewPasswordResetRepository(pool)

	sessions := session.NewRedisStore(redis.Client, cfg.Session.TTL())
	expiry := auth.NewExpiryChecker()
	routeGuard := guard.New(guard.DefaultRules(), expiry.IsExpired)

	dispatcher := events.NewInMemoryDispatcher()
	notifications := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	notifications.RegisterHandlers()

	expiryWorker := worker.NewExpiryWorker(sessions, expiry.IsExpired, dispatcher, logger, cfg.Guard.PollInterval())
	expiryWorker.Start(ctx)
	defer expiryWorker.Stop()

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		AccountRepo:       accountRepo,
		VendorRepo:        vendorRepo,
		PasswordResetRepo: resetRepo,
		Sessions:          sessions,
		Tracker:           expiryWorker,
	})
	catalogService := service.NewCatalogService(vendorRepo, packageRepo, dispatcher)
	subscriptionService := service.NewSubscriptionService(subscriptionRepo, packageRepo, orderRepo, dispatcher)
	orderService := service.NewOrderService(orderRepo, vendorRepo, dispatcher)
	adminService := service.NewAdminService(accountRepo, vendorRepo)

	metrics := observability.NewMetrics()
	authMiddleware := auth.NewMiddleware(authService.TokenManager(), accountRepo)
	guardMiddleware := httptransport.NewGuardMiddleware(routeGuard, sessions, expiryWorker, metrics, logger, cfg.Session.CookieName)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService, cfg.Session.CookieName),
		Catalog:        handlers.NewCatalogHandler(catalogService),
		Subscriptions:  handlers.NewSubscriptionsHandler(subscriptionService),
		Orders:         handlers.NewOrdersHandler(orderService),
		Admin:          handlers.NewAdminHandler(adminService),
		Guard:          guardMiddleware,
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
