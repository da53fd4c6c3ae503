package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	httptransport "github.com/vcsystems/incident-service/internal/api/http"
	"github.com/vcsystems/incident-service/internal/api/http/handlers"
	"github.com/vcsystems/incident-service/internal/auth"
	"github.com/vcsystems/incident-service/internal/config"
	"github.com/vcsystems/incident-service/internal/events"
	"github.com/vcsystems/incident-service/internal/notify"
	"github.com/vcsystems/incident-service/internal/observability"
	"github.com/vcsystems/incident-service/internal/persistence"
	"github.com/vcsystems/incident-service/internal/repository"
	"github.com/vcsystems/incident-service/internal/service"
	"github.com/vcsystems/incident-service/internal/worker"
	"github.com/vcsystems/incident-service/pkg/util/maskutil"
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

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	clientRepo := repository.NewClientRepository(pool)
	faultRepo := repository.NewFaultRepository(pool)
	incidentRepo := repository.NewIncidentRepository(pool)
	sparePartRepo := repository.NewSparePartRepository(pool)
	resetRepo := repository.NewPasswordResetRepository(pool)

	dispatcher := events.NewAsyncDispatcher(logger)
	defer dispatcher.Close()

	maskMode := maskutil.ModePartial
	if cfg.App.IsProduction() {
		maskMode = maskutil.ModeHashed
	}
	gateway := notify.NewGateway(
		notify.NewRedisBroadcaster(redis.Client, cfg.Notification.SendTimeout()),
		notify.NewSMTPSender(cfg.Notification, logger),
	)
	composer := notify.NewComposer(notify.ComposerDependencies{
		Gateway:    gateway,
		ClientRepo: clientRepo,
		UserRepo:   userRepo,
		Config:     cfg.Notification,
		Logger:     logger,
		Metrics:    metrics,
		MaskMode:   maskMode,
	})
	worker.StartNotificationWorker(dispatcher, composer)

	blacklist := auth.NewTokenBlacklist(redis.Client)
	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:          userRepo,
		ClientRepo:        clientRepo,
		PasswordResetRepo: resetRepo,
		Blacklist:         blacklist,
	})
	incidentService := service.NewIncidentService(service.IncidentDependencies{
		IncidentRepo: incidentRepo,
		UserRepo:     userRepo,
		ClientRepo:   clientRepo,
		FaultRepo:    faultRepo,
		Dispatcher:   dispatcher,
		Metrics:      metrics,
	})
	sparePartService := service.NewSparePartService(sparePartRepo, incidentRepo)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo, blacklist)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Incidents:      handlers.NewIncidentsHandler(incidentService),
		SpareParts:     handlers.NewSparePartsHandler(sparePartService),
		Faults:         handlers.NewFaultsHandler(faultRepo),
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
