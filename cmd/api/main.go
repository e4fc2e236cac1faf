package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/groundops-service/internal/api/http"
	"github.com/spec-kit/groundops-service/internal/api/http/handlers"
	"github.com/spec-kit/groundops-service/internal/auth"
	"github.com/spec-kit/groundops-service/internal/config"
	"github.com/spec-kit/groundops-service/internal/events"
	"github.com/spec-kit/groundops-service/internal/observability"
	"github.com/spec-kit/groundops-service/internal/persistence"
	"github.com/spec-kit/groundops-service/internal/repository"
	"github.com/spec-kit/groundops-service/internal/service"
	"github.com/spec-kit/groundops-service/internal/worker"
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
	userRepo := repository.NewUserRepository(pool)
	flightRepo := repository.NewFlightRepository(pool)
	passengerRepo := repository.NewPassengerRepository(pool)
	bagRepo := repository.NewBagRepository(pool)
	messageRepo := repository.NewMessageRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	assignments := auth.NewAssignmentStore(redis.Client, 0)

	authService := service.NewAuthService(cfg.Auth, userRepo)
	userService := service.NewUserService(cfg.Auth, userRepo, dispatcher)
	flightService := service.NewFlightService(service.FlightDependencies{
		FlightRepo:    flightRepo,
		PassengerRepo: passengerRepo,
		BagRepo:       bagRepo,
		Assignments:   assignments,
		Dispatcher:    dispatcher,
	})
	passengerService := service.NewPassengerService(service.PassengerDependencies{
		PassengerRepo: passengerRepo,
		FlightRepo:    flightRepo,
		BagRepo:       bagRepo,
		Assignments:   assignments,
		Dispatcher:    dispatcher,
	})
	bagService := service.NewBagService(service.BagDependencies{
		BagRepo:       bagRepo,
		PassengerRepo: passengerRepo,
		FlightRepo:    flightRepo,
		Assignments:   assignments,
		Dispatcher:    dispatcher,
	})
	messageService := service.NewMessageService(messageRepo)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.SMTP)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewMiddleware(authService.TokenManager(), userRepo, cfg.Auth.CookieName)

	metrics := observability.NewMetrics("groundops")
	if cfg.Metrics.Enabled {
		go observability.ServeMetrics(ctx, cfg.Metrics.Addr, logger)
	}

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService, cfg.Auth),
		Users:          handlers.NewUsersHandler(userService),
		Flights:        handlers.NewFlightsHandler(flightService),
		Passengers:     handlers.NewPassengersHandler(passengerService),
		Bags:           handlers.NewBagsHandler(bagService),
		Messages:       handlers.NewMessagesHandler(messageService),
		Gate:           handlers.NewGateHandler(assignments, flightRepo),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)
	cancel()

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
