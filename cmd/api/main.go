package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/helpdesk-service/internal/api/http"
	"github.com/spec-kit/helpdesk-service/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/cache"
	"github.com/spec-kit/helpdesk-service/internal/classifier"
	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/observability"
	"github.com/spec-kit/helpdesk-service/internal/persistence"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	"github.com/spec-kit/helpdesk-service/internal/seed"
	"github.com/spec-kit/helpdesk-service/internal/service"
	"github.com/spec-kit/helpdesk-service/internal/worker"
)

type repositories struct {
	users        repository.UserRepository
	departments  repository.DepartmentRepository
	tickets      repository.TicketRepository
	dictionaries repository.DictionaryRepository
}

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

	if pg.Enabled() && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	repos := newRepositories(pg)
	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	tokenizer := classifier.NewTokenizer(classifier.WithUnicodeComposition(cfg.Classifier.ComposeUnicode))
	engine := classifier.New(tokenizer)

	dictionaryService := service.NewDictionaryService(service.DictionaryDependencies{
		Classifier: engine,
		Store:      repos.dictionaries,
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger,
	})
	if err := dictionaryService.Load(ctx); err != nil {
		logger.Fatal("failed to load dictionaries", zap.Error(err))
	}

	authService := service.NewAuthService(cfg.Auth, repos.users, logger)
	departmentService := service.NewDepartmentService(repos.departments, logger)
	analysisService := service.NewAnalysisService(service.AnalysisDependencies{
		Classifier:     engine,
		Cache:          cache.NewRedisTagCache(redis.Client, cfg.Classifier.CacheTTL()),
		ComposeUnicode: cfg.Classifier.ComposeUnicode,
		Metrics:        metrics,
		Logger:         logger,
	})

	lastID, err := repos.tickets.MaxID(ctx)
	if err != nil {
		logger.Fatal("failed to read ticket sequence", zap.Error(err))
	}
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:     repos.tickets,
		UserRepo:       repos.users,
		DepartmentRepo: repos.departments,
		Classifier:     engine,
		IDs:            repository.NewSequence(lastID),
		Dispatcher:     dispatcher,
		Logger:         logger,
	})

	worker.StartNotificationWorker(dispatcher, logger, cfg.Notification)

	if cfg.Classifier.SeedFile != "" {
		file, err := seed.Load(cfg.Classifier.SeedFile)
		if err != nil {
			logger.Fatal("failed to load seed file", zap.Error(err))
		}
		if _, err := worker.ApplySeed(ctx, file, departmentService, dictionaryService, logger); err != nil {
			logger.Fatal("failed to apply seed file", zap.Error(err))
		}
	}

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(handlers.HealthDependencies{
			ServiceName: cfg.App.Name,
			Version:     cfg.App.Version,
			Postgres:    pg,
			Redis:       redis,
			Classifier:  engine,
			Metrics:     metrics,
		}),
		Users:          handlers.NewUsersHandler(authService),
		Analysis:       handlers.NewAnalysisHandler(analysisService),
		Dictionaries:   handlers.NewDictionariesHandler(dictionaryService, engine),
		Departments:    handlers.NewDepartmentsHandler(departmentService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager(), repos.users),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func newRepositories(pg *persistence.Postgres) repositories {
	if !pg.Enabled() {
		return repositories{
			users:        repository.NewMemoryUserRepository(),
			departments:  repository.NewMemoryDepartmentRepository(),
			tickets:      repository.NewMemoryTicketRepository(),
			dictionaries: repository.NewMemoryDictionaryRepository(),
		}
	}
	pool := pg.PoolHandle()
	return repositories{
		users:        repository.NewUserRepository(pool),
		departments:  repository.NewDepartmentRepository(pool),
		tickets:      repository.NewTicketRepository(pool),
		dictionaries: repository.NewDictionaryRepository(pool),
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
