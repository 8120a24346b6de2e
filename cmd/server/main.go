package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v3"

	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/mail"
	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/media"
	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/spoonacular"
)

func main() {
	logging.Setup()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newCommand().Run(ctx, os.Args); err != nil {
		slog.Error("foodhub exited", "error", err)
		os.Exit(1)
	}
}

func newCommand() *cli.Command {
	configFlag := &cli.StringFlag{
		Name:    "config",
		Usage:   "YAML file supplying settings missing from the environment",
		Sources: cli.EnvVars("CONFIG_FILE"),
	}

	return &cli.Command{
		Name:           "foodhub",
		Usage:          "FoodHub recipe sharing API",
		DefaultCommand: "serve",
		Flags:          []cli.Flag{configFlag},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Run migrations and start the HTTP server",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg, err := loadConfig(cmd)
					if err != nil {
						return err
					}
					return serve(ctx, cfg)
				},
			},
			{
				Name:  "migrate",
				Usage: "Apply database migrations and exit",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg, err := loadConfig(cmd)
					if err != nil {
						return err
					}
					if err := database.Connect(cfg); err != nil {
						return err
					}
					defer database.Close()
					if err := database.Migrate(ctx); err != nil {
						return err
					}
					slog.Info("migrations applied")
					return nil
				},
			},
		},
	}
}

func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func serve(ctx context.Context, cfg *config.Config) error {
	// Database
	if err := database.Connect(cfg); err != nil {
		return err
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}()
	if err := database.Migrate(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	logging.WithDatabase(pgLogHandler)

	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cfg.LogRetentionDays, cleanupDone)

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		}
	}

	// Collaborators
	uploader, err := media.NewS3Uploader(ctx, cfg)
	if err != nil {
		return fmt.Errorf("media uploader: %w", err)
	}
	mailer, err := mail.NewSMTPSender(cfg)
	if err != nil {
		return fmt.Errorf("mail sender: %w", err)
	}

	var rdb *redis.Client
	var suggestionCache spoonacular.Cache
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		rdb = redis.NewClient(opts)
		defer rdb.Close()
		suggestionCache = spoonacular.NewRedisCache(rdb)
	}
	suggestionClient := spoonacular.New(spoonacular.Options{
		BaseURL:  cfg.SpoonacularURL,
		APIKey:   cfg.SpoonacularKey,
		RPS:      cfg.SpoonacularRPS,
		CacheTTL: cfg.SpoonacularCacheTTL,
		Cache:    suggestionCache,
	})

	// Repositories
	users := repository.NewGormUserRepository(database.DB)
	refreshTokens := repository.NewGormRefreshTokenRepository(database.DB)
	recipes := repository.NewGormRecipeRepository(database.DB)
	saves := repository.NewGormSaveRepository(database.DB)
	posters := repository.NewGormPosterRepository(database.DB)
	articles := repository.NewGormArticleRepository(database.DB)

	// Services
	tokenService := services.NewTokenService(cfg)
	authService := services.NewAuthService(users, refreshTokens, tokenService, mailer, uploader, cfg)
	listingService := services.NewListingService(recipes, users, saves)
	saveService := services.NewSaveService(users, recipes, saves, listingService)
	recipeService := services.NewRecipeService(recipes, posters, uploader, listingService)
	posterService := services.NewPosterService(posters, uploader)
	articleService := services.NewArticleService(articles, uploader)
	suggestionService := services.NewSuggestionService(suggestionClient)

	// Fiber app
	app := routes.NewApp(cfg)
	routes.Setup(app, cfg, routes.Handlers{
		Auth:       handlers.NewAuthHandler(authService),
		User:       handlers.NewUserHandler(authService),
		Recipe:     handlers.NewRecipeHandler(listingService, saveService, recipeService),
		Poster:     handlers.NewPosterHandler(posterService, recipeService),
		Article:    handlers.NewArticleHandler(articleService),
		Suggestion: handlers.NewSuggestionHandler(suggestionService),
		Health:     handlers.NewHealthHandler(database.PingContext, rdb),
	})

	listenErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.Port)
		listenErr <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-listenErr:
		return fmt.Errorf("server failed to start: %w", err)
	case <-ctx.Done():
	}
	slog.Info("shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	slog.Info("server stopped")
	return nil
}
