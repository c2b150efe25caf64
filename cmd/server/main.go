package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blogapi/internal/config"
	"blogapi/internal/handlers"
	"blogapi/internal/repository"
	"blogapi/internal/services"
	"blogapi/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// A missing .env is fine; the environment and defaults still apply.
	_ = godotenv.Load()

	if err := Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func Run(ctx context.Context) error {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.AppEnv == "production" && cfg.JWTSecret == config.DefaultJWTSecret {
		return errors.New("JWT_SECRET must be set in production")
	}
	if cfg.TokenTTLMinutes <= 0 {
		return fmt.Errorf("TOKEN_TTL_MINUTES must be positive, got %d", cfg.TokenTTLMinutes)
	}

	// 2. Setup Logger
	var handler slog.Handler
	if cfg.AppEnv == "production" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	// 3. Initialize Database
	db, err := repository.InitDB(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	// 4. Run Migrations
	if repository.IsPostgres(cfg.DatabaseURL) {
		logger.Info("Running database migrations...")
		if err := repository.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	} else if err := repository.AutoMigrate(db); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	// 5. Initialize Redis. Without it tokens simply live until they expire.
	var denylist services.TokenDenylist
	rdb, err := repository.InitRedis(cfg.RedisURL, cfg.RedisPassword, 0)
	if err != nil {
		logger.Warn("Failed to connect to Redis, logout disabled", "error", err)
	} else {
		defer rdb.Close()
		denylist = repository.NewTokenDenylist(rdb)
	}

	// 6. Initialize Services
	userStore := repository.NewUserStore(db)
	postStore := repository.NewPostStore(db)
	voteStore := repository.NewVoteStore(db)

	tokenService := services.NewTokenService(cfg.JWTSecret, time.Duration(cfg.TokenTTLMinutes)*time.Minute)
	auditService := services.NewAuditService(db, logger)
	authService := services.NewAuthService(userStore, utils.BcryptHasher{}, tokenService, denylist, logger)
	postService := services.NewPostService(postStore, voteStore)
	voteService := services.NewVoteService(postStore, voteStore)

	// 7. Initialize Handler
	h := handlers.NewHandler(cfg, logger, authService, postService, voteService, auditService)

	// 8. Setup Router
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := h.SetupRouter()

	// 9. Start Server with Graceful Shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Background Context for workers
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	go auditService.Start(workerCtx)

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		logger.Info("Shutting down server...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	workerCancel()
	// Give the audit worker a moment to finish its current write.
	time.Sleep(100 * time.Millisecond)

	logger.Info("Server exiting")
	return nil
}
