package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/yourname/dreamcatcher/internal"
	"github.com/yourname/dreamcatcher/internal/ai"
	"github.com/yourname/dreamcatcher/internal/api"
	"github.com/yourname/dreamcatcher/internal/auth"
	"github.com/yourname/dreamcatcher/internal/config"
	"github.com/yourname/dreamcatcher/internal/storage"
)

const shutdownTimeout = 10 * time.Second

var (
	cfg    *config.Config
	logger *internal.ZapLogger
)

var rootCmd = &cobra.Command{
	Use:   "dreamcatcher",
	Short: "DreamCatcher journaling API",
	Long: `DreamCatcher serves the dream, goal, idea and sleep journal API.

Run without arguments to start the HTTP server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		logger, err = internal.NewLogger(cfg.Env, cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending Postgres schema migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.DBType != "postgres" {
			return errors.New("migrate requires STORAGE_BACKEND=postgres")
		}
		return storage.Migrate(cfg.DBDSN, logger)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func serve(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	if cfg.DBType == "postgres" {
		if err := storage.Migrate(cfg.DBDSN, logger); err != nil {
			return fmt.Errorf("failed to migrate: %w", err)
		}
	}
	repos, err := storage.NewRepositories(ctx, cfg.DBType, cfg.DBDSN, cfg.DataDir, logger)
	if err != nil {
		return fmt.Errorf("failed to init storage: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			logger.Errorf("failed to close storage: %v", err)
		}
	}()

	gen, err := ai.NewGenerator(cfg)
	if err != nil {
		return err
	}
	assistant := ai.NewAssistant(gen, cfg.AITimeout, logger)
	if !assistant.Available() {
		logger.Warnf("no %s API key configured; AI features will return fallback text", cfg.AIProvider)
	}

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	provider, err := auth.NewProvider(cfg, tokens, repos.Users, logger)
	if err != nil {
		return err
	}

	app := api.NewApp(logger, repos, assistant, tokens)
	router := api.NewRouter(app, provider, api.RouterOptions{
		CORSOrigins:    cfg.CORSOrigins,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Server running on %s (storage=%s, ai=%s)", cfg.HTTPAddr, cfg.DBType, cfg.AIProvider)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	logger.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
