package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/leonexus/site/api"
	"github.com/leonexus/site/catalog"
	"github.com/leonexus/site/config"
	"github.com/leonexus/site/db"
	h "github.com/leonexus/site/handlers"
	"github.com/leonexus/site/session"
)

const sweepInterval = 15 * time.Minute

var (
	verbose bool
	log     *zap.Logger
	level   = zap.NewAtomicLevelAt(zapcore.InfoLevel)
)

// applyLogLevel raises or lowers the global level from config. --verbose
// always wins.
func applyLogLevel(name string) {
	if verbose {
		return
	}
	l, err := zapcore.ParseLevel(name)
	if err != nil {
		zap.S().Warnf("[CONFIG] Unknown log level %q, keeping %s", name, level.Level())
		return
	}
	level.SetLevel(l)
}

var rootCmd = &cobra.Command{
	Use:   "leonexus",
	Short: "Leonexus car marketplace web site",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			level.SetLevel(zapcore.DebugLevel)
		}
		cfg.Level = level
		var err error
		log, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		zap.ReplaceGlobals(log)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that the marketplace backend is reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.APITimeout)
		defer cancel()
		if err := api.New(cfg.APIBaseURL, cfg.APITimeout).Ping(ctx); err != nil {
			return fmt.Errorf("backend %s unreachable: %w", cfg.APIBaseURL, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "backend %s ok\n", cfg.APIBaseURL)
		return nil
	},
}

var pruneCmd = &cobra.Command{
	Use:   "prune-sessions",
	Short: "Delete expired sessions from the session database",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := db.Init(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("error initializing database: %w", err)
		}
		defer db.Close()

		n, err := session.NewStore(db.Get()).DeleteExpired(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "removed %d expired sessions\n", n)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(pruneCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serve() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	applyLogLevel(cfg.LogLevel)

	// Initialize database
	if err := db.Init(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("error initializing database: %w", err)
	}
	defer db.Close()

	client := api.New(cfg.APIBaseURL, cfg.APITimeout)

	// Initialize catalog caches
	cat, err := catalog.New(client)
	if err != nil {
		return fmt.Errorf("failed to initialize catalog cache: %w", err)
	}
	defer cat.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sessions := session.NewStore(db.Get())
	sessions.StartSweeper(ctx, sweepInterval)

	app := fiber.New(fiber.Config{
		ErrorHandler: h.CustomErrorHandler,
		BodyLimit:    cfg.UploadLimit,
		ReadTimeout:  30 * time.Second, // Prevent long-running requests
		WriteTimeout: 60 * time.Second, // Uploads are forwarded to the backend before responding
	})

	app.Use(recover.New())

	// Add rate limiter
	if cfg.Dev {
		zap.S().Infof("[SERVER] Development mode, rate limiter disabled")
	} else {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimitMax,
			Expiration: cfg.RateLimitExp,
		}))
	}

	// Add logger middleware
	app.Use(logger.New())

	// Static files and utility
	app.Static("/", "./static")
	app.Get("/.well-known/appspecific/com.chrome.devtools.json", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	h.New(cfg, client, cat, sessions).Register(app)

	go func() {
		<-ctx.Done()
		zap.S().Infof("[SERVER] Shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			zap.S().Errorf("[SERVER] Shutdown failed: %v", err)
		}
	}()

	zap.S().Infof("[SERVER] Listening on :%s, backend %s", cfg.Port, cfg.APIBaseURL)
	return app.Listen(":" + cfg.Port)
}
