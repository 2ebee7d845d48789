package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/clinic/clinic/internal/config"
	"github.com/clinic/clinic/internal/domain/dolphin"
	"github.com/clinic/clinic/internal/domain/payment"
	"github.com/clinic/clinic/internal/domain/timepoint"
	"github.com/clinic/clinic/internal/domain/video"
	"github.com/clinic/clinic/internal/platform/auth"
	"github.com/clinic/clinic/internal/platform/db"
	"github.com/clinic/clinic/internal/platform/middleware"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "clinic-server",
		Short: "Clinic data API server",
	}
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	return rootCmd
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the clinic API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

// migrationTarget picks the database URL and migrations directory for a
// migrate subcommand. --dolphin switches both the URL and the directory, so
// the clinic schema never lands in the Dolphin database (the shared version
// table would then mask the real Dolphin migrations as applied). An
// explicit --dir always wins.
func migrationTarget(cfg *config.Config, dolphinDB bool, dir string, dirSet bool) (string, string) {
	if dolphinDB {
		if !dirSet {
			dir = "./migrations/dolphin"
		}
		return cfg.DolphinDatabaseURL, dir
	}
	return cfg.DatabaseURL, dir
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	target := func(cmd *cobra.Command, cfg *config.Config) (string, string) {
		dolphinDB, _ := cmd.Flags().GetBool("dolphin")
		dir, _ := cmd.Flags().GetString("dir")
		return migrationTarget(cfg, dolphinDB, dir, cmd.Flags().Changed("dir"))
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			url, dir := target(cmd, cfg)

			ctx := context.Background()
			pool, err := db.NewPool(ctx, url, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			count, err := db.NewMigrator(pool, dir).Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			url, dir := target(cmd, cfg)

			ctx := context.Background()
			pool, err := db.NewPool(ctx, url, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			statuses, err := db.NewMigrator(pool, dir).Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}
			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}

	for _, c := range []*cobra.Command{upCmd, statusCmd} {
		c.Flags().String("dir", "./migrations", "Path to migrations directory")
		c.Flags().Bool("dolphin", false, "Target the Dolphin imaging database")
		cmd.AddCommand(c)
	}
	return cmd
}

func runServer() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	ctx := context.Background()
	clinicPool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to clinic database")
	}
	defer clinicPool.Close()

	dolphinPool := clinicPool
	if cfg.DolphinDatabaseURL != cfg.DatabaseURL {
		dolphinPool, err = db.NewPool(ctx, cfg.DolphinDatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to dolphin database")
		}
		defer dolphinPool.Close()
	}
	logger.Info().Msg("connected to databases")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	e.GET("/healthz", db.HealthHandler(clinicPool, dolphinPool))

	api := e.Group("/api")
	if cfg.AuthSecret != "" {
		api.Use(auth.JWTMiddleware([]byte(cfg.AuthSecret)))
	} else {
		logger.Warn().Msg("AUTH_SECRET is empty, running with development auth")
		api.Use(auth.DevAuthMiddleware())
	}

	// Domain services
	dolphinSvc := dolphin.NewService(
		dolphin.NewPlatformRepoPG(dolphinPool),
		dolphin.NewClinicRepoPG(clinicPool),
		dolphinPool,
	)
	paymentSvc := payment.NewService(payment.NewRepoPG(clinicPool))
	timepointSvc := timepoint.NewService(timepoint.NewRepoPG(dolphinPool))
	videoSvc := video.NewService(video.NewRepoPG(clinicPool), logger)

	dolphin.NewHandler(dolphinSvc).RegisterRoutes(api)
	payment.NewHandler(paymentSvc).RegisterRoutes(api)
	timepoint.NewHandler(timepointSvc).RegisterRoutes(api)
	video.NewHandler(videoSvc).RegisterRoutes(api)

	addr := ":" + cfg.Port
	go func() {
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
