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

	"it-inventory/internal/config"
	"it-inventory/internal/database"
	"it-inventory/internal/logging"
	"it-inventory/internal/reports"
	"it-inventory/internal/seed"
	"it-inventory/internal/server"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

const shutdownTimeout = 15 * time.Second

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "inventory",
		Short:         "IT asset inventory and financial reporting service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP API (default)",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return serve(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Create or update the database schema and exit",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return migrate(cmd.Context())
			},
		},
		newSeedCmd(),
	)
	return cmd
}

func newSeedCmd() *cobra.Command {
	var opts seed.Options
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load a deterministic sample inventory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSeed(cmd.Context(), opts)
		},
	}
	cmd.Flags().IntVar(&opts.AssetsPerSKU, "assets", seed.DefaultAssetsPerSKU, "assets to create per SKU")
	cmd.Flags().BoolVar(&opts.Reset, "reset", false, "delete the existing inventory first")
	return cmd
}

type app struct {
	cfg *config.Config
	log *logrus.Logger
	db  *gorm.DB
}

// bootstrap loads configuration, sets up logging and opens a migrated
// database.
func bootstrap(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}

	db, err := database.Open(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		_ = database.Close(db)
		return nil, err
	}
	return &app{cfg: cfg, log: log, db: db}, nil
}

func (a *app) close() {
	if err := database.Close(a.db); err != nil {
		a.log.WithError(err).Warn("closing database")
	}
}

func migrate(ctx context.Context) error {
	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.close()
	a.log.Info("database schema is up to date")
	return nil
}

func runSeed(ctx context.Context, opts seed.Options) error {
	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	_, err = seed.Run(ctx, database.NewStore(a.db), opts, a.log)
	return err
}

func serve(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	store := database.NewStore(a.db)
	if a.cfg.AuthEnabled {
		if err := store.EnsureAdmin(ctx, a.cfg.AdminUsername, a.cfg.AdminPassword, a.log); err != nil {
			return fmt.Errorf("ensuring admin user: %w", err)
		}
	}

	opts := []reports.Option{}
	if a.cfg.ReportCacheEnabled() {
		client := redis.NewClient(&redis.Options{Addr: a.cfg.RedisAddr})
		defer client.Close()
		if err := client.Ping(ctx).Err(); err != nil {
			a.log.WithError(err).WithField("addr", a.cfg.RedisAddr).Warn("redis unavailable, report cache disabled")
		} else {
			opts = append(opts, reports.WithCache(reports.NewRedisCache(client, a.cfg.ReportCacheTTL)))
			a.log.WithField("addr", a.cfg.RedisAddr).Info("report cache enabled")
		}
	}
	reportService := reports.NewService(store, a.log, opts...)

	router := server.NewRouter(a.cfg, server.Deps{Store: store, Reports: reportService, Log: a.log})
	srv := &http.Server{
		Addr:              ":" + a.cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.WithField("addr", srv.Addr).Info("starting server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
