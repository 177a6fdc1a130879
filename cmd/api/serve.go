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

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/afritrim-api/internal/audit"
	"github.com/BruksfildServices01/afritrim-api/internal/authz"
	"github.com/BruksfildServices01/afritrim-api/internal/config"
	dbpkg "github.com/BruksfildServices01/afritrim-api/internal/db"
	billingdomain "github.com/BruksfildServices01/afritrim-api/internal/domain/billing"
	"github.com/BruksfildServices01/afritrim-api/internal/infra/gateway"
	identityinfra "github.com/BruksfildServices01/afritrim-api/internal/infra/identity"
	"github.com/BruksfildServices01/afritrim-api/internal/infra/imaging"
	"github.com/BruksfildServices01/afritrim-api/internal/infra/storage"
	"github.com/BruksfildServices01/afritrim-api/internal/logger"
	"github.com/BruksfildServices01/afritrim-api/internal/metrics"
	"github.com/BruksfildServices01/afritrim-api/internal/routes"
)

const maxImageEdge = 1600

func newServeCommand() *cobra.Command {
	var (
		migrate         bool
		shutdownTimeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(config.Load(), migrate, shutdownTimeout)
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", false, "Apply schema migrations before serving")
	cmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 15*time.Second, "Maximum time to wait for graceful shutdown")

	return cmd
}

func serve(cfg *config.Config, migrate bool, shutdownTimeout time.Duration) error {
	log := logger.New(cfg)

	// ======================================================
	// ERROR REPORTING
	// ======================================================
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
		}); err != nil {
			log.Error().Err(err).Msg("sentry init failed")
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// ======================================================
	// STORES
	// ======================================================
	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql.DB: %w", err)
	}
	defer sqlDB.Close()

	if migrate {
		if err := dbpkg.Migrate(db); err != nil {
			return err
		}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer rdb.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}

	blobs, err := storage.New(cfg.S3)
	if err != nil {
		return err
	}

	var checkout billingdomain.CheckoutGateway = gateway.Unconfigured{}
	if cfg.MPAccessToken != "" {
		mp, err := gateway.NewMercadoPago(cfg.MPAccessToken, cfg.MPCurrencyID, cfg.MPNotificationURL)
		if err != nil {
			return err
		}
		checkout = mp
	} else {
		log.Warn().Msg("MP_ACCESS_TOKEN not set, invoice checkout disabled")
	}

	enforcer, err := authz.New()
	if err != nil {
		return err
	}

	auditDispatcher := audit.NewDispatcher(audit.New(db), log)
	defer auditDispatcher.Close()

	metrics.Register()

	// ======================================================
	// HTTP
	// ======================================================
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	if cfg.SentryDSN != "" {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}

	routes.RegisterRoutes(r, routes.Deps{
		DB:       db,
		Config:   cfg,
		Log:      log,
		Audit:    auditDispatcher,
		Accounts: identityinfra.NewProvider(rdb, cfg.JWTSecret, cfg.TokenTTL),
		Enforcer: enforcer,
		Blobs:    blobs,
		Images:   imaging.NewEncoder(maxImageEdge),
		Checkout: checkout,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-quit:
	}

	log.Info().Msg("shutting down server")

	ctx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	return srv.Shutdown(ctx)
}
