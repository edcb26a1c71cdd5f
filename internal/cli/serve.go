package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"

	"github.com/haisi/eaf-movierental/internal/config"
	"github.com/haisi/eaf-movierental/internal/database"
	"github.com/haisi/eaf-movierental/internal/handler"
	"github.com/haisi/eaf-movierental/internal/middleware"
	"github.com/haisi/eaf-movierental/internal/queue"
	"github.com/haisi/eaf-movierental/internal/repository"
	"github.com/haisi/eaf-movierental/internal/router"
	"github.com/haisi/eaf-movierental/internal/service"
)

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	var noEvents bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

The schema is applied on start.  Rental events go to RabbitMQ unless
--no-events is set; a broker that is down only costs the events.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, rootOpts.logger(cmd.ErrOrStderr()), noEvents)
		},
	}
	cmd.Flags().BoolVar(&noEvents, "no-events", false, "do not publish rental events")
	return cmd
}

func runServe(cmd *cobra.Command, log *slog.Logger, noEvents bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	if err := database.Migrate(ctx, db, cfg.DBDriver); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	stores := repository.New(db)
	var events service.EventPublisher = service.NopPublisher{}
	if !noEvents {
		events = queue.NewPublisher(cfg.RabbitMQURL, log)
	}
	rentals := service.NewRentalService(stores.Movies, stores.Users, stores.Rentals, events, log)

	var mw []echo.MiddlewareFunc
	if cfg.RateLimit.Enabled || cfg.Cache.Enabled {
		rdb := config.NewRedisClient(cfg.Redis)
		if rdb == nil {
			log.Warn("redis unavailable, rate limit and response cache disabled", "addr", cfg.Redis.Addr)
		} else {
			defer rdb.Close()
			mw = append(mw,
				middleware.NewTokenBucket(cfg.RateLimit, rdb, log),
				middleware.NewRedisCache(cfg.Cache, rdb, log))
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			log.Info("http", "method", v.Method, "uri", v.URI, "status", v.Status,
				"latency", v.Latency, "req_id", v.RequestID)
			return nil
		},
	}))
	router.RegisterRoutes(e, handler.New(stores, rentals, log), mw...)

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", addr, "env", cfg.Env, "driver", cfg.DBDriver)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Info("shutting down")
	return e.Shutdown(shutdownCtx)
}
