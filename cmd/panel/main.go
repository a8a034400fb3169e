package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/membresiasgt/panel-go/internal/config"
	"github.com/membresiasgt/panel-go/internal/domain"
	"github.com/membresiasgt/panel-go/internal/handler"
	"github.com/membresiasgt/panel-go/internal/infra/apiclient"
	"github.com/membresiasgt/panel-go/internal/infra/cache"
	"github.com/membresiasgt/panel-go/internal/infra/health"
	"github.com/membresiasgt/panel-go/internal/infra/observability"
	"github.com/membresiasgt/panel-go/internal/infra/resilience"
	"github.com/membresiasgt/panel-go/internal/service"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	shutdownTracer, err := observability.InitTracer(cfg.OTLPEndpoint, "membresias-panel")
	if err != nil {
		logger.Warn("tracing disabled", zap.Error(err))
		shutdownTracer = func(context.Context) error { return nil }
	}

	metrics := observability.NewMetrics()

	resCfg := resilience.Config{
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
		MaxConcurrency: cfg.MaxConcurrency,
	}
	client := apiclient.NewClient(
		&http.Client{Timeout: cfg.HTTPTimeout},
		cfg.APIBaseURL,
		cfg.HealthURL,
		resilience.NewCircuitBreaker("membership-api"),
		resCfg,
		logger,
	)

	monitor := health.NewMonitor(client, cfg.HealthTimeout, cfg.HealthInterval, metrics, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go monitor.Run(ctx)

	router := handler.NewRouter(handler.Deps{
		Memberships:   service.NewMembershipService(client, metrics, logger),
		Recharges:     service.NewRechargeService(client, metrics, logger),
		Reports:       service.NewReportService(client, client, cache.New[*domain.HeadlineStats](cfg.StatsCacheTTL), metrics, logger),
		Notifications: service.NewNotificationService(client, metrics, logger),
		Monitor:       monitor,
		Flashes:       handler.NewFlashStore(cache.New[domain.Flash](cfg.FlashTTL)),
		Metrics:       metrics,
		Logger:        logger,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * time.Minute, // export streams can be slow behind a cold upstream
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("panel listening",
			zap.Int("port", cfg.Port),
			zap.String("upstream", cfg.APIBaseURL),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		logger.Warn("tracer shutdown failed", zap.Error(err))
	}

	logger.Info("bye")
}
