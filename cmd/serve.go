package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/gobu/internal/adapters/discord"
	"github.com/okian/gobu/internal/adapters/http/api"
	"github.com/okian/gobu/internal/adapters/http/swagger"
	"github.com/okian/gobu/internal/adapters/repository"
	service "github.com/okian/gobu/internal/app"
	"github.com/okian/gobu/internal/config"
	"github.com/okian/gobu/internal/domain/cooldown"
	"github.com/okian/gobu/pkg/logger"
	"github.com/okian/gobu/pkg/metrics"
	"github.com/spf13/cobra"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 10 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	systemMetricsInterval     = 10 * time.Second
	serviceMetricsInterval    = 5 * time.Second
	nanosecondsPerMillisecond = 1e6
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Discord gateway and the HTTP API",
	Long: `Load the dataset, then serve the HTTP API on addr and, when a
discord_token is configured, answer commands on Discord. Stops on SIGINT
or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := setup(ctx)
	if err != nil {
		return err
	}
	log := logger.Get()

	svc := newService(cfg)
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("failed to start service: %w", err)
	}
	defer func() {
		if err := svc.Stop(context.Background()); err != nil {
			log.Error(ctx, "service stop failed", logger.Error(err))
		}
	}()

	go startSystemMetricsUpdater(ctx)
	go startServiceMetricsUpdater(ctx, svc)

	var srv *http.Server
	if cfg.Addr != "" {
		srv, err = newHTTPServer(ctx, cfg, svc)
		if err != nil {
			return err
		}
		go func() {
			log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error(ctx, "HTTP server failed", logger.Error(err))
				stop()
			}
		}()
	}

	if cfg.DiscordToken != "" {
		gw, err := newGateway(cfg, svc)
		if err != nil {
			return err
		}
		svc.SetResponder(gw)
		if err := openGateway(ctx, gw, srv); err != nil {
			return err
		}
		defer func() {
			if err := gw.Close(); err != nil {
				log.Warn(ctx, "discord close failed", logger.Error(err))
			}
		}()
		log.Info(ctx, "discord gateway connected", logger.String("prefix", cfg.CommandPrefix))
	}

	<-ctx.Done()
	log.Info(ctx, "shutting down...")

	shutdownHTTP(ctx, srv)
	log.Info(ctx, "server stopped")
	return nil
}

type gatewayOpener interface {
	Open(ctx context.Context) error
}

// openGateway connects gw. On failure the already running HTTP server is
// shut down before the error is returned.
func openGateway(ctx context.Context, gw gatewayOpener, srv *http.Server) error {
	if err := gw.Open(ctx); err != nil {
		shutdownHTTP(ctx, srv)
		return fmt.Errorf("failed to open discord gateway: %w", err)
	}
	return nil
}

func shutdownHTTP(ctx context.Context, srv *http.Server) {
	if srv == nil {
		return
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Get().Error(ctx, "server shutdown failed", logger.Error(err))
	}
}

// setup loads configuration (defaults -> optional file -> env) and
// initializes logging from it.
func setup(ctx context.Context, opts ...logger.Option) (*config.Config, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	opts = append([]logger.Option{logger.WithFormat(cfg.LogFormat)}, opts...)
	if err := logger.Init(opts...); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}
	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
	return cfg, nil
}

func newService(cfg *config.Config) *service.Service {
	store := repository.NewJSONStore(
		repository.WithPetsPath(cfg.PetsPath),
		repository.WithTalentsPath(cfg.TalentsPath),
	)
	return service.New(
		service.WithLogger(logger.Get().Named("service")),
		service.WithStore(store),
		service.WithWorkerCount(cfg.WorkerCount),
		service.WithQueueSize(cfg.QueueSize),
		service.WithPrefix(cfg.CommandPrefix),
		service.WithListDelimiter(cfg.ListDelimiter),
	)
}

func newHTTPServer(ctx context.Context, cfg *config.Config, svc *service.Service) (*http.Server, error) {
	mux := http.NewServeMux()
	swagger.Register(ctx, mux)

	apiServer, err := api.NewServer(svc, svc, api.WithCacheItems(cfg.ResponseCacheItems))
	if err != nil {
		return nil, fmt.Errorf("failed to create API server: %w", err)
	}
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	srv.RegisterOnShutdown(apiServer.Close)
	return srv, nil
}

func newGateway(cfg *config.Config, svc *service.Service) (*discord.Gateway, error) {
	limiter := cooldown.New(
		cooldown.WithRate(cfg.MentionCooldownRate),
		cooldown.WithWindow(time.Duration(cfg.MentionCooldownSeconds)*time.Second),
		cooldown.WithMaxKeys(cfg.CooldownMaxGuilds),
	)
	gw, err := discord.New(cfg.DiscordToken, svc,
		discord.WithMentionLimiter(limiter),
		discord.WithPagerSessions(cfg.PagerSessions),
		discord.WithLogger(logger.Get().Named("discord")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord gateway: %w", err)
	}
	return gw, nil
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// startServiceMetricsUpdater starts a background goroutine that refreshes
// the queue gauges from service stats.
func startServiceMetricsUpdater(ctx context.Context, svc *service.Service) {
	ticker := time.NewTicker(serviceMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateServiceMetrics(svc)
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}

// updateServiceMetrics updates service-level metrics.
func updateServiceMetrics(svc *service.Service) {
	stats := svc.GetStats()
	if queueLen, ok := stats["queueLength"].(int); ok {
		metrics.UpdateQueueSize(queueLen)
	}
	if workerCount, ok := stats["workerCount"].(int); ok {
		metrics.UpdateWorkerActiveCount(workerCount)
	}
}
