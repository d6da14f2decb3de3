package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"examgateway/adapters"
	"examgateway/adapters/examredis"
	"examgateway/domain"
	"examgateway/handlers"
	"examgateway/interfaces"
	"examgateway/metrics"
	"examgateway/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
)

func main() {
	// Initialize logger
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.WithPrefix(logger, "ts", log.DefaultTimestampUTC)
	logger = log.WithPrefix(logger, "caller", log.DefaultCaller)

	level.Info(logger).Log("msg", "Starting exam gateway")

	// Load configuration
	config, err := LoadConfig()
	if err != nil {
		level.Error(logger).Log("msg", "Failed to load configuration", "err", err)
		os.Exit(1)
	}
	level.Info(logger).Log(
		"msg", "Configuration loaded",
		"service_port_http", config.HTTPPort,
		"backends", len(config.Backends),
		"redis_addr", config.RedisAddr,
	)

	metrics.Init()

	// Create backend registry, optionally persisted in Redis
	var registry interfaces.Registry
	{
		registry = service.NewRegistry()
		if config.RedisAddr != "" {
			redisClient, err := examredis.NewRedisUniversalClient(config.RedisAddr)
			if err != nil {
				level.Error(logger).Log("msg", "Failed to create Redis client", "err", err)
				os.Exit(1)
			}

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := redisClient.Ping(ctx).Err(); err != nil {
				cancel()
				level.Error(logger).Log("msg", "Failed to connect to Redis", "err", err)
				os.Exit(1)
			}
			level.Info(logger).Log("msg", "Connected to Redis")

			cache := examredis.NewCache[domain.Backend](redisClient, "backend", service.MarshalBackend, service.UnmarshalBackend)
			persistent := service.NewPersistentRegistry(registry, cache, logger)
			if err := persistent.LoadAll(ctx); err != nil {
				cancel()
				level.Error(logger).Log("msg", "Failed to restore registry from Redis", "err", err)
				os.Exit(1)
			}
			cancel()
			registry = persistent
		}

		for _, b := range config.Backends {
			if err := registry.Register(b); err != nil {
				level.Error(logger).Log("msg", "Failed to register configured backend", "backend", b.ID, "err", err)
				os.Exit(1)
			}
		}
	}

	timeProvider := service.NewTimeProvider(func() time.Time { return time.Now().UTC() })

	// Create health monitor (first poll pass runs before we start serving)
	monitor := service.NewHealthMonitor(
		registry,
		adapters.NewMetricsHTTP(adapters.DefaultPollClient()),
		config.PollInterval,
		config.PollTimeout,
		config.FailureThreshold,
		timeProvider,
		logger,
	)
	defer monitor.Close()

	// Create session table and routing core
	table := service.NewSessionTable(registry, timeProvider, config.IdleWindow, config.SweepInterval, logger)
	defer table.Close()

	selector := service.NewSelector(registry, monitor)
	forwarder := adapters.NewForwarderHTTP(&http.Client{}, config.ForwardTimeout)
	gateway := service.NewGateway(registry, selector, table, monitor, forwarder, timeProvider, logger)

	// Create HTTP server (Echo)
	var e *echo.Echo
	{
		e = echo.New()
		e.HideBanner = true
		service.RegisterErrorHandler(e, logger)
		handlers.NewHTTPServer(gateway, registry, monitor, table, logger).RegisterRoutes(e)
	}

	// Setup graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%d", config.HTTPPort)
		level.Info(logger).Log("msg", "Starting HTTP server", "addr", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			level.Error(logger).Log("msg", "HTTP server error", "err", err)
		}
	}()

	// Wait for interrupt signal
	<-quit
	level.Info(logger).Log("msg", "Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		level.Error(logger).Log("msg", "Error during server shutdown", "err", err)
	}

	level.Info(logger).Log("msg", "Server stopped")
}
