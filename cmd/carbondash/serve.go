package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/carbondash/carbondash"
	httpAdapter "github.com/carbondash/carbondash/internal/adapters/http"
	"github.com/carbondash/carbondash/internal/adapters/memory"
	redisAdapter "github.com/carbondash/carbondash/internal/adapters/redis"
	"github.com/carbondash/carbondash/internal/config"
	"github.com/carbondash/carbondash/internal/logging"
	"github.com/carbondash/carbondash/internal/observability"
	"github.com/carbondash/carbondash/pkg/ports"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard HTTP server",
	Long: `Starts the carbondash server, exposing the dashboard UI, the JSON API,
Prometheus metrics, and a server-sent events stream for live reloads.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runServe(cmd); err != nil {
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "", "Port to listen on (overrides config)")
	serveCmd.Flags().String("host", "", "Host to bind (overrides config)")
	serveCmd.Flags().Bool("log-json", false, "Emit logs as JSON instead of text")
}

func runServe(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Flags win over config file and environment.
	if cmd.Flags().Changed("data") {
		cfg.DataDir, _ = cmd.Flags().GetString("data")
	}
	if cmd.Flags().Changed("host") {
		cfg.Host, _ = cmd.Flags().GetString("host")
	}
	if port, _ := cmd.Flags().GetString("port"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid port %q: %w", port, err)
		}
		cfg.Port = p
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := cfg.Level()
	if err != nil {
		return err
	}
	logger := logging.New(level)
	if jsonLogs, _ := cmd.Flags().GetBool("log-json"); jsonLogs {
		logger = logging.NewJSON(level)
	}

	metrics := observability.New()

	var cache ports.QueryCache
	if cfg.Redis.Addr != "" {
		cache = redisAdapter.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redisAdapter.WithTTL(cfg.Redis.TTL))
		logger.Info("query cache enabled", "backend", "redis", "addr", cfg.Redis.Addr)
	} else {
		cache = memory.NewStore()
		logger.Info("query cache enabled", "backend", "memory")
	}
	defer cache.Close()

	svc, err := carbondash.New(cfg.DataDir,
		carbondash.WithLogger(logger),
		carbondash.WithCache(cache),
		carbondash.WithMetrics(metrics),
	)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	defer svc.Close()

	handler := httpAdapter.NewHandler(svc,
		httpAdapter.WithLogger(logger),
		httpAdapter.WithMetrics(metrics),
		httpAdapter.WithRateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst),
	)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)

	go func() {
		logger.Info("starting carbondash server", "addr", srv.Addr, "data", cfg.DataDir, "version", carbondash.Version)
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt or terminate signals.
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return err

	case sig := <-shutdown:
		logger.Info("starting shutdown", "signal", sig.String())

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Warn("graceful shutdown did not complete", "err", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("could not stop server: %w", err)
			}
		}
		logger.Info("server stopped gracefully")
	}

	return nil
}
