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

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/nakkarenukadevi/mbbs-ui/internal/api"
	"github.com/nakkarenukadevi/mbbs-ui/internal/config"
	"github.com/nakkarenukadevi/mbbs-ui/internal/labels"
	"github.com/nakkarenukadevi/mbbs-ui/internal/logger"
	"github.com/nakkarenukadevi/mbbs-ui/internal/metrics"
	"github.com/nakkarenukadevi/mbbs-ui/internal/middleware"
	"github.com/nakkarenukadevi/mbbs-ui/internal/navstate"
	"github.com/nakkarenukadevi/mbbs-ui/internal/repository"
	"github.com/nakkarenukadevi/mbbs-ui/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		envFile  string
		port     string
		apiURL   string
		logLevel string
	)

	cmd := &cobra.Command{
		Use:          "mbbs-server",
		Short:        "Serve the ZeroToOne MBBS seat finder",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// 加载配置
			if err := config.LoadDotEnv(envFile); err != nil {
				return err
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = config.ListenAddr(port)
			}
			if cmd.Flags().Changed("api-url") {
				cfg.APIBaseURL = apiURL
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", ".env", "Optional .env file to load")
	cmd.Flags().StringVar(&port, "port", config.DefaultPort, "Listen address (overrides PORT)")
	cmd.Flags().StringVar(&apiURL, "api-url", config.DefaultAPIBaseURL, "Students API base URL (overrides API_BASE_URL)")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error (overrides LOG_LEVEL)")
	return cmd
}

func run(ctx context.Context, cfg *config.Config) error {
	log, cleanup, err := logger.New(logger.Config{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return err
	}
	defer cleanup()

	m := metrics.New()
	repo := repository.NewStudentRepository(cfg.APIBaseURL, repository.Options{
		Timeout:  cfg.UpstreamTimeout,
		RetryMax: cfg.UpstreamRetries,
	}, log)

	codec, err := navstate.NewCodec(cfg.NavSecret, cfg.NavTTL)
	if err != nil {
		return err
	}
	if cfg.NavSecret == "" {
		log.Warn("NAV_SECRET not set, navigation state will not survive a restart")
	}

	g, ctx := errgroup.WithContext(ctx)

	formatter := labels.NewFormatter(nil)
	if cfg.LabelsFile != "" {
		watcher, err := labels.NewWatcher(cfg.LabelsFile, formatter, log.Named("labels"))
		if err != nil {
			return err
		}
		watcher.OnReload(func(int) { m.LabelReloads.Inc() })
		g.Go(func() error { return watcher.Run(ctx) })
	}

	var limiter *middleware.RateLimiter
	if cfg.RateLimit > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow, log.Named("ratelimit"))
		defer limiter.Stop()
	}

	// 初始化路由
	router, err := api.SetupRouter(api.Dependencies{
		Log:      log.Named("http"),
		Metrics:  m,
		Students: service.NewStudentService(repo, m, log.Named("students")),
		Codec:    codec,
		Labels:   formatter,
		Limiter:  limiter,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 启动服务器
	g.Go(func() error {
		log.Info("Server starting", zap.String("addr", cfg.Port), zap.String("api", cfg.APIBaseURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
