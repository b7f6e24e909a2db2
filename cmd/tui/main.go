package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nakkarenukadevi/mbbs-ui/internal/config"
	"github.com/nakkarenukadevi/mbbs-ui/internal/labels"
	"github.com/nakkarenukadevi/mbbs-ui/internal/logger"
	"github.com/nakkarenukadevi/mbbs-ui/internal/metrics"
	"github.com/nakkarenukadevi/mbbs-ui/internal/repository"
	"github.com/nakkarenukadevi/mbbs-ui/internal/service"
	"github.com/nakkarenukadevi/mbbs-ui/internal/tui"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		envFile string
		apiURL  string
		logFile string
	)

	cmd := &cobra.Command{
		Use:          "mbbs-tui",
		Short:        "Find MBBS seats from the terminal",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadDotEnv(envFile); err != nil {
				return err
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("api-url") {
				cfg.APIBaseURL = apiURL
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			// The terminal belongs to the UI, so logs always go to a file
			if cmd.Flags().Changed("log-file") || cfg.LogFile == "" {
				cfg.LogFile = logFile
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", ".env", "Optional .env file to load")
	cmd.Flags().StringVar(&apiURL, "api-url", config.DefaultAPIBaseURL, "Students API base URL (overrides API_BASE_URL)")
	cmd.Flags().StringVar(&logFile, "log-file", filepath.Join(os.TempDir(), "mbbs-tui.log"), "Log file (overrides LOG_FILE)")
	return cmd
}

func run(ctx context.Context, cfg *config.Config) error {
	log, cleanup, err := logger.New(logger.Config{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return err
	}
	defer cleanup()

	repo := repository.NewStudentRepository(cfg.APIBaseURL, repository.Options{
		Timeout:  cfg.UpstreamTimeout,
		RetryMax: cfg.UpstreamRetries,
	}, log)
	students := service.NewStudentService(repo, metrics.New(), log.Named("students"))

	formatter := labels.NewFormatter(nil)
	if cfg.LabelsFile != "" {
		watcher, err := labels.NewWatcher(cfg.LabelsFile, formatter, log.Named("labels"))
		if err != nil {
			return err
		}
		go func() { _ = watcher.Run(ctx) }()
	}

	log.Info("Starting terminal UI", zap.String("api", cfg.APIBaseURL))
	p := tea.NewProgram(tui.New(ctx, students, formatter, log.Named("tui")), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("terminal UI failed: %w", err)
	}
	return nil
}
