package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/adnanhd/adnanhd.github.io/internal/config"
)

var cfgFile string
var logLevel string

var appConfig config.Config
var logger *slog.Logger

var rootCmd = &cobra.Command{
	Use:   "site",
	Short: "Static generator for a personal academic website",
	Long: `site reads the YAML records under data/ (or a remote data URL) and the
markdown pages under content/, merges education, positions and publications
into one timeline, and writes a static HTML website.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error (overrides logLevel)")
}

func initializeConfig(_ *cobra.Command) error {
	// A missing .env is fine.
	_ = godotenv.Load()

	cfg, used, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	appConfig = cfg
	logger = setupLogger(cfg.LogLevel)

	if used != "" {
		logger.Info("Using config file", "path", used)
	} else {
		logger.Info("No config file found, using defaults and environment")
	}
	return nil
}

func setupLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
