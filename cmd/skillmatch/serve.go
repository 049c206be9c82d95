package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/skillmatch/internal/config"
	"github.com/jonathan/skillmatch/internal/db"
	"github.com/jonathan/skillmatch/internal/logger"
	"github.com/jonathan/skillmatch/internal/server"
)

var (
	serveConfigFile string
	servePort       int
	serveMigrate    bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the scoring, ranking and candidate search endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigFile, "config", "", "Path to a YAML or JSON config file")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "Apply the database schema before serving")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(serveConfigFile)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logger.New(cfg.LogJSON, cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer store.Close()

	if serveMigrate {
		if err := store.Migrate(ctx); err != nil {
			return err
		}
		log.Info("database schema applied")
	}

	log.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.Int("ranking_concurrency", cfg.Ranking.Concurrency),
		zap.Int("ranking_cache_size", cfg.Ranking.CacheSize),
		zap.Bool("rate_limit", cfg.RateLimit.Enabled))

	srv, err := server.New(cfg, store, log)
	if err != nil {
		return err
	}
	return srv.Start(ctx)
}
