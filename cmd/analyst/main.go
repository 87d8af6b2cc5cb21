package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"QuantAnalyst/internal/collector"
	"QuantAnalyst/internal/config"
	"QuantAnalyst/internal/logger"
	"QuantAnalyst/internal/metrics"
	"QuantAnalyst/internal/recorder"
	"QuantAnalyst/internal/scheduler"
	"QuantAnalyst/internal/server"
)

func main() {
	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config validation")
	}
	if err := logger.Setup(cfg.Log.Level, cfg.Log.Format); err != nil {
		log.Fatal().Err(err).Msg("init logger")
	}
	log.Info().Msg("QuantAnalyst starting...")

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()

			sched := scheduler.NewScheduler(ctx, sr, cfg.Retention())
			if err := sched.Register(cfg.Schedule.PruneCron); err != nil {
				log.Fatal().Err(err).Msg("register cron tasks")
			}
			sched.Start()
			defer sched.Stop()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Init market data source
	var col *collector.Collector
	switch cfg.DataSource.Provider {
	case config.ProviderYahoo:
		col = collector.NewCollector(collector.NewYahooFetcher(cfg.Proxy), cfg.DataSource.LookbackDays)
	case config.ProviderPolygon:
		col = collector.NewCollector(collector.NewPolygonFetcher(cfg.DataSource.APIKey), cfg.DataSource.LookbackDays)
	}
	if col != nil {
		log.Info().Str("source", col.Fetcher.Name()).Msg("symbol lookups enabled")
	}

	handler := server.NewHandler(metrics.New(), rec, col)
	srv := server.NewServer(handler,
		server.WithAddress(cfg.Server.Host, cfg.Server.Port),
		server.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout),
		server.WithBodyLimit(cfg.Server.BodyLimit),
	)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	log.Info().Msg("QuantAnalyst is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		log.Info().Msg("shutdown signal received, stopping...")
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("server failed")
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("stop http server")
	}
	cancel()
	log.Info().Msg("QuantAnalyst stopped")
}
