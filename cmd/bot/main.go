package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"SignalDesk/internal/collector"
	"SignalDesk/internal/config"
	"SignalDesk/internal/logger"
	"SignalDesk/internal/metrics"
	"SignalDesk/internal/notifier"
	"SignalDesk/internal/recorder"
	"SignalDesk/internal/scheduler"
	"SignalDesk/internal/strategy"
)

func main() {
	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Setup("info", true)
		log.Fatal().Err(err).Msg("load config")
	}
	logger.Setup(cfg.App.LogLevel, cfg.App.PrettyLog)
	log.Info().Str("config", cfgPath).Msg("SignalDesk starting...")

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config validation")
	}

	// Init fetcher
	fetcher := collector.NewSourceFetcher(collector.SourceOptions{
		BaseURL:       cfg.DataSource.BaseURL,
		APIKey:        cfg.DataSource.APIKey,
		Proxy:         cfg.Proxy,
		SymbolMap:     cfg.DataSource.SymbolMap,
		DefaultSuffix: cfg.DataSource.DefaultSuffix,
	})
	if cfg.Redis.Addr != "" {
		rc := collector.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rc.Ping(pingCtx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, bar cache disabled")
			rc.Close()
		} else {
			fetcher = collector.NewCachedFetcher(fetcher, rc, time.Duration(cfg.Redis.TTLMinutes)*time.Minute)
			defer rc.Close()
		}
		cancelPing()
	}
	log.Info().Str("source", fetcher.Name()).Msg("data source ready")

	col := collector.NewCollector(fetcher, cfg.DataSource.HistoryDays)
	eng := strategy.NewEngine(cfg.Signal.RSIPeriod, cfg.Signal.OBVLookback)

	// Init Telegram notifier
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

	// Init recorder
	var rec recorder.Recorder = recorder.NewNoopRecorder()
	if cfg.Database.Driver != "none" {
		if cfg.Database.Driver == "sqlite" {
			if err := os.MkdirAll(filepath.Dir(cfg.Database.DSN), 0o755); err != nil {
				log.Warn().Err(err).Msg("create database directory")
			}
		}
		sr, err := recorder.NewSQLRecorder(cfg.Database.Driver, cfg.Database.DSN)
		if err != nil {
			log.Warn().Err(err).Str("driver", cfg.Database.Driver).Msg("init recorder failed, using noop")
		} else {
			rec = sr
			defer sr.Close()
		}
	}

	if cfg.App.MetricsAddr != "" {
		srv := metrics.Serve(cfg.App.MetricsAddr)
		defer srv.Close()
		log.Info().Str("addr", cfg.App.MetricsAddr).Msg("metrics endpoint started")
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, col, eng, tn, rec, cfg.Watchlist)
	if err := sched.RegisterAll(cfg.Schedule.DailyCron); err != nil {
		log.Fatal().Err(err).Msg("register cron tasks")
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling
	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Info().Msg("telegram polling started")

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Info().Msg("RUN_ON_START enabled, scanning watchlist now")
		go sched.RunScanNow()
	}

	log.Info().Strs("watchlist", cfg.Watchlist).Msg("SignalDesk is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("shutdown signal received, stopping...")
	cancel()
}
