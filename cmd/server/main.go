package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"AssetSentinel/internal/config"
	"AssetSentinel/internal/marketdata"
	"AssetSentinel/internal/portfolio"
	"AssetSentinel/internal/recorder"
	"AssetSentinel/internal/report"
	"AssetSentinel/internal/risk"
	"AssetSentinel/internal/scheduler"
	"AssetSentinel/internal/server"
)

func main() {
	// .env is optional; environment variables win either way.
	_ = godotenv.Load()

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

	setupLogging(cfg.LogLevel)
	log.Info().Msg("AssetSentinel starting")

	// Market data source
	var fetcher marketdata.Fetcher
	if cfg.MarketData.BaseURL != "" {
		fetcher = marketdata.NewHTTPFetcher(cfg.MarketData.BaseURL, cfg.MarketData.APIKey, cfg.Proxy)
	} else {
		fetcher = &marketdata.MockFetcher{}
	}
	log.Info().Str("source", fetcher.Name()).Msg("market data source selected")

	market, err := marketdata.NewManager(fetcher, cfg.MarketData.CacheDir, cfg.MarketData.FreshDays, cfg.MarketData.CleanupDays)
	if err != nil {
		log.Fatal().Err(err).Msg("init market data manager")
	}

	// Portfolio
	store, err := portfolio.NewStore(cfg.Portfolio.CSVPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load portfolio")
	}

	// Recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	assume := risk.Assumptions{
		AnnualOpex:          decimal.NewFromFloat(cfg.Finance.AnnualOpexSGD),
		ReserveMonths:       cfg.Finance.ReserveMonths,
		DrawdownBreachLimit: cfg.Finance.DrawdownBreachLimit,
		LiquidityBreachDays: cfg.Finance.LiquidityBreachDays,
		LiquidityWindowDays: cfg.Finance.LiquidityWindowDays,
	}

	// Scheduler
	sched := scheduler.New(market, rec)
	if err := sched.RegisterAll(cfg.Schedule.RefreshCron, cfg.Schedule.CleanupCron); err != nil {
		log.Fatal().Err(err).Msg("register cron tasks")
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Info().Msg("RUN_ON_START enabled, refreshing market data now")
		go sched.RunRefreshNow()
	}

	// HTTP server
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	gen := report.NewGenerator(cfg.Report.Title)
	api := server.New(store, market, rec, gen, assume, cfg.Report.OrgPrefix)

	srv := &http.Server{
		Addr:    cfg.Server.Listen,
		Handler: api.Handler(),
	}
	go func() {
		log.Info().Str("addr", cfg.Server.Listen).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server")
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("shutdown signal received, stopping")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	log.Info().Msg("AssetSentinel stopped")
}

func setupLogging(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}
