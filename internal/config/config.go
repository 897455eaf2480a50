package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Finance struct {
		AnnualOpexSGD       float64 `yaml:"annual_opex_sgd"`
		ReserveMonths       int     `yaml:"reserve_months"`
		DrawdownBreachLimit float64 `yaml:"drawdown_breach_limit"`
		LiquidityBreachDays float64 `yaml:"liquidity_breach_days"`
		LiquidityWindowDays int     `yaml:"liquidity_window_days"`
	} `yaml:"finance"`
	Portfolio struct {
		CSVPath string `yaml:"csv_path"`
	} `yaml:"portfolio"`
	MarketData struct {
		BaseURL     string `yaml:"base_url"`
		APIKey      string `yaml:"api_key"`
		CacheDir    string `yaml:"cache_dir"`
		FreshDays   int    `yaml:"fresh_days"`
		CleanupDays int    `yaml:"cleanup_days"`
	} `yaml:"market_data"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
		CleanupCron string `yaml:"cleanup_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Report struct {
		OrgPrefix string `yaml:"org_prefix"`
		Title     string `yaml:"title"`
	} `yaml:"report"`
	Server struct {
		Listen string `yaml:"listen"`
	} `yaml:"server"`
	LogLevel string `yaml:"log_level"`
	Proxy    string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("ANNUAL_OPEX_SGD"); v != "" {
		if opex, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Finance.AnnualOpexSGD = opex
		}
	}
	if v := os.Getenv("PORTFOLIO_CSV"); v != "" {
		cfg.Portfolio.CSVPath = v
	}
	if v := os.Getenv("MARKET_DATA_BASE_URL"); v != "" {
		cfg.MarketData.BaseURL = v
	}
	if v := os.Getenv("MARKET_DATA_API_KEY"); v != "" {
		cfg.MarketData.APIKey = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.Server.Listen = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Finance.AnnualOpexSGD == 0 {
		cfg.Finance.AnnualOpexSGD = 2_400_000
	}
	if cfg.Finance.ReserveMonths == 0 {
		cfg.Finance.ReserveMonths = 12
	}
	if cfg.Finance.DrawdownBreachLimit == 0 {
		cfg.Finance.DrawdownBreachLimit = 0.20
	}
	if cfg.Finance.LiquidityBreachDays == 0 {
		cfg.Finance.LiquidityBreachDays = 90
	}
	if cfg.Finance.LiquidityWindowDays == 0 {
		cfg.Finance.LiquidityWindowDays = 30
	}
	if cfg.Portfolio.CSVPath == "" {
		cfg.Portfolio.CSVPath = "data/portfolio.csv"
	}
	if cfg.MarketData.CacheDir == "" {
		cfg.MarketData.CacheDir = "data/market_cache"
	}
	if cfg.MarketData.FreshDays == 0 {
		cfg.MarketData.FreshDays = 7
	}
	if cfg.MarketData.CleanupDays == 0 {
		cfg.MarketData.CleanupDays = 14
	}
	if cfg.Schedule.RefreshCron == "" {
		cfg.Schedule.RefreshCron = "0 0 6 * * *" // 06:00 daily
	}
	if cfg.Schedule.CleanupCron == "" {
		cfg.Schedule.CleanupCron = "0 30 6 * * 1" // Monday 06:30
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/asset_sentinel.db"
	}
	if cfg.Report.OrgPrefix == "" {
		cfg.Report.OrgPrefix = "CPC"
	}
	if cfg.Report.Title == "" {
		cfg.Report.Title = "CPC Investment Portfolio - Stress Test Analysis"
	}
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

// Validate checks that all required fields are usable.
func (c *Config) Validate() error {
	if c.Finance.AnnualOpexSGD <= 0 {
		return fmt.Errorf("finance.annual_opex_sgd must be positive")
	}
	if c.Finance.ReserveMonths <= 0 {
		return fmt.Errorf("finance.reserve_months must be positive")
	}
	if c.Finance.DrawdownBreachLimit <= 0 || c.Finance.DrawdownBreachLimit >= 1 {
		return fmt.Errorf("finance.drawdown_breach_limit must be in (0, 1)")
	}
	if c.Finance.LiquidityBreachDays <= 0 {
		return fmt.Errorf("finance.liquidity_breach_days must be positive")
	}
	if c.Portfolio.CSVPath == "" {
		return fmt.Errorf("portfolio.csv_path is required")
	}
	return nil
}
