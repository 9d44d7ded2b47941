package config

import (
	"errors"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Log      LoggingConfig  `yaml:"log"`
	REST     RESTConfig     `yaml:"rest"`
	State    StateConfig    `yaml:"state"`
	Tracker  TrackerConfig  `yaml:"tracker"`
	Winrate  WinrateConfig  `yaml:"winrate"`
	Telegram TelegramConfig `yaml:"telegram"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type RESTConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type StateConfig struct {
	SQLitePath string `yaml:"sqlite_path"`
}

type TrackerConfig struct {
	Asset                 string        `yaml:"asset"`
	Wallets               []string      `yaml:"wallets"`
	PollInterval          time.Duration `yaml:"poll_interval"`
	SizeIncreaseThreshold float64       `yaml:"size_increase_threshold"`
}

type WinrateConfig struct {
	Enabled    bool `yaml:"enabled"`
	WindowDays int  `yaml:"window_days"`
	MinTrades  int  `yaml:"min_trades"`
}

type TelegramConfig struct {
	Enabled bool   `yaml:"enabled"`
	Token   string `yaml:"token"`
	ChatID  string `yaml:"chat_id"`
}

type MetricsConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, validate(&cfg)
}

func applyDefaults(cfg *Config) {
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.REST.BaseURL == "" {
		cfg.REST.BaseURL = "https://api.hyperliquid.xyz"
	}
	if cfg.REST.Timeout == 0 {
		cfg.REST.Timeout = 15 * time.Second
	}
	if cfg.State.SQLitePath == "" {
		cfg.State.SQLitePath = "data/hl-whale-tracker.db"
	}
	if cfg.Tracker.Asset == "" {
		cfg.Tracker.Asset = "BTC"
	}
	if cfg.Tracker.PollInterval == 0 {
		cfg.Tracker.PollInterval = 5 * time.Minute
	}
	if cfg.Tracker.SizeIncreaseThreshold == 0 {
		cfg.Tracker.SizeIncreaseThreshold = 0.5
	}
	if cfg.Winrate.WindowDays == 0 {
		cfg.Winrate.WindowDays = 30
	}
	if cfg.Winrate.MinTrades == 0 {
		cfg.Winrate.MinTrades = 5
	}
	if cfg.Telegram.Token == "" {
		cfg.Telegram.Token = os.Getenv("TELEGRAM_BOT_TOKEN")
	}
	if cfg.Telegram.ChatID == "" {
		cfg.Telegram.ChatID = os.Getenv("TELEGRAM_CHAT_ID")
	}
}

func validate(cfg *Config) error {
	if len(cfg.Tracker.Wallets) == 0 {
		return errors.New("tracker.wallets must list at least one address")
	}
	if cfg.Tracker.SizeIncreaseThreshold <= 0 {
		return errors.New("tracker.size_increase_threshold must be > 0")
	}
	if cfg.Tracker.PollInterval <= 0 {
		return errors.New("tracker.poll_interval must be > 0")
	}
	if cfg.Winrate.WindowDays <= 0 {
		return errors.New("winrate.window_days must be > 0")
	}
	return nil
}
