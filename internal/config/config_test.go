package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "tracker:\n  wallets:\n    - \"0xb83de012dba672c76a7dbbbf3e459cb59d7d6e36\"\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Log.Level != "info" {
		t.Fatalf("expected default log level info, got %q", cfg.Log.Level)
	}
	if cfg.REST.BaseURL != "https://api.hyperliquid.xyz" {
		t.Fatalf("unexpected rest base url: %q", cfg.REST.BaseURL)
	}
	if cfg.Tracker.Asset != "BTC" {
		t.Fatalf("expected default asset BTC, got %q", cfg.Tracker.Asset)
	}
	if cfg.Tracker.PollInterval != 5*time.Minute {
		t.Fatalf("expected 5m poll interval, got %v", cfg.Tracker.PollInterval)
	}
	if cfg.Tracker.SizeIncreaseThreshold != 0.5 {
		t.Fatalf("expected 0.5 threshold, got %f", cfg.Tracker.SizeIncreaseThreshold)
	}
	if cfg.Winrate.WindowDays != 30 || cfg.Winrate.MinTrades != 5 {
		t.Fatalf("unexpected winrate defaults: %+v", cfg.Winrate)
	}
}

func TestLoadRequiresWallets(t *testing.T) {
	path := writeConfig(t, "tracker:\n  asset: BTC\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for empty wallet list")
	}
}

func TestLoadRejectsBadThreshold(t *testing.T) {
	path := writeConfig(t, "tracker:\n  wallets: [\"0xb83de012dba672c76a7dbbbf3e459cb59d7d6e36\"]\n  size_increase_threshold: -1\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for negative threshold")
	}
}

func TestTelegramEnvFallback(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "env-token")
	t.Setenv("TELEGRAM_CHAT_ID", "env-chat")
	path := writeConfig(t, "tracker:\n  wallets: [\"0xb83de012dba672c76a7dbbbf3e459cb59d7d6e36\"]\ntelegram:\n  enabled: true\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Telegram.Token != "env-token" || cfg.Telegram.ChatID != "env-chat" {
		t.Fatalf("expected env fallback, got %+v", cfg.Telegram)
	}
}

func TestTelegramConfigBeatsEnv(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "env-token")
	path := writeConfig(t, "tracker:\n  wallets: [\"0xb83de012dba672c76a7dbbbf3e459cb59d7d6e36\"]\ntelegram:\n  token: file-token\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Telegram.Token != "file-token" {
		t.Fatalf("expected file token to win, got %q", cfg.Telegram.Token)
	}
}
