package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"hl-whale-tracker/internal/alerts"
	"hl-whale-tracker/internal/config"
	"hl-whale-tracker/internal/hl/rest"
	"hl-whale-tracker/internal/metrics"
	"hl-whale-tracker/internal/positions"
	"hl-whale-tracker/internal/state"
	"hl-whale-tracker/internal/state/sqlite"
	"hl-whale-tracker/internal/stats"
	"hl-whale-tracker/internal/tracker"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// positionFetcher samples one wallet's current position.
type positionFetcher interface {
	Position(ctx context.Context, wallet string) (positions.Position, error)
}

// notifier delivers one formatted alert.
type notifier interface {
	Send(ctx context.Context, message string) error
}

// winrateSource enriches alerts with a wallet's recent track record.
type winrateSource interface {
	WalletReport(ctx context.Context, wallet, asset string, windowDays int) (stats.Report, error)
}

type App struct {
	cfg      *config.Config
	log      *zap.Logger
	store    state.Store
	fetcher  positionFetcher
	notifier notifier
	winrates winrateSource
	metrics  *metrics.Metrics
	prom     *metrics.Prometheus
	wallets  []string
}

func New(cfg *config.Config, log *zap.Logger) (*App, error) {
	wallets, err := NormalizeWallets(cfg.Tracker.Wallets)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(cfg.State.SQLitePath), 0o755); err != nil {
		return nil, err
	}
	store, err := sqlite.New(cfg.State.SQLitePath)
	if err != nil {
		return nil, err
	}
	restClient := rest.New(cfg.REST.BaseURL, cfg.REST.Timeout, log)

	app := &App{
		cfg:      cfg,
		log:      log,
		store:    store,
		fetcher:  &hlPositionFetcher{rest: restClient, asset: cfg.Tracker.Asset},
		notifier: alerts.NewTelegram(cfg.Telegram, log),
		metrics:  metrics.NewNoop(),
		wallets:  wallets,
	}
	if cfg.Winrate.Enabled {
		app.winrates = stats.NewClient(restClient, log)
	}
	if cfg.Metrics.ListenAddr != "" {
		app.prom = metrics.NewPrometheus()
		app.metrics = app.prom.Metrics
	}
	return app, nil
}

// NormalizeWallets validates the tracked addresses and lowercases them into
// the form the exchange API expects. Duplicates collapse to one entry.
func NormalizeWallets(raw []string) ([]string, error) {
	if len(raw) == 0 {
		return nil, errors.New("at least one wallet address is required")
	}
	seen := make(map[string]struct{}, len(raw))
	wallets := make([]string, 0, len(raw))
	for _, entry := range raw {
		trimmed := strings.TrimSpace(entry)
		if !common.IsHexAddress(trimmed) {
			return nil, fmt.Errorf("invalid wallet address: %q", entry)
		}
		wallet := strings.ToLower(common.HexToAddress(trimmed).Hex())
		if _, dup := seen[wallet]; dup {
			continue
		}
		seen[wallet] = struct{}{}
		wallets = append(wallets, wallet)
	}
	return wallets, nil
}

func (a *App) Run(ctx context.Context) error {
	defer a.store.Close()
	if a.prom != nil {
		go a.serveMetrics(ctx)
	}
	a.log.Info("tracking wallets",
		zap.Int("wallets", len(a.wallets)),
		zap.String("asset", a.cfg.Tracker.Asset),
		zap.Duration("poll_interval", a.cfg.Tracker.PollInterval),
	)
	if err := a.runOnce(ctx); err != nil {
		a.log.Warn("run failed", zap.Error(err))
	}

	ticker := time.NewTicker(a.cfg.Tracker.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := a.runOnce(ctx); err != nil {
				a.log.Warn("run failed", zap.Error(err))
			}
		}
	}
}

// runOnce performs one full sample-diff-alert-persist cycle. Nothing in it
// is fatal: bad wallets are skipped, failed dispatches are isolated, and the
// snapshot is saved even when deliveries failed so stored state tracks the
// exchange rather than the notifier.
func (a *App) runOnce(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	a.metrics.RunsTotal.Inc()

	previous, hasPrevious, err := state.LoadSnapshot(ctx, a.store)
	if err != nil {
		a.log.Warn("previous snapshot unreadable, treating run as cold start", zap.Error(err))
		hasPrevious = false
	}

	current := state.NewSnapshot(time.Now().UTC().UnixMilli())
	for _, wallet := range a.wallets {
		pos, err := a.fetcher.Position(ctx, wallet)
		if err != nil {
			a.metrics.WalletsSkipped.Inc()
			a.log.Warn("skipping wallet this run",
				zap.String("wallet", alerts.ShortWallet(wallet)),
				zap.Error(err),
			)
			// Carry the last known position forward so the wallet diffs as
			// unchanged and its stored state is left untouched.
			if hasPrevious {
				if prev, ok := previous.Positions[wallet]; ok {
					current.Positions[wallet] = prev
				}
			}
			continue
		}
		current.Positions[wallet] = pos
	}

	var prevSnapshot *state.Snapshot
	if hasPrevious {
		prevSnapshot = &previous
	}
	events := tracker.Diff(prevSnapshot, current, a.cfg.Tracker.SizeIncreaseThreshold)
	a.dispatchAlerts(ctx, events)

	if err := state.SaveSnapshot(ctx, a.store, current); err != nil {
		a.metrics.SnapshotSaveFailures.Inc()
		a.log.Error("snapshot save failed, next run may repeat alerts", zap.Error(err))
	}
	return nil
}

func (a *App) dispatchAlerts(ctx context.Context, events []tracker.ChangeEvent) {
	for _, event := range events {
		if event.Kind == tracker.Unchanged {
			continue
		}
		a.metrics.ChangesDetected.Inc()
		a.log.Info("position change detected",
			zap.String("wallet", alerts.ShortWallet(event.Wallet)),
			zap.String("kind", string(event.Kind)),
		)
		message, ok := alerts.FormatChange(event, a.cfg.Tracker.Asset, a.walletReport(ctx, event.Wallet))
		if !ok {
			continue
		}
		if err := a.notifier.Send(ctx, message); err != nil {
			a.metrics.AlertsFailed.Inc()
			a.log.Warn("alert dispatch failed",
				zap.String("wallet", alerts.ShortWallet(event.Wallet)),
				zap.Error(err),
			)
			continue
		}
		a.metrics.AlertsSent.Inc()
	}
}

func (a *App) walletReport(ctx context.Context, wallet string) *stats.Report {
	if a.winrates == nil {
		return nil
	}
	report, err := a.winrates.WalletReport(ctx, wallet, a.cfg.Tracker.Asset, a.cfg.Winrate.WindowDays)
	if err != nil {
		a.log.Warn("winrate lookup failed",
			zap.String("wallet", alerts.ShortWallet(wallet)),
			zap.Error(err),
		)
		return nil
	}
	return &report
}

func (a *App) serveMetrics(ctx context.Context) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", a.prom.Handler())
	server := &http.Server{Addr: a.cfg.Metrics.ListenAddr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		a.log.Warn("metrics server failed", zap.Error(err))
	}
}

type hlPositionFetcher struct {
	rest  *rest.Client
	asset string
}

func (f *hlPositionFetcher) Position(ctx context.Context, wallet string) (positions.Position, error) {
	resp, err := f.rest.Info(ctx, rest.InfoRequest{Type: "clearinghouseState", User: wallet})
	if err != nil {
		return positions.Position{}, err
	}
	return positions.Normalize(resp, f.asset)
}
