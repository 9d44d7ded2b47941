package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"hl-whale-tracker/internal/app"
	"hl-whale-tracker/internal/config"
	"hl-whale-tracker/internal/hl/rest"
	"hl-whale-tracker/internal/logging"
	"hl-whale-tracker/internal/positions"
	"hl-whale-tracker/internal/state"
	"hl-whale-tracker/internal/stats"
	"hl-whale-tracker/internal/tracker"

	"go.uber.org/zap"
)

const defaultEnvFile = ".env"

func main() {
	configPath := flag.String("config", "internal/config/config.yaml", "path to config file")
	winrates := flag.Bool("winrates", false, "print the winrate leaderboard and exit")
	sentiment := flag.Bool("sentiment", false, "print the current whale sentiment and exit")
	days := flag.Int("days", 0, "winrate lookback days (defaults to winrate.window_days)")
	minTrades := flag.Int("min-trades", 0, "minimum closed trades for the leaderboard (defaults to winrate.min_trades)")
	top := flag.Int("top", 15, "number of leaderboard rows to print")
	flag.Parse()

	if err := config.LoadEnv(defaultEnvFile); err != nil {
		fatal(err)
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal(err)
	}
	log := logging.New(cfg.Log)
	wallets, err := app.NormalizeWallets(cfg.Tracker.Wallets)
	if err != nil {
		fatal(err)
	}
	restClient := rest.New(cfg.REST.BaseURL, cfg.REST.Timeout, log)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	switch {
	case *winrates:
		window := cfg.Winrate.WindowDays
		if *days > 0 {
			window = *days
		}
		floor := cfg.Winrate.MinTrades
		if *minTrades > 0 {
			floor = *minTrades
		}
		printLeaderboard(ctx, stats.NewClient(restClient, log), wallets, cfg.Tracker.Asset, window, floor, *top)
	case *sentiment:
		printSentiment(ctx, restClient, wallets, cfg.Tracker.Asset, log)
	default:
		fmt.Fprintln(os.Stderr, "nothing to do: pass -winrates or -sentiment")
		os.Exit(2)
	}
}

func printLeaderboard(ctx context.Context, client *stats.Client, wallets []string, asset string, windowDays, minTrades, top int) {
	reports := make([]stats.Report, 0, len(wallets))
	for _, wallet := range wallets {
		report, err := client.WalletReport(ctx, wallet, asset, windowDays)
		if err != nil {
			fmt.Fprintf(os.Stderr, "winrate fetch failed for %s: %v\n", wallet, err)
			continue
		}
		if report.ClosedTrades < minTrades {
			continue
		}
		reports = append(reports, report)
	}
	sort.Slice(reports, func(i, j int) bool {
		return reports[i].WinratePct > reports[j].WinratePct
	})
	fmt.Printf("top %s wallets by winrate (%dd, min %d trades)\n", asset, windowDays, minTrades)
	for i, report := range reports {
		if i >= top {
			break
		}
		fmt.Printf("%2d. %s  %5.1f%% WR  %4d trades  $%.0f PnL\n",
			i+1, shortAddr(report.Wallet), report.WinratePct, report.ClosedTrades, report.TotalPnL)
	}
}

func printSentiment(ctx context.Context, restClient *rest.Client, wallets []string, asset string, log *zap.Logger) {
	snapshot := state.NewSnapshot(time.Now().UTC().UnixMilli())
	for _, wallet := range wallets {
		resp, err := restClient.Info(ctx, rest.InfoRequest{Type: "clearinghouseState", User: wallet})
		if err != nil {
			fmt.Fprintf(os.Stderr, "position fetch failed for %s: %v\n", wallet, err)
			continue
		}
		pos, err := positions.Normalize(resp, asset)
		if err != nil {
			fmt.Fprintf(os.Stderr, "position parse failed for %s: %v\n", wallet, err)
			continue
		}
		snapshot.Positions[wallet] = pos
	}
	summary := tracker.Sentiment(snapshot)
	fmt.Printf("wallets with %s positions: %d\n", asset, summary.WalletsWithPosition)
	fmt.Printf("total long:  %.2f %s\n", summary.TotalLong, asset)
	fmt.Printf("total short: %.2f %s\n", summary.TotalShort, asset)
	fmt.Printf("long ratio:  %.1f%%\n", summary.LongRatioPct)
	fmt.Printf("sentiment:   %s\n", summary.Label)
}

func shortAddr(addr string) string {
	if len(addr) <= 10 {
		return addr
	}
	return addr[:10] + "..."
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
