package alerts

import (
	"fmt"
	"math"
	"strings"

	"hl-whale-tracker/internal/positions"
	"hl-whale-tracker/internal/stats"
	"hl-whale-tracker/internal/tracker"
)

// FormatChange renders one classified change as a Telegram HTML message.
// Unchanged events produce no message; the second return reports whether a
// message should be sent.
func FormatChange(event tracker.ChangeEvent, asset string, report *stats.Report) (string, bool) {
	if event.Kind == tracker.Unchanged {
		return "", false
	}
	cur := positionOrFlat(event.Current)
	prev := positionOrFlat(event.Previous)

	var lines []string
	switch event.Kind {
	case tracker.Opened:
		lines = []string{
			fmt.Sprintf("🐋 <b>WHALE ALERT</b> %s", directionEmoji(cur.Direction)),
			"",
			fmt.Sprintf("New %s position", asset),
			fmt.Sprintf("📍 <code>%s</code>", ShortWallet(event.Wallet)),
			fmt.Sprintf("📊 %s %.2f %s", cur.Direction, cur.Size, asset),
			fmt.Sprintf("💰 Entry: $%.0f", cur.EntryPrice),
			fmt.Sprintf("⚡ Leverage: %.0fx", cur.Leverage),
			fmt.Sprintf("💼 Account: $%.0f", cur.AccountValue),
		}
	case tracker.Closed:
		lines = []string{
			"🏁 <b>WHALE CLOSED</b>",
			"",
			fmt.Sprintf("%s position closed", asset),
			fmt.Sprintf("📍 <code>%s</code>", ShortWallet(event.Wallet)),
			fmt.Sprintf("📊 was %s %.2f %s", prev.Direction, prev.Size, asset),
			fmt.Sprintf("⚡ Leverage: %.0fx", prev.Leverage),
			fmt.Sprintf("💼 Account: $%.0f", cur.AccountValue),
		}
	case tracker.Flipped:
		lines = []string{
			"🔄 <b>WHALE FLIP</b>",
			"",
			"Direction changed!",
			fmt.Sprintf("📍 <code>%s</code>", ShortWallet(event.Wallet)),
			fmt.Sprintf("❌ %s → ✅ %s", prev.Direction, cur.Direction),
			fmt.Sprintf("📊 Size: %.2f %s", cur.Size, asset),
			fmt.Sprintf("💰 Entry: $%.0f", cur.EntryPrice),
			fmt.Sprintf("⚡ Leverage: %.0fx", cur.Leverage),
			fmt.Sprintf("💼 Account: $%.0f", cur.AccountValue),
		}
	case tracker.Increased:
		lines = []string{
			fmt.Sprintf("📈 <b>WHALE ADDING</b> %s", directionEmoji(cur.Direction)),
			"",
			"Position increased!",
			fmt.Sprintf("📍 <code>%s</code>", ShortWallet(event.Wallet)),
			fmt.Sprintf("📊 %.2f → %.2f %s", prev.Size, cur.Size, asset),
			fmt.Sprintf("💹 +%.0f%%", increasePct(prev.Size, cur.Size)),
			fmt.Sprintf("⚡ Leverage: %.0fx", cur.Leverage),
			fmt.Sprintf("💼 Account: $%.0f", cur.AccountValue),
		}
	default:
		return "", false
	}
	if line, ok := winrateLine(asset, report); ok {
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), true
}

// ShortWallet abbreviates an address for display.
func ShortWallet(wallet string) string {
	if len(wallet) <= 10 {
		return wallet
	}
	return wallet[:10] + "..."
}

func directionEmoji(d positions.Direction) string {
	if d == positions.Short {
		return "🔴"
	}
	return "🟢"
}

func winrateLine(asset string, report *stats.Report) (string, bool) {
	if report == nil {
		return "", false
	}
	if report.ClosedTrades == 0 {
		return fmt.Sprintf("🏆 Winrate: n/a (no %s trades)", asset), true
	}
	pnlEmoji := "⚪"
	if report.TotalPnL > 0 {
		pnlEmoji = "🟢"
	} else if report.TotalPnL < 0 {
		pnlEmoji = "🔴"
	}
	return fmt.Sprintf("🏆 Winrate: %.0f%% (%d trades) %s $%.0f", report.WinratePct, report.ClosedTrades, pnlEmoji, report.TotalPnL), true
}

func increasePct(prevSize, curSize float64) float64 {
	if prevSize <= 0 {
		return 0
	}
	return math.Round((curSize - prevSize) / prevSize * 1000) / 10
}

func positionOrFlat(p *positions.Position) positions.Position {
	if p == nil {
		return positions.FlatPosition(0)
	}
	return *p
}
