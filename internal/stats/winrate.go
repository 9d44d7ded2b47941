package stats

import "math"

// Report summarizes a wallet's closed trades in the tracked asset over the
// lookback window.
type Report struct {
	Wallet       string
	WindowDays   int
	TotalFills   int
	ClosedTrades int
	Wins         int
	Losses       int
	WinratePct   float64
	TotalPnL     float64
	ProfitFactor float64
	HasTrades    bool
}

// Winrate derives a Report from raw fills. Only fills in the given asset
// count; only fills carrying a non-zero closedPnl count as closed trades.
func Winrate(fills []Fill, asset string) Report {
	report := Report{}
	var grossProfit, grossLoss float64
	for _, fill := range fills {
		if fill.Asset != asset {
			continue
		}
		report.TotalFills++
		if fill.ClosedPnL == 0 {
			continue
		}
		report.ClosedTrades++
		report.TotalPnL += fill.ClosedPnL
		if fill.ClosedPnL > 0 {
			report.Wins++
			grossProfit += fill.ClosedPnL
		} else {
			report.Losses++
			grossLoss += -fill.ClosedPnL
		}
	}
	report.HasTrades = report.TotalFills > 0
	if decided := report.Wins + report.Losses; decided > 0 {
		report.WinratePct = float64(report.Wins) / float64(decided) * 100
	}
	if report.ClosedTrades > 0 {
		if grossLoss > 0 {
			report.ProfitFactor = grossProfit / grossLoss
		} else {
			report.ProfitFactor = math.Inf(1)
		}
	}
	return report
}
