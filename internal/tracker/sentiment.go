package tracker

import (
	"hl-whale-tracker/internal/positions"
	"hl-whale-tracker/internal/state"
)

type SentimentLabel string

const (
	StrongLong    SentimentLabel = "STRONG_LONG"
	SlightlyLong  SentimentLabel = "SLIGHTLY_LONG"
	Neutral       SentimentLabel = "NEUTRAL"
	SlightlyShort SentimentLabel = "SLIGHTLY_SHORT"
	StrongShort   SentimentLabel = "STRONG_SHORT"
)

type SentimentSummary struct {
	WalletsWithPosition int
	TotalLong           float64
	TotalShort          float64
	LongRatioPct        float64
	Label               SentimentLabel
}

// Sentiment aggregates one snapshot into a crowd-direction summary.
// With no open positions at all the ratio defaults to 50% / Neutral.
func Sentiment(snapshot state.Snapshot) SentimentSummary {
	summary := SentimentSummary{}
	for _, pos := range snapshot.Positions {
		switch pos.Direction {
		case positions.Long:
			summary.TotalLong += pos.Size
			summary.WalletsWithPosition++
		case positions.Short:
			summary.TotalShort += pos.Size
			summary.WalletsWithPosition++
		}
	}
	total := summary.TotalLong + summary.TotalShort
	summary.LongRatioPct = 50
	if total > 0 {
		summary.LongRatioPct = summary.TotalLong / total * 100
	}
	summary.Label = sentimentLabel(summary.LongRatioPct)
	return summary
}

func sentimentLabel(longRatioPct float64) SentimentLabel {
	switch {
	case longRatioPct > 65:
		return StrongLong
	case longRatioPct > 55:
		return SlightlyLong
	case longRatioPct < 35:
		return StrongShort
	case longRatioPct < 45:
		return SlightlyShort
	default:
		return Neutral
	}
}
