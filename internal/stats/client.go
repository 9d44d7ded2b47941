package stats

import (
	"context"
	"errors"
	"time"

	"hl-whale-tracker/internal/hl/rest"

	"go.uber.org/zap"
)

type Client struct {
	rest *rest.Client
	log  *zap.Logger
}

func NewClient(restClient *rest.Client, log *zap.Logger) *Client {
	return &Client{rest: restClient, log: log}
}

// WalletReport fetches a wallet's fills over the lookback window and
// computes its winrate in the given asset.
func (c *Client) WalletReport(ctx context.Context, wallet, asset string, windowDays int) (Report, error) {
	if c.rest == nil {
		return Report{}, errors.New("rest client is required")
	}
	if wallet == "" {
		return Report{}, errors.New("wallet is required")
	}
	if windowDays <= 0 {
		return Report{}, errors.New("window days must be > 0")
	}
	startMS := time.Now().AddDate(0, 0, -windowDays).UnixMilli()
	resp, err := c.rest.InfoAny(ctx, map[string]any{
		"type":            "userFillsByTime",
		"user":            wallet,
		"startTime":       startMS,
		"aggregateByTime": false,
	})
	if err != nil {
		return Report{}, err
	}
	report := Winrate(ParseFills(resp), asset)
	report.Wallet = wallet
	report.WindowDays = windowDays
	return report, nil
}
