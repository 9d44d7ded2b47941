package positions

import (
	"errors"
	"fmt"
	"math"
)

// ErrMalformedRecord marks a clearinghouse response that cannot be turned
// into a Position. Callers skip the wallet for the run instead of aborting.
var ErrMalformedRecord = errors.New("malformed position record")

// Normalize converts a raw clearinghouseState response into the canonical
// Position for the given asset. A response without an open position for the
// asset normalizes to Flat. Missing or unparseable required numeric fields
// return ErrMalformedRecord, never a partially populated Position.
func Normalize(payload any, asset string) (Position, error) {
	root, ok := toMap(payload)
	if !ok {
		return Position{}, fmt.Errorf("%w: response is not an object", ErrMalformedRecord)
	}
	margin, ok := toMap(root["marginSummary"])
	if !ok {
		return Position{}, fmt.Errorf("%w: missing marginSummary", ErrMalformedRecord)
	}
	accountValue, ok := floatFromMap(margin, "accountValue")
	if !ok {
		return Position{}, fmt.Errorf("%w: missing marginSummary.accountValue", ErrMalformedRecord)
	}
	if accountValue < 0 {
		return Position{}, fmt.Errorf("%w: negative account value", ErrMalformedRecord)
	}
	assetPositions, ok := toSlice(root["assetPositions"])
	if !ok {
		return Position{}, fmt.Errorf("%w: missing assetPositions", ErrMalformedRecord)
	}
	for _, item := range assetPositions {
		entry, ok := toMap(item)
		if !ok {
			continue
		}
		pos, ok := toMap(entry["position"])
		if !ok {
			continue
		}
		if stringFromAny(pos["coin"]) != asset {
			continue
		}
		return normalizeAssetPosition(pos, accountValue)
	}
	return FlatPosition(accountValue), nil
}

func normalizeAssetPosition(pos map[string]any, accountValue float64) (Position, error) {
	szi, ok := floatFromMap(pos, "szi")
	if !ok {
		return Position{}, fmt.Errorf("%w: missing szi", ErrMalformedRecord)
	}
	if szi == 0 {
		return FlatPosition(accountValue), nil
	}
	entryPrice, ok := floatFromMap(pos, "entryPx")
	if !ok || entryPrice <= 0 {
		return Position{}, fmt.Errorf("%w: missing or non-positive entryPx", ErrMalformedRecord)
	}
	leverageMap, ok := toMap(pos["leverage"])
	if !ok {
		return Position{}, fmt.Errorf("%w: missing leverage", ErrMalformedRecord)
	}
	leverage, ok := floatFromMap(leverageMap, "value")
	if !ok || leverage <= 0 {
		return Position{}, fmt.Errorf("%w: missing or non-positive leverage.value", ErrMalformedRecord)
	}
	direction := Long
	if szi < 0 {
		direction = Short
	}
	// unrealizedPnl is informational; absence is not malformed.
	pnl, _ := floatFromMap(pos, "unrealizedPnl")
	return Position{
		Direction:     direction,
		Size:          math.Abs(szi),
		EntryPrice:    entryPrice,
		Leverage:      leverage,
		AccountValue:  accountValue,
		UnrealizedPnL: pnl,
	}, nil
}
