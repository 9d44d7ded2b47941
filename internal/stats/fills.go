package stats

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Fill is one trade execution from the userFillsByTime endpoint. Fills with
// a non-zero ClosedPnL represent (part of) a closed position and drive the
// winrate computation.
type Fill struct {
	Asset     string
	Side      string
	Size      float64
	Price     float64
	ClosedPnL float64
	TimeMS    int64
	Hash      string
}

func ParseFills(payload any) []Fill {
	if payload == nil {
		return nil
	}
	if list, ok := payload.([]any); ok {
		return parseFillList(list)
	}
	if payloadMap, ok := payload.(map[string]any); ok {
		if list, ok := payloadMap["fills"].([]any); ok {
			return parseFillList(list)
		}
		if list, ok := payloadMap["data"].([]any); ok {
			return parseFillList(list)
		}
	}
	return nil
}

func parseFillList(raw []any) []Fill {
	if len(raw) == 0 {
		return nil
	}
	fills := make([]Fill, 0, len(raw))
	for _, item := range raw {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		fills = append(fills, parseFill(entry))
	}
	return fills
}

func parseFill(entry map[string]any) Fill {
	return Fill{
		Asset:     stringFromAny(entry["coin"]),
		Side:      stringFromAny(entry["side"]),
		Size:      floatOrZero(entry["sz"]),
		Price:     floatOrZero(entry["px"]),
		ClosedPnL: floatOrZero(entry["closedPnl"]),
		TimeMS:    int64FromAny(entry["time"]),
		Hash:      stringFromAny(entry["hash"]),
	}
}

func stringFromAny(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func floatOrZero(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case float32:
		return float64(val)
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0
		}
		return f
	}
	return 0
}

func int64FromAny(v any) int64 {
	switch val := v.(type) {
	case int64:
		return val
	case int:
		return int64(val)
	case float64:
		return int64(val)
	case json.Number:
		i, err := val.Int64()
		if err != nil {
			return 0
		}
		return i
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64)
		if err != nil {
			return 0
		}
		return i
	}
	return 0
}
