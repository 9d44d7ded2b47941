package tracker

import (
	"sort"

	"hl-whale-tracker/internal/positions"
	"hl-whale-tracker/internal/state"
)

// DefaultSizeIncreaseThreshold is the relative growth a same-direction
// position must exceed before it is reported as Increased.
const DefaultSizeIncreaseThreshold = 0.5

type ChangeKind string

const (
	Opened    ChangeKind = "OPENED"
	Closed    ChangeKind = "CLOSED"
	Flipped   ChangeKind = "FLIPPED"
	Increased ChangeKind = "INCREASED"
	Unchanged ChangeKind = "UNCHANGED"
)

// ChangeEvent is the classified difference between two samples of one
// wallet. Previous is nil on a cold start, and either side may be a Flat
// position when the wallet was only present in one snapshot.
type ChangeEvent struct {
	Wallet   string
	Kind     ChangeKind
	Previous *positions.Position
	Current  *positions.Position
}

// Classify applies the change decision table to one wallet's position pair.
// The rules are ordered; the first match wins:
//
//  1. no prior snapshot            -> Unchanged (cold start never alerts)
//  2. flat -> non-flat             -> Opened
//  3. non-flat -> flat             -> Closed
//  4. direction changed, both open -> Flipped
//  5. same direction, size grew by strictly more than threshold -> Increased
//  6. anything else (including any size decrease) -> Unchanged
func Classify(prev *positions.Position, cur positions.Position, threshold float64) ChangeKind {
	if prev == nil {
		return Unchanged
	}
	switch {
	case prev.IsFlat() && !cur.IsFlat():
		return Opened
	case !prev.IsFlat() && cur.IsFlat():
		return Closed
	case prev.Direction != cur.Direction:
		return Flipped
	case !cur.IsFlat() && cur.Size > prev.Size*(1+threshold):
		return Increased
	default:
		return Unchanged
	}
}

// Diff classifies every wallet present in either snapshot. It is pure and
// deterministic: events come back sorted by wallet. When the previous
// snapshot is absent entirely every wallet is Unchanged; when only a single
// wallet is missing on one side it is treated as Flat, so newly tracked and
// untracked wallets funnel into Opened/Closed.
func Diff(previous *state.Snapshot, current state.Snapshot, threshold float64) []ChangeEvent {
	wallets := make(map[string]struct{}, len(current.Positions))
	for wallet := range current.Positions {
		wallets[wallet] = struct{}{}
	}
	if previous != nil {
		for wallet := range previous.Positions {
			wallets[wallet] = struct{}{}
		}
	}
	ordered := make([]string, 0, len(wallets))
	for wallet := range wallets {
		ordered = append(ordered, wallet)
	}
	sort.Strings(ordered)

	events := make([]ChangeEvent, 0, len(ordered))
	for _, wallet := range ordered {
		events = append(events, classifyWallet(previous, current, wallet, threshold))
	}
	return events
}

func classifyWallet(previous *state.Snapshot, current state.Snapshot, wallet string, threshold float64) ChangeEvent {
	event := ChangeEvent{Wallet: wallet}
	if cur, ok := current.Positions[wallet]; ok {
		event.Current = &cur
	}
	if previous == nil {
		event.Kind = Classify(nil, valueOrFlat(event.Current), threshold)
		return event
	}
	if prev, ok := previous.Positions[wallet]; ok {
		event.Previous = &prev
	} else {
		flat := positions.FlatPosition(0)
		event.Previous = &flat
	}
	event.Kind = Classify(event.Previous, valueOrFlat(event.Current), threshold)
	return event
}

func valueOrFlat(p *positions.Position) positions.Position {
	if p == nil {
		return positions.FlatPosition(0)
	}
	return *p
}
