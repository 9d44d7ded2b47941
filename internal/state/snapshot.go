package state

import (
	"context"

	"hl-whale-tracker/internal/positions"

	"github.com/vmihailenco/msgpack/v5"
)

const SnapshotKey = "tracker:last_snapshot"

// Snapshot holds all tracked wallets' positions as of one sample time.
// It is immutable once taken; the store keeps exactly one, replaced
// wholesale after each completed run.
type Snapshot struct {
	TakenAtMS int64                         `msgpack:"taken_at_ms"`
	Positions map[string]positions.Position `msgpack:"positions"`
}

func NewSnapshot(takenAtMS int64) Snapshot {
	return Snapshot{TakenAtMS: takenAtMS, Positions: make(map[string]positions.Position)}
}

func LoadSnapshot(ctx context.Context, store Store) (Snapshot, bool, error) {
	if store == nil {
		return Snapshot{}, false, nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	raw, ok, err := store.Get(ctx, SnapshotKey)
	if err != nil {
		return Snapshot{}, false, err
	}
	if !ok || len(raw) == 0 {
		return Snapshot{}, false, nil
	}
	var snapshot Snapshot
	if err := msgpack.Unmarshal(raw, &snapshot); err != nil {
		return Snapshot{}, false, err
	}
	return snapshot, true, nil
}

func SaveSnapshot(ctx context.Context, store Store, snapshot Snapshot) error {
	if store == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	payload, err := msgpack.Marshal(snapshot)
	if err != nil {
		return err
	}
	return store.Set(ctx, SnapshotKey, payload)
}
