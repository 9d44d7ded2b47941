package positions

// Direction is a wallet's exposure side in the tracked instrument.
type Direction string

const (
	Long  Direction = "LONG"
	Short Direction = "SHORT"
	Flat  Direction = "FLAT"
)

// Position is the canonical state of one wallet's tracked instrument at one
// sample time. Size is in base-asset units and always non-negative; Flat
// implies Size == 0 and EntryPrice == 0.
type Position struct {
	Direction     Direction `msgpack:"direction" json:"direction"`
	Size          float64   `msgpack:"size" json:"size"`
	EntryPrice    float64   `msgpack:"entry_price" json:"entry_price"`
	Leverage      float64   `msgpack:"leverage" json:"leverage"`
	AccountValue  float64   `msgpack:"account_value" json:"account_value"`
	UnrealizedPnL float64   `msgpack:"unrealized_pnl" json:"unrealized_pnl"`
}

// FlatPosition returns the canonical "no open position" state.
func FlatPosition(accountValue float64) Position {
	return Position{Direction: Flat, AccountValue: accountValue}
}

func (p Position) IsFlat() bool {
	return p.Direction == Flat
}
