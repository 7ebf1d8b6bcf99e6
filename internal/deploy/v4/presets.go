package v4

import "clankerSDK/internal/ticks"

// StandardStartingTick is the tick of a 10 ETH market cap.
const StandardStartingTick = -230400

// PositionsStandard is a single range from the standard start to ~$1.5M.
func PositionsStandard() []Position {
	return []Position{
		{TickLower: StandardStartingTick, TickUpper: -120000, PositionBps: 10000},
	}
}

// PositionsProject spreads liquidity over five overlapping ranges.
func PositionsProject() []Position {
	return []Position{
		{TickLower: StandardStartingTick, TickUpper: -214000, PositionBps: 1000},
		{TickLower: -214000, TickUpper: -155000, PositionBps: 5000},
		{TickLower: -202000, TickUpper: -155000, PositionBps: 1500},
		{TickLower: -155000, TickUpper: -120000, PositionBps: 2000},
		{TickLower: -141000, TickUpper: -120000, PositionBps: 500},
	}
}

// PositionsByName returns "standard" or "project".
func PositionsByName(name string) ([]Position, bool) {
	switch name {
	case "standard", "Standard":
		return PositionsStandard(), true
	case "project", "Project":
		return PositionsProject(), true
	default:
		return nil, false
	}
}

// DefaultPositions returns the standard preset for the standard start and
// otherwise one full-share range starting at tick.
func DefaultPositions(tick int) []Position {
	if tick == StandardStartingTick {
		return PositionsStandard()
	}
	upper := -120000
	if tick >= upper {
		upper = ticks.Align(ticks.MaxTick, ticks.Spacing)
	}
	return []Position{{TickLower: tick, TickUpper: upper, PositionBps: 10000}}
}
