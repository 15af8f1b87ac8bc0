package match

import "droog.gg/internal/sim/tuning"

// Heat is the derived pressure state: the combined smell of both players'
// grows mapped to a patrol tier. It is recomputed from scratch on every tick
// and remembers nothing.
type Heat struct {
	Smell uint16
	Tier  int
}

// AggregateHeat folds both players' slot snapshots into the current heat.
// Either snapshot may be nil or short (not yet observed, or a malformed
// update); missing data reads as zero smell, so the failure mode is always
// the minimum tier, never a phantom patrol.
func AggregateHeat(a, b []GrowSlot, now int64, t tuning.Tuning) Heat {
	smell := satAddU16(PlayerSmell(a, now), PlayerSmell(b, now))
	return Heat{Smell: smell, Tier: t.Tier(smell)}
}
