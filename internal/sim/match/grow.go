package match

// Client-side mirror of the ledger's grow slots. The stored plant phase comes
// straight from the last observed ledger snapshot; readiness is derived from
// timestamps on top of it, the same way the chain does lazily.

// SlotsPerPlayer is the ledger's fixed grow-slot count per player.
const SlotsPerPlayer = 6

// InventoryCapacity is the ledger's hard cap across all strain levels.
const InventoryCapacity = 6

type PlantPhase uint8

const (
	PlantEmpty PlantPhase = iota
	PlantGrowing
	PlantReady
)

// GrowSlot is one land slot as last observed on the ledger.
type GrowSlot struct {
	Phase           PlantPhase
	StrainLevel     uint8
	VariantID       uint8
	PlantedAt       int64
	LastHarvestedTS int64
}

// Growth times in seconds by strain level 1..3.
var growthTimes = [3]int64{10, 30, 60}

// Smell accumulation per whole minute by strain level 1..3.
var smellRates = [3]uint16{1, 2, 4}

// GrowthTime returns the seconds a strain level needs before harvest.
func GrowthTime(strainLevel uint8) int64 {
	if strainLevel < 1 || strainLevel > 3 {
		return 0
	}
	return growthTimes[strainLevel-1]
}

// SmellRate returns the per-minute smell for a growing strain level.
func SmellRate(strainLevel uint8) uint16 {
	if strainLevel < 1 || strainLevel > 3 {
		return 0
	}
	return smellRates[strainLevel-1]
}

// ReadyDerived reports whether a growing plant has passed its growth time,
// regardless of what phase the ledger snapshot still stores.
func (s GrowSlot) ReadyDerived(now int64) bool {
	if s.Phase == PlantReady {
		return true
	}
	if s.Phase != PlantGrowing {
		return false
	}
	return now-s.PlantedAt >= GrowthTime(s.StrainLevel)
}

// SlotSmell is the smell one slot contributes right now. Only plants the
// ledger still records as Growing smell: an unharvested plant keeps
// accumulating until the chain sees a harvest, and the client must agree with
// the chain, not with its own derivation.
func SlotSmell(s GrowSlot, now int64) uint16 {
	if s.Phase != PlantGrowing {
		return 0
	}
	elapsed := now - s.PlantedAt
	if elapsed < 0 {
		elapsed = 0
	}
	mins := uint64(elapsed / 60)
	rate := uint64(SmellRate(s.StrainLevel))
	total := mins * rate
	if total > 0xffff {
		return 0xffff
	}
	return uint16(total)
}

// PlayerSmell sums a player's slots, saturating at the ledger's u16 ceiling.
// A nil or short snapshot simply contributes less; malformed input never
// raises heat.
func PlayerSmell(slots []GrowSlot, now int64) uint16 {
	var total uint16
	for _, s := range slots {
		total = satAddU16(total, SlotSmell(s, now))
	}
	return total
}

func satAddU16(a, b uint16) uint16 {
	if a > 0xffff-b {
		return 0xffff
	}
	return a + b
}

// Inventory mirrors the ledger's harvested counts by strain level.
type Inventory struct {
	Level1 uint8
	Level2 uint8
	Level3 uint8
}

func (i Inventory) Total() uint8 {
	return satAddU8(satAddU8(i.Level1, i.Level2), i.Level3)
}

func (i Inventory) HasSpace() bool { return i.Total() < InventoryCapacity }

func (i Inventory) Count(strainLevel uint8) uint8 {
	switch strainLevel {
	case 1:
		return i.Level1
	case 2:
		return i.Level2
	case 3:
		return i.Level3
	}
	return 0
}

func satAddU8(a, b uint8) uint8 {
	if a > 0xff-b {
		return 0xff
	}
	return a + b
}
