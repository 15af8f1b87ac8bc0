package match

import (
	"testing"

	"droog.gg/internal/sim/tuning"
)

func TestSlotSmell_AccumulatesPerMinute(t *testing.T) {
	slot := GrowSlot{Phase: PlantGrowing, StrainLevel: 3, PlantedAt: 1000}

	cases := []struct {
		now  int64
		want uint16
	}{
		{1000, 0},
		{1059, 0},
		{1060, 4},  // one minute at rate 4
		{1179, 4},
		{1180, 12}, // three minutes
	}
	for _, c := range cases {
		if got := SlotSmell(slot, c.now); got != c.want {
			t.Errorf("SlotSmell at %d = %d, want %d", c.now, got, c.want)
		}
	}
}

func TestSlotSmell_OnlyStoredGrowingSmells(t *testing.T) {
	now := int64(10_000)
	ready := GrowSlot{Phase: PlantReady, StrainLevel: 3, PlantedAt: 0}
	empty := GrowSlot{Phase: PlantEmpty, StrainLevel: 3, PlantedAt: 0}
	if SlotSmell(ready, now) != 0 || SlotSmell(empty, now) != 0 {
		t.Fatal("only plants the ledger stores as Growing may smell")
	}

	// A growing plant past its derived ready time still smells: the chain
	// keeps charging until it sees a harvest.
	overdue := GrowSlot{Phase: PlantGrowing, StrainLevel: 1, PlantedAt: now - 300}
	if got := SlotSmell(overdue, now); got != 5 {
		t.Fatalf("overdue plant smell = %d, want 5", got)
	}
}

func TestSlotSmell_ClockSkewReadsZero(t *testing.T) {
	// PlantedAt in the local future (ledger clock ahead of ours) must not
	// underflow into a huge smell.
	slot := GrowSlot{Phase: PlantGrowing, StrainLevel: 2, PlantedAt: 5000}
	if got := SlotSmell(slot, 4000); got != 0 {
		t.Fatalf("future plant smell = %d, want 0", got)
	}
}

func TestPlayerSmell_SaturatingSum(t *testing.T) {
	now := int64(1 << 40)
	slots := []GrowSlot{
		{Phase: PlantGrowing, StrainLevel: 3, PlantedAt: 0},
		{Phase: PlantGrowing, StrainLevel: 3, PlantedAt: 0},
	}
	if got := PlayerSmell(slots, now); got != 0xffff {
		t.Fatalf("smell = %d, want saturated 0xffff", got)
	}
}

func TestReadyDerived(t *testing.T) {
	slot := GrowSlot{Phase: PlantGrowing, StrainLevel: 2, PlantedAt: 1000}
	if slot.ReadyDerived(1029) {
		t.Fatal("level-2 plant ready before 30s")
	}
	if !slot.ReadyDerived(1030) {
		t.Fatal("level-2 plant not ready at 30s")
	}
	if (GrowSlot{Phase: PlantEmpty}).ReadyDerived(9999) {
		t.Fatal("empty slot can never be ready")
	}
	if !(GrowSlot{Phase: PlantReady, StrainLevel: 1}).ReadyDerived(0) {
		t.Fatal("stored Ready is always ready")
	}
}

func TestInventory(t *testing.T) {
	inv := Inventory{Level1: 2, Level2: 3, Level3: 1}
	if inv.Total() != 6 {
		t.Fatalf("total = %d, want 6", inv.Total())
	}
	if inv.HasSpace() {
		t.Fatal("inventory at capacity should have no space")
	}
	if inv.Count(2) != 3 || inv.Count(9) != 0 {
		t.Fatal("count lookup wrong")
	}
}

func TestAggregateHeat_MalformedDefaultsToMinimum(t *testing.T) {
	tun := tuning.Default()

	h := AggregateHeat(nil, nil, 1000, tun)
	if h.Smell != 0 || h.Tier != 0 {
		t.Fatalf("nil snapshots heat = %+v, want zero", h)
	}

	// Out-of-range strain levels contribute nothing rather than erroring.
	bad := []GrowSlot{{Phase: PlantGrowing, StrainLevel: 9, PlantedAt: 0}}
	h = AggregateHeat(bad, nil, 100000, tun)
	if h.Smell != 0 {
		t.Fatalf("malformed strain level produced smell %d", h.Smell)
	}
}

func TestAggregateHeat_TierBands(t *testing.T) {
	tun := tuning.Default() // thresholds 1, 5, 10, 20
	now := int64(60 * 10)

	// One level-1 plant growing for 10 minutes: smell 10 → tier 3.
	a := []GrowSlot{{Phase: PlantGrowing, StrainLevel: 1, PlantedAt: 0}}
	h := AggregateHeat(a, nil, now, tun)
	if h.Smell != 10 || h.Tier != 3 {
		t.Fatalf("heat = %+v, want smell 10 tier 3", h)
	}

	// Both players combine.
	b := []GrowSlot{{Phase: PlantGrowing, StrainLevel: 3, PlantedAt: now - 180}}
	h = AggregateHeat(a, b, now, tun)
	if h.Smell != 22 || h.Tier != 4 {
		t.Fatalf("combined heat = %+v, want smell 22 tier 4", h)
	}
}
