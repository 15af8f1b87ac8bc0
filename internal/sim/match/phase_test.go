package match

import "testing"

func newTestTimer() *PhaseTimer {
	return NewPhaseTimer(7, 20)
}

func TestPhaseTimer_NoneUntilMarked(t *testing.T) {
	p := newTestTimer()
	for _, e := range []float64{0, 5, 100, 10000} {
		if got := p.PhaseAt(e); got != PhaseNone {
			t.Fatalf("PhaseAt(%v) = %v before mark, want NONE", e, got)
		}
	}
	if p.TimeInPhase(50) != 0 || p.TimeToSwitch(50) != 0 || p.CycleIndex(50) != 0 {
		t.Fatal("derived accessors should be zero before onset")
	}
}

func TestPhaseTimer_CycleBoundaries(t *testing.T) {
	p := newTestTimer()
	const t0 = 100.0
	p.MarkPressure(t0)

	cases := []struct {
		offset float64
		want   PhaseKind
	}{
		{0, PhaseLow},
		{6.999, PhaseLow},
		{7.001, PhaseHigh},
		{26.999, PhaseHigh},
		{27.001, PhaseLow}, // cycle wraps
		{33.999, PhaseLow},
		{34.001, PhaseHigh},
	}
	for _, c := range cases {
		if got := p.PhaseAt(t0 + c.offset); got != c.want {
			t.Errorf("PhaseAt(T0+%v) = %v, want %v", c.offset, got, c.want)
		}
	}
}

func TestPhaseTimer_MarkIsSticky(t *testing.T) {
	p := newTestTimer()
	p.MarkPressure(10)
	p.MarkPressure(500) // must be ignored
	if got := p.PhaseAt(10 + 3); got != PhaseLow {
		t.Fatalf("phase after first mark = %v, want LOW", got)
	}
	if got := p.PhaseAt(10 + 8); got != PhaseHigh {
		t.Fatalf("second mark rearmed the cycle: got %v", got)
	}
}

func TestPhaseTimer_EdgeFiresOncePerTransition(t *testing.T) {
	p := newTestTimer()
	p.MarkPressure(0)

	edges := 0
	// Irregular cadence, including a tick that jumps clean over a phase
	// boundary: the edge must still fire exactly once.
	times := []float64{0.1, 0.2, 3, 6.9, 7.05, 7.06, 12, 26, 27.5, 27.6, 33, 35}
	var wantPhases = []PhaseKind{
		PhaseLow, PhaseLow, PhaseLow, PhaseLow,
		PhaseHigh, PhaseHigh, PhaseHigh, PhaseHigh,
		PhaseLow, PhaseLow, PhaseLow, PhaseHigh,
	}
	for i, e := range times {
		phase, edge := p.Update(e)
		if phase != wantPhases[i] {
			t.Fatalf("Update(%v) phase = %v, want %v", e, phase, wantPhases[i])
		}
		if edge {
			edges++
		}
	}
	// Edges: None→Low at 0.1, Low→High at 7.05, High→Low at 27.5, Low→High
	// at 35.
	if edges != 4 {
		t.Fatalf("edge count = %d, want 4", edges)
	}
}

func TestPhaseTimer_DerivedAccessors(t *testing.T) {
	p := newTestTimer()
	p.MarkPressure(50)

	if got := p.TimeInPhase(50 + 3); got != 3 {
		t.Fatalf("TimeInPhase in LOW = %v, want 3", got)
	}
	if got := p.TimeToSwitch(50 + 3); got != 4 {
		t.Fatalf("TimeToSwitch in LOW = %v, want 4", got)
	}
	if got := p.TimeInPhase(50 + 10); got != 3 {
		t.Fatalf("TimeInPhase in HIGH = %v, want 3", got)
	}
	if got := p.TimeToSwitch(50 + 10); got != 17 {
		t.Fatalf("TimeToSwitch in HIGH = %v, want 17", got)
	}
	if got := p.CycleIndex(50 + 26); got != 0 {
		t.Fatalf("CycleIndex first cycle = %v, want 0", got)
	}
	if got := p.CycleIndex(50 + 28); got != 1 {
		t.Fatalf("CycleIndex second cycle = %v, want 1", got)
	}
	if got := p.CycleIndex(50 + 54.5); got != 2 {
		t.Fatalf("CycleIndex third cycle = %v, want 2", got)
	}
}

func TestPhaseTimer_Reset(t *testing.T) {
	p := newTestTimer()
	p.MarkPressure(0)
	p.Update(10)
	p.Reset()
	if p.Marked() || p.Phase() != PhaseNone {
		t.Fatal("reset did not clear the onset mark and latch")
	}
	p.MarkPressure(100)
	if got := p.PhaseAt(103); got != PhaseLow {
		t.Fatalf("phase after re-mark = %v, want LOW", got)
	}
}
