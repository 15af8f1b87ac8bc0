package match

import "math"

// PhaseKind is the global patrol cycle state. Low is the cooldown window in
// which busts are impossible; High is the hunt.
type PhaseKind uint8

const (
	PhaseNone PhaseKind = iota
	PhaseLow
	PhaseHigh
)

func (p PhaseKind) String() string {
	switch p {
	case PhaseLow:
		return "LOW"
	case PhaseHigh:
		return "HIGH"
	default:
		return "NONE"
	}
}

// PhaseTimer derives the Low/High cycle purely from elapsed match time since
// heat first appeared. The onset mark and the previous-phase latch are the
// only mutable state; everything else is recomputed on demand, so two clients
// that agree on the onset instant agree on every subsequent edge without
// talking to each other.
type PhaseTimer struct {
	lowSecs  float64
	highSecs float64

	marked bool
	markAt float64 // elapsed match seconds at heat onset, sticky

	last PhaseKind
}

func NewPhaseTimer(lowSecs, highSecs float64) *PhaseTimer {
	return &PhaseTimer{lowSecs: lowSecs, highSecs: highSecs}
}

// MarkPressure records the heat-onset instant. The first call wins for the
// whole match; later calls are ignored even if heat drops back to zero.
func (p *PhaseTimer) MarkPressure(elapsed float64) {
	if p.marked {
		return
	}
	p.marked = true
	p.markAt = elapsed
}

func (p *PhaseTimer) Marked() bool { return p.marked }

// PhaseAt computes the phase at an elapsed match time, with no side effects.
func (p *PhaseTimer) PhaseAt(elapsed float64) PhaseKind {
	if !p.marked || elapsed < p.markAt {
		return PhaseNone
	}
	cycle := p.lowSecs + p.highSecs
	pos := math.Mod(elapsed-p.markAt, cycle)
	if pos < p.lowSecs {
		return PhaseLow
	}
	return PhaseHigh
}

// Update advances the edge latch. It returns the current phase and whether
// this call crossed an edge; an edge fires exactly once no matter how uneven
// the tick cadence is, because the phase itself is a pure function of time.
func (p *PhaseTimer) Update(elapsed float64) (PhaseKind, bool) {
	cur := p.PhaseAt(elapsed)
	if cur == p.last {
		return cur, false
	}
	p.last = cur
	return cur, true
}

// Phase returns the latched phase from the last Update.
func (p *PhaseTimer) Phase() PhaseKind { return p.last }

// TimeInPhase returns seconds since the current phase began, or 0 before
// onset.
func (p *PhaseTimer) TimeInPhase(elapsed float64) float64 {
	if p.PhaseAt(elapsed) == PhaseNone {
		return 0
	}
	cycle := p.lowSecs + p.highSecs
	pos := math.Mod(elapsed-p.markAt, cycle)
	if pos < p.lowSecs {
		return pos
	}
	return pos - p.lowSecs
}

// TimeToSwitch returns seconds until the next edge, or 0 before onset.
func (p *PhaseTimer) TimeToSwitch(elapsed float64) float64 {
	if p.PhaseAt(elapsed) == PhaseNone {
		return 0
	}
	cycle := p.lowSecs + p.highSecs
	pos := math.Mod(elapsed-p.markAt, cycle)
	if pos < p.lowSecs {
		return p.lowSecs - pos
	}
	return cycle - pos
}

// CycleIndex counts completed low+high cycles since onset.
func (p *PhaseTimer) CycleIndex(elapsed float64) int {
	if p.PhaseAt(elapsed) == PhaseNone {
		return 0
	}
	return int((elapsed - p.markAt) / (p.lowSecs + p.highSecs))
}

// Reset clears the onset mark and latch for a match reset.
func (p *PhaseTimer) Reset() {
	p.marked = false
	p.markAt = 0
	p.last = PhaseNone
}
