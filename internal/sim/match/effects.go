package match

import "droog.gg/internal/sim/rotation"

// EffectKind is a time-boxed behavioral modifier attached to a single patrol
// agent by a pickup. Effects only touch how an agent moves, never the patrol
// headcount, the phase cycle, or bust eligibility.
type EffectKind uint8

const (
	EffectSlow EffectKind = iota
	EffectDizzy
	EffectDistract

	numEffectKinds = 3
)

func (k EffectKind) String() string {
	switch k {
	case EffectSlow:
		return "SLOW"
	case EffectDizzy:
		return "DIZZY"
	case EffectDistract:
		return "DISTRACT"
	}
	return "UNKNOWN"
}

// Effect is one live modifier. Expiry is pure in (Start, End, now); nothing
// ticks down.
type Effect struct {
	Kind    EffectKind
	AgentID string
	Start   float64
	End     float64
}

func (e Effect) ExpiredAt(elapsed float64) bool { return elapsed >= e.End }

// Pickup is a collection event reported by the host when a player grabs a
// street pickup. Seq must increase per pickup within the match; it feeds the
// deterministic kind/target roll so both clients resolve the same pickup the
// same way.
type Pickup struct {
	PlayerID string
	Seq      uint64
}

// EffectModifiers is the aggregate adjustment a set of live effects applies
// to one agent.
type EffectModifiers struct {
	DelayFactor float64 // multiplier on advisory speed
	TurnFactor  float64 // multiplier on turn rate
	Retarget    bool    // force a fresh target this tick
}

// effectDurations and factors come from tuning at session construction.
type effectTuning struct {
	durations   [numEffectKinds]float64
	delayFactor float64
	turnFactor  float64
}

// rollEffect derives the effect kind and victim deterministically from the
// match identity and the pickup sequence, reusing the ledger's avalanche
// mixer so the roll is identical on every client.
func rollEffect(matchID, seq uint64, agentIDs []string) (EffectKind, string) {
	h := rotation.SeedForBucket(matchID, seq)
	kind := EffectKind(h % numEffectKinds)
	if len(agentIDs) == 0 {
		return kind, ""
	}
	victim := agentIDs[(h>>8)%uint64(len(agentIDs))]
	return kind, victim
}

// modifiersFor folds every live effect on an agent into one adjustment.
func modifiersFor(effects []Effect, agentID string, elapsed float64, t effectTuning) EffectModifiers {
	m := EffectModifiers{DelayFactor: 1, TurnFactor: 1}
	for _, e := range effects {
		if e.AgentID != agentID || e.ExpiredAt(elapsed) {
			continue
		}
		switch e.Kind {
		case EffectSlow:
			m.DelayFactor *= t.delayFactor
		case EffectDizzy:
			m.TurnFactor *= t.turnFactor
		case EffectDistract:
			m.Retarget = true
		}
	}
	return m
}
