package match

import "droog.gg/internal/sim/rotation"

// Snapshot is the read-only view handed to the rendering layer. Every slice
// is a fresh copy; nothing aliases session internals.
type Snapshot struct {
	Elapsed   float64
	Remaining int64

	Phase        PhaseKind
	TimeInPhase  float64
	TimeToSwitch float64
	Cycle        int

	Heat Heat

	Bucket uint64
	// Slots is the effective availability: the current rotation set minus
	// slots still on serve cooldown.
	Slots []uint8
	// RotationSlots is the raw set before cooldown filtering.
	RotationSlots []uint8
	// LedgerConfirmed reports whether the rotation set was observed on the
	// ledger for this bucket rather than speculated.
	LedgerConfirmed bool

	ActiveStrains []uint8
	CanPlant      bool

	Agents  []AgentSnapshot
	Players []PlayerSnapshot
	Effects []Effect
}

type AgentSnapshot struct {
	ID          string
	Personality Personality
	Pos         Vec2
	Target      Vec2
	Speed       float64
}

type PlayerSnapshot struct {
	ID       string
	Pos      Vec2
	State    CaptureState
	ByAgent  string
	BustedAt float64
}

// Snapshot captures the current derived state.
func (s *Session) Snapshot() Snapshot {
	elapsed := s.clock.Elapsed()
	unix := s.clock.Unix()

	snap := Snapshot{
		Elapsed:       elapsed,
		Remaining:     s.clock.Remaining(),
		Phase:         s.phase.Phase(),
		TimeInPhase:   s.phase.TimeInPhase(elapsed),
		TimeToSwitch:  s.phase.TimeToSwitch(elapsed),
		Cycle:         s.phase.CycleIndex(elapsed),
		Heat:          s.heat,
		Bucket:        s.bucket,
		RotationSlots: append([]uint8(nil), s.specSlots...),
		ActiveStrains: rotation.ActiveStrains(s.cfg.Identity.StartTS, unix),
		CanPlant:      s.clock.CanPlant(),
	}
	snap.LedgerConfirmed = s.observed != nil && s.observed.bucket == s.bucket
	snap.Slots = s.effectiveSlots(unix)

	for _, id := range s.agentOrder {
		a := s.agents[id]
		snap.Agents = append(snap.Agents, AgentSnapshot{
			ID:          a.ID,
			Personality: a.Personality,
			Pos:         a.Pos,
			Target:      a.Target,
			Speed:       a.Speed,
		})
	}

	for _, id := range []string{s.cfg.PlayerA, s.cfg.PlayerB} {
		rec, _ := s.capture.Record(id)
		ps := s.players[id]
		snap.Players = append(snap.Players, PlayerSnapshot{
			ID:       id,
			Pos:      ps.pos,
			State:    rec.State,
			ByAgent:  rec.ByAgent,
			BustedAt: rec.BustedAt,
		})
	}

	for _, e := range s.effects {
		if !e.ExpiredAt(elapsed) {
			snap.Effects = append(snap.Effects, e)
		}
	}

	return snap
}

// effectiveSlots filters the current rotation set down to slots whose serve
// cooldown has cleared.
func (s *Session) effectiveSlots(unix int64) []uint8 {
	out := make([]uint8, 0, len(s.specSlots))
	for _, idx := range s.specSlots {
		if rotation.SlotAvailable(idx, s.served[idx], unix) {
			out = append(out, idx)
		}
	}
	return out
}

// PreviewSale returns the reputation delta the ledger would apply for selling
// a strain level to a slot right now, and whether the sale would be accepted.
// Purely speculative; the ledger remains the judge.
func (s *Session) PreviewSale(slot uint8, strainLevel uint8) (int32, bool) {
	unix := s.clock.Unix()
	if !s.clock.Started() || s.clock.Ended() {
		return 0, false
	}
	if !rotation.StrainValidForSlot(slot, strainLevel) {
		return 0, false
	}
	if !rotation.SlotAvailable(slot, s.served[slot], unix) {
		return 0, false
	}
	in := false
	for _, idx := range s.specSlots {
		if idx == slot {
			in = true
			break
		}
	}
	if !in {
		return 0, false
	}
	return rotation.ReputationDelta(rotation.LayerFromIndex(slot), strainLevel), true
}
