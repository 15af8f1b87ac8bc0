package match

import (
	"time"

	"droog.gg/internal/sim/rotation"
	"droog.gg/internal/sim/tuning"
)

// Identity is the ledger-recorded match identity. Immutable for the match's
// lifetime; everything deterministic keys off it.
type Identity struct {
	MatchID uint64
	StartTS int64
	EndTS   int64
}

type Config struct {
	Identity Identity

	// PlayerA/PlayerB in ledger order; Primary is the local player the
	// patrol hunts.
	PlayerA string
	PlayerB string
	Primary string

	Tuning tuning.Tuning

	// Now is the wall-clock source; nil means time.Now.
	Now func() time.Time
}

type playerState struct {
	pos     Vec2
	heading Vec2
}

// deliveryObservation is the last delivery state read off the ledger.
type deliveryObservation struct {
	bucket       uint64
	slots        []uint8
	lastUpdateTS int64
}

// Session is the speculative mirror of one match. It runs single-threaded
// inside the host's tick loop: all mutation happens in Step and in the Apply*
// setters, which the owner must call from the same goroutine. Everything the
// UI reads comes out as copies via Snapshot and DrainEvents.
type Session struct {
	cfg   Config
	clock *Clock
	tun   tuning.Tuning

	phase   *PhaseTimer
	capture *CaptureMachine

	agents     map[string]*Agent
	agentOrder []string
	tier       int
	heat       Heat

	players map[string]*playerState

	effects []Effect
	pickups []Pickup
	effTun  effectTuning

	// Ledger-observed inputs, latest value wins.
	growA    []GrowSlot
	growB    []GrowSlot
	served   map[uint8]int64
	observed *deliveryObservation

	// Speculative rotation for the current bucket.
	bucket    uint64
	specSlots []uint8

	events []Event
}

func NewSession(cfg Config) *Session {
	t := cfg.Tuning
	if t.TickRateHz == 0 {
		t = tuning.Default()
	}
	if cfg.Primary == "" {
		cfg.Primary = cfg.PlayerA
	}

	s := &Session{
		cfg:     cfg,
		clock:   NewClock(cfg.Identity.StartTS, cfg.Identity.EndTS, cfg.Now),
		tun:     t,
		phase:   NewPhaseTimer(t.Phase.LowSecs, t.Phase.HighSecs),
		capture: NewCaptureMachine(t.Bust.TimeoutSecs, []string{cfg.PlayerA, cfg.PlayerB}),
		agents:  map[string]*Agent{},
		players: map[string]*playerState{
			cfg.PlayerA: {},
			cfg.PlayerB: {},
		},
		served: map[uint8]int64{},
		effTun: effectTuning{
			durations: [numEffectKinds]float64{
				t.Effects.SlowSecs,
				t.Effects.DizzySecs,
				t.Effects.DistractSecs,
			},
			delayFactor: t.Effects.SlowDelayFactor,
			turnFactor:  t.Effects.DizzyTurnFactor,
		},
	}
	return s
}

func (s *Session) Clock() *Clock { return s.clock }

// SetPlayer pushes a player's position and heading from the host's movement
// layer.
func (s *Session) SetPlayer(id string, pos, heading Vec2) {
	if p, ok := s.players[id]; ok {
		p.pos = pos
		p.heading = heading
	}
}

// SetAgentPos pushes an agent's integrated position back in. Unknown IDs are
// ignored (the roster may have shrunk since the host last ticked).
func (s *Session) SetAgentPos(id string, pos Vec2) {
	if a, ok := s.agents[id]; ok {
		a.Pos = pos
	}
}

// ApplyGrow replaces a player's grow-slot snapshot with a fresh ledger read.
func (s *Session) ApplyGrow(playerID string, slots []GrowSlot) {
	cp := make([]GrowSlot, len(slots))
	copy(cp, slots)
	switch playerID {
	case s.cfg.PlayerA:
		s.growA = cp
	case s.cfg.PlayerB:
		s.growB = cp
	}
}

// ApplyServed records a slot's last-served timestamp from the ledger.
func (s *Session) ApplyServed(slot uint8, lastServedTS int64) {
	if slot < rotation.NumSlots {
		s.served[slot] = lastServedTS
	}
}

// ApplyDelivery feeds the ledger's actually-accepted delivery set. If it
// contradicts the speculative set for the same bucket, the ledger wins and a
// RECONCILED event fires; speculation is never pushed the other way.
func (s *Session) ApplyDelivery(lastUpdateTS int64, slots []uint8) {
	live := make([]uint8, 0, len(slots))
	for _, idx := range slots {
		if idx < rotation.NumSlots {
			live = append(live, idx)
		}
	}
	obs := &deliveryObservation{
		bucket:       rotation.Bucket(lastUpdateTS),
		slots:        live,
		lastUpdateTS: lastUpdateTS,
	}
	s.observed = obs

	if obs.bucket == s.bucket && s.specSlots != nil && !equalSlots(obs.slots, s.specSlots) {
		s.specSlots = append([]uint8(nil), obs.slots...)
		s.events = append(s.events, Event{
			Type:    EventReconciled,
			Elapsed: s.clock.Elapsed(),
			Bucket:  obs.bucket,
			Slots:   append([]uint8(nil), obs.slots...),
		})
	}
}

// AddPickup queues a collection event for the next Step.
func (s *Session) AddPickup(p Pickup) {
	s.pickups = append(s.pickups, p)
}

// Step advances the session to the current wall-clock instant. Safe to call
// at any cadence; every timeout and edge is expressed against the clock, not
// the tick count.
func (s *Session) Step() {
	elapsed := s.clock.Elapsed()
	unix := s.clock.Unix()

	// Pressure. Malformed or missing snapshots read as minimum tier.
	s.heat = AggregateHeat(s.growA, s.growB, unix, s.tun)
	if s.heat.Smell > 0 {
		s.phase.MarkPressure(elapsed)
	}

	// Phase edge.
	phase, edge := s.phase.Update(elapsed)
	if edge {
		s.events = append(s.events, Event{
			Type:    EventPhaseChanged,
			Elapsed: elapsed,
			Phase:   phase,
			Cycle:   s.phase.CycleIndex(elapsed),
		})
	}

	// Roster follows the tier; positions carry over by ID.
	if s.heat.Tier != s.tier || s.agentOrder == nil {
		s.rebuildRoster(s.heat.Tier)
	}

	// Effects: expire, then attach queued pickups.
	s.stepEffects(elapsed)

	// Rotation bucket.
	if b := rotation.Bucket(unix); b != s.bucket || s.specSlots == nil {
		s.bucket = b
		s.specSlots = rotation.SelectSlots(rotation.SeedForBucket(s.cfg.Identity.MatchID, b))
		if s.observed != nil && s.observed.bucket == b && !equalSlots(s.observed.slots, s.specSlots) {
			// The ledger already rotated this bucket and disagrees.
			s.specSlots = append([]uint8(nil), s.observed.slots...)
		}
		s.events = append(s.events, Event{
			Type:    EventRotationChanged,
			Elapsed: elapsed,
			Bucket:  b,
			Slots:   append([]uint8(nil), s.specSlots...),
		})
	}

	// Targeting against tick-start positions.
	s.stepTargeting(phase, elapsed)

	// Capture edges, then timed releases.
	s.stepCapture(phase, elapsed)
}

func (s *Session) rebuildRoster(tier int) {
	fresh := PopulationForTier(tier, s.tun)
	next := make(map[string]*Agent, len(fresh))
	order := make([]string, 0, len(fresh))
	for _, a := range fresh {
		if prev, ok := s.agents[a.ID]; ok {
			a.Pos = prev.Pos
		}
		next[a.ID] = a
		order = append(order, a.ID)
	}
	s.agents = next
	s.agentOrder = order
	s.tier = tier
}

func (s *Session) stepEffects(elapsed float64) {
	live := s.effects[:0]
	for _, e := range s.effects {
		if e.ExpiredAt(elapsed) {
			s.events = append(s.events, Event{
				Type:    EventEffectExpired,
				Elapsed: elapsed,
				AgentID: e.AgentID,
				Effect:  e.Kind,
			})
			continue
		}
		live = append(live, e)
	}
	s.effects = live

	for _, p := range s.pickups {
		kind, victim := rollEffect(s.cfg.Identity.MatchID, p.Seq, s.agentOrder)
		if victim == "" {
			continue
		}
		e := Effect{
			Kind:    kind,
			AgentID: victim,
			Start:   elapsed,
			End:     elapsed + s.effTun.durations[kind],
		}
		s.effects = append(s.effects, e)
		s.events = append(s.events, Event{
			Type:     EventEffectStarted,
			Elapsed:  elapsed,
			PlayerID: p.PlayerID,
			AgentID:  victim,
			Effect:   kind,
		})
	}
	s.pickups = s.pickups[:0]
}

func (s *Session) stepTargeting(phase PhaseKind, elapsed float64) {
	// Publish tick-start positions first so no agent sees another's
	// same-tick output.
	prevPos := make(map[string]Vec2, len(s.agents))
	for id, a := range s.agents {
		prevPos[id] = a.Pos
	}

	players, primary := s.playerViews()

	in := targetingInput{
		players:  players,
		primary:  primary,
		phase:    phase,
		elapsed:  elapsed,
		prevPos:  prevPos,
		agentIDs: s.agentOrder,
		tun: patrolTuning{
			baseSpeed:       s.tun.Patrol.BaseSpeed,
			pursuitRampMax:  s.tun.Patrol.PursuitRampMax,
			pursuitRampSecs: s.tun.Patrol.PursuitRampSecs,
			ambushLead:      s.tun.Patrol.AmbushLead,
			flankOffset:     s.tun.Patrol.FlankOffset,
			shyRadius:       s.tun.Patrol.ShyRadius,
			scatterAnchors:  anchorsToVecs(s.tun.Patrol.ScatterAnchors),
		},
	}

	for i, id := range s.agentOrder {
		a := s.agents[id]
		target, speed := targetFor(a, i, in)

		mods := modifiersFor(s.effects, id, elapsed, s.effTun)
		speed *= mods.DelayFactor
		if mods.Retarget && len(players) > 1 {
			// A distracted agent chases the other player for the duration.
			other := players[(primary+1)%len(players)]
			target = other.Pos
		}

		a.Target = target
		a.Speed = speed
	}
}

func (s *Session) stepCapture(phase PhaseKind, elapsed float64) {
	players, _ := s.playerViews()
	for _, id := range s.agentOrder {
		a := s.agents[id]
		for _, p := range players {
			if captureHolds(a, p, phase) && s.capture.Bust(p.ID, a.ID, elapsed) {
				s.events = append(s.events, Event{
					Type:     EventPlayerBusted,
					Elapsed:  elapsed,
					PlayerID: p.ID,
					AgentID:  a.ID,
				})
			}
		}
	}
	for _, id := range s.capture.Update(elapsed) {
		s.events = append(s.events, Event{
			Type:     EventPlayerReleased,
			Elapsed:  elapsed,
			PlayerID: id,
		})
	}
}

func (s *Session) playerViews() ([]PlayerView, int) {
	ids := []string{s.cfg.PlayerA, s.cfg.PlayerB}
	views := make([]PlayerView, 0, len(ids))
	primary := 0
	for i, id := range ids {
		ps := s.players[id]
		views = append(views, PlayerView{
			ID:      id,
			Pos:     ps.pos,
			Heading: ps.heading,
			Active:  s.capture.Active(id),
		})
		if id == s.cfg.Primary {
			primary = i
		}
	}
	return views, primary
}

// DrainEvents returns the edge events accumulated since the last drain and
// clears the queue.
func (s *Session) DrainEvents() []Event {
	out := s.events
	s.events = nil
	return out
}

// Reset atomically clears every latch (the phase onset mark, all capture
// records, live effects, queued pickups, and undrained events) before the
// next tick resumes.
func (s *Session) Reset() {
	s.phase.Reset()
	s.capture.Reset()
	s.effects = nil
	s.pickups = nil
	s.events = nil
}

func anchorsToVecs(a [][2]float64) []Vec2 {
	out := make([]Vec2, len(a))
	for i, v := range a {
		out[i] = Vec2{v[0], v[1]}
	}
	return out
}

func equalSlots(a, b []uint8) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
