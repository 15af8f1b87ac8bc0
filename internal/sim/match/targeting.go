package match

// PlayerView is the per-tick player input to targeting: where they are, which
// way they are moving, and whether they can currently be busted.
type PlayerView struct {
	ID      string
	Pos     Vec2
	Heading Vec2
	Active  bool
}

// targetingInput is the immutable view a single tick's targeting pass works
// from. prevPos holds every agent's position as published at tick start, so
// no strategy can observe another agent's same-tick output.
type targetingInput struct {
	players  []PlayerView
	primary  int
	phase    PhaseKind
	elapsed  float64
	prevPos  map[string]Vec2
	agentIDs []string
	tun      patrolTuning
}

type patrolTuning struct {
	baseSpeed       float64
	pursuitRampMax  float64
	pursuitRampSecs float64
	ambushLead      float64
	flankOffset     float64
	shyRadius       float64
	scatterAnchors  []Vec2
}

// pursuitSpeedMult ramps patrol speed monotonically with elapsed match time:
// linear from 1.0 to rampMax over rampSecs, then flat. Pure in elapsed, so
// every client computes the same multiplier without agent-local state.
func pursuitSpeedMult(elapsed, rampMax, rampSecs float64) float64 {
	if rampSecs <= 0 || rampMax <= 1 {
		return 1
	}
	if elapsed <= 0 {
		return 1
	}
	frac := elapsed / rampSecs
	if frac > 1 {
		frac = 1
	}
	return 1 + (rampMax-1)*frac
}

// targetFor computes one agent's target and advisory speed for this tick.
func targetFor(a *Agent, idx int, in targetingInput) (Vec2, float64) {
	speed := in.tun.baseSpeed

	// Low phase scatters everyone regardless of personality; capture is
	// impossible until the next High edge.
	if in.phase != PhaseHigh {
		return scatterAnchor(idx, in.tun.scatterAnchors), speed
	}

	primary := in.players[in.primary]

	switch a.Personality {
	case Pursuer:
		speed *= pursuitSpeedMult(in.elapsed, in.tun.pursuitRampMax, in.tun.pursuitRampSecs)
		return primary.Pos, speed

	case Ambusher:
		lead := primary.Heading.Norm().Scale(in.tun.ambushLead)
		return primary.Pos.Add(lead), speed

	case Flanker:
		// Anchor on the first other agent in the fixed ID order, read through
		// the tick-start positions. Approach the player from the side
		// opposite to that anchor.
		anchor := a.Pos
		for _, id := range in.agentIDs {
			if id == a.ID {
				continue
			}
			if p, ok := in.prevPos[id]; ok {
				anchor = p
				break
			}
		}
		toPlayer := primary.Pos.Sub(anchor).Norm()
		return primary.Pos.Add(toPlayer.Perp().Scale(in.tun.flankOffset)), speed

	case Shy:
		d := a.Pos.Dist(primary.Pos)
		if d < in.tun.shyRadius && d > 0 {
			away := a.Pos.Sub(primary.Pos).Norm().Scale(in.tun.shyRadius)
			return a.Pos.Add(away), speed
		}
		speed *= pursuitSpeedMult(in.elapsed, in.tun.pursuitRampMax, in.tun.pursuitRampSecs)
		return primary.Pos, speed
	}

	return a.Pos, speed
}

func scatterAnchor(idx int, anchors []Vec2) Vec2 {
	if len(anchors) == 0 {
		return Vec2{}
	}
	return anchors[idx%len(anchors)]
}

// captureHolds is the bust predicate: within radius, during High phase, and
// only against a player who is still on the street.
func captureHolds(a *Agent, p PlayerView, phase PhaseKind) bool {
	if phase != PhaseHigh || !p.Active {
		return false
	}
	return a.Pos.Dist(p.Pos) <= a.captureRadius
}
