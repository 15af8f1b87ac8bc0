package match

import (
	"fmt"

	"droog.gg/internal/sim/tuning"
)

// Personality selects one of the four fixed patrol targeting strategies.
type Personality uint8

const (
	Pursuer Personality = iota
	Ambusher
	Flanker
	Shy
)

func (p Personality) String() string {
	switch p {
	case Pursuer:
		return "PURSUER"
	case Ambusher:
		return "AMBUSHER"
	case Flanker:
		return "FLANKER"
	case Shy:
		return "SHY"
	}
	return "UNKNOWN"
}

// Agent is one patrol unit. Position is owned by the host's movement layer
// and pushed in each tick; Target and Speed are this core's advisory outputs.
type Agent struct {
	ID          string
	Personality Personality

	Pos    Vec2
	Target Vec2
	Speed  float64

	captureRadius float64
}

// Tier compositions are fixed: the patrol escalates by adding the next
// personality, never by reshuffling, so a tier is always the same squad.
var tierComposition = [][]Personality{
	{},
	{Pursuer},
	{Pursuer, Ambusher},
	{Pursuer, Ambusher, Flanker},
	{Pursuer, Ambusher, Flanker, Shy},
}

// PopulationForTier builds the full patrol roster for a heat tier. IDs are
// stable across tiers ("cop_1" is always the pursuer), so rosters from
// adjacent tiers overlap and positions can carry over when heat rises.
func PopulationForTier(tier int, t tuning.Tuning) []*Agent {
	if tier < 0 {
		tier = 0
	}
	if tier >= len(tierComposition) {
		tier = len(tierComposition) - 1
	}
	comp := tierComposition[tier]

	anchors := t.Patrol.ScatterAnchors
	agents := make([]*Agent, 0, len(comp))
	for i, pers := range comp {
		a := &Agent{
			ID:            fmt.Sprintf("cop_%d", i+1),
			Personality:   pers,
			Speed:         t.Patrol.BaseSpeed,
			captureRadius: t.Patrol.CaptureRadius,
		}
		if len(anchors) > 0 {
			an := anchors[i%len(anchors)]
			a.Pos = Vec2{an[0], an[1]}
		}
		agents = append(agents, a)
	}
	return agents
}
