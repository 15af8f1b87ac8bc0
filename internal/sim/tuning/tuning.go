// Package tuning holds the experiential knobs of the client simulation:
// phase cadence, patrol behavior, bust timeout, pickup effects. These shape
// feel only; the bit-exact ledger mirrors (seed hash, slot selection,
// variants) live in internal/sim/rotation and are deliberately not tunable.
package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Tuning struct {
	TickRateHz int `yaml:"tick_rate_hz"`

	Phase   Phase   `yaml:"phase"`
	Patrol  Patrol  `yaml:"patrol"`
	Bust    Bust    `yaml:"bust"`
	Effects Effects `yaml:"effects"`

	// Heat thresholds, ascending. Tier = number of thresholds at or below the
	// current smell total; tier 0 means no patrol.
	HeatTiers []uint16 `yaml:"heat_tiers"`
}

type Phase struct {
	LowSecs  float64 `yaml:"low_secs"`
	HighSecs float64 `yaml:"high_secs"`
}

type Patrol struct {
	BaseSpeed     float64 `yaml:"base_speed"`
	CaptureRadius float64 `yaml:"capture_radius"`

	// Pursuit speed ramps from 1.0 to RampMax over RampSecs of match time.
	PursuitRampMax  float64 `yaml:"pursuit_ramp_max"`
	PursuitRampSecs float64 `yaml:"pursuit_ramp_secs"`

	AmbushLead  float64 `yaml:"ambush_lead"`
	FlankOffset float64 `yaml:"flank_offset"`
	ShyRadius   float64 `yaml:"shy_radius"`

	// Low-phase scatter anchors; agents beyond the list wrap around.
	ScatterAnchors [][2]float64 `yaml:"scatter_anchors"`
}

type Bust struct {
	TimeoutSecs float64 `yaml:"timeout_secs"`
}

type Effects struct {
	SlowSecs     float64 `yaml:"slow_secs"`
	DizzySecs    float64 `yaml:"dizzy_secs"`
	DistractSecs float64 `yaml:"distract_secs"`

	SlowDelayFactor float64 `yaml:"slow_delay_factor"`
	DizzyTurnFactor float64 `yaml:"dizzy_turn_factor"`
}

// Default returns the shipped tuning. Both clients in a match must run the
// same values for the patrol layer to stay in lockstep.
func Default() Tuning {
	return Tuning{
		TickRateHz: 20,
		Phase: Phase{
			LowSecs:  7,
			HighSecs: 20,
		},
		Patrol: Patrol{
			BaseSpeed:       2.4,
			CaptureRadius:   1.5,
			PursuitRampMax:  1.5,
			PursuitRampSecs: 480,
			AmbushLead:      6,
			FlankOffset:     5,
			ShyRadius:       8,
			ScatterAnchors: [][2]float64{
				{-20, -20},
				{20, -20},
				{20, 20},
				{-20, 20},
			},
		},
		Bust: Bust{
			TimeoutSecs: 8,
		},
		Effects: Effects{
			SlowSecs:        6,
			DizzySecs:       4,
			DistractSecs:    3,
			SlowDelayFactor: 0.5,
			DizzyTurnFactor: 0.35,
		},
		HeatTiers: []uint16{1, 5, 10, 20},
	}
}

// Load reads tuning.yaml, starting from the defaults so a partial file only
// overrides what it names.
func Load(path string) (Tuning, error) {
	t := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	return t, nil
}

// Tier maps a smell total to a heat tier under these thresholds.
func (t Tuning) Tier(smell uint16) int {
	tier := 0
	for _, th := range t.HeatTiers {
		if smell >= th {
			tier++
		}
	}
	return tier
}
