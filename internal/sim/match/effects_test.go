package match

import "testing"

func TestRollEffect_Deterministic(t *testing.T) {
	agents := []string{"cop_1", "cop_2", "cop_3"}
	for seq := uint64(0); seq < 50; seq++ {
		k1, v1 := rollEffect(42, seq, agents)
		k2, v2 := rollEffect(42, seq, agents)
		if k1 != k2 || v1 != v2 {
			t.Fatalf("seq %d: roll not stable (%v/%s vs %v/%s)", seq, k1, v1, k2, v2)
		}
		if k1 >= numEffectKinds {
			t.Fatalf("seq %d: kind %d out of domain", seq, k1)
		}
	}
	// Different matches roll differently somewhere in a short window.
	same := true
	for seq := uint64(0); seq < 20; seq++ {
		ka, va := rollEffect(1, seq, agents)
		kb, vb := rollEffect(2, seq, agents)
		if ka != kb || va != vb {
			same = false
			break
		}
	}
	if same {
		t.Fatal("rolls do not depend on match identity")
	}
}

func TestRollEffect_NoAgents(t *testing.T) {
	_, victim := rollEffect(42, 0, nil)
	if victim != "" {
		t.Fatalf("victim with empty roster = %q, want empty", victim)
	}
}

func TestEffect_Expiry(t *testing.T) {
	e := Effect{Kind: EffectSlow, AgentID: "cop_1", Start: 10, End: 16}
	if e.ExpiredAt(15.999) {
		t.Fatal("effect expired early")
	}
	if !e.ExpiredAt(16) {
		t.Fatal("effect should expire exactly at end")
	}
}

func TestModifiersFor(t *testing.T) {
	tun := effectTuning{
		durations:   [numEffectKinds]float64{6, 4, 3},
		delayFactor: 0.5,
		turnFactor:  0.35,
	}
	effects := []Effect{
		{Kind: EffectSlow, AgentID: "cop_1", Start: 0, End: 6},
		{Kind: EffectDizzy, AgentID: "cop_1", Start: 0, End: 4},
		{Kind: EffectDistract, AgentID: "cop_2", Start: 0, End: 3},
		{Kind: EffectSlow, AgentID: "cop_3", Start: 0, End: 1}, // expired below
	}

	m := modifiersFor(effects, "cop_1", 2, tun)
	if m.DelayFactor != 0.5 || m.TurnFactor != 0.35 || m.Retarget {
		t.Fatalf("cop_1 modifiers = %+v", m)
	}

	m = modifiersFor(effects, "cop_2", 2, tun)
	if m.DelayFactor != 1 || !m.Retarget {
		t.Fatalf("cop_2 modifiers = %+v", m)
	}

	m = modifiersFor(effects, "cop_3", 2, tun)
	if m.DelayFactor != 1 {
		t.Fatalf("expired effect still applied: %+v", m)
	}

	m = modifiersFor(effects, "cop_9", 2, tun)
	if m.DelayFactor != 1 || m.TurnFactor != 1 || m.Retarget {
		t.Fatalf("untouched agent modifiers = %+v", m)
	}
}
