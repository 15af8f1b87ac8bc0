package match

import (
	"reflect"
	"testing"
)

func TestCaptureMachine_RoundTrip(t *testing.T) {
	m := NewCaptureMachine(8, []string{"A", "B"})

	if !m.Bust("A", "cop_1", 100) {
		t.Fatal("first bust should succeed")
	}
	if m.Active("A") {
		t.Fatal("player A should be busted")
	}
	if m.Bust("A", "cop_2", 101) {
		t.Fatal("double bust must not fire a second edge")
	}

	// Never released early.
	if rel := m.Update(100 + 7.999); len(rel) != 0 {
		t.Fatalf("released early: %v", rel)
	}
	// Released exactly at timeout.
	if rel := m.Update(100 + 8); !reflect.DeepEqual(rel, []string{"A"}) {
		t.Fatalf("release at timeout = %v, want [A]", rel)
	}
	if !m.Active("A") {
		t.Fatal("player A should be active after release")
	}
	// Only one release edge.
	if rel := m.Update(100 + 9); len(rel) != 0 {
		t.Fatalf("release fired twice: %v", rel)
	}
}

func TestCaptureMachine_RecordsCapturer(t *testing.T) {
	m := NewCaptureMachine(8, []string{"A", "B"})
	m.Bust("B", "cop_3", 42.5)

	rec, ok := m.Record("B")
	if !ok || rec.State != PlayerBusted || rec.ByAgent != "cop_3" || rec.BustedAt != 42.5 {
		t.Fatalf("record = %+v, ok=%v", rec, ok)
	}
}

func TestCaptureMachine_UnknownPlayer(t *testing.T) {
	m := NewCaptureMachine(8, []string{"A"})
	if m.Bust("nobody", "cop_1", 0) {
		t.Fatal("unknown player must not bust")
	}
	if m.Active("nobody") {
		t.Fatal("unknown player must not read active")
	}
}

func TestCaptureMachine_IndependentPlayers(t *testing.T) {
	m := NewCaptureMachine(5, []string{"A", "B"})
	m.Bust("A", "cop_1", 10)
	m.Bust("B", "cop_1", 12)

	if rel := m.Update(15); !reflect.DeepEqual(rel, []string{"A"}) {
		t.Fatalf("release at t=15 = %v, want [A]", rel)
	}
	if rel := m.Update(17); !reflect.DeepEqual(rel, []string{"B"}) {
		t.Fatalf("release at t=17 = %v, want [B]", rel)
	}
}

func TestCaptureMachine_Reset(t *testing.T) {
	m := NewCaptureMachine(8, []string{"A", "B"})
	m.Bust("A", "cop_1", 10)
	m.Reset()
	if !m.Active("A") {
		t.Fatal("reset should clear busted state")
	}
	rec, _ := m.Record("A")
	if rec.ByAgent != "" || rec.BustedAt != 0 {
		t.Fatalf("reset left residue: %+v", rec)
	}
}
