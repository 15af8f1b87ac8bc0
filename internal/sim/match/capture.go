package match

import "sort"

// CaptureState is the per-player experiential state. Busting a player never
// touches their grow slots, inventory, sales, or reputation; those belong to
// the ledger.
type CaptureState uint8

const (
	PlayerActive CaptureState = iota
	PlayerBusted
)

func (s CaptureState) String() string {
	if s == PlayerBusted {
		return "BUSTED"
	}
	return "ACTIVE"
}

// PlayerCapture is one player's record in the capture machine.
type PlayerCapture struct {
	State    CaptureState
	ByAgent  string
	BustedAt float64
}

// CaptureMachine drives the Active ⇄ Busted cycle for every player. Releases
// happen exactly at BustedAt + timeout; there is no manual override.
type CaptureMachine struct {
	timeout float64
	players map[string]*PlayerCapture
}

func NewCaptureMachine(timeoutSecs float64, playerIDs []string) *CaptureMachine {
	m := &CaptureMachine{
		timeout: timeoutSecs,
		players: make(map[string]*PlayerCapture, len(playerIDs)),
	}
	for _, id := range playerIDs {
		m.players[id] = &PlayerCapture{}
	}
	return m
}

// Bust moves a player to Busted. Returns false if the player is unknown or
// already busted, so callers emit at most one event per edge.
func (m *CaptureMachine) Bust(playerID, agentID string, elapsed float64) bool {
	p, ok := m.players[playerID]
	if !ok || p.State == PlayerBusted {
		return false
	}
	p.State = PlayerBusted
	p.ByAgent = agentID
	p.BustedAt = elapsed
	return true
}

// Update releases every player whose timeout has elapsed and returns their
// IDs in fixed order, one entry per edge.
func (m *CaptureMachine) Update(elapsed float64) []string {
	ids := make([]string, 0, len(m.players))
	for id := range m.players {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var released []string
	for _, id := range ids {
		p := m.players[id]
		if p.State == PlayerBusted && elapsed-p.BustedAt >= m.timeout {
			p.State = PlayerActive
			p.ByAgent = ""
			released = append(released, id)
		}
	}
	return released
}

// Active reports whether a player can currently be busted or act.
func (m *CaptureMachine) Active(playerID string) bool {
	p, ok := m.players[playerID]
	return ok && p.State == PlayerActive
}

// Record returns a copy of a player's capture record.
func (m *CaptureMachine) Record(playerID string) (PlayerCapture, bool) {
	p, ok := m.players[playerID]
	if !ok {
		return PlayerCapture{}, false
	}
	return *p, true
}

// Reset clears all records back to Active.
func (m *CaptureMachine) Reset() {
	for _, p := range m.players {
		*p = PlayerCapture{}
	}
}
