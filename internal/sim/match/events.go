package match

// Edge events produced by the session. The owner of the tick loop drains
// these once per tick; nothing here holds callback references.
type EventType string

const (
	EventPhaseChanged    EventType = "PHASE_CHANGED"
	EventRotationChanged EventType = "ROTATION_CHANGED"
	EventPlayerBusted    EventType = "PLAYER_BUSTED"
	EventPlayerReleased  EventType = "PLAYER_RELEASED"
	EventEffectStarted   EventType = "EFFECT_STARTED"
	EventEffectExpired   EventType = "EFFECT_EXPIRED"
	EventReconciled      EventType = "RECONCILED"
)

// Event is one edge. Fields beyond Type/Elapsed are populated per type.
type Event struct {
	Type    EventType `json:"type"`
	Elapsed float64   `json:"elapsed"`

	Phase  PhaseKind `json:"phase,omitempty"`
	Cycle  int       `json:"cycle,omitempty"`
	Bucket uint64    `json:"bucket,omitempty"`
	Slots  []uint8   `json:"slots,omitempty"`

	PlayerID string     `json:"player_id,omitempty"`
	AgentID  string     `json:"agent_id,omitempty"`
	Effect   EffectKind `json:"effect,omitempty"`
}
