package protocol

// SUBSCRIBE (client -> relay)
type SubscribeMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	MatchID         uint64 `json:"match_id"`
}

// MATCH_STATE (relay -> client): the match account, read-only truth.
type MatchStateMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`

	MatchID uint64 `json:"match_id"`
	StartTS int64  `json:"start_ts"`
	EndTS   int64  `json:"end_ts"`

	PlayerA string `json:"player_a"`
	PlayerB string `json:"player_b"`

	Customers []CustomerState `json:"customers"`

	PlayerASales      uint32 `json:"player_a_sales"`
	PlayerBSales      uint32 `json:"player_b_sales"`
	PlayerAReputation int32  `json:"player_a_reputation"`
	PlayerBReputation int32  `json:"player_b_reputation"`

	IsFinalized bool `json:"is_finalized"`
}

type CustomerState struct {
	LastServedTS int64  `json:"last_served_ts"`
	TotalServes  uint32 `json:"total_serves"`
	LastServedBy string `json:"last_served_by,omitempty"`
}

// DELIVERY_STATE (relay -> client): the accepted rotation set.
type DeliveryStateMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`

	MatchID            uint64  `json:"match_id"`
	LastUpdateTS       int64   `json:"last_update_ts"`
	AvailableCustomers []uint8 `json:"available_customers"`
	ActiveCount        uint8   `json:"active_count"`
	RotationBucket     uint64  `json:"rotation_bucket"`
}

// GROW_STATE (relay -> client): one player's grow slots and inventory.
type GrowStateMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`

	MatchID uint64        `json:"match_id"`
	Player  string        `json:"player"`
	Slots   []GrowSlotMsg `json:"slots"`

	Inventory InventoryMsg `json:"inventory"`
}

// Plant state tags used in GrowSlotMsg.
const (
	PlantStateEmpty   = "EMPTY"
	PlantStateGrowing = "GROWING"
	PlantStateReady   = "READY"
)

type GrowSlotMsg struct {
	State           string `json:"state"`
	StrainLevel     uint8  `json:"strain_level,omitempty"`
	VariantID       uint8  `json:"variant_id,omitempty"`
	PlantedAt       int64  `json:"planted_at,omitempty"`
	LastHarvestedTS int64  `json:"last_harvested_ts,omitempty"`
}

type InventoryMsg struct {
	Level1 uint8 `json:"level1"`
	Level2 uint8 `json:"level2"`
	Level3 uint8 `json:"level3"`
}
