// Package protocol defines the canonical JSON shapes for ledger state as
// observed by the client. Every message is a tagged union keyed on "type";
// the handful of untagged shapes that predate the tag are migrated once
// inside Decode and never leak past it.
package protocol

import "encoding/json"

const Version = "1.0"

// Message types.
const (
	TypeSubscribe = "SUBSCRIBE"
	TypeMatch     = "MATCH_STATE"
	TypeDelivery  = "DELIVERY_STATE"
	TypeGrow      = "GROW_STATE"
)

// BaseMessage lets us route unknown JSON messages by type.
type BaseMessage struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version,omitempty"`
}

func DecodeBase(b []byte) (BaseMessage, error) {
	var m BaseMessage
	err := json.Unmarshal(b, &m)
	return m, err
}
