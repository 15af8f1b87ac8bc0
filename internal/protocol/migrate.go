package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownShape is returned when a payload is neither a tagged message nor
// one of the two recognized pre-tag shapes.
var ErrUnknownShape = errors.New("protocol: unrecognized state shape")

// Decode parses any relay payload into a typed message. Tagged payloads
// route on "type"; untagged payloads from relays that predate the tag go
// through the one-time legacy migration. Consumers only ever see canonical
// messages; the legacy branches end here.
func Decode(b []byte) (any, error) {
	base, err := DecodeBase(b)
	if err != nil {
		return nil, fmt.Errorf("protocol: decode base: %w", err)
	}

	switch base.Type {
	case TypeMatch:
		var m MatchStateMsg
		if err := json.Unmarshal(b, &m); err != nil {
			return nil, fmt.Errorf("protocol: %s: %w", base.Type, err)
		}
		return m, nil
	case TypeDelivery:
		var m DeliveryStateMsg
		if err := json.Unmarshal(b, &m); err != nil {
			return nil, fmt.Errorf("protocol: %s: %w", base.Type, err)
		}
		return m, nil
	case TypeGrow:
		var m GrowStateMsg
		if err := json.Unmarshal(b, &m); err != nil {
			return nil, fmt.Errorf("protocol: %s: %w", base.Type, err)
		}
		return m, nil
	case "":
		return migrateLegacy(b)
	default:
		return nil, fmt.Errorf("%w: type %q", ErrUnknownShape, base.Type)
	}
}

// The two shapes older relays emitted before the type tag existed. Shape is
// inferred from which fields are present, exactly once, here.
type legacyDelivery struct {
	Match   *uint64 `json:"match"`
	Spots   []uint8 `json:"spots"`
	Updated int64   `json:"updated"`
}

type legacyGrow struct {
	Match  *uint64          `json:"match"`
	Player string           `json:"player"`
	Plots  []legacyGrowPlot `json:"plots"`
}

type legacyGrowPlot struct {
	Lvl   uint8 `json:"lvl"`
	At    int64 `json:"at"`
	Ready bool  `json:"ready"`
}

func migrateLegacy(b []byte) (any, error) {
	var probe struct {
		Match  *uint64         `json:"match"`
		Spots  []uint8         `json:"spots"`
		Player string          `json:"player"`
		Plots  json.RawMessage `json:"plots"`
	}
	if err := json.Unmarshal(b, &probe); err != nil {
		return nil, fmt.Errorf("protocol: legacy probe: %w", err)
	}
	if probe.Match == nil {
		return nil, ErrUnknownShape
	}

	switch {
	case probe.Spots != nil:
		var l legacyDelivery
		if err := json.Unmarshal(b, &l); err != nil {
			return nil, fmt.Errorf("protocol: legacy delivery: %w", err)
		}
		return DeliveryStateMsg{
			Type:               TypeDelivery,
			ProtocolVersion:    Version,
			MatchID:            *l.Match,
			LastUpdateTS:       l.Updated,
			AvailableCustomers: l.Spots,
			ActiveCount:        uint8(len(l.Spots)),
			RotationBucket:     uint64(l.Updated / 60),
		}, nil

	case probe.Plots != nil:
		var l legacyGrow
		if err := json.Unmarshal(b, &l); err != nil {
			return nil, fmt.Errorf("protocol: legacy grow: %w", err)
		}
		m := GrowStateMsg{
			Type:            TypeGrow,
			ProtocolVersion: Version,
			MatchID:         *l.Match,
			Player:          l.Player,
		}
		for _, p := range l.Plots {
			slot := GrowSlotMsg{StrainLevel: p.Lvl, PlantedAt: p.At}
			switch {
			case p.Lvl == 0:
				slot.State = PlantStateEmpty
			case p.Ready:
				slot.State = PlantStateReady
			default:
				slot.State = PlantStateGrowing
			}
			m.Slots = append(m.Slots, slot)
		}
		return m, nil

	default:
		return nil, ErrUnknownShape
	}
}
