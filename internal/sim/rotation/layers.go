package rotation

// The 23 customers are arranged in three concentric layers. The index →
// layer mapping is canonical on the ledger: layer is always derived, never
// stored, so a stored layer field can never drift from the truth.
//
//	Layer 3 (inner core):  indices 0..2
//	Layer 2 (middle ring): indices 3..10
//	Layer 1 (outer ring):  indices 11..22
const (
	Layer3Start uint8 = 0
	Layer3End   uint8 = 2
	Layer2Start uint8 = 3
	Layer2End   uint8 = 10
	Layer1Start uint8 = 11
	Layer1End   uint8 = 22

	// NumSlots is the full customer domain size.
	NumSlots = 23

	layer3Count uint64 = uint64(Layer3End-Layer3Start) + 1
	layer2Count uint64 = uint64(Layer2End-Layer2Start) + 1
	layer1Count uint64 = uint64(Layer1End-Layer1Start) + 1
)

// InvalidIndex is the sentinel the ledger stores in unused slot positions.
const InvalidIndex uint8 = 255

// LayerFromIndex derives the layer (1, 2, or 3) for a customer index.
func LayerFromIndex(idx uint8) uint8 {
	switch {
	case idx <= Layer3End:
		return 3
	case idx <= Layer2End:
		return 2
	case idx <= Layer1End:
		return 1
	default:
		return 0
	}
}

// CooldownSecs returns the serve cooldown for a layer: outer customers can be
// served again quickly, inner ones make you wait.
func CooldownSecs(layer uint8) int64 {
	switch layer {
	case 1:
		return 30
	case 2:
		return 45
	case 3:
		return 75
	default:
		return 0
	}
}

// SlotAvailable reports whether a slot has cleared its serve cooldown.
// lastServedTS == 0 means never served.
func SlotAvailable(idx uint8, lastServedTS, now int64) bool {
	if idx >= NumSlots {
		return false
	}
	if lastServedTS == 0 {
		return true
	}
	return now >= lastServedTS+CooldownSecs(LayerFromIndex(idx))
}

// StrainValidForSlot mirrors the ledger's customer preference rule: outer
// customers take only level 1, middle take 1-2, inner take 2-3.
func StrainValidForSlot(idx uint8, strainLevel uint8) bool {
	if idx >= NumSlots {
		return false
	}
	switch LayerFromIndex(idx) {
	case 1:
		return strainLevel == 1
	case 2:
		return strainLevel == 1 || strainLevel == 2
	case 3:
		return strainLevel == 2 || strainLevel == 3
	}
	return false
}

// Reputation bounds enforced by the ledger.
const (
	RepMin int32 = -1000
	RepMax int32 = 1000
)

// ReputationDelta returns the reputation change the ledger will apply for
// selling a strain level to a customer in the given layer. Used to preview a
// sale before submitting it.
func ReputationDelta(layer, strainLevel uint8) int32 {
	switch layer {
	case 1:
		if strainLevel == 1 {
			return 1
		}
		return -2
	case 2:
		switch strainLevel {
		case 2:
			return 2
		case 1:
			return 1
		default:
			return -2
		}
	case 3:
		switch strainLevel {
		case 3:
			return 3
		case 2:
			return 1
		default:
			return -3
		}
	}
	return 0
}

// ClampReputation applies the ledger's hard reputation bounds.
func ClampReputation(rep int32) int32 {
	if rep < RepMin {
		return RepMin
	}
	if rep > RepMax {
		return RepMax
	}
	return rep
}
