package rotation

// MaxSpots is the maximum number of simultaneously active delivery spots.
const MaxSpots = 5

// SelectSlots derives the active delivery spots for a seed. The ledger runs
// the identical selection, so the exact probe order below, including which
// bonus pick falls back by +1 and which by +2, is a compatibility contract,
// not a style choice.
//
// Guarantees: 3..5 unique indices, exactly one guaranteed pick per layer, and
// the same ordered output for the same seed on every client.
func SelectSlots(seed uint64) []uint8 {
	spots := make([]uint8, 0, MaxSpots)

	// Guaranteed picks, one per layer, each from a different bit window of
	// the seed so they look independent.
	spots = append(spots, Layer3Start+uint8(seed%layer3Count))
	spots = append(spots, Layer2Start+uint8((seed>>8)%layer2Count))
	spots = append(spots, Layer1Start+uint8((seed>>16)%layer1Count))

	// Bonus pick 1: outer-weighted (layer 2 one time in three, layer 1
	// otherwise). On collision, probe the next offset within the layer.
	// This pick always lands.
	sub := seed >> 24
	if sub%3 == 0 {
		off := uint8((sub >> 4) % layer2Count)
		pick := Layer2Start + off
		if contains(spots, pick) {
			pick = Layer2Start + (off+1)%uint8(layer2Count)
		}
		spots = append(spots, pick)
	} else {
		off := uint8((sub >> 4) % layer1Count)
		pick := Layer1Start + off
		if contains(spots, pick) {
			pick = Layer1Start + (off+1)%uint8(layer1Count)
		}
		spots = append(spots, pick)
	}

	// Bonus pick 2: any layer via a modulo-6 branch. A rare second inner-core
	// spot is simply skipped on collision; ring layers probe +2 and drop the
	// pick if the probe collides too.
	sub = seed >> 40
	switch {
	case sub%6 < 2:
		pick := Layer3Start + uint8((sub>>4)%layer3Count)
		if !contains(spots, pick) {
			spots = append(spots, pick)
		}
	case sub%6 < 4:
		off := uint8((sub >> 4) % layer2Count)
		pick := Layer2Start + off
		if contains(spots, pick) {
			pick = Layer2Start + (off+2)%uint8(layer2Count)
		}
		if !contains(spots, pick) {
			spots = append(spots, pick)
		}
	default:
		off := uint8((sub >> 4) % layer1Count)
		pick := Layer1Start + off
		if contains(spots, pick) {
			pick = Layer1Start + (off+2)%uint8(layer1Count)
		}
		if !contains(spots, pick) {
			spots = append(spots, pick)
		}
	}

	return spots
}

// SlotsForTime is the full pipeline: timestamp → bucket → seed → spots.
func SlotsForTime(matchID uint64, ts int64) []uint8 {
	return SelectSlots(Seed(matchID, ts))
}

func contains(spots []uint8, v uint8) bool {
	for _, s := range spots {
		if s == v {
			return true
		}
	}
	return false
}
