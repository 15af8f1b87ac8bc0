package rotation

// Strain availability rotates on fixed wall-clock schedules relative to match
// start. Like slot selection this is derived, never stored, so every client
// and the ledger agree without coordination.
const (
	level1RotationSecs int64 = 10 * 60
	level2RotationSecs int64 = 15 * 60

	// NumStrains is the full strain domain: three level-1, three level-2, one
	// level-3.
	NumStrains = 7
)

// Level-1 strains rotate in overlapping pairs.
var level1Patterns = [3][2]uint8{
	{0, 1},
	{1, 2},
	{2, 0},
}

// StrainActive reports whether a strain can currently be planted.
//
// Level 1 (strains 0..2): two active at a time, rotating every 10 minutes.
// Level 2 (strains 3..5): one active at a time, rotating every 15 minutes.
// Level 3 (strain 6): always active.
func StrainActive(strainID uint8, startTS, now int64) bool {
	elapsed := now - startTS

	if strainID < 3 {
		idx := int(elapsed/level1RotationSecs) % 3
		if idx < 0 {
			idx = 0
		}
		pair := level1Patterns[idx]
		return strainID == pair[0] || strainID == pair[1]
	}

	if strainID < 6 {
		idx := elapsed / level2RotationSecs
		if idx < 0 {
			idx = 0
		}
		return strainID == 3+uint8(idx%3)
	}

	return strainID == 6
}

// ActiveStrains returns the currently plantable strain IDs in ascending order.
func ActiveStrains(startTS, now int64) []uint8 {
	out := make([]uint8, 0, 4)
	for id := uint8(0); id < NumStrains; id++ {
		if StrainActive(id, startTS, now) {
			out = append(out, id)
		}
	}
	return out
}

// StrainLevel maps a strain ID to its level (1..3).
func StrainLevel(strainID uint8) uint8 {
	switch {
	case strainID < 3:
		return 1
	case strainID < 6:
		return 2
	case strainID == 6:
		return 3
	default:
		return 0
	}
}
