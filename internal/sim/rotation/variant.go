package rotation

import "encoding/binary"

// VariantCount is the number of cosmetic plant variants.
const VariantCount = 3

// VariantID mirrors the ledger's deterministic variant selection for a
// planted slot: fold the player key into the match id in 8-byte little-endian
// chunks, mix in the slot index and the chain slot number, then one avalanche
// round. Bit-exact with the chain, like Seed.
func VariantID(matchID uint64, player [32]byte, slotIndex uint8, slotNumber uint64) uint8 {
	h := matchID
	for i := 0; i < len(player); i += 8 {
		h ^= binary.LittleEndian.Uint64(player[i : i+8])
	}
	h ^= uint64(slotIndex)
	h ^= slotNumber

	h *= mixA
	h ^= h >> 32

	return uint8(h % VariantCount)
}

// VariantRepBonus is the reputation nudge a variant adds to a sale.
func VariantRepBonus(variantID uint8) int32 {
	switch variantID {
	case 0:
		return -1
	case 2:
		return 1
	default:
		return 0
	}
}
