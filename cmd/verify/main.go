// verify prints the deterministic rotation schedule for a match at a given
// time, and can audit a recorded session trace against a fresh computation
// of the same schedule.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"time"

	"droog.gg/internal/sim/match"
	"droog.gg/internal/sim/rotation"
	"droog.gg/internal/trace"
)

func main() {
	var (
		matchID   = flag.Uint64("match", 0, "match id")
		ts        = flag.Int64("ts", 0, "unix timestamp to compute for (default: now)")
		startTS   = flag.Int64("start_ts", 0, "match start timestamp (enables strain schedule output)")
		playerHex = flag.String("player", "", "player key as 64 hex chars (enables variant output)")
		slotIndex = flag.Uint("slot", 0, "grow slot index for variant output")
		slotNum   = flag.Uint64("slot_number", 0, "chain slot number for variant output")
		tracePath = flag.String("trace", "", "path to a match-*.jsonl.zst trace to audit (optional)")
	)
	flag.Parse()

	if *ts == 0 {
		*ts = time.Now().Unix()
	}

	bucket := rotation.Bucket(*ts)
	seed := rotation.Seed(*matchID, *ts)
	slots := rotation.SelectSlots(seed)

	fmt.Printf("match=%d ts=%d bucket=%d seed=%016x\n", *matchID, *ts, bucket, seed)
	for _, idx := range slots {
		fmt.Printf("  slot=%d layer=%d cooldown=%ds\n",
			idx, rotation.LayerFromIndex(idx), rotation.CooldownSecs(rotation.LayerFromIndex(idx)))
	}
	if *startTS != 0 {
		fmt.Printf("active strains: %v\n", rotation.ActiveStrains(*startTS, *ts))
	}
	if *playerHex != "" {
		player, err := parsePlayerKey(*playerHex)
		if err != nil {
			fmt.Fprintln(os.Stderr, "player:", err)
			os.Exit(2)
		}
		v := rotation.VariantID(*matchID, player, uint8(*slotIndex), *slotNum)
		fmt.Printf("variant=%d rep_bonus=%+d (slot=%d slot_number=%d)\n",
			v, rotation.VariantRepBonus(v), *slotIndex, *slotNum)
	}

	if *tracePath == "" {
		return
	}
	checked, err := auditTrace(*tracePath, *matchID)
	if err != nil {
		fmt.Fprintln(os.Stderr, "audit:", err)
		os.Exit(1)
	}
	fmt.Printf("audit ok: checked=%d rotations\n", checked)
}

// auditTrace recomputes every recorded rotation from the match identity and
// bucket alone. A recorded set that differs from the recomputation means the
// trace was produced by a diverging build.
func auditTrace(path string, matchID uint64) (int, error) {
	events, err := trace.ReadAll(path)
	if err != nil {
		return 0, err
	}

	checked := 0
	for i, e := range events {
		if e.Type != match.EventRotationChanged {
			continue
		}
		want := rotation.SelectSlots(rotation.SeedForBucket(matchID, e.Bucket))
		if !equalSlots(e.Slots, want) {
			return checked, fmt.Errorf("event %d: bucket %d recorded %v, recomputed %v", i, e.Bucket, e.Slots, want)
		}
		checked++
	}
	return checked, nil
}

func parsePlayerKey(s string) ([32]byte, error) {
	var key [32]byte
	b, err := hex.DecodeString(s)
	if err != nil {
		return key, err
	}
	if len(b) != len(key) {
		return key, fmt.Errorf("want %d bytes, got %d", len(key), len(b))
	}
	copy(key[:], b)
	return key, nil
}

func equalSlots(a, b []uint8) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
