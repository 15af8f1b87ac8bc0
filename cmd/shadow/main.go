// shadow runs the client-side mirror of one match: it subscribes to a state
// relay, feeds every confirmed account read into the session, and steps the
// deterministic sim on a fixed tick. Session events go to the log and to a
// compressed per-match trace that cmd/verify can audit later.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"

	"droog.gg/internal/ledgerwatch"
	"droog.gg/internal/protocol"
	"droog.gg/internal/sim/match"
	"droog.gg/internal/sim/tuning"
	"droog.gg/internal/trace"
)

type envConfig struct {
	RelayURL string `env:"DROOG_RELAY_URL" envDefault:"ws://127.0.0.1:8787/v1/ws"`
	MatchID  uint64 `env:"DROOG_MATCH_ID"`
	Player   string `env:"DROOG_PLAYER"`
	Tuning   string `env:"DROOG_TUNING"`
	TraceDir string `env:"DROOG_TRACE_DIR" envDefault:"./data/traces"`
}

func main() {
	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		ec = envConfig{RelayURL: "ws://127.0.0.1:8787/v1/ws", TraceDir: "./data/traces"}
	}

	var (
		relayURL   = flag.String("relay", ec.RelayURL, "relay websocket url")
		matchID    = flag.Uint64("match", ec.MatchID, "match id to mirror")
		player     = flag.String("player", ec.Player, "local player pubkey (default: player A)")
		tuningPath = flag.String("tuning", ec.Tuning, "path to tuning.yaml (optional)")
		traceDir   = flag.String("traces", ec.TraceDir, "trace output directory (empty to disable)")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[shadow] ", log.LstdFlags|log.Lmicroseconds)

	if *matchID == 0 {
		logger.Fatal("missing -match (or DROOG_MATCH_ID)")
	}

	tune := tuning.Default()
	if *tuningPath != "" {
		var err error
		tune, err = tuning.Load(*tuningPath)
		if err != nil {
			logger.Fatalf("load tuning: %v", err)
		}
	}

	ctx, cancel := signalContext()
	defer cancel()

	watcher := ledgerwatch.New(ledgerwatch.Config{
		RelayURL: *relayURL,
		MatchID:  *matchID,
	}, logger)
	watcher.Start()
	defer watcher.Close()

	// The session cannot exist before the match account has been read once:
	// its identity (start/end timestamps, player order) comes off the ledger.
	first, ok := awaitMatchState(ctx, watcher, logger)
	if !ok {
		return
	}

	sess := match.NewSession(match.Config{
		Identity: match.Identity{
			MatchID: first.MatchID,
			StartTS: first.StartTS,
			EndTS:   first.EndTS,
		},
		PlayerA: first.PlayerA,
		PlayerB: first.PlayerB,
		Primary: *player,
		Tuning:  tune,
	})
	applyMatchState(sess, first)
	logger.Printf("mirroring match=%d players=%s,%s window=[%d,%d]",
		first.MatchID, first.PlayerA, first.PlayerB, first.StartTS, first.EndTS)

	var tw *trace.Writer
	if *traceDir != "" {
		tw = trace.NewWriter(*traceDir, *matchID)
		defer tw.Close()
	}

	tickRate := tune.TickRateHz
	if tickRate <= 0 {
		tickRate = tuning.Default().TickRateHz
	}
	ticker := time.NewTicker(time.Second / time.Duration(tickRate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Printf("shutting down")
			return

		case <-ticker.C:
			drainUpdates(sess, watcher, logger)
			sess.Step()
			for _, e := range sess.DrainEvents() {
				logEvent(logger, e)
				if tw != nil {
					if err := tw.WriteEvent(e); err != nil {
						logger.Printf("trace write: %v", err)
					}
				}
			}
			if sess.Clock().Ended() {
				logger.Printf("match window closed")
				return
			}
		}
	}
}

func awaitMatchState(ctx context.Context, w *ledgerwatch.Watcher, logger *log.Logger) (protocol.MatchStateMsg, bool) {
	logger.Printf("waiting for match account")
	for {
		select {
		case <-ctx.Done():
			return protocol.MatchStateMsg{}, false
		case u := <-w.Updates():
			if u.Match != nil {
				return *u.Match, true
			}
		}
	}
}

func drainUpdates(sess *match.Session, w *ledgerwatch.Watcher, logger *log.Logger) {
	for {
		select {
		case u := <-w.Updates():
			switch {
			case u.Match != nil:
				applyMatchState(sess, *u.Match)
				if u.Match.IsFinalized {
					logger.Printf("match finalized on ledger")
				}
			case u.Delivery != nil:
				sess.ApplyDelivery(u.Delivery.LastUpdateTS, u.Delivery.AvailableCustomers)
			case u.Grow != nil:
				sess.ApplyGrow(u.Grow.Player, growSlots(u.Grow.Slots))
			}
		default:
			return
		}
	}
}

func applyMatchState(sess *match.Session, m protocol.MatchStateMsg) {
	for i, c := range m.Customers {
		if c.LastServedTS != 0 {
			sess.ApplyServed(uint8(i), c.LastServedTS)
		}
	}
}

func growSlots(in []protocol.GrowSlotMsg) []match.GrowSlot {
	out := make([]match.GrowSlot, 0, len(in))
	for _, s := range in {
		g := match.GrowSlot{
			StrainLevel:     s.StrainLevel,
			VariantID:       s.VariantID,
			PlantedAt:       s.PlantedAt,
			LastHarvestedTS: s.LastHarvestedTS,
		}
		switch s.State {
		case protocol.PlantStateGrowing:
			g.Phase = match.PlantGrowing
		case protocol.PlantStateReady:
			g.Phase = match.PlantReady
		default:
			g.Phase = match.PlantEmpty
		}
		out = append(out, g)
	}
	return out
}

func logEvent(logger *log.Logger, e match.Event) {
	switch e.Type {
	case match.EventPhaseChanged:
		logger.Printf("t=%.2f phase=%s cycle=%d", e.Elapsed, e.Phase, e.Cycle)
	case match.EventRotationChanged:
		logger.Printf("t=%.2f rotation bucket=%d slots=%v", e.Elapsed, e.Bucket, e.Slots)
	case match.EventPlayerBusted:
		logger.Printf("t=%.2f busted player=%s by=%s", e.Elapsed, e.PlayerID, e.AgentID)
	case match.EventPlayerReleased:
		logger.Printf("t=%.2f released player=%s", e.Elapsed, e.PlayerID)
	case match.EventReconciled:
		logger.Printf("t=%.2f reconciled bucket=%d slots=%v", e.Elapsed, e.Bucket, e.Slots)
	default:
		logger.Printf("t=%.2f %s", e.Elapsed, e.Type)
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan os.Signal, 2)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-ch
		cancel()
	}()
	return ctx, cancel
}
