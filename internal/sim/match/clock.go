package match

import (
	"errors"
	"time"
)

// EndgameLockSecs is the ledger's planting lockout before match end.
const EndgameLockSecs int64 = 60

// Speculative pre-check results, mirroring the errors the ledger program
// raises. The client uses these to reject an action locally before it ever
// reaches the chain.
var (
	ErrMatchNotStarted = errors.New("match: not started")
	ErrMatchEnded      = errors.New("match: ended")
	ErrEndgameLock     = errors.New("match: planting locked before match end")
)

// Clock turns the ledger-recorded match window plus the local wall clock into
// the one canonical match time every other component consumes. The time
// source is injected so tests can drive it.
type Clock struct {
	startTS int64
	endTS   int64
	now     func() time.Time
}

func NewClock(startTS, endTS int64, now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{startTS: startTS, endTS: endTS, now: now}
}

// Unix returns the current wall-clock second, the domain the ledger's
// timestamps and rotation buckets live in.
func (c *Clock) Unix() int64 { return c.now().Unix() }

// Elapsed returns seconds since match start, fractional, negative before the
// start instant.
func (c *Clock) Elapsed() float64 {
	return c.now().Sub(time.Unix(c.startTS, 0)).Seconds()
}

func (c *Clock) StartTS() int64 { return c.startTS }
func (c *Clock) EndTS() int64   { return c.endTS }

func (c *Clock) Started() bool { return c.Unix() >= c.startTS }
func (c *Clock) Ended() bool   { return c.endTS > 0 && c.Unix() >= c.endTS }

// Remaining returns whole seconds left in the match, never negative.
func (c *Clock) Remaining() int64 {
	if c.endTS == 0 {
		return 0
	}
	r := c.endTS - c.Unix()
	if r < 0 {
		return 0
	}
	return r
}

// CanPlant mirrors the ledger's endgame lock: no planting in the final
// minute.
func (c *Clock) CanPlant() bool {
	if c.endTS == 0 {
		return c.Started()
	}
	return c.Started() && c.Unix() < c.endTS-EndgameLockSecs
}

// CheckActive is the pre-check for any in-match action.
func (c *Clock) CheckActive() error {
	if !c.Started() {
		return ErrMatchNotStarted
	}
	if c.Ended() {
		return ErrMatchEnded
	}
	return nil
}

// CheckPlant is CheckActive plus the endgame lock.
func (c *Clock) CheckPlant() error {
	if err := c.CheckActive(); err != nil {
		return err
	}
	if !c.CanPlant() {
		return ErrEndgameLock
	}
	return nil
}
