// Package ledgerwatch maintains a websocket subscription to a state relay
// and turns its payloads into typed protocol messages. The watcher owns the
// connection lifecycle (dial, subscribe, read, reconnect with backoff); the
// sim never touches the socket and only drains the Updates channel.
package ledgerwatch

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"droog.gg/internal/protocol"
)

type Config struct {
	RelayURL string
	MatchID  uint64

	// DialTimeout and ReadTimeout default to 5s and 60s when zero.
	DialTimeout time.Duration
	ReadTimeout time.Duration
}

// Update is one decoded relay message. Exactly one of the pointers is set.
type Update struct {
	Match    *protocol.MatchStateMsg
	Delivery *protocol.DeliveryStateMsg
	Grow     *protocol.GrowStateMsg
}

type Watcher struct {
	cfg Config
	log *log.Logger

	startOnce sync.Once
	closeOnce sync.Once
	stop      chan struct{}
	done      chan struct{}

	mu   sync.Mutex
	conn *websocket.Conn

	updates chan Update
}

func New(cfg Config, logger *log.Logger) *Watcher {
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = 5 * time.Second
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = 60 * time.Second
	}
	return &Watcher{
		cfg:     cfg,
		log:     logger,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
		updates: make(chan Update, 64),
	}
}

// Updates delivers decoded relay state in arrival order. When the consumer
// falls behind, the oldest pending update is dropped; the sim only cares
// about the latest view of each account anyway.
func (w *Watcher) Updates() <-chan Update { return w.updates }

func (w *Watcher) Start() {
	w.startOnce.Do(func() {
		go w.run()
	})
}

func (w *Watcher) Close() {
	w.closeOnce.Do(func() {
		close(w.stop)
		// Wake any blocking ReadMessage promptly.
		w.disconnect()
		<-w.done
	})
}

func (w *Watcher) disconnect() {
	w.mu.Lock()
	if w.conn != nil {
		_ = w.conn.Close()
		w.conn = nil
	}
	w.mu.Unlock()
}

func (w *Watcher) run() {
	defer close(w.done)

	backoff := 200 * time.Millisecond
	for {
		select {
		case <-w.stop:
			return
		default:
		}

		err := w.connectAndReadLoop()
		if err == nil {
			// Clean shutdown.
			return
		}
		w.log.Printf("relay: %v (retry in %v)", err, backoff)
		select {
		case <-w.stop:
			return
		case <-time.After(backoff):
		}
		if backoff < 5*time.Second {
			backoff *= 2
			if backoff > 5*time.Second {
				backoff = 5 * time.Second
			}
		}
	}
}

func (w *Watcher) connectAndReadLoop() error {
	d := websocket.Dialer{HandshakeTimeout: w.cfg.DialTimeout}
	conn, resp, err := d.Dial(w.cfg.RelayURL, http.Header{})
	if err != nil {
		return err
	}
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}

	sub := protocol.SubscribeMsg{
		Type:            protocol.TypeSubscribe,
		ProtocolVersion: protocol.Version,
		MatchID:         w.cfg.MatchID,
	}
	_ = conn.SetWriteDeadline(time.Now().Add(w.cfg.DialTimeout))
	if err := conn.WriteJSON(sub); err != nil {
		_ = conn.Close()
		return err
	}

	w.mu.Lock()
	w.conn = conn
	w.mu.Unlock()
	w.log.Printf("relay: subscribed to match %d at %s", w.cfg.MatchID, w.cfg.RelayURL)

	for {
		select {
		case <-w.stop:
			_ = conn.Close()
			return nil
		default:
		}

		_ = conn.SetReadDeadline(time.Now().Add(w.cfg.ReadTimeout))
		_, msg, err := conn.ReadMessage()
		if err != nil {
			_ = conn.Close()
			select {
			case <-w.stop:
				return nil
			default:
			}
			return err
		}
		w.handle(msg)
	}
}

func (w *Watcher) handle(msg []byte) {
	if err := protocol.Validate(msg); err != nil {
		w.log.Printf("relay: rejected payload: %v", err)
		return
	}
	v, err := protocol.Decode(msg)
	if err != nil {
		w.log.Printf("relay: undecodable payload: %v", err)
		return
	}

	var upd Update
	switch m := v.(type) {
	case protocol.MatchStateMsg:
		if m.MatchID != w.cfg.MatchID {
			return
		}
		upd.Match = &m
	case protocol.DeliveryStateMsg:
		if m.MatchID != w.cfg.MatchID {
			return
		}
		upd.Delivery = &m
	case protocol.GrowStateMsg:
		if m.MatchID != w.cfg.MatchID {
			return
		}
		upd.Grow = &m
	default:
		return
	}

	for {
		select {
		case w.updates <- upd:
			return
		default:
		}
		select {
		case <-w.updates:
			// Drop the oldest pending update and retry.
		default:
		}
	}
}
