package stream

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"auctionsim/internal/engine"
	"auctionsim/internal/sim"
)

const subscriberBuffer = 64

type tickMessage struct {
	Type string        `json:"type"`
	Data sim.TickEvent `json:"data"`
}

type snapshotResponse struct {
	Tick      int            `json:"tick"`
	TruePrice float64        `json:"truePrice"`
	Portfolio float64        `json:"portfolio"`
	Bankrupt  bool           `json:"bankrupt"`
	Bids      []engine.Quote `json:"bids"`
	Asks      []engine.Quote `json:"asks"`
}

// Server serves the live tick feed over websocket plus a snapshot of the
// most recent tick over plain HTTP.
type Server struct {
	hub      *Hub[sim.TickEvent]
	upgrader websocket.Upgrader
	log      *zap.Logger

	mu     sync.RWMutex
	latest sim.TickEvent
	seen   bool
}

func NewServer(logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		hub: NewHub[sim.TickEvent](),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		log: logger,
	}
}

// Consume drains the simulation's event channel, retaining the latest event
// and broadcasting every event to subscribers. Returns when the channel
// closes.
func (s *Server) Consume(events <-chan sim.TickEvent) {
	for ev := range events {
		s.mu.Lock()
		s.latest = ev
		s.seen = true
		s.mu.Unlock()
		s.hub.Broadcast(ev)
	}
}

// Routes returns the HTTP handler.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/snapshot", s.handleSnapshot)
	return mux
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	sub := s.hub.Subscribe(subscriberBuffer)
	defer s.hub.Unsubscribe(sub)

	// reader goroutine only to detect client close
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case ev, ok := <-sub.C():
			if !ok {
				return
			}
			if err := conn.WriteJSON(tickMessage{Type: "tick", Data: ev}); err != nil {
				return
			}
		}
	}
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	ev, seen := s.latest, s.seen
	s.mu.RUnlock()

	if !seen {
		http.Error(w, "no ticks yet", http.StatusNotFound)
		return
	}

	resp := snapshotResponse{
		Tick:      ev.Tick,
		TruePrice: ev.TruePrice,
		Portfolio: ev.Portfolio,
		Bankrupt:  ev.Bankrupt,
		Bids:      ev.Bids,
		Asks:      ev.Asks,
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.log.Warn("snapshot encode failed", zap.Error(err))
	}
}
