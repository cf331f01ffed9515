package spectate

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeTimeout = 2 * time.Second

type subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *subscriber) write(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

type HubConfig struct {
	Logger *log.Logger
}

// Hub fans snapshots out to connected spectators. Spectators never send
// commands; anything they write is read and discarded.
type Hub struct {
	logger   *log.Logger
	upgrader websocket.Upgrader

	mu   sync.Mutex
	subs map[*subscriber]struct{}
	last []byte
}

func NewHub(cfg HubConfig) *Hub {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		subs: make(map[*subscriber]struct{}),
	}
}

// Handle upgrades the request and keeps the spectator subscribed until the
// connection closes. The latest snapshot is sent immediately.
func (h *Hub) Handle(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf("spectate: upgrade failed: %v", err)
		return
	}
	sub := &subscriber{conn: conn}

	h.mu.Lock()
	h.subs[sub] = struct{}{}
	last := h.last
	h.mu.Unlock()

	if last != nil {
		if err := sub.write(last); err != nil {
			h.drop(sub)
			return
		}
	}

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.drop(sub)
			return
		}
	}
}

// Publish sends snap to every spectator. Slow or broken connections are
// dropped.
func (h *Hub) Publish(snap Snapshot) {
	if h == nil {
		return
	}
	data, err := json.Marshal(snap)
	if err != nil {
		h.logger.Printf("spectate: marshal snapshot: %v", err)
		return
	}

	h.mu.Lock()
	h.last = data
	subs := make([]*subscriber, 0, len(h.subs))
	for s := range h.subs {
		subs = append(subs, s)
	}
	h.mu.Unlock()

	for _, s := range subs {
		if err := s.write(data); err != nil {
			h.drop(s)
		}
	}
}

// Count returns the number of connected spectators.
func (h *Hub) Count() int {
	if h == nil {
		return 0
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close disconnects every spectator.
func (h *Hub) Close() {
	if h == nil {
		return
	}
	h.mu.Lock()
	subs := h.subs
	h.subs = make(map[*subscriber]struct{})
	h.mu.Unlock()

	for s := range subs {
		s.mu.Lock()
		_ = s.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		s.mu.Unlock()
		_ = s.conn.Close()
	}
}

func (h *Hub) drop(s *subscriber) {
	h.mu.Lock()
	_, ok := h.subs[s]
	delete(h.subs, s)
	h.mu.Unlock()
	if ok {
		_ = s.conn.Close()
	}
}

// Serve listens on addr and serves spectators at /spectate until the server
// fails.
func (h *Hub) Serve(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/spectate", h.Handle)
	h.logger.Printf("spectate: listening on %s", addr)
	return http.ListenAndServe(addr, mux)
}
