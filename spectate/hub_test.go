package spectate

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/milk9111/gatebreach/ecs"
	"github.com/milk9111/gatebreach/ecs/entity"
)

func buildArena(t *testing.T) (*ecs.World, *entity.Arena) {
	t.Helper()
	specs, err := entity.LoadSpecs("")
	if err != nil {
		t.Fatalf("LoadSpecs: %v", err)
	}
	w := ecs.NewWorld()
	a, err := entity.BuildArena(w, specs)
	if err != nil {
		t.Fatalf("BuildArena: %v", err)
	}
	return w, a
}

func dial(t *testing.T, h *Hub) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(h.Handle))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		t.Fatalf("failed to open websocket connection: %v", err)
	}
	t.Cleanup(func() {
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		conn.Close()
		if resp != nil {
			resp.Body.Close()
		}
	})
	return conn
}

func readSnapshot(t *testing.T, conn *websocket.Conn) Snapshot {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("failed to read snapshot: %v", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		t.Fatalf("failed to decode snapshot: %v", err)
	}
	return snap
}

func waitForSubscribers(t *testing.T, h *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for h.Count() < n {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d subscribers, have %d", n, h.Count())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestCaptureArena(t *testing.T) {
	w, a := buildArena(t)
	snap := Capture(w, a)

	if snap.Ver != ProtocolVersion || snap.Type != "state" {
		t.Fatalf("unexpected header: ver=%d type=%q", snap.Ver, snap.Type)
	}
	if len(snap.Robots) != len(a.Robots) {
		t.Fatalf("expected %d robots, got %d", len(a.Robots), len(snap.Robots))
	}
	for _, r := range snap.Robots {
		if r.Mode != "idle" {
			t.Fatalf("robot %d: expected idle at spawn, got %q", r.ID, r.Mode)
		}
	}
	if snap.Player == nil || snap.Player.Health != snap.Player.Max || snap.Player.Max == 0 || snap.Player.Ammo != 45 {
		t.Fatalf("unexpected player: %+v", snap.Player)
	}
	if snap.Mission.Outcome != "pending" || snap.Mission.GateDestroyed {
		t.Fatalf("unexpected mission: %+v", snap.Mission)
	}
	if snap.Mission.EnemiesAlive != len(a.Robots) {
		t.Fatalf("expected %d enemies alive, got %d", len(a.Robots), snap.Mission.EnemiesAlive)
	}
}

func TestHandleSendsLatestSnapshotOnConnect(t *testing.T) {
	w, a := buildArena(t)
	h := NewHub(HubConfig{})
	a.Mission.DestroyGate()
	h.Publish(Capture(w, a))

	conn := dial(t, h)
	snap := readSnapshot(t, conn)
	if !snap.Mission.GateDestroyed {
		t.Fatalf("expected gate destroyed in initial snapshot")
	}
}

func TestPublishReachesEverySubscriber(t *testing.T) {
	w, a := buildArena(t)
	h := NewHub(HubConfig{})

	first := dial(t, h)
	second := dial(t, h)
	waitForSubscribers(t, h, 2)

	h.Publish(Capture(w, a))
	for i, conn := range []*websocket.Conn{first, second} {
		snap := readSnapshot(t, conn)
		if len(snap.Robots) != len(a.Robots) {
			t.Fatalf("subscriber %d: expected %d robots, got %d", i, len(a.Robots), len(snap.Robots))
		}
	}
}

func TestCloseDisconnectsSubscribers(t *testing.T) {
	h := NewHub(HubConfig{})
	conn := dial(t, h)
	waitForSubscribers(t, h, 1)

	h.Close()
	if h.Count() != 0 {
		t.Fatalf("expected no subscribers after close, got %d", h.Count())
	}
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatalf("expected read to fail after close")
	}
}

func TestNilHubIsInert(t *testing.T) {
	var h *Hub
	h.Publish(Snapshot{})
	h.Close()
	if h.Count() != 0 {
		t.Fatalf("expected zero count on nil hub")
	}
}
