package main

import (
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/milk9111/gatebreach/ecs"
	"github.com/milk9111/gatebreach/ecs/component"
	"github.com/milk9111/gatebreach/ecs/entity"
	"github.com/milk9111/gatebreach/mission"
	"github.com/milk9111/gatebreach/spectate"
)

func TestHeadlessMissionTimesOut(t *testing.T) {
	specs, err := entity.LoadSpecs("")
	if err != nil {
		t.Fatalf("LoadSpecs: %v", err)
	}
	records := mission.NewRecords(nil)

	rec, err := runHeadless(specs, 7, 200, records, nil)
	if err != nil {
		t.Fatalf("runHeadless: %v", err)
	}
	if rec.Outcome != mission.OutcomeDefeat.String() || rec.Reason != mission.ReasonTimeExpired {
		t.Fatalf("expected defeat by timeout, got %+v", rec)
	}
	if math.Abs(rec.Elapsed-specs.Mission.TimeLimit) > 0.1 {
		t.Fatalf("expected the mission to end at the time limit, got %.2f", rec.Elapsed)
	}

	saved := records.All()
	if len(saved) != 1 || saved[0].Seed != 7 {
		t.Fatalf("expected one saved record with the seed, got %+v", saved)
	}
}

func TestSessionsWithSameSeedMatch(t *testing.T) {
	run := func() []float64 {
		specs, err := entity.LoadSpecs("")
		if err != nil {
			t.Fatalf("LoadSpecs: %v", err)
		}
		s, err := newSession(specs, 99, false, nil, nil)
		if err != nil {
			t.Fatalf("newSession: %v", err)
		}
		s.arena.Mission.DestroyGate()
		for i := 0; i < 300; i++ {
			s.step()
		}
		var out []float64
		for _, r := range s.arena.Robots {
			tr, ok := ecs.Get(s.world, r, component.TransformComponent.Kind())
			if !ok {
				t.Fatalf("robot missing transform")
			}
			out = append(out, tr.Position.X, tr.Position.Z)
		}
		return out
	}

	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("expected identical runs, diverged at %d: %v vs %v", i, a, b)
		}
	}
}

func TestSessionPublishesToItsHub(t *testing.T) {
	specs, err := entity.LoadSpecs("")
	if err != nil {
		t.Fatalf("LoadSpecs: %v", err)
	}
	hub := spectate.NewHub(spectate.HubConfig{})
	defer hub.Close()

	s, err := newSession(specs, 3, false, nil, hub)
	if err != nil {
		t.Fatalf("newSession: %v", err)
	}
	for i := 0; i < spectateEvery; i++ {
		s.step()
	}

	srv := httptest.NewServer(http.HandlerFunc(hub.Handle))
	defer srv.Close()
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if err := conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatalf("deadline: %v", err)
	}
	var snap spectate.Snapshot
	if err := conn.ReadJSON(&snap); err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	if snap.Tick != spectateEvery || snap.Player == nil || snap.Player.Ammo != 45 {
		t.Fatalf("expected the session's snapshot at tick %d, got %+v", spectateEvery, snap)
	}
}
