package mission

import (
	"os"
	"testing"

	"github.com/quasilyte/gdata/v2"
)

func TestRecordsWithoutManager(t *testing.T) {
	r := NewRecords(nil)
	if err := r.Append(Record{Outcome: "victory", Elapsed: 40}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if got := r.All(); len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
}

func TestRecordsBest(t *testing.T) {
	r := NewRecords(nil)
	for _, rec := range []Record{
		{Outcome: "defeat", Elapsed: 10},
		{Outcome: "victory", Elapsed: 90},
		{Outcome: "victory", Elapsed: 75},
	} {
		_ = r.Append(rec)
	}
	best, ok := r.Best()
	if !ok || best.Elapsed != 75 {
		t.Fatalf("expected fastest victory 75, got %+v ok=%v", best, ok)
	}
}

func TestRecordsTrimmed(t *testing.T) {
	r := NewRecords(nil)
	for i := 0; i < MaxRecords+5; i++ {
		_ = r.Append(Record{Outcome: "defeat", Kills: i})
	}
	all := r.All()
	if len(all) != MaxRecords || all[0].Kills != 5 {
		t.Fatalf("expected oldest records dropped, got len=%d first=%d", len(all), all[0].Kills)
	}
}

func TestRecordsPersist(t *testing.T) {
	tempDir := t.TempDir()
	prevHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	defer os.Setenv("HOME", prevHome)

	m, err := gdata.Open(gdata.Config{AppName: "gatebreach_test"})
	if err != nil {
		t.Skipf("gdata unavailable: %v", err)
	}

	r := NewRecords(m)
	if err := r.Append(Record{Outcome: "victory", Elapsed: 62.5, Kills: 4, Seed: 7}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	reloaded := NewRecords(m)
	all := reloaded.All()
	if len(all) != 1 || all[0].Kills != 4 || all[0].Seed != 7 {
		t.Fatalf("expected persisted record, got %+v", all)
	}
}
