package mission

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	recordsObject   = "missions"
	recordsProperty = "history"
	// MaxRecords bounds the persisted history; oldest entries are dropped.
	MaxRecords = 50
)

// Record is one finished mission.
type Record struct {
	Outcome string  `yaml:"outcome"`
	Reason  string  `yaml:"reason,omitempty"`
	Elapsed float64 `yaml:"elapsed"`
	Kills   int     `yaml:"kills"`
	Seed    int64   `yaml:"seed"`
}

// Records persists mission history through gdata. With a nil manager it
// keeps history in memory only.
type Records struct {
	manager *gdata.Manager
	list    []Record
}

// OpenRecords opens the per-user data directory for appName.
func OpenRecords(appName string) (*Records, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return NewRecords(nil), fmt.Errorf("mission: open records: %w", err)
	}
	return NewRecords(m), nil
}

// NewRecords loads any saved history. Load failures fall back to an empty list.
func NewRecords(m *gdata.Manager) *Records {
	r := &Records{manager: m}
	if err := r.Load(); err != nil {
		log.Printf("mission: load records: %v (starting empty)", err)
	}
	return r
}

func (r *Records) Load() error {
	r.list = nil
	if r.manager == nil || !r.manager.ObjectPropExists(recordsObject, recordsProperty) {
		return nil
	}
	data, err := r.manager.LoadObjectProp(recordsObject, recordsProperty)
	if err != nil {
		return fmt.Errorf("mission: read records: %w", err)
	}
	var list []Record
	if err := yaml.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("mission: decode records: %w", err)
	}
	r.list = list
	return nil
}

// Append adds rec and saves the history.
func (r *Records) Append(rec Record) error {
	r.list = append(r.list, rec)
	if len(r.list) > MaxRecords {
		r.list = append([]Record(nil), r.list[len(r.list)-MaxRecords:]...)
	}
	return r.save()
}

func (r *Records) save() error {
	if r.manager == nil {
		return nil
	}
	data, err := yaml.Marshal(r.list)
	if err != nil {
		return fmt.Errorf("mission: encode records: %w", err)
	}
	if err := r.manager.SaveObjectProp(recordsObject, recordsProperty, data); err != nil {
		return fmt.Errorf("mission: save records: %w", err)
	}
	return nil
}

// All returns a copy of the history, oldest first.
func (r *Records) All() []Record {
	out := make([]Record, len(r.list))
	copy(out, r.list)
	return out
}

// Best returns the fastest victory, if any.
func (r *Records) Best() (Record, bool) {
	var best Record
	found := false
	for _, rec := range r.list {
		if rec.Outcome != OutcomeVictory.String() {
			continue
		}
		if !found || rec.Elapsed < best.Elapsed {
			best, found = rec, true
		}
	}
	return best, found
}
