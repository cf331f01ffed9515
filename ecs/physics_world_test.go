package ecs

import (
	"testing"

	"github.com/milk9111/gatebreach/common"
)

func TestPhysicsWorldContacts(t *testing.T) {
	cases := []struct {
		name     string
		posB     common.Vec3
		groupA   uint
		groupB   uint
		expected int
	}{
		{"overlapping", common.Vec3{X: 0.5}, 0, 0, 1},
		{"apart", common.Vec3{X: 10}, 0, 0, 0},
		{"same_group_excluded", common.Vec3{X: 0.5}, 7, 7, 0},
		{"different_groups", common.Vec3{X: 0.5}, 7, 8, 1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			a := CreateEntity(w)
			b := CreateEntity(w)
			pw := NewPhysicsWorld()

			pw.Sync(a, common.Vec3{}, 1, c.groupA)
			pw.Sync(b, c.posB, 1, c.groupB)
			contacts := pw.Step(common.FixedDelta)

			enters := 0
			for _, ct := range contacts {
				if ct.Kind != ContactEnter {
					continue
				}
				if other, ok := ct.Involves(a); !ok || other != b {
					t.Fatalf("unexpected contact %+v", ct)
				}
				enters++
			}
			if enters != c.expected {
				t.Fatalf("expected %d enter contacts, got %d", c.expected, enters)
			}
		})
	}
}

func TestPhysicsWorldSeparateAndRemove(t *testing.T) {
	w := NewWorld()
	a := CreateEntity(w)
	b := CreateEntity(w)
	pw := NewPhysicsWorld()

	pw.Sync(a, common.Vec3{}, 1, 0)
	pw.Sync(b, common.Vec3{Z: 0.5}, 1, 0)
	if n := len(pw.Step(common.FixedDelta)); n != 1 {
		t.Fatalf("expected enter contact, got %d contacts", n)
	}
	// staying in contact does not re-fire enter
	for _, ct := range pw.Step(common.FixedDelta) {
		if ct.Kind == ContactEnter {
			t.Fatalf("enter must only fire once per overlap")
		}
	}

	pw.Sync(b, common.Vec3{Z: 20}, 1, 0)
	exits := 0
	for i := 0; i < 3; i++ {
		for _, ct := range pw.Step(common.FixedDelta) {
			if ct.Kind == ContactExit {
				exits++
			}
		}
	}
	if exits != 1 {
		t.Fatalf("expected one exit contact, got %d", exits)
	}

	pw.Remove(b)
	if pw.Has(b) {
		t.Fatalf("expected sensor removed")
	}
	if len(pw.Tracked()) != 1 {
		t.Fatalf("expected only a tracked, got %v", pw.Tracked())
	}
}
