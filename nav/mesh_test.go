package nav

import (
	"errors"
	"testing"

	"github.com/milk9111/gatebreach/common"
)

func testMesh(t *testing.T, obstacles ...Rect) *Mesh {
	t.Helper()
	m, err := NewMesh(common.Vec3{}, 10, 10, 1, obstacles)
	if err != nil {
		t.Fatalf("NewMesh: %v", err)
	}
	return m
}

func TestNewMeshRejectsBadSize(t *testing.T) {
	_, err := NewMesh(common.Vec3{}, 10, 10, 0, nil)
	if !errors.Is(err, ErrInvalidMesh) {
		t.Fatalf("expected ErrInvalidMesh, got %v", err)
	}
}

func TestSampleReachable(t *testing.T) {
	wall := Rect{MinX: 4, MinZ: 0, MaxX: 6, MaxZ: 10}
	m := testMesh(t, wall)

	tests := []struct {
		name   string
		p      common.Vec3
		radius float64
		wantOK bool
	}{
		{name: "walkable_point", p: common.Vec3{X: 1.2, Y: 3, Z: 1.7}, radius: 0, wantOK: true},
		{name: "inside_wall_near_edge", p: common.Vec3{X: 4.6, Z: 5.5}, radius: 2, wantOK: true},
		{name: "inside_wall_no_reach", p: common.Vec3{X: 5, Z: 5}, radius: 0.2, wantOK: false},
		{name: "far_outside", p: common.Vec3{X: 50, Z: 50}, radius: 5, wantOK: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := m.SampleReachable(tc.p, tc.radius)
			if ok != tc.wantOK {
				t.Fatalf("expected ok=%v, got %v (%v)", tc.wantOK, ok, got)
			}
			if !ok {
				return
			}
			if !m.Walkable(got) {
				t.Fatalf("sampled point %v is not walkable", got)
			}
			if got.Y != 0 {
				t.Fatalf("expected point on mesh plane, got y=%v", got.Y)
			}
			if d := common.Distance(got, common.Vec3{X: tc.p.X, Z: tc.p.Z}); d > tc.radius+1e-9 {
				t.Fatalf("sample %v is %.3f away, radius %.3f", got, d, tc.radius)
			}
		})
	}
}

func TestFindPathRoutesAroundWall(t *testing.T) {
	// Wall with a gap at the top row.
	m := testMesh(t, Rect{MinX: 4, MinZ: 0, MaxX: 5, MaxZ: 8})

	from := common.Vec3{X: 1.5, Z: 1.5}
	to := common.Vec3{X: 8.5, Z: 1.5}
	path, ok := m.FindPath(from, to)
	if !ok {
		t.Fatalf("expected a path")
	}
	if last := path[len(path)-1]; last != to {
		t.Fatalf("expected path to end at goal, got %v", last)
	}
	for _, wp := range path {
		if !m.Walkable(wp) {
			t.Fatalf("waypoint %v is blocked", wp)
		}
	}
	wentHigh := false
	for _, wp := range path {
		if wp.Z > 8 {
			wentHigh = true
		}
	}
	if !wentHigh {
		t.Fatalf("expected path through the gap, got %v", path)
	}
}

func TestFindPathFailures(t *testing.T) {
	m := testMesh(t, Rect{MinX: 4, MinZ: 0, MaxX: 5, MaxZ: 10})

	if _, ok := m.FindPath(common.Vec3{X: 1, Z: 1}, common.Vec3{X: 8, Z: 1}); ok {
		t.Fatalf("expected no path across a sealed wall")
	}
	if _, ok := m.FindPath(common.Vec3{X: 1, Z: 1}, common.Vec3{X: 4.5, Z: 1}); ok {
		t.Fatalf("expected no path into a blocked cell")
	}
	if _, ok := m.FindPath(common.Vec3{X: -3, Z: 1}, common.Vec3{X: 1, Z: 1}); ok {
		t.Fatalf("expected no path from outside the mesh")
	}

	m.Unblock(Rect{MinX: 4, MinZ: 4, MaxX: 5, MaxZ: 5})
	if _, ok := m.FindPath(common.Vec3{X: 1, Z: 1}, common.Vec3{X: 8, Z: 1}); !ok {
		t.Fatalf("expected a path after unblocking")
	}
}

func TestFindPathSameCell(t *testing.T) {
	m := testMesh(t)
	to := common.Vec3{X: 2.7, Z: 2.2}
	path, ok := m.FindPath(common.Vec3{X: 2.1, Z: 2.9}, to)
	if !ok || len(path) != 1 || path[0] != to {
		t.Fatalf("expected single waypoint at goal, got %v ok=%v", path, ok)
	}
}
