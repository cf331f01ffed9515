// Package nav is a grid navigation mesh over the arena ground plane.
package nav

import (
	"errors"
	"fmt"
	"math"

	"github.com/milk9111/gatebreach/common"
)

var ErrInvalidMesh = errors.New("nav: invalid mesh")

// Rect is an axis-aligned blocker in world units on the XZ plane.
type Rect struct {
	MinX, MinZ float64
	MaxX, MaxZ float64
}

func (r Rect) contains(x, z float64) bool {
	return x >= r.MinX && x <= r.MaxX && z >= r.MinZ && z <= r.MaxZ
}

// Mesh is a walkable grid. Cell (0,0) has its minimum corner at Origin.
type Mesh struct {
	Origin   common.Vec3
	CellSize float64
	Width    int
	Depth    int

	blocked []bool
}

// NewMesh builds a grid covering width x depth world units from origin,
// marking every cell whose center lies inside an obstacle as blocked.
func NewMesh(origin common.Vec3, width, depth, cellSize float64, obstacles []Rect) (*Mesh, error) {
	if cellSize <= 0 || width <= 0 || depth <= 0 {
		return nil, fmt.Errorf("%w: size %.2fx%.2f cell %.2f", ErrInvalidMesh, width, depth, cellSize)
	}
	m := &Mesh{
		Origin:   origin,
		CellSize: cellSize,
		Width:    int(math.Ceil(width / cellSize)),
		Depth:    int(math.Ceil(depth / cellSize)),
	}
	m.blocked = make([]bool, m.Width*m.Depth)
	for cz := 0; cz < m.Depth; cz++ {
		for cx := 0; cx < m.Width; cx++ {
			c := m.CellCenter(cx, cz)
			for _, r := range obstacles {
				if r.contains(c.X, c.Z) {
					m.blocked[cz*m.Width+cx] = true
					break
				}
			}
		}
	}
	return m, nil
}

// Cell returns the grid coordinates of p and whether they are in bounds.
func (m *Mesh) Cell(p common.Vec3) (int, int, bool) {
	if m == nil {
		return 0, 0, false
	}
	cx := int(math.Floor((p.X - m.Origin.X) / m.CellSize))
	cz := int(math.Floor((p.Z - m.Origin.Z) / m.CellSize))
	return cx, cz, m.inBounds(cx, cz)
}

func (m *Mesh) inBounds(cx, cz int) bool {
	return cx >= 0 && cz >= 0 && cx < m.Width && cz < m.Depth
}

// CellCenter is the world position at the middle of a cell, on the mesh plane.
func (m *Mesh) CellCenter(cx, cz int) common.Vec3 {
	return common.Vec3{
		X: m.Origin.X + (float64(cx)+0.5)*m.CellSize,
		Y: m.Origin.Y,
		Z: m.Origin.Z + (float64(cz)+0.5)*m.CellSize,
	}
}

// Blocked reports whether a cell is out of bounds or obstructed.
func (m *Mesh) Blocked(cx, cz int) bool {
	if m == nil || !m.inBounds(cx, cz) {
		return true
	}
	return m.blocked[cz*m.Width+cx]
}

// SetBlocked toggles a cell, e.g. when the gate opens.
func (m *Mesh) SetBlocked(cx, cz int, blocked bool) {
	if m == nil || !m.inBounds(cx, cz) {
		return
	}
	m.blocked[cz*m.Width+cx] = blocked
}

// Unblock clears every cell whose center lies inside r.
func (m *Mesh) Unblock(r Rect) {
	if m == nil {
		return
	}
	for cz := 0; cz < m.Depth; cz++ {
		for cx := 0; cx < m.Width; cx++ {
			c := m.CellCenter(cx, cz)
			if r.contains(c.X, c.Z) {
				m.blocked[cz*m.Width+cx] = false
			}
		}
	}
}

// Walkable reports whether p lies on an unblocked cell.
func (m *Mesh) Walkable(p common.Vec3) bool {
	cx, cz, ok := m.Cell(p)
	return ok && !m.Blocked(cx, cz)
}

// SampleReachable finds the walkable point nearest to p within maxDistance.
// A walkable p is returned unchanged apart from snapping to the mesh plane.
func (m *Mesh) SampleReachable(p common.Vec3, maxDistance float64) (common.Vec3, bool) {
	if m == nil || maxDistance < 0 {
		return common.Vec3{}, false
	}
	if m.Walkable(p) {
		return common.Vec3{X: p.X, Y: m.Origin.Y, Z: p.Z}, true
	}

	span := int(math.Ceil(maxDistance/m.CellSize)) + 1
	cx, cz, _ := m.Cell(p)
	flat := common.Vec3{X: p.X, Y: m.Origin.Y, Z: p.Z}

	best := common.Vec3{}
	bestDist := math.Inf(1)
	found := false
	for z := cz - span; z <= cz+span; z++ {
		for x := cx - span; x <= cx+span; x++ {
			if m.Blocked(x, z) {
				continue
			}
			c := m.CellCenter(x, z)
			d := common.Distance(flat, c)
			if d <= maxDistance && d < bestDist {
				best, bestDist, found = c, d, true
			}
		}
	}
	return best, found
}
