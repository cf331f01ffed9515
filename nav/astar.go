package nav

import (
	"container/heap"
	"math"

	"github.com/milk9111/gatebreach/common"
)

// MaxSearchNodes caps how many cells a single path search expands.
const MaxSearchNodes = 4096

type node struct {
	idx   int
	f     float64
	index int
}

type openList []*node

func (o openList) Len() int           { return len(o) }
func (o openList) Less(i, j int) bool { return o[i].f < o[j].f }
func (o openList) Swap(i, j int) {
	o[i], o[j] = o[j], o[i]
	o[i].index = i
	o[j].index = j
}
func (o *openList) Push(x any) {
	n := x.(*node)
	n.index = len(*o)
	*o = append(*o, n)
}
func (o *openList) Pop() any {
	old := *o
	n := old[len(old)-1]
	*o = old[:len(old)-1]
	return n
}

var neighbors = [8][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

// FindPath plans an 8-way path between two world positions. The returned
// waypoints are cell centers with the exact goal as the final point. Diagonal
// moves never cut a blocked corner.
func (m *Mesh) FindPath(from, to common.Vec3) ([]common.Vec3, bool) {
	if m == nil {
		return nil, false
	}
	sx, sz, ok := m.Cell(from)
	if !ok {
		return nil, false
	}
	gx, gz, ok := m.Cell(to)
	if !ok || m.Blocked(gx, gz) {
		return nil, false
	}
	goal := common.Vec3{X: to.X, Y: m.Origin.Y, Z: to.Z}
	if sx == gx && sz == gz {
		return []common.Vec3{goal}, true
	}

	startIdx := sz*m.Width + sx
	goalIdx := gz*m.Width + gx

	g := map[int]float64{startIdx: 0}
	cameFrom := make(map[int]int, 128)
	closed := make(map[int]bool, 128)
	open := &openList{}
	heap.Push(open, &node{idx: startIdx, f: octile(sx, sz, gx, gz)})

	expanded := 0
	for open.Len() > 0 && expanded < MaxSearchNodes {
		cur := heap.Pop(open).(*node)
		if closed[cur.idx] {
			continue
		}
		closed[cur.idx] = true
		expanded++
		if cur.idx == goalIdx {
			return m.reconstruct(cameFrom, cur.idx, startIdx, goal), true
		}

		cx, cz := cur.idx%m.Width, cur.idx/m.Width
		for _, d := range neighbors {
			nx, nz := cx+d[0], cz+d[1]
			if m.Blocked(nx, nz) {
				continue
			}
			step := 1.0
			if d[0] != 0 && d[1] != 0 {
				if m.Blocked(cx+d[0], cz) || m.Blocked(cx, cz+d[1]) {
					continue
				}
				step = math.Sqrt2
			}
			nIdx := nz*m.Width + nx
			if closed[nIdx] {
				continue
			}
			tentative := g[cur.idx] + step
			if prev, seen := g[nIdx]; seen && tentative >= prev {
				continue
			}
			g[nIdx] = tentative
			cameFrom[nIdx] = cur.idx
			heap.Push(open, &node{idx: nIdx, f: tentative + octile(nx, nz, gx, gz)})
		}
	}
	return nil, false
}

func (m *Mesh) reconstruct(cameFrom map[int]int, cur, start int, goal common.Vec3) []common.Vec3 {
	cells := make([]int, 0, 32)
	for cur != start {
		cells = append(cells, cur)
		prev, ok := cameFrom[cur]
		if !ok {
			return nil
		}
		cur = prev
	}
	path := make([]common.Vec3, 0, len(cells))
	for i := len(cells) - 1; i > 0; i-- {
		idx := cells[i]
		path = append(path, m.CellCenter(idx%m.Width, idx/m.Width))
	}
	return append(path, goal)
}

func octile(x1, z1, x2, z2 int) float64 {
	dx := math.Abs(float64(x1 - x2))
	dz := math.Abs(float64(z1 - z2))
	return dx + dz + (math.Sqrt2-2)*math.Min(dx, dz)
}
