// seehuhn.de/go/otpack - a library for packing OpenType font tables
// Copyright (C) 2025  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package pack

import (
	"container/heap"
	"math"
)

type node struct {
	size     uint32
	distance uint64
	priority uint8
	parents  []ObjectID // one entry per incoming edge
}

// modifiedDistance is the heap key used when ordering by shortest
// distance.  Raising a node's priority pulls it towards the front of
// the order, and therefore closer to its parents.
func (n *node) modifiedDistance() uint64 {
	var sub uint64
	switch n.priority {
	case 0:
		return n.distance
	case 1:
		sub = uint64(n.size) / 2
	case 2:
		sub = uint64(n.size)
	default:
		return 0
	}
	if sub > n.distance {
		return 0
	}
	return n.distance - sub
}

// A Graph holds the objects of one serialization run together with the
// bookkeeping needed to find a valid table order and offset width
// assignment.  A Graph is owned by a single call to Pack and is not
// safe for concurrent use.
type Graph struct {
	objects []TableData
	nodes   []node
	order   []ObjectID
	root    ObjectID

	parentsDirty bool
}

// NewGraph creates a packing graph over the objects of the given
// store, rooted at the given object.
func NewGraph(store *ObjectStore, root ObjectID) *Graph {
	g := &Graph{
		objects:      store.objects,
		nodes:        make([]node, len(store.objects)),
		root:         root,
		parentsDirty: true,
	}
	for i := range g.nodes {
		g.nodes[i].size = uint32(len(g.objects[i].Bytes))
	}
	return g
}

// Order returns the current linearization of the graph.
func (g *Graph) Order() []ObjectID {
	return g.order
}

func (g *Graph) updateParents() {
	if !g.parentsDirty {
		return
	}
	for i := range g.nodes {
		g.nodes[i].parents = g.nodes[i].parents[:0]
	}
	for id := range g.objects {
		for _, rec := range g.objects[id].Offsets {
			t := rec.Target
			g.nodes[t].parents = append(g.nodes[t].parents, ObjectID(id))
		}
	}
	g.parentsDirty = false
}

// sortKahn produces a topological order using Kahn's algorithm with a
// min-heap keyed by ObjectID.  A node is scheduled once it has been
// reached via every one of its incoming edges, so every parent
// precedes all of its children.
func (g *Graph) sortKahn() {
	g.updateParents()
	removed := make([]int, len(g.nodes))
	queue := idHeap{g.root}
	g.order = g.order[:0]
	for len(queue) > 0 {
		next := heap.Pop(&queue).(ObjectID)
		g.order = append(g.order, next)
		for _, rec := range g.objects[next].Offsets {
			t := rec.Target
			removed[t]++
			if removed[t] == len(g.nodes[t].parents) {
				heap.Push(&queue, t)
			}
		}
	}
}

// offsetPenalty is the distance contribution of following an offset of
// the given width.  Wider offsets can reach further, so they are
// penalized less per byte of child size.
func offsetPenalty(w OffsetLen) uint64 {
	return 1 << (8 * uint(w))
}

// sortShortestDistance orders the objects by increasing distance from
// the root, where following an edge to a child of size s through an
// offset of width w costs s + 2^(8w).  The same edge-count gating as
// in sortKahn ensures parents precede children.  Ties are broken by
// order of discovery, which keeps the result deterministic.
func (g *Graph) sortShortestDistance() {
	g.updateParents()
	for i := range g.nodes {
		g.nodes[i].distance = math.MaxUint64
	}
	g.nodes[g.root].distance = 0

	removed := make([]int, len(g.nodes))
	var discovered uint32
	queue := distHeap{{dist: 0, order: 0, id: g.root}}
	discovered++

	g.order = g.order[:0]
	for len(queue) > 0 {
		next := heap.Pop(&queue).(distEntry).id
		g.order = append(g.order, next)
		base := g.nodes[next].distance
		for _, rec := range g.objects[next].Offsets {
			t := rec.Target
			tn := &g.nodes[t]
			d := base + uint64(tn.size) + offsetPenalty(rec.Width)
			if d < tn.distance {
				tn.distance = d
			}
			removed[t]++
			if removed[t] == len(tn.parents) {
				heap.Push(&queue, distEntry{
					dist:  tn.modifiedDistance(),
					order: discovered,
					id:    t,
				})
				discovered++
			}
		}
	}
}

// placedError checks that the last ordering pass placed every object.
// Objects remain unplaced if they are unreachable from the root or if
// their edges form a cycle.
func (g *Graph) placedError() error {
	if len(g.order) == len(g.nodes) {
		return nil
	}
	placed := make([]bool, len(g.nodes))
	for _, id := range g.order {
		placed[id] = true
	}
	var unplaced []ObjectID
	for id := range g.nodes {
		if !placed[id] {
			unplaced = append(unplaced, ObjectID(id))
		}
	}
	return &PackingError{
		Reason:   "cycle or unreachable tables",
		Unplaced: unplaced,
	}
}

// positions computes the absolute start offset of every object under
// the current order.
func (g *Graph) positions() []uint64 {
	pos := make([]uint64, len(g.objects))
	var total uint64
	for _, id := range g.order {
		pos[id] = total
		total += uint64(len(g.objects[id].Bytes))
	}
	return pos
}

type overflow struct {
	source ObjectID
	rec    int // index into the source object's offset records
}

// findOverflows returns all offsets whose resolved value does not fit
// the currently assigned width.
func (g *Graph) findOverflows() []overflow {
	pos := g.positions()
	var res []overflow
	for _, id := range g.order {
		base := pos[id]
		for i, rec := range g.objects[id].Offsets {
			resolved := int64(pos[rec.Target]) - int64(base) - int64(rec.Adjustment)
			if resolved < 0 || resolved > int64(rec.Width.Max()) {
				res = append(res, overflow{source: id, rec: i})
			}
		}
	}
	return res
}

// widen grows the given offset field by one width class.  The
// placeholder in the source object's bytes gains one byte, and the
// positions of all following offset records shift accordingly.
func (g *Graph) widen(o overflow) {
	obj := &g.objects[o.source]
	rec := &obj.Offsets[o.rec]

	pos := int(rec.Pos)
	obj.Bytes = append(obj.Bytes, 0)
	copy(obj.Bytes[pos+1:], obj.Bytes[pos:])
	obj.Bytes[pos] = 0

	rec.Width++
	for i := o.rec + 1; i < len(obj.Offsets); i++ {
		obj.Offsets[i].Pos++
	}
	g.nodes[o.source].size++
}

// Pack finds a table order and offset width assignment under which
// every offset fits its field.  Offset widths are only ever widened,
// never narrowed.  When an offset overflows, its field is widened by
// one class and the target's priority is raised so that the next
// ordering pass places it closer to its parents.
func (g *Graph) Pack() error {
	if len(g.objects) == 0 {
		return nil
	}

	g.sortKahn()
	if err := g.placedError(); err != nil {
		return err
	}
	if len(g.findOverflows()) == 0 {
		return nil
	}

	g.sortShortestDistance()
	for {
		overflows := g.findOverflows()
		if len(overflows) == 0 {
			return nil
		}
		for _, o := range overflows {
			rec := &g.objects[o.source].Offsets[o.rec]
			if rec.Width >= Offset32 {
				return g.overflowError(o.source, rec.Target)
			}
			g.widen(o)
			if n := &g.nodes[rec.Target]; n.priority < 3 {
				n.priority++
			}
		}
		g.sortShortestDistance()
	}
}

// idHeap is a min-heap of object IDs.
type idHeap []ObjectID

func (h idHeap) Len() int            { return len(h) }
func (h idHeap) Less(i, j int) bool  { return h[i] < h[j] }
func (h idHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *idHeap) Push(x any) { *h = append(*h, x.(ObjectID)) }
func (h *idHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

type distEntry struct {
	dist  uint64
	order uint32
	id    ObjectID
}

// distHeap is a min-heap of (distance, discovery order) pairs.
type distHeap []distEntry

func (h distHeap) Len() int { return len(h) }
func (h distHeap) Less(i, j int) bool {
	if h[i].dist != h[j].dist {
		return h[i].dist < h[j].dist
	}
	return h[i].order < h[j].order
}
func (h distHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *distHeap) Push(x any) { *h = append(*h, x.(distEntry)) }
func (h *distHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
