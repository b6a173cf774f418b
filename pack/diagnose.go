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
	"seehuhn.de/go/dijkstra"
)

// chainFinder presents the object graph to the shortest path solver,
// with the target object ID as the edge type.
type chainFinder struct {
	g *Graph
}

func (f chainFinder) AppendEdges(ee []ObjectID, v ObjectID) []ObjectID {
	for _, rec := range f.g.objects[v].Offsets {
		ee = append(ee, rec.Target)
	}
	return ee
}

func (f chainFinder) To(_ ObjectID, e ObjectID) ObjectID {
	return e
}

func (f chainFinder) Length(_ ObjectID, e ObjectID) int {
	return 1
}

// chainTo returns a path from the root to the given object, for use in
// error reports.
func (g *Graph) chainTo(target ObjectID) []ObjectID {
	ee, err := dijkstra.ShortestPath[ObjectID, ObjectID, int](chainFinder{g}, g.root, target)
	if err != nil {
		return nil
	}
	chain := make([]ObjectID, 0, len(ee)+1)
	chain = append(chain, g.root)
	chain = append(chain, ee...)
	return chain
}

// overflowError reports an offset which cannot be represented even at
// the widest offset class.  This only happens when the total size of
// the tables between source and target exceeds the 32-bit address
// space.
func (g *Graph) overflowError(source, target ObjectID) error {
	return &PackingError{
		Reason: "offset does not fit in 32 bits",
		Source: source,
		Target: target,
		Chain:  g.chainTo(source),
	}
}
