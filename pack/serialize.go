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

// Serialize emits the final byte stream for a packed graph.  The
// objects are concatenated in packing order, and every offset
// placeholder is overwritten with the resolved distance from its base
// to the target object.  Pack must have succeeded before Serialize is
// called.
func (g *Graph) Serialize() []byte {
	pos := g.positions()

	var total int
	for _, id := range g.order {
		total += len(g.objects[id].Bytes)
	}
	out := make([]byte, 0, total)
	for _, id := range g.order {
		out = append(out, g.objects[id].Bytes...)
	}

	for _, id := range g.order {
		base := pos[id]
		for _, rec := range g.objects[id].Offsets {
			resolved := pos[rec.Target] - base - uint64(rec.Adjustment)
			p := base + uint64(rec.Pos)
			switch rec.Width {
			case Offset16:
				out[p] = byte(resolved >> 8)
				out[p+1] = byte(resolved)
			case Offset24:
				out[p] = byte(resolved >> 16)
				out[p+1] = byte(resolved >> 8)
				out[p+2] = byte(resolved)
			case Offset32:
				out[p] = byte(resolved >> 24)
				out[p+1] = byte(resolved >> 16)
				out[p+2] = byte(resolved >> 8)
				out[p+3] = byte(resolved)
			}
		}
	}
	return out
}
