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

package variations

import "seehuhn.de/go/otpack/traversal"

func tupleValue(t Tuple) traversal.Value {
	vv := make([]traversal.Value, len(t))
	for i, c := range t {
		vv[i] = traversal.FixedValue(c.Fixed())
	}
	return traversal.List(vv...)
}

// TableName implements the [traversal.Table] interface.
func (h *TupleVariationHeader) TableName() string {
	return "TupleVariationHeader"
}

// Fields implements the [traversal.Table] interface.
func (h *TupleVariationHeader) Fields() []traversal.Field {
	ff := []traversal.Field{
		{
			Name:  "variationDataSize",
			Value: traversal.Integer(int64(h.VariationDataSize)),
		},
	}
	if h.Peak != nil {
		ff = append(ff, traversal.Field{
			Name:  "peakTuple",
			Value: tupleValue(h.Peak),
		})
	} else {
		ff = append(ff, traversal.Field{
			Name:  "sharedTupleIndex",
			Value: traversal.Integer(int64(h.SharedIndex)),
		})
	}
	if h.Start != nil {
		ff = append(ff,
			traversal.Field{
				Name:  "intermediateStartTuple",
				Value: tupleValue(h.Start),
			},
			traversal.Field{
				Name:  "intermediateEndTuple",
				Value: tupleValue(h.End),
			})
	}
	var private int64
	if h.Private {
		private = 1
	}
	ff = append(ff, traversal.Field{
		Name:  "privatePointNumbers",
		Value: traversal.Integer(private),
	})
	return ff
}
