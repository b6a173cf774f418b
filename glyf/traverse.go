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

package glyf

import "seehuhn.de/go/otpack/traversal"

// TableName implements the [traversal.Table] interface.
func (c GlyphComponent) TableName() string {
	return "GlyphComponent"
}

// Fields implements the [traversal.Table] interface.
func (c GlyphComponent) Fields() []traversal.Field {
	return []traversal.Field{
		{Name: "flags", Value: traversal.Integer(int64(c.Flags))},
		{Name: "glyphIndex", Value: traversal.Integer(int64(c.GlyphIndex))},
		{Name: "data", Value: traversal.Bytes(c.Data)},
	}
}

// TableName implements the [traversal.Table] interface.
func (g CompositeGlyph) TableName() string {
	return "CompositeGlyph"
}

// Fields implements the [traversal.Table] interface.
func (g CompositeGlyph) Fields() []traversal.Field {
	comps := make([]traversal.Value, len(g.Components))
	for i, c := range g.Components {
		comps[i] = traversal.Nested(c)
	}
	ff := []traversal.Field{
		{Name: "components", Value: traversal.List(comps...)},
	}
	if g.Instructions != nil {
		ff = append(ff, traversal.Field{
			Name:  "instructions",
			Value: traversal.Bytes(g.Instructions),
		})
	}
	return ff
}
