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

// Package pack serializes trees of OpenType font tables into their
// binary form.  Sub-tables are referenced through 16, 24 or 32-bit
// offsets; the packer chooses a table order and widens offset fields
// as needed so that every offset fits its field.  Structurally
// identical sub-tables are merged and shared between their parents.
//
// https://learn.microsoft.com/en-us/typography/opentype/spec/otff
package pack

// Dump serializes a complete table tree into its binary form.
//
// The table tree is validated first: if any table reports problems,
// Dump returns a *ValidationError listing all of them and writes
// nothing.  If no ordering of the tables can make every offset fit
// even after widening, Dump returns a *PackingError.
func Dump(root Table) ([]byte, error) {
	w := NewWriter()
	rootID := w.WriteTable(root)
	if problems := w.Problems(); len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}

	g := NewGraph(w.Store(), rootID)
	if err := g.Pack(); err != nil {
		return nil, err
	}
	return g.Serialize(), nil
}
