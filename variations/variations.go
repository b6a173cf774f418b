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

// Package variations reads tuple variation stores, the per-glyph delta
// format shared by the "gvar" and "cvar" tables of variable fonts.
//
// https://learn.microsoft.com/en-us/typography/opentype/spec/otvarcommonformats
package variations

import (
	"seehuhn.de/go/otpack/fixed"
	"seehuhn.de/go/otpack/parser"
)

// A Tuple is a position in normalized design space, one coordinate per
// axis.
type Tuple []fixed.F2Dot14

// Flags stored in the tupleIndex field of a tuple variation header.
const (
	// EmbeddedPeakTuple indicates that the peak tuple is stored in the
	// header itself.  If clear, the low bits of tupleIndex select one
	// of the shared tuples.  The "cvar" table always embeds its peaks.
	EmbeddedPeakTuple uint16 = 0x8000

	// IntermediateRegion indicates that the header stores explicit
	// start and end tuples after the peak.
	IntermediateRegion uint16 = 0x4000

	// PrivatePointNumbers indicates that the serialized data for this
	// tuple starts with its own packed point numbers, instead of using
	// the shared point numbers of the store.
	PrivatePointNumbers uint16 = 0x2000

	// TupleIndexMask extracts the shared tuple index.
	TupleIndexMask uint16 = 0x0FFF
)

// Flags stored in the tupleVariationCount field of a tuple variation
// store.
const (
	// SharedPointNumbers indicates that the serialized data starts
	// with a packed point number set shared by all tuples.
	SharedPointNumbers uint16 = 0x8000

	// CountMask extracts the number of tuple variation tables.
	CountMask uint16 = 0x0FFF
)

// A TupleVariationHeader describes the design-space region one tuple
// variation applies to.
type TupleVariationHeader struct {
	// VariationDataSize is the size in bytes of this tuple's portion
	// of the serialized data.
	VariationDataSize int

	// Peak is the embedded peak tuple, or nil if the header refers to
	// a shared tuple instead.
	Peak Tuple

	// SharedIndex selects the shared peak tuple when Peak is nil.
	SharedIndex int

	// Start and End delimit an intermediate region.  Both are nil
	// unless the IntermediateRegion flag was set.
	Start, End Tuple

	// Private indicates that the tuple carries its own point numbers.
	Private bool
}

func decodeHeader(c *parser.Cursor, axisCount int) (*TupleVariationHeader, error) {
	size, err := c.Uint16()
	if err != nil {
		return nil, err
	}
	tupleIndex, err := c.Uint16()
	if err != nil {
		return nil, err
	}

	h := &TupleVariationHeader{
		VariationDataSize: int(size),
		SharedIndex:       int(tupleIndex & TupleIndexMask),
		Private:           tupleIndex&PrivatePointNumbers != 0,
	}
	if tupleIndex&EmbeddedPeakTuple != 0 {
		h.Peak, err = decodeTuple(c, axisCount)
		if err != nil {
			return nil, err
		}
	}
	if tupleIndex&IntermediateRegion != 0 {
		h.Start, err = decodeTuple(c, axisCount)
		if err != nil {
			return nil, err
		}
		h.End, err = decodeTuple(c, axisCount)
		if err != nil {
			return nil, err
		}
	}
	return h, nil
}

func decodeTuple(c *parser.Cursor, axisCount int) (Tuple, error) {
	res := make(Tuple, axisCount)
	for i := range res {
		x, err := c.Int16()
		if err != nil {
			return nil, err
		}
		res[i] = fixed.F2Dot14(x)
	}
	return res, nil
}

// DecodeSharedTuples reads the shared tuple array from a gvar table
// header.
func DecodeSharedTuples(data []byte, count, axisCount int) ([]Tuple, error) {
	c := parser.New(data).Cursor(0)
	res := make([]Tuple, count)
	for i := range res {
		t, err := decodeTuple(c, axisCount)
		if err != nil {
			return nil, err
		}
		res[i] = t
	}
	return res, nil
}

var errInvalidVariations = &parser.InvalidFontError{
	SubSystem: "otpack/variations",
	Reason:    "invalid tuple variation data",
}
