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

import (
	"seehuhn.de/go/otpack/fixed"
	"seehuhn.de/go/otpack/parser"
)

// TupleVariationData holds the decoded tuple variation store for one
// glyph (from the "gvar" table) or for the CVT (from the "cvar"
// table).
type TupleVariationData struct {
	axisCount int
	tuples    []*TupleVariation
}

// A TupleVariation is one tuple variation table: a design-space
// region together with the packed deltas which apply there.
type TupleVariation struct {
	Header *TupleVariationHeader

	peak      Tuple
	points    []uint16 // nil means the deltas apply to all points
	deltas    parser.FontData
	glyphData bool
}

// NewGlyphData decodes the tuple variation store for one glyph.  The
// data must start at the glyph's tupleVariationCount field, with all
// offsets relative to the start of data.  The shared tuples come from
// the gvar table header.
func NewGlyphData(data []byte, axisCount int, shared []Tuple) (*TupleVariationData, error) {
	return newData(data, axisCount, shared, true)
}

// NewValueData decodes a cvar-style tuple variation store, where each
// point number selects a CVT entry and each tuple carries a single
// delta stream.  The data must start at the tupleVariationCount field.
func NewValueData(data []byte, axisCount int) (*TupleVariationData, error) {
	return newData(data, axisCount, nil, false)
}

func newData(data []byte, axisCount int, shared []Tuple, glyphData bool) (*TupleVariationData, error) {
	d := parser.New(data)
	c := d.Cursor(0)

	countField, err := c.Uint16()
	if err != nil {
		return nil, err
	}
	dataOffset, err := c.Uint16()
	if err != nil {
		return nil, err
	}
	count := int(countField & CountMask)

	headers := make([]*TupleVariationHeader, count)
	for i := range headers {
		headers[i], err = decodeHeader(c, axisCount)
		if err != nil {
			return nil, err
		}
	}

	// the serialized data region
	sc := d.Cursor(0)
	if err := sc.Skip(int(dataOffset)); err != nil {
		return nil, errInvalidVariations
	}
	var sharedPoints []uint16
	if countField&SharedPointNumbers != 0 {
		sharedPoints, err = decodePointNumbers(sc)
		if err != nil {
			return nil, err
		}
	}

	res := &TupleVariationData{axisCount: axisCount}
	for _, h := range headers {
		lo := sc.Pos()
		hi := lo + h.VariationDataSize
		body, ok := d.Slice(lo, hi)
		if !ok {
			return nil, errInvalidVariations
		}
		bc := body.Cursor(0)

		points := sharedPoints
		if h.Private {
			points, err = decodePointNumbers(bc)
			if err != nil {
				return nil, err
			}
		}

		peak := h.Peak
		if peak == nil {
			if h.SharedIndex >= len(shared) {
				return nil, errInvalidVariations
			}
			peak = shared[h.SharedIndex]
		}
		if len(peak) != axisCount {
			return nil, errInvalidVariations
		}

		deltas, _ := body.Slice(bc.Pos(), body.Len())
		res.tuples = append(res.tuples, &TupleVariation{
			Header:    h,
			peak:      peak,
			points:    points,
			deltas:    deltas,
			glyphData: glyphData,
		})

		if err := sc.Skip(h.VariationDataSize); err != nil {
			return nil, errInvalidVariations
		}
	}
	return res, nil
}

// Tuples returns the tuple variation tables of the store.
func (d *TupleVariationData) Tuples() []*TupleVariation {
	return d.tuples
}

// An ActiveTuple is a tuple variation together with its interpolation
// weight at some design-space location.
type ActiveTuple struct {
	*TupleVariation
	Weight fixed.Fixed
}

// ActiveTuplesAt returns the tuples which contribute deltas at the
// given location, together with their weights.
func (d *TupleVariationData) ActiveTuplesAt(coords []fixed.F2Dot14) []ActiveTuple {
	var active []ActiveTuple
	for _, t := range d.tuples {
		weight, ok := t.Scalar(coords)
		if !ok || weight == 0 {
			continue
		}
		active = append(active, ActiveTuple{TupleVariation: t, Weight: weight})
	}
	return active
}

// Peak returns the peak tuple, resolving shared tuple references.
func (t *TupleVariation) Peak() Tuple {
	return t.peak
}

// PointNumbers returns the point numbers the deltas of this tuple
// apply to.  A nil result means the deltas apply to all points.
func (t *TupleVariation) PointNumbers() []uint16 {
	return t.points
}

// HasDeltasForAllPoints reports whether the deltas of this tuple apply
// to all points in order, rather than to an explicit sparse set.
func (t *TupleVariation) HasDeltasForAllPoints() bool {
	return t.points == nil
}

// Scalar computes the interpolation weight of this tuple at the given
// design-space location.  The second return value is false when the
// tuple does not apply there.
func (t *TupleVariation) Scalar(coords []fixed.F2Dot14) (fixed.Fixed, bool) {
	scalar := fixed.One
	for i, peak := range t.peak {
		var coord fixed.F2Dot14
		if i < len(coords) {
			coord = coords[i]
		}

		// a zero peak means the axis does not participate
		if peak == 0 || peak == coord {
			continue
		}
		if coord == 0 {
			return 0, false
		}

		if t.Header.Start != nil {
			start := t.Header.Start[i]
			end := t.Header.End[i]
			if coord <= start || coord >= end {
				return 0, false
			}
			if coord < peak {
				scalar = scalar.MulDiv((coord - start).Fixed(), (peak - start).Fixed())
			} else {
				scalar = scalar.MulDiv((end - coord).Fixed(), (end - peak).Fixed())
			}
		} else {
			if coord < min(peak, 0) || coord > max(peak, 0) {
				return 0, false
			}
			scalar = scalar.MulDiv(coord.Fixed(), peak.Fixed())
		}
	}
	return scalar, true
}

// A GlyphDelta is the delta for one glyph point.
type GlyphDelta struct {
	Position uint16
	X, Y     int16
}

// A ValueDelta is the delta for one CVT entry.
type ValueDelta struct {
	Position uint16
	Delta    int16
}

// Deltas decodes the deltas of a glyph data tuple.  The glyph data
// format stores all X deltas first, followed by all Y deltas.  For
// sparse tuples the positions come from the point number set; for
// all-points tuples they count up from zero, capped at numPoints.
// Padding after the two streams is ignored.
func (t *TupleVariation) Deltas(numPoints int) ([]GlyphDelta, error) {
	if !t.glyphData {
		return nil, errInvalidVariations
	}
	raw, err := decodeDeltas(t.deltas.Cursor(0))
	if err != nil {
		return nil, err
	}

	// The y stream starts after exactly n x deltas.  Splitting at the
	// midpoint of the decoded values would go wrong if the region ends
	// in padding which decodes as extra deltas.
	n := numPoints
	if t.points != nil {
		n = len(t.points)
	}
	if len(raw)/2 < n {
		n = len(raw) / 2
	}

	res := make([]GlyphDelta, n)
	for i := range res {
		pos := uint16(i)
		if t.points != nil {
			pos = t.points[i]
		}
		res[i] = GlyphDelta{
			Position: pos,
			X:        raw[i],
			Y:        raw[n+i],
		}
	}
	return res, nil
}

// ValueDeltas decodes the deltas of a cvar-style tuple, which form a
// single stream.
func (t *TupleVariation) ValueDeltas(numValues int) ([]ValueDelta, error) {
	if t.glyphData {
		return nil, errInvalidVariations
	}
	raw, err := decodeDeltas(t.deltas.Cursor(0))
	if err != nil {
		return nil, err
	}

	n := len(raw)
	if t.points != nil {
		if len(t.points) < n {
			n = len(t.points)
		}
	} else if numValues < n {
		n = numValues
	}

	res := make([]ValueDelta, n)
	for i := range res {
		pos := uint16(i)
		if t.points != nil {
			pos = t.points[i]
		}
		res[i] = ValueDelta{Position: pos, Delta: raw[i]}
	}
	return res, nil
}
