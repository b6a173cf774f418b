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

import (
	"seehuhn.de/go/postscript/funit"

	"seehuhn.de/go/otpack/fixed"
	"seehuhn.de/go/otpack/variations"
)

// A PointDelta is a variation adjustment in 16.16 fixed point.
type PointDelta struct {
	X, Y fixed.Fixed
}

// ApplyDeltas moves the points of a simple glyph according to the
// glyph's tuple variation data, evaluated at the given design-space
// location.  Sparse tuples have their missing deltas inferred by
// interpolation, per contour.  The input is not modified.
func ApplyDeltas(sd *SimpleUnpacked, data *variations.TupleVariationData, coords []fixed.F2Dot14) (*SimpleUnpacked, error) {
	// flatten the contours into a single point list
	var points []Point
	var ends []int
	for _, contour := range sd.Contours {
		points = append(points, contour...)
		ends = append(ends, len(points)-1)
	}
	n := len(points)

	acc := make([]PointDelta, n)
	var working []fixedPoint
	var hasDelta []bool

	for _, tuple := range data.ActiveTuplesAt(coords) {
		deltas, err := tuple.Deltas(n)
		if err != nil {
			return nil, err
		}

		if tuple.HasDeltasForAllPoints() {
			// fast path: accumulate the scaled deltas directly
			for _, d := range deltas {
				if int(d.Position) >= n {
					continue
				}
				acc[d.Position].X += fixed.FromInt(int(d.X)).Mul(tuple.Weight)
				acc[d.Position].Y += fixed.FromInt(int(d.Y)).Mul(tuple.Weight)
			}
			continue
		}

		// slow path: scatter the deltas, then infer the missing ones
		if working == nil {
			working = make([]fixedPoint, n)
			hasDelta = make([]bool, n)
		}
		for i, p := range points {
			working[i] = pointToFixed(p)
			hasDelta[i] = false
		}
		for _, d := range deltas {
			if int(d.Position) >= n {
				continue
			}
			working[d.Position].X += fixed.FromInt(int(d.X)).Mul(tuple.Weight)
			working[d.Position].Y += fixed.FromInt(int(d.Y)).Mul(tuple.Weight)
			hasDelta[d.Position] = true
		}
		interpolateDeltas(points, ends, hasDelta, working)
		for i, p := range points {
			orig := pointToFixed(p)
			acc[i].X += working[i].X - orig.X
			acc[i].Y += working[i].Y - orig.Y
		}
	}

	res := &SimpleUnpacked{
		Contours:     make([]Contour, len(sd.Contours)),
		Instructions: sd.Instructions,
	}
	pos := 0
	for i, contour := range sd.Contours {
		moved := make(Contour, len(contour))
		for j, p := range contour {
			moved[j] = Point{
				X:       funit.Int16((fixed.FromInt(int(p.X)) + acc[pos].X).Round()),
				Y:       funit.Int16((fixed.FromInt(int(p.Y)) + acc[pos].Y).Round()),
				OnCurve: p.OnCurve,
			}
			pos++
		}
		res.Contours[i] = moved
	}
	return res, nil
}

// ComponentDeltas computes the adjustment of each component offset of
// a composite glyph at the given design-space location.  Interpolation
// is meaningless for component offsets, so sparse tuples accumulate
// directly.
func ComponentDeltas(data *variations.TupleVariationData, numComponents int, coords []fixed.F2Dot14) ([]PointDelta, error) {
	res := make([]PointDelta, numComponents)
	for _, tuple := range data.ActiveTuplesAt(coords) {
		deltas, err := tuple.Deltas(numComponents)
		if err != nil {
			return nil, err
		}
		for _, d := range deltas {
			if int(d.Position) >= numComponents {
				continue
			}
			res[d.Position].X += fixed.FromInt(int(d.X)).Mul(tuple.Weight)
			res[d.Position].Y += fixed.FromInt(int(d.Y)).Mul(tuple.Weight)
		}
	}
	return res, nil
}

// ApplyComponentDeltas returns a copy of a composite glyph with the
// component offsets moved according to the glyph's tuple variation
// data.  Components positioned by point matching are left unchanged.
func ApplyComponentDeltas(cg CompositeGlyph, data *variations.TupleVariationData, coords []fixed.F2Dot14) (CompositeGlyph, error) {
	deltas, err := ComponentDeltas(data, len(cg.Components), coords)
	if err != nil {
		return CompositeGlyph{}, err
	}

	res := CompositeGlyph{
		Components:   make([]GlyphComponent, len(cg.Components)),
		Instructions: cg.Instructions,
	}
	for i, comp := range cg.Components {
		if deltas[i].X == 0 && deltas[i].Y == 0 {
			res.Components[i] = comp
			continue
		}
		cu, err := comp.Unpack()
		if err != nil {
			return CompositeGlyph{}, err
		}
		if cu.AlignPoints {
			res.Components[i] = comp
			continue
		}
		cu.Trfm[4] += deltas[i].X.Float64()
		cu.Trfm[5] += deltas[i].Y.Float64()
		res.Components[i] = cu.Pack()
	}
	return res, nil
}
