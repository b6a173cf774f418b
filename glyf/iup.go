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
	"seehuhn.de/go/otpack/fixed"
)

// A fixedPoint is a point coordinate in 16.16 fixed point, used as
// working precision while applying variation deltas.
type fixedPoint struct {
	X, Y fixed.Fixed
}

func pointToFixed(p Point) fixedPoint {
	return fixedPoint{
		X: fixed.FromInt(int(p.X)),
		Y: fixed.FromInt(int(p.Y)),
	}
}

// interpolateDeltas infers deltas for points a sparse variation tuple
// does not reference, per contour, like the IUP hinting instruction.
// The points slice holds the unmodified outline, ends the inclusive
// end index of each contour.  On entry, out holds the original
// coordinates with the scattered deltas added at the points where
// hasDelta is set; on return the remaining points are filled in.
//
// https://learn.microsoft.com/en-us/typography/opentype/spec/gvar#inferred-deltas-for-un-referenced-point-numbers
func interpolateDeltas(points []Point, ends []int, hasDelta []bool, out []fixedPoint) {
	pointIx := 0
	for _, endIx := range ends {
		firstIx := pointIx

		// search for the first point with a delta
		for pointIx <= endIx && !hasDelta[pointIx] {
			pointIx++
		}
		if pointIx > endIx {
			// no deltas in this contour, leave it untouched
			continue
		}

		firstDelta := pointIx
		cur := pointIx
		pointIx++
		for pointIx <= endIx {
			if hasDelta[pointIx] {
				// interpolate the points between two anchors
				interpolateRange(points, out, cur+1, pointIx-1, cur, pointIx)
				cur = pointIx
			}
			pointIx++
		}

		if cur == firstDelta {
			// a single anchor shifts the whole contour
			shiftRange(points, out, firstIx, endIx, cur)
		} else {
			// the run between the last and the first anchor wraps
			// around the end of the contour
			interpolateRange(points, out, cur+1, endIx, cur, firstDelta)
			if firstDelta > 0 {
				interpolateRange(points, out, firstIx, firstDelta-1, cur, firstDelta)
			}
		}
	}
}

// shiftRange moves every point of [lo, hi] by the delta of the
// reference point.
func shiftRange(points []Point, out []fixedPoint, lo, hi, ref int) {
	in := pointToFixed(points[ref])
	dx := out[ref].X - in.X
	dy := out[ref].Y - in.Y
	if dx == 0 && dy == 0 {
		return
	}
	for i := lo; i <= hi; i++ {
		if i == ref {
			continue
		}
		out[i].X += dx
		out[i].Y += dy
	}
}

// interpolateRange fills in the points of [lo, hi] between the two
// reference points, independently per axis.
func interpolateRange(points []Point, out []fixedPoint, lo, hi, ref1, ref2 int) {
	if lo > hi {
		return
	}
	interpolateAxis(points, out, lo, hi, ref1, ref2,
		func(p Point) fixed.Fixed { return fixed.FromInt(int(p.X)) },
		func(fp *fixedPoint) *fixed.Fixed { return &fp.X })
	interpolateAxis(points, out, lo, hi, ref1, ref2,
		func(p Point) fixed.Fixed { return fixed.FromInt(int(p.Y)) },
		func(fp *fixedPoint) *fixed.Fixed { return &fp.Y })
}

func interpolateAxis(points []Point, out []fixedPoint, lo, hi, ref1, ref2 int,
	in func(Point) fixed.Fixed, coord func(*fixedPoint) *fixed.Fixed) {

	if in(points[ref1]) > in(points[ref2]) {
		ref1, ref2 = ref2, ref1
	}
	in1 := in(points[ref1])
	in2 := in(points[ref2])
	out1 := *coord(&out[ref1])
	out2 := *coord(&out[ref2])

	// If the reference points share a coordinate but have different
	// deltas, the inferred delta is zero.
	if in1 == in2 && out1 != out2 {
		return
	}

	var scale fixed.Fixed
	if in1 != in2 {
		scale = (out2 - out1).Div(in2 - in1)
	}
	d1 := out1 - in1
	d2 := out2 - in2
	for i := lo; i <= hi; i++ {
		v := in(points[i])
		switch {
		case v <= in1:
			v += d1
		case v >= in2:
			v += d2
		default:
			v = out1 + (v - in1).Mul(scale)
		}
		*coord(&out[i]) = v
	}
}
