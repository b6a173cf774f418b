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

// Package fixed implements the fixed-point number types used in
// OpenType font files.
//
// https://learn.microsoft.com/en-us/typography/opentype/spec/otff#data-types
package fixed

import "math"

// Fixed is a 32-bit signed fixed-point number with 16 fractional bits.
type Fixed int32

// Useful constants.
const (
	Zero Fixed = 0
	One  Fixed = 1 << 16
)

// FromInt converts an integer to a Fixed value.
func FromInt(x int) Fixed {
	return Fixed(x) << 16
}

// FromFloat64 converts a float64 to the nearest Fixed value.
func FromFloat64(x float64) Fixed {
	return Fixed(math.Round(x * 65536))
}

// Float64 converts x to a float64.
func (x Fixed) Float64() float64 {
	return float64(x) / 65536
}

// Round converts x to the nearest integer.
func (x Fixed) Round() int {
	return int((x + 0x8000) >> 16)
}

// Mul returns the product of x and y, rounded to the nearest
// representable value.  This matches the behaviour of FreeType's
// FT_MulFix function.
func (x Fixed) Mul(y Fixed) Fixed {
	return Fixed((int64(x)*int64(y) + 0x8000) >> 16)
}

// Div returns x/y, rounded to the nearest representable value.
func (x Fixed) Div(y Fixed) Fixed {
	num := int64(x) << 16
	den := int64(y)
	return Fixed(roundedDiv(num, den))
}

// MulDiv returns x*a/b, computed with 64-bit intermediate precision
// and rounded to the nearest representable value.
func (x Fixed) MulDiv(a, b Fixed) Fixed {
	num := int64(x) * int64(a)
	den := int64(b)
	return Fixed(roundedDiv(num, den))
}

func roundedDiv(num, den int64) int64 {
	if den < 0 {
		num = -num
		den = -den
	}
	if num >= 0 {
		return (num + den/2) / den
	}
	return -((-num + den/2) / den)
}

// F2Dot14 is a 16-bit signed fixed-point number with 14 fractional
// bits.  It is used for normalized design-space coordinates, which lie
// in the range [-1, 1].
type F2Dot14 int16

// F2Dot14FromFloat64 converts a float64 to the nearest F2Dot14 value.
// The result is clamped to the representable range.
func F2Dot14FromFloat64(x float64) F2Dot14 {
	v := math.Round(x * 16384)
	if v > 32767 {
		v = 32767
	} else if v < -32768 {
		v = -32768
	}
	return F2Dot14(v)
}

// Fixed converts x to the equivalent Fixed value.  The conversion is
// exact.
func (x F2Dot14) Fixed() Fixed {
	return Fixed(x) << 2
}

// Float64 converts x to a float64.
func (x F2Dot14) Float64() float64 {
	return float64(x) / 16384
}
