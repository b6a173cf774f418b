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

package fixed

import "testing"

func TestMul(t *testing.T) {
	cases := []struct {
		x, y, want Fixed
	}{
		{One, One, One},
		{One / 2, One / 2, One / 4},
		{-One, One, -One},
		{FromInt(3), FromInt(7), FromInt(21)},
		{One / 2, 1, 1}, // 0.5 * 2^-16 rounds up
	}
	for _, c := range cases {
		if got := c.x.Mul(c.y); got != c.want {
			t.Errorf("%d.Mul(%d) = %d, want %d", c.x, c.y, got, c.want)
		}
	}
}

func TestDiv(t *testing.T) {
	cases := []struct {
		x, y, want Fixed
	}{
		{One, FromInt(2), One / 2},
		{FromInt(-10), FromInt(60), -10923}, // rounds to nearest
		{FromInt(10), FromInt(60), 10923},
		{FromInt(21), FromInt(7), FromInt(3)},
	}
	for _, c := range cases {
		if got := c.x.Div(c.y); got != c.want {
			t.Errorf("%d.Div(%d) = %d, want %d", c.x, c.y, got, c.want)
		}
	}
}

func TestMulDiv(t *testing.T) {
	cases := []struct {
		x, a, b, want Fixed
	}{
		{One, One / 2, One, One / 2},
		{One / 2, One / 2, One, One / 4},
		{One, FromInt(1), FromInt(3), 21845},
		{-One, FromInt(1), FromInt(3), -21845},
		{One, FromInt(1), FromInt(-3), -21845},
	}
	for _, c := range cases {
		if got := c.x.MulDiv(c.a, c.b); got != c.want {
			t.Errorf("%d.MulDiv(%d, %d) = %d, want %d", c.x, c.a, c.b, got, c.want)
		}
	}
}

func TestRound(t *testing.T) {
	cases := []struct {
		x    Fixed
		want int
	}{
		{Zero, 0},
		{One, 1},
		{One / 2, 1},
		{One/2 - 1, 0},
		{-One / 4, 0},
		{FromFloat64(-2.75), -3},
	}
	for _, c := range cases {
		if got := c.x.Round(); got != c.want {
			t.Errorf("%d.Round() = %d, want %d", c.x, got, c.want)
		}
	}
}

func TestF2Dot14(t *testing.T) {
	cases := []struct {
		bits F2Dot14
		val  float64
	}{
		{0x4000, 1},
		{-0x4000, -1},
		{0x2000, 0.5},
		{0, 0},
	}
	for _, c := range cases {
		if got := F2Dot14FromFloat64(c.val); got != c.bits {
			t.Errorf("F2Dot14FromFloat64(%g) = %d, want %d", c.val, got, c.bits)
		}
		if got := c.bits.Float64(); got != c.val {
			t.Errorf("%d.Float64() = %g, want %g", c.bits, got, c.val)
		}
		if got := c.bits.Fixed(); got != FromFloat64(c.val) {
			t.Errorf("%d.Fixed() = %d, want %d", c.bits, got, FromFloat64(c.val))
		}
	}
}
