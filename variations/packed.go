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
	"seehuhn.de/go/otpack/parser"
)

// decodePointNumbers reads a packed point number set.  A nil result
// (with no error) means that deltas apply to all points of the glyph.
func decodePointNumbers(c *parser.Cursor) ([]uint16, error) {
	b0, err := c.Uint8()
	if err != nil {
		return nil, err
	}
	if b0 == 0 {
		return nil, nil
	}

	var count int
	if b0&0x80 != 0 {
		b1, err := c.Uint8()
		if err != nil {
			return nil, err
		}
		count = int(b0&0x7F)<<8 | int(b1)
		if count == 0 {
			// Strictly invalid, but a two-byte zero count can only
			// mean "all points".
			return nil, nil
		}
	} else {
		count = int(b0)
	}

	points := make([]uint16, 0, count)
	var last uint16
	for len(points) < count {
		control, err := c.Uint8()
		if err != nil {
			return nil, errInvalidVariations
		}
		runLength := int(control&0x7F) + 1
		words := control&0x80 != 0
		for i := 0; i < runLength && len(points) < count; i++ {
			var delta uint16
			if words {
				delta, err = c.Uint16()
			} else {
				var b uint8
				b, err = c.Uint8()
				delta = uint16(b)
			}
			if err != nil {
				return nil, errInvalidVariations
			}
			last += delta
			points = append(points, last)
		}
	}
	return points, nil
}

// EncodePackedPoints appends the packed form of a point number set to
// buf.  A nil or empty slice encodes "all points".  The point numbers
// must be sorted in increasing order.
//
// The count field reserves its high bit for the word form, so the
// format can hold at most 32767 point numbers; larger sets cause a
// panic.
func EncodePackedPoints(buf []byte, points []uint16) []byte {
	if len(points) == 0 {
		return append(buf, 0)
	}

	count := len(points)
	if count > 0x7FFF {
		panic("too many point numbers for packed encoding")
	}
	if count <= 0x7F {
		buf = append(buf, byte(count))
	} else {
		buf = append(buf, byte(count>>8)|0x80, byte(count))
	}

	deltas := make([]uint16, count)
	var last uint16
	for i, p := range points {
		deltas[i] = p - last
		last = p
	}

	for start := 0; start < count; {
		words := deltas[start] > 0xFF
		end := start + 1
		for end < count && end-start < 128 && (deltas[end] > 0xFF) == words {
			end++
		}
		control := byte(end - start - 1)
		if words {
			control |= 0x80
		}
		buf = append(buf, control)
		for _, d := range deltas[start:end] {
			if words {
				buf = append(buf, byte(d>>8), byte(d))
			} else {
				buf = append(buf, byte(d))
			}
		}
		start = end
	}
	return buf
}

// Control byte flags for packed deltas.
const (
	deltasAreZero     = 0x80
	deltasAreWords    = 0x40
	deltaRunCountMask = 0x3F
)

// decodeDeltas reads packed deltas until the cursor is exhausted.
func decodeDeltas(c *parser.Cursor) ([]int16, error) {
	var deltas []int16
	for c.Len() > 0 {
		control, err := c.Uint8()
		if err != nil {
			return nil, err
		}
		runLength := int(control&deltaRunCountMask) + 1
		switch {
		case control&deltasAreZero != 0:
			for i := 0; i < runLength; i++ {
				deltas = append(deltas, 0)
			}
		case control&deltasAreWords != 0:
			for i := 0; i < runLength; i++ {
				x, err := c.Int16()
				if err != nil {
					return nil, errInvalidVariations
				}
				deltas = append(deltas, x)
			}
		default:
			for i := 0; i < runLength; i++ {
				x, err := c.Int8()
				if err != nil {
					return nil, errInvalidVariations
				}
				deltas = append(deltas, int16(x))
			}
		}
	}
	return deltas, nil
}

// EncodePackedDeltas appends the packed form of a delta sequence to
// buf.
func EncodePackedDeltas(buf []byte, deltas []int16) []byte {
	isByte := func(x int16) bool { return x >= -128 && x <= 127 }

	for start := 0; start < len(deltas); {
		end := start + 1
		var control byte
		switch {
		case deltas[start] == 0:
			for end < len(deltas) && end-start < 64 && deltas[end] == 0 {
				end++
			}
			control = deltasAreZero | byte(end-start-1)
			buf = append(buf, control)
		case isByte(deltas[start]):
			for end < len(deltas) && end-start < 64 &&
				deltas[end] != 0 && isByte(deltas[end]) {
				end++
			}
			control = byte(end - start - 1)
			buf = append(buf, control)
			for _, d := range deltas[start:end] {
				buf = append(buf, byte(d))
			}
		default:
			for end < len(deltas) && end-start < 64 &&
				deltas[end] != 0 && !isByte(deltas[end]) {
				end++
			}
			control = deltasAreWords | byte(end-start-1)
			buf = append(buf, control)
			for _, d := range deltas[start:end] {
				buf = append(buf, byte(uint16(d)>>8), byte(d))
			}
		}
		start = end
	}
	return buf
}
