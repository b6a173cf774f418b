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

import "seehuhn.de/go/otpack/parser"

var errInvalidLoca = &parser.InvalidFontError{
	SubSystem: "otpack/glyf",
	Reason:    "invalid loca table",
}

// decodeLoca reads the glyph offsets from the "loca" table.  The
// result has one entry more than the number of glyphs.
func decodeLoca(enc *Encoded) ([]int, error) {
	buf := enc.LocaData
	switch enc.LocaFormat {
	case 0: // short offsets
		if len(buf)%2 != 0 || len(buf) < 2 {
			return nil, errInvalidLoca
		}
		offs := make([]int, len(buf)/2)
		for i := range offs {
			offs[i] = (int(buf[2*i])<<8 | int(buf[2*i+1])) * 2
		}
		return offs, nil
	case 1: // long offsets
		if len(buf)%4 != 0 || len(buf) < 4 {
			return nil, errInvalidLoca
		}
		offs := make([]int, len(buf)/4)
		for i := range offs {
			offs[i] = int(buf[4*i])<<24 | int(buf[4*i+1])<<16 |
				int(buf[4*i+2])<<8 | int(buf[4*i+3])
		}
		return offs, nil
	default:
		return nil, errInvalidLoca
	}
}

// encodeLoca writes the glyph offsets in the short format where
// possible, and in the long format otherwise.  Offsets are always
// even, since glyph data is padded to a two-byte boundary.
func encodeLoca(offs []int) (data []byte, format int16) {
	short := offs[len(offs)-1] <= 2*0xFFFF
	for _, off := range offs {
		if off%2 != 0 {
			short = false
			break
		}
	}

	if short {
		data = make([]byte, 0, 2*len(offs))
		for _, off := range offs {
			off /= 2
			data = append(data, byte(off>>8), byte(off))
		}
		return data, 0
	}

	data = make([]byte, 0, 4*len(offs))
	for _, off := range offs {
		data = append(data,
			byte(off>>24), byte(off>>16), byte(off>>8), byte(off))
	}
	return data, 1
}
