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

// Package parser provides bounds-checked, zero-copy access to binary
// font data.  All multi-byte values are big-endian, as required by the
// OpenType file format.
//
// https://learn.microsoft.com/en-us/typography/opentype/spec/otff
package parser

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds indicates an attempt to read past the end of the
// font data.
var ErrOutOfBounds = errors.New("read past end of font data")

// InvalidFontError indicates a structural problem in a font file.
type InvalidFontError struct {
	SubSystem string
	Reason    string
}

func (err *InvalidFontError) Error() string {
	return fmt.Sprintf("%s: invalid font: %s", err.SubSystem, err.Reason)
}

// Tag is a four-byte table or feature identifier.
type Tag [4]byte

func (t Tag) String() string {
	return string(t[:])
}

// FontData is a read-only view of binary font data.  The underlying
// byte slice is shared, not copied, and must not be modified while the
// view is in use.
type FontData struct {
	data []byte
}

// New creates a FontData view of the given bytes.
func New(data []byte) FontData {
	return FontData{data: data}
}

// Len returns the number of bytes in the view.
func (d FontData) Len() int {
	return len(d.data)
}

// Bytes returns the underlying byte slice.
func (d FontData) Bytes() []byte {
	return d.data
}

// Slice returns the sub-view for the byte range [lo, hi).  The second
// return value is false if the range does not lie within the data.
func (d FontData) Slice(lo, hi int) (FontData, bool) {
	if lo < 0 || hi < lo || hi > len(d.data) {
		return FontData{}, false
	}
	return FontData{data: d.data[lo:hi]}, true
}

// Uint8 reads the byte at position pos.
func (d FontData) Uint8(pos int) (uint8, error) {
	if pos < 0 || pos >= len(d.data) {
		return 0, ErrOutOfBounds
	}
	return d.data[pos], nil
}

// Int8 reads the signed byte at position pos.
func (d FontData) Int8(pos int) (int8, error) {
	x, err := d.Uint8(pos)
	return int8(x), err
}

// Uint16 reads the big-endian uint16 at position pos.
func (d FontData) Uint16(pos int) (uint16, error) {
	if pos < 0 || pos+2 > len(d.data) {
		return 0, ErrOutOfBounds
	}
	return uint16(d.data[pos])<<8 | uint16(d.data[pos+1]), nil
}

// Int16 reads the big-endian int16 at position pos.
func (d FontData) Int16(pos int) (int16, error) {
	x, err := d.Uint16(pos)
	return int16(x), err
}

// Uint24 reads the big-endian 24-bit value at position pos, zero
// extended to a uint32.
func (d FontData) Uint24(pos int) (uint32, error) {
	if pos < 0 || pos+3 > len(d.data) {
		return 0, ErrOutOfBounds
	}
	return uint32(d.data[pos])<<16 | uint32(d.data[pos+1])<<8 | uint32(d.data[pos+2]), nil
}

// Uint32 reads the big-endian uint32 at position pos.
func (d FontData) Uint32(pos int) (uint32, error) {
	if pos < 0 || pos+4 > len(d.data) {
		return 0, ErrOutOfBounds
	}
	return uint32(d.data[pos])<<24 | uint32(d.data[pos+1])<<16 |
		uint32(d.data[pos+2])<<8 | uint32(d.data[pos+3]), nil
}

// Tag reads the four-byte tag at position pos.
func (d FontData) Tag(pos int) (Tag, error) {
	if pos < 0 || pos+4 > len(d.data) {
		return Tag{}, ErrOutOfBounds
	}
	return Tag{d.data[pos], d.data[pos+1], d.data[pos+2], d.data[pos+3]}, nil
}

// ResolveOffset computes the position base+offset refers to.  An
// offset value of 0 is the null sentinel for optional sub-tables; in
// this case ok is false and pos is unspecified.  Positions outside the
// data are reported as ErrOutOfBounds.
func (d FontData) ResolveOffset(base int, offset uint32) (pos int, ok bool, err error) {
	if offset == 0 {
		return 0, false, nil
	}
	pos = base + int(offset)
	if pos < 0 || pos > len(d.data) {
		return 0, false, ErrOutOfBounds
	}
	return pos, true, nil
}
