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

package parser

// A Cursor reads successive values from a FontData view.  Each read
// advances the position by the size of the value read.
type Cursor struct {
	d   FontData
	pos int
}

// Cursor returns a new cursor over d, starting at position pos.
func (d FontData) Cursor(pos int) *Cursor {
	return &Cursor{d: d, pos: pos}
}

// Pos returns the current position of the cursor.
func (c *Cursor) Pos() int {
	return c.pos
}

// Len returns the number of bytes between the current position and
// the end of the data.
func (c *Cursor) Len() int {
	return c.d.Len() - c.pos
}

// Skip advances the cursor by n bytes.
func (c *Cursor) Skip(n int) error {
	if n < 0 || c.pos+n > c.d.Len() {
		return ErrOutOfBounds
	}
	c.pos += n
	return nil
}

// Bytes reads the next n bytes.  The returned slice shares storage
// with the underlying data.
func (c *Cursor) Bytes(n int) ([]byte, error) {
	if n < 0 || c.pos+n > c.d.Len() {
		return nil, ErrOutOfBounds
	}
	res := c.d.data[c.pos : c.pos+n]
	c.pos += n
	return res, nil
}

// Uint8 reads the next byte.
func (c *Cursor) Uint8() (uint8, error) {
	x, err := c.d.Uint8(c.pos)
	if err == nil {
		c.pos++
	}
	return x, err
}

// Int8 reads the next signed byte.
func (c *Cursor) Int8() (int8, error) {
	x, err := c.Uint8()
	return int8(x), err
}

// Uint16 reads the next big-endian uint16.
func (c *Cursor) Uint16() (uint16, error) {
	x, err := c.d.Uint16(c.pos)
	if err == nil {
		c.pos += 2
	}
	return x, err
}

// Int16 reads the next big-endian int16.
func (c *Cursor) Int16() (int16, error) {
	x, err := c.Uint16()
	return int16(x), err
}

// Uint24 reads the next big-endian 24-bit value.
func (c *Cursor) Uint24() (uint32, error) {
	x, err := c.d.Uint24(c.pos)
	if err == nil {
		c.pos += 3
	}
	return x, err
}

// Uint32 reads the next big-endian uint32.
func (c *Cursor) Uint32() (uint32, error) {
	x, err := c.d.Uint32(c.pos)
	if err == nil {
		c.pos += 4
	}
	return x, err
}

// Tag reads the next four-byte tag.
func (c *Cursor) Tag() (Tag, error) {
	x, err := c.d.Tag(c.pos)
	if err == nil {
		c.pos += 4
	}
	return x, err
}
