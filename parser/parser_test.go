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

import (
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func TestReads(t *testing.T) {
	d := New([]byte{0x12, 0x34, 0x56, 0x78, 0x9A})

	if x, err := d.Uint8(0); err != nil || x != 0x12 {
		t.Errorf("Uint8: got %d, %v", x, err)
	}
	if x, err := d.Uint16(1); err != nil || x != 0x3456 {
		t.Errorf("Uint16: got %d, %v", x, err)
	}
	if x, err := d.Uint24(2); err != nil || x != 0x56789A {
		t.Errorf("Uint24: got %d, %v", x, err)
	}
	if x, err := d.Uint32(0); err != nil || x != 0x12345678 {
		t.Errorf("Uint32: got %d, %v", x, err)
	}
	if x, err := d.Int16(0); err != nil || x != 0x1234 {
		t.Errorf("Int16: got %d, %v", x, err)
	}
	if x, err := d.Int8(4); err != nil || x != -0x66 {
		t.Errorf("Int8: got %d, %v", x, err)
	}
}

func TestBounds(t *testing.T) {
	d := New([]byte{1, 2, 3})

	if _, err := d.Uint32(0); err != ErrOutOfBounds {
		t.Errorf("Uint32 near end: got %v", err)
	}
	if _, err := d.Uint16(2); err != ErrOutOfBounds {
		t.Errorf("Uint16 near end: got %v", err)
	}
	if _, err := d.Uint8(-1); err != ErrOutOfBounds {
		t.Errorf("Uint8(-1): got %v", err)
	}
	if _, ok := d.Slice(1, 4); ok {
		t.Error("Slice past end succeeded")
	}
	if sub, ok := d.Slice(1, 3); !ok || sub.Len() != 2 {
		t.Errorf("Slice(1, 3): got len %d, ok %t", sub.Len(), ok)
	}
}

func TestResolveOffset(t *testing.T) {
	d := New(make([]byte, 100))

	if _, ok, err := d.ResolveOffset(10, 0); ok || err != nil {
		t.Errorf("null offset: got ok=%t, err=%v", ok, err)
	}
	if pos, ok, err := d.ResolveOffset(10, 20); !ok || err != nil || pos != 30 {
		t.Errorf("offset 20: got pos=%d, ok=%t, err=%v", pos, ok, err)
	}
	if _, _, err := d.ResolveOffset(10, 91); err != ErrOutOfBounds {
		t.Errorf("offset past end: got %v", err)
	}
}

func TestCursor(t *testing.T) {
	d := New([]byte{0x00, 0x01, 0x00, 0x00, 'c', 'm', 'a', 'p', 0x42})
	c := d.Cursor(0)

	if x, err := c.Uint32(); err != nil || x != 0x00010000 {
		t.Fatalf("Uint32: got %d, %v", x, err)
	}
	tag, err := c.Tag()
	if err != nil || tag.String() != "cmap" {
		t.Fatalf("Tag: got %q, %v", tag, err)
	}
	if c.Pos() != 8 {
		t.Errorf("Pos: got %d, want 8", c.Pos())
	}
	if x, err := c.Uint8(); err != nil || x != 0x42 {
		t.Errorf("Uint8: got %d, %v", x, err)
	}
	if _, err := c.Uint8(); err != ErrOutOfBounds {
		t.Errorf("read past end: got %v", err)
	}
}

// TestRealFont walks the table directory of a real font file.
func TestRealFont(t *testing.T) {
	d := New(goregular.TTF)
	c := d.Cursor(0)

	version, err := c.Uint32()
	if err != nil {
		t.Fatal(err)
	}
	if version != 0x00010000 {
		t.Fatalf("sfnt version: got %08x", version)
	}
	numTables, err := c.Uint16()
	if err != nil {
		t.Fatal(err)
	}
	if numTables == 0 {
		t.Fatal("no tables")
	}
	err = c.Skip(6) // searchRange, entrySelector, rangeShift
	if err != nil {
		t.Fatal(err)
	}

	seen := make(map[string]bool)
	for i := 0; i < int(numTables); i++ {
		tag, err := c.Tag()
		if err != nil {
			t.Fatal(err)
		}
		err = c.Skip(4) // checksum
		if err != nil {
			t.Fatal(err)
		}
		offset, err := c.Uint32()
		if err != nil {
			t.Fatal(err)
		}
		length, err := c.Uint32()
		if err != nil {
			t.Fatal(err)
		}
		if _, ok := d.Slice(int(offset), int(offset)+int(length)); !ok {
			t.Errorf("table %q extends past end of file", tag)
		}
		seen[tag.String()] = true
	}

	for _, tag := range []string{"cmap", "glyf", "head", "loca"} {
		if !seen[tag] {
			t.Errorf("table %q missing", tag)
		}
	}
}
