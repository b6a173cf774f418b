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
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/font/gofont/goregular"

	"seehuhn.de/go/otpack/parser"
)

// fontTables reads the sfnt table directory of a font file and returns
// the raw table data by tag.
func fontTables(t testing.TB, ttf []byte) map[string][]byte {
	t.Helper()

	d := parser.New(ttf)
	c := d.Cursor(0)

	if _, err := c.Uint32(); err != nil { // sfnt version
		t.Fatal(err)
	}
	numTables, err := c.Uint16()
	if err != nil {
		t.Fatal(err)
	}
	err = c.Skip(6) // searchRange, entrySelector, rangeShift
	if err != nil {
		t.Fatal(err)
	}

	tables := make(map[string][]byte)
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
		if int(offset)+int(length) > len(ttf) {
			t.Fatalf("table %q extends past end of file", tag)
		}
		tables[tag.String()] = ttf[offset : offset+length]
	}
	return tables
}

// goregularGlyphs extracts the "glyf" and "loca" tables of the Go
// Regular font, together with the indexToLocFormat value from the
// "head" table.
func goregularGlyphs(t testing.TB) *Encoded {
	t.Helper()

	tables := fontTables(t, goregular.TTF)
	head := tables["head"]
	if len(head) < 52 {
		t.Fatal("head table too short")
	}
	locaFormat := int16(head[50])<<8 | int16(head[51])

	return &Encoded{
		GlyfData:   tables["glyf"],
		LocaData:   tables["loca"],
		LocaFormat: locaFormat,
	}
}

func TestDecodeRealFont(t *testing.T) {
	enc := goregularGlyphs(t)
	gg, err := Decode(enc)
	if err != nil {
		t.Fatal(err)
	}
	if len(gg) == 0 {
		t.Fatal("no glyphs")
	}

	numSimple := 0
	numComposite := 0
	for _, g := range gg {
		if g == nil {
			continue
		}
		switch d := g.Data.(type) {
		case SimpleGlyph:
			if _, err := d.Unpack(); err != nil {
				t.Fatal(err)
			}
			numSimple++
		case CompositeGlyph:
			for _, cid := range g.Components() {
				if int(cid) >= len(gg) {
					t.Errorf("component glyph %d out of range", cid)
				}
			}
			numComposite++
		default:
			t.Fatalf("unexpected glyph type %T", g.Data)
		}
	}
	if numSimple == 0 || numComposite == 0 {
		t.Errorf("got %d simple and %d composite glyphs",
			numSimple, numComposite)
	}
}

func TestRoundTripRealFont(t *testing.T) {
	enc := goregularGlyphs(t)
	g1, err := Decode(enc)
	if err != nil {
		t.Fatal(err)
	}

	enc2 := g1.Encode()
	g2, err := Decode(enc2)
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(g1, g2); diff != "" {
		t.Errorf("glyphs changed in round trip (-first +second):\n%s", diff)
	}
}

func TestLocaFormat(t *testing.T) {
	cases := []struct {
		name   string
		offs   []int
		format int16
	}{
		{"short", []int{0, 100, 130, 200}, 0},
		{"short at limit", []int{0, 2 * 0xFFFF}, 0},
		{"long, odd offset", []int{0, 101, 200}, 1},
		{"long, past limit", []int{0, 2*0xFFFF + 2}, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			data, format := encodeLoca(c.offs)
			if format != c.format {
				t.Fatalf("got format %d, want %d", format, c.format)
			}

			enc := &Encoded{LocaData: data, LocaFormat: format}
			offs, err := decodeLoca(enc)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(c.offs, offs); diff != "" {
				t.Errorf("offsets changed in round trip:\n%s", diff)
			}
		})
	}
}

func TestLocaInvalid(t *testing.T) {
	cases := []*Encoded{
		{LocaData: []byte{0}, LocaFormat: 0},
		{LocaData: []byte{}, LocaFormat: 0},
		{LocaData: []byte{0, 0, 0}, LocaFormat: 1},
		{LocaData: []byte{0, 0, 0, 0}, LocaFormat: 2},
	}
	for i, enc := range cases {
		if _, err := decodeLoca(enc); err == nil {
			t.Errorf("case %d: expected error", i)
		}
	}
}

func FuzzGlyf(f *testing.F) {
	enc := goregularGlyphs(f)
	f.Add(enc.GlyfData, enc.LocaData, enc.LocaFormat)
	f.Add([]byte{}, []byte{0, 0}, int16(0))
	f.Add([]byte{}, []byte{0, 0, 0, 0, 0, 0, 0, 0}, int16(1))

	f.Fuzz(func(t *testing.T, glyfData, locaData []byte, locaFormat int16) {
		enc1 := &Encoded{
			GlyfData:   glyfData,
			LocaData:   locaData,
			LocaFormat: locaFormat,
		}
		g1, err := Decode(enc1)
		if err != nil {
			return
		}

		enc2 := g1.Encode()
		g2, err := Decode(enc2)
		if err != nil {
			t.Fatal(err)
		}

		if diff := cmp.Diff(g1, g2); diff != "" {
			t.Errorf("glyphs changed in round trip:\n%s", diff)
		}
	})
}
