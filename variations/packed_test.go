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
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/otpack/parser"
)

func TestDecodePointNumbers(t *testing.T) {
	cases := []struct {
		data []byte
		want []uint16 // nil means "all points"
	}{
		{[]byte{0}, nil},
		{[]byte{0x80, 0}, nil},
		{[]byte{0x02, 0x01, 0x09, 0x06}, []uint16{9, 15}},
		{[]byte{0x02, 0x81, 0xBE, 0xEF, 0x0C, 0x0F}, []uint16{0xBEEF, 0xCAFE}},
		{[]byte{0x01, 0, 0x07}, []uint16{7}},
		{[]byte{0x01, 0x80, 0, 0x07}, []uint16{7}},
		{[]byte{0x01, 0x80, 0xFF, 0xFF}, []uint16{65535}},
		{[]byte{0x04, 1, 7, 1, 1, 0xFF, 2}, []uint16{7, 8, 263, 265}},
	}
	for i, test := range cases {
		c := parser.New(test.data).Cursor(0)
		got, err := decodePointNumbers(c)
		if err != nil {
			t.Errorf("case %d: %v", i, err)
			continue
		}
		if d := cmp.Diff(test.want, got); d != "" {
			t.Errorf("case %d (-want +got):\n%s", i, d)
		}
	}
}

func TestDecodeDeltas(t *testing.T) {
	cases := []struct {
		data []byte
		want []int16
	}{
		{[]byte{0x83, 0x40, 0x01, 0x02, 0x01, 0x81, 0x80},
			[]int16{0, 0, 0, 0, 258, -127, -128}},
		{[]byte{0x81}, []int16{0, 0}},
		// the worked example from the OpenType spec
		{[]byte{0x03, 0x0A, 0x97, 0x00, 0xC6, 0x87, 0x41, 0x10, 0x22, 0xFB, 0x34},
			[]int16{10, -105, 0, -58, 0, 0, 0, 0, 0, 0, 0, 0, 4130, -1228}},
	}
	for i, test := range cases {
		c := parser.New(test.data).Cursor(0)
		got, err := decodeDeltas(c)
		if err != nil {
			t.Errorf("case %d: %v", i, err)
			continue
		}
		if d := cmp.Diff(test.want, got); d != "" {
			t.Errorf("case %d (-want +got):\n%s", i, d)
		}
	}
}

func TestEncodePackedPoints(t *testing.T) {
	cases := [][]uint16{
		nil,
		{0},
		{7},
		{9, 15},
		{0xBEEF, 0xCAFE},
		{7, 8, 263, 265},
		manyPoints(300),
	}
	for i, points := range cases {
		buf := EncodePackedPoints(nil, points)
		c := parser.New(buf).Cursor(0)
		got, err := decodePointNumbers(c)
		if err != nil {
			t.Errorf("case %d: %v", i, err)
			continue
		}
		want := points
		if len(want) == 0 {
			want = nil
		}
		if d := cmp.Diff(want, got); d != "" {
			t.Errorf("case %d (-want +got):\n%s", i, d)
		}
		if c.Len() != 0 {
			t.Errorf("case %d: %d trailing bytes", i, c.Len())
		}
	}

	// small sets use byte-sized runs
	got := EncodePackedPoints(nil, []uint16{9, 15})
	want := []byte{0x02, 0x01, 0x09, 0x06}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("unexpected encoding (-want +got):\n%s", d)
	}
}

func manyPoints(n int) []uint16 {
	res := make([]uint16, n)
	for i := range res {
		res[i] = uint16(3 * i)
	}
	return res
}

func TestEncodePackedPointsLimit(t *testing.T) {
	points := make([]uint16, 0x7FFF)
	for i := range points {
		points[i] = uint16(i)
	}

	// the largest representable count uses the word form
	buf := EncodePackedPoints(nil, points)
	if buf[0] != 0xFF || buf[1] != 0xFF {
		t.Errorf("count encoded as % x", buf[:2])
	}

	defer func() {
		if recover() == nil {
			t.Error("no panic for 32768 point numbers")
		}
	}()
	EncodePackedPoints(nil, make([]uint16, 0x8000))
}

func TestEncodePackedDeltas(t *testing.T) {
	cases := [][]int16{
		nil,
		{0, 0},
		{0, 0, 0, 0, 258, -127, -128},
		{10, -105, 0, -58, 0, 0, 0, 0, 0, 0, 0, 0, 4130, -1228},
		{1000, -1000, 1, -1, 0, 127, -128, 128, -129},
	}
	for i, deltas := range cases {
		buf := EncodePackedDeltas(nil, deltas)
		c := parser.New(buf).Cursor(0)
		got, err := decodeDeltas(c)
		if err != nil {
			t.Errorf("case %d: %v", i, err)
			continue
		}
		var want []int16
		want = append(want, deltas...)
		if d := cmp.Diff(want, got); d != "" {
			t.Errorf("case %d (-want +got):\n%s", i, d)
		}
	}

	// four zeros collapse into a single zero-run control byte
	got := EncodePackedDeltas(nil, []int16{0, 0, 0, 0})
	want := []byte{0x83}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("unexpected encoding (-want +got):\n%s", d)
	}
}

func TestLongRuns(t *testing.T) {
	// runs are limited to 64 deltas; longer sequences split
	deltas := make([]int16, 150)
	buf := EncodePackedDeltas(nil, deltas)
	want := []byte{0xBF, 0xBF, 0x95}
	if d := cmp.Diff(want, buf); d != "" {
		t.Errorf("unexpected encoding (-want +got):\n%s", d)
	}
}
