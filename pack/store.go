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

package pack

import (
	"bytes"

	"github.com/cespare/xxhash/v2"
)

// ObjectID identifies one serialized table within an ObjectStore.
// IDs are minted in increasing order, one per structurally distinct
// table.
type ObjectID uint32

// OffsetLen is the width class of an offset field, in bytes.
type OffsetLen uint8

// The offset widths allowed by the OpenType format.
const (
	Offset16 OffsetLen = 2
	Offset24 OffsetLen = 3
	Offset32 OffsetLen = 4
)

// Max returns the largest offset value representable in this width.
func (w OffsetLen) Max() uint32 {
	return 1<<(8*uint(w)) - 1
}

// An OffsetRecord describes one offset field within a serialized
// table: where the placeholder bytes are, how wide the field is, which
// object it refers to, and how far the offset base is shifted relative
// to the start of the table.
type OffsetRecord struct {
	Pos        uint32
	Width      OffsetLen
	Target     ObjectID
	Adjustment uint32
}

// TableData is the serialized form of a single table: its bytes, with
// zeroed placeholders where offsets will go, and the list of offset
// records describing those placeholders.
type TableData struct {
	Bytes   []byte
	Offsets []OffsetRecord
}

func (d *TableData) equal(other *TableData) bool {
	if !bytes.Equal(d.Bytes, other.Bytes) {
		return false
	}
	if len(d.Offsets) != len(other.Offsets) {
		return false
	}
	for i, rec := range d.Offsets {
		if rec != other.Offsets[i] {
			return false
		}
	}
	return true
}

func (d *TableData) hash() uint64 {
	h := xxhash.New()
	h.Write(d.Bytes)
	var buf [13]byte
	for _, rec := range d.Offsets {
		buf[0] = byte(rec.Pos >> 24)
		buf[1] = byte(rec.Pos >> 16)
		buf[2] = byte(rec.Pos >> 8)
		buf[3] = byte(rec.Pos)
		buf[4] = byte(rec.Width)
		buf[5] = byte(rec.Target >> 24)
		buf[6] = byte(rec.Target >> 16)
		buf[7] = byte(rec.Target >> 8)
		buf[8] = byte(rec.Target)
		buf[9] = byte(rec.Adjustment >> 24)
		buf[10] = byte(rec.Adjustment >> 16)
		buf[11] = byte(rec.Adjustment >> 8)
		buf[12] = byte(rec.Adjustment)
		h.Write(buf[:])
	}
	return h.Sum64()
}

// An ObjectStore collects the serialized tables of one font, merging
// structurally identical tables into a single object.  Two tables are
// identical if their bytes match and their offset records match,
// including the target IDs.  Since children are added before their
// parents, identical sub-trees collapse bottom-up.
type ObjectStore struct {
	objects []TableData
	byHash  map[uint64][]ObjectID
}

// NewObjectStore creates an empty object store.
func NewObjectStore() *ObjectStore {
	return &ObjectStore{
		byHash: make(map[uint64][]ObjectID),
	}
}

// Add inserts a serialized table into the store and returns its ID.
// If a structurally identical table is already present, the existing
// ID is returned and the new data is discarded.
func (s *ObjectStore) Add(data TableData) ObjectID {
	h := data.hash()
	for _, id := range s.byHash[h] {
		if s.objects[id].equal(&data) {
			return id
		}
	}
	id := ObjectID(len(s.objects))
	s.objects = append(s.objects, data)
	s.byHash[h] = append(s.byHash[h], id)
	return id
}

// Len returns the number of distinct objects in the store.
func (s *ObjectStore) Len() int {
	return len(s.objects)
}

// Get returns the table data for the given ID.
func (s *ObjectStore) Get(id ObjectID) *TableData {
	return &s.objects[id]
}
