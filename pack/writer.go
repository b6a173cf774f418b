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

// A Table can serialize itself into a Writer.  The WriteInto method
// appends the table's own bytes to the writer and registers sub-tables
// via WriteOffset.
type Table interface {
	WriteInto(w *Writer)
}

// A Validator reports structural problems which would make a table
// unserializable, for example an array longer than its count field can
// express.  Tables implementing this interface are checked during the
// write pass; any problem aborts serialization before packing begins.
type Validator interface {
	Validate() []error
}

type frame struct {
	data       TableData
	adjustment uint32
}

// A Writer converts a tree of tables into serialized objects.  Tables
// are written depth-first: each child is fully serialized and entered
// into the object store before the parent records the offset pointing
// at it.
type Writer struct {
	store    *ObjectStore
	stack    []frame
	problems []error
}

// NewWriter creates a Writer with an empty object store.
func NewWriter() *Writer {
	return &Writer{
		store: NewObjectStore(),
	}
}

// Store returns the object store the writer serializes into.
func (w *Writer) Store() *ObjectStore {
	return w.store
}

// Problems returns the validation errors collected so far.
func (w *Writer) Problems() []error {
	return w.problems
}

// WriteTable serializes a complete table tree and returns the ID of
// the root object.
func (w *Writer) WriteTable(t Table) ObjectID {
	if v, ok := t.(Validator); ok {
		w.problems = append(w.problems, v.Validate()...)
	}
	w.stack = append(w.stack, frame{})
	t.WriteInto(w)
	f := w.stack[len(w.stack)-1]
	w.stack = w.stack[:len(w.stack)-1]
	return w.store.Add(f.data)
}

func (w *Writer) top() *frame {
	return &w.stack[len(w.stack)-1]
}

// WriteSlice appends raw bytes to the current table.
func (w *Writer) WriteSlice(b []byte) {
	f := w.top()
	f.data.Bytes = append(f.data.Bytes, b...)
}

// WriteUint8 appends a byte to the current table.
func (w *Writer) WriteUint8(x uint8) {
	f := w.top()
	f.data.Bytes = append(f.data.Bytes, x)
}

// WriteUint16 appends a big-endian uint16 to the current table.
func (w *Writer) WriteUint16(x uint16) {
	f := w.top()
	f.data.Bytes = append(f.data.Bytes, byte(x>>8), byte(x))
}

// WriteUint24 appends a big-endian 24-bit value to the current table.
func (w *Writer) WriteUint24(x uint32) {
	f := w.top()
	f.data.Bytes = append(f.data.Bytes, byte(x>>16), byte(x>>8), byte(x))
}

// WriteUint32 appends a big-endian uint32 to the current table.
func (w *Writer) WriteUint32(x uint32) {
	f := w.top()
	f.data.Bytes = append(f.data.Bytes, byte(x>>24), byte(x>>16), byte(x>>8), byte(x))
}

// WriteInt8 appends a signed byte to the current table.
func (w *Writer) WriteInt8(x int8) {
	w.WriteUint8(uint8(x))
}

// WriteInt16 appends a big-endian int16 to the current table.
func (w *Writer) WriteInt16(x int16) {
	w.WriteUint16(uint16(x))
}

// WriteOffset serializes the child table and appends an offset field
// of the given width to the current table.  The offset value itself is
// filled in later, when the final table order is known.
func (w *Writer) WriteOffset(child Table, width OffsetLen) {
	id := w.WriteTable(child)
	f := w.top()
	f.data.Offsets = append(f.data.Offsets, OffsetRecord{
		Pos:        uint32(len(f.data.Bytes)),
		Width:      width,
		Target:     id,
		Adjustment: f.adjustment,
	})
	for i := OffsetLen(0); i < width; i++ {
		f.data.Bytes = append(f.data.Bytes, 0)
	}
}

// AdjustOffsets calls f with the offset base of the current table
// shifted by delta.  Offsets recorded inside f are resolved relative
// to table start plus delta instead of table start.  This is used for
// tables whose offsets are measured from an interior anchor, such as
// the minorVersion split in some layout tables.
func (w *Writer) AdjustOffsets(delta uint32, f func()) {
	fr := w.top()
	old := fr.adjustment
	fr.adjustment = old + delta
	f()
	w.top().adjustment = old
}

// PadToEven appends a zero byte if the current table has odd length.
// Some consumers require 16-bit alignment of sub-tables.
func (w *Writer) PadToEven() {
	f := w.top()
	if len(f.data.Bytes)%2 != 0 {
		f.data.Bytes = append(f.data.Bytes, 0)
	}
}
