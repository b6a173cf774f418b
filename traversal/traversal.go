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

// Package traversal provides a uniform way to enumerate the fields of
// font table structures, for use by inspection and debugging tools.
package traversal

import (
	"fmt"
	"io"
	"strings"

	"seehuhn.de/go/otpack/fixed"
	"seehuhn.de/go/otpack/parser"
)

// A Kind identifies the type of data stored in a Value.
type Kind int

// The possible kinds of field values.
const (
	KindInteger Kind = iota + 1
	KindFixed
	KindTag
	KindBytes
	KindTable
	KindList
)

// A Value is a single field value.  Use the Kind method to find out
// which of the accessors is valid.
type Value struct {
	kind  Kind
	num   int64
	fix   fixed.Fixed
	tag   parser.Tag
	bytes []byte
	table Table
	list  []Value
}

// Integer wraps an integer value.
func Integer(x int64) Value {
	return Value{kind: KindInteger, num: x}
}

// FixedValue wraps a 16.16 fixed point value.
func FixedValue(x fixed.Fixed) Value {
	return Value{kind: KindFixed, fix: x}
}

// TagValue wraps a four-byte table tag.
func TagValue(t parser.Tag) Value {
	return Value{kind: KindTag, tag: t}
}

// Bytes wraps opaque binary data.
func Bytes(b []byte) Value {
	return Value{kind: KindBytes, bytes: b}
}

// Nested wraps a sub-table.
func Nested(t Table) Value {
	return Value{kind: KindTable, table: t}
}

// List wraps a sequence of values.
func List(vv ...Value) Value {
	return Value{kind: KindList, list: vv}
}

// Kind returns the kind of data stored in v.
func (v Value) Kind() Kind {
	return v.kind
}

// Int returns the integer stored in v.
func (v Value) Int() int64 {
	return v.num
}

// Fixed returns the fixed point value stored in v.
func (v Value) Fixed() fixed.Fixed {
	return v.fix
}

// Tag returns the tag stored in v.
func (v Value) Tag() parser.Tag {
	return v.tag
}

// Bytes returns the binary data stored in v.
func (v Value) Bytes() []byte {
	return v.bytes
}

// Table returns the sub-table stored in v.
func (v Value) Table() Table {
	return v.table
}

// List returns the values stored in v.
func (v Value) List() []Value {
	return v.list
}

// String formats scalar values for display.
func (v Value) String() string {
	switch v.kind {
	case KindInteger:
		return fmt.Sprintf("%d", v.num)
	case KindFixed:
		return fmt.Sprintf("%g", v.fix.Float64())
	case KindTag:
		return fmt.Sprintf("%q", v.tag.String())
	case KindBytes:
		return fmt.Sprintf("<%d bytes>", len(v.bytes))
	case KindTable:
		return "<table>"
	case KindList:
		return fmt.Sprintf("<%d values>", len(v.list))
	default:
		return "<invalid>"
	}
}

// A Field is a named field of a table.
type Field struct {
	Name  string
	Value Value
}

// A Table is a structure which can enumerate its fields.
type Table interface {
	// TableName returns the name of the structure.
	TableName() string

	// Fields returns the fields of the structure, in the order they
	// appear in the binary format.
	Fields() []Field
}

// Dump writes a textual representation of a table and all its
// sub-tables to w.
func Dump(w io.Writer, t Table) error {
	return dumpTable(w, t, 0)
}

func dumpTable(w io.Writer, t Table, depth int) error {
	indent := strings.Repeat("  ", depth)
	_, err := fmt.Fprintf(w, "%s%s\n", indent, t.TableName())
	if err != nil {
		return err
	}
	for _, f := range t.Fields() {
		err = dumpField(w, f, depth+1)
		if err != nil {
			return err
		}
	}
	return nil
}

func dumpField(w io.Writer, f Field, depth int) error {
	indent := strings.Repeat("  ", depth)
	switch f.Value.Kind() {
	case KindTable:
		_, err := fmt.Fprintf(w, "%s%s:\n", indent, f.Name)
		if err != nil {
			return err
		}
		return dumpTable(w, f.Value.Table(), depth+1)
	case KindList:
		_, err := fmt.Fprintf(w, "%s%s:\n", indent, f.Name)
		if err != nil {
			return err
		}
		for i, v := range f.Value.List() {
			if v.Kind() == KindTable {
				err = dumpTable(w, v.Table(), depth+1)
			} else {
				_, err = fmt.Fprintf(w, "%s  [%d] %s\n", indent, i, v)
			}
			if err != nil {
				return err
			}
		}
		return nil
	default:
		_, err := fmt.Fprintf(w, "%s%s: %s\n", indent, f.Name, f.Value)
		return err
	}
}
