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
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// A ValidationError reports all problems found during the write pass.
// Serialization stops before any packing is attempted.
type ValidationError struct {
	Problems []error
}

func (err *ValidationError) Error() string {
	// Shared sub-tables can report the same problem several times;
	// collapse duplicates for readability.
	count := make(map[string]int)
	for _, p := range err.Problems {
		count[p.Error()]++
	}
	msgs := maps.Keys(count)
	slices.Sort(msgs)

	b := &strings.Builder{}
	fmt.Fprintf(b, "validation failed (%d problems):", len(err.Problems))
	for _, msg := range msgs {
		if n := count[msg]; n > 1 {
			fmt.Fprintf(b, "\n  %s (x%d)", msg, n)
		} else {
			fmt.Fprintf(b, "\n  %s", msg)
		}
	}
	return b.String()
}

// A PackingError indicates that no valid table order and offset width
// assignment could be found.  Either the graph contains a cycle or
// unreachable tables, or an offset does not fit even the widest offset
// class.
type PackingError struct {
	Reason string

	// Source and Target describe the offending edge, if the failure
	// was caused by a single offset field.
	Source, Target ObjectID

	// Chain is the list of objects on a path from the root to Source.
	Chain []ObjectID

	// Unplaced lists objects which could not be placed into the table
	// order because of a cycle or because they are unreachable from
	// the root.
	Unplaced []ObjectID
}

func (err *PackingError) Error() string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "packing failed: %s", err.Reason)
	if len(err.Chain) > 0 {
		fmt.Fprintf(b, " (path from root:")
		for _, id := range err.Chain {
			fmt.Fprintf(b, " %d", id)
		}
		fmt.Fprintf(b, ")")
	}
	if len(err.Unplaced) > 0 {
		fmt.Fprintf(b, " (unplaced:")
		for _, id := range err.Unplaced {
			fmt.Fprintf(b, " %d", id)
		}
		fmt.Fprintf(b, ")")
	}
	return b.String()
}
