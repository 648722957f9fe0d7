// Copyright 2024 The Cockroach Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License.

package identities

import (
	"sort"

	"golang.org/x/exp/constraints"
)

// nodeID is a stable handle into an Identities value's node arena. The zero
// value is reserved as an invalid handle, matching the memo package's
// GroupID convention (arena index 0 unused).
type nodeID int32

const invalidNodeID nodeID = 0

// node is one DAG node: a single Group, the successor/predecessor handles
// that define its place in the graph, and an end flag marking whether some
// Vector's lineage actually terminates here. end and succ are independent:
// a node with succ == nil must have end == true (it is a pure sink), but a
// node can just as well have both — one Vector ends at this Group while a
// longer sibling Vector continues past it to succ. That is the accepting
// state of a DAWG-style automaton, and it is the representation that keeps
// storageSize from double-counting a Group that is simultaneously an ending
// and a continuation (see DESIGN.md). A node with no predecessors is a root
// (see Identities.roots).
type node[V constraints.Ordered] struct {
	group Group[V]
	succ  []nodeID
	pred  []nodeID
	end   bool
}

// Identities is a set of Vectors represented as a DAG. The zero value is the
// empty Identities (no nodes, no roots) and is the identity element of
// Merge.
type Identities[V constraints.Ordered] struct {
	// nodes is the arena; nodes[0] is an unused sentinel so that nodeID 0
	// can mean "invalid".
	nodes []node[V]
	roots []nodeID
}

// IsEmpty reports whether i represents the empty set of Vectors.
func (i Identities[V]) IsEmpty() bool {
	return len(i.roots) == 0
}

func dedupSortedIDs(ids []nodeID) []nodeID {
	if len(ids) < 2 {
		return ids
	}
	sort.Slice(ids, func(a, b int) bool { return ids[a] < ids[b] })
	out := ids[:1]
	for _, id := range ids[1:] {
		if id != out[len(out)-1] {
			out = append(out, id)
		}
	}
	return out
}

// signature uniquely identifies a node's (Group, successor set) pair for
// hash-consing. Predecessors deliberately do not participate: two nodes with
// the same Group and the same continuation are always safe to coalesce
// regardless of how many different lineages flow into them (see DESIGN.md).
//
// end is not encoded here; builder.link and checkNoDuplicateSignatures
// prefix the signature with an end marker, so two nodes with the same
// (Group, successor set) but different end flags stay distinct nodes.
func signature[V constraints.Ordered](group Group[V], succ []nodeID) string {
	var b []byte
	b = append(b, groupKey(group)...)
	b = append(b, '|')
	for _, s := range succ {
		b = append(b, byte(s), byte(s>>8), byte(s>>16), byte(s>>24))
	}
	return string(b)
}
