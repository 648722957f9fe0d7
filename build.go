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

// builder hash-conses nodes by (Group, successor set) signature while an
// Identities value is being assembled, so that two lineages which agree on
// everything from some point onward always end up pointing at the exact
// same node (maximal suffix sharing) and two lineages can never be routed
// into a continuation neither of them had (no spurious Vector, invariant
// I6): a node is only ever returned from the cache, never rebuilt with a
// different meaning.
type builder[V constraints.Ordered] struct {
	nodes  []node[V]
	intern map[string]nodeID
}

func newBuilder[V constraints.Ordered]() *builder[V] {
	return &builder[V]{
		// nodes[0] is the unused sentinel for invalidNodeID.
		nodes:  make([]node[V], 1),
		intern: make(map[string]nodeID),
	}
}

// link interns (or looks up) the node (group, succ) and records it as a
// predecessor of every member of succ. succ must already be final node IDs
// (children processed first); it is taken as owned by the returned node.
//
// end is part of the interning key: two requests for the same (group, succ)
// that differ in end get two distinct nodes, since merging them would make
// a Vector end at this Group for lineages that only pass through it.
func (b *builder[V]) link(group Group[V], succ []nodeID, end bool) nodeID {
	sig := signature(group, succ)
	if end {
		sig = "e" + sig
	} else {
		sig = "n" + sig
	}
	if id, ok := b.intern[sig]; ok {
		return id
	}
	id := nodeID(len(b.nodes))
	b.nodes = append(b.nodes, node[V]{group: group, succ: succ, end: end})
	b.intern[sig] = id
	for _, s := range succ {
		b.nodes[s].pred = append(b.nodes[s].pred, id)
	}
	return id
}

// process compacts one trie node (and, recursively, its subtree) into the
// arena, returning the single node ID that represents it. A trie node that
// is both an end and has children becomes one node with end set and succ
// non-empty (see node.end): there is no longer any need to split "ends
// here" from "continues here" into separate nodes, which is what let the
// split representation double-count storageSize for inputs where one
// Vector is a proper prefix of another (see DESIGN.md).
func (b *builder[V]) process(t *trieNode[V]) nodeID {
	var childIDs []nodeID
	for _, c := range t.children {
		childIDs = append(childIDs, b.process(c))
	}
	childIDs = dedupSortedIDs(childIDs)
	return b.link(t.group, childIDs, t.isEnd)
}

// buildShared constructs the maximally-but-safely shared DAG representing
// exactly the given (deduplicated) Vectors. It is the engine behind Single,
// Contracted, and Merge: merge itself is expressed as set union of the two
// inputs' expansions followed by a rebuild, so all three constructors share
// one correctness argument.
//
// The algorithm is standard minimal acyclic automaton construction (as used
// to build a DAWG for a finite word list) applied with Groups as the
// alphabet: lay every Vector down as a path in a trie (free prefix sharing),
// then hash-cons bottom-up by (Group, successor-IDs) signature. Two trie
// positions merge only when their entire downstream continuation is
// identical, which is exactly when merging cannot create a path absent from
// both inputs — this is the same soundness argument minimal-DFA
// construction relies on, applied here instead of the candidate-pair
// backtracking search sketched in spec form, because the forest built by
// buildTrie is already acyclic and processed in a single post-order pass.
func buildShared[V constraints.Ordered](vectors []Vector[V]) Identities[V] {
	vectors = distinctVectors(vectors)
	if len(vectors) == 0 {
		return Identities[V]{}
	}
	roots := buildTrie(vectors)

	b := newBuilder[V]()
	var rootIDs []nodeID
	for _, r := range roots {
		rootIDs = append(rootIDs, b.process(r))
	}
	rootIDs = dedupSortedIDs(rootIDs)

	result := Identities[V]{nodes: b.nodes, roots: rootIDs}
	result.CheckInvariants()
	return result
}

// minimizeGraph re-applies the same bottom-up hash-consing as buildShared to
// an already-assembled arbitrary acyclic graph (rather than a trie),
// coalescing any nodes that have become equivalent — e.g. two nodes that
// ended up with the same (Group, successor set, end) after Init truncated
// their longer neighbors away. Each original node is visited once, via the
// remap map keyed by its old ID, and re-linked preserving its own end flag.
func minimizeGraph[V constraints.Ordered](nodes []node[V], roots []nodeID) Identities[V] {
	b := newBuilder[V]()
	remap := make(map[nodeID]nodeID, len(nodes))

	var visit func(id nodeID) nodeID
	visit = func(id nodeID) nodeID {
		if r, ok := remap[id]; ok {
			return r
		}
		n := &nodes[id]
		var succIDs []nodeID
		for _, s := range n.succ {
			succIDs = append(succIDs, visit(s))
		}
		succIDs = dedupSortedIDs(succIDs)
		newID := b.link(n.group, succIDs, n.end)
		remap[id] = newID
		return newID
	}

	var newRoots []nodeID
	for _, r := range roots {
		newRoots = append(newRoots, visit(r))
	}
	newRoots = dedupSortedIDs(newRoots)

	result := Identities[V]{nodes: b.nodes, roots: newRoots}
	result.CheckInvariants()
	return result
}

func distinctVectors[V constraints.Ordered](vectors []Vector[V]) []Vector[V] {
	seen := make(map[string]bool, len(vectors))
	out := make([]Vector[V], 0, len(vectors))
	for _, v := range vectors {
		if len(v) == 0 {
			continue
		}
		k := vectorKey(v)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, v)
	}
	sort.Slice(out, func(a, b int) bool { return vectorKey(out[a]) < vectorKey(out[b]) })
	return out
}

// Empty returns the Identities value representing the empty set of Vectors:
// no roots, no sinks, zero breadth and depth, zero storage, and the
// identity element of Merge.
func Empty[V constraints.Ordered]() Identities[V] {
	return Identities[V]{}
}

// Single returns the Identities value representing exactly one Vector
// consisting of one Group containing v.
func Single[V constraints.Ordered](v V) Identities[V] {
	return buildShared([]Vector[V]{{Group[V]{v}}})
}

// Contracted builds an Identities value representing exactly the given
// Vectors (duplicates collapsed per I4), sharing structure maximally.
func Contracted[V constraints.Ordered](vectors []Vector[V]) Identities[V] {
	return buildShared(vectors)
}
