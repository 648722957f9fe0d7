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

// trieNode is an intermediate, uncompacted representation built by laying
// every Vector down as a path from a forest of roots, sharing a child
// whenever two Vectors agree on the Group at that position. It is purely a
// scaffold: buildShared compacts it into the final arena in one bottom-up
// pass (see (*builder).process).
type trieNode[V constraints.Ordered] struct {
	group    Group[V]
	children []*trieNode[V]
	isEnd    bool // some Vector ends exactly at this position
}

func (t *trieNode[V]) childFor(g Group[V]) *trieNode[V] {
	for _, c := range t.children {
		if groupsEqual(c.group, g) {
			return c
		}
	}
	c := &trieNode[V]{group: cloneGroup(g)}
	t.children = append(t.children, c)
	return c
}

// buildTrie lays out vectors (assumed already deduplicated) as a forest of
// tries, one root per distinct leading Group.
func buildTrie[V constraints.Ordered](vectors []Vector[V]) []*trieNode[V] {
	forest := &trieNode[V]{}
	for _, v := range vectors {
		cur := forest
		for _, g := range v {
			cur = cur.childFor(g)
		}
		cur.isEnd = true
	}
	sortTrieChildren(forest)
	return forest.children
}

// sortTrieChildren orders a trie's children (recursively) by Group so that
// traversal, and therefore every derived Identities value, is deterministic
// regardless of input vector order.
func sortTrieChildren[V constraints.Ordered](t *trieNode[V]) {
	sort.Slice(t.children, func(a, b int) bool {
		return compareGroups(t.children[a].group, t.children[b].group) < 0
	})
	for _, c := range t.children {
		sortTrieChildren(c)
	}
}
