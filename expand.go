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

// Expanded enumerates the Vectors i represents, one per path from a root to
// a node marked end (every sink is one, and so can be an interior node).
// Order is deterministic for a given value (groups are
// visited in the node arena's sorted-child order) but is not part of the
// cross-operation contract.
func (i Identities[V]) Expanded() []Vector[V] {
	if i.IsEmpty() {
		return nil
	}
	var out []Vector[V]
	path := make([]Group[V], 0, i.Depth())

	var walk func(id nodeID)
	walk = func(id nodeID) {
		n := &i.nodes[id]
		path = append(path, n.group)
		// end and succ are independent (see node.end): a node can both
		// terminate a Vector here and continue on to longer ones sharing
		// this prefix, so both branches can fire for the same node.
		if n.end {
			v := make(Vector[V], len(path))
			copy(v, path)
			out = append(out, v)
		}
		for _, s := range n.succ {
			walk(s)
		}
		path = path[:len(path)-1]
	}
	for _, r := range i.roots {
		walk(r)
	}
	return out
}

// Breadth is |E(i)|, the number of distinct Vectors i represents.
func (i Identities[V]) Breadth() int {
	return len(i.Expanded())
}

// Depth is the length of the longest Vector i represents, or 0 if i is
// empty. It is computed by memoized recursion over the arena rather than by
// materializing every Vector, so a deeply shared DAG costs O(nodes), not
// O(breadth).
func (i Identities[V]) Depth() int {
	if i.IsEmpty() {
		return 0
	}
	memo := make(map[nodeID]int, len(i.nodes))
	var longest func(id nodeID) int
	longest = func(id nodeID) int {
		if d, ok := memo[id]; ok {
			return d
		}
		n := &i.nodes[id]
		best := 0
		for _, s := range n.succ {
			if d := longest(s); d > best {
				best = d
			}
		}
		d := best + 1
		memo[id] = d
		return d
	}
	max := 0
	for _, r := range i.roots {
		if d := longest(r); d > max {
			max = d
		}
	}
	return max
}

// StorageSize is the total count of identifier occurrences across the DAG's
// node set: the sharing metric the merge engine optimizes for.
func (i Identities[V]) StorageSize() int {
	total := 0
	if len(i.nodes) > 1 {
		for _, n := range i.nodes[1:] {
			total += len(n.group)
		}
	}
	return total
}
