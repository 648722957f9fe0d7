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

// Init drops the last Group from every Vector i represents, discarding any
// Vector that had only one Group. It returns (Empty, false) if i is already
// empty; it returns (Empty, true) if every Vector of i had length 1.
//
// A node with no successors is a pure sink (its only role is "some Vector
// ends here"); dropping every Vector's last Group removes such a node
// entirely, and that vanished ending is promoted one hop back: every
// surviving node picks up end = true if any of its (old) children had
// end == true, since the Vector that used to end at that child now ends at
// the parent instead. A surviving node's own old end flag is never kept in
// place — by definition it belonged to a Vector whose last Group was this
// node, and that Vector's new last Group is the predecessor, not this node
// — so its new end comes only from its children, not from itself. A node
// that is both a sink and a root (a length-1 Vector) has no predecessor to
// promote into, so it simply disappears: that Vector is discarded. A second
// pass (minimizeGraph) then coalesces anything that became equivalent.
func (i Identities[V]) Init() (Identities[V], bool) {
	if i.IsEmpty() {
		return Identities[V]{}, false
	}

	removed := make([]bool, len(i.nodes))
	for id := 1; id < len(i.nodes); id++ {
		if len(i.nodes[id].succ) == 0 {
			removed[id] = true
		}
	}

	filtered := make([]node[V], len(i.nodes))
	for id := 1; id < len(i.nodes); id++ {
		if removed[id] {
			continue
		}
		var succ []nodeID
		end := false
		for _, s := range i.nodes[id].succ {
			if i.nodes[s].end {
				end = true
			}
			if !removed[s] {
				succ = append(succ, s)
			}
		}
		filtered[id] = node[V]{group: i.nodes[id].group, succ: succ, end: end}
	}

	var newRoots []nodeID
	for _, r := range i.roots {
		if !removed[r] {
			newRoots = append(newRoots, r)
		}
	}
	if len(newRoots) == 0 {
		return Identities[V]{}, true
	}

	return minimizeGraph(filtered, newRoots), true
}

// Snoc (the :+ operator) appends a new Group [x] after the current last
// Group of every Vector i represents: E(i :+ x) = { v ++ [[x]] : v ∈ E(i) }.
// On an empty i it returns Single(x).
//
// Every node with end == true gets a new edge to the same shared tail node,
// since every extended tail is identical ([x], with no further successor)
// regardless of which Vector it completes — and loses its own end flag,
// since none of those Vectors end at that Group any more, they now end at
// the tail. A node's existing successors (if any — a node can have end ==
// true and successors at once, see node.end) are left untouched: the
// longer Vectors continuing past it are unaffected here and pick up their
// own tail deeper in the graph, at their own actual ending node.
func (i Identities[V]) Snoc(x V) Identities[V] {
	if i.IsEmpty() {
		return Single[V](x)
	}

	nodes := make([]node[V], len(i.nodes), len(i.nodes)+1)
	for id, n := range i.nodes {
		nodes[id] = node[V]{group: n.group, succ: append([]nodeID(nil), n.succ...), end: n.end}
	}

	tail := nodeID(len(nodes))
	nodes = append(nodes, node[V]{group: Group[V]{x}, end: true})

	for id := 1; id < len(i.nodes); id++ {
		if i.nodes[id].end {
			nodes[id].succ = append(nodes[id].succ, tail)
			nodes[id].end = false
			nodes[tail].pred = append(nodes[tail].pred, nodeID(id))
		}
	}

	roots := append([]nodeID(nil), i.roots...)
	result := Identities[V]{nodes: nodes, roots: roots}
	result.CheckInvariants()
	return result
}

// Conj (the :≻ operator) appends x into the current last Group of every
// Vector i represents, rather than starting a new one:
// E(i :≻ x) = { v[:n-1] ++ [v[n-1] ++ [x]] : v ∈ E(i), n = len(v) }.
// On an empty i it returns a single Vector with one Group [x] (Single(x)).
//
// A node with end == true contributes an extended-Group replacement (its
// Group plus x, a pure new sink) to its parent's successor set, standing in
// for every Vector that used to end here. A node with successors (whether
// or not it is also end == true — see node.end) separately contributes its
// own rebuilt self, so Vectors continuing past this position keep doing so
// unaffected; they get their own extension deeper in the graph, at their
// own actual ending node. A node that is both contributes both — a
// predecessor that used to route every Vector through one node now routes
// them through up to two, split exactly along which Vectors end here and
// which continue.
func (i Identities[V]) Conj(x V) Identities[V] {
	if i.IsEmpty() {
		return Single[V](x)
	}

	b := newBuilder[V]()
	memo := make(map[nodeID][]nodeID, len(i.nodes))

	var visit func(id nodeID) []nodeID
	visit = func(id nodeID) []nodeID {
		if r, ok := memo[id]; ok {
			return r
		}
		n := &i.nodes[id]
		var childIDs []nodeID
		for _, c := range n.succ {
			childIDs = append(childIDs, visit(c)...)
		}
		childIDs = dedupSortedIDs(childIDs)

		var out []nodeID
		if n.end {
			extended := append(cloneGroup(n.group), x)
			out = append(out, b.link(extended, nil, true))
		}
		if len(n.succ) > 0 {
			out = append(out, b.link(n.group, childIDs, false))
		}
		memo[id] = out
		return out
	}

	var newRoots []nodeID
	for _, r := range i.roots {
		newRoots = append(newRoots, visit(r)...)
	}
	newRoots = dedupSortedIDs(newRoots)

	result := Identities[V]{nodes: b.nodes, roots: newRoots}
	result.CheckInvariants()
	return result
}

// Submerge inserts a fresh Group [x] immediately before the final Group of
// every Vector i represents:
// E(i.submerge(x)) = { v[:n-1] ++ [[x]] ++ [v[n-1]] : v ∈ E(i) }.
// On an empty i it returns Empty.
//
// A node with end == true contributes a splice: a new [x] node whose sole
// successor is a pure-sink copy of this node's own Group, standing in for
// every Vector that used to end here (their new final Group is unchanged,
// just with [x] inserted before it). A node with successors separately
// contributes its own rebuilt self, so Vectors continuing past this
// position are unaffected — they get their own splice deeper in the graph,
// at their own actual ending node, not this one. A node that is both
// contributes both, so a predecessor that used to route every Vector
// through one node now routes them through up to two: the splice for
// Vectors ending here, the rebuilt self for Vectors continuing past it.
func (i Identities[V]) Submerge(x V) Identities[V] {
	if i.IsEmpty() {
		return i
	}

	b := newBuilder[V]()
	memo := make(map[nodeID][]nodeID, len(i.nodes))

	var visit func(id nodeID) []nodeID
	visit = func(id nodeID) []nodeID {
		if r, ok := memo[id]; ok {
			return r
		}
		n := &i.nodes[id]
		var childIDs []nodeID
		for _, c := range n.succ {
			childIDs = append(childIDs, visit(c)...)
		}
		childIDs = dedupSortedIDs(childIDs)

		var out []nodeID
		if n.end {
			termSelf := b.link(cloneGroup(n.group), nil, true)
			spliceNode := b.link(Group[V]{x}, []nodeID{termSelf}, false)
			out = append(out, spliceNode)
		}
		if len(n.succ) > 0 {
			out = append(out, b.link(n.group, childIDs, false))
		}
		memo[id] = out
		return out
	}

	var newRoots []nodeID
	for _, r := range i.roots {
		newRoots = append(newRoots, visit(r)...)
	}
	newRoots = dedupSortedIDs(newRoots)

	result := Identities[V]{nodes: b.nodes, roots: newRoots}
	result.CheckInvariants()
	return result
}
