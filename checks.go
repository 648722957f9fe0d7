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
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/identities/internal/buildtags"
)

const checksEnabled = buildtags.Invariants

// CheckInvariants re-validates i's structural invariants from scratch:
// acyclicity, that every node is reachable from some root, that no two
// nodes share a (Group, successor set, end) key (I3), that the expansion
// holds no Vector twice (I4, checked the expensive way here by
// full expansion rather than relying on the builder having deduplicated
// correctly).
//
// It is a no-op unless built with the identities_checks or race tag (see
// internal/buildtags), matching the cost/coverage tradeoff the teacher makes
// for its own race-only expression checks: CheckInvariants is O(nodes) to
// O(nodes^2) depending on which check trips, too expensive to run on every
// operation in production but cheap enough for CI.
func (i Identities[V]) CheckInvariants() {
	if !checksEnabled {
		return
	}
	i.checkAcyclic()
	i.checkReachable()
	i.checkNoDuplicateSignatures()
	i.checkNoDuplicateVectors()
	i.checkSinksAreEnds()
}

func (i Identities[V]) checkAcyclic() {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[nodeID]int, len(i.nodes))
	var visit func(id nodeID)
	visit = func(id nodeID) {
		switch color[id] {
		case black:
			return
		case gray:
			panic(errors.AssertionFailedf("identities: cycle detected at node %d", id))
		}
		color[id] = gray
		for _, s := range i.nodes[id].succ {
			visit(s)
		}
		color[id] = black
	}
	for _, r := range i.roots {
		visit(r)
	}
}

func (i Identities[V]) checkReachable() {
	reached := make([]bool, len(i.nodes))
	var mark func(id nodeID)
	mark = func(id nodeID) {
		if reached[id] {
			return
		}
		reached[id] = true
		for _, s := range i.nodes[id].succ {
			mark(s)
		}
	}
	for _, r := range i.roots {
		mark(r)
	}
	for id := 1; id < len(i.nodes); id++ {
		if !reached[nodeID(id)] {
			panic(errors.AssertionFailedf("identities: node %d unreachable from any root", id))
		}
	}
}

func (i Identities[V]) checkNoDuplicateSignatures() {
	seen := make(map[string]nodeID, len(i.nodes))
	for id := 1; id < len(i.nodes); id++ {
		n := &i.nodes[id]
		sig := signature(n.group, n.succ)
		if n.end {
			sig = "e" + sig
		} else {
			sig = "n" + sig
		}
		if other, ok := seen[sig]; ok {
			panic(errors.AssertionFailedf(
				"identities: nodes %d and %d share a signature, should have been coalesced", other, id))
		}
		seen[sig] = nodeID(id)
	}
}

// checkSinksAreEnds re-validates the invariant node.end documents: a node
// with no successors carries no information other than "a Vector ends
// here", so it must have end == true. A node with succ == nil and
// end == false would be dead weight with no represented Vector — exactly
// the kind of defect the former split sink/continuation representation
// could never produce but a hand-rolled rebuild (Init/Conj/Submerge) could,
// if it forgot to set end.
func (i Identities[V]) checkSinksAreEnds() {
	for id := 1; id < len(i.nodes); id++ {
		n := &i.nodes[id]
		if len(n.succ) == 0 && !n.end {
			panic(errors.AssertionFailedf("identities: node %d is a sink but not marked end", id))
		}
	}
}

func (i Identities[V]) checkNoDuplicateVectors() {
	keys := expandedKeys(i)
	for idx := 1; idx < len(keys); idx++ {
		if keys[idx] == keys[idx-1] {
			panic(errors.AssertionFailedf("identities: duplicate Vector in expansion"))
		}
	}
}
