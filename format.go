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
	"fmt"

	"github.com/cockroachdb/identities/internal/treeprinter"
	"github.com/cockroachdb/redact"
)

// FmtFlags controls the diagnostic rendering produced by Format and String,
// mirroring the memo package's raw-vs-normalized dual rendering
// (memo.FmtFlags / FmtRaw).
type FmtFlags uint8

const (
	// FmtNormalize topologically sorts the nodes reachable from the roots
	// and renumbers them from 1. Successor lists keep each node's stored
	// order, so two values with the same represented Vectors print the
	// same only when their DAGs have the same shape and edge order. This is
	// the default used by String.
	FmtNormalize FmtFlags = 0
	// FmtRaw prints every arena node in its raw allocation order instead,
	// including (if any survived structural sharing from a prior value)
	// nodes not reachable from the current roots. Useful when debugging a
	// Merge that produced unexpected sharing.
	FmtRaw FmtFlags = 1 << iota
)

// HasFlags reports whether f has all of sub's bits set.
func (f FmtFlags) HasFlags(sub FmtFlags) bool { return f&sub == sub }

// String renders i as an indented tree, one line per node, not intended to
// be machine-parsed.
func (i Identities[V]) String() string {
	return i.Format(FmtNormalize)
}

// Format renders i as an indented tree under the given flags.
func (i Identities[V]) Format(flags FmtFlags) string {
	tp := treeprinter.New()
	if i.IsEmpty() {
		tp.Childf("identities (empty)")
		return tp.String()
	}

	var order []nodeID
	var numbering map[nodeID]int
	if flags.HasFlags(FmtRaw) {
		order = make([]nodeID, 0, len(i.nodes)-1)
		for id := 1; id < len(i.nodes); id++ {
			order = append(order, nodeID(id))
		}
	} else {
		order = i.sortNodes()
	}
	numbering = make(map[nodeID]int, len(order))
	for idx, id := range order {
		numbering[id] = idx + 1
	}

	root := tp.Childf("identities (%d vectors, %d nodes, storage %d)",
		i.Breadth(), len(order), i.StorageSize())
	for _, id := range order {
		n := &i.nodes[id]
		end := ""
		if n.end {
			end = " (end)"
		}
		child := root.Childf("N%d: %v%s", numbering[id], []V(n.group), end)
		if len(n.succ) == 0 {
			continue
		}
		succNums := make([]int, len(n.succ))
		for k, s := range n.succ {
			succNums[k] = numbering[s]
		}
		child.Childf("-> %v", succNums)
	}
	return tp.String()
}

// sortNodes returns the nodes reachable from i's roots in BFS topological
// order, matching memo.sortGroups/getIndegrees: repeatedly emit nodes whose
// remaining in-edges (from already-emitted nodes) have all been accounted
// for, starting from the roots.
func (i Identities[V]) sortNodes() []nodeID {
	indegree := make(map[nodeID]int, len(i.nodes))
	var mark func(id nodeID, seen map[nodeID]bool)
	mark = func(id nodeID, seen map[nodeID]bool) {
		if seen[id] {
			return
		}
		seen[id] = true
		for _, s := range i.nodes[id].succ {
			indegree[s]++
			mark(s, seen)
		}
	}
	seen := make(map[nodeID]bool, len(i.nodes))
	for _, r := range i.roots {
		mark(r, seen)
	}

	queue := append([]nodeID(nil), i.roots...)
	var order []nodeID
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)
		for _, s := range i.nodes[id].succ {
			indegree[s]--
			if indegree[s] == 0 {
				queue = append(queue, s)
			}
		}
	}
	return order
}

// SafeFormat implements redact.SafeFormatter, so a consuming log pipeline
// can redact the identifier values embedded in a rendered Identities value
// while still printing its shape, matching the log.Safe(...) treatment the
// teacher gives memo private fields.
func (i Identities[V]) SafeFormat(s redact.SafePrinter, verb rune) {
	s.Printf("identities(%d vectors, %d nodes)", redact.Safe(i.Breadth()), redact.Safe(len(i.nodes)-1))
}

var _ fmt.Stringer = Identities[int]{}
