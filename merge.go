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

import "golang.org/x/exp/constraints"

// MergeStats reports the work Merge did, for callers that want to log or
// assert on sharing effectiveness — analogous to the running totals
// memo/statistics_builder.go accumulates while building logical properties.
// It is purely diagnostic; nothing in this package consults it.
type MergeStats struct {
	// InputVectors is len(a.Expanded()) + len(b.Expanded()), before dedup.
	InputVectors int
	// UnionVectors is |E(a) ∪ E(b)|, i.e. the Breadth of the result.
	UnionVectors int
	// Nodes is the number of arena nodes in the result (its StorageSize is
	// the sum of each node's Group length).
	Nodes int
}

// Merge returns the Identities value whose expansion is the set union of
// a's and b's expansions, sharing prefixes and suffixes wherever doing so
// cannot introduce a Vector absent from both inputs. Merge is commutative,
// associative, idempotent, and has Empty as its identity element — a
// bounded semilattice.
func Merge[V constraints.Ordered](a, b Identities[V]) Identities[V] {
	return MergeWithStats(a, b, nil)
}

// MergeWithStats is Merge, additionally populating stats (if non-nil) with
// the union's size before and after sharing.
func MergeWithStats[V constraints.Ordered](a, b Identities[V], stats *MergeStats) Identities[V] {
	if a.IsEmpty() {
		if stats != nil {
			bv := b.Expanded()
			nodes := 0
			if len(b.nodes) > 0 {
				nodes = len(b.nodes) - 1
			}
			*stats = MergeStats{InputVectors: len(bv), UnionVectors: len(bv), Nodes: nodes}
		}
		return b
	}
	if b.IsEmpty() {
		if stats != nil {
			av := a.Expanded()
			*stats = MergeStats{InputVectors: len(av), UnionVectors: len(av), Nodes: len(a.nodes) - 1}
		}
		return a
	}

	av := a.Expanded()
	bv := b.Expanded()
	union := make([]Vector[V], 0, len(av)+len(bv))
	union = append(union, av...)
	union = append(union, bv...)

	result := buildShared(union)

	if stats != nil {
		*stats = MergeStats{
			InputVectors: len(av) + len(bv),
			UnionVectors: result.Breadth(),
			Nodes:        len(result.nodes) - 1,
		}
	}
	return result
}
