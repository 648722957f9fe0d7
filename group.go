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
	"strings"

	"golang.org/x/exp/constraints"
)

// Group is a non-empty, ordered sequence of identifiers considered
// simultaneously present at one level of a Vector's lineage.
type Group[V constraints.Ordered] []V

// Vector is a non-empty, ordered sequence of Groups: a single lineage path.
type Vector[V constraints.Ordered] []Group[V]

// compareGroups orders two Groups lexicographically, shorter-is-less on a
// common prefix. It defines the "equal Groups" relation used throughout the
// package (node merge candidates, trie children, signature interning).
func compareGroups[V constraints.Ordered](a, b Group[V]) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

func groupsEqual[V constraints.Ordered](a, b Group[V]) bool {
	return compareGroups(a, b) == 0
}

// groupKey produces a collision-safe string encoding of a Group, used as a
// map key when interning nodes by content. Each element is separated by a
// unit separator byte, which cannot appear in the %v rendering of any
// constraints.Ordered numeric type and is vanishingly unlikely in string
// identifiers, so that V needs only to be ordered and printable, not
// hashable, to serve as an interning key.
func groupKey[V constraints.Ordered](g Group[V]) string {
	var b strings.Builder
	for _, v := range g {
		fmt.Fprintf(&b, "%v\x1f", v)
	}
	return b.String()
}

func cloneGroup[V constraints.Ordered](g Group[V]) Group[V] {
	out := make(Group[V], len(g))
	copy(out, g)
	return out
}

func vectorKey[V constraints.Ordered](v Vector[V]) string {
	var b strings.Builder
	for _, g := range v {
		b.WriteString(groupKey(g))
		b.WriteByte('\x1e')
	}
	return b.String()
}
