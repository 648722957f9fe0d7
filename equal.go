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

// Equal reports whether i and other represent the same set of Vectors. It
// is defined as set-equality of Expanded, independent of how each value's
// DAG happens to be laid out internally.
func (i Identities[V]) Equal(other Identities[V]) bool {
	if i.IsEmpty() || other.IsEmpty() {
		return i.IsEmpty() == other.IsEmpty()
	}
	ik := expandedKeys(i)
	ok := expandedKeys(other)
	if len(ik) != len(ok) {
		return false
	}
	for idx := range ik {
		if ik[idx] != ok[idx] {
			return false
		}
	}
	return true
}

func expandedKeys[V constraints.Ordered](i Identities[V]) []string {
	vs := i.Expanded()
	keys := make([]string, len(vs))
	for idx, v := range vs {
		keys[idx] = vectorKey(v)
	}
	sort.Strings(keys)
	return keys
}
