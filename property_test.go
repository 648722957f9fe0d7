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
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// genVector produces a non-empty Vector of small integer singleton Groups,
// the same flat-list notation the storageSize scenarios use. Length varies
// (1-5) rather than being fixed, so that generated vector sets sometimes
// have one vector a proper prefix of another — the case a fixed length can
// never produce, and the one the terminal-node representation has to get
// right (see node.end, DESIGN.md).
func genVector() gopter.Gen {
	return gen.IntRange(1, 5).FlatMap(
		func(n interface{}) gopter.Gen {
			return gen.SliceOfN(n.(int), gen.IntRange(0, 6))
		},
		reflect.TypeOf([]int{}),
	).Map(func(ids []int) Vector[int] {
		return flat(ids...)
	})
}

func genVectorSet() gopter.Gen {
	return gen.SliceOfN(5, genVector())
}

// TestMergeLaws runs the algebraic laws merge is contracted to satisfy
// (commutative, associative, idempotent, empty as identity) against
// randomly generated vector sets, matching the teacher's use of gopter for
// property-style law checking rather than hand-picked examples alone.
func TestMergeLaws(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("commutative", prop.ForAll(
		func(a, b []Vector[int]) bool {
			ia, ib := Contracted(a), Contracted(b)
			return Merge(ia, ib).Equal(Merge(ib, ia))
		},
		genVectorSet(), genVectorSet(),
	))

	properties.Property("associative", prop.ForAll(
		func(a, b, c []Vector[int]) bool {
			ia, ib, ic := Contracted(a), Contracted(b), Contracted(c)
			left := Merge(Merge(ia, ib), ic)
			right := Merge(ia, Merge(ib, ic))
			return left.Equal(right)
		},
		genVectorSet(), genVectorSet(), genVectorSet(),
	))

	properties.Property("idempotent", prop.ForAll(
		func(a []Vector[int]) bool {
			ia := Contracted(a)
			return Merge(ia, ia).Equal(ia)
		},
		genVectorSet(),
	))

	properties.Property("empty is identity", prop.ForAll(
		func(a []Vector[int]) bool {
			ia := Contracted(a)
			return Merge(ia, Empty[int]()).Equal(ia) && Merge(Empty[int](), ia).Equal(ia)
		},
		genVectorSet(),
	))

	properties.Property("merge expands to the set union", prop.ForAll(
		func(a, b []Vector[int]) bool {
			ia, ib := Contracted(a), Contracted(b)
			union := Merge(ia, ib)
			want := make(map[string]bool)
			for _, v := range ia.Expanded() {
				want[vectorKey(v)] = true
			}
			for _, v := range ib.Expanded() {
				want[vectorKey(v)] = true
			}
			got := make(map[string]bool)
			for _, v := range union.Expanded() {
				got[vectorKey(v)] = true
			}
			if len(want) != len(got) {
				return false
			}
			for k := range want {
				if !got[k] {
					return false
				}
			}
			return true
		},
		genVectorSet(), genVectorSet(),
	))

	properties.Property("merge never invalidates structural invariants", prop.ForAll(
		func(a, b []Vector[int]) bool {
			ia, ib := Contracted(a), Contracted(b)
			result := Merge(ia, ib)
			result.CheckInvariants()
			return true
		},
		genVectorSet(), genVectorSet(),
	))

	properties.TestingRun(t)
}

// TestConstructionLaws checks invariants of Contracted/Expanded/Breadth/
// StorageSize that must hold for any input, not just the literal scenarios.
func TestConstructionLaws(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("breadth equals distinct vector count", prop.ForAll(
		func(vs []Vector[int]) bool {
			id := Contracted(vs)
			distinct := make(map[string]bool)
			for _, v := range vs {
				if len(v) == 0 {
					continue
				}
				distinct[vectorKey(v)] = true
			}
			return id.Breadth() == len(distinct)
		},
		genVectorSet(),
	))

	properties.Property("storageSize is never negative and zero only when empty", prop.ForAll(
		func(vs []Vector[int]) bool {
			id := Contracted(vs)
			if id.StorageSize() < 0 {
				return false
			}
			return id.IsEmpty() == (id.StorageSize() == 0)
		},
		genVectorSet(),
	))

	properties.Property("expanded round-trips through Contracted", prop.ForAll(
		func(vs []Vector[int]) bool {
			id := Contracted(vs)
			rebuilt := Contracted(id.Expanded())
			return rebuilt.Equal(id)
		},
		genVectorSet(),
	))

	properties.Property("construction satisfies structural invariants", prop.ForAll(
		func(vs []Vector[int]) bool {
			Contracted(vs).CheckInvariants()
			return true
		},
		genVectorSet(),
	))

	properties.Property("equal is reflexive", prop.ForAll(
		func(vs []Vector[int]) bool {
			id := Contracted(vs)
			return id.Equal(id)
		},
		genVectorSet(),
	))

	properties.TestingRun(t)
}

// TestEditLaws checks that Snoc/Conj/Submerge/Init never violate structural
// invariants and that Init undoes Snoc, for randomly generated inputs.
func TestEditLaws(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("snoc then init round-trips", prop.ForAll(
		func(vs []Vector[int], x int) bool {
			id := Contracted(vs)
			after, ok := id.Snoc(x).Init()
			if !ok {
				return false
			}
			if id.IsEmpty() {
				return after.IsEmpty()
			}
			return after.Equal(id)
		},
		genVectorSet(), gen.IntRange(100, 200),
	))

	properties.Property("edits preserve structural invariants", prop.ForAll(
		func(vs []Vector[int], x int) bool {
			id := Contracted(vs)
			id.Snoc(x).CheckInvariants()
			id.Conj(x).CheckInvariants()
			id.Submerge(x).CheckInvariants()
			if after, ok := id.Init(); ok {
				after.CheckInvariants()
			}
			return true
		},
		genVectorSet(), gen.IntRange(100, 200),
	))

	properties.TestingRun(t)
}
