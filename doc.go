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

// Package identities implements a compact, DAG-shaped representation of a
// set of non-empty sequences of non-empty groups of identifier values.
//
// A query compiler tracks, for every row of an intermediate dataset, which
// identities "witness" it — the lineage of joins and groupings that produced
// it. That lineage is a set of Vectors (ordered sequences of Groups, each
// Group an ordered bundle of identifiers considered simultaneously present
// at one level). Storing the set naively as a slice of slices makes equality
// quadratic and blows up memory on modest query plans; Identities instead
// shares common prefixes and common suffixes across Vectors in a single
// directed acyclic graph, while never inventing a Vector that wasn't in the
// original set (see Merge).
//
// Values are immutable. Every operation takes one or two Identities values
// and returns a new one; the underlying graph may reuse nodes from its
// inputs but callers never observe mutation.
package identities
