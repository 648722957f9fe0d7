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

//go:build identities_checks || race
// +build identities_checks race

package buildtags

// Invariants is enabled when built with the identities_checks or race build
// tags. It gates the expensive O(n) invariant re-validation in
// CheckInvariants from running on every edit operation in production
// builds, matching pkg/util/buildutil's Invariants switch.
const Invariants = true
