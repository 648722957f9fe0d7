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

// Package treeprinter renders an indented ASCII tree, the same shape as
// CockroachDB's optimizer memo formatter (pkg/util/treeprinter) builds for
// query plans. It is reproduced here in miniature because the identities
// library is a standalone module and does not import the rest of the
// CockroachDB tree.
package treeprinter

import (
	"fmt"
	"strings"
)

// Node is a node in the tree being built. The zero Node is not usable;
// obtain the root via New.
type Node struct {
	tree  *tree
	index int
}

type entry struct {
	label    string
	parent   int
	children []int
}

type tree struct {
	entries []entry
}

// New creates an empty tree with an invisible root; the first Child/Childf
// call on the returned Node becomes the first visible line.
func New() Node {
	t := &tree{entries: []entry{{label: ""}}}
	return Node{tree: t, index: 0}
}

// Child adds a labeled child under n and returns it.
func (n Node) Child(label string) Node {
	idx := len(n.tree.entries)
	n.tree.entries = append(n.tree.entries, entry{label: label, parent: n.index})
	n.tree.entries[n.index].children = append(n.tree.entries[n.index].children, idx)
	return Node{tree: n.tree, index: idx}
}

// Childf is like Child but formats its label with fmt.Sprintf.
func (n Node) Childf(format string, args ...interface{}) Node {
	return n.Child(fmt.Sprintf(format, args...))
}

// String renders the tree rooted at the tree's invisible root.
func (n Node) String() string {
	var buf strings.Builder
	root := n.tree.entries[0]
	for i, c := range root.children {
		n.tree.write(&buf, c, "", i == len(root.children)-1)
	}
	return buf.String()
}

func (t *tree) write(buf *strings.Builder, idx int, prefix string, last bool) {
	e := t.entries[idx]
	buf.WriteString(prefix)
	if last {
		buf.WriteString("└── ")
	} else {
		buf.WriteString("├── ")
	}
	buf.WriteString(e.label)
	buf.WriteByte('\n')

	childPrefix := prefix
	if last {
		childPrefix += "    "
	} else {
		childPrefix += "│   "
	}
	for i, c := range e.children {
		t.write(buf, c, childPrefix, i == len(e.children)-1)
	}
}
