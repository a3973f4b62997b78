// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package model

import (
	"fmt"
	"io"
	"strings"

	"github.com/kr/pretty"
)

// Print writes a human-readable rendition of the subtree rooted at a given
// node, one node per line with children indented.
func (p *Tree) Print(w io.Writer, id Id) error {
	return p.print(w, id, 0)
}

func (p *Tree) print(w io.Writer, id Id, depth int) error {
	if _, err := fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth), p.Describe(id)); err != nil {
		return err
	}
	//
	for _, child := range p.nodes[id].children {
		if err := p.print(w, child, depth+1); err != nil {
			return err
		}
	}
	//
	return nil
}

// Describe returns a one line description of a given node, excluding its
// children.
func (p *Tree) Describe(id Id) string {
	var (
		n       = &p.nodes[id]
		builder strings.Builder
	)
	//
	for _, attr := range n.attributes {
		builder.WriteString(fmt.Sprintf("#[%s] ", attr))
	}
	//
	switch e := n.element.(type) {
	case *Workpiece:
		builder.WriteString(fmt.Sprintf("%s %s", e.Kind(), e.Creator.String()))
	case *BuiltinWorkpiece:
		builder.WriteString(fmt.Sprintf("%s %s", e.Kind(), e.Creator.String()))
	case *InputPlaceholder:
		builder.WriteString("@input")
	default:
		builder.WriteString(e.Kind())
	}
	//
	return builder.String()
}

// Snapshot is a self-contained copy of a model subtree, suitable for debug
// output.
type Snapshot struct {
	Element     Element
	Attributes  Attributes
	Assignments []string
	Children    []Snapshot
}

// Snapshot constructs a self-contained copy of the subtree rooted at a given
// node.
func (p *Tree) Snapshot(id Id) Snapshot {
	var (
		n        = &p.nodes[id]
		snapshot = Snapshot{Element: n.element, Attributes: n.attributes}
	)
	//
	for i, name := range n.assignments.Names {
		snapshot.Assignments = append(snapshot.Assignments, fmt.Sprintf("%s = %s", name, n.assignments.Items[i]))
	}
	//
	for _, child := range n.children {
		snapshot.Children = append(snapshot.Children, p.Snapshot(child))
	}
	//
	return snapshot
}

// Dump writes a detailed (Go syntax) rendition of the subtree rooted at a
// given node.
func (p *Tree) Dump(w io.Writer, id Id) error {
	_, err := pretty.Fprintf(w, "%# v\n", p.Snapshot(id))
	return err
}
