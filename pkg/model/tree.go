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

	"github.com/microcad-lang/go-microcad/pkg/util/source"
	"github.com/microcad-lang/go-microcad/pkg/value"
)

// Id is a handle identifying a model node within a given tree.
type Id = value.ModelId

type node struct {
	element Element
	// Parent of this node (if any).
	parent    Id
	hasParent bool
	// Children in order.
	children []Id
	// Attributes attached to this node.
	attributes Attributes
	// Named values assigned whilst building this node.
	assignments value.Tuple
	// Location of the call or expression which produced this node.
	origin source.Ref
}

// Tree is an arena holding model nodes.  Several disjoint trees can be held at
// once, since nodes without a parent are simply roots.  Parent and child links
// are handles, and are kept mutually consistent by the methods of this type.
type Tree struct {
	nodes []node
}

// NewTree constructs a new (empty) arena.
func NewTree() *Tree {
	return &Tree{}
}

// Len returns the number of nodes in the arena.
func (p *Tree) Len() uint {
	return uint(len(p.nodes))
}

// Add a new (parentless) node to the arena.
func (p *Tree) Add(elem Element, origin source.Ref) Id {
	id := Id(len(p.nodes))
	p.nodes = append(p.nodes, node{element: elem, origin: origin})
	//
	return id
}

// AppendChild makes a given node the last child of a given parent.  The child
// must not already have a parent.
func (p *Tree) AppendChild(parent Id, child Id) {
	if p.nodes[child].hasParent {
		panic(fmt.Sprintf("model %d already has a parent", child))
	} else if parent == child {
		panic("model cannot be its own child")
	}
	//
	p.nodes[child].parent = parent
	p.nodes[child].hasParent = true
	p.nodes[parent].children = append(p.nodes[parent].children, child)
}

// AppendChildren appends zero or more children to a given parent, in order.
func (p *Tree) AppendChildren(parent Id, children ...Id) {
	for _, child := range children {
		p.AppendChild(parent, child)
	}
}

// Detach a given node from its parent (if it has one).
func (p *Tree) Detach(id Id) {
	n := &p.nodes[id]
	//
	if !n.hasParent {
		return
	}
	//
	siblings := p.nodes[n.parent].children
	for i, s := range siblings {
		if s == id {
			p.nodes[n.parent].children = append(siblings[:i:i], siblings[i+1:]...)
			break
		}
	}
	//
	n.hasParent = false
}

// Element returns the element of a given node.
func (p *Tree) Element(id Id) Element {
	return p.nodes[id].element
}

// Parent returns the parent of a given node, or false if it has none.
func (p *Tree) Parent(id Id) (Id, bool) {
	return p.nodes[id].parent, p.nodes[id].hasParent
}

// Children returns the children of a given node in order.  The returned array
// should not be modified.
func (p *Tree) Children(id Id) []Id {
	return p.nodes[id].children
}

// Origin returns the source location which produced a given node.
func (p *Tree) Origin(id Id) source.Ref {
	return p.nodes[id].origin
}

// Attributes returns the attributes attached to a given node.
func (p *Tree) Attributes(id Id) Attributes {
	return p.nodes[id].attributes
}

// AddAttributes attaches zero or more attributes to a given node.
func (p *Tree) AddAttributes(id Id, attrs ...Attribute) {
	p.nodes[id].attributes = append(p.nodes[id].attributes, attrs...)
}

// Assign records a named value against a given node.
func (p *Tree) Assign(id Id, name string, val value.Value) {
	p.nodes[id].assignments.Add(name, val)
}

// Assignments returns the named values recorded against a given node.
func (p *Tree) Assignments(id Id) value.Tuple {
	return p.nodes[id].assignments
}

// Property looks up a named property of a given node.  Workpiece properties
// are considered first, followed by assigned values.
func (p *Tree) Property(id Id, name string) (value.Value, bool) {
	if wp, ok := p.nodes[id].element.(*Workpiece); ok {
		if val, ok := wp.Properties.Get(name); ok {
			return val, true
		}
	}
	//
	return p.nodes[id].assignments.Get(name)
}

// Local returns the local transformation of a given node, relative to its
// parent.  Only transforms have anything other than the identity.
func (p *Tree) Local(id Id) value.Matrix {
	if bw, ok := p.nodes[id].element.(*BuiltinWorkpiece); ok && bw.Transform.Rows != 0 {
		return bw.Transform
	}
	//
	return value.Identity(4)
}

// Check the structural consistency of the arena.  That is, every child names
// its parent and every parent lists each of its children exactly once.
func (p *Tree) Check() error {
	for i := range p.nodes {
		id := Id(i)
		//
		for _, child := range p.nodes[i].children {
			if c := &p.nodes[child]; !c.hasParent || c.parent != id {
				return fmt.Errorf("model %d lists %d as child, but not vice versa", id, child)
			}
		}
		//
		if n := &p.nodes[i]; n.hasParent {
			count := 0
			//
			for _, s := range p.nodes[n.parent].children {
				if s == id {
					count++
				}
			}
			//
			if count != 1 {
				return fmt.Errorf("model %d listed %d times by its parent %d", id, count, n.parent)
			}
		}
	}
	//
	return nil
}

// Exports returns every node within a given subtree with an export attribute,
// in depth-first order.
func (p *Tree) Exports(root Id) []Id {
	var exports []Id
	//
	p.walk(root, func(id Id) {
		if len(p.nodes[id].attributes.Exports()) > 0 {
			exports = append(exports, id)
		}
	})
	//
	return exports
}

// Walk visits every node of a given subtree in depth-first (pre) order.
func (p *Tree) walk(id Id, visitor func(Id)) {
	visitor(id)
	//
	for _, child := range p.nodes[id].children {
		p.walk(child, visitor)
	}
}
