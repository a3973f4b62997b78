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

import "github.com/microcad-lang/go-microcad/pkg/util/collection/iter"

// DeepCopy makes a structural copy of the subtree rooted at a given node.  The
// copy has no parent, and shares no nodes with the original.
func (p *Tree) DeepCopy(id Id) Id {
	n := p.nodes[id]
	copied := p.Add(copyElement(n.element), n.origin)
	//
	p.nodes[copied].attributes = append(Attributes(nil), n.attributes...)
	p.nodes[copied].assignments = n.assignments.Clone()
	//
	for _, child := range n.children {
		p.AppendChild(copied, p.DeepCopy(child))
	}
	//
	return copied
}

// ReplaceInputPlaceholders applies an operation template to an input model.
// This returns a copy of the template in which every input placeholder has
// been replaced by a structural copy of the input.  All other content of the
// template is preserved unchanged, as is the template itself.
func (p *Tree) ReplaceInputPlaceholders(template Id, input Id) Id {
	if _, ok := p.nodes[template].element.(*InputPlaceholder); ok {
		return p.DeepCopy(input)
	}
	//
	root := p.DeepCopy(template)
	p.replaceInputPlaceholders(root, input)
	//
	return root
}

func (p *Tree) replaceInputPlaceholders(id Id, input Id) {
	for i, child := range p.nodes[id].children {
		if _, ok := p.nodes[child].element.(*InputPlaceholder); ok {
			replacement := p.DeepCopy(input)
			// Splice into position of placeholder
			p.nodes[replacement].parent = id
			p.nodes[replacement].hasParent = true
			p.nodes[child].hasParent = false
			p.nodes[id].children[i] = replacement
		} else {
			p.replaceInputPlaceholders(child, input)
		}
	}
}

// HasInputPlaceholder checks whether a given subtree contains any input
// placeholder.
func (p *Tree) HasInputPlaceholder(id Id) bool {
	if _, ok := p.nodes[id].element.(*InputPlaceholder); ok {
		return true
	}
	//
	for _, child := range p.nodes[id].children {
		if p.HasInputPlaceholder(child) {
			return true
		}
	}
	//
	return false
}

// MultiplicityDescendants returns an enumerator over the children of a given
// node, where multiplicity nodes are replaced by their own children
// (recursively).  Thus, multiplicity nodes themselves are never visited.
func (p *Tree) MultiplicityDescendants(id Id) iter.Enumerator[Id] {
	it := &multiplicityIterator{p, nil}
	it.pushChildren(id)
	//
	return it
}

type multiplicityIterator struct {
	tree *Tree
	// Nodes remaining to visit, stored in reverse order.
	worklist []Id
}

func (p *multiplicityIterator) pushChildren(id Id) {
	children := p.tree.nodes[id].children
	//
	for i := len(children) - 1; i >= 0; i-- {
		p.worklist = append(p.worklist, children[i])
	}
}

// Expand the top of the worklist until it is not a multiplicity.
func (p *multiplicityIterator) settle() {
	for n := len(p.worklist); n > 0; n = len(p.worklist) {
		top := p.worklist[n-1]
		//
		if _, ok := p.tree.nodes[top].element.(*Multiplicity); !ok {
			return
		}
		//
		p.worklist = p.worklist[:n-1]
		p.pushChildren(top)
	}
}

// HasNext checks whether or not there are any items remaining to visit.
func (p *multiplicityIterator) HasNext() bool {
	p.settle()
	return len(p.worklist) > 0
}

// Next returns the next item, and advance the iterator.
func (p *multiplicityIterator) Next() Id {
	p.settle()
	//
	n := len(p.worklist)
	next := p.worklist[n-1]
	p.worklist = p.worklist[:n-1]
	//
	return next
}
