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
	"github.com/microcad-lang/go-microcad/pkg/geo"
	"github.com/microcad-lang/go-microcad/pkg/symbol"
	"github.com/microcad-lang/go-microcad/pkg/syntax"
	"github.com/microcad-lang/go-microcad/pkg/value"
)

// Element describes what a given model node actually is.  This is a closed
// union, whose variants are the types declared in this file.
type Element interface {
	// Kind returns a short human-readable description of this element.
	Kind() string
	// Sealing method
	element()
}

// Creator records the symbol and bound arguments which produced a given model
// instance.  This is used for hashing and display.
type Creator struct {
	// Symbol which was called.
	Symbol symbol.Id
	// Fully qualified name of the symbol.
	Name string
	// Arguments after matching against the parameters of the symbol.
	Arguments value.Tuple
}

func (p *Creator) String() string {
	return p.Name + p.Arguments.String()
}

// Group is a plain container for its children, such as arises from a body
// expression.
type Group struct{}

// Workpiece is a model produced by calling a user-defined sketch, part or
// operation.
type Workpiece struct {
	Type    syntax.WorkbenchKind
	Creator Creator
	// Building plan values, plus any properties set in the workbench body.
	Properties value.Tuple
}

// BuiltinWorkpiece is a model produced by calling a natively implemented
// primitive, operation or transform.
type BuiltinWorkpiece struct {
	Type    symbol.BuiltinKind
	Creator Creator
	// Connection to the geometry kernel.
	Renderable geo.Renderable
	// Local transformation (only for transforms).
	Transform value.Matrix
}

// Multiplicity holds sibling instances fanned out from a single call, due to
// array valued arguments.
type Multiplicity struct{}

// InputPlaceholder marks where the input of an operation is substituted.  It
// never survives into a rendered tree.
type InputPlaceholder struct{}

func (*Group) element()            {}
func (*Workpiece) element()        {}
func (*BuiltinWorkpiece) element() {}
func (*Multiplicity) element()     {}
func (*InputPlaceholder) element() {}

// Kind returns a short human-readable description of this element.
func (*Group) Kind() string { return "group" }

// Kind returns a short human-readable description of this element.
func (p *Workpiece) Kind() string { return p.Type.String() }

// Kind returns a short human-readable description of this element.
func (p *BuiltinWorkpiece) Kind() string { return p.Type.String() }

// Kind returns a short human-readable description of this element.
func (*Multiplicity) Kind() string { return "multiplicity" }

// Kind returns a short human-readable description of this element.
func (*InputPlaceholder) Kind() string { return "input" }

// Copy an element such that the copy can be modified independently.
func copyElement(elem Element) Element {
	switch e := elem.(type) {
	case *Group:
		return &Group{}
	case *Workpiece:
		c := *e
		c.Creator.Arguments = e.Creator.Arguments.Clone()
		c.Properties = e.Properties.Clone()
		//
		return &c
	case *BuiltinWorkpiece:
		c := *e
		c.Creator.Arguments = e.Creator.Arguments.Clone()
		//
		return &c
	case *Multiplicity:
		return &Multiplicity{}
	case *InputPlaceholder:
		return &InputPlaceholder{}
	}
	//
	panic("unknown model element")
}
