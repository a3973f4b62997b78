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
package syntax

import (
	"github.com/microcad-lang/go-microcad/pkg/util/source"
)

// Expression represents an arbitrary expression which evaluates to a value.
type Expression interface {
	Node
}

// ============================================================================
// Literals
// ============================================================================

// IntegerLiteral is an integer constant without any unit (e.g. "42").
type IntegerLiteral struct {
	Value int64
	Ref   source.Ref
}

// Src returns the location of this node in its source file.
func (p *IntegerLiteral) Src() source.Ref { return p.Ref }

// NumberLiteral is a floating point constant with an optional unit (e.g.
// "4.2mm" or "90°").
type NumberLiteral struct {
	Value float64
	Unit  string
	Ref   source.Ref
}

// Src returns the location of this node in its source file.
func (p *NumberLiteral) Src() source.Ref { return p.Ref }

// BoolLiteral is either "true" or "false".
type BoolLiteral struct {
	Value bool
	Ref   source.Ref
}

// Src returns the location of this node in its source file.
func (p *BoolLiteral) Src() source.Ref { return p.Ref }

// StringLiteral is a string constant.
type StringLiteral struct {
	Value string
	Ref   source.Ref
}

// Src returns the location of this node in its source file.
func (p *StringLiteral) Src() source.Ref { return p.Ref }

// ============================================================================
// Compound expressions
// ============================================================================

// NameExpr refers to a value (or symbol) by name.
type NameExpr struct {
	Name QualifiedName
}

// Src returns the location of this node in its source file.
func (p *NameExpr) Src() source.Ref { return p.Name.Ref }

// ArrayExpr is a list of items (e.g. "[1, 2, 3]mm").  An optional unit applies
// to every (unitless) item of the array.
type ArrayExpr struct {
	Items []Expression
	Unit  string
	Ref   source.Ref
}

// Src returns the location of this node in its source file.
func (p *ArrayExpr) Src() source.Ref { return p.Ref }

// RangeExpr is an inclusive integer range (e.g. "[1..4]").
type RangeExpr struct {
	First Expression
	Last  Expression
	Unit  string
	Ref   source.Ref
}

// Src returns the location of this node in its source file.
func (p *RangeExpr) Src() source.Ref { return p.Ref }

// TupleItem is a single (possibly named) item of a tuple expression.
type TupleItem struct {
	Name  *Identifier
	Value Expression
}

// TupleExpr is a list of (possibly named) items (e.g. "(x = 1mm, y = 2mm)").
type TupleExpr struct {
	Items []TupleItem
	Ref   source.Ref
}

// Src returns the location of this node in its source file.
func (p *TupleExpr) Src() source.Ref { return p.Ref }

// BinaryExpr applies a binary operator (e.g. "+", "==", "&&") to two operands.
type BinaryExpr struct {
	Op  string
	Lhs Expression
	Rhs Expression
	Ref source.Ref
}

// Src returns the location of this node in its source file.
func (p *BinaryExpr) Src() source.Ref { return p.Ref }

// UnaryExpr applies a unary operator (i.e. "-" or "!") to an operand.
type UnaryExpr struct {
	Op      string
	Operand Expression
	Ref     source.Ref
}

// Src returns the location of this node in its source file.
func (p *UnaryExpr) Src() source.Ref { return p.Ref }

// CallExpr calls a function, builtin or workbench by name.
type CallExpr struct {
	Name QualifiedName
	Args []Argument
	Ref  source.Ref
}

// Src returns the location of this node in its source file.
func (p *CallExpr) Src() source.Ref { return p.Ref }

// MethodCallExpr calls a method on a given receiver (e.g. "a.count()" or
// "circle(1mm).translate(x = 1mm)").
type MethodCallExpr struct {
	Receiver Expression
	Name     QualifiedName
	Args     []Argument
	Ref      source.Ref
}

// Src returns the location of this node in its source file.
func (p *MethodCallExpr) Src() source.Ref { return p.Ref }

// FieldAccessExpr accesses a field of a tuple, or a property of a model.
type FieldAccessExpr struct {
	Receiver Expression
	Field    Identifier
	Ref      source.Ref
}

// Src returns the location of this node in its source file.
func (p *FieldAccessExpr) Src() source.Ref { return p.Ref }

// IndexExpr accesses an item of an array.
type IndexExpr struct {
	Receiver Expression
	Index    Expression
	Ref      source.Ref
}

// Src returns the location of this node in its source file.
func (p *IndexExpr) Src() source.Ref { return p.Ref }

// BodyExpr is a body block (i.e. "{ ... }") which produces a group of models.
type BodyExpr struct {
	Statements []Statement
	Ref        source.Ref
}

// Src returns the location of this node in its source file.
func (p *BodyExpr) Src() source.Ref { return p.Ref }

// MarkerExpr is a marker such as "@input", marking where the input of an
// operation is to be placed.
type MarkerExpr struct {
	Name Identifier
}

// Src returns the location of this node in its source file.
func (p *MarkerExpr) Src() source.Ref { return p.Name.Ref }

// IsInput checks whether this is the "@input" marker.
func (p *MarkerExpr) IsInput() bool {
	return p.Name.Name == "input"
}

// IfExpr selects between two expressions (e.g. "if a > 1 { x } else { y }").
type IfExpr struct {
	Cond Expression
	Then Expression
	Else Expression
	Ref  source.Ref
}

// Src returns the location of this node in its source file.
func (p *IfExpr) Src() source.Ref { return p.Ref }
