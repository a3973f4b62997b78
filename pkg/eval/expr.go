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
package eval

import (
	"github.com/microcad-lang/go-microcad/pkg/model"
	"github.com/microcad-lang/go-microcad/pkg/syntax"
	"github.com/microcad-lang/go-microcad/pkg/util/source"
	"github.com/microcad-lang/go-microcad/pkg/value"
)

// Evaluate an expression appearing directly within a statement.
func (p *Context) evalScoped(expr syntax.Expression) value.Value {
	p.enter(syntax.ScopeExpression, expr.Src())
	defer p.leave()
	//
	return p.evalExpr(expr)
}

// Evaluate an arbitrary expression.  Errors are reported and give None.
func (p *Context) evalExpr(expr syntax.Expression) value.Value {
	switch e := expr.(type) {
	case *syntax.IntegerLiteral:
		return value.Integer(e.Value)
	case *syntax.NumberLiteral:
		return p.withUnit(value.NewScalar(e.Value), e.Unit, e.Ref)
	case *syntax.BoolLiteral:
		return value.Bool(e.Value)
	case *syntax.StringLiteral:
		return value.String(e.Value)
	case *syntax.NameExpr:
		val, err := p.lookupValue(e.Name)
		if err != nil {
			p.Error(e.Src(), err)
		}
		//
		return val
	case *syntax.ArrayExpr:
		return p.evalArray(e)
	case *syntax.RangeExpr:
		return p.evalRange(e)
	case *syntax.TupleExpr:
		var tuple value.Tuple
		//
		for _, item := range e.Items {
			name := ""
			if item.Name != nil {
				name = item.Name.Name
			}
			//
			tuple.Add(name, p.evalExpr(item.Value))
		}
		//
		return tuple
	case *syntax.BinaryExpr:
		return p.evalBinary(e)
	case *syntax.UnaryExpr:
		operand := p.evalExpr(e.Operand)
		if value.IsNone(operand) {
			return operand
		}
		//
		return p.check(value.UnaryOp(e.Op, operand))(e.Ref)
	case *syntax.CallExpr:
		return p.evalCall(e)
	case *syntax.MethodCallExpr:
		return p.evalMethodCall(e)
	case *syntax.FieldAccessExpr:
		return p.evalFieldAccess(e)
	case *syntax.IndexExpr:
		return p.evalIndex(e)
	case *syntax.BodyExpr:
		return p.evalBody(e)
	case *syntax.MarkerExpr:
		if !e.IsInput() {
			p.Error(e.Src(), NewError(UnknownMarker, e.Src(), "unknown marker @%s", e.Name.Name))
			return value.None{}
		}
		//
		return value.Model{Id: p.tree.Add(&model.InputPlaceholder{}, e.Src())}
	case *syntax.IfExpr:
		cond, ok := p.evalCondition(e.Cond)
		switch {
		case !ok:
			return value.None{}
		case cond:
			return p.evalExpr(e.Then)
		case e.Else != nil:
			return p.evalExpr(e.Else)
		}
		//
		return value.None{}
	}
	//
	return value.None{}
}

// Report the error (if any) of an operation, giving None in that case.
func (p *Context) check(val value.Value, err error) func(source.Ref) value.Value {
	return func(ref source.Ref) value.Value {
		if err != nil {
			p.Error(ref, NewError(InvalidOperation, ref, "%s", err.Error()))
			return value.None{}
		}
		//
		return val
	}
}

func (p *Context) withUnit(val value.Value, unit string, ref source.Ref) value.Value {
	return p.check(value.WithUnit(val, unit))(ref)
}

func (p *Context) evalArray(expr *syntax.ArrayExpr) value.Value {
	items := make([]value.Value, len(expr.Items))
	//
	for i, item := range expr.Items {
		items[i] = p.withUnit(p.evalExpr(item), expr.Unit, item.Src())
	}
	//
	return p.homogeneous(items, expr.Ref)
}

// Construct an array from a set of items, which must all have the same type.
// Integers are promoted to scalars when mixed with them.
func (p *Context) homogeneous(items []value.Value, ref source.Ref) value.Value {
	var elem *value.Type
	//
	for _, item := range items {
		t := item.Type()
		//
		switch {
		case value.IsNone(item):
			return value.None{}
		case elem == nil || t.Accepts(*elem):
			elem = &t
		case !elem.Accepts(t):
			p.Error(ref, NewError(TypeMismatch, ref, "array items must have the same type (found %s and %s)",
				elem.String(), t.String()))
			//
			return value.None{}
		}
	}
	//
	if elem == nil {
		return value.NewArray()
	}
	//
	for i, item := range items {
		items[i], _ = Coerce(elem, item)
	}
	//
	return value.Array{Elem: *elem, Items: items}
}

func (p *Context) evalRange(expr *syntax.RangeExpr) value.Value {
	var (
		first = p.evalExpr(expr.First)
		last  = p.evalExpr(expr.Last)
	)
	//
	f, fok := first.(value.Integer)
	l, lok := last.(value.Integer)
	//
	if !fok || !lok {
		if !value.IsNone(first) && !value.IsNone(last) {
			p.Error(expr.Ref, NewError(TypeMismatch, expr.Ref, "range bounds must be Integer (found %s and %s)",
				first.Type().String(), last.Type().String()))
		}
		//
		return value.None{}
	}
	//
	var items []value.Value
	//
	for i := f; i <= l; i++ {
		items = append(items, p.withUnit(i, expr.Unit, expr.Ref))
	}
	//
	return p.homogeneous(items, expr.Ref)
}

func (p *Context) evalBinary(expr *syntax.BinaryExpr) value.Value {
	lhs := p.evalExpr(expr.Lhs)
	// Short circuit
	if b, ok := lhs.(value.Bool); ok && ((expr.Op == "&&" && !bool(b)) || (expr.Op == "||" && bool(b))) {
		return b
	}
	//
	rhs := p.evalExpr(expr.Rhs)
	// Avoid cascading errors
	if value.IsNone(lhs) || value.IsNone(rhs) {
		return value.None{}
	}
	//
	return p.check(value.BinaryOp(expr.Op, lhs, rhs))(expr.Ref)
}

func (p *Context) evalFieldAccess(expr *syntax.FieldAccessExpr) value.Value {
	var (
		recv = p.evalExpr(expr.Receiver)
		name = expr.Field.Name
	)
	//
	switch r := recv.(type) {
	case value.None:
		return r
	case value.Tuple:
		if val, ok := r.Get(name); ok {
			return val
		}
	case value.Model:
		if val, ok := p.tree.Property(r.Id, name); ok {
			return val
		}
	}
	//
	p.Error(expr.Field.Ref, NewError(UnknownField, expr.Field.Ref, "%s has no field %s", recv.Type().String(), name))
	//
	return value.None{}
}

func (p *Context) evalIndex(expr *syntax.IndexExpr) value.Value {
	var (
		recv  = p.evalExpr(expr.Receiver)
		index = p.evalExpr(expr.Index)
	)
	//
	if value.IsNone(recv) || value.IsNone(index) {
		return value.None{}
	}
	//
	i, ok := index.(value.Integer)
	if !ok {
		p.Error(expr.Index.Src(), NewError(TypeMismatch, expr.Index.Src(), "index must be Integer, found %s",
			index.Type().String()))
		//
		return value.None{}
	}
	//
	var items []value.Value
	//
	switch r := recv.(type) {
	case value.Array:
		items = r.Items
	case value.Tuple:
		items = r.Items
	default:
		p.Error(expr.Ref, NewError(TypeMismatch, expr.Ref, "%s cannot be indexed", recv.Type().String()))
		return value.None{}
	}
	//
	if i < 0 || int(i) >= len(items) {
		p.Error(expr.Ref, NewError(IndexOutOfBounds, expr.Ref, "index %d out of bounds (length %d)", i, len(items)))
		return value.None{}
	}
	//
	return items[i]
}

// Evaluate a body, which produces a group containing every model produced by
// its statements.
func (p *Context) evalBody(expr *syntax.BodyExpr) value.Value {
	if !p.grantScope(syntax.NewScope(syntax.ScopeBody), expr.Ref) {
		return value.None{}
	}
	//
	frame := p.push(BodyFrame, p.scope(), expr.Ref)
	frame.model, frame.hasModel = p.tree.Add(&model.Group{}, expr.Ref), true
	//
	p.enter(syntax.ScopeBody, expr.Ref)
	p.evalStatements(expr.Statements)
	p.leave()
	p.pop()
	//
	return value.Model{Id: frame.model}
}
