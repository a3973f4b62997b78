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
	"slices"

	"github.com/microcad-lang/go-microcad/pkg/model"
	"github.com/microcad-lang/go-microcad/pkg/symbol"
	"github.com/microcad-lang/go-microcad/pkg/syntax"
	"github.com/microcad-lang/go-microcad/pkg/util/collection/iter"
	"github.com/microcad-lang/go-microcad/pkg/util/source"
	"github.com/microcad-lang/go-microcad/pkg/value"
)

func (p *Context) evalMethodCall(expr *syntax.MethodCallExpr) value.Value {
	recv := p.evalExpr(expr.Receiver)
	//
	switch r := recv.(type) {
	case value.None:
		return r
	case value.Array:
		if !expr.Name.IsSuper() && expr.Name.Depth() == 1 {
			if method, ok := arrayMethods[expr.Name.Head().Name]; ok {
				return p.callArrayMethod(method, r, expr)
			}
		}
	case value.Model:
		return p.callModelMethod(r, expr)
	}
	//
	p.Error(expr.Name.Ref, NewError(UnknownMethod, expr.Name.Ref, "%s has no method %s", recv.Type().String(),
		expr.Name.String()))
	//
	return value.None{}
}

// Apply an operation to a model.  The operation is called as usual, producing
// a template whose input placeholders are then replaced by the model.  When
// the model is a multiplicity, the operation is applied to each of its
// instances separately.
func (p *Context) callModelMethod(recv value.Model, expr *syntax.MethodCallExpr) value.Value {
	id, err := p.LookupSymbol(expr.Name, symbol.MethodTarget)
	if err != nil {
		p.Error(expr.Name.Ref, err)
		return value.None{}
	}
	//
	var inputs []model.Id
	//
	if _, ok := p.tree.Element(recv.Id).(*model.Multiplicity); ok {
		inputs = iter.Collect(p.tree.MultiplicityDescendants(recv.Id))
	} else {
		inputs = []model.Id{recv.Id}
	}
	//
	results := make([]model.Id, 0, len(inputs))
	//
	for _, input := range inputs {
		template, ok := p.call(id, expr.Args, expr.Ref).(value.Model)
		if !ok {
			return value.None{}
		}
		//
		results = append(results, p.ApplyOperation(template.Id, input))
	}
	//
	if len(results) == 0 {
		return value.Model{Id: p.tree.Add(&model.Multiplicity{}, expr.Ref)}
	}
	//
	return value.Model{Id: p.multiplicity(results, expr.Ref)}
}

// ApplyOperation substitutes an input model into an operation template.  A
// template without any input placeholder ignores its input.
func (p *Context) ApplyOperation(template model.Id, input model.Id) model.Id {
	if !p.tree.HasInputPlaceholder(template) {
		return template
	}
	//
	return p.tree.ReplaceInputPlaceholders(template, input)
}

// ============================================================================
// Array methods
// ============================================================================

type arrayMethod func(p *Context, arr value.Array, ref source.Ref) value.Value

var arrayMethods = map[string]arrayMethod{
	"count":    arrayCount,
	"is_empty": arrayIsEmpty,
	"all":      arrayAll,
	"any":      arrayAny,
	"equal":    arrayEqual,
	"rev":      arrayRev,
	"sorted":   arraySorted,
	"first":    arrayFirst,
	"last":     arrayLast,
}

func (p *Context) callArrayMethod(method arrayMethod, arr value.Array, expr *syntax.MethodCallExpr) value.Value {
	if len(expr.Args) != 0 {
		p.Error(expr.Ref, NewError(ArgumentCountMismatch, expr.Ref, "method %s expects no arguments",
			expr.Name.String()))
		//
		return value.None{}
	}
	//
	return method(p, arr, expr.Ref)
}

func arrayCount(_ *Context, arr value.Array, _ source.Ref) value.Value {
	return value.Integer(len(arr.Items))
}

func arrayIsEmpty(_ *Context, arr value.Array, _ source.Ref) value.Value {
	return value.Bool(len(arr.Items) == 0)
}

func arrayAll(p *Context, arr value.Array, ref source.Ref) value.Value {
	for _, item := range arr.Items {
		b, ok := value.Truthy(item)
		if !ok {
			return p.notBool(item, ref)
		} else if !b {
			return value.Bool(false)
		}
	}
	//
	return value.Bool(true)
}

func arrayAny(p *Context, arr value.Array, ref source.Ref) value.Value {
	for _, item := range arr.Items {
		b, ok := value.Truthy(item)
		if !ok {
			return p.notBool(item, ref)
		} else if b {
			return value.Bool(true)
		}
	}
	//
	return value.Bool(false)
}

func arrayEqual(_ *Context, arr value.Array, _ source.Ref) value.Value {
	for i := 1; i < len(arr.Items); i++ {
		if !value.Equal(arr.Items[0], arr.Items[i]) {
			return value.Bool(false)
		}
	}
	//
	return value.Bool(true)
}

func arrayRev(_ *Context, arr value.Array, _ source.Ref) value.Value {
	items := slices.Clone(arr.Items)
	slices.Reverse(items)
	//
	return value.Array{Elem: arr.Elem, Items: items}
}

func arraySorted(p *Context, arr value.Array, ref source.Ref) value.Value {
	var (
		items = slices.Clone(arr.Items)
		err   error
	)
	//
	slices.SortStableFunc(items, func(l, r value.Value) int {
		if lt, e := value.BinaryOp("<", l, r); e != nil {
			err = e
		} else if lt == value.Bool(true) {
			return -1
		} else if value.Equal(l, r) {
			return 0
		}
		//
		return 1
	})
	//
	if err != nil {
		p.Error(ref, NewError(InvalidOperation, ref, "%s", err.Error()))
		return value.None{}
	}
	//
	return value.Array{Elem: arr.Elem, Items: items}
}

func arrayFirst(p *Context, arr value.Array, ref source.Ref) value.Value {
	if len(arr.Items) == 0 {
		p.Error(ref, NewError(IndexOutOfBounds, ref, "first of empty array"))
		return value.None{}
	}
	//
	return arr.Items[0]
}

func arrayLast(p *Context, arr value.Array, ref source.Ref) value.Value {
	if len(arr.Items) == 0 {
		p.Error(ref, NewError(IndexOutOfBounds, ref, "last of empty array"))
		return value.None{}
	}
	//
	return arr.Items[len(arr.Items)-1]
}

func (p *Context) notBool(item value.Value, ref source.Ref) value.Value {
	p.Error(ref, NewError(TypeMismatch, ref, "expected Bool, found %s", item.Type().String()))
	return value.None{}
}
