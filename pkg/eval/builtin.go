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
	"github.com/microcad-lang/go-microcad/pkg/geo"
	"github.com/microcad-lang/go-microcad/pkg/model"
	"github.com/microcad-lang/go-microcad/pkg/symbol"
	"github.com/microcad-lang/go-microcad/pkg/util/source"
	"github.com/microcad-lang/go-microcad/pkg/value"
)

// Functor is the native implementation of a builtin symbol.
type Functor interface {
	// Call this builtin with a given set of arguments.  Any error returned is
	// reported at the call site, and the call gives None.
	Call(ctx *Context, args value.ArgumentValueList, ref source.Ref) (value.Value, error)
}

// FunctorFunc adapts an ordinary function into a functor.
type FunctorFunc func(ctx *Context, args value.ArgumentValueList, ref source.Ref) (value.Value, error)

// Call implementation for the Functor interface.
func (f FunctorFunc) Call(ctx *Context, args value.ArgumentValueList, ref source.Ref) (value.Value, error) {
	return f(ctx, args, ref)
}

// NewBuiltin constructs a builtin symbol definition for a given functor.
func NewBuiltin(name string, kind symbol.BuiltinKind, fn Functor) *symbol.Builtin {
	return &symbol.Builtin{Name: name, BuiltinKind: kind, Impl: fn}
}

// NewTargetBuiltin constructs a builtin function which receives plain names as
// unevaluated targets.
func NewTargetBuiltin(name string, fn Functor) *symbol.Builtin {
	return &symbol.Builtin{Name: name, BuiltinKind: symbol.BuiltinFunction, TargetMode: true, Impl: fn}
}

// Creator describes the builtin currently being called with a given set of
// bound parameters.
func (p *Context) Creator(params value.Tuple) model.Creator {
	frame, ok := p.CurrentCall()
	if !ok {
		return model.Creator{Arguments: params}
	}
	//
	return model.Creator{Symbol: frame.Symbol, Name: p.table.FullName(frame.Symbol).String(), Arguments: params}
}

// WorkpieceBuilder constructs the native part of a builtin workpiece from its
// bound parameters.  Transforms additionally return their matrix.
type WorkpieceBuilder func(params value.Tuple) (geo.Renderable, value.Matrix, error)

// BuildWorkpieces matches the arguments of a geometry builtin against its
// parameters and constructs one builtin workpiece per binding.  Operations and
// transforms receive an input placeholder as their only child, which is
// replaced by their input when they are applied as a method.
func (p *Context) BuildWorkpieces(kind symbol.BuiltinKind, params value.ParameterValueList,
	args value.ArgumentValueList, ref source.Ref, build WorkpieceBuilder) (value.Value, error) {
	//
	tuples, err := Match(params, args, ref)
	if err != nil {
		return value.None{}, err
	}
	//
	nodes := make([]model.Id, len(tuples))
	//
	for i, tuple := range tuples {
		renderable, matrix, err := build(tuple)
		if err != nil {
			return value.None{}, err
		}
		//
		wp := &model.BuiltinWorkpiece{Type: kind, Creator: p.Creator(tuple), Renderable: renderable,
			Transform: matrix}
		nodes[i] = p.tree.Add(wp, ref)
		//
		if kind.IsMethod() {
			p.tree.AppendChild(nodes[i], p.tree.Add(&model.InputPlaceholder{}, ref))
		}
	}
	//
	return value.Model{Id: p.multiplicity(nodes, ref)}, nil
}
