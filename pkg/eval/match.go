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
	"github.com/microcad-lang/go-microcad/pkg/util/collection/iter"
	"github.com/microcad-lang/go-microcad/pkg/util/source"
	"github.com/microcad-lang/go-microcad/pkg/value"
)

// Match binds a list of arguments to a list of parameters, producing one tuple
// of parameter values per combination.  Named arguments are bound first, then
// positional arguments fill the remaining parameters in order, and finally
// defaults fill whatever is left.  When an argument is an array whose element
// type (rather than the array itself) fits the declared parameter type, each
// element supplies a separate binding.  The resulting tuples enumerate the
// cartesian product of all such bindings, in parameter order with the last
// parameter varying fastest.  Each tuple names every parameter.
func Match(params value.ParameterValueList, args value.ArgumentValueList, ref source.Ref) ([]value.Tuple, error) {
	bound, err := bindArguments(params, args, ref)
	if err != nil {
		return nil, err
	}
	// Determine the alternatives for each parameter
	var (
		choices = make([][]value.Value, len(params))
		sizes   = make([]uint, len(params))
	)
	//
	for i := range params {
		alts, err := alternatives(&params[i], bound[i].val, bound[i].ref)
		if err != nil {
			return nil, err
		}
		//
		choices[i] = alts
		sizes[i] = uint(len(alts))
	}
	// Enumerate all combinations
	var (
		tuples []value.Tuple
		combos = iter.EnumerateProduct(sizes...)
	)
	//
	for combos.HasNext() {
		var (
			indices = combos.Next()
			tuple   value.Tuple
		)
		//
		for i, index := range indices {
			tuple.Add(params[i].Name, choices[i][index])
		}
		//
		tuples = append(tuples, tuple)
	}
	//
	return tuples, nil
}

type binding struct {
	val value.Value
	ref source.Ref
}

// Bind each parameter to exactly one value, without considering types.
func bindArguments(params value.ParameterValueList, args value.ArgumentValueList,
	ref source.Ref) ([]binding, error) {
	//
	bound := make([]binding, len(params))
	// Named arguments first
	for _, arg := range args {
		if arg.Name == "" {
			continue
		}
		//
		index, ok := params.Index(arg.Name)
		if !ok {
			return nil, NewError(UnknownParameter, arg.Ref, "unknown parameter %s", arg.Name)
		} else if bound[index].val != nil {
			return nil, NewError(DuplicatedArgument, arg.Ref, "parameter %s given more than once", arg.Name)
		}
		//
		bound[index] = binding{arg.Value, arg.Ref}
	}
	// Positional arguments fill remaining parameters in order
	next, position := 0, 0
	//
	for _, arg := range args {
		if arg.Name != "" {
			continue
		}
		//
		for next < len(params) && bound[next].val != nil {
			next++
		}
		//
		if next == len(params) && position < len(params) {
			// Enough parameters, but some were also given by name
			return nil, NewError(DuplicatedArgument, arg.Ref, "parameter %s given more than once",
				params[position].Name)
		} else if next == len(params) {
			return nil, NewError(ArgumentCountMismatch, arg.Ref, "too many arguments (expected at most %d)",
				len(params))
		}
		//
		bound[next] = binding{arg.Value, arg.Ref}
		position++
	}
	// Defaults fill whatever is left
	for i, param := range params {
		if bound[i].val != nil {
			continue
		} else if !param.HasDefault() {
			return nil, NewError(MissingParameter, ref, "missing argument for parameter %s", param.Name)
		}
		//
		bound[i] = binding{param.Default, param.Ref}
	}
	//
	return bound, nil
}

// Determine the values a parameter can take for a given argument.  This is
// either the argument itself or, for an array argument whose elements fit the
// parameter, each of its elements.
func alternatives(param *value.ParameterValue, arg value.Value, ref source.Ref) ([]value.Value, error) {
	if val, ok := Coerce(param.Type, arg); ok {
		return []value.Value{val}, nil
	}
	//
	if arr, ok := arg.(value.Array); ok && len(arr.Items) > 0 {
		items := make([]value.Value, len(arr.Items))
		//
		for i, item := range arr.Items {
			val, ok := Coerce(param.Type, item)
			if !ok {
				return nil, mismatch(param, arg, ref)
			}
			//
			items[i] = val
		}
		//
		return items, nil
	}
	//
	return nil, mismatch(param, arg, ref)
}

func mismatch(param *value.ParameterValue, arg value.Value, ref source.Ref) error {
	return NewError(TypeMismatch, ref, "parameter %s expects %s, found %s", param.Name, param.Type.String(),
		arg.Type().String())
}

// Coerce converts a value so that it fits a declared type (e.g. turning an
// integer into a scalar), returning false if it cannot fit.  A missing type
// accepts any value unchanged.
func Coerce(t *value.Type, val value.Value) (value.Value, bool) {
	switch {
	case t == nil:
		return val, true
	case !t.Accepts(val.Type()):
		return val, false
	}
	//
	switch v := val.(type) {
	case value.Integer:
		if t.Kind == value.QuantityKind {
			return value.NewScalar(float64(v)), true
		}
	case value.Array:
		if t.Kind != value.ArrayKind {
			break
		}
		//
		items := make([]value.Value, len(v.Items))
		//
		for i, item := range v.Items {
			items[i], _ = Coerce(t.Elem, item)
		}
		//
		return value.Array{Elem: *t.Elem, Items: items}, true
	}
	//
	return val, true
}
