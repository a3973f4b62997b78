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
package builtin

import (
	"fmt"
	"math"
	"slices"

	"github.com/microcad-lang/go-microcad/pkg/eval"
	"github.com/microcad-lang/go-microcad/pkg/resolve"
	"github.com/microcad-lang/go-microcad/pkg/symbol"
	"github.com/microcad-lang/go-microcad/pkg/util/source"
	"github.com/microcad-lang/go-microcad/pkg/value"
)

// Unary mathematical function over a quantity, which must have one of the
// given dimensions (or any dimension if none are given).  The result has the
// same dimension as its argument unless a result dimension is given.
type mathFunction struct {
	name string
	// Dimensions accepted
	dims []value.QuantityType
	// Dimension of result, if fixed.
	result *value.QuantityType
	fn     func(float64) float64
}

var scalar = value.Scalar

// MATH_FUNCTIONS identifies the unary functions of the "std::math" module.
var MATH_FUNCTIONS = []mathFunction{
	{"abs", nil, nil, math.Abs},
	{"floor", nil, nil, math.Floor},
	{"ceil", nil, nil, math.Ceil},
	{"round", nil, nil, math.Round},
	{"sqrt", []value.QuantityType{value.Scalar}, nil, math.Sqrt},
	{"exp", []value.QuantityType{value.Scalar}, nil, math.Exp},
	{"ln", []value.QuantityType{value.Scalar}, nil, math.Log},
	// Trigonometry takes angles (or scalars as radians)
	{"sin", []value.QuantityType{value.Angle, value.Scalar}, &scalar, math.Sin},
	{"cos", []value.QuantityType{value.Angle, value.Scalar}, &scalar, math.Cos},
	{"tan", []value.QuantityType{value.Angle, value.Scalar}, &scalar, math.Tan},
}

// MATH_CONSTANTS identifies the constants of the "std::math" module.
var MATH_CONSTANTS = []resolve.Constant{
	{Name: "PI", Value: value.NewScalar(math.Pi)},
	{Name: "TAU", Value: value.NewScalar(2 * math.Pi)},
	{Name: "E", Value: value.NewScalar(math.E)},
}

func declareMath(module *resolve.BuiltinModule) {
	for _, f := range MATH_FUNCTIONS {
		module.Builtins = append(module.Builtins, eval.NewBuiltin(f.name, symbol.BuiltinFunction, f))
	}
	//
	module.Builtins = append(module.Builtins,
		eval.NewBuiltin("min", symbol.BuiltinFunction, extremum("min", "<")),
		eval.NewBuiltin("max", symbol.BuiltinFunction, extremum("max", ">")))
	//
	module.Constants = append(module.Constants, MATH_CONSTANTS...)
}

var mathParams = value.ParameterValueList{{Name: "x"}}

// Call implementation for the eval.Functor interface.  Arrays are mapped
// element-wise.
func (p mathFunction) Call(_ *eval.Context, args value.ArgumentValueList, ref source.Ref) (value.Value, error) {
	return each(mathParams, args, ref, func(params value.Tuple) (value.Value, error) {
		x, _ := params.Get("x")
		return p.apply(x, ref)
	})
}

func (p mathFunction) apply(x value.Value, ref source.Ref) (value.Value, error) {
	switch v := x.(type) {
	case value.Integer:
		r := p.fn(float64(v))
		// Rounding an integer gives an integer
		if p.dims == nil && p.result == nil {
			return value.Integer(int64(r)), nil
		}
		//
		return value.NewScalar(r), nil
	case value.Quantity:
		if p.dims != nil && !slices.Contains(p.dims, v.Dim) {
			break
		}
		//
		dim := v.Dim
		if p.result != nil {
			dim = *p.result
		}
		//
		return value.Quantity{Value: p.fn(v.Value), Dim: dim}, nil
	case value.Array:
		items := make([]value.Value, len(v.Items))
		//
		for i, item := range v.Items {
			r, err := p.apply(item, ref)
			if err != nil {
				return value.None{}, err
			}
			//
			items[i] = r
		}
		//
		return value.NewArray(items...), nil
	}
	//
	return value.None{}, eval.NewError(eval.TypeMismatch, ref, "%s cannot be applied to %s", p.name,
		x.Type().String())
}

// Construct a function which selects the extreme of its arguments according
// to a given comparison.  This accepts either several arguments, or a single
// array.
func extremum(name string, cmp string) eval.Functor {
	return eval.FunctorFunc(func(_ *eval.Context, args value.ArgumentValueList, ref source.Ref) (value.Value,
		error) {
		//
		var items []value.Value
		//
		for _, arg := range args {
			if arr, ok := arg.Value.(value.Array); ok && len(args) == 1 {
				items = arr.Items
			} else {
				items = append(items, arg.Value)
			}
		}
		//
		if len(items) == 0 {
			return value.None{}, eval.NewError(eval.ArgumentCountMismatch, ref, "%s requires at least one value", name)
		}
		//
		best := items[0]
		//
		for _, item := range items[1:] {
			better, err := value.BinaryOp(cmp, item, best)
			if err != nil {
				return value.None{}, fmt.Errorf("%s: %w", name, err)
			} else if better == value.Bool(true) {
				best = item
			}
		}
		//
		return best, nil
	})
}
