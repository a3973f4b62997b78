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
package bounds

import (
	"errors"
	"fmt"

	"github.com/microcad-lang/go-microcad/pkg/eval"
	"github.com/microcad-lang/go-microcad/pkg/geo"
	"github.com/microcad-lang/go-microcad/pkg/resolve"
	"github.com/microcad-lang/go-microcad/pkg/symbol"
	"github.com/microcad-lang/go-microcad/pkg/util/source"
	"github.com/microcad-lang/go-microcad/pkg/value"
)

// Geometry builtin, which constructs one builtin workpiece per binding of its
// arguments.
type geometryBuiltin struct {
	name   string
	kind   symbol.BuiltinKind
	params value.ParameterValueList
	build  eval.WorkpieceBuilder
}

var (
	length = value.QuantityOf(value.Length)
	scalar = value.QuantityOf(value.Scalar)
	angle  = value.QuantityOf(value.Angle)
)

// PRIMITIVES_2D identifies the builtins of the "std::geo2d" module.
var PRIMITIVES_2D = []geometryBuiltin{
	{"circle", symbol.BuiltinPrimitive2D, params(required("radius", length)), buildCircle},
	{"rect", symbol.BuiltinPrimitive2D, params(required("width", length), required("height", length)), buildRect},
}

// PRIMITIVES_3D identifies the builtins of the "std::geo3d" module.
var PRIMITIVES_3D = []geometryBuiltin{
	{"sphere", symbol.BuiltinPrimitive3D, params(required("radius", length)), buildSphere},
	{"cube", symbol.BuiltinPrimitive3D, params(required("size", length)), buildCube},
}

// OPERATIONS identifies the builtins of the "std::ops" module.
var OPERATIONS = []geometryBuiltin{
	{"union", symbol.BuiltinOperation, nil, buildOperation(Union)},
	{"intersect", symbol.BuiltinOperation, nil, buildOperation(Intersection)},
	{"subtract", symbol.BuiltinOperation, nil, buildOperation(Difference)},
	{"translate", symbol.BuiltinTransform,
		params(optional("x", length, value.NewLength(0)), optional("y", length, value.NewLength(0)),
			optional("z", length, value.NewLength(0))), buildTranslate},
	{"rotate", symbol.BuiltinTransform, params(required("angle", angle)), buildRotate},
	{"scale", symbol.BuiltinTransform,
		params(optional("x", scalar, value.NewScalar(1)), optional("y", scalar, value.NewScalar(1)),
			optional("z", scalar, value.NewScalar(1))), buildScale},
}

// Declare the geometry builtins of this kernel within a given module (usually
// "std").
func Declare(std *resolve.BuiltinModule) {
	declare(std.Find("geo2d"), PRIMITIVES_2D)
	declare(std.Find("geo3d"), PRIMITIVES_3D)
	declare(std.Find("ops"), OPERATIONS)
}

func declare(module *resolve.BuiltinModule, builtins []geometryBuiltin) {
	for _, b := range builtins {
		module.Builtins = append(module.Builtins, eval.NewBuiltin(b.name, b.kind, b))
	}
}

// Call implementation for the eval.Functor interface.
func (p geometryBuiltin) Call(ctx *eval.Context, args value.ArgumentValueList, ref source.Ref) (value.Value,
	error) {
	//
	return ctx.BuildWorkpieces(p.kind, p.params, args, ref, p.build)
}

// ============================================================================
// Builders
// ============================================================================

func buildCircle(params value.Tuple) (geo.Renderable, value.Matrix, error) {
	r, err := positive(params, "radius")
	return &Circle{r}, value.Matrix{}, err
}

func buildRect(params value.Tuple) (geo.Renderable, value.Matrix, error) {
	w, err1 := positive(params, "width")
	h, err2 := positive(params, "height")
	//
	return &Rect{w, h}, value.Matrix{}, errors.Join(err1, err2)
}

func buildSphere(params value.Tuple) (geo.Renderable, value.Matrix, error) {
	r, err := positive(params, "radius")
	return &Sphere{r}, value.Matrix{}, err
}

func buildCube(params value.Tuple) (geo.Renderable, value.Matrix, error) {
	s, err := positive(params, "size")
	return &Cube{s}, value.Matrix{}, err
}

func buildOperation(op BooleanOp) eval.WorkpieceBuilder {
	return func(value.Tuple) (geo.Renderable, value.Matrix, error) {
		return &Operation{op}, value.Matrix{}, nil
	}
}

func buildTranslate(params value.Tuple) (geo.Renderable, value.Matrix, error) {
	return &Transform{}, Translation(number(params, "x"), number(params, "y"), number(params, "z")), nil
}

func buildRotate(params value.Tuple) (geo.Renderable, value.Matrix, error) {
	return &Transform{}, Rotation(number(params, "angle")), nil
}

func buildScale(params value.Tuple) (geo.Renderable, value.Matrix, error) {
	return &Transform{}, Scaling(number(params, "x"), number(params, "y"), number(params, "z")), nil
}

// ============================================================================
// Helpers
// ============================================================================

func params(items ...value.ParameterValue) value.ParameterValueList {
	return items
}

func required(name string, t value.Type) value.ParameterValue {
	return value.ParameterValue{Name: name, Type: &t}
}

func optional(name string, t value.Type, def value.Value) value.ParameterValue {
	return value.ParameterValue{Name: name, Type: &t, Default: def}
}

func number(params value.Tuple, name string) float64 {
	val, _ := params.Get(name)
	f, _ := value.ToFloat(val)
	//
	return f
}

func positive(params value.Tuple, name string) (float64, error) {
	if f := number(params, name); f > 0 {
		return f, nil
	}
	//
	return 0, fmt.Errorf("%s must be positive", name)
}
