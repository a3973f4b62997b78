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
	"bytes"
	"math"
	"testing"

	"github.com/microcad-lang/go-microcad/pkg/diag"
	"github.com/microcad-lang/go-microcad/pkg/eval"
	"github.com/microcad-lang/go-microcad/pkg/geo"
	"github.com/microcad-lang/go-microcad/pkg/model"
	"github.com/microcad-lang/go-microcad/pkg/render"
	"github.com/microcad-lang/go-microcad/pkg/resolve"
	"github.com/microcad-lang/go-microcad/pkg/syntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Boxes
// ============================================================================

func Test_Box_01(t *testing.T) {
	a := NewBox2D(0, 0, 2, 2)
	b := NewBox2D(1, -1, 3, 1)
	//
	assert.Equal(t, NewBox2D(0, -1, 3, 2), a.Join(b))
	assert.Equal(t, NewBox2D(1, 0, 2, 1), a.Intersect(b))
	assert.True(t, a.Intersect(NewBox2D(5, 5, 6, 6)).IsEmpty())
	// Empty is the identity for joins
	assert.Equal(t, a, EmptyBox(geo.Dim2).Join(a))
}

func Test_Box_02(t *testing.T) {
	box := NewBox3D(-1, -1, -1, 1, 1, 1)
	//
	moved := box.Transform(Translation(1, 2, 3))
	assert.Equal(t, NewBox3D(0, 1, 2, 2, 3, 4), moved)
	//
	scaled := box.Transform(Scaling(2, 1, 1))
	assert.Equal(t, [3]float64{4, 2, 2}, scaled.Size())
	// A quarter turn keeps a square centred on the origin
	rotated := NewBox2D(-1, -2, 1, 2).Transform(Rotation(math.Pi / 2))
	assert.InDelta(t, 4.0, rotated.Size()[0], 1e-9)
	assert.InDelta(t, 2.0, rotated.Size()[1], 1e-9)
}

func Test_Box_03(t *testing.T) {
	inner := &geo.Collection{Dimension: geo.Dim2, Items: []geo.Geometry{
		NewBox2D(0, 0, 1, 1),
		&geo.Transformed{Matrix: Translation(5, 0, 0), Inner: NewBox2D(0, 0, 1, 1)},
	}}
	//
	box, err := Of(inner)
	require.NoError(t, err)
	assert.Equal(t, "[0, 0] .. [6, 1]", box.String())
}

func Test_Segments_01(t *testing.T) {
	assert.Equal(t, uint(7), Segments(1, geo.Resolution{Linear: 0.1}))
	assert.Equal(t, uint(3), Segments(0.05, geo.Resolution{Linear: 0.1}))
	// Finer resolutions need more segments
	assert.Greater(t, Segments(1, geo.Resolution{Linear: 0.01}), Segments(1, geo.Resolution{Linear: 0.1}))
}

// ============================================================================
// Builtins
// ============================================================================

func Test_Builtin_01(t *testing.T) {
	// Translated circles at two offsets
	circle := call("std::geo2d::circle", named("radius", mm(1)))
	translate := method(circle, "std::ops::translate", named("x", &syntax.ArrayExpr{
		Items: []syntax.Expression{mm(2), mm(4)}}))
	//
	r := evaluate(t, exprStmt(translate))
	require.Empty(t, r.handler.Diagnostics())
	//
	box := r.render(t)
	assert.InDelta(t, 2+math.Cos(6*math.Pi/7), box.Min[0], 1e-9)
	assert.InDelta(t, 5.0, box.Max[0], 1e-9)
	assert.Equal(t, geo.Dim2, box.Dim())
}

func Test_Builtin_02(t *testing.T) {
	// Union of a group
	group := &syntax.BodyExpr{Statements: []syntax.Statement{
		exprStmt(call("std::geo2d::circle", named("radius", mm(1)))),
		exprStmt(call("std::geo2d::rect", named("width", mm(4)), named("height", mm(2)))),
	}}
	//
	r := evaluate(t, exprStmt(method(group, "std::ops::union")))
	require.Empty(t, r.handler.Diagnostics())
	assert.Equal(t, "[-2, -1] .. [2, 1]", r.render(t).String())
}

func Test_Builtin_03(t *testing.T) {
	r := evaluate(t, exprStmt(call("std::geo3d::cube", named("size", mm(-1)))))
	//
	require.Len(t, r.handler.Diagnostics(), 1)
	assert.Equal(t, "size must be positive", r.handler.Diagnostics()[0].Message)
	assert.Empty(t, r.tree.Children(r.root))
}

func Test_Builtin_04(t *testing.T) {
	// Scaling a sphere refines its resolution
	sphere := call("std::geo3d::sphere", named("radius", mm(1)))
	scale := method(sphere, "std::ops::scale", named("x", &syntax.IntegerLiteral{Value: 10}))
	//
	r := evaluate(t, exprStmt(scale))
	require.Empty(t, r.handler.Diagnostics())
	//
	ctx := render.NewContext(r.tree, render.NewCache[geo.Geometry](render.DefaultWeights()))
	_, errs := ctx.Render(r.root)
	require.Empty(t, errs)
	//
	transform := r.tree.Children(r.root)[0]
	out, _ := ctx.Output(r.tree.Children(transform)[0])
	assert.InDelta(t, 0.01, out.Resolution.Linear, 1e-12)
}

func Test_Builtin_05(t *testing.T) {
	// Mixing dimensions is rejected when rendering
	group := &syntax.BodyExpr{Statements: []syntax.Statement{
		exprStmt(call("std::geo2d::circle", named("radius", mm(1)))),
		exprStmt(call("std::geo3d::cube", named("size", mm(1)))),
	}}
	//
	r := evaluate(t, exprStmt(method(group, "std::ops::union")))
	require.Empty(t, r.handler.Diagnostics())
	//
	ctx := render.NewContext(r.tree, render.NewCache[geo.Geometry](render.DefaultWeights()))
	_, errs := ctx.Render(r.root)
	require.NotEmpty(t, errs)
	assert.Equal(t, render.CannotMixGeometry, errs[0].(*render.Error).Kind)
}

// ============================================================================
// Helpers
// ============================================================================

type result struct {
	tree    *model.Tree
	handler *diag.Handler
	root    model.Id
}

func evaluate(t *testing.T, body ...syntax.Statement) *result {
	var (
		std  = &resolve.BuiltinModule{Name: "std"}
		main = &syntax.SourceFile{Name: "main", Statements: body}
	)
	//
	Declare(std)
	//
	table, id, errs := resolve.Resolve(main, nil, std)
	require.Empty(t, errs)
	//
	var (
		handler = diag.NewHandler(0, false)
		tree    = model.NewTree()
		ctx     = eval.NewContext(table, tree, handler)
	)
	//
	ctx.SetOutput(&bytes.Buffer{})
	//
	return &result{tree, handler, ctx.EvalSource(id)}
}

// Render the evaluated model, and determine its bounds.
func (p *result) render(t *testing.T) *Box {
	ctx := render.NewContext(p.tree, render.NewCache[geo.Geometry](render.DefaultWeights()))
	geometry, errs := ctx.Render(p.root)
	require.Empty(t, errs)
	//
	box, err := Of(geometry)
	require.NoError(t, err)
	//
	return box
}

func mm(v float64) syntax.Expression {
	return &syntax.NumberLiteral{Value: v, Unit: "mm"}
}

func call(n string, args ...syntax.Argument) syntax.Expression {
	return &syntax.CallExpr{Name: syntax.ParseQualifiedName(n), Args: args}
}

func method(recv syntax.Expression, n string, args ...syntax.Argument) syntax.Expression {
	return &syntax.MethodCallExpr{Receiver: recv, Name: syntax.ParseQualifiedName(n), Args: args}
}

func named(n string, e syntax.Expression) syntax.Argument {
	id := syntax.NewIdentifier(n)
	return syntax.Argument{Name: &id, Value: e}
}

func exprStmt(e syntax.Expression) syntax.Statement {
	return &syntax.ExpressionStatement{Expr: e}
}
