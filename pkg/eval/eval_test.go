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
	"bytes"
	"testing"

	"github.com/microcad-lang/go-microcad/pkg/diag"
	"github.com/microcad-lang/go-microcad/pkg/model"
	"github.com/microcad-lang/go-microcad/pkg/resolve"
	"github.com/microcad-lang/go-microcad/pkg/symbol"
	"github.com/microcad-lang/go-microcad/pkg/syntax"
	"github.com/microcad-lang/go-microcad/pkg/util/source"
	"github.com/microcad-lang/go-microcad/pkg/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Statement placement
// ============================================================================

func Test_Eval_01(t *testing.T) {
	r := evaluate(t, 0, &syntax.ReturnStatement{Value: integer(1)})
	//
	require.Len(t, r.handler.Diagnostics(), 1)
	assert.Equal(t, "return statement not supported here (allowed within function)",
		r.handler.Diagnostics()[0].Message)
}

func Test_Eval_02(t *testing.T) {
	// Return within an if within a function is fine
	r := evaluate(t, 0,
		function("f", nil,
			&syntax.IfStatement{Cond: boolean(true), Then: stmts(&syntax.ReturnStatement{Value: integer(1)})},
			&syntax.ReturnStatement{Value: integer(2)}),
		assign("x", call("f")))
	//
	assert.Empty(t, r.handler.Diagnostics())
	assert.Equal(t, value.Integer(1), r.value("x"))
}

func Test_Eval_03(t *testing.T) {
	// Modules cannot be declared within functions
	r := evaluate(t, 0,
		function("f", nil, &syntax.ModuleDefinition{Name: syntax.NewIdentifier("m")}))
	//
	require.Len(t, r.handler.Diagnostics(), 1)
	assert.Contains(t, r.handler.Diagnostics()[0].Message, "module not supported here")
}

func Test_Eval_04(t *testing.T) {
	// Bodies can only appear within expressions, and may not return
	r := evaluate(t, 0,
		function("f", nil,
			&syntax.ExpressionStatement{Expr: body(&syntax.ReturnStatement{Value: integer(1)})}))
	//
	assert.Empty(t, r.handler.Diagnostics())
	//
	r = evaluate(t, 0,
		&syntax.ExpressionStatement{Expr: body(&syntax.ReturnStatement{Value: integer(1)})})
	//
	require.Len(t, r.handler.Diagnostics(), 1)
	assert.Contains(t, r.handler.Diagnostics()[0].Message, "return statement not supported here")
}

// ============================================================================
// Functions
// ============================================================================

func Test_Eval_05(t *testing.T) {
	// Defaults
	r := evaluate(t, 0,
		function("f", params(param("a", "Integer", nil), param("b", "Integer", integer(2))),
			&syntax.ReturnStatement{Value: binary("+", name("a"), name("b"))}),
		assign("x", call("f", positional(integer(1)))),
		assign("y", call("f", positional(integer(1)), named("b", integer(5)))))
	//
	assert.Empty(t, r.handler.Diagnostics())
	assert.Equal(t, value.Integer(3), r.value("x"))
	assert.Equal(t, value.Integer(6), r.value("y"))
}

func Test_Eval_06(t *testing.T) {
	// Missing parameter
	r := evaluate(t, 0,
		function("f", params(param("a", "Integer", nil)), &syntax.ReturnStatement{Value: name("a")}),
		assign("x", call("f")))
	//
	require.Len(t, r.handler.Diagnostics(), 1)
	assert.Equal(t, "missing argument for parameter a", r.handler.Diagnostics()[0].Message)
	assert.Equal(t, value.None{}, r.value("x"))
}

func Test_Eval_07(t *testing.T) {
	// Evaluation continues after errors
	r := evaluate(t, 0,
		assign("a", name("missing")),
		assign("b", binary("+", integer(1), boolean(true))),
		assign("c", integer(3)))
	//
	assert.Equal(t, uint(2), r.handler.ErrorCount())
	assert.Equal(t, value.Integer(3), r.value("c"))
}

func Test_Eval_08(t *testing.T) {
	// Error limit
	r := evaluate(t, 1,
		assign("a", name("missing1")),
		assign("b", name("missing2")),
		assign("c", integer(3)))
	//
	assert.Equal(t, uint(1), r.handler.ErrorCount())
	assert.True(t, r.handler.LimitExceeded())
	assert.Equal(t, value.Integer(3), r.value("c"))
}

func Test_Eval_09(t *testing.T) {
	// Functions are given one call per binding
	r := evaluate(t, 0,
		function("sq", params(param("a", "Integer", nil)),
			&syntax.ReturnStatement{Value: binary("*", name("a"), name("a"))}),
		assign("x", call("sq", positional(array(integer(1), integer(2), integer(3))))))
	//
	assert.Empty(t, r.handler.Diagnostics())
	assert.Equal(t, "[1, 4, 9]", r.value("x").String())
}

func Test_Eval_10(t *testing.T) {
	// Recursion
	r := evaluate(t, 0,
		function("fact", params(param("n", "Integer", nil)),
			&syntax.IfStatement{Cond: binary("<=", name("n"), integer(1)),
				Then: stmts(&syntax.ReturnStatement{Value: integer(1)})},
			&syntax.ReturnStatement{Value: binary("*", name("n"),
				call("fact", positional(binary("-", name("n"), integer(1)))))}),
		assign("x", call("fact", positional(integer(5)))))
	//
	assert.Empty(t, r.handler.Diagnostics())
	assert.Equal(t, value.Integer(120), r.value("x"))
}

func Test_Eval_11(t *testing.T) {
	// Unbounded recursion
	r := evaluate(t, 0,
		function("f", nil, &syntax.ReturnStatement{Value: call("f")}),
		assign("x", call("f")))
	//
	require.Len(t, r.handler.Diagnostics(), 1)
	assert.Contains(t, r.handler.Diagnostics()[0].Message, "recursion limit")
}

// ============================================================================
// Values
// ============================================================================

func Test_Eval_12(t *testing.T) {
	// Reassignment
	r := evaluate(t, 0, assign("x", integer(1)), assign("x", integer(2)))
	//
	require.Len(t, r.handler.Diagnostics(), 1)
	assert.Equal(t, "value x already defined", r.handler.Diagnostics()[0].Message)
	assert.Equal(t, value.Integer(1), r.value("x"))
}

func Test_Eval_13(t *testing.T) {
	// Cyclic constants
	r := evaluate(t, 0,
		constant("a", name("b")),
		constant("b", name("a")))
	//
	require.NotEmpty(t, r.handler.Diagnostics())
	assert.Contains(t, r.handler.Diagnostics()[0].Message, "depends upon itself")
}

func Test_Eval_14(t *testing.T) {
	// Constants are evaluated on first use, regardless of declaration order
	r := evaluate(t, 0,
		assign("x", binary("*", name("k"), integer(2))),
		constant("k", integer(21)))
	//
	assert.Empty(t, r.handler.Diagnostics())
	assert.Equal(t, value.Integer(42), r.value("x"))
}

func Test_Eval_15(t *testing.T) {
	// Units and type annotations
	r := evaluate(t, 0,
		&syntax.AssignmentStatement{Name: syntax.NewIdentifier("x"), Type: syntax.NamedType("Length"),
			Value: &syntax.NumberLiteral{Value: 2, Unit: "cm"}},
		&syntax.AssignmentStatement{Name: syntax.NewIdentifier("y"), Type: syntax.NamedType("Scalar"),
			Value: integer(3)},
		&syntax.AssignmentStatement{Name: syntax.NewIdentifier("z"), Type: syntax.NamedType("Angle"),
			Value: integer(3)})
	//
	assert.Equal(t, value.NewLength(20), r.value("x"))
	assert.Equal(t, value.NewScalar(3), r.value("y"))
	require.Len(t, r.handler.Diagnostics(), 1)
	assert.Equal(t, "expected Angle, found Integer", r.handler.Diagnostics()[0].Message)
}

func Test_Eval_16(t *testing.T) {
	// Array methods and indexing
	arr := array(integer(3), integer(1), integer(2))
	r := evaluate(t, 0,
		assign("a", method(arr, "sorted")),
		assign("b", method(arr, "count")),
		assign("c", &syntax.IndexExpr{Receiver: arr, Index: integer(5)}))
	//
	assert.Equal(t, "[1, 2, 3]", r.value("a").String())
	assert.Equal(t, value.Integer(3), r.value("b"))
	require.Len(t, r.handler.Diagnostics(), 1)
	assert.Contains(t, r.handler.Diagnostics()[0].Message, "out of bounds")
}

// ============================================================================
// Models
// ============================================================================

func Test_Eval_17(t *testing.T) {
	// Array argument gives multiplicity
	r := evaluate(t, 0,
		sketch("S", params(param("x", "Integer", nil))),
		exprStmt(call("S", named("x", array(integer(1), integer(2), integer(3))))))
	//
	assert.Empty(t, r.handler.Diagnostics())
	children := r.tree.Children(r.root)
	require.Len(t, children, 1)
	multi := children[0]
	assert.IsType(t, &model.Multiplicity{}, r.tree.Element(multi))
	//
	workpieces := r.tree.Children(multi)
	require.Len(t, workpieces, 3)
	//
	for i, wp := range workpieces {
		x, ok := r.tree.Property(wp, "x")
		require.True(t, ok)
		assert.Equal(t, value.Integer(i+1), x)
	}
}

func Test_Eval_18(t *testing.T) {
	// Scalar argument gives a single workpiece
	r := evaluate(t, 0,
		sketch("S", params(param("x", "Integer", nil))),
		exprStmt(call("S", named("x", integer(5)))))
	//
	children := r.tree.Children(r.root)
	require.Len(t, children, 1)
	assert.IsType(t, &model.Workpiece{}, r.tree.Element(children[0]))
}

func Test_Eval_19(t *testing.T) {
	// Cross product
	r := evaluate(t, 0,
		sketch("S", params(param("x", "Integer", nil), param("y", "Integer", nil))),
		exprStmt(call("S",
			named("x", array(integer(1), integer(2))),
			named("y", array(integer(3), integer(4), integer(5))))))
	//
	multi := r.tree.Children(r.root)[0]
	workpieces := r.tree.Children(multi)
	require.Len(t, workpieces, 6)
	//
	expected := []string{"(x = 1, y = 3)", "(x = 1, y = 4)", "(x = 1, y = 5)", "(x = 2, y = 3)", "(x = 2, y = 4)",
		"(x = 2, y = 5)"}
	//
	for i, wp := range workpieces {
		creator := r.tree.Element(wp).(*model.Workpiece).Creator
		assert.Equal(t, expected[i], creator.Arguments.String())
	}
}

func Test_Eval_20(t *testing.T) {
	// Operations substitute their input
	r := evaluate(t, 0,
		sketch("S", nil),
		&syntax.WorkbenchDefinition{Kind: syntax.Operation, Name: syntax.NewIdentifier("twice"),
			Body: stmts(exprStmt(input()), exprStmt(input()))},
		exprStmt(method(call("S"), "twice")))
	//
	assert.Empty(t, r.handler.Diagnostics())
	op := r.tree.Children(r.root)[0]
	require.Len(t, r.tree.Children(op), 2)
	//
	for _, child := range r.tree.Children(op) {
		assert.Equal(t, "sketch", r.tree.Element(child).Kind())
	}
	//
	assert.NoError(t, r.tree.Check())
}

func Test_Eval_21(t *testing.T) {
	// Initialisers
	r := evaluate(t, 0,
		&syntax.WorkbenchDefinition{Kind: syntax.Sketch, Name: syntax.NewIdentifier("R"),
			Plan: params(param("w", "Length", nil)),
			Body: stmts(&syntax.InitDefinition{Params: params(param("s", "Length", nil)),
				Body: stmts(assign("w", binary("*", name("s"), integer(2))))})},
		exprStmt(call("R", named("s", &syntax.NumberLiteral{Value: 1, Unit: "mm"}))),
		exprStmt(call("R", named("q", integer(1)))))
	//
	children := r.tree.Children(r.root)
	require.Len(t, children, 1)
	w, ok := r.tree.Property(children[0], "w")
	require.True(t, ok)
	assert.Equal(t, value.NewLength(2), w)
	//
	require.Len(t, r.handler.Diagnostics(), 1)
	assert.Contains(t, r.handler.Diagnostics()[0].Message, "no initializer")
}

func Test_Eval_22(t *testing.T) {
	// Incomplete building plan
	r := evaluate(t, 0,
		&syntax.WorkbenchDefinition{Kind: syntax.Sketch, Name: syntax.NewIdentifier("R"),
			Plan: params(param("w", "Length", nil)),
			Body: stmts(&syntax.InitDefinition{Params: params(param("s", "Length", nil))})},
		exprStmt(call("R", named("s", &syntax.NumberLiteral{Value: 1, Unit: "mm"}))))
	//
	require.Len(t, r.handler.Diagnostics(), 1)
	assert.Equal(t, "initializer does not set w", r.handler.Diagnostics()[0].Message)
}

func Test_Eval_23(t *testing.T) {
	// Bodies group their models, and a model used twice is copied
	r := evaluate(t, 0,
		sketch("S", nil),
		assign("s", call("S")),
		exprStmt(body(exprStmt(name("s")), exprStmt(name("s")))))
	//
	assert.Empty(t, r.handler.Diagnostics())
	group := r.tree.Children(r.root)[0]
	assert.IsType(t, &model.Group{}, r.tree.Element(group))
	assert.Len(t, r.tree.Children(group), 2)
	assert.NoError(t, r.tree.Check())
}

func Test_Eval_24(t *testing.T) {
	// Attributes
	r := evaluate(t, 0,
		sketch("S", nil),
		&syntax.ExpressionStatement{Expr: call("S"), Attributes: []syntax.Attribute{
			{Name: syntax.NewIdentifier("export"), Value: &syntax.StringLiteral{Value: "out.svg"}},
			{Name: syntax.NewIdentifier("color"), Value: &syntax.StringLiteral{Value: "#ff0000"}},
		}})
	//
	assert.Empty(t, r.handler.Diagnostics())
	wp := r.tree.Children(r.root)[0]
	attrs := r.tree.Attributes(wp)
	require.Len(t, attrs.Exports(), 1)
	assert.Equal(t, "svg", attrs.Exports()[0].Format)
	c, ok := attrs.Color()
	require.True(t, ok)
	assert.Equal(t, 1.0, c.R)
	assert.Equal(t, []model.Id{wp}, r.tree.Exports(r.root))
}

func Test_Eval_25(t *testing.T) {
	// Builtins
	var out bytes.Buffer
	//
	echo := NewBuiltin("echo", symbol.BuiltinFunction,
		FunctorFunc(func(ctx *Context, args value.ArgumentValueList, _ source.Ref) (value.Value, error) {
			out.WriteString(args.String())
			return value.None{}, nil
		}))
	//
	builtins := &resolve.BuiltinModule{Name: "std", Builtins: []*symbol.Builtin{echo}}
	r := evaluateWith(t, 0, []*resolve.BuiltinModule{builtins},
		exprStmt(call("std::echo", positional(integer(1)), named("b", boolean(true)))))
	//
	assert.Empty(t, r.handler.Diagnostics())
	assert.Equal(t, "(1, b = true)", out.String())
}

func Test_Eval_26(t *testing.T) {
	// Use within a body
	r := evaluate(t, 0,
		&syntax.ModuleDefinition{Name: syntax.NewIdentifier("m"), Visibility: syntax.Public,
			Body: stmts(&syntax.FunctionDefinition{Visibility: syntax.Public, Name: syntax.NewIdentifier("f"),
				Body: stmts(&syntax.ReturnStatement{Value: integer(7)})})},
		function("g", nil,
			&syntax.UseStatement{Decls: []syntax.UseDeclaration{{Name: syntax.ParseQualifiedName("m::f"),
				Alias: &syntax.Identifier{Name: "h"}}}},
			&syntax.ReturnStatement{Value: call("h")}),
		assign("x", call("g")))
	//
	assert.Empty(t, r.handler.Diagnostics())
	assert.Equal(t, value.Integer(7), r.value("x"))
}

func Test_Eval_27(t *testing.T) {
	// Constants and modules are found, but cannot be called
	r := evaluate(t, 0,
		constant("k", integer(3)),
		&syntax.ModuleDefinition{Name: syntax.NewIdentifier("m")},
		exprStmt(call("k")),
		exprStmt(call("m")))
	//
	diags := r.handler.Diagnostics()
	require.Len(t, diags, 2)
	assert.Contains(t, diags[0].Message, "constant")
	assert.Contains(t, diags[0].Message, "k cannot be called")
	assert.Contains(t, diags[1].Message, "module")
	assert.Contains(t, diags[1].Message, "m cannot be called")
}

// ============================================================================
// Matching
// ============================================================================

func Test_Match_01(t *testing.T) {
	ps := value.ParameterValueList{
		{Name: "a", Type: typeOf(value.IntegerType())},
		{Name: "b", Type: typeOf(value.QuantityOf(value.Scalar)), Default: value.NewScalar(1)},
	}
	// Named arguments are bound before positional ones
	tuples, err := Match(ps, value.ArgumentValueList{{Value: value.Integer(2)}, {Name: "a", Value: value.Integer(1)}},
		source.NoRef())
	require.NoError(t, err)
	require.Len(t, tuples, 1)
	assert.Equal(t, "(a = 1, b = 2)", tuples[0].String())
	// Integer promoted to scalar
	b, _ := tuples[0].Get("b")
	assert.Equal(t, value.NewScalar(2), b)
}

func Test_Match_02(t *testing.T) {
	ps := value.ParameterValueList{{Name: "a", Type: typeOf(value.IntegerType())}}
	//
	_, err := Match(ps, value.ArgumentValueList{{Name: "b", Value: value.Integer(1)}}, source.NoRef())
	assert.True(t, IsError(err, UnknownParameter))
	//
	_, err = Match(ps, value.ArgumentValueList{{Value: value.Integer(1)}, {Value: value.Integer(2)}}, source.NoRef())
	assert.True(t, IsError(err, ArgumentCountMismatch))
	//
	_, err = Match(ps, value.ArgumentValueList{{Name: "a", Value: value.Integer(1)}, {Name: "a", Value: value.Integer(2)}},
		source.NoRef())
	assert.True(t, IsError(err, DuplicatedArgument))
	//
	_, err = Match(ps, value.ArgumentValueList{{Value: value.Bool(true)}}, source.NoRef())
	assert.True(t, IsError(err, TypeMismatch))
	//
	_, err = Match(ps, nil, source.NoRef())
	assert.True(t, IsError(err, MissingParameter))
}

func Test_Match_03(t *testing.T) {
	// Arrays accepted whole by array parameters
	ps := value.ParameterValueList{{Name: "a", Type: typeOf(value.ArrayOf(value.IntegerType()))}}
	arr := value.NewArray(value.Integer(1), value.Integer(2))
	//
	tuples, err := Match(ps, value.ArgumentValueList{{Value: arr}}, source.NoRef())
	require.NoError(t, err)
	assert.Len(t, tuples, 1)
	// Untyped parameters never fan out
	ps = value.ParameterValueList{{Name: "a"}}
	tuples, err = Match(ps, value.ArgumentValueList{{Value: arr}}, source.NoRef())
	require.NoError(t, err)
	assert.Len(t, tuples, 1)
}

func Test_Match_04(t *testing.T) {
	// No parameters and no arguments gives exactly one binding
	tuples, err := Match(nil, nil, source.NoRef())
	require.NoError(t, err)
	require.Len(t, tuples, 1)
	assert.Equal(t, uint(0), tuples[0].Len())
}

func Test_Match_05(t *testing.T) {
	ps := value.ParameterValueList{{Name: "x"}}
	// Positional argument clashes with a named one
	_, err := Match(ps, value.ArgumentValueList{{Value: value.Integer(1)}, {Name: "x", Value: value.Integer(2)}},
		source.NoRef())
	assert.True(t, IsError(err, DuplicatedArgument))
	assert.Equal(t, "parameter x given more than once", err.Error())
	// Which is not the case when there are simply too many
	ps = value.ParameterValueList{{Name: "x"}, {Name: "y", Default: value.Integer(0)}}
	_, err = Match(ps, value.ArgumentValueList{{Value: value.Integer(1)}, {Value: value.Integer(2)},
		{Value: value.Integer(3)}}, source.NoRef())
	assert.True(t, IsError(err, ArgumentCountMismatch))
}

// ============================================================================
// Helpers
// ============================================================================

type result struct {
	table   *symbol.Table
	tree    *model.Tree
	handler *diag.Handler
	main    symbol.Id
	root    model.Id
}

// Value of a top-level assignment.
func (p *result) value(name string) value.Value {
	id, ok := p.table.Child(p.main, name)
	if !ok {
		return nil
	}
	//
	return p.table.Def(id).(*symbol.Assignment).Value
}

func evaluate(t *testing.T, limit uint, body ...syntax.Statement) *result {
	return evaluateWith(t, limit, nil, body...)
}

func evaluateWith(t *testing.T, limit uint, builtins []*resolve.BuiltinModule, body ...syntax.Statement) *result {
	main := &syntax.SourceFile{Name: "main", Statements: body}
	//
	table, id, errs := resolve.Resolve(main, nil, builtins...)
	require.Empty(t, errs)
	//
	var (
		handler = diag.NewHandler(limit, false)
		tree    = model.NewTree()
		ctx     = NewContext(table, tree, handler)
	)
	//
	ctx.SetOutput(&bytes.Buffer{})
	root := ctx.EvalSource(id)
	//
	return &result{table, tree, handler, id, root}
}

func typeOf(t value.Type) *value.Type {
	return &t
}

func stmts(body ...syntax.Statement) []syntax.Statement {
	return body
}

func integer(n int64) syntax.Expression {
	return &syntax.IntegerLiteral{Value: n}
}

func boolean(b bool) syntax.Expression {
	return &syntax.BoolLiteral{Value: b}
}

func name(n string) syntax.Expression {
	return &syntax.NameExpr{Name: syntax.ParseQualifiedName(n)}
}

func array(items ...syntax.Expression) *syntax.ArrayExpr {
	return &syntax.ArrayExpr{Items: items}
}

func binary(op string, lhs, rhs syntax.Expression) syntax.Expression {
	return &syntax.BinaryExpr{Op: op, Lhs: lhs, Rhs: rhs}
}

func call(n string, args ...syntax.Argument) syntax.Expression {
	return &syntax.CallExpr{Name: syntax.ParseQualifiedName(n), Args: args}
}

func method(recv syntax.Expression, n string, args ...syntax.Argument) syntax.Expression {
	return &syntax.MethodCallExpr{Receiver: recv, Name: syntax.ParseQualifiedName(n), Args: args}
}

func body(body ...syntax.Statement) syntax.Expression {
	return &syntax.BodyExpr{Statements: body}
}

func input() syntax.Expression {
	return &syntax.MarkerExpr{Name: syntax.NewIdentifier("input")}
}

func positional(e syntax.Expression) syntax.Argument {
	return syntax.Argument{Value: e}
}

func named(n string, e syntax.Expression) syntax.Argument {
	id := syntax.NewIdentifier(n)
	return syntax.Argument{Name: &id, Value: e}
}

func assign(n string, e syntax.Expression) syntax.Statement {
	return &syntax.AssignmentStatement{Name: syntax.NewIdentifier(n), Value: e}
}

func constant(n string, e syntax.Expression) syntax.Statement {
	return &syntax.AssignmentStatement{Name: syntax.NewIdentifier(n), Qualifier: syntax.Const, Value: e}
}

func exprStmt(e syntax.Expression) syntax.Statement {
	return &syntax.ExpressionStatement{Expr: e}
}

func param(n string, t string, def syntax.Expression) syntax.Parameter {
	var ann *syntax.TypeAnnotation
	//
	if t != "" {
		ann = syntax.NamedType(t)
	}
	//
	return syntax.Parameter{Name: syntax.NewIdentifier(n), Type: ann, Default: def}
}

func params(ps ...syntax.Parameter) syntax.ParameterList {
	return ps
}

func function(n string, ps syntax.ParameterList, body ...syntax.Statement) syntax.Statement {
	return &syntax.FunctionDefinition{Name: syntax.NewIdentifier(n), Params: ps, Body: body}
}

func sketch(n string, plan syntax.ParameterList, body ...syntax.Statement) syntax.Statement {
	return &syntax.WorkbenchDefinition{Kind: syntax.Sketch, Name: syntax.NewIdentifier(n), Plan: plan, Body: body}
}
