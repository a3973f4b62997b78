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
	"bytes"
	"testing"

	"github.com/microcad-lang/go-microcad/pkg/diag"
	"github.com/microcad-lang/go-microcad/pkg/eval"
	"github.com/microcad-lang/go-microcad/pkg/model"
	"github.com/microcad-lang/go-microcad/pkg/resolve"
	"github.com/microcad-lang/go-microcad/pkg/symbol"
	"github.com/microcad-lang/go-microcad/pkg/syntax"
	"github.com/microcad-lang/go-microcad/pkg/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Print_01(t *testing.T) {
	out, handler, _ := run(t,
		exprStmt(call("std::print", &syntax.StringLiteral{Value: "hello"})),
		exprStmt(call("std::print", &syntax.IntegerLiteral{Value: 42})))
	//
	assert.Equal(t, "hello\n42\n", out)
	assert.Equal(t, uint(0), handler.ErrorCount())
}

func Test_Print_02(t *testing.T) {
	_, handler, _ := run(t,
		exprStmt(call("std::warning", &syntax.StringLiteral{Value: "careful"})),
		exprStmt(call("std::error", &syntax.StringLiteral{Value: "broken"})))
	//
	require.Len(t, handler.Diagnostics(), 2)
	assert.Equal(t, diag.Warning, handler.Diagnostics()[0].Level)
	assert.Equal(t, "broken", handler.Diagnostics()[1].Message)
}

func Test_Assert_01(t *testing.T) {
	_, handler, _ := run(t,
		exprStmt(call("std::debug::assert", &syntax.BoolLiteral{Value: true})),
		exprStmt(call("std::debug::assert", &syntax.BoolLiteral{Value: false})),
		exprStmt(call("std::debug::assert", &syntax.BoolLiteral{Value: false}, &syntax.StringLiteral{Value: "oops"})))
	//
	require.Len(t, handler.Diagnostics(), 2)
	assert.Equal(t, "assertion failed", handler.Diagnostics()[0].Message)
	assert.Equal(t, "assertion failed: oops", handler.Diagnostics()[1].Message)
}

func Test_Assert_02(t *testing.T) {
	_, handler, _ := run(t,
		exprStmt(call("std::debug::assert_eq", &syntax.IntegerLiteral{Value: 2},
			&syntax.NumberLiteral{Value: 2})),
		exprStmt(call("std::debug::assert_eq", &syntax.IntegerLiteral{Value: 2},
			&syntax.IntegerLiteral{Value: 3})))
	//
	require.Len(t, handler.Diagnostics(), 1)
	assert.Equal(t, "assertion failed: 2 != 3", handler.Diagnostics()[0].Message)
}

func Test_Assert_03(t *testing.T) {
	// Target mode builtins see names, not values
	_, handler, _ := run(t,
		exprStmt(call("std::debug::assert_valid", name("std::math::sqrt"))),
		exprStmt(call("std::debug::assert_invalid", name("nothing::here"))),
		exprStmt(call("std::debug::assert_valid", name("nothing::here"))))
	//
	require.Len(t, handler.Diagnostics(), 1)
	assert.Equal(t, "assertion failed: nothing::here is not a valid symbol", handler.Diagnostics()[0].Message)
}

func Test_Math_01(t *testing.T) {
	_, handler, r := run(t,
		assign("a", call("std::math::sqrt", &syntax.IntegerLiteral{Value: 16})),
		assign("b", call("std::math::abs", &syntax.IntegerLiteral{Value: -3})),
		assign("c", call("std::math::max", &syntax.IntegerLiteral{Value: 1}, &syntax.IntegerLiteral{Value: 7},
			&syntax.IntegerLiteral{Value: 3})),
		assign("d", call("std::math::cos", name("std::math::PI"))),
		assign("e", call("std::math::sqrt", &syntax.NumberLiteral{Value: 1, Unit: "mm"})))
	//
	assert.Equal(t, value.NewScalar(4), r("a"))
	assert.Equal(t, value.Integer(3), r("b"))
	assert.Equal(t, value.Integer(7), r("c"))
	assert.InDelta(t, -1, r("d").(value.Quantity).Value, 1e-9)
	//
	require.Len(t, handler.Diagnostics(), 1)
	assert.Equal(t, "sqrt cannot be applied to Length", handler.Diagnostics()[0].Message)
}

func Test_Math_02(t *testing.T) {
	// Array arguments map element-wise
	_, _, r := run(t,
		assign("a", call("std::math::floor", &syntax.ArrayExpr{Items: []syntax.Expression{
			&syntax.NumberLiteral{Value: 1.5}, &syntax.NumberLiteral{Value: 2.5}}})))
	//
	assert.Equal(t, "[1, 2]", r("a").String())
}

// ============================================================================
// Helpers
// ============================================================================

func run(t *testing.T, body ...syntax.Statement) (string, *diag.Handler, func(string) value.Value) {
	main := &syntax.SourceFile{Name: "main", Statements: body}
	//
	table, id, errs := resolve.Resolve(main, nil, Std())
	require.Empty(t, errs)
	//
	var (
		out     bytes.Buffer
		handler = diag.NewHandler(0, false)
		ctx     = eval.NewContext(table, model.NewTree(), handler)
	)
	//
	ctx.SetOutput(&out)
	ctx.EvalSource(id)
	//
	lookup := func(n string) value.Value {
		child, ok := table.Child(id, n)
		require.True(t, ok)
		//
		return table.Def(child).(*symbol.Assignment).Value
	}
	//
	return out.String(), handler, lookup
}

func name(n string) syntax.Expression {
	return &syntax.NameExpr{Name: syntax.ParseQualifiedName(n)}
}

func call(n string, args ...syntax.Expression) syntax.Expression {
	var arguments []syntax.Argument
	//
	for _, arg := range args {
		arguments = append(arguments, syntax.Argument{Value: arg})
	}
	//
	return &syntax.CallExpr{Name: syntax.ParseQualifiedName(n), Args: arguments}
}

func assign(n string, e syntax.Expression) syntax.Statement {
	return &syntax.AssignmentStatement{Name: syntax.NewIdentifier(n), Value: e}
}

func exprStmt(e syntax.Expression) syntax.Statement {
	return &syntax.ExpressionStatement{Expr: e}
}
