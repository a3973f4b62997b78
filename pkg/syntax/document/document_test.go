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
package document

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/microcad-lang/go-microcad/pkg/syntax"
	"github.com/microcad-lang/go-microcad/pkg/util/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Document_01(t *testing.T) {
	file, errs := decode(`
name: main
statements:
  - function:
      name: square
      params: [{name: x, type: Scalar}]
      body:
        - return: {"*": [x, x]}
  - assign: {name: y, value: {call: {name: square, args: [3]}}}
`)
	require.Empty(t, errs)
	assert.Equal(t, "main", file.Name)
	//
	x := &syntax.NameExpr{Name: syntax.NewQualifiedName("x")}
	expected := []syntax.Statement{
		&syntax.FunctionDefinition{
			Name:   syntax.NewIdentifier("square"),
			Params: syntax.ParameterList{{Name: syntax.NewIdentifier("x"), Type: syntax.NamedType("Scalar")}},
			Body: []syntax.Statement{
				&syntax.ReturnStatement{Value: &syntax.BinaryExpr{Op: "*", Lhs: x, Rhs: x}},
			},
		},
		&syntax.AssignmentStatement{
			Name: syntax.NewIdentifier("y"),
			Value: &syntax.CallExpr{Name: syntax.NewQualifiedName("square"),
				Args: []syntax.Argument{{Value: &syntax.IntegerLiteral{Value: 3}}}},
		},
	}
	//
	assert.Empty(t, cmp.Diff(expected, file.Statements, cmpopts.IgnoreTypes(source.Ref{})))
}

func Test_Document_02(t *testing.T) {
	// Without a name, the file name is used
	file, errs := decode(`
- sketch:
    name: S
    pub: true
    plan: [{name: r, default: 2.5cm}]
    body:
      - expr: {call: {name: "std::geo2d::circle", named: {radius: r}}}
        attributes:
          - color: red
          - {name: export, args: ["out.svg"]}
`)
	require.Empty(t, errs)
	assert.Equal(t, "test", file.Name)
	//
	wb := file.Statements[0].(*syntax.WorkbenchDefinition)
	assert.Equal(t, syntax.Sketch, wb.Kind)
	assert.Equal(t, syntax.Public, wb.Visibility)
	assert.Equal(t, &syntax.NumberLiteral{Value: 2.5, Unit: "cm", Ref: wb.Plan[0].Default.Src()}, wb.Plan[0].Default)
	//
	stmt := wb.Body[0].(*syntax.ExpressionStatement)
	require.Len(t, stmt.Attributes, 2)
	assert.Equal(t, "color", stmt.Attributes[0].Name.Name)
	assert.Equal(t, "export", stmt.Attributes[1].Name.Name)
	assert.Equal(t, &syntax.StringLiteral{Value: "out.svg", Ref: stmt.Attributes[1].Args[0].Value.Src()},
		stmt.Attributes[1].Args[0].Value)
	//
	call := stmt.Expr.(*syntax.CallExpr)
	assert.Equal(t, "std::geo2d::circle", call.Name.String())
	assert.Equal(t, "radius", call.Args[0].Name.Name)
}

func Test_Document_03(t *testing.T) {
	file, errs := decode(`
- use: {pub: true, names: ["a::b as c", "d::*"]}
- use: "super::e"
`)
	require.Empty(t, errs)
	//
	use := file.Statements[0].(*syntax.UseStatement)
	assert.Equal(t, syntax.Public, use.Visibility)
	require.Len(t, use.Decls, 2)
	assert.Equal(t, "c", use.Decls[0].AliasName())
	assert.True(t, use.Decls[1].All)
	assert.Equal(t, "d", use.Decls[1].Name.String())
	//
	super := file.Statements[1].(*syntax.UseStatement).Decls[0]
	assert.Equal(t, uint(1), super.Name.Super)
	assert.Equal(t, "e", super.AliasName())
}

func Test_Document_04(t *testing.T) {
	for _, text := range []string{"Length", "[Length]", "(x: Length, y: Length)", "[(Scalar, Angle)]"} {
		ann, err := parseType(text, source.NoRef())
		require.NoError(t, err)
		assert.Equal(t, text, ann.String())
	}
	//
	_, err := parseType("[Length", source.NoRef())
	assert.EqualError(t, err, "expected \"]\", found \"end of text\"")
}

func Test_Document_05(t *testing.T) {
	for text, expected := range map[string]syntax.NumberLiteral{
		"4mm":    {Value: 4, Unit: "mm"},
		"-90°":   {Value: -90, Unit: "°"},
		"1.5 m²": {Value: 1.5, Unit: "m²"},
		"2.5":    {Value: 2.5},
	} {
		number, ok, err := parseNumber(text, source.NoRef())
		require.True(t, ok)
		require.NoError(t, err)
		assert.Equal(t, expected, *number, text)
	}
	//
	_, ok, _ := parseNumber("mm", source.NoRef())
	assert.False(t, ok)
}

func Test_Document_06(t *testing.T) {
	file, errs := decode(`
- expr:
    method:
      receiver: {body: [{expr: {marker: input}}]}
      name: "std::ops::translate"
      named: {x: 1mm}
- if: {cond: {">": [a, 1]}, then: [{return: a}], else: [{return: {neg: a}}]}
`)
	require.Empty(t, errs)
	require.Len(t, file.Statements, 2)
	//
	method := file.Statements[0].(*syntax.ExpressionStatement).Expr.(*syntax.MethodCallExpr)
	body := method.Receiver.(*syntax.BodyExpr)
	marker := body.Statements[0].(*syntax.ExpressionStatement).Expr.(*syntax.MarkerExpr)
	assert.True(t, marker.IsInput())
	//
	cond := file.Statements[1].(*syntax.IfStatement)
	assert.Equal(t, ">", cond.Cond.(*syntax.BinaryExpr).Op)
	assert.Equal(t, "-", cond.Else[0].(*syntax.ReturnStatement).Value.(*syntax.UnaryExpr).Op)
}

func Test_Document_07(t *testing.T) {
	// Errors are located, and decoding continues
	_, errs := decode(`
- assign: {name: x, value: 1, colour: red}
- loop: {}
- function: {params: []}
`)
	require.Len(t, errs, 3)
	//
	err := errs[0].(*Error)
	assert.Equal(t, "unknown field \"colour\" (expected one of name, pub, type, value)", err.Message)
	assert.Equal(t, 2, err.Ref.Line)
	assert.Equal(t, 31, err.Ref.Col)
	//
	assert.Equal(t, "unknown statement \"loop\"", errs[1].Error())
	assert.Equal(t, 3, errs[1].(*Error).Ref.Line)
	assert.Equal(t, "missing field \"name\"", errs[2].Error())
}

func Test_Document_08(t *testing.T) {
	_, errs := decode("- assign: [")
	require.Len(t, errs, 1)
}

func decode(text string) (*syntax.SourceFile, []error) {
	return Decode(source.NewSourceFile("dir/test.yaml", []byte(text)))
}
