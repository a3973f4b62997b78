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
package resolve

import (
	"testing"

	"github.com/microcad-lang/go-microcad/pkg/symbol"
	"github.com/microcad-lang/go-microcad/pkg/syntax"
	"github.com/microcad-lang/go-microcad/pkg/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Resolve_01(t *testing.T) {
	main := sourceFile("main",
		&syntax.ModuleDefinition{Visibility: syntax.Public, Name: syntax.NewIdentifier("geo"), External: true},
		function("f", syntax.Private))
	geo := sourceFile("geo", workbench("Circle", syntax.Part, syntax.Public, "radius"))
	std := sourceFile("std", function("g", syntax.Public))
	//
	table, mainId, errs := Resolve(main, []*syntax.SourceFile{geo, std})
	require.Empty(t, errs)
	// External module
	id, err := table.Lookup(syntax.ParseQualifiedName("main::geo::Circle"), symbol.FunctionTarget)
	require.NoError(t, err)
	assert.Equal(t, "main::geo::Circle", table.FullName(id).String())
	// Plan parameters are arguments
	_, err = table.LookupFrom(syntax.ParseQualifiedName("radius"), symbol.ValueTarget, id)
	require.NoError(t, err)
	// Library file
	_, err = table.Lookup(syntax.ParseQualifiedName("std::g"), symbol.FunctionTarget)
	require.NoError(t, err)
	// Consumed library files are not also top-level
	_, err = table.Lookup(syntax.ParseQualifiedName("geo::Circle"), symbol.FunctionTarget)
	assert.True(t, symbol.IsResolveError(err, symbol.SymbolNotFound))
	// Private function
	_, err = table.LookupFrom(syntax.ParseQualifiedName("f"), symbol.FunctionTarget, mainId)
	require.NoError(t, err)
}

func Test_Resolve_02(t *testing.T) {
	main := sourceFile("main",
		&syntax.ModuleDefinition{Name: syntax.NewIdentifier("missing"), External: true},
		function("f", syntax.Private))
	//
	table, _, errs := Resolve(main, nil)
	require.Len(t, errs, 1)
	assert.True(t, symbol.IsResolveError(errs[0], symbol.SourceFileNotFound))
	// Unrelated declarations still resolved
	_, err := table.Lookup(syntax.ParseQualifiedName("main::missing"), symbol.AnyTarget)
	assert.Error(t, err)
}

func Test_Resolve_03(t *testing.T) {
	main := sourceFile("main",
		function("f", syntax.Public),
		function("f", syntax.Public),
		function("g", syntax.Public))
	//
	table, _, errs := Resolve(main, nil)
	require.Len(t, errs, 1)
	assert.True(t, symbol.IsResolveError(errs[0], symbol.SymbolAlreadyDefined))
	//
	_, err := table.Lookup(syntax.ParseQualifiedName("main::g"), symbol.FunctionTarget)
	assert.NoError(t, err)
}

func Test_Resolve_04(t *testing.T) {
	main := sourceFile("main",
		&syntax.UseStatement{Decls: []syntax.UseDeclaration{
			{Name: syntax.ParseQualifiedName("std::nowhere")},
			{Name: syntax.ParseQualifiedName("std::g"), Alias: &syntax.Identifier{Name: "h"}},
		}})
	std := sourceFile("std", function("g", syntax.Public))
	//
	table, mainId, errs := Resolve(main, []*syntax.SourceFile{std})
	require.Len(t, errs, 1)
	assert.True(t, symbol.IsResolveError(errs[0], symbol.SymbolNotFound))
	// Valid alias survives
	id, err := table.LookupFrom(syntax.ParseQualifiedName("h"), symbol.FunctionTarget, mainId)
	require.NoError(t, err)
	assert.Equal(t, "std::g", table.FullName(id).String())
	// Broken alias is deleted
	_, err = table.LookupFrom(syntax.ParseQualifiedName("nowhere"), symbol.AnyTarget, mainId)
	assert.True(t, symbol.IsResolveError(err, symbol.SymbolNotFound))
}

func Test_Resolve_05(t *testing.T) {
	var (
		builtins = &BuiltinModule{Name: "__builtin"}
		fn       = &symbol.Builtin{Name: "assert"}
	)
	//
	builtins.Builtins = append(builtins.Builtins, fn)
	builtins.Find("math").Constants = []Constant{{"PI", value.NewScalar(3.14159)}}
	//
	table, _, errs := Resolve(sourceFile("main"), nil, builtins)
	require.Empty(t, errs)
	//
	id, err := table.Lookup(syntax.ParseQualifiedName("__builtin::assert"), symbol.FunctionTarget)
	require.NoError(t, err)
	assert.Same(t, fn, table.Def(id))
	//
	id, err = table.Lookup(syntax.ParseQualifiedName("__builtin::math::PI"), symbol.ValueTarget)
	require.NoError(t, err)
	assert.Equal(t, value.NewScalar(3.14159), table.Def(id).(*symbol.Constant).Value)
}

func Test_Resolve_06(t *testing.T) {
	main := sourceFile("main",
		&syntax.AssignmentStatement{Qualifier: syntax.Const, Name: syntax.NewIdentifier("a"),
			Value: &syntax.IntegerLiteral{Value: 1}},
		&syntax.AssignmentStatement{Visibility: syntax.Public, Name: syntax.NewIdentifier("b"),
			Value: &syntax.IntegerLiteral{Value: 2}},
		&syntax.AssignmentStatement{Name: syntax.NewIdentifier("c"), Value: &syntax.IntegerLiteral{Value: 3}},
		&syntax.AssignmentStatement{Name: syntax.NewIdentifier("c"), Value: &syntax.IntegerLiteral{Value: 4}})
	//
	table, mainId, errs := Resolve(main, nil)
	require.Empty(t, errs)
	//
	kinds := map[string]string{"a": "constant", "b": "constant", "c": "assignment"}
	for n, kind := range kinds {
		id, err := table.LookupFrom(syntax.ParseQualifiedName(n), symbol.ValueTarget, mainId)
		require.NoError(t, err)
		assert.Equal(t, kind, table.Def(id).Kind())
	}
	// Only public constants are visible from outside
	_, err := table.Lookup(syntax.ParseQualifiedName("main::a"), symbol.ValueTarget)
	assert.True(t, symbol.IsResolveError(err, symbol.SymbolIsPrivate))
	_, err = table.Lookup(syntax.ParseQualifiedName("main::b"), symbol.ValueTarget)
	assert.NoError(t, err)
}

// ============================================================================
// Helpers
// ============================================================================

func sourceFile(name string, stmts ...syntax.Statement) *syntax.SourceFile {
	return &syntax.SourceFile{Name: name, Statements: stmts}
}

func function(name string, vis syntax.Visibility) *syntax.FunctionDefinition {
	return &syntax.FunctionDefinition{Visibility: vis, Name: syntax.NewIdentifier(name)}
}

func workbench(name string, kind syntax.WorkbenchKind, vis syntax.Visibility,
	params ...string) *syntax.WorkbenchDefinition {
	var plan syntax.ParameterList
	//
	for _, p := range params {
		plan = append(plan, syntax.Parameter{Name: syntax.NewIdentifier(p), Type: syntax.NamedType("Length")})
	}
	//
	return &syntax.WorkbenchDefinition{Visibility: vis, Kind: kind, Name: syntax.NewIdentifier(name), Plan: plan}
}
