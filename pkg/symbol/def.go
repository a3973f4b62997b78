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
package symbol

import (
	"github.com/microcad-lang/go-microcad/pkg/syntax"
	"github.com/microcad-lang/go-microcad/pkg/value"
)

// Def describes what a given symbol actually is.  This is a closed union,
// whose variants are the types declared in this file.
type Def interface {
	// Kind returns a short human-readable description of this definition (e.g.
	// "module").
	Kind() string
	// Sealing method, which prevents definitions being declared elsewhere.
	def()
}

// Root is the definition of the (unique) root of the symbol tree.
type Root struct{}

// SourceFile is the definition of a source file, whose statements form its
// children.
type SourceFile struct {
	Source *syntax.SourceFile
}

// Module is the definition of a module.  For an external module, the source
// file providing its body is also recorded.
type Module struct {
	Decl   *syntax.ModuleDefinition
	Source *syntax.SourceFile
}

// Workbench is the definition of a sketch, part or operation.
type Workbench struct {
	Decl *syntax.WorkbenchDefinition
}

// Function is the definition of a function.
type Function struct {
	Decl *syntax.FunctionDefinition
}

// BuiltinKind distinguishes the different kinds of builtin.
type BuiltinKind uint8

const (
	// BuiltinFunction is an ordinary native function (e.g. "assert").
	BuiltinFunction BuiltinKind = iota
	// BuiltinPrimitive2D produces 2D geometry from scratch (e.g. "Circle").
	BuiltinPrimitive2D
	// BuiltinPrimitive3D produces 3D geometry from scratch (e.g. "Sphere").
	BuiltinPrimitive3D
	// BuiltinOperation combines its input geometry (e.g. "union").
	BuiltinOperation
	// BuiltinTransform transforms its input geometry (e.g. "translate").
	BuiltinTransform
)

func (p BuiltinKind) String() string {
	switch p {
	case BuiltinFunction:
		return "function"
	case BuiltinPrimitive2D:
		return "primitive2d"
	case BuiltinPrimitive3D:
		return "primitive3d"
	case BuiltinOperation:
		return "operation"
	case BuiltinTransform:
		return "transform"
	}
	//
	return "???"
}

// IsMethod checks whether builtins of this kind are applied to an input model
// (i.e. operations and transforms).
func (p BuiltinKind) IsMethod() bool {
	return p == BuiltinOperation || p == BuiltinTransform
}

// Builtin is the definition of a native symbol.  The implementation is opaque
// to the symbol table, and is interpreted by the evaluator.
type Builtin struct {
	Name string
	// Kind of builtin
	BuiltinKind BuiltinKind
	// Indicates arguments are captured as unevaluated targets, rather than
	// evaluated (e.g. "assert_valid").
	TargetMode bool
	// Native implementation
	Impl any
}

// Constant is the definition of a constant (e.g. "const x = 1;" or "pub x =
// 1;").  The value is filled in once the constant has been evaluated.
type Constant struct {
	Decl  *syntax.AssignmentStatement
	Value value.Value
	// Indicates the constant is currently being evaluated, which is used to
	// detect cyclic definitions.
	Evaluating bool
}

// Assignment is the definition of a top-level value assignment (e.g. "x = 1;"
// in a source file).  The value is filled in when the assignment is evaluated.
type Assignment struct {
	Decl  *syntax.AssignmentStatement
	Value value.Value
}

// Argument is the definition of a parameter of a workbench building plan.
// Its value is only known within a workbench call.
type Argument struct {
	Param syntax.Parameter
}

// Alias is the definition introduced by a use statement importing a single
// symbol (e.g. "use a::b as c;").
type Alias struct {
	Name   string
	Target syntax.QualifiedName
}

// UseAll is the definition introduced by a use statement importing all
// symbols of a module (e.g. "use a::*;").
type UseAll struct {
	Target syntax.QualifiedName
}

func (*Root) def()       {}
func (*SourceFile) def() {}
func (*Module) def()     {}
func (*Workbench) def()  {}
func (*Function) def()   {}
func (*Builtin) def()    {}
func (*Constant) def()   {}
func (*Assignment) def() {}
func (*Argument) def()   {}
func (*Alias) def()      {}
func (*UseAll) def()     {}

// Kind returns a short human-readable description of this definition.
func (*Root) Kind() string { return "root" }

// Kind returns a short human-readable description of this definition.
func (*SourceFile) Kind() string { return "source" }

// Kind returns a short human-readable description of this definition.
func (*Module) Kind() string { return "module" }

// Kind returns a short human-readable description of this definition.
func (p *Workbench) Kind() string { return p.Decl.Kind.String() }

// Kind returns a short human-readable description of this definition.
func (*Function) Kind() string { return "function" }

// Kind returns a short human-readable description of this definition.
func (p *Builtin) Kind() string { return "builtin " + p.BuiltinKind.String() }

// Kind returns a short human-readable description of this definition.
func (*Constant) Kind() string { return "constant" }

// Kind returns a short human-readable description of this definition.
func (*Assignment) Kind() string { return "assignment" }

// Kind returns a short human-readable description of this definition.
func (*Argument) Kind() string { return "argument" }

// Kind returns a short human-readable description of this definition.
func (*Alias) Kind() string { return "alias" }

// Kind returns a short human-readable description of this definition.
func (*UseAll) Kind() string { return "use all" }
