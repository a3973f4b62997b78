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
package syntax

import (
	"github.com/microcad-lang/go-microcad/pkg/util/source"
)

// SourceFile represents the root of a resolved Abstract Syntax Tree for a
// single source file.
type SourceFile struct {
	// Name of this source file (e.g. "main"), which is also the name under which
	// its symbols are registered.
	Name string
	// Statements in the order of declaration.
	Statements []Statement
	// Underlying file (if any), used for reporting diagnostics.
	File *source.File
}

// Hash returns the hash of the underlying file, or zero if there is none.
func (p *SourceFile) Hash() uint64 {
	if p.File == nil {
		return 0
	}
	//
	return p.File.Hash()
}

// Node provides common functionality across all elements of the Abstract
// Syntax Tree.  Specifically, every node can report where in the original
// source file it was declared.
type Node interface {
	// Src returns the location of this node in its source file.
	Src() source.Ref
}

// Statement represents a single statement within a statement list, such as an
// assignment or a workbench definition.
type Statement interface {
	Node
	// Scope returns the scope tag of this statement, which determines where the
	// statement is legal.
	Scope() Scope
}

// Definition is a statement which introduces a named symbol.
type Definition interface {
	Statement
	// DefName returns the identifier being defined.
	DefName() Identifier
	// DefVisibility returns the declared visibility.
	DefVisibility() Visibility
}

// WorkbenchKind distinguishes the different kinds of workbench.
type WorkbenchKind uint8

const (
	// Sketch is a workbench which produces 2D geometry.
	Sketch WorkbenchKind = iota
	// Part is a workbench which produces 3D geometry.
	Part
	// Operation is a workbench whose output transforms or combines its input.
	Operation
)

func (p WorkbenchKind) String() string {
	switch p {
	case Sketch:
		return "sketch"
	case Part:
		return "part"
	case Operation:
		return "op"
	}
	//
	return "???"
}

// ============================================================================
// Definitions
// ============================================================================

// ModuleDefinition declares a (possibly external) module.  An external module
// (e.g. "mod geo;") has no body of its own, and is instead provided by a
// separate source file of the same name.
type ModuleDefinition struct {
	Visibility Visibility
	Name       Identifier
	Body       []Statement
	External   bool
	Ref        source.Ref
}

var _ Definition = &ModuleDefinition{}

// Src returns the location of this node in its source file.
func (p *ModuleDefinition) Src() source.Ref { return p.Ref }

// Scope returns the scope tag of this statement.
func (p *ModuleDefinition) Scope() Scope { return NewScope(ScopeModule) }

// DefName returns the identifier being defined.
func (p *ModuleDefinition) DefName() Identifier { return p.Name }

// DefVisibility returns the declared visibility.
func (p *ModuleDefinition) DefVisibility() Visibility { return p.Visibility }

// WorkbenchDefinition declares a sketch, part or operation.  The parameter
// list of the workbench itself is referred to as its "building plan".
// Initialisers are alternative parameter lists which compute the building plan.
type WorkbenchDefinition struct {
	Visibility Visibility
	Kind       WorkbenchKind
	Name       Identifier
	Plan       ParameterList
	Body       []Statement
	Ref        source.Ref
}

var _ Definition = &WorkbenchDefinition{}

// Src returns the location of this node in its source file.
func (p *WorkbenchDefinition) Src() source.Ref { return p.Ref }

// Scope returns the scope tag of this statement.
func (p *WorkbenchDefinition) Scope() Scope { return NewScope(ScopeWorkbench) }

// DefName returns the identifier being defined.
func (p *WorkbenchDefinition) DefName() Identifier { return p.Name }

// DefVisibility returns the declared visibility.
func (p *WorkbenchDefinition) DefVisibility() Visibility { return p.Visibility }

// Inits returns the initialisers declared in the body of this workbench, in
// order of declaration.
func (p *WorkbenchDefinition) Inits() []*InitDefinition {
	var inits []*InitDefinition
	//
	for _, stmt := range p.Body {
		if init, ok := stmt.(*InitDefinition); ok {
			inits = append(inits, init)
		}
	}
	//
	return inits
}

// InitDefinition declares an initialiser within a workbench.
type InitDefinition struct {
	Params ParameterList
	Body   []Statement
	Ref    source.Ref
}

// Src returns the location of this node in its source file.
func (p *InitDefinition) Src() source.Ref { return p.Ref }

// Scope returns the scope tag of this statement.
func (p *InitDefinition) Scope() Scope { return NewScope(ScopeInit) }

// FunctionDefinition declares a function.
type FunctionDefinition struct {
	Visibility Visibility
	Name       Identifier
	Params     ParameterList
	Return     *TypeAnnotation
	Body       []Statement
	Ref        source.Ref
}

var _ Definition = &FunctionDefinition{}

// Src returns the location of this node in its source file.
func (p *FunctionDefinition) Src() source.Ref { return p.Ref }

// Scope returns the scope tag of this statement.
func (p *FunctionDefinition) Scope() Scope { return NewScope(ScopeFunction) }

// DefName returns the identifier being defined.
func (p *FunctionDefinition) DefName() Identifier { return p.Name }

// DefVisibility returns the declared visibility.
func (p *FunctionDefinition) DefVisibility() Visibility { return p.Visibility }

// ============================================================================
// Use
// ============================================================================

// UseDeclaration is a single item of a use statement.  This either imports a
// single symbol (possibly under a different name), or all symbols of a module.
type UseDeclaration struct {
	Name QualifiedName
	// Alternative name (e.g. "use a::b as c;").
	Alias *Identifier
	// Import everything (e.g. "use a::*;").
	All bool
	Ref source.Ref
}

// AliasName returns the name under which this declaration is visible.
func (p *UseDeclaration) AliasName() string {
	if p.Alias != nil {
		return p.Alias.Name
	}
	//
	return p.Name.Tail().Name
}

// UseStatement imports one or more symbols into the enclosing scope.
type UseStatement struct {
	Visibility Visibility
	Decls      []UseDeclaration
	Ref        source.Ref
}

// Src returns the location of this node in its source file.
func (p *UseStatement) Src() source.Ref { return p.Ref }

// Scope returns the scope tag of this statement.
func (p *UseStatement) Scope() Scope { return UseScope(p.Visibility) }

// ============================================================================
// Other statements
// ============================================================================

// ReturnStatement returns a value from the enclosing function.
type ReturnStatement struct {
	Value Expression
	Ref   source.Ref
}

// Src returns the location of this node in its source file.
func (p *ReturnStatement) Src() source.Ref { return p.Ref }

// Scope returns the scope tag of this statement.
func (p *ReturnStatement) Scope() Scope { return NewScope(ScopeReturn) }

// IfStatement conditionally evaluates one of two statement lists.  An
// "else if" is represented by an else branch holding a single if statement.
type IfStatement struct {
	Cond Expression
	Then []Statement
	Else []Statement
	Ref  source.Ref
}

// Src returns the location of this node in its source file.
func (p *IfStatement) Src() source.Ref { return p.Ref }

// Scope returns the scope tag of this statement.
func (p *IfStatement) Scope() Scope { return NewScope(ScopeIf) }

// AssignmentStatement assigns the value of an expression to a name.
type AssignmentStatement struct {
	Attributes []Attribute
	Visibility Visibility
	Qualifier  Qualifier
	Name       Identifier
	Type       *TypeAnnotation
	Value      Expression
	Ref        source.Ref
}

var _ Definition = &AssignmentStatement{}

// Src returns the location of this node in its source file.
func (p *AssignmentStatement) Src() source.Ref { return p.Ref }

// Scope returns the scope tag of this statement.
func (p *AssignmentStatement) Scope() Scope { return AssignmentScope(p.Visibility, p.Qualifier) }

// DefName returns the identifier being defined.
func (p *AssignmentStatement) DefName() Identifier { return p.Name }

// DefVisibility returns the declared visibility.
func (p *AssignmentStatement) DefVisibility() Visibility { return p.Visibility }

// IsConstant checks whether this assignment defines a constant symbol (rather
// than a local value).
func (p *AssignmentStatement) IsConstant() bool {
	return p.Qualifier == Const || (p.Visibility == Public && p.Qualifier == Value)
}

// ExpressionStatement evaluates an expression.  Any models produced by the
// expression are added to the enclosing model.
type ExpressionStatement struct {
	Attributes []Attribute
	Expr       Expression
	Ref        source.Ref
}

// Src returns the location of this node in its source file.
func (p *ExpressionStatement) Src() source.Ref { return p.Ref }

// Scope returns the scope tag of this statement.
func (p *ExpressionStatement) Scope() Scope { return NewScope(ScopeExpressionStatement) }
