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

import "fmt"

// Visibility determines from where a given declaration can be accessed.
type Visibility uint8

const (
	// Private declarations are only accessible within the enclosing module.
	Private Visibility = iota
	// PrivateUse marks a (private) use statement which imports symbols into
	// the enclosing module, without re-exporting them.
	PrivateUse
	// Public declarations are accessible from anywhere.
	Public
	// Deleted declarations have been removed and are never found.
	Deleted
)

func (p Visibility) String() string {
	switch p {
	case Private:
		return "private"
	case PrivateUse:
		return "private use"
	case Public:
		return "pub"
	case Deleted:
		return "deleted"
	}
	//
	return "???"
}

// Qualifier determines what kind of assignment a given assignment statement
// makes.
type Qualifier uint8

const (
	// Value is a plain (local) value assignment (e.g. "x = 1;").
	Value Qualifier = iota
	// Const is a constant assignment (e.g. "const x = 1;").
	Const
	// Prop is a property assignment within a workbench (e.g. "prop x = 1;").
	Prop
)

func (p Qualifier) String() string {
	switch p {
	case Value:
		return "value"
	case Const:
		return "const"
	case Prop:
		return "prop"
	}
	//
	return "???"
}

// ScopeKind identifies the kind of syntactic region a statement opens or lives
// in.
type ScopeKind uint8

const (
	// ScopeSource is the top-level scope of a source file.
	ScopeSource ScopeKind = iota
	// ScopeModule is the scope of a module definition.
	ScopeModule
	// ScopeWorkbench is the scope of a workbench (sketch, part or op) body.
	ScopeWorkbench
	// ScopeFunction is the scope of a function body.
	ScopeFunction
	// ScopeInit is the scope of a workbench initialiser.
	ScopeInit
	// ScopeIf is an if statement.
	ScopeIf
	// ScopeStatementList is a list of statements.
	ScopeStatementList
	// ScopeReturn is a return statement.
	ScopeReturn
	// ScopeAssignment is an assignment statement.
	ScopeAssignment
	// ScopeBody is a body block (i.e. "{ ... }").
	ScopeBody
	// ScopeUse is a use statement.
	ScopeUse
	// ScopeExpressionStatement is an expression statement.
	ScopeExpressionStatement
	// ScopeExpression is an expression.
	ScopeExpression
)

var scopeNames = [...]string{
	"source file", "module", "workbench", "function", "init", "if statement",
	"statement list", "return statement", "assignment", "body", "use statement",
	"expression statement", "expression",
}

func (p ScopeKind) String() string {
	if int(p) < len(scopeNames) {
		return scopeNames[p]
	}
	//
	return "???"
}

// Scope is the abstract scope tag carried by every statement.  Assignments and
// use statements further carry their visibility (and qualifier) since these
// determine where they are legal.
type Scope struct {
	Kind       ScopeKind
	Visibility Visibility
	Qualifier  Qualifier
}

// NewScope constructs a scope of the given kind.
func NewScope(kind ScopeKind) Scope {
	return Scope{kind, Private, Value}
}

// AssignmentScope constructs the scope of an assignment statement.
func AssignmentScope(vis Visibility, qual Qualifier) Scope {
	return Scope{ScopeAssignment, vis, qual}
}

// UseScope constructs the scope of a use statement.
func UseScope(vis Visibility) Scope {
	return Scope{ScopeUse, vis, Value}
}

func (p Scope) String() string {
	switch p.Kind {
	case ScopeAssignment:
		if p.Visibility == Public {
			return fmt.Sprintf("pub %s assignment", p.Qualifier)
		}
		//
		return fmt.Sprintf("%s assignment", p.Qualifier)
	case ScopeUse:
		if p.Visibility == Public {
			return "pub use statement"
		}
	}
	//
	return p.Kind.String()
}

// AllowedParents returns the set of enclosing scopes within which a statement
// of this scope is permitted.  An empty set means the statement is only
// permitted at the very top (i.e. with no enclosing scope at all).
func (p Scope) AllowedParents() []ScopeKind {
	switch p.Kind {
	case ScopeSource:
		return nil
	case ScopeModule, ScopeWorkbench:
		return []ScopeKind{ScopeSource, ScopeModule}
	case ScopeFunction:
		return []ScopeKind{ScopeSource, ScopeModule, ScopeWorkbench}
	case ScopeInit:
		return []ScopeKind{ScopeWorkbench}
	case ScopeUse:
		if p.Visibility == Public {
			return []ScopeKind{ScopeSource, ScopeModule}
		}
		//
		return []ScopeKind{ScopeSource, ScopeModule, ScopeWorkbench, ScopeFunction, ScopeBody}
	case ScopeReturn:
		return []ScopeKind{ScopeFunction}
	case ScopeIf:
		return []ScopeKind{ScopeSource, ScopeWorkbench, ScopeBody, ScopeFunction, ScopeInit}
	case ScopeAssignment:
		return assignmentParents(p.Visibility, p.Qualifier)
	case ScopeBody:
		return []ScopeKind{ScopeExpression}
	case ScopeExpressionStatement:
		return []ScopeKind{ScopeSource, ScopeWorkbench, ScopeBody, ScopeFunction}
	case ScopeStatementList, ScopeExpression:
		return []ScopeKind{ScopeSource, ScopeModule, ScopeWorkbench, ScopeFunction, ScopeInit, ScopeIf,
			ScopeReturn, ScopeAssignment, ScopeBody, ScopeExpressionStatement, ScopeExpression}
	}
	// Should be unreachable
	panic(fmt.Sprintf("unknown scope kind %d", p.Kind))
}

func assignmentParents(vis Visibility, qual Qualifier) []ScopeKind {
	switch {
	case qual == Prop:
		return []ScopeKind{ScopeWorkbench, ScopeInit}
	case vis == Public || qual == Const:
		return []ScopeKind{ScopeSource, ScopeModule, ScopeWorkbench}
	default:
		return []ScopeKind{ScopeSource, ScopeWorkbench, ScopeInit, ScopeFunction, ScopeBody}
	}
}
