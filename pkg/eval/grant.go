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
	"slices"

	"github.com/microcad-lang/go-microcad/pkg/symbol"
	"github.com/microcad-lang/go-microcad/pkg/syntax"
	"github.com/microcad-lang/go-microcad/pkg/util/source"
)

// A syntactic scope which is currently open, along with where it was opened.
type openScope struct {
	kind syntax.ScopeKind
	ref  source.Ref
}

func (p *Context) enter(kind syntax.ScopeKind, ref source.Ref) {
	p.scopes = append(p.scopes, openScope{kind, ref})
}

func (p *Context) leave() {
	p.scopes = p.scopes[:len(p.scopes)-1]
}

// Find the innermost open scope which is not transparent.  If statements and
// statement lists are transparent, meaning whatever they contain is checked
// against the scope enclosing them.
func (p *Context) enclosing() (openScope, bool) {
	for i := len(p.scopes) - 1; i >= 0; i-- {
		switch p.scopes[i].kind {
		case syntax.ScopeIf, syntax.ScopeStatementList:
			continue
		}
		//
		return p.scopes[i], true
	}
	//
	return openScope{}, false
}

// Grant checks whether a statement is permitted at the current position,
// reporting an error if not.
func (p *Context) grant(stmt syntax.Statement) bool {
	return p.grantScope(stmt.Scope(), stmt.Src())
}

func (p *Context) grantScope(scope syntax.Scope, ref source.Ref) bool {
	if err := p.checkScope(scope, ref); err != nil {
		p.Error(ref, err)
		return false
	}
	//
	return true
}

// Check whether something with the given scope can be opened within the
// current scope.  Source files can only be opened with nothing else open.
func (p *Context) checkScope(scope syntax.Scope, ref source.Ref) error {
	var (
		allowed      = scope.AllowedParents()
		parent, open = p.enclosing()
	)
	//
	switch {
	case !open && len(allowed) == 0:
		return nil
	case open && slices.Contains(allowed, parent.kind):
		return nil
	}
	//
	names := make([]string, len(allowed))
	//
	for i, kind := range allowed {
		names[i] = kind.String()
	}
	//
	err := symbol.NewResolveError(symbol.StatementNotSupported, scope.String(), ref, names...)
	//
	if open {
		err.Enclosing = parent.ref
	}
	//
	return err
}

// Check the placement of every statement within a definition whose body is
// not evaluated at the point of definition (i.e. workbenches and functions).
// Expressions are not inspected, since body expressions are checked when they
// are evaluated.
func (p *Context) checkDefinition(kind syntax.ScopeKind, ref source.Ref, body []syntax.Statement) {
	p.enter(kind, ref)
	defer p.leave()
	//
	for _, stmt := range body {
		if !p.grant(stmt) {
			continue
		}
		//
		switch s := stmt.(type) {
		case *syntax.FunctionDefinition:
			p.checkDefinition(syntax.ScopeFunction, s.Ref, s.Body)
		case *syntax.InitDefinition:
			p.checkDefinition(syntax.ScopeInit, s.Ref, s.Body)
		case *syntax.WorkbenchDefinition:
			p.checkDefinition(syntax.ScopeWorkbench, s.Ref, s.Body)
		case *syntax.IfStatement:
			p.checkDefinition(syntax.ScopeIf, s.Ref, s.Then)
			p.checkDefinition(syntax.ScopeIf, s.Ref, s.Else)
		}
	}
}
