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
	"fmt"
	"strings"

	"github.com/microcad-lang/go-microcad/pkg/util/source"
)

// ErrorKind identifies the different kinds of resolve error.
type ErrorKind uint8

const (
	// SymbolNotFound indicates a name could not be resolved.
	SymbolNotFound ErrorKind = iota
	// SymbolAlreadyDefined indicates two declarations share a name within the
	// same parent.
	SymbolAlreadyDefined
	// AmbiguousSymbol indicates a name resolves to two distinct symbols.
	AmbiguousSymbol
	// SymbolIsPrivate indicates a name was resolved to a private symbol from
	// outside its defining scope.
	SymbolIsPrivate
	// WrongTarget indicates a name was resolved, but to a symbol of the wrong
	// kind (e.g. a module where a function was expected).
	WrongTarget
	// StatementNotSupported indicates a statement was found in an illegal
	// position (e.g. a return statement outside of a function).
	StatementNotSupported
	// SourceFileNotFound indicates an external module has no corresponding
	// source file.
	SourceFileNotFound
	// InvalidSuper indicates use of "super" where there is no enclosing scope.
	InvalidSuper
	// InternalFailure indicates an invariant of the symbol table was broken.
	InternalFailure
)

func (p ErrorKind) String() string {
	switch p {
	case SymbolNotFound:
		return "symbol not found"
	case SymbolAlreadyDefined:
		return "symbol already defined"
	case AmbiguousSymbol:
		return "ambiguous symbol"
	case SymbolIsPrivate:
		return "symbol is private"
	case WrongTarget:
		return "wrong target"
	case StatementNotSupported:
		return "statement not supported"
	case SourceFileNotFound:
		return "source file not found"
	case InvalidSuper:
		return "invalid use of super"
	case InternalFailure:
		return "internal failure"
	}
	//
	return "???"
}

// ResolveError is an error arising from resolving names, either when building
// the symbol table or when looking up a name.
type ResolveError struct {
	Kind ErrorKind
	// Name being resolved (or the scope of the statement for StatementNotSupported).
	Name string
	// Additional names involved (e.g. the candidates of an ambiguous symbol,
	// or the allowed parents for an unsupported statement).
	Others []string
	// Suggested alternative for a name which was not found.
	Hint string
	// Location of the offending name or statement.
	Ref source.Ref
	// Location of the enclosing scope (StatementNotSupported only).
	Enclosing source.Ref
}

// NewResolveError constructs a new resolve error of a given kind.
func NewResolveError(kind ErrorKind, name string, ref source.Ref, others ...string) *ResolveError {
	return &ResolveError{kind, name, others, "", ref, source.NoRef()}
}

// Location implementation for the diag.Located interface.
func (p *ResolveError) Location() source.Ref {
	return p.Ref
}

// Error implementation for the error interface.
func (p *ResolveError) Error() string {
	var msg string
	//
	switch p.Kind {
	case SymbolNotFound:
		msg = fmt.Sprintf("symbol %s not found", p.Name)
	case SymbolAlreadyDefined:
		msg = fmt.Sprintf("symbol %s already defined", p.Name)
	case AmbiguousSymbol:
		msg = fmt.Sprintf("ambiguous symbol %s (could be %s)", p.Name, strings.Join(p.Others, " or "))
	case SymbolIsPrivate:
		msg = fmt.Sprintf("symbol %s is private", p.Name)
	case WrongTarget:
		msg = fmt.Sprintf("symbol %s is a %s", p.Name, strings.Join(p.Others, ", "))
	case StatementNotSupported:
		msg = fmt.Sprintf("%s not supported here", p.Name)
		if len(p.Others) > 0 {
			msg = fmt.Sprintf("%s (allowed within %s)", msg, strings.Join(p.Others, ", "))
		}
	case SourceFileNotFound:
		msg = fmt.Sprintf("source file for module %s not found", p.Name)
	case InvalidSuper:
		msg = fmt.Sprintf("cannot resolve %s without an enclosing scope", p.Name)
	default:
		msg = fmt.Sprintf("%s (%s)", p.Kind.String(), p.Name)
	}
	//
	if p.Hint != "" {
		msg = fmt.Sprintf("%s, did you mean %s?", msg, p.Hint)
	}
	//
	return msg
}

// IsResolveError checks whether a given error is a resolve error of the given
// kind.
func IsResolveError(err error, kind ErrorKind) bool {
	if e, ok := err.(*ResolveError); ok {
		return e.Kind == kind
	}
	//
	return false
}
