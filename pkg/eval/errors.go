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
	"fmt"

	"github.com/microcad-lang/go-microcad/pkg/util/source"
)

// ErrorKind identifies the different kinds of evaluation error.
type ErrorKind uint8

const (
	// TypeMismatch indicates a value of one type was found where another was
	// expected.
	TypeMismatch ErrorKind = iota
	// ArgumentCountMismatch indicates more positional arguments were given than
	// there are parameters to bind them to.
	ArgumentCountMismatch
	// MissingParameter indicates a parameter without a default received no
	// argument.
	MissingParameter
	// DuplicatedArgument indicates a parameter was bound more than once.
	DuplicatedArgument
	// UnknownParameter indicates a named argument matches no parameter.
	UnknownParameter
	// SymbolCannotBeCalled indicates a call to something which is not callable.
	SymbolCannotBeCalled
	// AssertionFailed indicates a failed assertion.
	AssertionFailed
	// ValueAlreadyDefined indicates a local value was assigned twice.
	ValueAlreadyDefined
	// UnknownMethod indicates a method call on a value which does not support
	// it.
	UnknownMethod
	// UnknownField indicates a field access which cannot be resolved.
	UnknownField
	// IndexOutOfBounds indicates an array index beyond its end.
	IndexOutOfBounds
	// BuiltinError indicates a builtin reported an error.
	BuiltinError
	// BuildingPlanIncomplete indicates an initialiser did not set every
	// parameter of the building plan.
	BuildingPlanIncomplete
	// NoMatchingInitializer indicates neither the building plan nor any
	// initialiser of a workbench matched the given arguments.
	NoMatchingInitializer
	// CyclicConstant indicates a constant whose value depends upon itself.
	CyclicConstant
	// InvalidOperation indicates an operator or unit could not be applied.
	InvalidOperation
	// InvalidAttribute indicates a malformed attribute.
	InvalidAttribute
	// UnknownMarker indicates a marker other than "@input".
	UnknownMarker
	// RecursionLimit indicates calls were nested too deeply.
	RecursionLimit
	// UndefinedValue indicates a value was referenced before being assigned.
	UndefinedValue
)

var errorKindNames = [...]string{
	"type mismatch", "argument count mismatch", "missing parameter", "duplicated argument", "unknown parameter",
	"symbol cannot be called", "assertion failed", "value already defined", "unknown method", "unknown field",
	"index out of bounds", "builtin error", "building plan incomplete", "no matching initializer",
	"cyclic constant", "invalid operation", "invalid attribute", "unknown marker", "recursion limit",
	"undefined value",
}

func (p ErrorKind) String() string {
	if int(p) < len(errorKindNames) {
		return errorKindNames[p]
	}
	//
	return "???"
}

// Error is an error arising during evaluation.  Evaluation errors are reported
// as diagnostics and never abort evaluation.
type Error struct {
	Kind    ErrorKind
	Message string
	Ref     source.Ref
}

// NewError constructs a new evaluation error with a formatted message.
func NewError(kind ErrorKind, ref source.Ref, format string, args ...any) *Error {
	return &Error{kind, fmt.Sprintf(format, args...), ref}
}

// Error implementation for the error interface.
func (p *Error) Error() string {
	return p.Message
}

// Location implementation for the diag.Located interface.
func (p *Error) Location() source.Ref {
	return p.Ref
}

// IsError checks whether a given error is an evaluation error of the given
// kind.
func IsError(err error, kind ErrorKind) bool {
	if e, ok := err.(*Error); ok {
		return e.Kind == kind
	}
	//
	return false
}
