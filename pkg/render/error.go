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
package render

import (
	"fmt"

	"github.com/microcad-lang/go-microcad/pkg/util/source"
)

// ErrorKind identifies the different kinds of render error.
type ErrorKind uint8

const (
	// CannotMixGeometry indicates a model whose children produce both 2D and
	// 3D geometry.
	CannotMixGeometry ErrorKind = iota
	// UnresolvedInput indicates an input placeholder which was never replaced
	// by the input of its operation.
	UnresolvedInput
	// KernelError indicates the geometry kernel failed.
	KernelError
)

func (p ErrorKind) String() string {
	switch p {
	case CannotMixGeometry:
		return "cannot mix geometry"
	case UnresolvedInput:
		return "unresolved input"
	case KernelError:
		return "kernel error"
	}
	//
	return "???"
}

// Error is an error arising when rendering a model tree.
type Error struct {
	Kind    ErrorKind
	Message string
	Ref     source.Ref
}

func newError(kind ErrorKind, ref source.Ref, format string, args ...any) *Error {
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
