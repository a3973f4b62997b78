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

import "github.com/microcad-lang/go-microcad/pkg/syntax"

// Target restricts name resolution to a given semantic category of symbol.
type Target uint8

const (
	// AnyTarget matches every symbol.
	AnyTarget Target = iota
	// AnyButMethod matches every symbol except those which only make sense
	// when applied to an input model.
	AnyButMethod
	// MethodTarget matches operations, and builtin operations and transforms.
	MethodTarget
	// FunctionTarget matches anything which can be called.
	FunctionTarget
	// ModuleTarget matches modules and source files.
	ModuleTarget
	// ValueTarget matches anything which holds a value.
	ValueTarget
	// LinkTarget matches anything which a use statement can import.
	LinkTarget
)

func (p Target) String() string {
	switch p {
	case AnyTarget:
		return "any"
	case AnyButMethod:
		return "any but method"
	case MethodTarget:
		return "method"
	case FunctionTarget:
		return "function"
	case ModuleTarget:
		return "module"
	case ValueTarget:
		return "value"
	case LinkTarget:
		return "link"
	}
	//
	return "???"
}

// Matches checks whether a given definition falls within this target.
func (p Target) Matches(def Def) bool {
	switch p {
	case AnyTarget:
		return true
	case AnyButMethod:
		return !isMethod(def)
	case MethodTarget:
		return isMethod(def)
	case FunctionTarget:
		switch def.(type) {
		case *Function, *Workbench, *Builtin:
			return true
		}
	case ModuleTarget:
		switch def.(type) {
		case *Module, *SourceFile:
			return true
		}
	case ValueTarget:
		switch def.(type) {
		case *Constant, *Assignment, *Argument:
			return true
		}
	case LinkTarget:
		switch def.(type) {
		case *Module, *SourceFile, *Workbench, *Function, *Builtin, *Constant:
			return true
		}
	}
	//
	return false
}

func isMethod(def Def) bool {
	switch d := def.(type) {
	case *Workbench:
		return d.Decl.Kind == syntax.Operation
	case *Builtin:
		return d.BuiltinKind.IsMethod()
	}
	//
	return false
}
