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
	"strings"

	"github.com/microcad-lang/go-microcad/pkg/util/source"
)

// TypeAnnotation represents a declared type, such as "Length", "[Scalar]" or
// "(x: Length, y: Length)".  Exactly one of Name, Elem or Fields is used.
type TypeAnnotation struct {
	// Name of a named type (e.g. "Length").
	Name string
	// Element type of an array type.
	Elem *TypeAnnotation
	// Fields of a tuple type.
	Fields []TupleTypeField
	Ref    source.Ref
}

// NamedType constructs a type annotation for a named type.
func NamedType(name string) *TypeAnnotation {
	return &TypeAnnotation{Name: name}
}

// ArrayType constructs a type annotation for an array type.
func ArrayType(elem *TypeAnnotation) *TypeAnnotation {
	return &TypeAnnotation{Elem: elem}
}

func (p *TypeAnnotation) String() string {
	switch {
	case p.Elem != nil:
		return "[" + p.Elem.String() + "]"
	case p.Fields != nil:
		var items []string
		//
		for _, f := range p.Fields {
			if f.Name != "" {
				items = append(items, f.Name+": "+f.Type.String())
			} else {
				items = append(items, f.Type.String())
			}
		}
		//
		return "(" + strings.Join(items, ", ") + ")"
	default:
		return p.Name
	}
}

// TupleTypeField is a single (possibly named) field of a tuple type.
type TupleTypeField struct {
	Name string
	Type *TypeAnnotation
}

// Parameter is a single parameter in a parameter list.  Either the type or the
// default value (or both) may be omitted.
type Parameter struct {
	Name    Identifier
	Type    *TypeAnnotation
	Default Expression
	Ref     source.Ref
}

// ParameterList is an ordered list of parameters.
type ParameterList []Parameter

// Argument is a single (possibly named) argument of a call.
type Argument struct {
	Name  *Identifier
	Value Expression
	Ref   source.Ref
}

// Attribute annotates a statement, such as "#[export = "a.svg"]" or
// "#[color = "red"]".  An attribute either has a value (name = value) or a list
// of arguments (name(args)), but not both.
type Attribute struct {
	Name  Identifier
	Value Expression
	Args  []Argument
	Ref   source.Ref
}
