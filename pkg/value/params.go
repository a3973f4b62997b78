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
package value

import (
	"strings"

	"github.com/microcad-lang/go-microcad/pkg/util/source"
)

// ParameterValue is an evaluated parameter.  The type is optional (i.e. nil if
// not declared), as is the default value.
type ParameterValue struct {
	Name    string
	Type    *Type
	Default Value
	Ref     source.Ref
}

// HasDefault checks whether this parameter has a default value.
func (p *ParameterValue) HasDefault() bool {
	return p.Default != nil
}

func (p *ParameterValue) String() string {
	var builder strings.Builder
	//
	builder.WriteString(p.Name)
	//
	if p.Type != nil {
		builder.WriteString(": ")
		builder.WriteString(p.Type.String())
	}
	//
	if p.Default != nil {
		builder.WriteString(" = ")
		builder.WriteString(p.Default.String())
	}
	//
	return builder.String()
}

// ParameterValueList is an ordered list of evaluated parameters.
type ParameterValueList []ParameterValue

// Index returns the index of the parameter with the given name.
func (p ParameterValueList) Index(name string) (uint, bool) {
	for i, param := range p {
		if param.Name == name {
			return uint(i), true
		}
	}
	//
	return 0, false
}

func (p ParameterValueList) String() string {
	items := make([]string, len(p))
	//
	for i := range p {
		items[i] = p[i].String()
	}
	//
	return "(" + strings.Join(items, ", ") + ")"
}

// ArgumentValue is an evaluated argument of a call.  The name is empty for
// positional arguments.
type ArgumentValue struct {
	Name  string
	Value Value
	Ref   source.Ref
}

// ArgumentValueList is an ordered list of evaluated arguments.
type ArgumentValueList []ArgumentValue

// Get returns the argument with the given name (if it exists).
func (p ArgumentValueList) Get(name string) (Value, bool) {
	for _, arg := range p {
		if arg.Name == name {
			return arg.Value, true
		}
	}
	//
	return nil, false
}

// Positional returns the nth positional (i.e. unnamed) argument.
func (p ArgumentValueList) Positional(nth uint) (Value, bool) {
	var count uint
	//
	for _, arg := range p {
		if arg.Name == "" {
			if count == nth {
				return arg.Value, true
			}
			//
			count++
		}
	}
	//
	return nil, false
}

func (p ArgumentValueList) String() string {
	items := make([]string, len(p))
	//
	for i, arg := range p {
		if arg.Name != "" {
			items[i] = arg.Name + " = " + arg.Value.String()
		} else {
			items[i] = arg.Value.String()
		}
	}
	//
	return "(" + strings.Join(items, ", ") + ")"
}
