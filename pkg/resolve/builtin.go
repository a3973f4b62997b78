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
package resolve

import (
	"github.com/microcad-lang/go-microcad/pkg/symbol"
	"github.com/microcad-lang/go-microcad/pkg/syntax"
	"github.com/microcad-lang/go-microcad/pkg/util/source"
	"github.com/microcad-lang/go-microcad/pkg/value"
	log "github.com/sirupsen/logrus"
)

// BuiltinModule describes a module of natively implemented symbols.  These are
// inserted into the symbol table as ordinary symbols, such that user code and
// builtin code share the same lookup path.
type BuiltinModule struct {
	Name string
	// Native functions, primitives, operations and transforms.
	Builtins []*symbol.Builtin
	// Named constant values (e.g. PI).
	Constants []Constant
	// Nested modules
	Modules []*BuiltinModule
}

// Constant is a named builtin value.
type Constant struct {
	Name  string
	Value value.Value
}

// Find returns the nested module with the given name, creating it if it does
// not already exist.
func (p *BuiltinModule) Find(name string) *BuiltinModule {
	for _, m := range p.Modules {
		if m.Name == name {
			return m
		}
	}
	//
	m := &BuiltinModule{Name: name}
	p.Modules = append(p.Modules, m)
	//
	return m
}

// Declare a builtin module (and all its contents) within a given parent.
func declareBuiltins(table *symbol.Table, parent symbol.Id, module *BuiltinModule) []error {
	var errors []error
	//
	id, err := table.Insert(parent, module.Name, syntax.Public, &symbol.Module{}, source.NoRef())
	if err != nil {
		return []error{err}
	}
	//
	for _, b := range module.Builtins {
		if _, err := table.Insert(id, b.Name, syntax.Public, b, source.NoRef()); err != nil {
			errors = append(errors, err)
		}
	}
	//
	for _, c := range module.Constants {
		if _, err := table.Insert(id, c.Name, syntax.Public, &symbol.Constant{Value: c.Value}, source.NoRef()); err != nil {
			errors = append(errors, err)
		}
	}
	//
	for _, m := range module.Modules {
		errors = append(errors, declareBuiltins(table, id, m)...)
	}
	//
	log.Debugf("declared builtin module %s (%d builtins)", module.Name, len(module.Builtins))
	//
	return errors
}
