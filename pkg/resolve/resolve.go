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
	log "github.com/sirupsen/logrus"
)

// Resolve all declarations within a main source file, a set of library source
// files and a set of builtin modules, producing a symbol table.  Library files
// are either attached as the body of an external module declaration (e.g. "mod
// geo;") of the same name, or (if no such declaration exists) become top-level
// source files alongside the main file.  Errors are collected rather than
// aborting, such that an error in one declaration does not prevent unrelated
// declarations from being resolved.  The handle of the main source file is
// returned alongside the table.
func Resolve(main *syntax.SourceFile, libs []*syntax.SourceFile, builtins ...*BuiltinModule) (*symbol.Table,
	symbol.Id, []error) {
	//
	var (
		table  = symbol.NewTable()
		errors []error
	)
	// Declare builtins
	for _, b := range builtins {
		errors = append(errors, declareBuiltins(table, symbol.RootId, b)...)
	}
	// Construct resolver
	r := resolver{table, make(map[string]*syntax.SourceFile), nil}
	// Index library files
	for _, lib := range libs {
		r.libs[lib.Name] = lib
	}
	// Declare main source file
	mainId := r.declareSourceFile(main)
	// Declare any library files not consumed as external modules
	externals := externalModules(append([]*syntax.SourceFile{main}, libs...))
	//
	for _, lib := range libs {
		if _, ok := externals[lib.Name]; !ok {
			r.declareSourceFile(lib)
		}
	}
	// Check use statements
	r.checkUses(symbol.RootId)
	//
	errors = append(errors, r.errors...)
	//
	log.Debugf("resolved %d symbols with %d error(s)", table.Len(), len(errors))
	//
	return table, mainId, errors
}

// Resolver packages up information necessary for resolving a set of source
// files.
type resolver struct {
	table *symbol.Table
	// Library files indexed by name
	libs map[string]*syntax.SourceFile
	// Errors collected so far
	errors []error
}

func (r *resolver) declareSourceFile(file *syntax.SourceFile) symbol.Id {
	id, err := r.table.Insert(symbol.RootId, file.Name, syntax.Public, &symbol.SourceFile{Source: file},
		source.NoRef())
	//
	if err != nil {
		r.errors = append(r.errors, err)
		return id
	}
	//
	r.declareStatements(id, file.Statements)
	//
	return id
}

// Declare all named statements in a given statement list as children of a
// given parent symbol.
func (r *resolver) declareStatements(parent symbol.Id, stmts []syntax.Statement) {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *syntax.ModuleDefinition:
			r.declareModule(parent, s)
		case *syntax.WorkbenchDefinition:
			r.declareWorkbench(parent, s)
		case *syntax.FunctionDefinition:
			if id, ok := r.declare(parent, s.Name.Name, s.Visibility, &symbol.Function{Decl: s}, s); ok {
				r.declareStatements(id, s.Body)
			}
		case *syntax.UseStatement:
			r.declareUse(parent, s)
		case *syntax.AssignmentStatement:
			r.declareAssignment(parent, s)
		}
	}
}

func (r *resolver) declareModule(parent symbol.Id, decl *syntax.ModuleDefinition) {
	var (
		body = decl.Body
		def  = &symbol.Module{Decl: decl}
	)
	// Locate body of external module
	if decl.External {
		lib, ok := r.libs[decl.Name.Name]
		if !ok {
			r.errors = append(r.errors, symbol.NewResolveError(symbol.SourceFileNotFound, decl.Name.Name, decl.Ref))
			return
		}
		//
		def.Source = lib
		body = lib.Statements
	}
	//
	if id, ok := r.declare(parent, decl.Name.Name, decl.Visibility, def, decl); ok {
		r.declareStatements(id, body)
	}
}

func (r *resolver) declareWorkbench(parent symbol.Id, decl *syntax.WorkbenchDefinition) {
	id, ok := r.declare(parent, decl.Name.Name, decl.Visibility, &symbol.Workbench{Decl: decl}, decl)
	if !ok {
		return
	}
	// Building plan parameters are visible throughout the workbench.
	for _, param := range decl.Plan {
		if _, err := r.table.Insert(id, param.Name.Name, syntax.Private, &symbol.Argument{Param: param},
			param.Ref); err != nil {
			r.errors = append(r.errors, err)
		}
	}
	//
	r.declareStatements(id, decl.Body)
}

func (r *resolver) declareUse(parent symbol.Id, stmt *syntax.UseStatement) {
	vis := syntax.PrivateUse
	//
	if stmt.Visibility == syntax.Public {
		vis = syntax.Public
	}
	//
	for _, decl := range stmt.Decls {
		if decl.All {
			r.table.InsertUseAll(parent, decl.Name, vis, decl.Ref)
		} else {
			r.table.InsertAlias(parent, decl.AliasName(), decl.Name, vis, decl.Ref)
		}
	}
}

func (r *resolver) declareAssignment(parent symbol.Id, stmt *syntax.AssignmentStatement) {
	switch {
	case stmt.IsConstant():
		r.declare(parent, stmt.Name.Name, stmt.Visibility, &symbol.Constant{Decl: stmt}, stmt)
	case stmt.Qualifier == syntax.Value:
		// Top-level values are visible to functions declared in the same file.
		if _, ok := r.table.Def(parent).(*symbol.SourceFile); ok {
			// Reassignment is reported during evaluation.
			if _, exists := r.table.Child(parent, stmt.Name.Name); !exists {
				r.declare(parent, stmt.Name.Name, syntax.Private, &symbol.Assignment{Decl: stmt}, stmt)
			}
		}
	}
}

func (r *resolver) declare(parent symbol.Id, name string, vis syntax.Visibility, def symbol.Def,
	node syntax.Node) (symbol.Id, bool) {
	//
	id, err := r.table.Insert(parent, name, vis, def, node.Src())
	if err != nil {
		r.errors = append(r.errors, err)
		return id, false
	}
	//
	return id, true
}

// Check that every use statement refers to something.  Those which do not are
// reported and then deleted, such that subsequent lookups do not report the
// same problem again.
func (r *resolver) checkUses(id symbol.Id) {
	for _, child := range r.table.Children(id) {
		var err error
		//
		if r.table.Visibility(child) == syntax.Deleted {
			continue
		}
		//
		switch def := r.table.Def(child).(type) {
		case *symbol.Alias:
			_, err = r.table.Follow(child)
		case *symbol.UseAll:
			_, err = r.table.LookupFrom(def.Target, symbol.ModuleTarget, id)
		default:
			r.checkUses(child)
		}
		//
		if err != nil {
			r.errors = append(r.errors, err)
			r.table.Delete(child)
		}
	}
}

// Determine the set of all external module names declared in any of the given
// source files.
func externalModules(files []*syntax.SourceFile) map[string]bool {
	var (
		names = make(map[string]bool)
		visit func([]syntax.Statement)
	)
	//
	visit = func(stmts []syntax.Statement) {
		for _, stmt := range stmts {
			switch s := stmt.(type) {
			case *syntax.ModuleDefinition:
				if s.External {
					names[s.Name.Name] = true
				}
				//
				visit(s.Body)
			case *syntax.WorkbenchDefinition:
				visit(s.Body)
			case *syntax.FunctionDefinition:
				visit(s.Body)
			}
		}
	}
	//
	for _, f := range files {
		visit(f.Statements)
	}
	//
	return names
}
