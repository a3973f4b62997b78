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
	"io"
	"os"

	"github.com/microcad-lang/go-microcad/pkg/diag"
	"github.com/microcad-lang/go-microcad/pkg/model"
	"github.com/microcad-lang/go-microcad/pkg/symbol"
	"github.com/microcad-lang/go-microcad/pkg/syntax"
	"github.com/microcad-lang/go-microcad/pkg/util/source"
	"github.com/microcad-lang/go-microcad/pkg/value"
	log "github.com/sirupsen/logrus"
)

// DefaultRecursionLimit is the maximum depth of nested calls permitted by
// default.
const DefaultRecursionLimit = 256

// Context holds the state of a single evaluation.  Evaluation walks the
// statements of a resolved source file, building a model tree as it goes.
// Errors encountered along the way are reported to the diagnostic reporter
// and the offending expression evaluates to None, such that evaluation always
// runs to completion.
type Context struct {
	table    *symbol.Table
	tree     *model.Tree
	reporter diag.Reporter
	// Evaluation stack
	frames []*Frame
	// Syntactic scopes currently open, used to decide where statements are
	// legal.
	scopes []openScope
	// Destination for print output
	output io.Writer
	// Current and maximum depth of nested calls.
	depth, maxDepth uint
}

// NewContext constructs a new evaluation context for a given symbol table.
// Models are added to the given tree.
func NewContext(table *symbol.Table, tree *model.Tree, reporter diag.Reporter) *Context {
	return &Context{table: table, tree: tree, reporter: reporter, output: os.Stdout,
		maxDepth: DefaultRecursionLimit}
}

// SetOutput sets the destination of output written by print and friends.
func (p *Context) SetOutput(w io.Writer) {
	p.output = w
}

// SetRecursionLimit sets the maximum depth of nested calls.
func (p *Context) SetRecursionLimit(limit uint) {
	p.maxDepth = limit
}

// Table returns the symbol table being evaluated.
func (p *Context) Table() *symbol.Table {
	return p.table
}

// Tree returns the model tree being built.
func (p *Context) Tree() *model.Tree {
	return p.tree
}

// Output returns the destination of output written by print and friends.
func (p *Context) Output() io.Writer {
	return p.output
}

// Reporter returns the diagnostic reporter of this context.
func (p *Context) Reporter() diag.Reporter {
	return p.reporter
}

// EvalSource evaluates the top-level statements of a given source file
// symbol, returning the root of the model it produces.
func (p *Context) EvalSource(id symbol.Id) model.Id {
	var (
		root = p.tree.Add(&model.Group{}, source.NoRef())
		ref  = p.table.Ref(id)
	)
	//
	def, ok := p.table.Def(id).(*symbol.SourceFile)
	if !ok {
		p.Error(ref, symbol.NewResolveError(symbol.InternalFailure, p.table.FullName(id).String(), ref))
		return root
	}
	//
	if !p.grantScope(syntax.NewScope(syntax.ScopeSource), ref) {
		return root
	}
	//
	frame := p.push(SourceFrame, id, ref)
	frame.model, frame.hasModel = root, true
	p.enter(syntax.ScopeSource, ref)
	p.evalStatements(def.Source.Statements)
	p.leave()
	p.pop()
	//
	log.Debugf("evaluated %s (%d models)", def.Source.Name, p.tree.Len())
	//
	return root
}

// EvalExpr evaluates a single expression within the scope of a given symbol.
func (p *Context) EvalExpr(expr syntax.Expression, scope symbol.Id) value.Value {
	p.push(ModuleFrame, scope, expr.Src())
	defer p.pop()
	//
	return p.evalScoped(expr)
}

// ============================================================================
// Diagnostics
// ============================================================================

// Error reports an error.  Where the error carries its own location, that is
// preferred over the one given.
func (p *Context) Error(ref source.Ref, err error) {
	switch e := err.(type) {
	case *Error:
		if !e.Ref.IsNone() {
			ref = e.Ref
		}
	case *symbol.ResolveError:
		if !e.Ref.IsNone() {
			ref = e.Ref
		}
	}
	//
	log.Tracef("error at %s: %s", ref.String(), err.Error())
	p.reporter.Error(ref, err)
}

// Warning reports a warning.
func (p *Context) Warning(ref source.Ref, format string, args ...any) {
	p.reporter.Warning(ref, fmt.Sprintf(format, args...))
}

// Info reports an informative message.
func (p *Context) Info(ref source.Ref, format string, args ...any) {
	p.reporter.Info(ref, fmt.Sprintf(format, args...))
}

// Trace reports a trace message.
func (p *Context) Trace(ref source.Ref, format string, args ...any) {
	p.reporter.Trace(ref, fmt.Sprintf(format, args...))
}

// ============================================================================
// Name lookup
// ============================================================================

// LookupSymbol resolves a name as seen from the current frame.  Names
// imported by use statements within enclosing bodies take precedence.
func (p *Context) LookupSymbol(name syntax.QualifiedName, target symbol.Target) (symbol.Id, error) {
	if !name.IsSuper() && !name.IsEmpty() {
		for _, alt := range p.bodyAliases(name) {
			if id, err := p.table.Lookup(alt, target); err == nil {
				return id, nil
			}
		}
	}
	//
	return p.table.LookupFrom(name, target, p.scope())
}

// Resolve the value of a name, trying local variables before symbols.
func (p *Context) lookupValue(name syntax.QualifiedName) (value.Value, error) {
	if !name.IsSuper() && name.Depth() == 1 {
		if val, ok := p.findLocal(name.Head().Name); ok {
			return val, nil
		}
	}
	//
	id, err := p.LookupSymbol(name, symbol.ValueTarget)
	if err != nil {
		return value.None{}, err
	}
	//
	switch def := p.table.Def(id).(type) {
	case *symbol.Constant:
		return p.evalConstant(id, def)
	case *symbol.Assignment:
		if def.Value == nil {
			return value.None{}, NewError(UndefinedValue, name.Ref, "value %s used before assignment", name.String())
		}
		//
		return def.Value, nil
	case *symbol.Argument:
		return value.None{}, NewError(UndefinedValue, name.Ref, "argument %s has no value here", name.String())
	}
	//
	return value.None{}, symbol.NewResolveError(symbol.WrongTarget, name.String(), name.Ref, p.table.Def(id).Kind())
}

// Evaluate a constant on first use.  Constants are evaluated within the scope
// in which they are declared, rather than where they are used.
func (p *Context) evalConstant(id symbol.Id, def *symbol.Constant) (value.Value, error) {
	switch {
	case def.Value != nil:
		return def.Value, nil
	case def.Evaluating:
		return value.None{}, NewError(CyclicConstant, def.Decl.Ref, "constant %s depends upon itself",
			def.Decl.Name.Name)
	case def.Decl == nil:
		return value.None{}, nil
	}
	//
	def.Evaluating = true
	//
	parent, _ := p.table.Parent(id)
	p.push(ModuleFrame, parent, def.Decl.Ref)
	val := p.evalScoped(def.Decl.Value)
	p.pop()
	//
	def.Value = p.checkDeclared(def.Decl.Type, val, def.Decl.Ref)
	def.Evaluating = false
	//
	log.Tracef("constant %s = %s", p.table.FullName(id).String(), def.Value.String())
	//
	return def.Value, nil
}

// Check a value against an (optional) declared type, converting it where
// necessary.
func (p *Context) checkDeclared(ann *syntax.TypeAnnotation, val value.Value, ref source.Ref) value.Value {
	if ann == nil || value.IsNone(val) {
		return val
	}
	//
	t, err := value.FromAnnotation(ann)
	if err != nil {
		p.Error(ann.Ref, NewError(TypeMismatch, ann.Ref, "%s", err.Error()))
		return val
	}
	//
	if v, ok := Coerce(&t, val); ok {
		return v
	}
	//
	p.Error(ref, NewError(TypeMismatch, ref, "expected %s, found %s", t.String(), val.Type().String()))
	//
	return val
}
