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
	"github.com/microcad-lang/go-microcad/pkg/model"
	"github.com/microcad-lang/go-microcad/pkg/symbol"
	"github.com/microcad-lang/go-microcad/pkg/syntax"
	"github.com/microcad-lang/go-microcad/pkg/util/source"
	"github.com/microcad-lang/go-microcad/pkg/value"
)

// Evaluate a list of statements in order.  Statements which are not permitted
// at this position are reported and skipped.  If a return statement is
// executed, the remaining statements are skipped and the returned value
// (wrapped in value.Return) is passed back.  Otherwise, nil is returned.
func (p *Context) evalStatements(stmts []syntax.Statement) value.Value {
	for _, stmt := range stmts {
		if !p.grant(stmt) {
			continue
		}
		//
		if ret := p.evalStatement(stmt); ret != nil {
			return ret
		}
	}
	//
	return nil
}

func (p *Context) evalStatement(stmt syntax.Statement) value.Value {
	switch s := stmt.(type) {
	case *syntax.ModuleDefinition:
		p.evalModule(s)
	case *syntax.WorkbenchDefinition:
		p.checkDefinition(syntax.ScopeWorkbench, s.Ref, s.Body)
	case *syntax.FunctionDefinition:
		p.checkDefinition(syntax.ScopeFunction, s.Ref, s.Body)
	case *syntax.InitDefinition:
		// Initialisers are run when their workbench is called
	case *syntax.UseStatement:
		p.evalUse(s)
	case *syntax.ReturnStatement:
		var val value.Value = value.None{}
		//
		if s.Value != nil {
			val = p.evalScoped(s.Value)
		}
		//
		return value.Return{Inner: val}
	case *syntax.IfStatement:
		return p.evalIf(s)
	case *syntax.AssignmentStatement:
		p.evalAssignment(s)
	case *syntax.ExpressionStatement:
		val := p.evalScoped(s.Expr)
		val = p.applyAttributes(s.Attributes, val)
		p.emit(val, s.Ref)
	}
	//
	return nil
}

func (p *Context) evalModule(decl *syntax.ModuleDefinition) {
	id, ok := p.table.Child(p.scope(), decl.Name.Name)
	// Modules which failed to resolve have already been reported
	if !ok {
		return
	}
	//
	def, ok := p.table.Def(id).(*symbol.Module)
	if !ok {
		return
	}
	//
	body := decl.Body
	if def.Source != nil {
		body = def.Source.Statements
	}
	//
	p.push(ModuleFrame, id, decl.Ref)
	p.enter(syntax.ScopeModule, decl.Ref)
	p.evalStatements(body)
	p.leave()
	p.pop()
}

// Use statements at the level of a module, workbench or function were already
// declared as symbols.  Those within bodies and initialisers are recorded in
// the frame.
func (p *Context) evalUse(stmt *syntax.UseStatement) {
	frame := p.Top()
	//
	if frame.Kind != BodyFrame && frame.Kind != InitFrame {
		return
	}
	//
	for _, decl := range stmt.Decls {
		if decl.All {
			if _, err := p.table.LookupFrom(decl.Name, symbol.ModuleTarget, frame.Symbol); err != nil {
				p.Error(decl.Ref, err)
				continue
			}
			//
			frame.useAlls = append(frame.useAlls, p.absolute(decl.Name, frame.Symbol))
		} else {
			if _, err := p.table.LookupFrom(decl.Name, symbol.AnyTarget, frame.Symbol); err != nil {
				p.Error(decl.Ref, err)
				continue
			}
			//
			frame.addAlias(decl.AliasName(), p.absolute(decl.Name, frame.Symbol))
		}
	}
}

// Convert a name into its absolute form, as seen from a given symbol.
func (p *Context) absolute(name syntax.QualifiedName, from symbol.Id) syntax.QualifiedName {
	id, err := p.table.LookupFrom(name, symbol.AnyTarget, from)
	if err != nil {
		return name
	}
	//
	abs := p.table.FullName(id)
	abs.Ref = name.Ref
	//
	return abs
}

func (p *Context) evalIf(stmt *syntax.IfStatement) value.Value {
	cond, ok := p.evalCondition(stmt.Cond)
	if !ok {
		return nil
	}
	//
	branch := stmt.Else
	if cond {
		branch = stmt.Then
	}
	//
	p.enter(syntax.ScopeIf, stmt.Ref)
	defer p.leave()
	//
	return p.evalStatements(branch)
}

// Evaluate a condition, which must produce a boolean.
func (p *Context) evalCondition(expr syntax.Expression) (bool, bool) {
	val := p.evalScoped(expr)
	//
	if value.IsNone(val) {
		return false, false
	} else if b, ok := value.Truthy(val); ok {
		return b, true
	}
	//
	p.Error(expr.Src(), NewError(TypeMismatch, expr.Src(), "condition must be Bool, found %s", val.Type().String()))
	//
	return false, false
}

func (p *Context) evalAssignment(stmt *syntax.AssignmentStatement) {
	if stmt.IsConstant() {
		// Force evaluation, so errors are reported even if unused.
		if id, ok := p.table.Child(p.scope(), stmt.Name.Name); ok {
			if def, ok := p.table.Def(id).(*symbol.Constant); ok {
				if _, err := p.evalConstant(id, def); err != nil {
					p.Error(stmt.Ref, err)
				} else {
					p.applyAttributes(stmt.Attributes, def.Value)
				}
			}
		}
		//
		return
	}
	//
	var (
		frame = p.Top()
		name  = stmt.Name.Name
		val   = p.evalScoped(stmt.Value)
	)
	//
	val = p.checkDeclared(stmt.Type, val, stmt.Ref)
	val = p.applyAttributes(stmt.Attributes, val)
	// Assignments are not permitted to shadow local values
	if _, exists := frame.locals.Get(name); exists && frame.Kind != InitFrame {
		p.Error(stmt.Name.Ref, NewError(ValueAlreadyDefined, stmt.Name.Ref, "value %s already defined", name))
		return
	}
	//
	frame.set(name, val)
	//
	switch frame.Kind {
	case SourceFrame:
		if id, ok := p.table.Child(frame.Symbol, name); ok {
			if def, ok := p.table.Def(id).(*symbol.Assignment); ok {
				def.Value = val
			}
		}
	case WorkbenchFrame:
		p.tree.Assign(frame.model, name, val)
		//
		if stmt.Qualifier == syntax.Prop {
			if wp, ok := p.tree.Element(frame.model).(*model.Workpiece); ok {
				wp.Properties.Add(name, val)
			}
		}
	}
}

// Attach a value produced by an expression statement to the model being built
// by the current frame.  Models which already belong to another model (e.g.
// because they were stored in a variable and used before) are copied.
func (p *Context) emit(val value.Value, ref source.Ref) {
	switch v := val.(type) {
	case value.Model:
		frame := p.modelFrame()
		if frame == nil {
			p.Warning(ref, "model discarded")
			return
		} else if !frame.hasModel {
			frame.model, frame.hasModel = p.tree.Add(&model.Group{}, frame.Ref), true
		}
		//
		id := v.Id
		//
		if _, ok := p.tree.Parent(id); ok || id == frame.model {
			id = p.tree.DeepCopy(id)
		}
		//
		p.tree.AppendChild(frame.model, id)
	case value.Array:
		for _, item := range v.Items {
			p.emit(item, ref)
		}
	}
}
