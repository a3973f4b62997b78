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
	"errors"

	"github.com/microcad-lang/go-microcad/pkg/symbol"
	"github.com/microcad-lang/go-microcad/pkg/syntax"
	"github.com/microcad-lang/go-microcad/pkg/util/source"
	"github.com/microcad-lang/go-microcad/pkg/value"
	log "github.com/sirupsen/logrus"
)

func (p *Context) evalCall(expr *syntax.CallExpr) value.Value {
	id, err := p.LookupSymbol(expr.Name, symbol.FunctionTarget)
	if err != nil {
		p.Error(expr.Name.Ref, p.notCallable(expr.Name, err))
		return value.None{}
	}
	//
	return p.call(id, expr.Args, expr.Ref)
}

// A name which resolves, but not to anything callable, cannot be called.
// Other lookup failures are returned unchanged.
func (p *Context) notCallable(name syntax.QualifiedName, err error) error {
	var rerr *symbol.ResolveError
	//
	if !errors.As(err, &rerr) || rerr.Kind != symbol.WrongTarget {
		return err
	} else if id, lerr := p.LookupSymbol(name, symbol.AnyTarget); lerr == nil {
		return NewError(SymbolCannotBeCalled, name.Ref, "%s %s cannot be called", p.table.Def(id).Kind(),
			p.table.FullName(id).String())
	}
	//
	return err
}

// Call a symbol with a given set of (unevaluated) arguments.
func (p *Context) call(id symbol.Id, exprs []syntax.Argument, ref source.Ref) value.Value {
	var (
		def  = p.table.Def(id)
		args value.ArgumentValueList
	)
	// Builtins operating in target mode see names, rather than values.
	if b, ok := def.(*symbol.Builtin); ok && b.TargetMode {
		args = p.evalTargets(exprs)
	} else if args, ok = p.evalArguments(exprs); !ok {
		return value.None{}
	}
	//
	return p.Call(id, args, ref)
}

// Call a symbol with a given set of evaluated arguments.  Errors arising from
// the call are reported and give None.
func (p *Context) Call(id symbol.Id, args value.ArgumentValueList, ref source.Ref) value.Value {
	if p.depth >= p.maxDepth {
		p.Error(ref, NewError(RecursionLimit, ref, "recursion limit of %d exceeded", p.maxDepth))
		return value.None{}
	}
	//
	p.depth++
	frame := p.push(CallFrame, id, ref)
	frame.Args = args
	//
	defer func() {
		p.pop()
		p.depth--
	}()
	//
	name := p.table.FullName(id)
	log.Tracef("call %s%s", name.String(), args.String())
	//
	switch def := p.table.Def(id).(type) {
	case *symbol.Builtin:
		return p.callBuiltin(def, args, ref)
	case *symbol.Function:
		return p.callFunction(id, def, args, ref)
	case *symbol.Workbench:
		return p.callWorkbench(id, def, args, ref)
	default:
		p.Error(ref, NewError(SymbolCannotBeCalled, ref, "%s %s cannot be called", def.Kind(), name.String()))
	}
	//
	return value.None{}
}

// Evaluate the arguments of a call.  This fails if any argument could not be
// evaluated, since the error has already been reported.
func (p *Context) evalArguments(exprs []syntax.Argument) (value.ArgumentValueList, bool) {
	var (
		args = make(value.ArgumentValueList, len(exprs))
		ok   = true
	)
	//
	for i, arg := range exprs {
		args[i] = value.ArgumentValue{Value: p.evalExpr(arg.Value), Ref: arg.Ref}
		//
		if arg.Name != nil {
			args[i].Name = arg.Name.Name
		}
		//
		ok = ok && !value.IsNone(args[i].Value)
	}
	//
	return args, ok
}

// Capture the arguments of a call as targets, without evaluating them.
// Arguments which are not plain names are evaluated as usual.
func (p *Context) evalTargets(exprs []syntax.Argument) value.ArgumentValueList {
	args := make(value.ArgumentValueList, len(exprs))
	//
	for i, arg := range exprs {
		args[i] = value.ArgumentValue{Ref: arg.Ref}
		//
		if arg.Name != nil {
			args[i].Name = arg.Name.Name
		}
		//
		if name, ok := arg.Value.(*syntax.NameExpr); ok {
			target := value.Target{Name: name.Name}
			//
			if id, err := p.LookupSymbol(name.Name, symbol.AnyTarget); err == nil {
				target.Resolved, target.Symbol = true, uint32(id)
			}
			//
			args[i].Value = target
		} else {
			args[i].Value = p.evalExpr(arg.Value)
		}
	}
	//
	return args
}

func (p *Context) callBuiltin(def *symbol.Builtin, args value.ArgumentValueList, ref source.Ref) value.Value {
	functor, ok := def.Impl.(Functor)
	if !ok {
		p.Error(ref, NewError(BuiltinError, ref, "builtin %s has no implementation", def.Name))
		return value.None{}
	}
	//
	val, err := functor.Call(p, args, ref)
	if err != nil {
		if _, ok := err.(*Error); !ok {
			err = NewError(BuiltinError, ref, "%s", err.Error())
		}
		//
		p.Error(ref, err)
		//
		return value.None{}
	}
	//
	return val
}

// ============================================================================
// Functions
// ============================================================================

func (p *Context) callFunction(id symbol.Id, def *symbol.Function, args value.ArgumentValueList,
	ref source.Ref) value.Value {
	//
	params := p.evalParameters(id, def.Decl.Params)
	//
	tuples, err := Match(params, args, ref)
	if err != nil {
		p.Error(ref, err)
		return value.None{}
	}
	//
	results := make([]value.Value, len(tuples))
	//
	for i, tuple := range tuples {
		results[i] = p.runFunction(id, def, tuple, ref)
	}
	// Multiple bindings give an array of results
	if len(results) == 1 {
		return results[0]
	}
	//
	return p.homogeneous(results, ref)
}

func (p *Context) runFunction(id symbol.Id, def *symbol.Function, args value.Tuple, ref source.Ref) value.Value {
	frame := p.push(FunctionFrame, id, ref)
	frame.locals = args.Clone()
	p.enter(syntax.ScopeFunction, def.Decl.Ref)
	//
	result := p.evalStatements(def.Decl.Body)
	//
	p.leave()
	p.pop()
	// Functions without a return statement give whatever models they produced.
	if result == nil {
		if frame.hasModel {
			result = value.Model{Id: frame.model}
		} else {
			result = value.None{}
		}
	}
	//
	result = value.Unwrap(result)
	//
	return p.checkDeclared(def.Decl.Return, result, ref)
}

// Evaluate a parameter list, including its defaults.  Defaults are evaluated
// in the scope of the symbol declaring them.  A parameter without a declared
// type takes the type of its default (if any), with integers widened to
// scalars.
func (p *Context) evalParameters(scope symbol.Id, params syntax.ParameterList) value.ParameterValueList {
	values := make(value.ParameterValueList, len(params))
	//
	for i, param := range params {
		values[i] = value.ParameterValue{Name: param.Name.Name, Ref: param.Ref}
		//
		if param.Type != nil {
			t, err := value.FromAnnotation(param.Type)
			if err != nil {
				p.Error(param.Type.Ref, NewError(TypeMismatch, param.Type.Ref, "%s", err.Error()))
			} else {
				values[i].Type = &t
			}
		}
		//
		if param.Default == nil {
			continue
		}
		//
		p.push(ModuleFrame, scope, param.Ref)
		val := p.evalScoped(param.Default)
		p.pop()
		//
		if value.IsNone(val) {
			continue
		} else if values[i].Type == nil {
			t := val.Type()
			if t.Kind == value.IntegerKind {
				t = value.QuantityOf(value.Scalar)
			}
			//
			values[i].Type = &t
		}
		//
		if v, ok := Coerce(values[i].Type, val); ok {
			values[i].Default = v
		} else {
			p.Error(param.Ref, NewError(TypeMismatch, param.Ref, "default of %s must be %s, found %s",
				param.Name.Name, values[i].Type.String(), val.Type().String()))
		}
	}
	//
	return values
}
