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

// Call a workbench, producing one workpiece per binding of its building plan.
// The arguments must either match the building plan directly, or match one
// of its initialisers (which must then set every plan parameter).
func (p *Context) callWorkbench(id symbol.Id, def *symbol.Workbench, args value.ArgumentValueList,
	ref source.Ref) value.Value {
	//
	var (
		decl = def.Decl
		plan = p.evalParameters(id, decl.Plan)
	)
	//
	tuples, err := Match(plan, args, ref)
	//
	if err != nil {
		inits := decl.Inits()
		if len(inits) == 0 {
			p.Error(ref, err)
			return value.None{}
		}
		//
		if tuples = p.runInitialisers(id, plan, inits, args, ref); tuples == nil {
			return value.None{}
		}
	}
	//
	workpieces := make([]model.Id, len(tuples))
	//
	for i, tuple := range tuples {
		workpieces[i] = p.buildWorkpiece(id, decl, tuple, ref)
	}
	//
	return value.Model{Id: p.multiplicity(workpieces, ref)}
}

// Find the first initialiser matching the given arguments and run it,
// returning the resulting building plan bindings.
func (p *Context) runInitialisers(id symbol.Id, plan value.ParameterValueList, inits []*syntax.InitDefinition,
	args value.ArgumentValueList, ref source.Ref) []value.Tuple {
	//
	for _, init := range inits {
		params := p.evalParameters(id, init.Params)
		//
		tuples, err := Match(params, args, ref)
		if err != nil {
			continue
		}
		//
		var plans []value.Tuple
		//
		for _, tuple := range tuples {
			bindings, ok := p.runInitialiser(id, plan, init, tuple)
			if !ok {
				return nil
			}
			//
			plans = append(plans, bindings)
		}
		//
		return plans
	}
	//
	p.Error(ref, NewError(NoMatchingInitializer, ref, "no initializer of %s matches %s",
		p.table.FullName(id).String(), args.String()))
	//
	return nil
}

func (p *Context) runInitialiser(id symbol.Id, plan value.ParameterValueList, init *syntax.InitDefinition,
	args value.Tuple) (value.Tuple, bool) {
	//
	frame := p.push(InitFrame, id, init.Ref)
	frame.locals = args.Clone()
	p.enter(syntax.ScopeInit, init.Ref)
	p.evalStatements(init.Body)
	p.leave()
	p.pop()
	// Collect the building plan
	var bindings value.Tuple
	//
	for i, param := range plan {
		val, ok := frame.locals.Get(param.Name)
		//
		switch {
		case !ok && param.HasDefault():
			val = param.Default
		case !ok:
			p.Error(init.Ref, NewError(BuildingPlanIncomplete, init.Ref, "initializer does not set %s", param.Name))
			return bindings, false
		default:
			if val, ok = Coerce(plan[i].Type, val); !ok {
				p.Error(init.Ref, NewError(TypeMismatch, init.Ref, "%s must be %s, found %s", param.Name,
					param.Type.String(), val.Type().String()))
				//
				return bindings, false
			}
		}
		//
		bindings.Add(param.Name, val)
	}
	//
	return bindings, true
}

// Build a single workpiece by evaluating the body of its workbench.
func (p *Context) buildWorkpiece(id symbol.Id, decl *syntax.WorkbenchDefinition, plan value.Tuple,
	ref source.Ref) model.Id {
	//
	var (
		creator = model.Creator{Symbol: id, Name: p.table.FullName(id).String(), Arguments: plan.Clone()}
		wp      = p.tree.Add(&model.Workpiece{Type: decl.Kind, Creator: creator, Properties: plan.Clone()}, ref)
		frame   = p.push(WorkbenchFrame, id, ref)
	)
	//
	frame.locals = plan.Clone()
	frame.model, frame.hasModel = wp, true
	//
	p.enter(syntax.ScopeWorkbench, decl.Ref)
	p.evalStatements(decl.Body)
	p.leave()
	p.pop()
	//
	return wp
}

// Combine the models produced by calling something with multiple bindings.  A
// single model is returned as is, otherwise they are wrapped in a
// multiplicity.
func (p *Context) multiplicity(models []model.Id, ref source.Ref) model.Id {
	if len(models) == 1 {
		return models[0]
	}
	//
	multi := p.tree.Add(&model.Multiplicity{}, ref)
	p.tree.AppendChildren(multi, models...)
	//
	return multi
}
