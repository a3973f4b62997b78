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
package builtin

import (
	"fmt"

	"github.com/microcad-lang/go-microcad/pkg/eval"
	"github.com/microcad-lang/go-microcad/pkg/resolve"
	"github.com/microcad-lang/go-microcad/pkg/symbol"
	"github.com/microcad-lang/go-microcad/pkg/util/source"
	"github.com/microcad-lang/go-microcad/pkg/value"
)

// Std constructs the "std" builtin module, which provides output, assertions
// and mathematics.  Geometry is provided separately by whichever kernel is in
// use.
func Std() *resolve.BuiltinModule {
	std := &resolve.BuiltinModule{Name: "std"}
	//
	std.Builtins = []*symbol.Builtin{
		eval.NewBuiltin("print", symbol.BuiltinFunction, eval.FunctorFunc(printMessage)),
		eval.NewBuiltin("info", symbol.BuiltinFunction, report((*eval.Context).Info)),
		eval.NewBuiltin("warning", symbol.BuiltinFunction, report((*eval.Context).Warning)),
		eval.NewBuiltin("error", symbol.BuiltinFunction, eval.FunctorFunc(raise)),
	}
	//
	debug := std.Find("debug")
	debug.Builtins = []*symbol.Builtin{
		eval.NewBuiltin("assert", symbol.BuiltinFunction, eval.FunctorFunc(assertTrue)),
		eval.NewBuiltin("assert_eq", symbol.BuiltinFunction, eval.FunctorFunc(assertEq)),
		eval.NewTargetBuiltin("assert_valid", eval.FunctorFunc(assertValid)),
		eval.NewTargetBuiltin("assert_invalid", eval.FunctorFunc(assertInvalid)),
	}
	//
	declareMath(std.Find("math"))
	//
	return std
}

var messageParams = value.ParameterValueList{{Name: "message"}}

// Write the message to the output of the evaluation.
func printMessage(ctx *eval.Context, args value.ArgumentValueList, ref source.Ref) (value.Value, error) {
	return each(messageParams, args, ref, func(params value.Tuple) (value.Value, error) {
		msg, _ := params.Get("message")
		//
		if _, err := fmt.Fprintln(ctx.Output(), msg.String()); err != nil {
			return value.None{}, err
		}
		//
		ctx.Trace(ref, "%s", msg.String())
		//
		return value.None{}, nil
	})
}

// Report the message as a diagnostic of some level.
func report(level func(*eval.Context, source.Ref, string, ...any)) eval.Functor {
	return eval.FunctorFunc(func(ctx *eval.Context, args value.ArgumentValueList, ref source.Ref) (value.Value,
		error) {
		//
		return each(messageParams, args, ref, func(params value.Tuple) (value.Value, error) {
			msg, _ := params.Get("message")
			level(ctx, ref, "%s", msg.String())
			//
			return value.None{}, nil
		})
	})
}

func raise(_ *eval.Context, args value.ArgumentValueList, ref source.Ref) (value.Value, error) {
	return each(messageParams, args, ref, func(params value.Tuple) (value.Value, error) {
		msg, _ := params.Get("message")
		return value.None{}, eval.NewError(eval.BuiltinError, ref, "%s", msg.String())
	})
}

// Match the arguments of a builtin function against its parameters and apply
// the function to each binding.  Multiple bindings give an array of results.
func each(params value.ParameterValueList, args value.ArgumentValueList, ref source.Ref,
	fn func(value.Tuple) (value.Value, error)) (value.Value, error) {
	//
	tuples, err := eval.Match(params, args, ref)
	if err != nil {
		return value.None{}, err
	}
	//
	results := make([]value.Value, len(tuples))
	//
	for i, tuple := range tuples {
		if results[i], err = fn(tuple); err != nil {
			return value.None{}, err
		}
	}
	//
	if len(results) == 1 {
		return results[0], nil
	}
	//
	return value.NewArray(results...), nil
}

func typeOf(t value.Type) *value.Type {
	return &t
}
