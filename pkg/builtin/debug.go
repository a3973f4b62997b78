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
	"github.com/microcad-lang/go-microcad/pkg/eval"
	"github.com/microcad-lang/go-microcad/pkg/util/source"
	"github.com/microcad-lang/go-microcad/pkg/value"
)

var (
	assertParams = value.ParameterValueList{
		{Name: "v", Type: typeOf(value.BoolType())},
		{Name: "message", Type: typeOf(value.StringType()), Default: value.String("")},
	}
	assertEqParams = value.ParameterValueList{
		{Name: "a"},
		{Name: "b"},
		{Name: "message", Type: typeOf(value.StringType()), Default: value.String("")},
	}
	targetParams = value.ParameterValueList{{Name: "target", Type: typeOf(value.TargetType())}}
)

func assertTrue(_ *eval.Context, args value.ArgumentValueList, ref source.Ref) (value.Value, error) {
	return each(assertParams, args, ref, func(params value.Tuple) (value.Value, error) {
		v, _ := params.Get("v")
		//
		if !bool(v.(value.Bool)) {
			return value.None{}, failure(ref, params, "")
		}
		//
		return value.None{}, nil
	})
}

func assertEq(_ *eval.Context, args value.ArgumentValueList, ref source.Ref) (value.Value, error) {
	return each(assertEqParams, args, ref, func(params value.Tuple) (value.Value, error) {
		a, _ := params.Get("a")
		b, _ := params.Get("b")
		//
		if !value.Equal(a, b) {
			return value.None{}, failure(ref, params, a.String()+" != "+b.String())
		}
		//
		return value.None{}, nil
	})
}

func assertValid(_ *eval.Context, args value.ArgumentValueList, ref source.Ref) (value.Value, error) {
	return each(targetParams, args, ref, func(params value.Tuple) (value.Value, error) {
		t, _ := params.Get("target")
		//
		if target := t.(value.Target); !target.Resolved {
			return value.None{}, eval.NewError(eval.AssertionFailed, ref, "assertion failed: %s is not a valid symbol",
				target.Name.String())
		}
		//
		return value.None{}, nil
	})
}

func assertInvalid(_ *eval.Context, args value.ArgumentValueList, ref source.Ref) (value.Value, error) {
	return each(targetParams, args, ref, func(params value.Tuple) (value.Value, error) {
		t, _ := params.Get("target")
		//
		if target := t.(value.Target); target.Resolved {
			return value.None{}, eval.NewError(eval.AssertionFailed, ref, "assertion failed: %s is a valid symbol",
				target.Name.String())
		}
		//
		return value.None{}, nil
	})
}

// Construct the error for a failed assertion, preferring the user's message
// over the given detail.
func failure(ref source.Ref, params value.Tuple, detail string) error {
	msg, _ := params.Get("message")
	//
	switch {
	case msg.String() != "":
		return eval.NewError(eval.AssertionFailed, ref, "assertion failed: %s", msg.String())
	case detail != "":
		return eval.NewError(eval.AssertionFailed, ref, "assertion failed: %s", detail)
	}
	//
	return eval.NewError(eval.AssertionFailed, ref, "assertion failed")
}
