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
package util

import (
	"testing"

	"github.com/microcad-lang/go-microcad/pkg/util/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Expectations_01(t *testing.T) {
	srcfile := source.NewSourceFile("test.yaml", []byte(
		"#output:hi: there\n#bounds:a.svg:[0, 0] .. [1, 1]\n#error:4:oops\n- assign: {name: x, value: 1}\n#output:late\n"))
	//
	expected, errs := ExtractAttributes(srcfile, extractOutput, extractBounds, extractError)
	//
	require.Empty(t, errs)
	assert.Equal(t, []Expectation{
		{Kind: EXPECT_OUTPUT, Text: "hi: there"},
		{Kind: EXPECT_BOUNDS, Export: "a.svg", Text: "[0, 0] .. [1, 1]"},
		{Kind: EXPECT_ERROR, Line: 4, Text: "oops"},
	}, expected)
}

func Test_Expectations_02(t *testing.T) {
	srcfile := source.NewSourceFile("test.yaml", []byte("#error:0:oops\n#error:x\n#bounds:a.svg\n"))
	//
	_, errs := ExtractAttributes(srcfile, extractOutput, extractBounds, extractError)
	//
	assert.Len(t, errs, 3)
}

func Test_Run_01(t *testing.T) {
	outcome := Run(source.NewSourceFile("test.yaml", []byte(`
- expr: {call: {name: "std::print", args: ["one"]}}
- expr: {call: {name: "std::geo2d::rect", named: {width: 2mm, height: 2mm}}}
  attributes: [{export: "square.svg"}]
`)))
	//
	assert.Empty(t, outcome.Errors())
	assert.Equal(t, "one\n", outcome.Output)
	assert.Equal(t, map[string]string{"square.svg": "[-1, -1] .. [1, 1]"}, outcome.Bounds)
}

func Test_Run_02(t *testing.T) {
	errs := Run(source.NewSourceFile("test.yaml", []byte(`
- expr: {call: nothing}
`))).Errors()
	//
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "symbol nothing not found")
}
