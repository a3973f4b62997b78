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
package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/microcad-lang/go-microcad/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rectDocument = `
- expr: {call: {name: "std::geo2d::rect", named: {width: 2mm, height: 4mm}}}
  attributes:
    - export: "rect.svg"
`

// ===================================================================
// Eval
// ===================================================================

func Test_Eval_01(t *testing.T) {
	var out, errs bytes.Buffer
	//
	filename := writeDocument(t, "main.yaml", `
- expr: {call: {name: "std::print", args: ["hello"]}}
- assign: {name: x, value: 1}
`)
	//
	code := runEval(&out, &errs, config.Default(), filename, evalOptions{})
	//
	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "hello\n")
	assert.Empty(t, errs.String())
}

func Test_Eval_02(t *testing.T) {
	var out, errs bytes.Buffer
	//
	filename := writeDocument(t, "main.yaml", rectDocument)
	code := runEval(&out, &errs, config.Default(), filename, evalOptions{})
	//
	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "#[export")
	assert.Contains(t, out.String(), "rect")
}

func Test_Eval_03(t *testing.T) {
	var out, errs bytes.Buffer
	//
	filename := writeDocument(t, "main.yaml", rectDocument)
	code := runEval(&out, &errs, config.Default(), filename, evalOptions{quiet: true})
	//
	assert.Equal(t, 0, code)
	assert.Empty(t, out.String())
}

func Test_Eval_04(t *testing.T) {
	var out, errs bytes.Buffer
	//
	filename := writeDocument(t, "main.yaml", `
- expr: {call: nothing}
`)
	code := runEval(&out, &errs, config.Default(), filename, evalOptions{})
	//
	assert.Equal(t, 1, code)
	assert.Contains(t, errs.String(), "nothing")
	assert.Contains(t, errs.String(), "1 error(s)")
}

func Test_Eval_05(t *testing.T) {
	var out, errs bytes.Buffer
	//
	code := runEval(&out, &errs, config.Default(), filepath.Join(t.TempDir(), "missing.yaml"), evalOptions{})
	//
	assert.Equal(t, 1, code)
	assert.Empty(t, out.String())
	assert.Contains(t, errs.String(), "missing.yaml")
}

func Test_Eval_06(t *testing.T) {
	var out, errs bytes.Buffer
	// Syntax errors stop before evaluation
	filename := writeDocument(t, "main.yaml", `
- expr: {call: {name: "std::print", args: ["hello"]}}
- loop: {}
`)
	code := runEval(&out, &errs, config.Default(), filename, evalOptions{})
	//
	assert.Equal(t, 1, code)
	assert.NotContains(t, out.String(), "hello")
	assert.Contains(t, errs.String(), "unknown statement")
}

func Test_Eval_07(t *testing.T) {
	var out, errs bytes.Buffer
	//
	main := writeDocument(t, "main.yaml", `
- module: shapes
- expr: {call: "shapes::unit"}
`)
	lib := writeDocument(t, "shapes.yaml", `
- function:
    name: unit
    pub: true
    body:
      - return: {call: {name: "std::geo2d::rect", named: {width: 1mm, height: 1mm}}}
`)
	//
	code := runEval(&out, &errs, config.Default(), main, evalOptions{libs: []string{lib}})
	//
	assert.Equal(t, 0, code, errs.String())
	assert.Contains(t, out.String(), "rect")
}

func Test_Eval_08(t *testing.T) {
	var out, errs bytes.Buffer
	// Printed messages are only traced in verbose mode
	cfg := config.Default()
	cfg.Diagnostics.Verbose = true
	//
	filename := writeDocument(t, "main.yaml", `
- expr: {call: {name: "std::print", args: ["hello"]}}
`)
	code := runEval(&out, &errs, cfg, filename, evalOptions{quiet: true})
	//
	assert.Equal(t, 0, code)
	assert.Equal(t, "hello\n", out.String())
	assert.Contains(t, errs.String(), "trace: hello")
}

// ===================================================================
// Render
// ===================================================================

func Test_Render_01(t *testing.T) {
	var out, errs bytes.Buffer
	//
	filename := writeDocument(t, "main.yaml", rectDocument)
	code := runRender(&out, &errs, config.Default(), filename, renderOptions{passes: 1})
	//
	assert.Equal(t, 0, code, errs.String())
	assert.Contains(t, out.String(), "rect.svg")
	assert.Contains(t, out.String(), "2D")
	assert.Contains(t, out.String(), "[-1, -2] .. [1, 2]")
	assert.Contains(t, out.String(), "0 hits, 1 misses")
}

func Test_Render_02(t *testing.T) {
	var out, errs bytes.Buffer
	// Second pass is served from the cache
	filename := writeDocument(t, "main.yaml", rectDocument)
	code := runRender(&out, &errs, config.Default(), filename, renderOptions{passes: 2})
	//
	assert.Equal(t, 0, code, errs.String())
	assert.Contains(t, out.String(), "1 hits, 1 misses")
}

func Test_Render_03(t *testing.T) {
	var out, errs bytes.Buffer
	//
	filename := writeDocument(t, "main.yaml", `
- expr: {call: {name: "std::geo2d::rect", named: {width: 2mm, height: 2mm}}}
- expr: {call: {name: "std::geo3d::cube", named: {size: 2mm}}}
`)
	code := runRender(&out, &errs, config.Default(), filename, renderOptions{passes: 1})
	//
	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "failed")
	assert.Contains(t, errs.String(), "cannot mix 2D and 3D geometry")
}

func Test_Render_04(t *testing.T) {
	var out, errs bytes.Buffer
	//
	filename := writeDocument(t, "main.yaml", rectDocument)
	code := runRender(&out, &errs, config.Default(), filename, renderOptions{passes: 3, progress: true})
	//
	assert.Equal(t, 0, code, errs.String())
	assert.Contains(t, out.String(), "2 hits, 1 misses")
}

// ===================================================================
// Symbols
// ===================================================================

func Test_Symbols_01(t *testing.T) {
	var out, errs bytes.Buffer
	//
	filename := writeDocument(t, "main.yaml", `
- assign: {name: width, value: 1mm}
`)
	code := runSymbols(&out, &errs, config.Default(), filename, symbolsOptions{})
	//
	assert.Equal(t, 0, code, errs.String())
	assert.Contains(t, out.String(), "main")
	assert.Contains(t, out.String(), "width")
	assert.NotContains(t, out.String(), "geo2d")
}

func Test_Symbols_02(t *testing.T) {
	var out, errs bytes.Buffer
	//
	filename := writeDocument(t, "main.yaml", `[]`)
	code := runSymbols(&out, &errs, config.Default(), filename, symbolsOptions{all: true})
	//
	assert.Equal(t, 0, code, errs.String())
	assert.Contains(t, out.String(), "geo2d")
	assert.Contains(t, out.String(), "circle")
}

func Test_Symbols_03(t *testing.T) {
	var out, errs bytes.Buffer
	//
	filename := writeDocument(t, "main.yaml", `[]`)
	code := runSymbols(&out, &errs, config.Default(), filename,
		symbolsOptions{lookups: []string{"std::geo2d::rect", "std::geo2d::rectangle"}})
	//
	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "std::geo2d::rect:\n")
	assert.Contains(t, errs.String(), "rectangle")
}

// ===================================================================
// Config
// ===================================================================

func Test_Config_01(t *testing.T) {
	var out, errs bytes.Buffer
	// Warnings are promoted
	cfg := config.Default()
	cfg.Diagnostics.WarningsAsErrors = true
	//
	filename := writeDocument(t, "main.yaml", `
- expr: {call: {name: "std::warning", args: ["careful"]}}
`)
	code := runEval(&out, &errs, cfg, filename, evalOptions{quiet: true})
	//
	assert.Equal(t, 1, code)
	assert.Contains(t, errs.String(), "careful")
}

// ===================================================================
// Test Helpers
// ===================================================================

func writeDocument(t *testing.T, name string, contents string) string {
	filename := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(filename, []byte(contents), 0o600))
	//
	return filename
}
