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
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/microcad-lang/go-microcad/pkg/builtin"
	"github.com/microcad-lang/go-microcad/pkg/diag"
	"github.com/microcad-lang/go-microcad/pkg/eval"
	"github.com/microcad-lang/go-microcad/pkg/geo"
	"github.com/microcad-lang/go-microcad/pkg/geo/bounds"
	"github.com/microcad-lang/go-microcad/pkg/model"
	"github.com/microcad-lang/go-microcad/pkg/render"
	"github.com/microcad-lang/go-microcad/pkg/resolve"
	"github.com/microcad-lang/go-microcad/pkg/syntax/document"
	"github.com/microcad-lang/go-microcad/pkg/util/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDir determines the (relative) location of the test directory.  That is
// where the test documents (yaml) are found.
const TestDir = "../../testdata"

// Outcome captures everything observable from running a test document.
type Outcome struct {
	// Printed output
	Output string
	// Bounds of each export, keyed by filename
	Bounds map[string]string
	// Diagnostics reported at any stage
	Diagnostics []diag.Diagnostic
}

// Errors returns the error diagnostics of this outcome.
func (p Outcome) Errors() []diag.Diagnostic {
	var errs []diag.Diagnostic
	//
	for _, d := range p.Diagnostics {
		if d.Level == diag.Error {
			errs = append(errs, d)
		}
	}
	//
	return errs
}

// Run a given source file through decoding, resolution, evaluation and,
// finally, rendering of its exports.  Each stage runs only if the previous
// stages reported no errors.
func Run(srcfile *source.File) Outcome {
	var (
		handler = diag.NewHandler(0, false)
		output  strings.Builder
		outcome = Outcome{Bounds: make(map[string]string)}
	)
	//
	file, errs := document.Decode(srcfile)
	//
	if handler.ReportAll(errs) && !handler.HasErrors() {
		std := builtin.Std()
		bounds.Declare(std)
		//
		table, main, errs := resolve.Resolve(file, nil, std)
		//
		if handler.ReportAll(errs) && !handler.HasErrors() {
			var (
				tree = model.NewTree()
				ctx  = eval.NewContext(table, tree, handler)
			)
			//
			ctx.SetOutput(&output)
			root := ctx.EvalSource(main)
			//
			if !handler.HasErrors() {
				renderExports(tree, root, handler, outcome.Bounds)
			}
		}
	}
	//
	outcome.Output = output.String()
	outcome.Diagnostics = handler.Diagnostics()
	//
	return outcome
}

// Render every export (or the root if there are none), recording the bounds
// of whatever could be rendered.
func renderExports(tree *model.Tree, root model.Id, handler *diag.Handler, extents map[string]string) {
	var (
		ctx     = render.NewContext(tree, render.NewCache[geo.Geometry](render.DefaultWeights()))
		targets = tree.Exports(root)
	)
	//
	if len(targets) == 0 {
		targets = []model.Id{root}
	}
	//
	for _, id := range targets {
		geometry, errs := ctx.Render(id)
		handler.ReportAll(errs)
		//
		if geometry == nil {
			continue
		}
		//
		extent := "unbounded"
		//
		if box, err := bounds.Of(geometry); err == nil {
			extent = box.String()
		}
		//
		for _, export := range tree.Attributes(id).Exports() {
			extents[export.Filename] = extent
		}
	}
}

// Check that a given test document runs without error, printing the output
// and producing the export bounds declared in its header.
func Check(t *testing.T, test string) {
	// Enable testing each document in parallel
	t.Parallel()
	//
	srcfile, expected := readTestFile(t, test)
	outcome := Run(srcfile)
	// Check for errors first
	for _, err := range outcome.Errors() {
		t.Errorf("%s:%s unexpected error %s", srcfile.Filename(), err.Ref.String(), err.Message)
	}
	//
	var output []string
	//
	for _, e := range expected {
		switch e.Kind {
		case EXPECT_OUTPUT:
			output = append(output, e.Text)
		case EXPECT_BOUNDS:
			actual, ok := outcome.Bounds[e.Export]
			//
			if assert.True(t, ok, "missing export %s", e.Export) {
				assert.Equal(t, e.Text, actual, "bounds of %s", e.Export)
			}
		case EXPECT_ERROR:
			t.Fatalf("%s expects errors, but is not an invalid test", srcfile.Filename())
		}
	}
	//
	assert.Equal(t, output, printedLines(outcome.Output))
}

// CheckInvalid checks that a given test document reports exactly the errors
// declared in its header, in order.
func CheckInvalid(t *testing.T, test string) {
	// Enable testing each document in parallel
	t.Parallel()
	//
	var (
		srcfile, expected = readTestFile(t, test)
		actual            = Run(srcfile).Errors()
		msg               = fmt.Sprintf("Error %s\n", srcfile.Filename())
		failed            = len(actual) == 0
	)
	//
	for i := 0; i < max(len(actual), len(expected)); i++ {
		if i < len(actual) && i < len(expected) && matches(expected[i], actual[i]) {
			continue
		}
		//
		failed = true
		//
		if i < len(actual) {
			msg = fmt.Sprintf("%s unexpected error %s: %s\n", msg, actual[i].Ref.String(), actual[i].Message)
		}
		//
		if i < len(expected) {
			msg = fmt.Sprintf("%s   expected error %d: %s\n", msg, expected[i].Line, expected[i].Text)
		}
	}
	//
	if failed {
		t.Fatal(msg)
	}
}

func matches(expected Expectation, actual diag.Diagnostic) bool {
	return expected.Kind == EXPECT_ERROR && expected.Line == actual.Ref.Line &&
		strings.Contains(actual.Message, expected.Text)
}

// Read a test document along with the expectations declared in its header.
func readTestFile(t *testing.T, test string) (*source.File, []Expectation) {
	filename := fmt.Sprintf("%s/%s.yaml", TestDir, test)
	bytes, err := os.ReadFile(filename)
	require.NoError(t, err)
	//
	srcfile := source.NewSourceFile(filename, bytes)
	expected, errs := ExtractAttributes(srcfile, extractOutput, extractBounds, extractError)
	// Report any errors encountered parsing the expectations themselves.
	require.NoError(t, errors.Join(errs...))
	//
	return srcfile, expected
}

func printedLines(output string) []string {
	if output == "" {
		return nil
	}
	//
	return strings.Split(strings.TrimSuffix(output, "\n"), "\n")
}
