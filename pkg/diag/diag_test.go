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
package diag

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/microcad-lang/go-microcad/pkg/util/source"
	"github.com/stretchr/testify/assert"
)

func Test_Handler_01(t *testing.T) {
	h := NewHandler(0, false)
	h.Warning(source.NoRef(), "careful")
	h.Error(source.NoRef(), errors.New("broken"))
	h.Info(source.NoRef(), "hello")
	// Duplicates ignored
	h.Error(source.NoRef(), errors.New("broken"))
	//
	assert.Equal(t, uint(1), h.ErrorCount())
	assert.Equal(t, uint(1), h.WarningCount())
	assert.Len(t, h.Diagnostics(), 3)
	assert.True(t, h.HasErrors())
}

func Test_Handler_02(t *testing.T) {
	h := NewHandler(0, true)
	h.Warning(source.NoRef(), "careful")
	//
	assert.Equal(t, uint(1), h.ErrorCount())
	assert.Equal(t, Error, h.Diagnostics()[0].Level)
}

func Test_Handler_03(t *testing.T) {
	h := NewHandler(2, false)
	//
	assert.True(t, h.Error(source.NoRef(), errors.New("one")))
	assert.True(t, h.Error(source.NoRef(), errors.New("two")))
	assert.False(t, h.Error(source.NoRef(), errors.New("three")))
	// Collection halted, including for non-errors
	assert.False(t, h.Info(source.NoRef(), "four"))
	assert.True(t, h.LimitExceeded())
	assert.Len(t, h.Diagnostics(), 2)
}

func Test_Handler_04(t *testing.T) {
	var (
		h   = NewHandler(0, false)
		ref = source.NewRef(1, source.NewSpan(4, 7), 2, 3)
		err = fmt.Errorf("wrapped: %w", &located{"inner", ref})
	)
	// Locations are found through wrapping
	assert.True(t, h.ReportAll([]error{err, errors.New("plain")}))
	//
	assert.Equal(t, ref, h.Diagnostics()[0].Ref)
	assert.True(t, h.Diagnostics()[1].Ref.IsNone())
	assert.Equal(t, uint(2), h.ErrorCount())
}

func Test_Printer_01(t *testing.T) {
	var (
		files   = source.NewFiles()
		file    = source.NewSourceFile("main.µcad", []byte("a = 1;\nb = foo(2);\n"))
		builder strings.Builder
	)
	//
	files.Add(file)
	// Highlight "foo"
	ref := file.Ref(source.NewSpan(11, 14))
	printer := NewPrinter(files, false, 80)
	printer.Print(&builder, NewDiagnostic(Error, ref, "symbol foo not found"))
	//
	assert.Equal(t, "main.µcad:2:5-8 error: symbol foo not found\n\nb = foo(2);\n    ^^^\n", builder.String())
}

func Test_Printer_02(t *testing.T) {
	var (
		h       = NewHandler(0, false)
		builder strings.Builder
	)
	//
	h.Warning(source.NoRef(), "careful")
	NewPrinter(source.NewFiles(), false, 80).PrintAll(&builder, h)
	//
	assert.Equal(t, "warning: careful\n0 error(s), 1 warning(s)\n", builder.String())
}

func Test_Printer_03(t *testing.T) {
	var (
		h       = NewHandler(0, false)
		builder strings.Builder
	)
	// Lower levels are filtered out
	h.Trace(source.NoRef(), "hello")
	h.Info(source.NoRef(), "note")
	h.Warning(source.NoRef(), "careful")
	NewPrinter(source.NewFiles(), false, 80).SetLevel(Warning).PrintAll(&builder, h)
	//
	assert.Equal(t, "warning: careful\n0 error(s), 1 warning(s)\n", builder.String())
	// But are printed by default
	builder.Reset()
	NewPrinter(source.NewFiles(), false, 80).PrintAll(&builder, h)
	//
	assert.Contains(t, builder.String(), "trace: hello\n")
	assert.Contains(t, builder.String(), "info: note\n")
}

type located struct {
	message string
	ref     source.Ref
}

func (p *located) Error() string {
	return p.message
}

func (p *located) Location() source.Ref {
	return p.ref
}
