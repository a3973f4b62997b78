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
	"fmt"
	"io"
	"os"

	"github.com/microcad-lang/go-microcad/pkg/builtin"
	"github.com/microcad-lang/go-microcad/pkg/config"
	"github.com/microcad-lang/go-microcad/pkg/diag"
	"github.com/microcad-lang/go-microcad/pkg/eval"
	"github.com/microcad-lang/go-microcad/pkg/geo/bounds"
	"github.com/microcad-lang/go-microcad/pkg/model"
	"github.com/microcad-lang/go-microcad/pkg/resolve"
	"github.com/microcad-lang/go-microcad/pkg/symbol"
	"github.com/microcad-lang/go-microcad/pkg/syntax"
	"github.com/microcad-lang/go-microcad/pkg/syntax/document"
	"github.com/microcad-lang/go-microcad/pkg/util"
	"github.com/microcad-lang/go-microcad/pkg/util/source"
	"github.com/microcad-lang/go-microcad/pkg/util/termio"
	log "github.com/sirupsen/logrus"
)

// Session packages up everything arising from loading a main document (and its
// libraries), which the various commands then operate on.
type session struct {
	config  *config.Config
	files   *source.Files
	handler *diag.Handler
	table   *symbol.Table
	// Symbol of the main source file.
	main symbol.Id
	tree *model.Tree
	// Root of the evaluated model tree.
	root model.Id
}

func newSession(cfg *config.Config) *session {
	return &session{
		config:  cfg,
		files:   source.NewFiles(),
		handler: diag.NewHandler(cfg.Diagnostics.ErrorLimit, cfg.Diagnostics.WarningsAsErrors),
		tree:    model.NewTree(),
	}
}

// Load decodes the main document and its libraries, and then resolves them
// against the standard library.  This returns false if errors prevent going
// any further.
func (p *session) load(filename string, libs []string) bool {
	stats := util.NewPerfStats()
	//
	mains, errs := document.ReadFiles(filename)
	p.report(errs)
	//
	libFiles, errs := document.ReadFiles(libs...)
	p.report(errs)
	//
	for _, f := range append(mains, libFiles...) {
		p.files.Add(f.File)
	}
	//
	if len(mains) == 0 || p.handler.HasErrors() {
		return false
	}
	//
	table, main, errs := resolve.Resolve(mains[0], libFiles, standardLibrary())
	p.table, p.main = table, main
	p.report(errs)
	//
	stats.Log("Loading")
	//
	return !p.handler.HasErrors()
}

// Evaluate the main document, writing any printed output to a given writer.
func (p *session) evaluate(out io.Writer) bool {
	stats := util.NewPerfStats()
	ctx := eval.NewContext(p.table, p.tree, p.handler)
	//
	ctx.SetOutput(out)
	p.root = ctx.EvalSource(p.main)
	//
	stats.Log("Evaluating")
	//
	return !p.handler.HasErrors()
}

// Report errors as diagnostics.
func (p *session) report(errs []error) {
	p.handler.ReportAll(errs)
}

// Print all diagnostics collected so far.  Colour is only used when enabled
// by the configuration, and the writer is a terminal.  Trace and info
// diagnostics are only printed in verbose mode.
func (p *session) printDiagnostics(w io.Writer) {
	var (
		colour = false
		width  = termio.DEFAULT_WIDTH
		level  = diag.Warning
	)
	//
	if p.config.Diagnostics.Verbose {
		level = diag.Trace
	}
	//
	if f, ok := terminalOf(w); ok {
		colour = p.config.Diagnostics.Color
		width = termio.Width(f)
	}
	//
	diag.NewPrinter(p.files, colour, width).SetLevel(level).PrintAll(w, p.handler)
}

// Lookup a (qualified) name relative to the main source file.
func (p *session) lookup(name string) (symbol.Id, error) {
	return p.table.LookupFrom(syntax.ParseQualifiedName(name), symbol.AnyTarget, p.main)
}

// Construct the standard library, including the geometry builtins of the
// bounding box kernel.
func standardLibrary() *resolve.BuiltinModule {
	std := builtin.Std()
	bounds.Declare(std)
	//
	return std
}

// Exit code for a session, which is non-zero if any errors were reported.
func (p *session) exitCode() int {
	if p.handler.HasErrors() {
		log.Debugf("%d error(s) reported", p.handler.ErrorCount())
		return 1
	}
	//
	return 0
}

// Determine whether a writer is attached to a terminal.
func terminalOf(w io.Writer) (*os.File, bool) {
	f, ok := w.(*os.File)
	//
	return f, ok && termio.IsTerminal(f)
}

func fprintf(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		log.Errorf("writing output: %v", err)
	}
}
