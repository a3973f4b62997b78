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
	"strings"

	"github.com/microcad-lang/go-microcad/pkg/config"
	"github.com/microcad-lang/go-microcad/pkg/geo"
	"github.com/microcad-lang/go-microcad/pkg/geo/bounds"
	"github.com/microcad-lang/go-microcad/pkg/model"
	"github.com/microcad-lang/go-microcad/pkg/render"
	"github.com/microcad-lang/go-microcad/pkg/util/termio"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render [flags] main_file",
	Short: "evaluate a document and render its exported models.",
	Long: `Evaluate a given document and render every model carrying an
	export attribute (or the whole model tree if there are none).  The
	bounds of each rendered model are printed, along with a summary of the
	render cache.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		cfg := loadConfig(cmd)
		//
		if cmd.Flags().Changed("resolution") {
			cfg.Render.Resolution = getFloat(cmd, "resolution")
			exitOnError(cfg.Validate())
		}
		//
		opts := renderOptions{
			libs:     getStringArray(cmd, "lib"),
			passes:   max(1, getUint(cmd, "passes")),
			progress: getFlag(cmd, "progress"),
		}
		//
		os.Exit(runRender(os.Stdout, os.Stderr, cfg, args[0], opts))
	},
}

// Options for the render command.
type renderOptions struct {
	// Library documents
	libs []string
	// Number of times to render everything, where passes after the first are
	// served (in part) by the cache.
	passes uint
	// Log progress updates
	progress bool
}

// Evaluate and then render a document, printing the bounds of every rendered
// model to out and diagnostics to errs.  The exit code is returned.
func runRender(out io.Writer, errs io.Writer, cfg *config.Config, filename string, opts renderOptions) int {
	s := newSession(cfg)
	//
	if s.load(filename, opts.libs) && s.evaluate(io.Discard) {
		var (
			cache   = render.NewCache[geo.Geometry](cfg.Weights())
			targets = renderTargets(s.tree, s.root)
			results []geo.Geometry
			errors  []error
		)
		//
		for pass := uint(0); pass < opts.passes; pass++ {
			results, errors = renderPass(s, cache, targets, opts.progress)
		}
		// Errors are the same on every pass
		s.report(errors)
		//
		printRenderResults(out, s.tree, targets, results)
		fprintf(out, "cache: %s (%d items)\n", cache.Stats(), cache.Len())
	}
	//
	s.printDiagnostics(errs)
	//
	return s.exitCode()
}

// Determine which models to render, namely those which are exported.  When
// nothing is exported, the root is rendered instead.
func renderTargets(tree *model.Tree, root model.Id) []model.Id {
	if targets := tree.Exports(root); len(targets) > 0 {
		return targets
	}
	//
	return []model.Id{root}
}

// Render every target once.  Geometry is nil for any target which could not be
// rendered.
func renderPass(s *session, cache *render.Cache[geo.Geometry], targets []model.Id,
	progress bool) ([]geo.Geometry, []error) {
	var (
		ctx     = render.NewContext(s.tree, cache)
		results = make([]geo.Geometry, len(targets))
		errors  []error
	)
	//
	ctx.SetResolution(s.config.Resolution())
	//
	if progress {
		ch, done := logProgress()
		ctx.SetProgress(ch)
		//
		defer func() {
			close(ch)
			<-done
		}()
	}
	//
	for i, target := range targets {
		geometry, errs := ctx.Render(target)
		//
		results[i] = geometry
		errors = append(errors, errs...)
	}
	//
	return results, errors
}

// Construct a progress channel whose updates are logged.  The returned done
// channel is closed once the progress channel has been closed and drained.
func logProgress() (chan float64, chan struct{}) {
	var (
		ch   = make(chan float64, 1)
		done = make(chan struct{})
	)
	//
	go func() {
		for percent := range ch {
			log.Infof("rendering %3.0f%%", percent)
		}
		//
		close(done)
	}()
	//
	return ch, done
}

func printRenderResults(w io.Writer, tree *model.Tree, targets []model.Id, results []geo.Geometry) {
	table := termio.NewTablePrinter(4)
	table.SetHeader("model", "export", "dim", "bounds")
	//
	for i, target := range targets {
		var (
			exports  []string
			geometry = results[i]
			dim      = "-"
			extent   = "failed"
		)
		//
		for _, export := range tree.Attributes(target).Exports() {
			exports = append(exports, export.Filename)
		}
		//
		if geometry != nil {
			dim = geometry.Dim().String()
			//
			if box, err := bounds.Of(geometry); err != nil {
				extent = err.Error()
			} else {
				extent = box.String()
			}
		}
		//
		row := table.AddRow(tree.Describe(target), strings.Join(exports, ","), dim, extent)
		//
		if geometry == nil {
			table.SetRowEscape(row, termio.NewAnsiEscape().FgColour(termio.TERM_RED))
		}
	}
	//
	_, terminal := terminalOf(w)
	table.AnsiEscapes(terminal)
	table.Print(w)
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().Float64P("resolution", "r", 0, "linear resolution (in millimetres) for rendering")
	renderCmd.Flags().Uint("passes", 1, "number of render passes")
	renderCmd.Flags().Bool("progress", false, "log rendering progress")
}
