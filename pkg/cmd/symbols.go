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

	"github.com/microcad-lang/go-microcad/pkg/config"
	"github.com/microcad-lang/go-microcad/pkg/symbol"
	"github.com/spf13/cobra"
)

var symbolsCmd = &cobra.Command{
	Use:   "symbols [flags] main_file",
	Short: "print the symbol table of a document.",
	Long: `Resolve a given document (along with any libraries) and print
	the resulting symbol table.  By default, only the symbols of the main
	document are printed.  Names can also be looked up as they would be
	from within the main document.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		cfg := loadConfig(cmd)
		opts := symbolsOptions{
			libs:    getStringArray(cmd, "lib"),
			all:     getFlag(cmd, "all"),
			lookups: getStringArray(cmd, "lookup"),
		}
		//
		os.Exit(runSymbols(os.Stdout, os.Stderr, cfg, args[0], opts))
	},
}

// Options for the symbols command.
type symbolsOptions struct {
	// Library documents
	libs []string
	// Print every symbol, including the standard library
	all bool
	// Names to lookup, instead of printing the table
	lookups []string
}

// Resolve a document, printing its symbols (or the outcome of any lookups) to
// out and diagnostics to errs.  The exit code is returned.
func runSymbols(out io.Writer, errs io.Writer, cfg *config.Config, filename string, opts symbolsOptions) int {
	s := newSession(cfg)
	//
	if s.load(filename, opts.libs) {
		switch {
		case len(opts.lookups) > 0:
			for _, name := range opts.lookups {
				printLookup(out, s, name)
			}
		case opts.all:
			printError(errs, s.table.Print(out, symbol.RootId))
		default:
			printError(errs, s.table.Print(out, s.main))
		}
	}
	//
	s.printDiagnostics(errs)
	//
	return s.exitCode()
}

// Lookup a name, reporting failure as a diagnostic.
func printLookup(w io.Writer, s *session, name string) {
	id, err := s.lookup(name)
	//
	if err != nil {
		s.report([]error{err})
		return
	}
	//
	fprintf(w, "%s:\n", name)
	printError(w, s.table.Print(w, id))
}

func init() {
	rootCmd.AddCommand(symbolsCmd)
	symbolsCmd.Flags().Bool("all", false, "print every symbol (including the standard library)")
	symbolsCmd.Flags().StringArray("lookup", nil, "lookup a name from within the main document")
}
