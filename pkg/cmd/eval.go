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
	"github.com/spf13/cobra"
)

var evalCmd = &cobra.Command{
	Use:   "eval [flags] main_file",
	Short: "evaluate a document and print the resulting model tree.",
	Long: `Evaluate a given document (along with any libraries) and print
	the resulting model tree.  Any output printed by the document is
	written first, and diagnostics are written to stderr.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		cfg := loadConfig(cmd)
		opts := evalOptions{
			libs:  getStringArray(cmd, "lib"),
			dump:  getFlag(cmd, "dump"),
			quiet: getFlag(cmd, "quiet"),
		}
		//
		os.Exit(runEval(os.Stdout, os.Stderr, cfg, args[0], opts))
	},
}

// Options for the eval command.
type evalOptions struct {
	// Library documents
	libs []string
	// Print the model tree in full detail
	dump bool
	// Don't print the model tree at all
	quiet bool
}

// Evaluate a document, printing the model tree to out and diagnostics to
// errs.  The exit code is returned.
func runEval(out io.Writer, errs io.Writer, cfg *config.Config, filename string, opts evalOptions) int {
	s := newSession(cfg)
	//
	if s.load(filename, opts.libs) {
		s.evaluate(out)
		//
		switch {
		case opts.quiet:
		case opts.dump:
			printError(errs, s.tree.Dump(out, s.root))
		default:
			printError(errs, s.tree.Print(out, s.root))
		}
	}
	//
	s.printDiagnostics(errs)
	//
	return s.exitCode()
}

func printError(w io.Writer, err error) {
	if err != nil {
		fprintf(w, "%s\n", err)
	}
}

func init() {
	rootCmd.AddCommand(evalCmd)
	evalCmd.Flags().Bool("dump", false, "print the model tree in full detail")
	evalCmd.Flags().BoolP("quiet", "q", false, "don't print the model tree")
}
