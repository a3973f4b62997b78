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
	"os"

	"github.com/microcad-lang/go-microcad/pkg/config"
	"github.com/spf13/cobra"
)

// Get an expected flag, or exit if an error arises.
func getFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	exitOnError(err)
	//
	return r
}

// Get an expected unsigned integer, or exit if an error arises.
func getUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	exitOnError(err)
	//
	return r
}

// Get an expected float, or exit if an error arises.
func getFloat(cmd *cobra.Command, flag string) float64 {
	r, err := cmd.Flags().GetFloat64(flag)
	exitOnError(err)
	//
	return r
}

// Get an expected string, or exit if an error arises.
func getString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	exitOnError(err)
	//
	return r
}

// Get an expected string array, or exit if an error arises.
func getStringArray(cmd *cobra.Command, flag string) []string {
	r, err := cmd.Flags().GetStringArray(flag)
	exitOnError(err)
	//
	return r
}

func exitOnError(err error) {
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
}

// Load the configuration file named on the command line (if any), and then
// apply any settings given explicitly as flags.
func loadConfig(cmd *cobra.Command) *config.Config {
	cfg, err := config.Load(getString(cmd, "config"))
	exitOnError(err)
	//
	if cmd.Flags().Changed("error-limit") {
		cfg.Diagnostics.ErrorLimit = getUint(cmd, "error-limit")
	}
	//
	if getFlag(cmd, "warnings-as-errors") {
		cfg.Diagnostics.WarningsAsErrors = true
	}
	//
	if getFlag(cmd, "verbose") {
		cfg.Diagnostics.Verbose = true
	}
	//
	if getFlag(cmd, "no-color") {
		cfg.Diagnostics.Color = false
	}
	//
	return cfg
}
