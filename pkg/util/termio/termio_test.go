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
package termio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Table_01(t *testing.T) {
	var (
		builder strings.Builder
		table   = NewTablePrinter(3)
	)
	//
	table.SetHeader("name", "n", "bounds")
	table.SetAlignment(1, ALIGN_RIGHT)
	table.AddRow("circle", "12", "[0, 0] .. [1, 1]")
	table.AddRow("box", "3", "empty")
	table.Print(&builder)
	//
	assert.Equal(t, strings.Join([]string{
		"name   |  n | bounds",
		"------ | -- | ----------------",
		"circle | 12 | [0, 0] .. [1, 1]",
		"box    |  3 | empty",
		""}, "\n"), builder.String())
}

func Test_Table_02(t *testing.T) {
	var (
		builder strings.Builder
		table   = NewTablePrinter(2)
	)
	//
	table.AddRow("a very long name", "x")
	table.SetMaxWidth(0, 6)
	row := table.AddRow("b", "y")
	table.SetRowEscape(row, NewAnsiEscape().FgColour(TERM_RED))
	// Escapes disabled
	table.AnsiEscapes(false)
	table.Print(&builder)
	//
	assert.Equal(t, "a ve.. | x\nb      | y\n", builder.String())
}

func Test_Table_03(t *testing.T) {
	var (
		builder strings.Builder
		table   = NewTablePrinter(1)
	)
	//
	row := table.AddRow("failed")
	table.SetRowEscape(row, NewAnsiEscape().FgColour(TERM_RED))
	table.Print(&builder)
	//
	assert.Equal(t, "\033[31mfailed\033[0m\n", builder.String())
}

func Test_Truncate_01(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 3))
	assert.Equal(t, "µc..", Truncate("µcad file", 4))
	assert.Equal(t, "µcad", Truncate("µcad", 2))
}
