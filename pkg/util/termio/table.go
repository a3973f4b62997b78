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
	"fmt"
	"io"
	"strings"
)

// Alignment determines how the contents of a column are padded.
type Alignment uint8

const (
	// ALIGN_LEFT pads cells on the right.
	ALIGN_LEFT Alignment = iota
	// ALIGN_RIGHT pads cells on the left (e.g. for numbers).
	ALIGN_RIGHT
)

// TablePrinter lays out rows of cells in aligned columns, with an optional
// header separated from the body by a rule.  Individual cells can be given an
// ANSI escape (e.g. to highlight failures).
type TablePrinter struct {
	header  []string
	widths  []uint
	maxima  []uint
	aligns  []Alignment
	rows    [][]string
	escapes [][]string
	// Whether escapes are emitted at all
	enableEscapes bool
}

// NewTablePrinter constructs a new table with a given number of columns, and
// initially no rows.
func NewTablePrinter(columns uint) *TablePrinter {
	return &TablePrinter{
		widths:        make([]uint, columns),
		maxima:        make([]uint, columns),
		aligns:        make([]Alignment, columns),
		enableEscapes: true,
	}
}

// SetHeader gives the titles of each column.
func (p *TablePrinter) SetHeader(titles ...string) {
	p.checkColumns(titles)
	p.header = titles
	p.updateWidths(titles)
}

// SetAlignment determines how a given column is padded.
func (p *TablePrinter) SetAlignment(col uint, align Alignment) {
	p.aligns[col] = align
}

// AddRow appends a row to this table, returning its index.
func (p *TablePrinter) AddRow(vals ...string) uint {
	p.checkColumns(vals)
	p.updateWidths(vals)
	//
	p.rows = append(p.rows, vals)
	p.escapes = append(p.escapes, make([]string, len(vals)))
	//
	return uint(len(p.rows) - 1)
}

// Get the contents of a given cell in this table
func (p *TablePrinter) Get(col uint, row uint) string {
	return p.rows[row][col]
}

// Height returns the number of rows in this table (excluding its header).
func (p *TablePrinter) Height() uint {
	return uint(len(p.rows))
}

// SetEscape sets the escape to use when printing the contents of a given cell.
func (p *TablePrinter) SetEscape(col uint, row uint, escape AnsiEscape) {
	p.escapes[row][col] = escape.Build()
}

// SetRowEscape sets the escape to use for every cell of a given row.
func (p *TablePrinter) SetRowEscape(row uint, escape AnsiEscape) {
	for col := range p.escapes[row] {
		p.SetEscape(uint(col), row, escape)
	}
}

// AnsiEscapes enables or disables the use of ANSI escapes, which should only
// be used when writing to a terminal.
func (p *TablePrinter) AnsiEscapes(enable bool) {
	p.enableEscapes = enable
}

// SetMaxWidth puts an upper bound on the width of a column, such that longer
// cells are truncated.  Zero means unbounded.
func (p *TablePrinter) SetMaxWidth(col uint, width uint) {
	p.maxima[col] = width
}

// Print the table to a given writer.
func (p *TablePrinter) Print(w io.Writer) {
	if p.header != nil {
		p.printRow(w, p.header, nil)
		//
		rule := make([]string, len(p.widths))
		for i := range rule {
			rule[i] = strings.Repeat("-", int(p.width(uint(i))))
		}
		//
		p.printRow(w, rule, nil)
	}
	//
	for i, row := range p.rows {
		p.printRow(w, row, p.escapes[i])
	}
}

func (p *TablePrinter) printRow(w io.Writer, row []string, escapes []string) {
	var builder strings.Builder
	//
	for i, cell := range row {
		var (
			width  = p.width(uint(i))
			escape = ""
		)
		//
		if p.enableEscapes && escapes != nil {
			escape = escapes[i]
		}
		//
		if i > 0 {
			builder.WriteString(" | ")
		}
		//
		cell = Truncate(cell, width)
		//
		if p.aligns[i] == ALIGN_RIGHT {
			cell = fmt.Sprintf("%*s", width, cell)
		} else if i+1 < len(row) {
			cell = fmt.Sprintf("%-*s", width, cell)
		}
		//
		if escape != "" {
			cell = escape + cell + ResetAnsiEscape().Build()
		}
		//
		builder.WriteString(cell)
	}
	//
	fmt.Fprintln(w, builder.String())
}

// Width of a given column, accounting for any maximum.
func (p *TablePrinter) width(col uint) uint {
	if p.maxima[col] > 0 {
		return min(p.widths[col], p.maxima[col])
	}
	//
	return p.widths[col]
}

func (p *TablePrinter) updateWidths(vals []string) {
	for i, val := range vals {
		p.widths[i] = max(p.widths[i], uint(len([]rune(val))))
	}
}

func (p *TablePrinter) checkColumns(vals []string) {
	if len(vals) != len(p.widths) {
		panic(fmt.Sprintf("incorrect number of columns (%d vs %d)", len(vals), len(p.widths)))
	}
}
