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
	"fmt"
	"io"
	"strings"

	"github.com/microcad-lang/go-microcad/pkg/util/source"
	"github.com/microcad-lang/go-microcad/pkg/util/termio"
)

// Printer writes diagnostics in a human-readable form, including an excerpt of
// the offending source line (where known).
type Printer struct {
	// Source files, used to generate excerpts.
	files *source.Files
	// Enable ANSI colours.
	colour bool
	// Maximum width of excerpts.
	width uint
	// Diagnostics below this level are not printed.
	level Level
}

// NewPrinter constructs a new printer for a given set of source files.  By
// default, diagnostics of every level are printed.
func NewPrinter(files *source.Files, colour bool, width uint) *Printer {
	return &Printer{files, colour, width, Trace}
}

// SetLevel sets the lowest level of diagnostic which will be printed.
func (p *Printer) SetLevel(level Level) *Printer {
	p.level = level
	//
	return p
}

// PrintAll prints every diagnostic recorded by a given handler, followed by a
// summary line.
func (p *Printer) PrintAll(w io.Writer, handler *Handler) {
	for _, d := range handler.Diagnostics() {
		if d.Level >= p.level {
			p.Print(w, d)
		}
	}
	//
	if handler.LimitExceeded() {
		fmt.Fprintf(w, "%s\n", p.levelTag(Error, "error limit reached, further diagnostics suppressed"))
	}
	//
	if handler.ErrorCount() > 0 || handler.WarningCount() > 0 {
		fmt.Fprintf(w, "%d error(s), %d warning(s)\n", handler.ErrorCount(), handler.WarningCount())
	}
}

// Print a single diagnostic.  Where the diagnostic has a location within a known
// file, this takes the form:
//
//	main.µcad:3:5-9 error: symbol foo not found
//
//	    x = foo(1);
//	        ^^^
func (p *Printer) Print(w io.Writer, diag Diagnostic) {
	file := p.files.Of(diag.Ref)
	//
	if file == nil {
		fmt.Fprintln(w, p.levelTag(diag.Level, diag.String()))
		return
	}
	//
	span := diag.Ref.Span
	line := file.FindFirstEnclosingLine(span)
	lineOffset := span.Start() - line.Start()
	// Calculate length (ensures don't overflow line)
	length := max(1, min(line.Length()-lineOffset, span.Length()))
	// Print error + line number
	fmt.Fprintf(w, "%s:%d:%d-%d %s\n", file.Filename(), line.Number(), 1+lineOffset, 1+lineOffset+length,
		p.levelTag(diag.Level, diag.Level.String()+": "+diag.Message))
	// Print separator line
	fmt.Fprintln(w)
	// Print line
	text := line.String()
	fmt.Fprintln(w, termio.Truncate(text, p.width))
	// Print indent, preserving tabs so the highlight lines up.
	fmt.Fprint(w, indentOf(text, lineOffset))
	// Print highlight
	highlight := termio.NewAnsiEscape().FgColour(colourOf(diag.Level))
	fmt.Fprintln(w, highlight.Wrap(strings.Repeat("^", length), p.colour))
}

func (p *Printer) levelTag(level Level, text string) string {
	return termio.BoldAnsiEscape().FgColour(colourOf(level)).Wrap(text, p.colour)
}

func colourOf(level Level) termio.Colour {
	switch level {
	case Error:
		return termio.TERM_RED
	case Warning:
		return termio.TERM_YELLOW
	case Info:
		return termio.TERM_CYAN
	}
	//
	return termio.TERM_WHITE
}

// Construct whitespace matching the first n characters of a line.
func indentOf(line string, n int) string {
	var builder strings.Builder
	//
	for i, r := range []rune(line) {
		if i >= n {
			break
		} else if r == '\t' {
			builder.WriteRune('\t')
		} else {
			builder.WriteRune(' ')
		}
	}
	//
	return builder.String()
}
