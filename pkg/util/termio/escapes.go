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
)

// Colour identifies one of the eight standard terminal colours.
type Colour uint

// The standard colours, in the order of their ANSI codes.
const (
	TERM_BLACK Colour = iota
	TERM_RED
	TERM_GREEN
	TERM_YELLOW
	TERM_BLUE
	TERM_MAGENTA
	TERM_CYAN
	TERM_WHITE
)

// AnsiEscape represents an ANSI escape code used for formatting text in a terminal.
type AnsiEscape struct {
	escape string
	count  uint
}

// NewAnsiEscape construct an empty escape
func NewAnsiEscape() AnsiEscape {
	return AnsiEscape{"\033", 0}
}

// ResetAnsiEscape constructs a reset term.
func ResetAnsiEscape() AnsiEscape {
	return AnsiEscape{"\033[0", 1}
}

// BoldAnsiEscape constructs a bold term.
func BoldAnsiEscape() AnsiEscape {
	return AnsiEscape{"\033[1", 1}
}

// FgColour sets the foreground colour
func (p AnsiEscape) FgColour(col Colour) AnsiEscape {
	return p.append(uint(col) + 30)
}

// BgColour sets the background colour
func (p AnsiEscape) BgColour(col Colour) AnsiEscape {
	return p.append(uint(col) + 40)
}

func (p AnsiEscape) append(code uint) AnsiEscape {
	var escape string
	//
	if p.count > 0 {
		escape = fmt.Sprintf("%s;%d", p.escape, code)
	} else {
		escape = fmt.Sprintf("%s[%d", p.escape, code)
	}
	// Done
	return AnsiEscape{escape, p.count + 1}
}

// Build constructs the final escape
func (p AnsiEscape) Build() string {
	return fmt.Sprintf("%sm", p.escape)
}

// Wrap surrounds some text with this escape and a reset, provided escapes are
// enabled.  Otherwise, the text is returned as is.
func (p AnsiEscape) Wrap(text string, enabled bool) string {
	if !enabled || p.count == 0 {
		return text
	}
	//
	return p.Build() + text + ResetAnsiEscape().Build()
}
