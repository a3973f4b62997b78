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
package lex

import (
	"testing"

	"github.com/microcad-lang/go-microcad/pkg/util/source"
	"github.com/stretchr/testify/assert"
)

func Test_Lexer_01(t *testing.T) {
	checkLexer(t, "", 0, Token{END_OF, source.NewSpan(0, 0)})
}

func Test_Lexer_02(t *testing.T) {
	checkLexer(t, "[x]", 0,
		Token{LBRACKET, source.NewSpan(0, 1)},
		Token{IDENT, source.NewSpan(1, 2)},
		Token{RBRACKET, source.NewSpan(2, 3)},
		Token{END_OF, source.NewSpan(3, 3)})
}

func Test_Lexer_03(t *testing.T) {
	checkLexer(t, "a_1  b", 0,
		Token{IDENT, source.NewSpan(0, 3)},
		Token{WSPACE, source.NewSpan(3, 5)},
		Token{IDENT, source.NewSpan(5, 6)},
		Token{END_OF, source.NewSpan(6, 6)})
}

func Test_Lexer_04(t *testing.T) {
	checkLexer(t, "12.5", 0,
		Token{NUMBER, source.NewSpan(0, 4)},
		Token{END_OF, source.NewSpan(4, 4)})
}

func Test_Lexer_05(t *testing.T) {
	// Nothing matches "?"
	checkLexer(t, "x?", 1, Token{IDENT, source.NewSpan(0, 1)})
}

func Test_Sequence_01(t *testing.T) {
	rule := Sequence(Unit('a'), Unit('b'), Unit('c'))
	// Only the last scanner may match nothing
	assert.Equal(t, uint(0), rule([]rune{'a', 'c', 'c'}))
	assert.Equal(t, uint(2), rule([]rune{'a', 'b', 'b'}))
	assert.Equal(t, uint(3), rule([]rune{'a', 'b', 'c'}))
}

func Test_Satisfies_01(t *testing.T) {
	even := Satisfies(func(r rune) bool { return r%2 == 0 })
	//
	assert.Equal(t, uint(1), even([]rune{'b'}))
	assert.Equal(t, uint(0), even([]rune{'a'}))
	assert.Equal(t, uint(0), even(nil))
}

// ============================================================================
// Framework
// ============================================================================

const (
	END_OF uint = iota
	WSPACE
	LBRACKET
	RBRACKET
	NUMBER
	IDENT
)

var (
	letter = Or(Within('a', 'z'), Within('A', 'Z'), Unit('_'))
	digit  = Within('0', '9')
)

var rules = []LexRule[rune]{
	Rule(Unit('['), LBRACKET),
	Rule(Unit(']'), RBRACKET),
	Rule(Many(Or(Unit(' '), Unit('\t'))), WSPACE),
	Rule(Many(Or(digit, Unit('.'))), NUMBER),
	Rule(Sequence(letter, Many(Or(letter, digit))), IDENT),
	Rule(Eof[rune](), END_OF),
}

func checkLexer(t *testing.T, input string, remainder uint, expected ...Token) {
	items := []rune(input)
	lexer := NewLexer(items, rules...)
	//
	assert.Equal(t, expected, lexer.Collect())
	assert.Equal(t, remainder, lexer.Remaining())
}
