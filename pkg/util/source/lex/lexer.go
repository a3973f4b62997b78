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

import "github.com/microcad-lang/go-microcad/pkg/util/source"

// Token tags a span of the input being scanned with a kind.
type Token struct {
	Kind uint
	Span source.Span
}

// LexRule associates the input matched by a scanner with a given token kind.
//
// nolint
type LexRule[T any] struct {
	scanner Scanner[T]
	tag     uint
}

// Rule constructs a lexing rule which tags input matched by a given scanner.
func Rule[T any](scanner Scanner[T], tag uint) LexRule[T] {
	return LexRule[T]{scanner, tag}
}

// Lexer splits an input sequence into tokens, by applying the first matching
// rule at each position.
type Lexer[T any] struct {
	items []T
	index int
	rules []LexRule[T]
	// At most one token scanned ahead
	buffer []Token
}

// NewLexer constructs a lexer for a given input using a given set of rules.
func NewLexer[T any](input []T, rules ...LexRule[T]) *Lexer[T] {
	return &Lexer[T]{input, 0, rules, nil}
}

// Remaining returns the number of items which could not be tokenised.
func (p *Lexer[T]) Remaining() uint {
	return uint(max(0, len(p.items)-p.index))
}

// HasNext checks whether another token can be scanned.
func (p *Lexer[T]) HasNext() bool {
	p.scan()
	return len(p.buffer) > 0
}

// Next returns the next token and advances the lexer.
func (p *Lexer[T]) Next() Token {
	next := p.buffer[0]
	p.buffer = p.buffer[1:]
	// Matching the end of input moves beyond it
	if p.index == len(p.items) {
		p.index++
	} else {
		p.index = next.Span.End()
	}
	//
	return next
}

// Collect scans all remaining tokens.  Scanning stops early at the first
// position which no rule matches, as reported by Remaining.
func (p *Lexer[T]) Collect() []Token {
	var tokens []Token
	//
	for p.HasNext() {
		tokens = append(tokens, p.Next())
	}
	//
	return tokens
}

func (p *Lexer[T]) scan() {
	if len(p.buffer) != 0 || p.index > len(p.items) {
		return
	}
	//
	for _, r := range p.rules {
		if n := r.scanner(p.items[p.index:]); n > 0 {
			end := min(len(p.items), p.index+int(n))
			p.buffer = append(p.buffer, Token{r.tag, source.NewSpan(p.index, end)})
			//
			return
		}
	}
}
