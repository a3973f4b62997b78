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
package document

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/microcad-lang/go-microcad/pkg/syntax"
	"github.com/microcad-lang/go-microcad/pkg/util/source"
	"github.com/microcad-lang/go-microcad/pkg/util/source/lex"
)

// Token kinds of the inline text grammar, which covers names, types, use
// declarations and numbers with units.
const (
	END_OF uint = iota
	WHITESPACE
	PATH_SEP
	COLON
	COMMA
	STAR
	LBRACKET
	RBRACKET
	LPAREN
	RPAREN
	NUMBER
	IDENTIFIER
	SYMBOL
)

var (
	letter = lex.Or(lex.Within('a', 'z'), lex.Within('A', 'Z'), lex.Unit('_'))
	digit  = lex.Within('0', '9')
	// Anything else which can appear in a unit (e.g. "°" or "g/cm³")
	symbol = lex.Satisfies(func(r rune) bool {
		return !unicode.IsSpace(r) && !strings.ContainsRune(":,*[]()", r)
	})
)

var textRules = []lex.LexRule[rune]{
	lex.Rule(lex.Many(lex.Or(lex.Unit(' '), lex.Unit('\t'))), WHITESPACE),
	lex.Rule(lex.Unit(':', ':'), PATH_SEP),
	lex.Rule(lex.Unit(':'), COLON),
	lex.Rule(lex.Unit(','), COMMA),
	lex.Rule(lex.Unit('*'), STAR),
	lex.Rule(lex.Unit('['), LBRACKET),
	lex.Rule(lex.Unit(']'), RBRACKET),
	lex.Rule(lex.Unit('('), LPAREN),
	lex.Rule(lex.Unit(')'), RPAREN),
	lex.Rule(lex.Sequence(digit, lex.Many(lex.Or(digit, lex.Unit('.')))), NUMBER),
	lex.Rule(lex.Sequence(letter, lex.Many(lex.Or(letter, digit))), IDENTIFIER),
	lex.Rule(lex.Many(symbol), SYMBOL),
	lex.Rule(lex.Eof[rune](), END_OF),
}

// Parser for the inline text grammar.  Whitespace is dropped, and the token
// stream always ends with END_OF.
type textParser struct {
	text   []rune
	tokens []lex.Token
	index  int
	// Location of the enclosing document node.
	ref source.Ref
}

func newTextParser(text string, ref source.Ref) (*textParser, error) {
	var (
		runes  = []rune(text)
		lexer  = lex.NewLexer(runes, textRules...)
		tokens []lex.Token
	)
	//
	for _, token := range lexer.Collect() {
		if token.Kind != WHITESPACE {
			tokens = append(tokens, token)
		}
	}
	//
	if lexer.Remaining() > 0 {
		return nil, &Error{fmt.Sprintf("unexpected character in \"%s\"", text), ref}
	}
	//
	return &textParser{runes, tokens, 0, ref}, nil
}

func (p *textParser) peek() lex.Token {
	return p.tokens[p.index]
}

func (p *textParser) next() lex.Token {
	token := p.tokens[p.index]
	//
	if token.Kind != END_OF {
		p.index++
	}
	//
	return token
}

func (p *textParser) match(kind uint) bool {
	if p.peek().Kind == kind {
		p.next()
		return true
	}
	//
	return false
}

func (p *textParser) expect(kind uint, what string) (lex.Token, error) {
	token := p.next()
	//
	if token.Kind != kind {
		return token, p.errorf("expected %s, found \"%s\"", what, p.string(token))
	}
	//
	return token, nil
}

func (p *textParser) string(token lex.Token) string {
	if token.Kind == END_OF {
		return "end of text"
	}
	//
	return string(p.text[token.Span.Start():token.Span.End()])
}

func (p *textParser) errorf(format string, args ...any) error {
	return &Error{fmt.Sprintf(format, args...), p.ref}
}

// Check all text was consumed.
func (p *textParser) end() error {
	if token := p.peek(); token.Kind != END_OF {
		return p.errorf("unexpected \"%s\"", p.string(token))
	}
	//
	return nil
}

// ============================================================================
// Grammar
// ============================================================================

// Parse a name of the form "super::a::b".
func parseName(text string, ref source.Ref) (syntax.QualifiedName, error) {
	p, err := newTextParser(text, ref)
	if err != nil {
		return syntax.QualifiedName{}, err
	}
	//
	name, _, err := p.qualifiedName(false)
	if err == nil {
		err = p.end()
	}
	//
	return name, err
}

// Parse a qualified name, optionally allowing a trailing "::*".
func (p *textParser) qualifiedName(allowStar bool) (syntax.QualifiedName, bool, error) {
	var segments []string
	//
	for {
		if allowStar && len(segments) > 0 && p.match(STAR) {
			return p.name(segments), true, nil
		}
		//
		token, err := p.expect(IDENTIFIER, "identifier")
		if err != nil {
			return syntax.QualifiedName{}, false, err
		}
		//
		segments = append(segments, p.string(token))
		//
		if !p.match(PATH_SEP) {
			return p.name(segments), false, nil
		}
	}
}

func (p *textParser) name(segments []string) syntax.QualifiedName {
	name := syntax.ParseQualifiedName(strings.Join(segments, "::"))
	name.Ref = p.ref
	//
	for i := range name.Parts {
		name.Parts[i].Ref = p.ref
	}
	//
	return name
}

// Parse a use declaration of the form "a::b", "a::*" or "a::b as c".
func parseUse(text string, ref source.Ref) (syntax.UseDeclaration, error) {
	p, err := newTextParser(text, ref)
	if err != nil {
		return syntax.UseDeclaration{}, err
	}
	//
	name, all, err := p.qualifiedName(true)
	if err != nil {
		return syntax.UseDeclaration{}, err
	}
	//
	decl := syntax.UseDeclaration{Name: name, All: all, Ref: ref}
	//
	if token := p.peek(); !all && token.Kind == IDENTIFIER && p.string(token) == "as" {
		p.next()
		//
		alias, err := p.expect(IDENTIFIER, "alias")
		if err != nil {
			return decl, err
		}
		//
		id := syntax.Identifier{Name: p.string(alias), Ref: ref}
		decl.Alias = &id
	}
	//
	return decl, p.end()
}

// Parse a type of the form "Length", "[Length]" or "(x: Length, y: Length)".
func parseType(text string, ref source.Ref) (*syntax.TypeAnnotation, error) {
	p, err := newTextParser(text, ref)
	if err != nil {
		return nil, err
	}
	//
	t, err := p.typeAnnotation()
	if err == nil {
		err = p.end()
	}
	//
	return t, err
}

func (p *textParser) typeAnnotation() (*syntax.TypeAnnotation, error) {
	switch token := p.next(); token.Kind {
	case IDENTIFIER:
		return &syntax.TypeAnnotation{Name: p.string(token), Ref: p.ref}, nil
	case LBRACKET:
		elem, err := p.typeAnnotation()
		if err != nil {
			return nil, err
		} else if _, err = p.expect(RBRACKET, "\"]\""); err != nil {
			return nil, err
		}
		//
		return &syntax.TypeAnnotation{Elem: elem, Ref: p.ref}, nil
	case LPAREN:
		return p.tupleType()
	default:
		return nil, p.errorf("expected type, found \"%s\"", p.string(token))
	}
}

func (p *textParser) tupleType() (*syntax.TypeAnnotation, error) {
	fields := []syntax.TupleTypeField{}
	//
	for !p.match(RPAREN) {
		if len(fields) > 0 {
			if _, err := p.expect(COMMA, "\",\""); err != nil {
				return nil, err
			}
		}
		//
		var name string
		// Named field?
		if p.peek().Kind == IDENTIFIER && p.tokens[p.index+1].Kind == COLON {
			name = p.string(p.next())
			p.next()
		}
		//
		t, err := p.typeAnnotation()
		if err != nil {
			return nil, err
		}
		//
		fields = append(fields, syntax.TupleTypeField{Name: name, Type: t})
	}
	//
	return &syntax.TypeAnnotation{Fields: fields, Ref: p.ref}, nil
}

// Parse a number with an optional unit, such as "4.2mm" or "-90°".  The
// second result is false if the text does not begin with a number at all.
func parseNumber(text string, ref source.Ref) (*syntax.NumberLiteral, bool, error) {
	var (
		body     = strings.TrimPrefix(text, "-")
		negative = len(body) != len(text)
		runes    = []rune(body)
		lexer    = lex.NewLexer(runes, textRules...)
	)
	//
	if !lexer.HasNext() {
		return nil, false, nil
	}
	//
	token := lexer.Next()
	if token.Kind != NUMBER {
		return nil, false, nil
	}
	//
	number := string(runes[token.Span.Start():token.Span.End()])
	unit := strings.TrimSpace(string(runes[token.Span.End():]))
	//
	val, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return nil, true, &Error{fmt.Sprintf("invalid number \"%s\"", text), ref}
	} else if negative {
		val = -val
	}
	//
	return &syntax.NumberLiteral{Value: val, Unit: unit, Ref: ref}, true, nil
}
