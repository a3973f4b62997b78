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
	"slices"
	"strconv"
	"strings"

	"github.com/microcad-lang/go-microcad/pkg/syntax"
	"gopkg.in/yaml.v3"
)

// BINARY_OPERATORS identifies the operators which can be used as keys of a
// binary expression, such as {"+": [a, b]}.
var BINARY_OPERATORS = []string{"+", "-", "*", "/", "%", "==", "!=", "<", "<=", ">", ">=", "&&", "||"}

// UNARY_OPERATORS maps the keys of a unary expression to their operator.
var UNARY_OPERATORS = map[string]string{"neg": "-", "!": "!"}

// Decode an expression.  Scalars give literals and names, sequences give
// arrays and single-key mappings give everything else.
func (p *decoder) expression(node *yaml.Node) syntax.Expression {
	switch {
	case node == nil:
		return nil
	case node.Kind == yaml.AliasNode:
		return p.expression(node.Alias)
	case node.Kind == yaml.ScalarNode:
		return p.literal(node)
	case node.Kind == yaml.SequenceNode:
		return &syntax.ArrayExpr{Items: p.expressions(node), Ref: p.ref(node)}
	}
	//
	keys, vals := p.entries(node)
	if len(keys) != 1 {
		p.errorf(node, "expected expression")
		return &syntax.BoolLiteral{Ref: p.ref(node)}
	}
	//
	return p.compound(keys[0], vals[0])
}

func (p *decoder) expressions(node *yaml.Node) []syntax.Expression {
	var exprs []syntax.Expression
	//
	for _, item := range p.items(node) {
		exprs = append(exprs, p.expression(item))
	}
	//
	return exprs
}

func (p *decoder) literal(node *yaml.Node) syntax.Expression {
	ref := p.ref(node)
	//
	switch node.Tag {
	case "!!int":
		if v, err := strconv.ParseInt(node.Value, 0, 64); err == nil {
			return &syntax.IntegerLiteral{Value: v, Ref: ref}
		}
	case "!!float":
		if v, err := strconv.ParseFloat(node.Value, 64); err == nil {
			return &syntax.NumberLiteral{Value: v, Ref: ref}
		}
	case "!!bool":
		return &syntax.BoolLiteral{Value: p.boolean(node), Ref: ref}
	case "!!str":
		if node.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle) != 0 {
			return &syntax.StringLiteral{Value: node.Value, Ref: ref}
		}
		//
		return p.text(node)
	}
	//
	p.errorf(node, "unexpected \"%s\"", node.Value)
	//
	return &syntax.BoolLiteral{Ref: ref}
}

// Plain text is a number with a unit, a marker or a name.  Markers must be
// given in full (e.g. {marker: input}) when the text would need quoting.
func (p *decoder) text(node *yaml.Node) syntax.Expression {
	ref := p.ref(node)
	//
	if number, ok, err := parseNumber(node.Value, ref); ok {
		p.report(err)
		//
		if number == nil {
			return &syntax.NumberLiteral{Ref: ref}
		}
		//
		return number
	} else if marker, ok := strings.CutPrefix(node.Value, "@"); ok {
		return &syntax.MarkerExpr{Name: syntax.Identifier{Name: marker, Ref: ref}}
	}
	//
	return &syntax.NameExpr{Name: p.name(node)}
}

func (p *decoder) compound(key *yaml.Node, val *yaml.Node) syntax.Expression {
	ref := p.ref(key)
	//
	if op, ok := UNARY_OPERATORS[key.Value]; ok {
		return &syntax.UnaryExpr{Op: op, Operand: p.expression(val), Ref: ref}
	} else if slices.Contains(BINARY_OPERATORS, key.Value) {
		operands := p.items(val)
		if len(operands) != 2 {
			p.errorf(val, "operator %s expects two operands", key.Value)
			return &syntax.BoolLiteral{Ref: ref}
		}
		//
		return &syntax.BinaryExpr{Op: key.Value, Lhs: p.expression(operands[0]), Rhs: p.expression(operands[1]),
			Ref: ref}
	}
	//
	switch key.Value {
	case "string":
		return &syntax.StringLiteral{Value: p.scalar(val), Ref: ref}
	case "array":
		fields := p.fields(val, "items", "unit")
		return &syntax.ArrayExpr{Items: p.expressions(fields["items"]), Unit: p.unit(fields["unit"]), Ref: ref}
	case "range":
		fields := p.fields(val, "first", "last", "unit")
		if !p.require(val, fields, "first", "last") {
			break
		}
		//
		return &syntax.RangeExpr{First: p.expression(fields["first"]), Last: p.expression(fields["last"]),
			Unit: p.unit(fields["unit"]), Ref: ref}
	case "tuple":
		return &syntax.TupleExpr{Items: p.tupleItems(val), Ref: ref}
	case "call":
		return p.call(val)
	case "method":
		fields := p.fields(val, "receiver", "name", "args", "named")
		if !p.require(val, fields, "receiver", "name") {
			break
		}
		//
		return &syntax.MethodCallExpr{Receiver: p.expression(fields["receiver"]), Name: p.name(fields["name"]),
			Args: p.arguments(fields["args"], fields["named"]), Ref: ref}
	case "field":
		fields := p.fields(val, "receiver", "name")
		if !p.require(val, fields, "receiver", "name") {
			break
		}
		//
		return &syntax.FieldAccessExpr{Receiver: p.expression(fields["receiver"]),
			Field: p.identifier(fields["name"]), Ref: ref}
	case "index":
		fields := p.fields(val, "receiver", "index")
		if !p.require(val, fields, "receiver", "index") {
			break
		}
		//
		return &syntax.IndexExpr{Receiver: p.expression(fields["receiver"]), Index: p.expression(fields["index"]),
			Ref: ref}
	case "marker":
		return &syntax.MarkerExpr{Name: p.identifier(val)}
	case "body":
		return &syntax.BodyExpr{Statements: p.statements(val), Ref: ref}
	case "if":
		fields := p.fields(val, "cond", "then", "else")
		if !p.require(val, fields, "cond", "then", "else") {
			break
		}
		//
		return &syntax.IfExpr{Cond: p.expression(fields["cond"]), Then: p.expression(fields["then"]),
			Else: p.expression(fields["else"]), Ref: ref}
	default:
		p.errorf(key, "unknown expression \"%s\"", key.Value)
	}
	//
	return &syntax.BoolLiteral{Ref: ref}
}

// Calls are given either by name alone (without arguments), or as a mapping
// with the name and arguments.
func (p *decoder) call(node *yaml.Node) syntax.Expression {
	ref := p.ref(node)
	//
	if node.Kind == yaml.ScalarNode {
		return &syntax.CallExpr{Name: p.name(node), Ref: ref}
	}
	//
	fields := p.fields(node, "name", "args", "named")
	if !p.require(node, fields, "name") {
		return &syntax.BoolLiteral{Ref: ref}
	}
	//
	return &syntax.CallExpr{Name: p.name(fields["name"]), Args: p.arguments(fields["args"], fields["named"]),
		Ref: ref}
}

// Positional arguments are given as a sequence, and named arguments as a
// mapping.  Positional arguments come first.
func (p *decoder) arguments(positional *yaml.Node, named *yaml.Node) []syntax.Argument {
	var args []syntax.Argument
	//
	for _, item := range p.items(positional) {
		args = append(args, syntax.Argument{Value: p.expression(item), Ref: p.ref(item)})
	}
	//
	if named != nil {
		keys, vals := p.entries(named)
		//
		for i, key := range keys {
			id := p.identifier(key)
			args = append(args, syntax.Argument{Name: &id, Value: p.expression(vals[i]), Ref: p.ref(key)})
		}
	}
	//
	return args
}

// Tuples are either a sequence of unnamed items, or a mapping of named items.
func (p *decoder) tupleItems(node *yaml.Node) []syntax.TupleItem {
	var items []syntax.TupleItem
	//
	if node.Kind == yaml.SequenceNode {
		for _, item := range node.Content {
			items = append(items, syntax.TupleItem{Value: p.expression(item)})
		}
		//
		return items
	}
	//
	keys, vals := p.entries(node)
	//
	for i, key := range keys {
		id := p.identifier(key)
		items = append(items, syntax.TupleItem{Name: &id, Value: p.expression(vals[i])})
	}
	//
	return items
}

func (p *decoder) unit(node *yaml.Node) string {
	if node == nil {
		return ""
	}
	//
	return p.scalar(node)
}
