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
	"github.com/microcad-lang/go-microcad/pkg/syntax"
	"github.com/microcad-lang/go-microcad/pkg/util/source"
	"gopkg.in/yaml.v3"
)

var workbenchKinds = map[string]syntax.WorkbenchKind{
	"sketch": syntax.Sketch,
	"part":   syntax.Part,
	"op":     syntax.Operation,
}

var qualifiers = map[string]syntax.Qualifier{
	"assign": syntax.Value,
	"const":  syntax.Const,
	"prop":   syntax.Prop,
}

func (p *decoder) statements(node *yaml.Node) []syntax.Statement {
	var stmts []syntax.Statement
	//
	for _, item := range p.items(node) {
		if stmt := p.statement(item); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	//
	return stmts
}

// Decode a statement, which is a mapping with exactly one key identifying its
// kind, plus (optionally) its attributes.
func (p *decoder) statement(node *yaml.Node) syntax.Statement {
	var (
		kind, body *yaml.Node
		attrs      []syntax.Attribute
		keys, vals = p.entries(node)
	)
	//
	for i, key := range keys {
		switch {
		case key.Value == "attributes":
			attrs = p.attributes(vals[i])
		case kind == nil:
			kind, body = key, vals[i]
		default:
			p.errorf(key, "statement is both %s and %s", kind.Value, key.Value)
		}
	}
	//
	if kind == nil {
		p.errorf(node, "expected statement")
		return nil
	}
	//
	ref := p.ref(kind)
	//
	if q, ok := qualifiers[kind.Value]; ok {
		return p.assignment(body, q, attrs, ref)
	} else if kind.Value == "expr" {
		return &syntax.ExpressionStatement{Attributes: attrs, Expr: p.expression(body), Ref: ref}
	} else if attrs != nil {
		p.errorf(kind, "%s statement cannot have attributes", kind.Value)
	}
	//
	if k, ok := workbenchKinds[kind.Value]; ok {
		return p.workbench(body, k, ref)
	}
	//
	switch kind.Value {
	case "module":
		return p.module(body, ref)
	case "init":
		fields := p.fields(body, "params", "body")
		//
		return &syntax.InitDefinition{Params: p.parameters(fields["params"]), Body: p.statements(fields["body"]),
			Ref: ref}
	case "function":
		fields := p.fields(body, "name", "pub", "params", "returns", "body")
		if !p.require(body, fields, "name") {
			return nil
		}
		//
		return &syntax.FunctionDefinition{Visibility: p.visibility(fields["pub"]), Name: p.identifier(fields["name"]),
			Params: p.parameters(fields["params"]), Return: p.typeAnnotation(fields["returns"]),
			Body: p.statements(fields["body"]), Ref: ref}
	case "use":
		return p.use(body, ref)
	case "return":
		return &syntax.ReturnStatement{Value: p.expression(body), Ref: ref}
	case "if":
		fields := p.fields(body, "cond", "then", "else")
		if !p.require(body, fields, "cond") {
			return nil
		}
		//
		return &syntax.IfStatement{Cond: p.expression(fields["cond"]), Then: p.statements(fields["then"]),
			Else: p.statements(fields["else"]), Ref: ref}
	}
	//
	p.errorf(kind, "unknown statement \"%s\"", kind.Value)
	//
	return nil
}

// Modules are either given inline, or as the name of an external module (i.e.
// another source file).
func (p *decoder) module(node *yaml.Node, ref source.Ref) syntax.Statement {
	if node.Kind == yaml.ScalarNode {
		return &syntax.ModuleDefinition{Name: p.identifier(node), External: true, Ref: ref}
	}
	//
	fields := p.fields(node, "name", "pub", "body")
	if !p.require(node, fields, "name") {
		return nil
	}
	//
	return &syntax.ModuleDefinition{Visibility: p.visibility(fields["pub"]), Name: p.identifier(fields["name"]),
		Body: p.statements(fields["body"]), Ref: ref}
}

func (p *decoder) workbench(node *yaml.Node, kind syntax.WorkbenchKind, ref source.Ref) syntax.Statement {
	fields := p.fields(node, "name", "pub", "plan", "body")
	if !p.require(node, fields, "name") {
		return nil
	}
	//
	return &syntax.WorkbenchDefinition{Visibility: p.visibility(fields["pub"]), Kind: kind,
		Name: p.identifier(fields["name"]), Plan: p.parameters(fields["plan"]), Body: p.statements(fields["body"]),
		Ref: ref}
}

// Use statements give one or more declarations, either directly or alongside
// their visibility.
func (p *decoder) use(node *yaml.Node, ref source.Ref) syntax.Statement {
	var (
		stmt  = &syntax.UseStatement{Ref: ref}
		names = node
	)
	//
	if node.Kind == yaml.MappingNode {
		fields := p.fields(node, "pub", "names")
		if !p.require(node, fields, "names") {
			return nil
		}
		//
		stmt.Visibility = p.visibility(fields["pub"])
		names = fields["names"]
	}
	//
	if names.Kind == yaml.ScalarNode {
		names = &yaml.Node{Kind: yaml.SequenceNode, Content: []*yaml.Node{names}}
	}
	//
	for _, item := range p.items(names) {
		decl, err := parseUse(p.scalar(item), p.ref(item))
		if err != nil {
			p.report(err)
			continue
		}
		//
		stmt.Decls = append(stmt.Decls, decl)
	}
	//
	return stmt
}

func (p *decoder) assignment(node *yaml.Node, qualifier syntax.Qualifier, attrs []syntax.Attribute,
	ref source.Ref) syntax.Statement {
	//
	fields := p.fields(node, "name", "pub", "type", "value")
	if !p.require(node, fields, "name", "value") {
		return nil
	}
	//
	return &syntax.AssignmentStatement{Attributes: attrs, Visibility: p.visibility(fields["pub"]),
		Qualifier: qualifier, Name: p.identifier(fields["name"]), Type: p.typeAnnotation(fields["type"]),
		Value: p.expression(fields["value"]), Ref: ref}
}

func (p *decoder) visibility(node *yaml.Node) syntax.Visibility {
	if p.boolean(node) {
		return syntax.Public
	}
	//
	return syntax.Private
}

// Parameters are given either by name alone, or as a mapping with an optional
// type and default.
func (p *decoder) parameters(node *yaml.Node) syntax.ParameterList {
	var params syntax.ParameterList
	//
	for _, item := range p.items(node) {
		if item.Kind == yaml.ScalarNode {
			params = append(params, syntax.Parameter{Name: p.identifier(item), Ref: p.ref(item)})
			continue
		}
		//
		fields := p.fields(item, "name", "type", "default")
		if !p.require(item, fields, "name") {
			continue
		}
		//
		param := syntax.Parameter{Name: p.identifier(fields["name"]), Type: p.typeAnnotation(fields["type"]),
			Ref: p.ref(item)}
		//
		if def, ok := fields["default"]; ok {
			param.Default = p.expression(def)
		}
		//
		params = append(params, param)
	}
	//
	return params
}

// Attributes are given either as a single key (the attribute name) mapped to
// its value, or in full with a name and arguments.
func (p *decoder) attributes(node *yaml.Node) []syntax.Attribute {
	var attrs []syntax.Attribute
	//
	for _, item := range p.items(node) {
		keys, vals := p.entries(item)
		//
		if len(keys) == 1 && keys[0].Value != "name" {
			attrs = append(attrs, syntax.Attribute{Name: p.identifier(keys[0]), Value: p.expression(vals[0]),
				Ref: p.ref(keys[0])})
			//
			continue
		}
		//
		fields := p.fields(item, "name", "args", "named")
		if !p.require(item, fields, "name") {
			continue
		}
		//
		attrs = append(attrs, syntax.Attribute{Name: p.identifier(fields["name"]),
			Args: p.arguments(fields["args"], fields["named"]), Ref: p.ref(item)})
	}
	//
	return attrs
}
