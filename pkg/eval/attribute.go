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
package eval

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/microcad-lang/go-microcad/pkg/model"
	"github.com/microcad-lang/go-microcad/pkg/syntax"
	"github.com/microcad-lang/go-microcad/pkg/value"
)

var namedColors = map[string]model.Color{
	"black":   {R: 0, G: 0, B: 0, A: 1},
	"white":   {R: 1, G: 1, B: 1, A: 1},
	"red":     {R: 1, G: 0, B: 0, A: 1},
	"green":   {R: 0, G: 1, B: 0, A: 1},
	"blue":    {R: 0, G: 0, B: 1, A: 1},
	"yellow":  {R: 1, G: 1, B: 0, A: 1},
	"cyan":    {R: 0, G: 1, B: 1, A: 1},
	"magenta": {R: 1, G: 0, B: 1, A: 1},
	"gray":    {R: 0.5, G: 0.5, B: 0.5, A: 1},
	"orange":  {R: 1, G: 0.65, B: 0, A: 1},
}

// Attach the attributes of a statement to the model it produced.  Attributes
// of anything other than a model have no effect.
func (p *Context) applyAttributes(attrs []syntax.Attribute, val value.Value) value.Value {
	if len(attrs) == 0 || value.IsNone(val) {
		return val
	}
	//
	m, ok := val.(value.Model)
	if !ok {
		p.Warning(attrs[0].Ref, "attributes of %s are ignored", val.Type().String())
		return val
	}
	//
	for _, attr := range attrs {
		if a, err := p.evalAttribute(attr); err != nil {
			p.Error(attr.Ref, err)
		} else {
			p.tree.AddAttributes(m.Id, a)
		}
	}
	//
	return val
}

func (p *Context) evalAttribute(attr syntax.Attribute) (model.Attribute, error) {
	switch attr.Name.Name {
	case "export":
		return p.exportAttribute(attr)
	case "measure":
		if name, ok := attr.Value.(*syntax.NameExpr); ok && name.Name.Depth() == 1 {
			return &model.Measure{Kind: name.Name.Head().Name}, nil
		}
		//
		kind, err := p.stringAttribute(attr)
		//
		return &model.Measure{Kind: kind}, err
	case "color":
		return p.colorAttribute(attr)
	case "resolution":
		return p.resolutionAttribute(attr)
	}
	// Anything else is kept as is
	custom := &model.Custom{Id: attr.Name.Name}
	//
	if attr.Value != nil {
		custom.Args.Add("", p.evalExpr(attr.Value))
	}
	//
	for _, arg := range attr.Args {
		name := ""
		if arg.Name != nil {
			name = arg.Name.Name
		}
		//
		custom.Args.Add(name, p.evalExpr(arg.Value))
	}
	//
	return custom, nil
}

// Extract the single string argument of an attribute, which is given either
// as its value or as its first argument.
func (p *Context) stringAttribute(attr syntax.Attribute) (string, error) {
	expr := attr.Value
	//
	if expr == nil && len(attr.Args) > 0 {
		expr = attr.Args[0].Value
	}
	//
	if expr == nil {
		return "", NewError(InvalidAttribute, attr.Ref, "attribute %s requires a value", attr.Name.Name)
	}
	//
	val := p.evalExpr(expr)
	//
	if s, ok := val.(value.String); ok {
		return string(s), nil
	}
	//
	return "", NewError(InvalidAttribute, expr.Src(), "attribute %s expects String, found %s", attr.Name.Name,
		val.Type().String())
}

func (p *Context) exportAttribute(attr syntax.Attribute) (model.Attribute, error) {
	filename, err := p.stringAttribute(attr)
	if err != nil {
		return nil, err
	}
	//
	format := strings.TrimPrefix(filepath.Ext(filename), ".")
	//
	for _, arg := range attr.Args {
		if arg.Name != nil && arg.Name.Name == "format" {
			if f, ok := p.evalExpr(arg.Value).(value.String); ok {
				format = string(f)
			}
		}
	}
	//
	if format == "" {
		return nil, NewError(InvalidAttribute, attr.Ref, "cannot determine export format of %q", filename)
	}
	//
	return &model.Export{Filename: filename, Format: strings.ToLower(format)}, nil
}

func (p *Context) colorAttribute(attr syntax.Attribute) (model.Attribute, error) {
	if attr.Value == nil {
		return nil, NewError(InvalidAttribute, attr.Ref, "color requires a value")
	}
	//
	switch v := p.evalExpr(attr.Value).(type) {
	case value.String:
		if c, ok := parseColor(string(v)); ok {
			return c, nil
		}
		//
		return nil, NewError(InvalidAttribute, attr.Value.Src(), "unknown color %q", string(v))
	case value.Tuple:
		components := []float64{0, 0, 0, 1}
		//
		if v.Len() < 3 || v.Len() > 4 {
			break
		}
		//
		for i, item := range v.Items {
			f, ok := value.ToFloat(item)
			if !ok {
				return nil, NewError(InvalidAttribute, attr.Value.Src(), "color components must be numeric")
			}
			//
			components[i] = f
		}
		//
		return &model.Color{R: components[0], G: components[1], B: components[2], A: components[3]}, nil
	}
	//
	return nil, NewError(InvalidAttribute, attr.Value.Src(), "color expects a name, \"#rrggbb\" or (r, g, b, a)")
}

func parseColor(s string) (*model.Color, bool) {
	if c, ok := namedColors[strings.ToLower(s)]; ok {
		return &c, true
	} else if !strings.HasPrefix(s, "#") || (len(s) != 7 && len(s) != 9) {
		return nil, false
	}
	//
	components := []float64{0, 0, 0, 1}
	//
	for i := 0; 1+2*i < len(s); i++ {
		n, err := strconv.ParseUint(s[1+2*i:3+2*i], 16, 8)
		if err != nil {
			return nil, false
		}
		//
		components[i] = float64(n) / 255
	}
	//
	return &model.Color{R: components[0], G: components[1], B: components[2], A: components[3]}, true
}

func (p *Context) resolutionAttribute(attr syntax.Attribute) (model.Attribute, error) {
	if attr.Value == nil {
		return nil, NewError(InvalidAttribute, attr.Ref, "resolution requires a value")
	}
	//
	val := p.evalExpr(attr.Value)
	//
	if q, ok := val.(value.Quantity); ok && q.Value > 0 {
		switch q.Dim {
		case value.Length:
			return &model.Resolution{Linear: q.Value}, nil
		case value.Scalar:
			return &model.Resolution{Relative: q.Value}, nil
		}
	}
	//
	return nil, NewError(InvalidAttribute, attr.Value.Src(), "resolution expects a positive Length or percentage, found %s",
		val.String())
}
