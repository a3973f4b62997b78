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
package model

import (
	"fmt"
	"io"

	"github.com/microcad-lang/go-microcad/pkg/value"
)

// Attribute is metadata attached to a model (e.g. "#[color = "red"]").  This
// is a closed union, whose variants are the types declared in this file.
type Attribute interface {
	// Name of this attribute (e.g. "color").
	Name() string
	// Fingerprint writes a canonical encoding of this attribute, for hashing.
	Fingerprint(w io.Writer)
	// Sealing method
	attribute()
}

// Export requests the model be exported to a file.
type Export struct {
	Filename string
	// Format identifier (e.g. "svg" or "stl"), determined from the filename
	// extension when not given explicitly.
	Format string
}

// Measure requests a measurement of the model be reported (e.g. "area").
type Measure struct {
	Kind string
}

// Color requests the model be rendered in a given RGBA colour, whose
// components are in the range [0,1].
type Color struct {
	R, G, B, A float64
}

// Resolution overrides the render resolution for the model and its
// descendants.  Exactly one of the fields is non-zero.
type Resolution struct {
	// Absolute linear resolution in millimetres.
	Linear float64
	// Resolution relative to that of the parent, as a fraction (e.g. 2.0 for
	// 200%).
	Relative float64
}

// Custom is any other attribute, whose arguments are retained as given.
type Custom struct {
	Id   string
	Args value.Tuple
}

func (*Export) attribute()     {}
func (*Measure) attribute()    {}
func (*Color) attribute()      {}
func (*Resolution) attribute() {}
func (*Custom) attribute()     {}

// Name of this attribute.
func (*Export) Name() string { return "export" }

// Name of this attribute.
func (*Measure) Name() string { return "measure" }

// Name of this attribute.
func (*Color) Name() string { return "color" }

// Name of this attribute.
func (*Resolution) Name() string { return "resolution" }

// Name of this attribute.
func (p *Custom) Name() string { return p.Id }

// Fingerprint writes a canonical encoding of this attribute.
func (p *Export) Fingerprint(w io.Writer) {
	value.Fingerprint(w, value.String("export:"+p.Filename+":"+p.Format), nil)
}

// Fingerprint writes a canonical encoding of this attribute.
func (p *Measure) Fingerprint(w io.Writer) {
	value.Fingerprint(w, value.String("measure:"+p.Kind), nil)
}

// Fingerprint writes a canonical encoding of this attribute.
func (p *Color) Fingerprint(w io.Writer) {
	value.Fingerprint(w, value.String("color"), nil)
	//
	for _, c := range []float64{p.R, p.G, p.B, p.A} {
		value.Fingerprint(w, value.NewScalar(c), nil)
	}
}

// Fingerprint writes a canonical encoding of this attribute.
func (p *Resolution) Fingerprint(w io.Writer) {
	value.Fingerprint(w, value.String("resolution"), nil)
	value.Fingerprint(w, value.NewLength(p.Linear), nil)
	value.Fingerprint(w, value.NewScalar(p.Relative), nil)
}

// Fingerprint writes a canonical encoding of this attribute.
func (p *Custom) Fingerprint(w io.Writer) {
	value.Fingerprint(w, value.String(p.Id), nil)
	// Models are not expected as attribute arguments, so are identified by
	// handle only.
	value.Fingerprint(w, p.Args, func(id value.ModelId) uint64 { return uint64(id) })
}

func (p *Export) String() string {
	return fmt.Sprintf("export = %q (%s)", p.Filename, p.Format)
}

func (p *Measure) String() string {
	return fmt.Sprintf("measure = %s", p.Kind)
}

func (p *Color) String() string {
	return fmt.Sprintf("color = (%g, %g, %g, %g)", p.R, p.G, p.B, p.A)
}

func (p *Resolution) String() string {
	if p.Relative != 0 {
		return fmt.Sprintf("resolution = %g%%", p.Relative*100)
	}
	//
	return fmt.Sprintf("resolution = %gmm", p.Linear)
}

func (p *Custom) String() string {
	return fmt.Sprintf("%s%s", p.Id, p.Args.String())
}

// Attributes is an ordered list of attributes attached to a model.
type Attributes []Attribute

// Get returns the first attribute with the given name (if any).
func (p Attributes) Get(name string) (Attribute, bool) {
	for _, attr := range p {
		if attr.Name() == name {
			return attr, true
		}
	}
	//
	return nil, false
}

// Exports returns all export attributes in this list.
func (p Attributes) Exports() []*Export {
	var exports []*Export
	//
	for _, attr := range p {
		if e, ok := attr.(*Export); ok {
			exports = append(exports, e)
		}
	}
	//
	return exports
}

// Resolution returns the resolution attribute in this list (if any).
func (p Attributes) Resolution() (*Resolution, bool) {
	if attr, ok := p.Get("resolution"); ok {
		return attr.(*Resolution), true
	}
	//
	return nil, false
}

// Color returns the colour attribute in this list (if any).
func (p Attributes) Color() (*Color, bool) {
	if attr, ok := p.Get("color"); ok {
		return attr.(*Color), true
	}
	//
	return nil, false
}
