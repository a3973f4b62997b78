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
package value

import (
	"fmt"
	"math"

	"github.com/microcad-lang/go-microcad/pkg/syntax"
)

// Unit describes a unit of measure, in terms of the dimension it measures and
// the factor required to convert it into the base unit of that dimension.
type Unit struct {
	Dim    QuantityType
	Factor float64
}

var units = map[string]Unit{
	// Scalars
	"":  {Scalar, 1},
	"%": {Scalar, 0.01},
	// Lengths
	"µm": {Length, 0.001},
	"um": {Length, 0.001},
	"mm": {Length, 1},
	"cm": {Length, 10},
	"m":  {Length, 1000},
	"in": {Length, 25.4},
	"\"": {Length, 25.4},
	"ft": {Length, 304.8},
	// Areas
	"mm²": {Area, 1},
	"mm2": {Area, 1},
	"cm²": {Area, 100},
	"cm2": {Area, 100},
	"m²":  {Area, 1e6},
	"m2":  {Area, 1e6},
	// Volumes
	"mm³": {Volume, 1},
	"mm3": {Volume, 1},
	"cm³": {Volume, 1000},
	"cm3": {Volume, 1000},
	"m³":  {Volume, 1e9},
	"m3":  {Volume, 1e9},
	"ml":  {Volume, 1000},
	"l":   {Volume, 1e6},
	// Angles
	"rad":  {Angle, 1},
	"°":    {Angle, math.Pi / 180},
	"deg":  {Angle, math.Pi / 180},
	"grad": {Angle, math.Pi / 200},
	"turn": {Angle, 2 * math.Pi},
	// Weights
	"g":  {Weight, 1},
	"kg": {Weight, 1000},
	"lb": {Weight, 453.59237},
	// Densities
	"g/mm³": {Density, 1},
	"g/cm³": {Density, 0.001},
}

// LookupUnit returns the unit with the given name.
func LookupUnit(name string) (Unit, bool) {
	u, ok := units[name]
	return u, ok
}

// WithUnit applies a given unit to a numeric value.  Integers and scalars can
// be given a unit, but quantities which already have a dimension cannot.
func WithUnit(val Value, unit string) (Value, error) {
	if unit == "" {
		return val, nil
	}
	//
	u, ok := LookupUnit(unit)
	if !ok {
		return None{}, fmt.Errorf("unknown unit \"%s\"", unit)
	}
	//
	switch v := val.(type) {
	case Integer:
		return Quantity{float64(v) * u.Factor, u.Dim}, nil
	case Quantity:
		if v.Dim != Scalar {
			return None{}, fmt.Errorf("cannot apply unit \"%s\" to %s", unit, v.Dim)
		}
		//
		return Quantity{v.Value * u.Factor, u.Dim}, nil
	}
	//
	return None{}, fmt.Errorf("cannot apply unit \"%s\" to %s", unit, val.Type())
}

// FromAnnotation converts a declared type into a type.
func FromAnnotation(ann *syntax.TypeAnnotation) (Type, error) {
	switch {
	case ann.Elem != nil:
		elem, err := FromAnnotation(ann.Elem)
		if err != nil {
			return InvalidType(), err
		}
		//
		return ArrayOf(elem), nil
	case ann.Fields != nil:
		fields := make([]Field, len(ann.Fields))
		//
		for i, f := range ann.Fields {
			t, err := FromAnnotation(f.Type)
			if err != nil {
				return InvalidType(), err
			}
			//
			fields[i] = Field{f.Name, t}
		}
		//
		return TupleOf(fields...), nil
	}
	//
	if t, ok := ParseTypeName(ann.Name); ok {
		return t, nil
	}
	//
	return InvalidType(), fmt.Errorf("unknown type \"%s\"", ann.Name)
}
