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
	"strings"
)

// TypeKind identifies the different categories of type.
type TypeKind uint8

const (
	// InvalidKind is the type of values which could not be evaluated.
	InvalidKind TypeKind = iota
	// NoneKind is the type of the None value.
	NoneKind
	// IntegerKind is the type of integers.
	IntegerKind
	// QuantityKind is the type of quantities (i.e. scalars with units).
	QuantityKind
	// StringKind is the type of strings.
	StringKind
	// BoolKind is the type of booleans.
	BoolKind
	// ArrayKind is the type of (homogeneous) arrays.
	ArrayKind
	// TupleKind is the type of tuples.
	TupleKind
	// MatrixKind is the type of matrices.
	MatrixKind
	// ModelKind is the type of models.
	ModelKind
	// TargetKind is the type of targets (i.e. unevaluated names).
	TargetKind
)

// QuantityType identifies the physical dimension of a quantity.
type QuantityType uint8

const (
	// Scalar is a dimensionless quantity.
	Scalar QuantityType = iota
	// Length is measured in millimetres.
	Length
	// Area is measured in square millimetres.
	Area
	// Volume is measured in cubic millimetres.
	Volume
	// Angle is measured in radians.
	Angle
	// Weight is measured in grams.
	Weight
	// Density is measured in grams per cubic millimetre.
	Density
)

var quantityNames = [...]string{"Scalar", "Length", "Area", "Volume", "Angle", "Weight", "Density"}

var quantityUnits = [...]string{"", "mm", "mm²", "mm³", "rad", "g", "g/mm³"}

func (p QuantityType) String() string {
	return quantityNames[p]
}

// BaseUnit returns the unit in which quantities of this type are stored.
func (p QuantityType) BaseUnit() string {
	return quantityUnits[p]
}

// Type describes the type of a value.  Only the fields relevant to the given
// kind are used (e.g. Elem for arrays).
type Type struct {
	Kind TypeKind
	// Dimension of a quantity type.
	Quantity QuantityType
	// Element type of an array type.
	Elem *Type
	// Fields of a tuple type.
	Fields []Field
	// Dimensions of a matrix type.
	Rows, Cols uint
}

// Field is a single (possibly unnamed) field of a tuple type.
type Field struct {
	Name string
	Type Type
}

// InvalidType is the type of values which could not be evaluated.
func InvalidType() Type { return Type{Kind: InvalidKind} }

// NoneType is the type of None.
func NoneType() Type { return Type{Kind: NoneKind} }

// IntegerType is the type of integers.
func IntegerType() Type { return Type{Kind: IntegerKind} }

// QuantityOf is the type of quantities of a given dimension.
func QuantityOf(q QuantityType) Type { return Type{Kind: QuantityKind, Quantity: q} }

// StringType is the type of strings.
func StringType() Type { return Type{Kind: StringKind} }

// BoolType is the type of booleans.
func BoolType() Type { return Type{Kind: BoolKind} }

// ModelType is the type of models.
func ModelType() Type { return Type{Kind: ModelKind} }

// TargetType is the type of targets.
func TargetType() Type { return Type{Kind: TargetKind} }

// ArrayOf is the type of arrays of a given element type.
func ArrayOf(elem Type) Type { return Type{Kind: ArrayKind, Elem: &elem} }

// MatrixOf is the type of matrices with the given dimensions.
func MatrixOf(rows, cols uint) Type { return Type{Kind: MatrixKind, Rows: rows, Cols: cols} }

// TupleOf is the type of tuples with the given fields.
func TupleOf(fields ...Field) Type { return Type{Kind: TupleKind, Fields: fields} }

// IsArray checks whether this is an array type.
func (p Type) IsArray() bool {
	return p.Kind == ArrayKind
}

// IsNumeric checks whether this is either an integer or a scalar quantity.
func (p Type) IsNumeric() bool {
	return p.Kind == IntegerKind || (p.Kind == QuantityKind && p.Quantity == Scalar)
}

// Equals determines whether two types are identical.
func (p Type) Equals(other Type) bool {
	if p.Kind != other.Kind {
		return false
	}
	//
	switch p.Kind {
	case QuantityKind:
		return p.Quantity == other.Quantity
	case ArrayKind:
		return p.Elem.Equals(*other.Elem)
	case MatrixKind:
		return p.Rows == other.Rows && p.Cols == other.Cols
	case TupleKind:
		if len(p.Fields) != len(other.Fields) {
			return false
		}
		//
		for i, f := range p.Fields {
			if f.Name != other.Fields[i].Name || !f.Type.Equals(other.Fields[i].Type) {
				return false
			}
		}
	}
	//
	return true
}

// Accepts checks whether a value of the given type can be bound to something
// declared with this type.  Observe that a Scalar accepts an Integer.
func (p Type) Accepts(other Type) bool {
	if p.Kind == QuantityKind && p.Quantity == Scalar && other.Kind == IntegerKind {
		return true
	} else if p.Kind == ArrayKind && other.Kind == ArrayKind {
		// An empty array literal has no element type yet, and fits anywhere.
		return other.Elem.Kind == NoneKind || p.Elem.Accepts(*other.Elem)
	}
	//
	return p.Equals(other)
}

func (p Type) String() string {
	switch p.Kind {
	case InvalidKind:
		return "<invalid>"
	case NoneKind:
		return "None"
	case IntegerKind:
		return "Integer"
	case QuantityKind:
		return p.Quantity.String()
	case StringKind:
		return "String"
	case BoolKind:
		return "Bool"
	case ArrayKind:
		return fmt.Sprintf("[%s]", p.Elem.String())
	case TupleKind:
		var fields []string
		//
		for _, f := range p.Fields {
			if f.Name != "" {
				fields = append(fields, fmt.Sprintf("%s: %s", f.Name, f.Type.String()))
			} else {
				fields = append(fields, f.Type.String())
			}
		}
		//
		return fmt.Sprintf("(%s)", strings.Join(fields, ", "))
	case MatrixKind:
		return fmt.Sprintf("Matrix%dx%d", p.Rows, p.Cols)
	case ModelKind:
		return "Model"
	case TargetKind:
		return "Target"
	}
	//
	return "???"
}

// ParseTypeName converts the name of a builtin type into a type.
func ParseTypeName(name string) (Type, bool) {
	for i, n := range quantityNames {
		if n == name {
			return QuantityOf(QuantityType(i)), true
		}
	}
	//
	switch name {
	case "Integer":
		return IntegerType(), true
	case "String":
		return StringType(), true
	case "Bool":
		return BoolType(), true
	case "Model", "Models":
		return ModelType(), true
	case "Matrix2":
		return MatrixOf(2, 2), true
	case "Matrix3":
		return MatrixOf(3, 3), true
	case "Matrix4":
		return MatrixOf(4, 4), true
	}
	//
	return InvalidType(), false
}
