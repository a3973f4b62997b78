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
	"slices"
	"strconv"
	"strings"

	"github.com/microcad-lang/go-microcad/pkg/syntax"
)

// Value represents the result of evaluating an expression.  This is a closed
// union, whose variants are the types declared in this file.
type Value interface {
	// Type returns the type of this value.
	Type() Type
	// String returns a human-readable representation of this value.
	String() string
	// Sealing method, which prevents values being declared elsewhere.
	value()
}

// ModelId is a handle to a model within a model tree.
type ModelId uint32

// ============================================================================
// Scalars
// ============================================================================

// None represents the absence of a value.  This is also used as a substitute
// for any value which could not be evaluated due to an error.
type None struct{}

// Integer is a signed integer value.
type Integer int64

// Quantity is a floating point value of some dimension, such as a length or an
// angle.  The value is always stored in the base unit of its dimension.
type Quantity struct {
	Value float64
	Dim   QuantityType
}

// String is a string value.
type String string

// Bool is a boolean value.
type Bool bool

// NewScalar constructs a dimensionless quantity.
func NewScalar(v float64) Quantity {
	return Quantity{v, Scalar}
}

// NewLength constructs a length (in millimetres).
func NewLength(v float64) Quantity {
	return Quantity{v, Length}
}

// NewAngle constructs an angle (in radians).
func NewAngle(v float64) Quantity {
	return Quantity{v, Angle}
}

func (None) value()     {}
func (Integer) value()  {}
func (Quantity) value() {}
func (String) value()   {}
func (Bool) value()     {}

// Type returns the type of this value.
func (None) Type() Type { return NoneType() }

// Type returns the type of this value.
func (Integer) Type() Type { return IntegerType() }

// Type returns the type of this value.
func (p Quantity) Type() Type { return QuantityOf(p.Dim) }

// Type returns the type of this value.
func (String) Type() Type { return StringType() }

// Type returns the type of this value.
func (Bool) Type() Type { return BoolType() }

func (None) String() string { return "None" }

func (p Integer) String() string { return strconv.FormatInt(int64(p), 10) }

func (p Quantity) String() string {
	return formatFloat(p.Value) + p.Dim.BaseUnit()
}

func (p String) String() string { return string(p) }

func (p Bool) String() string { return strconv.FormatBool(bool(p)) }

// ============================================================================
// Compound values
// ============================================================================

// Array is an ordered list of values which all have the same type.
type Array struct {
	Elem  Type
	Items []Value
}

// NewArray constructs an array from a given set of items.  The element type is
// determined from the first item and, hence, an empty array has element type
// None.  It is assumed the items are homogeneous (see CheckArray).
func NewArray(items ...Value) Array {
	if len(items) == 0 {
		return Array{NoneType(), nil}
	}
	//
	return Array{items[0].Type(), items}
}

// Tuple is an ordered list of values, each of which may be named.
type Tuple struct {
	// Names of items (an empty name indicates a positional item).
	Names []string
	Items []Value
}

// NewTuple constructs an (initially empty) tuple.
func NewTuple() Tuple {
	return Tuple{}
}

// Matrix is a dense matrix of floating point values stored in row-major order.
type Matrix struct {
	Rows, Cols uint
	Data       []float64
}

// Model refers to a model in the model tree produced during evaluation.
type Model struct {
	Id ModelId
}

// Target is the unevaluated form of a name, as captured by builtins which
// operate in "target mode" (e.g. assert_valid).  If the name could be resolved,
// then the resolved symbol is also recorded.
type Target struct {
	Name syntax.QualifiedName
	// Indicates whether the name was resolved.
	Resolved bool
	// Identifier of the resolved symbol (if any).
	Symbol uint32
}

// Return wraps a value being returned from a function.  This is used only for
// control flow, and never escapes the enclosing function call.
type Return struct {
	Inner Value
}

func (Array) value()  {}
func (Tuple) value()  {}
func (Matrix) value() {}
func (Model) value()  {}
func (Target) value() {}
func (Return) value() {}

// Type returns the type of this value.
func (p Array) Type() Type { return ArrayOf(p.Elem) }

// Type returns the type of this value.
func (p Tuple) Type() Type {
	fields := make([]Field, len(p.Items))
	//
	for i, item := range p.Items {
		fields[i] = Field{p.Names[i], item.Type()}
	}
	//
	return TupleOf(fields...)
}

// Type returns the type of this value.
func (p Matrix) Type() Type { return MatrixOf(p.Rows, p.Cols) }

// Type returns the type of this value.
func (Model) Type() Type { return ModelType() }

// Type returns the type of this value.
func (Target) Type() Type { return TargetType() }

// Type returns the type of this value.
func (p Return) Type() Type { return p.Inner.Type() }

func (p Array) String() string {
	return "[" + joinValues(p.Items) + "]"
}

func (p Tuple) String() string {
	var builder strings.Builder
	//
	builder.WriteString("(")
	//
	for i, item := range p.Items {
		if i != 0 {
			builder.WriteString(", ")
		}
		//
		if p.Names[i] != "" {
			builder.WriteString(p.Names[i])
			builder.WriteString(" = ")
		}
		//
		builder.WriteString(item.String())
	}
	//
	builder.WriteString(")")
	//
	return builder.String()
}

func (p Matrix) String() string {
	var rows []string
	//
	for r := uint(0); r < p.Rows; r++ {
		var cols []string
		for c := uint(0); c < p.Cols; c++ {
			cols = append(cols, formatFloat(p.At(r, c)))
		}
		//
		rows = append(rows, strings.Join(cols, " "))
	}
	//
	return "[" + strings.Join(rows, "; ") + "]"
}

func (p Model) String() string { return fmt.Sprintf("<model %d>", p.Id) }

func (p Target) String() string {
	if p.Resolved {
		return fmt.Sprintf("%s (resolved)", p.Name.String())
	}
	//
	return p.Name.String()
}

func (p Return) String() string { return p.Inner.String() }

// ============================================================================
// Tuple operations
// ============================================================================

// Add a (possibly named) item to this tuple.
func (p *Tuple) Add(name string, val Value) {
	p.Names = append(p.Names, name)
	p.Items = append(p.Items, val)
}

// Get returns the item with the given name in this tuple (if it exists).
func (p *Tuple) Get(name string) (Value, bool) {
	for i, n := range p.Names {
		if n == name {
			return p.Items[i], true
		}
	}
	//
	return nil, false
}

// Len returns the number of items in this tuple.
func (p *Tuple) Len() uint {
	return uint(len(p.Items))
}

// Clone returns a copy of this tuple which can be modified independently.
func (p Tuple) Clone() Tuple {
	return Tuple{slices.Clone(p.Names), slices.Clone(p.Items)}
}

// ============================================================================
// Matrix operations
// ============================================================================

// Identity constructs the n x n identity matrix.
func Identity(n uint) Matrix {
	data := make([]float64, n*n)
	//
	for i := uint(0); i < n; i++ {
		data[i*n+i] = 1
	}
	//
	return Matrix{n, n, data}
}

// At returns the item at a given row and column.
func (p Matrix) At(row, col uint) float64 {
	return p.Data[row*p.Cols+col]
}

// Mul multiplies this matrix by another.
func (p Matrix) Mul(other Matrix) Matrix {
	if p.Cols != other.Rows {
		panic("incompatible matrix dimensions")
	}
	//
	data := make([]float64, p.Rows*other.Cols)
	//
	for r := uint(0); r < p.Rows; r++ {
		for c := uint(0); c < other.Cols; c++ {
			var sum float64
			for k := uint(0); k < p.Cols; k++ {
				sum += p.At(r, k) * other.At(k, c)
			}
			//
			data[r*other.Cols+c] = sum
		}
	}
	//
	return Matrix{p.Rows, other.Cols, data}
}

// IsIdentity checks whether this is an identity matrix.
func (p Matrix) IsIdentity() bool {
	for r := uint(0); r < p.Rows; r++ {
		for c := uint(0); c < p.Cols; c++ {
			expected := 0.0
			if r == c {
				expected = 1
			}
			//
			if p.At(r, c) != expected {
				return false
			}
		}
	}
	//
	return p.Rows == p.Cols
}

// ============================================================================
// Helpers
// ============================================================================

// Unwrap removes any return wrapper from a given value.
func Unwrap(val Value) Value {
	if r, ok := val.(Return); ok {
		return Unwrap(r.Inner)
	}
	//
	return val
}

// IsNone checks whether a given value is None (or nil).
func IsNone(val Value) bool {
	if val == nil {
		return true
	}
	//
	_, ok := val.(None)
	//
	return ok
}

// Truthy converts a value into a boolean, if this makes sense.
func Truthy(val Value) (bool, bool) {
	if b, ok := val.(Bool); ok {
		return bool(b), true
	}
	//
	return false, false
}

// ToFloat converts an integer or quantity into a floating point value.
func ToFloat(val Value) (float64, bool) {
	switch v := val.(type) {
	case Integer:
		return float64(v), true
	case Quantity:
		return v.Value, true
	}
	//
	return 0, false
}

func joinValues(items []Value) string {
	strs := make([]string, len(items))
	//
	for i, item := range items {
		strs[i] = item.String()
	}
	//
	return strings.Join(strs, ", ")
}

func formatFloat(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	//
	return strconv.FormatFloat(f, 'g', 10, 64)
}
