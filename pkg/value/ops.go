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
)

// OperatorError reports that an operator cannot be applied to operands of the
// given types.
type OperatorError struct {
	Op       string
	Operands []Type
}

func (p *OperatorError) Error() string {
	switch len(p.Operands) {
	case 1:
		return fmt.Sprintf("operator %s cannot be applied to %s", p.Op, p.Operands[0])
	case 2:
		return fmt.Sprintf("operator %s cannot be applied to %s and %s", p.Op, p.Operands[0], p.Operands[1])
	}
	//
	return fmt.Sprintf("invalid use of operator %s", p.Op)
}

func opError(op string, operands ...Value) error {
	types := make([]Type, len(operands))
	//
	for i, v := range operands {
		types[i] = v.Type()
	}
	//
	return &OperatorError{op, types}
}

// UnaryOp applies a unary operator to a given value.
func UnaryOp(op string, val Value) (Value, error) {
	switch v := val.(type) {
	case Integer:
		if op == "-" {
			return -v, nil
		}
	case Quantity:
		if op == "-" {
			return Quantity{-v.Value, v.Dim}, nil
		}
	case Bool:
		if op == "!" {
			return !v, nil
		}
	case Array:
		items := make([]Value, len(v.Items))
		//
		for i, item := range v.Items {
			r, err := UnaryOp(op, item)
			if err != nil {
				return None{}, err
			}
			//
			items[i] = r
		}
		//
		return Array{v.Elem, items}, nil
	}
	//
	return None{}, opError(op, val)
}

// BinaryOp applies a binary operator to two values.  Arithmetic on quantities
// follows the usual rules of dimensional analysis (e.g. a length multiplied by
// a length gives an area).  Arrays can be combined with single values (in which
// case the operator is applied to every item), and arrays can be concatenated
// with "+".
func BinaryOp(op string, lhs Value, rhs Value) (Value, error) {
	switch op {
	case "&&", "||":
		return logicalOp(op, lhs, rhs)
	case "==":
		return Bool(Equal(lhs, rhs)), nil
	case "!=":
		return Bool(!Equal(lhs, rhs)), nil
	case "<", "<=", ">", ">=":
		return compareOp(op, lhs, rhs)
	}
	// Arithmetic
	la, lok := lhs.(Array)
	ra, rok := rhs.(Array)
	//
	switch {
	case lok && rok && op == "+":
		if !la.Elem.Equals(ra.Elem) && len(la.Items) > 0 && len(ra.Items) > 0 {
			return None{}, opError(op, lhs, rhs)
		}
		//
		return NewArray(slices.Concat(la.Items, ra.Items)...), nil
	case lok && !rok:
		return broadcast(la, func(item Value) (Value, error) { return BinaryOp(op, item, rhs) })
	case rok && !lok:
		return broadcast(ra, func(item Value) (Value, error) { return BinaryOp(op, lhs, item) })
	}
	//
	return arithmeticOp(op, lhs, rhs)
}

func broadcast(arr Array, fn func(Value) (Value, error)) (Value, error) {
	items := make([]Value, len(arr.Items))
	//
	for i, item := range arr.Items {
		r, err := fn(item)
		if err != nil {
			return None{}, err
		}
		//
		items[i] = r
	}
	//
	return NewArray(items...), nil
}

func logicalOp(op string, lhs Value, rhs Value) (Value, error) {
	l, lok := lhs.(Bool)
	r, rok := rhs.(Bool)
	//
	if !lok || !rok {
		return None{}, opError(op, lhs, rhs)
	} else if op == "&&" {
		return l && r, nil
	}
	//
	return l || r, nil
}

func compareOp(op string, lhs Value, rhs Value) (Value, error) {
	var cmp int
	//
	switch {
	case isNumber(lhs) && isNumber(rhs):
		l, r, ok := numericPair(lhs, rhs)
		if !ok {
			return None{}, opError(op, lhs, rhs)
		}
		//
		cmp = compareFloats(l, r)
	default:
		l, lok := lhs.(String)
		r, rok := rhs.(String)
		//
		if !lok || !rok {
			return None{}, opError(op, lhs, rhs)
		}
		//
		cmp = compareStrings(string(l), string(r))
	}
	//
	switch op {
	case "<":
		return Bool(cmp < 0), nil
	case "<=":
		return Bool(cmp <= 0), nil
	case ">":
		return Bool(cmp > 0), nil
	default:
		return Bool(cmp >= 0), nil
	}
}

func arithmeticOp(op string, lhs Value, rhs Value) (Value, error) {
	// Integer arithmetic stays integer, except for division.
	if l, ok := lhs.(Integer); ok {
		if r, ok := rhs.(Integer); ok {
			return integerOp(op, l, r)
		}
	}
	// String concatenation
	if l, ok := lhs.(String); ok && op == "+" {
		if r, ok := rhs.(String); ok {
			return l + r, nil
		}
	}
	//
	l, lok := asQuantity(lhs)
	r, rok := asQuantity(rhs)
	//
	if !lok || !rok {
		return None{}, opError(op, lhs, rhs)
	}
	//
	switch op {
	case "+", "-":
		if l.Dim != r.Dim {
			return None{}, opError(op, lhs, rhs)
		} else if op == "+" {
			return Quantity{l.Value + r.Value, l.Dim}, nil
		}
		//
		return Quantity{l.Value - r.Value, l.Dim}, nil
	case "*":
		if dim, ok := multiplyDims(l.Dim, r.Dim); ok {
			return Quantity{l.Value * r.Value, dim}, nil
		}
	case "/":
		if dim, ok := divideDims(l.Dim, r.Dim); ok {
			return Quantity{l.Value / r.Value, dim}, nil
		}
	case "%":
		if l.Dim == r.Dim || r.Dim == Scalar {
			return Quantity{math.Mod(l.Value, r.Value), l.Dim}, nil
		}
	}
	//
	return None{}, opError(op, lhs, rhs)
}

func integerOp(op string, l Integer, r Integer) (Value, error) {
	switch op {
	case "+":
		return l + r, nil
	case "-":
		return l - r, nil
	case "*":
		return l * r, nil
	case "/":
		return NewScalar(float64(l) / float64(r)), nil
	case "%":
		if r == 0 {
			return None{}, fmt.Errorf("division by zero")
		}
		//
		return l % r, nil
	}
	//
	return None{}, opError(op, l, r)
}

func multiplyDims(l QuantityType, r QuantityType) (QuantityType, bool) {
	switch {
	case l == Scalar:
		return r, true
	case r == Scalar:
		return l, true
	case l == Length && r == Length:
		return Area, true
	case (l == Length && r == Area) || (l == Area && r == Length):
		return Volume, true
	case (l == Density && r == Volume) || (l == Volume && r == Density):
		return Weight, true
	}
	//
	return Scalar, false
}

func divideDims(l QuantityType, r QuantityType) (QuantityType, bool) {
	switch {
	case r == Scalar:
		return l, true
	case l == r:
		return Scalar, true
	case l == Area && r == Length:
		return Length, true
	case l == Volume && r == Length:
		return Area, true
	case l == Volume && r == Area:
		return Length, true
	case l == Weight && r == Volume:
		return Density, true
	case l == Weight && r == Density:
		return Volume, true
	}
	//
	return Scalar, false
}

// Equal determines whether two values are equal.  Integers and scalars compare
// by value.
func Equal(lhs Value, rhs Value) bool {
	if isNumber(lhs) && isNumber(rhs) {
		l, r, ok := numericPair(lhs, rhs)
		return ok && l == r
	}
	//
	switch l := lhs.(type) {
	case Array:
		if r, ok := rhs.(Array); ok {
			return slices.EqualFunc(l.Items, r.Items, Equal)
		}
	case Tuple:
		if r, ok := rhs.(Tuple); ok {
			return slices.Equal(l.Names, r.Names) && slices.EqualFunc(l.Items, r.Items, Equal)
		}
	case Matrix:
		if r, ok := rhs.(Matrix); ok {
			return l.Rows == r.Rows && l.Cols == r.Cols && slices.Equal(l.Data, r.Data)
		}
	case Target:
		if r, ok := rhs.(Target); ok {
			return l.Name.Equals(r.Name)
		}
	case Return:
		return Equal(l.Inner, rhs)
	}
	//
	return lhs == rhs
}

func isNumber(val Value) bool {
	switch val.(type) {
	case Integer, Quantity:
		return true
	}
	//
	return false
}

// Extract two floats of the same dimension, promoting integers to scalars.
func numericPair(lhs Value, rhs Value) (float64, float64, bool) {
	l, _ := asQuantity(lhs)
	r, _ := asQuantity(rhs)
	//
	return l.Value, r.Value, l.Dim == r.Dim
}

func asQuantity(val Value) (Quantity, bool) {
	switch v := val.(type) {
	case Integer:
		return NewScalar(float64(v)), true
	case Quantity:
		return v, true
	}
	//
	return Quantity{}, false
}

func compareFloats(l float64, r float64) int {
	switch {
	case l < r:
		return -1
	case l > r:
		return 1
	}
	//
	return 0
}

func compareStrings(l string, r string) int {
	switch {
	case l < r:
		return -1
	case l > r:
		return 1
	}
	//
	return 0
}
