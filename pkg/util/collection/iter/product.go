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
package iter

// EnumerateProduct returns an enumerator over the cartesian product of a set of
// index ranges.  Each item is an array of indices, where the ith index ranges
// over [0..sizes[i]).  The first range is outermost, meaning the last index
// varies fastest.  For example, sizes [2,3] gives [0,0],[0,1],[0,2],[1,0],[1,1]
// and [1,2].  If any size is zero, the product is empty.  If there are no
// sizes, the product contains exactly one (empty) item.
func EnumerateProduct(sizes ...uint) Enumerator[[]uint] {
	counters := make([]uint, len(sizes))
	//
	for _, s := range sizes {
		if s == 0 {
			counters = nil
			break
		}
	}
	//
	return &product{counters, sizes, counters != nil}
}

type product struct {
	counters []uint
	sizes    []uint
	more     bool
}

// HasNext checks whether or not there are any items remaining to visit.
//
//nolint:revive
func (p *product) HasNext() bool {
	return p.more
}

// Next returns the next item, and advance the enumerator.
//
//nolint:revive
func (p *product) Next() []uint {
	rs := make([]uint, len(p.counters))
	copy(rs, p.counters)
	//
	carry := true
	// Increment counters, starting from the innermost.
	for i := len(p.counters) - 1; i >= 0 && carry; i-- {
		ithp1 := p.counters[i] + 1
		// Check for overflow
		if ithp1 != p.sizes[i] {
			p.counters[i] = ithp1
			carry = false
		} else {
			p.counters[i] = 0
		}
	}
	// Check whether finished
	if carry {
		p.more = false
	}
	//
	return rs
}
