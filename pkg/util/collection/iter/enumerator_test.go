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

import (
	"testing"
)

func Test_Product_0(t *testing.T) {
	checkEnumerator(t, EnumerateProduct(), [][]uint{{}}, arrayEquals)
}

func Test_Product_1_1(t *testing.T) {
	checkEnumerator(t, EnumerateProduct(1), [][]uint{{0}}, arrayEquals)
}

func Test_Product_1_3(t *testing.T) {
	checkEnumerator(t, EnumerateProduct(3), [][]uint{{0}, {1}, {2}}, arrayEquals)
}

func Test_Product_2_3(t *testing.T) {
	checkEnumerator(t, EnumerateProduct(2, 3), [][]uint{
		{0, 0}, {0, 1}, {0, 2}, {1, 0}, {1, 1}, {1, 2}}, arrayEquals)
}

func Test_Product_3_1(t *testing.T) {
	checkEnumerator(t, EnumerateProduct(2, 1, 2), [][]uint{
		{0, 0, 0}, {0, 0, 1}, {1, 0, 0}, {1, 0, 1}}, arrayEquals)
}

func Test_Product_Empty(t *testing.T) {
	checkEnumerator(t, EnumerateProduct(2, 0, 2), [][]uint{}, arrayEquals)
}

func Test_Array_01(t *testing.T) {
	items := []string{"a", "b", "c"}
	//
	if n := Count(NewArrayEnumerator(items)); n != 3 {
		t.Errorf("expected 3 items, got %d", n)
	}
	//
	if !arrayEquals(items, Collect(NewArrayEnumerator(items))) {
		t.Errorf("collected items differ")
	}
}

// ===================================================================
// Test Helpers
// ===================================================================

func checkEnumerator[E any](t *testing.T, enumerator Enumerator[E], expected []E, eq func(E, E) bool) {
	for i := 0; i < len(expected); i++ {
		if !enumerator.HasNext() {
			t.Fatalf("expected %d elements, got %d", len(expected), i)
		}
		//
		ith := enumerator.Next()
		if !eq(ith, expected[i]) {
			t.Errorf("expected %v, got %v", any(expected[i]), any(ith))
		}
	}
	// Sanity check lengths match
	if enumerator.HasNext() {
		t.Errorf("expected %d elements, got more", len(expected))
	}
}

func arrayEquals[T comparable](lhs []T, rhs []T) bool {
	if len(lhs) != len(rhs) {
		return false
	}
	// Check each item in turn
	for i := 0; i < len(lhs); i++ {
		if lhs[i] != rhs[i] {
			return false
		}
	}
	// Done
	return true
}
