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
package lex

import (
	"cmp"
)

// Scanner determines how many items at the start of its input it matches,
// where zero indicates no match.
type Scanner[T any] func(items []T) uint

// Or matches using the first of the given scanners which succeeds.
func Or[T any](scanners ...Scanner[T]) Scanner[T] {
	return func(items []T) uint {
		for _, scanner := range scanners {
			if n := scanner(items); n > 0 {
				return n
			}
		}
		//
		return 0
	}
}

// Unit matches exactly the given sequence of items.
func Unit[T comparable](expected ...T) Scanner[T] {
	return func(items []T) uint {
		if len(items) < len(expected) {
			return 0
		}
		//
		for i, e := range expected {
			if items[i] != e {
				return 0
			}
		}
		//
		return uint(len(expected))
	}
}

// Within matches any single item in the (inclusive) range.
func Within[T cmp.Ordered](lowest T, highest T) Scanner[T] {
	return func(items []T) uint {
		if len(items) != 0 && lowest <= items[0] && items[0] <= highest {
			return 1
		}
		//
		return 0
	}
}

// Satisfies matches any single item accepted by a given predicate.
func Satisfies[T any](predicate func(T) bool) Scanner[T] {
	return func(items []T) uint {
		if len(items) != 0 && predicate(items[0]) {
			return 1
		}
		//
		return 0
	}
}

// Many matches one or more repetitions of a given scanner.
func Many[T any](scanner Scanner[T]) Scanner[T] {
	return func(items []T) uint {
		index := uint(0)
		//
		for index < uint(len(items)) {
			n := scanner(items[index:])
			if n == 0 {
				break
			}
			//
			index += n
		}
		//
		return index
	}
}

// Sequence matches each scanner in turn, where the last may match nothing
// (e.g. because the input is exhausted).
func Sequence[T any](scanners ...Scanner[T]) Scanner[T] {
	return func(items []T) uint {
		n := uint(0)
		//
		for i, scanner := range scanners {
			m := scanner(items[n:])
			//
			if m == 0 && i != len(scanners)-1 {
				return 0
			}
			//
			n += m
		}
		//
		return n
	}
}

// Eof matches the end of the input.
func Eof[T any]() Scanner[T] {
	return func(items []T) uint {
		if len(items) == 0 {
			return 1
		}
		//
		return 0
	}
}
