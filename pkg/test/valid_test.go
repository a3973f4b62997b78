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
package test

import (
	"testing"

	test_util "github.com/microcad-lang/go-microcad/pkg/test/util"
)

// ===================================================================
// Evaluation
// ===================================================================

func Test_Valid_Print_01(t *testing.T) {
	test_util.Check(t, "valid/print_01")
}

func Test_Valid_Function_01(t *testing.T) {
	test_util.Check(t, "valid/function_01")
}

func Test_Valid_If_01(t *testing.T) {
	test_util.Check(t, "valid/if_01")
}

// ===================================================================
// Geometry
// ===================================================================

func Test_Valid_Sketch_01(t *testing.T) {
	test_util.Check(t, "valid/sketch_01")
}

func Test_Valid_Translate_01(t *testing.T) {
	test_util.Check(t, "valid/translate_01")
}

func Test_Valid_Union_01(t *testing.T) {
	test_util.Check(t, "valid/union_01")
}

func Test_Valid_Cube_01(t *testing.T) {
	test_util.Check(t, "valid/cube_01")
}
