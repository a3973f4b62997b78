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

func Test_Invalid_Statement_01(t *testing.T) {
	test_util.CheckInvalid(t, "invalid/statement_01")
}

func Test_Invalid_Field_01(t *testing.T) {
	test_util.CheckInvalid(t, "invalid/field_01")
}

func Test_Invalid_Undefined_01(t *testing.T) {
	test_util.CheckInvalid(t, "invalid/undefined_01")
}

func Test_Invalid_Positive_01(t *testing.T) {
	test_util.CheckInvalid(t, "invalid/positive_01")
}

func Test_Invalid_Mixed_01(t *testing.T) {
	test_util.CheckInvalid(t, "invalid/mixed_01")
}

func Test_Invalid_Assert_01(t *testing.T) {
	test_util.CheckInvalid(t, "invalid/assert_01")
}
