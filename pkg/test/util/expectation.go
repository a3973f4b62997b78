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
package util

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/microcad-lang/go-microcad/pkg/util/source"
)

// ExpectationKind distinguishes the various expectations a test document can
// declare in its header.
type ExpectationKind uint8

const (
	// EXPECT_OUTPUT declares the next line of printed output, as given by
	// "#output:text".
	EXPECT_OUTPUT ExpectationKind = iota
	// EXPECT_BOUNDS declares the bounds of an export, as given by
	// "#bounds:filename:box".
	EXPECT_BOUNDS
	// EXPECT_ERROR declares the next error, as given by "#error:line:message".
	// The actual message need only contain the expected message.
	EXPECT_ERROR
)

// Expectation is a single expected outcome of running a test document.
type Expectation struct {
	Kind ExpectationKind
	// Line of an expected error
	Line int
	// Filename of an expected export
	Export string
	// Expected text
	Text string
}

func extractOutput(line source.Line) (bool, Expectation, error) {
	text, ok := strings.CutPrefix(line.String(), "#output:")
	//
	return ok, Expectation{Kind: EXPECT_OUTPUT, Text: text}, nil
}

func extractBounds(line source.Line) (bool, Expectation, error) {
	contents, ok := strings.CutPrefix(line.String(), "#bounds:")
	if !ok {
		return false, Expectation{}, nil
	}
	//
	export, box, ok := strings.Cut(contents, ":")
	if !ok {
		return true, Expectation{}, malformed(line, "#bounds:out.svg:[0, 0] .. [1, 1]")
	}
	//
	return true, Expectation{Kind: EXPECT_BOUNDS, Export: export, Text: box}, nil
}

func extractError(line source.Line) (bool, Expectation, error) {
	contents, ok := strings.CutPrefix(line.String(), "#error:")
	if !ok {
		return false, Expectation{}, nil
	}
	//
	lineno, msg, ok := strings.Cut(contents, ":")
	if !ok {
		return true, Expectation{}, malformed(line, "#error:X:msg")
	}
	// Parse line number
	n, err := strconv.Atoi(lineno)
	if err != nil {
		return true, Expectation{}, fmt.Errorf("invalid line \"%s\" (%s)", lineno, err.Error())
	} else if n == 0 {
		return true, Expectation{}, fmt.Errorf("invalid line \"%s\" (lines numbered from 1)", lineno)
	}
	//
	return true, Expectation{Kind: EXPECT_ERROR, Line: n, Text: msg}, nil
}

func malformed(line source.Line, example string) error {
	return fmt.Errorf("malformed expectation \"%s\" on line %d, should be e.g. \"%s\"", line.String(), line.Number(),
		example)
}
