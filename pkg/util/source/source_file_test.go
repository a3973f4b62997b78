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
package source

import "testing"

func Test_SourceFile_01(t *testing.T) {
	file := NewSourceFile("a.µcad", []byte("x = 1;\ny = 2;\n"))
	ref := file.Ref(NewSpan(7, 8))
	//
	if ref.Line != 2 || ref.Col != 1 {
		t.Errorf("unexpected reference %s", ref.String())
	}
}

func Test_SourceFile_02(t *testing.T) {
	file := NewSourceFile("a.µcad", []byte("x = 1;\n  y = 2;"))
	ref := file.Ref(NewSpan(9, 10))
	line := file.LineAt(ref.Line)
	//
	if ref.Col != 3 || line.String() != "  y = 2;" {
		t.Errorf("unexpected line \"%s\" (col %d)", line.String(), ref.Col)
	}
}

func Test_SourceFile_03(t *testing.T) {
	f1 := NewSourceFile("a", []byte("x"))
	f2 := NewSourceFile("b", []byte("x"))
	f3 := NewSourceFile("a", []byte("x"))
	//
	if f1.Hash() == f2.Hash() || f1.Hash() != f3.Hash() {
		t.Errorf("unexpected file hashes")
	}
}

func Test_SourceFile_04(t *testing.T) {
	lines := NewSourceFile("a", []byte("x\n\n  y")).Lines()
	//
	if len(lines) != 3 || lines[1].Length() != 0 || lines[2].String() != "  y" || lines[2].Number() != 3 {
		t.Errorf("unexpected lines")
	}
}

func Test_SourceFiles_01(t *testing.T) {
	files := NewFiles()
	file := NewSourceFile("a", []byte("x"))
	files.Add(file)
	files.Add(file)
	//
	if files.Len() != 1 || files.Of(file.Ref(NewSpan(0, 1))) != file {
		t.Errorf("source file not registered")
	}
	//
	if files.Of(NoRef()) != nil {
		t.Errorf("empty reference should have no file")
	}
}
