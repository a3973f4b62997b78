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

// Span represents a contiguous slice of the original string.  Instead of
// representing this as a string slice, however, it is useful to retain the
// physical indices.  This allows us to do certain things, such as determine the
// enclosing line, etc.
type Span struct {
	// The first character of this span in the original string.
	start int
	// One past the final character of this span in the original string.
	end int
}

// NewSpan constructs a new span whilst checking the internal invariants are
// maintained.
func NewSpan(start int, end int) Span {
	if start > end {
		panic("invalid span")
	}

	return Span{start, end}
}

// Start returns the starting index of this span in the original string.
func (p *Span) Start() int {
	return p.start
}

// End returns one past the last index of this span in the original string.
func (p *Span) End() int {
	return p.end
}

// Length returns the number of characters covered by this span in the original
// string.
func (p *Span) Length() int {
	return p.end - p.start
}

// Files provides a mechanism for mapping source references back to the files
// they originated from.  This is needed when reporting diagnostics to generate
// highlights of the relevant source line(s) in question.
type Files struct {
	// Files in order of registration
	files []*File
	// Map file hashes to indices in the files array.
	index map[uint64]uint
}

// NewFiles constructs an (initially empty) set of source files.  The
// intention is that this is populated as each file is loaded.
func NewFiles() *Files {
	return &Files{nil, make(map[uint64]uint)}
}

// Add registers a source file.  Adding the same file twice has no effect.
func (p *Files) Add(file *File) {
	if _, ok := p.index[file.hash]; ok {
		return
	}
	//
	p.index[file.hash] = uint(len(p.files))
	p.files = append(p.files, file)
}

// Get returns the file with the given hash, or nil if no such file is known.
func (p *Files) Get(hash uint64) *File {
	if index, ok := p.index[hash]; ok {
		return p.files[index]
	}
	//
	return nil
}

// Of returns the file referred to by a given reference, or nil if this is not
// known.
func (p *Files) Of(ref Ref) *File {
	if p == nil || ref.IsNone() {
		return nil
	}
	//
	return p.Get(ref.File)
}

// Len returns the number of registered files.
func (p *Files) Len() uint {
	return uint(len(p.files))
}
