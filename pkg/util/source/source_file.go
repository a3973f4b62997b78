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

import (
	"fmt"
	"hash/fnv"
	"os"
)

// ReadFiles reads a given set of source files, or produces an error.
func ReadFiles(filenames ...string) ([]File, error) {
	files := make([]File, len(filenames))
	//
	for i, n := range filenames {
		bytes, err := os.ReadFile(n)
		if err != nil {
			return nil, err
		}
		//
		files[i] = *NewSourceFile(n, bytes)
	}
	//
	return files, nil
}

// Line provides information about a given line within the original string.
// This includes the line number (counting from 1), and the span of the line
// within the original string.
type Line struct {
	// Original text
	text []rune
	// Span within original text of this line.
	span Span
	// Line number of this line (counting from 1).
	number int
}

// Get the string representing this line.
func (p *Line) String() string {
	return string(p.text[p.span.start:p.span.end])
}

// Number gets the line number of this line, where the first line in a string
// has line number 1.
func (p *Line) Number() int {
	return p.number
}

// Start returns the starting index of this line in the original string.
func (p *Line) Start() int {
	return p.span.start
}

// Length returns the number of characters in this line.
func (p *Line) Length() int {
	return p.span.Length()
}

// File represents a given source file (typically stored on disk).  Every file
// is identified by a hash of its name and contents, which is what source
// references carry around instead of a pointer to the file itself.
type File struct {
	// File name for this source file.
	filename string
	// Contents of this file.
	contents []rune
	// Hash of filename and contents
	hash uint64
}

// NewSourceFile constructs a new source file from a given byte array.
func NewSourceFile(filename string, bytes []byte) *File {
	hash := fnv.New64a()
	hash.Write([]byte(filename))
	hash.Write(bytes)
	//
	return &File{filename, []rune(string(bytes)), hash.Sum64()}
}

// Filename returns the filename associated with this source file.
func (s *File) Filename() string {
	return s.filename
}

// Contents returns the contents of this source file.
func (s *File) Contents() []rune {
	return s.contents
}

// Hash returns the identifying hash of this source file.
func (s *File) Hash() uint64 {
	return s.hash
}

// Ref constructs a source reference for a given span of this file.  The line
// and column of the reference are determined from the start of the span.
func (s *File) Ref(span Span) Ref {
	line := s.FindFirstEnclosingLine(span)
	//
	return Ref{s.hash, span, line.Number(), 1 + span.start - line.Start()}
}

// FindFirstEnclosingLine determines the first line  in this source file which
// encloses the start of a span.  Observe that, if the position is beyond the
// bounds of the source file then the last physical line is returned.  Also,
// the returned line is not guaranteed to enclose the entire span, as these can
// cross multiple lines.
func (s *File) FindFirstEnclosingLine(span Span) Line {
	// Index identifies the current position within the original text.
	index := span.start
	// Num records the line number, counting from 1.
	num := 1
	// Start records the starting offset of the current line.
	start := 0
	// Find the line.
	for i := 0; i < len(s.contents); i++ {
		if i == index {
			end := findEndOfLine(index, s.contents)
			return Line{s.contents, Span{start, end}, num}
		} else if s.contents[i] == '\n' {
			num++
			start = i + 1
		}
	}
	//
	return Line{s.contents, Span{start, len(s.contents)}, num}
}

// Lines returns every physical line of this file, in order.
func (s *File) Lines() []Line {
	var (
		lines []Line
		start = 0
	)
	//
	for i, c := range s.contents {
		if c == '\n' {
			lines = append(lines, Line{s.contents, Span{start, i}, len(lines) + 1})
			start = i + 1
		}
	}
	//
	return append(lines, Line{s.contents, Span{start, len(s.contents)}, len(lines) + 1})
}

// LineAt returns the given line (counting from 1) of this file.  If the line
// is beyond the end of the file, then the last physical line is returned.
func (s *File) LineAt(number int) Line {
	var (
		num   = 1
		start = 0
	)
	//
	for i := 0; i < len(s.contents) && num < number; i++ {
		if s.contents[i] == '\n' {
			num++
			start = i + 1
		}
	}
	//
	return Line{s.contents, Span{start, findEndOfLine(start, s.contents)}, num}
}

// Ref identifies a location within a given source file.  A reference records
// the hash of the enclosing file (rather than the file itself), the span within
// that file and the line / column where the span starts.  The zero reference
// indicates "no location", which arises for synthetic (e.g. builtin) nodes.
type Ref struct {
	// Hash of the enclosing source file.
	File uint64
	// Span within the enclosing source file.
	Span Span
	// Line number (counting from 1).
	Line int
	// Column number (counting from 1).
	Col int
}

// NoRef returns the empty reference.
func NoRef() Ref {
	return Ref{}
}

// NewRef constructs a reference from its components.
func NewRef(file uint64, span Span, line int, col int) Ref {
	return Ref{file, span, line, col}
}

// IsNone determines whether this reference identifies no location at all.
func (p Ref) IsNone() bool {
	return p.Line == 0
}

func (p Ref) String() string {
	if p.IsNone() {
		return "<no ref>"
	}
	//
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Find the end of the enclosing line
func findEndOfLine(index int, text []rune) int {
	for i := index; i < len(text); i++ {
		if text[i] == '\n' {
			return i
		}
	}
	// No end in sight!
	return len(text)
}
