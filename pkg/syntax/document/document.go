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
package document

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/microcad-lang/go-microcad/pkg/syntax"
	"github.com/microcad-lang/go-microcad/pkg/util/source"
	"gopkg.in/yaml.v3"
)

// Error is a malformed part of a document.
type Error struct {
	Message string
	Ref     source.Ref
}

// Error implementation for the error interface.
func (p *Error) Error() string {
	return p.Message
}

// Location implementation for the diag.Located interface.
func (p *Error) Location() source.Ref {
	return p.Ref
}

// ReadFiles reads and decodes a set of document files.  Every file is decoded,
// even if some fail, and all errors are reported together.
func ReadFiles(filenames ...string) ([]*syntax.SourceFile, []error) {
	var (
		files  []*syntax.SourceFile
		errors []error
	)
	//
	for _, filename := range filenames {
		bytes, err := os.ReadFile(filename)
		if err != nil {
			errors = append(errors, err)
			continue
		}
		//
		file, errs := Decode(source.NewSourceFile(filename, bytes))
		files = append(files, file)
		errors = append(errors, errs...)
	}
	//
	return files, errors
}

// Decode a document into a source file.  A document is either a sequence of
// statements, or a mapping giving the name of the source file along with its
// statements.  Without a name, the source file is named after its file (less
// any extension).
func Decode(file *source.File) (*syntax.SourceFile, []error) {
	var (
		root    yaml.Node
		decoder = &decoder{file: file}
		name    = strings.TrimSuffix(filepath.Base(file.Filename()), filepath.Ext(file.Filename()))
		body    *yaml.Node
	)
	//
	if err := yaml.Unmarshal([]byte(string(file.Contents())), &root); err != nil {
		return &syntax.SourceFile{Name: name, File: file}, []error{&Error{err.Error(), source.NoRef()}}
	} else if len(root.Content) == 0 {
		return &syntax.SourceFile{Name: name, File: file}, nil
	}
	//
	switch doc := root.Content[0]; doc.Kind {
	case yaml.SequenceNode:
		body = doc
	case yaml.MappingNode:
		fields := decoder.fields(doc, "name", "statements")
		//
		if n, ok := fields["name"]; ok {
			name = decoder.scalar(n)
		}
		//
		body = fields["statements"]
	default:
		decoder.errorf(doc, "expected statements")
	}
	//
	stmts := decoder.statements(body)
	//
	return &syntax.SourceFile{Name: name, Statements: stmts, File: file}, decoder.errors
}

type decoder struct {
	file   *source.File
	errors []error
}

// Determine the source location of a node.
func (p *decoder) ref(node *yaml.Node) source.Ref {
	if node == nil || node.Line == 0 {
		return source.NoRef()
	}
	//
	var (
		line  = p.file.LineAt(node.Line)
		start = line.Start() + node.Column - 1
		width = 1
	)
	//
	if node.Kind == yaml.ScalarNode {
		width = max(1, len([]rune(node.Value)))
	}
	//
	return source.NewRef(p.file.Hash(), source.NewSpan(start, start+width), node.Line, node.Column)
}

func (p *decoder) errorf(node *yaml.Node, format string, args ...any) {
	p.errors = append(p.errors, &Error{fmt.Sprintf(format, args...), p.ref(node)})
}

func (p *decoder) report(err error) {
	if err != nil {
		p.errors = append(p.errors, err)
	}
}

// Extract the fields of a mapping, reporting any which are not permitted.
// Keys are returned in their order of appearance.
func (p *decoder) fields(node *yaml.Node, allowed ...string) map[string]*yaml.Node {
	fields := make(map[string]*yaml.Node)
	//
	if node == nil {
		return fields
	} else if node.Kind != yaml.MappingNode {
		p.errorf(node, "expected mapping")
		return fields
	}
	//
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		//
		if !slices.Contains(allowed, key.Value) {
			p.errorf(key, "unknown field \"%s\" (expected one of %s)", key.Value, strings.Join(allowed, ", "))
		} else if _, ok := fields[key.Value]; ok {
			p.errorf(key, "field \"%s\" given more than once", key.Value)
		} else {
			fields[key.Value] = val
		}
	}
	//
	return fields
}

// Extract the keys and values of a mapping in order.
func (p *decoder) entries(node *yaml.Node) ([]*yaml.Node, []*yaml.Node) {
	var keys, values []*yaml.Node
	//
	if node.Kind != yaml.MappingNode {
		p.errorf(node, "expected mapping")
		return nil, nil
	}
	//
	for i := 0; i+1 < len(node.Content); i += 2 {
		keys = append(keys, node.Content[i])
		values = append(values, node.Content[i+1])
	}
	//
	return keys, values
}

// Extract the items of a sequence.  An absent node is an empty sequence.
func (p *decoder) items(node *yaml.Node) []*yaml.Node {
	if node == nil {
		return nil
	} else if node.Kind != yaml.SequenceNode {
		p.errorf(node, "expected sequence")
		return nil
	}
	//
	return node.Content
}

func (p *decoder) scalar(node *yaml.Node) string {
	if node.Kind != yaml.ScalarNode {
		p.errorf(node, "expected scalar")
		return ""
	}
	//
	return node.Value
}

func (p *decoder) boolean(node *yaml.Node) bool {
	if node == nil {
		return false
	}
	//
	var b bool
	//
	if err := node.Decode(&b); err != nil {
		p.errorf(node, "expected true or false")
	}
	//
	return b
}

func (p *decoder) identifier(node *yaml.Node) syntax.Identifier {
	if node == nil {
		return syntax.Identifier{}
	}
	//
	return syntax.Identifier{Name: p.scalar(node), Ref: p.ref(node)}
}

func (p *decoder) name(node *yaml.Node) syntax.QualifiedName {
	name, err := parseName(p.scalar(node), p.ref(node))
	p.report(err)
	//
	return name
}

func (p *decoder) typeAnnotation(node *yaml.Node) *syntax.TypeAnnotation {
	if node == nil {
		return nil
	}
	//
	t, err := parseType(p.scalar(node), p.ref(node))
	p.report(err)
	//
	return t
}

// Check a required field is present.
func (p *decoder) require(node *yaml.Node, fields map[string]*yaml.Node, names ...string) bool {
	for _, name := range names {
		if _, ok := fields[name]; !ok {
			p.errorf(node, "missing field \"%s\"", name)
			return false
		}
	}
	//
	return true
}
