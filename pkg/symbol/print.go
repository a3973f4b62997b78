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
package symbol

import (
	"fmt"
	"io"
	"strings"

	"github.com/microcad-lang/go-microcad/pkg/syntax"
)

// Print writes a human-readable rendition of the symbol tree rooted at a given
// symbol, one symbol per line with children indented.  The root symbol itself
// is never printed.  Deleted symbols are omitted.
func (p *Table) Print(w io.Writer, id Id) error {
	if id != RootId {
		return p.print(w, id, 0)
	}
	//
	for _, child := range p.nodes[id].children {
		if err := p.print(w, child, 0); err != nil {
			return err
		}
	}
	//
	return nil
}

func (p *Table) print(w io.Writer, id Id, depth int) error {
	n := &p.nodes[id]
	//
	if n.visibility == syntax.Deleted {
		return nil
	} else if _, err := fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth), p.describe(id)); err != nil {
		return err
	}
	//
	for _, child := range n.children {
		if err := p.print(w, child, depth+1); err != nil {
			return err
		}
	}
	//
	return nil
}

func (p *Table) describe(id Id) string {
	var (
		n       = &p.nodes[id]
		builder strings.Builder
	)
	//
	if n.visibility == syntax.Public {
		builder.WriteString("pub ")
	}
	//
	builder.WriteString(n.def.Kind())
	builder.WriteString(" ")
	//
	switch d := n.def.(type) {
	case *Alias:
		builder.WriteString(fmt.Sprintf("%s => %s", d.Name, d.Target.String()))
	case *UseAll:
		builder.WriteString(fmt.Sprintf("%s::*", d.Target.String()))
	case *Constant:
		builder.WriteString(n.key)
		//
		if d.Value != nil {
			builder.WriteString(fmt.Sprintf(" = %s", d.Value.String()))
		}
	case *Assignment:
		builder.WriteString(n.key)
		//
		if d.Value != nil {
			builder.WriteString(fmt.Sprintf(" = %s", d.Value.String()))
		}
	default:
		builder.WriteString(n.key)
	}
	//
	return builder.String()
}
