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

	"github.com/microcad-lang/go-microcad/pkg/syntax"
	"github.com/microcad-lang/go-microcad/pkg/util/source"
)

// Id is an opaque handle identifying a symbol within a given table.
type Id uint32

// RootId is the handle of the root symbol in every table.
const RootId Id = 0

type node struct {
	// Key of this symbol within its parent.  For most symbols this is simply
	// their name, but aliases and use-alls are assigned generated keys.
	key string
	// Definition of this symbol.
	def Def
	// Visibility of this symbol.
	visibility syntax.Visibility
	// Enclosing symbol (the root is its own parent).
	parent Id
	// Children in order of insertion.
	children []Id
	// Maps child keys to their handles.
	index map[string]Id
	// Location of the declaration.
	ref source.Ref
}

// Table is an arena holding every symbol in the symbol tree.  Symbols are
// addressed by handle, whilst parent and child links are also handles.  The
// root symbol is created along with the table.
type Table struct {
	nodes []node
	// Counter used to generate unique keys for use statements.
	uses uint
	// Aliases currently being followed, used to detect cyclic aliases.
	following map[Id]bool
}

// NewTable constructs a new table containing only the root symbol.
func NewTable() *Table {
	root := node{"", &Root{}, syntax.Public, RootId, nil, make(map[string]Id), source.NoRef()}
	//
	return &Table{[]node{root}, 0, make(map[Id]bool)}
}

// Len returns the number of symbols in this table (including the root and any
// deleted symbols).
func (p *Table) Len() uint {
	return uint(len(p.nodes))
}

// Insert a new symbol with the given key as a child of a given parent.  This
// fails with SymbolAlreadyDefined if the parent already has a child of the
// same key.
func (p *Table) Insert(parent Id, key string, vis syntax.Visibility, def Def, ref source.Ref) (Id, error) {
	if id, ok := p.nodes[parent].index[key]; ok && p.nodes[id].visibility != syntax.Deleted {
		name := p.FullName(parent)
		name = name.Extend(key)
		//
		return id, NewResolveError(SymbolAlreadyDefined, name.String(), ref)
	}
	//
	return p.insert(parent, key, vis, def, ref), nil
}

// InsertAlias inserts an alias with a given visible name as a child of a given
// parent.  Aliases are assigned generated keys and, hence, this cannot fail.
func (p *Table) InsertAlias(parent Id, name string, target syntax.QualifiedName, vis syntax.Visibility,
	ref source.Ref) Id {
	p.uses++
	key := fmt.Sprintf("use#%d", p.uses)
	//
	return p.insert(parent, key, vis, &Alias{name, target}, ref)
}

// InsertUseAll inserts a use-all of a given module as a child of a given
// parent.
func (p *Table) InsertUseAll(parent Id, target syntax.QualifiedName, vis syntax.Visibility, ref source.Ref) Id {
	p.uses++
	key := fmt.Sprintf("*#%d", p.uses)
	//
	return p.insert(parent, key, vis, &UseAll{target}, ref)
}

func (p *Table) insert(parent Id, key string, vis syntax.Visibility, def Def, ref source.Ref) Id {
	id := Id(len(p.nodes))
	p.nodes = append(p.nodes, node{key, def, vis, parent, nil, make(map[string]Id), ref})
	// Link into parent
	p.nodes[parent].children = append(p.nodes[parent].children, id)
	p.nodes[parent].index[key] = id
	//
	return id
}

// Key returns the key of a given symbol within its parent.
func (p *Table) Key(id Id) string {
	return p.nodes[id].key
}

// Name returns the name by which a given symbol is found.  For aliases this is
// their alias name, rather than their (generated) key.
func (p *Table) Name(id Id) string {
	if alias, ok := p.nodes[id].def.(*Alias); ok {
		return alias.Name
	}
	//
	return p.nodes[id].key
}

// Def returns the definition of a given symbol.
func (p *Table) Def(id Id) Def {
	return p.nodes[id].def
}

// Visibility returns the visibility of a given symbol.
func (p *Table) Visibility(id Id) syntax.Visibility {
	return p.nodes[id].visibility
}

// Delete marks a given symbol as deleted, meaning it will never be found by
// lookup.
func (p *Table) Delete(id Id) {
	p.nodes[id].visibility = syntax.Deleted
}

// Ref returns the location of the declaration of a given symbol.
func (p *Table) Ref(id Id) source.Ref {
	return p.nodes[id].ref
}

// Parent returns the parent of a given symbol, or false if it is the root.
func (p *Table) Parent(id Id) (Id, bool) {
	if id == RootId {
		return RootId, false
	}
	//
	return p.nodes[id].parent, true
}

// Children returns the children of a given symbol, in order of insertion.
func (p *Table) Children(id Id) []Id {
	return p.nodes[id].children
}

// Child returns the child of a given symbol with a given key (if it exists).
func (p *Table) Child(id Id, key string) (Id, bool) {
	child, ok := p.nodes[id].index[key]
	return child, ok
}

// IsWithin checks whether a given symbol is equal to, or nested within, a
// given ancestor.
func (p *Table) IsWithin(id Id, ancestor Id) bool {
	for {
		if id == ancestor {
			return true
		} else if id == RootId {
			return false
		}
		//
		id = p.nodes[id].parent
	}
}

// FullName returns the fully qualified name of a given symbol, as seen from
// the root.
func (p *Table) FullName(id Id) syntax.QualifiedName {
	var segments []string
	//
	for ; id != RootId; id = p.nodes[id].parent {
		segments = append(segments, p.Name(id))
	}
	// Reverse into outermost first
	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}
	//
	return syntax.NewQualifiedName(segments...)
}

// Within returns the nearest enclosing symbol (including the given symbol
// itself) satisfying a given predicate, or false if none exists.
func (p *Table) Within(id Id, pred func(Def) bool) (Id, bool) {
	for {
		if pred(p.nodes[id].def) {
			return id, true
		} else if id == RootId {
			return RootId, false
		}
		//
		id = p.nodes[id].parent
	}
}
