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
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/microcad-lang/go-microcad/pkg/syntax"
	"github.com/microcad-lang/go-microcad/pkg/util/source"
)

// Lookup resolves a qualified name from the root of the symbol tree, returning
// the symbol it refers to.  Aliases are followed and the resolved symbol must
// match the given target.
func (p *Table) Lookup(name syntax.QualifiedName, target Target) (Id, error) {
	return p.lookup(name, target, RootId, false)
}

// LookupFrom resolves a qualified name as seen from a given symbol.  This
// attempts resolution both from the root and from the given symbol outwards.
// Where both succeed, they must agree (modulo aliasing) or the name is
// ambiguous.
func (p *Table) LookupFrom(name syntax.QualifiedName, target Target, from Id) (Id, error) {
	return p.lookup(name, target, from, true)
}

func (p *Table) lookup(name syntax.QualifiedName, target Target, from Id, relative bool) (Id, error) {
	var (
		rootId, relId   Id
		rootErr, relErr error
	)
	//
	if name.IsEmpty() {
		return RootId, NewResolveError(SymbolNotFound, name.String(), name.Ref)
	} else if name.IsSuper() && !relative {
		return RootId, NewResolveError(InvalidSuper, name.String(), name.Ref)
	}
	// Search from root (super paths are inherently relative)
	if name.IsSuper() {
		rootErr = NewResolveError(SymbolNotFound, name.String(), name.Ref)
	} else {
		rootId, rootErr = p.resolvePath(RootId, name, from)
	}
	// Search from relative symbol outwards
	if relative {
		relId, relErr = p.searchOutward(from, name)
	} else {
		relId, relErr = rootId, rootErr
	}
	//
	var (
		result Id
		err    error
	)
	//
	switch {
	case rootErr == nil && relErr == nil:
		result, err = p.disambiguate(name, rootId, relId)
	case rootErr == nil:
		result = rootId
	case relErr == nil:
		result = relId
	default:
		return RootId, preferredError(relErr, rootErr)
	}
	//
	if err == nil {
		result, err = p.Follow(result)
	}
	//
	if err != nil {
		return RootId, err
	} else if def := p.nodes[result].def; !target.Matches(def) {
		return RootId, NewResolveError(WrongTarget, name.String(), name.Ref, def.Kind())
	}
	// Done
	return result, nil
}

// Decide between two candidates found by searching from the root and from a
// relative symbol respectively.
func (p *Table) disambiguate(name syntax.QualifiedName, lhs Id, rhs Id) (Id, error) {
	if lhs == rhs {
		return lhs, nil
	}
	//
	_, lAlias := p.nodes[lhs].def.(*Alias)
	_, rAlias := p.nodes[rhs].def.(*Alias)
	//
	switch {
	case lAlias && rAlias:
		l, lerr := p.Follow(lhs)
		r, rerr := p.Follow(rhs)
		//
		if lerr == nil && rerr == nil && l == r {
			return l, nil
		}
		//
		return RootId, NewResolveError(InternalFailure, name.String(), name.Ref)
	case lAlias:
		if l, err := p.Follow(lhs); err == nil && l == rhs {
			return rhs, nil
		}
	case rAlias:
		if r, err := p.Follow(rhs); err == nil && r == lhs {
			return lhs, nil
		}
	}
	//
	return RootId, NewResolveError(AmbiguousSymbol, name.String(), name.Ref,
		p.FullName(lhs).String(), p.FullName(rhs).String())
}

// Search for a name starting from a given symbol, and moving outwards through
// its enclosing symbols (but stopping before the root).
func (p *Table) searchOutward(from Id, name syntax.QualifiedName) (Id, error) {
	var first error
	//
	if name.IsSuper() {
		start, ok := p.Within(from, isModule)
		// Move up one module for each super segment
		for i := uint(0); ok && i < name.Super; i++ {
			start, ok = p.Parent(start)
			if ok {
				start, ok = p.Within(start, isModule)
			}
		}
		//
		if !ok || start == RootId {
			return RootId, NewResolveError(InvalidSuper, name.String(), name.Ref)
		}
		//
		return p.resolvePath(start, name, from)
	}
	//
	for scope := from; scope != RootId; scope = p.nodes[scope].parent {
		id, err := p.resolvePath(scope, name, from)
		if err == nil {
			return id, nil
		} else if first == nil || !IsResolveError(err, SymbolNotFound) {
			first = preferredError(err, first)
		}
	}
	//
	if first == nil {
		first = NewResolveError(SymbolNotFound, name.String(), name.Ref)
	}
	//
	return RootId, first
}

// Resolve each identifier of a name in turn, starting from a given symbol.
// Aliases encountered along the way are followed, except for the final symbol
// which is returned as is.
func (p *Table) resolvePath(start Id, name syntax.QualifiedName, from Id) (Id, error) {
	var (
		current = start
		err     error
	)
	//
	for i, part := range name.Parts {
		if i > 0 {
			if current, err = p.Follow(current); err != nil {
				return RootId, err
			}
		}
		//
		if current, err = p.findChild(current, part.Name, from); err != nil {
			// Report the whole name, rather than just this part.
			if rerr, ok := err.(*ResolveError); ok && rerr.Kind == SymbolNotFound {
				rerr.Name = name.String()
				rerr.Ref = name.Ref
			}
			//
			return RootId, err
		}
	}
	//
	return current, nil
}

// Find the child of a given parent with a given name, as seen from a given
// symbol.  Declarations take precedence over aliases, which themselves take
// precedence over anything imported by a use-all.
func (p *Table) findChild(parent Id, name string, from Id) (Id, error) {
	var (
		candidates []Id
		private    bool
	)
	// Declarations
	if id, ok := p.nodes[parent].index[name]; ok && p.nodes[id].visibility != syntax.Deleted {
		if p.isVisible(id, from) {
			return id, nil
		}
		//
		private = true
	}
	// Aliases
	for _, child := range p.nodes[parent].children {
		if alias, ok := p.nodes[child].def.(*Alias); !ok || alias.Name != name || p.skip(child) {
			continue
		} else if p.isVisible(child, from) {
			candidates = append(candidates, child)
		} else {
			private = true
		}
	}
	// Use alls
	if len(candidates) == 0 {
		for _, child := range p.nodes[parent].children {
			if _, ok := p.nodes[child].def.(*UseAll); !ok || p.skip(child) || !p.isVisible(child, from) {
				continue
			} else if module, err := p.followUseAll(child); err == nil {
				if id, err := p.findChild(module, name, from); err == nil {
					candidates = append(candidates, id)
				}
			}
		}
	}
	//
	switch {
	case len(candidates) == 1:
		return candidates[0], nil
	case len(candidates) > 1:
		return p.distinct(name, candidates)
	case private:
		qn := p.FullName(parent)
		qn = qn.Extend(name)
		//
		return RootId, NewResolveError(SymbolIsPrivate, qn.String(), qn.Ref)
	}
	//
	err := NewResolveError(SymbolNotFound, name, source.NoRef())
	err.Hint = p.suggest(parent, name, from)
	//
	return RootId, err
}

// Check that several candidates for a name all refer to the same symbol.
func (p *Table) distinct(name string, candidates []Id) (Id, error) {
	first, err := p.Follow(candidates[0])
	if err != nil {
		return RootId, err
	}
	//
	for _, c := range candidates[1:] {
		if id, err := p.Follow(c); err != nil {
			return RootId, err
		} else if id != first {
			return RootId, NewResolveError(AmbiguousSymbol, name, source.NoRef(),
				p.FullName(first).String(), p.FullName(id).String())
		}
	}
	//
	return candidates[0], nil
}

// Follow resolves a given symbol through any aliases, returning the symbol
// ultimately referred to.  Symbols which are not aliases are returned as is.
func (p *Table) Follow(id Id) (Id, error) {
	for {
		alias, ok := p.nodes[id].def.(*Alias)
		if !ok {
			return id, nil
		} else if p.following[id] {
			return RootId, NewResolveError(SymbolNotFound, alias.Target.String(), alias.Target.Ref)
		}
		//
		p.following[id] = true
		target, err := p.lookup(alias.Target, AnyTarget, p.nodes[id].parent, true)
		delete(p.following, id)
		//
		if err != nil {
			return RootId, err
		}
		//
		id = target
	}
}

// FollowUseAll resolves the module imported by a given use-all symbol.
func (p *Table) followUseAll(id Id) (Id, error) {
	useAll := p.nodes[id].def.(*UseAll)
	//
	p.following[id] = true
	defer delete(p.following, id)
	//
	return p.lookup(useAll.Target, AnyTarget, p.nodes[id].parent, true)
}

// Determine whether a given use symbol should be skipped, because it is
// deleted or currently being followed.
func (p *Table) skip(id Id) bool {
	return p.nodes[id].visibility == syntax.Deleted || p.following[id]
}

// Determine whether a given symbol is visible from another symbol.  Public
// symbols are visible everywhere, whilst private symbols are only visible from
// within their parent.
func (p *Table) isVisible(id Id, from Id) bool {
	switch p.nodes[id].visibility {
	case syntax.Public:
		return true
	case syntax.Private, syntax.PrivateUse:
		return p.IsWithin(from, p.nodes[id].parent)
	}
	//
	return false
}

// Suggest the most similar visible name to a given name, or return the empty
// string if there is nothing similar.
func (p *Table) suggest(parent Id, name string, from Id) string {
	var names []string
	//
	for _, child := range p.nodes[parent].children {
		if _, ok := p.nodes[child].def.(*UseAll); !ok && !p.skip(child) && p.isVisible(child, from) {
			names = append(names, p.Name(child))
		}
	}
	//
	if ranks := fuzzy.RankFindFold(name, names); len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}
	// Fall back to edit distance for simple typos.
	best, bestDistance := "", 3
	//
	for _, n := range names {
		if d := fuzzy.LevenshteinDistance(name, n); d < bestDistance {
			best, bestDistance = n, d
		}
	}
	//
	return best
}

func isModule(def Def) bool {
	switch def.(type) {
	case *Module, *SourceFile:
		return true
	}
	//
	return false
}

// Prefer errors which say something more specific than "not found".
func preferredError(lhs error, rhs error) error {
	if lhs == nil {
		return rhs
	} else if rhs != nil && IsResolveError(lhs, SymbolNotFound) && !IsResolveError(rhs, SymbolNotFound) {
		return rhs
	}
	//
	return lhs
}
