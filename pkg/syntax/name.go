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
package syntax

import (
	"slices"
	"strings"

	"github.com/microcad-lang/go-microcad/pkg/util/source"
)

// Identifier is a single name token, such as the name of a variable or of a
// module.
type Identifier struct {
	// Name of this identifier
	Name string
	// Location of this identifier in its source file.
	Ref source.Ref
}

// NewIdentifier constructs an identifier without any source location.
func NewIdentifier(name string) Identifier {
	return Identifier{name, source.NoRef()}
}

func (p Identifier) String() string {
	return p.Name
}

// QualifiedName is a construct for describing paths through the symbol tree.
// A name consists of zero or more "super" segments (each of which moves one
// step up from the current module), followed by one or more identifiers.  For
// example, "super::super::a::b" has two super segments followed by the
// identifiers "a" and "b".
type QualifiedName struct {
	// Number of leading super segments.
	Super uint
	// Identifiers in the path.
	Parts []Identifier
	// Location of this name in its source file.
	Ref source.Ref
}

// NewQualifiedName constructs a new qualified name from the given segments.
func NewQualifiedName(segments ...string) QualifiedName {
	parts := make([]Identifier, len(segments))
	//
	for i, s := range segments {
		parts[i] = NewIdentifier(s)
	}
	//
	return QualifiedName{0, parts, source.NoRef()}
}

// ParseQualifiedName splits a "::" separated name into a qualified name.
// Leading "super" segments are counted as such.
func ParseQualifiedName(name string) QualifiedName {
	var (
		segments = strings.Split(name, "::")
		super    uint
	)
	//
	for len(segments) > 0 && segments[0] == "super" {
		super++
		segments = segments[1:]
	}
	//
	qn := NewQualifiedName(segments...)
	qn.Super = super
	//
	return qn
}

// Depth returns the number of identifiers in this name (a.k.a its depth).
// Super segments are not counted.
func (p *QualifiedName) Depth() uint {
	return uint(len(p.Parts))
}

// IsEmpty checks whether this name has no identifiers.
func (p *QualifiedName) IsEmpty() bool {
	return len(p.Parts) == 0
}

// IsSuper checks whether this name begins with one or more super segments.
func (p *QualifiedName) IsSuper() bool {
	return p.Super > 0
}

// Head returns the first (i.e. outermost) identifier in this name.
func (p *QualifiedName) Head() Identifier {
	return p.Parts[0]
}

// Dehead removes the head from this name, returning an otherwise identical
// name.  Observe that any super segments are also dropped.
func (p *QualifiedName) Dehead() QualifiedName {
	return QualifiedName{0, p.Parts[1:], p.Ref}
}

// Tail returns the last (i.e. innermost) identifier in this name.
func (p *QualifiedName) Tail() Identifier {
	return p.Parts[len(p.Parts)-1]
}

// Get returns the nth identifier of this name.
func (p *QualifiedName) Get(nth uint) Identifier {
	return p.Parts[nth]
}

// Parent returns this name without its innermost identifier.
func (p *QualifiedName) Parent() QualifiedName {
	n := len(p.Parts) - 1
	return QualifiedName{p.Super, p.Parts[0:n], p.Ref}
}

// Extend returns this name extended with a new innermost identifier.
func (p *QualifiedName) Extend(tail string) QualifiedName {
	parts := slices.Clone(p.Parts)
	parts = append(parts, NewIdentifier(tail))
	//
	return QualifiedName{p.Super, parts, p.Ref}
}

// Equals determines whether two names are the same, ignoring source locations.
func (p *QualifiedName) Equals(other QualifiedName) bool {
	if p.Super != other.Super || len(p.Parts) != len(other.Parts) {
		return false
	}
	//
	for i := range p.Parts {
		if p.Parts[i].Name != other.Parts[i].Name {
			return false
		}
	}
	//
	return true
}

// Return a string representation of this name, using "::" as the separator.
func (p QualifiedName) String() string {
	var builder strings.Builder
	//
	for i := uint(0); i < p.Super; i++ {
		builder.WriteString("super::")
	}
	//
	for i, id := range p.Parts {
		if i != 0 {
			builder.WriteString("::")
		}
		//
		builder.WriteString(id.Name)
	}
	//
	return builder.String()
}
