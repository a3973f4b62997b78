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
package geo

import (
	"fmt"

	"github.com/microcad-lang/go-microcad/pkg/value"
)

// Dim identifies the kind of geometry produced by a model.
type Dim uint8

const (
	// DimNone indicates no geometry is produced (e.g. an empty group).
	DimNone Dim = iota
	// Dim2 indicates 2D geometry.
	Dim2
	// Dim3 indicates 3D geometry.
	Dim3
	// DimMixed indicates both 2D and 3D geometry, which cannot be rendered.
	DimMixed
)

func (p Dim) String() string {
	switch p {
	case DimNone:
		return "none"
	case Dim2:
		return "2D"
	case Dim3:
		return "3D"
	case DimMixed:
		return "mixed"
	}
	//
	return "???"
}

// Join combines two dimensions, as arises when models of each dimension are
// siblings.  Joining 2D with 3D gives DimMixed.
func (p Dim) Join(other Dim) Dim {
	switch {
	case p == DimNone:
		return other
	case other == DimNone || p == other:
		return p
	}
	//
	return DimMixed
}

// Resolution determines how finely curved geometry is approximated.
type Resolution struct {
	// Maximum distance (in millimetres) between an exact curve and its
	// approximation.
	Linear float64
}

// DefaultResolution is used when no resolution is otherwise specified.
var DefaultResolution = Resolution{0.1}

// Scaled returns this resolution as seen through a given (uniform) scale
// factor.  Scaling geometry up means it must be approximated more finely.
func (p Resolution) Scaled(factor float64) Resolution {
	if factor <= 0 {
		return p
	}
	//
	return Resolution{p.Linear / factor}
}

func (p Resolution) String() string {
	return fmt.Sprintf("%gmm", p.Linear)
}

// Geometry is the opaque output of a geometry kernel.  Beyond its dimension,
// nothing is assumed about it.
type Geometry interface {
	Dim() Dim
}

// Context is the view a renderable has of the render pass when it is being
// rendered.  This gives operations access to the geometry of their input.
type Context interface {
	// Resolution of the model currently being rendered.
	Resolution() Resolution
	// Children renders all children of the model currently being rendered,
	// returning their geometry in the model's local coordinate frame.
	Children() ([]Geometry, error)
}

// Renderable is implemented by the native part of a builtin workpiece, and
// connects the model tree with a geometry kernel.  Primitives produce geometry
// from their parameters alone, whilst operations and transforms consume the
// geometry of their children via the context.
type Renderable interface {
	// Dim returns the dimension of geometry produced by this renderable, or
	// DimNone if it depends upon its input.
	Dim() Dim
	// Render produces geometry at a given resolution.
	Render(res Resolution) (Geometry, error)
	// RenderWithContext produces geometry from the children of the model
	// being rendered.
	RenderWithContext(ctx Context) (Geometry, error)
}

// Collection is a set of geometries of the same dimension, such as arises from
// the children of a group.
type Collection struct {
	Dimension Dim
	Items     []Geometry
}

// Dim returns the dimension of this collection.
func (p *Collection) Dim() Dim {
	return p.Dimension
}

// Transformed is geometry moved into another coordinate frame by an affine
// transformation.
type Transformed struct {
	Matrix value.Matrix
	Inner  Geometry
}

// Dim returns the dimension of the transformed geometry.
func (p *Transformed) Dim() Dim {
	return p.Inner.Dim()
}
