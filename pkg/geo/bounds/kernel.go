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
package bounds

import (
	"errors"
	"math"

	"github.com/microcad-lang/go-microcad/pkg/geo"
	"github.com/microcad-lang/go-microcad/pkg/value"
)

// Circle centred on the origin.
type Circle struct{ Radius float64 }

// Rect centred on the origin.
type Rect struct{ Width, Height float64 }

// Sphere centred on the origin.
type Sphere struct{ Radius float64 }

// Cube centred on the origin.
type Cube struct{ Size float64 }

// BooleanOp identifies how an operation combines its input.
type BooleanOp uint8

const (
	// Union of all inputs
	Union BooleanOp = iota
	// Intersection of all inputs
	Intersection
	// Difference of the first input and all others
	Difference
)

// Operation combines the geometry of its input.
type Operation struct{ Op BooleanOp }

// Transform passes on the geometry of its input, which is moved into place by
// the transformation matrix of its workpiece.
type Transform struct{}

var (
	_ geo.Renderable = &Circle{}
	_ geo.Renderable = &Rect{}
	_ geo.Renderable = &Sphere{}
	_ geo.Renderable = &Cube{}
	_ geo.Renderable = &Operation{}
	_ geo.Renderable = &Transform{}
)

var errNoInput = errors.New("geometry requires input")

// ============================================================================
// Primitives
// ============================================================================

// Dim implementation for geo.Renderable interface.
func (p *Circle) Dim() geo.Dim { return geo.Dim2 }

// Render implementation for geo.Renderable interface.
func (p *Circle) Render(res geo.Resolution) (geo.Geometry, error) {
	x0, y0, x1, y1 := polygon(p.Radius, res)
	return NewBox2D(x0, y0, x1, y1), nil
}

// RenderWithContext implementation for geo.Renderable interface.
func (p *Circle) RenderWithContext(ctx geo.Context) (geo.Geometry, error) {
	return p.Render(ctx.Resolution())
}

// Dim implementation for geo.Renderable interface.
func (p *Rect) Dim() geo.Dim { return geo.Dim2 }

// Render implementation for geo.Renderable interface.
func (p *Rect) Render(geo.Resolution) (geo.Geometry, error) {
	w, h := p.Width/2, p.Height/2
	return NewBox2D(-w, -h, w, h), nil
}

// RenderWithContext implementation for geo.Renderable interface.
func (p *Rect) RenderWithContext(ctx geo.Context) (geo.Geometry, error) {
	return p.Render(ctx.Resolution())
}

// Dim implementation for geo.Renderable interface.
func (p *Sphere) Dim() geo.Dim { return geo.Dim3 }

// Render implementation for geo.Renderable interface.  The sphere is
// approximated by the same polygon along each axis.
func (p *Sphere) Render(res geo.Resolution) (geo.Geometry, error) {
	x0, y0, x1, y1 := polygon(p.Radius, res)
	return NewBox3D(x0, y0, y0, x1, y1, y1), nil
}

// RenderWithContext implementation for geo.Renderable interface.
func (p *Sphere) RenderWithContext(ctx geo.Context) (geo.Geometry, error) {
	return p.Render(ctx.Resolution())
}

// Dim implementation for geo.Renderable interface.
func (p *Cube) Dim() geo.Dim { return geo.Dim3 }

// Render implementation for geo.Renderable interface.
func (p *Cube) Render(geo.Resolution) (geo.Geometry, error) {
	s := p.Size / 2
	return NewBox3D(-s, -s, -s, s, s, s), nil
}

// RenderWithContext implementation for geo.Renderable interface.
func (p *Cube) RenderWithContext(ctx geo.Context) (geo.Geometry, error) {
	return p.Render(ctx.Resolution())
}

// ============================================================================
// Operations
// ============================================================================

// Dim implementation for geo.Renderable interface.
func (p *Operation) Dim() geo.Dim { return geo.DimNone }

// Render implementation for geo.Renderable interface.
func (p *Operation) Render(geo.Resolution) (geo.Geometry, error) {
	return nil, errNoInput
}

// RenderWithContext implementation for geo.Renderable interface.
func (p *Operation) RenderWithContext(ctx geo.Context) (geo.Geometry, error) {
	children, err := ctx.Children()
	if err != nil {
		return nil, err
	} else if len(children) == 0 {
		return EmptyBox(geo.DimNone), nil
	}
	//
	boxes := make([]*Box, len(children))
	//
	for i, child := range children {
		if boxes[i], err = Of(child); err != nil {
			return nil, err
		}
	}
	//
	result := boxes[0]
	//
	for _, box := range boxes[1:] {
		switch p.Op {
		case Union:
			result = result.Join(box)
		case Intersection:
			result = result.Intersect(box)
		}
	}
	// Difference is bounded by its first input
	return result, nil
}

// Dim implementation for geo.Renderable interface.
func (p *Transform) Dim() geo.Dim { return geo.DimNone }

// Render implementation for geo.Renderable interface.
func (p *Transform) Render(geo.Resolution) (geo.Geometry, error) {
	return nil, errNoInput
}

// RenderWithContext implementation for geo.Renderable interface.
func (p *Transform) RenderWithContext(ctx geo.Context) (geo.Geometry, error) {
	children, err := ctx.Children()
	if err != nil {
		return nil, err
	}
	//
	dim := geo.DimNone
	for _, child := range children {
		dim = dim.Join(child.Dim())
	}
	//
	return &geo.Collection{Dimension: dim, Items: children}, nil
}

// ============================================================================
// Matrices
// ============================================================================

// Translation constructs a 4x4 matrix which translates by the given offsets.
func Translation(x, y, z float64) value.Matrix {
	m := value.Identity(4)
	m.Data[3], m.Data[7], m.Data[11] = x, y, z
	//
	return m
}

// Scaling constructs a 4x4 matrix which scales each axis by a given factor.
func Scaling(x, y, z float64) value.Matrix {
	m := value.Identity(4)
	m.Data[0], m.Data[5], m.Data[10] = x, y, z
	//
	return m
}

// Rotation constructs a 4x4 matrix which rotates about the z axis by a given
// angle (in radians).
func Rotation(angle float64) value.Matrix {
	var (
		m    = value.Identity(4)
		c, s = math.Cos(angle), math.Sin(angle)
	)
	//
	m.Data[0], m.Data[1] = c, -s
	m.Data[4], m.Data[5] = s, c
	//
	return m
}
