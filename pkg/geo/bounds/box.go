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
	"fmt"
	"math"

	"github.com/microcad-lang/go-microcad/pkg/geo"
	"github.com/microcad-lang/go-microcad/pkg/value"
)

// Box is an axis-aligned bounding box, which is the only geometry this kernel
// produces.  2D boxes have zero extent along the z axis.
type Box struct {
	Dimension geo.Dim
	Min, Max  [3]float64
}

var _ geo.Geometry = &Box{}

// EmptyBox constructs a box which contains nothing, and acts as the identity
// for Join.
func EmptyBox(dim geo.Dim) *Box {
	inf := math.Inf(1)
	//
	return &Box{dim, [3]float64{inf, inf, inf}, [3]float64{-inf, -inf, -inf}}
}

// NewBox2D constructs a 2D box with the given corners.
func NewBox2D(x0, y0, x1, y1 float64) *Box {
	return &Box{geo.Dim2, [3]float64{x0, y0, 0}, [3]float64{x1, y1, 0}}
}

// NewBox3D constructs a 3D box with the given corners.
func NewBox3D(x0, y0, z0, x1, y1, z1 float64) *Box {
	return &Box{geo.Dim3, [3]float64{x0, y0, z0}, [3]float64{x1, y1, z1}}
}

// Dim returns the dimension of this box.
func (p *Box) Dim() geo.Dim {
	return p.Dimension
}

// IsEmpty checks whether this box contains nothing.
func (p *Box) IsEmpty() bool {
	return p.Min[0] > p.Max[0] || p.Min[1] > p.Max[1] || p.Min[2] > p.Max[2]
}

// Size returns the extent of this box along each axis.
func (p *Box) Size() [3]float64 {
	if p.IsEmpty() {
		return [3]float64{}
	}
	//
	return [3]float64{p.Max[0] - p.Min[0], p.Max[1] - p.Min[1], p.Max[2] - p.Min[2]}
}

// Join returns the smallest box containing both this box and another.
func (p *Box) Join(other *Box) *Box {
	r := &Box{Dimension: p.Dimension.Join(other.Dimension)}
	//
	for i := range 3 {
		r.Min[i] = math.Min(p.Min[i], other.Min[i])
		r.Max[i] = math.Max(p.Max[i], other.Max[i])
	}
	//
	return r
}

// Intersect returns the box contained in both this box and another, which may
// be empty.
func (p *Box) Intersect(other *Box) *Box {
	r := &Box{Dimension: p.Dimension.Join(other.Dimension)}
	//
	for i := range 3 {
		r.Min[i] = math.Max(p.Min[i], other.Min[i])
		r.Max[i] = math.Min(p.Max[i], other.Max[i])
	}
	//
	if r.IsEmpty() {
		return EmptyBox(r.Dimension)
	}
	//
	return r
}

// Transform returns the bounding box of this box after applying an affine
// transformation, given as a 4x4 matrix.
func (p *Box) Transform(m value.Matrix) *Box {
	if p.IsEmpty() || m.Rows != 4 || m.Cols != 4 {
		return p
	}
	//
	r := EmptyBox(p.Dimension)
	// Visit every corner
	for corner := range 8 {
		var point [3]float64
		//
		for i := range 3 {
			if corner&(1<<i) == 0 {
				point[i] = p.Min[i]
			} else {
				point[i] = p.Max[i]
			}
		}
		//
		for row := range uint(3) {
			v := m.At(row, 3)
			//
			for col := range uint(3) {
				v += m.At(row, col) * point[col]
			}
			//
			r.Min[row] = math.Min(r.Min[row], v)
			r.Max[row] = math.Max(r.Max[row], v)
		}
	}
	//
	return r
}

func (p *Box) String() string {
	switch {
	case p.IsEmpty():
		return "empty"
	case p.Dimension == geo.Dim2:
		return fmt.Sprintf("[%g, %g] .. [%g, %g]", p.Min[0], p.Min[1], p.Max[0], p.Max[1])
	}
	//
	return fmt.Sprintf("[%g, %g, %g] .. [%g, %g, %g]", p.Min[0], p.Min[1], p.Min[2], p.Max[0], p.Max[1], p.Max[2])
}

// Of determines the bounding box of any geometry composed from boxes.
func Of(geometry geo.Geometry) (*Box, error) {
	switch g := geometry.(type) {
	case *Box:
		return g, nil
	case *geo.Collection:
		r := EmptyBox(g.Dimension)
		//
		for _, item := range g.Items {
			b, err := Of(item)
			if err != nil {
				return nil, err
			}
			//
			r = r.Join(b)
		}
		//
		return r, nil
	case *geo.Transformed:
		b, err := Of(g.Inner)
		if err != nil {
			return nil, err
		}
		//
		return b.Transform(g.Matrix), nil
	}
	//
	return nil, fmt.Errorf("unsupported geometry %T", geometry)
}

// Segments determines how many straight segments are needed to approximate a
// circle of a given radius, such that no point on the circle is further than
// the linear resolution from the approximation.
func Segments(radius float64, res geo.Resolution) uint {
	if radius <= res.Linear || res.Linear <= 0 {
		return 3
	}
	//
	n := math.Ceil(math.Pi / math.Acos(1-res.Linear/radius))
	//
	return max(3, uint(n))
}

// Determine the bounds of the regular polygon approximating a circle.
func polygon(radius float64, res geo.Resolution) (minX, minY, maxX, maxY float64) {
	var n = Segments(radius, res)
	//
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	//
	for k := range n {
		angle := 2 * math.Pi * float64(k) / float64(n)
		x, y := radius*math.Cos(angle), radius*math.Sin(angle)
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	//
	return minX, minY, maxX, maxY
}
