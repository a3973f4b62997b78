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
package render

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"

	"github.com/microcad-lang/go-microcad/pkg/geo"
	"github.com/microcad-lang/go-microcad/pkg/model"
	"github.com/microcad-lang/go-microcad/pkg/value"
)

// Output holds everything determined about a model when it is rendered.  All
// fields except the geometry are computed before any geometry is produced.
type Output struct {
	// Kind of geometry produced by the model.
	Type geo.Dim
	// Transformation relative to the parent.
	Local value.Matrix
	// Transformation relative to the root.
	World value.Matrix
	// Resolution at which the model is rendered.
	Resolution geo.Resolution
	// Attributes of the model.
	Attributes model.Attributes
	// Structural hash of the model, including its resolution.  This is the key
	// used for caching.
	Hash model.HashId
	// Geometry produced for the model (in its local coordinate frame), or nil
	// if it has not been rendered.
	Geometry geo.Geometry
}

func (p *Output) String() string {
	return fmt.Sprintf("%s @ %s #%016x", p.Type, p.Resolution, p.Hash)
}

// Prepare the outputs for every node of the subtree rooted at a given node,
// where the root is rendered at a given resolution.  Any errors found are
// returned together, and the outputs are only usable when there are none.
func (p *Context) prepare(root model.Id, res geo.Resolution) []error {
	var errors []error
	//
	p.outputs = make(map[model.Id]*Output)
	p.hasher = p.tree.NewHasher()
	p.total = 0
	p.prepareNode(root, value.Identity(4), res, &errors)
	//
	return errors
}

func (p *Context) prepareNode(id model.Id, parent value.Matrix, res geo.Resolution, errors *[]error) geo.Dim {
	var (
		tree  = p.tree
		local = tree.Local(id)
		attrs = tree.Attributes(id)
		dim   = geo.DimNone
	)
	//
	p.total++
	// Determine resolution
	if attr, ok := attrs.Resolution(); ok {
		switch {
		case attr.Linear > 0:
			res = geo.Resolution{Linear: attr.Linear}
		case attr.Relative > 0:
			res = geo.Resolution{Linear: res.Linear / attr.Relative}
		}
	}
	//
	res = res.Scaled(scaleOf(local))
	//
	out := &Output{Local: local, World: parent.Mul(local), Resolution: res, Attributes: attrs}
	p.outputs[id] = out
	// Determine dimension
	switch e := tree.Element(id).(type) {
	case *model.InputPlaceholder:
		*errors = append(*errors, newError(UnresolvedInput, tree.Origin(id), "operation input was never supplied"))
	case *model.BuiltinWorkpiece:
		dim = e.Renderable.Dim()
	}
	//
	for _, child := range tree.Children(id) {
		childDim := p.prepareNode(child, out.World, res, errors)
		// Primitives determine their own dimension
		if _, ok := tree.Element(id).(*model.BuiltinWorkpiece); ok && dim != geo.DimNone {
			continue
		}
		//
		joined := dim.Join(childDim)
		// Report mixing only where it first arises
		if joined == geo.DimMixed && dim != geo.DimMixed && childDim != geo.DimMixed {
			*errors = append(*errors, newError(CannotMixGeometry, tree.Origin(id),
				"cannot mix %s and %s geometry in %s", dim, childDim, tree.Element(id).Kind()))
		}
		//
		dim = joined
	}
	//
	out.Type = dim
	out.Hash = renderHash(p.hasher.Hash(id), res)
	//
	return dim
}

// Combine the structural hash of a model with the resolution at which it is
// rendered.
func renderHash(hash model.HashId, res geo.Resolution) model.HashId {
	var (
		h   = fnv.New64a()
		buf [16]byte
	)
	//
	binary.LittleEndian.PutUint64(buf[:8], hash)
	binary.LittleEndian.PutUint64(buf[8:], math.Float64bits(res.Linear))
	_, _ = h.Write(buf[:])
	//
	return h.Sum64()
}

// Determine the largest factor by which a transformation scales any axis.
func scaleOf(m value.Matrix) float64 {
	if m.Rows < 3 || m.Cols < 3 {
		return 1
	}
	//
	var factor float64
	//
	for c := uint(0); c < 3; c++ {
		var sum float64
		//
		for r := uint(0); r < 3; r++ {
			sum += m.At(r, c) * m.At(r, c)
		}
		//
		factor = math.Max(factor, math.Sqrt(sum))
	}
	//
	return factor
}
