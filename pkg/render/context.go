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
	"time"

	"github.com/microcad-lang/go-microcad/pkg/geo"
	"github.com/microcad-lang/go-microcad/pkg/model"
	"github.com/microcad-lang/go-microcad/pkg/util"
	log "github.com/sirupsen/logrus"
)

// Context renders a model tree into geometry, consulting a cache to avoid
// re-rendering models which are structurally identical to those rendered
// before.  Whilst a builtin workpiece is being rendered, the context also
// serves as its view of the render pass.
type Context struct {
	tree  *model.Tree
	cache *Cache[geo.Geometry]
	// Resolution of the root model.
	resolution geo.Resolution
	// Outputs for every node of the tree being rendered.
	outputs map[model.Id]*Output
	// Structural hashes of the tree being rendered.
	hasher *model.Hasher
	// Models currently being rendered, innermost last.
	stack []model.Id
	// Optional progress channel, which receives percentages.
	progress chan<- float64
	// Number of nodes to render and rendered so far.
	total, done uint
}

var _ geo.Context = &Context{}

// NewContext constructs a render context for a given model tree, which uses
// (and updates) a given cache.
func NewContext(tree *model.Tree, cache *Cache[geo.Geometry]) *Context {
	return &Context{tree: tree, cache: cache, resolution: geo.DefaultResolution}
}

// SetResolution sets the resolution at which root models are rendered.
func (p *Context) SetResolution(res geo.Resolution) {
	p.resolution = res
}

// SetProgress sets a channel on which progress is reported.  Sends never block,
// hence updates are dropped when the receiver is not ready.
func (p *Context) SetProgress(progress chan<- float64) {
	p.progress = progress
}

// Cache returns the cache used by this context.
func (p *Context) Cache() *Cache[geo.Geometry] {
	return p.cache
}

// Output returns the render output of a given model from the most recent
// render pass.
func (p *Context) Output(id model.Id) (*Output, bool) {
	out, ok := p.outputs[id]
	return out, ok
}

// Render the subtree rooted at a given model, returning its geometry in the
// coordinate frame of its parent.  This constitutes one render pass, and
// hence advances the cache's clock and runs its garbage collection.
func (p *Context) Render(root model.Id) (geo.Geometry, []error) {
	stats := util.NewPerfStats()
	//
	p.cache.Tick()
	//
	if errs := p.prepare(root, p.resolution); len(errs) > 0 {
		return nil, errs
	}
	//
	p.done = 0
	geometry, err := p.render(root)
	//
	p.cache.GarbageCollection()
	p.report(1)
	//
	stats.Log("Rendering")
	log.Debugf("render cache: %s (%d items)", p.cache.Stats(), p.cache.Len())
	//
	if err != nil {
		return nil, []error{err}
	}
	//
	return transformed(p.outputs[root], geometry), nil
}

// Resolution implementation for the geo.Context interface.
func (p *Context) Resolution() geo.Resolution {
	if n := len(p.stack); n > 0 {
		return p.outputs[p.stack[n-1]].Resolution
	}
	//
	return p.resolution
}

// Children implementation for the geo.Context interface.  Multiplicity nodes
// are looked through, and children without geometry are skipped.
func (p *Context) Children() ([]geo.Geometry, error) {
	var geometries []geo.Geometry
	//
	if len(p.stack) == 0 {
		return nil, nil
	}
	//
	for it := p.tree.MultiplicityDescendants(p.stack[len(p.stack)-1]); it.HasNext(); {
		child := it.Next()
		//
		if p.outputs[child].Type == geo.DimNone {
			continue
		}
		//
		geometry, err := p.render(child)
		if err != nil {
			return nil, err
		}
		//
		geometries = append(geometries, transformed(p.outputs[child], geometry))
	}
	//
	return geometries, nil
}

// Update2D returns the geometry of a 2D model, either from the cache or by
// computing it with the given function (and caching the result).
func (p *Context) Update2D(id model.Id, fn func() (geo.Geometry, error)) (geo.Geometry, error) {
	return p.update(id, geo.Dim2, fn)
}

// Update3D returns the geometry of a 3D model, either from the cache or by
// computing it with the given function (and caching the result).
func (p *Context) Update3D(id model.Id, fn func() (geo.Geometry, error)) (geo.Geometry, error) {
	return p.update(id, geo.Dim3, fn)
}

func (p *Context) update(id model.Id, dim geo.Dim, fn func() (geo.Geometry, error)) (geo.Geometry, error) {
	out := p.outputs[id]
	//
	if out.Type != dim {
		return nil, newError(KernelError, p.tree.Origin(id), "expected %s geometry, found %s", dim, out.Type)
	} else if geometry, ok := p.cache.Get(out.Hash); ok {
		return geometry, nil
	}
	//
	start := time.Now()
	//
	geometry, err := fn()
	if err != nil {
		return nil, err
	} else if geometry.Dim() != dim && geometry.Dim() != geo.DimNone {
		return nil, newError(KernelError, p.tree.Origin(id), "kernel produced %s geometry for %s model",
			geometry.Dim(), dim)
	}
	//
	millis := float64(time.Since(start).Microseconds()) / 1000
	p.cache.Insert(out.Hash, geometry, millis)
	//
	return geometry, nil
}

// Render a single model, recording its geometry in its output.
func (p *Context) render(id model.Id) (geo.Geometry, error) {
	var (
		out      = p.outputs[id]
		geometry geo.Geometry
		err      error
	)
	//
	compute := func() (geo.Geometry, error) { return p.compute(id) }
	//
	switch out.Type {
	case geo.Dim2:
		geometry, err = p.Update2D(id, compute)
	case geo.Dim3:
		geometry, err = p.Update3D(id, compute)
	default:
		geometry = &geo.Collection{Dimension: geo.DimNone}
	}
	//
	if err != nil {
		return nil, err
	}
	//
	out.Geometry = geometry
	p.done++
	p.report(float64(p.done) / float64(p.total))
	//
	return geometry, nil
}

// Compute the geometry of a model which was not found in the cache.
func (p *Context) compute(id model.Id) (geo.Geometry, error) {
	var (
		geometry geo.Geometry
		err      error
	)
	//
	p.stack = append(p.stack, id)
	defer func() { p.stack = p.stack[:len(p.stack)-1] }()
	//
	switch e := p.tree.Element(id).(type) {
	case *model.BuiltinWorkpiece:
		if e.Renderable.Dim() != geo.DimNone {
			geometry, err = e.Renderable.Render(p.outputs[id].Resolution)
		} else {
			geometry, err = e.Renderable.RenderWithContext(p)
		}
	default:
		var children []geo.Geometry
		//
		children, err = p.Children()
		geometry = &geo.Collection{Dimension: p.outputs[id].Type, Items: children}
	}
	//
	if _, ok := err.(*Error); err != nil && !ok {
		err = newError(KernelError, p.tree.Origin(id), "%s", err.Error())
	}
	//
	return geometry, err
}

// Send progress (as a percentage) without blocking.
func (p *Context) report(fraction float64) {
	if p.progress == nil {
		return
	}
	//
	select {
	case p.progress <- fraction * 100:
	default:
	}
}

// Move geometry into the coordinate frame of the parent of its model.
func transformed(out *Output, geometry geo.Geometry) geo.Geometry {
	if out.Local.IsIdentity() {
		return geometry
	}
	//
	return &geo.Transformed{Matrix: out.Local, Inner: geometry}
}
