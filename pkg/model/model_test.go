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
package model

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/microcad-lang/go-microcad/pkg/symbol"
	"github.com/microcad-lang/go-microcad/pkg/syntax"
	"github.com/microcad-lang/go-microcad/pkg/util/collection/iter"
	"github.com/microcad-lang/go-microcad/pkg/util/source"
	"github.com/microcad-lang/go-microcad/pkg/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Multiplicity_01(t *testing.T) {
	tree := NewTree()
	root := tree.Add(&Group{}, source.NoRef())
	multi := tree.Add(&Multiplicity{}, source.NoRef())
	tree.AppendChild(root, multi)
	//
	var expected []Id
	for i := 1; i <= 3; i++ {
		c := circle(tree, float64(i))
		tree.AppendChild(multi, c)
		expected = append(expected, c)
	}
	//
	items := iter.Collect(tree.MultiplicityDescendants(root))
	assert.Equal(t, expected, items)
	assert.NotContains(t, items, multi)
	// Starting from the multiplicity itself
	assert.Equal(t, uint(3), iter.Count(tree.MultiplicityDescendants(multi)))
}

func Test_Multiplicity_02(t *testing.T) {
	tree := NewTree()
	root := tree.Add(&Group{}, source.NoRef())
	outer := tree.Add(&Multiplicity{}, source.NoRef())
	inner := tree.Add(&Multiplicity{}, source.NoRef())
	a, b, c := circle(tree, 1), circle(tree, 2), circle(tree, 3)
	//
	tree.AppendChildren(root, a, outer)
	tree.AppendChildren(outer, inner, c)
	tree.AppendChildren(inner, b)
	// Nested multiplicities are flattened, whilst order is preserved.
	items := iter.Collect(tree.MultiplicityDescendants(root))
	assert.Equal(t, []Id{a, b, c}, items)
}

func Test_ReplaceInput_01(t *testing.T) {
	tree := NewTree()
	template := workpiece(tree, "op", syntax.Operation)
	before := circle(tree, 10)
	placeholder := tree.Add(&InputPlaceholder{}, source.NoRef())
	after := circle(tree, 20)
	tree.AppendChildren(template, before, placeholder, after)
	//
	input := workpiece(tree, "shape", syntax.Sketch)
	tree.AppendChild(input, circle(tree, 5))
	//
	result := tree.ReplaceInputPlaceholders(template, input)
	require.NoError(t, tree.Check())
	//
	children := tree.Children(result)
	require.Len(t, children, 3)
	// Siblings preserved unchanged
	assert.Equal(t, tree.Hash(before), tree.Hash(children[0]))
	assert.Equal(t, tree.Hash(after), tree.Hash(children[2]))
	// Placeholder replaced by structural copy
	assert.NotEqual(t, input, children[1])
	assert.Equal(t, tree.Hash(input), tree.Hash(children[1]))
	assert.False(t, tree.HasInputPlaceholder(result))
	// Template untouched
	assert.Equal(t, []Id{before, placeholder, after}, tree.Children(template))
	assert.True(t, tree.HasInputPlaceholder(template))
}

func Test_ReplaceInput_02(t *testing.T) {
	tree := NewTree()
	placeholder := tree.Add(&InputPlaceholder{}, source.NoRef())
	input := circle(tree, 1)
	//
	result := tree.ReplaceInputPlaceholders(placeholder, input)
	assert.NotEqual(t, input, result)
	assert.Equal(t, tree.Hash(input), tree.Hash(result))
}

func Test_DeepCopy_01(t *testing.T) {
	tree := NewTree()
	root := workpiece(tree, "shape", syntax.Part)
	tree.AppendChildren(root, circle(tree, 1), circle(tree, 2))
	tree.AddAttributes(root, &Color{1, 0, 0, 1})
	tree.Assign(root, "x", value.Integer(1))
	//
	copied := tree.DeepCopy(root)
	require.NoError(t, tree.Check())
	//
	if diff := cmp.Diff(tree.Snapshot(root), tree.Snapshot(copied)); diff != "" {
		t.Errorf("copy differs (-want +got):\n%s", diff)
	}
	// Modifying the copy does not modify the original
	tree.Element(copied).(*Workpiece).Properties.Add("y", value.Integer(2))
	_, ok := tree.Property(root, "y")
	assert.False(t, ok)
	// No shared nodes
	for _, c := range tree.Children(copied) {
		assert.NotContains(t, tree.Children(root), c)
	}
}

func Test_Hash_01(t *testing.T) {
	tree := NewTree()
	a, b := circle(tree, 1), circle(tree, 1)
	// Hash ignores identity
	assert.Equal(t, tree.Hash(a), tree.Hash(b))
	// But not content
	assert.NotEqual(t, tree.Hash(a), tree.Hash(circle(tree, 2)))
	// Nor attributes
	tree.AddAttributes(b, &Color{0, 0, 1, 1})
	assert.NotEqual(t, tree.Hash(a), tree.Hash(b))
}

func Test_Hash_02(t *testing.T) {
	tree := NewTree()
	g1, g2 := tree.Add(&Group{}, source.NoRef()), tree.Add(&Group{}, source.NoRef())
	tree.AppendChildren(g1, circle(tree, 1), circle(tree, 2))
	tree.AppendChildren(g2, circle(tree, 2), circle(tree, 1))
	// Order of children matters
	assert.NotEqual(t, tree.Hash(g1), tree.Hash(g2))
	// As does transformation
	t1 := translate(tree, 1)
	t2 := translate(tree, 2)
	assert.NotEqual(t, tree.Hash(t1), tree.Hash(t2))
}

func Test_Hash_03(t *testing.T) {
	tree := NewTree()
	root := tree.Add(&Group{}, source.NoRef())
	inner := tree.Add(&Group{}, source.NoRef())
	a, b := circle(tree, 1), circle(tree, 2)
	tree.AppendChildren(inner, a, b)
	tree.AppendChildren(root, inner)
	// Each node is hashed once, and agrees with hashing from scratch
	hasher := tree.NewHasher()
	assert.Equal(t, tree.Hash(root), hasher.Hash(root))
	assert.Equal(t, uint(4), hasher.Len())
	//
	for _, id := range []Id{inner, a, b} {
		assert.Equal(t, tree.Hash(id), hasher.Hash(id))
	}
	//
	assert.Equal(t, uint(4), hasher.Len())
}

func Test_Tree_01(t *testing.T) {
	tree := NewTree()
	root := tree.Add(&Group{}, source.NoRef())
	a, b, c := circle(tree, 1), circle(tree, 2), circle(tree, 3)
	tree.AppendChildren(root, a, b, c)
	//
	tree.Detach(b)
	require.NoError(t, tree.Check())
	assert.Equal(t, []Id{a, c}, tree.Children(root))
	//
	_, ok := tree.Parent(b)
	assert.False(t, ok)
	// Reattach
	tree.AppendChild(a, b)
	require.NoError(t, tree.Check())
	//
	parent, ok := tree.Parent(b)
	assert.True(t, ok)
	assert.Equal(t, a, parent)
	assert.Panics(t, func() { tree.AppendChild(c, b) })
}

func Test_Tree_02(t *testing.T) {
	tree := NewTree()
	root := tree.Add(&Group{}, source.NoRef())
	a, b := circle(tree, 1), circle(tree, 2)
	tree.AppendChildren(root, a, b)
	tree.AddAttributes(b, &Export{"b.svg", "svg"})
	//
	assert.Equal(t, []Id{b}, tree.Exports(root))
	//
	var builder strings.Builder
	require.NoError(t, tree.Print(&builder, root))
	assert.Equal(t, `group
  primitive2d circle(radius = 1mm)
  #[export = "b.svg" (svg)] primitive2d circle(radius = 2mm)
`, builder.String())
	//
	builder.Reset()
	require.NoError(t, tree.Dump(&builder, root))
	assert.Contains(t, builder.String(), "BuiltinWorkpiece")
}

// ============================================================================
// Helpers
// ============================================================================

func circle(tree *Tree, radius float64) Id {
	args := value.NewTuple()
	args.Add("radius", value.NewLength(radius))
	//
	return tree.Add(&BuiltinWorkpiece{
		Type:    symbol.BuiltinPrimitive2D,
		Creator: Creator{Name: "circle", Arguments: args},
	}, source.NoRef())
}

func translate(tree *Tree, x float64) Id {
	m := value.Identity(4)
	m.Data[3] = x
	//
	return tree.Add(&BuiltinWorkpiece{
		Type:      symbol.BuiltinTransform,
		Creator:   Creator{Name: "translate"},
		Transform: m,
	}, source.NoRef())
}

func workpiece(tree *Tree, name string, kind syntax.WorkbenchKind) Id {
	return tree.Add(&Workpiece{Type: kind, Creator: Creator{Name: name}}, source.NoRef())
}
