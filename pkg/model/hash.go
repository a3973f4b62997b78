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
	"encoding/binary"
	"hash"
	"hash/fnv"
	"io"

	"github.com/microcad-lang/go-microcad/pkg/value"
)

// HashId is a structural hash of a model, used to identify models with the
// same content.
type HashId = uint64

// Hash computes the structural hash of the subtree rooted at a given node.
// This covers each element's content, attributes, local transformation and
// the hashes of its children (in order), but never node handles.  Thus,
// structurally identical subtrees have the same hash.
func (p *Tree) Hash(id Id) HashId {
	return p.NewHasher().Hash(id)
}

// Hasher computes structural hashes, remembering the hash of every node it
// has visited so that hashing each node of a tree in turn takes linear time.
// A hasher is only valid until the tree is next modified.
type Hasher struct {
	tree   *Tree
	hashes map[Id]HashId
}

// NewHasher constructs a hasher for this tree.
func (p *Tree) NewHasher() *Hasher {
	return &Hasher{p, make(map[Id]HashId)}
}

// Hash returns the structural hash of the subtree rooted at a given node (see
// Tree.Hash).
func (p *Hasher) Hash(id Id) HashId {
	if hash, ok := p.hashes[id]; ok {
		return hash
	}
	//
	h := fnv.New64a()
	p.writeContent(h, id)
	//
	for _, child := range p.tree.nodes[id].children {
		writeHash(h, p.Hash(child))
	}
	//
	hash := h.Sum64()
	p.hashes[id] = hash
	//
	return hash
}

// Number of nodes whose hash is known.
func (p *Hasher) Len() uint {
	return uint(len(p.hashes))
}

// Write the content of a given node (excluding its children).
func (p *Hasher) writeContent(h hash.Hash64, id Id) {
	n := &p.tree.nodes[id]
	//
	value.Fingerprint(h, value.String(n.element.Kind()), nil)
	//
	switch e := n.element.(type) {
	case *Workpiece:
		p.writeCreator(h, &e.Creator)
		value.Fingerprint(h, e.Properties, p.Hash)
	case *BuiltinWorkpiece:
		p.writeCreator(h, &e.Creator)
		value.Fingerprint(h, e.Transform, p.Hash)
	}
	//
	for _, attr := range n.attributes {
		attr.Fingerprint(h)
	}
}

func (p *Hasher) writeCreator(h hash.Hash64, creator *Creator) {
	value.Fingerprint(h, value.String(creator.Name), nil)
	value.Fingerprint(h, creator.Arguments, p.Hash)
}

func writeHash(w io.Writer, hash HashId) {
	var buf [8]byte
	//
	binary.LittleEndian.PutUint64(buf[:], hash)
	_, _ = w.Write(buf[:])
}
