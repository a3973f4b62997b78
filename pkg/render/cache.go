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
	"fmt"
	"os"
	"strconv"

	"github.com/microcad-lang/go-microcad/pkg/model"
	log "github.com/sirupsen/logrus"
)

// MaxCostVariable is the environment variable which overrides the eviction
// threshold of a render cache.
const MaxCostVariable = "MICROCAD_CACHE_MAX_COST"

// Weights determine how the score of a cache item is computed, and which
// items are evicted.
type Weights struct {
	// Weight given to how recently an item was last accessed.
	Recency float64
	// Weight given to the number of hits an item has had.
	Frequency float64
	// Weight given to the time (in milliseconds) taken to compute an item.
	Cost float64
	// Items scoring at or below this threshold are evicted.
	MaxCost float64
}

// DefaultWeights returns the default cache weights.
func DefaultWeights() Weights {
	return Weights{Recency: 2.3, Frequency: 0.5, Cost: 0.2, MaxCost: 1.2}
}

// FromEnv returns these weights with the eviction threshold overridden by the
// MICROCAD_CACHE_MAX_COST environment variable, if set.  An error is returned
// if the variable is set but is not a number.
func (p Weights) FromEnv() (Weights, error) {
	str, ok := os.LookupEnv(MaxCostVariable)
	if !ok || str == "" {
		return p, nil
	}
	//
	maxCost, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return p, fmt.Errorf("invalid %s value \"%s\"", MaxCostVariable, str)
	}
	//
	p.MaxCost = maxCost
	//
	return p, nil
}

// Item is an entry in the render cache.
type Item[T any] struct {
	// Cached content.
	Content T
	// Number of times this item has been retrieved since it was inserted.
	Hits uint64
	// Time taken (in milliseconds) to compute the content.
	Millis float64
	// Logical time at which this item was last accessed.
	LastAccess uint64
}

// CacheStats summarises the activity of a cache.
type CacheStats struct {
	Hits, Misses, Evictions uint64
}

func (p CacheStats) String() string {
	return fmt.Sprintf("%d hits, %d misses, %d evictions", p.Hits, p.Misses, p.Evictions)
}

// Cache holds previously rendered content, keyed on the structural hash of the
// model (and resolution) it was rendered from.  Items are retained according to
// a score which balances how recently and frequently they were used against how
// expensive they were to compute.  Time is measured by a logical clock which
// advances once per render pass.  A cache is not safe for concurrent use.
type Cache[T any] struct {
	items   map[model.HashId]*Item[T]
	weights Weights
	// Logical clock
	now   uint64
	stats CacheStats
}

// NewCache constructs an empty cache with the given weights.
func NewCache[T any](weights Weights) *Cache[T] {
	return &Cache[T]{make(map[model.HashId]*Item[T]), weights, 0, CacheStats{}}
}

// Len returns the number of items currently in the cache.
func (p *Cache[T]) Len() uint {
	return uint(len(p.items))
}

// Now returns the current logical time.
func (p *Cache[T]) Now() uint64 {
	return p.now
}

// Tick advances the logical clock.
func (p *Cache[T]) Tick() {
	p.now++
}

// Weights returns the weights in use by this cache.
func (p *Cache[T]) Weights() Weights {
	return p.weights
}

// Stats returns a summary of the activity of this cache.
func (p *Cache[T]) Stats() CacheStats {
	return p.stats
}

// Item returns the item with a given hash without affecting it.
func (p *Cache[T]) Item(hash model.HashId) (*Item[T], bool) {
	item, ok := p.items[hash]
	return item, ok
}

// Get retrieves the content with a given hash.  On a hit, the item's hit count
// is incremented and its last access time refreshed, but its content is
// returned unchanged.
func (p *Cache[T]) Get(hash model.HashId) (T, bool) {
	item, ok := p.items[hash]
	if !ok {
		var empty T
		//
		p.stats.Misses++
		//
		return empty, false
	}
	//
	item.Hits++
	item.LastAccess = p.now
	p.stats.Hits++
	//
	return item.Content, true
}

// Insert content with a given hash, which took a given number of milliseconds
// to compute.  Any existing item with the same hash is replaced.
func (p *Cache[T]) Insert(hash model.HashId, content T, millis float64) {
	p.items[hash] = &Item[T]{Content: content, Millis: millis, LastAccess: p.now}
}

// Score computes the retention score of a given item at the current time.
func (p *Cache[T]) Score(item *Item[T]) float64 {
	var (
		age     = float64(p.now - item.LastAccess)
		recency = p.weights.Recency / (1 + age)
	)
	//
	return recency + p.weights.Frequency*float64(item.Hits) + p.weights.Cost*item.Millis
}

// GarbageCollection evicts every item whose score is at or below the eviction
// threshold, returning the number of items evicted.
func (p *Cache[T]) GarbageCollection() uint {
	var count uint
	//
	for hash, item := range p.items {
		if p.Score(item) <= p.weights.MaxCost {
			delete(p.items, hash)
			//
			count++
		}
	}
	//
	p.stats.Evictions += uint64(count)
	//
	log.Debugf("render cache evicted %d item(s), %d remaining", count, len(p.items))
	//
	return count
}

// Clear removes every item from the cache.
func (p *Cache[T]) Clear() {
	clear(p.items)
}
