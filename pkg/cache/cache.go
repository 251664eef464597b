/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

// Package cache suppresses repeated noise frames so that rare traffic stands
// out. Frames are classified by identifier first: an explicit allow-list is
// always displayed, an explicit deny-list never is, everything else is
// deduplicated by (identifier, payload) key.
package cache

import (
	"math"

	"github.com/canlab/go-canmon/pkg/canbus"
	"github.com/canlab/go-canmon/pkg/log"
)

type Class int

const (
	AlwaysShow Class = iota
	AlwaysSuppress
	Cacheable
)

func (c Class) String() string {
	switch c {
	case AlwaysShow:
		return "show"
	case AlwaysSuppress:
		return "suppress"
	}
	return "cacheable"
}

type Result int

const (
	ResultNew Result = iota
	ResultSeen
)

// Entry is one deduplicated frame identity. Count saturates instead of
// wrapping.
type Entry struct {
	Frame canbus.Frame
	Count uint32
}

// Cache is the fixed-capacity duplicate-suppression cache. Lookup is a map
// keyed by the fixed-width frame key; a separate slice preserves insertion
// order because the dump order approximates the temporal order of first
// sighting, which matters for reverse-engineering sessions.
type Cache struct {
	capacity int
	show     map[uint32]struct{}
	suppress map[uint32]struct{}
	entries  map[canbus.Key]*Entry
	order    []*Entry
	overflow bool
}

func New(capacity int, show, suppress []uint32) *Cache {
	c := &Cache{
		capacity: capacity,
		show:     make(map[uint32]struct{}),
		suppress: make(map[uint32]struct{}),
		entries:  make(map[canbus.Key]*Entry),
	}
	for _, id := range show {
		c.show[id] = struct{}{}
	}
	for _, id := range suppress {
		c.suppress[id] = struct{}{}
	}
	return c
}

// Classify consults only the static tables, never the payload and never the
// cached entries.
func (c *Cache) Classify(id uint32) Class {
	if _, ok := c.show[id]; ok {
		return AlwaysShow
	}
	if _, ok := c.suppress[id]; ok {
		return AlwaysSuppress
	}
	return Cacheable
}

// Observe records a cacheable frame. ResultSeen means the exact (identifier,
// payload) pair was cached before. Once capacity is exhausted the cache
// stops growing and every unseen frame keeps reporting ResultNew; that
// condition is logged once as a high-water mark, it is not an error.
func (c *Cache) Observe(frame canbus.Frame) Result {
	key := frame.Key()
	if entry, ok := c.entries[key]; ok {
		if entry.Count < math.MaxUint32 {
			entry.Count++
		}
		return ResultSeen
	}
	if len(c.order) >= c.capacity {
		if !c.overflow {
			c.overflow = true
			log.Warning("Frame cache high-water mark reached (%d entries), further unseen frames are not cached", c.capacity)
		}
		return ResultNew
	}
	entry := &Entry{Frame: frame, Count: 1}
	c.entries[key] = entry
	c.order = append(c.order, entry)
	return ResultNew
}

// Reset drops all entries. The classification tables are untouched.
func (c *Cache) Reset() {
	c.entries = make(map[canbus.Key]*Entry)
	c.order = nil
	c.overflow = false
}

// Dump returns the entries in insertion order.
func (c *Cache) Dump() []Entry {
	dump := make([]Entry, len(c.order))
	for i, entry := range c.order {
		dump[i] = *entry
	}
	return dump
}

func (c *Cache) Len() int {
	return len(c.order)
}
