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

// Package script holds the ordered frame sequences the playback scheduler
// replays on the bus. A store is immutable once loaded; authoring happens
// offline, either in source (the built-in script) or through the bbolt
// script library.
package script

import (
	"github.com/canlab/go-canmon/pkg/canbus"
)

// Store is an ordered list of textual frame definitions. Entries past the
// end read as the sentinel, so every script is implicitly terminated.
// Entries are parsed lazily, on access.
type Store struct {
	name    string
	entries []string
}

func NewStore(name string, entries []string) *Store {
	return &Store{name: name, entries: entries}
}

// Default is the built-in replay script used when no library script is
// configured. Captured traffic in replay-literal form can be pasted here.
func Default() *Store {
	return NewStore("builtin", []string{
		"0x1A6 0x00 0x00 0x00 0x00 0x00 0x00 0x00 0x00",
		"0x2F0 0x01 0x10",
		"0x2F0 0x01 0x11",
		"0x4A8 0xC0 0xFF",
	})
}

func (s *Store) Name() string {
	return s.name
}

func (s *Store) Len() int {
	return len(s.entries)
}

func (s *Store) Entries() []string {
	entries := make([]string, len(s.entries))
	copy(entries, s.entries)
	return entries
}

// Entry parses the i-th frame definition. Out-of-range indices yield the
// sentinel frame. Malformed tokens keep the permissive degrade-to-zero
// behavior of the notation; the error is reported for callers that care.
func (s *Store) Entry(i int) (canbus.Frame, error) {
	if i < 0 || i >= len(s.entries) {
		return canbus.Frame{}, nil
	}
	return canbus.ParseFrame(s.entries[i])
}
