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

package script

import (
	"testing"
)

func TestStoreEntries(t *testing.T) {
	s := NewStore("test", []string{"0x001 0x11", "0x002 0x22 0x33"})

	first, err := s.Entry(0)
	if err != nil {
		t.Fatalf("Entry(0): %v", err)
	}
	if first.ID != 0x001 || first.Len != 1 || first.Data[0] != 0x11 {
		t.Fatalf("unexpected first entry %+v", first)
	}

	second, err := s.Entry(1)
	if err != nil {
		t.Fatalf("Entry(1): %v", err)
	}
	if second.ID != 0x002 || second.Len != 2 {
		t.Fatalf("unexpected second entry %+v", second)
	}
}

func TestStoreImplicitSentinel(t *testing.T) {
	s := NewStore("test", []string{"0x001 0x11"})
	for _, i := range []int{1, 2, -1, 100} {
		f, err := s.Entry(i)
		if err != nil {
			t.Fatalf("Entry(%d): %v", i, err)
		}
		if !f.IsSentinel() {
			t.Fatalf("Entry(%d) = %+v, want sentinel", i, f)
		}
	}
}

func TestDefaultScriptParses(t *testing.T) {
	s := Default()
	if s.Len() == 0 {
		t.Fatal("built-in script is empty")
	}
	for i := 0; i < s.Len(); i++ {
		f, err := s.Entry(i)
		if err != nil {
			t.Fatalf("Entry(%d): %v", i, err)
		}
		if f.IsSentinel() {
			t.Fatalf("Entry(%d) is the sentinel, the built-in script would stop early", i)
		}
	}
}
