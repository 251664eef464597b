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
	"path/filepath"
	"reflect"
	"testing"
)

func openTestLibrary(t *testing.T) *Library {
	t.Helper()
	l, err := OpenLibrary(filepath.Join(t.TempDir(), "scripts.db"))
	if err != nil {
		t.Fatalf("OpenLibrary: %v", err)
	}
	t.Cleanup(l.Close)
	return l
}

func TestLibraryRoundTrip(t *testing.T) {
	l := openTestLibrary(t)
	entries := []string{"0x001 0x11", "0x2F0 0x01 0x10", "0x4A8 0xC0 0xFF"}

	if err := l.Put("door-probe", entries); err != nil {
		t.Fatalf("Put: %v", err)
	}
	store, err := l.Get("door-probe")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if store.Name() != "door-probe" {
		t.Errorf("store name = %q", store.Name())
	}
	if !reflect.DeepEqual(store.Entries(), entries) {
		t.Fatalf("entries = %v, want %v", store.Entries(), entries)
	}
}

func TestLibraryListAndDelete(t *testing.T) {
	l := openTestLibrary(t)
	l.Put("b", []string{"0x002"})
	l.Put("a", []string{"0x001"})

	names, err := l.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if !reflect.DeepEqual(names, []string{"a", "b"}) {
		t.Fatalf("names = %v, want [a b]", names)
	}

	if err := l.Delete("a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	names, _ = l.List()
	if !reflect.DeepEqual(names, []string{"b"}) {
		t.Fatalf("names after delete = %v, want [b]", names)
	}
}

func TestLibraryGetMissing(t *testing.T) {
	l := openTestLibrary(t)
	if _, err := l.Get("nope"); err == nil {
		t.Fatal("expected an error for a missing script")
	} else if _, ok := err.(ErrScriptNotFound); !ok {
		t.Fatalf("expected ErrScriptNotFound, got %T", err)
	}
}

func TestLibraryPutReplaces(t *testing.T) {
	l := openTestLibrary(t)
	l.Put("s", []string{"0x001"})
	l.Put("s", []string{"0x002", "0x003"})

	store, err := l.Get("s")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if store.Len() != 2 {
		t.Fatalf("entries = %v, want the replaced script", store.Entries())
	}
}
