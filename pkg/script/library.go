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
	"go.etcd.io/bbolt"
	"sigs.k8s.io/yaml"

	"github.com/canlab/go-canmon/pkg/log"
)

const (
	BucketName = "scripts"
)

// Library is the bbolt-backed store of named replay scripts. The monitor
// loads one script from it at startup; the store stays immutable for the
// lifetime of the process, authoring happens through the CLI.
type Library struct {
	DB *bbolt.DB
}

func OpenLibrary(path string) (*Library, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, err
	}
	if err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(BucketName))
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}
	return &Library{DB: db}, nil
}

// Close ...
func (l *Library) Close() {
	l.DB.Close()
}

// Put stores a named script, replacing any previous version.
func (l *Library) Put(name string, entries []string) error {
	log.Debug("Storing script: %s entries: %d", name, len(entries))
	data, err := yaml.Marshal(entries)
	if err != nil {
		return err
	}
	return l.DB.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(BucketName))
		if b == nil {
			return ErrBucketNotFound{Name: BucketName}
		}
		return b.Put([]byte(name), data)
	})
}

// Get loads a named script into an immutable store.
func (l *Library) Get(name string) (*Store, error) {
	var entries []string
	if err := l.DB.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(BucketName))
		if b == nil {
			return ErrBucketNotFound{Name: BucketName}
		}
		data := b.Get([]byte(name))
		if data == nil {
			return ErrScriptNotFound{Name: name}
		}
		return yaml.Unmarshal(data, &entries)
	}); err != nil {
		return nil, err
	}
	return NewStore(name, entries), nil
}

// List returns the stored script names in key order.
func (l *Library) List() ([]string, error) {
	var names []string
	if err := l.DB.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(BucketName))
		if b == nil {
			return ErrBucketNotFound{Name: BucketName}
		}
		return b.ForEach(func(k, v []byte) error {
			names = append(names, string(k))
			return nil
		})
	}); err != nil {
		return nil, err
	}
	return names, nil
}

// Delete removes a named script. Deleting a missing script is not an error.
func (l *Library) Delete(name string) error {
	return l.DB.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(BucketName))
		if b == nil {
			return ErrBucketNotFound{Name: BucketName}
		}
		return b.Delete([]byte(name))
	})
}
