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
	"fmt"
)

// ErrBucketNotFound returned when the library database is missing its bucket
type ErrBucketNotFound struct {
	Name string
}

func (e ErrBucketNotFound) Error() string {
	return fmt.Sprintf("Bucket not found: %s", e.Name)
}

// ErrScriptNotFound returned when a named script is not in the library
type ErrScriptNotFound struct {
	Name string
}

func (e ErrScriptNotFound) Error() string {
	return fmt.Sprintf("Script not found: %s", e.Name)
}
