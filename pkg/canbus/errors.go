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

package canbus

import (
	"fmt"
)

// ErrFrameLength returned when the payload length exceeds the classical CAN limit
type ErrFrameLength struct {
	Len uint8
}

func (e ErrFrameLength) Error() string {
	return fmt.Sprintf("Frame payload length out of range: %d", e.Len)
}

// ErrIdentifierRange returned when the identifier does not fit its width
type ErrIdentifierRange struct {
	ID       uint32
	Extended bool
}

func (e ErrIdentifierRange) Error() string {
	if e.Extended {
		return fmt.Sprintf("Extended identifier out of range: 0x%08X", e.ID)
	}
	return fmt.Sprintf("Standard identifier out of range: 0x%03X", e.ID)
}

// TokenError returned by ParseFrame when a hex token is malformed. The token
// degrades to value 0 and parsing continues, so the frame alongside the error
// is still usable. Value 0 in the identifier position is indistinguishable
// from the script sentinel, a known ambiguity of the notation.
type TokenError struct {
	Index int
	Token string
}

func (e TokenError) Error() string {
	return fmt.Sprintf("Malformed hex token %q at position %d", e.Token, e.Index)
}
