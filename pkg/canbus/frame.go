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
	"encoding/binary"
)

const (
	// MaxStdID is the largest 11-bit standard identifier
	MaxStdID = 0x7FF
	// MaxExtID is the largest 29-bit extended identifier
	MaxExtID = 0x1FFFFFFF
	// MaxDataLen is the classical CAN payload limit
	MaxDataLen = 8
	// SentinelID terminates a replay script. A frame with identifier 0 is
	// never transmitted, it means "no more messages".
	SentinelID = 0
)

// Frame is one classical CAN (2.0A/2.0B) bus message.
type Frame struct {
	ID       uint32 // 11-bit (std) or 29-bit (ext)
	Extended bool   // true for 29-bit identifier
	RTR      bool   // remote transmission request
	Len      uint8  // 0..8
	Data     [8]byte
}

func (f Frame) Validate() error {
	if f.Len > MaxDataLen {
		return ErrFrameLength{Len: f.Len}
	}
	max := uint32(MaxStdID)
	if f.Extended {
		max = MaxExtID
	}
	if f.ID > max {
		return ErrIdentifierRange{ID: f.ID, Extended: f.Extended}
	}
	return nil
}

// Payload returns the Len-bounded slice of Data.
func (f Frame) Payload() []byte {
	return f.Data[:f.Len]
}

// IsSentinel reports whether the frame marks the end of a script.
func (f Frame) IsSentinel() bool {
	return f.ID == SentinelID
}

// Key is the fixed-width duplicate-suppression cache key: the identifier
// truncated to 2 big-endian bytes followed by the payload padded with zeros
// to 8 bytes. Fixed width keeps keys directly comparable byte-for-byte.
// Extended identifiers sharing the low 16 bits collide, which is accepted.
type Key [10]byte

func (f Frame) Key() Key {
	var k Key
	binary.BigEndian.PutUint16(k[0:2], uint16(f.ID))
	copy(k[2:], f.Payload())
	return k
}
