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
	"strconv"
	"strings"
)

// RTRMarker replaces the payload region when a remote-request frame is
// rendered, and sets the RTR flag when it appears as a payload token.
const RTRMarker = "RTR"

// Direction tags a narrative frame line as inbound or outbound.
type Direction int

const (
	DirRecv Direction = iota
	DirSend
)

func (d Direction) String() string {
	if d == DirSend {
		return "SEND"
	}
	return "RECV"
}

func parseHex(token string) (uint32, bool) {
	s := strings.TrimPrefix(strings.ToLower(token), "0x")
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, false
	}
	return uint32(v), true
}

// ParseFrame converts the compact hex notation into a Frame. The first
// whitespace-separated token is the identifier, the following tokens (up to
// 8) are payload bytes, extra tokens are ignored. The RTR marker in place of
// a payload token sets the remote-request flag. Surrounding quotes and a
// trailing comma are stripped so replay literals parse as-is.
//
// A malformed token degrades to value 0 and parsing continues; the first
// such token is reported through the returned TokenError. A missing
// identifier token yields identifier 0, the script sentinel.
func ParseFrame(text string) (Frame, error) {
	var frame Frame
	var firstErr error

	tokens := strings.Fields(strings.Trim(text, " \t\r\n\","))
	if len(tokens) == 0 {
		return frame, nil
	}

	id, ok := parseHex(tokens[0])
	if !ok {
		firstErr = TokenError{Index: 0, Token: tokens[0]}
	}
	frame.ID = id
	// Extended identifiers render as 8 hex digits, standard as 3, so the
	// token width disambiguates low extended identifiers.
	digits := strings.TrimPrefix(strings.ToLower(tokens[0]), "0x")
	if id > MaxStdID || (ok && len(digits) > 3) {
		frame.Extended = true
	}

	for i, token := range tokens[1:] {
		if frame.Len >= MaxDataLen {
			break
		}
		if strings.EqualFold(token, RTRMarker) {
			frame.RTR = true
			break
		}
		v, ok := parseHex(token)
		if !ok {
			v = 0
			if firstErr == nil {
				firstErr = TokenError{Index: i + 1, Token: token}
			}
		}
		frame.Data[frame.Len] = byte(v)
		frame.Len++
	}

	return frame, firstErr
}

func (f Frame) idText() string {
	if f.Extended {
		return fmt.Sprintf("0x%08X", f.ID)
	}
	return fmt.Sprintf("0x%03X", f.ID)
}

func (f Frame) payloadText() string {
	if f.RTR {
		return RTRMarker
	}
	parts := make([]string, 0, f.Len)
	for _, b := range f.Payload() {
		parts = append(parts, fmt.Sprintf("0x%02X", b))
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// String renders the bare frame, identifier then payload region.
func (f Frame) String() string {
	return f.idText() + " " + f.payloadText()
}

// Describe renders the narrative display form, e.g.
// "RECV(17) 0x20B [0x00 0xFF]". n is the running frame index.
func (f Frame) Describe(dir Direction, n uint64) string {
	return fmt.Sprintf("%s(%d) %s %s", dir, n, f.idText(), f.payloadText())
}

// ReplayLiteral renders the quoted, comma-terminated form that ParseFrame
// accepts unchanged, so captured traffic can be pasted straight into a
// replay script.
func (f Frame) ReplayLiteral() string {
	parts := []string{f.idText()}
	if f.RTR {
		parts = append(parts, RTRMarker)
	} else {
		for _, b := range f.Payload() {
			parts = append(parts, fmt.Sprintf("0x%02X", b))
		}
	}
	return fmt.Sprintf("%q,", strings.Join(parts, " "))
}
