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

// Package device defines the bus transceiver contract the monitor polls.
// Concrete transceivers live in the subpackages: bridge (UDP CAN-Ethernet
// gateway) and loop (in-memory loopback).
package device

import (
	"fmt"

	"github.com/canlab/go-canmon/pkg/canbus"
)

// Status is the driver-level outcome of one transmission attempt.
type Status int

const (
	StatusOK Status = iota
	StatusBusy
	StatusBusOff
	StatusTimeout
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusBusy:
		return "busy"
	case StatusBusOff:
		return "bus-off"
	case StatusTimeout:
		return "timeout"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Transceiver is the physical bus collaborator. Receive must not block:
// callers check ReceivePending first and tolerate ErrNoFramePending.
// Transmit reports a Status instead of an error because a failed send is a
// loggable condition, never fatal to the control loop.
type Transceiver interface {
	ReceivePending() bool
	Receive() (canbus.Frame, error)
	Transmit(canbus.Frame) Status
}

// ErrNoFramePending returned by Receive when no inbound frame is buffered
type ErrNoFramePending struct{}

func (e ErrNoFramePending) Error() string {
	return "No frame pending"
}
