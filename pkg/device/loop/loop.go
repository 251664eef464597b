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

// Package loop is an in-memory transceiver for bench runs without a bridge
// and for tests. Everything happens on the control loop goroutine, so no
// locking is needed.
package loop

import (
	"github.com/canlab/go-canmon/pkg/canbus"
	"github.com/canlab/go-canmon/pkg/device"
)

type Loopback struct {
	pending []canbus.Frame
	sent    []canbus.Frame
	status  device.Status
}

var _ device.Transceiver = &Loopback{}

func New() *Loopback {
	return &Loopback{status: device.StatusOK}
}

// Push queues an inbound frame as if it arrived from the bus.
func (l *Loopback) Push(frame canbus.Frame) {
	l.pending = append(l.pending, frame)
}

// SetStatus forces the status every following Transmit reports.
func (l *Loopback) SetStatus(status device.Status) {
	l.status = status
}

// Sent returns the frames transmitted so far, in order.
func (l *Loopback) Sent() []canbus.Frame {
	return l.sent
}

func (l *Loopback) ReceivePending() bool {
	return len(l.pending) > 0
}

func (l *Loopback) Receive() (canbus.Frame, error) {
	if len(l.pending) == 0 {
		return canbus.Frame{}, device.ErrNoFramePending{}
	}
	frame := l.pending[0]
	l.pending = l.pending[1:]
	return frame, nil
}

func (l *Loopback) Transmit(frame canbus.Frame) device.Status {
	if l.status == device.StatusOK {
		l.sent = append(l.sent, frame)
	}
	return l.status
}
