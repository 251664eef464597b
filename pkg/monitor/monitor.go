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

// Package monitor is the single-threaded control loop of the bus monitor.
// One loop iteration is one tick: at most one inbound receive, one
// scheduler-driven transmission and one command dispatch, always in that
// order. The cache, playback cursor and counters are owned exclusively by
// the loop; the HTTP API funnels its requests through the loop so that
// ownership holds.
package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/canlab/go-canmon/pkg/cache"
	"github.com/canlab/go-canmon/pkg/canbus"
	"github.com/canlab/go-canmon/pkg/device"
	"github.com/canlab/go-canmon/pkg/script"
)

const (
	// SendPacing is the fixed delay preceding every scheduler-driven
	// transmission. Together with the one-frame-per-tick rule it bounds
	// transmit-buffer pressure on the transceiver.
	SendPacing = 5 * time.Millisecond
	// IdleSleep paces the poll loop
	IdleSleep = 10 * time.Millisecond
)

// Counters are process-lifetime totals, reset only by CLEAR.
type Counters struct {
	Received uint64
	Sent     uint64
	Cached   uint64
}

// Console is the operator byte-stream transport. ReadLine must not block;
// it reports false when no complete line is pending.
type Console interface {
	ReadLine() (string, bool)
	WriteText(text string)
}

type Monitor struct {
	context.Context
	dev     device.Transceiver
	console Console

	cache    *cache.Cache
	script   *script.Store
	counters Counters

	// playback cursor
	cursor      int
	mode        RunMode
	stepPending bool
	cycleID     uint32

	macros map[string]Macro
	chApi  chan apiRequest

	// out is the sink of the dispatch currently running; sleep is
	// replaceable so tests run without real pacing delays.
	out   func(string)
	sleep func(time.Duration)
}

func New(ctx context.Context, c *cache.Cache, s *script.Store, dev device.Transceiver, console Console) *Monitor {
	m := &Monitor{
		Context: ctx,
		dev:     dev,
		console: console,
		cache:   c,
		script:  s,
		macros:  defaultMacros(),
		chApi:   make(chan apiRequest, 8),
		sleep:   time.Sleep,
	}
	m.out = func(text string) {
		m.console.WriteText(text)
	}
	return m
}

// Run polls until the context is cancelled. No error inside a tick is fatal,
// the loop keeps polling indefinitely.
func (m *Monitor) Run() error {
	for {
		select {
		case <-m.Done():
			return m.Err()
		default:
		}
		m.Tick()
		m.sleep(IdleSleep)
	}
}

// Tick runs one control loop iteration: receive, then send, then dispatch.
func (m *Monitor) Tick() {
	m.receiveOnce()
	m.schedTick()
	m.dispatchOnce()
}

func (m *Monitor) Counters() Counters {
	return m.counters
}

func (m *Monitor) Mode() RunMode {
	return m.mode
}

func (m *Monitor) println(format string, v ...interface{}) {
	m.out(fmt.Sprintf(format, v...) + "\n")
}

func (m *Monitor) receiveOnce() {
	if !m.dev.ReceivePending() {
		return
	}
	frame, err := m.dev.Receive()
	if err != nil {
		return
	}
	m.counters.Received++

	switch m.cache.Classify(frame.ID) {
	case cache.AlwaysSuppress:
		return
	case cache.AlwaysShow:
		m.console.WriteText(frame.Describe(canbus.DirRecv, m.counters.Received) + "\n")
	default:
		before := m.cache.Len()
		result := m.cache.Observe(frame)
		if m.cache.Len() > before {
			m.counters.Cached++
		}
		if result == cache.ResultNew {
			m.console.WriteText(frame.Describe(canbus.DirRecv, m.counters.Received) + "\n")
		}
	}
}

// transmit sends one frame and echoes the outcome. A non-OK driver status is
// logged with its code and not retried.
func (m *Monitor) transmit(frame canbus.Frame) {
	status := m.dev.Transmit(frame)
	if status != device.StatusOK {
		m.println("SEND FAIL %s [status=%s]", frame, status)
		return
	}
	m.counters.Sent++
	m.println(frame.Describe(canbus.DirSend, m.counters.Sent))
}
