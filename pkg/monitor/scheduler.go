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

package monitor

import (
	"github.com/canlab/go-canmon/pkg/canbus"
	"github.com/canlab/go-canmon/pkg/log"
)

// RunMode is the persistent playback state. Single-step is not a mode but a
// one-shot request flag: it transmits exactly one frame and the scheduler
// falls back to Idle.
type RunMode int

const (
	ModeIdle RunMode = iota
	ModeFreeRun
	ModeCycle
)

func (mode RunMode) String() string {
	switch mode {
	case ModeFreeRun:
		return "free-run"
	case ModeCycle:
		return "cycle-probe"
	}
	return "idle"
}

const (
	// DefaultCycleStartID is where a cycle probe sweep starts when the
	// operator gives no identifier
	DefaultCycleStartID = 0x200
)

// RunScript rewinds the cursor and enters free-run playback.
func (m *Monitor) RunScript() {
	m.cursor = 0
	m.stepPending = false
	m.mode = ModeFreeRun
}

// RestartScript rewinds the cursor and forces Idle. During free-run this is
// the cooperative cancel: it takes effect at the next tick boundary.
func (m *Monitor) RestartScript() {
	m.cursor = 0
	m.stepPending = false
	m.mode = ModeIdle
}

// StartCycle enters the synthetic identifier sweep. Zero means default.
func (m *Monitor) StartCycle(id uint32) {
	if id == 0 {
		id = DefaultCycleStartID
	}
	m.cycleID = id
	m.stepPending = false
	m.mode = ModeCycle
}

// SingleStep requests one transmission on the next tick.
func (m *Monitor) SingleStep() {
	m.stepPending = true
}

func cycleFrame(id uint32) canbus.Frame {
	return canbus.Frame{
		ID:       id,
		Extended: id > canbus.MaxStdID,
		Len:      canbus.MaxDataLen,
		Data:     [8]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF},
	}
}

// schedTick transmits at most one frame, whatever the mode. This is the
// system's only backpressure mechanism outside macro bursts.
func (m *Monitor) schedTick() {
	switch {
	case m.mode == ModeCycle:
		m.sleep(SendPacing)
		m.transmit(cycleFrame(m.cycleID))
		m.cycleID++
	case m.mode == ModeFreeRun || m.stepPending:
		m.stepPending = false
		frame, err := m.script.Entry(m.cursor)
		if err != nil {
			log.Warning("Script %s entry %d: %s", m.script.Name(), m.cursor, err)
		}
		if frame.IsSentinel() {
			m.println("no more messages")
			m.mode = ModeIdle
			return
		}
		m.sleep(SendPacing)
		m.transmit(frame)
		m.cursor++
	}
}
