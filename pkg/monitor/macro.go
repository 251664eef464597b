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
	"fmt"
	"strconv"
	"time"

	"github.com/canlab/go-canmon/pkg/canbus"
)

const (
	// KeyoutUnitMs is the sub-unit the keyless-output controller encodes
	// durations in: one count per 15 ms
	KeyoutUnitMs = 15
	// KeyoutDefaultMs is used when the operator gives no duration
	KeyoutDefaultMs = 900
	// MacroBurstDelay separates the frames of a multi-frame macro. The
	// target modules accept these operations only as ordered bursts.
	MacroBurstDelay = 20 * time.Millisecond
)

// MacroStep is one frame of a macro burst plus the delay to honor after it.
type MacroStep struct {
	Frame canbus.Frame
	Delay time.Duration
}

// Macro is a named, pre-authored frame sequence. Steps expands the template
// with the operator argument; a macro burst is synchronous and atomic, the
// one-frame-per-tick rule does not apply inside it.
type Macro struct {
	Help  string
	Steps func(arg string) ([]MacroStep, error)
}

func fixedMacro(steps ...MacroStep) func(string) ([]MacroStep, error) {
	return func(string) ([]MacroStep, error) {
		return steps, nil
	}
}

func keyoutSteps(arg string) ([]MacroStep, error) {
	ms := KeyoutDefaultMs
	if arg != "" {
		parsed, err := strconv.Atoi(arg)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("bad duration %q, want milliseconds", arg)
		}
		ms = parsed
	}
	count := ms / KeyoutUnitMs
	if count > 0xFF {
		count = 0xFF
	}

	override := canbus.Frame{ID: 0x2F1, Len: 3, Data: [8]byte{0x30, byte(count), 0x01}}
	commit := canbus.Frame{ID: 0x2F1, Len: 2, Data: [8]byte{0x31, 0x01}}

	// the controller latches the override only when it arrives twice,
	// then the commit frame arms it
	return []MacroStep{
		{Frame: override, Delay: MacroBurstDelay},
		{Frame: override, Delay: MacroBurstDelay},
		{Frame: commit},
	}, nil
}

func defaultMacros() map[string]Macro {
	return map[string]Macro{
		"KEYOUT": {
			Help:  "timed keyless-output override, arg = duration in ms",
			Steps: keyoutSteps,
		},
		"LOCK": {
			Help: "central locking, lock all doors",
			Steps: fixedMacro(
				MacroStep{Frame: canbus.Frame{ID: 0x2A0, Len: 2, Data: [8]byte{0x01, 0x00}}},
			),
		},
		"UNLOCK": {
			Help: "central locking, unlock all doors",
			Steps: fixedMacro(
				MacroStep{Frame: canbus.Frame{ID: 0x2A0, Len: 2, Data: [8]byte{0x02, 0x00}}},
			),
		},
		"WAKE": {
			Help: "tester-present wakeup burst",
			Steps: fixedMacro(
				MacroStep{Frame: canbus.Frame{ID: 0x100, Len: 1, Data: [8]byte{0x00}}, Delay: MacroBurstDelay},
				MacroStep{Frame: canbus.Frame{ID: 0x7DF, Len: 2, Data: [8]byte{0x01, 0x3E}}},
			),
		},
	}
}

func (m *Monitor) runMacro(name, arg string) {
	macro, ok := m.macros[name]
	if !ok {
		m.println("unknown macro: %s", name)
		m.printUsage()
		return
	}
	steps, err := macro.Steps(arg)
	if err != nil {
		m.println("macro %s: %s", name, err)
		return
	}
	for _, step := range steps {
		m.transmit(step.Frame)
		if step.Delay > 0 {
			m.sleep(step.Delay)
		}
	}
}
