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
	"strings"
	"testing"
)

func TestFreeRunPlaysScriptToEnd(t *testing.T) {
	m, dev, console := newTestMonitor([]string{"0x001 0x11", "0x002 0x22 0x33"})

	console.push("RUN")
	m.Tick() // dispatch only, playback starts on the next tick
	if m.Mode() != ModeFreeRun {
		t.Fatalf("mode after RUN = %s, want free-run", m.Mode())
	}
	if len(dev.Sent()) != 0 {
		t.Fatalf("RUN must not transmit on the dispatching tick, sent %v", dev.Sent())
	}

	m.Tick()
	m.Tick()
	sent := dev.Sent()
	if len(sent) != 2 {
		t.Fatalf("sent %d frames, want 2", len(sent))
	}
	if sent[0].ID != 0x001 || sent[1].ID != 0x002 {
		t.Fatalf("sent order %v", sent)
	}

	// the tick past the last entry reports the end and goes idle
	m.Tick()
	if !strings.Contains(console.output(), "no more messages") {
		t.Fatalf("missing end-of-script message in %q", console.output())
	}
	if m.Mode() != ModeIdle {
		t.Fatalf("mode after end of script = %s, want idle", m.Mode())
	}
	if len(dev.Sent()) != 2 {
		t.Fatalf("idle scheduler kept transmitting: %v", dev.Sent())
	}
}

func TestSingleStepSendsOneFramePerTick(t *testing.T) {
	m, dev, console := newTestMonitor([]string{"0x001 0x11", "0x002 0x22"})

	console.push("") // empty line = single step
	m.Tick()         // request noted
	m.Tick()         // frame goes out
	if len(dev.Sent()) != 1 || dev.Sent()[0].ID != 0x001 {
		t.Fatalf("sent %v, want exactly 0x001", dev.Sent())
	}

	// no further request, no further transmission
	m.Tick()
	if len(dev.Sent()) != 1 {
		t.Fatalf("step leaked into mode: %v", dev.Sent())
	}

	console.push("")
	m.Tick()
	m.Tick()
	if len(dev.Sent()) != 2 || dev.Sent()[1].ID != 0x002 {
		t.Fatalf("second step sent %v", dev.Sent())
	}
}

func TestRestartCancelsFreeRun(t *testing.T) {
	m, dev, console := newTestMonitor([]string{"0x001 0x11", "0x002 0x22", "0x003 0x33"})

	console.push("RUN")
	m.Tick()
	m.Tick() // 0x001 out
	console.push("RESTART")
	m.Tick() // 0x002 out, then the dispatcher rewinds and idles
	if m.Mode() != ModeIdle {
		t.Fatalf("mode after RESTART = %s, want idle", m.Mode())
	}
	if len(dev.Sent()) != 2 {
		t.Fatalf("sent %d frames before the restart took effect, want 2", len(dev.Sent()))
	}

	m.Tick()
	if len(dev.Sent()) != 2 {
		t.Fatalf("idle scheduler transmitted after RESTART: %v", dev.Sent())
	}

	// the cursor is rewound: a step replays from the top
	console.push("")
	m.Tick()
	m.Tick()
	if sent := dev.Sent(); sent[len(sent)-1].ID != 0x001 {
		t.Fatalf("step after RESTART sent 0x%03X, want 0x001", sent[len(sent)-1].ID)
	}
}

func TestCycleProbeSweepsIdentifiers(t *testing.T) {
	m, dev, console := newTestMonitor(nil)

	console.push("CYCLE")
	m.Tick()
	if m.Mode() != ModeCycle {
		t.Fatalf("mode after CYCLE = %s, want cycle-probe", m.Mode())
	}
	if !strings.Contains(console.output(), "cycle probe from 0x200") {
		t.Fatalf("missing cycle banner in %q", console.output())
	}

	for i := 0; i < 3; i++ {
		m.Tick()
	}
	sent := dev.Sent()
	if len(sent) != 3 {
		t.Fatalf("sent %d frames, want 3", len(sent))
	}
	for i, frame := range sent {
		if frame.ID != uint32(DefaultCycleStartID+i) {
			t.Errorf("frame %d has ID 0x%03X, want 0x%03X", i, frame.ID, DefaultCycleStartID+i)
		}
		if frame.Len != 8 || frame.Data != [8]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF} {
			t.Errorf("frame %d payload %v, want eight 0xFF", i, frame.Data)
		}
	}
}

func TestCycleProbeExplicitStart(t *testing.T) {
	m, dev, console := newTestMonitor(nil)
	console.push("CYCLE 0x4A0")
	m.Tick()
	m.Tick()
	if sent := dev.Sent(); len(sent) != 1 || sent[0].ID != 0x4A0 {
		t.Fatalf("sent %v, want one frame with ID 0x4A0", sent)
	}

	// a malformed start falls back to the default
	m2, dev2, console2 := newTestMonitor(nil)
	console2.push("CYCLE zzz")
	m2.Tick()
	m2.Tick()
	if sent := dev2.Sent(); len(sent) != 1 || sent[0].ID != DefaultCycleStartID {
		t.Fatalf("sent %v, want one frame from the default start", sent)
	}
}
