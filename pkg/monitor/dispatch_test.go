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

	"github.com/canlab/go-canmon/pkg/device"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line string
		want commandKind
	}{
		{"", cmdStep},
		{"   ", cmdStep},
		{"RUN", cmdRun},
		{"run", cmdRun},
		{"RESTART", cmdRestart},
		{"CLEAR", cmdClear},
		{"STATS", cmdStats},
		{"DUMP", cmdDump},
		{"CYCLE", cmdCycle},
		{"CYCLE 0x4A0", cmdCycle},
		{"CMD KEYOUT 900", cmdMacro},
		{"CMD", cmdUnknown},
		{"0x123 0xAA 0xBB", cmdFrame},
		{"0x1FFFFFFF RTR", cmdFrame},
		{"0x123 1 2 3 4 5 6 7 8 9", cmdUnknown}, // too many tokens for a frame
		{"bogus", cmdUnknown},
	}
	for _, tt := range tests {
		if got := parseCommand(tt.line).kind; got != tt.want {
			t.Errorf("parseCommand(%q).kind = %d, want %d", tt.line, got, tt.want)
		}
	}
}

func TestParseCommandFrameDetails(t *testing.T) {
	cmd := parseCommand("0x123 0xAA 0xBB")
	if cmd.warn != nil {
		t.Fatalf("unexpected warning: %v", cmd.warn)
	}
	if cmd.frame.ID != 0x123 || cmd.frame.Len != 2 || cmd.frame.Data[0] != 0xAA || cmd.frame.Data[1] != 0xBB {
		t.Fatalf("frame = %+v", cmd.frame)
	}

	// a malformed byte still yields a sendable frame plus a warning
	cmd = parseCommand("0x123 0xZZ 0xBB")
	if cmd.kind != cmdFrame || cmd.warn == nil {
		t.Fatalf("want a frame with a warning, got kind %d warn %v", cmd.kind, cmd.warn)
	}
	if cmd.frame.Len != 2 || cmd.frame.Data[0] != 0x00 || cmd.frame.Data[1] != 0xBB {
		t.Fatalf("degraded frame = %+v", cmd.frame)
	}

	if got := parseCommand("CYCLE 0x4A0").id; got != 0x4A0 {
		t.Errorf("cycle start = 0x%X, want 0x4A0", got)
	}
	if got := parseCommand("CYCLE zzz").id; got != 0 {
		t.Errorf("malformed cycle start = 0x%X, want 0", got)
	}
	if cmd := parseCommand("CMD KEYOUT 900"); cmd.macro != "KEYOUT" || cmd.arg != "900" {
		t.Errorf("macro command = %+v", cmd)
	}
}

func TestDispatchAdHocFrame(t *testing.T) {
	m, dev, console := newTestMonitor(nil)

	m.Dispatch("0x123 0xAA 0xBB")
	sent := dev.Sent()
	if len(sent) != 1 || sent[0].ID != 0x123 || sent[0].Len != 2 {
		t.Fatalf("sent %v", sent)
	}
	if !strings.Contains(console.output(), "SEND(1) 0x123 [0xAA 0xBB]") {
		t.Fatalf("missing echo in %q", console.output())
	}

	// malformed token: warn, send anyway
	m.Dispatch("0x123 0xZZ")
	if len(dev.Sent()) != 2 {
		t.Fatalf("degraded frame was not sent: %v", dev.Sent())
	}
	if !strings.Contains(console.output(), "warning:") {
		t.Fatalf("missing warning in %q", console.output())
	}
}

func TestDispatchClearResetsEverything(t *testing.T) {
	m, dev, console := newTestMonitor(nil)
	dev.Push(mustParse(t, "0x20B 0x00"))
	m.Tick()
	m.Dispatch("0x123 0xAA")

	m.Dispatch("CLEAR")
	if got := m.Counters(); got != (Counters{}) {
		t.Fatalf("counters after CLEAR = %+v", got)
	}

	console.out = nil
	m.Dispatch("DUMP")
	out := console.output()
	if strings.Contains(out, "seen") {
		t.Fatalf("cache still holds entries after CLEAR: %q", out)
	}
	for _, line := range []string{"entries: 0", "received: 0", "sent: 0", "cached: 0"} {
		if !strings.Contains(out, line) {
			t.Errorf("DUMP after CLEAR is missing %q: %q", line, out)
		}
	}
}

func TestDispatchStats(t *testing.T) {
	m, dev, console := newTestMonitor(nil)
	dev.Push(mustParse(t, "0x20B 0x00"))
	m.Tick()
	m.Dispatch("0x123 0xAA")

	console.out = nil
	m.Dispatch("STATS")
	out := console.output()
	for _, line := range []string{"received: 1", "sent: 1", "cached: 1", "mode: idle"} {
		if !strings.Contains(out, line) {
			t.Errorf("STATS is missing %q: %q", line, out)
		}
	}
}

func TestDispatchDumpReplayLiterals(t *testing.T) {
	m, dev, console := newTestMonitor(nil)
	dev.Push(mustParse(t, "0x20B 0x00 0x7E"))
	m.Tick()
	dev.Push(mustParse(t, "0x20B 0x00 0x7E"))
	m.Tick()

	console.out = nil
	m.Dispatch("DUMP")
	if !strings.Contains(console.output(), `"0x20B 0x00 0x7E", # seen 2x`) {
		t.Fatalf("dump output %q", console.output())
	}
}

func TestDispatchUnknownPrintsUsage(t *testing.T) {
	m, _, console := newTestMonitor(nil)
	m.Dispatch("bogus")
	out := console.output()
	if !strings.Contains(out, "commands:") || !strings.Contains(out, "KEYOUT") {
		t.Fatalf("usage output %q", out)
	}
}

func TestKeyoutMacro(t *testing.T) {
	m, dev, _ := newTestMonitor(nil)
	m.Dispatch("CMD KEYOUT 900")

	sent := dev.Sent()
	if len(sent) != 3 {
		t.Fatalf("sent %d frames, want 3", len(sent))
	}
	// 900 ms / 15 ms per count = 0x3C
	for i := 0; i < 2; i++ {
		f := sent[i]
		if f.ID != 0x2F1 || f.Len != 3 || f.Data[0] != 0x30 || f.Data[1] != 0x3C || f.Data[2] != 0x01 {
			t.Fatalf("override frame %d = %+v", i, f)
		}
	}
	if f := sent[2]; f.ID != 0x2F1 || f.Len != 2 || f.Data[0] != 0x31 || f.Data[1] != 0x01 {
		t.Fatalf("commit frame = %+v", f)
	}
}

func TestKeyoutMacroDefaultsAndErrors(t *testing.T) {
	m, dev, _ := newTestMonitor(nil)

	// no argument: default duration, same count byte as 900 ms
	m.Dispatch("CMD KEYOUT")
	if sent := dev.Sent(); len(sent) != 3 || sent[0].Data[1] != 0x3C {
		t.Fatalf("default keyout sent %v", sent)
	}

	// duration clamps at the one-byte count range
	m2, dev2, _ := newTestMonitor(nil)
	m2.Dispatch("CMD KEYOUT 99999")
	if sent := dev2.Sent(); sent[0].Data[1] != 0xFF {
		t.Fatalf("count byte = 0x%02X, want clamped 0xFF", sent[0].Data[1])
	}

	// a bad argument sends nothing
	m3, dev3, console3 := newTestMonitor(nil)
	m3.Dispatch("CMD KEYOUT abc")
	if len(dev3.Sent()) != 0 {
		t.Fatalf("bad argument still transmitted: %v", dev3.Sent())
	}
	if !strings.Contains(console3.output(), "bad duration") {
		t.Fatalf("missing error in %q", console3.output())
	}
}

func TestUnknownMacro(t *testing.T) {
	m, dev, console := newTestMonitor(nil)
	m.Dispatch("CMD NOPE")
	if len(dev.Sent()) != 0 {
		t.Fatalf("unknown macro transmitted: %v", dev.Sent())
	}
	if !strings.Contains(console.output(), "unknown macro: NOPE") {
		t.Fatalf("output %q", console.output())
	}
}

func TestTransmitFailure(t *testing.T) {
	m, dev, console := newTestMonitor(nil)
	dev.SetStatus(device.StatusBusOff)

	m.Dispatch("0x123 0xAA")
	if len(dev.Sent()) != 0 {
		t.Fatalf("failed transmit still recorded: %v", dev.Sent())
	}
	if got := m.Counters().Sent; got != 0 {
		t.Fatalf("sent counter = %d, want 0", got)
	}
	if !strings.Contains(console.output(), "SEND FAIL") || !strings.Contains(console.output(), "bus-off") {
		t.Fatalf("output %q", console.output())
	}
}
