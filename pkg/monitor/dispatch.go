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
	"sort"
	"strconv"
	"strings"

	"github.com/canlab/go-canmon/pkg/canbus"
)

// commandKind is the closed command enumeration the dispatcher works on.
// Free-form input is reduced to exactly one of these tags.
type commandKind int

const (
	cmdStep commandKind = iota
	cmdRun
	cmdRestart
	cmdClear
	cmdStats
	cmdDump
	cmdCycle
	cmdMacro
	cmdFrame
	cmdUnknown
)

type command struct {
	kind  commandKind
	macro string
	arg   string
	id    uint32
	frame canbus.Frame
	warn  error
}

// maxFrameTokens bounds a bare frame literal: identifier plus 8 payload
// bytes. Longer lines are treated as unrecognized input, not as frames.
const maxFrameTokens = 9

func parseCommand(line string) command {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return command{kind: cmdStep}
	}

	fields := strings.Fields(strings.ToUpper(trimmed))
	switch fields[0] {
	case "RUN":
		return command{kind: cmdRun}
	case "RESTART":
		return command{kind: cmdRestart}
	case "CLEAR":
		return command{kind: cmdClear}
	case "STATS":
		return command{kind: cmdStats}
	case "DUMP":
		return command{kind: cmdDump}
	case "CYCLE":
		c := command{kind: cmdCycle}
		if len(fields) > 1 {
			// a malformed identifier degrades to 0, which selects the
			// default start of the sweep
			v, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(fields[1]), "0x"), 16, 32)
			if err == nil {
				c.id = uint32(v)
			}
		}
		return c
	case "CMD":
		if len(fields) < 2 {
			return command{kind: cmdUnknown}
		}
		c := command{kind: cmdMacro, macro: fields[1]}
		if len(fields) > 2 {
			c.arg = fields[2]
		}
		return c
	}

	if strings.HasPrefix(fields[0], "0X") && len(fields) <= maxFrameTokens {
		frame, err := canbus.ParseFrame(trimmed)
		return command{kind: cmdFrame, frame: frame, warn: err}
	}

	return command{kind: cmdUnknown}
}

// dispatchOnce handles at most one command line per tick. The operator
// console wins over the API queue.
func (m *Monitor) dispatchOnce() {
	if line, ok := m.console.ReadLine(); ok {
		m.Dispatch(line)
		return
	}
	select {
	case req := <-m.chApi:
		var sb strings.Builder
		m.out = func(text string) {
			sb.WriteString(text)
		}
		m.Dispatch(req.line)
		m.out = func(text string) {
			m.console.WriteText(text)
		}
		req.reply <- sb.String()
	default:
	}
}

// Dispatch interprets one operator line.
func (m *Monitor) Dispatch(line string) {
	cmd := parseCommand(line)
	switch cmd.kind {
	case cmdStep:
		m.SingleStep()
	case cmdRun:
		m.RunScript()
		m.println("running script %s", m.script.Name())
	case cmdRestart:
		m.RestartScript()
		m.println("script restarted")
	case cmdClear:
		m.cache.Reset()
		m.counters = Counters{}
		m.println("cache and counters cleared")
	case cmdStats:
		m.printStats()
	case cmdDump:
		m.printDump()
	case cmdCycle:
		m.StartCycle(cmd.id)
		m.println("cycle probe from 0x%03X", m.cycleID)
	case cmdMacro:
		m.runMacro(cmd.macro, cmd.arg)
	case cmdFrame:
		if cmd.warn != nil {
			m.println("warning: %s", cmd.warn)
		}
		m.transmit(cmd.frame)
	default:
		m.printUsage()
	}
}

func (m *Monitor) printStats() {
	m.println("received: %d", m.counters.Received)
	m.println("sent: %d", m.counters.Sent)
	m.println("cached: %d", m.counters.Cached)
	m.println("mode: %s", m.mode)
}

func (m *Monitor) printDump() {
	for _, entry := range m.cache.Dump() {
		m.println("%s # seen %dx", entry.Frame.ReplayLiteral(), entry.Count)
	}
	m.println("entries: %d", m.cache.Len())
	m.printStats()
}

func (m *Monitor) printUsage() {
	m.println("commands:")
	m.println("  <empty line>      transmit next script frame (single step)")
	m.println("  RUN               replay the script from the cursor")
	m.println("  RESTART           rewind the script, stop playback")
	m.println("  CLEAR             reset frame cache and counters")
	m.println("  STATS             show received/sent/cached totals")
	m.println("  DUMP              show cached frames, then STATS")
	m.println("  CYCLE [0xNNN]     sweep identifiers from 0xNNN (default 0x%03X)", uint32(DefaultCycleStartID))
	m.println("  CMD <name> [arg]  run a named macro")
	m.println("  0xID [0xAA ...]   send one ad hoc frame (up to 8 bytes)")
	m.println("macros:")
	names := make([]string, 0, len(m.macros))
	for name := range m.macros {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		m.println("  %-8s %s", name, m.macros[name].Help)
	}
}
