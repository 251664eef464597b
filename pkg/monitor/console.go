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
	"bufio"
	"net"
	"sync"

	"github.com/canlab/go-canmon/pkg/log"
)

const (
	// LineQueueSize bounds operator lines buffered while the loop is busy
	LineQueueSize = 16

	consoleBanner = "go-canmon console, empty line steps, anything else see usage\n"
)

// TCPConsole is the line-oriented operator transport: a TCP listener serving
// one operator connection at a time. A reader goroutine feeds complete lines
// into a queue the control loop polls without blocking.
type TCPConsole struct {
	ln     net.Listener
	chLine chan string

	mu   sync.Mutex
	conn net.Conn
}

var _ Console = &TCPConsole{}

func NewTCPConsole(address string) (*TCPConsole, error) {
	log.Debug("Initializing console on %s", address)
	ln, err := net.Listen("tcp", address)
	if err != nil {
		return nil, err
	}
	return &TCPConsole{
		ln:     ln,
		chLine: make(chan string, LineQueueSize),
	}, nil
}

// Start launches the accept loop. A new connection replaces the previous
// operator.
func (c *TCPConsole) Start() {
	go func() {
		for {
			conn, err := c.ln.Accept()
			if err != nil {
				log.Debug("Console listener closed: %s", err)
				return
			}
			log.Info("Operator connected from %s", conn.RemoteAddr())
			c.attach(conn)
			go c.readLines(conn)
		}
	}()
}

func (c *TCPConsole) attach(conn net.Conn) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		c.conn.Close()
	}
	c.conn = conn
	conn.Write([]byte(consoleBanner))
}

func (c *TCPConsole) readLines(conn net.Conn) {
	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		select {
		case c.chLine <- scanner.Text():
		default:
			log.Warning("Console line queue full, dropping input")
		}
	}
	log.Info("Operator disconnected")
}

func (c *TCPConsole) Close() {
	c.ln.Close()
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		c.conn.Close()
	}
}

func (c *TCPConsole) ReadLine() (string, bool) {
	select {
	case line := <-c.chLine:
		return line, true
	default:
		return "", false
	}
}

func (c *TCPConsole) WriteText(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return
	}
	if _, err := c.conn.Write([]byte(text)); err != nil {
		log.Debug("Console write failed: %s", err)
	}
}
