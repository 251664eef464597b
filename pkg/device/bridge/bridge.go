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

// Package bridge implements the transceiver contract on top of a
// CAN-Ethernet gateway reachable over UDP. One datagram carries one frame
// in the 13-byte bridge layout.
package bridge

import (
	"context"
	"net"
	"time"

	"github.com/google/gopacket"

	"github.com/canlab/go-canmon/pkg/canbus"
	"github.com/canlab/go-canmon/pkg/device"
	"github.com/canlab/go-canmon/pkg/log"
)

const (
	// InQueueSize bounds how many inbound frames the bridge buffers while
	// the control loop is busy, e.g. during a macro burst.
	InQueueSize = 256
)

type inPacket struct {
	Data []byte
	gopacket.CaptureInfo
}

type Bridge struct {
	context.Context
	conn  *net.UDPConn
	laddr *net.UDPAddr
	peer  *net.UDPAddr
	chRaw chan inPacket
	chIn  chan canbus.Frame
}

var _ device.Transceiver = &Bridge{}

func New(ctx context.Context, listen, peer string) (*Bridge, error) {
	log.Debug("Initializing bridge transceiver: listen: %s peer: %s", listen, peer)

	laddr, err := net.ResolveUDPAddr("udp", listen)
	if err != nil {
		return nil, err
	}
	paddr, err := net.ResolveUDPAddr("udp", peer)
	if err != nil {
		return nil, err
	}

	return &Bridge{
		Context: ctx,
		laddr:   laddr,
		peer:    paddr,
		chRaw:   make(chan inPacket, InQueueSize),
		chIn:    make(chan canbus.Frame, InQueueSize),
	}, nil
}

// ReadPacketData reads the raw packet channel. This method is from the
// gopacket PacketDataSource interface.
func (b *Bridge) ReadPacketData() ([]byte, gopacket.CaptureInfo, error) {
	p := <-b.chRaw
	return p.Data, p.CaptureInfo, nil
}

// Start opens the UDP socket and launches the reader goroutines. Datagrams
// go from the wire to the raw queue, decoded frames from the raw queue to
// the frame queue the control loop polls.
func (b *Bridge) Start() error {
	conn, err := net.ListenUDP("udp", b.laddr)
	if err != nil {
		return err
	}
	b.conn = conn

	go func() {
		buffer := make([]byte, 65536)
		for {
			length, _, readErr := conn.ReadFrom(buffer)
			if readErr != nil {
				log.Debug("Bridge socket closed: %s", readErr)
				return
			}
			data := make([]byte, length)
			copy(data, buffer[:length])
			b.chRaw <- inPacket{
				Data: data,
				CaptureInfo: gopacket.CaptureInfo{
					Length:        length,
					CaptureLength: length,
					Timestamp:     time.Now(),
				},
			}
		}
	}()

	go func() {
		source := gopacket.NewPacketSource(b, canbus.BridgeLayerType)
		for packet := range source.Packets() {
			layer := packet.Layer(canbus.BridgeLayerType)
			if layer == nil {
				log.Debug("Dropping undecodable bridge datagram")
				continue
			}
			frame := layer.(*canbus.BridgeLayer).Frame
			select {
			case b.chIn <- frame:
			default:
				log.Warning("Bridge inbound queue full, dropping frame 0x%03X", frame.ID)
			}
		}
	}()

	return nil
}

func (b *Bridge) Close() {
	if b.conn != nil {
		b.conn.Close()
	}
}

func (b *Bridge) ReceivePending() bool {
	return len(b.chIn) > 0
}

func (b *Bridge) Receive() (canbus.Frame, error) {
	select {
	case frame := <-b.chIn:
		return frame, nil
	default:
		return canbus.Frame{}, device.ErrNoFramePending{}
	}
}

// Transmit serializes one frame and writes it to the gateway. A write error
// maps to the timeout status; the control loop logs it and moves on.
func (b *Bridge) Transmit(frame canbus.Frame) device.Status {
	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{}
	if err := gopacket.SerializeLayers(buf, opts, &canbus.BridgeLayer{Frame: frame}); err != nil {
		log.Error("Error while serializing frame 0x%03X: %s", frame.ID, err)
		return device.StatusBusOff
	}
	if _, err := b.conn.WriteToUDP(buf.Bytes(), b.peer); err != nil {
		log.Error("Error while sending frame to %s: %s", b.peer, err)
		return device.StatusTimeout
	}
	return device.StatusOK
}
