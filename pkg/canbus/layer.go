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

package canbus

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"

	"github.com/canlab/go-canmon/pkg/log"
)

const (
	// BridgeLayerNum identifies the layer
	BridgeLayerNum = 2001
	// BridgeFrameSize is the fixed size of one frame on the wire between
	// the monitor and the CAN-Ethernet gateway
	BridgeFrameSize = 13
	// BridgeHeaderFlag is set in the header byte of every valid frame
	BridgeHeaderFlag = 0x80
	// BridgeRemoteFlag marks a remote-request frame
	BridgeRemoteFlag = 0x10
	// BridgeExtendedFlag marks a 29-bit identifier
	BridgeExtendedFlag = 0x20
)

// BridgeLayer carries one CAN frame in the gateway datagram layout:
// header byte (flag|ext|rtr|DLC), 4-byte big-endian identifier, 8 data
// bytes. Frames shorter than 8 bytes are zero padded on the wire.
type BridgeLayer struct {
	layers.BaseLayer
	Frame Frame
}

var BridgeLayerType = gopacket.RegisterLayerType(BridgeLayerNum,
	gopacket.LayerTypeMetadata{Name: "BridgeLayerType", Decoder: gopacket.DecodeFunc(decodeBridgeLayer)})

func (l *BridgeLayer) LayerType() gopacket.LayerType {
	return BridgeLayerType
}

// SerializeTo serializes the layer into bytes and writes the bytes to the SerializeBuffer
func (l *BridgeLayer) SerializeTo(b gopacket.SerializeBuffer, opts gopacket.SerializeOptions) error {
	if err := l.Frame.Validate(); err != nil {
		return err
	}
	buf, err := b.PrependBytes(BridgeFrameSize)
	if err != nil {
		return err
	}
	header := uint8(BridgeHeaderFlag | (l.Frame.Len & 0x0F))
	if l.Frame.RTR {
		header |= BridgeRemoteFlag
	}
	if l.Frame.Extended {
		header |= BridgeExtendedFlag
	}
	buf[0] = header
	binary.BigEndian.PutUint32(buf[1:5], l.Frame.ID)
	copy(buf[5:], l.Frame.Data[:])
	return nil
}

// DecodeFromBytes attempts to decode the byte slice as a bridge frame
func (l *BridgeLayer) DecodeFromBytes(data []byte, df gopacket.DecodeFeedback) error {
	if len(data) < BridgeFrameSize {
		df.SetTruncated()
		return errors.New("Bridge frame too short")
	}

	header := data[0]
	if header&BridgeHeaderFlag == 0 {
		log.Debug("Bridge frame header flag is missing")
		return fmt.Errorf("Wrong bridge frame header: 0x%02x", header)
	}

	l.BaseLayer = layers.BaseLayer{
		Contents: data[:BridgeFrameSize],
	}

	l.Frame = Frame{}
	l.Frame.Len = header & 0x0F
	l.Frame.RTR = header&BridgeRemoteFlag != 0
	l.Frame.Extended = header&BridgeExtendedFlag != 0
	l.Frame.ID = binary.BigEndian.Uint32(data[1:5])
	copy(l.Frame.Data[:], data[5:BridgeFrameSize])

	if err := l.Frame.Validate(); err != nil {
		return err
	}
	return nil
}

func (l *BridgeLayer) NextLayerType() gopacket.LayerType {
	return gopacket.LayerTypeZero
}

func decodeBridgeLayer(data []byte, p gopacket.PacketBuilder) error {
	l := &BridgeLayer{}
	err := l.DecodeFromBytes(data, p)
	if err != nil {
		log.Error("Error while decoding bridge layer: %s", err)
		return err
	}
	p.AddLayer(l)
	return nil
}
