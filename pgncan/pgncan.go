package pgncan

import (
	"github.com/brutella/can"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	// SocketCAN CAN_EFF_FLAG, marks a 29-bit identifier
	canEFFFlag uint32 = 0x80000000
	canEFFMask uint32 = 0x1FFFFFFF

	maxFrameData = 8
)

type CANBus interface {
	Publish(can.Frame) error
	Disconnect() error
}

type Connection struct {
	bus  CANBus
	name string
	seq  map[uint32]uint8
}

func newConnection(name string, bus CANBus) *Connection {
	return &Connection{
		bus:  bus,
		name: name,
		seq:  make(map[uint32]uint8),
	}
}

func (c *Connection) Name() string {
	return c.name
}

func (c *Connection) Close() error {
	if c.bus == nil {
		return errors.New("can bus not connected")
	}
	err := c.bus.Disconnect()
	c.bus = nil
	return err
}

// Send publishes payload as one or more extended frames. Payloads longer
// than a single frame go out as an NMEA2000 fast-packet.
func (c *Connection) Send(priority uint8, pgn uint32, sa uint8, payload []byte) error {
	if c.bus == nil {
		return errors.New("can bus not connected")
	}
	frames, err := c.frames(ArbitrationID(priority, pgn, sa)|canEFFFlag, pgn, payload)
	if err != nil {
		return err
	}
	log.WithField("pgn", pgn).
		WithField("length", len(payload)).
		WithField("frames", len(frames)).
		Debug("sending pgn over canbus")
	for _, f := range frames {
		if err := c.bus.Publish(f); err != nil {
			return errors.Wrapf(err, "unable to publish pgn %d", pgn)
		}
	}
	return nil
}

func (c *Connection) frames(id uint32, pgn uint32, payload []byte) ([]can.Frame, error) {
	if len(payload) <= maxFrameData {
		f := can.Frame{
			ID:     id,
			Length: uint8(len(payload)),
		}
		copy(f.Data[:], payload)
		return []can.Frame{f}, nil
	}
	seq := c.seq[pgn]
	c.seq[pgn] = (seq + 1) & 0x7
	return fastPacketFrames(id, seq, payload)
}
