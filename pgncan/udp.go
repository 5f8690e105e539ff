package pgncan

import (
	"bytes"
	"encoding/binary"
	"github.com/brutella/can"
	"github.com/pkg/errors"
	"net"
)

// UDPRecord is one CAN frame as written to the UDP transport.
type UDPRecord struct {
	ID     uint32
	Length uint8
	Data   [maxFrameData]uint8
}

var udpRecordSize = binary.Size(UDPRecord{})

type udpBus struct {
	conn net.Conn
}

func openUDP(channel string, _ int) (CANBus, error) {
	conn, err := net.Dial("udp", channel)
	if err != nil {
		return nil, err
	}
	writeBufSize := udpRecordSize * 64
	if err = conn.(*net.UDPConn).SetWriteBuffer(writeBufSize); err != nil {
		conn.Close()
		return nil, errors.Wrapf(err, "unable to set OS write buffer to %v", writeBufSize)
	}
	return &udpBus{conn: conn}, nil
}

func (u *udpBus) Publish(f can.Frame) error {
	buf := bytes.NewBuffer(make([]byte, 0, udpRecordSize))
	rec := UDPRecord{
		ID:     f.ID,
		Length: f.Length,
		Data:   f.Data,
	}
	if err := binary.Write(buf, binary.LittleEndian, &rec); err != nil {
		return errors.Wrap(err, "unable to write udp frame record")
	}
	_, err := u.conn.Write(buf.Bytes())
	return err
}

func (u *udpBus) Disconnect() error {
	return u.conn.Close()
}
