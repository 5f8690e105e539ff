package pgncan

import (
	"github.com/brutella/can"
	"github.com/pkg/errors"
)

const (
	fastPacketFirstData = 6
	fastPacketNextData  = 7
	// 6 + 31 * 7
	fastPacketMaxLength = 223
)

// fastPacketFrames splits payload into NMEA2000 fast-packet frames. The
// first byte of every frame is seq<<5 | frame counter; the first frame
// also carries the total length. The last frame is padded with 0xFF.
func fastPacketFrames(id uint32, seq uint8, payload []byte) ([]can.Frame, error) {
	if len(payload) > fastPacketMaxLength {
		return nil, errors.Errorf("payload of %d bytes exceeds fast-packet maximum of %d",
			len(payload), fastPacketMaxLength)
	}

	var frames []can.Frame
	counter := uint8(0)
	for off := 0; off < len(payload) || counter == 0; counter++ {
		f := can.Frame{
			ID:     id,
			Length: maxFrameData,
		}
		for i := range f.Data {
			f.Data[i] = 0xFF
		}
		f.Data[0] = (seq&0x7)<<5 | counter&0x1F
		if counter == 0 {
			f.Data[1] = uint8(len(payload))
			off += copy(f.Data[2:], payload)
		} else {
			off += copy(f.Data[1:], payload[off:])
		}
		frames = append(frames, f)
	}
	return frames, nil
}

// Reassemble joins fast-packet frames back into the original payload.
func Reassemble(frames []can.Frame) ([]byte, error) {
	if len(frames) == 0 {
		return nil, errors.New("no frames to reassemble")
	}
	if frames[0].Data[0]&0x1F != 0 {
		return nil, errors.Errorf("first frame has counter %d, expected 0", frames[0].Data[0]&0x1F)
	}
	for i, f := range frames {
		if f.Length != maxFrameData {
			return nil, errors.Errorf("frame %d: length %d, fast-packet frames carry %d bytes", i, f.Length, maxFrameData)
		}
	}
	seq := frames[0].Data[0] >> 5
	total := int(frames[0].Data[1])
	payload := make([]byte, 0, total)
	payload = append(payload, frames[0].Data[2:]...)
	for i, f := range frames[1:] {
		if f.Data[0]>>5 != seq {
			return nil, errors.Errorf("frame %d: sequence %d does not match %d", i+1, f.Data[0]>>5, seq)
		}
		if int(f.Data[0]&0x1F) != i+1 {
			return nil, errors.Errorf("frame %d: out of order counter %d", i+1, f.Data[0]&0x1F)
		}
		payload = append(payload, f.Data[1:]...)
	}
	if len(payload) < total {
		return nil, errors.Errorf("incomplete fast-packet: %d of %d bytes", len(payload), total)
	}
	return payload[:total], nil
}
