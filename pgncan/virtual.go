package pgncan

import (
	"github.com/brutella/can"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"sync"
)

// VirtualBus keeps every published frame in memory and logs it in candump
// format. Nothing leaves the process.
type VirtualBus struct {
	channel string
	mu      sync.Mutex
	frames  []can.Frame
	closed  bool
}

func NewVirtualBus(channel string) *VirtualBus {
	return &VirtualBus{channel: channel}
}

func openVirtual(channel string, _ int) (CANBus, error) {
	return NewVirtualBus(channel), nil
}

func (v *VirtualBus) Publish(f can.Frame) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return errors.New("virtual bus closed")
	}
	v.frames = append(v.frames, f)
	log.Infof("%s  %08X   [%d]  % X", v.channel, f.ID&canEFFMask, f.Length, f.Data[:f.Length])
	return nil
}

func (v *VirtualBus) Disconnect() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return errors.New("virtual bus already closed")
	}
	v.closed = true
	return nil
}

// Frames returns a copy of everything published so far.
func (v *VirtualBus) Frames() []can.Frame {
	v.mu.Lock()
	defer v.mu.Unlock()
	ret := make([]can.Frame, len(v.frames))
	copy(ret, v.frames)
	return ret
}
