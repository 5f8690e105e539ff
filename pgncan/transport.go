package pgncan

import (
	"fmt"
	"github.com/brutella/can"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"sort"
	"strconv"
)

// NewBusFunc opens a bus on channel. Transports that cannot configure the
// bitrate themselves only log it.
type NewBusFunc func(channel string, bitrate int) (CANBus, error)

var interfaces = map[string]NewBusFunc{
	"socketcan": openSocketCAN,
	"udp":       openUDP,
	"virtual":   openVirtual,
}

// RegisterInterface adds or replaces a transport.
func RegisterInterface(name string, fn NewBusFunc) {
	interfaces[name] = fn
}

// Interfaces lists the registered transport names.
func Interfaces() []string {
	ret := make([]string, 0, len(interfaces))
	for name := range interfaces {
		ret = append(ret, name)
	}
	sort.Strings(ret)
	return ret
}

// Open connects to channel using the named transport.
func Open(iface, channel string, bitrate int) (*Connection, error) {
	fn, ok := interfaces[iface]
	if !ok {
		return nil, errors.Errorf("unsupported interface %q, available: %v", iface, Interfaces())
	}
	bus, err := fn(channel, bitrate)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open %s channel %s", iface, channel)
	}
	log.WithField("interface", iface).
		WithField("channel", channel).
		WithField("bitrate", bitrate).
		Info("CAN bus opened")
	return newConnection(fmt.Sprintf("%s:%s", iface, channel), bus), nil
}

// to allow testing
var newSocketCANBus = func(name string) (CANBus, error) {
	return can.NewBusForInterfaceWithName(name)
}

// socketCANName maps a bare channel number to a kernel interface, "0" -> "can0".
func socketCANName(channel string) string {
	if _, err := strconv.Atoi(channel); err == nil {
		return "can" + channel
	}
	return channel
}

func openSocketCAN(channel string, bitrate int) (CANBus, error) {
	name := socketCANName(channel)
	// the socket cannot change the link bitrate, it is set with `ip link`
	log.WithField("interface", name).
		WithField("bitrate", bitrate).
		Debug("expecting link to be configured with bitrate")
	return newSocketCANBus(name)
}
