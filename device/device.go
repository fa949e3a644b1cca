package device

import (
	"net"

	"github.com/google/gopacket/pcap"
)

// Device is one network interface discovered by enumeration. All fields are
// owned copies; a Device stays valid after its Directory is closed.
type Device struct {
	// Name is the opaque interface identifier the capture library expects,
	// stable for the OS session.
	Name string
	// Description is the human-readable name. May be empty.
	Description string
	// Addresses holds the interface addresses in enumeration order.
	Addresses []pcap.InterfaceAddress
	// Up and Loopback are merged from the OS interface table when a
	// matching interface is found there.
	Up       bool
	Loopback bool
}

// mergeFlags fills Up/Loopback from the OS interface matching ifi by name,
// or by address when names differ between the capture library and the OS.
func mergeFlags(d *Device, ifi pcap.Interface, osIfs []net.Interface) {
	for _, ni := range osIfs {
		if ni.Name == ifi.Name {
			d.Up = ni.Flags&net.FlagUp != 0
			d.Loopback = ni.Flags&net.FlagLoopback != 0
			return
		}
	}
	for _, ni := range osIfs {
		addrs, err := ni.Addrs()
		if err != nil {
			continue
		}
		for _, a := range addrs {
			ip, _, err := net.ParseCIDR(a.String())
			if err != nil {
				continue
			}
			for _, pa := range ifi.Addresses {
				if pa.IP.Equal(ip) {
					d.Up = ni.Flags&net.FlagUp != 0
					d.Loopback = ni.Flags&net.FlagLoopback != 0
					return
				}
			}
		}
	}
}
