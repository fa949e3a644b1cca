// Package device enumerates the capture-capable network interfaces and
// selects among them by description glob.
//
// example:
//
//	dir, err := device.Open()
//	if err != nil {
//		// handle error
//	}
//	defer dir.Close()
//	dev, err := dir.Find("*Ethernet*")
package device

import (
	"net"
	"sync"

	"github.com/google/gopacket/pcap"
	slog "github.com/vearne/simplelog"

	"github.com/vearne/pcapkit/errs"
)

// findAllDevs is swapped out by tests to enumerate synthetic devices.
var findAllDevs = pcap.FindAllDevs

// enumMu serializes native enumeration, which is not reentrant.
var enumMu sync.Mutex

// Directory is the result of one device enumeration. The native list is
// materialized into owned Device values at Open time, so no caller ever
// holds a link into capture-library memory. A Directory must be closed,
// and no accessor may be used afterwards.
type Directory struct {
	mu      sync.Mutex
	devices []Device
	closed  bool
}

// Open enumerates the capture-capable interfaces.
func Open() (*Directory, error) {
	enumMu.Lock()
	ifs, err := findAllDevs()
	enumMu.Unlock()
	if err != nil {
		return nil, errs.NewEnumeration(err)
	}
	// OS interface table lookup is best effort, same as when filtering
	// interfaces before activating capture handles.
	osIfs, _ := net.Interfaces()

	devices := make([]Device, 0, len(ifs))
	for _, ifi := range ifs {
		d := Device{
			Name:        ifi.Name,
			Description: ifi.Description,
			Addresses:   append([]pcap.InterfaceAddress(nil), ifi.Addresses...),
		}
		mergeFlags(&d, ifi, osIfs)
		devices = append(devices, d)
	}
	slog.Debug("device directory opened, %d devices", len(devices))
	return &Directory{devices: devices}, nil
}

// Devices returns all discovered devices in native enumeration order. The
// order is stable for the lifetime of the Directory.
func (d *Directory) Devices() ([]Device, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil, &errs.StateError{Op: "directory.Devices", Reason: "directory is closed"}
	}
	return d.devices, nil
}

// Close releases the directory. Closing twice is lifecycle misuse and is
// reported, not ignored.
func (d *Directory) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return &errs.StateError{Op: "directory.Close", Reason: "directory already closed"}
	}
	d.closed = true
	d.devices = nil
	return nil
}
