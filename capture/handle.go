package capture

import (
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/pcap"
)

// NativeHandle is the slice of the pcap handle surface a Session drives.
// *pcap.Handle satisfies it.
type NativeHandle interface {
	// ZeroCopyReadPacketData returns the next packet. The data slice
	// points into library-owned memory and is only valid until the next
	// read; the dispatcher copies it before any handler sees it.
	ZeroCopyReadPacketData() (data []byte, ci gopacket.CaptureInfo, err error)

	// WritePacketData injects a raw frame on the wire.
	WritePacketData(data []byte) error

	// SetBPFFilter applies a kernel filter expression to the handle.
	SetBPFFilter(expr string) error

	// Close releases the handle. Best effort, never reports.
	Close()
}

// openLive acquires a live capture handle. Swapped out by tests to
// substitute a synthetic packet source.
var openLive = func(device string, snaplen int32, promisc bool, timeout time.Duration) (NativeHandle, error) {
	return pcap.OpenLive(device, snaplen, promisc, timeout)
}
