package device

import (
	"errors"
	"net"
	"testing"

	"github.com/google/gopacket/pcap"
	"github.com/stretchr/testify/assert"

	"github.com/vearne/pcapkit/errs"
)

func useFakeDevs(t *testing.T, devs []pcap.Interface, enumErr error) {
	orig := findAllDevs
	findAllDevs = func() ([]pcap.Interface, error) {
		if enumErr != nil {
			return nil, enumErr
		}
		return devs, nil
	}
	t.Cleanup(func() { findAllDevs = orig })
}

func testDevs() []pcap.Interface {
	return []pcap.Interface{
		{Name: `\Device\NPF_{11111111}`, Description: "Intel Ethernet"},
		{Name: `\Device\NPF_{22222222}`, Description: "Wi-Fi 6"},
		{Name: `\Device\NPF_{33333333}`, Description: "Loopback"},
	}
}

func TestDevicesStableOrder(t *testing.T) {
	useFakeDevs(t, testDevs(), nil)

	dir, err := Open()
	assert.Nil(t, err)
	defer dir.Close()

	first, err := dir.Devices()
	assert.Nil(t, err)
	second, err := dir.Devices()
	assert.Nil(t, err)

	assert.Equal(t, 3, len(first))
	for i := range first {
		assert.Equal(t, testDevs()[i].Name, first[i].Name)
		assert.Equal(t, first[i].Name, second[i].Name)
	}
}

func TestDevicesAfterClose(t *testing.T) {
	useFakeDevs(t, testDevs(), nil)

	dir, err := Open()
	assert.Nil(t, err)
	assert.Nil(t, dir.Close())

	var stateErr *errs.StateError
	_, err = dir.Devices()
	assert.True(t, errors.As(err, &stateErr))

	_, err = dir.Find("*")
	assert.True(t, errors.As(err, &stateErr))

	assert.True(t, errors.As(dir.Close(), &stateErr))
}

func TestOpenEnumerationFailure(t *testing.T) {
	useFakeDevs(t, nil, errors.New("PacketGetAdapterNames: The system cannot find the device specified\x00\x00"))

	_, err := Open()
	var enumErr *errs.EnumerationError
	assert.True(t, errors.As(err, &enumErr))
	assert.Equal(t, "PacketGetAdapterNames: The system cannot find the device specified", enumErr.Message)
}

func TestOwnedAddressCopies(t *testing.T) {
	src := []pcap.Interface{{
		Name:        "eth0",
		Description: "Intel Ethernet",
		Addresses: []pcap.InterfaceAddress{
			{IP: net.IPv4(192, 168, 1, 10)},
			{IP: net.IPv4(10, 0, 0, 1)},
		},
	}}
	useFakeDevs(t, src, nil)

	dir, err := Open()
	assert.Nil(t, err)
	defer dir.Close()

	devs, err := dir.Devices()
	assert.Nil(t, err)
	assert.Equal(t, 2, len(devs[0].Addresses))

	// mutating the enumeration result must not reach the directory
	src[0].Addresses[0] = pcap.InterfaceAddress{}
	assert.True(t, devs[0].Addresses[0].IP.Equal(net.IPv4(192, 168, 1, 10)))
}

func TestLoopbackFlagMerge(t *testing.T) {
	osIfs, err := net.Interfaces()
	if err != nil {
		t.Skip("no OS interface table available")
	}
	var lo *net.Interface
	for i := range osIfs {
		if osIfs[i].Flags&net.FlagLoopback != 0 {
			lo = &osIfs[i]
			break
		}
	}
	if lo == nil {
		t.Skip("no loopback interface on this host")
	}

	useFakeDevs(t, []pcap.Interface{{Name: lo.Name, Description: "Loopback"}}, nil)

	dir, err := Open()
	assert.Nil(t, err)
	defer dir.Close()

	devs, err := dir.Devices()
	assert.Nil(t, err)
	assert.True(t, devs[0].Loopback, "device named after the OS loopback must carry the flag")
}
