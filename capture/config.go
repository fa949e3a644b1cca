package capture

import "time"

const (
	// DefaultSnapLen is the per-packet capture limit applied when
	// Config.SnapLen is unset.
	DefaultSnapLen = 64 << 10

	// DefaultReadTimeout bounds how long the native read may block
	// without a packet before the loop re-checks for a stop request.
	DefaultReadTimeout = time.Second
)

// Config carries the options applied when a Session opens its handle.
type Config struct {
	// SnapLen is the maximum number of bytes captured per frame; longer
	// frames are truncated. Zero or negative selects DefaultSnapLen.
	SnapLen int32

	// Promiscuous asks the interface to deliver all observed frames, not
	// only those addressed to it.
	Promiscuous bool

	// ReadTimeout is the native read timeout. It is a liveness aid for
	// cancellation, not a per-packet deadline: a pending Stop takes
	// effect within roughly one ReadTimeout even on a silent interface.
	// Zero or negative selects DefaultReadTimeout.
	ReadTimeout time.Duration

	// BPFFilter is an optional kernel filter expression applied right
	// after the handle opens. An invalid expression fails the open.
	BPFFilter string
}

func (c Config) withDefaults() Config {
	if c.SnapLen <= 0 {
		c.SnapLen = DefaultSnapLen
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = DefaultReadTimeout
	}
	return c
}
