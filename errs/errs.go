// Package errs defines the failure taxonomy of pcapkit.
//
// Every failure reported by the native capture library reaches callers as
// one of the typed errors below, carrying the native diagnostic text as an
// owned string. No other package interprets raw native error output.
package errs

import (
	"fmt"
	"strings"
)

// EnumerationError reports that the device list could not be acquired.
type EnumerationError struct {
	Message string
	Err     error
}

func (e *EnumerationError) Error() string {
	return fmt.Sprintf("device enumeration failed: %s", e.Message)
}

func (e *EnumerationError) Unwrap() error { return e.Err }

// OpenError reports that a capture handle could not be opened on a device.
type OpenError struct {
	Device  string
	Message string
	Err     error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("open device %q: %s", e.Device, e.Message)
}

func (e *OpenError) Unwrap() error { return e.Err }

// SendError reports a failed frame injection.
type SendError struct {
	Message string
	Err     error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("send packet: %s", e.Message)
}

func (e *SendError) Unwrap() error { return e.Err }

// NoMatchError reports that no device description matched a glob pattern.
type NoMatchError struct {
	Pattern string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no device matching %q", e.Pattern)
}

// StateError reports lifecycle misuse: operating on a closed resource,
// opening twice, closing twice, or starting overlapping runs.
type StateError struct {
	Op     string
	Reason string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

// NewEnumeration wraps a native enumeration failure.
func NewEnumeration(err error) *EnumerationError {
	return &EnumerationError{Message: NativeMessage(err), Err: err}
}

// NewOpen wraps a native open-live failure for the named device.
func NewOpen(device string, err error) *OpenError {
	return &OpenError{Device: device, Message: NativeMessage(err), Err: err}
}

// NewSend wraps a native transmit failure.
func NewSend(err error) *SendError {
	return &SendError{Message: NativeMessage(err), Err: err}
}

// NativeMessage turns a native-library error into an owned diagnostic
// string. libpcap fills a fixed-size error buffer; the binding exposes it
// with trailing padding and the occasional newline, which callers must not
// see.
func NativeMessage(err error) string {
	if err == nil {
		return ""
	}
	return strings.TrimSpace(strings.TrimRight(err.Error(), "\x00"))
}
