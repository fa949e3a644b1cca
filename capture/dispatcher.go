package capture

import (
	"fmt"
	"io"
	"net"
	"sync/atomic"
	"syscall"

	"github.com/google/gopacket"
	"github.com/google/gopacket/pcap"
	slog "github.com/vearne/simplelog"

	"github.com/vearne/pcapkit/errs"
)

// Verdict is a handler's decision after one packet.
type Verdict int

const (
	// Continue keeps the dispatch loop running.
	Continue Verdict = iota
	// Stop ends the run after the current packet, without error.
	Stop
)

// Handler receives captured packets one at a time, in arrival order. The
// data slice is an owned copy, valid after the handler returns and across
// later reads.
type Handler interface {
	HandlePacket(ci gopacket.CaptureInfo, data []byte) Verdict
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ci gopacket.CaptureInfo, data []byte) Verdict

func (f HandlerFunc) HandlePacket(ci gopacket.CaptureInfo, data []byte) Verdict {
	return f(ci, data)
}

// Run blocks the calling goroutine dispatching packets to h until limit
// packets were delivered (limit <= 0 means unbounded), h returns Stop,
// Stop() is called, or the native loop reports an unrecoverable error.
// Handler invocations never overlap. A run that ends leaves the session
// open; calling Run again resumes capture on the same handle.
func (s *Session) Run(h Handler, limit int) error {
	s.mu.Lock()
	if !s.opened || s.closed {
		s.mu.Unlock()
		return &errs.StateError{Op: "session.Run", Reason: "session is not open"}
	}
	if s.runDone != nil {
		s.mu.Unlock()
		return &errs.StateError{Op: "session.Run", Reason: "a loop is already running"}
	}
	if h == nil {
		s.mu.Unlock()
		return &errs.StateError{Op: "session.Run", Reason: "nil handler"}
	}
	done := make(chan struct{})
	s.runDone = done
	atomic.StoreInt32(&s.stopFlag, 0)
	handle := s.handle
	s.mu.Unlock()

	// Runs on every exit path, handler panics included, so a later Close
	// neither blocks on the loop nor releases a handle still being read.
	defer func() {
		s.mu.Lock()
		s.runDone = nil
		s.mu.Unlock()
		close(done)
	}()

	return s.dispatch(handle, h, limit)
}

func (s *Session) dispatch(handle NativeHandle, h Handler, limit int) error {
	delivered := 0
	for {
		if atomic.LoadInt32(&s.stopFlag) == 1 {
			slog.Debug("session %s: stop requested, %d delivered", s.id, delivered)
			return nil
		}

		data, ci, err := handle.ZeroCopyReadPacketData()
		if err != nil {
			if err == pcap.NextErrorTimeoutExpired {
				continue
			}
			if eno, ok := err.(syscall.Errno); ok && eno.Temporary() {
				continue
			}
			if enet, ok := err.(*net.OpError); ok && (enet.Temporary() || enet.Timeout()) {
				continue
			}
			if err == io.EOF || err == io.ErrClosedPipe {
				slog.Debug("session %s: packet source drained: %v", s.id, err)
				return nil
			}
			return fmt.Errorf("capture loop on %q: %w", s.device, err)
		}

		// The native buffer is invalid after the next read; hand the
		// handler its own copy.
		pkt := make([]byte, len(data))
		copy(pkt, data)

		if h.HandlePacket(ci, pkt) == Stop {
			return nil
		}
		delivered++
		if limit > 0 && delivered >= limit {
			return nil
		}
	}
}
