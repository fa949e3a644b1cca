package capture

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	slog "github.com/vearne/simplelog"

	"github.com/vearne/pcapkit/errs"
)

// Session owns one capture handle on one device. Lifecycle is
// Closed -> Open -> Closed; a Session can be opened successfully once,
// reopening requires a new instance. Stop and Close are the only methods
// meant to be called from a goroutine other than the one blocked in Run.
type Session struct {
	mu     sync.Mutex
	id     string
	device string
	config Config
	handle NativeHandle

	opened bool
	closed bool

	// runDone is non-nil exactly while a dispatch loop is active; it is
	// closed when the loop returns, on every exit path.
	runDone chan struct{}

	// stopFlag is the one piece of state shared with a concurrently
	// running loop outside the mutex. It never touches packet buffers.
	stopFlag int32
}

// NewSession prepares a closed session for the named device. The device
// name is the opaque identifier from device enumeration.
func NewSession(device string, config Config) *Session {
	return &Session{
		id:     uuid.NewString(),
		device: device,
		config: config.withDefaults(),
	}
}

// Device returns the device name this session captures on.
func (s *Session) Device() string { return s.device }

// Open acquires the capture handle. A failed Open leaves the session
// closed and may be retried; after a successful Open or after Close the
// session can never be opened again.
func (s *Session) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.opened || s.closed {
		return &errs.StateError{Op: "session.Open", Reason: "session was already opened"}
	}

	handle, err := openLive(s.device, s.config.SnapLen, s.config.Promiscuous, s.config.ReadTimeout)
	if err != nil {
		return errs.NewOpen(s.device, err)
	}
	if s.config.BPFFilter != "" {
		if err := handle.SetBPFFilter(s.config.BPFFilter); err != nil {
			handle.Close()
			return errs.NewOpen(s.device, err)
		}
	}

	s.handle = handle
	s.opened = true
	slog.Debug("session %s opened on %q, snaplen:%d promisc:%v timeout:%v",
		s.id, s.device, s.config.SnapLen, s.config.Promiscuous, s.config.ReadTimeout)
	return nil
}

// Send injects one raw frame. The frame is handed to the interface as-is;
// size limits (MTU, driver caps) are enforced by the native library and
// surface as a SendError.
func (s *Session) Send(frame []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.opened || s.closed {
		return &errs.StateError{Op: "session.Send", Reason: "session is not open"}
	}
	if len(frame) == 0 {
		return &errs.SendError{Message: "empty frame"}
	}
	if err := s.handle.WritePacketData(frame); err != nil {
		return errs.NewSend(err)
	}
	return nil
}

// Stop requests that an in-progress Run terminate at its next check,
// bounded by the read timeout. Safe to call from any goroutine, including
// concurrently with an active loop. A no-op when no loop is running.
func (s *Session) Stop() {
	atomic.StoreInt32(&s.stopFlag, 1)
}

// Close releases the handle. If a dispatch loop is active it is stopped
// and drained first; the handle is never released while the loop may
// still read from it. The native release itself is best effort.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return &errs.StateError{Op: "session.Close", Reason: "session already closed"}
	}
	if !s.opened {
		s.closed = true
		s.mu.Unlock()
		return &errs.StateError{Op: "session.Close", Reason: "session was never opened"}
	}
	s.closed = true
	done := s.runDone
	s.mu.Unlock()

	if done != nil {
		atomic.StoreInt32(&s.stopFlag, 1)
		<-done
	}
	s.handle.Close()
	slog.Debug("session %s closed", s.id)
	return nil
}
