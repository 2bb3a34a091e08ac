// Copyright (c) 2024–2026 The scpi developers. All rights reserved.
// Project site: https://github.com/gotmc/scpi
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package scpi

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"strings"
	"sync"
	"time"

	"go.uber.org/multierr"
)

// DefaultTimeout is the I/O timeout applied when a session is constructed
// without WithTimeout.
const DefaultTimeout = 5 * time.Second

// Device is the byte-stream link to one instrument. driver/lan and
// driver/serial provide implementations; any io.ReadWriteCloser works, e.g.
// one end of a net.Pipe in tests.
type Device interface {
	io.ReadWriteCloser
}

// deadliner is implemented by links that support absolute I/O deadlines
// (net.Conn does). Links without deadlines run with whatever timeout the
// port itself enforces.
type deadliner interface {
	SetDeadline(t time.Time) error
}

type state int

const (
	connectedState state = iota
	busyState            // a query's reply is outstanding
	closedState
)

// Session is a stateful handle on one connected instrument. It owns the
// link, frames commands with the configured terminator, and enforces strict
// request/response alternation: SCPI over a LAN socket has no multiplexing,
// so a pending query must be answered before the next command goes out.
//
// A Session is not safe for concurrent use; hold one Session per instrument
// and serialize access externally if needed. The one exception is Close,
// which may be called from another goroutine to abort a pending Receive.
type Session struct {
	dev     Device
	r       *bufio.Reader
	caps    Capability
	timeout time.Duration
	txTerm  string
	rxTerm  byte
	rxTrim  string // extra cutset trimmed from replies, for prompt-y dialects
	debug   bool

	mu      sync.Mutex // guards state and pending; Close races a blocked Receive
	state   state
	pending string // the query whose reply is outstanding while busy
}

// SessionOption applies an option to the session.
type SessionOption func(*Session)

// WithTimeout sets the I/O timeout for replies. A Receive that sees no
// terminated line within d fails with a TimeoutError.
func WithTimeout(d time.Duration) SessionOption {
	return func(s *Session) { s.timeout = d }
}

// WithTerminators sets the line terminator appended to outgoing commands and
// the terminator that ends incoming replies. The defaults are "\n" and '\n',
// the common SCPI raw-socket convention; telnet-style instruments want
// ("\r\n", '\n').
func WithTerminators(tx string, rx byte) SessionOption {
	return func(s *Session) {
		s.txTerm = tx
		s.rxTerm = rx
	}
}

// WithReplyTrim adds a cutset trimmed from both ends of every reply, after
// terminators. Dialects that echo a prompt character (e.g. the Micro Lambda
// telnet interface's ">") need this.
func WithReplyTrim(cutset string) SessionOption {
	return func(s *Session) { s.rxTrim = cutset }
}

// WithDebug causes framed commands and raw replies to be logged.
func WithDebug() SessionOption {
	return func(s *Session) { s.debug = true }
}

// NewSession wraps an open device link in a session using the given
// capability table. The table is static per-model configuration; pass an
// empty Capability for instruments driven through raw Command/Query only.
func NewSession(dev Device, caps Capability, opts ...SessionOption) (*Session, error) {
	s := Session{
		dev:     dev,
		r:       bufio.NewReader(dev),
		caps:    caps,
		timeout: DefaultTimeout,
		txTerm:  "\n",
		rxTerm:  '\n',
		state:   connectedState,
	}
	for _, opt := range opts {
		opt(&s)
	}
	if s.timeout <= 0 {
		return nil, fmt.Errorf("invalid I/O timeout %s", s.timeout)
	}
	return &s, nil
}

// Send writes a single command line to the instrument. Leading and trailing
// whitespace is trimmed before the terminator is appended. Sending a query
// (a command ending in "?") marks the session busy until the matching
// Receive; sending anything while busy is a protocol violation and fails
// with a ProtocolError without touching the wire.
func (s *Session) Send(cmd string) error {
	cmd = strings.TrimSpace(cmd)
	s.mu.Lock()
	switch s.state {
	case closedState:
		s.mu.Unlock()
		return &TransportError{Op: "send", Err: ErrClosed}
	case busyState:
		pending := s.pending
		s.mu.Unlock()
		return &ProtocolError{Op: fmt.Sprintf("send %q", cmd), Pending: pending}
	}
	s.mu.Unlock()
	if s.debug {
		log.Printf("scpi: send %q", cmd+s.txTerm)
	}
	if d, ok := s.dev.(deadliner); ok {
		if err := d.SetDeadline(time.Now().Add(s.timeout)); err != nil {
			return s.fail("send", err)
		}
	}
	if _, err := io.WriteString(s.dev, cmd+s.txTerm); err != nil {
		return s.fail("send", err)
	}
	if strings.HasSuffix(cmd, "?") {
		s.mu.Lock()
		// A concurrent Close may have won; do not resurrect a closed session.
		if s.state == connectedState {
			s.state = busyState
			s.pending = cmd
		}
		s.mu.Unlock()
	}
	return nil
}

// Command formats according to a format specifier if provided and sends the
// resulting command to the instrument.
func (s *Session) Command(format string, a ...any) error {
	cmd := format
	if a != nil {
		cmd = fmt.Sprintf(format, a...)
	}
	return s.Send(cmd)
}

// Receive blocks until a complete terminated reply line is read or the I/O
// timeout elapses. On timeout the session stays connected and reusable; if
// the peer closes the connection mid-read the session is forced closed and a
// TransportError is returned. Receiving while no query is pending is
// allowed, for dialects whose queries carry no "?" and for banner lines.
func (s *Session) Receive() (string, error) {
	s.mu.Lock()
	if s.state == closedState {
		s.mu.Unlock()
		return "", &TransportError{Op: "receive", Err: ErrClosed}
	}
	s.mu.Unlock()
	if d, ok := s.dev.(deadliner); ok {
		if err := d.SetDeadline(time.Now().Add(s.timeout)); err != nil {
			return "", s.fail("receive", err)
		}
	}
	line, err := s.r.ReadString(s.rxTerm)
	if err != nil {
		if isTimeout(err) {
			// The reply never arrived; the link itself is still good.
			s.mu.Lock()
			pending := s.pending
			if s.state == busyState {
				s.state = connectedState
			}
			s.pending = ""
			s.mu.Unlock()
			return "", &TimeoutError{Query: pending, After: s.timeout}
		}
		return "", s.failRead("receive", err)
	}
	s.mu.Lock()
	if s.state == busyState {
		s.state = connectedState
	}
	s.pending = ""
	s.mu.Unlock()
	if s.debug {
		log.Printf("scpi: recv %q", line)
	}
	line = strings.TrimRight(line, "\r\n")
	if s.rxTrim != "" {
		line = strings.Trim(line, s.rxTrim)
	}
	return line, nil
}

// Query sends the given command and returns the instrument's reply with
// terminators stripped. Session satisfies the query.Querier interface from
// github.com/gotmc/query, so its typed helpers work directly:
//
//	f, err := query.Float64(session, "FREQ?")
func (s *Session) Query(cmd string) (string, error) {
	if err := s.Send(cmd); err != nil {
		return "", err
	}
	return s.Receive()
}

// Set looks up the operation in the capability table, normalizes the
// magnitude to the instrument's base unit, validates it against the
// operation's range, and sends the formatted command. All validation happens
// before any network I/O.
func (s *Session) Set(op string, magnitude float64, unit string) error {
	c, ok := s.caps[op]
	if !ok {
		return &ArgumentError{Op: op, Reason: "unknown operation"}
	}
	base, err := ToBase(magnitude, unit, c.Kind)
	if err != nil {
		return err
	}
	if c.Min != nil && base < *c.Min {
		return &ArgumentError{
			Op:     op,
			Reason: fmt.Sprintf("%g %s is below the minimum %g %s", magnitude, unit, *c.Min, BaseUnit(c.Kind)),
		}
	}
	if c.Max != nil && base > *c.Max {
		return &ArgumentError{
			Op:     op,
			Reason: fmt.Sprintf("%g %s is above the maximum %g %s", magnitude, unit, *c.Max, BaseUnit(c.Kind)),
		}
	}
	return s.Send(FormatSet(c.Verb, base))
}

// SetValue sends a plain numeric value for a unitless operation (counts,
// ratios, dwell times in seconds).
func (s *Session) SetValue(op string, value float64) error {
	return s.Set(op, value, "")
}

// Measure queries the operation's verb and returns the numeric reply
// converted to the caller's preferred unit. The unit is validated before any
// I/O.
func (s *Session) Measure(op, unit string) (float64, error) {
	c, ok := s.caps[op]
	if !ok {
		return 0, &ArgumentError{Op: op, Reason: "unknown operation"}
	}
	if err := CheckUnit(unit, c.Kind); err != nil {
		return 0, err
	}
	reply, err := s.Query(FormatQuery(c.Verb))
	if err != nil {
		return 0, err
	}
	base, err := ParseNumber(reply)
	if err != nil {
		return 0, err
	}
	return FromBase(base, c.Kind, unit)
}

// SwitchState sends one of the operation's allowed enum tokens, e.g.
// SwitchState("output", "ON"). The token match is case-insensitive; an
// unknown token fails with an ArgumentError and nothing is sent.
func (s *Session) SwitchState(op, token string) error {
	c, ok := s.caps[op]
	if !ok {
		return &ArgumentError{Op: op, Reason: "unknown operation"}
	}
	if len(c.Enums) == 0 {
		return &ArgumentError{Op: op, Reason: "not a state operation"}
	}
	cmd, err := FormatEnum(c.Verb, token, c.Enums)
	if err != nil {
		return err
	}
	return s.Send(cmd)
}

// ID returns the instrument's identification string.
func (s *Session) ID() (string, error) {
	reply, err := s.Query(FormatQuery(s.verb(opID, "*IDN")))
	if err != nil {
		return "", err
	}
	return ParseIdentifier(reply), nil
}

// Reset resets the instrument to its power-on defaults.
func (s *Session) Reset() error {
	return s.Send(s.verb(opReset, "*RST"))
}

// SystemError drains one entry from the instrument's error queue. It returns
// nil when the queue answers 0,"No error", a *DeviceError for a nonzero
// entry, and a transport or parse error if the exchange itself failed.
func (s *Session) SystemError() error {
	reply, err := s.Query(FormatQuery(s.verb(opSystemError, "SYST:ERR")))
	if err != nil {
		return err
	}
	return ParseErrorQueue(reply)
}

// DrainErrors drains up to max entries from the instrument's error queue and
// returns them combined. Every command that the instrument rejects appends
// to the queue, so callers typically drain after a failed configuration
// sequence for diagnostics.
func (s *Session) DrainErrors(max int) error {
	var errs error
	for i := 0; i < max; i++ {
		err := s.SystemError()
		if err == nil {
			break
		}
		errs = multierr.Append(errs, err)
		if !IsDeviceError(err) {
			break
		}
	}
	return errs
}

// Close releases the connection. It is idempotent: closing an already-closed
// session is a no-op. Close is safe to call from any failure-handling path
// and unblocks an in-flight Receive with a TransportError.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.state == closedState {
		s.mu.Unlock()
		return nil
	}
	s.state = closedState
	s.pending = ""
	s.mu.Unlock()
	return s.dev.Close()
}

func (s *Session) verb(op, fallback string) string {
	if c, ok := s.caps[op]; ok {
		return c.Verb
	}
	return fallback
}

// fail closes the session after a transport failure. Retrying or
// reconnecting is deliberately left to the caller: silently resending a SCPI
// command can change instrument state non-idempotently.
func (s *Session) fail(op string, err error) error {
	s.mu.Lock()
	s.state = closedState
	s.pending = ""
	s.mu.Unlock()
	s.dev.Close()
	return &TransportError{Op: op, Err: err}
}

func (s *Session) failRead(op string, err error) error {
	if err == io.EOF {
		err = errors.New("connection closed by instrument")
	}
	return s.fail(op, err)
}

func isTimeout(err error) bool {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
