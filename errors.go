// Copyright (c) 2024–2026 The scpi developers. All rights reserved.
// Project site: https://github.com/gotmc/scpi
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package scpi

import (
	"errors"
	"fmt"
	"time"
)

// ErrClosed is returned when an operation is attempted on a session whose
// connection has been released.
var ErrClosed = errors.New("scpi: session closed")

// ConnectError indicates the link to the instrument could not be established.
type ConnectError struct {
	Addr string
	Err  error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("scpi: connect %s: %s", e.Addr, e.Err)
}

func (e *ConnectError) Unwrap() error { return e.Err }

// TransportError indicates the link dropped or a write was refused after the
// link had been established. A TransportError forces the session to Closed;
// the caller must reconnect before issuing further commands.
type TransportError struct {
	Op  string // "send" or "receive"
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("scpi: transport error during %s: %s", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// TimeoutError indicates no terminated reply arrived within the configured
// I/O timeout. The session remains connected and reusable.
type TimeoutError struct {
	Query string
	After time.Duration
}

func (e *TimeoutError) Error() string {
	if e.Query == "" {
		return fmt.Sprintf("scpi: no reply within %s", e.After)
	}
	return fmt.Sprintf("scpi: no reply to %q within %s", e.Query, e.After)
}

// IsTimeout reports whether err is a reply timeout.
func IsTimeout(err error) bool {
	var te *TimeoutError
	return errors.As(err, &te)
}

// UnitError indicates a unit symbol that is not recognized for the quantity
// kind. Raised before any network I/O.
type UnitError struct {
	Unit string
	Kind Kind
}

func (e *UnitError) Error() string {
	return fmt.Sprintf("scpi: unit %q not recognized for %s (want one of %v)",
		e.Unit, e.Kind, Units(e.Kind))
}

// ArgumentError indicates a value outside the allowed set or range for an
// operation. Raised before any network I/O.
type ArgumentError struct {
	Op     string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("scpi: bad argument for %s: %s", e.Op, e.Reason)
}

// ParseError indicates a reply that does not match the expected grammar.
type ParseError struct {
	Text string // raw reply text
	Want string // expected grammar, e.g. "number"
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("scpi: cannot parse %q as %s", e.Text, e.Want)
}

// ProtocolError indicates a request/response ordering violation, e.g. sending
// a command while the reply to a previous query is still outstanding. Nothing
// reaches the wire when a ProtocolError is raised.
type ProtocolError struct {
	Op      string // operation that was attempted
	Pending string // query whose reply is outstanding
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("scpi: protocol violation: %s while reply to %q is outstanding",
		e.Op, e.Pending)
}

// DeviceError is a nonzero entry from the instrument's error queue, as
// reported by a SYST:ERR? style query. Code 0 ("No error") is never surfaced
// as a DeviceError.
type DeviceError struct {
	Code int
	Desc string
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("scpi: device error %d: %s", e.Code, e.Desc)
}

// IsDeviceError reports whether err is an instrument-reported error, as
// opposed to a failure of the link itself.
func IsDeviceError(err error) bool {
	var de *DeviceError
	return errors.As(err, &de)
}
