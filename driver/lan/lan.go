// Copyright (c) 2024–2026 The scpi developers. All rights reserved.
// Project site: https://github.com/gotmc/scpi
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

// Package lan provides the TCP raw-socket link to a LAN instrument.
package lan

import (
	"net"
	"strconv"
	"time"

	"github.com/gotmc/scpi"
)

// DefaultPort is the conventional SCPI raw-socket port.
const DefaultPort = 5025

// DefaultDialTimeout bounds connection establishment when WithDialTimeout is
// not given.
const DefaultDialTimeout = 3 * time.Second

// LAN is a TCP connection to an instrument, usable as a scpi.Device. It
// passes I/O deadlines through to the socket, so session timeouts are
// enforced by the kernel rather than by polling.
type LAN struct {
	conn net.Conn
}

type config struct {
	port        int
	dialTimeout time.Duration
}

// Option applies an option when dialing.
type Option func(*config)

// WithPort sets the TCP port appended when addr carries none. Telnet-style
// instruments typically listen on 23 rather than 5025.
func WithPort(port int) Option {
	return func(c *config) { c.port = port }
}

// WithDialTimeout bounds how long connection establishment may take.
func WithDialTimeout(d time.Duration) Option {
	return func(c *config) { c.dialTimeout = d }
}

// New dials the instrument at addr, which is either "host" or "host:port".
// An unreachable endpoint or an elapsed dial timeout fails with a
// *scpi.ConnectError.
func New(addr string, opts ...Option) (*LAN, error) {
	cfg := config{
		port:        DefaultPort,
		dialTimeout: DefaultDialTimeout,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		addr = net.JoinHostPort(addr, strconv.Itoa(cfg.port))
	}
	conn, err := net.DialTimeout("tcp", addr, cfg.dialTimeout)
	if err != nil {
		return nil, &scpi.ConnectError{Addr: addr, Err: err}
	}
	return &LAN{conn: conn}, nil
}

// Read reads from the instrument.
func (l *LAN) Read(p []byte) (int, error) { return l.conn.Read(p) }

// Write writes to the instrument.
func (l *LAN) Write(p []byte) (int, error) { return l.conn.Write(p) }

// Close closes the connection.
func (l *LAN) Close() error { return l.conn.Close() }

// SetDeadline sets the absolute I/O deadline on the socket.
func (l *LAN) SetDeadline(t time.Time) error { return l.conn.SetDeadline(t) }

// RemoteAddr returns the instrument's network address.
func (l *LAN) RemoteAddr() net.Addr { return l.conn.RemoteAddr() }
