// Copyright (c) 2024–2026 The scpi developers. All rights reserved.
// Project site: https://github.com/gotmc/scpi
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

// Package serial provides the RS-232 link to a bench instrument wired over a
// serial port or USB-serial adapter.
package serial

import (
	"time"

	"github.com/gotmc/scpi"
	bserial "go.bug.st/serial"
)

// DefaultBaudRate matches the factory setting of most SCPI bench
// instruments.
const DefaultBaudRate = 9600

// Port is an open serial link to an instrument, usable as a scpi.Device.
// Serial ports have no absolute deadlines; the read timeout given at Open
// bounds each read instead.
type Port struct {
	p bserial.Port
}

type config struct {
	baud        int
	readTimeout time.Duration
}

// Option applies an option when opening the port.
type Option func(*config)

// WithBaudRate sets the line speed.
func WithBaudRate(baud int) Option {
	return func(c *config) { c.baud = baud }
}

// WithReadTimeout bounds each read on the port. It should be at least the
// session's I/O timeout.
func WithReadTimeout(d time.Duration) Option {
	return func(c *config) { c.readTimeout = d }
}

// Open opens the serial device, e.g. "/dev/ttyUSB0". Failure to open is
// reported as a *scpi.ConnectError.
func Open(dev string, opts ...Option) (*Port, error) {
	cfg := config{
		baud:        DefaultBaudRate,
		readTimeout: scpi.DefaultTimeout,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	p, err := bserial.Open(dev, &bserial.Mode{BaudRate: cfg.baud})
	if err != nil {
		return nil, &scpi.ConnectError{Addr: dev, Err: err}
	}
	if err := p.SetReadTimeout(cfg.readTimeout); err != nil {
		p.Close()
		return nil, &scpi.ConnectError{Addr: dev, Err: err}
	}
	return &Port{p: p}, nil
}

// Read reads from the instrument.
func (sp *Port) Read(p []byte) (int, error) { return sp.p.Read(p) }

// Write writes to the instrument.
func (sp *Port) Write(p []byte) (int, error) { return sp.p.Write(p) }

// Close closes the port.
func (sp *Port) Close() error { return sp.p.Close() }

// Flush discards unread input, e.g. before closing after an aborted
// exchange.
func (sp *Port) Flush() error { return sp.p.ResetInputBuffer() }
