// Copyright (c) 2024–2026 The scpi developers. All rights reserved.
// Project site: https://github.com/gotmc/scpi
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

// Package connutil carries the flag plumbing shared by the example CLIs: it
// turns -addr / -serial / -timeout flags into an open session plus a cleanup
// function.
package connutil

import (
	"flag"
	"log"
	"time"

	"github.com/gotmc/scpi"
	"github.com/gotmc/scpi/driver/lan"
	serialdrv "github.com/gotmc/scpi/driver/serial"
	"go.uber.org/multierr"
)

// Conn holds the connection flags for one instrument.
type Conn struct {
	Addr        string // LAN address, "host" or "host:port"
	Port        int    // LAN port appended when Addr carries none
	Serial      string // serial device path; when set, overrides LAN
	Baud        int
	IOTimeout   time.Duration
	DialTimeout time.Duration
	Debug       bool
}

func (c *Conn) defaults() {
	if c.Port == 0 {
		c.Port = lan.DefaultPort
	}
	if c.Baud == 0 {
		c.Baud = serialdrv.DefaultBaudRate
	}
	if c.IOTimeout == 0 {
		c.IOTimeout = scpi.DefaultTimeout
	}
	if c.DialTimeout == 0 {
		c.DialTimeout = lan.DefaultDialTimeout
	}
}

// AddFlags registers the connection flags. Call before flag.Parse.
func (c *Conn) AddFlags() {
	c.defaults()

	flag.StringVar(&c.Addr, "addr", c.Addr, "LAN address of the instrument")
	flag.IntVar(&c.Port, "port", c.Port, "TCP port when -addr has none")
	flag.StringVar(&c.Serial, "serial", c.Serial, "serial device path (overrides -addr)")
	flag.IntVar(&c.Baud, "baud", c.Baud, "serial baud rate")
	flag.DurationVar(&c.IOTimeout, "timeout", c.IOTimeout, "reply timeout")
	flag.DurationVar(&c.DialTimeout, "dial-timeout", c.DialTimeout, "connect timeout")
	flag.BoolVar(&c.Debug, "debug", c.Debug, "log framed commands and raw replies")
}

// Setup opens the link selected by the flags and wraps it in a session using
// the given capability table. Call after flag.Parse. The returned cleanup
// releases the link; it is safe to defer immediately.
func (c *Conn) Setup(table scpi.Capability, opts ...scpi.SessionOption) (*scpi.Session, func(), error) {
	c.defaults()
	nocleanup := func() {}

	var dev scpi.Device
	var err error
	if c.Serial != "" {
		dev, err = serialdrv.Open(c.Serial,
			serialdrv.WithBaudRate(c.Baud),
			serialdrv.WithReadTimeout(c.IOTimeout),
		)
	} else {
		dev, err = lan.New(c.Addr,
			lan.WithPort(c.Port),
			lan.WithDialTimeout(c.DialTimeout),
		)
	}
	if err != nil {
		return nil, nocleanup, err
	}

	opts = append([]scpi.SessionOption{scpi.WithTimeout(c.IOTimeout)}, opts...)
	if c.Debug {
		opts = append(opts, scpi.WithDebug())
	}
	sess, err := scpi.NewSession(dev, table, opts...)
	if err != nil {
		dev.Close()
		return nil, nocleanup, err
	}

	cleanup := func() {
		var errs error
		// Discard unread data before closing, where the link supports it.
		if fl, ok := dev.(interface{ Flush() error }); ok {
			errs = multierr.Append(errs, fl.Flush())
		}
		errs = multierr.Append(errs, sess.Close())
		if errs != nil {
			log.Printf("cleanup: %s", errs)
		}
	}
	return sess, cleanup, nil
}
