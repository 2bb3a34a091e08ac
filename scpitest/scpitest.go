// Copyright (c) 2024–2026 The scpi developers. All rights reserved.
// Project site: https://github.com/gotmc/scpi
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

// Package scpitest provides an in-memory mock instrument for testing
// instrument wrappers without hardware. The mock answers line-oriented
// commands on the far end of a net.Pipe and records everything it receives.
package scpitest

import (
	"bufio"
	"bytes"
	"io"
	"net"
	"strings"
	"sync"
	"testing"

	"github.com/gotmc/scpi"
)

// Instrument is a scripted mock instrument.
type Instrument struct {
	conn net.Conn

	mu       sync.Mutex
	pending  []byte // bytes written by the session, not yet a full line
	received []string
	replies  map[string]string
	banner   []string
}

// New starts a mock instrument and returns the device link to hand to a
// session. Banner lines, if any, are sent as soon as the mock starts, the
// way telnet-style instruments greet a new connection.
func New(t *testing.T, banner ...string) (scpi.Device, *Instrument) {
	t.Helper()
	client, server := net.Pipe()
	m := &Instrument{
		conn:    server,
		replies: make(map[string]string),
		banner:  banner,
	}
	go m.serve()
	t.Cleanup(func() {
		client.Close()
		server.Close()
	})
	return recordingConn{Conn: client, m: m}, m
}

// recordingConn records every terminated line on the session side of the
// Write call, so that by the time a session call returns, the line is visible
// to Received. Recording in the serve goroutine instead would race tests
// whose final wire interaction is a write-only command.
type recordingConn struct {
	net.Conn
	m *Instrument
}

func (c recordingConn) Write(p []byte) (int, error) {
	n, err := c.Conn.Write(p)
	c.m.record(p[:n])
	return n, err
}

func (m *Instrument) record(p []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = append(m.pending, p...)
	for {
		i := bytes.IndexByte(m.pending, '\n')
		if i < 0 {
			return
		}
		m.received = append(m.received, strings.TrimRight(string(m.pending[:i+1]), "\r\n"))
		m.pending = m.pending[i+1:]
	}
}

// Reply scripts the response to a command. The command is matched after
// terminator stripping; the response is written verbatim, so include the
// terminator.
func (m *Instrument) Reply(cmd, response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies[cmd] = response
}

// Received returns the commands received so far, terminators stripped.
func (m *Instrument) Received() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.received...)
}

func (m *Instrument) serve() {
	for _, line := range m.banner {
		if _, err := io.WriteString(m.conn, line); err != nil {
			return
		}
	}
	r := bufio.NewReader(m.conn)
	for {
		line, err := r.ReadString('\n')
		if line != "" {
			cmd := strings.TrimRight(line, "\r\n")
			m.mu.Lock()
			response, ok := m.replies[cmd]
			m.mu.Unlock()
			if ok {
				if _, werr := io.WriteString(m.conn, response); werr != nil {
					return
				}
			}
		}
		if err != nil {
			return
		}
	}
}
