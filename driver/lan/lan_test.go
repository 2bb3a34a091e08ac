// Copyright (c) 2024–2026 The scpi developers. All rights reserved.
// Project site: https://github.com/gotmc/scpi
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package lan

import (
	"bufio"
	"io"
	"net"
	"testing"
	"time"

	"github.com/gotmc/scpi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAndExchange(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	type result struct {
		line string
		err  error
	}
	got := make(chan result, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			got <- result{err: err}
			return
		}
		defer conn.Close()
		line, err := bufio.NewReader(conn).ReadString('\n')
		io.WriteString(conn, "ok\n")
		got <- result{line: line, err: err}
	}()

	dev, err := New(ln.Addr().String(), WithDialTimeout(time.Second))
	require.NoError(t, err)
	defer dev.Close()

	_, err = io.WriteString(dev, "*IDN?\n")
	require.NoError(t, err)

	r := <-got
	require.NoError(t, r.err)
	assert.Equal(t, "*IDN?\n", r.line)

	reply, err := bufio.NewReader(dev).ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "ok\n", reply)
}

func TestNewUnreachable(t *testing.T) {
	// A listener that is immediately closed gives a port nothing accepts on.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	ln.Close()

	_, err = New(addr, WithDialTimeout(200*time.Millisecond))
	var ce *scpi.ConnectError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, addr, ce.Addr)
}

func TestNewAppendsDefaultPort(t *testing.T) {
	_, err := New("127.0.0.1", WithPort(1), WithDialTimeout(100*time.Millisecond))
	var ce *scpi.ConnectError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "127.0.0.1:1", ce.Addr)
}
