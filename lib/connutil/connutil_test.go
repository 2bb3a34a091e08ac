// Copyright (c) 2024–2026 The scpi developers. All rights reserved.
// Project site: https://github.com/gotmc/scpi
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package connutil

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

func TestSetupLAN(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		r := bufio.NewReader(conn)
		for {
			line, err := r.ReadString('\n')
			if err != nil {
				return
			}
			if line == "*IDN?\n" {
				io.WriteString(conn, "Mock,Instrument,0,1.0\n")
			}
		}
	}()

	c := Conn{Addr: ln.Addr().String(), IOTimeout: time.Second}
	sess, cleanup, err := c.Setup(scpi.Capability{})
	require.NoError(t, err)
	defer cleanup()

	idn, err := sess.ID()
	require.NoError(t, err)
	assert.Equal(t, "Mock,Instrument,0,1.0", idn)

	// cleanup is safe to call more than once via the session's idempotent
	// close.
	cleanup()
}

func TestSetupUnreachable(t *testing.T) {
	c := Conn{Addr: "127.0.0.1:1", DialTimeout: 200 * time.Millisecond}
	_, _, err := c.Setup(nil)
	var ce *scpi.ConnectError
	require.ErrorAs(t, err, &ce)
}
