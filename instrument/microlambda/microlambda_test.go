// Copyright (c) 2024–2026 The scpi developers. All rights reserved.
// Project site: https://github.com/gotmc/scpi
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package microlambda

import (
	"testing"
	"time"

	"github.com/gotmc/scpi"
	"github.com/gotmc/scpi/scpitest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// short keeps the banner drain from waiting out the default timeout.
var short = scpi.WithTimeout(50 * time.Millisecond)

func TestYIGFilter(t *testing.T) {
	dev, mock := scpitest.New(t, "Micro Lambda Wireless\r\n", "MLBF ready\r\n")
	mock.Reply("R0000", "> MLBF\r\n")
	mock.Reply("R0001", "> 1234\r\n")
	mock.Reply("R0002", "> 1.07\r\n")
	mock.Reply("R0003", "> 2000\r\n")
	mock.Reply("R0004", "> 12000\r\n")

	yf, err := New(dev, short)
	require.NoError(t, err)
	defer yf.Close()

	id, err := yf.ID()
	require.NoError(t, err)
	assert.Equal(t, "Micro Lambda Wireless Inc. MLBF 1234 1.07 (2 to 12 GHz)", id)

	require.NoError(t, yf.SetFrequency(6.5, "GHz"))
	require.NoError(t, yf.SetFrequency(9500, "MHz"))

	sent := mock.Received()
	assert.Contains(t, sent, "F6500.000")
	assert.Contains(t, sent, "F9500.000")
}

func TestYIGFilterRejectsUnknownUnit(t *testing.T) {
	dev, _ := scpitest.New(t)
	yf, err := New(dev, short)
	require.NoError(t, err)
	defer yf.Close()

	var ue *scpi.UnitError
	require.ErrorAs(t, yf.SetFrequency(6.5, "ghz"), &ue)
}

func TestSynthesizerResolution(t *testing.T) {
	dev, mock := scpitest.New(t)
	syn, err := NewSynthesizer(dev, short)
	require.NoError(t, err)
	defer syn.Close()

	require.NoError(t, syn.SetFrequency(6.5, "GHz"))
	assert.Equal(t, []string{"F6500.000000"}, mock.Received())
}
