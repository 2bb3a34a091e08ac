// Copyright (c) 2024–2026 The scpi developers. All rights reserved.
// Project site: https://github.com/gotmc/scpi
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package hittite

import (
	"testing"
	"time"

	"github.com/gotmc/scpi"
	"github.com/gotmc/scpi/scpitest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignalGenerator(t *testing.T) {
	dev, mock := scpitest.New(t)
	mock.Reply("FREQ?", "+5.000000E+09\n")
	mock.Reply("POW?", "-3.800000E+01\n")

	sg, err := New(dev)
	require.NoError(t, err)
	defer sg.Close()

	require.NoError(t, sg.SetFrequency(5, "GHz"))
	require.NoError(t, sg.SetPower(-38, "dBm"))
	require.NoError(t, sg.RFOn())
	require.NoError(t, sg.RFOff())

	freq, err := sg.Frequency("GHz")
	require.NoError(t, err)
	assert.InDelta(t, 5.0, freq, 1e-9)

	pow, err := sg.Power("dBm")
	require.NoError(t, err)
	assert.InDelta(t, -38.0, pow, 1e-9)

	assert.Equal(t, []string{
		"FREQ 5000000000",
		"POW -38",
		"OUTP ON",
		"OUTP OFF",
		"FREQ?",
		"POW?",
	}, mock.Received())
}

func TestSignalGeneratorRejectsOutOfRange(t *testing.T) {
	dev, mock := scpitest.New(t)
	sg, err := New(dev)
	require.NoError(t, err)
	defer sg.Close()

	// The HMC-T2240 tunes 10 MHz to 40 GHz.
	var ae *scpi.ArgumentError
	require.ErrorAs(t, sg.SetFrequency(50, "GHz"), &ae)
	require.ErrorAs(t, sg.SetFrequency(1, "kHz"), &ae)
	require.ErrorAs(t, sg.SetPower(40, "dBm"), &ae)
	assert.Empty(t, mock.Received())
}

func TestStartSweep(t *testing.T) {
	dev, mock := scpitest.New(t)
	sg, err := New(dev)
	require.NoError(t, err)
	defer sg.Close()

	require.NoError(t, sg.StartSweep(1, 2, 0.1, "GHz", 100*time.Millisecond))
	require.NoError(t, sg.StopSweep())

	assert.Equal(t, []string{
		"FREQ:STAR 1000000000",
		"FREQ:STOP 2000000000",
		"FREQ:STEP 100000000",
		"SWE:DWEL 0.1",
		"FREQ:MODE SWE",
		"INIT:CONT ON",
		"INIT:CONT OFF",
	}, mock.Received())
}
