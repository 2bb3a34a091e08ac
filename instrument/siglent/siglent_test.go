// Copyright (c) 2024–2026 The scpi developers. All rights reserved.
// Project site: https://github.com/gotmc/scpi
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package siglent

import (
	"testing"

	"github.com/gotmc/scpi"
	"github.com/gotmc/scpi/scpitest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePAVA(t *testing.T) {
	tests := []struct {
		reply string
		want  float64
	}{
		{"C1:PAVA RMS,1.234E-01V", 0.1234},
		{"C2:PAVA RMS,3.3V", 3.3},
		{"C1:PAVA RMS,500E-03V\r", 0.5},
	}
	for _, tt := range tests {
		got, err := parsePAVA(tt.reply)
		require.NoError(t, err, "parsePAVA(%q)", tt.reply)
		assert.InDelta(t, tt.want, got, 1e-12, "parsePAVA(%q)", tt.reply)
	}

	var pe *scpi.ParseError
	for _, reply := range []string{"", "no comma here", "C1:PAVA RMS,****"} {
		_, err := parsePAVA(reply)
		require.ErrorAs(t, err, &pe, "parsePAVA(%q)", reply)
	}
}

func TestMeasureRMSVoltage(t *testing.T) {
	dev, mock := scpitest.New(t)
	mock.Reply("C1:PAVA? RMS", "C1:PAVA RMS,1.234E-01V\n")

	osc, err := New(dev)
	require.NoError(t, err)
	defer osc.Close()

	v, err := osc.MeasureRMSVoltage(1, "V")
	require.NoError(t, err)
	assert.InDelta(t, 0.1234, v, 1e-12)

	mv, err := osc.MeasureRMSVoltage(1, "mV")
	require.NoError(t, err)
	assert.InDelta(t, 123.4, mv, 1e-9)

	assert.Equal(t, []string{
		"PACU RMS,C1",
		"C1:PAVA? RMS",
		"PACU RMS,C1",
		"C1:PAVA? RMS",
	}, mock.Received())
}

func TestMeasureRMSVoltageRejectsUnknownUnit(t *testing.T) {
	dev, mock := scpitest.New(t)
	osc, err := New(dev)
	require.NoError(t, err)
	defer osc.Close()

	var ue *scpi.UnitError
	_, err = osc.MeasureRMSVoltage(1, "Volts")
	require.ErrorAs(t, err, &ue)
	assert.Empty(t, mock.Received())
}
