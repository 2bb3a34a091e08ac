// Copyright (c) 2024–2026 The scpi developers. All rights reserved.
// Project site: https://github.com/gotmc/scpi
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

// Package siglent reads Siglent digital oscilloscopes.
//
// Tested against an SDS1104X-E. The scope's parameter-measurement replies
// follow its own "C<n>:PAVA? <param>" grammar rather than plain SCPI numeric
// data, so this package parses them itself.
package siglent

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gotmc/scpi"
	"github.com/gotmc/scpi/driver/lan"
)

// measurementDelay is how long the scope needs between installing a
// parameter measurement and the first valid readout.
const measurementDelay = 200 * time.Millisecond

// Oscilloscope is a Siglent digital oscilloscope.
type Oscilloscope struct {
	*scpi.Session
}

// New wraps an open device link.
func New(dev scpi.Device, opts ...scpi.SessionOption) (*Oscilloscope, error) {
	s, err := scpi.NewSession(dev, scpi.Capability{}, opts...)
	if err != nil {
		return nil, err
	}
	return &Oscilloscope{Session: s}, nil
}

// Dial connects to the oscilloscope at addr over the LAN.
func Dial(addr string, opts ...scpi.SessionOption) (*Oscilloscope, error) {
	dev, err := lan.New(addr)
	if err != nil {
		return nil, err
	}
	return New(dev, opts...)
}

// MeasureRMSVoltage installs an RMS parameter measurement on the given
// channel and returns the reading in the given unit ("V" or "mV").
func (osc *Oscilloscope) MeasureRMSVoltage(channel int, unit string) (float64, error) {
	if err := scpi.CheckUnit(unit, scpi.Voltage); err != nil {
		return 0, err
	}
	if err := osc.Command("PACU RMS,C%d", channel); err != nil {
		return 0, err
	}
	time.Sleep(measurementDelay)
	reply, err := osc.Query(fmt.Sprintf("C%d:PAVA? RMS", channel))
	if err != nil {
		return 0, err
	}
	volts, err := parsePAVA(reply)
	if err != nil {
		return 0, err
	}
	return scpi.FromBase(volts, scpi.Voltage, unit)
}

// parsePAVA extracts the value from a reply like "C1:PAVA RMS,1.234E-01V":
// the value is the field after the last comma with its unit suffix stripped.
func parsePAVA(reply string) (float64, error) {
	i := strings.LastIndex(reply, ",")
	if i < 0 {
		return 0, &scpi.ParseError{Text: reply, Want: "PAVA reply"}
	}
	field := strings.TrimSpace(reply[i+1:])
	field = strings.TrimRight(field, "VvAsSHz%")
	v, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return 0, &scpi.ParseError{Text: reply, Want: "PAVA reply"}
	}
	return v, nil
}
