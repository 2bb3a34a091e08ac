// Copyright (c) 2024–2026 The scpi developers. All rights reserved.
// Project site: https://github.com/gotmc/scpi
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

// Package agilent reads Agilent 34410A/11A/L4411A 6.5 digit multimeters.
package agilent

import (
	"github.com/gotmc/scpi"
	"github.com/gotmc/scpi/driver/lan"
)

// Table maps the multimeter's measurement operations to its SCPI verbs.
var Table = scpi.Capability{
	"dc_voltage": {Verb: "MEAS:VOLT:DC", Kind: scpi.Voltage},
	"dc_current": {Verb: "MEAS:CURR:DC", Kind: scpi.Current},
}

// Multimeter is an Agilent 34410A/11A/L4411A 6.5 digit multimeter.
type Multimeter struct {
	*scpi.Session
}

// New wraps an open device link.
func New(dev scpi.Device, opts ...scpi.SessionOption) (*Multimeter, error) {
	s, err := scpi.NewSession(dev, Table, opts...)
	if err != nil {
		return nil, err
	}
	return &Multimeter{Session: s}, nil
}

// Dial connects to the multimeter at addr over the LAN.
func Dial(addr string, opts ...scpi.SessionOption) (*Multimeter, error) {
	dev, err := lan.New(addr)
	if err != nil {
		return nil, err
	}
	return New(dev, opts...)
}

// MeasureDCVoltage triggers a DC voltage measurement and returns it in the
// given unit ("V", "mV", or "uV").
func (mm *Multimeter) MeasureDCVoltage(unit string) (float64, error) {
	return mm.Measure("dc_voltage", unit)
}

// MeasureDCCurrent triggers a DC current measurement and returns it in the
// given unit ("A" or "mA").
func (mm *Multimeter) MeasureDCCurrent(unit string) (float64, error) {
	return mm.Measure("dc_current", unit)
}
