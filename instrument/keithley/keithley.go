// Copyright (c) 2024–2026 The scpi developers. All rights reserved.
// Project site: https://github.com/gotmc/scpi
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

// Package keithley controls Keithley 2280 series power supplies.
//
// SCPI command reference: Keithley 2280 Reference Manual 077085501.
package keithley

import (
	"github.com/gotmc/query"
	"github.com/gotmc/scpi"
	"github.com/gotmc/scpi/driver/lan"
)

// Table maps the 2280's operation set to its SCPI verbs.
var Table = scpi.Capability{
	"voltage":         {Verb: ":VOLT", Kind: scpi.Voltage},
	"voltage_limit":   {Verb: ":VOLT:LIM", Kind: scpi.Voltage},
	"current":         {Verb: ":CURR", Kind: scpi.Current},
	"current_limit":   {Verb: ":CURR:LIM", Kind: scpi.Current},
	"measure_voltage": {Verb: ":MEAS:VOLT", Kind: scpi.Voltage},
	"measure_current": {Verb: ":MEAS:CURR", Kind: scpi.Current},
	"output":          {Verb: ":OUTP", Enums: []string{"ON", "OFF"}},
}

// PowerSupply is a Keithley 2280 series power supply.
type PowerSupply struct {
	*scpi.Session
}

// New wraps an open device link.
func New(dev scpi.Device, opts ...scpi.SessionOption) (*PowerSupply, error) {
	s, err := scpi.NewSession(dev, Table, opts...)
	if err != nil {
		return nil, err
	}
	return &PowerSupply{Session: s}, nil
}

// Dial connects to the power supply at addr over the LAN.
func Dial(addr string, opts ...scpi.SessionOption) (*PowerSupply, error) {
	dev, err := lan.New(addr)
	if err != nil {
		return nil, err
	}
	return New(dev, opts...)
}

// SetVoltage sets the output voltage.
func (ps *PowerSupply) SetVoltage(v float64, unit string) error {
	return ps.Set("voltage", v, unit)
}

// SetVoltageLimit sets the output voltage limit.
func (ps *PowerSupply) SetVoltageLimit(v float64, unit string) error {
	return ps.Set("voltage_limit", v, unit)
}

// SetCurrent sets the output current.
func (ps *PowerSupply) SetCurrent(i float64, unit string) error {
	return ps.Set("current", i, unit)
}

// SetCurrentLimit sets the output current limit.
func (ps *PowerSupply) SetCurrentLimit(i float64, unit string) error {
	return ps.Set("current_limit", i, unit)
}

// MeasureVoltage measures the output voltage in the given unit. The reading
// element is selected first so the instrument answers with the bare value.
func (ps *PowerSupply) MeasureVoltage(unit string) (float64, error) {
	if err := ps.Command(`:FORM:ELEM "READ"`); err != nil {
		return 0, err
	}
	return ps.Measure("measure_voltage", unit)
}

// MeasureCurrent measures the output current in the given unit.
func (ps *PowerSupply) MeasureCurrent(unit string) (float64, error) {
	if err := ps.Command(`:FORM:ELEM "READ"`); err != nil {
		return 0, err
	}
	return ps.Measure("measure_current", unit)
}

// Output reports whether the output is on.
func (ps *PowerSupply) Output() (bool, error) {
	return query.Bool(ps.Session, ":OUTP?")
}

// OutputOn turns on the output.
func (ps *PowerSupply) OutputOn() error {
	return ps.SwitchState("output", "ON")
}

// OutputOff turns off the output.
func (ps *PowerSupply) OutputOff() error {
	return ps.SwitchState("output", "OFF")
}
