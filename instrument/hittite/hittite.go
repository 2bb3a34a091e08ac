// Copyright (c) 2024–2026 The scpi developers. All rights reserved.
// Project site: https://github.com/gotmc/scpi
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

// Package hittite controls Hittite HMC-T2200 family signal generators.
//
// Tested against an HMC-T2240; some commands may differ for other models.
// SCPI command reference: HMC-T2200 Family Programmer's Guide 131547.
package hittite

import (
	"time"

	"github.com/gotmc/scpi"
	"github.com/gotmc/scpi/driver/lan"
)

func f(v float64) *float64 { return &v }

// Table maps the HMC-T2240 operation set to its SCPI verbs. The frequency
// bounds are the instrument's documented 10 MHz to 40 GHz operating range.
var Table = scpi.Capability{
	"frequency":   {Verb: "FREQ", Kind: scpi.Frequency, Min: f(10e6), Max: f(40e9)},
	"power":       {Verb: "POW", Kind: scpi.Power, Min: f(-60), Max: f(30)},
	"output":      {Verb: "OUTP", Enums: []string{"ON", "OFF"}},
	"sweep_start": {Verb: "FREQ:STAR", Kind: scpi.Frequency},
	"sweep_stop":  {Verb: "FREQ:STOP", Kind: scpi.Frequency},
	"sweep_step":  {Verb: "FREQ:STEP", Kind: scpi.Frequency},
	"sweep_dwell": {Verb: "SWE:DWEL"},
	"continuous":  {Verb: "INIT:CONT", Enums: []string{"ON", "OFF"}},
}

// SignalGenerator is a Hittite HMC-T2200 family signal generator.
type SignalGenerator struct {
	*scpi.Session
}

// New wraps an open device link.
func New(dev scpi.Device, opts ...scpi.SessionOption) (*SignalGenerator, error) {
	s, err := scpi.NewSession(dev, Table, opts...)
	if err != nil {
		return nil, err
	}
	return &SignalGenerator{Session: s}, nil
}

// Dial connects to the signal generator at addr over the LAN.
func Dial(addr string, opts ...scpi.SessionOption) (*SignalGenerator, error) {
	dev, err := lan.New(addr)
	if err != nil {
		return nil, err
	}
	return New(dev, opts...)
}

// SetFrequency sets the output frequency, e.g. SetFrequency(5, "GHz").
func (sg *SignalGenerator) SetFrequency(freq float64, unit string) error {
	return sg.Set("frequency", freq, unit)
}

// Frequency returns the output frequency in the given unit.
func (sg *SignalGenerator) Frequency(unit string) (float64, error) {
	return sg.Measure("frequency", unit)
}

// SetPower sets the output power, e.g. SetPower(-38, "dBm").
func (sg *SignalGenerator) SetPower(power float64, unit string) error {
	return sg.Set("power", power, unit)
}

// Power returns the output power in the given unit.
func (sg *SignalGenerator) Power(unit string) (float64, error) {
	return sg.Measure("power", unit)
}

// RFOn enables the RF output.
func (sg *SignalGenerator) RFOn() error {
	return sg.SwitchState("output", "ON")
}

// RFOff disables the RF output.
func (sg *SignalGenerator) RFOff() error {
	return sg.SwitchState("output", "OFF")
}

// StartSweep configures and starts a continuous frequency sweep from start
// to stop in the given unit, stepping by step and dwelling at each point for
// dwell. Stop it with StopSweep.
func (sg *SignalGenerator) StartSweep(start, stop, step float64, unit string, dwell time.Duration) error {
	if err := sg.Set("sweep_start", start, unit); err != nil {
		return err
	}
	if err := sg.Set("sweep_stop", stop, unit); err != nil {
		return err
	}
	if err := sg.Set("sweep_step", step, unit); err != nil {
		return err
	}
	if err := sg.SetValue("sweep_dwell", dwell.Seconds()); err != nil {
		return err
	}
	if err := sg.Command("FREQ:MODE SWE"); err != nil {
		return err
	}
	return sg.SwitchState("continuous", "ON")
}

// StopSweep stops a running frequency sweep.
func (sg *SignalGenerator) StopSweep() error {
	return sg.SwitchState("continuous", "OFF")
}
