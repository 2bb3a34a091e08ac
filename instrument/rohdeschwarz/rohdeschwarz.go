// Copyright (c) 2024–2026 The scpi developers. All rights reserved.
// Project site: https://github.com/gotmc/scpi
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

// Package rohdeschwarz controls Rohde & Schwarz FSV/FSVA spectrum
// analyzers.
//
// Tested against an FSVA-40. Trace transfer uses the instrument's binary
// block format and is deliberately not implemented here; only scalar marker
// readout is provided.
package rohdeschwarz

import (
	"github.com/gotmc/query"
	"github.com/gotmc/scpi"
	"github.com/gotmc/scpi/driver/lan"
)

func f(v float64) *float64 { return &v }

// Table maps the FSVA-40 operation set to its SCPI verbs. Frequency bounds
// cover the instrument's 10 Hz to 40 GHz span.
var Table = scpi.Capability{
	"center_frequency": {Verb: "FREQ:CENT", Kind: scpi.Frequency, Min: f(10), Max: f(40e9)},
	"start_frequency":  {Verb: "FREQ:STAR", Kind: scpi.Frequency},
	"stop_frequency":   {Verb: "FREQ:STOP", Kind: scpi.Frequency},
	"span":             {Verb: "FREQ:SPAN", Kind: scpi.Frequency},
	"rbw":              {Verb: "BAND:RES", Kind: scpi.Frequency},
	"vbw":              {Verb: "BAND:VID", Kind: scpi.Frequency},
	"rbw_auto":         {Verb: "BAND:RES:AUTO", Enums: []string{"ON", "OFF"}},
	"vbw_auto":         {Verb: "BAND:VID:AUTO", Enums: []string{"ON", "OFF"}},
	"bw_ratio":         {Verb: "BAND:VID:RAT"},
	"continuous_sweep": {Verb: "SWE:CONT", Enums: []string{"ON", "OFF"}},
	"average_state":    {Verb: "AVER:STAT", Enums: []string{"ON", "OFF"}},
	"average_count":    {Verb: "AVER:COUN"},
	"average_type":     {Verb: "AVER:TYPE", Enums: []string{"POWER", "VIDEO", "LINEAR"}},
	"marker":           {Verb: "CALC:MARK1", Enums: []string{"ON", "OFF"}},
	"marker_frequency": {Verb: "CALC:MARK1:X", Kind: scpi.Frequency},
	"marker_level":     {Verb: "CALC:MARK1:Y", Kind: scpi.Power},
	"marker_peak":      {Verb: "CALC:MARK1:MAX:AUTO", Enums: []string{"ON", "OFF"}},
}

// SpectrumAnalyzer is a Rohde & Schwarz FSV/FSVA spectrum analyzer.
type SpectrumAnalyzer struct {
	*scpi.Session
}

// New wraps an open device link.
func New(dev scpi.Device, opts ...scpi.SessionOption) (*SpectrumAnalyzer, error) {
	s, err := scpi.NewSession(dev, Table, opts...)
	if err != nil {
		return nil, err
	}
	return &SpectrumAnalyzer{Session: s}, nil
}

// Dial connects to the analyzer at addr over the LAN.
func Dial(addr string, opts ...scpi.SessionOption) (*SpectrumAnalyzer, error) {
	dev, err := lan.New(addr)
	if err != nil {
		return nil, err
	}
	return New(dev, opts...)
}

// SetCenterFrequency sets the center frequency of the displayed span.
func (sa *SpectrumAnalyzer) SetCenterFrequency(freq float64, unit string) error {
	return sa.Set("center_frequency", freq, unit)
}

// SetStartFrequency sets the lower edge of the displayed span.
func (sa *SpectrumAnalyzer) SetStartFrequency(freq float64, unit string) error {
	return sa.Set("start_frequency", freq, unit)
}

// SetStopFrequency sets the upper edge of the displayed span.
func (sa *SpectrumAnalyzer) SetStopFrequency(freq float64, unit string) error {
	return sa.Set("stop_frequency", freq, unit)
}

// SetSpan sets the displayed frequency span.
func (sa *SpectrumAnalyzer) SetSpan(freq float64, unit string) error {
	return sa.Set("span", freq, unit)
}

// SetRBW sets the resolution bandwidth.
func (sa *SpectrumAnalyzer) SetRBW(freq float64, unit string) error {
	return sa.Set("rbw", freq, unit)
}

// SetVBW sets the video bandwidth.
func (sa *SpectrumAnalyzer) SetVBW(freq float64, unit string) error {
	return sa.Set("vbw", freq, unit)
}

// RBWAuto couples the resolution bandwidth to the span.
func (sa *SpectrumAnalyzer) RBWAuto(on bool) error {
	return sa.SwitchState("rbw_auto", onOff(on))
}

// VBWAuto couples the video bandwidth to the resolution bandwidth.
func (sa *SpectrumAnalyzer) VBWAuto(on bool) error {
	return sa.SwitchState("vbw_auto", onOff(on))
}

// SetBWRatio sets the video to resolution bandwidth ratio 1/ratio.
func (sa *SpectrumAnalyzer) SetBWRatio(ratio float64) error {
	return sa.SetValue("bw_ratio", 1/ratio)
}

// SingleSweep selects single-sweep mode.
func (sa *SpectrumAnalyzer) SingleSweep() error {
	return sa.SwitchState("continuous_sweep", "OFF")
}

// ContinuousSweep selects continuous-sweep mode.
func (sa *SpectrumAnalyzer) ContinuousSweep() error {
	return sa.SwitchState("continuous_sweep", "ON")
}

// StartAndWait starts a sweep and blocks until the instrument reports
// completion via *OPC?.
func (sa *SpectrumAnalyzer) StartAndWait() error {
	if err := sa.Command("INIT"); err != nil {
		return err
	}
	_, err := sa.Query("*OPC?")
	return err
}

// Averaging enables trace averaging over count sweeps.
func (sa *SpectrumAnalyzer) Averaging(count int) error {
	if err := sa.SetValue("average_count", float64(count)); err != nil {
		return err
	}
	return sa.SwitchState("average_state", "ON")
}

// AveragingOff disables trace averaging.
func (sa *SpectrumAnalyzer) AveragingOff() error {
	return sa.SwitchState("average_state", "OFF")
}

// SetAveragingType selects the averaging detector: POWER, VIDEO, or LINEAR.
func (sa *SpectrumAnalyzer) SetAveragingType(typ string) error {
	return sa.SwitchState("average_type", typ)
}

// Marker turns marker 1 on or off.
func (sa *SpectrumAnalyzer) Marker(on bool) error {
	return sa.SwitchState("marker", onOff(on))
}

// SetMarkerFrequency places marker 1 at the given frequency.
func (sa *SpectrumAnalyzer) SetMarkerFrequency(freq float64, unit string) error {
	return sa.Set("marker_frequency", freq, unit)
}

// MarkerLevel returns the level at marker 1 in the given unit.
func (sa *SpectrumAnalyzer) MarkerLevel(unit string) (float64, error) {
	return sa.Measure("marker_level", unit)
}

// MarkerPeakSearch turns automatic peak search for marker 1 on or off.
func (sa *SpectrumAnalyzer) MarkerPeakSearch(on bool) error {
	return sa.SwitchState("marker_peak", onOff(on))
}

// SweepPoints returns the number of sweep points per trace.
func (sa *SpectrumAnalyzer) SweepPoints() (int, error) {
	return query.Int(sa.Session, "SWE:POIN?")
}

func onOff(on bool) string {
	if on {
		return "ON"
	}
	return "OFF"
}
