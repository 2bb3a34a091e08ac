// Copyright (c) 2024–2026 The scpi developers. All rights reserved.
// Project site: https://github.com/gotmc/scpi
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

// Package microlambda controls Micro Lambda Wireless MLBF bench test YIG
// filters and MLSP synthesizers.
//
// These instruments speak their own terse register dialect over a telnet
// port rather than SCPI: frequencies are set with "F<MHz>" and identity
// data is read from numbered registers ("R0000" .. "R0004"). None of the
// commands carry the SCPI "?" query marker, so queries are issued as a raw
// send followed by a receive.
package microlambda

import (
	"fmt"

	"github.com/gotmc/scpi"
	"github.com/gotmc/scpi/driver/lan"
)

// telnetPort is the only port the MLBF listens on.
const telnetPort = 23

// maxBannerLines bounds how many greeting lines are drained at connect.
const maxBannerLines = 8

// YIGFilter is a Micro Lambda MLBF series bench test filter.
type YIGFilter struct {
	*scpi.Session
	// freqDigits is the fractional precision of the F command: the MLBF
	// tunes to 1 kHz (3 digits of MHz), the MLSP synthesizer to 1 mHz (6).
	freqDigits int
}

// New wraps an open device link, draining the instrument's greeting banner.
func New(dev scpi.Device, opts ...scpi.SessionOption) (*YIGFilter, error) {
	opts = append([]scpi.SessionOption{
		scpi.WithTerminators("\r\n", '\n'),
		scpi.WithReplyTrim("> "),
	}, opts...)
	s, err := scpi.NewSession(dev, scpi.Capability{}, opts...)
	if err != nil {
		return nil, err
	}
	yf := &YIGFilter{Session: s, freqDigits: 3}
	if err := yf.drainBanner(); err != nil {
		s.Close()
		return nil, err
	}
	return yf, nil
}

// Dial connects to the filter at addr on the telnet port.
func Dial(addr string, opts ...scpi.SessionOption) (*YIGFilter, error) {
	dev, err := lan.New(addr, lan.WithPort(telnetPort))
	if err != nil {
		return nil, err
	}
	return New(dev, opts...)
}

// Synthesizer is a Micro Lambda MLSP series synthesizer. It shares the MLBF
// dialect but tunes with 1 mHz resolution.
type Synthesizer struct {
	YIGFilter
}

// NewSynthesizer wraps an open device link to an MLSP synthesizer.
func NewSynthesizer(dev scpi.Device, opts ...scpi.SessionOption) (*Synthesizer, error) {
	yf, err := New(dev, opts...)
	if err != nil {
		return nil, err
	}
	yf.freqDigits = 6
	return &Synthesizer{YIGFilter: *yf}, nil
}

// SetFrequency tunes the filter, e.g. SetFrequency(6.5, "GHz"). The wire
// format wants MHz.
func (yf *YIGFilter) SetFrequency(freq float64, unit string) error {
	hz, err := scpi.ToBase(freq, unit, scpi.Frequency)
	if err != nil {
		return err
	}
	return yf.Command("F%.*f", yf.freqDigits, hz/1e6)
}

// ID assembles an identification string from the instrument's model, serial
// number, firmware, and tuning range registers.
func (yf *YIGFilter) ID() (string, error) {
	regs := make([]string, 5)
	for i := range regs {
		r, err := yf.Query(fmt.Sprintf("R%04d", i))
		if err != nil {
			return "", err
		}
		regs[i] = r
	}
	fmin, err := scpi.ParseNumber(regs[3])
	if err != nil {
		return "", err
	}
	fmax, err := scpi.ParseNumber(regs[4])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Micro Lambda Wireless Inc. %s %s %s (%.0f to %.0f GHz)",
		regs[0], regs[1], regs[2], fmin/1e3, fmax/1e3), nil
}

// drainBanner reads the greeting lines the instrument emits at connect,
// stopping at the first timeout.
func (yf *YIGFilter) drainBanner() error {
	for i := 0; i < maxBannerLines; i++ {
		if _, err := yf.Receive(); err != nil {
			if scpi.IsTimeout(err) {
				return nil
			}
			return err
		}
	}
	return nil
}
