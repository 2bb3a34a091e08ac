// Copyright (c) 2024–2026 The scpi developers. All rights reserved.
// Project site: https://github.com/gotmc/scpi
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package scpi

import (
	"strconv"
	"strings"
)

// ParseNumber strips whitespace and terminators from a raw reply and parses
// it as a float64. SCPI instruments usually answer numeric queries in
// scientific notation, e.g. "+1.234500E+01\n" parses to 12.345.
func ParseNumber(reply string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(reply), 64)
	if err != nil {
		return 0, &ParseError{Text: reply, Want: "number"}
	}
	return v, nil
}

// ParseIdentifier strips surrounding whitespace and quotes from a raw reply
// and returns the literal string. Used for *IDN? and other identification
// queries.
func ParseIdentifier(reply string) string {
	return strings.Trim(strings.TrimSpace(reply), `"'`)
}

// ParseErrorQueue interprets an instrument error-queue entry of the form
//
//	<code>,"<description>"
//
// as drained by a SYST:ERR? query. Code 0 is the "No error" sentinel and
// yields nil. A nonzero code yields a *DeviceError. Replies that do not
// match the format fail with a ParseError.
func ParseErrorQueue(reply string) error {
	code, desc, ok := strings.Cut(strings.TrimSpace(reply), ",")
	if !ok {
		return &ParseError{Text: reply, Want: "error queue entry"}
	}
	n, err := strconv.Atoi(strings.TrimSpace(code))
	if err != nil {
		return &ParseError{Text: reply, Want: "error queue entry"}
	}
	if n == 0 {
		return nil
	}
	return &DeviceError{Code: n, Desc: strings.Trim(strings.TrimSpace(desc), `"`)}
}
