// Copyright (c) 2024–2026 The scpi developers. All rights reserved.
// Project site: https://github.com/gotmc/scpi
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package scpi

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatSet builds a set command, e.g. FormatSet("FREQ", 5e9) returns
// "FREQ 5000000000". Values are rendered fixed-point with the minimum
// number of digits that round-trips a float64, which is what most SCPI
// dialects document for numeric program data. Repeated calls with the same
// input produce byte-identical strings.
func FormatSet(verb string, value float64) string {
	return verb + " " + strconv.FormatFloat(value, 'f', -1, 64)
}

// FormatQuery builds a query from a verb, e.g. FormatQuery("FREQ") returns
// "FREQ?".
func FormatQuery(verb string) string {
	return verb + "?"
}

// FormatEnum builds a command carrying one of a fixed set of tokens, e.g.
// FormatEnum("OUTP", "on", []string{"ON", "OFF"}) returns "OUTP ON". The
// token match is case-insensitive and the canonical token from allowed is
// emitted. An unknown token fails with an ArgumentError and nothing is sent.
func FormatEnum(verb, token string, allowed []string) (string, error) {
	for _, a := range allowed {
		if strings.EqualFold(a, token) {
			return verb + " " + a, nil
		}
	}
	return "", &ArgumentError{
		Op:     verb,
		Reason: fmt.Sprintf("token %q not in %v", token, allowed),
	}
}
