// Copyright (c) 2024–2026 The scpi developers. All rights reserved.
// Project site: https://github.com/gotmc/scpi
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package scpi

import (
	"fmt"
	"math"
)

// Kind identifies a category of physical quantity with its own unit
// enumeration. The zero value Unitless is for plain numerics (counts,
// ratios, seconds) that pass through without conversion.
type Kind int

// Quantity kinds understood by the unit normalizer.
const (
	Unitless Kind = iota
	Frequency
	Power
	Voltage
	Current
)

var kindNames = map[Kind]string{
	Unitless:  "unitless",
	Frequency: "frequency",
	Power:     "power",
	Voltage:   "voltage",
	Current:   "current",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// linearUnits maps, per kind, a case-sensitive unit symbol to its scale
// factor relative to the kind's base unit. Power is absent: dBm is
// logarithmic and handled separately.
var linearUnits = map[Kind]map[string]float64{
	Unitless:  {"": 1},
	Frequency: {"Hz": 1, "kHz": 1e3, "MHz": 1e6, "GHz": 1e9},
	Voltage:   {"V": 1, "mV": 1e-3, "uV": 1e-6},
	Current:   {"A": 1, "mA": 1e-3},
}

// powerUnits holds the recognized power symbols; conversion is logarithmic
// with dBm as the base unit.
var powerUnits = []string{"dBm", "W", "mW"}

// baseUnits maps each kind to the symbol the instrument wire format uses.
var baseUnits = map[Kind]string{
	Unitless:  "",
	Frequency: "Hz",
	Power:     "dBm",
	Voltage:   "V",
	Current:   "A",
}

// BaseUnit returns the canonical wire unit for a quantity kind, e.g. "Hz"
// for Frequency.
func BaseUnit(kind Kind) string { return baseUnits[kind] }

// Units returns the recognized unit symbols for a quantity kind.
func Units(kind Kind) []string {
	if kind == Power {
		return powerUnits
	}
	scales, ok := linearUnits[kind]
	if !ok {
		return nil
	}
	units := make([]string, 0, len(scales))
	for u := range scales {
		units = append(units, u)
	}
	return units
}

// CheckUnit reports whether unit is recognized for kind. Symbols are
// case-sensitive: "GHz" is valid for Frequency, "ghz" is not.
func CheckUnit(unit string, kind Kind) error {
	if kind == Power {
		for _, u := range powerUnits {
			if u == unit {
				return nil
			}
		}
		return &UnitError{Unit: unit, Kind: kind}
	}
	if _, ok := linearUnits[kind][unit]; !ok {
		return &UnitError{Unit: unit, Kind: kind}
	}
	return nil
}

// ToBase converts a magnitude in the given unit to the kind's base unit
// (Hz, dBm, V, A). Unknown units fail with a UnitError before any command
// is sent. Conversions whose result is not a finite number -- a W or mW
// magnitude of zero or less has no dBm representation, and extreme
// magnitudes can overflow the scale factor -- fail with an ArgumentError
// rather than saturate.
func ToBase(magnitude float64, unit string, kind Kind) (float64, error) {
	if err := CheckUnit(unit, kind); err != nil {
		return 0, err
	}
	var base float64
	switch {
	case kind == Power && unit == "dBm":
		base = magnitude
	case kind == Power && unit == "W":
		base = 10 * math.Log10(magnitude*1e3)
	case kind == Power && unit == "mW":
		base = 10 * math.Log10(magnitude)
	default:
		base = magnitude * linearUnits[kind][unit]
	}
	if math.IsInf(base, 0) || math.IsNaN(base) {
		return 0, &ArgumentError{
			Op:     kind.String(),
			Reason: fmt.Sprintf("%g %s has no finite %s representation", magnitude, unit, baseUnits[kind]),
		}
	}
	return base, nil
}

// FromBase converts a magnitude in the kind's base unit to the caller's
// preferred unit, for presenting query results.
func FromBase(base float64, kind Kind, unit string) (float64, error) {
	if err := CheckUnit(unit, kind); err != nil {
		return 0, err
	}
	switch {
	case kind == Power && unit == "dBm":
		return base, nil
	case kind == Power && unit == "W":
		return math.Pow(10, base/10) / 1e3, nil
	case kind == Power && unit == "mW":
		return math.Pow(10, base/10), nil
	}
	return base / linearUnits[kind][unit], nil
}
