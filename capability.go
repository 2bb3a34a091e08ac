// Copyright (c) 2024–2026 The scpi developers. All rights reserved.
// Project site: https://github.com/gotmc/scpi
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package scpi

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Op describes one abstract operation of an instrument model: the SCPI verb
// that encodes it and the argument set it accepts. Quantity operations carry
// a Kind; state operations carry the allowed enum tokens. Min and Max, when
// present, bound the value in base units and are checked before any I/O.
type Op struct {
	Verb  string   `yaml:"verb"`
	Kind  Kind     `yaml:"kind,omitempty"`
	Enums []string `yaml:"enums,omitempty"`
	Min   *float64 `yaml:"min,omitempty"`
	Max   *float64 `yaml:"max,omitempty"`
}

// Capability maps abstract operation names ("frequency", "output", ...) to
// the SCPI verbs and argument sets for one instrument model. It is static
// configuration consumed at session construction, not runtime state. The
// instrument subpackages ship their tables as Go data; tables can also be
// loaded from YAML.
type Capability map[string]Op

// Well-known operation names the session falls back to IEEE 488.2 common
// commands for when a table does not override them.
const (
	opID          = "id"
	opReset       = "reset"
	opSystemError = "system_error"
)

// LoadCapability reads a capability table from YAML. Each entry must carry a
// verb:
//
//	frequency:
//	  verb: FREQ
//	  kind: frequency
//	  min: 1e7
//	  max: 4e10
//	output:
//	  verb: OUTP
//	  enums: [ON, OFF]
func LoadCapability(r io.Reader) (Capability, error) {
	var caps Capability
	if err := yaml.NewDecoder(r).Decode(&caps); err != nil {
		return nil, fmt.Errorf("decoding capability table: %w", err)
	}
	for name, op := range caps {
		if op.Verb == "" {
			return nil, fmt.Errorf("capability %q has no verb", name)
		}
	}
	return caps, nil
}

// LoadCapabilityFile reads a capability table from a YAML file.
func LoadCapabilityFile(path string) (Capability, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadCapability(f)
}

var yamlKinds = map[string]Kind{
	"":          Unitless,
	"unitless":  Unitless,
	"frequency": Frequency,
	"power":     Power,
	"voltage":   Voltage,
	"current":   Current,
}

// UnmarshalYAML decodes a kind from its lower-case name.
func (k *Kind) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	kind, ok := yamlKinds[s]
	if !ok {
		return fmt.Errorf("unknown quantity kind %q", s)
	}
	*k = kind
	return nil
}

// MarshalYAML encodes a kind as its lower-case name.
func (k Kind) MarshalYAML() (interface{}, error) {
	return k.String(), nil
}
