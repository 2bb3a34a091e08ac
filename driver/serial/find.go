// Copyright (c) 2024–2026 The scpi developers. All rights reserved.
// Project site: https://github.com/gotmc/scpi
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package serial

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// PortInfo describes a USB serial adapter found on the host.
type PortInfo struct {
	Device       string // device name, e.g. "ttyUSB0"
	Manufacturer string
	Product      string
	Serial       string
}

func (pi PortInfo) String() string {
	return fmt.Sprintf("%s: %s %s (serial %s)", pi.Device, pi.Manufacturer, pi.Product, pi.Serial)
}

// Find returns the device path of the single USB serial adapter matching the
// filter, e.g. the FTDI cable a GPIB-to-serial bridge hangs off. It fails
// when no adapter, or more than one, matches.
func Find(match func(PortInfo) bool) (string, error) {
	ports, err := List()
	if err != nil {
		return "", err
	}
	var hits []PortInfo
	for _, pi := range ports {
		if match == nil || match(pi) {
			hits = append(hits, pi)
		}
	}
	switch len(hits) {
	case 0:
		return "", errors.New("no matching serial port found")
	case 1:
		return "/dev/" + hits[0].Device, nil
	}
	return "", fmt.Errorf("multiple matching serial ports: %v", hits)
}

// BySerial matches an adapter by its USB serial number string.
func BySerial(serial string) func(PortInfo) bool {
	return func(pi PortInfo) bool { return pi.Serial == serial }
}

// List enumerates USB serial adapters by walking /sys/class/tty, which is
// where Linux exposes the USB descriptor strings for each tty.
func List() ([]PortInfo, error) {
	const sysTTY = "/sys/class/tty"
	entries, err := os.ReadDir(sysTTY)
	if err != nil {
		return nil, err
	}
	var ports []PortInfo
	for _, e := range entries {
		if e.Type()&fs.ModeSymlink == 0 {
			continue
		}
		abs, err := filepath.EvalSymlinks(filepath.Join(sysTTY, e.Name()))
		if err != nil || !strings.Contains(abs, "usb") {
			continue
		}
		dev, err := filepath.EvalSymlinks(filepath.Join(abs, "device"))
		if err != nil {
			continue
		}
		// The USB descriptor strings live one level above the interface dir.
		info := filepath.Dir(dev)
		ports = append(ports, PortInfo{
			Device:       e.Name(),
			Manufacturer: sysString(info, "manufacturer"),
			Product:      sysString(info, "product"),
			Serial:       sysString(info, "serial"),
		})
	}
	return ports, nil
}

func sysString(dir, name string) string {
	b, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}
