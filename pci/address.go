// Copyright 2022 the System Transparency Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pci resolves PCI device addresses to their sysfs resource
// directory, parses the BAR resource table, maps memory BARs and accesses
// 32-bit registers inside them.
//
// Nothing in this package coordinates with other processes mapping the
// same BAR. The device itself is the only synchronization point.
package pci

import (
	"fmt"
	"path/filepath"
	"strings"

	"system-transparency.org/mmioreg/mmerror"
)

// SysfsRoot is the directory holding one entry per PCI device.
const SysfsRoot = "/sys/bus/pci/devices"

const defaultDomain = "0000:"

// Resolver turns device addresses into Devices below a sysfs root.
type Resolver struct {
	root string
}

// NewResolver returns a Resolver for the host's sysfs.
func NewResolver() *Resolver {
	return &Resolver{root: SysfsRoot}
}

// NewResolverWithRoot returns a Resolver using root instead of SysfsRoot.
func NewResolverWithRoot(root string) *Resolver {
	return &Resolver{root: root}
}

// Device is a resolved PCI device.
type Device struct {
	// Address is the normalized SSSS:BB:DD.F form.
	Address string
	// Path is the device's resource directory.
	Path string
}

// Resolve normalizes addr, given as SSSS:BB:DD.F or BB:DD.F, and returns
// the matching Device. It only validates the shape of addr, the device
// directory is not touched.
func (r *Resolver) Resolve(addr string) (Device, error) {
	const operation = mmerror.Op("resolve device address")

	if strings.Count(addr, ".") != 1 || strings.ContainsRune(addr, filepath.Separator) {
		return Device{}, mmerror.E(mmerror.Device, operation, ErrInvalidAddressFormat, fmt.Sprintf("%q", addr))
	}

	var normalized string

	switch strings.Count(addr, ":") {
	case 2:
		normalized = addr
	case 1:
		normalized = defaultDomain + addr
	default:
		return Device{}, mmerror.E(mmerror.Device, operation, ErrInvalidAddressFormat, fmt.Sprintf("%q", addr))
	}

	return Device{
		Address: normalized,
		Path:    filepath.Join(r.root, normalized),
	}, nil
}

// File returns the path of name inside the device directory.
func (d Device) File(name string) string {
	return filepath.Join(d.Path, name)
}
