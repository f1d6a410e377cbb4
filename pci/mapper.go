// Copyright 2022 the System Transparency Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pci

import (
	"fmt"
	"math"
	"os"

	"github.com/dustin/go-humanize"
	"golang.org/x/sys/unix"
	"system-transparency.org/mmioreg/mmerror"
	"system-transparency.org/mmioreg/mmlog"
)

// Replaced in tests to account for acquired and released mappings.
//
//nolint:gochecknoglobals
var (
	mmap   = unix.Mmap
	munmap = unix.Munmap
)

// MappedBar owns a shared read-write mapping of a BAR and the open
// resource file backing it. It must be released with Close.
type MappedBar struct {
	entry BarEntry
	file  *os.File
	mem   []byte
}

// MapBar opens the resource file of entry and maps exactly entry.Size()
// bytes of it shared and read-write, so stores reach the device.
func (d Device) MapBar(entry BarEntry) (*MappedBar, error) {
	const operation = mmerror.Op("map BAR")

	size := entry.Size()
	if size == 0 || size > math.MaxInt {
		return nil, mmerror.E(mmerror.Mapping, operation, ErrMapping,
			fmt.Sprintf("BAR%d: unsupported size 0x%x", entry.Index, size))
	}

	path := d.File(fmt.Sprintf("%s%d", resourceFile, entry.Index))

	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, mmerror.E(mmerror.Mapping, operation, fmt.Errorf("%w: %w", ErrResourceOpen, err))
	}

	mem, err := mmap(int(f.Fd()), 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.Close()

		return nil, mmerror.E(mmerror.Mapping, operation, fmt.Errorf("%w: %w", ErrMapping, err), path)
	}

	mmlog.Debug("mapped %s (%s)", path, humanize.IBytes(size))

	return &MappedBar{entry: entry, file: f, mem: mem}, nil
}

// Entry returns the resource table entry the mapping was created from.
func (b *MappedBar) Entry() BarEntry {
	return b.entry
}

// Size returns the number of mapped bytes.
func (b *MappedBar) Size() int {
	return len(b.mem)
}

// Close unmaps the BAR and closes its resource file. Calling Close more
// than once is a no-op.
func (b *MappedBar) Close() error {
	const operation = mmerror.Op("unmap BAR")

	if b.file == nil {
		return nil
	}

	unmapErr := munmap(b.mem)
	closeErr := b.file.Close()

	b.mem = nil
	b.file = nil

	if unmapErr != nil {
		return mmerror.E(mmerror.Mapping, operation, unmapErr)
	}

	if closeErr != nil {
		return mmerror.E(mmerror.Mapping, operation, closeErr)
	}

	return nil
}
