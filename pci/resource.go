// Copyright 2022 the System Transparency Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pci

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"system-transparency.org/mmioreg/mmerror"
	"system-transparency.org/mmioreg/mmlog"
)

// MaxBars is the number of BARs a PCI function can have.
const MaxBars = 6

// Resource flags as found in the third column of the resource table.
const (
	IOResourceIO  uint64 = 0x00000100
	IOResourceMem uint64 = 0x00000200
)

const resourceFile = "resource"

// BarEntry is one line of a device's resource table.
type BarEntry struct {
	Index int
	Start uint64
	End   uint64
	Flags uint64
}

// Size returns the length of the BAR in bytes.
func (b BarEntry) Size() uint64 {
	return b.End - b.Start + 1
}

// IsMemory reports whether the BAR is a memory resource.
func (b BarEntry) IsMemory() bool {
	return b.Flags&IOResourceMem == IOResourceMem
}

// IsIO reports whether the BAR is an I/O port resource.
func (b BarEntry) IsIO() bool {
	return b.Flags&IOResourceIO == IOResourceIO
}

// String implements fmt.Stringer.
func (b BarEntry) String() string {
	kind := "io"
	if b.IsMemory() {
		kind = "mem"
	}

	return fmt.Sprintf("BAR%d: %s at 0x%x, size %s", b.Index, kind, b.Start, humanize.IBytes(b.Size()))
}

// ParseResourceLine parses a resource table line of the form
// "0xSTART 0xEND 0xFLAGS" describing BAR index.
func ParseResourceLine(index int, line string) (BarEntry, error) {
	const operation = mmerror.Op("parse resource line")

	fields := strings.Fields(line)
	if len(fields) != 3 {
		return BarEntry{}, mmerror.E(mmerror.Resource, operation, ErrResourceParse,
			fmt.Sprintf("BAR%d: want 3 fields, got %d", index, len(fields)))
	}

	var vals [3]uint64

	for i, f := range fields {
		if !strings.HasPrefix(f, "0x") {
			return BarEntry{}, mmerror.E(mmerror.Resource, operation, ErrResourceParse,
				fmt.Sprintf("BAR%d: %q is not a 0x prefixed hex number", index, f))
		}

		v, err := strconv.ParseUint(f[2:], 16, 64)
		if err != nil {
			return BarEntry{}, mmerror.E(mmerror.Resource, operation, ErrResourceParse,
				fmt.Sprintf("BAR%d: %v", index, err))
		}

		vals[i] = v
	}

	if vals[1] < vals[0] {
		return BarEntry{}, mmerror.E(mmerror.Resource, operation, ErrResourceParse,
			fmt.Sprintf("BAR%d: end 0x%x below start 0x%x", index, vals[1], vals[0]))
	}

	return BarEntry{Index: index, Start: vals[0], End: vals[1], Flags: vals[2]}, nil
}

// Bar reads the device's resource table and returns the entry of BAR index.
// Only memory BARs are returned, I/O port BARs yield ErrNotMemoryMapped.
func (d Device) Bar(index int) (BarEntry, error) {
	const operation = mmerror.Op("read resource table")

	if index < 0 || index >= MaxBars {
		return BarEntry{}, mmerror.E(mmerror.Resource, operation, ErrInvalidBarIndex, fmt.Sprintf("BAR%d", index))
	}

	path := d.File(resourceFile)

	f, err := os.Open(path)
	if err != nil {
		return BarEntry{}, mmerror.E(mmerror.Resource, operation, fmt.Errorf("%w: %w", ErrDeviceNotFound, err))
	}
	defer f.Close()

	var (
		line  string
		lines int
	)

	scanner := bufio.NewScanner(f)
	for lines <= index && scanner.Scan() {
		line = scanner.Text()
		lines++
	}

	if err := scanner.Err(); err != nil {
		return BarEntry{}, mmerror.E(mmerror.Resource, operation, fmt.Errorf("%w: %w", ErrResourceParse, err))
	}

	if lines <= index {
		return BarEntry{}, mmerror.E(mmerror.Resource, operation, ErrResourceParse,
			fmt.Sprintf("%s has no line for BAR%d", path, index))
	}

	entry, err := ParseResourceLine(index, line)
	if err != nil {
		return BarEntry{}, err
	}

	if !entry.IsMemory() {
		return BarEntry{}, mmerror.E(mmerror.Resource, operation, ErrNotMemoryMapped,
			fmt.Sprintf("BAR%d flags 0x%08x", index, entry.Flags))
	}

	mmlog.Debug("%s: %s", d.Address, entry)

	return entry, nil
}
