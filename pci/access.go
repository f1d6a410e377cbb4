// Copyright 2022 the System Transparency Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pci

import (
	"fmt"
	"math"
	"sync/atomic"
	"unsafe"

	"system-transparency.org/mmioreg/mmerror"
)

// RegisterSize is the width of a register access in bytes.
const RegisterSize = 4

// Register is the value of a 32-bit register at a byte offset in a BAR.
type Register struct {
	Offset uint32
	Value  uint32
}

func (b *MappedBar) checkRange(op mmerror.Op, offset, count uint32) error {
	end := uint64(offset) + uint64(count)*RegisterSize
	if end > uint64(len(b.mem)) || end > math.MaxUint32+1 {
		return mmerror.E(mmerror.Access, op, ErrOutOfRange,
			fmt.Sprintf("offset 0x%08X count %d, BAR%d size 0x%X", offset, count, b.entry.Index, len(b.mem)))
	}

	return nil
}

// reg returns the register at offset. The atomic accessors used on it
// guarantee a single 32-bit load or store.
func (b *MappedBar) reg(offset uint32) *uint32 {
	return (*uint32)(unsafe.Pointer(&b.mem[offset]))
}

// Read32 reads the register at offset.
//
// offset should be a multiple of 4. Alignment is not checked: a misaligned
// offset works on amd64 but is a fatal, unrecoverable fault on
// strict-alignment targets such as arm64.
func (b *MappedBar) Read32(offset uint32) (uint32, error) {
	if err := b.checkRange("read register", offset, 1); err != nil {
		return 0, err
	}

	return atomic.LoadUint32(b.reg(offset)), nil
}

// Write32 stores value into the register at offset. The alignment
// caveat of Read32 applies.
func (b *MappedBar) Write32(offset, value uint32) error {
	if err := b.checkRange("write register", offset, 1); err != nil {
		return err
	}

	atomic.StoreUint32(b.reg(offset), value)

	return nil
}

// ReadRun reads count consecutive registers starting at offset, in
// ascending offset order. The whole run is range checked before the
// first register is touched. The alignment caveat of Read32 applies.
func (b *MappedBar) ReadRun(offset, count uint32) ([]Register, error) {
	return b.ReadRunFunc(offset, count, nil)
}

// ReadRunFunc is ReadRun with a callback invoked after every register,
// e.g. to report progress on long runs. progress may be nil.
func (b *MappedBar) ReadRunFunc(offset, count uint32, progress func(Register)) ([]Register, error) {
	if err := b.checkRange("read registers", offset, count); err != nil {
		return nil, err
	}

	regs := make([]Register, 0, count)

	for i := uint32(0); i < count; i++ {
		off := offset + i*RegisterSize
		r := Register{Offset: off, Value: atomic.LoadUint32(b.reg(off))}
		regs = append(regs, r)

		if progress != nil {
			progress(r)
		}
	}

	return regs, nil
}

// Access resolves BAR index of the device, maps it, and runs fn on the
// mapping. The mapping is released on every path, the first error wins.
func (d Device) Access(index int, fn func(*MappedBar) error) (err error) {
	entry, err := d.Bar(index)
	if err != nil {
		return err
	}

	bar, err := d.MapBar(entry)
	if err != nil {
		return err
	}

	defer func() {
		if cerr := bar.Close(); err == nil {
			err = cerr
		}
	}()

	return fn(bar)
}
