// Copyright 2022 the System Transparency Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package opts builds and validates the register access request passed
// from the command line to the BAR access pipeline.
package opts

import (
	"fmt"
)

const (
	// MaxBDFLen bounds the length of a device address, SSSS:BB:DD.F has 12.
	MaxBDFLen = 15
	// MaxBars is the number of BARs of a PCI function.
	MaxBars = 6
	// MaxCount is the largest number of registers read at once.
	MaxCount = 0x100000
)

// Operation selects between reading and writing registers.
type Operation int

const (
	OpUnset Operation = iota
	OpRead
	OpWrite
)

// String implements fmt.Stringer.
func (o Operation) String() string {
	switch o {
	case OpRead:
		return "READ"
	case OpWrite:
		return "WRITE"
	default:
		return "unset"
	}
}

// Request describes one register access. Count is only meaningful for
// OpRead, Value only for OpWrite.
type Request struct {
	Operation Operation
	BDF       string
	Bar       int
	Offset    uint32
	Count     uint32
	Value     uint32
}

// String implements fmt.Stringer.
func (r Request) String() string {
	switch r.Operation {
	case OpRead:
		return fmt.Sprintf("READ, offset [0x%08X], count [%d], BAR number [%d], BDF [%s].", r.Offset, r.Count, r.Bar, r.BDF)
	case OpWrite:
		return fmt.Sprintf("WRITE, offset [0x%08X], value [0x%08X], BAR number [%d], BDF [%s].", r.Offset, r.Value, r.Bar, r.BDF)
	default:
		return fmt.Sprintf("%s, BAR number [%d], BDF [%s].", r.Operation, r.Bar, r.BDF)
	}
}

// Loader fills particular fields of a Request depending on its source.
type Loader func(*Request) error

// NewRequest returns a Request initialized by the provided Loaders and
// validated with RequestValidation.
func NewRequest(loaders ...Loader) (Request, error) {
	var req Request

	for _, l := range loaders {
		if err := l(&req); err != nil {
			return Request{}, err
		}
	}

	if err := RequestValidation().Validate(&req); err != nil {
		return Request{}, err
	}

	return req, nil
}

// WithBDF sets the device address.
func WithBDF(bdf string) Loader {
	return func(r *Request) error {
		r.BDF = bdf

		return nil
	}
}

// WithBar sets the BAR index, given in decimal or 0x prefixed hex.
func WithBar(index string) Loader {
	return func(r *Request) error {
		v, err := parseUint32(index, 0)
		if err != nil {
			return err
		}

		if v >= MaxBars {
			return ErrBarIndex
		}

		r.Bar = int(v)

		return nil
	}
}

// WithRead selects a read of count registers at offset. offset is hex,
// count decimal or 0x prefixed hex and defaults to 1 if empty.
func WithRead(offset, count string) Loader {
	return func(r *Request) error {
		if r.Operation != OpUnset {
			return ErrConflictingOperation
		}

		off, err := parseHex32(offset)
		if err != nil {
			return err
		}

		n := uint32(1)
		if count != "" {
			if n, err = parseUint32(count, 0); err != nil {
				return err
			}
		}

		r.Operation = OpRead
		r.Offset = off
		r.Count = n

		return nil
	}
}

// WithWrite selects a write of value to the register at offset.
// Both are hex.
func WithWrite(offset, value string) Loader {
	return func(r *Request) error {
		if r.Operation != OpUnset {
			return ErrConflictingOperation
		}

		if value == "" {
			return ErrMissingValue
		}

		off, err := parseHex32(offset)
		if err != nil {
			return err
		}

		v, err := parseHex32(value)
		if err != nil {
			return err
		}

		r.Operation = OpWrite
		r.Offset = off
		r.Value = v

		return nil
	}
}
