// Copyright 2022 the System Transparency Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"io"

	"system-transparency.org/mmioreg/mmlog"
	"system-transparency.org/mmioreg/opts"
	"system-transparency.org/mmioreg/pci"
	"system-transparency.org/mmioreg/regfmt"
)

// access runs the resolve, parse, map, access, unmap pipeline for req.
// Read registers are rendered to w after the BAR has been unmapped.
func access(r *pci.Resolver, req opts.Request, format regfmt.Format, w io.Writer) error {
	dev, err := r.Resolve(req.BDF)
	if err != nil {
		return err
	}

	var regs []pci.Register

	err = dev.Access(req.Bar, func(bar *pci.MappedBar) error {
		switch req.Operation {
		case opts.OpRead:
			p := newProgress(req.Count)
			defer p.close()

			got, err := bar.ReadRunFunc(req.Offset, req.Count, p.stepFunc())
			regs = got

			return err
		case opts.OpWrite:
			if err := bar.Write32(req.Offset, req.Value); err != nil {
				return err
			}

			mmlog.Info("%s: BAR%d [0x%08X] <- 0x%08X", dev.Address, req.Bar, req.Offset, req.Value)

			return nil
		default:
			return opts.ErrMissingOperation
		}
	})
	if err != nil {
		return err
	}

	if req.Operation == opts.OpRead {
		return regfmt.Write(w, format, regs)
	}

	return nil
}
