// Copyright 2022 the System Transparency Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mmerror tags errors of mmio-reg with the pipeline stage and the
// operation that failed, so a single line tells which of address
// resolution, resource table parsing, BAR mapping or register access went
// wrong. Errors are built with E().
package mmerror

import (
	"errors"
	"strings"
)

// Op names the failed step, e.g. "map BAR".
type Op string

// Scope is the pipeline stage an error belongs to.
type Scope string

// Pipeline stages, plus the command line and logging setup.
const (
	Device   Scope = "Device address"
	Resource Scope = "Resource table"
	Mapping  Scope = "BAR mapping"
	Access   Scope = "Register access"
	Opts     Scope = "Opts"
	Mmlog    Scope = "Mmlog"
)

// Error is a stage-tagged error. Unset fields are left out of the message.
type Error struct {
	Op    Op
	Scope Scope
	// Err is the cause, reachable through errors.Is and errors.As.
	Err error
	// Info is free text, e.g. the offending BAR or path.
	Info string
}

// Error renders "scope: op - info: cause", skipping unset parts.
func (e Error) Error() string {
	parts := make([]string, 0, 3)

	if e.Scope != "" {
		parts = append(parts, string(e.Scope))
	}

	step := string(e.Op)

	switch {
	case step != "" && e.Info != "":
		step += " - " + e.Info
	case step == "":
		step = e.Info
	}

	if step != "" {
		parts = append(parts, step)
	}

	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}

	return strings.Join(parts, ": ")
}

// Unwrap returns the cause.
func (e Error) Unwrap() error {
	return e.Err
}

// E builds an Error, picking each field by argument type: Op, Scope,
// error for the cause and string for Info. A later argument of the same
// type overrides an earlier one, other types are dropped. Without
// arguments the Info is "unspecified".
func E(args ...interface{}) Error {
	if len(args) == 0 {
		return Error{Info: "unspecified"}
	}

	var e Error

	for _, arg := range args {
		switch v := arg.(type) {
		case Op:
			e.Op = v
		case Scope:
			e.Scope = v
		case error:
			e.Err = v
		case string:
			e.Info = v
		}
	}

	return e
}

// Equal reports whether got and want carry the same stage, step and info
// and wrap equal causes. Nested Errors are compared field by field, other
// causes with errors.Is.
func Equal(got, want Error) bool {
	if got.Scope != want.Scope || got.Op != want.Op || got.Info != want.Info {
		return false
	}

	gotNested, gotOk := got.Err.(Error)
	wantNested, wantOk := want.Err.(Error)

	switch {
	case gotOk && wantOk:
		return Equal(gotNested, wantNested)
	case gotOk != wantOk:
		return false
	default:
		return errors.Is(got.Err, want.Err)
	}
}
