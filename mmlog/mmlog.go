// Copyright 2022 the System Transparency Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mmlog exposes leveled logging capabilities.
//
// mmlog wraps two loggers and adds log levels to them:
// a standard "log" package logger writing to stderr and another
// using the kernel log via u-root's ulog.
package mmlog

import (
	"os"
)

const (
	prefix   string = "mmio-reg: "
	errorTag string = "[ERROR] "
	warnTag  string = "[WARN]  "
	infoTag  string = "[INFO]  "
	debugTag string = "[DEBUG] "
)

type LogLevel int

const (
	ErrorLevel LogLevel = iota
	WarnLevel
	InfoLevel
	DebugLevel
)

type LogOutput int

const (
	StdError LogOutput = iota
	KernelSyslog
)

//nolint:gochecknoglobals
var stl levelLogger = newStandardLogger(os.Stderr)

type levelLogger interface {
	setLevel(level LogLevel)
	logLevel() LogLevel
	error(format string, v ...interface{})
	warn(format string, v ...interface{})
	info(format string, v ...interface{})
	debug(format string, v ...interface{})
}

// SetOutput sets the package's underlying logger. The current log level
// is kept. If the kernel logger cannot be set up, the standard logger
// stays active and the error is returned.
func SetOutput(o LogOutput) error {
	level := stl.logLevel()

	switch o {
	case KernelSyslog:
		kl, err := newKernelLogger()
		if err != nil {
			return err
		}

		stl = kl
	default:
		stl = newStandardLogger(os.Stderr)
	}

	stl.setLevel(level)

	return nil
}

// SetLevel sets the logging level of mmlog package. Unknown levels
// fall back to DebugLevel.
func SetLevel(l LogLevel) {
	switch l {
	case ErrorLevel, WarnLevel, InfoLevel, DebugLevel:
		stl.setLevel(l)
	default:
		stl.setLevel(DebugLevel)
	}
}

// Level returns the log level currently set.
func Level() LogLevel {
	return stl.logLevel()
}

// ParseLevel maps the command line spelling of a log level to a LogLevel.
// The second return value is false for unknown names.
func ParseLevel(s string) (LogLevel, bool) {
	switch s {
	case "e", "error":
		return ErrorLevel, true
	case "w", "warn":
		return WarnLevel, true
	case "i", "info":
		return InfoLevel, true
	case "d", "debug":
		return DebugLevel, true
	default:
		return WarnLevel, false
	}
}

// Error prints error messages to the currently active logger when permitted
// by the log level. Input can be formatted according to fmt.Printf.
func Error(format string, v ...interface{}) {
	stl.error(format, v...)
}

// Warn prints warning messages to the currently active logger when permitted
// by the log level. Input can be formatted according to fmt.Printf.
func Warn(format string, v ...interface{}) {
	stl.warn(format, v...)
}

// Info prints info messages to the currently active logger when permitted
// by the log level. Input can be formatted according to fmt.Printf.
func Info(format string, v ...interface{}) {
	stl.info(format, v...)
}

// Debug prints debug messages to the currently active logger when permitted
// by the log level. Input can be formatted according to fmt.Printf.
func Debug(format string, v ...interface{}) {
	stl.debug(format, v...)
}
