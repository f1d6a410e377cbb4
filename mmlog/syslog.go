// Copyright 2022 the System Transparency Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mmlog

import (
	"fmt"

	"github.com/u-root/u-root/pkg/ulog"
	"golang.org/x/sys/unix"
	"system-transparency.org/mmioreg/mmerror"
)

// klogWriter is the part of ulog.KLog used here. The console log level
// of the host is never touched.
type klogWriter interface {
	SetLogLevel(level ulog.KLogLevel)
	Print(v ...interface{})
}

// Replaced in tests.
//
//nolint:gochecknoglobals
var (
	kmsgPath  = "/dev/kmsg"
	kernelLog = func() klogWriter { return ulog.KernelLog }
)

type kernelLogger struct {
	out   klogWriter
	level LogLevel
}

func newKernelLogger() (*kernelLogger, error) {
	const operation = mmerror.Op("init kernel log")

	if err := unix.Access(kmsgPath, unix.W_OK); err != nil {
		return nil, mmerror.E(mmerror.Mmlog, operation, err, kmsgPath)
	}

	klog := kernelLog()
	klog.SetLogLevel(ulog.KLogNotice)

	return &kernelLogger{
		out:   klog,
		level: WarnLevel,
	}, nil
}

func (l *kernelLogger) setLevel(level LogLevel) {
	l.level = level
}

func (l *kernelLogger) logLevel() LogLevel {
	return l.level
}

func (l *kernelLogger) print(level LogLevel, tag, format string, v ...interface{}) {
	if l.level >= level {
		l.out.Print(tag + prefix + fmt.Sprintf(format, v...))
	}
}

func (l *kernelLogger) error(format string, v ...interface{}) {
	l.print(ErrorLevel, errorTag, format, v...)
}

func (l *kernelLogger) warn(format string, v ...interface{}) {
	l.print(WarnLevel, warnTag, format, v...)
}

func (l *kernelLogger) info(format string, v ...interface{}) {
	l.print(InfoLevel, infoTag, format, v...)
}

func (l *kernelLogger) debug(format string, v ...interface{}) {
	l.print(DebugLevel, debugTag, format, v...)
}
