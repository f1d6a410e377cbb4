package mmlog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/u-root/u-root/pkg/ulog"
)

type fakeKLog struct {
	level         ulog.KLogLevel
	consoleLevels []ulog.KLogLevel
	lines         []string
}

func (k *fakeKLog) SetLogLevel(level ulog.KLogLevel) {
	k.level = level
}

// SetConsoleLogLevel records calls; newKernelLogger must never make one.
func (k *fakeKLog) SetConsoleLogLevel(level ulog.KLogLevel) error {
	k.consoleLevels = append(k.consoleLevels, level)

	return nil
}

func (k *fakeKLog) Print(v ...interface{}) {
	k.lines = append(k.lines, fmt.Sprint(v...))
}

func withFakeKLog(t *testing.T, path string) *fakeKLog {
	t.Helper()

	fake := &fakeKLog{}
	origPath, origLog := kmsgPath, kernelLog

	kmsgPath = path
	kernelLog = func() klogWriter { return fake }

	t.Cleanup(func() {
		kmsgPath, kernelLog = origPath, origLog
	})

	return fake
}

func TestKernelLoggerLeavesConsoleLevel(t *testing.T) {
	kmsg := filepath.Join(t.TempDir(), "kmsg")
	require.NoError(t, os.WriteFile(kmsg, nil, 0o600))

	fake := withFakeKLog(t, kmsg)

	l, err := newKernelLogger()
	require.NoError(t, err)

	assert.Empty(t, fake.consoleLevels)
	assert.Equal(t, ulog.KLogNotice, fake.level)

	l.setLevel(InfoLevel)
	l.info("BAR%d mapped", 0)
	l.debug("hidden")

	require.Len(t, fake.lines, 1)
	assert.True(t, strings.HasPrefix(fake.lines[0], infoTag+prefix))
	assert.Contains(t, fake.lines[0], "BAR0 mapped")
}

func TestKernelLoggerUnwritableKmsg(t *testing.T) {
	fake := withFakeKLog(t, filepath.Join(t.TempDir(), "missing"))

	_, err := newKernelLogger()
	assert.Error(t, err)
	assert.Empty(t, fake.consoleLevels)
}

func TestSetOutputKernelFallback(t *testing.T) {
	saved := stl
	defer func() { stl = saved }()

	withFakeKLog(t, filepath.Join(t.TempDir(), "missing"))

	stl = newStandardLogger(os.Stderr)

	assert.Error(t, SetOutput(KernelSyslog))
	_, isStd := stl.(*standardLogger)
	assert.True(t, isStd)
}
