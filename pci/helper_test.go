package pci

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	testAddr    = "0000:01:00.0"
	testBarBase = 0xfb000000
	testBarSize = 0x1000
	memFlags    = 0x00040200
	ioFlags     = 0x00000101
)

type fakeBar struct {
	flags uint64
	size  uint64
	// contents are written to resourceN in host byte order.
	contents []uint32
	// noFile skips creating resourceN.
	noFile bool
}

// newFakeDevice creates a sysfs-like device directory below a temporary
// root and returns a Resolver for that root.
func newFakeDevice(t *testing.T, addr string, bars ...fakeBar) *Resolver {
	t.Helper()

	root := t.TempDir()
	dir := filepath.Join(root, addr)
	require.NoError(t, os.MkdirAll(dir, 0o755))

	var lines []string

	for i, b := range bars {
		if b.size == 0 {
			lines = append(lines, "0x0000000000000000 0x0000000000000000 0x0000000000000000")

			continue
		}

		start := uint64(testBarBase + i*0x100000)
		lines = append(lines, fmt.Sprintf("0x%016x 0x%016x 0x%016x", start, start+b.size-1, b.flags))

		if b.noFile {
			continue
		}

		buf := make([]byte, b.size)
		for j, v := range b.contents {
			binary.NativeEndian.PutUint32(buf[j*4:], v)
		}

		require.NoError(t, os.WriteFile(filepath.Join(dir, fmt.Sprintf("resource%d", i)), buf, 0o600))
	}

	table := strings.Join(lines, "\n") + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "resource"), []byte(table), 0o444))

	return NewResolverWithRoot(root)
}

func resolve(t *testing.T, r *Resolver, addr string) Device {
	t.Helper()

	d, err := r.Resolve(addr)
	require.NoError(t, err)

	return d
}

type mapAccounting struct {
	maps   int
	unmaps int
}

// countMappings wraps mmap and munmap for the duration of the test.
func countMappings(t *testing.T) *mapAccounting {
	t.Helper()

	acc := &mapAccounting{}
	origMmap, origMunmap := mmap, munmap

	mmap = func(fd int, offset int64, length, prot, flags int) ([]byte, error) {
		mem, err := origMmap(fd, offset, length, prot, flags)
		if err == nil {
			acc.maps++
		}

		return mem, err
	}

	munmap = func(b []byte) error {
		acc.unmaps++

		return origMunmap(b)
	}

	t.Cleanup(func() {
		mmap, munmap = origMmap, origMunmap
	})

	return acc
}
