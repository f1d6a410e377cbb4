package pci

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestResolve(t *testing.T) {
	r := NewResolverWithRoot("/nonexistent/sysfs")

	for _, tt := range []struct {
		name string
		addr string
		want string
	}{
		{name: "full form", addr: "0000:01:00.0", want: "0000:01:00.0"},
		{name: "full form other domain", addr: "0001:3b:00.1", want: "0001:3b:00.1"},
		{name: "short form", addr: "01:00.0", want: "0000:01:00.0"},
		{name: "short form upper case", addr: "AF:1F.7", want: "0000:AF:1F.7"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(tt.addr)
			if err != nil {
				t.Fatalf("Resolve(%q) = %v", tt.addr, err)
			}

			if got.Address != tt.want {
				t.Errorf("Address = %q, want %q", got.Address, tt.want)
			}

			if want := filepath.Join("/nonexistent/sysfs", tt.want); got.Path != want {
				t.Errorf("Path = %q, want %q", got.Path, want)
			}
		})
	}
}

func TestResolveShortFormMatchesDefaultDomain(t *testing.T) {
	r := NewResolver()

	for _, short := range []string{"00:00.0", "01:00.0", "3b:1f.7", "ff:1f.3"} {
		s, err := r.Resolve(short)
		if err != nil {
			t.Fatal(err)
		}

		f, err := r.Resolve("0000:" + short)
		if err != nil {
			t.Fatal(err)
		}

		if s != f {
			t.Errorf("Resolve(%q) = %+v, Resolve(%q) = %+v", short, s, "0000:"+short, f)
		}

		if want := filepath.Join(SysfsRoot, "0000:"+short); s.Path != want {
			t.Errorf("Path = %q, want %q", s.Path, want)
		}
	}
}

func TestResolveInvalid(t *testing.T) {
	r := NewResolverWithRoot("/nonexistent/sysfs")

	for _, addr := range []string{
		"",
		"01",
		"01:00",
		"0100.0",
		"01:00.0.0",
		"0000:01:00:00.0",
		"01.00.0",
		"0000:01:00",
		"../0000:01:00.0",
		"0000:01/00.0",
	} {
		t.Run(addr, func(t *testing.T) {
			_, err := r.Resolve(addr)
			if !errors.Is(err, ErrInvalidAddressFormat) {
				t.Errorf("Resolve(%q) = %v, want %v", addr, err, ErrInvalidAddressFormat)
			}
		})
	}
}

func TestDeviceFile(t *testing.T) {
	d := Device{Address: testAddr, Path: "/sys/bus/pci/devices/" + testAddr}

	if got, want := d.File("resource2"), "/sys/bus/pci/devices/0000:01:00.0/resource2"; got != want {
		t.Errorf("File() = %q, want %q", got, want)
	}
}
