// Package regfmt renders register dumps.
package regfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
	"system-transparency.org/mmioreg/pci"
)

// Format selects how registers are rendered.
type Format int

const (
	Table Format = iota
	JSON
	YAML
)

// Formats lists the accepted names of ParseFormat.
var Formats = []string{"table", "json", "yaml"}

// String implements fmt.Stringer.
func (f Format) String() string {
	if f < Table || f > YAML {
		return "unknown"
	}

	return Formats[f]
}

// ErrUnknownFormat is returned by ParseFormat.
var ErrUnknownFormat = fmt.Errorf("unknown output format, want one of %s", strings.Join(Formats, ", "))

// ParseFormat returns the Format named s. Names are matched exactly, as the
// --output flag does.
func ParseFormat(s string) (Format, error) {
	for i, name := range Formats {
		if s == name {
			return Format(i), nil
		}
	}

	return Table, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

const (
	columnGap    = "        "
	columnOffset = "    OFFSET"
	columnValue  = "             VALUE"
)

type entry struct {
	Offset string `json:"offset" yaml:"offset"`
	Value  string `json:"value" yaml:"value"`
}

func hex32(v uint32) string {
	return fmt.Sprintf("0x%08X", v)
}

// Write renders regs to w in format f.
func Write(w io.Writer, f Format, regs []pci.Register) error {
	switch f {
	case Table:
		return writeTable(w, regs)
	case JSON, YAML:
		entries := make([]entry, 0, len(regs))
		for _, r := range regs {
			entries = append(entries, entry{Offset: hex32(r.Offset), Value: hex32(r.Value)})
		}

		if f == JSON {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")

			return enc.Encode(entries)
		}

		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		if err := enc.Encode(entries); err != nil {
			return err
		}

		return enc.Close()
	default:
		return ErrUnknownFormat
	}
}

func writeTable(w io.Writer, regs []pci.Register) error {
	if _, err := io.WriteString(w, columnOffset+columnGap+columnValue+"\n"); err != nil {
		return err
	}

	for _, r := range regs {
		if _, err := fmt.Fprintf(w, "%s%s%s%s\n", hex32(r.Offset), columnGap, columnGap, hex32(r.Value)); err != nil {
			return err
		}
	}

	return nil
}
