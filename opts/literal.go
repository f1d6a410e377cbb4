package opts

import (
	"fmt"
	"strconv"
	"strings"

	"system-transparency.org/mmioreg/mmerror"
)

const opParseNumber = mmerror.Op("parse number")

// parseHex32 parses a hex literal with optional 0x prefix.
func parseHex32(s string) (uint32, error) {
	digits := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")

	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return 0, mmerror.E(mmerror.Opts, opParseNumber, ErrInvalidNumber, fmt.Sprintf("%q is not a 32-bit hex number", s))
	}

	return uint32(v), nil
}

// parseUint32 parses s with strconv base rules, base 0 accepts decimal
// and prefixed literals.
func parseUint32(s string, base int) (uint32, error) {
	v, err := strconv.ParseUint(s, base, 32)
	if err != nil {
		return 0, mmerror.E(mmerror.Opts, opParseNumber, ErrInvalidNumber, fmt.Sprintf("%q is not a 32-bit number", s))
	}

	return uint32(v), nil
}
