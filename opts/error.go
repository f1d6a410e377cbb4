package opts

// InvalidError reports invalid data of a Request. It covers everything
// wrong with the command line before any device is touched.
type InvalidError string

// Error implements error interface.
func (e InvalidError) Error() string {
	return string(e)
}

var (
	ErrMissingBDF           = InvalidError("device address must be set with -s")
	ErrBDFTooLong           = InvalidError("device address is too long")
	ErrMissingOperation     = InvalidError("one of read (-r) or write (-w) must be set")
	ErrConflictingOperation = InvalidError("can't read (-r) and write (-w) a register at the same time")
	ErrMissingValue         = InvalidError("write needs two arguments, OFFSET and VALUE")
	ErrBarIndex             = InvalidError("BAR index must be smaller than 6")
	ErrCountTooLarge        = InvalidError("can't read more than 1M registers at once")
	ErrCountZero            = InvalidError("register count must be at least 1")
	ErrInvalidNumber        = InvalidError("invalid number")
)
