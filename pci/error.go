package pci

// Error reports problems while resolving, mapping or accessing a PCI BAR.
type Error string

// Error implements error interface.
func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidAddressFormat = Error("invalid address format")
	ErrInvalidBarIndex      = Error("BAR index out of range")
	ErrDeviceNotFound       = Error("device not found")
	ErrResourceParse        = Error("malformed resource table")
	ErrNotMemoryMapped      = Error("BAR is not a memory resource")
	ErrResourceOpen         = Error("can't open BAR resource file")
	ErrMapping              = Error("can't map BAR resource file")
	ErrOutOfRange           = Error("access exceeds mapped BAR")
)
