package device

import "errors"

// Domain errors for the device package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, device.ErrDeviceNotFound) {
//	    // handle not found case
//	}
var (
	// ErrDeviceNotFound is returned when a device id does not exist.
	ErrDeviceNotFound = errors.New("device: not found")

	// ErrDuplicateMAC is returned when a write would leave two live records
	// sharing the same mac_address.
	ErrDuplicateMAC = errors.New("device: mac address already registered")

	// ErrInvalidDevice is returned when device validation fails. It is
	// wrapped with detail about the offending field.
	ErrInvalidDevice = errors.New("device: invalid")
)
