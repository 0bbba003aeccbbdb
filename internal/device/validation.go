package device

import (
	"fmt"
	"strings"
)

// Field length limits, matching the column sizes in the schema.
const (
	maxDeviceNameLength = 100
	maxMACAddressLength = 100
	maxIPAddressLength  = 100
	maxUsernameLength   = 150
	maxDeviceTypeLength = 50
	maxStatusLength     = 50
)

// Validate checks a device against the registry's invariants.
// It returns an error wrapping ErrInvalidDevice describing the first
// violation found. Validation never touches the store.
func Validate(d *Device) error {
	if d == nil {
		return ErrInvalidDevice
	}

	if strings.TrimSpace(d.MACAddress) == "" {
		return fmt.Errorf("%w: mac_address is required", ErrInvalidDevice)
	}
	if len(d.MACAddress) > maxMACAddressLength {
		return fmt.Errorf("%w: mac_address exceeds %d characters", ErrInvalidDevice, maxMACAddressLength)
	}

	if strings.TrimSpace(d.Username) == "" {
		return fmt.Errorf("%w: username is required", ErrInvalidDevice)
	}
	if len(d.Username) > maxUsernameLength {
		return fmt.Errorf("%w: username exceeds %d characters", ErrInvalidDevice, maxUsernameLength)
	}

	if d.DeviceName != nil && len(*d.DeviceName) > maxDeviceNameLength {
		return fmt.Errorf("%w: device_name exceeds %d characters", ErrInvalidDevice, maxDeviceNameLength)
	}
	if d.IPAddress != nil && len(*d.IPAddress) > maxIPAddressLength {
		return fmt.Errorf("%w: ip_address exceeds %d characters", ErrInvalidDevice, maxIPAddressLength)
	}
	if d.DeviceType != nil && len(*d.DeviceType) > maxDeviceTypeLength {
		return fmt.Errorf("%w: device_type exceeds %d characters", ErrInvalidDevice, maxDeviceTypeLength)
	}
	if len(d.Status) > maxStatusLength {
		return fmt.Errorf("%w: status exceeds %d characters", ErrInvalidDevice, maxStatusLength)
	}

	return nil
}
