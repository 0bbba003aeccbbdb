package device

import "time"

// DefaultStatus is applied at create time when the caller omits status.
const DefaultStatus = "active"

// Device is a single authorized device record.
//
// The id is assigned by the store at creation and never changes. The MAC
// address is the functional identity of the physical device and is unique
// across the registry. Optional attributes are pointers so that absent and
// empty can be told apart, and so they round-trip as JSON null.
type Device struct {
	ID         int64      `json:"id"`
	DeviceName *string    `json:"device_name"`
	MACAddress string     `json:"mac_address"`
	IPAddress  *string    `json:"ip_address"`
	Username   string     `json:"username"`
	DeviceType *string    `json:"device_type"`
	Status     string     `json:"status"`
	CreatedAt  *time.Time `json:"created_at"`
}

// Filter narrows Search results. Nil fields are not filtered on; set fields
// must match the stored value exactly. Multiple set fields combine with AND
// semantics. The zero Filter matches every device.
type Filter struct {
	DeviceName *string
	MACAddress *string
	IPAddress  *string
	Username   *string
	DeviceType *string
	Status     *string
}

// IsEmpty reports whether no filter fields are set.
func (f Filter) IsEmpty() bool {
	return f.DeviceName == nil &&
		f.MACAddress == nil &&
		f.IPAddress == nil &&
		f.Username == nil &&
		f.DeviceType == nil &&
		f.Status == nil
}
