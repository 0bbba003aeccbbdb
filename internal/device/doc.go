// Package device implements the authorized device registry core.
//
// A Device is a record of network hardware that is allowed on site,
// identified primarily by MAC address. The package owns the business
// rules of the registry:
//
//   - the data model and its validation rules (mac_address and username
//     are required, field length limits from the schema)
//   - the uniqueness invariant: exactly one live record per mac_address,
//     enforced by the store's UNIQUE constraint
//   - the categorized error contract (ErrDeviceNotFound, ErrDuplicateMAC,
//     ErrInvalidDevice) consumed by the HTTP layer
//
// The Registry type is the service facade used by transports. It performs
// validation and defaulting, then delegates persistence to a Repository.
// There is no cache: every read goes to the store, and concurrent writes
// racing on the same MAC address are arbitrated solely by the database
// constraint.
package device
