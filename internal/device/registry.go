package device

import (
	"context"
)

// Logger defines the logging interface used by the Registry.
// This allows different logging implementations to be used.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Registry is the service facade over the device collection.
//
// It validates input and applies defaults before delegating to the
// Repository. Each operation is a single request/response exchange with the
// store; there is no cache, retry, or cross-operation state. The MAC
// uniqueness invariant is enforced by the store's constraint, so concurrent
// writes racing on the same MAC are both submitted and the loser receives
// ErrDuplicateMAC.
type Registry struct {
	repo   Repository
	logger Logger
}

// NewRegistry creates a new device registry backed by the given repository.
func NewRegistry(repo Repository) *Registry {
	return &Registry{
		repo:   repo,
		logger: noopLogger{},
	}
}

// SetLogger sets the logger for the registry.
func (r *Registry) SetLogger(logger Logger) {
	r.logger = logger
}

// List retrieves all devices in store retrieval order.
func (r *Registry) List(ctx context.Context) ([]Device, error) {
	return r.repo.List(ctx)
}

// Get retrieves a device by id.
// Returns ErrDeviceNotFound if the device does not exist.
func (r *Registry) Get(ctx context.Context, id int64) (*Device, error) {
	return r.repo.GetByID(ctx, id)
}

// Search retrieves all devices matching every set filter field exactly.
// An empty filter returns the same set as List.
func (r *Registry) Search(ctx context.Context, f Filter) ([]Device, error) {
	return r.repo.Search(ctx, f)
}

// Create validates the device, applies the status default, and persists it.
// The store assigns the id. Validation failures short-circuit before any
// store access.
func (r *Registry) Create(ctx context.Context, d *Device) error {
	if err := Validate(d); err != nil {
		return err
	}

	if d.Status == "" {
		d.Status = DefaultStatus
	}

	if err := r.repo.Create(ctx, d); err != nil {
		return err
	}

	r.logger.Info("device registered",
		"id", d.ID,
		"mac_address", d.MACAddress,
		"username", d.Username,
	)
	return nil
}

// Update replaces the stored record's fields with d, keyed by d.ID. Fields
// not set on d become null on the stored record (full-replace semantics).
// The replacement must itself satisfy the registry invariants.
func (r *Registry) Update(ctx context.Context, d *Device) error {
	if err := Validate(d); err != nil {
		return err
	}

	if d.Status == "" {
		d.Status = DefaultStatus
	}

	if err := r.repo.Update(ctx, d); err != nil {
		return err
	}

	r.logger.Info("device updated", "id", d.ID, "mac_address", d.MACAddress)
	return nil
}

// Delete permanently removes a device. Deleting an id with no record
// returns ErrDeviceNotFound; a repeated delete is a failure, not a success.
func (r *Registry) Delete(ctx context.Context, id int64) error {
	if err := r.repo.Delete(ctx, id); err != nil {
		return err
	}

	r.logger.Info("device deleted", "id", id)
	return nil
}
