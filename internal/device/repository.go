package device

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Repository defines the interface for device persistence operations.
// This abstraction allows for different implementations (SQLite, mock, etc.)
// and enables unit testing without database dependencies.
type Repository interface {
	// List retrieves all devices in store retrieval order.
	List(ctx context.Context) ([]Device, error)

	// GetByID retrieves a device by its unique identifier.
	// Returns ErrDeviceNotFound if the device does not exist.
	GetByID(ctx context.Context, id int64) (*Device, error)

	// Search retrieves all devices matching every set field of the filter.
	// An empty filter is equivalent to List. No match returns an empty
	// slice, not an error.
	Search(ctx context.Context, f Filter) ([]Device, error)

	// Create inserts a new device and assigns its id.
	// Returns ErrDuplicateMAC if the MAC address is already registered.
	Create(ctx context.Context, d *Device) error

	// Update replaces every field of the record matching d.ID except the
	// id itself. Returns ErrDeviceNotFound if the device does not exist,
	// ErrDuplicateMAC if the new MAC address collides with another record.
	Update(ctx context.Context, d *Device) error

	// Delete removes a device by id.
	// Returns ErrDeviceNotFound if no record was deleted.
	Delete(ctx context.Context, id int64) error
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-backed repository.
// The db parameter should be an open SQLite connection.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const deviceColumns = "id, device_name, mac_address, ip_address, username, device_type, status, created_at"

// List retrieves all devices.
func (r *SQLiteRepository) List(ctx context.Context) ([]Device, error) {
	query := `
		SELECT ` + deviceColumns + `
		FROM authorized_devices
		ORDER BY id`

	return r.queryDevices(ctx, query)
}

// GetByID retrieves a device by its unique identifier.
func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*Device, error) {
	query := `
		SELECT ` + deviceColumns + `
		FROM authorized_devices
		WHERE id = ?`

	row := r.db.QueryRowContext(ctx, query, id)
	device, err := scanDeviceRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDeviceNotFound
		}
		return nil, fmt.Errorf("querying device by id: %w", err)
	}
	return device, nil
}

// Search retrieves all devices matching every set filter field exactly.
func (r *SQLiteRepository) Search(ctx context.Context, f Filter) ([]Device, error) {
	var conds []string
	var args []any

	appendCond := func(column string, value *string) {
		if value != nil {
			conds = append(conds, column+" = ?")
			args = append(args, *value)
		}
	}
	appendCond("device_name", f.DeviceName)
	appendCond("mac_address", f.MACAddress)
	appendCond("ip_address", f.IPAddress)
	appendCond("username", f.Username)
	appendCond("device_type", f.DeviceType)
	appendCond("status", f.Status)

	query := `
		SELECT ` + deviceColumns + `
		FROM authorized_devices`
	if len(conds) > 0 {
		query += "\n\t\tWHERE " + strings.Join(conds, " AND ")
	}
	query += "\n\t\tORDER BY id"

	return r.queryDevices(ctx, query, args...)
}

// Create inserts a new device. The store assigns the id.
func (r *SQLiteRepository) Create(ctx context.Context, d *Device) error {
	query := `
		INSERT INTO authorized_devices (
			device_name, mac_address, ip_address, username, device_type, status, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		nullableString(d.DeviceName),
		d.MACAddress,
		nullableString(d.IPAddress),
		d.Username,
		nullableString(d.DeviceType),
		d.Status,
		nullableTime(d.CreatedAt),
	)
	if err != nil {
		if isMACConstraintError(err) {
			return ErrDuplicateMAC
		}
		return fmt.Errorf("inserting device: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading inserted id: %w", err)
	}
	d.ID = id

	return nil
}

// Update replaces every field of an existing device except the id. The
// UPDATE itself reports whether the record existed, so there is no window
// for a concurrent delete to slip between a lookup and the write.
func (r *SQLiteRepository) Update(ctx context.Context, d *Device) error {
	query := `
		UPDATE authorized_devices SET
			device_name = ?, mac_address = ?, ip_address = ?,
			username = ?, device_type = ?, status = ?, created_at = ?
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		nullableString(d.DeviceName),
		d.MACAddress,
		nullableString(d.IPAddress),
		d.Username,
		nullableString(d.DeviceType),
		d.Status,
		nullableTime(d.CreatedAt),
		d.ID,
	)
	if err != nil {
		if isMACConstraintError(err) {
			return ErrDuplicateMAC
		}
		return fmt.Errorf("updating device: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrDeviceNotFound
	}

	return nil
}

// Delete removes a device by id.
func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM authorized_devices WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting device: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrDeviceNotFound
	}

	return nil
}

// queryDevices executes a query and returns a slice of devices.
func (r *SQLiteRepository) queryDevices(ctx context.Context, query string, args ...any) ([]Device, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying devices: %w", err)
	}
	defer rows.Close()

	var devices []Device
	for rows.Next() {
		device, err := scanDeviceRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning device: %w", err)
		}
		devices = append(devices, *device)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating devices: %w", err)
	}

	return devices, nil
}

// rowScanner is an interface that sql.Row and sql.Rows both implement.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanDeviceRow scans a row or rows result into a Device.
func scanDeviceRow(scanner rowScanner) (*Device, error) {
	var d Device
	var deviceName, ipAddress, deviceType sql.NullString
	var createdAt sql.NullString

	err := scanner.Scan(
		&d.ID,
		&deviceName,
		&d.MACAddress,
		&ipAddress,
		&d.Username,
		&deviceType,
		&d.Status,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if deviceName.Valid {
		d.DeviceName = &deviceName.String
	}
	if ipAddress.Valid {
		d.IPAddress = &ipAddress.String
	}
	if deviceType.Valid {
		d.DeviceType = &deviceType.String
	}
	if createdAt.Valid {
		t, parseErr := time.Parse(time.RFC3339Nano, createdAt.String)
		if parseErr != nil {
			return nil, fmt.Errorf("parsing created_at: %w", parseErr)
		}
		d.CreatedAt = &t
	}

	return &d, nil
}

// nullableString returns a sql.NullString for optional string pointers.
// An empty string is a value, not an absence, and is stored verbatim.
func nullableString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// nullableTime returns a sql.NullString for optional time pointers. The
// RFC3339Nano form keeps the caller's offset and sub-second precision, so
// reads return exactly the value that was written.
func nullableTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(time.RFC3339Nano), Valid: true}
}

// isMACConstraintError checks if an error is the SQLite unique constraint
// violation on mac_address. Other constraint failures are not classified as
// duplicates and surface as generic store failures.
func isMACConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") &&
		strings.Contains(msg, "mac_address")
}
