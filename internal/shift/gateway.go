package shift

import (
	"context"
	"time"
)

// Gateway is the persistence boundary for shift records.
type Gateway interface {
	// AddShift stores a new shift and returns it with its assigned id.
	// A nil shift means the create failed; nothing was stored.
	AddShift(ctx context.Context, payload NewShift) (*Shift, error)

	// UpdateShift applies a partial update.
	// Returns ErrShiftNotFound if the id does not exist.
	UpdateShift(ctx context.Context, id string, patch Patch) (*Shift, error)

	// DeleteShift removes a shift. Returns false if nothing was deleted.
	DeleteShift(ctx context.Context, id string) (bool, error)

	// GetShift retrieves a shift by id, or nil if it does not exist.
	GetShift(ctx context.Context, id string) (*Shift, error)

	// ListShiftsByDateRange returns shifts starting within the date range (inclusive).
	ListShiftsByDateRange(ctx context.Context, start, end time.Time) ([]*Shift, error)
}

// Roster is the read/write boundary for employees.
type Roster interface {
	CreateEmployee(ctx context.Context, e *Employee) error
	GetEmployee(ctx context.Context, id string) (*Employee, error)
	ListEmployees(ctx context.Context, activeOnly bool) ([]*Employee, error)
	SetEmployeeStatus(ctx context.Context, id string, status EmployeeStatus) error
}

// Store is everything the application needs from storage.
type Store interface {
	Gateway
	Roster

	// Close releases any resources held by the store.
	Close() error
}
