package shift

import "time"

// EmployeeStatus is the roster state of an employee.
type EmployeeStatus string

const (
	StatusActive   EmployeeStatus = "active"
	StatusInactive EmployeeStatus = "inactive"
)

// Valid returns true if the status is a known value.
func (s EmployeeStatus) Valid() bool {
	switch s {
	case StatusActive, StatusInactive:
		return true
	default:
		return false
	}
}

// Employee is a roster entry. The scheduling core only reads it.
type Employee struct {
	ID        string
	Name      string
	Status    EmployeeStatus
	CreatedAt time.Time
}

// IsActive returns true if the employee can be scheduled.
func (e *Employee) IsActive() bool {
	return e.Status == StatusActive
}
