// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/rota/internal/shift"
)

// SQLite implements shift.Store using SQLite.
type SQLite struct {
	db  *sql.DB
	now func() time.Time
}

var _ shift.Store = (*SQLite)(nil)

// New creates a new SQLite store and runs migrations. The parent directory
// is created if needed.
func New(path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db, now: time.Now}
	if err := s.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// CreateEmployee adds an employee. An empty id is replaced with a new UUID,
// an empty status with active.
func (s *SQLite) CreateEmployee(ctx context.Context, e *shift.Employee) error {
	e.Name = strings.TrimSpace(e.Name)
	if e.Name == "" {
		return errors.New("employee name cannot be empty")
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Status == "" {
		e.Status = shift.StatusActive
	}
	if !e.Status.Valid() {
		return fmt.Errorf("invalid employee status %q", e.Status)
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now()
	}

	query := `INSERT INTO employees (id, name, status, created_at) VALUES (?, ?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, query, e.ID, e.Name, e.Status, e.CreatedAt.Format(time.RFC3339)); err != nil {
		return fmt.Errorf("inserting employee: %w", err)
	}
	return nil
}

// GetEmployee retrieves an employee by id, or nil if it does not exist.
func (s *SQLite) GetEmployee(ctx context.Context, id string) (*shift.Employee, error) {
	query := `SELECT id, name, status, created_at FROM employees WHERE id = ?`

	e, err := scanEmployee(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying employee: %w", err)
	}
	return e, nil
}

// ListEmployees returns employees ordered by name.
func (s *SQLite) ListEmployees(ctx context.Context, activeOnly bool) ([]*shift.Employee, error) {
	query := `SELECT id, name, status, created_at FROM employees`
	var args []any
	if activeOnly {
		query += ` WHERE status = ?`
		args = append(args, shift.StatusActive)
	}
	query += ` ORDER BY name COLLATE NOCASE, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying employees: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var employees []*shift.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating employees: %w", err)
	}
	return employees, nil
}

// SetEmployeeStatus activates or deactivates an employee. Existing shifts
// are kept.
func (s *SQLite) SetEmployeeStatus(ctx context.Context, id string, status shift.EmployeeStatus) error {
	if !status.Valid() {
		return fmt.Errorf("invalid employee status %q", status)
	}

	result, err := s.db.ExecContext(ctx, `UPDATE employees SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("updating employee status: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%w: %s", shift.ErrEmployeeNotFound, id)
	}
	return nil
}

// AddShift stores a new shift with a fresh UUID.
// Returns ErrShiftOverlap if the employee already works during the interval.
func (s *SQLite) AddShift(ctx context.Context, in shift.NewShift) (*shift.Shift, error) {
	if strings.TrimSpace(in.EmployeeID) == "" {
		return nil, shift.ErrEmptyEmployee
	}
	if !in.End.After(in.Start) {
		return nil, shift.ErrEndBeforeStart
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := checkEmployeeTx(ctx, tx, in.EmployeeID); err != nil {
		return nil, err
	}

	date, start, end := columns(in.Start, in.End)
	if err := checkOverlapTx(ctx, tx, in.EmployeeID, date, start, end, ""); err != nil {
		return nil, err
	}

	now := s.now()
	sh := &shift.Shift{
		ID:         uuid.NewString(),
		EmployeeID: in.EmployeeID,
		Start:      in.Start,
		End:        in.End,
		Notes:      strings.TrimSpace(in.Notes),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	query := `
		INSERT INTO shifts (id, employee_id, shift_date, start_time, end_time, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	stamp := now.Format(time.RFC3339)
	if _, err := tx.ExecContext(ctx, query, sh.ID, sh.EmployeeID, date, start, end, sh.Notes, stamp, stamp); err != nil {
		return nil, fmt.Errorf("inserting shift: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}
	return sh, nil
}

// UpdateShift applies a partial update.
// Returns ErrShiftNotFound if the id does not exist and ErrShiftOverlap if
// the new interval collides with another shift of the same employee.
func (s *SQLite) UpdateShift(ctx context.Context, id string, patch shift.Patch) (*shift.Shift, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	cur, err := scanShift(tx.QueryRowContext(ctx, selectShift+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shift.ErrShiftNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying shift: %w", err)
	}
	if patch.IsEmpty() {
		return cur, nil
	}

	next := patch.Apply(*cur)
	next.Notes = strings.TrimSpace(next.Notes)
	if !next.End.After(next.Start) {
		return nil, shift.ErrEndBeforeStart
	}

	date, start, end := columns(next.Start, next.End)
	if err := checkOverlapTx(ctx, tx, next.EmployeeID, date, start, end, id); err != nil {
		return nil, err
	}

	next.UpdatedAt = s.now()
	query := `
		UPDATE shifts
		SET shift_date = ?, start_time = ?, end_time = ?, notes = ?, updated_at = ?
		WHERE id = ?
	`
	if _, err := tx.ExecContext(ctx, query, date, start, end, next.Notes, next.UpdatedAt.Format(time.RFC3339), id); err != nil {
		return nil, fmt.Errorf("updating shift: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}
	return &next, nil
}

// DeleteShift removes a shift. Returns false if nothing was deleted.
func (s *SQLite) DeleteShift(ctx context.Context, id string) (bool, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM shifts WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("deleting shift: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

// GetShift retrieves a shift by id, or nil if it does not exist.
func (s *SQLite) GetShift(ctx context.Context, id string) (*shift.Shift, error) {
	sh, err := scanShift(s.db.QueryRowContext(ctx, selectShift+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying shift: %w", err)
	}
	return sh, nil
}

// ListShiftsByDateRange returns all shifts on days within the range (inclusive),
// ordered by day, start time and employee.
func (s *SQLite) ListShiftsByDateRange(ctx context.Context, start, end time.Time) ([]*shift.Shift, error) {
	query := selectShift + `
		WHERE shift_date >= ? AND shift_date <= ?
		ORDER BY shift_date, start_time, employee_id
	`

	rows, err := s.db.QueryContext(ctx, query, start.Format(shift.DayKeyLayout), end.Format(shift.DayKeyLayout))
	if err != nil {
		return nil, fmt.Errorf("querying shifts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var shifts []*shift.Shift
	for rows.Next() {
		sh, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning shift: %w", err)
		}
		shifts = append(shifts, sh)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating shifts: %w", err)
	}
	return shifts, nil
}

const selectShift = `
	SELECT id, employee_id, shift_date, start_time, end_time, notes, created_at, updated_at
	FROM shifts
`

type scanner interface {
	Scan(dest ...any) error
}

func scanShift(row scanner) (*shift.Shift, error) {
	var (
		sh         shift.Shift
		date       string
		start, end string
		createdAt  string
		updatedAt  string
	)
	if err := row.Scan(&sh.ID, &sh.EmployeeID, &date, &start, &end, &sh.Notes, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	day, err := parseDate(date)
	if err != nil {
		return nil, fmt.Errorf("parsing shift date: %w", err)
	}
	sh.Start = shift.At(day, shift.TimeToMinutes(start))
	sh.End = shift.At(day, shift.TimeToMinutes(end))

	if sh.CreatedAt, err = parseDate(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created at: %w", err)
	}
	if sh.UpdatedAt, err = parseDate(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated at: %w", err)
	}
	return &sh, nil
}

func scanEmployee(row scanner) (*shift.Employee, error) {
	var (
		e         shift.Employee
		createdAt string
	)
	if err := row.Scan(&e.ID, &e.Name, &e.Status, &createdAt); err != nil {
		return nil, err
	}
	t, err := parseDate(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created at: %w", err)
	}
	e.CreatedAt = t
	return &e, nil
}

// columns splits an interval into its stored form. The end is written as
// minutes past the start day so a shift closing at midnight reads "24:00".
func columns(start, end time.Time) (date, startClock, endClock string) {
	endMinutes := shift.MinutesOfDay(start) + int(end.Sub(start).Minutes())
	return start.Format(shift.DayKeyLayout),
		shift.MinutesToTime(shift.MinutesOfDay(start)),
		shift.MinutesToTime(endMinutes)
}

// parseDate parses a date string in various formats SQLite might return.
// Date-only values (midnight) are parsed in local timezone to match time.Now() behavior.
func parseDate(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(shift.DayKeyLayout, s, time.Local); err == nil {
		return t, nil
	}

	// SQLite returns DATE columns as "2006-01-02T00:00:00Z"; treat as local midnight.
	if len(s) == 20 && s[10] == 'T' && s[19] == 'Z' && s[11:19] == "00:00:00" {
		if t, err := time.ParseInLocation(shift.DayKeyLayout, s[:10], time.Local); err == nil {
			return t, nil
		}
	}

	formats := []string{
		time.RFC3339,
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %s", s)
}

func checkEmployeeTx(ctx context.Context, tx *sql.Tx, id string) error {
	var status shift.EmployeeStatus
	err := tx.QueryRowContext(ctx, `SELECT status FROM employees WHERE id = ?`, id).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", shift.ErrEmployeeNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("checking employee: %w", err)
	}
	if status != shift.StatusActive {
		return fmt.Errorf("%w: %s", shift.ErrEmployeeInactive, id)
	}
	return nil
}

// checkOverlapTx checks whether the employee already has a shift on date
// intersecting [start, end), ignoring excludeID.
// Two time ranges overlap if: start1 < end2 AND start2 < end1
func checkOverlapTx(ctx context.Context, tx *sql.Tx, employeeID, date, start, end, excludeID string) error {
	query := `
		SELECT id, start_time, end_time
		FROM shifts
		WHERE employee_id = ?
		  AND shift_date = ?
		  AND id != ?
		  AND start_time < ?
		  AND end_time > ?
		LIMIT 1
	`

	var id, existStart, existEnd string
	err := tx.QueryRowContext(ctx, query, employeeID, date, excludeID, end, start).Scan(&id, &existStart, &existEnd)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("checking overlap: %w", err)
	}

	return fmt.Errorf("%w: conflicts with %s (%s-%s)", shift.ErrShiftOverlap, id, existStart, existEnd)
}
