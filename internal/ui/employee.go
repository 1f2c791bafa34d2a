package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/rota/internal/shift"
)

// errAmbiguousEmployee is returned when a name or id prefix matches
// several employees.
var errAmbiguousEmployee = errors.New("employee reference is ambiguous")

func (a *App) employeeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "employee",
		Aliases: []string{"emp"},
		Short:   "Manage the staff roster",
		Long: `Add, list, activate and deactivate employees.

Employees can be referred to by id, id prefix or name. Only active
employees can be scheduled; deactivated employees keep their shifts.`,
	}
	cmd.AddCommand(a.employeeAddCmd())
	cmd.AddCommand(a.employeeListCmd())
	cmd.AddCommand(a.employeeStatusCmd("activate", shift.StatusActive))
	cmd.AddCommand(a.employeeStatusCmd("deactivate", shift.StatusInactive))
	return cmd
}

func (a *App) employeeAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "add [name]",
		Short:   "Add an employee to the roster",
		Example: `  rota employee add "Ana Lopez"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			if name == "" {
				return errors.New("employee name cannot be empty")
			}

			store, err := a.storage()
			if err != nil {
				return err
			}
			e := &shift.Employee{Name: name, Status: shift.StatusActive}
			if err := store.CreateEmployee(context.Background(), e); err != nil {
				return fmt.Errorf("creating employee: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", formatName(e.Name), e.ID)
			return nil
		},
	}
}

func (a *App) employeeListCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List employees",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.storage()
			if err != nil {
				return err
			}
			employees, err := store.ListEmployees(context.Background(), !all)
			if err != nil {
				return fmt.Errorf("listing employees: %w", err)
			}

			w := cmd.OutOrStdout()
			if len(employees) == 0 {
				fmt.Fprintln(w, "No employees found.")
				return nil
			}
			for _, e := range employees {
				status := ""
				if !e.IsActive() {
					status = formatWarn("  (inactive)")
				}
				fmt.Fprintf(w, "  %s  %s%s\n", formatMuted(e.ID), formatName(e.Name), status)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include inactive employees")
	return cmd
}

func (a *App) employeeStatusCmd(use string, status shift.EmployeeStatus) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [employee]",
		Short: fmt.Sprintf("Mark an employee %s", status),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			e, err := a.resolveEmployee(ctx, args[0])
			if err != nil {
				return err
			}
			if e.Status == status {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is already %s\n", formatName(e.Name), status)
				return nil
			}

			store, err := a.storage()
			if err != nil {
				return err
			}
			if err := store.SetEmployeeStatus(ctx, e.ID, status); err != nil {
				return fmt.Errorf("updating employee: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", formatName(e.Name), status)
			return nil
		},
	}
}

// resolveEmployee finds an employee by exact id, then by name
// (case-insensitive), then by id prefix.
func (a *App) resolveEmployee(ctx context.Context, ref string) (*shift.Employee, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, shift.ErrEmptyEmployee
	}

	store, err := a.storage()
	if err != nil {
		return nil, err
	}
	employees, err := store.ListEmployees(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("listing employees: %w", err)
	}

	matchers := []func(e *shift.Employee) bool{
		func(e *shift.Employee) bool { return e.ID == ref },
		func(e *shift.Employee) bool { return strings.EqualFold(e.Name, ref) },
		func(e *shift.Employee) bool { return strings.HasPrefix(e.ID, ref) },
	}
	for _, match := range matchers {
		var found []*shift.Employee
		for _, e := range employees {
			if match(e) {
				found = append(found, e)
			}
		}
		switch len(found) {
		case 0:
			continue
		case 1:
			return found[0], nil
		default:
			return nil, fmt.Errorf("%q: %w", ref, errAmbiguousEmployee)
		}
	}
	return nil, fmt.Errorf("%q: %w", ref, shift.ErrEmployeeNotFound)
}
