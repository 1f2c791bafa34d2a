package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/rota/internal/board"
	"github.com/javiermolinar/rota/internal/dateutil"
	"github.com/javiermolinar/rota/internal/grid"
	"github.com/javiermolinar/rota/internal/shift"
)

func (a *App) shiftCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shift",
		Short: "Create, change and list shifts",
		Long: `Create, change and list shifts.

Changes follow the same rules as the board: times snap to the slot grid,
shifts stay inside business hours, and an employee's shifts on one day
may touch but never overlap.

Dates accept YYYY-MM-DD, today, tomorrow, yesterday, weekday names
(this week) and next-<weekday>.`,
	}
	cmd.AddCommand(a.shiftAddCmd())
	cmd.AddCommand(a.shiftResizeCmd())
	cmd.AddCommand(a.shiftMoveCmd())
	cmd.AddCommand(a.shiftNotesCmd())
	cmd.AddCommand(a.shiftDeleteCmd())
	cmd.AddCommand(a.shiftListCmd())
	return cmd
}

func (a *App) shiftAddCmd() *cobra.Command {
	var (
		date  string
		start string
		end   string
	)

	cmd := &cobra.Command{
		Use:   "add [employee]",
		Short: "Schedule a shift",
		Long: `Schedule a shift for an active employee.

Without --end the shift gets the default length (default_shift_minutes),
cut short at closing time, as if the employee was dropped on the board.`,
		Example: `  rota shift add Ana --date=2025-01-13 --start=09:00
  rota shift add "Ana Lopez" --date=tomorrow --start=14:00 --end=21:00`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			e, err := a.resolveEmployee(ctx, args[0])
			if err != nil {
				return err
			}
			if !e.IsActive() {
				return fmt.Errorf("%s: %w", e.Name, shift.ErrEmployeeInactive)
			}
			day, err := dateutil.ParseRelativeDate(date, a.now())
			if err != nil {
				return err
			}
			startMin, err := shift.ParseClock(start)
			if err != nil {
				return fmt.Errorf("start time: %w", err)
			}

			sess, err := a.openSession(ctx, day)
			if err != nil {
				return err
			}

			var out board.Outcome
			if end == "" {
				geo := sess.board.Geometry()
				if err := checkSlotStart(geo, startMin); err != nil {
					return err
				}
				out = sess.board.DropEmployee(e.ID, day, geo.SlotIndex(startMin))
			} else {
				ns, err := shift.New(e.ID, day.Format(dateutil.DateLayout), start, end)
				if err != nil {
					return err
				}
				if err := shift.Validate(ns.Start, ns.End, a.config.TimeRange()); err != nil {
					return err
				}
				out = sess.board.PlaceShift(e.ID, ns.Start, ns.End)
			}

			res, err := sess.commit(out)
			if err != nil {
				return fmt.Errorf("adding shift: %w", err)
			}
			printShiftChange(cmd.OutOrStdout(), "Created", res.Shift, e.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Shift date (default: today)")
	cmd.Flags().StringVar(&start, "start", "", "Start time (HH:MM, required)")
	cmd.Flags().StringVar(&end, "end", "", "End time (HH:MM, default: start plus the default shift length)")
	_ = cmd.MarkFlagRequired("start")

	return cmd
}

func (a *App) shiftResizeCmd() *cobra.Command {
	var end string

	cmd := &cobra.Command{
		Use:     "resize [shift-id]",
		Short:   "Change when a shift ends",
		Long:    `Change when a shift ends. The end snaps to the slot grid and is kept between one slot after the start and closing time.`,
		Example: `  rota shift resize 5f1c... --end=17:30`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := a.getShift(ctx, args[0])
			if err != nil {
				return err
			}
			endMin, err := shift.ParseClock(end)
			if err != nil {
				return fmt.Errorf("end time: %w", err)
			}

			sess, err := a.openSession(ctx, s.Start)
			if err != nil {
				return err
			}
			res, err := sess.commit(sess.board.ResizeShift(s.ID, endMin))
			if err != nil {
				return fmt.Errorf("resizing shift: %w", err)
			}
			return a.reportUpdate(ctx, cmd, "Resized", s, res)
		},
	}

	cmd.Flags().StringVar(&end, "end", "", "New end time (HH:MM, required)")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func (a *App) shiftMoveCmd() *cobra.Command {
	var (
		date  string
		start string
	)

	cmd := &cobra.Command{
		Use:   "move [shift-id]",
		Short: "Move a shift to another day or time",
		Long: `Move a shift to another day or start time, keeping its length.

A shift that would run past closing time is moved earlier so it ends at
closing time.`,
		Example: `  rota shift move 5f1c... --date=wednesday
  rota shift move 5f1c... --start=12:00`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if date == "" && start == "" {
				return fmt.Errorf("nothing to move: set --date or --start")
			}

			ctx := context.Background()
			s, err := a.getShift(ctx, args[0])
			if err != nil {
				return err
			}

			day := s.Day()
			if date != "" {
				if day, err = dateutil.ParseRelativeDate(date, a.now()); err != nil {
					return err
				}
			}
			startMin := shift.MinutesOfDay(s.Start)
			if start != "" {
				if startMin, err = shift.ParseClock(start); err != nil {
					return fmt.Errorf("start time: %w", err)
				}
			}

			sess, err := a.openSession(ctx, s.Start, day)
			if err != nil {
				return err
			}
			res, err := sess.commit(sess.board.MoveShift(s.ID, day, startMin))
			if err != nil {
				return fmt.Errorf("moving shift: %w", err)
			}
			return a.reportUpdate(ctx, cmd, "Moved", s, res)
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "New date (default: unchanged)")
	cmd.Flags().StringVar(&start, "start", "", "New start time (HH:MM, default: unchanged)")

	return cmd
}

func (a *App) shiftNotesCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "notes [shift-id] [text]",
		Short:   "Set or clear the notes of a shift",
		Example: `  rota shift notes 5f1c... "opens the shop"` + "\n" + `  rota shift notes 5f1c...`,
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := a.getShift(ctx, args[0])
			if err != nil {
				return err
			}
			notes := ""
			if len(args) == 2 {
				notes = args[1]
			}

			sess, err := a.openSession(ctx, s.Start)
			if err != nil {
				return err
			}
			res, err := sess.commit(sess.board.UpdateNotes(s.ID, notes))
			if err != nil {
				return fmt.Errorf("updating notes: %w", err)
			}
			return a.reportUpdate(ctx, cmd, "Updated", s, res)
		},
	}
}

func (a *App) shiftDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete [shift-id]",
		Aliases: []string{"rm"},
		Short:   "Delete a shift",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := a.getShift(ctx, args[0])
			if err != nil {
				return err
			}

			sess, err := a.openSession(ctx, s.Start)
			if err != nil {
				return err
			}
			res, err := sess.commit(sess.board.Delete(s.ID))
			if err != nil {
				return fmt.Errorf("deleting shift: %w", err)
			}
			if res == nil || !res.Deleted {
				return fmt.Errorf("deleting shift %s: %w", s.ID, shift.ErrShiftNotFound)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted shift %s\n", s.ID)
			return nil
		},
	}
}

func (a *App) shiftListCmd() *cobra.Command {
	var (
		date string
		week bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the shifts of a day or week",
		Example: `  rota shift list
  rota shift list --date=friday
  rota shift list --week`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, err := dateutil.ParseRelativeDate(date, a.now())
			if err != nil {
				return err
			}
			start, end := day, day
			if week {
				start, end = dateutil.WeekRange(day)
			}

			ctx := context.Background()
			store, err := a.storage()
			if err != nil {
				return err
			}
			shifts, err := store.ListShiftsByDateRange(ctx, start, end)
			if err != nil {
				return fmt.Errorf("listing shifts: %w", err)
			}
			employees, err := store.ListEmployees(ctx, false)
			if err != nil {
				return fmt.Errorf("listing employees: %w", err)
			}

			w := cmd.OutOrStdout()
			if len(shifts) == 0 {
				fmt.Fprintln(w, "No shifts found.")
				return nil
			}

			names := employeeNames(employees)
			opts := PrintOpts{NameWidth: nameWidth(names, 20), ShowID: true}

			// Print shifts grouped by date
			var currentDate string
			for _, s := range shifts {
				if key := s.DayKey(); key != currentDate {
					if currentDate != "" {
						fmt.Fprintln(w)
					}
					fmt.Fprintf(w, "  %s\n", formatHeader(s.Start.Format("Mon Jan 2")))
					currentDate = key
				}
				PrintShiftRow(w, s, nameOf(names, s.EmployeeID), opts)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date to list (default: today)")
	cmd.Flags().BoolVarP(&week, "week", "w", false, "List the whole week containing the date")

	return cmd
}

// getShift loads a shift by id.
func (a *App) getShift(ctx context.Context, id string) (*shift.Shift, error) {
	store, err := a.storage()
	if err != nil {
		return nil, err
	}
	s, err := store.GetShift(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting shift: %w", err)
	}
	if s == nil {
		return nil, fmt.Errorf("shift %s: %w", id, shift.ErrShiftNotFound)
	}
	return s, nil
}

// reportUpdate prints the stored shift after an update, or that nothing
// changed.
func (a *App) reportUpdate(ctx context.Context, cmd *cobra.Command, verb string, before *shift.Shift, res *board.Result) error {
	w := cmd.OutOrStdout()
	name := before.EmployeeID
	if store, err := a.storage(); err == nil {
		if e, err := store.GetEmployee(ctx, before.EmployeeID); err == nil && e != nil {
			name = e.Name
		}
	}
	if res == nil || res.Shift == nil {
		fmt.Fprintf(w, "Shift %s unchanged\n", before.ID)
		return nil
	}
	printShiftChange(w, verb, res.Shift, name)
	return nil
}

// checkSlotStart checks that a drop start falls on a slot inside business
// hours.
func checkSlotStart(geo *grid.Geometry, minutes int) error {
	hours := geo.Hours()
	if minutes%geo.Config().MinutesPerSlot != 0 {
		return shift.ErrOffSlot
	}
	if minutes < hours.StartMinutes || minutes >= hours.EndMinutes {
		return shift.ErrOutsideHours
	}
	return nil
}
