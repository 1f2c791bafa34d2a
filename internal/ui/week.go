package ui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/rota/internal/dateutil"
	"github.com/javiermolinar/rota/internal/summary"
	"github.com/javiermolinar/rota/internal/tui/view"
)

var (
	defaultClipboardWrite = clipboard.WriteAll
	clipboardWrite        = defaultClipboardWrite
)

func (a *App) weekCmd() *cobra.Command {
	var (
		date    string
		plain   bool
		copyOut bool
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Show a week's shifts and hours",
		Long: `Display the shifts of one week, Monday through Sunday, followed by the
hours each employee is scheduled for.

Inactive employees keep their past shifts and are marked in the hours
table.`,
		Example: `  rota week
  rota week --date=next-monday
  rota week --plain --copy`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if noColor || plain {
				DisableColor()
			}

			day, err := dateutil.ParseRelativeDate(date, a.now())
			if err != nil {
				return err
			}
			store, err := a.storage()
			if err != nil {
				return err
			}
			ws, err := summary.BuildWeekSummary(context.Background(), store, day)
			if err != nil {
				return fmt.Errorf("building week summary: %w", err)
			}

			w := cmd.OutOrStdout()
			if copyOut {
				if err := clipboardWrite(ws.PlainText()); err != nil {
					return fmt.Errorf("copying to clipboard: %w", err)
				}
				fmt.Fprintf(w, "Copied %d shifts to clipboard\n", ws.Week.Len())
				return nil
			}
			if plain {
				fmt.Fprint(w, ws.PlainText())
				return nil
			}

			printWeek(w, ws, a.config.Schedule.Days, noColor)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Any date in the week (default: today)")
	cmd.Flags().BoolVar(&plain, "plain", false, "Print the plain text summary")
	cmd.Flags().BoolVar(&copyOut, "copy", false, "Copy the plain text summary to the clipboard")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	return cmd
}

// printWeek prints the day by day listing and the hours table. Days past
// the configured week length are shown only when they hold shifts.
func printWeek(w io.Writer, ws *summary.WeekSummary, days int, noColor bool) {
	width := min(termWidth(), 74)

	header := fmt.Sprintf("WEEK: %s - %s", ws.Start.Format("Mon Jan 2"), ws.End.Format("Mon Jan 2, 2006"))
	fmt.Fprintf(w, "\n  %s\n", formatHeader(header))
	fmt.Fprintln(w, strings.Repeat("─", width))

	if ws.Week.Len() == 0 {
		fmt.Fprintln(w, "No shifts scheduled for this week.")
		return
	}

	names := make(map[string]string, len(ws.Hours))
	for _, h := range ws.Hours {
		names[h.EmployeeID] = h.Name
	}
	opts := PrintOpts{NameWidth: nameWidth(names, 20), Width: width}

	for i, shifts := range ws.Week.Days {
		if i >= days && len(shifts) == 0 {
			continue
		}
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "  %s\n", formatHeader(ws.Week.Date(i).Format("Mon Jan 2")))
		if len(shifts) == 0 {
			fmt.Fprintf(w, "    %s\n", formatMuted("no shifts"))
			continue
		}
		for _, s := range shifts {
			PrintShiftRow(w, s, ws.EmployeeName(s.EmployeeID), opts)
		}
	}

	fmt.Fprintln(w, strings.Repeat("─", width))
	fmt.Fprintln(w, hoursTable(ws, noColor))
	fmt.Fprintf(w, "  %s\n\n", formatMuted(view.CoverageLine(ws)))
}

// hoursTable renders the per employee hours with the same table as the
// board's week summary.
func hoursTable(ws *summary.WeekSummary, noColor bool) string {
	state := view.TableViewState{
		Headers:     []string{"Employee", "Shifts", "Hours"},
		Rows:        view.WeekSummaryRows(ws),
		HeaderStyle: lipgloss.NewStyle().Bold(true),
		CellStyle:   lipgloss.NewStyle(),
		TotalStyle:  lipgloss.NewStyle().Bold(true),
		BorderStyle: lipgloss.NewStyle().Faint(true),
		HasTotal:    true,
	}
	if !noColor {
		state.TotalStyle = state.TotalStyle.Foreground(lipgloss.Color("2"))
	}
	return view.RenderTable(state)
}
