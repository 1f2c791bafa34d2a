package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/rota/internal/config"
	"github.com/javiermolinar/rota/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  rota config`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInteractive(a.path, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func runConfigInteractive(configPath string, in io.Reader, out io.Writer) error {
	fmt.Fprintf(out, "Config file: %s\n\n", configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Check if file exists
	_, fileErr := os.Stat(configPath)
	isNew := os.IsNotExist(fileErr)

	if isNew {
		fmt.Fprintln(out, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(configPath); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(out, "Created %s\n\n", configPath)
	}

	// Display current config
	printConfig(out, cfg)

	reader := bufio.NewReader(in)

	// Ask if user wants to edit
	if !promptYesNo(reader, out, "\nWould you like to edit the configuration?") {
		return nil
	}

	// Interactive editing
	p := prompter{reader: reader, out: out}
	cfg.Schedule.DayStart = p.value("Day start", cfg.Schedule.DayStart)
	cfg.Schedule.DayEnd = p.value("Day end", cfg.Schedule.DayEnd)
	cfg.Schedule.Days = p.number("Days shown (1-7)", cfg.Schedule.Days)
	cfg.Grid.MinutesPerSlot = p.number("Minutes per slot", cfg.Grid.MinutesPerSlot)
	cfg.Grid.DefaultShiftMinutes = p.number("Default shift minutes", cfg.Grid.DefaultShiftMinutes)
	cfg.Storage.DBPath = p.value("Database path", cfg.Storage.DBPath)
	cfg.UI.Theme = p.theme(cfg.UI.Theme)
	cfg.UI.RowsPerSlot = p.number("Rows per slot", cfg.UI.RowsPerSlot)
	cfg.UI.DragThreshold = p.number("Drag threshold (cells)", cfg.UI.DragThreshold)

	// Validate before saving
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Save
	if err := cfg.SaveTo(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(out, "\nConfiguration saved!")
	return nil
}

func printConfig(out io.Writer, cfg *config.Config) {
	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintln(out, "──────────────────────")
	fmt.Fprintln(out, "[schedule]")
	fmt.Fprintf(out, "  day_start             = %s\n", cfg.Schedule.DayStart)
	fmt.Fprintf(out, "  day_end               = %s\n", cfg.Schedule.DayEnd)
	fmt.Fprintf(out, "  days                  = %d\n", cfg.Schedule.Days)
	fmt.Fprintln(out, "\n[grid]")
	fmt.Fprintf(out, "  minutes_per_slot      = %d\n", cfg.Grid.MinutesPerSlot)
	fmt.Fprintf(out, "  default_shift_minutes = %d\n", cfg.Grid.DefaultShiftMinutes)
	fmt.Fprintln(out, "\n[storage]")
	fmt.Fprintf(out, "  db_path               = %s\n", cfg.Storage.DBPath)
	fmt.Fprintln(out, "\n[ui]")
	fmt.Fprintf(out, "  theme                 = %s\n", cfg.UI.Theme)
	fmt.Fprintf(out, "  rows_per_slot         = %d\n", cfg.UI.RowsPerSlot)
	fmt.Fprintf(out, "  drag_threshold        = %d\n", cfg.UI.DragThreshold)
}

func promptYesNo(reader *bufio.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

// prompter reads answers line by line. An empty answer keeps the current
// value.
type prompter struct {
	reader *bufio.Reader
	out    io.Writer
}

func (p prompter) value(label, current string) string {
	if current == "" {
		fmt.Fprintf(p.out, "  %s: ", label)
	} else {
		fmt.Fprintf(p.out, "  %s [%s]: ", label, current)
	}
	input, _ := p.reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func (p prompter) number(label string, current int) int {
	for {
		value := p.value(label, strconv.Itoa(current))
		n, err := strconv.Atoi(value)
		if err == nil {
			return n
		}
		fmt.Fprintf(p.out, "  Invalid number %q\n", value)
		if _, err := p.reader.Peek(1); err != nil {
			return current
		}
	}
}

func (p prompter) theme(current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(p.value(label, current))
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Fprintf(p.out, "  Invalid theme %q. Available: %s\n", value, options)
		if _, err := p.reader.Peek(1); err != nil {
			return current
		}
	}
}
