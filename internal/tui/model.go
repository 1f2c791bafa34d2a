// Package tui provides the terminal user interface for rota.
package tui

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/javiermolinar/rota/internal/board"
	"github.com/javiermolinar/rota/internal/config"
	"github.com/javiermolinar/rota/internal/dateutil"
	"github.com/javiermolinar/rota/internal/debuglog"
	"github.com/javiermolinar/rota/internal/grid"
	"github.com/javiermolinar/rota/internal/shift"
	"github.com/javiermolinar/rota/internal/summary"
	"github.com/javiermolinar/rota/internal/tui/commands"
	"github.com/javiermolinar/rota/internal/tui/theme"
)

// ModalType identifies the type of modal.
type ModalType int

const (
	ModalNone        ModalType = iota
	ModalShiftEditor           // opened by clicking a shift
	ModalWeekSummary
)

// statusDuration is how long status and warning messages stay visible.
const statusDuration = 3 * time.Second

// Model is the main TUI model.
type Model struct {
	// Dependencies
	store  shift.Store
	config *config.Config
	log    *debuglog.Logger
	now    func() time.Time
	clip   func(string) error

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// Scheduling core. Shared by every copy of the model; only Update touches it.
	board  *board.Board
	mouse  *mouseSource
	events *boardEvents

	// State
	weekStart  time.Time // Monday of the visible week
	employees  []*shift.Employee
	staffIndex map[string]int // employee id to color slot
	loading    bool
	settledSeq uint64 // op seq of the newest reload applied by a settle

	// Modal state
	modalType   ModalType
	editID      string
	notes       textinput.Model
	weekSummary *summary.WeekSummary

	// Terminal dimensions and layout
	width  int
	height int
	scroll int // grid rows scrolled off the top

	// Messages
	statusMsg  string
	statusWarn bool
	statusTime time.Time
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithLogger sets the debug logger shared with the board.
func WithLogger(l *debuglog.Logger) ModelOption {
	return func(m *Model) {
		if l != nil {
			m.log = l
		}
	}
}

// WithNow overrides the clock used for "today".
func WithNow(now func() time.Time) ModelOption {
	return func(m *Model) { m.now = now }
}

// WithClipboard overrides the clipboard writer.
func WithClipboard(write func(string) error) ModelOption {
	return func(m *Model) { m.clip = write }
}

// New creates a new TUI model.
func New(store shift.Store, cfg *config.Config, opts ...ModelOption) Model {
	m := Model{
		store:      store,
		config:     cfg,
		log:        debuglog.Disabled(),
		now:        time.Now,
		clip:       clipboard.WriteAll,
		events:     &boardEvents{},
		staffIndex: make(map[string]int),
		loading:    true,
	}
	for _, opt := range opts {
		opt(&m)
	}

	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load(theme.DefaultName)
	}
	m.theme = t
	m.styles = NewStyles(t)

	notes := textinput.New()
	notes.Placeholder = "Notes"
	notes.CharLimit = 200
	notes.Width = 40
	notes.PlaceholderStyle = m.styles.ModalPlaceholderStyle
	notes.TextStyle = m.styles.ModalInputTextStyle
	notes.PromptStyle = m.styles.ModalInputTextStyle
	notes.Cursor.Style = m.styles.ModalInputCursorStyle
	notes.Cursor.TextStyle = m.styles.ModalInputTextStyle
	m.notes = notes

	m.weekStart, _ = dateutil.WeekRange(m.now())

	geo := grid.New(grid.Config{
		SlotHeight:     float64(cfg.UI.RowsPerSlot),
		MinutesPerSlot: cfg.Grid.MinutesPerSlot,
		MinBlockHeight: 1,
	}, cfg.TimeRange())

	m.board = board.New(geo, store,
		board.WithDispatcher(m.events),
		board.WithNotifier(m.events),
		board.WithLogger(m.log),
		board.WithDefaultShiftMinutes(cfg.Grid.DefaultShiftMinutes),
		board.WithDragThreshold(float64(cfg.UI.DragThreshold)),
	)
	m.mouse = newMouseSource()
	m.board.Attach(m.mouse)
	m.syncLayout()

	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return commands.LoadWeek(m.store, m.weekStart)
}

// Run starts the TUI.
func Run(store shift.Store, cfg *config.Config, log *debuglog.Logger) error {
	if termenv.EnvNoColor() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	model := New(store, cfg, WithLogger(log))
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running tui: %w", err)
	}
	return nil
}

// activeEmployees returns the roster chips, in roster order.
func (m Model) activeEmployees() []*shift.Employee {
	out := make([]*shift.Employee, 0, len(m.employees))
	for _, e := range m.employees {
		if e.IsActive() {
			out = append(out, e)
		}
	}
	return out
}

func (m Model) employeeName(id string) string {
	for _, e := range m.employees {
		if e.ID == id {
			return e.Name
		}
	}
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// setEmployees replaces the roster and assigns stable color slots.
func (m *Model) setEmployees(employees []*shift.Employee) {
	m.employees = employees
	m.staffIndex = make(map[string]int, len(employees))
	for i, e := range employees {
		m.staffIndex[e.ID] = i
	}
	m.board.SetEmployees(employees)
}

// syncLayout pushes the current screen geometry to the board.
func (m *Model) syncLayout() {
	s := m.screen()
	m.scroll = s.scroll
	m.board.SetLayout(s.boardLayout(m.weekStart))
}

func (m *Model) setStatus(msg string, warn bool) tea.Cmd {
	m.statusMsg = msg
	m.statusWarn = warn
	m.statusTime = m.now().Add(statusDuration)
	return commands.ClearStatusAfter(statusDuration)
}

// withStatus is setStatus for handlers that return the model.
func (m Model) withStatus(msg string, warn bool) (Model, tea.Cmd) {
	cmd := m.setStatus(msg, warn)
	return m, cmd
}
