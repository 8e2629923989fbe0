package ui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/faizmokh/jalan/internal/itinerary"
	"github.com/faizmokh/jalan/internal/planbook"
	"github.com/faizmokh/jalan/internal/state"
	"github.com/faizmokh/jalan/internal/trip"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	doneStyle    = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	selectedMark = lipgloss.NewStyle().Bold(true).Render(">")
)

// Model owns Bubble Tea state for the main TUI experience.
type Model struct {
	ctx     context.Context
	planner *trip.Planner
	keys    keyMap
	help    help.Model
	refresh time.Duration

	currentDate time.Time
	plan        planbook.DayPlan
	hasPlan     bool
	selected    int
	stats       itinerary.Stats

	daysLeft     int
	departure    time.Time
	hasDeparture bool

	mode               mode
	pendingSelectIndex int

	loading    bool
	statusLine string
	errorLine  string
}

type mode uint8

const (
	modeNormal mode = iota
	modeConfirmGenerate
)

type planLoadedMsg struct {
	date    time.Time
	plan    planbook.DayPlan
	missing bool
	err     error
}

type toggleResultMsg struct {
	index  int
	planID string
	result trip.Toggled
	err    error
}

type generateResultMsg struct {
	date      time.Time
	generated trip.Generated
	err       error
}

type countdownMsg struct {
	days      int
	departure time.Time
	unset     bool
	err       error
}

type statsLoadedMsg struct {
	stats itinerary.Stats
	err   error
}

type tickMsg time.Time

// NewModel seeds a Bubble Tea model with required collaborators.
func NewModel(ctx context.Context, planner *trip.Planner) Model {
	initialDate := today()

	return Model{
		ctx:                ctx,
		planner:            planner,
		keys:               defaultKeyMap(),
		help:               help.New(),
		refresh:            planner.Config().RefreshInterval(),
		currentDate:        initialDate,
		plan:               planbook.DayPlan{Date: initialDate},
		mode:               modeNormal,
		pendingSelectIndex: -1,
		loading:            true,
		statusLine:         "Loading today's itinerary...",
	}
}

// Init loads the initial itinerary, stats, and countdown, and starts the countdown tick.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadPlanCmd(m.currentDate),
		m.loadStatsCmd(),
		m.countdownCmd(time.Now()),
		m.tickCmd(),
	)
}

// Update wires TUI state transitions from user input and async commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tickMsg:
		return m, tea.Batch(m.countdownCmd(time.Time(msg)), m.tickCmd())
	case countdownMsg:
		return m.handleCountdown(msg)
	case statsLoadedMsg:
		return m.handleStatsLoaded(msg)
	case planLoadedMsg:
		return m.handlePlanLoaded(msg)
	case toggleResultMsg:
		return m.handleToggleResult(msg)
	case generateResultMsg:
		return m.handleGenerateResult(msg)
	default:
		return m, nil
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode == modeConfirmGenerate {
		switch {
		case key.Matches(msg, m.keys.Confirm):
			m.mode = modeNormal
			return m.generate()
		case key.Matches(msg, m.keys.ForceQuit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Cancel):
			m.mode = modeNormal
			m.statusLine = "Kept the current itinerary."
			m.errorLine = ""
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Down):
		if len(m.plan.Items) == 0 {
			return m, nil
		}
		if m.selected < len(m.plan.Items)-1 {
			m.selected++
			m.statusLine = fmt.Sprintf("Selected activity %d of %d", m.selected+1, len(m.plan.Items))
			m.errorLine = ""
		}
	case key.Matches(msg, m.keys.Up):
		if len(m.plan.Items) == 0 {
			return m, nil
		}
		if m.selected > 0 {
			m.selected--
			m.statusLine = fmt.Sprintf("Selected activity %d of %d", m.selected+1, len(m.plan.Items))
			m.errorLine = ""
		}
	case key.Matches(msg, m.keys.PrevDay):
		return m.gotoDate(m.currentDate.AddDate(0, 0, -1))
	case key.Matches(msg, m.keys.NextDay):
		return m.gotoDate(m.currentDate.AddDate(0, 0, 1))
	case key.Matches(msg, m.keys.Today):
		return m.gotoDate(today())
	case key.Matches(msg, m.keys.Reload):
		return m.reload()
	case key.Matches(msg, m.keys.Toggle):
		if len(m.plan.Items) == 0 || m.loading {
			return m, nil
		}
		return m.toggleSelected()
	case key.Matches(msg, m.keys.Generate):
		if m.loading {
			return m, nil
		}
		if m.plan.Completed() > 0 {
			m.mode = modeConfirmGenerate
			m.statusLine = ""
			m.errorLine = ""
			return m, nil
		}
		return m.generate()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

func (m Model) handleCountdown(msg countdownMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		log.Printf("countdown: %v", msg.err)
		m.errorLine = fmt.Sprintf("Countdown failed: %v", msg.err)
		return m, nil
	}
	m.hasDeparture = !msg.unset
	m.daysLeft = msg.days
	m.departure = msg.departure
	return m, nil
}

func (m Model) handleStatsLoaded(msg statsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		log.Printf("load stats: %v", msg.err)
		m.errorLine = fmt.Sprintf("Failed to load stats: %v", msg.err)
		return m, nil
	}
	m.stats = msg.stats
	return m, nil
}

func (m Model) handlePlanLoaded(msg planLoadedMsg) (tea.Model, tea.Cmd) {
	// Ignore stale results for dates we no longer display.
	if !sameDay(m.currentDate, msg.date) {
		return m, nil
	}
	m.loading = false
	if msg.err != nil {
		log.Printf("load %s: %v", msg.date.Format(itinerary.DateLayout), msg.err)
		m.errorLine = fmt.Sprintf("Failed to load %s: %v", msg.date.Format(itinerary.DateLayout), msg.err)
		m.statusLine = ""
		return m, nil
	}

	m.errorLine = ""
	m.plan = msg.plan
	m.hasPlan = !msg.missing
	if m.plan.Date.IsZero() {
		m.plan.Date = msg.date
	}

	switch {
	case msg.missing:
		m.selected = 0
		m.statusLine = fmt.Sprintf("Nothing planned for %s. Press g to generate a day.", msg.date.Format(itinerary.DateLayout))
	case len(m.plan.Items) == 0:
		m.selected = 0
		m.statusLine = "Couldn't generate a full, non-overlapping schedule. Press g to try again."
	default:
		if m.pendingSelectIndex >= 0 && m.pendingSelectIndex < len(m.plan.Items) {
			m.selected = m.pendingSelectIndex
		} else if m.selected >= len(m.plan.Items) {
			m.selected = len(m.plan.Items) - 1
		}
		m.statusLine = fmt.Sprintf("%d of %d activities done.", m.plan.Completed(), len(m.plan.Items))
	}
	m.pendingSelectIndex = -1
	return m, nil
}

func (m Model) handleToggleResult(msg toggleResultMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if msg.err != nil {
		log.Printf("toggle %d: %v", msg.index+1, msg.err)
		if errors.Is(msg.err, planbook.ErrStalePlan) {
			m.errorLine = "The itinerary changed on disk; reloading."
			m.loading = true
			return m, m.loadPlanCmd(m.currentDate)
		}
		m.errorLine = fmt.Sprintf("Toggle failed: %v", msg.err)
		m.statusLine = ""
		return m, nil
	}

	if msg.planID == m.plan.ID && msg.index >= 0 && msg.index < len(m.plan.Items) {
		m.plan.Items[msg.index] = msg.result.Item
	}
	m.stats = msg.result.Stats

	mark := "not done"
	if msg.result.Item.Done {
		mark = "done"
	}
	m.statusLine = fmt.Sprintf("Marked %s %s.", msg.result.Item.Activity.Place, mark)
	m.errorLine = ""
	if msg.planID != m.plan.ID {
		m.loading = true
		m.pendingSelectIndex = m.selected
		return m, m.loadPlanCmd(m.currentDate)
	}
	return m, nil
}

func (m Model) handleGenerateResult(msg generateResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		log.Printf("generate %s: %v", msg.date.Format(itinerary.DateLayout), msg.err)
		m.loading = false
		m.errorLine = fmt.Sprintf("Generate failed: %v", msg.err)
		m.statusLine = ""
		return m, nil
	}
	if !sameDay(m.currentDate, msg.date) {
		return m, nil
	}

	m.loading = false
	m.plan = msg.generated.Plan
	m.hasPlan = true
	m.selected = 0
	m.errorLine = ""
	if len(msg.generated.Shortfalls) > 0 {
		m.statusLine = "Couldn't generate a full, non-overlapping schedule. Press g to try again."
	} else {
		m.statusLine = fmt.Sprintf("Planned %d activities.", len(m.plan.Items))
	}
	return m, nil
}

func (m Model) gotoDate(date time.Time) (tea.Model, tea.Cmd) {
	if sameDay(m.currentDate, date) {
		return m.reload()
	}

	m.currentDate = date
	m.plan = planbook.DayPlan{Date: date}
	m.hasPlan = false
	m.selected = 0
	m.loading = true
	m.statusLine = fmt.Sprintf("Loading %s...", date.Format(itinerary.DateLayout))
	m.errorLine = ""
	m.mode = modeNormal
	m.pendingSelectIndex = -1
	return m, m.loadPlanCmd(date)
}

func (m Model) reload() (tea.Model, tea.Cmd) {
	m.loading = true
	m.pendingSelectIndex = m.selected
	m.statusLine = fmt.Sprintf("Refreshing %s...", m.currentDate.Format(itinerary.DateLayout))
	m.errorLine = ""
	return m, tea.Batch(m.loadPlanCmd(m.currentDate), m.loadStatsCmd(), m.countdownCmd(time.Now()))
}

func (m Model) toggleSelected() (tea.Model, tea.Cmd) {
	index := m.selected
	// Toggle reads and rewrites the month file and state.yaml, so only one may run.
	m.loading = true
	m.statusLine = fmt.Sprintf("Toggling activity %d...", index+1)
	m.errorLine = ""
	return m, m.toggleCmd(m.currentDate, m.plan.ID, index)
}

func (m Model) generate() (tea.Model, tea.Cmd) {
	m.loading = true
	m.statusLine = "Planning a new day..."
	m.errorLine = ""
	return m, m.generateCmd(m.currentDate)
}

func (m Model) loadPlanCmd(date time.Time) tea.Cmd {
	planner := m.planner
	ctx := m.ctx
	return func() tea.Msg {
		plan, err := planner.Day(ctx, date)
		if err != nil {
			if trip.IsNotFound(err) {
				return planLoadedMsg{
					date:    date,
					plan:    planbook.DayPlan{Date: date},
					missing: true,
				}
			}
			return planLoadedMsg{date: date, err: err}
		}
		return planLoadedMsg{date: date, plan: plan}
	}
}

func (m Model) loadStatsCmd() tea.Cmd {
	planner := m.planner
	return func() tea.Msg {
		st, err := planner.State()
		return statsLoadedMsg{stats: st.Stats, err: err}
	}
}

func (m Model) countdownCmd(now time.Time) tea.Cmd {
	planner := m.planner
	return func() tea.Msg {
		days, departure, err := planner.Countdown(now)
		if err != nil {
			if errors.Is(err, state.ErrNoDeparture) {
				return countdownMsg{unset: true}
			}
			return countdownMsg{err: err}
		}
		return countdownMsg{days: days, departure: departure}
	}
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.refresh, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) toggleCmd(date time.Time, planID string, index int) tea.Cmd {
	planner := m.planner
	ctx := m.ctx
	return func() tea.Msg {
		result, err := planner.Toggle(ctx, date, planID, index+1)
		if err != nil {
			return toggleResultMsg{index: index, planID: planID, err: err}
		}
		return toggleResultMsg{index: index, planID: planID, result: result}
	}
}

func (m Model) generateCmd(date time.Time) tea.Cmd {
	planner := m.planner
	ctx := m.ctx
	return func() tea.Msg {
		generated, err := planner.Generate(ctx, date)
		return generateResultMsg{date: date, generated: generated, err: err}
	}
}

// View renders the frame.
func (m Model) View() string {
	var b strings.Builder

	if m.hasDeparture {
		b.WriteString(headerStyle.Render(fmt.Sprintf("%d days left in the city", m.daysLeft)))
		fmt.Fprintf(&b, " (departing %s)\n", m.departure.Format(itinerary.DateLayout))
	} else {
		b.WriteString("No departure date set. Run `jalan depart YYYY-MM-DD`.\n")
	}
	fmt.Fprintf(&b, "Study time: %dh  Places visited: %d  Productivity: %d%%\n\n",
		m.stats.StudyHours, m.stats.PlacesVisited, m.stats.Productivity)

	header := m.currentDate.Format("Monday, 02 January 2006")
	b.WriteString(headerStyle.Render(header))
	b.WriteByte('\n')
	b.WriteString(strings.Repeat("-", len(header)))
	b.WriteString("\n\n")

	switch {
	case m.loading && len(m.plan.Items) == 0:
		b.WriteString("Loading...\n")
	case !m.hasPlan:
		b.WriteString("(nothing planned)\n")
	case len(m.plan.Items) == 0:
		b.WriteString("(no activities fit)\n")
	default:
		for i, item := range m.plan.Items {
			cursor := " "
			if i == m.selected {
				cursor = selectedMark
			}
			b.WriteString(cursor)
			b.WriteByte(' ')
			line := formatItem(item)
			if item.Done {
				line = doneStyle.Render(line)
			}
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}

	if m.errorLine != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("! " + m.errorLine))
		b.WriteByte('\n')
	} else if m.statusLine != "" {
		b.WriteString("\n")
		b.WriteString(m.statusLine)
		b.WriteByte('\n')
	}

	if m.mode == modeConfirmGenerate {
		fmt.Fprintf(&b, "\nReplace this itinerary? %d completed activit%s will be cleared. (y/n)\n",
			m.plan.Completed(), plural(m.plan.Completed()))
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteByte('\n')

	return b.String()
}

func today() time.Time {
	now := time.Now().In(time.Local)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func plural(count int) string {
	if count == 1 {
		return "y"
	}
	return "ies"
}

func formatItem(item planbook.Item) string {
	status := "todo"
	if item.Done {
		status = "done"
	}
	a := item.Activity

	var builder strings.Builder
	builder.Grow(32 + len(a.Time) + len(a.Place) + len(a.Location))

	fmt.Fprintf(&builder, "[%s] %-20s %s", status, a.Time, a.Place)
	if a.Location != "" {
		builder.WriteString(" @ ")
		builder.WriteString(a.Location)
	}
	if a.Kind != "" {
		builder.WriteString(" (")
		builder.WriteString(a.Kind)
		builder.WriteByte(')')
	}

	return builder.String()
}
