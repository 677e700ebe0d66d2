package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"tennisoath/internal/engine"
	"tennisoath/internal/storage"
	"tennisoath/internal/ui"
)

type view int

const (
	viewOath view = iota
	viewCalendar
)

type boardModel struct {
	ctx     context.Context
	tracker *engine.Tracker
	themes  ThemeStore
	delay   time.Duration

	width  int
	height int

	view     view
	selected int

	// choosing is true while the role picker is open: on first run, or after
	// the switch key.
	choosing   bool
	roleCursor int

	// signedFlash keeps the success banner up until the deferred reset lands.
	signedFlash bool

	lastLog string
}

// resetMsg is the deferred acknowledgment reset for one signing.
type resetMsg struct {
	token uuid.UUID
}

type themeLoadedMsg struct {
	theme storage.Theme
	err   error
}

type themeSavedMsg struct {
	theme storage.Theme
	err   error
}

func newBoardModel(ctx context.Context, tracker *engine.Tracker, themes ThemeStore, opts Options) boardModel {
	_, hasRole := tracker.CurrentRole()
	return boardModel{
		ctx:      ctx,
		tracker:  tracker,
		themes:   themes,
		delay:    opts.ResetDelay,
		choosing: !hasRole,
		lastLog:  "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadThemeCmd()
}

func (m boardModel) loadThemeCmd() tea.Cmd {
	if m.themes == nil {
		return nil
	}
	return func() tea.Msg {
		t, err := m.themes.Get(m.ctx)
		return themeLoadedMsg{theme: t, err: err}
	}
}

func (m boardModel) saveThemeCmd(t storage.Theme) tea.Cmd {
	if m.themes == nil {
		return nil
	}
	return func() tea.Msg {
		return themeSavedMsg{theme: t, err: m.themes.Set(m.ctx, t)}
	}
}

func (m boardModel) resetCmd(token uuid.UUID) tea.Cmd {
	if m.delay <= 0 {
		return func() tea.Msg { return resetMsg{token: token} }
	}
	return tea.Tick(m.delay, func(time.Time) tea.Msg { return resetMsg{token: token} })
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case themeLoadedMsg:
		if msg.err != nil {
			m.lastLog = "Theme load failed: " + msg.err.Error()
			return m, nil
		}
		ui.UseTheme(msg.theme == storage.ThemeDark)
		return m, nil
	case themeSavedMsg:
		if msg.err != nil {
			m.lastLog = "Theme save failed: " + msg.err.Error()
			return m, nil
		}
		m.lastLog = fmt.Sprintf("Theme: %s.", msg.theme)
		return m, nil
	case resetMsg:
		if m.tracker.ResetAfterSign(m.ctx, msg.token) {
			m.signedFlash = false
			m.selected = 0
			m.lastLog = "Checklist cleared. See you next session!"
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m boardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit
	}

	if m.choosing {
		return m.handleRoleKey(key)
	}

	switch key {
	case "tab", "v":
		if m.view == viewOath {
			m.view = viewCalendar
		} else {
			m.view = viewOath
		}
		return m, nil
	case "t":
		next := storage.ThemeDark
		if ui.IsDark() {
			next = storage.ThemeLight
		}
		ui.UseTheme(next == storage.ThemeDark)
		return m, m.saveThemeCmd(next)
	case "r":
		m.choosing = true
		m.roleCursor = 0
		if role, ok := m.tracker.CurrentRole(); ok && role == engine.RolePlayer {
			m.roleCursor = 1
		}
		return m, nil
	}

	if m.view == viewCalendar {
		return m.handleCalendarKey(key)
	}
	return m.handleOathKey(key)
}

func (m boardModel) handleRoleKey(key string) (tea.Model, tea.Cmd) {
	_, hasRole := m.tracker.CurrentRole()
	switch key {
	case "up", "k", "left", "h":
		if m.roleCursor > 0 {
			m.roleCursor--
		}
	case "down", "j", "right", "l":
		if m.roleCursor < len(engine.Roles)-1 {
			m.roleCursor++
		}
	case "esc":
		if hasRole {
			m.choosing = false
		}
	case "enter", " ":
		role := engine.Roles[m.roleCursor]
		var err error
		if hasRole {
			_, err = m.tracker.SwitchRole(m.ctx, role)
		} else {
			_, err = m.tracker.SelectRole(m.ctx, role)
		}
		if err != nil {
			m.lastLog = "Role change failed: " + err.Error()
			return m, nil
		}
		m.choosing = false
		m.signedFlash = false
		m.selected = 0
		m.view = viewOath
		m.lastLog = "Role: " + role.Badge()
	}
	return m, nil
}

func (m boardModel) handleOathKey(key string) (tea.Model, tea.Cmd) {
	n := len(m.tracker.CurrentQuestions())
	switch key {
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < n-1 {
			m.selected++
		}
	case " ", "enter", "x":
		if m.tracker.ToggleQuestion(m.ctx, m.selected) && m.selected < n-1 && m.tracker.IsAcknowledged(m.selected) {
			m.selected++
		}
	case "s":
		res, ok := m.tracker.SignToday(m.ctx)
		if !ok {
			done, total := m.tracker.Progress()
			m.lastLog = fmt.Sprintf("Acknowledge all %d points first (%d/%d).", total, done, total)
			return m, nil
		}
		m.signedFlash = true
		if res.AlreadySigned {
			m.lastLog = fmt.Sprintf("%s already signed %s.", res.Role.Badge(), res.Date)
		} else {
			m.lastLog = fmt.Sprintf("%s Oath signed for %s!", ui.IconTennis, res.Date)
		}
		return m, m.resetCmd(res.Token)
	}
	return m, nil
}

func (m boardModel) handleCalendarKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "left", "h":
		if !m.tracker.NavigateMonth(-1) {
			m.lastLog = "Can't go back further."
		}
	case "right", "l":
		if !m.tracker.NavigateMonth(+1) {
			m.lastLog = "Already at the current month."
		}
	}
	return m, nil
}

func (m boardModel) View() string {
	if m.choosing {
		return m.renderRolePicker() + m.renderFooter()
	}
	var body string
	if m.view == viewCalendar {
		body = m.renderCalendar()
	} else {
		body = m.renderOath()
	}
	return m.renderHeader() + "\n\n" + body + m.renderFooter()
}

func (m boardModel) renderHeader() string {
	role, _ := m.tracker.CurrentRole()
	return strings.Join([]string{
		ui.Heading(ui.IconTennis, "Tennis Oath"),
		ui.Muted.Render(role.Badge()),
		ui.Gold.Render(fmt.Sprintf("%s %d", ui.IconFire, m.tracker.CalculateStreak())),
		ui.LabelValue("Total", m.tracker.TotalSigns()),
		ui.LabelValue("Week", m.tracker.WeekSigns()),
	}, "  ")
}

func (m boardModel) renderRolePicker() string {
	_, hasRole := m.tracker.CurrentRole()
	title := "Who is taking the oath?"
	if hasRole {
		title = "Switch role"
	}
	lines := []string{ui.Heading(ui.IconTennis, title), ""}
	for i, r := range engine.Roles {
		cursor := "  "
		label := r.Badge()
		if i == m.roleCursor {
			cursor = "> "
			label = ui.SelectedRow.Render(label)
		}
		lines = append(lines, cursor+label)
	}
	lines = append(lines, "", ui.Muted.Render("↑/↓ choose · enter confirm"+escHint(hasRole)))
	return strings.Join(lines, "\n")
}

func escHint(hasRole bool) string {
	if hasRole {
		return " · esc cancel"
	}
	return ""
}

func (m boardModel) renderOath() string {
	role, _ := m.tracker.CurrentRole()
	lines := []string{ui.H2.Render(role.Header()), ui.Muted.Render(role.Intro()), ""}
	for i, q := range m.tracker.CurrentQuestions() {
		cursor := "  "
		text := q.Icon + " " + q.Text
		if i == m.selected {
			cursor = "> "
			text = ui.SelectedRow.Render(text)
		}
		lines = append(lines, fmt.Sprintf("%s%s %s", cursor, ui.Check(m.tracker.IsAcknowledged(i)), text))
	}
	lines = append(lines, "")
	if m.signedFlash {
		lines = append(lines, ui.Good.Render(ui.IconTennis+" Oath Signed!"))
	} else {
		lines = append(lines, ui.SignHelper(m.tracker.Progress()))
	}
	return strings.Join(lines, "\n")
}

func (m boardModel) renderCalendar() string {
	prev, next := "◀", "▶"
	if !m.tracker.IsPrevNavigable() {
		prev = ui.Muted.Render(prev)
	}
	if !m.tracker.IsNextNavigable() {
		next = ui.Muted.Render(next)
	}
	return strings.Join([]string{
		prev + " " + ui.IconCal + " " + next,
		ui.RenderCalendar(m.tracker.Calendar()),
		ui.CalendarLegend(),
	}, "\n")
}

func (m boardModel) renderFooter() string {
	keys := "space toggle · s sign · tab calendar · r role · t theme · q quit"
	if m.view == viewCalendar {
		keys = "←/→ month · tab checklist · r role · t theme · q quit"
	}
	return "\n\n" + m.lastLog + "\n" + ui.Muted.Render(keys) + "\n"
}
