// Package board is the full screen itinerary editor. Days are columns,
// activities are rows. Picking an item up and dropping it elsewhere produces
// the same drag-end descriptor a pointer drag would.
package board

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/trip/pkg/activity"
	"tableflip.dev/trip/pkg/app"
	"tableflip.dev/trip/pkg/itinerary"
	"tableflip.dev/trip/pkg/places"
	"tableflip.dev/trip/pkg/reorder"
	"tableflip.dev/trip/pkg/store"
)

type mode int

const (
	modeNormal mode = iota
	modeInsert
	modeCommand
	modeSearch
	modeHelp
)

type action int

const (
	actionNone action = iota
	actionAddActivity
	actionEditTitle
	actionRenameDay
)

const normalHelp = "h/l days, j/k activities, space pick up/drop, m move day, o add, / search, ? help, q quit"

// messages
type errMsg struct{ err error }
type committedMsg struct {
	status string
	err    error
}
type searchResultMsg struct {
	query   string
	results []places.Place
	err     error
}
type themeMsg struct{ theme store.Theme }

// grab is an item that has been picked up and not yet dropped.
type grab struct {
	kind reorder.ItemKind
	from reorder.Location
	id   string
}

// target is what an insert-mode edit applies to.
type target struct {
	dayID      string
	activityID string
}

// Model is the board state.
type Model struct {
	svc *app.Service
	ctx context.Context
	doc itinerary.Document

	mode   mode
	action action
	target target

	day  int // focused column
	row  int // focused activity in that column
	grab *grab

	input   textinput.Model
	results []places.Place
	result  int

	status string
	theme  store.Theme
	styles styles

	width  int
	height int
}

// New creates a board over svc. The service must already be open.
func New(ctx context.Context, svc *app.Service) Model {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Prompt = ""
	ti.Cursor.SetMode(cursor.CursorStatic)

	return Model{
		svc:    svc,
		ctx:    ctx,
		doc:    svc.Snapshot(),
		input:  ti,
		status: normalHelp,
		theme:  store.ThemeLight,
		styles: newStyles(store.ThemeLight),
	}
}

// Run starts the board and blocks until the user quits.
func Run(ctx context.Context, svc *app.Service) error {
	p := tea.NewProgram(New(ctx, svc), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// Init loads the saved theme.
func (m Model) Init() tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		t, err := svc.Theme(ctx)
		if err != nil {
			return errMsg{err}
		}
		return themeMsg{t}
	}
}

// Update handles messages and keybindings.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case errMsg:
		m.status = "ERR: " + msg.err.Error()
	case themeMsg:
		m.theme = msg.theme
		m.styles = newStyles(msg.theme)
	case committedMsg:
		m.refresh()
		if msg.err != nil {
			m.status = "ERR: " + msg.err.Error()
		} else if msg.status != "" {
			m.status = msg.status
		}
	case searchResultMsg:
		// Results of a search that has since been replaced are dropped.
		if errors.Is(msg.err, app.ErrSuperseded) || m.mode != modeSearch || msg.query != m.query() {
			break
		}
		if msg.err != nil {
			m.status = "ERR: " + msg.err.Error()
			break
		}
		m.results = msg.results
		m.result = 0
		m.status = fmt.Sprintf("%d places for %q", len(msg.results), msg.query)
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeHelp:
			if key := msg.String(); key == "q" || key == "esc" || key == "?" {
				m.mode = modeNormal
			}
		case modeInsert:
			cmds = append(cmds, m.updateInsert(msg))
		case modeCommand:
			cmds = append(cmds, m.updateCommand(msg))
		case modeSearch:
			cmds = append(cmds, m.updateSearch(msg))
		case modeNormal:
			cmds = append(cmds, m.updateNormal(msg))
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) updateNormal(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		if m.grab != nil {
			return m.drop(nil)
		}
		return tea.Quit
	case "esc":
		if m.grab != nil {
			return m.drop(nil)
		}
	case "?":
		m.mode = modeHelp

	// movement
	case "h", "left":
		m.focusDay(m.day - 1)
	case "l", "right":
		m.focusDay(m.day + 1)
	case "j", "down":
		m.focusRow(m.row + 1)
	case "k", "up":
		m.focusRow(m.row - 1)
	case "g":
		m.focusRow(0)
	case "G":
		m.focusRow(m.maxRow())

	// pick up and drop
	case " ", "enter":
		if m.grab != nil {
			return m.dropHere()
		}
		if a, ok := m.currentActivity(); ok {
			day := m.doc.Days[m.day]
			m.grab = &grab{
				kind: reorder.KindActivity,
				from: reorder.Location{ContainerID: day.ID, Index: m.row},
				id:   a.ID,
			}
			m.status = fmt.Sprintf("Carrying %q: move and press space to drop, esc to cancel", a.Title)
		}
	case "m":
		if m.grab != nil {
			return m.dropHere()
		}
		if d, ok := m.currentDay(); ok {
			m.grab = &grab{
				kind: reorder.KindDay,
				from: reorder.Location{ContainerID: reorder.ContainerDays, Index: m.day},
				id:   d.ID,
			}
			m.status = fmt.Sprintf("Carrying %s: h/l to move, space to drop, esc to cancel", d.Title)
		}

	// days
	case "a":
		return m.mutate("Day added", func(ctx context.Context, svc *app.Service) error {
			_, err := svc.AddDay(ctx)
			return err
		})
	case "X":
		if d, ok := m.currentDay(); ok {
			return m.mutate(d.Title+" removed", func(ctx context.Context, svc *app.Service) error {
				return svc.RemoveDay(ctx, d.ID)
			})
		}
	case "r":
		if d, ok := m.currentDay(); ok {
			m.startInsert(actionRenameDay, target{dayID: d.ID}, "Day title", d.Title)
		}

	// activities
	case "o":
		if d, ok := m.currentDay(); ok {
			m.startInsert(actionAddActivity, target{dayID: d.ID}, "New activity title", "")
		}
	case "e", "i":
		if a, ok := m.currentActivity(); ok {
			m.startInsert(actionEditTitle, target{dayID: m.doc.Days[m.day].ID, activityID: a.ID}, "Activity title", a.Title)
		}
	case "d", "x":
		if a, ok := m.currentActivity(); ok {
			dayID := m.doc.Days[m.day].ID
			return m.mutate(fmt.Sprintf("Deleted %q", a.Title), func(ctx context.Context, svc *app.Service) error {
				return svc.DeleteActivity(ctx, dayID, a.ID)
			})
		}
	case "1", "2", "3", "4", "5", "6":
		templates := activity.Templates()
		i := int(msg.String()[0] - '1')
		if d, ok := m.currentDay(); ok && i < len(templates) {
			name := templates[i].Name
			return m.mutate(name+" added", func(ctx context.Context, svc *app.Service) error {
				_, err := svc.QuickAdd(ctx, d.ID, name, activity.Input{})
				return err
			})
		}

	// other
	case "/":
		m.mode = modeSearch
		m.results = nil
		m.result = 0
		m.input.Placeholder = "Search places"
		m.input.SetValue("")
		m.input.Focus()
	case ":":
		m.mode = modeCommand
		m.input.Placeholder = "start YYYY-MM-DD | theme light|dark | weather | q"
		m.input.SetValue("")
		m.input.Focus()
	case "t":
		next := store.ThemeDark
		if m.theme == store.ThemeDark {
			next = store.ThemeLight
		}
		return m.setTheme(next)
	case "w":
		return m.mutate("Weather refreshed", func(ctx context.Context, svc *app.Service) error {
			return svc.RefreshWeather(ctx)
		})
	}
	return nil
}

func (m *Model) updateInsert(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		value := strings.TrimSpace(m.input.Value())
		t, act := m.target, m.action
		m.leaveInput()
		switch act {
		case actionAddActivity:
			return m.mutate("Added", func(ctx context.Context, svc *app.Service) error {
				_, err := svc.AddActivity(ctx, t.dayID, activity.Input{Title: value})
				return err
			})
		case actionEditTitle:
			if value == "" {
				m.status = "Title unchanged"
				return nil
			}
			return m.mutate("Edited", func(ctx context.Context, svc *app.Service) error {
				_, err := svc.UpdateActivity(ctx, t.dayID, t.activityID, activity.Patch{Title: &value})
				return err
			})
		case actionRenameDay:
			return m.mutate("Renamed", func(ctx context.Context, svc *app.Service) error {
				return svc.RenameDay(ctx, t.dayID, value)
			})
		}
	case "esc":
		m.leaveInput()
		m.status = "Cancelled"
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return cmd
	}
	return nil
}

func (m *Model) updateCommand(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		fields := strings.Fields(m.input.Value())
		m.leaveInput()
		return m.runCommand(fields)
	case "esc":
		m.leaveInput()
		m.status = "Command cancelled"
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return cmd
	}
	return nil
}

func (m *Model) runCommand(fields []string) tea.Cmd {
	if len(fields) == 0 {
		return nil
	}
	switch fields[0] {
	case "q", "quit", "exit":
		return tea.Quit
	case "start":
		var start *itinerary.Date
		if len(fields) > 1 {
			d, err := itinerary.ParseDate(fields[1])
			if err != nil {
				m.status = "ERR: " + err.Error()
				return nil
			}
			start = &d
		}
		return m.mutate("Start date set", func(ctx context.Context, svc *app.Service) error {
			return svc.SetStartDate(ctx, start)
		})
	case "theme":
		if len(fields) < 2 {
			m.status = "theme needs light or dark"
			return nil
		}
		t, err := store.ParseTheme(fields[1])
		if err != nil {
			m.status = "ERR: " + err.Error()
			return nil
		}
		return m.setTheme(t)
	case "weather":
		return m.mutate("Weather refreshed", func(ctx context.Context, svc *app.Service) error {
			return svc.RefreshWeather(ctx)
		})
	}
	m.status = fmt.Sprintf("Unknown command: %s", strings.Join(fields, " "))
	return nil
}

func (m *Model) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.svc.CancelSearch()
		m.results = nil
		m.leaveInput()
		m.status = "Search cancelled"
		return nil
	case "up", "ctrl+p":
		if m.result > 0 {
			m.result--
		}
		return nil
	case "down", "ctrl+n":
		if m.result < len(m.results)-1 {
			m.result++
		}
		return nil
	case "enter":
		d, ok := m.currentDay()
		if !ok || len(m.results) == 0 {
			return nil
		}
		p := m.results[m.result]
		m.svc.CancelSearch()
		m.results = nil
		m.leaveInput()
		return m.mutate(fmt.Sprintf("Added %s to %s", p.Name, d.Title), func(ctx context.Context, svc *app.Service) error {
			_, err := svc.AddPlace(ctx, d.ID, p)
			return err
		})
	}

	before := m.query()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	q := m.query()
	if q == before {
		return cmd
	}
	m.results = nil
	m.result = 0
	if q == "" {
		m.svc.CancelSearch()
		return cmd
	}
	m.status = "Searching…"
	return tea.Batch(cmd, m.search(q))
}

func (m Model) search(q string) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		results, err := svc.Search(ctx, q)
		return searchResultMsg{query: q, results: results, err: err}
	}
}

func (m Model) query() string {
	return strings.TrimSpace(m.input.Value())
}

// mutate runs fn against the service off the update loop and reports back.
func (m Model) mutate(status string, fn func(ctx context.Context, svc *app.Service) error) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		return committedMsg{status: status, err: fn(ctx, svc)}
	}
}

func (m *Model) setTheme(t store.Theme) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		if err := svc.SetTheme(ctx, t); err != nil {
			return errMsg{err}
		}
		return themeMsg{t}
	}
}

// dropHere drops the carried item at the focused position.
func (m *Model) dropHere() tea.Cmd {
	if m.grab == nil {
		return nil
	}
	if m.grab.kind == reorder.KindDay {
		return m.drop(&reorder.Location{ContainerID: reorder.ContainerDays, Index: m.day})
	}
	d, ok := m.currentDay()
	if !ok {
		return m.drop(nil)
	}
	return m.drop(&reorder.Location{ContainerID: d.ID, Index: m.row})
}

// drop finishes a pick up. A nil destination is a drop outside every list.
func (m *Model) drop(dst *reorder.Location) tea.Cmd {
	g := *m.grab
	m.grab = nil
	drag := reorder.DragEnd{Type: g.kind, Source: g.from, Destination: dst}
	if dst != nil {
		if g.kind == reorder.KindDay {
			m.day = dst.Index
		} else {
			m.day = itinerary.DayIndex(m.doc, dst.ContainerID)
			m.row = dst.Index
		}
	}
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		res, err := svc.Drag(ctx, drag)
		switch {
		case err != nil:
			return committedMsg{err: err}
		case res.NoDestination:
			return committedMsg{status: "Drop cancelled"}
		case !res.Applied:
			return committedMsg{status: "Nothing moved"}
		case res.CrossDay && res.Moved != nil:
			day, _ := itinerary.FindDay(svc.Snapshot(), dst.ContainerID)
			return committedMsg{status: fmt.Sprintf("Moved %q to %s", res.Moved.Title, day.Title)}
		}
		return committedMsg{status: "Moved"}
	}
}

func (m *Model) startInsert(a action, t target, placeholder, value string) {
	m.mode = modeInsert
	m.action = a
	m.target = t
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
}

func (m *Model) leaveInput() {
	m.mode = modeNormal
	m.action = actionNone
	m.target = target{}
	m.input.Reset()
	m.input.Blur()
}

// refresh pulls the latest document and keeps the focus in range.
func (m *Model) refresh() {
	m.doc = m.svc.Snapshot()
	if m.grab != nil {
		// Follow the carried item if another change moved it.
		m.grab = m.relocate(*m.grab)
	}
	m.focusDay(m.day)
}

func (m *Model) relocate(g grab) *grab {
	switch g.kind {
	case reorder.KindDay:
		i := itinerary.DayIndex(m.doc, g.id)
		if i < 0 {
			return nil
		}
		g.from.Index = i
	default:
		_, loc, ok := itinerary.FindActivity(m.doc, g.id)
		if !ok {
			return nil
		}
		g.from = reorder.Location{ContainerID: loc.DayID, Index: loc.Index}
	}
	return &g
}

func (m *Model) focusDay(i int) {
	if n := len(m.doc.Days); i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	m.day = i
	m.focusRow(m.row)
}

func (m *Model) focusRow(i int) {
	if last := m.maxRow(); i > last {
		i = last
	}
	if i < 0 {
		i = 0
	}
	m.row = i
}

// maxRow is the last selectable row. While carrying an activity the slot
// after the last one is selectable too.
func (m Model) maxRow() int {
	d, ok := m.currentDay()
	if !ok {
		return 0
	}
	if m.grab != nil && m.grab.kind == reorder.KindActivity {
		return len(d.Activities)
	}
	return len(d.Activities) - 1
}

func (m Model) currentDay() (itinerary.Day, bool) {
	if m.day < 0 || m.day >= len(m.doc.Days) {
		return itinerary.Day{}, false
	}
	return m.doc.Days[m.day], true
}

func (m Model) currentActivity() (activity.Activity, bool) {
	d, ok := m.currentDay()
	if !ok || m.row < 0 || m.row >= len(d.Activities) {
		return activity.Activity{}, false
	}
	return d.Activities[m.row], true
}
