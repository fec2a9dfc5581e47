package board

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tableflip.dev/trip/pkg/activity"
	"tableflip.dev/trip/pkg/glyph"
	"tableflip.dev/trip/pkg/metrics"
	"tableflip.dev/trip/pkg/reorder"
	"tableflip.dev/trip/pkg/store"
	"tableflip.dev/trip/pkg/timeutil"
)

const columnWidth = 30

type styles struct {
	header   lipgloss.Style
	column   lipgloss.Style
	focused  lipgloss.Style
	carried  lipgloss.Style
	title    lipgloss.Style
	faint    lipgloss.Style
	selected lipgloss.Style
	status   lipgloss.Style
	prompt   lipgloss.Style
}

func newStyles(t store.Theme) styles {
	accent := lipgloss.Color("#5B8DEF")
	text := lipgloss.Color("#222222")
	dim := lipgloss.Color("#888888")
	border := lipgloss.Color("#CCCCCC")
	if t == store.ThemeDark {
		accent = lipgloss.Color("#FF6B6B")
		text = lipgloss.Color("#EEEEEE")
		dim = lipgloss.Color("#AAAAAA")
		border = lipgloss.Color("#444444")
	}
	column := lipgloss.NewStyle().
		Width(columnWidth).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)
	return styles{
		header:   lipgloss.NewStyle().Bold(true).Foreground(accent),
		column:   column,
		focused:  column.BorderForeground(accent),
		carried:  column.BorderForeground(accent).BorderStyle(lipgloss.DoubleBorder()),
		title:    lipgloss.NewStyle().Bold(true).Foreground(text),
		faint:    lipgloss.NewStyle().Foreground(dim),
		selected: lipgloss.NewStyle().Bold(true).Foreground(accent),
		status:   lipgloss.NewStyle().Foreground(dim),
		prompt:   lipgloss.NewStyle().Foreground(accent),
	}
}

// View renders the board.
func (m Model) View() string {
	if m.mode == modeHelp {
		return m.helpView()
	}
	parts := []string{m.headerView(), m.boardView()}
	switch m.mode {
	case modeInsert, modeCommand:
		prefix := "> "
		if m.mode == modeCommand {
			prefix = ": "
		}
		parts = append(parts, m.styles.prompt.Render(prefix)+m.input.View())
	case modeSearch:
		parts = append(parts, m.searchView())
	}
	parts = append(parts, m.styles.status.Render(m.status))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) headerView() string {
	line := fmt.Sprintf("Trip  %d days  %d activities  %s  $%.2f",
		len(m.doc.Days),
		metrics.ActivityCount(m.doc),
		timeutil.FormatMinutesCompact(metrics.TripTotalDuration(m.doc)),
		metrics.TripTotalCost(m.doc),
	)
	if first, last, ok := metrics.DateRange(m.doc); ok {
		line += fmt.Sprintf("  %s - %s", first, last)
	}
	return m.styles.header.Render(line)
}

// visibleDays is the window of columns that fits the terminal and contains
// the focused day.
func (m Model) visibleDays() (from, to int) {
	n := len(m.doc.Days)
	fit := n
	if m.width > 0 {
		fit = m.width / (columnWidth + 4)
		if fit < 1 {
			fit = 1
		}
	}
	if fit >= n {
		return 0, n
	}
	from = m.day - fit/2
	if from < 0 {
		from = 0
	}
	if from+fit > n {
		from = n - fit
	}
	return from, from + fit
}

func (m Model) boardView() string {
	if len(m.doc.Days) == 0 {
		return m.styles.faint.Render("No days yet. Press a to add one.")
	}
	from, to := m.visibleDays()
	cols := make([]string, 0, to-from)
	for i := from; i < to; i++ {
		cols = append(cols, m.columnView(i))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (m Model) columnView(index int) string {
	day := m.doc.Days[index]
	focused := index == m.day
	inner := columnWidth - 2

	var lines []string
	lines = append(lines, m.styles.title.Render(truncate(day.Title, inner)))

	var sub []string
	if date, ok := m.doc.DayDate(index); ok {
		sub = append(sub, date.Format("Mon Jan 2"))
	}
	if r, ok := m.doc.WeatherFor(index); ok {
		sub = append(sub, fmt.Sprintf("%s %.0f°C", glyph.ForCondition(r.Condition), r.Temperature))
	}
	sub = append(sub, timeutil.FormatMinutesCompact(metrics.DayTotalDuration(day)), fmt.Sprintf("$%.2f", metrics.DayTotalCost(day)))
	lines = append(lines, m.styles.faint.Render(truncate(strings.Join(sub, "  "), inner)), "")

	carrying := m.grab != nil && m.grab.kind == reorder.KindActivity
	for i, a := range day.Activities {
		if focused && carrying && i == m.row {
			lines = append(lines, m.styles.selected.Render("┄ drop here ┄"))
		}
		lines = append(lines, m.activityLine(a, focused && !carrying && i == m.row, m.grab != nil && m.grab.id == a.ID, inner))
	}
	if focused && carrying && m.row >= len(day.Activities) {
		lines = append(lines, m.styles.selected.Render("┄ drop here ┄"))
	}
	if len(day.Activities) == 0 && !(focused && carrying) {
		lines = append(lines, m.styles.faint.Render("no activities"))
	}

	style := m.styles.column
	switch {
	case m.grab != nil && m.grab.kind == reorder.KindDay && m.grab.id == day.ID:
		style = m.styles.carried
	case focused:
		style = m.styles.focused
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (m Model) activityLine(a activity.Activity, selected, carried bool, width int) string {
	cursor := "  "
	if selected {
		cursor = "› "
	}
	if carried {
		cursor = "✥ "
	}
	text := fmt.Sprintf("%s%s %s", cursor, glyph.ForCategory(a.Category), a.Title)
	if a.Time != "" {
		text += " " + a.Time
	}
	text = truncate(text, width)
	switch {
	case carried:
		return m.styles.faint.Render(text)
	case selected:
		return m.styles.selected.Render(text)
	}
	return text
}

func (m Model) searchView() string {
	lines := []string{m.styles.prompt.Render("/ ") + m.input.View()}
	for i, p := range m.results {
		line := fmt.Sprintf("  %s  %s", p.Name, m.styles.faint.Render(p.Address))
		if i == m.result {
			line = m.styles.selected.Render("› "+p.Name) + "  " + m.styles.faint.Render(p.Address)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m Model) helpView() string {
	rows := [][2]string{
		{"h/l", "focus previous/next day"},
		{"j/k g/G", "focus activity"},
		{"space", "pick up activity, drop at focus"},
		{"m", "pick up day, drop at focus"},
		{"esc", "cancel the pick up"},
		{"a / X", "add day / remove day"},
		{"r", "rename day"},
		{"o", "add activity"},
		{"1-6", "quick add a template"},
		{"e", "edit activity title"},
		{"d", "delete activity"},
		{"/", "search places, enter adds to the day"},
		{"t", "toggle theme"},
		{"w", "refresh weather"},
		{":", "start YYYY-MM-DD, theme, weather, q"},
		{"q", "quit"},
	}
	var b strings.Builder
	b.WriteString(m.styles.header.Render("Keys") + "\n\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "  %-8s %s\n", r[0], r[1])
	}
	b.WriteString("\n" + m.styles.faint.Render("Templates:"))
	for i, t := range activity.Templates() {
		fmt.Fprintf(&b, " %d %s", i+1, t.Name)
	}
	return b.String()
}

func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 0 || len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}
