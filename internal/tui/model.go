// Package tui draws a lead board in the terminal and moves cards with the
// same optimistic transition core the HTTP API uses.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/xavierca1/ligue-crm/internal/board"
	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

const (
	maxNotices      = 3
	minColumnWidth  = 18
	msgLoadFailed   = "Erro ao carregar os leads."
	msgDetailFailed = "Erro ao buscar detalhes."
)

type DetailsLoader interface {
	Execute(ctx context.Context, ownerID, leadID string) (*usecase.LeadDetailsOutput, error)
}

type (
	loadedMsg  struct{ err error }
	settledMsg struct{ t *board.Transition }
	detailsMsg struct {
		out *usecase.LeadDetailsOutput
		err error
	}
)

type Model struct {
	ctx     context.Context
	board   *board.Board
	ownerID string
	details DetailsLoader
	styles  Styles

	cols     []board.Column
	col, row int
	// selected follows a card across refreshes.
	selected string

	query     board.Query
	statusIdx int
	search    textinput.Model
	searching bool

	notices []board.Notification
	detail  *usecase.LeadDetailsOutput
	loading bool

	width, height int
}

func New(ctx context.Context, b *board.Board, ownerID string, details DetailsLoader) Model {
	ti := textinput.New()
	ti.Placeholder = "nome ou e-mail"
	ti.Prompt = "/ "
	ti.CharLimit = 100

	return Model{
		ctx:     ctx,
		board:   b,
		ownerID: ownerID,
		details: details,
		styles:  DefaultStyles(),
		search:  ti,
		loading: true,
		width:   120,
	}
}

func (m Model) Init() tea.Cmd {
	return m.load(false)
}

func (m Model) load(force bool) tea.Cmd {
	b, ctx := m.board, m.ctx
	return func() tea.Msg {
		if force {
			return loadedMsg{err: b.Resync(ctx)}
		}
		return loadedMsg{err: b.EnsureLoaded(ctx)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case loadedMsg:
		m.loading = false
		if msg.err != nil {
			m.pushNotice(board.Notification{Severity: board.SeverityError, Title: msgLoadFailed, Description: msg.err.Error()})
		}
		m.refresh()
		return m, nil

	case settledMsg:
		for _, n := range msg.t.Notices {
			m.pushNotice(n)
		}
		m.refresh()
		return m, nil

	case detailsMsg:
		if msg.err != nil {
			m.pushNotice(board.Notification{Severity: board.SeverityError, Title: msgDetailFailed})
			return m, nil
		}
		m.detail = msg.out
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.searching {
		switch msg.Type {
		case tea.KeyEnter, tea.KeyEsc:
			m.searching = false
			m.search.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.query.Search = m.search.Value()
		m.refresh()
		return m, cmd
	}

	if m.detail != nil {
		if key.Matches(msg, keys.Back, keys.Details, keys.Quit) {
			m.detail = nil
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.MoveLeft):
		return m.move(-1)
	case key.Matches(msg, keys.MoveRight):
		return m.move(+1)
	case key.Matches(msg, keys.Left):
		m.focusColumn(m.col - 1)
	case key.Matches(msg, keys.Right):
		m.focusColumn(m.col + 1)
	case key.Matches(msg, keys.Up):
		m.focusRow(m.row - 1)
	case key.Matches(msg, keys.Down):
		m.focusRow(m.row + 1)
	case key.Matches(msg, keys.Search):
		m.searching = true
		return m, m.search.Focus()
	case key.Matches(msg, keys.Filter):
		m.cycleStatus()
	case key.Matches(msg, keys.Reload):
		m.loading = true
		return m, m.load(true)
	case key.Matches(msg, keys.Details):
		return m, m.openDetails()
	}
	return m, nil
}

// move starts an optimistic transition for the selected card and finishes it
// off the UI goroutine.
func (m Model) move(dir int) (tea.Model, tea.Cmd) {
	lead, ok := m.current()
	if !ok {
		return m, nil
	}
	stages := m.board.Stages()
	var target entity.Stage
	if dir < 0 {
		target, ok = stages.Prev(lead.Status)
	} else {
		target, ok = stages.Next(lead.Status)
	}
	if !ok {
		return m, nil
	}

	t, ok := m.board.Begin(lead.ID, target)
	if !ok {
		return m, nil
	}
	m.refresh()

	b, ctx := m.board, m.ctx
	return m, func() tea.Msg {
		b.Complete(ctx, t)
		return settledMsg{t: t}
	}
}

func (m Model) openDetails() tea.Cmd {
	lead, ok := m.current()
	if !ok || m.details == nil {
		return nil
	}
	d, ctx, owner := m.details, m.ctx, m.ownerID
	return func() tea.Msg {
		out, err := d.Execute(ctx, owner, lead.ID)
		return detailsMsg{out: out, err: err}
	}
}

func (m *Model) cycleStatus() {
	options := append([]string{board.AllStatuses}, stageNames(m.board.Stages())...)
	m.statusIdx = (m.statusIdx + 1) % len(options)
	m.query.Status = options[m.statusIdx]
	m.refresh()
}

func stageNames(s entity.StageSet) []string {
	var out []string
	for _, st := range s.Stages() {
		out = append(out, string(st))
	}
	return out
}

func (m *Model) pushNotice(n board.Notification) {
	m.notices = append(m.notices, n)
	if len(m.notices) > maxNotices {
		m.notices = m.notices[len(m.notices)-maxNotices:]
	}
}

// refresh rebuilds the columns from the board and keeps the cursor on the
// selected card when it is still visible.
func (m *Model) refresh() {
	m.cols = m.board.View(m.query)
	if m.selected != "" {
		for ci, c := range m.cols {
			for ri, l := range c.Leads {
				if l.ID == m.selected {
					m.col, m.row = ci, ri
					return
				}
			}
		}
	}
	m.focusColumn(m.col)
}

func (m *Model) focusColumn(c int) {
	if len(m.cols) == 0 {
		m.col, m.row, m.selected = 0, 0, ""
		return
	}
	m.col = clamp(c, 0, len(m.cols)-1)
	m.focusRow(m.row)
}

func (m *Model) focusRow(r int) {
	if len(m.cols) == 0 {
		return
	}
	leads := m.cols[m.col].Leads
	if len(leads) == 0 {
		m.row, m.selected = 0, ""
		return
	}
	m.row = clamp(r, 0, len(leads)-1)
	m.selected = leads[m.row].ID
}

func (m Model) current() (entity.Lead, bool) {
	if m.col >= len(m.cols) {
		return entity.Lead{}, false
	}
	leads := m.cols[m.col].Leads
	if m.row >= len(leads) {
		return entity.Lead{}, false
	}
	return leads[m.row], true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (m Model) View() string {
	if m.detail != nil {
		return m.viewDetails()
	}

	var sb strings.Builder
	status := m.query.Status
	if status == "" {
		status = board.AllStatuses
	}
	sb.WriteString(m.styles.ColumnTitle.Render("Ligue CRM"))
	sb.WriteString(m.styles.Muted.Render(fmt.Sprintf("  status: %s", status)))
	if m.loading {
		sb.WriteString(m.styles.Muted.Render("  carregando..."))
	}
	sb.WriteString("\n")
	if m.searching || m.query.Search != "" {
		sb.WriteString(m.search.View())
		sb.WriteString("\n")
	}

	width := minColumnWidth
	if n := len(m.cols); n > 0 && m.width/n-4 > width {
		width = m.width/n - 4
	}
	rendered := make([]string, 0, len(m.cols))
	for ci, c := range m.cols {
		lines := []string{m.styles.ColumnTitle.Render(fmt.Sprintf("%s (%d)", c.Title, c.Count()))}
		for ri, l := range c.Leads {
			style := m.styles.Card
			if ci == m.col && ri == m.row {
				style = m.styles.SelectedCard
			}
			lines = append(lines, style.Render(truncate(l.Name, width)))
		}
		if len(c.Leads) == 0 {
			lines = append(lines, m.styles.Muted.Render("-"))
		}
		rendered = append(rendered, m.styles.Column.Width(width).Render(strings.Join(lines, "\n")))
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	sb.WriteString("\n")

	for _, n := range m.notices {
		sb.WriteString(m.renderNotice(n))
		sb.WriteString("\n")
	}

	sb.WriteString(m.styles.Help.Render(helpLine()))
	return sb.String()
}

func (m Model) renderNotice(n board.Notification) string {
	text := n.Title
	if n.Description != "" {
		text += " " + n.Description
	}
	switch n.Severity {
	case board.SeverityError:
		return m.styles.Error.Render("✗ " + text)
	case board.SeverityWarning:
		return m.styles.Warning.Render("! " + text)
	default:
		return m.styles.Success.Render("✓ " + text)
	}
}

func (m Model) viewDetails() string {
	l := m.detail.Lead
	var sb strings.Builder
	sb.WriteString(m.styles.ColumnTitle.Render(l.Name))
	sb.WriteString("\n\n")
	for _, f := range [][2]string{
		{"Status", m.board.Stages().Title(l.Status)},
		{"E-mail", l.Email},
		{"Telefone", l.Phone},
		{"Empresa", l.Company},
		{"Origem", l.Source},
		{"Notas", l.Notes},
	} {
		if f[1] == "" {
			continue
		}
		sb.WriteString(fmt.Sprintf("%-9s %s\n", f[0]+":", f[1]))
	}
	sb.WriteString("\n")
	sb.WriteString(m.styles.ColumnTitle.Render("Interações"))
	sb.WriteString("\n")
	if len(m.detail.Interactions) == 0 {
		sb.WriteString(m.styles.Muted.Render("nenhuma"))
	}
	for _, in := range m.detail.Interactions {
		sb.WriteString(fmt.Sprintf("%s  %-12s %s\n", in.CreatedAt.Format("02/01 15:04"), in.Type, in.Content))
	}
	return m.styles.Details.Render(sb.String()) + "\n" + m.styles.Help.Render("esc voltar")
}

func helpLine() string {
	parts := make([]string, 0, len(keys.help()))
	for _, b := range keys.help() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
