package view

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/intima/internal/ledger"
)

type WithdrawalLister interface {
	ListWithdrawals(ctx context.Context, filter ledger.WithdrawalFilter) ([]*ledger.Withdrawal, error)
}

type WithdrawalResolver interface {
	ResolveWithdrawal(ctx context.Context, adminID, withdrawalID uuid.UUID, decision ledger.Decision) (*ledger.Withdrawal, error)
}

type queueState int

const (
	queueStateBrowse queueState = iota
	queueStateConfirm
)

var statusFilters = []*ledger.WithdrawalStatus{
	new(ledger.WithdrawalPending),
	nil,
	new(ledger.WithdrawalApproved),
	new(ledger.WithdrawalRejected),
}

var statusLabels = []string{"Pending", "All", "Approved", "Rejected"}

// WithdrawalsModel is the admin review queue. Decisions are recorded with a
// nil actor since the console runs as the system.
type WithdrawalsModel struct {
	lister   WithdrawalLister
	resolver WithdrawalResolver

	state queueState
	table table.Model
	rows  []*ledger.Withdrawal
	form  *huh.Form

	statusIdx int
	decision  ledger.Decision
	confirmed *bool

	loading bool
	err     error
	status  string
}

func NewWithdrawalsModel(lister WithdrawalLister, resolver WithdrawalResolver) WithdrawalsModel {
	columns := []table.Column{
		{Title: "Requested", Width: 17},
		{Title: "Status", Width: 10},
		{Title: "Amount", Width: 10},
		{Title: "Method", Width: 8},
		{Title: "Account", Width: 36},
		{Title: "Details", Width: 30},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return WithdrawalsModel{lister: lister, resolver: resolver, table: t, loading: true}
}

func (m WithdrawalsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m WithdrawalsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadWithdrawalsMsg:
		m.loading = false
		m.err = msg.err
		m.rows = msg.rows
		m.refreshTable()

		return m, nil

	case resolveMsg:
		m.state = queueStateBrowse
		m.form = nil
		m.table.Focus()

		if msg.err != nil {
			m.status = fmt.Sprintf("Error resolving: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("Withdrawal %s is %s", msg.w.ID, msg.w.Status)
		}

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(max(msg.Height-10, 5))
		return m, nil
	}

	if m.state == queueStateConfirm {
		return m.updateConfirm(msg)
	}

	return m.updateBrowse(msg)
}

func (m WithdrawalsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "s":
			m.statusIdx = (m.statusIdx + 1) % len(statusFilters)
			m.loading = true

			return m, m.loadCmd()
		case "a":
			return m.confirm(ledger.DecisionApprove)
		case "x":
			return m.confirm(ledger.DecisionReject)
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m WithdrawalsModel) selected() *ledger.Withdrawal {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.rows) {
		return nil
	}

	return m.rows[idx]
}

func (m WithdrawalsModel) confirm(d ledger.Decision) (tea.Model, tea.Cmd) {
	w := m.selected()
	if w == nil {
		return m, nil
	}

	if w.Status.Terminal() {
		m.status = fmt.Sprintf("Withdrawal already %s", w.Status)
		return m, nil
	}

	m.decision = d
	m.confirmed = new(bool)
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("%s %s to %s?", d, FormatCredits(w.Amount), w.PaymentMethod)).
				Affirmative("Yes").
				Negative("No").
				Value(m.confirmed),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = queueStateConfirm
	m.table.Blur()

	return m, m.form.Init()
}

func (m WithdrawalsModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = queueStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if !*m.confirmed {
		m.state = queueStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	return m, m.resolveCmd(m.selected(), m.decision)
}

func (m WithdrawalsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading withdrawals...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	header := fmt.Sprintf("Filter: [s] Status: %s | a: approve | x: reject | r: refresh | esc: back",
		activeStyle(statusLabels[m.statusIdx]))

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableBorder().Render(m.table.View()),
	)

	if m.state == queueStateConfirm && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render("Resolve Withdrawal\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *WithdrawalsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.rows))
	for _, w := range m.rows {
		rows = append(rows, table.Row{
			FormatTime(w.CreatedAt),
			string(w.Status),
			FormatCredits(w.Amount),
			string(w.PaymentMethod),
			w.AccountID.String(),
			w.PaymentDetails,
		})
	}

	m.table.SetRows(rows)
}

type loadWithdrawalsMsg struct {
	rows []*ledger.Withdrawal
	err  error
}

func (m WithdrawalsModel) loadCmd() tea.Cmd {
	filter := ledger.WithdrawalFilter{Status: statusFilters[m.statusIdx], Limit: 500}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		rows, err := m.lister.ListWithdrawals(ctx, filter)

		return loadWithdrawalsMsg{rows: rows, err: err}
	}
}

type resolveMsg struct {
	w   *ledger.Withdrawal
	err error
}

func (m WithdrawalsModel) resolveCmd(w *ledger.Withdrawal, d ledger.Decision) tea.Cmd {
	if w == nil {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		resolved, err := m.resolver.ResolveWithdrawal(ctx, uuid.Nil, w.ID, d)

		return resolveMsg{w: resolved, err: err}
	}
}
