package view

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/intima/internal/ledger"
)

const statementLimit = 20

type LedgerReader interface {
	Statement(ctx context.Context, accountID uuid.UUID, limit int) (*ledger.Statement, error)
	Reconcile(ctx context.Context, accountID uuid.UUID) (*ledger.Reconciliation, error)
}

// InspectorModel shows one account's recent entries next to its
// reconciliation result.
type InspectorModel struct {
	ledger LedgerReader

	input     textinput.Model
	statement *ledger.Statement
	recon     *ledger.Reconciliation

	loading bool
	status  string
}

func NewInspectorModel(l LedgerReader) InspectorModel {
	ti := textinput.New()
	ti.Placeholder = "account uuid"
	ti.CharLimit = 36
	ti.Width = 40
	ti.Prompt = "Account: "
	ti.Focus()

	return InspectorModel{
		ledger: l,
		input:  ti,
		status: "Enter an account id and press enter",
	}
}

func (m InspectorModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m InspectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case inspectMsg:
		m.loading = false
		if msg.err != nil {
			m.statement, m.recon = nil, nil
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		m.statement, m.recon = msg.statement, msg.recon
		m.status = ""

		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc:
			return m, Back
		case tea.KeyEnter:
			id, err := uuid.Parse(strings.TrimSpace(m.input.Value()))
			if err != nil {
				m.status = "Not a valid account id"
				return m, nil
			}

			m.loading = true
			m.status = "Loading..."

			return m, m.inspectCmd(id)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m InspectorModel) View() string {
	var b strings.Builder

	b.WriteString("Ledger Inspector\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if m.status != "" {
		b.WriteString(lipgloss.NewStyle().Faint(true).Render(m.status))
		b.WriteString("\n\n")
	}

	if m.recon != nil {
		b.WriteString(renderReconciliation(m.recon))
		b.WriteString("\n\n")
	}

	if m.statement != nil {
		b.WriteString(renderEntries(m.statement.Entries))
	}

	b.WriteString("\n(enter: inspect, esc: back)")

	return lipgloss.NewStyle().Padding(1).Render(b.String())
}

func renderReconciliation(r *ledger.Reconciliation) string {
	verdict := lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("balanced")
	if !r.Balanced() {
		verdict = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true).Render("OUT OF BALANCE")
	}

	return fmt.Sprintf("Balance: %s | Entry sum: %s | Entries: %d | %s",
		activeStyle(FormatCredits(r.Balance)), FormatCredits(r.EntrySum), r.EntryCount, verdict)
}

func renderEntries(entries []*ledger.Entry) string {
	if len(entries) == 0 {
		return "No ledger entries.\n"
	}

	var b strings.Builder

	fmt.Fprintf(&b, "%-17s  %10s  %-28s  %s\n", "When", "Delta", "Reason", "Counterpart")

	for _, e := range entries {
		counterpart := "-"
		if e.Counterpart != nil {
			counterpart = e.Counterpart.String()
		}

		fmt.Fprintf(&b, "%-17s  %+10d  %-28s  %s\n", FormatTime(e.CreatedAt), e.Delta, e.Reason, counterpart)
	}

	return tableBorder().Render(strings.TrimRight(b.String(), "\n"))
}

type inspectMsg struct {
	statement *ledger.Statement
	recon     *ledger.Reconciliation
	err       error
}

func (m InspectorModel) inspectCmd(id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		st, err := m.ledger.Statement(ctx, id, statementLimit)
		if err != nil {
			return inspectMsg{err: err}
		}

		recon, err := m.ledger.Reconcile(ctx, id)
		if err != nil {
			return inspectMsg{err: err}
		}

		return inspectMsg{statement: st, recon: recon}
	}
}
