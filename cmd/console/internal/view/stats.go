package view

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/intima/internal/audit"
	"github.com/MrJamesThe3rd/intima/internal/session"
)

const recentEvents = 15

type StatsSource interface {
	Stats(ctx context.Context) (*session.Stats, error)
}

type AuditLister interface {
	List(ctx context.Context, limit int) ([]*audit.Event, error)
}

// StatsModel is the dashboard: platform counters and the latest audit trail.
type StatsModel struct {
	stats  StatsSource
	audits AuditLister

	current *session.Stats
	events  []*audit.Event

	loading bool
	err     error
}

func NewStatsModel(stats StatsSource, audits AuditLister) StatsModel {
	return StatsModel{stats: stats, audits: audits, loading: true}
}

func (m StatsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadStatsMsg:
		m.loading = false
		m.err = msg.err
		m.current = msg.stats
		m.events = msg.events

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	return m, nil
}

func (m StatsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading stats...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v\n\n(r: retry, esc: back)", m.err))
	}

	var b strings.Builder

	b.WriteString("Platform Stats\n\n")
	fmt.Fprintf(&b, "Accounts:               %s\n", activeStyle(fmt.Sprint(m.current.Accounts)))
	fmt.Fprintf(&b, "Active couples:         %s\n", activeStyle(fmt.Sprint(m.current.ActiveCouples)))
	fmt.Fprintf(&b, "Pending withdrawals:    %s\n", activeStyle(fmt.Sprint(m.current.PendingWithdrawals)))
	fmt.Fprintf(&b, "Credits in circulation: %s\n\n", activeStyle(FormatCredits(m.current.Circulation)))

	b.WriteString("Recent audit events\n")

	if len(m.events) == 0 {
		b.WriteString("  none\n")
	}

	for _, e := range m.events {
		actor := "system"
		if e.ActorID != nil {
			actor = e.ActorID.String()
		}

		fmt.Fprintf(&b, "  %s  %-28s  %-36s  %s\n", FormatTime(e.CreatedAt), e.Action, actor, e.Subject)
	}

	b.WriteString("\n(r: refresh, esc: back)")

	return lipgloss.NewStyle().Padding(1).Render(b.String())
}

type loadStatsMsg struct {
	stats  *session.Stats
	events []*audit.Event
	err    error
}

func (m StatsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		st, err := m.stats.Stats(ctx)
		if err != nil {
			return loadStatsMsg{err: err}
		}

		events, err := m.audits.List(ctx, recentEvents)
		if err != nil {
			return loadStatsMsg{err: err}
		}

		return loadStatsMsg{stats: st, events: events}
	}
}
