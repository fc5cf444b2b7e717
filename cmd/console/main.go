package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/MrJamesThe3rd/intima/cmd/console/internal/view"
	"github.com/MrJamesThe3rd/intima/internal/account"
	accountStore "github.com/MrJamesThe3rd/intima/internal/account/store"
	"github.com/MrJamesThe3rd/intima/internal/audit"
	auditStore "github.com/MrJamesThe3rd/intima/internal/audit/store"
	"github.com/MrJamesThe3rd/intima/internal/config"
	"github.com/MrJamesThe3rd/intima/internal/database"
	"github.com/MrJamesThe3rd/intima/internal/ledger"
	ledgerStore "github.com/MrJamesThe3rd/intima/internal/ledger/store"
	"github.com/MrJamesThe3rd/intima/internal/notify"
	"github.com/MrJamesThe3rd/intima/internal/pairing"
	pairingStore "github.com/MrJamesThe3rd/intima/internal/pairing/store"
	"github.com/MrJamesThe3rd/intima/internal/retry"
	"github.com/MrJamesThe3rd/intima/internal/session"
)

type model struct {
	ledger *ledger.Service
	audit  *audit.Service
	facade *session.Facade

	currentView View

	queueView     view.WithdrawalsModel
	inspectorView view.InspectorModel
	statsView     view.StatsModel
}

type View int

const (
	ViewMenu      View = 0
	ViewQueue     View = 1
	ViewInspector View = 2
	ViewStats     View = 3
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// stdout belongs to the terminal UI.
	slog.SetDefault(cfg.NewLogger(os.Stderr))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.New(ctx, cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	policy := retry.Policy{MaxTries: cfg.Retry.MaxTries, Initial: cfg.Retry.Initial, Max: cfg.Retry.Max}

	var notifier notify.Notifier = notify.Log{}
	if cfg.Redis.Addr != "" {
		notifier = notify.NewRedis(redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}))
	}

	var (
		accountSvc = account.NewService(accountStore.New(db))
		pairingSvc = pairing.NewService(pairingStore.New(db), policy)
		ledgerSvc  = ledger.NewService(ledgerStore.New(db), policy)
		auditSvc   = audit.NewService(auditStore.New(db))
	)

	facade := session.New(session.Deps{
		Accounts: accountSvc,
		Registry: pairingSvc,
		Ledger:   ledgerSvc,
		Auditor:  auditSvc,
		Notifier: notifier,
		Counters: session.StatsSources{
			Accounts:           accountSvc.Count,
			ActiveCouples:      pairingSvc.CountActive,
			PendingWithdrawals: ledgerSvc.CountPendingWithdrawals,
			Circulation:        ledgerSvc.TotalCirculation,
		},
	})

	return model{
		ledger:      ledgerSvc,
		audit:       auditSvc,
		facade:      facade,
		currentView: ViewMenu,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewQueue
				m.queueView = view.NewWithdrawalsModel(m.ledger, m.facade)

				return m, m.queueView.Init()
			case "2":
				m.currentView = ViewInspector
				m.inspectorView = view.NewInspectorModel(m.ledger)

				return m, m.inspectorView.Init()
			case "3":
				m.currentView = ViewStats
				m.statsView = view.NewStatsModel(m.facade, m.audit)

				return m, m.statsView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewQueue:
		var newModel tea.Model
		newModel, cmd = m.queueView.Update(msg)
		m.queueView = newModel.(view.WithdrawalsModel)
	case ViewInspector:
		var newModel tea.Model
		newModel, cmd = m.inspectorView.Update(msg)
		m.inspectorView = newModel.(view.InspectorModel)
	case ViewStats:
		var newModel tea.Model
		newModel, cmd = m.statsView.Update(msg)
		m.statsView = newModel.(view.StatsModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Intima Console\n\n" +
				"1. Withdrawal Queue\n" +
				"2. Ledger Inspector\n" +
				"3. Platform Stats\n\n" +
				"q. Quit",
		)
	case ViewQueue:
		return m.queueView.View()
	case ViewInspector:
		return m.inspectorView.View()
	case ViewStats:
		return m.statsView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run console", "error", err)
		os.Exit(1)
	}
}
