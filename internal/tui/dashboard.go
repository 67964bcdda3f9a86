package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"securebank/internal/service"
)

func (a *App) handleDashboardKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if cmd, ok := a.handleNavKey(m.String()); ok {
		return a, cmd
	}
	if m.String() == "g" {
		a.status = "refreshing..."
		return a, tea.Batch(a.refreshUser(), a.loadRecent())
	}
	return a, nil
}

func (a *App) renderDashboard() string {
	user, ok := a.mgr.User()
	if !ok {
		return "no session"
	}
	title := titleStyle.Render("SecureBank - " + user.Name)
	out := fmt.Sprintf("%s\nAccount %s  (%s)\nBalance: %s\n", title, user.AccountNumber, user.AccountType, activeStyle.Render(FormatAmount(a.currency, user.Balance)))

	out += "\nRecent activity:\n"
	if len(a.recent) == 0 {
		out += "  (no transactions yet)\n"
	}
	for _, t := range a.recent {
		out += fmt.Sprintf("  %s  %-32s %12s\n", t.Date.Format(a.dateFormat), t.Description, FormatSigned(a.currency, t.Type, t.Amount))
	}
	out += "\n[t] Transactions  [s] Send  [r] Request  [c] Scan & pay  [l] Loans  [v] Investments  [p] Profile  [g] Refresh  [q] Quit"
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}

func (a *App) handleTransactionsKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "up", "k":
		if a.txCursor > 0 {
			a.txCursor--
		}
		return a, nil
	case "down", "j":
		if a.txCursor < len(a.history)-1 {
			a.txCursor++
		}
		return a, nil
	case "f":
		switch a.txFilter {
		case "":
			a.txFilter = "credit"
		case "credit":
			a.txFilter = "debit"
		default:
			a.txFilter = ""
		}
		return a, a.loadHistory()
	case "e":
		return a, a.exportStatementCmd()
	case "esc":
		a.state = viewDashboard
		return a, a.loadRecent()
	}
	if cmd, ok := a.handleNavKey(m.String()); ok {
		return a, cmd
	}
	return a, nil
}

func (a *App) exportStatementCmd() tea.Cmd {
	return func() tea.Msg {
		name := service.DefaultStatementName(time.Now())
		if err := a.statements.ExportFile(name, a.history); err != nil {
			return errMsg{err}
		}
		return statusMsg("statement written to " + name)
	}
}

func (a *App) renderTransactions() string {
	title := titleStyle.Render("Transactions")
	filter := a.txFilter
	if filter == "" {
		filter = "all"
	}
	out := fmt.Sprintf("%s  (filter: %s)\n", title, filter)
	if len(a.history) == 0 {
		out += "  (nothing to show)\n"
	}
	for i, t := range a.history {
		marker := " "
		if i == a.txCursor {
			marker = "▶"
		}
		out += fmt.Sprintf("%s %s  %-36s %-12s %12s  bal %s\n", marker, t.Date.Format(a.dateFormat), t.Description, t.Category, FormatSigned(a.currency, t.Type, t.Amount), FormatAmount(a.currency, t.BalanceAfter))
	}
	out += "[f] Filter  [e] Export CSV  [esc] Dashboard  [q] Quit"
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}
