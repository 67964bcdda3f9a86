package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"securebank/internal/bank"
)

func (a *App) handleInvestmentsKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.invMode == invCreate {
		return a.handleInvCreateKey(m)
	}

	switch m.String() {
	case "esc":
		a.state = viewDashboard
		a.status = ""
		return a, a.loadRecent()
	case "up", "k":
		if a.invCursor > 0 {
			a.invCursor--
		}
		return a, nil
	case "down", "j":
		if a.invCursor < len(a.investments)-1 {
			a.invCursor++
		}
		return a, nil
	case "n":
		a.invMode = invCreate
		a.invField = 0
		a.newInvType, a.newInvName, a.newInvAmount = "", "", ""
		a.status = ""
		return a, nil
	case "x":
		if len(a.investments) == 0 {
			return a, nil
		}
		inv := a.investments[a.invCursor]
		a.status = "selling..."
		return a, a.sellInvestmentCmd(inv.ID)
	}
	if cmd, ok := a.handleNavKey(m.String()); ok {
		return a, cmd
	}
	return a, nil
}

func (a *App) handleInvCreateKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	fields := []*string{&a.newInvType, &a.newInvName, &a.newInvAmount}
	switch m.Type {
	case tea.KeyEsc:
		a.invMode = invList
		a.status = ""
		return a, nil
	case tea.KeyTab, tea.KeyDown:
		a.invField = (a.invField + 1) % len(fields)
		return a, nil
	case tea.KeyShiftTab, tea.KeyUp:
		a.invField = (a.invField + len(fields) - 1) % len(fields)
		return a, nil
	case tea.KeyEnter:
		if strings.TrimSpace(a.newInvType) == "" || strings.TrimSpace(a.newInvName) == "" {
			a.status = "type and name are required"
			return a, nil
		}
		user, _ := a.mgr.User()
		if reason := amountReason(a.newInvAmount, user.Balance); reason != "" {
			a.status = reason
			return a, nil
		}
		amount, _ := decimal.NewFromString(strings.TrimSpace(a.newInvAmount))
		req := bank.InvestmentCreateRequest{
			Type:   strings.TrimSpace(a.newInvType),
			Name:   strings.TrimSpace(a.newInvName),
			Amount: amount,
		}
		a.status = "investing..."
		return a, a.createInvestmentCmd(req)
	}
	*fields[a.invField], _ = editField(*fields[a.invField], m)
	return a, nil
}

func (a *App) createInvestmentCmd(req bank.InvestmentCreateRequest) tea.Cmd {
	return func() tea.Msg {
		inv, err := a.mgr.Provider().CreateInvestment(a.ctx, req)
		if err != nil {
			return errMsg{err}
		}
		return investmentCreatedMsg(inv)
	}
}

func (a *App) sellInvestmentCmd(id string) tea.Cmd {
	return func() tea.Msg {
		receipt, err := a.mgr.Provider().SellInvestment(a.ctx, id)
		if err != nil {
			return errMsg{err}
		}
		return soldMsg(receipt)
	}
}

func (a *App) renderInvestments() string {
	if a.invMode == invCreate {
		return a.renderInvCreate()
	}

	title := titleStyle.Render("Investments")
	out := title + "\n"
	if p := a.portfolio; p != nil {
		out += fmt.Sprintf("Invested %s  Current %s  Returns %s (%s%%)  Holdings %d\n\n",
			FormatAmount(a.currency, p.TotalInvested), FormatAmount(a.currency, p.TotalCurrentValue),
			FormatAmount(a.currency, p.TotalReturns), p.TotalReturnsPercent.StringFixed(2), p.InvestmentsCount)
	}
	if len(a.investments) == 0 {
		out += "  (no holdings)\n"
	}
	for i, inv := range a.investments {
		marker := " "
		if i == a.invCursor {
			marker = "▶"
		}
		out += fmt.Sprintf("%s %-20s %-12s %s -> %s (%s%%)\n", marker, inv.Name, inv.Type,
			FormatAmount(a.currency, inv.Amount), FormatAmount(a.currency, inv.CurrentValue), inv.ReturnsPercent.StringFixed(2))
	}
	out += "[n] New  [x] Sell  [esc] Dashboard  [q] Quit"
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}

func (a *App) renderInvCreate() string {
	title := titleStyle.Render("New Investment")
	labels := []string{"Type", "Name", "Amount"}
	values := []string{a.newInvType, a.newInvName, a.newInvAmount}
	out := title + "\n"
	for i := range labels {
		marker := " "
		if a.invField == i {
			marker = "▶"
		}
		out += fmt.Sprintf("%s %-8s %s\n", marker, labels[i]+":", values[i])
	}
	out += "\n[enter] Invest  [esc] Back  [tab] Next field"
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}
