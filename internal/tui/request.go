package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"securebank/internal/bank"
)

func (a *App) resetRequestForm() {
	a.reqField = 0
	a.reqName, a.reqAmount, a.reqDesc = "", "", ""
	a.lastRequest = nil
}

func (a *App) handleRequestKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyEsc:
		a.state = viewDashboard
		a.status = ""
		return a, a.loadRecent()
	case tea.KeyTab, tea.KeyDown:
		a.reqField = (a.reqField + 1) % 3
		return a, nil
	case tea.KeyShiftTab, tea.KeyUp:
		a.reqField = (a.reqField + 2) % 3
		return a, nil
	case tea.KeyEnter:
		if strings.TrimSpace(a.reqName) == "" {
			a.status = "who are you asking?"
			return a, nil
		}
		if reason := requestAmountReason(a.reqAmount); reason != "" {
			a.status = reason
			return a, nil
		}
		a.status = "creating request..."
		return a, a.requestMoneyCmd()
	}

	switch a.reqField {
	case 0:
		a.reqName, _ = editField(a.reqName, m)
	case 1:
		a.reqAmount, _ = editField(a.reqAmount, m)
	case 2:
		a.reqDesc, _ = editField(a.reqDesc, m)
	}
	return a, nil
}

func (a *App) requestMoneyCmd() tea.Cmd {
	amount, _ := decimal.NewFromString(strings.TrimSpace(a.reqAmount))
	req := bank.RequestMoneyRequest{
		RecipientName: strings.TrimSpace(a.reqName),
		Amount:        amount,
		Description:   strings.TrimSpace(a.reqDesc),
	}
	return func() tea.Msg {
		pr, err := a.mgr.Provider().RequestMoney(a.ctx, req)
		if err != nil {
			return errMsg{err}
		}
		return paymentLinkMsg(pr)
	}
}

func (a *App) renderRequest() string {
	title := titleStyle.Render("Request Money")
	out := title + "\n"
	fields := []struct {
		label, value string
	}{
		{"From", a.reqName},
		{"Amount", a.reqAmount},
		{"Note", a.reqDesc},
	}
	for i, f := range fields {
		marker := " "
		if a.reqField == i {
			marker = "▶"
		}
		out += fmt.Sprintf("%s %-8s %s\n", marker, f.label+":", f.value)
	}
	if a.lastRequest != nil {
		out += fmt.Sprintf("\nRequested %s from %s\nShare this link: %s\n", FormatAmount(a.currency, a.lastRequest.Amount), a.lastRequest.RecipientName, a.lastRequest.PaymentLink)
	}
	out += "\n[enter] Create request  [esc] Dashboard"
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}
