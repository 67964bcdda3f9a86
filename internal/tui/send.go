package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"securebank/internal/bank"
	"securebank/internal/service"
)

func (a *App) resetSendForm() {
	a.sendStep = 1
	a.sendField = 0
	a.sendName, a.sendAccount, a.sendPhone = "", "", ""
	a.sendAmount, a.sendDesc, a.sendPIN = "", "", ""
}

func (a *App) handleSendKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyEsc:
		if a.sendStep > 1 {
			a.sendStep--
			a.sendField = 0
			a.status = ""
			return a, nil
		}
		a.state = viewDashboard
		a.status = ""
		return a, a.loadRecent()
	case tea.KeyTab, tea.KeyDown:
		a.sendField = (a.sendField + 1) % a.sendFieldCount()
		return a, nil
	case tea.KeyShiftTab, tea.KeyUp:
		a.sendField = (a.sendField + a.sendFieldCount() - 1) % a.sendFieldCount()
		return a, nil
	case tea.KeyCtrlP:
		if a.sendStep == 1 {
			if picks := service.SuggestContacts(a.sendName, a.contacts, 1); len(picks) > 0 {
				a.sendName = picks[0].Name
				a.sendAccount = picks[0].AccountNumber
				a.sendPhone = picks[0].Phone
			}
		}
		return a, nil
	case tea.KeyEnter:
		return a.advanceSend()
	}

	switch a.sendStep {
	case 1:
		switch a.sendField {
		case 0:
			a.sendName, _ = editField(a.sendName, m)
		case 1:
			a.sendAccount, _ = editField(a.sendAccount, m)
		case 2:
			a.sendPhone, _ = editField(a.sendPhone, m)
		}
	case 2:
		switch a.sendField {
		case 0:
			a.sendAmount, _ = editField(a.sendAmount, m)
		case 1:
			a.sendDesc, _ = editField(a.sendDesc, m)
		}
	case 3:
		a.sendPIN, _ = editField(a.sendPIN, m)
	}
	return a, nil
}

func (a *App) sendFieldCount() int {
	switch a.sendStep {
	case 1:
		return 3
	case 2:
		return 2
	default:
		return 1
	}
}

// advanceSend applies the per-step guard; the network call only happens once
// every step has passed.
func (a *App) advanceSend() (tea.Model, tea.Cmd) {
	switch a.sendStep {
	case 1:
		if reason := recipientReason(a.sendName, a.sendAccount); reason != "" {
			a.status = reason
			return a, nil
		}
		a.sendStep, a.sendField, a.status = 2, 0, ""
	case 2:
		user, _ := a.mgr.User()
		if reason := amountReason(a.sendAmount, user.Balance); reason != "" {
			a.status = reason
			return a, nil
		}
		a.sendStep, a.sendField, a.status = 3, 0, ""
	case 3:
		if reason := pinReason(a.sendPIN); reason != "" {
			a.status = reason
			return a, nil
		}
		a.status = "sending..."
		return a, a.sendMoneyCmd()
	}
	return a, nil
}

func (a *App) sendMoneyCmd() tea.Cmd {
	amount, _ := decimal.NewFromString(strings.TrimSpace(a.sendAmount))
	req := bank.SendMoneyRequest{
		RecipientName:    strings.TrimSpace(a.sendName),
		RecipientAccount: strings.TrimSpace(a.sendAccount),
		RecipientPhone:   strings.TrimSpace(a.sendPhone),
		Amount:           amount,
		Description:      strings.TrimSpace(a.sendDesc),
		PIN:              a.sendPIN,
	}
	return func() tea.Msg {
		receipt, err := a.mgr.Provider().SendMoney(a.ctx, req)
		if err != nil {
			return errMsg{err}
		}
		return transferDoneMsg(receipt)
	}
}

func (a *App) renderSend() string {
	title := titleStyle.Render(fmt.Sprintf("Send Money - step %d of 3", a.sendStep))
	out := title + "\n"
	switch a.sendStep {
	case 1:
		out += a.renderWizardField("Name", a.sendName, 0, false)
		out += a.renderWizardField("Account", a.sendAccount, 1, false)
		out += a.renderWizardField("Phone", a.sendPhone, 2, false)
		if picks := service.SuggestContacts(a.sendName, a.contacts, 3); len(picks) > 0 {
			out += "\nSaved recipients (ctrl+p fills the top match):\n"
			for _, c := range picks {
				out += fmt.Sprintf("  %s  %s\n", c.Name, c.AccountNumber)
			}
		}
	case 2:
		user, _ := a.mgr.User()
		out += fmt.Sprintf("To %s (%s)  Available: %s\n", a.sendName, a.sendAccount, FormatAmount(a.currency, user.Balance))
		out += a.renderWizardField("Amount", a.sendAmount, 0, false)
		out += a.renderWizardField("Note", a.sendDesc, 1, false)
	case 3:
		amount, _ := decimal.NewFromString(strings.TrimSpace(a.sendAmount))
		out += fmt.Sprintf("Sending %s to %s (%s)\n", FormatAmount(a.currency, amount), a.sendName, a.sendAccount)
		out += a.renderWizardField("PIN", a.sendPIN, 0, true)
	}
	out += "\n[enter] Continue  [esc] Back  [tab] Next field"
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}

func (a *App) renderWizardField(label, value string, idx int, mask bool) string {
	marker := " "
	if a.sendField == idx {
		marker = "▶"
	}
	if mask {
		value = strings.Repeat("*", len(value))
	}
	return fmt.Sprintf("%s %-8s %s\n", marker, label+":", value)
}
