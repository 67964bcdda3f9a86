package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"securebank/internal/bank"
)

type qrMerchant struct {
	id     string
	name   string
	amount decimal.Decimal
}

// Simulated scan results; a terminal has no camera, so scanning presents the
// nearby merchant codes directly.
var qrMerchants = []qrMerchant{
	{"MERCH001", "Coffee Shop", decimal.NewFromFloat(4.50)},
	{"MERCH002", "Gas Station", decimal.NewFromFloat(45.00)},
	{"MERCH003", "Grocery Store", decimal.NewFromFloat(23.75)},
	{"MERCH004", "Restaurant", decimal.NewFromFloat(35.20)},
}

func (a *App) handleQRKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.qrEnteringPIN {
		switch m.Type {
		case tea.KeyEsc:
			a.qrEnteringPIN = false
			a.qrPIN = ""
			a.status = ""
			return a, nil
		case tea.KeyEnter:
			if reason := pinReason(a.qrPIN); reason != "" {
				a.status = reason
				return a, nil
			}
			a.status = "paying..."
			return a, a.qrPayCmd(qrMerchants[a.qrCursor])
		}
		a.qrPIN, _ = editField(a.qrPIN, m)
		return a, nil
	}

	switch m.String() {
	case "esc":
		a.state = viewDashboard
		a.status = ""
		return a, a.loadRecent()
	case "up", "k":
		if a.qrCursor > 0 {
			a.qrCursor--
		}
		return a, nil
	case "down", "j":
		if a.qrCursor < len(qrMerchants)-1 {
			a.qrCursor++
		}
		return a, nil
	case "enter":
		user, _ := a.mgr.User()
		merchant := qrMerchants[a.qrCursor]
		if merchant.amount.GreaterThan(user.Balance) {
			a.status = "insufficient balance"
			return a, nil
		}
		a.qrEnteringPIN = true
		a.qrPIN = ""
		a.status = ""
		return a, nil
	}
	if cmd, ok := a.handleNavKey(m.String()); ok {
		return a, cmd
	}
	return a, nil
}

func (a *App) qrPayCmd(merchant qrMerchant) tea.Cmd {
	req := bank.QRPaymentRequest{
		MerchantID:  merchant.id,
		Amount:      merchant.amount,
		Description: "QR payment - " + merchant.name,
	}
	return func() tea.Msg {
		receipt, err := a.mgr.Provider().QRPayment(a.ctx, req)
		if err != nil {
			return errMsg{err}
		}
		return transferDoneMsg(receipt)
	}
}

func (a *App) renderQR() string {
	title := titleStyle.Render("Scan & Pay")
	if a.qrEnteringPIN {
		merchant := qrMerchants[a.qrCursor]
		out := fmt.Sprintf("%s\nPaying %s to %s\nPIN: %s\n\n[enter] Pay  [esc] Back", title, FormatAmount(a.currency, merchant.amount), merchant.name, strings.Repeat("*", len(a.qrPIN)))
		if a.status != "" {
			out += "\n" + a.status
		}
		return out
	}
	out := title + "\nNearby merchant codes:\n"
	for i, merchant := range qrMerchants {
		marker := " "
		if i == a.qrCursor {
			marker = "▶"
		}
		out += fmt.Sprintf("%s %-16s %10s\n", marker, merchant.name, FormatAmount(a.currency, merchant.amount))
	}
	out += "[enter] Pay  [esc] Dashboard  [q] Quit"
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}
