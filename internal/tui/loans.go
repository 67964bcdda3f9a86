package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"securebank/internal/bank"
)

func (a *App) handleLoansKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.loanMode {
	case loanApply:
		return a.handleLoanApplyKey(m)
	case loanCalc:
		return a.handleLoanCalcKey(m)
	}

	switch m.String() {
	case "esc":
		a.state = viewDashboard
		a.status = ""
		return a, a.loadRecent()
	case "up", "k":
		if a.loanCursor > 0 {
			a.loanCursor--
		}
		return a, nil
	case "down", "j":
		if a.loanCursor < len(a.loans)-1 {
			a.loanCursor++
		}
		return a, nil
	case "y":
		if len(a.loans) == 0 {
			return a, nil
		}
		loan := a.loans[a.loanCursor]
		a.status = "paying EMI..."
		return a, a.payEMICmd(loan.ID)
	case "n":
		a.loanMode = loanApply
		a.loanField = 0
		a.applyType, a.applyAmount, a.applyIncome = "", "", ""
		a.applyEmployment, a.applyPurpose = "", ""
		a.status = ""
		return a, nil
	case "e":
		a.loanMode = loanCalc
		a.loanField = 0
		a.calcAmount, a.calcRate, a.calcMonths = "", "", ""
		a.lastQuote = nil
		a.status = ""
		return a, nil
	}
	if cmd, ok := a.handleNavKey(m.String()); ok {
		return a, cmd
	}
	return a, nil
}

func (a *App) payEMICmd(loanID string) tea.Cmd {
	return func() tea.Msg {
		receipt, err := a.mgr.Provider().PayEMI(a.ctx, loanID)
		if err != nil {
			return errMsg{err}
		}
		return emiPaidMsg(receipt)
	}
}

func (a *App) handleLoanApplyKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	fields := []*string{&a.applyType, &a.applyAmount, &a.applyIncome, &a.applyEmployment, &a.applyPurpose}
	switch m.Type {
	case tea.KeyEsc:
		a.loanMode = loanList
		a.status = ""
		return a, nil
	case tea.KeyTab, tea.KeyDown:
		a.loanField = (a.loanField + 1) % len(fields)
		return a, nil
	case tea.KeyShiftTab, tea.KeyUp:
		a.loanField = (a.loanField + len(fields) - 1) % len(fields)
		return a, nil
	case tea.KeyEnter:
		amount, err := decimal.NewFromString(strings.TrimSpace(a.applyAmount))
		if err != nil || amount.LessThanOrEqual(decimal.Zero) {
			a.status = "enter a valid amount"
			return a, nil
		}
		income, err := decimal.NewFromString(strings.TrimSpace(a.applyIncome))
		if err != nil {
			a.status = "enter your monthly income"
			return a, nil
		}
		if strings.TrimSpace(a.applyType) == "" {
			a.status = "loan type is required"
			return a, nil
		}
		req := bank.LoanApplicationRequest{
			LoanType:        strings.TrimSpace(a.applyType),
			RequestedAmount: amount,
			MonthlyIncome:   income,
			EmploymentType:  strings.TrimSpace(a.applyEmployment),
			Purpose:         strings.TrimSpace(a.applyPurpose),
		}
		a.status = "submitting..."
		return a, a.applyLoanCmd(req)
	}
	*fields[a.loanField], _ = editField(*fields[a.loanField], m)
	return a, nil
}

func (a *App) applyLoanCmd(req bank.LoanApplicationRequest) tea.Cmd {
	return func() tea.Msg {
		receipt, err := a.mgr.Provider().ApplyLoan(a.ctx, req)
		if err != nil {
			return errMsg{err}
		}
		return loanAppliedMsg(receipt)
	}
}

func (a *App) handleLoanCalcKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	fields := []*string{&a.calcAmount, &a.calcRate, &a.calcMonths}
	switch m.Type {
	case tea.KeyEsc:
		a.loanMode = loanList
		a.status = ""
		return a, nil
	case tea.KeyTab, tea.KeyDown:
		a.loanField = (a.loanField + 1) % len(fields)
		return a, nil
	case tea.KeyShiftTab, tea.KeyUp:
		a.loanField = (a.loanField + len(fields) - 1) % len(fields)
		return a, nil
	case tea.KeyEnter:
		amount, err := decimal.NewFromString(strings.TrimSpace(a.calcAmount))
		if err != nil || amount.LessThanOrEqual(decimal.Zero) {
			a.status = "enter a valid loan amount"
			return a, nil
		}
		rate, err := decimal.NewFromString(strings.TrimSpace(a.calcRate))
		if err != nil || rate.IsNegative() {
			a.status = "enter a valid interest rate"
			return a, nil
		}
		months, err := strconv.Atoi(strings.TrimSpace(a.calcMonths))
		if err != nil || months <= 0 {
			a.status = "enter the tenure in months"
			return a, nil
		}
		a.status = ""
		return a, a.calcEMICmd(amount, rate, months)
	}
	*fields[a.loanField], _ = editField(*fields[a.loanField], m)
	return a, nil
}

func (a *App) calcEMICmd(amount, rate decimal.Decimal, months int) tea.Cmd {
	return func() tea.Msg {
		quote, err := a.mgr.Provider().CalculateEMI(a.ctx, amount, rate, months)
		if err != nil {
			return errMsg{err}
		}
		return quoteMsg(quote)
	}
}

func (a *App) renderLoans() string {
	switch a.loanMode {
	case loanApply:
		return a.renderLoanApply()
	case loanCalc:
		return a.renderLoanCalc()
	}

	title := titleStyle.Render("Loans")
	out := title + "\n"
	if len(a.loans) == 0 {
		out += "  (no active loans)\n"
	}
	for i, loan := range a.loans {
		marker := " "
		if i == a.loanCursor {
			marker = "▶"
		}
		paid := loan.Tenure - loan.RemainingMonths
		out += fmt.Sprintf("%s %-12s outstanding %s of %s  EMI %s  %d/%d paid  due %s\n",
			marker, loan.Type, FormatAmount(a.currency, loan.Outstanding), FormatAmount(a.currency, loan.Amount),
			FormatAmount(a.currency, loan.EMI), paid, loan.Tenure, loan.NextDueDate)
	}
	out += "[y] Pay EMI  [n] Apply  [e] Calculator  [esc] Dashboard  [q] Quit"
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}

func (a *App) renderLoanApply() string {
	title := titleStyle.Render("Loan Application")
	labels := []string{"Type", "Amount", "Income", "Employment", "Purpose"}
	values := []string{a.applyType, a.applyAmount, a.applyIncome, a.applyEmployment, a.applyPurpose}
	out := title + "\n"
	for i := range labels {
		marker := " "
		if a.loanField == i {
			marker = "▶"
		}
		out += fmt.Sprintf("%s %-12s %s\n", marker, labels[i]+":", values[i])
	}
	out += "\n[enter] Submit  [esc] Back  [tab] Next field"
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}

func (a *App) renderLoanCalc() string {
	title := titleStyle.Render("EMI Calculator")
	labels := []string{"Amount", "Rate %", "Months"}
	values := []string{a.calcAmount, a.calcRate, a.calcMonths}
	out := title + "\n"
	for i := range labels {
		marker := " "
		if a.loanField == i {
			marker = "▶"
		}
		out += fmt.Sprintf("%s %-8s %s\n", marker, labels[i]+":", values[i])
	}
	if q := a.lastQuote; q != nil {
		out += fmt.Sprintf("\nMonthly EMI: %s\nTotal payable: %s  Total interest: %s\n",
			FormatAmount(a.currency, q.EMI), FormatAmount(a.currency, q.TotalAmount), FormatAmount(a.currency, q.TotalInterest))
	}
	out += "\n[enter] Calculate  [esc] Back  [tab] Next field"
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}
