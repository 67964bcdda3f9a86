package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"securebank/internal/bank"
)

func (a *App) resetAuthForm() {
	a.authTab = tabLogin
	a.authField = 0
	a.loginEmail, a.loginPassword = "", ""
	a.signupName, a.signupEmail, a.signupPhone, a.signupPass = "", "", "", ""
	a.otpStage = false
	a.otpInput = ""
	a.pendingSignup = bank.SignupRequest{}
}

func (a *App) handleAuthKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.otpStage {
		return a.handleOTPKey(m)
	}
	switch m.Type {
	case tea.KeyLeft:
		a.authTab = tabLogin
		a.authField = 0
		return a, nil
	case tea.KeyRight:
		a.authTab = tabSignup
		a.authField = 0
		return a, nil
	case tea.KeyTab, tea.KeyDown:
		a.authField = (a.authField + 1) % a.authFieldCount()
		return a, nil
	case tea.KeyShiftTab, tea.KeyUp:
		a.authField = (a.authField + a.authFieldCount() - 1) % a.authFieldCount()
		return a, nil
	case tea.KeyEnter:
		return a.submitAuth()
	}

	if a.authTab == tabLogin {
		switch a.authField {
		case 0:
			a.loginEmail, _ = editField(a.loginEmail, m)
		case 1:
			a.loginPassword, _ = editField(a.loginPassword, m)
		}
		return a, nil
	}
	switch a.authField {
	case 0:
		a.signupName, _ = editField(a.signupName, m)
	case 1:
		a.signupEmail, _ = editField(a.signupEmail, m)
	case 2:
		a.signupPhone, _ = editField(a.signupPhone, m)
	case 3:
		a.signupPass, _ = editField(a.signupPass, m)
	}
	return a, nil
}

func (a *App) authFieldCount() int {
	if a.authTab == tabLogin {
		return 2
	}
	return 4
}

func (a *App) submitAuth() (tea.Model, tea.Cmd) {
	if a.authTab == tabLogin {
		email := strings.TrimSpace(a.loginEmail)
		if email == "" || a.loginPassword == "" {
			a.status = "enter email and password"
			return a, nil
		}
		a.status = "signing in..."
		return a, a.loginCmd(email, a.loginPassword)
	}

	req := bank.SignupRequest{
		Name:     strings.TrimSpace(a.signupName),
		Email:    strings.TrimSpace(a.signupEmail),
		Phone:    strings.TrimSpace(a.signupPhone),
		Password: a.signupPass,
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		a.status = "name, email and password are required"
		return a, nil
	}
	a.pendingSignup = req
	a.otpStage = true
	a.otpInput = ""
	a.status = ""
	return a, nil
}

func (a *App) handleOTPKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyEsc:
		a.otpStage = false
		a.otpInput = ""
		a.status = ""
		return a, nil
	case tea.KeyEnter:
		if reason := otpReason(a.otpInput); reason != "" {
			a.status = reason
			return a, nil
		}
		a.status = "verifying..."
		return a, a.signupCmd(a.pendingSignup, a.otpInput)
	}
	a.otpInput, _ = editField(a.otpInput, m)
	return a, nil
}

func (a *App) loginCmd(email, password string) tea.Cmd {
	return func() tea.Msg {
		res := a.mgr.Login(a.ctx, email, password)
		if !res.OK {
			return statusMsg(res.Reason)
		}
		return authOKMsg{}
	}
}

func (a *App) signupCmd(req bank.SignupRequest, otp string) tea.Cmd {
	return func() tea.Msg {
		if err := a.mgr.Provider().VerifyOTP(a.ctx, req.Email, otp); err != nil {
			return statusMsg(err.Error())
		}
		res := a.mgr.Signup(a.ctx, req)
		if !res.OK {
			return statusMsg(res.Reason)
		}
		return authOKMsg{}
	}
}

func (a *App) renderAuth() string {
	title := titleStyle.Render("SecureBank")
	if a.otpStage {
		body := fmt.Sprintf("Enter the 6-digit code sent to %s\n\nOTP: %s\n\n[enter] Verify  [esc] Back", a.pendingSignup.Email, a.otpInput)
		if a.status != "" {
			body += "\n" + a.status
		}
		return fmt.Sprintf("%s\n%s", title, body)
	}

	loginTab, signupTab := "Login", "Signup"
	if a.authTab == tabLogin {
		loginTab = activeStyle.Render("[" + loginTab + "]")
		signupTab = faintStyle.Render(" " + signupTab + " ")
	} else {
		loginTab = faintStyle.Render(" " + loginTab + " ")
		signupTab = activeStyle.Render("[" + signupTab + "]")
	}
	out := fmt.Sprintf("%s\n%s %s   (left/right to switch)\n\n", title, loginTab, signupTab)

	if a.authTab == tabLogin {
		out += a.renderField("Email", a.loginEmail, 0, false)
		out += a.renderField("Password", a.loginPassword, 1, true)
	} else {
		out += a.renderField("Name", a.signupName, 0, false)
		out += a.renderField("Email", a.signupEmail, 1, false)
		out += a.renderField("Phone", a.signupPhone, 2, false)
		out += a.renderField("Password", a.signupPass, 3, true)
	}
	out += "\n[tab] Next field  [enter] Submit  [ctrl+c] Quit"
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}

func (a *App) renderField(label, value string, idx int, mask bool) string {
	marker := " "
	if a.authField == idx {
		marker = "▶"
	}
	if mask {
		value = strings.Repeat("*", len(value))
	}
	return fmt.Sprintf("%s %-10s %s\n", marker, label+":", value)
}
