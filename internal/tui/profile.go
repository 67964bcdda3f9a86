package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"securebank/internal/bank"
)

func (a *App) handleProfileKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.profileEditing {
		fields := []*string{&a.editName, &a.editPhone}
		switch m.Type {
		case tea.KeyEsc:
			a.profileEditing = false
			a.status = ""
			return a, nil
		case tea.KeyTab, tea.KeyDown:
			a.profileField = (a.profileField + 1) % len(fields)
			return a, nil
		case tea.KeyShiftTab, tea.KeyUp:
			a.profileField = (a.profileField + len(fields) - 1) % len(fields)
			return a, nil
		case tea.KeyEnter:
			name := strings.TrimSpace(a.editName)
			phone := strings.TrimSpace(a.editPhone)
			if name == "" {
				a.status = "name cannot be empty"
				return a, nil
			}
			a.status = "saving..."
			return a, a.updateProfileCmd(name, phone)
		}
		*fields[a.profileField], _ = editField(*fields[a.profileField], m)
		return a, nil
	}

	switch m.String() {
	case "esc":
		a.state = viewDashboard
		a.status = ""
		return a, a.loadRecent()
	case "e":
		user, _ := a.mgr.User()
		a.profileEditing = true
		a.profileField = 0
		a.editName = user.Name
		a.editPhone = user.Phone
		a.status = ""
		return a, nil
	case "o":
		return a, a.logoutCmd()
	}
	if cmd, ok := a.handleNavKey(m.String()); ok {
		return a, cmd
	}
	return a, nil
}

func (a *App) updateProfileCmd(name, phone string) tea.Cmd {
	update := bank.ProfileUpdate{Name: &name}
	if phone != "" {
		update.Phone = &phone
	}
	return func() tea.Msg {
		user, err := a.mgr.Provider().UpdateProfile(a.ctx, update)
		if err != nil {
			return errMsg{err}
		}
		a.mgr.RefreshUserData(a.ctx)
		return profileSavedMsg(user)
	}
}

func (a *App) logoutCmd() tea.Cmd {
	return func() tea.Msg {
		a.mgr.Logout()
		return loggedOutMsg{}
	}
}

func (a *App) renderProfile() string {
	user, ok := a.mgr.User()
	if !ok {
		return "no session"
	}
	title := titleStyle.Render("Profile")
	if a.profileEditing {
		labels := []string{"Name", "Phone"}
		values := []string{a.editName, a.editPhone}
		out := title + "\n"
		for i := range labels {
			marker := " "
			if a.profileField == i {
				marker = "▶"
			}
			out += fmt.Sprintf("%s %-8s %s\n", marker, labels[i]+":", values[i])
		}
		out += "\n[enter] Save  [esc] Cancel  [tab] Next field"
		if a.status != "" {
			out += "\n" + a.status
		}
		return out
	}

	out := fmt.Sprintf("%s\nName:    %s\nEmail:   %s\nPhone:   %s\nAccount: %s\nIFSC:    %s\nType:    %s\nMember since %s\n",
		title, user.Name, user.Email, user.Phone, user.AccountNumber, user.IFSCCode, user.AccountType, user.CreatedAt.Format(a.dateFormat))
	out += "\n[e] Edit  [o] Log out  [esc] Dashboard  [q] Quit"
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}
