package tui

import (
	"remind-cli/internal/session"

	tea "github.com/charmbracelet/bubbletea"
)

func Run(sess *session.Session) error {
	applyColorProfilePreference()
	applyThemePreference()
	m := newAppModel(sess)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
