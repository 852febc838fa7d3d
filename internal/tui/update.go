package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Update обрабатывает входящие сообщения.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	// == Глобальные сообщения (не зависят от экрана) ==
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.detail.Width = max(1, msg.Width-2*docStyleMarginHorizontal)
		m.detail.Height = max(1, msg.Height-2*docStyleMarginVertical-m.footerHeight())
		m.ensureCursorVisible()
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case configsLoadedMsg:
		return m.handleConfigsLoadedMsg(msg)

	case configsLoadErrorMsg:
		return m.handleConfigsLoadErrorMsg(msg)

	case configSelectedMsg:
		return m.handleConfigSelectedMsg(msg)

	case clearStatusMsg:
		m.statusMessage = ""
		return m, nil
	}

	// == Обработка ввода в зависимости от экрана ==
	switch m.state {
	case historyScreen:
		return m.updateHistoryScreen(msg)
	case detailScreen:
		return m.updateDetailScreen(msg)
	default:
		return m, nil
	}
}
