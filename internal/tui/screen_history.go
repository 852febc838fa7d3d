package tui

import (
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// titleView отрисовывает заголовок экрана истории.
func (m *model) titleView() string {
	return m.titleStyle.Render(fmt.Sprintf("История конфигурации: %s (%d)", m.sourceName, len(m.configs)))
}

// listTop возвращает номер строки терминала, с которой начинается первая видимая версия.
func (m *model) listTop() int {
	return docStyleMarginVertical + lipgloss.Height(m.titleView())
}

// availableRowsHeight возвращает высоту, доступную под строки версий.
func (m *model) availableRowsHeight() int {
	chrome := 2*docStyleMarginVertical + lipgloss.Height(m.titleView()) + m.footerHeight()
	return max(1, m.height-chrome)
}

// buildRow создает строку для версии с индексом i.
func (m *model) buildRow(i int) (ConfigRow, error) {
	row, err := NewConfigRow(&m.configs[i], selectConfigCmd)
	if err != nil {
		return ConfigRow{}, err
	}
	return row.WithStyles(m.rowStyles).Highlight(i == m.cursor), nil
}

// visibleEnd возвращает индекс, следующий за последней видимой версией.
// Хотя бы одна версия видна всегда.
func (m *model) visibleEnd() int {
	avail := m.availableRowsHeight()
	used := 0
	end := m.offset
	for end < len(m.configs) {
		row, err := m.buildRow(end)
		if err != nil {
			break
		}
		h := row.Height()
		if used+h > avail && end > m.offset {
			break
		}
		used += h
		end++
	}
	return end
}

// ensureCursorVisible сдвигает окно так, чтобы выделенная версия была видна.
func (m *model) ensureCursorVisible() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	for m.offset < m.cursor && m.cursor >= m.visibleEnd() {
		m.offset++
	}
}

// moveCursor перемещает выделение на delta позиций в пределах списка.
func (m *model) moveCursor(delta int) {
	if len(m.configs) == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.configs)-1)
	m.ensureCursorVisible()
}

// clickRow отдает взаимодействие строке с индексом i. Строка сама вызывает обработчик выбора.
func (m *model) clickRow(i int) (tea.Model, tea.Cmd) {
	row, err := m.buildRow(i)
	if err != nil {
		slog.Error("Не удалось построить строку версии", "index", i, "error", err)
		return m.setStatusMessage(fmt.Sprintf("Ошибка: %v", err))
	}
	m.cursor = i
	return m, row.Click()
}

// viewHistoryScreen отображает список версий.
func (m *model) viewHistoryScreen() string {
	title := m.titleView()

	if m.loading {
		return lipgloss.JoinVertical(lipgloss.Left, title, m.spinner.View()+" Загрузка истории версий...")
	}

	if len(m.configs) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title, "История версий пуста.")
	}

	end := m.visibleEnd()
	views := make([]string, 0, end-m.offset+1)
	views = append(views, title)
	for i := m.offset; i < end; i++ {
		row, err := m.buildRow(i)
		if err != nil {
			continue
		}
		views = append(views, row.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, views...)
}

// updateHistoryScreen обрабатывает сообщения для экрана истории.
func (m *model) updateHistoryScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleHistoryKeys(msg)
	case tea.MouseMsg:
		return m.handleHistoryMouse(msg)
	}
	return m, nil
}

// handleHistoryKeys обрабатывает клавиши на экране истории.
func (m *model) handleHistoryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Refresh):
		if m.loading {
			return m, nil
		}
		m.loading = true
		slog.Info("Обновление истории версий")
		return m, tea.Batch(m.spinner.Tick, loadConfigsCmd(m.source))
	}

	if m.loading || len(m.configs) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Select):
		return m.clickRow(m.cursor)
	}
	return m, nil
}

// handleHistoryMouse обрабатывает мышь: колесо двигает выделение, клик выбирает строку.
func (m *model) handleHistoryMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.loading || len(m.configs) == 0 || msg.Action != tea.MouseActionPress {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.moveCursor(-1)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.moveCursor(1)
		return m, nil
	}

	top := m.listTop()
	end := m.visibleEnd()
	for i := m.offset; i < end; i++ {
		row, err := m.buildRow(i)
		if err != nil {
			continue
		}
		if row.HitTest(msg, docStyleMarginHorizontal, top) {
			return m.clickRow(i)
		}
		top += row.Height()
	}
	return m, nil
}

// handleConfigsLoadedMsg обрабатывает загруженную историю.
// Выделение остается на той же версии, если она есть в новом списке.
func (m *model) handleConfigsLoadedMsg(msg configsLoadedMsg) (tea.Model, tea.Cmd) {
	var highlighted int64 = -1
	if m.cursor < len(m.configs) {
		highlighted = m.configs[m.cursor].Key()
	}

	m.loading = false
	m.configs = msg.configs
	m.cursor = 0
	m.offset = 0
	if idx := m.indexOf(highlighted); idx >= 0 {
		m.cursor = idx
	}
	m.ensureCursorVisible()

	slog.Info("История версий обновлена", "count", len(m.configs))
	status := fmt.Sprintf("Загружено версий: %d", len(m.configs))
	if m.state == detailScreen && m.selected != nil {
		status = m.refreshSelected(status)
	}
	return m.setStatusMessage(status)
}

// refreshSelected перестраивает открытую версию по обновленной истории.
// Если версия из истории пропала, возвращает на экран истории.
func (m *model) refreshSelected(status string) string {
	version := m.selected.Key()
	idx := m.indexOf(version)
	if idx < 0 {
		slog.Warn("Открытая версия пропала из истории", "version", version)
		m.state = historyScreen
		m.selected = nil
		return fmt.Sprintf("Версии v%d больше нет в истории", version)
	}

	selected := m.configs[idx]
	m.selected = &selected
	m.cursor = idx
	m.ensureCursorVisible()

	yOffset := m.detail.YOffset
	m.detail.SetContent(m.detailContent(idx))
	m.detail.SetYOffset(yOffset)
	return status
}

// handleConfigsLoadErrorMsg обрабатывает ошибку загрузки истории.
func (m *model) handleConfigsLoadErrorMsg(msg configsLoadErrorMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	return m.setStatusMessage(fmt.Sprintf("Ошибка загрузки версий: %v", msg.err))
}

// indexOf ищет версию по ключу. Возвращает -1, если версии нет.
func (m *model) indexOf(version int64) int {
	for i := range m.configs {
		if m.configs[i].Key() == version {
			return i
		}
	}
	return -1
}
