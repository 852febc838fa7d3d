package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	statusMessageTimeout     = 3 * time.Second // Время отображения статусных сообщений
	helpStatusHeightOffset   = 2               // Высота строки помощи и статуса
	docStyleMarginVertical   = 1
	docStyleMarginHorizontal = 2
	defaultWidth             = 80
	defaultHeight            = 24
)

// Init - команда, выполняемая при запуске приложения.
func (m *model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadConfigsCmd(m.source))
}

// setStatusMessage устанавливает статусное сообщение и запускает таймер для его очистки.
func (m *model) setStatusMessage(status string) (tea.Model, tea.Cmd) {
	m.statusMessage = status
	return m, clearStatusCmd(statusMessageTimeout)
}

// getMainContentView возвращает основное содержимое для текущего состояния.
func (m *model) getMainContentView() string {
	switch m.state {
	case historyScreen:
		return m.viewHistoryScreen()
	case detailScreen:
		return m.viewDetailScreen()
	default:
		return "Неизвестное состояние!"
	}
}

// helpBindings возвращает подсказки для текущего экрана.
func (m *model) helpBindings() []key.Binding {
	if m.state == detailScreen {
		return []key.Binding{m.keys.Up, m.keys.Down, m.keys.Back, m.keys.Quit}
	}
	return []key.Binding{m.keys.Up, m.keys.Down, m.keys.Select, m.keys.Refresh, m.keys.Quit}
}

// getDebugInfoString формирует отладочную информацию.
func (m *model) getDebugInfoString() string {
	var debugInfo strings.Builder
	debugInfo.WriteString(fmt.Sprintf(" [State: %s]\n", m.state.String()))
	debugInfo.WriteString(fmt.Sprintf(" [Source: %s]\n", m.sourceName))
	debugInfo.WriteString(fmt.Sprintf(" [Configs: %d, Cursor: %d, Offset: %d]\n", len(m.configs), m.cursor, m.offset))
	debugInfo.WriteString(fmt.Sprintf(" [Size: %dx%d]\n", m.width, m.height))
	return debugInfo.String()
}

// debugFooter возвращает блок отладки под строкой помощи. Без режима отладки пуст.
func (m *model) debugFooter() string {
	if !m.debugMode {
		return ""
	}
	return "\n\n---\nОтладка:\n" + m.getDebugInfoString()
}

// footerHeight возвращает число строк под основным содержимым:
// помощь, статус и, в режиме отладки, блок отладки.
func (m *model) footerHeight() int {
	return helpStatusHeightOffset + strings.Count(m.debugFooter(), "\n")
}

// View отрисовывает пользовательский интерфейс.
func (m *model) View() string {
	mainContent := m.getMainContentView()
	help := m.help.ShortHelpView(m.helpBindings())

	var footer strings.Builder
	if m.statusMessage != "" {
		footer.WriteString("\n")
		footer.WriteString(m.statusMessage)
	}
	footer.WriteString(m.debugFooter())

	return fmt.Sprintf("%s\n%s%s", m.docStyle.Render(mainContent), help, footer.String())
}

// Start запускает TUI приложение и блокируется до выхода пользователя.
func Start(src ConfigSource, sourceName string, debugMode bool) error {
	m := initModel(src, sourceName, debugMode)

	slog.Info("Запуск TUI", "source", sourceName, "debug_mode", debugMode)

	p := tea.NewProgram(&m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		slog.Error("Ошибка при работе TUI", "error", err)
		return fmt.Errorf("ошибка при работе TUI: %w", err)
	}

	slog.Info("TUI завершен")
	return nil
}
