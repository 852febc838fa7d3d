package tui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/mian-qin/qqs/models"
)

// diffContextLines - число строк контекста вокруг изменений.
const diffContextLines = 3

// handleConfigSelectedMsg открывает экран выбранной версии.
func (m *model) handleConfigSelectedMsg(msg configSelectedMsg) (tea.Model, tea.Cmd) {
	idx := m.indexOf(msg.version)
	if idx < 0 {
		slog.Warn("Выбранная версия отсутствует в истории", "version", msg.version)
		return m.setStatusMessage(fmt.Sprintf("Версия v%d не найдена", msg.version))
	}

	selected := m.configs[idx]
	m.selected = &selected
	m.cursor = idx
	m.ensureCursorVisible()
	m.state = detailScreen
	m.detail.SetContent(m.detailContent(idx))
	m.detail.GotoTop()

	slog.Info("Открыта версия конфигурации", "version", msg.version)
	return m, tea.ClearScreen
}

// detailContent описывает версию с индексом idx: заголовок, полный JSON записи
// и изменения относительно предыдущей версии (следующей в списке).
func (m *model) detailContent(idx int) string {
	c := m.configs[idx]
	labels := LabelsFor(c)

	user := unknownLabel
	if c.User != nil {
		user = *c.User
	}

	var b strings.Builder
	current := ""
	if idx == 0 {
		current = " (текущая)"
	}
	fmt.Fprintf(&b, "Версия: %s%s\n", labels.Version, current)
	fmt.Fprintf(&b, "Автор: %s\n", user)
	fmt.Fprintf(&b, "Создана: %s\n", strings.ReplaceAll(labels.Date, "\n", " "))
	fmt.Fprintf(&b, "Позиция в истории: %d из %d\n", idx+1, len(m.configs))

	body, err := recordJSON(c)
	if err != nil {
		slog.Error("Ошибка кодирования версии в JSON", "version", c.Key(), "error", err)
		return b.String()
	}
	b.WriteString("\n")
	b.WriteString(body)

	b.WriteString("\n")
	if idx+1 >= len(m.configs) {
		b.WriteString("Более ранних версий нет.\n")
		return b.String()
	}

	prev := m.configs[idx+1]
	fmt.Fprintf(&b, "Изменения относительно %s:\n", LabelsFor(prev).Version)
	b.WriteString(diffContent(prev, c))
	return b.String()
}

// diffContent строит unified diff между JSON двух версий.
func diffContent(prev, cur models.ConfigVersion) string {
	before, err := recordJSON(prev)
	if err != nil {
		slog.Error("Ошибка кодирования версии в JSON", "version", prev.Key(), "error", err)
		return "Не удалось построить изменения.\n"
	}
	after, err := recordJSON(cur)
	if err != nil {
		slog.Error("Ошибка кодирования версии в JSON", "version", cur.Key(), "error", err)
		return "Не удалось построить изменения.\n"
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: LabelsFor(prev).Version,
		ToFile:   LabelsFor(cur).Version,
		Context:  diffContextLines,
	})
	if err != nil {
		slog.Error("Ошибка построения изменений", "from", prev.Key(), "to", cur.Key(), "error", err)
		return "Не удалось построить изменения.\n"
	}
	if diff == "" {
		return "Отличий нет.\n"
	}
	return diff
}

// recordJSON возвращает JSON записи с отступами. Если исходный JSON сохранен
// при загрузке, показывается он целиком, иначе кодируются известные поля.
func recordJSON(c models.ConfigVersion) (string, error) {
	if len(c.Raw) > 0 {
		var buf bytes.Buffer
		if err := json.Indent(&buf, c.Raw, "", "  "); err == nil {
			buf.WriteString("\n")
			return buf.String(), nil
		}
	}

	raw, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return "", err
	}
	return string(raw) + "\n", nil
}

// viewDetailScreen отображает выбранную версию.
func (m *model) viewDetailScreen() string {
	if m.selected == nil {
		return "Версия не выбрана."
	}
	return m.detail.View()
}

// updateDetailScreen обрабатывает сообщения для экрана выбранной версии.
func (m *model) updateDetailScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(keyMsg, m.keys.Back):
			m.state = historyScreen
			m.selected = nil
			return m, tea.ClearScreen
		}
	}

	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}
