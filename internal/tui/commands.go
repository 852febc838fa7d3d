package tui

import (
	"context"
	"errors"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mian-qin/qqs/internal/source"
)

const loadTimeout = 15 * time.Second // Ограничение на загрузку истории

// errNoSource возвращается, если источник истории не задан.
var errNoSource = errors.New("источник версий конфигурации не настроен")

// loadConfigsCmd асинхронно загружает историю версий из источника.
func loadConfigsCmd(src ConfigSource) tea.Cmd {
	return func() tea.Msg {
		if src == nil {
			return configsLoadErrorMsg{err: errNoSource}
		}

		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		configs, err := src.ListConfigs(ctx)
		if err != nil {
			slog.Error("Ошибка загрузки истории конфигураций", "error", err)
			return configsLoadErrorMsg{err: err}
		}

		return configsLoadedMsg{configs: source.Normalize(configs)}
	}
}

// selectConfigCmd - обработчик выбора для строк истории. Ключ версии передается явно.
func selectConfigCmd(version int64) tea.Cmd {
	return func() tea.Msg {
		return configSelectedMsg{version: version}
	}
}

// clearStatusCmd возвращает команду, которая отправит clearStatusMsg через delay.
func clearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(_ time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
