package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/mian-qin/qqs/models"
)

// Состояния (экраны) приложения.
type screenState int

const (
	historyScreen screenState = iota // Экран истории версий конфигурации
	detailScreen                     // Экран выбранной версии
)

func (s screenState) String() string {
	switch s {
	case historyScreen:
		return "historyScreen"
	case detailScreen:
		return "detailScreen"
	default:
		return "unknownScreen"
	}
}

// ConfigSource отдает историю версий конфигурации (админ-API или файл).
type ConfigSource interface {
	ListConfigs(ctx context.Context) ([]models.ConfigVersion, error)
}

// keyMap описывает привязки клавиш.
type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Select  key.Binding
	Refresh key.Binding
	Back    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "вверх"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "вниз"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "выбрать"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "обновить"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "назад"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "выход"),
		),
	}
}

// Сообщения.
type (
	// configsLoadedMsg сообщает о завершении загрузки истории.
	configsLoadedMsg struct {
		configs []models.ConfigVersion
	}

	// configsLoadErrorMsg сообщает об ошибке загрузки истории.
	configsLoadErrorMsg struct {
		err error
	}

	// configSelectedMsg сообщает о выборе версии пользователем.
	configSelectedMsg struct {
		version int64
	}

	// clearStatusMsg очищает статусное сообщение.
	clearStatusMsg struct{}
)

// model представляет состояние TUI приложения.
type model struct {
	state      screenState
	source     ConfigSource // Откуда берется история
	sourceName string       // Описание источника для заголовка
	debugMode  bool

	configs  []models.ConfigVersion // Версии от новых к старым
	cursor   int                    // Индекс выделенной версии
	offset   int                    // Индекс первой видимой версии
	selected *models.ConfigVersion  // Выбранная версия (экран деталей)
	loading  bool

	statusMessage string // Статус (отображается внизу)
	width         int
	height        int

	keys       keyMap
	help       help.Model
	spinner    spinner.Model
	detail     viewport.Model
	docStyle   lipgloss.Style
	titleStyle lipgloss.Style
	rowStyles  RowStyles
}

// initModel создает начальную модель.
func initModel(src ConfigSource, sourceName string, debugMode bool) model {
	s := spinner.New()
	s.Spinner = spinner.Dot

	return model{
		state:      historyScreen,
		source:     src,
		sourceName: sourceName,
		debugMode:  debugMode,
		loading:    true,
		keys:       defaultKeyMap(),
		help:       help.New(),
		spinner:    s,
		detail:     viewport.New(defaultWidth, defaultHeight),
		docStyle:   lipgloss.NewStyle().Margin(docStyleMarginVertical, docStyleMarginHorizontal),
		titleStyle: lipgloss.NewStyle().Bold(true).MarginBottom(1),
		rowStyles:  DefaultRowStyles(),
		width:      defaultWidth,
		height:     defaultHeight,
	}
}
