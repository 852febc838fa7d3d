package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mian-qin/qqs/internal/datefmt"
	"github.com/mian-qin/qqs/models"
)

// Подписи, подставляемые вместо отсутствующих полей.
const (
	unknownLabel  = "unknown"
	versionPrefix = "v"
	userPrefix    = " by "
	userSuffix    = " at "
)

// Ошибки конструирования строки версии.
var (
	ErrMissingRequiredInput = errors.New("не передан обязательный параметр")
	ErrMissingRecord        = fmt.Errorf("%w: запись версии конфигурации", ErrMissingRequiredInput)
	ErrMissingSelectHandler = fmt.Errorf("%w: обработчик выбора", ErrMissingRequiredInput)
)

// SelectFunc вызывается при выборе строки. Получает ключ (номер) выбранной версии.
type SelectFunc func(version int64) tea.Cmd

// RowLabels - три подписи строки версии в том виде, в каком они выводятся.
type RowLabels struct {
	Version string
	User    string
	Date    string
}

// RowStyles задает оформление строки версии.
type RowStyles struct {
	Container   lipgloss.Style
	Highlighted lipgloss.Style
	Version     lipgloss.Style
	User        lipgloss.Style
	Date        lipgloss.Style
}

// DefaultRowStyles возвращает стили по умолчанию.
// Обычная и выделенная строки имеют одинаковый размер, меняется только рамка слева.
func DefaultRowStyles() RowStyles {
	base := lipgloss.NewStyle().Padding(0, 1).BorderLeft(true)
	return RowStyles{
		Container:   base.BorderStyle(lipgloss.HiddenBorder()),
		Highlighted: base.BorderStyle(lipgloss.ThickBorder()).BorderForeground(lipgloss.Color("205")),
		Version:     lipgloss.NewStyle().Bold(true),
		User:        lipgloss.NewStyle().Faint(true),
		Date:        lipgloss.NewStyle(),
	}
}

// ConfigRow отображает одну версию конфигурации как кликабельную строку.
// Строка не хранит состояния между отрисовками: контейнер создает ее заново на каждый кадр.
type ConfigRow struct {
	record      models.ConfigVersion
	onSelect    SelectFunc
	styles      RowStyles
	highlighted bool
}

// NewConfigRow создает строку для записи. Запись и обработчик выбора обязательны.
func NewConfigRow(record *models.ConfigVersion, onSelect SelectFunc) (ConfigRow, error) {
	if record == nil {
		return ConfigRow{}, ErrMissingRecord
	}
	if onSelect == nil {
		return ConfigRow{}, ErrMissingSelectHandler
	}
	return ConfigRow{
		record:   *record,
		onSelect: onSelect,
		styles:   DefaultRowStyles(),
	}, nil
}

// WithStyles возвращает копию строки с другими стилями.
func (r ConfigRow) WithStyles(styles RowStyles) ConfigRow {
	r.styles = styles
	return r
}

// Highlight возвращает копию строки с выделением (или без).
func (r ConfigRow) Highlight(on bool) ConfigRow {
	r.highlighted = on
	return r
}

// Key возвращает номер версии, которую отображает строка.
func (r ConfigRow) Key() int64 {
	return r.record.Key()
}

// Labels вычисляет подписи строки с учетом значений по умолчанию.
func (r ConfigRow) Labels() RowLabels {
	return LabelsFor(r.record)
}

// LabelsFor вычисляет подписи для записи версии.
func LabelsFor(record models.ConfigVersion) RowLabels {
	user := unknownLabel
	if record.User != nil {
		user = *record.User
	}

	date := datefmt.Format(record.Date)
	if date == "" {
		date = unknownLabel
	}

	return RowLabels{
		Version: versionPrefix + strconv.FormatInt(record.Key(), 10),
		User:    userPrefix + user + userSuffix,
		Date:    date,
	}
}

// View отрисовывает строку.
func (r ConfigRow) View() string {
	labels := r.Labels()
	content := lipgloss.JoinHorizontal(lipgloss.Top,
		r.styles.Version.Render(labels.Version),
		r.styles.User.Render(labels.User),
		r.styles.Date.Render(labels.Date),
	)
	if r.highlighted {
		return r.styles.Highlighted.Render(content)
	}
	return r.styles.Container.Render(content)
}

// Height возвращает высоту строки в линиях терминала.
func (r ConfigRow) Height() int {
	return lipgloss.Height(r.View())
}

// HitTest проверяет, попадает ли нажатие левой кнопки мыши в строку,
// отрисованную с левым верхним углом в (left, top).
func (r ConfigRow) HitTest(msg tea.MouseMsg, left, top int) bool {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return false
	}
	view := r.View()
	return msg.X >= left && msg.X < left+lipgloss.Width(view) &&
		msg.Y >= top && msg.Y < top+lipgloss.Height(view)
}

// Click сообщает о выборе строки: вызывает обработчик ровно один раз и возвращает его команду.
func (r ConfigRow) Click() tea.Cmd {
	slog.Debug("Выбрана строка версии конфигурации", "version", r.Key())
	return r.onSelect(r.Key())
}
