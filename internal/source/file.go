// Package source загружает историю версий конфигурации из JSON-выгрузки админ-API.
package source

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/mian-qin/qqs/internal/datefmt"
	"github.com/mian-qin/qqs/models"
)

// Ошибки загрузки.
var (
	ErrEmptyPath        = errors.New("не указан путь к файлу с версиями конфигурации")
	ErrMalformedPayload = errors.New("некорректный формат файла с версиями конфигурации")
)

// File читает версии конфигурации из файла.
// Поддерживаются тело ответа GET /api/configs ({"configs": [...]}) и голый массив.
type File struct {
	path string
}

// NewFile создает источник для указанного файла.
func NewFile(path string) (*File, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	return &File{path: path}, nil
}

// Path возвращает путь к файлу.
func (f *File) Path() string {
	return f.path
}

// ListConfigs читает и декодирует файл. Файл перечитывается при каждом вызове.
func (f *File) ListConfigs(ctx context.Context) ([]models.ConfigVersion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения файла '%s': %w", f.path, err)
	}

	configs, err := Decode(data)
	if err != nil {
		slog.Error("Ошибка декодирования файла версий", "path", f.path, "error", err)
		return nil, err
	}

	slog.Info("Версии конфигурации загружены из файла", "path", f.path, "count", len(configs))
	return configs, nil
}

// Decode разбирает JSON с версиями конфигурации.
func Decode(data []byte) ([]models.ConfigVersion, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: пустой документ", ErrMalformedPayload)
	}

	if trimmed[0] == '[' {
		var configs []models.ConfigVersion
		if err := json.Unmarshal(trimmed, &configs); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
		}
		return configs, nil
	}

	var resp models.ConfigsResponse
	if err := json.Unmarshal(trimmed, &resp); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}
	return resp.Configs, nil
}

// Normalize упорядочивает версии от новых к старым и убирает повторы по номеру версии.
// Из повторов остается первая встреченная запись. Исходный срез не меняется.
func Normalize(configs []models.ConfigVersion) []models.ConfigVersion {
	seen := make(map[int64]struct{}, len(configs))
	result := make([]models.ConfigVersion, 0, len(configs))

	for _, c := range configs {
		key := c.Key()
		if _, ok := seen[key]; ok {
			slog.Warn("Повторяющийся номер версии конфигурации пропущен", "version", key)
			continue
		}
		seen[key] = struct{}{}

		if key < 0 {
			slog.Warn("Версия конфигурации с отрицательным номером", "version", key)
		}
		if c.Date != nil {
			if err := datefmt.Validate(*c.Date); err != nil {
				slog.Warn("Версия конфигурации с некорректной датой", "version", key, "error", err)
			}
		}
		result = append(result, c)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Key() > result[j].Key()
	})
	return result
}
