package models

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strconv"
)

// ConfigVersion представляет одну версию конфигурации квот,
// как ее отдает админ-API quotaservice (GET /api/configs).
// Все поля необязательны: отсутствие поля передается как nil,
// а не как нулевое значение, чтобы 0 и "" не путались с "нет данных".
type ConfigVersion struct {
	Version *int64  `json:"version,omitempty"` // Номер версии, ключ уникальности в списке
	User    *string `json:"user,omitempty"`    // Автор версии
	Date    *int64  `json:"date,omitempty"`    // Время создания, секунды Unix epoch
	// Raw - исходный JSON записи целиком (namespaces, бакеты и т.д.).
	// Заполняется при декодировании, для записей, собранных в коде, равен nil.
	Raw json.RawMessage `json:"-"`
}

// configVersionJSON - промежуточная форма для декодирования. Дата разбирается отдельно.
type configVersionJSON struct {
	Version *int64          `json:"version"`
	User    *string         `json:"user"`
	Date    json.RawMessage `json:"date"`
}

// UnmarshalJSON декодирует запись. Некорректная дата (строка, дробное число,
// переполнение int64) не ломает декодирование: она считается отсутствующей.
func (c *ConfigVersion) UnmarshalJSON(data []byte) error {
	var aux configVersionJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	c.Version = aux.Version
	c.User = aux.User
	c.Date = parseDate(aux.Date, aux.Version)
	c.Raw = append(json.RawMessage(nil), bytes.TrimSpace(data)...)
	return nil
}

// parseDate разбирает дату как целое число секунд. Все остальное дает nil.
func parseDate(raw json.RawMessage, version *int64) *int64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	ts, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		key := int64(0)
		if version != nil {
			key = *version
		}
		slog.Warn("Некорректная дата версии конфигурации, считаем ее отсутствующей",
			"version", key, "date", string(raw))
		return nil
	}
	return &ts
}

// Key возвращает номер версии или 0, если номер отсутствует.
func (c ConfigVersion) Key() int64 {
	if c.Version == nil {
		return 0
	}
	return *c.Version
}

// ConfigsResponse представляет тело ответа GET /api/configs.
type ConfigsResponse struct {
	Configs []ConfigVersion `json:"configs"`
}

// Int64 возвращает указатель на значение. Удобно для сборки записей в тестах и загрузчиках.
func Int64(v int64) *int64 { return &v }

// String возвращает указатель на строку.
func String(v string) *string { return &v }
