// Package datefmt форматирует время создания версий конфигурации для отображения.
package datefmt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// MaxTimestamp - последняя секунда 9999 года (UTC). Все, что дальше, считается некорректным.
	MaxTimestamp int64 = 253402300799
	// Marker - последняя строка отформатированной даты.
	Marker = "UTC"

	padThreshold = 10
)

// ErrMalformedTimestamp сигнализирует о значении, которое нельзя отобразить как дату.
var ErrMalformedTimestamp = errors.New("некорректная метка времени")

// Location - единственная зона, в которой отображается время.
// Не зависит от TZ процесса.
//
//nolint:gochecknoglobals // Фиксированная политика отображения
var Location = time.UTC

// Validate проверяет, что метка времени лежит в допустимом диапазоне.
// 0 считается допустимым значением "нет времени".
func Validate(ts int64) error {
	if ts < 0 || ts > MaxTimestamp {
		return fmt.Errorf("%w: %d", ErrMalformedTimestamp, ts)
	}
	return nil
}

// Format форматирует необязательную метку времени.
// nil, 0 и некорректные значения дают пустую строку.
func Format(ts *int64) string {
	if ts == nil {
		return ""
	}
	return FormatSeconds(*ts)
}

// FormatSeconds форматирует секунды Unix epoch в три строки:
//
//	HH:MM
//	MM/DD/YYYY
//	UTC
func FormatSeconds(ts int64) string {
	if ts == 0 || Validate(ts) != nil {
		return ""
	}

	t := time.Unix(ts, 0).In(Location)

	var b strings.Builder
	b.WriteString(PadZero(t.Hour()))
	b.WriteString(":")
	b.WriteString(PadZero(t.Minute()))
	b.WriteString("\n")
	b.WriteString(PadZero(int(t.Month())))
	b.WriteString("/")
	b.WriteString(PadZero(t.Day()))
	b.WriteString("/")
	b.WriteString(PadZero(t.Year()))
	b.WriteString("\n")
	b.WriteString(Marker)
	return b.String()
}

// PadZero дополняет значение меньше 10 ведущим нулем.
func PadZero(v int) string {
	if v >= 0 && v < padThreshold {
		return "0" + strconv.Itoa(v)
	}
	return strconv.Itoa(v)
}
