package datefmt_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mian-qin/qqs/internal/datefmt"
)

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		name string
		ts   int64
		want string
	}{
		{name: "Ноль - нет времени", ts: 0, want: ""},
		{name: "Начало эпохи плюс секунда", ts: 1, want: "00:00\n01/01/1970\nUTC"},
		{name: "Двузначные поля", ts: 1700000000, want: "22:13\n11/14/2023\nUTC"},
		{name: "Смешанное дополнение", ts: 1234567890, want: "23:31\n02/13/2009\nUTC"},
		{name: "Начало века", ts: 946684800, want: "00:00\n01/01/2000\nUTC"},
		{name: "Максимальная метка", ts: datefmt.MaxTimestamp, want: "23:59\n12/31/9999\nUTC"},
		{name: "Отрицательное значение", ts: -1, want: ""},
		{name: "Слишком большое значение", ts: datefmt.MaxTimestamp + 1, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, datefmt.FormatSeconds(tt.ts))
		})
	}
}

func TestFormat_NilAndZero(t *testing.T) {
	zero := int64(0)
	assert.Empty(t, datefmt.Format(nil))
	assert.Empty(t, datefmt.Format(&zero))
	assert.Equal(t, datefmt.Format(nil), datefmt.Format(&zero))

	ts := int64(1700000000)
	assert.Equal(t, datefmt.FormatSeconds(ts), datefmt.Format(&ts))
}

func TestFormat_IgnoresLocalZone(t *testing.T) {
	saved := time.Local
	t.Cleanup(func() { time.Local = saved })
	time.Local = time.FixedZone("UTC+5", 5*60*60)

	assert.Equal(t, "22:13\n11/14/2023\nUTC", datefmt.FormatSeconds(1700000000))
}

func TestPadZero(t *testing.T) {
	for v := 0; v < 10; v++ {
		got := datefmt.PadZero(v)
		assert.Len(t, got, 2)
		assert.Equal(t, "0"+string(rune('0'+v)), got)
	}
	for _, v := range []int{10, 12, 31, 59, 2023} {
		assert.Equal(t, strings.TrimLeft(datefmt.PadZero(v), "0"), datefmt.PadZero(v))
	}
	assert.Equal(t, "10", datefmt.PadZero(10))
	assert.Equal(t, "59", datefmt.PadZero(59))
}

func TestValidate(t *testing.T) {
	require.NoError(t, datefmt.Validate(0))
	require.NoError(t, datefmt.Validate(1700000000))
	require.ErrorIs(t, datefmt.Validate(-5), datefmt.ErrMalformedTimestamp)
	require.ErrorIs(t, datefmt.Validate(datefmt.MaxTimestamp+1), datefmt.ErrMalformedTimestamp)
}

// Собираем метку из известных полей, форматируем и разбираем первые две строки обратно.
func TestFormat_RoundTrip(t *testing.T) {
	cases := []time.Time{
		time.Date(1970, time.January, 1, 0, 1, 0, 0, time.UTC),
		time.Date(1999, time.December, 31, 23, 59, 0, 0, time.UTC),
		time.Date(2004, time.February, 29, 7, 5, 0, 0, time.UTC),
		time.Date(2023, time.November, 14, 22, 13, 0, 0, time.UTC),
		time.Date(2038, time.January, 19, 3, 14, 0, 0, time.UTC),
	}

	for _, want := range cases {
		t.Run(want.Format(time.RFC3339), func(t *testing.T) {
			lines := strings.Split(datefmt.FormatSeconds(want.Unix()), "\n")
			require.Len(t, lines, 3)
			assert.Equal(t, datefmt.Marker, lines[2])

			got, err := time.ParseInLocation("15:04 01/02/2006", lines[0]+" "+lines[1], time.UTC)
			require.NoError(t, err)
			assert.Equal(t, want.Hour(), got.Hour())
			assert.Equal(t, want.Minute(), got.Minute())
			assert.Equal(t, want.Month(), got.Month())
			assert.Equal(t, want.Day(), got.Day())
			assert.Equal(t, want.Year(), got.Year())
		})
	}
}
