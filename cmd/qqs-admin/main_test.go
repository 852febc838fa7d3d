package main

import (
	"flag"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mian-qin/qqs/internal/source"
)

func envFrom(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("qqs-admin", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		env     map[string]string
		want    config
		wantErr error
	}{
		{
			name: "Только флаг сервера",
			args: []string{"-server-url", "http://flag:8080"},
			want: config{ServerURL: "http://flag:8080"},
		},
		{
			name: "Только переменная окружения",
			env:  map[string]string{envServerURL: "http://env:8080"},
			want: config{ServerURL: "http://env:8080"},
		},
		{
			name: "Флаг важнее окружения",
			args: []string{"-server-url", "http://flag:8080"},
			env:  map[string]string{envServerURL: "http://env:8080"},
			want: config{ServerURL: "http://flag:8080"},
		},
		{
			name: "Файл из окружения и отладка",
			args: []string{"-debug"},
			env:  map[string]string{envConfigsFile: "configs.json"},
			want: config{ConfigsFile: "configs.json", Debug: true},
		},
		{
			name: "Версия без источника",
			args: []string{"-version"},
			want: config{Version: true},
		},
		{
			name:    "Нет источника",
			wantErr: errNoSource,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parseFlags(newFlagSet(), tt.args, envFrom(tt.env))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, *cfg)
		})
	}
}

func TestParseFlags_UnknownFlag(t *testing.T) {
	_, err := parseFlags(newFlagSet(), []string{"-db", "x"}, envFrom(nil))
	require.Error(t, err)
}

func TestNewSource(t *testing.T) {
	t.Run("Файл важнее сервера", func(t *testing.T) {
		src, name, err := newSource(&config{ServerURL: "http://localhost:8080", ConfigsFile: "configs.json"})
		require.NoError(t, err)
		assert.IsType(t, &source.File{}, src)
		assert.Equal(t, "configs.json", name)
	})

	t.Run("Сервер", func(t *testing.T) {
		src, name, err := newSource(&config{ServerURL: "http://localhost:8080/"})
		require.NoError(t, err)
		assert.NotNil(t, src)
		assert.Equal(t, "http://localhost:8080", name)
	})
}
