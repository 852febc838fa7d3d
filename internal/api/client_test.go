package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mian-qin/qqs/internal/api"
	"github.com/mian-qin/qqs/models"
)

func TestHTTPClient_ListConfigs(t *testing.T) {
	tests := []struct {
		name          string
		serverHandler http.HandlerFunc
		want          []models.ConfigVersion
		wantErr       error
		wantErrMsg    string
	}{
		{
			name: "Успех",
			serverHandler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/api/configs", r.URL.Path)
				assert.Equal(t, "application/json", r.Header.Get("Accept"))
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"configs":[{"version":5,"user":"alice","date":1700000000},{"version":4}]}`))
			},
			want: []models.ConfigVersion{
				{Version: models.Int64(5), User: models.String("alice"), Date: models.Int64(1700000000)},
				{Version: models.Int64(4)},
			},
		},
		{
			name: "Ошибка сервера (500)",
			serverHandler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "Error reading configs", http.StatusInternalServerError)
			},
			wantErr:    api.ErrUnexpectedStatus,
			wantErrMsg: "статус 500: Error reading configs",
		},
		{
			name: "Неверный метод (400)",
			serverHandler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
			},
			wantErr: api.ErrUnexpectedStatus,
		},
		{
			name: "Некорректные даты не ломают список",
			serverHandler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"configs":[{"version":9,"date":"now"},{"version":8,"date":1700000000.5},{"version":7,"date":1e20},{"version":6,"date":1700000000}]}`))
			},
			want: []models.ConfigVersion{
				{Version: models.Int64(9)},
				{Version: models.Int64(8)},
				{Version: models.Int64(7)},
				{Version: models.Int64(6), Date: models.Int64(1700000000)},
			},
		},
		{
			name: "Некорректный JSON",
			serverHandler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"configs":[{"version":"latest"}]}`))
			},
			wantErrMsg: "ошибка декодирования списка конфигураций",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.serverHandler)
			defer server.Close()

			client := api.NewHTTPClient(server.URL + "/")
			assert.Equal(t, server.URL, client.BaseURL())

			got, err := client.ListConfigs(context.Background())
			if tt.wantErr == nil && tt.wantErrMsg == "" {
				require.NoError(t, err)
				require.Len(t, got, len(tt.want))
				for i := range got {
					assert.NotEmpty(t, got[i].Raw, "Исходный JSON записи сохраняется")
					got[i].Raw = nil
				}
				assert.Equal(t, tt.want, got)
				return
			}

			require.Error(t, err)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantErrMsg != "" {
				assert.Contains(t, err.Error(), tt.wantErrMsg)
			}
		})
	}
}

func TestHTTPClient_ListConfigs_Unavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	serverURL := server.URL
	server.Close()

	client := api.NewHTTPClient(serverURL)
	_, err := client.ListConfigs(context.Background())
	require.ErrorIs(t, err, api.ErrUnavailable)
}

func TestHTTPClient_ListConfigs_ContextTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := api.NewHTTPClient(server.URL).ListConfigs(ctx)
	require.ErrorIs(t, err, api.ErrUnavailable)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
