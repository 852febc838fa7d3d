package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mian-qin/qqs/models"
)

const (
	configsPath        = "/api/configs"
	defaultHTTPTimeout = 10 * time.Second
	errorBodyLimit     = 512 // Сколько байт тела ответа попадает в текст ошибки
)

// Ошибки клиента админ-API.
var (
	// ErrUnavailable сигнализирует о недоступности сервера (сеть, таймаут).
	ErrUnavailable = errors.New("админ-API недоступно")
	// ErrUnexpectedStatus сигнализирует о неожиданном HTTP статусе.
	ErrUnexpectedStatus = errors.New("неожиданный статус ответа админ-API")
)

// Client определяет интерфейс для чтения истории конфигураций из админ-API quotaservice.
type Client interface {
	// ListConfigs получает исторические версии конфигурации.
	ListConfigs(ctx context.Context) ([]models.ConfigVersion, error)
	// BaseURL возвращает адрес сервера.
	BaseURL() string
}

// httpClient реализует Client поверх HTTP.
type httpClient struct {
	baseURL    string       // Базовый URL админ-сервера, например "http://localhost:8080"
	httpClient *http.Client // HTTP клиент для выполнения запросов
}

// NewHTTPClient создает новый экземпляр API клиента.
func NewHTTPClient(baseURL string) Client {
	return &httpClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
}

func (c *httpClient) BaseURL() string {
	return c.baseURL
}

// ListConfigs выполняет GET /api/configs.
func (c *httpClient) ListConfigs(ctx context.Context) ([]models.ConfigVersion, error) {
	configsURL, err := url.JoinPath(c.baseURL, configsPath)
	if err != nil {
		return nil, fmt.Errorf("ошибка формирования URL для списка конфигураций: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, configsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса списка конфигураций: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Error("Ошибка запроса списка конфигураций", "url", configsURL, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		slog.Error("Админ-API вернуло ошибку", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("%w: статус %d: %s",
			ErrUnexpectedStatus, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var configsResponse models.ConfigsResponse
	if err = json.NewDecoder(resp.Body).Decode(&configsResponse); err != nil {
		return nil, fmt.Errorf("ошибка декодирования списка конфигураций: %w", err)
	}

	slog.Info("Список конфигураций получен", "count", len(configsResponse.Configs))
	return configsResponse.Configs, nil
}
