package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mian-qin/qqs/internal/api"
	"github.com/mian-qin/qqs/internal/source"
	"github.com/mian-qin/qqs/internal/tui"
)

const (
	logDir             = "logs"
	logFileName        = "qqs-admin.log"
	logFilePermissions = 0o666
	// Переменные окружения.
	envServerURL   = "QQS_ADMIN_URL"
	envConfigsFile = "QQS_CONFIGS_FILE"
)

// Переменные для версии и даты сборки, устанавливаются через ldflags.
//
//nolint:gochecknoglobals // Устанавливается через ldflags при сборке
var (
	version    = "dev"
	buildDate  = "unknown"
	commitHash = "N/A"
)

// errNoSource возвращается, если не указан ни адрес админ-API, ни файл.
var errNoSource = errors.New("не указан источник истории: --server-url (" + envServerURL +
	") или --configs-file (" + envConfigsFile + ")")

// config хранит параметры запуска.
type config struct {
	ServerURL   string
	ConfigsFile string
	Debug       bool
	Version     bool
}

// setupLogging настраивает логирование в файл logs/qqs-admin.log.
// Stdout занят TUI, поэтому в консоль ничего не пишем.
func setupLogging() (*os.File, error) {
	if err := os.MkdirAll(logDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("не удалось создать директорию для логов: %w", err)
	}
	logPath := filepath.Join(logDir, logFileName)
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermissions)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть лог-файл: %w", err)
	}

	logHandler := slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: slog.LevelDebug})
	slog.SetDefault(slog.New(logHandler))
	slog.Info("Логгер инициализирован", "path", logPath)
	return logFile, nil
}

// parseFlags разбирает флаги. Явно заданный флаг важнее переменной окружения.
func parseFlags(fs *flag.FlagSet, args []string, lookupEnv func(string) (string, bool)) (*config, error) {
	cfg := &config{}
	fs.StringVar(&cfg.ServerURL, "server-url", "",
		fmt.Sprintf("URL админ-сервера quotaservice, например http://localhost:8080 (env: %s)", envServerURL))
	fs.StringVar(&cfg.ConfigsFile, "configs-file", "",
		fmt.Sprintf("JSON-выгрузка GET /api/configs вместо обращения к серверу (env: %s)", envConfigsFile))
	fs.BoolVar(&cfg.Debug, "debug", false, "Включить режим отладки TUI")
	fs.BoolVar(&cfg.Version, "version", false, "Показать версию и дату сборки")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if !set["server-url"] {
		if value, ok := lookupEnv(envServerURL); ok {
			cfg.ServerURL = value
		}
	}
	if !set["configs-file"] {
		if value, ok := lookupEnv(envConfigsFile); ok {
			cfg.ConfigsFile = value
		}
	}

	if !cfg.Version && cfg.ServerURL == "" && cfg.ConfigsFile == "" {
		return nil, errNoSource
	}
	return cfg, nil
}

// newSource выбирает источник истории. Файл важнее сервера.
func newSource(cfg *config) (tui.ConfigSource, string, error) {
	if cfg.ConfigsFile != "" {
		f, err := source.NewFile(cfg.ConfigsFile)
		if err != nil {
			return nil, "", err
		}
		return f, f.Path(), nil
	}
	client := api.NewHTTPClient(cfg.ServerURL)
	return client, client.BaseURL(), nil
}

func run() error {
	cfg, err := parseFlags(flag.CommandLine, os.Args[1:], os.LookupEnv)
	if err != nil {
		return err
	}

	if cfg.Version {
		log.SetOutput(os.Stdout)
		log.SetFlags(0)
		log.Println("QuotaService Admin")
		log.Printf("Version: %s", version)
		log.Printf("Build Date: %s", buildDate)
		log.Printf("Commit Hash: %s", commitHash)
		return nil
	}

	logFile, err := setupLogging()
	if err != nil {
		return err
	}
	defer logFile.Close()

	src, sourceName, err := newSource(cfg)
	if err != nil {
		slog.Error("Ошибка инициализации источника истории", "error", err)
		return err
	}

	slog.Info("Запуск QuotaService Admin",
		"server_url", cfg.ServerURL,
		"configs_file", cfg.ConfigsFile,
		"debug_mode", cfg.Debug,
	)
	return tui.Start(src, sourceName, cfg.Debug)
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		os.Exit(1)
	}
}
