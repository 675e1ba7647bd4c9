package app

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"virginia-ai/backend/internal/api"
	"virginia-ai/backend/internal/config"
	"virginia-ai/backend/internal/database"
	"virginia-ai/backend/internal/llm"
	"virginia-ai/backend/internal/repository"
	"virginia-ai/backend/internal/service"
	"virginia-ai/backend/internal/turn"
)

// App bundles the process-wide resources: the single store handle and the
// HTTP server. Everything downstream receives these by reference; there is
// no lazily opened global connection.
type App struct {
	DB     *sql.DB
	Server *http.Server
}

// NewApp builds the full dependency graph from configuration.
func NewApp(cfg *config.Config) (*App, error) {
	db, err := database.InitDB(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	repo := repository.NewSQLiteRepository(db)
	provider := llm.NewGatewayProvider(cfg.GatewayURL, time.Duration(cfg.GatewayTimeout)*time.Second)
	retention := service.NewRetentionManager(repo, cfg.MaxSavedThreads)
	interpreter := turn.NewMarkerInterpreter()

	chatService := service.NewChatService(repo, provider, interpreter, retention, cfg.Model)
	fileService := service.NewFileService(repo, cfg)

	chatHandler := api.NewChatHandler(chatService)
	fileHandler := api.NewFileHandler(fileService)
	router := api.NewRouter(chatHandler, fileHandler)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 20 * time.Second,
		// Write timeout stays off: a turn holds the connection for the
		// whole gateway round trip, bounded by the gateway client.
		WriteTimeout: 0,
		IdleTimeout:  120 * time.Second,
	}

	return &App{DB: db, Server: server}, nil
}

// Run is the process entry point; it returns the exit code for main.
func Run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	setupLogger(cfg.LogLevel)
	logConfigSource()

	app, err := NewApp(cfg)
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		return 1
	}
	defer func() {
		if err := app.DB.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()
	slog.Info("Successfully connected to SQLite database.", "path", cfg.DatabasePath)

	slog.Info("Starting server", "port", cfg.AppPort)
	if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server failed", "error", err)
		return 1
	}

	return 0
}

func logConfigSource() {
	if file := viper.ConfigFileUsed(); file != "" {
		slog.Info("Successfully loaded configuration from file.", "file", file)
	} else {
		slog.Info("Configuration file not found. Using environment variables and defaults.")
	}
}

func setupLogger(logLevel string) {
	var level slog.Level
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}
