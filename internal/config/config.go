package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds every tunable the service reads at startup. Values come from
// a .env file when present, otherwise from environment variables, otherwise
// from the defaults below.
type Config struct {
	AppPort        int    `mapstructure:"APP_PORT"`
	DatabasePath   string `mapstructure:"DATABASE_PATH"`
	GatewayURL     string `mapstructure:"GATEWAY_URL"`
	GatewayTimeout int    `mapstructure:"GATEWAY_TIMEOUT_SECONDS"`
	Model          string `mapstructure:"MODEL"`
	LogLevel       string `mapstructure:"LOG_LEVEL"`

	// Upload limits. Validation happens per file; one rejected file never
	// aborts the rest of its batch.
	MaxFilesCount  int `mapstructure:"MAX_FILES_COUNT"`
	MaxFileSizeMB  int `mapstructure:"MAX_FILE_SIZE_MB"`
	MaxTotalSizeMB int `mapstructure:"MAX_TOTAL_SIZE_MB"`

	// MaxSavedThreads bounds the thread collection; the oldest-updated
	// threads beyond the limit are evicted after every save.
	MaxSavedThreads int `mapstructure:"MAX_SAVED_THREADS"`
}

func LoadConfig() (*Config, error) {
	viper.SetDefault("APP_PORT", 8000)
	viper.SetDefault("DATABASE_PATH", "./data/virginia.db")
	viper.SetDefault("GATEWAY_URL", "http://localhost:8080")
	viper.SetDefault("GATEWAY_TIMEOUT_SECONDS", 120)
	viper.SetDefault("MODEL", "gemini-3-flash-preview")
	viper.SetDefault("LOG_LEVEL", "INFO")
	viper.SetDefault("MAX_FILES_COUNT", 30)
	viper.SetDefault("MAX_FILE_SIZE_MB", 20)
	viper.SetDefault("MAX_TOTAL_SIZE_MB", 100)
	viper.SetDefault("MAX_SAVED_THREADS", 10)

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./backend")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
