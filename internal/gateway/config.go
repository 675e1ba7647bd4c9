package gateway

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the gateway process settings. The API key is the only copy
// of the provider credential in the whole system.
type Config struct {
	Port   int    `mapstructure:"GATEWAY_PORT"`
	APIKey string `mapstructure:"API_KEY"`
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetDefault("GATEWAY_PORT", 8080)
	v.SetDefault("API_KEY", "")

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY is required")
	}
	return &cfg, nil
}
