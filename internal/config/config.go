package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	DataDir  string    `mapstructure:"data_dir"`
	LogLevel string    `mapstructure:"log_level"`
	LLM      LLMConfig `mapstructure:"llm"`
}

type LLMConfig struct {
	Provider string `mapstructure:"provider"`
	Model    string `mapstructure:"model"`
	BaseURL  string `mapstructure:"base_url"`
	APIKey   string `mapstructure:"api_key"`
}

func Load() (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	defaultDataDir := filepath.Join(homeDir, ".mindvault")

	viper.SetDefault("data_dir", defaultDataDir)
	viper.SetDefault("log_level", "warn")
	viper.SetDefault("llm.provider", "deepseek")
	viper.SetDefault("llm.model", "deepseek-chat")

	// Environment variable overrides
	viper.SetEnvPrefix("MINDVAULT")
	viper.AutomaticEnv()
	viper.BindEnv("data_dir", "MINDVAULT_DATA_DIR")
	viper.BindEnv("log_level", "MINDVAULT_LOG_LEVEL")
	viper.BindEnv("llm.provider", "MINDVAULT_LLM_PROVIDER")
	viper.BindEnv("llm.model", "MINDVAULT_LLM_MODEL")
	viper.BindEnv("llm.base_url", "MINDVAULT_LLM_BASE_URL")
	viper.BindEnv("llm.api_key", "MINDVAULT_LLM_API_KEY")

	// Config file
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(defaultDataDir)

	// Read config file if exists (ignore error if not found)
	_ = viper.ReadInConfig()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Ensure data directory exists
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, err
	}

	return &cfg, nil
}
