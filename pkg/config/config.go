package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"

	"fortimon/pkg/models"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variable.
type Config struct {
	// Logging Configurations
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	// Server Configurations
	ServerAddress    string `mapstructure:"SERVER_ADDRESS"`
	MetricsNamespace string `mapstructure:"METRICS_NAMESPACE"`

	// Worker Configurations
	WorkerConcurrency int `mapstructure:"WORKER_CONCURRENCY"`

	// Evaluation Defaults
	CriticalOnBranchChange bool `mapstructure:"CRITICAL_ON_BRANCH_CHANGE"`

	// Security/Encryption Configurations
	EncryptionKey string `mapstructure:"FORTIMON_SECRET"`
}

// EvaluationDefaults returns the evaluation config used when a task carries no rule.
func (c *Config) EvaluationDefaults() models.EvaluationConfig {
	return models.EvaluationConfig{CriticalOnBranchChange: c.CriticalOnBranchChange}
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	// 1. Set Defaults
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("SERVER_ADDRESS", ":8080")
	v.SetDefault("METRICS_NAMESPACE", "fortimon")
	v.SetDefault("WORKER_CONCURRENCY", 8)
	v.SetDefault("CRITICAL_ON_BRANCH_CHANGE", models.DefaultEvaluationConfig().CriticalOnBranchChange)
	v.SetDefault("FORTIMON_SECRET", "")

	// 2. Read fortimon.yaml if exists
	v.AddConfigPath(path)
	v.SetConfigName("fortimon")
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	// 3. Read .env if exists (overriding fortimon.yaml)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	if err := v.MergeInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	// 4. Allow Viper to read Environment Variables (highest priority)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
