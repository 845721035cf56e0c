package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Database    DatabaseConfig    `mapstructure:"database"`
	Attachments AttachmentsConfig `mapstructure:"attachments"`
	Logging     LoggingConfig     `mapstructure:"logging"`
}

type DatabaseConfig struct {
	// Path of the sqlite file. Created on first start.
	Path string `mapstructure:"path"`
}

type AttachmentsConfig struct {
	// Dir is the managed storage directory attached files are copied into.
	Dir string `mapstructure:"dir"`
}

type LoggingConfig struct {
	Development bool `mapstructure:"development"`
	// Path of the log file. Logs go to a file so they do not tear up
	// the interactive view; empty means stderr.
	Path string `mapstructure:"path"`
}

// Load reads config.yml from the working directory, layered under PLANNER_*
// environment overrides. A missing file is fine: defaults cover everything.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AddConfigPath(".")

	v.SetDefault("database.path", "planner.db")
	v.SetDefault("attachments.dir", "uploads")
	v.SetDefault("logging.development", false)
	v.SetDefault("logging.path", "planner.log")

	v.SetEnvPrefix("PLANNER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config.yml: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}
