package config

import (
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config drives the server binary. Values come from an optional config file
// overridden by environment variables.
type Config struct {
	ServerPort      string `mapstructure:"SERVER_PORT"`
	Difficulty      string `mapstructure:"AI_DIFFICULTY"`
	AIGoroutines    int    `mapstructure:"AI_GOROUTINES"`
	AllowAllOrigins bool   `mapstructure:"ALLOW_ALL_ORIGINS"`
	Debug           bool   `mapstructure:"DEBUG"`
}

// Setup loads configuration from cfgPath; an empty path skips the file and
// uses defaults plus environment variables only.
func Setup(cfgPath string) (*Config, error) {
	v := viper.New()
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("AI_DIFFICULTY", "medium")
	v.SetDefault("AI_GOROUTINES", 0)
	v.SetDefault("ALLOW_ALL_ORIGINS", false)
	v.SetDefault("DEBUG", false)
	v.AutomaticEnv()

	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "reading config file %s", cfgPath)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshalling config")
	}
	return &cfg, nil
}
