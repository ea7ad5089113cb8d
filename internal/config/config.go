// Package config loads CLI configuration from file and environment.
package config

import (
	"github.com/spf13/viper"
)

// Config is the root configuration struct
type Config struct {
	Store StoreConfig `mapstructure:"store"`
	Model ModelConfig `mapstructure:"model"`
	Log   LogConfig   `mapstructure:"log"`
}

// StoreConfig holds the local store settings
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// ModelConfig holds record-shape settings
type ModelConfig struct {
	IDAttribute string `mapstructure:"idAttribute"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration from file and environment
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("store.path", "./localsync-data")
	v.SetDefault("model.idAttribute", "id")
	v.SetDefault("log.level", "info")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
