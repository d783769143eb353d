package config

// Package config provides a reusable loader for sol2move configuration
// files and environment variables, adapted from the teacher's versioned
// pkg/config loader so the transpiler's Options struct is loaded the same
// way the teacher loads its node configuration.
//
// Version: v0.1.0

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"sol2move/core"
	"sol2move/pkg/utils"
)

// Version is the semantic version of this configuration package.
const Version = "v0.1.0"

// AppConfig holds the options loaded via Load or LoadFromEnv.
var AppConfig core.Options

// Load reads a config file (sol2move.yaml by default) and merges any
// environment-specific overrides, falling back to core.DefaultOptions for
// any field left unset. The resulting Options is stored in AppConfig and
// returned.
func Load(env string) (*core.Options, error) {
	_ = godotenv.Load() // best-effort; missing .env is not an error

	AppConfig = core.DefaultOptions()

	viper.SetConfigName("sol2move")
	viper.AddConfigPath("cmd/config")
	viper.AddConfigPath("config")
	viper.AddConfigPath(".")
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, utils.Wrap(err, "load config")
		}
	}

	if env != "" {
		viper.SetConfigName(env)
		if err := viper.MergeInConfig(); err != nil {
			return nil, utils.Wrap(err, fmt.Sprintf("merge %s config", env))
		}
	}

	viper.SetEnvPrefix("SOL2MOVE")
	viper.AutomaticEnv()

	if err := viper.Unmarshal(&AppConfig); err != nil {
		return nil, utils.Wrap(err, "unmarshal config")
	}
	return &AppConfig, nil
}

// LoadFromEnv loads configuration using the SOL2MOVE_ENV environment
// variable to select an overlay file.
func LoadFromEnv() (*core.Options, error) {
	return Load(utils.EnvOrDefault("SOL2MOVE_ENV", ""))
}
