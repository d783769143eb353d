package config

// Package config in cmd provides a thin wrapper around the shared
// configuration loader found in pkg/config, mirroring the teacher's
// cmd/config convenience wrapper.

import (
	"sol2move/core"
	pkgconfig "sol2move/pkg/config"
)

// AppConfig holds the currently loaded Options for command line utilities.
// It mirrors pkg/config.AppConfig but is scoped to this package for
// convenience when writing CLI tools and tests.
var AppConfig core.Options

// LoadConfig loads the configuration for the given environment name and
// stores it in AppConfig. Any errors during loading cause a panic, which is
// acceptable for command line initialisation where failure should abort
// execution.
func LoadConfig(env string) {
	cfg, err := pkgconfig.Load(env)
	if err != nil {
		panic(err)
	}
	AppConfig = *cfg
}
