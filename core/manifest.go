package core

// manifest.go – renders the Move.toml package manifest accompanying every
// emitted module (spec §4.5, §6 "generate_manifest"). Uses
// github.com/pelletier/go-toml/v2, the same TOML library the pack supplies,
// rather than hand-formatting the file as a string.

import (
	"bytes"

	"github.com/pelletier/go-toml/v2"
)

// moveManifest mirrors the handful of Move.toml sections a transpiled
// package needs: identity, the Aptos framework dependency, and the address
// alias the emitted module is published under.
type moveManifest struct {
	Package      manifestPackage         `toml:"package"`
	Addresses    map[string]string       `toml:"addresses"`
	Dependencies map[string]manifestDep  `toml:"dependencies"`
}

type manifestPackage struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

type manifestDep struct {
	Git      string `toml:"git"`
	Rev      string `toml:"rev"`
	Subdir   string `toml:"subdir,omitempty"`
}

// RenderManifest builds the Move.toml text for the package described by
// opts, whose modules are all published under one address alias.
func RenderManifest(opts Options) (string, error) {
	m := moveManifest{
		Package: manifestPackage{Name: opts.PackageName, Version: "0.0.1"},
		Addresses: map[string]string{
			opts.PackageName: opts.ModuleAddress,
		},
		Dependencies: map[string]manifestDep{
			"AptosFramework": {
				Git:    "https://github.com/aptos-labs/aptos-core.git",
				Rev:    "mainnet",
				Subdir: "aptos-move/framework/aptos-framework",
			},
		},
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(m); err != nil {
		return "", err
	}
	return buf.String(), nil
}
