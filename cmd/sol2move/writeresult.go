package main

// writeresult.go persists a core.TranslationResult's rendered Move sources
// and manifest to disk (spec §6's "modules[]"/"manifest" become files on the
// --out path rather than strings returned to a caller).

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sol2move/core"
)

// writeResult writes one .move file per rendered module into outDir/sources
// and Move.toml (when present) into outDir, creating both if necessary.
func writeResult(result core.TranslationResult, outDir string) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("create output dir %s: %w", outDir, err)
	}

	sourcesDir := filepath.Join(outDir, "sources")
	if len(result.Modules) > 0 {
		if err := os.MkdirAll(sourcesDir, 0755); err != nil {
			return fmt.Errorf("create sources dir: %w", err)
		}
	}

	for i, mod := range result.Modules {
		name := moduleFileName(mod, i)
		path := filepath.Join(sourcesDir, name)
		if err := os.WriteFile(path, []byte(mod), 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}

	if result.Manifest != "" {
		path := filepath.Join(outDir, "Move.toml")
		if err := os.WriteFile(path, []byte(result.Manifest), 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}

	return nil
}

// moduleFileName derives a stable file name for a rendered module, reusing
// the declared module name when it can be found on the first "module" line.
func moduleFileName(source string, index int) string {
	if name := firstModuleName(source); name != "" {
		return name + ".move"
	}
	return fmt.Sprintf("module_%d.move", index)
}

func firstModuleName(source string) string {
	const marker = "module "
	start := strings.Index(source, marker)
	if start < 0 {
		return ""
	}
	rest := source[start+len(marker):]
	end := strings.IndexAny(rest, " \n\t{")
	if end < 0 {
		return ""
	}
	decl := rest[:end]
	if i := strings.Index(decl, "::"); i >= 0 {
		return decl[i+2:]
	}
	return decl
}
