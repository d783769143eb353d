package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"

	"sol2move/internal/testutil"
)

func TestLoadConfigDefaults(t *testing.T) {
	sb, err := testutil.NewSandbox()
	if err != nil {
		t.Fatalf("NewSandbox failed: %v", err)
	}
	defer sb.Cleanup()

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}
	defer os.Chdir(wd)
	viper.Reset()

	if err := os.Chdir(sb.Root); err != nil {
		t.Fatalf("chdir failed: %v", err)
	}
	LoadConfig("")

	if AppConfig.ModuleAddress != "0x1" {
		t.Fatalf("expected default module address 0x1, got %s", AppConfig.ModuleAddress)
	}
	if AppConfig.OptimizationLevel != "medium" {
		t.Fatalf("expected default optimization level medium, got %s", AppConfig.OptimizationLevel)
	}
}

func TestLoadConfigOverride(t *testing.T) {
	sb, err := testutil.NewSandbox()
	if err != nil {
		t.Fatalf("NewSandbox failed: %v", err)
	}
	defer sb.Cleanup()

	if err := os.Mkdir(sb.Path("config"), 0700); err != nil {
		t.Fatalf("Mkdir failed: %v", err)
	}
	data := []byte("module_address: \"0x42\"\noptimization_level: high\n")
	if err := sb.WriteFile("config/sol2move.yaml", data, 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}
	defer os.Chdir(wd)
	viper.Reset()

	if err := os.Chdir(sb.Root); err != nil {
		t.Fatalf("chdir failed: %v", err)
	}
	LoadConfig("")

	if AppConfig.ModuleAddress != "0x42" {
		t.Fatalf("expected overridden module address 0x42, got %s", AppConfig.ModuleAddress)
	}
	if AppConfig.OptimizationLevel != "high" {
		t.Fatalf("expected overridden optimization level high, got %s", AppConfig.OptimizationLevel)
	}
}
