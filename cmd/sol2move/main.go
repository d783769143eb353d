package main

// sol2move is the CLI front-end for the transpiler core (spec §6; exit
// convention per SPEC_FULL.md §12). Adapted from the teacher's cobra-based
// cmd/synnergy/main.go: the same root-command/subcommand shape, now driving
// transpile() instead of mock testnet/token operations.

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sol2move/core"
	"sol2move/pkg/config"
	"sol2move/pkg/formatter"
)

var buildVersion = "dev"

func main() {
	rootCmd := &cobra.Command{Use: "sol2move"}
	rootCmd.AddCommand(transpileCmd())
	rootCmd.AddCommand(versionCmd())
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print the sol2move version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(buildVersion)
		},
	}
}

func transpileCmd() *cobra.Command {
	var (
		configEnv    string
		optimization string
		strict       bool
		outDir       string
		formatPlugin string
	)
	cmd := &cobra.Command{
		Use:   "transpile [contract.json]",
		Short: "translate a parsed Solidity contract into a Move module",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			opts, err := config.Load(configEnv)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			if optimization != "" {
				opts.OptimizationLevel = core.OptimizationLevel(optimization)
			}
			opts.StrictMode = opts.StrictMode || strict

			contract, err := loadFrontendContract(args[0])
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}

			ir := core.BuildIR(contract)
			result := core.Translate(ir, *opts)

			if formatPlugin != "" && result.Success {
				fmtr, err := formatter.Load(formatPlugin)
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(2)
				}
				for i, mod := range result.Modules {
					formatted, err := fmtr.Format(mod)
					if err != nil {
						fmt.Fprintln(os.Stderr, err)
						os.Exit(2)
					}
					result.Modules[i] = formatted
				}
			}

			for _, w := range result.Warnings {
				fmt.Fprintln(os.Stderr, w.String())
			}
			for _, e := range result.Errors {
				fmt.Fprintln(os.Stderr, e.String())
			}

			if result.Success {
				if err := writeResult(result, outDir); err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(2)
				}
			}

			os.Exit(exitCodeFor(result, opts.StrictMode))
		},
	}
	cmd.Flags().StringVar(&configEnv, "env", "", "configuration environment overlay")
	cmd.Flags().StringVar(&optimization, "optimization", "", "override optimization_level (low|medium|high)")
	cmd.Flags().BoolVar(&strict, "strict", false, "promote error-capable diagnostics to hard errors")
	cmd.Flags().StringVar(&outDir, "out", ".", "directory to write emitted Move sources and Move.toml into")
	cmd.Flags().StringVar(&formatPlugin, "format-plugin", "", "path to a WASM-compiled Move source formatter plugin")
	return cmd
}

// exitCodeFor implements SPEC_FULL.md §12's diagnostic-to-exit-code
// convention: 0 for success (warnings allowed), 1 when errors caused
// emission to be skipped under permissive mode, 2 under strict-mode hard
// failure.
func exitCodeFor(result core.TranslationResult, strict bool) int {
	if result.Success {
		return 0
	}
	if strict {
		return 2
	}
	return 1
}
