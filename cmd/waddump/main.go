// waddump inspects DOOM WAD archives: directory listings, decoded map
// lumps, texture definitions, and marker groups. All format logic lives in
// internal/wad; this binary only loads files and prints results.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ernie/doom-tools/internal/config"
	"github.com/ernie/doom-tools/internal/observability"
	"github.com/ernie/doom-tools/internal/wad"
)

var (
	cfgFile   string
	verbosity int
	strict    bool

	cfg    config.Config
	logger *zap.Logger

	rootCmd = &cobra.Command{
		Use:           "waddump",
		Short:         "Inspect and create DOOM WAD archives",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(cfgFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("verbosity") {
				cfg.Verbosity = verbosity
			}
			if cmd.Flags().Changed("strict") {
				cfg.Strict = strict
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			logger, err = observability.NewLogger(cfg.Logging)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				logger.Sync() //nolint:errcheck
			}
		},
	}
)

func main() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "waddump.yaml", "config file")
	rootCmd.PersistentFlags().IntVarP(&verbosity, "verbosity", "v", 1, "output detail (0-2)")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "fail on lenient decode paths")

	rootCmd.AddCommand(dumpCmd, mapsCmd, groupsCmd, texturesCmd, createCmd, catalogCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// openArchive reads and decodes a WAD file with the configured options.
func openArchive(path string) (*wad.Archive, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	opts := []wad.Option{wad.WithLogger(logger)}
	if cfg.Strict {
		opts = append(opts, wad.WithStrict())
	}
	return wad.Decode(data, opts...)
}
