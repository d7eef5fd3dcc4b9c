package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ernie/doom-tools/internal/wad"
)

var createEmpty bool

var createCmd = &cobra.Command{
	Use:   "create <file.wad>",
	Short: "Create a fresh skeleton WAD",
	Long: `Create a new PWAD containing an empty MAP01 and flat, texture, and
sprite marker pairs. With --empty the file holds only the header and a
zero-entry directory.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists; in-place editing is not supported", path)
		}

		var data []byte
		if createEmpty {
			data = wad.EmptyWAD()
		} else {
			b, err := wad.NewSkeleton()
			if err != nil {
				return err
			}
			data = b.Bytes()
		}

		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		logger.Info("created WAD", zap.String("path", path), zap.Int("bytes", len(data)))
		fmt.Printf("created %s (%d bytes)\n", path, len(data))
		return nil
	},
}

func init() {
	createCmd.Flags().BoolVar(&createEmpty, "empty", false, "write the minimal header-only WAD")
}
