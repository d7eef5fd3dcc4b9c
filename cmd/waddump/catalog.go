package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ernie/doom-tools/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Maintain the SQLite lump catalog",
}

var catalogAddCmd = &cobra.Command{
	Use:   "add <file.wad>...",
	Short: "Index WAD files into the catalog",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := catalog.Open(cfg.Catalog.Path, logger)
		if err != nil {
			return err
		}
		defer c.Close()

		for _, path := range args {
			a, err := openArchive(path)
			if err != nil {
				return err
			}
			if err := c.Index(path, a); err != nil {
				return err
			}
			fmt.Printf("indexed %s (%d lumps)\n", path, len(a.Entries))
		}
		return nil
	},
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List indexed archives",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := catalog.Open(cfg.Catalog.Path, logger)
		if err != nil {
			return err
		}
		defer c.Close()

		wads, err := c.Wads()
		if err != nil {
			return err
		}
		for _, w := range wads {
			fmt.Printf("%-30s %s  %5d lumps  %3d maps\n", w.Path, w.Magic, w.LumpCount, w.Maps)
		}
		return nil
	},
}

var catalogFindCmd = &cobra.Command{
	Use:   "find <lump-name>",
	Short: "Find a lump by name across indexed archives",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := catalog.Open(cfg.Catalog.Path, logger)
		if err != nil {
			return err
		}
		defer c.Close()

		lumps, err := c.FindLumps(args[0])
		if err != nil {
			return err
		}
		for _, l := range lumps {
			fmt.Printf("%-30s #%03d %-10s %8d bytes  %s\n",
				l.WadPath, l.Index, l.Name, l.Size, l.Digest[:16])
		}
		return nil
	},
}

var catalogDupesCmd = &cobra.Command{
	Use:   "dupes",
	Short: "Report lumps shared byte-for-byte between archives",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := catalog.Open(cfg.Catalog.Path, logger)
		if err != nil {
			return err
		}
		defer c.Close()

		dupes, err := c.Duplicates()
		if err != nil {
			return err
		}
		if len(dupes) == 0 {
			fmt.Println("no duplicate lumps")
			return nil
		}
		for name, n := range dupes {
			fmt.Printf("%-10s shared by %d archives\n", name, n)
		}
		return nil
	},
}

func init() {
	catalogCmd.AddCommand(catalogAddCmd, catalogListCmd, catalogFindCmd, catalogDupesCmd)
}
