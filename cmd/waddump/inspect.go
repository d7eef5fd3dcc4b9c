package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ernie/doom-tools/internal/wad"
)

var mapsCmd = &cobra.Command{
	Use:   "maps <file.wad>",
	Short: "List map units and their decoded lump counts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openArchive(args[0])
		if err != nil {
			return err
		}

		units, warnings := a.Maps()
		for _, w := range warnings {
			fmt.Printf("warning: %v\n", w)
		}
		for _, u := range units {
			level := a.ReadMap(u)
			fmt.Printf("%s: %d things, %d vertexes, %d linedefs, %d sidedefs, %d sectors\n",
				u.Marker, len(level.Things), len(level.Vertexes),
				len(level.Linedefs), len(level.Sidedefs), len(level.Sectors))
			if cfg.Verbosity >= 1 {
				if len(level.Nodes) > 0 {
					fmt.Printf("  bsp: %d segs, %d subsectors, %d nodes\n",
						len(level.Segs), len(level.SubSectors), len(level.Nodes))
				}
				if level.Reject != nil {
					fmt.Printf("  reject: %d sectors\n", level.Reject.Sectors())
				}
				if level.Blockmap != nil {
					fmt.Printf("  blockmap: %dx%d at (%d,%d)\n",
						level.Blockmap.Columns, level.Blockmap.Rows,
						level.Blockmap.OriginX, level.Blockmap.OriginY)
				}
			}
			for role, lumpErr := range level.Errs {
				fmt.Printf("  %s: decode failed: %v\n", role, lumpErr)
			}
		}
		return nil
	},
}

var groupsCmd = &cobra.Command{
	Use:   "groups <file.wad>",
	Short: "List marker-delimited groups (flats, sprites, patches)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openArchive(args[0])
		if err != nil {
			return err
		}

		groups, warnings := a.MarkerGroups()
		for _, w := range warnings {
			fmt.Printf("warning: %v\n", w)
		}
		for _, g := range groups {
			fmt.Printf("%s: %d entries\n", g.Prefix, len(g.Entries))
			if cfg.Verbosity >= 1 {
				for _, e := range g.Entries {
					fmt.Printf("  %-10s %d bytes\n", e.Name, e.Size)
				}
			}
		}
		return nil
	},
}

var texturesCmd = &cobra.Command{
	Use:   "textures <file.wad>",
	Short: "List texture definitions and their patches",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openArchive(args[0])
		if err != nil {
			return err
		}

		var patchNames []string
		if e, ok := a.Lump(wad.LumpPNames); ok {
			patchNames, err = wad.DecodePatchNames(a.LumpData(e))
			if err != nil {
				return fmt.Errorf("decode PNAMES: %w", err)
			}
			fmt.Printf("PNAMES: %d patches\n", len(patchNames))
		}

		for _, name := range []string{wad.LumpTexture1, wad.LumpTexture2} {
			e, ok := a.Lump(name)
			if !ok {
				continue
			}
			textures, err := wad.DecodeTextures(name, a.LumpData(e))
			if err != nil {
				logger.Warn("texture lump decode failed", zap.String("lump", name), zap.Error(err))
				fmt.Printf("%s: decode failed: %v\n", name, err)
				continue
			}
			fmt.Printf("%s: %d textures\n", name, len(textures))
			if cfg.Verbosity < 1 {
				continue
			}
			for _, tex := range textures {
				fmt.Printf("  %-8s %dx%d, %d patches\n", tex.Name, tex.Width, tex.Height, len(tex.Patches))
				if cfg.Verbosity >= 2 {
					for _, p := range tex.Patches {
						patch := fmt.Sprintf("#%d", p.Patch)
						if int(p.Patch) < len(patchNames) && p.Patch >= 0 {
							patch = patchNames[p.Patch]
						}
						fmt.Printf("    %-8s at (%d,%d)\n", patch, p.XOffset, p.YOffset)
					}
				}
			}
		}
		return nil
	},
}
