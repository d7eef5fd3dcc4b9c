package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ernie/doom-tools/internal/wad"
)

var dumpCmd = &cobra.Command{
	Use:   "dump <file.wad>",
	Short: "Print the WAD header and lump directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openArchive(args[0])
		if err != nil {
			return err
		}

		fmt.Println("=== WAD HEADER ===")
		fmt.Printf("Type: %s\n", a.Header.Magic)
		fmt.Printf("Lump count: %d (0x%08x)\n", a.Header.LumpCount, a.Header.LumpCount)
		fmt.Printf("Directory offset: %d (0x%08x)\n", a.Header.DirOffset, a.Header.DirOffset)

		fmt.Println("\n=== LUMPS ===")
		if cfg.Verbosity == 0 {
			fmt.Println("IDX  NAME")
			fmt.Println(strings.Repeat("-", 20))
			for i, e := range a.Entries {
				fmt.Printf("%03d  %-10s\n", i, e.Name)
			}
			return nil
		}

		fmt.Println("IDX  NAME       OFFSET       SIZE")
		fmt.Println(strings.Repeat("-", 42))
		for i, e := range a.Entries {
			fmt.Printf("%03d  %-10s %10d (0x%08x) %10d (0x%08x)\n",
				i, e.Name, e.Offset, e.Offset, e.Size, e.Size)
			if cfg.Verbosity >= 2 && e.Size > 0 {
				dumpLump(a, e)
			}
		}
		return nil
	},
}

// dumpLump prints decoded records for known lump kinds and a hex dump for
// the rest.
func dumpLump(a *wad.Archive, e wad.DirEntry) {
	data := a.LumpData(e)
	switch wad.KindOf(e.Name) {
	case wad.KindThings:
		things, err := wad.DecodeThings(data)
		if err != nil {
			fmt.Printf("  decode error: %v\n", err)
			return
		}
		fmt.Println("  X      Y      Angle  Type   Flags")
		for _, t := range things {
			fmt.Printf("  %6d %6d %6d %6d %6d\n", t.X, t.Y, t.Angle, t.Type, t.Flags)
		}
	case wad.KindVertexes:
		vertexes, err := wad.DecodeVertexes(data)
		if err != nil {
			fmt.Printf("  decode error: %v\n", err)
			return
		}
		fmt.Println("  X      Y")
		for _, v := range vertexes {
			fmt.Printf("  %6d %6d\n", v.X, v.Y)
		}
	case wad.KindLinedefs:
		linedefs, err := wad.DecodeLinedefs(data)
		if err != nil {
			fmt.Printf("  decode error: %v\n", err)
			return
		}
		fmt.Println("  Start  End    Flags  Special Tag    Right  Left")
		for _, l := range linedefs {
			fmt.Printf("  %6d %6d %6d %6d %6d %6d %6d\n",
				l.Start, l.End, l.Flags, l.Special, l.Tag, l.Right, l.Left)
		}
	case wad.KindSidedefs:
		sidedefs, err := wad.DecodeSidedefs(data)
		if err != nil {
			fmt.Printf("  decode error: %v\n", err)
			return
		}
		fmt.Println("  X-Off  Y-Off  Upper    Lower    Middle   Sector")
		for _, s := range sidedefs {
			fmt.Printf("  %6d %6d %-8s %-8s %-8s %6d\n",
				s.XOffset, s.YOffset, s.Upper, s.Lower, s.Middle, s.Sector)
		}
	case wad.KindSectors:
		sectors, err := wad.DecodeSectors(data)
		if err != nil {
			fmt.Printf("  decode error: %v\n", err)
			return
		}
		fmt.Println("  Floor  Ceil   FloorTex CeilTex  Light  Special Tag")
		for _, s := range sectors {
			fmt.Printf("  %6d %6d %-8s %-8s %6d %6d %6d\n",
				s.FloorHeight, s.CeilingHeight, s.FloorTex, s.CeilingTex,
				s.Light, s.Special, s.Tag)
		}
	default:
		hexDump(data)
	}
}

// hexDump prints at most a few lines of hex, sized to the terminal when
// stdout is one.
func hexDump(data []byte) {
	perLine := 16
	if term.IsTerminal(int(os.Stdout.Fd())) {
		if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width >= 80 {
			// each byte costs 3 columns after the 2-space indent
			perLine = (width - 2) / 3
		}
	}

	const maxLines = 4
	for line := 0; line < maxLines && line*perLine < len(data); line++ {
		chunk := data[line*perLine:]
		if len(chunk) > perLine {
			chunk = chunk[:perLine]
		}
		var sb strings.Builder
		for _, b := range chunk {
			fmt.Fprintf(&sb, "%02x ", b)
		}
		fmt.Printf("  %s\n", strings.TrimRight(sb.String(), " "))
	}
	if len(data) > maxLines*perLine {
		fmt.Printf("  ... %d more bytes\n", len(data)-maxLines*perLine)
	}
}
