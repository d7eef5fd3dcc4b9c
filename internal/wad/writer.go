package wad

import (
	"encoding/binary"
	"fmt"
)

// Builder assembles a fresh WAD from scratch: lumps are appended or inserted
// in directory order, then Bytes lays out header, payloads, and directory.
// It only creates new files; editing an existing WAD in place is out of
// scope.
type Builder struct {
	lumps []builderLump
}

type builderLump struct {
	name string
	data []byte
}

// NewBuilder returns an empty Builder. Bytes on it produces the minimal
// valid PWAD: a 12-byte header and a zero-entry directory.
func NewBuilder() *Builder {
	return &Builder{}
}

// Len returns the number of lumps added so far.
func (b *Builder) Len() int {
	return len(b.lumps)
}

// AddLump appends a lump. A nil or empty payload makes a marker lump.
func (b *Builder) AddLump(name string, data []byte) error {
	if err := checkName(name); err != nil {
		return err
	}
	b.lumps = append(b.lumps, builderLump{name: name, data: data})
	return nil
}

// InsertLump inserts a lump at a directory index.
func (b *Builder) InsertLump(index int, name string, data []byte) error {
	if err := checkName(name); err != nil {
		return err
	}
	if index < 0 || index > len(b.lumps) {
		return fmt.Errorf("insert %q: index %d out of range", name, index)
	}
	b.lumps = append(b.lumps, builderLump{})
	copy(b.lumps[index+1:], b.lumps[index:])
	b.lumps[index] = builderLump{name: name, data: data}
	return nil
}

// FindLump returns the index of the first lump with the given name, or -1.
func (b *Builder) FindLump(name string) int {
	for i, l := range b.lumps {
		if l.name == name {
			return i
		}
	}
	return -1
}

// EnsureMarkers guarantees that both markers exist, appending any that are
// missing, and returns their indices.
func (b *Builder) EnsureMarkers(start, end string) (int, int, error) {
	startIdx := b.FindLump(start)
	if startIdx < 0 {
		if err := b.AddLump(start, nil); err != nil {
			return 0, 0, err
		}
		startIdx = len(b.lumps) - 1
	}
	endIdx := b.FindLump(end)
	if endIdx < 0 {
		if err := b.AddLump(end, nil); err != nil {
			return 0, 0, err
		}
		endIdx = len(b.lumps) - 1
	}
	return startIdx, endIdx, nil
}

// AddEmptyMap appends a map marker followed by zero-length placeholders for
// all ten role lumps.
func (b *Builder) AddEmptyMap(name string) error {
	if err := b.AddLump(name, nil); err != nil {
		return err
	}
	for _, role := range []string{
		LumpThings, LumpLinedefs, LumpSidedefs, LumpVertexes, LumpSegs,
		LumpSubSectors, LumpNodes, LumpSectors, LumpReject, LumpBlockmap,
	} {
		if err := b.AddLump(role, nil); err != nil {
			return err
		}
	}
	return nil
}

// ImportFlat inserts a flat before F_END, creating the marker pair if
// needed.
func (b *Builder) ImportFlat(name string, data []byte) error {
	return b.importBetween("F_START", "F_END", name, data)
}

// ImportSprite inserts a sprite patch before S_END.
func (b *Builder) ImportSprite(name string, data []byte) error {
	return b.importBetween("S_START", "S_END", name, data)
}

// ImportPatch inserts a texture patch before P_END.
func (b *Builder) ImportPatch(name string, data []byte) error {
	return b.importBetween("P_START", "P_END", name, data)
}

func (b *Builder) importBetween(start, end, name string, data []byte) error {
	_, endIdx, err := b.EnsureMarkers(start, end)
	if err != nil {
		return err
	}
	return b.InsertLump(endIdx, name, data)
}

// NewSkeleton returns a Builder pre-populated the way the tool initializes a
// brand-new WAD: an empty MAP01 plus flat, texture, and sprite marker pairs.
func NewSkeleton() (*Builder, error) {
	b := NewBuilder()
	if err := b.AddEmptyMap("MAP01"); err != nil {
		return nil, err
	}
	for _, pair := range [][2]string{
		{"F_START", "F_END"},
		{"T_START", "T_END"},
		{"S_START", "S_END"},
	} {
		if _, _, err := b.EnsureMarkers(pair[0], pair[1]); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Bytes serializes the WAD: header, lump payloads in directory order, then
// the directory itself. Generated files are always PWADs. The output always
// round-trips through Decode.
func (b *Builder) Bytes() []byte {
	payloadSize := 0
	for _, l := range b.lumps {
		payloadSize += len(l.data)
	}
	out := make([]byte, 0, headerSize+payloadSize+len(b.lumps)*dirEntrySize)

	// Header; the directory follows the payloads.
	dirOffset := headerSize + payloadSize
	out = append(out, MagicPWAD...)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(b.lumps)))
	out = binary.LittleEndian.AppendUint32(out, uint32(dirOffset))

	// Payloads, recording where each one lands. Marker lumps point at the
	// current write position with size 0.
	offsets := make([]int, len(b.lumps))
	for i, l := range b.lumps {
		offsets[i] = len(out)
		out = append(out, l.data...)
	}

	// Directory.
	for i, l := range b.lumps {
		out = binary.LittleEndian.AppendUint32(out, uint32(offsets[i]))
		out = binary.LittleEndian.AppendUint32(out, uint32(len(l.data)))
		var name [nameSize]byte
		copy(name[:], l.name)
		out = append(out, name[:]...)
	}
	return out
}

// EmptyWAD returns the minimal valid WAD file: a PWAD header declaring zero
// lumps with the directory offset pointing just past the header.
func EmptyWAD() []byte {
	return NewBuilder().Bytes()
}

func checkName(name string) error {
	if name == "" || len(name) > nameSize {
		return fmt.Errorf("lump name %q must be 1-%d characters", name, nameSize)
	}
	return nil
}
