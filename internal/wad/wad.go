// Package wad decodes DOOM-engine WAD archives: a 12-byte header, a
// directory of named lumps, and one binary record layout per lump type.
// The format is documented in The Unofficial DOOM Specs,
// http://www.gamers.org/dhs/helpdocs/dmsp1666.html
package wad

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const (
	// MagicIWAD marks a full game archive, MagicPWAD a patch archive.
	MagicIWAD = "IWAD"
	MagicPWAD = "PWAD"

	headerSize   = 12 // magic(4) + lump count(4) + directory offset(4)
	dirEntrySize = 16 // offset(4) + size(4) + name(8)
)

// Header is the decoded 12-byte WAD header.
type Header struct {
	Magic     string
	LumpCount int
	DirOffset int
}

// DirEntry is one 16-byte directory record. Entries keep directory order;
// map grouping and marker grouping depend on adjacency.
type DirEntry struct {
	Name   string
	Offset int
	Size   int
}

// IsMarker reports whether the entry is a zero-size marker lump.
func (e DirEntry) IsMarker() bool {
	return e.Size == 0
}

// Archive is a decoded WAD. It borrows the input buffer for the lifetime of
// the value and never mutates it, so independent lump decodes are safe to run
// concurrently.
type Archive struct {
	Header  Header
	Entries []DirEntry

	data   []byte
	byName map[string]int
	strict bool
	logger *zap.Logger
}

// Option configures an Archive during Decode.
type Option func(*Archive)

// WithLogger attaches a structured logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(a *Archive) { a.logger = l }
}

// WithStrict makes lenient decode paths (undersized REJECT tables) fail
// instead of filling in defaults.
func WithStrict() Option {
	return func(a *Archive) { a.strict = true }
}

// Decode parses the header and directory of a complete WAD file held in
// memory. Structural failures return a nil Archive: a partial directory is
// never exposed because grouping logic requires a fully bounds-checked entry
// list. Individual lump payloads are not touched until requested.
func Decode(data []byte, opts ...Option) (*Archive, error) {
	a := &Archive{data: data, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(a)
	}

	c := newCursor(data)
	magic, err := c.readBytes(4)
	if err != nil {
		return nil, fmt.Errorf("%w: file shorter than header", ErrCorruptHeader)
	}
	a.Header.Magic = string(magic)
	if a.Header.Magic != MagicIWAD && a.Header.Magic != MagicPWAD {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMagic, magic)
	}

	count, err := c.readInt32()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptHeader, err)
	}
	dirOffset, err := c.readInt32()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptHeader, err)
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: negative lump count %d", ErrCorruptHeader, count)
	}
	if dirOffset < 0 || int(dirOffset)+int(count)*dirEntrySize > len(data) {
		return nil, fmt.Errorf("%w: directory [%d, %d) exceeds file size %d",
			ErrCorruptHeader, dirOffset, int(dirOffset)+int(count)*dirEntrySize, len(data))
	}
	a.Header.LumpCount = int(count)
	a.Header.DirOffset = int(dirOffset)

	a.Entries = make([]DirEntry, a.Header.LumpCount)
	a.byName = make(map[string]int, a.Header.LumpCount)
	c.seek(a.Header.DirOffset)
	for i := range a.Entries {
		offset, err := c.readInt32()
		if err != nil {
			return nil, fmt.Errorf("read directory entry %d: %w", i, err)
		}
		size, err := c.readInt32()
		if err != nil {
			return nil, fmt.Errorf("read directory entry %d: %w", i, err)
		}
		name, err := c.readName()
		if err != nil {
			return nil, fmt.Errorf("read directory entry %d: %w", i, err)
		}
		e := DirEntry{Name: name, Offset: int(offset), Size: int(size)}
		if e.Offset < 0 || e.Size < 0 || e.Offset+e.Size > len(data) {
			return nil, &CorruptDirectoryError{Index: i, Name: name}
		}
		a.Entries[i] = e
		// Later entries shadow earlier ones, matching engine lookup order.
		a.byName[strings.ToUpper(name)] = i
	}

	a.logger.Debug("decoded WAD directory",
		zap.String("magic", a.Header.Magic),
		zap.Int("lumps", a.Header.LumpCount))
	return a, nil
}

// Lump finds a directory entry by name, case-insensitively. When the name
// occurs more than once the last occurrence wins.
func (a *Archive) Lump(name string) (DirEntry, bool) {
	i, ok := a.byName[strings.ToUpper(name)]
	if !ok {
		return DirEntry{}, false
	}
	return a.Entries[i], true
}

// LumpData returns the raw byte range of an entry. The slice aliases the
// archive's input buffer and must not be modified.
func (a *Archive) LumpData(e DirEntry) []byte {
	return a.data[e.Offset : e.Offset+e.Size]
}
