package wad

import (
	"errors"
	"fmt"
)

// Structural errors abort the whole parse: without a trustworthy directory
// there is nothing safe to decode.
var (
	ErrInvalidMagic  = errors.New("invalid WAD magic")
	ErrCorruptHeader = errors.New("corrupt WAD header")
)

// ErrMissingBlockTerminator reports a BLOCKMAP block list that runs off the
// end of the lump without hitting the -1 sentinel.
var ErrMissingBlockTerminator = errors.New("blockmap list missing -1 terminator")

// TruncatedDataError reports a read past the end of a lump or file buffer.
type TruncatedDataError struct {
	Offset int // position the read started at
	Len    int // number of bytes requested
}

func (e *TruncatedDataError) Error() string {
	return fmt.Sprintf("truncated data: read of %d bytes at offset %d exceeds buffer", e.Len, e.Offset)
}

// CorruptDirectoryError reports a directory entry whose byte range falls
// outside the file.
type CorruptDirectoryError struct {
	Index int
	Name  string
}

func (e *CorruptDirectoryError) Error() string {
	return fmt.Sprintf("directory entry %d (%q): lump range out of bounds", e.Index, e.Name)
}

// MisalignedLumpError reports a fixed-record lump whose size is not a
// multiple of its record width.
type MisalignedLumpError struct {
	Name  string
	Size  int
	Width int
}

func (e *MisalignedLumpError) Error() string {
	return fmt.Sprintf("lump %q: size %d is not a multiple of record width %d", e.Name, e.Size, e.Width)
}

// UnterminatedGroupError is a warning: a *_START marker with no matching
// *_END before the end of the directory. Real WADs ship with broken marker
// pairs, so this never aborts grouping.
type UnterminatedGroupError struct {
	Name string
}

func (e *UnterminatedGroupError) Error() string {
	return fmt.Sprintf("marker group %q has no matching end marker", e.Name)
}

// IncompleteMapError is a warning: a map unit missing one of the five
// required lumps.
type IncompleteMapError struct {
	Marker string
	Role   string
}

func (e *IncompleteMapError) Error() string {
	return fmt.Sprintf("map %q is missing required lump %s", e.Marker, e.Role)
}
