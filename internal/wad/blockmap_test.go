package wad

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// encodeBlockmap lays out a blockmap lump: header, word offsets, block
// lists. Lists are written in order after the offset table.
func encodeBlockmap(originX, originY int16, columns, rows int, lists [][]uint16) []byte {
	var out []byte
	out = binary.LittleEndian.AppendUint16(out, uint16(originX))
	out = binary.LittleEndian.AppendUint16(out, uint16(originY))
	out = binary.LittleEndian.AppendUint16(out, uint16(columns))
	out = binary.LittleEndian.AppendUint16(out, uint16(rows))

	// Offsets are in 2-byte words from lump start.
	wordOffset := (blockmapHeaderSize + 2*len(lists)) / 2
	for _, list := range lists {
		out = binary.LittleEndian.AppendUint16(out, uint16(wordOffset))
		wordOffset += len(list) + 1 // plus terminator
	}
	for _, list := range lists {
		for _, v := range list {
			out = binary.LittleEndian.AppendUint16(out, v)
		}
		out = binary.LittleEndian.AppendUint16(out, blockTerminator)
	}
	return out
}

func TestDecodeBlockmap(t *testing.T) {
	data := encodeBlockmap(-776, -4672, 2, 2, [][]uint16{
		{0, 3, 12},
		{},
		{7},
		{0},
	})
	bm, err := DecodeBlockmap(data)
	require.NoError(t, err)

	assert.Equal(t, int16(-776), bm.OriginX)
	assert.Equal(t, int16(-4672), bm.OriginY)
	assert.Equal(t, 2, bm.Columns)
	assert.Equal(t, 2, bm.Rows)
	require.Len(t, bm.Blocks, 4)

	// Sentinels are excluded from the returned lists.
	assert.Equal(t, []uint16{0, 3, 12}, bm.At(0, 0).Linedefs)
	assert.Empty(t, bm.At(1, 0).Linedefs)
	assert.Equal(t, []uint16{7}, bm.At(0, 1).Linedefs)
	assert.Equal(t, []uint16{0}, bm.At(1, 1).Linedefs)
}

func TestDecodeBlockmapSharedLists(t *testing.T) {
	// Multiple blocks may point at the same list; common in compressed
	// blockmaps.
	var out []byte
	for _, v := range []uint16{0, 0, 2, 1} { // header: origin 0,0, 2x1 grid
		out = binary.LittleEndian.AppendUint16(out, v)
	}
	out = binary.LittleEndian.AppendUint16(out, 6) // both offsets point at
	out = binary.LittleEndian.AppendUint16(out, 6) // the same word
	out = binary.LittleEndian.AppendUint16(out, 42)
	out = binary.LittleEndian.AppendUint16(out, blockTerminator)

	bm, err := DecodeBlockmap(out)
	require.NoError(t, err)
	assert.Equal(t, []uint16{42}, bm.Blocks[0].Linedefs)
	assert.Equal(t, []uint16{42}, bm.Blocks[1].Linedefs)
}

func TestDecodeBlockmapMissingTerminator(t *testing.T) {
	data := encodeBlockmap(0, 0, 1, 1, [][]uint16{{1, 2, 3}})
	data = data[:len(data)-2] // drop the sentinel

	_, err := DecodeBlockmap(data)
	assert.ErrorIs(t, err, ErrMissingBlockTerminator)
}

func TestDecodeBlockmapEmptyLump(t *testing.T) {
	// Zero-length placeholders from freshly built WADs decode to an empty
	// grid.
	bm, err := DecodeBlockmap(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, bm.Columns)
	assert.Empty(t, bm.Blocks)
}

func TestDecodeBlockmapTruncatedHeader(t *testing.T) {
	_, err := DecodeBlockmap([]byte{1, 2, 3})
	var truncated *TruncatedDataError
	assert.ErrorAs(t, err, &truncated)
}

func TestDecodeBlockmapTruncatedOffsets(t *testing.T) {
	data := encodeBlockmap(0, 0, 4, 4, make([][]uint16, 16))
	_, err := DecodeBlockmap(data[:blockmapHeaderSize+6])
	var truncated *TruncatedDataError
	assert.ErrorAs(t, err, &truncated)
}

func TestDecodeBlockmapOversizedGrid(t *testing.T) {
	// A bare header claiming a 32767x32767 grid must fail on the size
	// check, not try to build two billion offsets.
	data := encodeBlockmap(0, 0, 32767, 32767, nil)
	_, err := DecodeBlockmap(data)
	var truncated *TruncatedDataError
	require.ErrorAs(t, err, &truncated)
	assert.Equal(t, blockmapHeaderSize, truncated.Offset)
}
