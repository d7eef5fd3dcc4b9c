package wad

import "fmt"

// blockmap layout constants. Block offsets are measured in 2-byte words from
// the start of the lump; each block list ends at a -1 word.
const (
	blockmapHeaderSize = 8 // origin x(2) + origin y(2) + columns(2) + rows(2)
	blockTerminator    = 0xFFFF
)

// Blockmap is the collision-lookup grid of a map: a rectangle of blocks,
// each holding the indices of the linedefs that cross it.
type Blockmap struct {
	OriginX, OriginY int16
	Columns, Rows    int
	Blocks           []Block
}

// Block is one cell's linedef index list, sentinel excluded.
type Block struct {
	Linedefs []uint16
}

// At returns the block in the given grid column and row.
func (b *Blockmap) At(col, row int) *Block {
	return &b.Blocks[row*b.Columns+col]
}

// DecodeBlockmap decodes a BLOCKMAP lump: a fixed header, columns*rows
// word offsets, then self-terminating block lists. A list that reaches the
// end of the lump without its -1 sentinel fails with
// ErrMissingBlockTerminator.
func DecodeBlockmap(data []byte) (*Blockmap, error) {
	// Freshly created WADs carry zero-length placeholder lumps.
	if len(data) == 0 {
		return &Blockmap{}, nil
	}
	c := newCursor(data)
	originX, _ := c.readInt16()
	originY, _ := c.readInt16()
	columns, _ := c.readInt16()
	rows, err := c.readInt16()
	if err != nil {
		return nil, fmt.Errorf("read blockmap header: %w", err)
	}
	if columns < 0 || rows < 0 {
		return nil, fmt.Errorf("blockmap: invalid grid %dx%d", columns, rows)
	}

	bm := &Blockmap{
		OriginX: originX, OriginY: originY,
		Columns: int(columns), Rows: int(rows),
	}

	// Size-check the declared grid before allocating for it.
	cells := bm.Columns * bm.Rows
	if cells > c.remaining()/2 {
		return nil, &TruncatedDataError{Offset: blockmapHeaderSize, Len: cells * 2}
	}

	offsets := make([]uint16, cells)
	for i := range offsets {
		offsets[i], err = c.readUint16()
		if err != nil {
			return nil, fmt.Errorf("read blockmap offsets: %w", err)
		}
	}

	bm.Blocks = make([]Block, len(offsets))
	for i, off := range offsets {
		list, err := readBlockList(data, int(off)*2)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
		bm.Blocks[i] = Block{Linedefs: list}
	}
	return bm, nil
}

func readBlockList(data []byte, offset int) ([]uint16, error) {
	c := newCursor(data)
	c.seek(offset)
	var list []uint16
	for {
		v, err := c.readUint16()
		if err != nil {
			return nil, ErrMissingBlockTerminator
		}
		if v == blockTerminator {
			return list, nil
		}
		list = append(list, v)
	}
}
