package wad

import "fmt"

// RejectTable is the square sector-to-sector visibility matrix from a REJECT
// lump. Blocked(i, j) true means sector j is never visible from sector i.
type RejectTable struct {
	sectors int
	bits    []byte
}

// Sectors returns the matrix dimension.
func (t *RejectTable) Sectors() int {
	return t.sectors
}

// Blocked reports whether sector to is rejected (not visible) from sector
// from. Bits beyond the lump's actual length read as 0, i.e. visible.
func (t *RejectTable) Blocked(from, to int) bool {
	cell := from*t.sectors + to
	byteIdx := cell / 8
	if byteIdx >= len(t.bits) {
		return false
	}
	return t.bits[byteIdx]&(1<<(cell%8)) != 0
}

// DecodeReject decodes a REJECT lump. The lump cannot self-describe its
// dimension, so the caller must resolve the sibling SECTORS lump first and
// pass its record count. Undersized tables are common in the wild and decode
// leniently unless strict is set; the missing bits read as visible.
func DecodeReject(data []byte, sectorCount int, strict bool) (*RejectTable, error) {
	if sectorCount < 0 {
		return nil, fmt.Errorf("reject: negative sector count %d", sectorCount)
	}
	if sectorCount == 0 {
		return &RejectTable{}, nil
	}
	need := (sectorCount*sectorCount + 7) / 8
	if strict && len(data) < need {
		return nil, &TruncatedDataError{Offset: len(data), Len: need - len(data)}
	}
	if len(data) > need {
		data = data[:need]
	}
	return &RejectTable{sectors: sectorCount, bits: data}, nil
}
